package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rafaelleal24/stockledger/internal/core/domain"
	"github.com/rafaelleal24/stockledger/internal/core/dto"
	"github.com/rafaelleal24/stockledger/internal/core/port"
	"github.com/rafaelleal24/stockledger/internal/core/port/mock"
	"github.com/rafaelleal24/stockledger/internal/core/serviceerrors"
	"go.uber.org/mock/gomock"
)

type catalogMocks struct {
	productRepo *mock.MockProductPort
	settings    *mock.MockSettingsPort
	events      *mock.MockEventSink
	txManager   *mock.MockTransactionManager
}

func setupCatalogService(t *testing.T) (*CatalogService, *catalogMocks) {
	ctrl := gomock.NewController(t)
	m := &catalogMocks{
		productRepo: mock.NewMockProductPort(ctrl),
		settings:    mock.NewMockSettingsPort(ctrl),
		events:      mock.NewMockEventSink(ctrl),
		txManager:   mock.NewMockTransactionManager(ctrl),
	}
	m.txManager.EXPECT().
		WithTransaction(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, fn func(context.Context) error) error {
			return fn(ctx)
		}).
		AnyTimes()

	return NewCatalogService(m.productRepo, m.settings, m.events, m.txManager), m
}

func intPtr(v int) *int { return &v }

func strPtr(v string) *string { return &v }

func TestCatalogService_Add(t *testing.T) {
	t.Run("defaults min stock to the configured threshold", func(t *testing.T) {
		svc, m := setupCatalogService(t)
		settings := domain.DefaultSettings()
		settings.LowStockThreshold = 7
		m.settings.EXPECT().Get(gomock.Any()).Return(settings, nil)
		m.productRepo.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, p *domain.Product) error {
				p.ID = domain.NewID()
				return nil
			})

		product, err := svc.Add(context.Background(), &dto.CreateProductRequest{
			Name: " Wireless Headphones ", SKU: "WH-001", Category: "Electronics", Price: "99.99", Cost: "45", Stock: 45,
		})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if product.MinStock != 7 {
			t.Fatalf("expected min stock 7, got %d", product.MinStock)
		}
		if product.Name != "Wireless Headphones" || product.Price != 9999 || product.Cost != 4500 {
			t.Fatalf("unexpected product %+v", product)
		}
		if product.Status != domain.ProductStatusActive {
			t.Fatalf("expected active status, got %s", product.Status)
		}
	})

	t.Run("explicit min stock wins", func(t *testing.T) {
		svc, m := setupCatalogService(t)
		m.settings.EXPECT().Get(gomock.Any()).Return(domain.DefaultSettings(), nil)
		m.productRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)

		product, err := svc.Add(context.Background(), &dto.CreateProductRequest{
			Name: "Mouse Pad XL", SKU: "MP-005", Category: "Accessories", Price: "24.99", Stock: 67, MinStock: intPtr(0),
		})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if product.MinStock != 0 {
			t.Fatalf("expected min stock 0, got %d", product.MinStock)
		}
	})

	t.Run("validation error never reaches the repository", func(t *testing.T) {
		svc, _ := setupCatalogService(t)

		_, err := svc.Add(context.Background(), &dto.CreateProductRequest{Name: "  ", SKU: "X", Category: "Y", Price: "1"})
		if !serviceerrors.IsOfKind(err, serviceerrors.KindValidation) {
			t.Fatalf("expected validation error, got %v", err)
		}
	})

	t.Run("duplicate sku", func(t *testing.T) {
		svc, m := setupCatalogService(t)
		m.settings.EXPECT().Get(gomock.Any()).Return(domain.DefaultSettings(), nil)
		m.productRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(serviceerrors.NewDuplicateSKUError("WH-001"))

		_, err := svc.Add(context.Background(), &dto.CreateProductRequest{Name: "Copy", SKU: "WH-001", Category: "Electronics", Price: "1"})
		if !serviceerrors.IsOfKind(err, serviceerrors.KindDuplicateSKU) {
			t.Fatalf("expected duplicate sku, got %v", err)
		}
	})
}

func TestCatalogService_AdjustStock(t *testing.T) {
	id := domain.NewID()
	product := func(stock int) domain.Product {
		return domain.Product{ID: id, Name: "USB-C Cable", SKU: "UC-002", Stock: stock, MinStock: 10}
	}

	tests := []struct {
		name         string
		oldStock     int
		newStock     int
		alerts       bool
		wantLowStock bool
	}{
		{name: "crossing into low stock alerts", oldStock: 12, newStock: 9, alerts: true, wantLowStock: true},
		{name: "landing exactly on the threshold alerts", oldStock: 11, newStock: 10, alerts: true, wantLowStock: true},
		{name: "already low does not alert again", oldStock: 5, newStock: 4, alerts: true},
		{name: "alerts disabled", oldStock: 12, newStock: 3, alerts: false},
		{name: "restock", oldStock: 3, newStock: 50, alerts: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, m := setupCatalogService(t)
			settings := domain.DefaultSettings()
			settings.LowStockAlerts = tt.alerts
			delta := tt.newStock - tt.oldStock

			m.productRepo.EXPECT().
				AdjustStock(gomock.Any(), id, delta).
				Return(&port.StockChange{Product: product(tt.newStock), OldStock: tt.oldStock}, nil)
			m.settings.EXPECT().Get(gomock.Any()).Return(settings, nil)

			var recorded []domain.Event
			m.events.EXPECT().
				Record(gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, e domain.Event) error {
					recorded = append(recorded, e)
					return nil
				}).
				AnyTimes()

			got, err := svc.AdjustStock(context.Background(), id, delta)
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if got.Stock != tt.newStock {
				t.Fatalf("expected stock %d, got %d", tt.newStock, got.Stock)
			}

			changed, ok := recorded[0].(*domain.StockChangedEvent)
			if !ok || changed.Delta != delta || changed.Reason != StockReasonManual {
				t.Fatalf("unexpected first event %+v", recorded[0])
			}

			lowStock := len(recorded) == 2 && recorded[1].GetName() == "product.low_stock"
			if lowStock != tt.wantLowStock {
				t.Fatalf("expected low stock event %v, got events %v", tt.wantLowStock, recorded)
			}
		})
	}
}

func TestCatalogService_AdjustStockRejected(t *testing.T) {
	svc, m := setupCatalogService(t)
	id := domain.NewID()

	m.productRepo.EXPECT().
		AdjustStock(gomock.Any(), id, -10).
		Return(nil, serviceerrors.NewInsufficientStockError("USB-C Cable", 2, 10))

	_, err := svc.AdjustStock(context.Background(), id, -10)
	if !serviceerrors.IsOfKind(err, serviceerrors.KindInsufficientStock) {
		t.Fatalf("expected insufficient stock, got %v", err)
	}
}

func TestCatalogService_EventFailureDoesNotFailAdjustment(t *testing.T) {
	svc, m := setupCatalogService(t)
	id := domain.NewID()

	m.productRepo.EXPECT().
		AdjustStock(gomock.Any(), id, 1).
		Return(&port.StockChange{Product: domain.Product{ID: id, Stock: 30, MinStock: 10}, OldStock: 29}, nil)
	m.settings.EXPECT().Get(gomock.Any()).Return(domain.Settings{}, errors.New("settings unavailable"))
	m.events.EXPECT().Record(gomock.Any(), gomock.Any()).Return(errors.New("outbox full"))

	if _, err := svc.AdjustStock(context.Background(), id, 1); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
}

func TestCatalogService_Update(t *testing.T) {
	id := domain.NewID()
	stored := func() *domain.Product {
		return &domain.Product{ID: id, Name: "Laptop Stand", SKU: "LS-003", Category: "Accessories", Price: 4999, Stock: 32, MinStock: 10, Status: domain.ProductStatusActive}
	}

	t.Run("patches only provided fields", func(t *testing.T) {
		svc, m := setupCatalogService(t)
		m.productRepo.EXPECT().GetByID(gomock.Any(), id).Return(stored(), nil)
		m.productRepo.EXPECT().
			Update(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, p *domain.Product) error {
				if p.Name != "Laptop Stand" || p.Price != 5499 || p.Status != domain.ProductStatusInactive {
					t.Fatalf("unexpected patched product %+v", p)
				}
				return nil
			})

		got, err := svc.Update(context.Background(), id, &dto.UpdateProductRequest{Price: strPtr("54.99"), Status: strPtr("inactive")})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if got.Stock != 32 {
			t.Fatalf("stock should be untouched, got %d", got.Stock)
		}
	})

	t.Run("stock change is recorded", func(t *testing.T) {
		svc, m := setupCatalogService(t)
		m.productRepo.EXPECT().GetByID(gomock.Any(), id).Return(stored(), nil)
		m.productRepo.EXPECT().Update(gomock.Any(), gomock.Any()).Return(nil)
		m.settings.EXPECT().Get(gomock.Any()).Return(domain.DefaultSettings(), nil)
		m.events.EXPECT().
			Record(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, e domain.Event) error {
				changed := e.(*domain.StockChangedEvent)
				if changed.OldStock != 32 || changed.NewStock != 40 || changed.Reason != StockReasonUpdate {
					t.Fatalf("unexpected event %+v", changed)
				}
				return nil
			})

		if _, err := svc.Update(context.Background(), id, &dto.UpdateProductRequest{Stock: intPtr(40)}); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
	})

	t.Run("not found", func(t *testing.T) {
		svc, m := setupCatalogService(t)
		m.productRepo.EXPECT().GetByID(gomock.Any(), id).Return(nil, serviceerrors.NewNotFoundError("product not found"))

		_, err := svc.Update(context.Background(), id, &dto.UpdateProductRequest{Name: strPtr("New")})
		if !serviceerrors.IsOfKind(err, serviceerrors.KindNotFound) {
			t.Fatalf("expected not found, got %v", err)
		}
	})

	t.Run("negative stock is rejected", func(t *testing.T) {
		svc, _ := setupCatalogService(t)

		_, err := svc.Update(context.Background(), id, &dto.UpdateProductRequest{Stock: intPtr(-1)})
		if !serviceerrors.IsOfKind(err, serviceerrors.KindValidation) {
			t.Fatalf("expected validation error, got %v", err)
		}
	})

	t.Run("blank name is rejected", func(t *testing.T) {
		svc, _ := setupCatalogService(t)

		_, err := svc.Update(context.Background(), id, &dto.UpdateProductRequest{Name: strPtr("   ")})
		if !serviceerrors.IsOfKind(err, serviceerrors.KindValidation) {
			t.Fatalf("expected validation error, got %v", err)
		}
	})

	t.Run("duplicate sku", func(t *testing.T) {
		svc, m := setupCatalogService(t)
		m.productRepo.EXPECT().GetByID(gomock.Any(), id).Return(stored(), nil)
		m.productRepo.EXPECT().Update(gomock.Any(), gomock.Any()).Return(serviceerrors.NewDuplicateSKUError("WH-001"))

		_, err := svc.Update(context.Background(), id, &dto.UpdateProductRequest{SKU: strPtr("WH-001")})
		if !serviceerrors.IsOfKind(err, serviceerrors.KindDuplicateSKU) {
			t.Fatalf("expected duplicate sku, got %v", err)
		}
	})
}

func TestCatalogService_Remove(t *testing.T) {
	svc, m := setupCatalogService(t)
	id := domain.NewID()

	m.productRepo.EXPECT().Delete(gomock.Any(), id).Return(nil)
	if err := svc.Remove(context.Background(), id); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	m.productRepo.EXPECT().Delete(gomock.Any(), id).Return(serviceerrors.NewNotFoundError("product not found"))
	if err := svc.Remove(context.Background(), id); !serviceerrors.IsOfKind(err, serviceerrors.KindNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestCatalogService_IsLowStock(t *testing.T) {
	svc, _ := setupCatalogService(t)
	if !svc.IsLowStock(&domain.Product{Stock: 10, MinStock: 10}) {
		t.Fatal("stock equal to the minimum is low")
	}
	if svc.IsLowStock(&domain.Product{Stock: 11, MinStock: 10}) {
		t.Fatal("stock above the minimum is not low")
	}
}
