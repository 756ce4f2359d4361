package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rafaelleal24/stockledger/internal/core/domain"
	"github.com/rafaelleal24/stockledger/internal/core/dto"
	"github.com/rafaelleal24/stockledger/internal/core/port"
	"github.com/rafaelleal24/stockledger/internal/core/port/mock"
	"github.com/rafaelleal24/stockledger/internal/core/serviceerrors"
	"github.com/rafaelleal24/stockledger/internal/core/utils"
	"go.uber.org/mock/gomock"
)

type orderBookMocks struct {
	orderRepo   *mock.MockOrderPort
	productRepo *mock.MockProductPort
	settings    *mock.MockSettingsPort
	events      *mock.MockEventSink
	txManager   *mock.MockTransactionManager
	saleCache   *mock.MockCachePort[IdempotencyEntry[domain.Sale]]
	poCache     *mock.MockCachePort[IdempotencyEntry[domain.PurchaseOrder]]
}

func setupOrderBookService(t *testing.T) (*OrderBookService, *orderBookMocks) {
	ctrl := gomock.NewController(t)
	m := &orderBookMocks{
		orderRepo:   mock.NewMockOrderPort(ctrl),
		productRepo: mock.NewMockProductPort(ctrl),
		settings:    mock.NewMockSettingsPort(ctrl),
		events:      mock.NewMockEventSink(ctrl),
		txManager:   mock.NewMockTransactionManager(ctrl),
		saleCache:   mock.NewMockCachePort[IdempotencyEntry[domain.Sale]](ctrl),
		poCache:     mock.NewMockCachePort[IdempotencyEntry[domain.PurchaseOrder]](ctrl),
	}
	m.txManager.EXPECT().
		WithTransaction(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, fn func(context.Context) error) error {
			return fn(ctx)
		}).
		AnyTimes()
	m.settings.EXPECT().Get(gomock.Any()).Return(domain.DefaultSettings(), nil).AnyTimes()
	m.events.EXPECT().Record(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	catalog := NewCatalogService(m.productRepo, m.settings, m.events, m.txManager)
	saleIdem := NewIdempotencyService[domain.Sale](m.saleCache, 15*time.Minute, 10*time.Millisecond, 100*time.Millisecond)
	poIdem := NewIdempotencyService[domain.PurchaseOrder](m.poCache, 15*time.Minute, 10*time.Millisecond, 100*time.Millisecond)

	return NewOrderBookService(m.orderRepo, m.productRepo, catalog, m.events, m.txManager, saleIdem, poIdem), m
}

var (
	headphonesID = domain.ID("8f3c1f8e-6f7a-4c34-9b1e-1c2f0f0a0001")
	cableID      = domain.ID("8f3c1f8e-6f7a-4c34-9b1e-1c2f0f0a0002")
)

func headphones(stock int) *domain.Product {
	return &domain.Product{ID: headphonesID, Name: "Wireless Headphones", SKU: "WH-001", Price: 9999, Cost: 4500, Stock: stock, MinStock: 10}
}

func cable(stock int) *domain.Product {
	return &domain.Product{ID: cableID, Name: "USB-C Cable", SKU: "UC-002", Price: 1299, Cost: 550, Stock: stock, MinStock: 10}
}

func TestMergeLines(t *testing.T) {
	merged := mergeLines([]dto.OrderItem{
		{ProductID: "a", Quantity: 1},
		{ProductID: "b", Quantity: 2},
		{ProductID: "a", Quantity: 3},
	})
	if len(merged) != 2 || merged[0].ProductID != "a" || merged[0].Quantity != 4 || merged[1].Quantity != 2 {
		t.Fatalf("unexpected merge %+v", merged)
	}
}

func TestOrderBookService_CreateSale(t *testing.T) {
	t.Run("snapshots prices, deducts stock and numbers the sale", func(t *testing.T) {
		svc, m := setupOrderBookService(t)

		m.productRepo.EXPECT().GetByID(gomock.Any(), headphonesID).Return(headphones(45), nil)
		m.productRepo.EXPECT().GetByID(gomock.Any(), cableID).Return(cable(5), nil)
		m.productRepo.EXPECT().
			ApplyStockDeltas(gomock.Any(), []domain.StockDelta{{ProductID: headphonesID, Delta: -2}, {ProductID: cableID, Delta: -3}}).
			Return([]port.StockChange{
				{Product: *headphones(43), OldStock: 45},
				{Product: *cable(2), OldStock: 5},
			}, nil)
		m.orderRepo.EXPECT().NextSaleNumber(gomock.Any()).Return("SAL-004", nil)
		m.orderRepo.EXPECT().CreateSale(gomock.Any(), gomock.Any()).Return(nil)

		sale, err := svc.CreateSale(context.Background(), "", &dto.CreateSaleRequest{
			Customer: "Emma Wilson",
			Items: []dto.OrderItem{
				{ProductID: headphonesID, Quantity: 1},
				{ProductID: cableID, Quantity: 3},
				{ProductID: headphonesID, Quantity: 1},
			},
		})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if sale.Number != "SAL-004" || sale.Status != domain.SaleStatusCompleted {
			t.Fatalf("unexpected sale %+v", sale)
		}
		if len(sale.Items) != 2 || sale.Items[0].Quantity != 2 {
			t.Fatalf("expected merged items, got %+v", sale.Items)
		}
		if sale.Total != 2*9999+3*1299 {
			t.Fatalf("unexpected total %d", sale.Total)
		}
	})

	t.Run("insufficient stock mutates nothing", func(t *testing.T) {
		svc, m := setupOrderBookService(t)

		m.productRepo.EXPECT().GetByID(gomock.Any(), headphonesID).Return(headphones(45), nil)
		m.productRepo.EXPECT().GetByID(gomock.Any(), cableID).Return(cable(2), nil)

		_, err := svc.CreateSale(context.Background(), "", &dto.CreateSaleRequest{
			Customer: "Emma Wilson",
			Items: []dto.OrderItem{
				{ProductID: headphonesID, Quantity: 1},
				{ProductID: cableID, Quantity: 10},
			},
		})
		if !serviceerrors.IsOfKind(err, serviceerrors.KindInsufficientStock) {
			t.Fatalf("expected insufficient stock, got %v", err)
		}
	})

	t.Run("missing product is reported before stock", func(t *testing.T) {
		svc, m := setupOrderBookService(t)
		missing := domain.NewID()

		m.productRepo.EXPECT().GetByID(gomock.Any(), cableID).Return(cable(0), nil)
		m.productRepo.EXPECT().GetByID(gomock.Any(), missing).Return(nil, serviceerrors.NewNotFoundError("product not found"))

		_, err := svc.CreateSale(context.Background(), "", &dto.CreateSaleRequest{
			Customer: "Emma Wilson",
			Items: []dto.OrderItem{
				{ProductID: cableID, Quantity: 10},
				{ProductID: missing, Quantity: 1},
			},
		})
		if !serviceerrors.IsOfKind(err, serviceerrors.KindNotFound) {
			t.Fatalf("expected not found, got %v", err)
		}
	})

	t.Run("empty customer", func(t *testing.T) {
		svc, _ := setupOrderBookService(t)

		_, err := svc.CreateSale(context.Background(), "", &dto.CreateSaleRequest{
			Customer: "   ",
			Items:    []dto.OrderItem{{ProductID: cableID, Quantity: 1}},
		})
		if !serviceerrors.IsOfKind(err, serviceerrors.KindValidation) {
			t.Fatalf("expected validation error, got %v", err)
		}
	})

	t.Run("store failure restores stock", func(t *testing.T) {
		svc, m := setupOrderBookService(t)

		m.productRepo.EXPECT().GetByID(gomock.Any(), cableID).Return(cable(5), nil)
		gomock.InOrder(
			m.productRepo.EXPECT().
				ApplyStockDeltas(gomock.Any(), []domain.StockDelta{{ProductID: cableID, Delta: -1}}).
				Return([]port.StockChange{{Product: *cable(4), OldStock: 5}}, nil),
			m.productRepo.EXPECT().
				ApplyStockDeltas(gomock.Any(), []domain.StockDelta{{ProductID: cableID, Delta: 1}}).
				Return([]port.StockChange{{Product: *cable(5), OldStock: 4}}, nil),
		)
		m.orderRepo.EXPECT().NextSaleNumber(gomock.Any()).Return("SAL-004", nil)
		m.orderRepo.EXPECT().CreateSale(gomock.Any(), gomock.Any()).Return(errors.New("store unavailable"))

		_, err := svc.CreateSale(context.Background(), "", &dto.CreateSaleRequest{
			Customer: "Emma Wilson",
			Items:    []dto.OrderItem{{ProductID: cableID, Quantity: 1}},
		})
		if err == nil {
			t.Fatal("expected error, got nil")
		}
	})

	t.Run("idempotent replay returns the stored sale", func(t *testing.T) {
		svc, m := setupOrderBookService(t)
		stored := &domain.Sale{ID: domain.NewID(), Number: "SAL-009"}

		m.saleCache.EXPECT().SetNX(gomock.Any(), "key-1", gomock.Any(), 15*time.Minute).Return(false, nil)
		m.saleCache.EXPECT().
			Get(gomock.Any(), "key-1").
			DoAndReturn(func(_ context.Context, _ string) (*IdempotencyEntry[domain.Sale], error) {
				request := &dto.CreateSaleRequest{Customer: "Emma Wilson", Items: []dto.OrderItem{{ProductID: cableID, Quantity: 1}}}
				return &IdempotencyEntry[domain.Sale]{Status: IdempotencyCompleted, PayloadHash: utils.HashJSON(request), Result: stored}, nil
			})

		sale, err := svc.CreateSale(context.Background(), "key-1", &dto.CreateSaleRequest{
			Customer: "Emma Wilson",
			Items:    []dto.OrderItem{{ProductID: cableID, Quantity: 1}},
		})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if sale.Number != "SAL-009" {
			t.Fatalf("expected stored sale, got %+v", sale)
		}
	})
}

func TestOrderBookService_TransitionSaleStatus(t *testing.T) {
	saleID := domain.NewID()
	pendingSale := func() *domain.Sale {
		return &domain.Sale{
			ID: saleID, Number: "SAL-002", Status: domain.SaleStatusPending,
			Items: []domain.SaleItem{{ProductID: cableID, ProductName: "USB-C Cable", Quantity: 3, UnitPrice: 1299}},
		}
	}

	t.Run("cancel restores stock", func(t *testing.T) {
		svc, m := setupOrderBookService(t)
		cancelled := pendingSale()
		cancelled.Status = domain.SaleStatusCancelled

		m.orderRepo.EXPECT().GetSaleByID(gomock.Any(), saleID).Return(pendingSale(), nil)
		m.orderRepo.EXPECT().UpdateSaleStatus(gomock.Any(), saleID, domain.SaleStatusPending, domain.SaleStatusCancelled).Return(cancelled, nil)
		m.productRepo.EXPECT().GetByID(gomock.Any(), cableID).Return(cable(2), nil)
		m.productRepo.EXPECT().
			ApplyStockDeltas(gomock.Any(), []domain.StockDelta{{ProductID: cableID, Delta: 3}}).
			Return([]port.StockChange{{Product: *cable(5), OldStock: 2}}, nil)

		sale, err := svc.TransitionSaleStatus(context.Background(), saleID, "cancelled")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if sale.Status != domain.SaleStatusCancelled {
			t.Fatalf("expected cancelled, got %s", sale.Status)
		}
	})

	t.Run("complete leaves stock alone", func(t *testing.T) {
		svc, m := setupOrderBookService(t)
		completed := pendingSale()
		completed.Status = domain.SaleStatusCompleted

		m.orderRepo.EXPECT().GetSaleByID(gomock.Any(), saleID).Return(pendingSale(), nil)
		m.orderRepo.EXPECT().UpdateSaleStatus(gomock.Any(), saleID, domain.SaleStatusPending, domain.SaleStatusCompleted).Return(completed, nil)

		if _, err := svc.TransitionSaleStatus(context.Background(), saleID, "completed"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
	})

	t.Run("terminal status cannot move", func(t *testing.T) {
		svc, m := setupOrderBookService(t)
		completed := pendingSale()
		completed.Status = domain.SaleStatusCompleted
		m.orderRepo.EXPECT().GetSaleByID(gomock.Any(), saleID).Return(completed, nil)

		_, err := svc.TransitionSaleStatus(context.Background(), saleID, "cancelled")
		if !serviceerrors.IsOfKind(err, serviceerrors.KindInvalidTransition) {
			t.Fatalf("expected invalid transition, got %v", err)
		}
	})

	t.Run("unknown status", func(t *testing.T) {
		svc, _ := setupOrderBookService(t)

		_, err := svc.TransitionSaleStatus(context.Background(), saleID, "refunded")
		if !serviceerrors.IsOfKind(err, serviceerrors.KindValidation) {
			t.Fatalf("expected validation error, got %v", err)
		}
	})

	t.Run("stock failure reverts the status", func(t *testing.T) {
		svc, m := setupOrderBookService(t)
		cancelled := pendingSale()
		cancelled.Status = domain.SaleStatusCancelled

		m.orderRepo.EXPECT().GetSaleByID(gomock.Any(), saleID).Return(pendingSale(), nil)
		m.orderRepo.EXPECT().UpdateSaleStatus(gomock.Any(), saleID, domain.SaleStatusPending, domain.SaleStatusCancelled).Return(cancelled, nil)
		m.productRepo.EXPECT().GetByID(gomock.Any(), cableID).Return(cable(2), nil)
		m.productRepo.EXPECT().ApplyStockDeltas(gomock.Any(), gomock.Any()).Return(nil, errors.New("store unavailable"))
		m.orderRepo.EXPECT().UpdateSaleStatus(gomock.Any(), saleID, domain.SaleStatusCancelled, domain.SaleStatusPending).Return(pendingSale(), nil)

		if _, err := svc.TransitionSaleStatus(context.Background(), saleID, "cancelled"); err == nil {
			t.Fatal("expected error, got nil")
		}
	})
}

func TestOrderBookService_CreatePurchaseOrder(t *testing.T) {
	svc, m := setupOrderBookService(t)

	m.productRepo.EXPECT().GetByID(gomock.Any(), headphonesID).Return(headphones(45), nil)
	m.productRepo.EXPECT().GetByID(gomock.Any(), cableID).Return(cable(5), nil)
	m.orderRepo.EXPECT().NextPurchaseOrderNumber(gomock.Any()).Return("PO-004", nil)
	m.orderRepo.EXPECT().CreatePurchaseOrder(gomock.Any(), gomock.Any()).Return(nil)

	order, err := svc.CreatePurchaseOrder(context.Background(), "", &dto.CreatePurchaseOrderRequest{
		Supplier: "TechSupply Co.",
		Items: []dto.OrderItem{
			{ProductID: headphonesID, Quantity: 50},
			{ProductID: cableID, Quantity: 100},
		},
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if order.Status != domain.PurchaseOrderStatusPending || order.Number != "PO-004" {
		t.Fatalf("unexpected order %+v", order)
	}
	if order.Items[0].UnitCost != 4500 || order.Items[1].UnitCost != 550 {
		t.Fatalf("expected unit cost snapshot, got %+v", order.Items)
	}
	if order.Total != 50*4500+100*550 {
		t.Fatalf("unexpected total %d", order.Total)
	}
}

func TestOrderBookService_TransitionPurchaseOrderStatus(t *testing.T) {
	poID := domain.NewID()
	po := func(status domain.PurchaseOrderStatus) *domain.PurchaseOrder {
		return &domain.PurchaseOrder{
			ID: poID, Number: "PO-001", Status: status,
			Items: []domain.PurchaseItem{{ProductID: headphonesID, ProductName: "Wireless Headphones", Quantity: 50, UnitCost: 4500}},
		}
	}

	tests := []struct {
		name     string
		from     domain.PurchaseOrderStatus
		to       string
		wantKind *serviceerrors.ErrorKind
	}{
		{name: "skip ordered", from: domain.PurchaseOrderStatusPending, to: "received", wantKind: errKind(serviceerrors.KindInvalidTransition)},
		{name: "backwards", from: domain.PurchaseOrderStatusOrdered, to: "pending", wantKind: errKind(serviceerrors.KindInvalidTransition)},
		{name: "receive twice", from: domain.PurchaseOrderStatusReceived, to: "received", wantKind: errKind(serviceerrors.KindInvalidTransition)},
		{name: "unknown", from: domain.PurchaseOrderStatusPending, to: "shipped", wantKind: errKind(serviceerrors.KindValidation)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, m := setupOrderBookService(t)
			m.orderRepo.EXPECT().GetPurchaseOrderByID(gomock.Any(), poID).Return(po(tt.from), nil).MaxTimes(1)

			_, err := svc.TransitionPurchaseOrderStatus(context.Background(), poID, tt.to)
			if !serviceerrors.IsOfKind(err, *tt.wantKind) {
				t.Fatalf("expected %s, got %v", tt.wantKind, err)
			}
		})
	}

	t.Run("receive applies stock", func(t *testing.T) {
		svc, m := setupOrderBookService(t)
		m.orderRepo.EXPECT().GetPurchaseOrderByID(gomock.Any(), poID).Return(po(domain.PurchaseOrderStatusOrdered), nil)
		m.orderRepo.EXPECT().
			UpdatePurchaseOrderStatus(gomock.Any(), poID, domain.PurchaseOrderStatusOrdered, domain.PurchaseOrderStatusReceived).
			Return(po(domain.PurchaseOrderStatusReceived), nil)
		m.productRepo.EXPECT().GetByID(gomock.Any(), headphonesID).Return(headphones(45), nil)
		m.productRepo.EXPECT().
			ApplyStockDeltas(gomock.Any(), []domain.StockDelta{{ProductID: headphonesID, Delta: 50}}).
			Return([]port.StockChange{{Product: *headphones(95), OldStock: 45}}, nil)

		order, err := svc.TransitionPurchaseOrderStatus(context.Background(), poID, "received")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if order.Status != domain.PurchaseOrderStatusReceived {
			t.Fatalf("expected received, got %s", order.Status)
		}
	})

	t.Run("removed product is skipped on receipt", func(t *testing.T) {
		svc, m := setupOrderBookService(t)
		m.orderRepo.EXPECT().GetPurchaseOrderByID(gomock.Any(), poID).Return(po(domain.PurchaseOrderStatusOrdered), nil)
		m.orderRepo.EXPECT().
			UpdatePurchaseOrderStatus(gomock.Any(), poID, domain.PurchaseOrderStatusOrdered, domain.PurchaseOrderStatusReceived).
			Return(po(domain.PurchaseOrderStatusReceived), nil)
		m.productRepo.EXPECT().GetByID(gomock.Any(), headphonesID).Return(nil, serviceerrors.NewNotFoundError("product not found"))
		m.productRepo.EXPECT().ApplyStockDeltas(gomock.Any(), []domain.StockDelta{}).Return([]port.StockChange{}, nil)

		if _, err := svc.TransitionPurchaseOrderStatus(context.Background(), poID, "received"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
	})
}
