package service

import (
	"context"
	"strings"
	"time"

	"github.com/rafaelleal24/stockledger/internal/core/domain"
	"github.com/rafaelleal24/stockledger/internal/core/dto"
	"github.com/rafaelleal24/stockledger/internal/core/logger"
	"github.com/rafaelleal24/stockledger/internal/core/port"
	"github.com/rafaelleal24/stockledger/internal/core/serviceerrors"
)

const (
	StockReasonManual        = "manual_adjustment"
	StockReasonUpdate        = "catalog_update"
	StockReasonSale          = "sale"
	StockReasonSaleCancelled = "sale_cancelled"
	StockReasonReceipt       = "purchase_order_received"
)

type CatalogService struct {
	productRepository port.ProductPort
	settings          port.SettingsPort
	events            port.EventSink
	txManager         port.TransactionManager
}

func NewCatalogService(
	productRepository port.ProductPort,
	settings port.SettingsPort,
	events port.EventSink,
	txManager port.TransactionManager,
) *CatalogService {
	return &CatalogService{
		productRepository: productRepository,
		settings:          settings,
		events:            events,
		txManager:         txManager,
	}
}

func (s *CatalogService) currentSettings(ctx context.Context) domain.Settings {
	settings, err := s.settings.Get(ctx)
	if err != nil {
		logger.Error(ctx, "settings: load failed, using defaults", err, nil)
		return domain.DefaultSettings()
	}
	return settings
}

func (s *CatalogService) Add(ctx context.Context, request *dto.CreateProductRequest) (*domain.Product, error) {
	request.Name = strings.TrimSpace(request.Name)
	request.SKU = strings.TrimSpace(request.SKU)
	request.Category = strings.TrimSpace(request.Category)
	if err := dto.Validate(request); err != nil {
		return nil, err
	}

	price, _ := domain.ParseAmount(request.Price)
	cost := domain.Amount(0)
	if request.Cost != "" {
		cost, _ = domain.ParseAmount(request.Cost)
	}

	minStock := s.currentSettings(ctx).LowStockThreshold
	if request.MinStock != nil {
		minStock = *request.MinStock
	}

	product := domain.NewProduct(request.Name, request.SKU, request.Category, price, cost, request.Stock, minStock)
	if err := s.productRepository.Create(ctx, product); err != nil {
		logger.Error(ctx, "product: create failed", err, map[string]any{
			"name":     request.Name,
			"sku":      request.SKU,
			"category": request.Category,
		})
		return nil, err
	}

	logger.Info(ctx, "Product created", map[string]any{
		"product_id": product.ID,
		"sku":        product.SKU,
	})
	return product, nil
}

func toProductPatch(request *dto.UpdateProductRequest) domain.ProductPatch {
	patch := domain.ProductPatch{
		Stock:    request.Stock,
		MinStock: request.MinStock,
	}
	if request.Name != nil {
		name := strings.TrimSpace(*request.Name)
		patch.Name = &name
	}
	if request.SKU != nil {
		sku := strings.TrimSpace(*request.SKU)
		patch.SKU = &sku
	}
	if request.Category != nil {
		category := strings.TrimSpace(*request.Category)
		patch.Category = &category
	}
	if request.Price != nil {
		price, _ := domain.ParseAmount(*request.Price)
		patch.Price = &price
	}
	if request.Cost != nil {
		cost, _ := domain.ParseAmount(*request.Cost)
		patch.Cost = &cost
	}
	if request.Status != nil {
		status := domain.ProductStatus(*request.Status)
		patch.Status = &status
	}
	return patch
}

func (s *CatalogService) Update(ctx context.Context, id domain.ID, request *dto.UpdateProductRequest) (*domain.Product, error) {
	if err := dto.Validate(request); err != nil {
		return nil, err
	}
	patch := toProductPatch(request)
	if (patch.Name != nil && *patch.Name == "") || (patch.SKU != nil && *patch.SKU == "") || (patch.Category != nil && *patch.Category == "") {
		return nil, serviceerrors.NewValidationError("name, sku and category cannot be blank")
	}

	var (
		product  *domain.Product
		oldStock int
	)
	err := s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		current, err := s.productRepository.GetByID(txCtx, id)
		if err != nil {
			return err
		}
		oldStock = current.Stock
		patch.Apply(current)
		if err := s.productRepository.Update(txCtx, current); err != nil {
			return err
		}
		product = current
		return nil
	})
	if err != nil {
		logger.Error(ctx, "product: update failed", err, map[string]any{"product_id": id})
		return nil, err
	}

	if product.Stock != oldStock {
		s.recordStockChanges(ctx, []port.StockChange{{Product: *product, OldStock: oldStock}}, StockReasonUpdate, "")
	}

	logger.Info(ctx, "Product updated", map[string]any{"product_id": id})
	return product, nil
}

// Remove hard-deletes the product. Sales and purchase orders keep their item snapshots.
func (s *CatalogService) Remove(ctx context.Context, id domain.ID) error {
	if err := s.productRepository.Delete(ctx, id); err != nil {
		return err
	}
	logger.Info(ctx, "Product removed", map[string]any{"product_id": id})
	return nil
}

// AdjustStock applies a signed delta and returns the product with its new stock.
// It shares the transaction with Update so a concurrent patch cannot write back a stale stock.
func (s *CatalogService) AdjustStock(ctx context.Context, id domain.ID, delta int) (*domain.Product, error) {
	var change *port.StockChange
	err := s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		var err error
		change, err = s.productRepository.AdjustStock(txCtx, id, delta)
		return err
	})
	if err != nil {
		logger.Warn(ctx, "product: stock adjustment rejected", map[string]any{
			"product_id": id,
			"delta":      delta,
			"error":      err.Error(),
		})
		return nil, err
	}

	s.recordStockChanges(ctx, []port.StockChange{*change}, StockReasonManual, "")
	product := change.Product
	return &product, nil
}

func (s *CatalogService) IsLowStock(product *domain.Product) bool {
	return product.IsLowStock()
}

func (s *CatalogService) Get(ctx context.Context, id domain.ID) (*domain.Product, error) {
	return s.productRepository.GetByID(ctx, id)
}

func (s *CatalogService) List(ctx context.Context) ([]*domain.Product, error) {
	return s.productRepository.GetAll(ctx)
}

// recordStockChanges emits one stock_changed event per change and a low_stock
// event for every product that crossed its threshold with this change.
func (s *CatalogService) recordStockChanges(ctx context.Context, changes []port.StockChange, reason, reference string) {
	if len(changes) == 0 {
		return
	}

	alerts := s.currentSettings(ctx).LowStockAlerts
	now := time.Now()

	for _, change := range changes {
		p := change.Product
		recordEvent(ctx, s.events, &domain.StockChangedEvent{
			ProductID: p.ID,
			SKU:       p.SKU,
			Delta:     p.Stock - change.OldStock,
			OldStock:  change.OldStock,
			NewStock:  p.Stock,
			Reason:    reason,
			Reference: reference,
			ChangedAt: now,
		})

		if alerts && p.IsLowStock() && change.OldStock > p.MinStock {
			logger.Warn(ctx, "Product reached low stock", map[string]any{
				"product_id": p.ID,
				"sku":        p.SKU,
				"stock":      p.Stock,
				"min_stock":  p.MinStock,
			})
			recordEvent(ctx, s.events, &domain.LowStockEvent{
				ProductID: p.ID,
				Name:      p.Name,
				SKU:       p.SKU,
				Stock:     p.Stock,
				MinStock:  p.MinStock,
			})
		}
	}
}
