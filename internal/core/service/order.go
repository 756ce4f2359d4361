package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rafaelleal24/stockledger/internal/core/domain"
	"github.com/rafaelleal24/stockledger/internal/core/dto"
	"github.com/rafaelleal24/stockledger/internal/core/logger"
	"github.com/rafaelleal24/stockledger/internal/core/port"
	"github.com/rafaelleal24/stockledger/internal/core/serviceerrors"
)

type OrderBookService struct {
	orderRepository     port.OrderPort
	productRepository   port.ProductPort
	catalog             *CatalogService
	events              port.EventSink
	txManager           port.TransactionManager
	saleIdempotency     *IdempotencyService[domain.Sale]
	purchaseIdempotency *IdempotencyService[domain.PurchaseOrder]
}

func NewOrderBookService(
	orderRepository port.OrderPort,
	productRepository port.ProductPort,
	catalog *CatalogService,
	events port.EventSink,
	txManager port.TransactionManager,
	saleIdempotency *IdempotencyService[domain.Sale],
	purchaseIdempotency *IdempotencyService[domain.PurchaseOrder],
) *OrderBookService {
	return &OrderBookService{
		orderRepository:     orderRepository,
		productRepository:   productRepository,
		catalog:             catalog,
		events:              events,
		txManager:           txManager,
		saleIdempotency:     saleIdempotency,
		purchaseIdempotency: purchaseIdempotency,
	}
}

// mergeLines sums the quantities of repeated products, keeping each product at its first position.
func mergeLines(items []dto.OrderItem) []dto.OrderItem {
	merged := make([]dto.OrderItem, 0, len(items))
	index := make(map[domain.ID]int, len(items))
	for _, item := range items {
		if i, ok := index[item.ProductID]; ok {
			merged[i].Quantity += item.Quantity
			continue
		}
		index[item.ProductID] = len(merged)
		merged = append(merged, item)
	}
	return merged
}

// loadProducts resolves every line before anything else is checked.
func (s *OrderBookService) loadProducts(ctx context.Context, lines []dto.OrderItem) ([]*domain.Product, error) {
	products := make([]*domain.Product, len(lines))
	for i, line := range lines {
		product, err := s.productRepository.GetByID(ctx, line.ProductID)
		if err != nil {
			return nil, err
		}
		products[i] = product
	}
	return products, nil
}

// restoreStock undoes deltas already applied inside a unit of work that failed later.
func (s *OrderBookService) restoreStock(ctx context.Context, deltas []domain.StockDelta) {
	undo := make([]domain.StockDelta, len(deltas))
	for i, d := range deltas {
		undo[i] = domain.StockDelta{ProductID: d.ProductID, Delta: -d.Delta}
	}
	if _, err := s.productRepository.ApplyStockDeltas(ctx, undo); err != nil {
		logger.Error(ctx, "stock: compensation failed", err, map[string]any{
			"deltas": len(undo),
		})
	}
}

// existingDeltas drops deltas for products removed from the catalog since the order was placed.
func (s *OrderBookService) existingDeltas(ctx context.Context, deltas []domain.StockDelta, reference string) ([]domain.StockDelta, error) {
	kept := make([]domain.StockDelta, 0, len(deltas))
	for _, d := range deltas {
		if _, err := s.productRepository.GetByID(ctx, d.ProductID); err != nil {
			if serviceerrors.IsOfKind(err, serviceerrors.KindNotFound) {
				logger.Warn(ctx, "stock: product no longer in catalog, skipping", map[string]any{
					"product_id": d.ProductID,
					"reference":  reference,
				})
				continue
			}
			return nil, err
		}
		kept = append(kept, d)
	}
	return kept, nil
}

func (s *OrderBookService) CreateSale(ctx context.Context, idempotencyKey string, request *dto.CreateSaleRequest) (*domain.Sale, error) {
	return s.saleIdempotency.Run(ctx, idempotencyKey, request, func(ctx context.Context) (*domain.Sale, error) {
		return s.processSale(ctx, request)
	})
}

func (s *OrderBookService) processSale(ctx context.Context, request *dto.CreateSaleRequest) (*domain.Sale, error) {
	request.Customer = strings.TrimSpace(request.Customer)
	if err := dto.Validate(request); err != nil {
		return nil, err
	}

	status := request.Status
	if status == "" {
		status = domain.SaleStatusCompleted
	}
	lines := mergeLines(request.Items)

	var (
		sale    *domain.Sale
		changes []port.StockChange
	)
	err := s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		products, err := s.loadProducts(txCtx, lines)
		if err != nil {
			return err
		}

		items := make([]domain.SaleItem, len(lines))
		for i, line := range lines {
			product := products[i]
			if line.Quantity > product.Stock {
				return serviceerrors.NewInsufficientStockError(product.Name, product.Stock, line.Quantity)
			}
			items[i] = domain.SaleItem{
				ProductID:   product.ID,
				ProductName: product.Name,
				Quantity:    line.Quantity,
				UnitPrice:   product.Price,
			}
		}

		sale = domain.NewSale(request.Customer, status, items)
		deltas := sale.StockDeltas(-1)

		changes, err = s.productRepository.ApplyStockDeltas(txCtx, deltas)
		if err != nil {
			return err
		}

		number, err := s.orderRepository.NextSaleNumber(txCtx)
		if err != nil {
			s.restoreStock(txCtx, deltas)
			return err
		}
		sale.Number = number

		if err := s.orderRepository.CreateSale(txCtx, sale); err != nil {
			s.restoreStock(txCtx, deltas)
			return err
		}
		return nil
	})
	if err != nil {
		logger.Error(ctx, "transaction: create sale failed", err, map[string]any{
			"customer": request.Customer,
			"items":    len(lines),
		})
		return nil, err
	}

	s.catalog.recordStockChanges(ctx, changes, StockReasonSale, sale.Number)
	recordEvent(ctx, s.events, &domain.SaleCreatedEvent{
		SaleID:    sale.ID,
		Number:    sale.Number,
		Customer:  sale.Customer,
		Total:     sale.Total,
		Status:    sale.Status,
		CreatedAt: sale.CreatedAt,
	})

	logger.Info(ctx, "Sale created", map[string]any{
		"sale_id": sale.ID,
		"number":  sale.Number,
		"total":   sale.Total.Fixed(),
	})
	return sale, nil
}

// TransitionSaleStatus moves a sale along pending -> completed | cancelled.
// Cancelling returns the sold quantities to stock.
func (s *OrderBookService) TransitionSaleStatus(ctx context.Context, id domain.ID, status string) (*domain.Sale, error) {
	to := domain.SaleStatus(status)
	if !to.IsValid() {
		return nil, serviceerrors.NewValidationError(fmt.Sprintf("invalid sale status %q", status))
	}

	var (
		sale    *domain.Sale
		from    domain.SaleStatus
		changes []port.StockChange
	)
	err := s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		current, err := s.orderRepository.GetSaleByID(txCtx, id)
		if err != nil {
			return err
		}
		from = current.Status
		if !from.CanTransitionTo(to) {
			return serviceerrors.NewInvalidTransitionError("sale "+current.Number, string(from), string(to))
		}

		sale, err = s.orderRepository.UpdateSaleStatus(txCtx, id, from, to)
		if err != nil {
			return err
		}

		if to != domain.SaleStatusCancelled {
			return nil
		}

		deltas, err := s.existingDeltas(txCtx, sale.StockDeltas(1), sale.Number)
		if err == nil {
			changes, err = s.productRepository.ApplyStockDeltas(txCtx, deltas)
		}
		if err != nil {
			if _, revertErr := s.orderRepository.UpdateSaleStatus(txCtx, id, to, from); revertErr != nil {
				logger.Error(ctx, "sale: status revert failed", revertErr, map[string]any{"sale_id": id})
			}
			return err
		}
		return nil
	})
	if err != nil {
		logger.Error(ctx, "sale: status transition failed", err, map[string]any{
			"sale_id": id,
			"status":  status,
		})
		return nil, err
	}

	s.catalog.recordStockChanges(ctx, changes, StockReasonSaleCancelled, sale.Number)
	recordEvent(ctx, s.events, &domain.SaleStatusChangedEvent{
		SaleID:    sale.ID,
		Number:    sale.Number,
		Status:    to,
		OldStatus: from,
		UpdatedAt: time.Now(),
	})

	logger.Info(ctx, "Sale status updated", map[string]any{
		"sale_id":    sale.ID,
		"old_status": from,
		"new_status": to,
	})
	return sale, nil
}

func (s *OrderBookService) GetSale(ctx context.Context, id domain.ID) (*domain.Sale, error) {
	return s.orderRepository.GetSaleByID(ctx, id)
}

func (s *OrderBookService) ListSales(ctx context.Context) ([]*domain.Sale, error) {
	return s.orderRepository.GetSales(ctx)
}

func (s *OrderBookService) CreatePurchaseOrder(ctx context.Context, idempotencyKey string, request *dto.CreatePurchaseOrderRequest) (*domain.PurchaseOrder, error) {
	return s.purchaseIdempotency.Run(ctx, idempotencyKey, request, func(ctx context.Context) (*domain.PurchaseOrder, error) {
		return s.processPurchaseOrder(ctx, request)
	})
}

func (s *OrderBookService) processPurchaseOrder(ctx context.Context, request *dto.CreatePurchaseOrderRequest) (*domain.PurchaseOrder, error) {
	request.Supplier = strings.TrimSpace(request.Supplier)
	if err := dto.Validate(request); err != nil {
		return nil, err
	}
	lines := mergeLines(request.Items)

	var order *domain.PurchaseOrder
	err := s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		products, err := s.loadProducts(txCtx, lines)
		if err != nil {
			return err
		}

		items := make([]domain.PurchaseItem, len(lines))
		for i, line := range lines {
			items[i] = domain.PurchaseItem{
				ProductID:   products[i].ID,
				ProductName: products[i].Name,
				Quantity:    line.Quantity,
				UnitCost:    products[i].Cost,
			}
		}

		order = domain.NewPurchaseOrder(request.Supplier, items)
		number, err := s.orderRepository.NextPurchaseOrderNumber(txCtx)
		if err != nil {
			return err
		}
		order.Number = number

		return s.orderRepository.CreatePurchaseOrder(txCtx, order)
	})
	if err != nil {
		logger.Error(ctx, "transaction: create purchase order failed", err, map[string]any{
			"supplier": request.Supplier,
			"items":    len(lines),
		})
		return nil, err
	}

	recordEvent(ctx, s.events, &domain.PurchaseOrderCreatedEvent{
		PurchaseOrderID: order.ID,
		Number:          order.Number,
		Supplier:        order.Supplier,
		Total:           order.Total,
		CreatedAt:       order.CreatedAt,
	})

	logger.Info(ctx, "Purchase order created", map[string]any{
		"purchase_order_id": order.ID,
		"number":            order.Number,
		"total":             order.Total.Fixed(),
	})
	return order, nil
}

// TransitionPurchaseOrderStatus moves an order one step along pending -> ordered -> received.
// Receiving adds the ordered quantities to stock exactly once.
func (s *OrderBookService) TransitionPurchaseOrderStatus(ctx context.Context, id domain.ID, status string) (*domain.PurchaseOrder, error) {
	to := domain.PurchaseOrderStatus(status)
	if !to.IsValid() {
		return nil, serviceerrors.NewValidationError(fmt.Sprintf("invalid purchase order status %q", status))
	}

	var (
		order   *domain.PurchaseOrder
		from    domain.PurchaseOrderStatus
		changes []port.StockChange
	)
	err := s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		current, err := s.orderRepository.GetPurchaseOrderByID(txCtx, id)
		if err != nil {
			return err
		}
		from = current.Status
		if !from.CanTransitionTo(to) {
			return serviceerrors.NewInvalidTransitionError("purchase order "+current.Number, string(from), string(to))
		}

		order, err = s.orderRepository.UpdatePurchaseOrderStatus(txCtx, id, from, to)
		if err != nil {
			return err
		}

		if to != domain.PurchaseOrderStatusReceived {
			return nil
		}

		deltas, err := s.existingDeltas(txCtx, order.StockDeltas(), order.Number)
		if err == nil {
			changes, err = s.productRepository.ApplyStockDeltas(txCtx, deltas)
		}
		if err != nil {
			if _, revertErr := s.orderRepository.UpdatePurchaseOrderStatus(txCtx, id, to, from); revertErr != nil {
				logger.Error(ctx, "purchase order: status revert failed", revertErr, map[string]any{"purchase_order_id": id})
			}
			return err
		}
		return nil
	})
	if err != nil {
		logger.Error(ctx, "purchase order: status transition failed", err, map[string]any{
			"purchase_order_id": id,
			"status":            status,
		})
		return nil, err
	}

	s.catalog.recordStockChanges(ctx, changes, StockReasonReceipt, order.Number)
	recordEvent(ctx, s.events, &domain.PurchaseOrderStatusChangedEvent{
		PurchaseOrderID: order.ID,
		Number:          order.Number,
		Status:          to,
		OldStatus:       from,
		UpdatedAt:       time.Now(),
	})

	logger.Info(ctx, "Purchase order status updated", map[string]any{
		"purchase_order_id": order.ID,
		"old_status":        from,
		"new_status":        to,
	})
	return order, nil
}

func (s *OrderBookService) GetPurchaseOrder(ctx context.Context, id domain.ID) (*domain.PurchaseOrder, error) {
	return s.orderRepository.GetPurchaseOrderByID(ctx, id)
}

func (s *OrderBookService) ListPurchaseOrders(ctx context.Context) ([]*domain.PurchaseOrder, error) {
	return s.orderRepository.GetPurchaseOrders(ctx)
}
