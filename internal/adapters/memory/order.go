package memory

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rafaelleal24/stockledger/internal/core/domain"
	"github.com/rafaelleal24/stockledger/internal/core/port"
	"github.com/rafaelleal24/stockledger/internal/core/serviceerrors"
)

// OrderRepository stores sales and purchase orders, most recently created
// first, and hands out their sequence numbers.
type OrderRepository struct {
	mu             sync.RWMutex
	sales          []*domain.Sale
	purchaseOrders []*domain.PurchaseOrder
	saleSeq        int
	purchaseSeq    int
}

func NewOrderRepository() *OrderRepository {
	return &OrderRepository{}
}

var _ port.OrderPort = (*OrderRepository)(nil)

// sequenceOf extracts n from "PREFIX-n"; anything else yields 0.
func sequenceOf(prefix, number string) int {
	suffix, ok := strings.CutPrefix(number, prefix+"-")
	if !ok {
		return 0
	}
	n, err := strconv.Atoi(suffix)
	if err != nil {
		return 0
	}
	return n
}

func (r *OrderRepository) NextSaleNumber(_ context.Context) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.saleSeq++
	return domain.FormatNumber(domain.SaleNumberPrefix, r.saleSeq), nil
}

func (r *OrderRepository) CreateSale(_ context.Context, sale *domain.Sale) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.prepareSale(sale); err != nil {
		return err
	}
	r.sales = append([]*domain.Sale{sale.Clone()}, r.sales...)
	return nil
}

// SeedSale appends a sale behind the existing ones, keeping a seed file's listing order.
func (r *OrderRepository) SeedSale(_ context.Context, sale *domain.Sale) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.prepareSale(sale); err != nil {
		return err
	}
	r.sales = append(r.sales, sale.Clone())
	return nil
}

func (r *OrderRepository) prepareSale(sale *domain.Sale) error {
	if sale.ID == "" {
		sale.ID = domain.NewID()
	}
	for _, existing := range r.sales {
		if existing.ID == sale.ID || existing.Number == sale.Number {
			return serviceerrors.NewConflictError(fmt.Sprintf("sale %s already exists", sale.Number))
		}
	}
	if n := sequenceOf(domain.SaleNumberPrefix, sale.Number); n > r.saleSeq {
		r.saleSeq = n
	}
	return nil
}

func (r *OrderRepository) findSale(id domain.ID) (*domain.Sale, error) {
	for _, s := range r.sales {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, serviceerrors.NewNotFoundError(fmt.Sprintf("sale %s not found", id))
}

func (r *OrderRepository) GetSaleByID(_ context.Context, id domain.ID) (*domain.Sale, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, err := r.findSale(id)
	if err != nil {
		return nil, err
	}
	return s.Clone(), nil
}

func (r *OrderRepository) GetSales(_ context.Context) ([]*domain.Sale, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	list := make([]*domain.Sale, len(r.sales))
	for i, s := range r.sales {
		list[i] = s.Clone()
	}
	return list, nil
}

func (r *OrderRepository) UpdateSaleStatus(_ context.Context, id domain.ID, from, to domain.SaleStatus) (*domain.Sale, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, err := r.findSale(id)
	if err != nil {
		return nil, err
	}
	if s.Status != from {
		return nil, serviceerrors.NewInvalidTransitionError("sale "+s.Number, string(s.Status), string(to))
	}

	s.Status = to
	s.UpdatedAt = time.Now()
	return s.Clone(), nil
}

func (r *OrderRepository) NextPurchaseOrderNumber(_ context.Context) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.purchaseSeq++
	return domain.FormatNumber(domain.PurchaseOrderNumberPrefix, r.purchaseSeq), nil
}

func (r *OrderRepository) CreatePurchaseOrder(_ context.Context, order *domain.PurchaseOrder) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.preparePurchaseOrder(order); err != nil {
		return err
	}
	r.purchaseOrders = append([]*domain.PurchaseOrder{order.Clone()}, r.purchaseOrders...)
	return nil
}

// SeedPurchaseOrder appends a purchase order behind the existing ones.
func (r *OrderRepository) SeedPurchaseOrder(_ context.Context, order *domain.PurchaseOrder) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.preparePurchaseOrder(order); err != nil {
		return err
	}
	r.purchaseOrders = append(r.purchaseOrders, order.Clone())
	return nil
}

func (r *OrderRepository) preparePurchaseOrder(order *domain.PurchaseOrder) error {
	if order.ID == "" {
		order.ID = domain.NewID()
	}
	for _, existing := range r.purchaseOrders {
		if existing.ID == order.ID || existing.Number == order.Number {
			return serviceerrors.NewConflictError(fmt.Sprintf("purchase order %s already exists", order.Number))
		}
	}
	if n := sequenceOf(domain.PurchaseOrderNumberPrefix, order.Number); n > r.purchaseSeq {
		r.purchaseSeq = n
	}
	return nil
}

func (r *OrderRepository) findPurchaseOrder(id domain.ID) (*domain.PurchaseOrder, error) {
	for _, o := range r.purchaseOrders {
		if o.ID == id {
			return o, nil
		}
	}
	return nil, serviceerrors.NewNotFoundError(fmt.Sprintf("purchase order %s not found", id))
}

func (r *OrderRepository) GetPurchaseOrderByID(_ context.Context, id domain.ID) (*domain.PurchaseOrder, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	o, err := r.findPurchaseOrder(id)
	if err != nil {
		return nil, err
	}
	return o.Clone(), nil
}

func (r *OrderRepository) GetPurchaseOrders(_ context.Context) ([]*domain.PurchaseOrder, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	list := make([]*domain.PurchaseOrder, len(r.purchaseOrders))
	for i, o := range r.purchaseOrders {
		list[i] = o.Clone()
	}
	return list, nil
}

func (r *OrderRepository) UpdatePurchaseOrderStatus(_ context.Context, id domain.ID, from, to domain.PurchaseOrderStatus) (*domain.PurchaseOrder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	o, err := r.findPurchaseOrder(id)
	if err != nil {
		return nil, err
	}
	if o.Status != from {
		return nil, serviceerrors.NewInvalidTransitionError("purchase order "+o.Number, string(o.Status), string(to))
	}

	o.Status = to
	o.UpdatedAt = time.Now()
	return o.Clone(), nil
}
