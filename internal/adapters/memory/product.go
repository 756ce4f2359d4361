package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rafaelleal24/stockledger/internal/core/domain"
	"github.com/rafaelleal24/stockledger/internal/core/port"
	"github.com/rafaelleal24/stockledger/internal/core/serviceerrors"
)

// ProductRepository keeps the catalog in insertion order behind a RWMutex.
type ProductRepository struct {
	mu       sync.RWMutex
	products map[domain.ID]*domain.Product
	order    []domain.ID
}

func NewProductRepository() *ProductRepository {
	return &ProductRepository{
		products: make(map[domain.ID]*domain.Product),
	}
}

var _ port.ProductPort = (*ProductRepository)(nil)

func productNotFound(id domain.ID) error {
	return serviceerrors.NewNotFoundError(fmt.Sprintf("product %s not found", id))
}

func (r *ProductRepository) skuTaken(sku string, except domain.ID) bool {
	for id, p := range r.products {
		if id != except && p.SKU == sku {
			return true
		}
	}
	return false
}

func (r *ProductRepository) Create(_ context.Context, product *domain.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.skuTaken(product.SKU, "") {
		return serviceerrors.NewDuplicateSKUError(product.SKU)
	}
	if product.ID == "" {
		product.ID = domain.NewID()
	}
	if _, exists := r.products[product.ID]; exists {
		return serviceerrors.NewConflictError(fmt.Sprintf("product %s already exists", product.ID))
	}

	stored := *product
	r.products[product.ID] = &stored
	r.order = append(r.order, product.ID)
	return nil
}

func (r *ProductRepository) GetByID(_ context.Context, id domain.ID) (*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.products[id]
	if !ok {
		return nil, productNotFound(id)
	}
	c := *p
	return &c, nil
}

func (r *ProductRepository) GetAll(_ context.Context) ([]*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	list := make([]*domain.Product, 0, len(r.order))
	for _, id := range r.order {
		c := *r.products[id]
		list = append(list, &c)
	}
	return list, nil
}

func (r *ProductRepository) Update(_ context.Context, product *domain.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.products[product.ID]; !ok {
		return productNotFound(product.ID)
	}
	if r.skuTaken(product.SKU, product.ID) {
		return serviceerrors.NewDuplicateSKUError(product.SKU)
	}

	stored := *product
	r.products[product.ID] = &stored
	return nil
}

func (r *ProductRepository) Delete(_ context.Context, id domain.ID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.products[id]; !ok {
		return productNotFound(id)
	}
	delete(r.products, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

func (r *ProductRepository) AdjustStock(ctx context.Context, id domain.ID, delta int) (*port.StockChange, error) {
	changes, err := r.ApplyStockDeltas(ctx, []domain.StockDelta{{ProductID: id, Delta: delta}})
	if err != nil {
		return nil, err
	}
	return &changes[0], nil
}

// ApplyStockDeltas checks the whole batch against current stock and only then
// mutates, so a failing delta leaves every product untouched. Repeated product
// IDs are summed before the check.
func (r *ProductRepository) ApplyStockDeltas(_ context.Context, deltas []domain.StockDelta) ([]port.StockChange, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	net := make(map[domain.ID]int, len(deltas))
	for _, d := range deltas {
		p, ok := r.products[d.ProductID]
		if !ok {
			return nil, productNotFound(d.ProductID)
		}
		net[d.ProductID] += d.Delta
		if p.Stock+net[d.ProductID] < 0 {
			return nil, serviceerrors.NewInsufficientStockError(p.Name, p.Stock, -net[d.ProductID])
		}
	}

	now := time.Now()
	changes := make([]port.StockChange, 0, len(deltas))
	for _, d := range deltas {
		p := r.products[d.ProductID]
		old := p.Stock
		p.Stock += d.Delta
		p.UpdatedAt = now
		changes = append(changes, port.StockChange{Product: *p, OldStock: old})
	}
	return changes, nil
}
