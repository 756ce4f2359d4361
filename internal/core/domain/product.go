package domain

import "time"

type ProductStatus string

const (
	ProductStatusActive   ProductStatus = "active"
	ProductStatusInactive ProductStatus = "inactive"
)

func (s ProductStatus) IsValid() bool {
	return s == ProductStatusActive || s == ProductStatusInactive
}

type Product struct {
	ID        ID
	Name      string
	SKU       string
	Category  string
	Price     Amount
	Cost      Amount
	Stock     int
	MinStock  int
	Status    ProductStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}

func NewProduct(name, sku, category string, price, cost Amount, stock, minStock int) *Product {
	now := time.Now()
	return &Product{
		Name:      name,
		SKU:       sku,
		Category:  category,
		Price:     price,
		Cost:      cost,
		Stock:     stock,
		MinStock:  minStock,
		Status:    ProductStatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// IsLowStock reports stock at or below the product's minimum threshold.
func (p *Product) IsLowStock() bool {
	return p.Stock <= p.MinStock
}

// StockValue is the product's stock valued at unit cost.
func (p *Product) StockValue() Amount {
	return p.Cost.Multiply(p.Stock)
}

// ProductPatch carries the optional fields of a catalog update. Nil fields are left untouched.
type ProductPatch struct {
	Name     *string
	SKU      *string
	Category *string
	Price    *Amount
	Cost     *Amount
	Stock    *int
	MinStock *int
	Status   *ProductStatus
}

// Apply writes the non-nil fields into p.
func (patch ProductPatch) Apply(p *Product) {
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.SKU != nil {
		p.SKU = *patch.SKU
	}
	if patch.Category != nil {
		p.Category = *patch.Category
	}
	if patch.Price != nil {
		p.Price = *patch.Price
	}
	if patch.Cost != nil {
		p.Cost = *patch.Cost
	}
	if patch.Stock != nil {
		p.Stock = *patch.Stock
	}
	if patch.MinStock != nil {
		p.MinStock = *patch.MinStock
	}
	if patch.Status != nil {
		p.Status = *patch.Status
	}
	p.UpdatedAt = time.Now()
}

// StockDelta is a signed stock change for one product.
type StockDelta struct {
	ProductID ID
	Delta     int
}

type StockChangedEvent struct {
	ProductID ID        `json:"product_id"`
	SKU       string    `json:"sku"`
	Delta     int       `json:"delta"`
	OldStock  int       `json:"old_stock"`
	NewStock  int       `json:"new_stock"`
	Reason    string    `json:"reason"`
	Reference string    `json:"reference,omitempty"`
	ChangedAt time.Time `json:"changed_at"`
}

func (e *StockChangedEvent) GetName() string {
	return "product.stock_changed"
}

func (e *StockChangedEvent) GetEntityName() string {
	return "product"
}

type LowStockEvent struct {
	ProductID ID     `json:"product_id"`
	Name      string `json:"name"`
	SKU       string `json:"sku"`
	Stock     int    `json:"stock"`
	MinStock  int    `json:"min_stock"`
}

func (e *LowStockEvent) GetName() string {
	return "product.low_stock"
}

func (e *LowStockEvent) GetEntityName() string {
	return "product"
}
