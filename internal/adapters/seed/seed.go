// Package seed loads the initial catalog, orders and users into the ledger.
package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/rafaelleal24/stockledger/internal/core/domain"
	"github.com/rafaelleal24/stockledger/internal/core/logger"
	"github.com/rafaelleal24/stockledger/internal/core/port"
)

type Product struct {
	Name     string `koanf:"name"`
	SKU      string `koanf:"sku"`
	Category string `koanf:"category"`
	Price    string `koanf:"price"`
	Cost     string `koanf:"cost"`
	Stock    int    `koanf:"stock"`
	MinStock int    `koanf:"min_stock"`
	Status   string `koanf:"status"`
}

// Line references a product by SKU. UnitCost is only read for purchase orders
// and falls back to the product's cost.
type Line struct {
	SKU      string `koanf:"sku"`
	Quantity int    `koanf:"quantity"`
	UnitCost string `koanf:"unit_cost"`
}

type Sale struct {
	Number   string `koanf:"number"`
	Customer string `koanf:"customer"`
	Status   string `koanf:"status"`
	Date     string `koanf:"date"`
	Items    []Line `koanf:"items"`
}

type PurchaseOrder struct {
	Number   string `koanf:"number"`
	Supplier string `koanf:"supplier"`
	Status   string `koanf:"status"`
	Date     string `koanf:"date"`
	Items    []Line `koanf:"items"`
}

type User struct {
	Name   string `koanf:"name"`
	Email  string `koanf:"email"`
	Role   string `koanf:"role"`
	Status string `koanf:"status"`
	Joined string `koanf:"joined"`
}

type Data struct {
	Products       []Product       `koanf:"products"`
	Sales          []Sale          `koanf:"sales"`
	PurchaseOrders []PurchaseOrder `koanf:"purchase_orders"`
	Users          []User          `koanf:"users"`
}

// OrderSeeder stores historical orders as given, without touching stock.
type OrderSeeder interface {
	SeedSale(ctx context.Context, sale *domain.Sale) error
	SeedPurchaseOrder(ctx context.Context, order *domain.PurchaseOrder) error
}

type Targets struct {
	Products port.ProductPort
	Orders   OrderSeeder
	Users    port.UserPort
}

// Load reads a YAML seed file. An empty path returns the built-in data set.
func Load(path string) (*Data, error) {
	if path == "" {
		return Default(), nil
	}

	k := koanf.New(".")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("seed: read %s: %w", path, err)
	}

	var data Data
	if err := k.Unmarshal("", &data); err != nil {
		return nil, fmt.Errorf("seed: decode %s: %w", path, err)
	}
	return &data, nil
}

// Apply inserts the data set. Orders are stored as recorded history: their
// quantities are already reflected in the seeded stock levels.
func Apply(ctx context.Context, data *Data, targets Targets) error {
	bySKU := make(map[string]*domain.Product, len(data.Products))
	for _, p := range data.Products {
		product, err := p.toDomain()
		if err != nil {
			return err
		}
		if err := targets.Products.Create(ctx, product); err != nil {
			return fmt.Errorf("seed: product %s: %w", p.SKU, err)
		}
		bySKU[product.SKU] = product
	}

	for _, s := range data.Sales {
		sale, err := s.toDomain(bySKU)
		if err != nil {
			return err
		}
		if err := targets.Orders.SeedSale(ctx, sale); err != nil {
			return fmt.Errorf("seed: sale %s: %w", s.Number, err)
		}
	}

	for _, o := range data.PurchaseOrders {
		order, err := o.toDomain(bySKU)
		if err != nil {
			return err
		}
		if err := targets.Orders.SeedPurchaseOrder(ctx, order); err != nil {
			return fmt.Errorf("seed: purchase order %s: %w", o.Number, err)
		}
	}

	if targets.Users != nil {
		for _, u := range data.Users {
			user, err := u.toDomain()
			if err != nil {
				return err
			}
			if err := targets.Users.Create(ctx, user); err != nil {
				return fmt.Errorf("seed: user %s: %w", u.Email, err)
			}
		}
	}

	logger.Info(ctx, "Ledger seeded", map[string]any{
		"products":        len(data.Products),
		"sales":           len(data.Sales),
		"purchase_orders": len(data.PurchaseOrders),
		"users":           len(data.Users),
	})
	return nil
}

func parseDate(value string) (time.Time, error) {
	if value == "" {
		return time.Now(), nil
	}
	return time.Parse(time.DateOnly, value)
}

func (p Product) toDomain() (*domain.Product, error) {
	if p.Name == "" || p.SKU == "" || p.Category == "" {
		return nil, fmt.Errorf("seed: product %q: name, sku and category are required", p.SKU)
	}
	if p.Stock < 0 || p.MinStock < 0 {
		return nil, fmt.Errorf("seed: product %s: stock and min_stock cannot be negative", p.SKU)
	}
	price, err := domain.ParseAmount(p.Price)
	if err != nil {
		return nil, fmt.Errorf("seed: product %s price: %w", p.SKU, err)
	}
	cost := domain.Amount(0)
	if p.Cost != "" {
		if cost, err = domain.ParseAmount(p.Cost); err != nil {
			return nil, fmt.Errorf("seed: product %s cost: %w", p.SKU, err)
		}
	}

	product := domain.NewProduct(p.Name, p.SKU, p.Category, price, cost, p.Stock, p.MinStock)
	if p.Status != "" {
		product.Status = domain.ProductStatus(p.Status)
		if !product.Status.IsValid() {
			return nil, fmt.Errorf("seed: product %s: invalid status %q", p.SKU, p.Status)
		}
	}
	return product, nil
}

// checkOrder enforces what the order book enforces on create: a number,
// a counterparty and at least one line with a positive quantity.
func checkOrder(kind, number, party string, lines []Line) error {
	if number == "" {
		return fmt.Errorf("seed: %s without a number", kind)
	}
	if party == "" {
		return fmt.Errorf("seed: %s %s: counterparty is required", kind, number)
	}
	if len(lines) == 0 {
		return fmt.Errorf("seed: %s %s: no items", kind, number)
	}
	for _, line := range lines {
		if line.Quantity <= 0 {
			return fmt.Errorf("seed: %s %s: quantity of %s must be positive, got %d", kind, number, line.SKU, line.Quantity)
		}
		if line.Quantity > domain.MaxOrderQuantity {
			return fmt.Errorf("seed: %s %s: quantity of %s exceeds %d", kind, number, line.SKU, domain.MaxOrderQuantity)
		}
	}
	return nil
}

func lookup(bySKU map[string]*domain.Product, number, sku string) (*domain.Product, error) {
	product, ok := bySKU[sku]
	if !ok {
		return nil, fmt.Errorf("seed: %s references unknown sku %q", number, sku)
	}
	return product, nil
}

func (s Sale) toDomain(bySKU map[string]*domain.Product) (*domain.Sale, error) {
	status := domain.SaleStatus(s.Status)
	if !status.IsValid() {
		return nil, fmt.Errorf("seed: sale %s: invalid status %q", s.Number, s.Status)
	}
	if err := checkOrder("sale", s.Number, s.Customer, s.Items); err != nil {
		return nil, err
	}
	date, err := parseDate(s.Date)
	if err != nil {
		return nil, fmt.Errorf("seed: sale %s date: %w", s.Number, err)
	}

	items := make([]domain.SaleItem, len(s.Items))
	for i, line := range s.Items {
		product, err := lookup(bySKU, s.Number, line.SKU)
		if err != nil {
			return nil, err
		}
		items[i] = domain.SaleItem{
			ProductID:   product.ID,
			ProductName: product.Name,
			Quantity:    line.Quantity,
			UnitPrice:   product.Price,
		}
	}

	sale := domain.NewSale(s.Customer, status, items)
	sale.Number = s.Number
	sale.CreatedAt, sale.UpdatedAt = date, date
	return sale, nil
}

func (o PurchaseOrder) toDomain(bySKU map[string]*domain.Product) (*domain.PurchaseOrder, error) {
	status := domain.PurchaseOrderStatus(o.Status)
	if o.Status == "" {
		status = domain.PurchaseOrderStatusPending
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("seed: purchase order %s: invalid status %q", o.Number, o.Status)
	}
	if err := checkOrder("purchase order", o.Number, o.Supplier, o.Items); err != nil {
		return nil, err
	}
	date, err := parseDate(o.Date)
	if err != nil {
		return nil, fmt.Errorf("seed: purchase order %s date: %w", o.Number, err)
	}

	items := make([]domain.PurchaseItem, len(o.Items))
	for i, line := range o.Items {
		product, err := lookup(bySKU, o.Number, line.SKU)
		if err != nil {
			return nil, err
		}
		unitCost := product.Cost
		if line.UnitCost != "" {
			if unitCost, err = domain.ParseAmount(line.UnitCost); err != nil {
				return nil, fmt.Errorf("seed: purchase order %s unit cost: %w", o.Number, err)
			}
		}
		items[i] = domain.PurchaseItem{
			ProductID:   product.ID,
			ProductName: product.Name,
			Quantity:    line.Quantity,
			UnitCost:    unitCost,
		}
	}

	order := domain.NewPurchaseOrder(o.Supplier, items)
	order.Number = o.Number
	order.Status = status
	order.CreatedAt, order.UpdatedAt = date, date
	return order, nil
}

func (u User) toDomain() (*domain.User, error) {
	role := domain.UserRole(u.Role)
	if u.Role == "" {
		role = domain.UserRoleUser
	}
	if !role.IsValid() {
		return nil, fmt.Errorf("seed: user %s: invalid role %q", u.Email, u.Role)
	}
	joined, err := parseDate(u.Joined)
	if err != nil {
		return nil, fmt.Errorf("seed: user %s joined: %w", u.Email, err)
	}

	user := domain.NewInvitedUser(u.Email, role)
	if u.Name != "" {
		user.Name = u.Name
	}
	if u.Status != "" {
		user.Status = domain.UserStatus(u.Status)
		if !user.Status.IsValid() {
			return nil, fmt.Errorf("seed: user %s: invalid status %q", u.Email, u.Status)
		}
	}
	user.JoinedAt = joined
	return user, nil
}
