// Package query filters ledger collections for list views. Every function
// returns a new slice and leaves its input untouched.
package query

import (
	"strings"

	"github.com/rafaelleal24/stockledger/internal/core/domain"
)

// All is the sentinel filter value that disables a filter.
const All = "all"

// Field extracts a comparable string from an item.
type Field[T any] func(T) string

// IsAll reports whether a filter value disables filtering: empty, "all" or "All".
func IsAll(value string) bool {
	value = strings.TrimSpace(value)
	return value == "" || strings.EqualFold(value, All)
}

// Search keeps the items where any field contains text, ignoring case.
// Empty text keeps everything.
func Search[T any](items []T, text string, fields ...Field[T]) []T {
	needle := strings.ToLower(strings.TrimSpace(text))
	if needle == "" {
		return clone(items)
	}

	result := make([]T, 0, len(items))
	for _, item := range items {
		for _, field := range fields {
			if strings.Contains(strings.ToLower(field(item)), needle) {
				result = append(result, item)
				break
			}
		}
	}
	return result
}

// FilterBy keeps the items whose field equals want exactly.
func FilterBy[T any](items []T, want string, field Field[T]) []T {
	if IsAll(want) {
		return clone(items)
	}

	result := make([]T, 0, len(items))
	for _, item := range items {
		if field(item) == want {
			result = append(result, item)
		}
	}
	return result
}

func clone[T any](items []T) []T {
	result := make([]T, len(items))
	copy(result, items)
	return result
}

func productName(p *domain.Product) string     { return p.Name }
func productSKU(p *domain.Product) string      { return p.SKU }
func productCategory(p *domain.Product) string { return p.Category }

func saleNumber(s *domain.Sale) string   { return s.Number }
func saleCustomer(s *domain.Sale) string { return s.Customer }

func purchaseOrderNumber(o *domain.PurchaseOrder) string   { return o.Number }
func purchaseOrderSupplier(o *domain.PurchaseOrder) string { return o.Supplier }

func userName(u *domain.User) string  { return u.Name }
func userEmail(u *domain.User) string { return u.Email }

func SearchProducts(products []*domain.Product, text string) []*domain.Product {
	return Search(products, text, productName, productSKU)
}

func SearchSales(sales []*domain.Sale, text string) []*domain.Sale {
	return Search(sales, text, saleNumber, saleCustomer)
}

func SearchPurchaseOrders(orders []*domain.PurchaseOrder, text string) []*domain.PurchaseOrder {
	return Search(orders, text, purchaseOrderNumber, purchaseOrderSupplier)
}

func SearchUsers(users []*domain.User, text string) []*domain.User {
	return Search(users, text, userName, userEmail)
}

func FilterByCategory(products []*domain.Product, category string) []*domain.Product {
	return FilterBy(products, category, productCategory)
}

type statusHolder interface {
	*domain.Product | *domain.Sale | *domain.PurchaseOrder
}

// FilterByStatus keeps the products, sales or purchase orders in the given status.
func FilterByStatus[T statusHolder](items []T, status string) []T {
	return FilterBy(items, status, statusOf[T])
}

func statusOf[T statusHolder](item T) string {
	switch v := any(item).(type) {
	case *domain.Product:
		return string(v.Status)
	case *domain.Sale:
		return string(v.Status)
	case *domain.PurchaseOrder:
		return string(v.Status)
	}
	return ""
}
