// Package export renders ledger collections as comma-separated records:
// one header row, one row per entity, rows joined by newlines.
// Values are written as-is; embedded commas are not escaped.
package export

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rafaelleal24/stockledger/internal/core/domain"
)

var (
	ProductHeader       = []string{"Name", "SKU", "Category", "Price", "Stock", "Min Stock", "Status"}
	SaleHeader          = []string{"Sale Number", "Customer", "Items", "Total", "Status", "Date"}
	PurchaseOrderHeader = []string{"PO Number", "Supplier", "Items", "Total", "Status", "Date"}
)

func Products(products []*domain.Product) string {
	rows := make([][]string, len(products))
	for i, p := range products {
		rows[i] = []string{
			p.Name,
			p.SKU,
			p.Category,
			p.Price.String(),
			strconv.Itoa(p.Stock),
			strconv.Itoa(p.MinStock),
			string(p.Status),
		}
	}
	return render(ProductHeader, rows)
}

func Sales(sales []*domain.Sale) string {
	rows := make([][]string, len(sales))
	for i, s := range sales {
		items := make([]string, len(s.Items))
		for j, item := range s.Items {
			items[j] = itemLabel(item.ProductName, item.Quantity)
		}
		rows[i] = []string{
			s.Number,
			s.Customer,
			strings.Join(items, "; "),
			s.Total.Fixed(),
			string(s.Status),
			s.Date(),
		}
	}
	return render(SaleHeader, rows)
}

func PurchaseOrders(orders []*domain.PurchaseOrder) string {
	rows := make([][]string, len(orders))
	for i, o := range orders {
		items := make([]string, len(o.Items))
		for j, item := range o.Items {
			items[j] = itemLabel(item.ProductName, item.Quantity)
		}
		rows[i] = []string{
			o.Number,
			o.Supplier,
			strings.Join(items, "; "),
			o.Total.Fixed(),
			string(o.Status),
			o.Date(),
		}
	}
	return render(PurchaseOrderHeader, rows)
}

func itemLabel(name string, quantity int) string {
	return fmt.Sprintf("%s(%d)", name, quantity)
}

func render(header []string, rows [][]string) string {
	lines := make([]string, 0, len(rows)+1)
	lines = append(lines, strings.Join(header, ","))
	for _, row := range rows {
		lines = append(lines, strings.Join(row, ","))
	}
	return strings.Join(lines, "\n")
}
