package service

import (
	"context"
	"sort"

	"github.com/rafaelleal24/stockledger/internal/core/domain"
	"github.com/rafaelleal24/stockledger/internal/core/port"
)

const recentSalesLimit = 5

type CategoryCount struct {
	Category string
	Count    int
}

type DashboardSummary struct {
	TotalProducts      int
	StockValue         domain.Amount
	Revenue            domain.Amount
	OpenPurchaseOrders int
	PendingSales       int
	LowStock           []*domain.Product
	Categories         []CategoryCount
	RecentSales        []*domain.Sale
}

type DashboardService struct {
	productRepository port.ProductPort
	orderRepository   port.OrderPort
}

func NewDashboardService(productRepository port.ProductPort, orderRepository port.OrderPort) *DashboardService {
	return &DashboardService{
		productRepository: productRepository,
		orderRepository:   orderRepository,
	}
}

func (s *DashboardService) Summary(ctx context.Context) (*DashboardSummary, error) {
	products, err := s.productRepository.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	sales, err := s.orderRepository.GetSales(ctx)
	if err != nil {
		return nil, err
	}
	orders, err := s.orderRepository.GetPurchaseOrders(ctx)
	if err != nil {
		return nil, err
	}

	summary := &DashboardSummary{
		TotalProducts: len(products),
		LowStock:      make([]*domain.Product, 0),
	}

	counts := make(map[string]int)
	for _, p := range products {
		summary.StockValue = summary.StockValue.Add(p.StockValue())
		if p.IsLowStock() {
			summary.LowStock = append(summary.LowStock, p)
		}
		counts[p.Category]++
	}
	sort.SliceStable(summary.LowStock, func(i, j int) bool {
		return summary.LowStock[i].Stock < summary.LowStock[j].Stock
	})

	summary.Categories = make([]CategoryCount, 0, len(counts))
	for category, count := range counts {
		summary.Categories = append(summary.Categories, CategoryCount{Category: category, Count: count})
	}
	sort.Slice(summary.Categories, func(i, j int) bool {
		a, b := summary.Categories[i], summary.Categories[j]
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		return a.Category < b.Category
	})

	for _, sale := range sales {
		switch sale.Status {
		case domain.SaleStatusCompleted:
			summary.Revenue = summary.Revenue.Add(sale.Total)
		case domain.SaleStatusPending:
			summary.PendingSales++
		}
	}
	summary.RecentSales = sales[:min(len(sales), recentSalesLimit)]

	for _, o := range orders {
		if o.Status.IsOpen() {
			summary.OpenPurchaseOrders++
		}
	}

	return summary, nil
}
