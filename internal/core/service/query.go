package service

import (
	"context"

	"github.com/rafaelleal24/stockledger/internal/core/domain"
	"github.com/rafaelleal24/stockledger/internal/core/dto"
	"github.com/rafaelleal24/stockledger/internal/core/port"
	"github.com/rafaelleal24/stockledger/internal/core/query"
)

// QueryService answers list views straight from the repositories on every call.
type QueryService struct {
	productRepository port.ProductPort
	orderRepository   port.OrderPort
}

func NewQueryService(productRepository port.ProductPort, orderRepository port.OrderPort) *QueryService {
	return &QueryService{
		productRepository: productRepository,
		orderRepository:   orderRepository,
	}
}

func (s *QueryService) Products(ctx context.Context, q dto.ProductQuery) ([]*domain.Product, error) {
	products, err := s.productRepository.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	products = query.SearchProducts(products, q.Search)
	products = query.FilterByCategory(products, q.Category)
	return query.FilterByStatus(products, q.Status), nil
}

func (s *QueryService) Sales(ctx context.Context, q dto.ListQuery) ([]*domain.Sale, error) {
	sales, err := s.orderRepository.GetSales(ctx)
	if err != nil {
		return nil, err
	}
	return query.FilterByStatus(query.SearchSales(sales, q.Search), q.Status), nil
}

func (s *QueryService) PurchaseOrders(ctx context.Context, q dto.ListQuery) ([]*domain.PurchaseOrder, error) {
	orders, err := s.orderRepository.GetPurchaseOrders(ctx)
	if err != nil {
		return nil, err
	}
	return query.FilterByStatus(query.SearchPurchaseOrders(orders, q.Search), q.Status), nil
}

// Categories lists the distinct product categories in catalog order.
func (s *QueryService) Categories(ctx context.Context) ([]string, error) {
	products, err := s.productRepository.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool)
	categories := make([]string, 0)
	for _, p := range products {
		if !seen[p.Category] {
			seen[p.Category] = true
			categories = append(categories, p.Category)
		}
	}
	return categories, nil
}
