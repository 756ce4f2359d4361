package port

import (
	"context"

	"github.com/rafaelleal24/stockledger/internal/core/domain"
)

//go:generate mockgen -source=$GOFILE -destination=mock/$GOFILE -package=mock

type OrderPort interface {
	NextSaleNumber(ctx context.Context) (string, error)
	CreateSale(ctx context.Context, sale *domain.Sale) error
	GetSaleByID(ctx context.Context, id domain.ID) (*domain.Sale, error)
	// GetSales returns sales newest first.
	GetSales(ctx context.Context) ([]*domain.Sale, error)
	// UpdateSaleStatus moves the sale only if its current status equals from.
	UpdateSaleStatus(ctx context.Context, id domain.ID, from, to domain.SaleStatus) (*domain.Sale, error)

	NextPurchaseOrderNumber(ctx context.Context) (string, error)
	CreatePurchaseOrder(ctx context.Context, order *domain.PurchaseOrder) error
	GetPurchaseOrderByID(ctx context.Context, id domain.ID) (*domain.PurchaseOrder, error)
	GetPurchaseOrders(ctx context.Context) ([]*domain.PurchaseOrder, error)
	UpdatePurchaseOrderStatus(ctx context.Context, id domain.ID, from, to domain.PurchaseOrderStatus) (*domain.PurchaseOrder, error)
}
