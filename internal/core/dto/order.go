package dto

import "github.com/rafaelleal24/stockledger/internal/core/domain"

type OrderItem struct {
	ProductID domain.ID `json:"product_id" validate:"required"`
	Quantity  int       `json:"quantity" validate:"gt=0,lte=1000000"`
}

type CreateSaleRequest struct {
	Customer string `json:"customer" validate:"required"`
	// Status defaults to completed.
	Status domain.SaleStatus `json:"status" validate:"omitempty,oneof=pending completed"`
	Items  []OrderItem       `json:"items" validate:"required,min=1,max=100,dive"`
}

type CreatePurchaseOrderRequest struct {
	Supplier string      `json:"supplier" validate:"required"`
	Items    []OrderItem `json:"items" validate:"required,min=1,max=100,dive"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// ListQuery carries the list filters of the sales and purchase-order views.
type ListQuery struct {
	Search string `form:"search"`
	Status string `form:"status"`
}
