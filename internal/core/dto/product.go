package dto

// Amounts travel as decimal strings such as "45.00".
type CreateProductRequest struct {
	Name     string `json:"name" validate:"required"`
	SKU      string `json:"sku" validate:"required"`
	Category string `json:"category" validate:"required"`
	Price    string `json:"price" validate:"required,amount"`
	Cost     string `json:"cost" validate:"omitempty,amount"`
	Stock    int    `json:"stock" validate:"gte=0"`
	// MinStock falls back to the configured low-stock threshold when omitted.
	MinStock *int `json:"min_stock" validate:"omitempty,gte=0"`
}

type UpdateProductRequest struct {
	Name     *string `json:"name" validate:"omitempty,min=1"`
	SKU      *string `json:"sku" validate:"omitempty,min=1"`
	Category *string `json:"category" validate:"omitempty,min=1"`
	Price    *string `json:"price" validate:"omitempty,amount"`
	Cost     *string `json:"cost" validate:"omitempty,amount"`
	Stock    *int    `json:"stock" validate:"omitempty,gte=0"`
	MinStock *int    `json:"min_stock" validate:"omitempty,gte=0"`
	Status   *string `json:"status" validate:"omitempty,oneof=active inactive"`
}

type AdjustStockRequest struct {
	Delta int `json:"delta"`
}

type ProductQuery struct {
	Search   string `form:"search"`
	Category string `form:"category"`
	Status   string `form:"status"`
}
