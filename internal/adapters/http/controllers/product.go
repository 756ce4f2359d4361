package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rafaelleal24/stockledger/internal/adapters/http/handlers"
	"github.com/rafaelleal24/stockledger/internal/core/domain"
	"github.com/rafaelleal24/stockledger/internal/core/dto"
	"github.com/rafaelleal24/stockledger/internal/core/export"
	"github.com/rafaelleal24/stockledger/internal/core/service"
	"github.com/rafaelleal24/stockledger/internal/core/serviceerrors"
)

const csvContentType = "text/csv; charset=utf-8"

type ProductController struct {
	catalogService *service.CatalogService
	queryService   *service.QueryService
}

type ProductResponse struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	SKU        string    `json:"sku"`
	Category   string    `json:"category"`
	Price      string    `json:"price"`
	Cost       string    `json:"cost"`
	Stock      int       `json:"stock"`
	MinStock   int       `json:"min_stock"`
	Status     string    `json:"status"`
	IsLowStock bool      `json:"is_low_stock"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func NewProductResponse(product *domain.Product) ProductResponse {
	return ProductResponse{
		ID:         string(product.ID),
		Name:       product.Name,
		SKU:        product.SKU,
		Category:   product.Category,
		Price:      product.Price.Fixed(),
		Cost:       product.Cost.Fixed(),
		Stock:      product.Stock,
		MinStock:   product.MinStock,
		Status:     string(product.Status),
		IsLowStock: product.IsLowStock(),
		CreatedAt:  product.CreatedAt,
		UpdatedAt:  product.UpdatedAt,
	}
}

func NewProductResponses(products []*domain.Product) []ProductResponse {
	response := make([]ProductResponse, len(products))
	for i, product := range products {
		response[i] = NewProductResponse(product)
	}
	return response
}

func NewProductController(catalogService *service.CatalogService, queryService *service.QueryService) *ProductController {
	return &ProductController{catalogService: catalogService, queryService: queryService}
}

// productID reads the :id path parameter, reporting a malformed one as not found.
func productID(c *gin.Context) (domain.ID, bool) {
	id := c.Param("id")
	if !domain.ValidateID(id) {
		handlers.HandleError(c, serviceerrors.NewNotFoundError("product "+id+" not found"))
		return "", false
	}
	return domain.ID(id), true
}

// CreateProduct godoc
// @Summary     Create a product
// @Tags        products
// @Accept      json
// @Produce     json
// @Param       request body     dto.CreateProductRequest true "Product data"
// @Success     201     {object} ProductResponse
// @Failure     400     {object} handlers.ErrorResponse
// @Failure     409     {object} handlers.ErrorResponse
// @Router      /api/v1/products [post]
func (pc *ProductController) CreateProduct(c *gin.Context) {
	var request dto.CreateProductRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		handlers.HandleBindError(c, err)
		return
	}
	product, err := pc.catalogService.Add(c.Request.Context(), &request)
	if err != nil {
		handlers.HandleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, NewProductResponse(product))
}

// ListProducts godoc
// @Summary     List products
// @Description Filters the catalog by free text over name and SKU, category and status
// @Tags        products
// @Produce     json
// @Param       search   query    string false "Search text"
// @Param       category query    string false "Category or all"
// @Param       status   query    string false "active, inactive or all"
// @Success     200      {array}  ProductResponse
// @Router      /api/v1/products [get]
func (pc *ProductController) ListProducts(c *gin.Context) {
	var query dto.ProductQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		handlers.HandleBindError(c, err)
		return
	}
	products, err := pc.queryService.Products(c.Request.Context(), query)
	if err != nil {
		handlers.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, NewProductResponses(products))
}

// GetProduct godoc
// @Summary     Get product by ID
// @Tags        products
// @Produce     json
// @Param       id  path     string true "Product ID"
// @Success     200 {object} ProductResponse
// @Failure     404 {object} handlers.ErrorResponse
// @Router      /api/v1/products/{id} [get]
func (pc *ProductController) GetProduct(c *gin.Context) {
	id, ok := productID(c)
	if !ok {
		return
	}
	product, err := pc.catalogService.Get(c.Request.Context(), id)
	if err != nil {
		handlers.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, NewProductResponse(product))
}

// UpdateProduct godoc
// @Summary     Update a product
// @Description Applies the provided fields only
// @Tags        products
// @Accept      json
// @Produce     json
// @Param       id      path     string                   true "Product ID"
// @Param       request body     dto.UpdateProductRequest true "Fields to change"
// @Success     200     {object} ProductResponse
// @Failure     400     {object} handlers.ErrorResponse
// @Failure     404     {object} handlers.ErrorResponse
// @Failure     409     {object} handlers.ErrorResponse
// @Router      /api/v1/products/{id} [patch]
func (pc *ProductController) UpdateProduct(c *gin.Context) {
	id, ok := productID(c)
	if !ok {
		return
	}
	var request dto.UpdateProductRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		handlers.HandleBindError(c, err)
		return
	}
	product, err := pc.catalogService.Update(c.Request.Context(), id, &request)
	if err != nil {
		handlers.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, NewProductResponse(product))
}

// DeleteProduct godoc
// @Summary     Remove a product
// @Tags        products
// @Param       id  path string true "Product ID"
// @Success     204
// @Failure     404 {object} handlers.ErrorResponse
// @Router      /api/v1/products/{id} [delete]
func (pc *ProductController) DeleteProduct(c *gin.Context) {
	id, ok := productID(c)
	if !ok {
		return
	}
	if err := pc.catalogService.Remove(c.Request.Context(), id); err != nil {
		handlers.HandleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// AdjustStock godoc
// @Summary     Adjust stock by a signed delta
// @Tags        products
// @Accept      json
// @Produce     json
// @Param       id      path     string                 true "Product ID"
// @Param       request body     dto.AdjustStockRequest true "Stock delta"
// @Success     200     {object} ProductResponse
// @Failure     404     {object} handlers.ErrorResponse
// @Failure     422     {object} handlers.ErrorResponse
// @Router      /api/v1/products/{id}/stock [post]
func (pc *ProductController) AdjustStock(c *gin.Context) {
	id, ok := productID(c)
	if !ok {
		return
	}
	var request dto.AdjustStockRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		handlers.HandleBindError(c, err)
		return
	}
	product, err := pc.catalogService.AdjustStock(c.Request.Context(), id, request.Delta)
	if err != nil {
		handlers.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, NewProductResponse(product))
}

func (pc *ProductController) ListCategories(c *gin.Context) {
	categories, err := pc.queryService.Categories(c.Request.Context())
	if err != nil {
		handlers.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, categories)
}

// ExportProducts godoc
// @Summary     Export the filtered catalog as CSV
// @Tags        products
// @Produce     text/csv
// @Router      /api/v1/products/export [get]
func (pc *ProductController) ExportProducts(c *gin.Context) {
	var query dto.ProductQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		handlers.HandleBindError(c, err)
		return
	}
	products, err := pc.queryService.Products(c.Request.Context(), query)
	if err != nil {
		handlers.HandleError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="products.csv"`)
	c.Data(http.StatusOK, csvContentType, []byte(export.Products(products)))
}
