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

const IdempotencyKeyHeader = "Idempotency-Key"

type SaleController struct {
	orderBookService *service.OrderBookService
	queryService     *service.QueryService
}

type SaleItemResponse struct {
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name"`
	Quantity    int    `json:"quantity"`
	UnitPrice   string `json:"unit_price"`
	Subtotal    string `json:"subtotal"`
}

type SaleResponse struct {
	ID        string             `json:"id"`
	Number    string             `json:"number"`
	Customer  string             `json:"customer"`
	Items     []SaleItemResponse `json:"items"`
	Total     string             `json:"total"`
	Status    string             `json:"status"`
	Date      string             `json:"date"`
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`
}

func NewSaleResponse(sale *domain.Sale) SaleResponse {
	items := make([]SaleItemResponse, len(sale.Items))
	for i, item := range sale.Items {
		items[i] = SaleItemResponse{
			ProductID:   string(item.ProductID),
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice.Fixed(),
			Subtotal:    item.Subtotal().Fixed(),
		}
	}
	return SaleResponse{
		ID:        string(sale.ID),
		Number:    sale.Number,
		Customer:  sale.Customer,
		Items:     items,
		Total:     sale.Total.Fixed(),
		Status:    string(sale.Status),
		Date:      sale.Date(),
		CreatedAt: sale.CreatedAt,
		UpdatedAt: sale.UpdatedAt,
	}
}

func NewSaleResponses(sales []*domain.Sale) []SaleResponse {
	response := make([]SaleResponse, len(sales))
	for i, sale := range sales {
		response[i] = NewSaleResponse(sale)
	}
	return response
}

func NewSaleController(orderBookService *service.OrderBookService, queryService *service.QueryService) *SaleController {
	return &SaleController{orderBookService: orderBookService, queryService: queryService}
}

func orderID(c *gin.Context, entity string) (domain.ID, bool) {
	id := c.Param("id")
	if !domain.ValidateID(id) {
		handlers.HandleError(c, serviceerrors.NewNotFoundError(entity+" "+id+" not found"))
		return "", false
	}
	return domain.ID(id), true
}

// CreateSale godoc
// @Summary     Record a sale
// @Description Deducts stock for every line atomically. Supports idempotent retries.
// @Tags        sales
// @Accept      json
// @Produce     json
// @Param       Idempotency-Key header   string                 false "Idempotency key"
// @Param       request         body     dto.CreateSaleRequest  true  "Sale data"
// @Success     201             {object} SaleResponse
// @Failure     400             {object} handlers.ErrorResponse
// @Failure     404             {object} handlers.ErrorResponse
// @Failure     422             {object} handlers.ErrorResponse
// @Failure     429             {object} handlers.ErrorResponse
// @Router      /api/v1/sales [post]
func (sc *SaleController) CreateSale(c *gin.Context) {
	var request dto.CreateSaleRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		handlers.HandleBindError(c, err)
		return
	}
	sale, err := sc.orderBookService.CreateSale(c.Request.Context(), c.GetHeader(IdempotencyKeyHeader), &request)
	if err != nil {
		handlers.HandleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, NewSaleResponse(sale))
}

// ListSales godoc
// @Summary     List sales, newest first
// @Tags        sales
// @Produce     json
// @Param       search query   string false "Sale number or customer"
// @Param       status query   string false "pending, completed, cancelled or all"
// @Success     200    {array} SaleResponse
// @Router      /api/v1/sales [get]
func (sc *SaleController) ListSales(c *gin.Context) {
	var query dto.ListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		handlers.HandleBindError(c, err)
		return
	}
	sales, err := sc.queryService.Sales(c.Request.Context(), query)
	if err != nil {
		handlers.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, NewSaleResponses(sales))
}

func (sc *SaleController) GetSale(c *gin.Context) {
	id, ok := orderID(c, "sale")
	if !ok {
		return
	}
	sale, err := sc.orderBookService.GetSale(c.Request.Context(), id)
	if err != nil {
		handlers.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, NewSaleResponse(sale))
}

// UpdateSaleStatus godoc
// @Summary     Complete or cancel a pending sale
// @Description Cancelling returns the sold quantities to stock
// @Tags        sales
// @Accept      json
// @Produce     json
// @Param       id      path     string                  true "Sale ID"
// @Param       request body     dto.UpdateStatusRequest true "New status"
// @Success     200     {object} SaleResponse
// @Failure     404     {object} handlers.ErrorResponse
// @Failure     409     {object} handlers.ErrorResponse
// @Router      /api/v1/sales/{id}/status [patch]
func (sc *SaleController) UpdateSaleStatus(c *gin.Context) {
	id, ok := orderID(c, "sale")
	if !ok {
		return
	}
	var request dto.UpdateStatusRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		handlers.HandleBindError(c, err)
		return
	}
	sale, err := sc.orderBookService.TransitionSaleStatus(c.Request.Context(), id, request.Status)
	if err != nil {
		handlers.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, NewSaleResponse(sale))
}

func (sc *SaleController) ExportSales(c *gin.Context) {
	var query dto.ListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		handlers.HandleBindError(c, err)
		return
	}
	sales, err := sc.queryService.Sales(c.Request.Context(), query)
	if err != nil {
		handlers.HandleError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="sales.csv"`)
	c.Data(http.StatusOK, csvContentType, []byte(export.Sales(sales)))
}
