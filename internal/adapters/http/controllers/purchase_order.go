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
)

type PurchaseOrderController struct {
	orderBookService *service.OrderBookService
	queryService     *service.QueryService
}

type PurchaseItemResponse struct {
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name"`
	Quantity    int    `json:"quantity"`
	UnitCost    string `json:"unit_cost"`
	Subtotal    string `json:"subtotal"`
}

type PurchaseOrderResponse struct {
	ID        string                 `json:"id"`
	Number    string                 `json:"number"`
	Supplier  string                 `json:"supplier"`
	Items     []PurchaseItemResponse `json:"items"`
	Total     string                 `json:"total"`
	Status    string                 `json:"status"`
	Date      string                 `json:"date"`
	CreatedAt time.Time              `json:"created_at"`
	UpdatedAt time.Time              `json:"updated_at"`
}

func NewPurchaseOrderResponse(order *domain.PurchaseOrder) PurchaseOrderResponse {
	items := make([]PurchaseItemResponse, len(order.Items))
	for i, item := range order.Items {
		items[i] = PurchaseItemResponse{
			ProductID:   string(item.ProductID),
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitCost:    item.UnitCost.Fixed(),
			Subtotal:    item.Subtotal().Fixed(),
		}
	}
	return PurchaseOrderResponse{
		ID:        string(order.ID),
		Number:    order.Number,
		Supplier:  order.Supplier,
		Items:     items,
		Total:     order.Total.Fixed(),
		Status:    string(order.Status),
		Date:      order.Date(),
		CreatedAt: order.CreatedAt,
		UpdatedAt: order.UpdatedAt,
	}
}

func NewPurchaseOrderController(orderBookService *service.OrderBookService, queryService *service.QueryService) *PurchaseOrderController {
	return &PurchaseOrderController{orderBookService: orderBookService, queryService: queryService}
}

// CreatePurchaseOrder godoc
// @Summary     Create a purchase order
// @Description Snapshots each product's cost. Stock is unchanged until the order is received.
// @Tags        purchase-orders
// @Accept      json
// @Produce     json
// @Param       Idempotency-Key header   string                          false "Idempotency key"
// @Param       request         body     dto.CreatePurchaseOrderRequest  true  "Purchase order data"
// @Success     201             {object} PurchaseOrderResponse
// @Failure     400             {object} handlers.ErrorResponse
// @Failure     404             {object} handlers.ErrorResponse
// @Router      /api/v1/purchase-orders [post]
func (pc *PurchaseOrderController) CreatePurchaseOrder(c *gin.Context) {
	var request dto.CreatePurchaseOrderRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		handlers.HandleBindError(c, err)
		return
	}
	order, err := pc.orderBookService.CreatePurchaseOrder(c.Request.Context(), c.GetHeader(IdempotencyKeyHeader), &request)
	if err != nil {
		handlers.HandleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, NewPurchaseOrderResponse(order))
}

func (pc *PurchaseOrderController) ListPurchaseOrders(c *gin.Context) {
	var query dto.ListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		handlers.HandleBindError(c, err)
		return
	}
	orders, err := pc.queryService.PurchaseOrders(c.Request.Context(), query)
	if err != nil {
		handlers.HandleError(c, err)
		return
	}
	response := make([]PurchaseOrderResponse, len(orders))
	for i, order := range orders {
		response[i] = NewPurchaseOrderResponse(order)
	}
	c.JSON(http.StatusOK, response)
}

func (pc *PurchaseOrderController) GetPurchaseOrder(c *gin.Context) {
	id, ok := orderID(c, "purchase order")
	if !ok {
		return
	}
	order, err := pc.orderBookService.GetPurchaseOrder(c.Request.Context(), id)
	if err != nil {
		handlers.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, NewPurchaseOrderResponse(order))
}

// UpdatePurchaseOrderStatus godoc
// @Summary     Advance a purchase order
// @Description pending -> ordered -> received. Receiving adds the ordered quantities to stock.
// @Tags        purchase-orders
// @Accept      json
// @Produce     json
// @Param       id      path     string                  true "Purchase order ID"
// @Param       request body     dto.UpdateStatusRequest true "New status"
// @Success     200     {object} PurchaseOrderResponse
// @Failure     404     {object} handlers.ErrorResponse
// @Failure     409     {object} handlers.ErrorResponse
// @Router      /api/v1/purchase-orders/{id}/status [patch]
func (pc *PurchaseOrderController) UpdatePurchaseOrderStatus(c *gin.Context) {
	id, ok := orderID(c, "purchase order")
	if !ok {
		return
	}
	var request dto.UpdateStatusRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		handlers.HandleBindError(c, err)
		return
	}
	order, err := pc.orderBookService.TransitionPurchaseOrderStatus(c.Request.Context(), id, request.Status)
	if err != nil {
		handlers.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, NewPurchaseOrderResponse(order))
}

func (pc *PurchaseOrderController) ExportPurchaseOrders(c *gin.Context) {
	var query dto.ListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		handlers.HandleBindError(c, err)
		return
	}
	orders, err := pc.queryService.PurchaseOrders(c.Request.Context(), query)
	if err != nil {
		handlers.HandleError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="purchase-orders.csv"`)
	c.Data(http.StatusOK, csvContentType, []byte(export.PurchaseOrders(orders)))
}
