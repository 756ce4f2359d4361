package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rafaelleal24/stockledger/internal/adapters/http/handlers"
	"github.com/rafaelleal24/stockledger/internal/core/service"
)

type DashboardController struct {
	dashboardService *service.DashboardService
}

type CategoryCountResponse struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

type DashboardResponse struct {
	TotalProducts      int                     `json:"total_products"`
	StockValue         string                  `json:"stock_value"`
	Revenue            string                  `json:"revenue"`
	OpenPurchaseOrders int                     `json:"open_purchase_orders"`
	PendingSales       int                     `json:"pending_sales"`
	LowStock           []ProductResponse       `json:"low_stock"`
	Categories         []CategoryCountResponse `json:"categories"`
	RecentSales        []SaleResponse          `json:"recent_sales"`
}

func NewDashboardController(dashboardService *service.DashboardService) *DashboardController {
	return &DashboardController{dashboardService: dashboardService}
}

// Summary godoc
// @Summary     Dashboard summary
// @Tags        dashboard
// @Produce     json
// @Success     200 {object} DashboardResponse
// @Router      /api/v1/dashboard [get]
func (dc *DashboardController) Summary(c *gin.Context) {
	summary, err := dc.dashboardService.Summary(c.Request.Context())
	if err != nil {
		handlers.HandleError(c, err)
		return
	}

	categories := make([]CategoryCountResponse, len(summary.Categories))
	for i, cc := range summary.Categories {
		categories[i] = CategoryCountResponse{Category: cc.Category, Count: cc.Count}
	}

	c.JSON(http.StatusOK, DashboardResponse{
		TotalProducts:      summary.TotalProducts,
		StockValue:         summary.StockValue.Fixed(),
		Revenue:            summary.Revenue.Fixed(),
		OpenPurchaseOrders: summary.OpenPurchaseOrders,
		PendingSales:       summary.PendingSales,
		LowStock:           NewProductResponses(summary.LowStock),
		Categories:         categories,
		RecentSales:        NewSaleResponses(summary.RecentSales),
	})
}
