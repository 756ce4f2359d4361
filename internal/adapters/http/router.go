package http

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rafaelleal24/stockledger/internal/adapters/config"
	"github.com/rafaelleal24/stockledger/internal/adapters/http/controllers"
	"github.com/rafaelleal24/stockledger/internal/adapters/http/middleware"
	"github.com/rafaelleal24/stockledger/internal/core/port"
)

type Controllers struct {
	Health        *controllers.HealthController
	Product       *controllers.ProductController
	Sale          *controllers.SaleController
	PurchaseOrder *controllers.PurchaseOrderController
	Dashboard     *controllers.DashboardController
	User          *controllers.UserController
}

type Router struct {
	controllers Controllers
	rateLimiter port.RateLimiter
	rateLimit   config.RateLimitConfig
}

func NewRouter(controllers Controllers, rateLimiter port.RateLimiter, rateLimit config.RateLimitConfig) *Router {
	return &Router{
		controllers: controllers,
		rateLimiter: rateLimiter,
		rateLimit:   rateLimit,
	}
}

func (r *Router) SetupRoutes(router *gin.Engine) {
	limited := middleware.RateLimit(r.rateLimiter, r.rateLimit.Limit, r.rateLimit.Window)
	c := r.controllers

	apiGroup := router.Group("/api")
	v1Group := apiGroup.Group("/v1")
	{
		v1Group.Use(middleware.LogRequest())
		v1Group.GET("/health", c.Health.Health)
		v1Group.GET("/dashboard", c.Dashboard.Summary)

		v1Group.GET("/products", c.Product.ListProducts)
		v1Group.POST("/products", limited, c.Product.CreateProduct)
		v1Group.GET("/products/export", c.Product.ExportProducts)
		v1Group.GET("/products/categories", c.Product.ListCategories)
		v1Group.GET("/products/:id", c.Product.GetProduct)
		v1Group.PATCH("/products/:id", c.Product.UpdateProduct)
		v1Group.DELETE("/products/:id", c.Product.DeleteProduct)
		v1Group.POST("/products/:id/stock", limited, c.Product.AdjustStock)

		v1Group.GET("/sales", c.Sale.ListSales)
		v1Group.POST("/sales", limited, c.Sale.CreateSale)
		v1Group.GET("/sales/export", c.Sale.ExportSales)
		v1Group.GET("/sales/:id", c.Sale.GetSale)
		v1Group.PATCH("/sales/:id/status", limited, c.Sale.UpdateSaleStatus)

		v1Group.GET("/purchase-orders", c.PurchaseOrder.ListPurchaseOrders)
		v1Group.POST("/purchase-orders", limited, c.PurchaseOrder.CreatePurchaseOrder)
		v1Group.GET("/purchase-orders/export", c.PurchaseOrder.ExportPurchaseOrders)
		v1Group.GET("/purchase-orders/:id", c.PurchaseOrder.GetPurchaseOrder)
		v1Group.PATCH("/purchase-orders/:id/status", limited, c.PurchaseOrder.UpdatePurchaseOrderStatus)

		v1Group.GET("/users", c.User.ListUsers)
		v1Group.POST("/users/invite", limited, c.User.InviteUser)
		v1Group.GET("/settings", c.User.GetSettings)
		v1Group.PUT("/settings", c.User.UpdateSettings)
	}
}

// Handler builds the gin engine with every route registered.
func (r *Router) Handler() http.Handler {
	engine := gin.New()
	engine.Use(gin.Recovery())
	r.SetupRoutes(engine)
	return engine
}

func (r *Router) ListenAndServe(ctx context.Context, config config.HTTPConfig) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%s", config.BindInterface, config.Port),
		Handler:           r.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}
