package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rafaelleal24/stockledger/internal/adapters/config"
	adapthttp "github.com/rafaelleal24/stockledger/internal/adapters/http"
	"github.com/rafaelleal24/stockledger/internal/adapters/http/controllers"
	"github.com/rafaelleal24/stockledger/internal/adapters/memory"
	"github.com/rafaelleal24/stockledger/internal/core/domain"
	"github.com/rafaelleal24/stockledger/internal/core/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testServer struct {
	handler http.Handler
}

func newTestServer(t *testing.T, limit int, checks ...controllers.HealthChecker) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	products := memory.NewProductRepository()
	orders := memory.NewOrderRepository()
	settings := memory.NewSettingsRepository(domain.DefaultSettings())
	tx := memory.NewTransactionManager()
	events := service.NewEventFanout()

	catalog := service.NewCatalogService(products, settings, events, tx)
	saleIdem := service.NewIdempotencyService[domain.Sale](memory.NewCache[service.IdempotencyEntry[domain.Sale]]("idempotency:sale"), time.Minute, 10*time.Millisecond, time.Second)
	poIdem := service.NewIdempotencyService[domain.PurchaseOrder](memory.NewCache[service.IdempotencyEntry[domain.PurchaseOrder]]("idempotency:po"), time.Minute, 10*time.Millisecond, time.Second)
	orderBook := service.NewOrderBookService(orders, products, catalog, events, tx, saleIdem, poIdem)
	queries := service.NewQueryService(products, orders)

	router := adapthttp.NewRouter(adapthttp.Controllers{
		Health:        controllers.NewHealthController(checks),
		Product:       controllers.NewProductController(catalog, queries),
		Sale:          controllers.NewSaleController(orderBook, queries),
		PurchaseOrder: controllers.NewPurchaseOrderController(orderBook, queries),
		Dashboard:     controllers.NewDashboardController(service.NewDashboardService(products, orders)),
		User:          controllers.NewUserController(service.NewUserService(memory.NewUserRepository()), service.NewSettingsService(settings)),
	}, memory.NewRateLimiter(), config.RateLimitConfig{Limit: limit, Window: time.Minute})

	return &testServer{handler: router.Handler()}
}

func (s *testServer) do(t *testing.T, method, path string, body any, headers ...string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, "/api/v1"+path, reader)
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func (s *testServer) createProduct(t *testing.T, name, sku string, stock, minStock int) controllers.ProductResponse {
	t.Helper()
	rec := s.do(t, http.MethodPost, "/products", map[string]any{
		"name": name, "sku": sku, "category": "Electronics",
		"price": "99.99", "cost": "45.00", "stock": stock, "min_stock": minStock,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decode[controllers.ProductResponse](t, rec)
}

func TestProducts(t *testing.T) {
	s := newTestServer(t, 100)
	product := s.createProduct(t, "Wireless Headphones", "WH-001", 45, 10)

	assert.Equal(t, "99.99", product.Price)
	assert.False(t, product.IsLowStock)

	t.Run("duplicate sku is a conflict", func(t *testing.T) {
		rec := s.do(t, http.MethodPost, "/products", map[string]any{
			"name": "Copy", "sku": "WH-001", "category": "Electronics", "price": "1",
		})
		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.Equal(t, "duplicate_sku", decode[map[string]string](t, rec)["kind"])
	})

	t.Run("missing fields are rejected", func(t *testing.T) {
		rec := s.do(t, http.MethodPost, "/products", map[string]any{"name": "Nameless"})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("malformed body is rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/products", strings.NewReader("{"))
		rec := httptest.NewRecorder()
		s.handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("get and patch", func(t *testing.T) {
		rec := s.do(t, http.MethodPatch, "/products/"+product.ID, map[string]any{"stock": 5})
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		updated := decode[controllers.ProductResponse](t, rec)
		assert.Equal(t, 5, updated.Stock)
		assert.True(t, updated.IsLowStock)

		rec = s.do(t, http.MethodGet, "/products/"+product.ID, nil)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("adjust stock below zero is rejected", func(t *testing.T) {
		rec := s.do(t, http.MethodPost, "/products/"+product.ID+"/stock", map[string]any{"delta": -50})
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})

	t.Run("search filters the list", func(t *testing.T) {
		s.createProduct(t, "USB-C Cable", "UC-002", 150, 20)
		rec := s.do(t, http.MethodGet, "/products?search=usb&category=all", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		list := decode[[]controllers.ProductResponse](t, rec)
		require.Len(t, list, 1)
		assert.Equal(t, "UC-002", list[0].SKU)
	})

	t.Run("export renders csv", func(t *testing.T) {
		rec := s.do(t, http.MethodGet, "/products/export?search=wh-001", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Header().Get("Content-Type"), "text/csv")
		assert.Equal(t, "Name,SKU,Category,Price,Stock,Min Stock,Status\nWireless Headphones,WH-001,Electronics,99.99,5,10,active", rec.Body.String())
	})

	t.Run("delete then get is not found", func(t *testing.T) {
		rec := s.do(t, http.MethodDelete, "/products/"+product.ID, nil)
		assert.Equal(t, http.StatusNoContent, rec.Code)
		rec = s.do(t, http.MethodGet, "/products/"+product.ID, nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("malformed id is not found", func(t *testing.T) {
		rec := s.do(t, http.MethodGet, "/products/not-an-id", nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestSales(t *testing.T) {
	s := newTestServer(t, 100)
	cable := s.createProduct(t, "USB-C Cable", "UC-002", 5, 10)

	rec := s.do(t, http.MethodPost, "/sales", map[string]any{
		"customer": "John Smith",
		"status":   "pending",
		"items":    []map[string]any{{"product_id": cable.ID, "quantity": 3}},
	}, controllers.IdempotencyKeyHeader, "checkout-1")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	sale := decode[controllers.SaleResponse](t, rec)
	assert.Equal(t, "SAL-001", sale.Number)
	assert.Equal(t, "299.97", sale.Total)

	t.Run("replay returns the same sale", func(t *testing.T) {
		rec := s.do(t, http.MethodPost, "/sales", map[string]any{
			"customer": "John Smith",
			"status":   "pending",
			"items":    []map[string]any{{"product_id": cable.ID, "quantity": 3}},
		}, controllers.IdempotencyKeyHeader, "checkout-1")
		require.Equal(t, http.StatusCreated, rec.Code)
		assert.Equal(t, sale.ID, decode[controllers.SaleResponse](t, rec).ID)
	})

	t.Run("insufficient stock", func(t *testing.T) {
		rec := s.do(t, http.MethodPost, "/sales", map[string]any{
			"customer": "Mike Davis",
			"items":    []map[string]any{{"product_id": cable.ID, "quantity": 10}},
		})
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Equal(t, "insufficient_stock", decode[map[string]string](t, rec)["kind"])
	})

	t.Run("empty items", func(t *testing.T) {
		rec := s.do(t, http.MethodPost, "/sales", map[string]any{"customer": "Mike Davis", "items": []any{}})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("cancel restores stock and is terminal", func(t *testing.T) {
		rec := s.do(t, http.MethodPatch, "/sales/"+sale.ID+"/status", map[string]any{"status": "cancelled"})
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		assert.Equal(t, "cancelled", decode[controllers.SaleResponse](t, rec).Status)

		rec = s.do(t, http.MethodGet, "/products/"+cable.ID, nil)
		assert.Equal(t, 5, decode[controllers.ProductResponse](t, rec).Stock)

		rec = s.do(t, http.MethodPatch, "/sales/"+sale.ID+"/status", map[string]any{"status": "completed"})
		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("list filters by status", func(t *testing.T) {
		rec := s.do(t, http.MethodGet, "/sales?status=cancelled", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Len(t, decode[[]controllers.SaleResponse](t, rec), 1)
	})
}

func TestPurchaseOrders(t *testing.T) {
	s := newTestServer(t, 100)
	stand := s.createProduct(t, "Laptop Stand", "LS-003", 0, 5)

	rec := s.do(t, http.MethodPost, "/purchase-orders", map[string]any{
		"supplier": "OfficeWorld",
		"items":    []map[string]any{{"product_id": stand.ID, "quantity": 30}},
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	po := decode[controllers.PurchaseOrderResponse](t, rec)
	assert.Equal(t, "PO-001", po.Number)
	assert.Equal(t, "1350.00", po.Total)

	rec = s.do(t, http.MethodPatch, "/purchase-orders/"+po.ID+"/status", map[string]any{"status": "received"})
	assert.Equal(t, http.StatusConflict, rec.Code, "pending cannot skip to received")

	for _, status := range []string{"ordered", "received"} {
		rec = s.do(t, http.MethodPatch, "/purchase-orders/"+po.ID+"/status", map[string]any{"status": status})
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	}

	rec = s.do(t, http.MethodGet, "/products/"+stand.ID, nil)
	assert.Equal(t, 30, decode[controllers.ProductResponse](t, rec).Stock)

	rec = s.do(t, http.MethodGet, "/purchase-orders/export", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.HasPrefix(rec.Body.String(), "PO Number,Supplier,Items,Total,Status,Date\nPO-001,OfficeWorld,Laptop Stand(30),1350.00,received,"))
}

func TestDashboardUsersAndSettings(t *testing.T) {
	s := newTestServer(t, 100)
	s.createProduct(t, "USB-C Cable", "UC-002", 5, 10)

	rec := s.do(t, http.MethodGet, "/dashboard", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	summary := decode[controllers.DashboardResponse](t, rec)
	assert.Equal(t, 1, summary.TotalProducts)
	assert.Equal(t, "225.00", summary.StockValue)
	assert.Len(t, summary.LowStock, 1)

	rec = s.do(t, http.MethodPost, "/users/invite", map[string]any{"email": "Emily@Example.com"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, "pending", decode[controllers.UserResponse](t, rec).Status)

	rec = s.do(t, http.MethodPost, "/users/invite", map[string]any{"email": "emily@example.com"})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = s.do(t, http.MethodGet, "/users?search=emily", nil)
	assert.Len(t, decode[[]controllers.UserResponse](t, rec), 1)

	rec = s.do(t, http.MethodPut, "/settings", map[string]any{"currency": "EUR"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "EUR", decode[controllers.SettingsResponse](t, rec).Currency)

	rec = s.do(t, http.MethodPut, "/settings", map[string]any{"currency": "XYZ"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRateLimit(t *testing.T) {
	s := newTestServer(t, 1)

	rec := s.do(t, http.MethodPost, "/users/invite", map[string]any{"email": "a@example.com"})
	assert.Equal(t, http.StatusCreated, rec.Code)

	rec = s.do(t, http.MethodPost, "/users/invite", map[string]any{"email": "b@example.com"})
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "60", rec.Header().Get("Retry-After"))
}

func TestHealth(t *testing.T) {
	t.Run("healthy", func(t *testing.T) {
		s := newTestServer(t, 100, controllers.HealthChecker{Name: "ledger", Check: func(context.Context) error { return nil }})
		rec := s.do(t, http.MethodGet, "/health", nil)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
	})

	t.Run("degraded", func(t *testing.T) {
		s := newTestServer(t, 100, controllers.HealthChecker{Name: "redis", Check: func(context.Context) error { return errors.New("connection refused") }})
		rec := s.do(t, http.MethodGet, "/health", nil)
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
		body := decode[controllers.HealthResponse](t, rec)
		assert.Equal(t, "connection refused", body.Services["redis"])
	})
}
