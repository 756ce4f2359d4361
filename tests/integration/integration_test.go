package integration_test

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	adaptconfig "github.com/rafaelleal24/stockledger/internal/adapters/config"
	"github.com/rafaelleal24/stockledger/internal/adapters/memory"
	"github.com/rafaelleal24/stockledger/internal/adapters/outbox"
	adaptrabbitmq "github.com/rafaelleal24/stockledger/internal/adapters/rabbitmq"
	adaptredis "github.com/rafaelleal24/stockledger/internal/adapters/redis"
	"github.com/rafaelleal24/stockledger/internal/core/domain"
	"github.com/rafaelleal24/stockledger/internal/core/dto"
	"github.com/rafaelleal24/stockledger/internal/core/port"
	"github.com/rafaelleal24/stockledger/internal/core/service"
	tcrabbit "github.com/testcontainers/testcontainers-go/modules/rabbitmq"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"
)

var (
	redisClient  *adaptredis.Client
	broker       *adaptrabbitmq.RabbitMQAdapter
	amqpEndpoint string
)

func TestMain(m *testing.M) {
	ctx := context.Background()

	// --- Redis ---
	redisContainer, err := tcredis.Run(ctx, "redis:7-alpine")
	if err != nil {
		log.Fatalf("redis container: %v", err)
	}
	redisEndpoint, err := redisContainer.ConnectionString(ctx)
	if err != nil {
		log.Fatalf("redis connection string: %v", err)
	}
	redisClient, err = adaptredis.NewConnection(adaptconfig.RedisConfig{URL: redisEndpoint})
	if err != nil {
		log.Fatalf("redis connect: %v", err)
	}

	// --- RabbitMQ ---
	rabbitContainer, err := tcrabbit.Run(ctx, "rabbitmq:3-management-alpine")
	if err != nil {
		log.Fatalf("rabbitmq container: %v", err)
	}
	amqpEndpoint, err = rabbitContainer.AmqpURL(ctx)
	if err != nil {
		log.Fatalf("rabbitmq amqp url: %v", err)
	}
	exchanges := make([]adaptconfig.ExchangeConfig, 0, 3)
	for _, entity := range []string{"product", "sale", "purchase_order"} {
		exchanges = append(exchanges, adaptconfig.ExchangeConfig{Name: "exchange." + entity, Type: "direct", Durable: true})
	}
	broker, err = adaptrabbitmq.NewRabbitMQAdapter(adaptconfig.RabbitMQConfig{
		URL:             amqpEndpoint,
		MaxRetries:      2,
		RetryDelay:      100 * time.Millisecond,
		ExchangeConfigs: exchanges,
	})
	if err != nil {
		log.Fatalf("rabbitmq adapter: %v", err)
	}

	code := m.Run()

	_ = broker.Close()
	_ = redisClient.Close()
	_ = redisContainer.Terminate(ctx)
	_ = rabbitContainer.Terminate(ctx)

	os.Exit(code)
}

func setupConsumer(t *testing.T, exchange, routingKey string) <-chan amqp.Delivery {
	t.Helper()

	conn, err := amqp.Dial(amqpEndpoint)
	if err != nil {
		t.Fatalf("consumer dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	ch, err := conn.Channel()
	if err != nil {
		t.Fatalf("consumer channel: %v", err)
	}
	t.Cleanup(func() { ch.Close() })

	q, err := ch.QueueDeclare("", false, true, true, false, nil)
	if err != nil {
		t.Fatalf("queue declare: %v", err)
	}
	if err := ch.QueueBind(q.Name, routingKey, exchange, false, nil); err != nil {
		t.Fatalf("queue bind: %v", err)
	}

	msgs, err := ch.Consume(q.Name, "", true, false, false, false, nil)
	if err != nil {
		t.Fatalf("consume: %v", err)
	}
	return msgs
}

func receive[T any](t *testing.T, msgs <-chan amqp.Delivery, what string) T {
	t.Helper()
	var event T
	select {
	case msg := <-msgs:
		if err := json.Unmarshal(msg.Body, &event); err != nil {
			t.Fatalf("unmarshal %s: %v", what, err)
		}
	case <-time.After(10 * time.Second):
		t.Fatalf("timed out waiting for %s", what)
	}
	return event
}

type stack struct {
	catalog   *service.CatalogService
	orderBook *service.OrderBookService
	handler   *outbox.Handler
}

// buildStack wires one ledger instance. Instances built over the same products
// and orders stand in for replicas sharing state behind one redis.
func buildStack(
	t *testing.T,
	prefix string,
	products *memory.ProductRepository,
	orders *memory.OrderRepository,
) *stack {
	t.Helper()

	outboxRepo := memory.NewOutboxRepository()
	events := service.NewEventFanout(outbox.NewRecorder(outboxRepo))
	txManager := memory.NewTransactionManager()
	settings := memory.NewSettingsRepository(domain.DefaultSettings())

	saleCache := adaptredis.NewCache[service.IdempotencyEntry[domain.Sale]](redisClient, prefix+":sale")
	poCache := adaptredis.NewCache[service.IdempotencyEntry[domain.PurchaseOrder]](redisClient, prefix+":po")

	catalog := service.NewCatalogService(products, settings, events, txManager)
	orderBook := service.NewOrderBookService(
		orders,
		products,
		catalog,
		events,
		txManager,
		service.NewIdempotencyService(saleCache, 5*time.Minute, 50*time.Millisecond, 5*time.Second),
		service.NewIdempotencyService(poCache, 5*time.Minute, 50*time.Millisecond, 5*time.Second),
	)

	return &stack{
		catalog:   catalog,
		orderBook: orderBook,
		handler: outbox.NewHandler(outboxRepo, broker, adaptconfig.OutboxConfig{
			Interval:  100 * time.Millisecond,
			BatchSize: 50,
		}),
	}
}

func addProduct(t *testing.T, s *stack, sku string, stock int) *domain.Product {
	t.Helper()
	minStock := 5
	product, err := s.catalog.Add(context.Background(), &dto.CreateProductRequest{
		Name:     "Widget " + sku,
		SKU:      sku,
		Category: "Integration",
		Price:    "29.99",
		Cost:     "12.50",
		Stock:    stock,
		MinStock: &minStock,
	})
	if err != nil {
		t.Fatalf("add product %s: %v", sku, err)
	}
	return product
}

func TestIntegration_PurchaseOrderReceipt_RelaysEvents(t *testing.T) {
	statusMsgs := setupConsumer(t, "exchange.purchase_order", "purchase_order.status_changed")
	stockMsgs := setupConsumer(t, "exchange.product", "product.stock_changed")

	s := buildStack(t, "int-receipt", memory.NewProductRepository(), memory.NewOrderRepository())
	ctx := context.Background()

	handlerCtx, cancelHandler := context.WithCancel(ctx)
	defer cancelHandler()
	go s.handler.Start(handlerCtx)

	product := addProduct(t, s, "INT-001", 2)

	po, err := s.orderBook.CreatePurchaseOrder(ctx, "", &dto.CreatePurchaseOrderRequest{
		Supplier: "TechSupply Co.",
		Items:    []dto.OrderItem{{ProductID: product.ID, Quantity: 40}},
	})
	if err != nil {
		t.Fatalf("create purchase order: %v", err)
	}
	if po.Total.Fixed() != "500.00" {
		t.Fatalf("expected total 500.00, got %s", po.Total.Fixed())
	}

	for _, status := range []domain.PurchaseOrderStatus{domain.PurchaseOrderStatusOrdered, domain.PurchaseOrderStatusReceived} {
		if _, err := s.orderBook.TransitionPurchaseOrderStatus(ctx, po.ID, string(status)); err != nil {
			t.Fatalf("transition to %q: %v", status, err)
		}
		event := receive[domain.PurchaseOrderStatusChangedEvent](t, statusMsgs, "purchase_order.status_changed")
		if event.Status != status {
			t.Fatalf("expected status %q in event, got %q", status, event.Status)
		}
		if event.Number != po.Number {
			t.Fatalf("expected number %s in event, got %s", po.Number, event.Number)
		}
	}

	stock := receive[domain.StockChangedEvent](t, stockMsgs, "product.stock_changed")
	if stock.SKU != "INT-001" || stock.OldStock != 2 || stock.NewStock != 42 {
		t.Fatalf("unexpected stock event: %+v", stock)
	}

	after, err := s.catalog.Get(ctx, product.ID)
	if err != nil {
		t.Fatalf("get product: %v", err)
	}
	if after.Stock != 42 {
		t.Fatalf("expected stock 42, got %d", after.Stock)
	}
}

func TestIntegration_LowStockAfterSale(t *testing.T) {
	lowMsgs := setupConsumer(t, "exchange.product", "product.low_stock")

	s := buildStack(t, "int-low-stock", memory.NewProductRepository(), memory.NewOrderRepository())
	ctx := context.Background()

	product := addProduct(t, s, "INT-002", 8)
	if _, err := s.orderBook.CreateSale(ctx, "", &dto.CreateSaleRequest{
		Customer: "Ana Souza",
		Items:    []dto.OrderItem{{ProductID: product.ID, Quantity: 4}},
	}); err != nil {
		t.Fatalf("create sale: %v", err)
	}

	if published := s.handler.Drain(ctx); published == 0 {
		t.Fatal("expected drain to publish recorded events")
	}

	event := receive[domain.LowStockEvent](t, lowMsgs, "product.low_stock")
	if event.SKU != "INT-002" || event.Stock != 4 || event.MinStock != 5 {
		t.Fatalf("unexpected low stock event: %+v", event)
	}
}

func TestIntegration_SaleIdempotency_SharedAcrossInstances(t *testing.T) {
	products := memory.NewProductRepository()
	orders := memory.NewOrderRepository()
	first := buildStack(t, "int-idemp", products, orders)
	second := buildStack(t, "int-idemp", products, orders)
	ctx := context.Background()

	product := addProduct(t, first, "INT-003", 100)
	request := &dto.CreateSaleRequest{
		Customer: "Mike Davis",
		Items:    []dto.OrderItem{{ProductID: product.ID, Quantity: 2}},
	}

	sale1, err := first.orderBook.CreateSale(ctx, "checkout-42", request)
	if err != nil {
		t.Fatalf("first create: %v", err)
	}
	sale2, err := second.orderBook.CreateSale(ctx, "checkout-42", request)
	if err != nil {
		t.Fatalf("replayed create: %v", err)
	}
	if sale1.ID != sale2.ID || sale1.Number != sale2.Number {
		t.Fatalf("expected the same sale: %s/%s vs %s/%s", sale1.ID, sale1.Number, sale2.ID, sale2.Number)
	}

	p, _ := first.catalog.Get(ctx, product.ID)
	if p.Stock != 98 {
		t.Fatalf("expected stock 98 (single deduction), got %d", p.Stock)
	}
}

func TestIntegration_InsufficientStock_LeavesStockUntouched(t *testing.T) {
	s := buildStack(t, "int-insufficient", memory.NewProductRepository(), memory.NewOrderRepository())
	ctx := context.Background()

	product := addProduct(t, s, "INT-004", 2)
	if _, err := s.orderBook.CreateSale(ctx, "checkout-short", &dto.CreateSaleRequest{
		Customer: "Sarah Johnson",
		Items:    []dto.OrderItem{{ProductID: product.ID, Quantity: 5}},
	}); err == nil {
		t.Fatal("expected insufficient stock error")
	}

	unchanged, _ := s.catalog.Get(ctx, product.ID)
	if unchanged.Stock != 2 {
		t.Fatalf("stock should be unchanged: expected 2, got %d", unchanged.Stock)
	}
}

func TestIntegration_RateLimiter_SharedWindow(t *testing.T) {
	first := adaptredis.NewRateLimiter(redisClient)
	second := adaptredis.NewRateLimiter(redisClient)
	ctx := context.Background()

	allowed := 0
	for _, limiter := range []port.RateLimiter{first, second, first, second} {
		ok, err := limiter.Allow(ctx, "int-client", 3, time.Minute)
		if err != nil {
			t.Fatalf("allow: %v", err)
		}
		if ok {
			allowed++
		}
	}
	// may straddle a window boundary once
	if allowed != 3 && allowed != 4 {
		t.Fatalf("expected the shared window to cap requests, allowed %d", allowed)
	}
}
