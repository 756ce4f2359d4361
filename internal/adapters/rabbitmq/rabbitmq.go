package rabbitmq

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rafaelleal24/stockledger/internal/adapters/config"
	"github.com/rafaelleal24/stockledger/internal/core/domain"
	"github.com/rafaelleal24/stockledger/internal/core/logger"
	"github.com/rafaelleal24/stockledger/internal/core/port"

	amqp "github.com/rabbitmq/amqp091-go"
)

// ErrUnknownExchange is returned when an event's entity has no declared exchange.
var ErrUnknownExchange = errors.New("rabbitmq: no exchange declared for entity")

// RabbitMQAdapter publishes ledger events to one exchange per entity
// (exchange.product, exchange.sale, exchange.purchase_order), routed by event name.
type RabbitMQAdapter struct {
	mu        sync.Mutex
	conn      *amqp.Connection
	channel   *amqp.Channel
	config    config.RabbitMQConfig
	exchanges map[string]struct{}
}

var _ port.BrokerPort = (*RabbitMQAdapter)(nil)

func NewRabbitMQAdapter(cfg config.RabbitMQConfig) (*RabbitMQAdapter, error) {
	adapter := &RabbitMQAdapter{
		config:    cfg,
		exchanges: make(map[string]struct{}, len(cfg.ExchangeConfigs)),
	}
	for _, ec := range cfg.ExchangeConfigs {
		adapter.exchanges[ec.Name] = struct{}{}
	}

	if err := adapter.connect(); err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	return adapter, nil
}

func exchangeFor(entityName string) string {
	return "exchange." + entityName
}

func (r *RabbitMQAdapter) connect() error {
	conn, err := amqp.Dial(r.config.URL)
	if err != nil {
		return fmt.Errorf("failed to dial: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return fmt.Errorf("failed to open channel: %w", err)
	}

	for _, ec := range r.config.ExchangeConfigs {
		if err := ch.ExchangeDeclare(ec.Name, ec.Type, ec.Durable, ec.AutoDelete, false, false, nil); err != nil {
			ch.Close()
			conn.Close()
			return fmt.Errorf("failed to declare exchange %s: %w", ec.Name, err)
		}
	}

	r.conn = conn
	r.channel = ch
	return nil
}

func (r *RabbitMQAdapter) reconnect() error {
	if r.channel != nil {
		r.channel.Close()
		r.channel = nil
	}
	if r.conn != nil {
		r.conn.Close()
		r.conn = nil
	}
	return r.connect()
}

func (r *RabbitMQAdapter) Publish(ctx context.Context, event domain.Event) error {
	body, err := json.Marshal(event)
	if err != nil {
		logger.Error(ctx, "rabbitmq: marshal event failed", err, map[string]any{
			"event_name":  event.GetName(),
			"entity_name": event.GetEntityName(),
		})
		return fmt.Errorf("failed to marshal event: %w", err)
	}
	return r.publish(ctx, event.GetName(), event.GetEntityName(), body)
}

func (r *RabbitMQAdapter) PublishRaw(ctx context.Context, eventName, entityName string, data []byte) error {
	return r.publish(ctx, eventName, entityName, data)
}

func (r *RabbitMQAdapter) publish(ctx context.Context, eventName, entityName string, body []byte) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}

	exchange := exchangeFor(entityName)
	if _, ok := r.exchanges[exchange]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownExchange, entityName)
	}

	msg := amqp.Publishing{
		ContentType:  "application/json",
		Body:         body,
		DeliveryMode: amqp.Persistent,
		MessageId:    uuid.NewString(),
		Type:         eventName,
		Timestamp:    time.Now().UTC(),
	}

	var lastErr error
	for attempt := 0; attempt <= r.config.MaxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(r.config.RetryDelay):
			}
		}

		r.mu.Lock()

		if r.channel == nil {
			if err := r.reconnect(); err != nil {
				r.mu.Unlock()
				lastErr = fmt.Errorf("reconnect failed: %w", err)
				logger.Warn(ctx, "rabbitmq: reconnect failed", map[string]any{
					"attempt": attempt + 1,
					"error":   err.Error(),
				})
				continue
			}
		}

		err := r.channel.PublishWithContext(ctx, exchange, eventName, false, false, msg)
		if err != nil {
			r.channel = nil
			r.mu.Unlock()
			lastErr = err
			logger.Warn(ctx, "rabbitmq: publish failed", map[string]any{
				"attempt":    attempt + 1,
				"exchange":   exchange,
				"event_name": eventName,
				"error":      err.Error(),
			})
			continue
		}

		r.mu.Unlock()
		logger.Debug(ctx, "rabbitmq: event published", map[string]any{
			"exchange":   exchange,
			"event_name": eventName,
			"message_id": msg.MessageId,
		})
		return nil
	}

	return fmt.Errorf("failed to publish after %d attempts: %w", r.config.MaxRetries+1, lastErr)
}

func (r *RabbitMQAdapter) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var errs []error
	if r.channel != nil {
		if err := r.channel.Close(); err != nil {
			errs = append(errs, fmt.Errorf("closing channel: %w", err))
		}
		r.channel = nil
	}
	if r.conn != nil {
		if err := r.conn.Close(); err != nil {
			errs = append(errs, fmt.Errorf("closing connection: %w", err))
		}
		r.conn = nil
	}
	return errors.Join(errs...)
}

// HealthCheck reports whether the connection is still usable. A dropped
// channel on a live connection is healthy: the next publish reopens it.
func (r *RabbitMQAdapter) HealthCheck(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.conn == nil || r.conn.IsClosed() {
		return errors.New("connection is closed")
	}
	return nil
}
