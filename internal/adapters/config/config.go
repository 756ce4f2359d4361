package config

import (
	"time"

	"github.com/joho/godotenv"
)

type RabbitMQConfig struct {
	URL             string
	MaxRetries      int
	RetryDelay      time.Duration
	ExchangeConfigs []ExchangeConfig
}

// Enabled reports whether events should be relayed to a broker.
func (c RabbitMQConfig) Enabled() bool {
	return c.URL != ""
}

type ExchangeConfig struct {
	Name       string
	Type       string // direct, topic, fanout, headers
	Durable    bool
	AutoDelete bool
}

type RedisConfig struct {
	URL      string
	Password string
	DB       int
}

// Enabled reports whether idempotency keys and rate limits are shared through redis.
func (c RedisConfig) Enabled() bool {
	return c.URL != ""
}

type OutboxConfig struct {
	BatchSize int
	Interval  time.Duration
}

type IdempotencyConfig struct {
	TTL          time.Duration
	PollInterval time.Duration
	PollTimeout  time.Duration
}

type RateLimitConfig struct {
	Limit  int
	Window time.Duration
}

type HTTPConfig struct {
	Port          string
	BindInterface string
}

type LedgerConfig struct {
	SeedFile          string
	LowStockThreshold int
	Currency          string
}

type Config struct {
	Redis       RedisConfig
	RabbitMQ    RabbitMQConfig
	Outbox      OutboxConfig
	Idempotency IdempotencyConfig
	RateLimit   RateLimitConfig
	HTTP        HTTPConfig
	Ledger      LedgerConfig
	Logger      LoggerConfig
}

type LoggerConfig struct {
	Endpoint     string
	ServiceName  string
	Level        string
	IsProduction bool
}

func entityExchange(entity string) ExchangeConfig {
	return ExchangeConfig{
		Name:       "exchange." + entity,
		Type:       getStringEnv("RABBITMQ_EXCHANGE_TYPE", "direct"),
		Durable:    getBoolEnv("RABBITMQ_EXCHANGE_DURABLE", true),
		AutoDelete: getBoolEnv("RABBITMQ_EXCHANGE_AUTO_DELETE", false),
	}
}

func NewConfig() *Config {
	_ = godotenv.Load()
	return &Config{
		Redis: RedisConfig{
			URL:      getStringEnv("REDIS_URL", ""),
			Password: getStringEnv("REDIS_PASSWORD", ""),
			DB:       getIntEnv("REDIS_DB", 0),
		},
		Outbox: OutboxConfig{
			BatchSize: getIntEnv("OUTBOX_BATCH_SIZE", 100),
			Interval:  getDurationEnv("OUTBOX_INTERVAL", time.Millisecond, 500),
		},
		Idempotency: IdempotencyConfig{
			TTL:          getDurationEnv("IDEMPOTENCY_TTL", time.Second, 86400),
			PollInterval: getDurationEnv("IDEMPOTENCY_POLL_INTERVAL", time.Millisecond, 100),
			PollTimeout:  getDurationEnv("IDEMPOTENCY_POLL_TIMEOUT", time.Second, 5),
		},
		RateLimit: RateLimitConfig{
			Limit:  getIntEnv("RATE_LIMIT", 30),
			Window: getDurationEnv("RATE_LIMIT_WINDOW", time.Second, 60),
		},
		HTTP: HTTPConfig{
			Port:          getStringEnv("HTTP_PORT", "8080"),
			BindInterface: getStringEnv("HTTP_BIND_INTERFACE", "0.0.0.0"),
		},
		Ledger: LedgerConfig{
			SeedFile:          getStringEnv("SEED_FILE", ""),
			LowStockThreshold: getIntEnv("LOW_STOCK_THRESHOLD", 10),
			Currency:          getStringEnv("CURRENCY", "USD"),
		},
		RabbitMQ: RabbitMQConfig{
			URL:        getStringEnv("RABBITMQ_URL", ""),
			MaxRetries: getIntEnv("RABBITMQ_MAX_RETRIES", 3),
			RetryDelay: getDurationEnv("RABBITMQ_RETRY_DELAY", time.Second, 1),
			ExchangeConfigs: []ExchangeConfig{
				entityExchange("product"),
				entityExchange("sale"),
				entityExchange("purchase_order"),
			},
		},
		Logger: LoggerConfig{
			Endpoint:     getStringEnv("OTEL_ENDPOINT", "localhost:4317"),
			ServiceName:  getStringEnv("OTEL_SERVICE_NAME", "stockledger"),
			Level:        getStringEnv("LOG_LEVEL", "info"),
			IsProduction: getBoolEnv("IS_PRODUCTION", false),
		},
	}
}
