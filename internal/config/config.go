package config

import (
	"fmt"
	"time"

	pkgconfig "github.com/ginaisthando/sound/pkg/config"
)

// Config holds all service configuration, loaded from the environment.
type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	HTTP     HTTPConfig
	Redis    RedisConfig
	Postgres PostgresConfig
	Kafka    KafkaConfig
	Payment  PaymentConfig
	Tracing  TracingConfig
	Catalog  CatalogConfig
}

// HTTPConfig configures the HTTP server.
type HTTPConfig struct {
	Port            int           `env:"HTTP_PORT" envDefault:"8080"`
	ReadTimeout     time.Duration `env:"HTTP_READ_TIMEOUT" envDefault:"10s"`
	WriteTimeout    time.Duration `env:"HTTP_WRITE_TIMEOUT" envDefault:"30s"`
	IdleTimeout     time.Duration `env:"HTTP_IDLE_TIMEOUT" envDefault:"120s"`
	RequestTimeout  time.Duration `env:"HTTP_REQUEST_TIMEOUT" envDefault:"30s"`
	ShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" envDefault:"15s"`
	CORSOrigins     []string      `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`

	// RateLimitRPS of 0 disables per-IP rate limiting.
	RateLimitRPS   int `env:"HTTP_RATE_LIMIT_RPS" envDefault:"50"`
	RateLimitBurst int `env:"HTTP_RATE_LIMIT_BURST" envDefault:"100"`
}

// RedisConfig configures the cart store connection.
type RedisConfig struct {
	Addr     string        `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	Password string        `env:"REDIS_PASSWORD" envDefault:""`
	DB       int           `env:"REDIS_DB" envDefault:"0"`
	CartTTL  time.Duration `env:"CART_TTL" envDefault:"720h"`
}

// PostgresConfig configures the creator database connection.
type PostgresConfig struct {
	Host     string `env:"POSTGRES_HOST" envDefault:"localhost"`
	Port     int    `env:"POSTGRES_PORT" envDefault:"5432"`
	User     string `env:"POSTGRES_USER" envDefault:"sound"`
	Password string `env:"POSTGRES_PASSWORD" envDefault:"sound"`
	Database string `env:"POSTGRES_DB" envDefault:"sound"`
	SSLMode  string `env:"POSTGRES_SSLMODE" envDefault:"disable"`
	MaxConns int32  `env:"POSTGRES_MAX_CONNS" envDefault:"10"`

	// SlowQueryThreshold of 0 disables slow query logging.
	SlowQueryThreshold time.Duration `env:"POSTGRES_SLOW_QUERY_THRESHOLD" envDefault:"200ms"`
}

// DSN renders the pgx connection string.
func (c PostgresConfig) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.Database, c.SSLMode)
}

// KafkaConfig configures the domain event producer.
type KafkaConfig struct {
	Brokers []string `env:"KAFKA_BROKERS" envSeparator:"," envDefault:"localhost:9092"`
}

// PaymentConfig configures the simulated payment processor.
type PaymentConfig struct {
	Currency    string        `env:"PAYMENT_CURRENCY" envDefault:"usd"`
	ChargeDelay time.Duration `env:"PAYMENT_CHARGE_DELAY" envDefault:"1500ms"`
}

// TracingConfig configures OpenTelemetry export.
type TracingConfig struct {
	Enabled    bool    `env:"TRACING_ENABLED" envDefault:"false"`
	Endpoint   string  `env:"OTEL_EXPORTER_OTLP_ENDPOINT" envDefault:"localhost:4318"`
	SampleRate float64 `env:"TRACING_SAMPLE_RATE" envDefault:"1.0"`
}

// CatalogConfig configures the static pack feed.
type CatalogConfig struct {
	// FeedPath points at a JSON feed file. Empty means the built-in seed
	// catalog.
	FeedPath string `env:"CATALOG_FEED_PATH" envDefault:""`
}

// Load reads configuration from the environment and validates it.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := pkgconfig.Load(cfg); err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("invalid HTTP_PORT %d", c.HTTP.Port)
	}
	if c.Redis.Addr == "" {
		return fmt.Errorf("REDIS_ADDR is required")
	}
	if len(c.Kafka.Brokers) == 0 {
		return fmt.Errorf("KAFKA_BROKERS is required")
	}
	if c.Payment.ChargeDelay < 0 {
		return fmt.Errorf("PAYMENT_CHARGE_DELAY must not be negative")
	}
	if c.HTTP.RateLimitRPS < 0 {
		return fmt.Errorf("HTTP_RATE_LIMIT_RPS must not be negative")
	}
	if c.HTTP.RateLimitRPS > 0 && c.HTTP.RateLimitBurst < c.HTTP.RateLimitRPS {
		return fmt.Errorf("HTTP_RATE_LIMIT_BURST must be at least HTTP_RATE_LIMIT_RPS")
	}
	return nil
}
