package config

import (
	"fmt"
	"strings"

	pkgconfig "github.com/jalmosquera/digitalletter/pkg/config"
)

// Config holds all configuration for the menu service.
type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	// HTTP server
	HTTPPort int `env:"HTTP_PORT" envDefault:"8080"`

	// CORS
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envDefault:"*" envSeparator:","`

	// Redis (cart persistence)
	RedisAddr string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPass string `env:"REDIS_PASSWORD" envDefault:""`
	RedisDB   int    `env:"REDIS_DB" envDefault:"0"`

	// Cart TTL in hours (default: 7 days)
	CartTTL int `env:"CART_TTL_HOURS" envDefault:"168"`

	// Kafka. Empty disables event publishing.
	KafkaBrokers []string `env:"KAFKA_BROKERS" envDefault:"" envSeparator:","`

	// Restaurant order backend
	OrdersAPIURL   string `env:"ORDERS_API_URL,required"`
	OrdersAPIToken string `env:"ORDERS_API_TOKEN" envDefault:""`

	// WhatsApp
	WhatsAppPhone string `env:"WHATSAPP_PHONE,required"`
	WhatsAppHost  string `env:"WHATSAPP_HOST" envDefault:"wa.me"`

	// Tracing
	TracingEnabled  bool    `env:"TRACING_ENABLED" envDefault:"false"`
	OTLPEndpoint    string  `env:"OTLP_ENDPOINT" envDefault:"localhost:4318"`
	TraceSampleRate float64 `env:"TRACE_SAMPLE_RATE" envDefault:"1.0"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := pkgconfig.Load(cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// validate checks configuration invariants.
func (c *Config) validate() error {
	if c.HTTPPort < 1 || c.HTTPPort > 65535 {
		return fmt.Errorf("invalid HTTP port: %d", c.HTTPPort)
	}
	if !strings.HasPrefix(c.OrdersAPIURL, "http://") && !strings.HasPrefix(c.OrdersAPIURL, "https://") {
		return fmt.Errorf("invalid orders API URL: %s", c.OrdersAPIURL)
	}
	if c.CartTTL < 1 {
		return fmt.Errorf("invalid cart TTL: %d", c.CartTTL)
	}
	if c.TraceSampleRate < 0 || c.TraceSampleRate > 1 {
		return fmt.Errorf("invalid trace sample rate: %f", c.TraceSampleRate)
	}
	return nil
}

// KafkaEnabled reports whether any broker is configured.
func (c *Config) KafkaEnabled() bool {
	for _, b := range c.KafkaBrokers {
		if strings.TrimSpace(b) != "" {
			return true
		}
	}
	return false
}
