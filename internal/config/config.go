package config

import (
	"fmt"
	"net/url"

	pkgconfig "github.com/jengamart/storefront/pkg/config"
)

// Config holds all configuration for the storefront.
type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	// HTTP server
	HTTPPort int `env:"STOREFRONT_HTTP_PORT" envDefault:"8080"`

	// Backend commerce API
	BackendURL            string  `env:"BACKEND_API_URL" envDefault:"http://localhost:9000"`
	BackendTimeoutSeconds int     `env:"BACKEND_TIMEOUT_SECONDS" envDefault:"30"`
	BackendMaxRetries     int     `env:"BACKEND_MAX_RETRIES" envDefault:"3"`
	BreakerFailureRatio   float64 `env:"BACKEND_BREAKER_FAILURE_RATIO" envDefault:"0.5"`

	// Auth. The backend issues JWTs; the storefront validates them
	// with the same shared secret.
	JWTSecret string `env:"JWT_SECRET,required,notEmpty"`

	// Redis (wishlist persistence)
	RedisAddr string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPass string `env:"REDIS_PASSWORD" envDefault:""`
	RedisDB   int    `env:"REDIS_DB" envDefault:"0"`

	// Kafka
	KafkaBrokers []string `env:"KAFKA_BROKERS" envDefault:"localhost:9092" envSeparator:","`

	// Pricing currency code for assembled orders.
	Currency string `env:"CURRENCY" envDefault:"KES"`

	// Checkout session sweep interval in minutes.
	SessionSweepMinutes int `env:"CHECKOUT_SWEEP_MINUTES" envDefault:"5"`

	// Rate limiting (requests per second per client IP; 0 disables).
	RateLimitRPS   int `env:"RATE_LIMIT_RPS" envDefault:"50"`
	RateLimitBurst int `env:"RATE_LIMIT_BURST" envDefault:"100"`

	// CORS
	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envDefault:"*" envSeparator:","`

	// Tracing
	TracingEnabled bool    `env:"TRACING_ENABLED" envDefault:"false"`
	OTLPEndpoint   string  `env:"OTLP_ENDPOINT" envDefault:"localhost:4318"`
	TraceSample    float64 `env:"TRACE_SAMPLE_RATE" envDefault:"1.0"`

	// Pprof access (CIDR allowlist; empty disables the endpoints).
	PprofCIDRs []string `env:"PPROF_ALLOWED_CIDRS" envDefault:"" envSeparator:","`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := pkgconfig.Load(cfg); err != nil {
		return nil, fmt.Errorf("load storefront config: %w", err)
	}
	return cfg, nil
}

// Validate checks invariants the env tags cannot express. It is called
// by the loader after parsing.
func (c *Config) Validate() error {
	if c.HTTPPort < 1 || c.HTTPPort > 65535 {
		return fmt.Errorf("invalid HTTP port: %d", c.HTTPPort)
	}
	u, err := url.Parse(c.BackendURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid backend API URL: %q", c.BackendURL)
	}
	if len(c.Currency) != 3 {
		return fmt.Errorf("currency must be a 3-letter ISO code, got %q", c.Currency)
	}
	if c.BreakerFailureRatio <= 0 || c.BreakerFailureRatio > 1 {
		return fmt.Errorf("breaker failure ratio must be in (0, 1], got %v", c.BreakerFailureRatio)
	}
	return nil
}
