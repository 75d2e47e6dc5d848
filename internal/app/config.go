package app

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	LogMode     string `env:"LOG_MODE" envDefault:"development"`
	LogRedact   bool   `env:"LOG_REDACTION_ENABLED" envDefault:"true"`
	LogHashSalt string `env:"LOG_HASH_SALT"`
	Port        string `env:"PORT" envDefault:"5000"`
	ServiceName string `env:"SERVICE_NAME" envDefault:"buildcare"`
	Environment string `env:"APP_ENV" envDefault:"development"`
	Version     string `env:"APP_VERSION" envDefault:"dev"`

	DBDriver       string        `env:"DB_DRIVER" envDefault:"postgres"`
	DBDSN          string        `env:"DB_DSN"`
	DBMaxOpenConns int           `env:"DB_MAX_OPEN_CONNS" envDefault:"20"`
	DBMaxIdleConns int           `env:"DB_MAX_IDLE_CONNS" envDefault:"5"`
	DBConnMaxLife  time.Duration `env:"DB_CONN_MAX_LIFETIME" envDefault:"30m"`
	DBLogSQL       bool          `env:"DB_LOG_SQL" envDefault:"false"`

	JWTSecretKey   string        `env:"ACCESS_TOKEN_SECRET"`
	AccessTokenTTL time.Duration `env:"ACCESS_TOKEN_TTL" envDefault:"240h"`

	RedisAddr      string        `env:"REDIS_ADDR"`
	RedisPassword  string        `env:"REDIS_PASSWORD"`
	RedisDB        int           `env:"REDIS_DB" envDefault:"0"`
	CouponCacheTTL time.Duration `env:"COUPON_CACHE_TTL" envDefault:"10m"`

	StripeSecretKey string `env:"STRIPE_SECRET_KEY"`
	PaymentGateway  string `env:"PAYMENT_GATEWAY"`
	Currency        string `env:"PAYMENT_CURRENCY" envDefault:"usd"`

	// TokenIssuer toggles POST /jwt. Unset means on only in a local env.
	TokenIssuer *bool `env:"AUTH_TOKEN_ISSUER"`

	AllowedOrigins []string `env:"CORS_ORIGINS" envSeparator:","`
	MetricsAddr    string   `env:"METRICS_ADDR"`

	MetricsEnabled        bool          `env:"METRICS_ENABLED" envDefault:"false"`
	MetricsScrapeInterval time.Duration `env:"METRICS_SCRAPE_INTERVAL" envDefault:"10s"`

	OtelEnabled     bool              `env:"OTEL_ENABLED" envDefault:"false"`
	OtelEndpoint    string            `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	OtelInsecure    bool              `env:"OTEL_EXPORTER_OTLP_INSECURE" envDefault:"false"`
	OtelHeaders     map[string]string `env:"OTEL_EXPORTER_OTLP_HEADERS" envSeparator:"," envKeyValSeparator:"="`
	OtelSampleRatio float64           `env:"OTEL_SAMPLER_RATIO" envDefault:"0.1"`
}

// Addr is the listen address for the API server.
func (c Config) Addr() string {
	p := strings.TrimSpace(c.Port)
	if strings.Contains(p, ":") {
		return p
	}
	return ":" + p
}

// LocalEnv reports whether APP_ENV names a developer or test deployment.
func (c Config) LocalEnv() bool {
	switch strings.ToLower(strings.TrimSpace(c.Environment)) {
	case "development", "dev", "local", "test":
		return true
	}
	return false
}

func (c Config) TokenIssuerEnabled() bool {
	if c.TokenIssuer != nil {
		return *c.TokenIssuer
	}
	return c.LocalEnv()
}

// LoadConfig parses the process env. With no arguments a .env in the working
// directory is loaded if present; named files must exist.
func LoadConfig(envFiles ...string) (Config, error) {
	if len(envFiles) > 0 {
		if err := godotenv.Load(envFiles...); err != nil {
			return Config{}, fmt.Errorf("load env file: %w", err)
		}
	} else {
		_ = godotenv.Load()
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if strings.TrimSpace(cfg.JWTSecretKey) == "" {
		return Config{}, fmt.Errorf("ACCESS_TOKEN_SECRET is required")
	}
	return cfg, nil
}
