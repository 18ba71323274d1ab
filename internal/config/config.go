package config

import (
	"fmt"
	"strings"
	"time"

	"transcribe_billing/internal/domain/pricing"

	"github.com/kelseyhightower/envconfig"
)

const (
	StorageDynamoDB = "dynamodb"
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

type Config struct {
	Port     string `envconfig:"PORT" default:"8080"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	StorageDriver    string `envconfig:"STORAGE_DRIVER" default:"dynamodb"`
	OrdersTable      string `envconfig:"ORDERS_TABLE" default:"orders"`
	DatabaseURL      string `envconfig:"DATABASE_URL"`
	AWSRegion        string `envconfig:"AWS_REGION" default:"us-east-1"`
	AWSAccessKeyID   string `envconfig:"AWS_ACCESS_KEY_ID" default:"local"`
	AWSSecretKey     string `envconfig:"AWS_SECRET_ACCESS_KEY" default:"local"`
	DynamoDBEndpoint string `envconfig:"DYNAMODB_ENDPOINT"`

	PricingVersion         string `envconfig:"PRICING_VERSION" default:"v2-crosstab"`
	MinimumChargeMinor     int64  `envconfig:"MINIMUM_CHARGE_MINOR" default:"200"`
	SingleSpeakerPolicy    string `envconfig:"SINGLE_SPEAKER_POLICY" default:"reject"`
	Currency               string `envconfig:"CURRENCY" default:"NGN"`
	OrderPrefix            string `envconfig:"ORDER_PREFIX" default:"TT"`
	OrderCreateMaxAttempts int    `envconfig:"ORDER_CREATE_MAX_ATTEMPTS" default:"10"`

	PaymentVerifyTimeout   time.Duration `envconfig:"PAYMENT_VERIFY_TIMEOUT" default:"15s"`
	MercadoPagoAccessToken string        `envconfig:"MERCADOPAGO_ACCESS_TOKEN"`
	PaymentGatewayMock     string        `envconfig:"PAYMENT_GATEWAY_MOCK"`
	MercadoPagoMock        string        `envconfig:"MERCADOPAGO_MOCK"`

	KafkaBrokers string `envconfig:"KAFKA_BROKERS"`
	KafkaTopic   string `envconfig:"KAFKA_TOPIC" default:"order-events"`
}

// Load reads the process environment.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	cfg.StorageDriver = strings.ToLower(strings.TrimSpace(cfg.StorageDriver))
	if cfg.StorageDriver == "" {
		cfg.StorageDriver = StorageDynamoDB
	}
	switch cfg.StorageDriver {
	case StorageDynamoDB, StorageMemory:
	case StoragePostgres:
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL is required when STORAGE_DRIVER=%s", StoragePostgres)
		}
	default:
		return nil, fmt.Errorf("unsupported STORAGE_DRIVER %q", cfg.StorageDriver)
	}
	if _, err := pricing.NewEngine(cfg.PricingConfig()); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// PricingConfig builds the engine configuration with the built-in rate tables.
func (c *Config) PricingConfig() pricing.Config {
	pc := pricing.DefaultConfig()
	if v := strings.TrimSpace(c.PricingVersion); v != "" {
		pc.ActiveVersion = pricing.Version(v)
	}
	if p := strings.TrimSpace(c.SingleSpeakerPolicy); p != "" {
		pc.SingleSpeakerPolicy = pricing.SingleSpeakerPolicy(p)
	}
	pc.MinimumChargeMinor = c.MinimumChargeMinor
	return pc
}

// PaymentMockEnabled accepts the same switches as the launch deployment.
func (c *Config) PaymentMockEnabled() bool {
	return isTruthy(c.PaymentGatewayMock) || isTruthy(c.MercadoPagoMock)
}

// Brokers splits KAFKA_BROKERS. Empty means events are not published.
func (c *Config) Brokers() []string {
	var out []string
	for _, b := range strings.Split(c.KafkaBrokers, ",") {
		if b = strings.TrimSpace(b); b != "" {
			out = append(out, b)
		}
	}
	return out
}

func isTruthy(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes", "on", "mock":
		return true
	}
	return false
}
