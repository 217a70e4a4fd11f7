package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/services"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/shopspring/decimal"
)

type Config struct {
	HTTPPort   string `envconfig:"HTTP_PORT" default:"8080"`
	DBHost     string `envconfig:"DB_HOST" default:"localhost"`
	DBPort     string `envconfig:"DB_PORT" default:"5432"`
	DBUser     string `envconfig:"DB_USER" default:"postgres"`
	DBPassword string `envconfig:"DB_PASSWORD"`
	DBName     string `envconfig:"DB_NAME" default:"ordering"`
	DBSslMode  string `envconfig:"DB_SSLMODE" default:"disable"`

	RedisURL string `envconfig:"REDIS_URL" default:"redis://localhost:6379/0"`

	KafkaBrokers           []string `envconfig:"KAFKA_BROKERS" default:"localhost:9092"`
	KafkaOrderChangedTopic string   `envconfig:"KAFKA_ORDER_CHANGED_TOPIC" default:"order.changed"`

	OrderCodePrefix       string          `envconfig:"ORDER_CODE_PREFIX" default:"UK"`
	FreeShippingThreshold decimal.Decimal `envconfig:"FREE_SHIPPING_THRESHOLD" default:"499"`
	ShippingCharge        decimal.Decimal `envconfig:"SHIPPING_CHARGE" default:"49"`
	RequestTimeout        time.Duration   `envconfig:"REQUEST_TIMEOUT" default:"10s"`

	CouponExpirySchedule   string `envconfig:"COUPON_EXPIRY_SCHEDULE"`
	PendingRefundsSchedule string `envconfig:"PENDING_REFUNDS_SCHEDULE"`

	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
}

// LoadConfig reads an optional .env file and then the process environment.
// Variables already set in the environment win over the file.
func LoadConfig(envFile string) (Config, error) {
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load %s: %w", envFile, err)
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks values envconfig cannot check by type alone.
func (c Config) Validate() error {
	var errList []error
	if c.RequestTimeout <= 0 {
		errList = append(errList, errors.New("REQUEST_TIMEOUT must be positive"))
	}
	if len(c.KafkaBrokers) == 0 {
		errList = append(errList, errors.New("KAFKA_BROKERS is required"))
	}
	if _, err := c.ShippingRule(); err != nil {
		errList = append(errList, err)
	}
	return errors.Join(errList...)
}

// DSN builds the postgres connection string.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

// ShippingRule converts the shipping settings into money values.
func (c Config) ShippingRule() (services.ShippingRule, error) {
	threshold, err := kernel.NewMoney(c.FreeShippingThreshold)
	if err != nil {
		return services.ShippingRule{}, fmt.Errorf("FREE_SHIPPING_THRESHOLD: %w", err)
	}
	charge, err := kernel.NewMoney(c.ShippingCharge)
	if err != nil {
		return services.ShippingRule{}, fmt.Errorf("SHIPPING_CHARGE: %w", err)
	}
	return services.ShippingRule{FreeShippingThreshold: threshold, ShippingCharge: charge}, nil
}

// SlogLevel maps LOG_LEVEL to a slog level, defaulting to info.
func (c Config) SlogLevel() slog.Level {
	switch strings.ToLower(strings.TrimSpace(c.LogLevel)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
