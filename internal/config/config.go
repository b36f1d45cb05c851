package config

import (
	"fmt"
	"os"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap/zapcore"
)

// Service identity
const (
	ServiceName    = "vending-machine"
	ServiceVersion = "0.1.0"
)

// Machine defaults
const (
	DefaultInventoryFile = "inventory.yaml"
	DefaultBalance       = "10.00"
	DefaultLogLevel      = "info"
)

// OpenTelemetry configuration constants
const (
	LogsPath      = "/otlp/v1/logs"
	TracesPath    = "/otlp/v1/traces"
	ExportTimeout = 30 * time.Second
	MaxQueueSize  = 2048
)

// Config holds environment-specific configuration
type Config struct {
	// InventoryDir is the directory holding the inventory resource. Empty
	// selects the embedded default inventory.
	InventoryDir   string
	InventoryFile  string
	DefaultBalance decimal.Decimal
	LogLevel       zapcore.Level

	// Telemetry export is disabled when OtelEndpoint is empty.
	OtelEndpoint   string
	OtelAuthHeader string
}

// TelemetryEnabled reports whether OTLP exporters should be created.
func (c *Config) TelemetryEnabled() bool {
	return c.OtelEndpoint != ""
}

// LoadConfig loads configuration from environment variables with validation
func LoadConfig() (*Config, error) {
	config := &Config{
		InventoryDir:   os.Getenv("VENDING_INVENTORY_DIR"),
		InventoryFile:  getenv("VENDING_INVENTORY_FILE", DefaultInventoryFile),
		OtelEndpoint:   os.Getenv("OTEL_ENDPOINT"),
		OtelAuthHeader: os.Getenv("OTEL_AUTH_HEADER"),
	}

	balance, err := decimal.NewFromString(getenv("VENDING_DEFAULT_BALANCE", DefaultBalance))
	if err != nil {
		return nil, fmt.Errorf("VENDING_DEFAULT_BALANCE is not a decimal: %w", err)
	}
	if balance.IsNegative() {
		return nil, fmt.Errorf("VENDING_DEFAULT_BALANCE must be >= 0, got %s", balance)
	}
	config.DefaultBalance = balance

	level, err := zapcore.ParseLevel(getenv("VENDING_LOG_LEVEL", DefaultLogLevel))
	if err != nil {
		return nil, fmt.Errorf("VENDING_LOG_LEVEL: %w", err)
	}
	config.LogLevel = level

	if config.OtelAuthHeader != "" && config.OtelEndpoint == "" {
		return nil, fmt.Errorf("OTEL_AUTH_HEADER is set but OTEL_ENDPOINT is empty")
	}

	return config, nil
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
