package app

import (
	"context"
	"fmt"
	"io/fs"
	"os"

	"vendingmachine/internal/config"
	"vendingmachine/internal/inventory"
	"vendingmachine/internal/platform/observability"
	"vendingmachine/internal/vending"

	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
)

// Container holds the singletons the application is built from
type Container struct {
	config            *config.Config
	logger            observability.Logger
	tracer            observability.Tracer
	machine           *vending.FoodVendingMachine
	otelLogShutdown   observability.ShutdownFunc
	otelTraceShutdown observability.ShutdownFunc
}

// NewContainer creates and initializes all components. An inventory that
// cannot be loaded is fatal: no machine can be built without one.
func NewContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	container := &Container{
		config: cfg,
	}

	if err := container.setupObservability(ctx); err != nil {
		return nil, err
	}

	if err := container.setupMachine(); err != nil {
		container.Shutdown(context.Background())
		return nil, err
	}

	return container, nil
}

// setupObservability configures OpenTelemetry logging and tracing, then the
// zap logger bridged onto them. Exporter failures are logged, not fatal.
func (c *Container) setupObservability(ctx context.Context) error {
	bootstrap, err := zap.NewProduction()
	if err != nil {
		return err
	}

	otelLogShutdown, err := observability.SetupLoggingSDK(ctx, c.config)
	if err != nil {
		bootstrap.Error("Failed to setup OpenTelemetry logging", zap.Error(err))
	}
	c.otelLogShutdown = otelLogShutdown

	_, otelTraceShutdown, err := observability.SetupTracingSDK(ctx, c.config)
	if err != nil {
		bootstrap.Error("Failed to setup OpenTelemetry tracing", zap.Error(err))
	}
	c.otelTraceShutdown = otelTraceShutdown
	_ = bootstrap.Sync()

	c.logger = observability.NewLogger(c.config)
	c.tracer = otel.Tracer(config.ServiceName)
	c.logger.Info("Logger initialized",
		zap.Bool("telemetry_export", c.config.TelemetryEnabled()),
		zap.Stringer("level", c.config.LogLevel),
	)
	return nil
}

func (c *Container) inventorySource() (fs.FS, string) {
	if c.config.InventoryDir == "" {
		return inventory.Default(), inventory.DefaultResource
	}
	return os.DirFS(c.config.InventoryDir), c.config.InventoryFile
}

// setupMachine loads the inventory and builds the vending machine
func (c *Container) setupMachine() error {
	fsys, name := c.inventorySource()
	inv, err := inventory.Load(fsys, name)
	if err != nil {
		c.logger.Error("Failed to load inventory", zap.String("resource", name), zap.Error(err))
		return fmt.Errorf("failed to load inventory: %w", err)
	}
	c.logger.Info("Inventory loaded", zap.String("resource", name), zap.Int("selections", len(inv)))

	c.machine = vending.NewFoodVendingMachine(inv, c.config.DefaultBalance, c.logger, c.tracer)
	return nil
}

// Shutdown flushes telemetry and the logger
func (c *Container) Shutdown(ctx context.Context) {
	c.logger.Info("Shutting down...")

	if c.otelTraceShutdown != nil {
		if err := c.otelTraceShutdown(ctx); err != nil {
			c.logger.Error("Failed to shutdown OTel tracing", zap.Error(err))
		}
	}

	if c.otelLogShutdown != nil {
		if err := c.otelLogShutdown(ctx); err != nil {
			c.logger.Error("Failed to shutdown OTel logging", zap.Error(err))
		}
	}

	// Sync on stdout returns EINVAL on some platforms; nothing to do about it.
	_ = c.logger.Sync()
}

func (c *Container) Logger() observability.Logger { return c.logger }
func (c *Container) Tracer() observability.Tracer { return c.tracer }
func (c *Container) Machine() vending.Machine     { return c.machine }
