package app

import (
	"context"
	"fmt"

	"vendingmachine/internal/config"

	"go.uber.org/zap"
)

// Application holds all the components and manages the application lifecycle
type Application struct {
	ctx       context.Context
	container *Container
}

// NewApplication loads configuration and builds the container
func NewApplication(ctx context.Context) (*Application, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return NewApplicationWithConfig(ctx, cfg)
}

// NewApplicationWithConfig builds an Application from an already loaded config
func NewApplicationWithConfig(ctx context.Context, cfg *config.Config) (*Application, error) {
	container, err := NewContainer(ctx, cfg)
	if err != nil {
		return nil, err
	}

	container.Logger().Info("Application initialized successfully")
	return &Application{ctx: ctx, container: container}, nil
}

// Run logs the machine's front panel: balance plus price and stock of every slot
func (app *Application) Run() error {
	logger := app.container.Logger()
	panel := Display(app.container.Machine())

	logger.Info("Vending machine ready", zap.String("balance", panel.Balance.StringFixed(2)))
	for _, slot := range panel.Slots {
		if !slot.Offered {
			logger.Info("Slot empty", zap.Stringer("selection", slot.Selection))
			continue
		}
		logger.Info("Slot",
			zap.Stringer("selection", slot.Selection),
			zap.String("price", slot.Price.StringFixed(2)),
			zap.Int("quantity", slot.Quantity),
		)
	}
	return app.ctx.Err()
}

// Container exposes the wired components to front ends embedding the application
func (app *Application) Container() *Container { return app.container }

// Shutdown gracefully shuts down all application components
func (app *Application) Shutdown() {
	if app.container != nil {
		app.container.Shutdown(context.Background())
	}
}
