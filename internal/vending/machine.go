package vending

import (
	"context"
	"sync"

	"vendingmachine/internal/platform/observability"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"
)

// Machine defines the operations a vending machine exposes to its front end.
type Machine interface {
	Selections() []Selection
	Item(selection Selection) (Item, bool)
	Balance() decimal.Decimal
	Quote(quantity int, selection Selection) (decimal.Decimal, error)
	Deposit(ctx context.Context, amount decimal.Decimal) error
	Vend(ctx context.Context, quantity int, selection Selection) (Receipt, error)
}

var _ Machine = (*FoodVendingMachine)(nil)

// FoodVendingMachine is the snack and drink machine. A single mutex covers
// every read and the validate+commit sequence of Vend.
type FoodVendingMachine struct {
	mu              sync.Mutex
	inventory       Inventory
	amountDeposited decimal.Decimal

	logger observability.Logger
	tracer observability.Tracer
}

// NewFoodVendingMachine takes ownership of inventory and starts with the
// given balance. Entries that are nil, out of range, negatively priced or
// negatively stocked are dropped, so the selection reads as not offered.
func NewFoodVendingMachine(inventory Inventory, balance decimal.Decimal, logger observability.Logger, tracer observability.Tracer) *FoodVendingMachine {
	if inventory == nil {
		inventory = Inventory{}
	}
	for sel, item := range inventory {
		if item == nil || !sel.Valid() || item.Price.IsNegative() || item.Quantity < 0 {
			logger.Warn("Dropping invalid inventory entry", zap.Stringer("selection", sel))
			delete(inventory, sel)
		}
	}
	if balance.IsNegative() {
		balance = decimal.Zero
	}
	return &FoodVendingMachine{
		inventory:       inventory,
		amountDeposited: balance,
		logger:          logger,
		tracer:          tracer,
	}
}

// Selections returns every selection the machine displays, offered or not.
func (m *FoodVendingMachine) Selections() []Selection {
	return Selections()
}

// Item returns a copy of the item stocked under selection.
func (m *FoodVendingMachine) Item(selection Selection) (Item, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	item, ok := m.inventory[selection]
	if !ok {
		return Item{}, false
	}
	return *item, true
}

// Balance returns the amount currently deposited.
func (m *FoodVendingMachine) Balance() decimal.Decimal {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.amountDeposited
}

// Quote returns the total price of quantity units of selection.
func (m *FoodVendingMachine) Quote(quantity int, selection Selection) (decimal.Decimal, error) {
	if quantity <= 0 {
		return decimal.Zero, ErrInvalidQuantity
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	item, ok := m.inventory[selection]
	if !ok {
		return decimal.Zero, ErrInvalidSelection
	}
	return item.Price.Mul(decimal.NewFromInt(int64(quantity))), nil
}

// Deposit adds amount to the balance.
func (m *FoodVendingMachine) Deposit(ctx context.Context, amount decimal.Decimal) error {
	_, span := m.tracer.Start(ctx, "vending.deposit")
	defer span.End()

	span.SetAttributes(attribute.String("vending.amount", amount.String()))

	if !amount.IsPositive() {
		span.SetStatus(codes.Error, ErrInvalidAmount.Error())
		m.logger.Warn("Deposit rejected", zap.Stringer("amount", amount))
		return ErrInvalidAmount
	}

	m.mu.Lock()
	m.amountDeposited = m.amountDeposited.Add(amount)
	balance := m.amountDeposited
	m.mu.Unlock()

	span.SetAttributes(attribute.String("vending.balance", balance.String()))
	span.SetStatus(codes.Ok, "Deposit accepted")
	m.logger.Info("Deposit accepted",
		zap.Stringer("amount", amount),
		zap.Stringer("balance", balance),
	)
	return nil
}

// Vend dispenses quantity units of selection against the deposited balance.
// Checks run in a fixed order: selection, stock, funds. Either every check
// passes and both stock and balance are reduced, or nothing changes.
func (m *FoodVendingMachine) Vend(ctx context.Context, quantity int, selection Selection) (Receipt, error) {
	_, span := m.tracer.Start(ctx, "vending.vend")
	defer span.End()

	span.SetAttributes(
		attribute.String("vending.selection", selection.String()),
		attribute.Int("vending.quantity", quantity),
	)

	receipt, err := m.vend(quantity, selection)
	if err != nil {
		span.SetAttributes(attribute.String("vending.outcome", "rejected"))
		span.SetStatus(codes.Error, err.Error())
		m.logger.Warn("Vend rejected",
			zap.Stringer("selection", selection),
			zap.Int("quantity", quantity),
			zap.Error(err),
		)
		return Receipt{}, err
	}

	span.SetAttributes(
		attribute.String("vending.outcome", "dispensed"),
		attribute.String("vending.transaction_id", receipt.TransactionID.String()),
		attribute.String("vending.total", receipt.Total.String()),
		attribute.Int("vending.remaining", receipt.Remaining),
	)
	span.SetStatus(codes.Ok, "Vend completed")
	m.logger.Info("Vend completed",
		zap.Stringer("transaction_id", receipt.TransactionID),
		zap.Stringer("selection", selection),
		zap.Int("quantity", quantity),
		zap.Stringer("total", receipt.Total),
		zap.Stringer("balance", receipt.Balance),
		zap.Int("remaining", receipt.Remaining),
	)
	return receipt, nil
}

func (m *FoodVendingMachine) vend(quantity int, selection Selection) (Receipt, error) {
	if quantity <= 0 {
		return Receipt{}, ErrInvalidQuantity
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	item, ok := m.inventory[selection]
	if !ok {
		return Receipt{}, ErrInvalidSelection
	}
	if item.Quantity < quantity {
		return Receipt{}, ErrOutOfStock
	}

	total := item.Price.Mul(decimal.NewFromInt(int64(quantity)))
	if m.amountDeposited.LessThan(total) {
		return Receipt{}, &InsufficientFundsError{Required: total.Sub(m.amountDeposited)}
	}

	item.Quantity -= quantity
	m.amountDeposited = m.amountDeposited.Sub(total)

	return Receipt{
		TransactionID: uuid.New(),
		Selection:     selection,
		Quantity:      quantity,
		UnitPrice:     item.Price,
		Total:         total,
		Balance:       m.amountDeposited,
		Remaining:     item.Quantity,
	}, nil
}
