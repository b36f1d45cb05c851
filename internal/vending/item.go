package vending

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Item is a priced, quantity-limited product held by the machine.
type Item struct {
	Price    decimal.Decimal
	Quantity int
}

// Inventory maps every offered selection to its item. A missing key means the
// selection is not offered.
type Inventory map[Selection]*Item

// Receipt describes a completed vend.
type Receipt struct {
	TransactionID uuid.UUID
	Selection     Selection
	Quantity      int
	UnitPrice     decimal.Decimal
	Total         decimal.Decimal
	// Balance left after the purchase.
	Balance decimal.Decimal
	// Remaining stock of the selection after the purchase.
	Remaining int
}
