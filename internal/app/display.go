package app

import (
	"vendingmachine/internal/vending"

	"github.com/shopspring/decimal"
)

// Slot is one selection as shown on the front panel.
type Slot struct {
	Selection vending.Selection
	Offered   bool
	Price     decimal.Decimal
	Quantity  int
}

// Panel is what the presentation layer reads from the machine.
type Panel struct {
	Balance decimal.Decimal
	Slots   []Slot
}

// Display reads the panel state from m, one slot per selection in display order.
func Display(m vending.Machine) Panel {
	selections := m.Selections()
	panel := Panel{
		Balance: m.Balance(),
		Slots:   make([]Slot, 0, len(selections)),
	}
	for _, sel := range selections {
		slot := Slot{Selection: sel}
		if item, ok := m.Item(sel); ok {
			slot.Offered = true
			slot.Price = item.Price
			slot.Quantity = item.Quantity
		}
		panel.Slots = append(panel.Slots, slot)
	}
	return panel
}
