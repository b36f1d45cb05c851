package vending

import "fmt"

// Selection identifies a purchasable product slot.
type Selection int

const (
	Soda Selection = iota
	DietSoda
	Chips
	Cookie
	Sandwich
	Wrap
	CandyBar
	PopTart
	Water
	FruitJuice
	SportsDrink
	Gum
)

var selectionNames = [...]string{
	Soda:        "soda",
	DietSoda:    "dietSoda",
	Chips:       "chips",
	Cookie:      "cookie",
	Sandwich:    "sandwich",
	Wrap:        "wrap",
	CandyBar:    "candyBar",
	PopTart:     "popTart",
	Water:       "water",
	FruitJuice:  "fruitJuice",
	SportsDrink: "sportsDrink",
	Gum:         "gum",
}

// Selections returns every known selection in display order.
func Selections() []Selection {
	out := make([]Selection, len(selectionNames))
	for i := range selectionNames {
		out[i] = Selection(i)
	}
	return out
}

// Valid reports whether s is one of the known selections.
func (s Selection) Valid() bool {
	return s >= 0 && int(s) < len(selectionNames)
}

func (s Selection) String() string {
	if !s.Valid() {
		return fmt.Sprintf("Selection(%d)", int(s))
	}
	return selectionNames[s]
}

// ParseSelection maps a configuration key to its Selection.
func ParseSelection(name string) (Selection, error) {
	for i, n := range selectionNames {
		if n == name {
			return Selection(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidSelection, name)
}
