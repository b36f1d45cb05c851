package vending

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Inventory loading failures.
var (
	ErrInvalidResource   = errors.New("inventory resource not found")
	ErrConversionFailure = errors.New("inventory resource malformed")
)

// Vend and deposit failures.
var (
	ErrInvalidSelection  = errors.New("invalid selection")
	ErrOutOfStock        = errors.New("out of stock")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrInvalidQuantity   = errors.New("quantity must be positive")
	ErrInvalidAmount     = errors.New("deposit amount must be positive")
)

// InsufficientFundsError is returned by Vend when the balance does not cover
// the purchase. Required is the additional amount the customer has to deposit.
type InsufficientFundsError struct {
	Required decimal.Decimal
}

func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("%s: %s more required", ErrInsufficientFunds, e.Required.StringFixed(2))
}

// Is lets errors.Is(err, ErrInsufficientFunds) match.
func (e *InsufficientFundsError) Is(target error) bool {
	return target == ErrInsufficientFunds
}
