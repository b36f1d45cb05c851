package inventory

import (
	"os"
	"testing"
	"testing/fstest"

	"vendingmachine/internal/vending"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Default(t *testing.T) {
	inv, err := Load(Default(), DefaultResource)
	require.NoError(t, err)

	require.Len(t, inv, len(vending.Selections()))
	for _, sel := range vending.Selections() {
		item, ok := inv[sel]
		require.True(t, ok, "missing %s", sel)
		assert.True(t, item.Price.IsPositive(), "%s price", sel)
		assert.Positive(t, item.Quantity, "%s quantity", sel)
	}
	assert.True(t, inv[vending.Soda].Price.Equal(decimal.RequireFromString("1.50")))
}

func TestLoad_JSON(t *testing.T) {
	inv, err := Load(os.DirFS("testdata"), "inventory.json")
	require.NoError(t, err)

	require.Len(t, inv, 2)
	assert.Equal(t, "1.50", inv[vending.Soda].Price.StringFixed(2))
	assert.Equal(t, 5, inv[vending.Soda].Quantity)
	assert.Equal(t, 0, inv[vending.Chips].Quantity)
}

func TestLoad_MissingResource(t *testing.T) {
	_, err := Load(os.DirFS("testdata"), "nope.yaml")
	assert.ErrorIs(t, err, vending.ErrInvalidResource)

	_, err = Load(fstest.MapFS{}, "../escape.yaml")
	assert.ErrorIs(t, err, vending.ErrInvalidResource)
}

func TestLoad_Malformed(t *testing.T) {
	_, err := Load(os.DirFS("testdata"), "malformed.yaml")
	assert.ErrorIs(t, err, vending.ErrConversionFailure)
}

func TestLoad_UnknownKey(t *testing.T) {
	_, err := Load(os.DirFS("testdata"), "unknown_key.yaml")
	assert.ErrorIs(t, err, vending.ErrInvalidSelection)
	assert.Contains(t, err.Error(), "lollipop")
}

func TestDecode_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"empty", "   \n"},
		{"null document", "null"},
		{"empty mapping", "{}"},
		{"list", "- soda\n- gum\n"},
		{"quantity not integer", "soda:\n  price: 1.5\n  quantity: 2.5\n"},
		{"price not number", "soda:\n  price: cheap\n  quantity: 2\n"},
		{"unknown field", "soda:\n  price: 1.5\n  quantity: 2\n  colour: red\n"},
		{"duplicate key", "soda:\n  price: 1.5\n  quantity: 2\nsoda:\n  price: 1\n  quantity: 1\n"},
		{"price nan", "soda:\n  price: .nan\n  quantity: 1\n"},
		{"price inf", "soda:\n  price: .inf\n  quantity: 1\n"},
		{"price negative inf", "soda:\n  price: -.inf\n  quantity: 1\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries, err := Decode([]byte(tt.data))
			if err == nil {
				_, err = Unarchive(entries)
			}
			assert.ErrorIs(t, err, vending.ErrConversionFailure)
		})
	}
}

func TestUnarchive(t *testing.T) {
	price, qty := 2.25, 4
	inv, err := Unarchive(map[string]Entry{
		"fruitJuice": {Price: &price, Quantity: &qty},
	})
	require.NoError(t, err)
	assert.Equal(t, "2.25", inv[vending.FruitJuice].Price.StringFixed(2))
	assert.Equal(t, 4, inv[vending.FruitJuice].Quantity)
}

func TestUnarchive_Invalid(t *testing.T) {
	price, qty := 1.0, 1
	negPrice, negQty := -0.5, -1

	tests := []struct {
		name    string
		entries map[string]Entry
		want    error
	}{
		{"unknown key", map[string]Entry{"pretzel": {Price: &price, Quantity: &qty}}, vending.ErrInvalidSelection},
		{"missing price", map[string]Entry{"gum": {Quantity: &qty}}, vending.ErrConversionFailure},
		{"missing quantity", map[string]Entry{"gum": {Price: &price}}, vending.ErrConversionFailure},
		{"negative price", map[string]Entry{"gum": {Price: &negPrice, Quantity: &qty}}, vending.ErrConversionFailure},
		{"negative quantity", map[string]Entry{"gum": {Price: &price, Quantity: &negQty}}, vending.ErrConversionFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv, err := Unarchive(tt.entries)
			assert.ErrorIs(t, err, tt.want)
			assert.Nil(t, inv)
		})
	}
}

func TestUnarchive_UnknownKeyReportedBeforeBadValue(t *testing.T) {
	price, qty := 1.0, 1
	negPrice := -1.0
	entries := map[string]Entry{
		"pretzel": {Price: &price, Quantity: &qty},
		"soda":    {Price: &negPrice, Quantity: &qty},
		"gum":     {Quantity: &qty},
	}

	for i := 0; i < 100; i++ {
		_, err := Unarchive(entries)
		require.ErrorIs(t, err, vending.ErrInvalidSelection)
		require.NotErrorIs(t, err, vending.ErrConversionFailure)
	}
}

func TestUnarchive_BadValuesReportedInKeyOrder(t *testing.T) {
	qty := 1
	negPrice := -1.0
	entries := map[string]Entry{
		"water": {Price: &negPrice, Quantity: &qty},
		"chips": {Quantity: &qty},
	}

	for i := 0; i < 100; i++ {
		_, err := Unarchive(entries)
		require.ErrorIs(t, err, vending.ErrConversionFailure)
		require.Contains(t, err.Error(), "chips")
	}
}
