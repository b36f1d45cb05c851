// Package inventory turns a static key-value resource into a vending.Inventory.
package inventory

import (
	"bytes"
	"embed"
	"fmt"
	"io/fs"
	"maps"
	"math"
	"slices"

	"vendingmachine/internal/vending"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// DefaultResource is the name of the embedded default inventory.
const DefaultResource = "default_inventory.yaml"

//go:embed default_inventory.yaml
var defaultFS embed.FS

// Default returns the file system holding the embedded default inventory.
func Default() fs.FS {
	return defaultFS
}

// Entry is the raw record stored under a selection key. Pointers distinguish
// a missing field from a zero value.
type Entry struct {
	Price    *float64 `yaml:"price"`
	Quantity *int     `yaml:"quantity"`
}

// Load reads name from fsys and builds the inventory it describes.
func Load(fsys fs.FS, name string) (vending.Inventory, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", vending.ErrInvalidResource, err)
	}

	entries, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return Unarchive(entries)
}

// Decode parses a YAML or JSON mapping of selection name to entry.
func Decode(data []byte) (map[string]Entry, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("%w: empty document", vending.ErrConversionFailure)
	}

	var entries map[string]Entry
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&entries); err != nil {
		return nil, fmt.Errorf("%w: %v", vending.ErrConversionFailure, err)
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("%w: no entries", vending.ErrConversionFailure)
	}
	return entries, nil
}

// Unarchive validates raw entries and converts them to an inventory. Every
// key is checked before any value, in sorted order, so a given resource
// always fails the same way.
func Unarchive(entries map[string]Entry) (vending.Inventory, error) {
	keys := slices.Sorted(maps.Keys(entries))

	selections := make([]vending.Selection, len(keys))
	for i, key := range keys {
		selection, err := vending.ParseSelection(key)
		if err != nil {
			return nil, err
		}
		selections[i] = selection
	}

	inv := make(vending.Inventory, len(keys))
	for i, key := range keys {
		entry := entries[key]
		if entry.Price == nil || entry.Quantity == nil {
			return nil, fmt.Errorf("%w: %s: price and quantity are required", vending.ErrConversionFailure, key)
		}
		price := *entry.Price
		if math.IsNaN(price) || math.IsInf(price, 0) {
			return nil, fmt.Errorf("%w: %s: price must be a finite number", vending.ErrConversionFailure, key)
		}
		if price < 0 || *entry.Quantity < 0 {
			return nil, fmt.Errorf("%w: %s: price and quantity must be >= 0", vending.ErrConversionFailure, key)
		}
		inv[selections[i]] = &vending.Item{
			Price:    decimal.NewFromFloat(price),
			Quantity: *entry.Quantity,
		}
	}
	return inv, nil
}
