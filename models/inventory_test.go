package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInventoryLowStock(t *testing.T) {
	tests := []struct {
		name      string
		quantity  float64
		threshold float64
		low       bool
	}{
		{"below threshold", 2, 5, true},
		{"at threshold", 5, 5, false},
		{"above threshold", 12, 5, false},
		{"empty stock", 0, 5, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := InventoryItem{Quantity: tt.quantity, MinThreshold: tt.threshold}
			assert.Equal(t, tt.low, item.LowStock())
		})
	}
}

func TestValidInventoryUnit(t *testing.T) {
	for _, unit := range []string{"kg", "gm", "pcs", "liters", "packets"} {
		assert.True(t, ValidInventoryUnit(unit), unit)
	}
	assert.False(t, ValidInventoryUnit("tons"))
	assert.False(t, ValidInventoryUnit(""))
	assert.False(t, ValidInventoryUnit("Kg"))
}

func TestValidInventoryCategory(t *testing.T) {
	for _, category := range []string{"Raw Material", "Packaging", "Spices", "Other"} {
		assert.True(t, ValidInventoryCategory(category), category)
	}
	assert.False(t, ValidInventoryCategory("Frozen"))
	assert.False(t, ValidInventoryCategory(""))
}
