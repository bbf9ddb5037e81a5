package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DefaultMinThreshold is the restock warning level for new stock items.
const DefaultMinThreshold = 5.0

var inventoryUnits = []string{"kg", "gm", "pcs", "liters", "packets"}

var inventoryCategories = []string{"Raw Material", "Packaging", "Spices", "Other"}

// InventoryItem is a kitchen stock entry: raw materials, packaging and the
// like. It is independent of the dish catalog; dish availability is toggled
// by hand, not derived from stock levels.
type InventoryItem struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name          string             `bson:"name" json:"name"`
	Quantity      float64            `bson:"quantity" json:"quantity"`
	Unit          string             `bson:"unit" json:"unit"`
	MinThreshold  float64            `bson:"min_threshold" json:"minThreshold"`
	Category      string             `bson:"category" json:"category"`
	LastUpdatedBy primitive.ObjectID `bson:"last_updated_by,omitempty" json:"lastUpdatedBy,omitempty"`
	CreatedAt     time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updated_at" json:"updatedAt"`
}

// LowStock reports whether the quantity has fallen below the restock
// threshold.
func (i *InventoryItem) LowStock() bool {
	return i.Quantity < i.MinThreshold
}

// ValidInventoryUnit reports whether unit is one of the known measures.
func ValidInventoryUnit(unit string) bool {
	for _, u := range inventoryUnits {
		if u == unit {
			return true
		}
	}
	return false
}

// ValidInventoryCategory reports whether category is one of the known kinds.
func ValidInventoryCategory(category string) bool {
	for _, c := range inventoryCategories {
		if c == category {
			return true
		}
	}
	return false
}
