package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	DiscountPercentage = "percentage"
	DiscountFlat       = "flat"
)

const (
	ApplicableAll      = "all"
	ApplicableCategory = "category"
	ApplicableDish     = "dish"
)

// Offer is a discount rule. Offers shape the displayed catalog price only;
// they never retroactively change existing order totals.
type Offer struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Title         string             `bson:"title" json:"title"`
	Description   string             `bson:"description" json:"description"`
	DiscountType  string             `bson:"discount_type" json:"discountType"`
	DiscountValue float64            `bson:"discount_value" json:"discountValue"`
	ApplicableTo  string             `bson:"applicable_to" json:"applicableTo"`
	TargetID      string             `bson:"target_id,omitempty" json:"targetId,omitempty"`
	IsActive      bool               `bson:"is_active" json:"isActive"`
	ValidUntil    time.Time          `bson:"valid_until,omitempty" json:"validUntil,omitempty"`
	CreatedBy     primitive.ObjectID `bson:"created_by,omitempty" json:"createdBy,omitempty"`
	CreatedAt     time.Time          `bson:"created_at" json:"createdAt"`
}
