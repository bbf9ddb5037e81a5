package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Audit action kinds.
const (
	ActionSignup             = "SIGNUP"
	ActionLogin              = "LOGIN"
	ActionOrderPlaced        = "ORDER_PLACED"
	ActionOrderStatusUpdated = "ORDER_STATUS_UPDATED"
	ActionOrderCancelled     = "ORDER_CANCELLED"
	ActionOrderTimeUpdated   = "ORDER_TIME_UPDATED"
	ActionPaymentSubmitted   = "PAYMENT_SUBMITTED"
	ActionPaymentVerified    = "PAYMENT_VERIFIED"
	ActionDishCreated        = "DISH_CREATED"
	ActionDishUpdated        = "DISH_UPDATED"
	ActionDishDeleted        = "DISH_DELETED"
	ActionOfferCreated       = "OFFER_CREATED"
	ActionOfferUpdated       = "OFFER_UPDATED"
	ActionOfferDeleted       = "OFFER_DELETED"
	ActionInventoryAdded     = "INVENTORY_ADDED"
	ActionInventoryUpdated   = "INVENTORY_UPDATED"
	ActionInventoryDeleted   = "INVENTORY_DELETED"
)

// Activity is one append-only audit entry. User is nil for system actions.
// Entries are never mutated or deleted by the application.
type Activity struct {
	ID        primitive.ObjectID  `bson:"_id,omitempty" json:"id,omitempty"`
	User      *primitive.ObjectID `bson:"user,omitempty" json:"user,omitempty"`
	Action    string              `bson:"action" json:"action"`
	Details   string              `bson:"details" json:"details"`
	Metadata  bson.M              `bson:"metadata,omitempty" json:"metadata,omitempty"`
	IP        string              `bson:"ip,omitempty" json:"ip,omitempty"`
	Timestamp time.Time           `bson:"timestamp" json:"timestamp"`
}
