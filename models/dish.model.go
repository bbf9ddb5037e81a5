package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Dish is a live catalog entry. Orders keep their own snapshot of it.
type Dish struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description" json:"description"`
	Price       float64            `bson:"price" json:"price"`
	Category    string             `bson:"category" json:"category"`
	IsAvailable bool               `bson:"is_available" json:"isAvailable"`
	Emoji       string             `bson:"emoji,omitempty" json:"emoji,omitempty"`
	CreatedBy   primitive.ObjectID `bson:"created_by,omitempty" json:"createdBy,omitempty"`
	CreatedAt   time.Time          `bson:"created_at" json:"createdAt"`
}
