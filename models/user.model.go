package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User represents a resident account. Floor, room and mobile double as the
// default delivery details for room orders.
type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	FirstName string             `bson:"first_name" json:"firstName"`
	LastName  string             `bson:"last_name" json:"lastName"`
	Email     string             `bson:"email" json:"email"`
	Password  string             `bson:"password,omitempty" json:"-"`
	IsAdmin   bool               `bson:"is_admin" json:"isAdmin"`
	Floor     string             `bson:"floor" json:"floor"`
	Room      string             `bson:"room" json:"room"`
	Mobile    string             `bson:"mobile" json:"mobile"`
}
