package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OrderStatus is the lifecycle stage of an order.
type OrderStatus string

const (
	StatusPaymentPending OrderStatus = "payment_pending"
	StatusPending        OrderStatus = "pending"
	StatusConfirmed      OrderStatus = "confirmed"
	StatusPreparing      OrderStatus = "preparing"
	StatusOutForDelivery OrderStatus = "out_for_delivery"
	StatusDelivered      OrderStatus = "delivered"
	StatusCancelled      OrderStatus = "cancelled"
)

// DeliveryType selects between room delivery and pickup at the counter.
type DeliveryType string

const (
	DeliveryRoom     DeliveryType = "room"
	DeliveryTakeaway DeliveryType = "takeaway"
)

// orderTransitions is the forward-only state machine. Cancellation is
// reachable from every non-terminal stage; delivered and cancelled are
// terminal.
var orderTransitions = map[OrderStatus][]OrderStatus{
	StatusPaymentPending: {StatusPending, StatusConfirmed, StatusCancelled},
	StatusPending:        {StatusConfirmed, StatusCancelled},
	StatusConfirmed:      {StatusPreparing, StatusCancelled},
	StatusPreparing:      {StatusOutForDelivery, StatusCancelled},
	StatusOutForDelivery: {StatusDelivered, StatusCancelled},
	StatusDelivered:      {},
	StatusCancelled:      {},
}

// Valid reports whether s is a known order status.
func (s OrderStatus) Valid() bool {
	_, ok := orderTransitions[s]
	return ok
}

// Terminal reports whether no further transitions are possible.
func (s OrderStatus) Terminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// OrderItem is a snapshot of a dish at order time. Later edits to the dish
// catalog never touch it.
type OrderItem struct {
	DishID   primitive.ObjectID `bson:"dish_id" json:"dishId"`
	Name     string             `bson:"name" json:"name"`
	Price    float64            `bson:"price" json:"price"`
	Quantity int                `bson:"quantity" json:"quantity"`
	Emoji    string             `bson:"emoji,omitempty" json:"emoji,omitempty"`
}

// PaymentDetails holds the manual payment proof a customer submits and the
// admin verification stamp. PaymentVerified only ever becomes true through
// an explicit admin verification.
type PaymentDetails struct {
	UTRNumber       string              `bson:"utr_number,omitempty" json:"utrNumber,omitempty"`
	TransactionID   string              `bson:"transaction_id,omitempty" json:"transactionId,omitempty"`
	PaymentVerified bool                `bson:"payment_verified" json:"paymentVerified"`
	VerifiedBy      *primitive.ObjectID `bson:"verified_by,omitempty" json:"verifiedBy,omitempty"`
	VerifiedAt      *time.Time          `bson:"verified_at,omitempty" json:"verifiedAt,omitempty"`
}

// DeliveryDetails say where a room order goes. Defaults come from the
// customer's profile and can be overridden per order.
type DeliveryDetails struct {
	Floor               string `bson:"floor,omitempty" json:"floor,omitempty"`
	Room                string `bson:"room,omitempty" json:"room,omitempty"`
	Mobile              string `bson:"mobile,omitempty" json:"mobile,omitempty"`
	SpecialInstructions string `bson:"special_instructions,omitempty" json:"specialInstructions,omitempty"`
}

// Order is the central aggregate. TotalAmount is frozen at creation:
// items * price plus the convenience fee, never recomputed from the live
// catalog. Version backs the compare-and-swap update in the repository.
type Order struct {
	ID                    primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	UserID                primitive.ObjectID `bson:"user_id" json:"userId"`
	Items                 []OrderItem        `bson:"items" json:"items"`
	TotalAmount           float64            `bson:"total_amount" json:"totalAmount"`
	ConvenienceFee        float64            `bson:"convenience_fee" json:"convenienceFee"`
	DeliveryType          DeliveryType       `bson:"delivery_type" json:"deliveryType"`
	PaymentDetails        PaymentDetails     `bson:"payment_details" json:"paymentDetails"`
	Status                OrderStatus        `bson:"status" json:"status"`
	DeliveryDetails       DeliveryDetails    `bson:"delivery_details" json:"deliveryDetails"`
	EstimatedDeliveryTime int                `bson:"estimated_delivery_time" json:"estimatedDeliveryTime"`
	CustomDeliveryTime    int                `bson:"custom_delivery_time,omitempty" json:"customDeliveryTime,omitempty"`
	OrderPlacedAt         time.Time          `bson:"order_placed_at" json:"orderPlacedAt"`
	ConfirmedAt           *time.Time         `bson:"confirmed_at,omitempty" json:"confirmedAt,omitempty"`
	PreparingAt           *time.Time         `bson:"preparing_at,omitempty" json:"preparingAt,omitempty"`
	OutForDeliveryAt      *time.Time         `bson:"out_for_delivery_at,omitempty" json:"outForDeliveryAt,omitempty"`
	DeliveredAt           *time.Time         `bson:"delivered_at,omitempty" json:"deliveredAt,omitempty"`
	CancelledAt           *time.Time         `bson:"cancelled_at,omitempty" json:"cancelledAt,omitempty"`
	CancellationReason    string             `bson:"cancellation_reason,omitempty" json:"cancellationReason,omitempty"`
	Version               int64              `bson:"version" json:"-"`
}

// CanTransitionTo reports whether the state machine allows moving from the
// current status to target.
func (o *Order) CanTransitionTo(target OrderStatus) bool {
	for _, next := range orderTransitions[o.Status] {
		if next == target {
			return true
		}
	}
	return false
}

// SetStatus moves the order to target and stamps the first entry into each
// stage. Timestamps are first-write-wins: re-entering a stage never
// overwrites the original time.
func (o *Order) SetStatus(target OrderStatus, now time.Time) {
	o.Status = target
	switch target {
	case StatusConfirmed:
		if o.ConfirmedAt == nil {
			o.ConfirmedAt = &now
		}
	case StatusPreparing:
		if o.PreparingAt == nil {
			o.PreparingAt = &now
		}
	case StatusOutForDelivery:
		if o.OutForDeliveryAt == nil {
			o.OutForDeliveryAt = &now
		}
	case StatusDelivered:
		if o.DeliveredAt == nil {
			o.DeliveredAt = &now
		}
	case StatusCancelled:
		if o.CancelledAt == nil {
			o.CancelledAt = &now
		}
	}
}
