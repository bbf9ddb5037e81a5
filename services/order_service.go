package services

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/theshantanusingh/maggie-point/errs"
	"github.com/theshantanusingh/maggie-point/models"
)

// ConvenienceFee is the flat surcharge on room-delivery orders. Takeaway
// orders carry no fee.
const ConvenienceFee = 10.0

// DefaultEstimatedMinutes is the initial delivery estimate on every order.
const DefaultEstimatedMinutes = 10

// OrderStore persists orders. Update must apply only when the stored version
// matches the one on the order and return a ConflictError otherwise.
type OrderStore interface {
	Insert(ctx context.Context, order *models.Order) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Order, error)
	Update(ctx context.Context, order *models.Order) error
	FindByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Order, error)
	FindAll(ctx context.Context, status models.OrderStatus) ([]models.Order, error)
}

type DishStore interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Dish, error)
}

type UserStore interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
}

// ActivitySink receives audit entries. Implementations swallow their own
// failures; recording must never fail the operation being audited.
type ActivitySink interface {
	Record(ctx context.Context, user *primitive.ObjectID, action, details string, metadata bson.M, ip string)
}

// Notifier delivers status emails. Best effort only: the order service logs
// failures and never propagates them.
type Notifier interface {
	NotifyOrderStatus(customer models.User, order models.Order, status models.OrderStatus) error
}

// OrderService owns the order lifecycle: creation, payment submission,
// verification, status progression and cancellation. Every mutation is
// load, change, compare-and-swap; audit records and emails go out only
// after the write sticks.
type OrderService struct {
	orders   OrderStore
	dishes   DishStore
	users    UserStore
	activity ActivitySink
	notifier Notifier
	now      func() time.Time
}

func NewOrderService(orders OrderStore, dishes DishStore, users UserStore, activity ActivitySink, notifier Notifier) *OrderService {
	return &OrderService{
		orders:   orders,
		dishes:   dishes,
		users:    users,
		activity: activity,
		notifier: notifier,
		now:      time.Now,
	}
}

type OrderItemInput struct {
	DishID   primitive.ObjectID
	Quantity int
}

type CreateOrderInput struct {
	Items              []OrderItemInput
	DeliveryType       models.DeliveryType
	DeliveryDetails    *models.DeliveryDetails
	CustomDeliveryTime int
}

// Create places a new order for the customer. Validation is all-or-nothing:
// a missing or unavailable dish rejects the whole order and nothing is
// persisted. Dish name, price and emoji are snapshotted at this instant.
func (s *OrderService) Create(ctx context.Context, customer models.User, in CreateOrderInput, ip string) (*models.Order, error) {
	if len(in.Items) == 0 {
		return nil, errs.Validation(errs.CodeEmptyOrder, "no items in order")
	}
	if in.DeliveryType != models.DeliveryRoom && in.DeliveryType != models.DeliveryTakeaway {
		return nil, errs.Validation(errs.CodeInvalidDeliveryType, "invalid delivery type %q", in.DeliveryType)
	}

	var items []models.OrderItem
	total := 0.0
	for _, line := range in.Items {
		dish, err := s.dishes.FindByID(ctx, line.DishID)
		if err != nil {
			return nil, err
		}
		if !dish.IsAvailable {
			return nil, errs.Validation(errs.CodeDishUnavailable, "%s is not available", dish.Name)
		}

		quantity := line.Quantity
		if quantity <= 0 {
			quantity = 1
		}
		total += dish.Price * float64(quantity)

		items = append(items, models.OrderItem{
			DishID:   dish.ID,
			Name:     dish.Name,
			Price:    dish.Price,
			Quantity: quantity,
			Emoji:    dish.Emoji,
		})
	}

	fee := 0.0
	if in.DeliveryType == models.DeliveryRoom {
		fee = ConvenienceFee
	}

	details := models.DeliveryDetails{
		Floor:  customer.Floor,
		Room:   customer.Room,
		Mobile: customer.Mobile,
	}
	if in.DeliveryDetails != nil {
		if in.DeliveryDetails.Floor != "" {
			details.Floor = in.DeliveryDetails.Floor
		}
		if in.DeliveryDetails.Room != "" {
			details.Room = in.DeliveryDetails.Room
		}
		if in.DeliveryDetails.Mobile != "" {
			details.Mobile = in.DeliveryDetails.Mobile
		}
		details.SpecialInstructions = in.DeliveryDetails.SpecialInstructions
	}
	if in.DeliveryType == models.DeliveryRoom && (details.Floor == "" || details.Room == "" || details.Mobile == "") {
		return nil, errs.Validation(errs.CodeMissingDeliveryDetails, "room delivery needs floor, room and mobile")
	}

	order := &models.Order{
		UserID:                customer.ID,
		Items:                 items,
		TotalAmount:           total + fee,
		ConvenienceFee:        fee,
		DeliveryType:          in.DeliveryType,
		Status:                models.StatusPaymentPending,
		DeliveryDetails:       details,
		EstimatedDeliveryTime: DefaultEstimatedMinutes,
		CustomDeliveryTime:    in.CustomDeliveryTime,
		OrderPlacedAt:         s.now(),
		Version:               1,
	}

	if err := s.orders.Insert(ctx, order); err != nil {
		return nil, err
	}

	s.activity.Record(ctx, &customer.ID, models.ActionOrderPlaced,
		fmt.Sprintf("Order %s placed for ₹%.0f", order.ID.Hex(), order.TotalAmount),
		bson.M{"orderId": order.ID, "totalAmount": order.TotalAmount}, ip)
	s.notify(customer, *order)

	return order, nil
}

// SubmitPayment stores the customer's manual payment proof and moves the
// order to pending verification. Proof may be resubmitted while the order is
// still awaiting verification; once verified (or cancelled) it is rejected.
func (s *OrderService) SubmitPayment(ctx context.Context, customer models.User, orderID primitive.ObjectID, utrNumber, transactionID, ip string) (*models.Order, error) {
	if utrNumber == "" && transactionID == "" {
		return nil, errs.Validation(errs.CodeMissingPaymentRef, "a UTR number or transaction id is required")
	}

	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.UserID != customer.ID {
		return nil, errs.Forbidden("order belongs to another user")
	}
	if order.Status != models.StatusPaymentPending && order.Status != models.StatusPending {
		return nil, errs.Validation(errs.CodeInvalidTransition, "payment cannot be submitted for a %s order", order.Status)
	}

	order.PaymentDetails.UTRNumber = utrNumber
	order.PaymentDetails.TransactionID = transactionID
	if order.Status == models.StatusPaymentPending {
		order.SetStatus(models.StatusPending, s.now())
	}

	if err := s.orders.Update(ctx, order); err != nil {
		return nil, err
	}

	s.activity.Record(ctx, &customer.ID, models.ActionPaymentSubmitted,
		fmt.Sprintf("Payment submitted for order %s (UTR: %s)", order.ID.Hex(), utrNumber),
		bson.M{"orderId": order.ID, "utrNumber": utrNumber}, ip)

	return order, nil
}

// VerifyPayment is the sole path by which paymentVerified becomes true. The
// verifying admin and time are recorded and the order is confirmed.
func (s *OrderService) VerifyPayment(ctx context.Context, admin models.User, orderID primitive.ObjectID, ip string) (*models.Order, error) {
	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !order.CanTransitionTo(models.StatusConfirmed) {
		return nil, errs.Validation(errs.CodeInvalidTransition, "cannot confirm a %s order", order.Status)
	}

	now := s.now()
	order.PaymentDetails.PaymentVerified = true
	order.PaymentDetails.VerifiedBy = &admin.ID
	order.PaymentDetails.VerifiedAt = &now
	order.SetStatus(models.StatusConfirmed, now)

	if err := s.orders.Update(ctx, order); err != nil {
		return nil, err
	}

	s.activity.Record(ctx, &admin.ID, models.ActionPaymentVerified,
		fmt.Sprintf("Payment verified for order %s, order confirmed", order.ID.Hex()),
		bson.M{"orderId": order.ID}, ip)
	s.notifyOwner(ctx, order)

	return order, nil
}

// UpdateStatus moves the order to target on behalf of an admin. Targets
// outside the known set are rejected outright; everything else goes through
// the transition table, so skipping stages or leaving a terminal state is an
// error rather than trusted.
func (s *OrderService) UpdateStatus(ctx context.Context, admin models.User, orderID primitive.ObjectID, target models.OrderStatus, reason, ip string) (*models.Order, error) {
	if !target.Valid() || target == models.StatusPaymentPending {
		return nil, errs.Validation(errs.CodeInvalidStatus, "invalid status %q", target)
	}

	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !order.CanTransitionTo(target) {
		return nil, errs.Validation(errs.CodeInvalidTransition, "cannot move a %s order to %s", order.Status, target)
	}

	order.SetStatus(target, s.now())

	action := models.ActionOrderStatusUpdated
	details := fmt.Sprintf("Order %s status updated to %s", order.ID.Hex(), target)
	if target == models.StatusCancelled {
		if reason == "" {
			reason = "Cancelled by admin"
		}
		order.CancellationReason = reason
		action = models.ActionOrderCancelled
		details = fmt.Sprintf("Order %s cancelled: %s", order.ID.Hex(), reason)
	}

	if err := s.orders.Update(ctx, order); err != nil {
		return nil, err
	}

	s.activity.Record(ctx, &admin.ID, action, details,
		bson.M{"orderId": order.ID, "status": target}, ip)
	s.notifyOwner(ctx, order)

	return order, nil
}

// CancelByCustomer lets the owning customer back out while the order is
// still payment_pending or pending. Anything later is admin-only.
func (s *OrderService) CancelByCustomer(ctx context.Context, customer models.User, orderID primitive.ObjectID, reason, ip string) (*models.Order, error) {
	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.UserID != customer.ID {
		return nil, errs.Forbidden("order belongs to another user")
	}
	if order.Status != models.StatusPaymentPending && order.Status != models.StatusPending {
		return nil, errs.Validation(errs.CodeCannotCancelAtStage, "cannot cancel order at this stage")
	}

	if reason == "" {
		reason = "Cancelled by user"
	}
	order.SetStatus(models.StatusCancelled, s.now())
	order.CancellationReason = reason

	if err := s.orders.Update(ctx, order); err != nil {
		return nil, err
	}

	s.activity.Record(ctx, &customer.ID, models.ActionOrderCancelled,
		fmt.Sprintf("Order %s cancelled: %s", order.ID.Hex(), reason),
		bson.M{"orderId": order.ID}, ip)

	return order, nil
}

// UpdateEstimatedTime overwrites the delivery estimate. No status change.
func (s *OrderService) UpdateEstimatedTime(ctx context.Context, admin models.User, orderID primitive.ObjectID, minutes int, ip string) (*models.Order, error) {
	if minutes <= 0 {
		return nil, errs.Validation(errs.CodeInvalidMinutes, "estimated time must be a positive number of minutes")
	}

	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	order.EstimatedDeliveryTime = minutes
	if err := s.orders.Update(ctx, order); err != nil {
		return nil, err
	}

	s.activity.Record(ctx, &admin.ID, models.ActionOrderTimeUpdated,
		fmt.Sprintf("Estimated delivery time for order %s set to %d minutes", order.ID.Hex(), minutes),
		bson.M{"orderId": order.ID, "minutes": minutes}, ip)

	return order, nil
}

// Get returns a single order, visible to its owner and to admins.
func (s *OrderService) Get(ctx context.Context, actor models.User, orderID primitive.ObjectID) (*models.Order, error) {
	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.UserID != actor.ID && !actor.IsAdmin {
		return nil, errs.Forbidden("order belongs to another user")
	}
	return order, nil
}

// ListForCustomer returns the customer's own orders, newest first.
func (s *OrderService) ListForCustomer(ctx context.Context, customer models.User) ([]models.Order, error) {
	return s.orders.FindByUser(ctx, customer.ID)
}

// ListAll returns all orders for admins, optionally filtered by status.
func (s *OrderService) ListAll(ctx context.Context, status models.OrderStatus) ([]models.Order, error) {
	if status != "" && !status.Valid() {
		return nil, errs.Validation(errs.CodeInvalidStatus, "invalid status %q", status)
	}
	return s.orders.FindAll(ctx, status)
}

// notify sends the status email without blocking the caller.
func (s *OrderService) notify(customer models.User, order models.Order) {
	go func() {
		if err := s.notifier.NotifyOrderStatus(customer, order, order.Status); err != nil {
			logrus.WithError(err).WithField("order", order.ID.Hex()).Error("Failed to send order status email")
		}
	}()
}

// notifyOwner looks up the order's customer and notifies them. Used on
// admin-driven transitions where the acting user is not the recipient.
func (s *OrderService) notifyOwner(ctx context.Context, order *models.Order) {
	customer, err := s.users.FindByID(ctx, order.UserID)
	if err != nil {
		logrus.WithError(err).WithField("order", order.ID.Hex()).Error("Failed to load customer for notification")
		return
	}
	s.notify(*customer, *order)
}
