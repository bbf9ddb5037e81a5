// controllers/order.go
package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/theshantanusingh/maggie-point/errs"
	"github.com/theshantanusingh/maggie-point/models"
	"github.com/theshantanusingh/maggie-point/repository"
	"github.com/theshantanusingh/maggie-point/services"
)

// OrderController handles the customer-facing order endpoints.
type OrderController struct {
	Service *services.OrderService
	Users   *repository.UserRepository
}

func NewOrderController(service *services.OrderService, users *repository.UserRepository) *OrderController {
	return &OrderController{Service: service, Users: users}
}

type createOrderRequest struct {
	Items []struct {
		DishID   string `json:"dishId"`
		Quantity int    `json:"quantity"`
	} `json:"items"`
	DeliveryType       string                  `json:"deliveryType"`
	DeliveryDetails    *models.DeliveryDetails `json:"deliveryDetails"`
	CustomDeliveryTime int                     `json:"customDeliveryTime"`
}

// CreateOrder places a new order for the authenticated customer.
func (oc *OrderController) CreateOrder(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r, oc.Users)
	if err != nil {
		writeError(w, err)
		return
	}

	var req createOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errs.Validation(errs.CodeBadRequest, "invalid request body"))
		return
	}

	in := services.CreateOrderInput{
		DeliveryType:       models.DeliveryType(req.DeliveryType),
		DeliveryDetails:    req.DeliveryDetails,
		CustomDeliveryTime: req.CustomDeliveryTime,
	}
	// Room delivery is the default for a late-night hostel canteen.
	if req.DeliveryType == "" {
		in.DeliveryType = models.DeliveryRoom
	}
	for _, item := range req.Items {
		dishID, err := primitive.ObjectIDFromHex(item.DishID)
		if err != nil {
			writeError(w, errs.Validation(errs.CodeBadRequest, "invalid dish id %q", item.DishID))
			return
		}
		in.Items = append(in.Items, services.OrderItemInput{DishID: dishID, Quantity: item.Quantity})
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	order, err := oc.Service.Create(ctx, *user, in, clientIP(r))
	if err != nil {
		writeError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Order created successfully",
		"order":   order,
	})
}

// GetMyOrders retrieves the authenticated customer's orders, newest first.
func (oc *OrderController) GetMyOrders(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r, oc.Users)
	if err != nil {
		writeError(w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	orders, err := oc.Service.ListForCustomer(ctx, *user)
	if err != nil {
		writeError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"orders": orders})
}

// GetOrder retrieves one order, visible to its owner and admins.
func (oc *OrderController) GetOrder(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r, oc.Users)
	if err != nil {
		writeError(w, err)
		return
	}

	orderID, err := primitive.ObjectIDFromHex(mux.Vars(r)["orderId"])
	if err != nil {
		writeError(w, errs.Validation(errs.CodeBadRequest, "invalid order id"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	order, err := oc.Service.Get(ctx, *user, orderID)
	if err != nil {
		writeError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"order": order})
}

type submitPaymentRequest struct {
	UTRNumber     string `json:"utrNumber"`
	TransactionID string `json:"transactionId"`
}

// SubmitPayment stores the customer's payment proof on the order.
func (oc *OrderController) SubmitPayment(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r, oc.Users)
	if err != nil {
		writeError(w, err)
		return
	}

	orderID, err := primitive.ObjectIDFromHex(mux.Vars(r)["orderId"])
	if err != nil {
		writeError(w, errs.Validation(errs.CodeBadRequest, "invalid order id"))
		return
	}

	var req submitPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errs.Validation(errs.CodeBadRequest, "invalid request body"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	order, err := oc.Service.SubmitPayment(ctx, *user, orderID, req.UTRNumber, req.TransactionID, clientIP(r))
	if err != nil {
		writeError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Payment details submitted. Waiting for verification.",
		"order":   order,
	})
}

type cancelOrderRequest struct {
	Reason string `json:"reason"`
}

// CancelOrder lets the owning customer cancel before payment verification.
func (oc *OrderController) CancelOrder(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r, oc.Users)
	if err != nil {
		writeError(w, err)
		return
	}

	orderID, err := primitive.ObjectIDFromHex(mux.Vars(r)["orderId"])
	if err != nil {
		writeError(w, errs.Validation(errs.CodeBadRequest, "invalid order id"))
		return
	}

	var req cancelOrderRequest
	// Body is optional; an empty reason gets a default downstream.
	_ = json.NewDecoder(r.Body).Decode(&req)

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	order, err := oc.Service.CancelByCustomer(ctx, *user, orderID, req.Reason, clientIP(r))
	if err != nil {
		writeError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Order cancelled successfully",
		"order":   order,
	})
}
