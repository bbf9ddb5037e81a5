// controllers/admin_order.go
package controllers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/theshantanusingh/maggie-point/errs"
	"github.com/theshantanusingh/maggie-point/models"
	"github.com/theshantanusingh/maggie-point/repository"
	"github.com/theshantanusingh/maggie-point/services"
)

// AdminOrderController handles the admin side of the order pipeline.
type AdminOrderController struct {
	Service *services.OrderService
	Orders  *repository.OrderRepository
	Users   *repository.UserRepository
}

func NewAdminOrderController(service *services.OrderService, orders *repository.OrderRepository, users *repository.UserRepository) *AdminOrderController {
	return &AdminOrderController{Service: service, Orders: orders, Users: users}
}

// GetAllOrders lists every order, optionally filtered by ?status=.
func (ac *AdminOrderController) GetAllOrders(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	status := models.OrderStatus(r.URL.Query().Get("status"))
	orders, err := ac.Service.ListAll(ctx, status)
	if err != nil {
		writeError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"orders": orders})
}

// VerifyPayment marks the order's payment as verified and confirms it.
func (ac *AdminOrderController) VerifyPayment(w http.ResponseWriter, r *http.Request) {
	admin, err := currentUser(r, ac.Users)
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

	order, err := ac.Service.VerifyPayment(ctx, *admin, orderID, clientIP(r))
	if err != nil {
		writeError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Payment verified and order confirmed",
		"order":   order,
	})
}

type updateStatusRequest struct {
	Status string `json:"status"`
	Reason string `json:"reason"`
}

// UpdateStatus advances the order through the fulfillment pipeline.
func (ac *AdminOrderController) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	admin, err := currentUser(r, ac.Users)
	if err != nil {
		writeError(w, err)
		return
	}

	orderID, err := primitive.ObjectIDFromHex(mux.Vars(r)["orderId"])
	if err != nil {
		writeError(w, errs.Validation(errs.CodeBadRequest, "invalid order id"))
		return
	}

	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errs.Validation(errs.CodeBadRequest, "invalid request body"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	order, err := ac.Service.UpdateStatus(ctx, *admin, orderID, models.OrderStatus(req.Status), req.Reason, clientIP(r))
	if err != nil {
		writeError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message": fmt.Sprintf("Order status updated to %s", order.Status),
		"order":   order,
	})
}

type updateTimeRequest struct {
	Minutes int `json:"minutes"`
}

// UpdateTime overwrites the estimated delivery time.
func (ac *AdminOrderController) UpdateTime(w http.ResponseWriter, r *http.Request) {
	admin, err := currentUser(r, ac.Users)
	if err != nil {
		writeError(w, err)
		return
	}

	orderID, err := primitive.ObjectIDFromHex(mux.Vars(r)["orderId"])
	if err != nil {
		writeError(w, errs.Validation(errs.CodeBadRequest, "invalid order id"))
		return
	}

	var req updateTimeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errs.Validation(errs.CodeBadRequest, "invalid request body"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	order, err := ac.Service.UpdateEstimatedTime(ctx, *admin, orderID, req.Minutes, clientIP(r))
	if err != nil {
		writeError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Estimated delivery time updated",
		"order":   order,
	})
}

// GetStats returns the order summary for the admin dashboard.
func (ac *AdminOrderController) GetStats(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	stats, err := ac.Orders.Stats(ctx)
	if err != nil {
		writeError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, stats)
}
