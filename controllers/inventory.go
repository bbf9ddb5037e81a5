// controllers/inventory.go
package controllers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/theshantanusingh/maggie-point/activity"
	"github.com/theshantanusingh/maggie-point/errs"
	"github.com/theshantanusingh/maggie-point/models"
	"github.com/theshantanusingh/maggie-point/repository"
)

// InventoryController handles kitchen stock. Admin only.
type InventoryController struct {
	Items    *repository.InventoryRepository
	Users    *repository.UserRepository
	Activity *activity.Recorder
}

func NewInventoryController(items *repository.InventoryRepository, users *repository.UserRepository, recorder *activity.Recorder) *InventoryController {
	return &InventoryController{Items: items, Users: users, Activity: recorder}
}

// inventoryResponse flags items sitting below their restock threshold.
type inventoryResponse struct {
	models.InventoryItem
	LowStock bool `json:"lowStock"`
}

// GetInventory lists all stock items alphabetically.
func (ic *InventoryController) GetInventory(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	items, err := ic.Items.FindAll(ctx)
	if err != nil {
		writeError(w, err)
		return
	}

	response := make([]inventoryResponse, 0, len(items))
	for _, item := range items {
		response = append(response, inventoryResponse{
			InventoryItem: item,
			LowStock:      item.LowStock(),
		})
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"inventory": response})
}

type inventoryRequest struct {
	Name         string  `json:"name"`
	Quantity     float64 `json:"quantity"`
	Unit         string  `json:"unit"`
	MinThreshold float64 `json:"minThreshold"`
	Category     string  `json:"category"`
}

// CreateItem adds a new stock item.
func (ic *InventoryController) CreateItem(w http.ResponseWriter, r *http.Request) {
	admin, err := currentUser(r, ic.Users)
	if err != nil {
		writeError(w, err)
		return
	}

	var req inventoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errs.Validation(errs.CodeBadRequest, "invalid request body"))
		return
	}
	if req.Name == "" {
		writeError(w, errs.Validation(errs.CodeBadRequest, "name is required"))
		return
	}
	if !models.ValidInventoryUnit(req.Unit) {
		writeError(w, errs.Validation(errs.CodeBadRequest, "invalid unit %q", req.Unit))
		return
	}
	if !models.ValidInventoryCategory(req.Category) {
		writeError(w, errs.Validation(errs.CodeBadRequest, "invalid category %q", req.Category))
		return
	}
	if req.Quantity < 0 {
		writeError(w, errs.Validation(errs.CodeBadRequest, "quantity cannot be negative"))
		return
	}
	if req.MinThreshold <= 0 {
		req.MinThreshold = models.DefaultMinThreshold
	}

	item := &models.InventoryItem{
		Name:          req.Name,
		Quantity:      req.Quantity,
		Unit:          req.Unit,
		MinThreshold:  req.MinThreshold,
		Category:      req.Category,
		LastUpdatedBy: admin.ID,
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	if err := ic.Items.Insert(ctx, item); err != nil {
		writeError(w, err)
		return
	}

	ic.Activity.Record(ctx, &admin.ID, models.ActionInventoryAdded,
		fmt.Sprintf("Added new inventory item: %s (%.1f %s)", item.Name, item.Quantity, item.Unit),
		bson.M{"itemId": item.ID, "name": item.Name}, clientIP(r))

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Item added",
		"item":    item,
	})
}

type updateQuantityRequest struct {
	Quantity float64 `json:"quantity"`
}

// UpdateQuantity sets the stock level of an item.
func (ic *InventoryController) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	admin, err := currentUser(r, ic.Users)
	if err != nil {
		writeError(w, err)
		return
	}

	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, errs.Validation(errs.CodeBadRequest, "invalid item id"))
		return
	}

	var req updateQuantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errs.Validation(errs.CodeBadRequest, "invalid request body"))
		return
	}
	if req.Quantity < 0 {
		writeError(w, errs.Validation(errs.CodeBadRequest, "quantity cannot be negative"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	item, err := ic.Items.UpdateQuantity(ctx, id, req.Quantity, admin.ID)
	if err != nil {
		writeError(w, err)
		return
	}

	ic.Activity.Record(ctx, &admin.ID, models.ActionInventoryUpdated,
		fmt.Sprintf("Updated inventory: %s quantity to %.1f %s", item.Name, item.Quantity, item.Unit),
		bson.M{"itemId": item.ID, "quantity": item.Quantity}, clientIP(r))

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Quantity updated",
		"item":    item,
	})
}

// DeleteItem removes a stock item.
func (ic *InventoryController) DeleteItem(w http.ResponseWriter, r *http.Request) {
	admin, err := currentUser(r, ic.Users)
	if err != nil {
		writeError(w, err)
		return
	}

	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, errs.Validation(errs.CodeBadRequest, "invalid item id"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	item, err := ic.Items.Delete(ctx, id)
	if err != nil {
		writeError(w, err)
		return
	}

	ic.Activity.Record(ctx, &admin.ID, models.ActionInventoryDeleted,
		fmt.Sprintf("Removed inventory item: %s", item.Name),
		bson.M{"itemId": item.ID}, clientIP(r))

	respondJSON(w, http.StatusOK, map[string]string{"message": "Item removed"})
}
