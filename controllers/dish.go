// controllers/dish.go
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
	"github.com/theshantanusingh/maggie-point/pricing"
	"github.com/theshantanusingh/maggie-point/repository"
)

// DishController handles the dish catalog. Public reads return offer-resolved
// prices; writes are admin only.
type DishController struct {
	Dishes   *repository.DishRepository
	Offers   *repository.OfferRepository
	Users    *repository.UserRepository
	Activity *activity.Recorder
}

func NewDishController(dishes *repository.DishRepository, offers *repository.OfferRepository, users *repository.UserRepository, recorder *activity.Recorder) *DishController {
	return &DishController{Dishes: dishes, Offers: offers, Users: users, Activity: recorder}
}

// dishResponse decorates a dish with the best active offer's price.
type dishResponse struct {
	models.Dish
	FinalPrice   float64 `json:"finalPrice"`
	Discounted   bool    `json:"discounted"`
	AppliedOffer string  `json:"appliedOffer,omitempty"`
}

func (dc *DishController) listDishes(w http.ResponseWriter, r *http.Request, onlyAvailable bool) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	dishes, err := dc.Dishes.FindAll(ctx, onlyAvailable)
	if err != nil {
		writeError(w, err)
		return
	}
	offers, err := dc.Offers.FindActive(ctx)
	if err != nil {
		writeError(w, err)
		return
	}

	now := time.Now()
	response := make([]dishResponse, 0, len(dishes))
	for _, dish := range dishes {
		resolved := pricing.Resolve(dish, offers, now)
		response = append(response, dishResponse{
			Dish:         dish,
			FinalPrice:   resolved.FinalPrice,
			Discounted:   resolved.Discounted,
			AppliedOffer: resolved.OfferTitle,
		})
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"dishes": response})
}

// GetDishes returns the full catalog with resolved pricing.
func (dc *DishController) GetDishes(w http.ResponseWriter, r *http.Request) {
	dc.listDishes(w, r, false)
}

// GetAvailableDishes returns only orderable dishes.
func (dc *DishController) GetAvailableDishes(w http.ResponseWriter, r *http.Request) {
	dc.listDishes(w, r, true)
}

type dishRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	Emoji       string  `json:"emoji"`
	IsAvailable *bool   `json:"isAvailable"`
}

// CreateDish adds a new dish to the catalog (admin only).
func (dc *DishController) CreateDish(w http.ResponseWriter, r *http.Request) {
	admin, err := currentUser(r, dc.Users)
	if err != nil {
		writeError(w, err)
		return
	}

	var req dishRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errs.Validation(errs.CodeBadRequest, "invalid request body"))
		return
	}
	if req.Name == "" || req.Description == "" || req.Price <= 0 || req.Category == "" {
		writeError(w, errs.Validation(errs.CodeBadRequest, "name, description, price and category are required"))
		return
	}
	if req.Emoji == "" {
		req.Emoji = "🍜"
	}

	dish := &models.Dish{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		Emoji:       req.Emoji,
		IsAvailable: true,
		CreatedBy:   admin.ID,
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	if err := dc.Dishes.Insert(ctx, dish); err != nil {
		writeError(w, err)
		return
	}

	dc.Activity.Record(ctx, &admin.ID, models.ActionDishCreated,
		fmt.Sprintf("New dish created: %s (₹%.0f)", dish.Name, dish.Price),
		bson.M{"dishId": dish.ID, "name": dish.Name, "price": dish.Price}, clientIP(r))

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Dish created successfully",
		"dish":    dish,
	})
}

// UpdateDish edits a dish, including its availability flag (admin only).
func (dc *DishController) UpdateDish(w http.ResponseWriter, r *http.Request) {
	admin, err := currentUser(r, dc.Users)
	if err != nil {
		writeError(w, err)
		return
	}

	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, errs.Validation(errs.CodeBadRequest, "invalid dish id"))
		return
	}

	var req dishRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errs.Validation(errs.CodeBadRequest, "invalid request body"))
		return
	}

	available := true
	if req.IsAvailable != nil {
		available = *req.IsAvailable
	}
	update := models.Dish{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		Emoji:       req.Emoji,
		IsAvailable: available,
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	dish, err := dc.Dishes.Update(ctx, id, update)
	if err != nil {
		writeError(w, err)
		return
	}

	dc.Activity.Record(ctx, &admin.ID, models.ActionDishUpdated,
		fmt.Sprintf("Dish updated: %s", dish.Name),
		bson.M{"dishId": dish.ID}, clientIP(r))

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Dish updated successfully",
		"dish":    dish,
	})
}

// DeleteDish removes a dish from the catalog (admin only). Existing orders
// keep their snapshots.
func (dc *DishController) DeleteDish(w http.ResponseWriter, r *http.Request) {
	admin, err := currentUser(r, dc.Users)
	if err != nil {
		writeError(w, err)
		return
	}

	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, errs.Validation(errs.CodeBadRequest, "invalid dish id"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	dish, err := dc.Dishes.Delete(ctx, id)
	if err != nil {
		writeError(w, err)
		return
	}

	dc.Activity.Record(ctx, &admin.ID, models.ActionDishDeleted,
		fmt.Sprintf("Dish deleted: %s", dish.Name),
		bson.M{"dishId": dish.ID}, clientIP(r))

	respondJSON(w, http.StatusOK, map[string]string{"message": "Dish deleted successfully"})
}
