// controllers/offer.go
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

// OfferController manages discount offers. The active list is public so the
// menu can show struck-through prices; everything else is admin only.
type OfferController struct {
	Offers   *repository.OfferRepository
	Users    *repository.UserRepository
	Activity *activity.Recorder
}

func NewOfferController(offers *repository.OfferRepository, users *repository.UserRepository, recorder *activity.Recorder) *OfferController {
	return &OfferController{Offers: offers, Users: users, Activity: recorder}
}

// GetActiveOffers returns currently active offers (public).
func (oc *OfferController) GetActiveOffers(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	offers, err := oc.Offers.FindActive(ctx)
	if err != nil {
		writeError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"offers": offers})
}

// GetOffers returns all offers for admins, newest first.
func (oc *OfferController) GetOffers(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	offers, err := oc.Offers.FindAll(ctx)
	if err != nil {
		writeError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"offers": offers})
}

type offerRequest struct {
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	DiscountType  string    `json:"discountType"`
	DiscountValue float64   `json:"discountValue"`
	ApplicableTo  string    `json:"applicableTo"`
	TargetID      string    `json:"targetId"`
	IsActive      *bool     `json:"isActive"`
	ValidUntil    time.Time `json:"validUntil"`
}

func (req *offerRequest) validate() error {
	if req.Title == "" || req.Description == "" {
		return errs.Validation(errs.CodeBadRequest, "title and description are required")
	}
	if req.DiscountType != models.DiscountPercentage && req.DiscountType != models.DiscountFlat {
		return errs.Validation(errs.CodeBadRequest, "discountType must be percentage or flat")
	}
	if req.DiscountValue <= 0 {
		return errs.Validation(errs.CodeBadRequest, "discountValue must be positive")
	}
	switch req.ApplicableTo {
	case models.ApplicableAll:
	case models.ApplicableCategory, models.ApplicableDish:
		if req.TargetID == "" {
			return errs.Validation(errs.CodeBadRequest, "targetId is required for %s offers", req.ApplicableTo)
		}
	default:
		return errs.Validation(errs.CodeBadRequest, "applicableTo must be all, category or dish")
	}
	return nil
}

// CreateOffer adds a new offer (admin only).
func (oc *OfferController) CreateOffer(w http.ResponseWriter, r *http.Request) {
	admin, err := currentUser(r, oc.Users)
	if err != nil {
		writeError(w, err)
		return
	}

	var req offerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errs.Validation(errs.CodeBadRequest, "invalid request body"))
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, err)
		return
	}

	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}
	offer := &models.Offer{
		Title:         req.Title,
		Description:   req.Description,
		DiscountType:  req.DiscountType,
		DiscountValue: req.DiscountValue,
		ApplicableTo:  req.ApplicableTo,
		TargetID:      req.TargetID,
		IsActive:      active,
		ValidUntil:    req.ValidUntil,
		CreatedBy:     admin.ID,
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	if err := oc.Offers.Insert(ctx, offer); err != nil {
		writeError(w, err)
		return
	}

	oc.Activity.Record(ctx, &admin.ID, models.ActionOfferCreated,
		fmt.Sprintf("Created new offer: %s", offer.Title),
		bson.M{"offerId": offer.ID}, clientIP(r))

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Offer created",
		"offer":   offer,
	})
}

// UpdateOffer edits an offer (admin only).
func (oc *OfferController) UpdateOffer(w http.ResponseWriter, r *http.Request) {
	admin, err := currentUser(r, oc.Users)
	if err != nil {
		writeError(w, err)
		return
	}

	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, errs.Validation(errs.CodeBadRequest, "invalid offer id"))
		return
	}

	var req offerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errs.Validation(errs.CodeBadRequest, "invalid request body"))
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, err)
		return
	}

	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}
	update := models.Offer{
		Title:         req.Title,
		Description:   req.Description,
		DiscountType:  req.DiscountType,
		DiscountValue: req.DiscountValue,
		ApplicableTo:  req.ApplicableTo,
		TargetID:      req.TargetID,
		IsActive:      active,
		ValidUntil:    req.ValidUntil,
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	offer, err := oc.Offers.Update(ctx, id, update)
	if err != nil {
		writeError(w, err)
		return
	}

	oc.Activity.Record(ctx, &admin.ID, models.ActionOfferUpdated,
		fmt.Sprintf("Updated offer: %s (Active: %t)", offer.Title, offer.IsActive),
		bson.M{"offerId": offer.ID}, clientIP(r))

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Offer updated",
		"offer":   offer,
	})
}

// DeleteOffer removes an offer (admin only).
func (oc *OfferController) DeleteOffer(w http.ResponseWriter, r *http.Request) {
	admin, err := currentUser(r, oc.Users)
	if err != nil {
		writeError(w, err)
		return
	}

	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, errs.Validation(errs.CodeBadRequest, "invalid offer id"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	offer, err := oc.Offers.Delete(ctx, id)
	if err != nil {
		writeError(w, err)
		return
	}

	oc.Activity.Record(ctx, &admin.ID, models.ActionOfferDeleted,
		fmt.Sprintf("Deleted offer: %s", offer.Title),
		bson.M{"offerId": offer.ID}, clientIP(r))

	respondJSON(w, http.StatusOK, map[string]string{"message": "Offer deleted"})
}
