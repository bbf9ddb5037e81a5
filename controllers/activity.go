// controllers/activity.go
package controllers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/theshantanusingh/maggie-point/activity"
)

// ActivityController exposes the audit feed to admins.
type ActivityController struct {
	Activity *activity.Recorder
}

func NewActivityController(recorder *activity.Recorder) *ActivityController {
	return &ActivityController{Activity: recorder}
}

// GetActivities returns recent audit entries, newest first. Supports
// ?action= and ?limit= query filters.
func (ac *ActivityController) GetActivities(w http.ResponseWriter, r *http.Request) {
	action := r.URL.Query().Get("action")
	limit, _ := strconv.ParseInt(r.URL.Query().Get("limit"), 10, 64)

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	entries, err := ac.Activity.List(ctx, action, limit)
	if err != nil {
		writeError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"activities": entries})
}
