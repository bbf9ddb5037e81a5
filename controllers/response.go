package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/theshantanusingh/maggie-point/errs"
	"github.com/theshantanusingh/maggie-point/middleware"
	"github.com/theshantanusingh/maggie-point/models"
	"github.com/theshantanusingh/maggie-point/repository"
	"github.com/theshantanusingh/maggie-point/utils"
)

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

// writeError maps the error taxonomy onto HTTP statuses. Anything outside
// the taxonomy is a server fault: logged, and hidden behind a generic 500.
func writeError(w http.ResponseWriter, err error) {
	var v *errs.ValidationError
	switch {
	case errors.As(err, &v):
		respondJSON(w, http.StatusBadRequest, map[string]string{"message": v.Message, "code": v.Code})
	case errs.IsNotFound(err):
		respondJSON(w, http.StatusNotFound, map[string]string{"message": err.Error()})
	case errs.IsForbidden(err):
		respondJSON(w, http.StatusForbidden, map[string]string{"message": err.Error()})
	case errs.IsConflict(err):
		respondJSON(w, http.StatusConflict, map[string]string{"message": err.Error()})
	default:
		logrus.WithError(err).Error("Internal server error")
		respondJSON(w, http.StatusInternalServerError, map[string]string{"message": "Server error"})
	}
}

// currentUser resolves the authenticated user from the JWT claims the
// middleware put on the context.
func currentUser(r *http.Request, users *repository.UserRepository) (*models.User, error) {
	claims, ok := r.Context().Value(middleware.UserContextKey).(*utils.Claims)
	if !ok {
		return nil, errs.Forbidden("not authenticated")
	}
	id, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		return nil, errs.Forbidden("invalid token subject")
	}
	return users.FindByID(r.Context(), id)
}

// clientIP prefers the proxy-forwarded address, falling back to the socket.
func clientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		return strings.TrimSpace(strings.Split(forwarded, ",")[0])
	}
	host := r.RemoteAddr
	if idx := strings.LastIndex(host, ":"); idx != -1 {
		host = host[:idx]
	}
	return host
}
