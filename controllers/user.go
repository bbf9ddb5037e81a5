// controllers/user.go
package controllers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/theshantanusingh/maggie-point/activity"
	"github.com/theshantanusingh/maggie-point/errs"
	"github.com/theshantanusingh/maggie-point/models"
	"github.com/theshantanusingh/maggie-point/repository"
	"github.com/theshantanusingh/maggie-point/utils"
)

// UserController handles registration, login and profile reads. The core
// treats identity as opaque; this is the thin capability-check boundary.
type UserController struct {
	Users    *repository.UserRepository
	Activity *activity.Recorder
}

func NewUserController(users *repository.UserRepository, recorder *activity.Recorder) *UserController {
	return &UserController{Users: users, Activity: recorder}
}

type registerRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Floor     string `json:"floor"`
	Room      string `json:"room"`
	Mobile    string `json:"mobile"`
}

// Register creates a new resident account.
func (uc *UserController) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errs.Validation(errs.CodeBadRequest, "invalid request body"))
		return
	}
	if req.FirstName == "" || req.Email == "" || req.Password == "" {
		writeError(w, errs.Validation(errs.CodeBadRequest, "firstName, email and password are required"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	taken, err := uc.Users.EmailTaken(ctx, req.Email)
	if err != nil {
		writeError(w, err)
		return
	}
	if taken {
		writeError(w, errs.Validation(errs.CodeBadRequest, "an account with this email already exists"))
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		writeError(w, err)
		return
	}

	user := &models.User{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  string(hashedPassword),
		Floor:     req.Floor,
		Room:      req.Room,
		Mobile:    req.Mobile,
	}
	if err := uc.Users.Insert(ctx, user); err != nil {
		writeError(w, err)
		return
	}

	uc.Activity.Record(ctx, &user.ID, models.ActionSignup,
		fmt.Sprintf("New account: %s", user.Email), nil, clientIP(r))

	token, err := utils.GenerateJWT(*user)
	if err != nil {
		writeError(w, err)
		return
	}

	user.Password = ""
	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Account created successfully",
		"token":   token,
		"user":    user,
	})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login authenticates a resident and returns a JWT.
func (uc *UserController) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errs.Validation(errs.CodeBadRequest, "invalid request body"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	user, err := uc.Users.FindByEmail(ctx, req.Email)
	if err != nil {
		respondJSON(w, http.StatusUnauthorized, map[string]string{"message": "Invalid email or password"})
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		respondJSON(w, http.StatusUnauthorized, map[string]string{"message": "Invalid email or password"})
		return
	}

	token, err := utils.GenerateJWT(*user)
	if err != nil {
		writeError(w, err)
		return
	}

	uc.Activity.Record(ctx, &user.ID, models.ActionLogin,
		fmt.Sprintf("Login: %s", user.Email), nil, clientIP(r))

	user.Password = ""
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"token": token,
		"user":  user,
	})
}

// GetProfile retrieves the authenticated user's profile.
func (uc *UserController) GetProfile(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r, uc.Users)
	if err != nil {
		writeError(w, err)
		return
	}

	user.Password = ""
	respondJSON(w, http.StatusOK, map[string]interface{}{"user": user})
}
