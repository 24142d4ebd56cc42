// file: handler/auth_handler.go

package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"wiser-api/common"
	"wiser-api/model"
	"wiser-api/service"
)

type AuthHandler struct {
	authService *service.AuthService
}

func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Signup registers a new user and returns their first token pair.
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) *common.AppError {
	var req model.RegisterRequest
	if !common.ValidateAndDecode(w, r, &req) {
		return nil
	}

	pair, err := h.authService.Register(req)
	if err != nil {
		// The specific failure kind goes to the server log only; the
		// response body stays generic.
		if errors.Is(err, service.ErrDuplicateUser) {
			return common.NewAppError(http.StatusForbidden, "Access denied", err)
		}
		return common.NewAppError(http.StatusInternalServerError, "Could not register user", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(pair)
	return nil
}

// Signin authenticates a user and returns a fresh token pair.
func (h *AuthHandler) Signin(w http.ResponseWriter, r *http.Request) *common.AppError {
	var req model.LoginRequest
	if !common.ValidateAndDecode(w, r, &req) {
		return nil
	}

	pair, err := h.authService.Login(req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			return common.NewAppError(http.StatusUnauthorized, "Access denied", err)
		}
		return common.NewAppError(http.StatusInternalServerError, "Could not log in", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(pair)
	return nil
}

// Logout revokes all of the caller's refresh tokens.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) *common.AppError {
	userID, ok := r.Context().Value(UserIDKey).(int)
	if !ok {
		return common.NewAppError(http.StatusUnauthorized, "Invalid user ID in token", nil)
	}

	if err := h.authService.Logout(userID); err != nil {
		return common.NewAppError(http.StatusInternalServerError, "Could not log out", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"message": "logged out"})
	return nil
}

// Refresh exchanges the presented refresh token for a new pair. The old
// token is unusable afterwards.
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) *common.AppError {
	userID, ok := r.Context().Value(UserIDKey).(int)
	if !ok {
		return common.NewAppError(http.StatusForbidden, "Access denied", nil)
	}
	rawToken, ok := r.Context().Value(RefreshTokenKey).(string)
	if !ok {
		return common.NewAppError(http.StatusForbidden, "Access denied", nil)
	}

	pair, err := h.authService.RefreshTokens(userID, rawToken)
	if err != nil {
		if errors.Is(err, service.ErrAccessDenied) {
			return common.NewAppError(http.StatusForbidden, "Access denied", err)
		}
		return common.NewAppError(http.StatusInternalServerError, "Could not refresh tokens", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(pair)
	return nil
}
