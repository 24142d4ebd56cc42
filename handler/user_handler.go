package handler

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"wiser-api/common"
	"wiser-api/model"
	"wiser-api/service"
)

type UserHandler struct {
	userService *service.UserService
}

func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

func pathID(r *http.Request) (int, *common.AppError) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		return 0, common.NewAppError(http.StatusBadRequest, "Invalid id in path", err)
	}
	return id, nil
}

func callerID(r *http.Request) (int, *common.AppError) {
	userID, ok := r.Context().Value(UserIDKey).(int)
	if !ok {
		return 0, common.NewAppError(http.StatusUnauthorized, "Invalid user ID in token", nil)
	}
	return userID, nil
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

// GetProfile returns the caller's own user record.
func (h *UserHandler) GetProfile(w http.ResponseWriter, r *http.Request) *common.AppError {
	userID, appErr := callerID(r)
	if appErr != nil {
		return appErr
	}

	user, err := h.userService.GetUser(userID)
	if err != nil {
		return common.NewAppError(http.StatusInternalServerError, "Could not load profile", err)
	}

	writeJSON(w, http.StatusOK, user)
	return nil
}

// UpdateProfile updates the caller's own user record.
func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) *common.AppError {
	userID, appErr := callerID(r)
	if appErr != nil {
		return appErr
	}

	var req model.UpdateUserRequest
	if !common.ValidateAndDecode(w, r, &req) {
		return nil
	}

	user, err := h.userService.UpdateUser(userID, req)
	if err != nil {
		return common.NewAppError(http.StatusInternalServerError, "Could not update profile", err)
	}

	writeJSON(w, http.StatusOK, user)
	return nil
}

func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) *common.AppError {
	users, err := h.userService.GetAllUsers()
	if err != nil {
		return common.NewAppError(http.StatusInternalServerError, "Could not list users", err)
	}

	writeJSON(w, http.StatusOK, users)
	return nil
}

func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) *common.AppError {
	id, appErr := pathID(r)
	if appErr != nil {
		return appErr
	}

	user, err := h.userService.GetUser(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return common.NewAppError(http.StatusNotFound, "User not found", nil)
		}
		return common.NewAppError(http.StatusInternalServerError, "Could not load user", err)
	}

	writeJSON(w, http.StatusOK, user)
	return nil
}

func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) *common.AppError {
	var req model.CreateUserRequest
	if !common.ValidateAndDecode(w, r, &req) {
		return nil
	}

	user, err := h.userService.CreateUser(req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidRole) {
			return common.NewAppError(http.StatusBadRequest, err.Error(), nil)
		}
		return common.NewAppError(http.StatusInternalServerError, "Could not create user", err)
	}

	writeJSON(w, http.StatusCreated, user)
	return nil
}

func (h *UserHandler) UpdateUser(w http.ResponseWriter, r *http.Request) *common.AppError {
	id, appErr := pathID(r)
	if appErr != nil {
		return appErr
	}

	var req model.UpdateUserRequest
	if !common.ValidateAndDecode(w, r, &req) {
		return nil
	}

	user, err := h.userService.UpdateUser(id, req)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return common.NewAppError(http.StatusNotFound, "User not found", nil)
		}
		return common.NewAppError(http.StatusInternalServerError, "Could not update user", err)
	}

	writeJSON(w, http.StatusOK, user)
	return nil
}

// UpdateUserRoles replaces a user's role set. Admin only.
func (h *UserHandler) UpdateUserRoles(w http.ResponseWriter, r *http.Request) *common.AppError {
	id, appErr := pathID(r)
	if appErr != nil {
		return appErr
	}

	var req model.UpdateUserRolesRequest
	if !common.ValidateAndDecode(w, r, &req) {
		return nil
	}

	if err := h.userService.UpdateUserRoles(id, req.Roles); err != nil {
		if errors.Is(err, service.ErrInvalidRole) {
			return common.NewAppError(http.StatusBadRequest, err.Error(), nil)
		}
		if errors.Is(err, sql.ErrNoRows) {
			return common.NewAppError(http.StatusNotFound, "User not found", nil)
		}
		return common.NewAppError(http.StatusInternalServerError, "Could not update roles", err)
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "roles updated"})
	return nil
}

func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) *common.AppError {
	id, appErr := pathID(r)
	if appErr != nil {
		return appErr
	}

	if err := h.userService.DeleteUser(id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return common.NewAppError(http.StatusNotFound, "User not found", nil)
		}
		return common.NewAppError(http.StatusInternalServerError, "Could not delete user", err)
	}

	w.WriteHeader(http.StatusNoContent)
	return nil
}
