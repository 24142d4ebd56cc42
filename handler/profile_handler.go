package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"wiser-api/common"
	"wiser-api/model"
	"wiser-api/service"
)

type ProfileHandler struct {
	profileService *service.ProfileService
}

func NewProfileHandler(profileService *service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

func (h *ProfileHandler) Create(w http.ResponseWriter, r *http.Request) *common.AppError {
	var req model.CreateEmployeeProfileRequest
	if !common.ValidateAndDecode(w, r, &req) {
		return nil
	}

	profile, err := h.profileService.Create(req)
	if err != nil {
		if errors.Is(err, service.ErrProfileUserUnknown) {
			return common.NewAppError(http.StatusBadRequest, err.Error(), nil)
		}
		return common.NewAppError(http.StatusInternalServerError, "Could not create profile", err)
	}

	writeJSON(w, http.StatusCreated, profile)
	return nil
}

func (h *ProfileHandler) List(w http.ResponseWriter, r *http.Request) *common.AppError {
	profiles, err := h.profileService.List()
	if err != nil {
		return common.NewAppError(http.StatusInternalServerError, "Could not list profiles", err)
	}

	writeJSON(w, http.StatusOK, profiles)
	return nil
}

func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) *common.AppError {
	id, appErr := pathID(r)
	if appErr != nil {
		return appErr
	}

	profile, err := h.profileService.Get(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return common.NewAppError(http.StatusNotFound, "Profile not found", nil)
		}
		return common.NewAppError(http.StatusInternalServerError, "Could not load profile", err)
	}

	writeJSON(w, http.StatusOK, profile)
	return nil
}

func (h *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) *common.AppError {
	id, appErr := pathID(r)
	if appErr != nil {
		return appErr
	}

	var req model.UpdateEmployeeProfileRequest
	if !common.ValidateAndDecode(w, r, &req) {
		return nil
	}

	profile, err := h.profileService.Update(id, req)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return common.NewAppError(http.StatusNotFound, "Profile not found", nil)
		}
		return common.NewAppError(http.StatusInternalServerError, "Could not update profile", err)
	}

	writeJSON(w, http.StatusOK, profile)
	return nil
}

func (h *ProfileHandler) Delete(w http.ResponseWriter, r *http.Request) *common.AppError {
	id, appErr := pathID(r)
	if appErr != nil {
		return appErr
	}

	if err := h.profileService.Delete(id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return common.NewAppError(http.StatusNotFound, "Profile not found", nil)
		}
		return common.NewAppError(http.StatusInternalServerError, "Could not delete profile", err)
	}

	w.WriteHeader(http.StatusNoContent)
	return nil
}
