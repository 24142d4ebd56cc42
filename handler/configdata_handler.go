package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"wiser-api/common"
	"wiser-api/model"
	"wiser-api/service"
)

type ConfigDataHandler struct {
	configDataService *service.ConfigDataService
}

func NewConfigDataHandler(configDataService *service.ConfigDataService) *ConfigDataHandler {
	return &ConfigDataHandler{configDataService: configDataService}
}

func (h *ConfigDataHandler) Create(w http.ResponseWriter, r *http.Request) *common.AppError {
	var req model.CreateConfigDataRequest
	if !common.ValidateAndDecode(w, r, &req) {
		return nil
	}

	row, err := h.configDataService.Create(req)
	if err != nil {
		return common.NewAppError(http.StatusInternalServerError, "Could not create setting", err)
	}

	writeJSON(w, http.StatusCreated, row)
	return nil
}

func (h *ConfigDataHandler) List(w http.ResponseWriter, r *http.Request) *common.AppError {
	rows, err := h.configDataService.List()
	if err != nil {
		return common.NewAppError(http.StatusInternalServerError, "Could not list settings", err)
	}

	writeJSON(w, http.StatusOK, rows)
	return nil
}

func (h *ConfigDataHandler) Update(w http.ResponseWriter, r *http.Request) *common.AppError {
	id, appErr := pathID(r)
	if appErr != nil {
		return appErr
	}

	var req model.UpdateConfigDataRequest
	if !common.ValidateAndDecode(w, r, &req) {
		return nil
	}

	row, err := h.configDataService.Update(id, req)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return common.NewAppError(http.StatusNotFound, "Setting not found", nil)
		}
		return common.NewAppError(http.StatusInternalServerError, "Could not update setting", err)
	}

	writeJSON(w, http.StatusOK, row)
	return nil
}

func (h *ConfigDataHandler) Delete(w http.ResponseWriter, r *http.Request) *common.AppError {
	id, appErr := pathID(r)
	if appErr != nil {
		return appErr
	}

	if err := h.configDataService.Delete(id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return common.NewAppError(http.StatusNotFound, "Setting not found", nil)
		}
		return common.NewAppError(http.StatusInternalServerError, "Could not delete setting", err)
	}

	w.WriteHeader(http.StatusNoContent)
	return nil
}
