package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"wiser-api/common"
	"wiser-api/model"
	"wiser-api/service"
)

type MappingHandler struct {
	mappingService *service.MappingService
}

func NewMappingHandler(mappingService *service.MappingService) *MappingHandler {
	return &MappingHandler{mappingService: mappingService}
}

func (h *MappingHandler) Create(w http.ResponseWriter, r *http.Request) *common.AppError {
	var req model.CreateRoleSkillMappingRequest
	if !common.ValidateAndDecode(w, r, &req) {
		return nil
	}

	mapping, err := h.mappingService.Create(req)
	if err != nil {
		return common.NewAppError(http.StatusInternalServerError, "Could not create mapping", err)
	}

	writeJSON(w, http.StatusCreated, mapping)
	return nil
}

func (h *MappingHandler) List(w http.ResponseWriter, r *http.Request) *common.AppError {
	mappings, err := h.mappingService.List()
	if err != nil {
		return common.NewAppError(http.StatusInternalServerError, "Could not list mappings", err)
	}

	writeJSON(w, http.StatusOK, mappings)
	return nil
}

func (h *MappingHandler) Get(w http.ResponseWriter, r *http.Request) *common.AppError {
	id, appErr := pathID(r)
	if appErr != nil {
		return appErr
	}

	mapping, err := h.mappingService.Get(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return common.NewAppError(http.StatusNotFound, "Mapping not found", nil)
		}
		return common.NewAppError(http.StatusInternalServerError, "Could not load mapping", err)
	}

	writeJSON(w, http.StatusOK, mapping)
	return nil
}

func (h *MappingHandler) Update(w http.ResponseWriter, r *http.Request) *common.AppError {
	id, appErr := pathID(r)
	if appErr != nil {
		return appErr
	}

	var req model.UpdateRoleSkillMappingRequest
	if !common.ValidateAndDecode(w, r, &req) {
		return nil
	}

	mapping, err := h.mappingService.Update(id, req)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return common.NewAppError(http.StatusNotFound, "Mapping not found", nil)
		}
		return common.NewAppError(http.StatusInternalServerError, "Could not update mapping", err)
	}

	writeJSON(w, http.StatusOK, mapping)
	return nil
}

func (h *MappingHandler) Delete(w http.ResponseWriter, r *http.Request) *common.AppError {
	id, appErr := pathID(r)
	if appErr != nil {
		return appErr
	}

	if err := h.mappingService.Delete(id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return common.NewAppError(http.StatusNotFound, "Mapping not found", nil)
		}
		return common.NewAppError(http.StatusInternalServerError, "Could not delete mapping", err)
	}

	w.WriteHeader(http.StatusNoContent)
	return nil
}
