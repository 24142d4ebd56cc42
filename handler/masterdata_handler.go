package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"wiser-api/common"
	"wiser-api/model"
	"wiser-api/service"
)

type MasterDataHandler struct {
	masterDataService *service.MasterDataService
}

func NewMasterDataHandler(masterDataService *service.MasterDataService) *MasterDataHandler {
	return &MasterDataHandler{masterDataService: masterDataService}
}

func (h *MasterDataHandler) Create(w http.ResponseWriter, r *http.Request) *common.AppError {
	var req model.CreateMasterDataRequest
	if !common.ValidateAndDecode(w, r, &req) {
		return nil
	}

	row, err := h.masterDataService.Create(req)
	if err != nil {
		return common.NewAppError(http.StatusInternalServerError, "Could not create master data", err)
	}

	writeJSON(w, http.StatusCreated, row)
	return nil
}

// Import accepts a JSON batch of rows and inserts them in one transaction.
func (h *MasterDataHandler) Import(w http.ResponseWriter, r *http.Request) *common.AppError {
	var req model.ImportMasterDataRequest
	if !common.ValidateAndDecode(w, r, &req) {
		return nil
	}

	count, err := h.masterDataService.Import(req)
	if err != nil {
		return common.NewAppError(http.StatusInternalServerError, "Could not import master data", err)
	}

	writeJSON(w, http.StatusOK, map[string]int{"imported": count})
	return nil
}

func (h *MasterDataHandler) List(w http.ResponseWriter, r *http.Request) *common.AppError {
	rows, err := h.masterDataService.List()
	if err != nil {
		return common.NewAppError(http.StatusInternalServerError, "Could not list master data", err)
	}

	writeJSON(w, http.StatusOK, rows)
	return nil
}

func (h *MasterDataHandler) Get(w http.ResponseWriter, r *http.Request) *common.AppError {
	id, appErr := pathID(r)
	if appErr != nil {
		return appErr
	}

	row, err := h.masterDataService.Get(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return common.NewAppError(http.StatusNotFound, "Master data not found", nil)
		}
		return common.NewAppError(http.StatusInternalServerError, "Could not load master data", err)
	}

	writeJSON(w, http.StatusOK, row)
	return nil
}

func (h *MasterDataHandler) Update(w http.ResponseWriter, r *http.Request) *common.AppError {
	id, appErr := pathID(r)
	if appErr != nil {
		return appErr
	}

	var req model.UpdateMasterDataRequest
	if !common.ValidateAndDecode(w, r, &req) {
		return nil
	}

	row, err := h.masterDataService.Update(id, req)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return common.NewAppError(http.StatusNotFound, "Master data not found", nil)
		}
		return common.NewAppError(http.StatusInternalServerError, "Could not update master data", err)
	}

	writeJSON(w, http.StatusOK, row)
	return nil
}

func (h *MasterDataHandler) Delete(w http.ResponseWriter, r *http.Request) *common.AppError {
	id, appErr := pathID(r)
	if appErr != nil {
		return appErr
	}

	if err := h.masterDataService.Delete(id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return common.NewAppError(http.StatusNotFound, "Master data not found", nil)
		}
		return common.NewAppError(http.StatusInternalServerError, "Could not delete master data", err)
	}

	w.WriteHeader(http.StatusNoContent)
	return nil
}
