// file: handler/careerplan_handler.go

package handler

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"
	"wiser-api/common"
	"wiser-api/config"
	"wiser-api/model"
	"wiser-api/service"
)

type CareerPlanHandler struct {
	planService *service.CareerPlanService
}

func NewCareerPlanHandler(planService *service.CareerPlanService) *CareerPlanHandler {
	return &CareerPlanHandler{planService: planService}
}

func (h *CareerPlanHandler) Create(w http.ResponseWriter, r *http.Request) *common.AppError {
	userID, appErr := callerID(r)
	if appErr != nil {
		return appErr
	}

	var req model.CreateCareerPlanRequest
	if !common.ValidateAndDecode(w, r, &req) {
		return nil
	}

	plan, err := h.planService.CreatePlan(userID, req)
	if err != nil {
		if errors.Is(err, service.ErrPlanLimitReached) {
			return common.NewAppError(http.StatusConflict, err.Error(), nil)
		}
		return common.NewAppError(http.StatusInternalServerError, "Could not create career plan", err)
	}

	writeJSON(w, http.StatusCreated, plan)
	return nil
}

func (h *CareerPlanHandler) MyPlans(w http.ResponseWriter, r *http.Request) *common.AppError {
	userID, appErr := callerID(r)
	if appErr != nil {
		return appErr
	}

	plans, err := h.planService.MyPlans(userID)
	if err != nil {
		return common.NewAppError(http.StatusInternalServerError, "Could not list career plans", err)
	}

	writeJSON(w, http.StatusOK, plans)
	return nil
}

// TeamPlans lists the plans of the caller's direct reports.
func (h *CareerPlanHandler) TeamPlans(w http.ResponseWriter, r *http.Request) *common.AppError {
	managerID, appErr := callerID(r)
	if appErr != nil {
		return appErr
	}

	plans, err := h.planService.TeamPlans(managerID)
	if err != nil {
		return common.NewAppError(http.StatusInternalServerError, "Could not list team plans", err)
	}

	writeJSON(w, http.StatusOK, plans)
	return nil
}

// AddComment stores the manager comment thread of a plan. The comment body
// is an opaque JSON document owned by the frontend.
func (h *CareerPlanHandler) AddComment(w http.ResponseWriter, r *http.Request) *common.AppError {
	return h.addComment(w, r, h.planService.AddManagerComment)
}

func (h *CareerPlanHandler) AddEmployeeComment(w http.ResponseWriter, r *http.Request) *common.AppError {
	return h.addComment(w, r, h.planService.AddEmployeeComment)
}

func (h *CareerPlanHandler) addComment(w http.ResponseWriter, r *http.Request, save func(int, json.RawMessage) error) *common.AppError {
	id, appErr := pathID(r)
	if appErr != nil {
		return appErr
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err != nil || !json.Valid(body) {
		return common.NewAppError(http.StatusBadRequest, "Invalid comment body", err)
	}

	if err := save(id, body); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return common.NewAppError(http.StatusNotFound, "Career plan not found", nil)
		}
		return common.NewAppError(http.StatusInternalServerError, "Could not save comment", err)
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "comment saved"})
	return nil
}

func (h *CareerPlanHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) *common.AppError {
	id, appErr := pathID(r)
	if appErr != nil {
		return appErr
	}

	var req model.UpdatePlanStatusRequest
	if !common.ValidateAndDecode(w, r, &req) {
		return nil
	}

	if err := h.planService.UpdateStatus(id, req.Status); err != nil {
		if errors.Is(err, service.ErrInvalidStatus) {
			return common.NewAppError(http.StatusBadRequest, err.Error(), nil)
		}
		if errors.Is(err, sql.ErrNoRows) {
			return common.NewAppError(http.StatusNotFound, "Career plan not found", nil)
		}
		return common.NewAppError(http.StatusInternalServerError, "Could not update status", err)
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "status updated"})
	return nil
}

// GenerateGrowthMap builds a growth map from the posted profile snapshot.
func (h *CareerPlanHandler) GenerateGrowthMap(w http.ResponseWriter, r *http.Request) *common.AppError {
	var req model.GenerateGrowthMapRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return common.NewAppError(http.StatusBadRequest, "Invalid request body", err)
	}

	growthMap, err := h.planService.GenerateGrowthMap(req)
	if err != nil {
		return common.NewAppError(http.StatusInternalServerError, "Could not generate growth map", err)
	}

	writeJSON(w, http.StatusOK, growthMap)
	return nil
}

// UploadCertificate stores an uploaded certificate file and attaches it to
// the caller's draft plan.
func (h *CareerPlanHandler) UploadCertificate(w http.ResponseWriter, r *http.Request) *common.AppError {
	userID, appErr := callerID(r)
	if appErr != nil {
		return appErr
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		return common.NewAppError(http.StatusBadRequest, "Missing file in form data", err)
	}
	defer file.Close()

	dir := filepath.Join(config.AppConfig.Uploads.Dir, "certificates")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return common.NewAppError(http.StatusInternalServerError, "Could not store file", err)
	}

	storedName := fmt.Sprintf("%d-%d-%s", userID, time.Now().UnixNano(), filepath.Base(header.Filename))
	dst, err := os.Create(filepath.Join(dir, storedName))
	if err != nil {
		return common.NewAppError(http.StatusInternalServerError, "Could not store file", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		return common.NewAppError(http.StatusInternalServerError, "Could not store file", err)
	}

	plan, err := h.planService.AttachCertificate(userID, model.Certificate{
		FileName: header.Filename,
		FileURL:  "/uploads/certificates/" + storedName,
	})
	if err != nil {
		return common.NewAppError(http.StatusInternalServerError, "Could not attach certificate", err)
	}

	writeJSON(w, http.StatusCreated, plan)
	return nil
}

func (h *CareerPlanHandler) MyCertificates(w http.ResponseWriter, r *http.Request) *common.AppError {
	userID, appErr := callerID(r)
	if appErr != nil {
		return appErr
	}

	certs, err := h.planService.MyCertificates(userID)
	if err != nil {
		return common.NewAppError(http.StatusInternalServerError, "Could not list certificates", err)
	}

	writeJSON(w, http.StatusOK, certs)
	return nil
}
