package handler

import (
	"errors"
	"net/http"
	"wiser-api/common"
	"wiser-api/model"
	"wiser-api/service"
)

type SkillHandler struct {
	skillService *service.SkillService
}

func NewSkillHandler(skillService *service.SkillService) *SkillHandler {
	return &SkillHandler{skillService: skillService}
}

func (h *SkillHandler) AddSkill(w http.ResponseWriter, r *http.Request) *common.AppError {
	userID, appErr := callerID(r)
	if appErr != nil {
		return appErr
	}

	var req model.CreateUserSkillRequest
	if !common.ValidateAndDecode(w, r, &req) {
		return nil
	}

	skill, err := h.skillService.AddSkill(userID, req)
	if err != nil {
		return common.NewAppError(http.StatusInternalServerError, "Could not add skill", err)
	}

	writeJSON(w, http.StatusCreated, skill)
	return nil
}

// ListMySkills returns the caller's own skill entries.
func (h *SkillHandler) ListMySkills(w http.ResponseWriter, r *http.Request) *common.AppError {
	userID, appErr := callerID(r)
	if appErr != nil {
		return appErr
	}

	skills, err := h.skillService.ListSkillsForUser(userID)
	if err != nil {
		return common.NewAppError(http.StatusInternalServerError, "Could not list skills", err)
	}

	writeJSON(w, http.StatusOK, skills)
	return nil
}

// ListAllSkills returns everyone's skills. Restricted by role middleware.
func (h *SkillHandler) ListAllSkills(w http.ResponseWriter, r *http.Request) *common.AppError {
	skills, err := h.skillService.ListAllSkills()
	if err != nil {
		return common.NewAppError(http.StatusInternalServerError, "Could not list skills", err)
	}

	writeJSON(w, http.StatusOK, skills)
	return nil
}

func (h *SkillHandler) UpdateSkill(w http.ResponseWriter, r *http.Request) *common.AppError {
	userID, appErr := callerID(r)
	if appErr != nil {
		return appErr
	}
	id, appErr := pathID(r)
	if appErr != nil {
		return appErr
	}

	var req model.UpdateUserSkillRequest
	if !common.ValidateAndDecode(w, r, &req) {
		return nil
	}

	skill, err := h.skillService.UpdateSkill(userID, id, req)
	if err != nil {
		if errors.Is(err, service.ErrSkillNotFound) {
			return common.NewAppError(http.StatusNotFound, err.Error(), nil)
		}
		return common.NewAppError(http.StatusInternalServerError, "Could not update skill", err)
	}

	writeJSON(w, http.StatusOK, skill)
	return nil
}

func (h *SkillHandler) DeleteSkill(w http.ResponseWriter, r *http.Request) *common.AppError {
	userID, appErr := callerID(r)
	if appErr != nil {
		return appErr
	}
	id, appErr := pathID(r)
	if appErr != nil {
		return appErr
	}

	if err := h.skillService.DeleteSkill(userID, id); err != nil {
		if errors.Is(err, service.ErrSkillNotFound) {
			return common.NewAppError(http.StatusNotFound, err.Error(), nil)
		}
		return common.NewAppError(http.StatusInternalServerError, "Could not delete skill", err)
	}

	w.WriteHeader(http.StatusNoContent)
	return nil
}
