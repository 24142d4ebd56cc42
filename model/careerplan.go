package model

import (
	"encoding/json"
	"time"
)

// PlanStatus is the lifecycle state of a career plan.
type PlanStatus string

const (
	PlanStatusDraft     PlanStatus = "DRAFT"
	PlanStatusSubmitted PlanStatus = "SUBMITTED"
	PlanStatusInReview  PlanStatus = "IN_REVIEW"
	PlanStatusApproved  PlanStatus = "APPROVED"
)

func ValidPlanStatus(s PlanStatus) bool {
	switch s {
	case PlanStatusDraft, PlanStatusSubmitted, PlanStatusInReview, PlanStatusApproved:
		return true
	}
	return false
}

// Certificate is an uploaded training certificate attached to a plan.
type Certificate struct {
	FileName string `json:"file_name"`
	FileURL  string `json:"file_url"`
}

// CareerPlan is one yearly growth plan for a user. The growth map and the
// comment threads are stored as JSON documents; their shape is owned by the
// frontend and the growth-map generator, not by the schema.
type CareerPlan struct {
	ID               int             `json:"id"`
	UserID           int             `json:"user_id"`
	ManagerID        *int            `json:"manager_id,omitempty"`
	Year             int             `json:"year"`
	Status           PlanStatus      `json:"status"`
	TargetLevel      *string         `json:"target_level,omitempty"`
	ReviewPeriod     *string         `json:"review_period,omitempty"`
	GrowthMap        json.RawMessage `json:"growth_map,omitempty"`
	ManagerComments  json.RawMessage `json:"manager_comments,omitempty"`
	EmployeeComments json.RawMessage `json:"employee_comments,omitempty"`
	Certificates     []Certificate   `json:"certificates,omitempty"`
	CreatedAt        time.Time       `json:"created_at"`
}

// GrowthMap is the structure the growth-map generator returns. It mirrors
// the dashboard layout on the frontend.
type GrowthMap struct {
	CareerGoal       GrowthMapGoal       `json:"careerGoal"`
	Competencies     []GrowthMapProgress `json:"competencies"`
	FocusAreas       []GrowthMapFocus    `json:"focusAreas"`
	ActionPlan       []GrowthMapAction   `json:"actionPlan"`
	SuggestedCourses []GrowthMapProgress `json:"suggestedCourses"`
	SupportNeeded    []GrowthMapSupport  `json:"supportNeeded"`
}

type GrowthMapGoal struct {
	Title     string `json:"title"`
	Timeframe string `json:"timeframe"`
}

type GrowthMapProgress struct {
	Name     string `json:"name"`
	Progress int    `json:"progress"`
}

type GrowthMapFocus struct {
	Name        string `json:"name"`
	Priority    int    `json:"priority"`
	Progress    int    `json:"progress"`
	Description string `json:"description"`
}

type GrowthMapAction struct {
	Action         string `json:"action"`
	Timeline       string `json:"timeline"`
	SuccessMetrics string `json:"successMetrics"`
	SupportNeeded  string `json:"supportNeeded"`
}

type GrowthMapSupport struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}
