// file: service/careerplan_service.go

package service

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
	"wiser-api/logger"
	"wiser-api/model"
	"wiser-api/repository"

	"github.com/sirupsen/logrus"
)

const (
	maxPlansPerYear = 2
	openAIEndpoint  = "https://api.openai.com/v1/chat/completions"
)

var (
	ErrPlanLimitReached = errors.New("maximum 2 career plans allowed per year")
	ErrInvalidStatus    = errors.New("invalid plan status")
)

// CareerPlanService manages yearly growth plans and the growth-map generator.
type CareerPlanService struct {
	planRepo     repository.ICareerPlanRepository
	userRepo     repository.IUserRepository
	httpClient   *http.Client
	openAIAPIKey string
}

func NewCareerPlanService(planRepo repository.ICareerPlanRepository, userRepo repository.IUserRepository, openAIAPIKey string) *CareerPlanService {
	return &CareerPlanService{
		planRepo:     planRepo,
		userRepo:     userRepo,
		httpClient:   &http.Client{Timeout: 60 * time.Second},
		openAIAPIKey: openAIAPIKey,
	}
}

// CreatePlan opens a new plan for the user, capped at two per year. The
// plan's manager is inherited from the user record at creation time.
func (s *CareerPlanService) CreatePlan(userID int, req model.CreateCareerPlanRequest) (*model.CareerPlan, error) {
	count, err := s.planRepo.CountByUserAndYear(userID, req.Year)
	if err != nil {
		return nil, err
	}
	if count >= maxPlansPerYear {
		return nil, ErrPlanLimitReached
	}

	user, err := s.userRepo.GetUserByID(userID)
	if err != nil {
		return nil, err
	}

	plan := &model.CareerPlan{
		UserID:       userID,
		ManagerID:    user.ManagerID,
		Year:         req.Year,
		Status:       model.PlanStatusDraft,
		TargetLevel:  req.TargetLevel,
		ReviewPeriod: req.ReviewPeriod,
	}
	if err := s.planRepo.Create(plan); err != nil {
		return nil, err
	}
	return plan, nil
}

func (s *CareerPlanService) MyPlans(userID int) ([]*model.CareerPlan, error) {
	return s.planRepo.GetByUserID(userID)
}

// TeamPlans lists the plans of everyone reporting to the given manager.
func (s *CareerPlanService) TeamPlans(managerID int) ([]*model.CareerPlan, error) {
	return s.planRepo.GetByManagerID(managerID)
}

func (s *CareerPlanService) AddManagerComment(planID int, comments json.RawMessage) error {
	return s.planRepo.SetManagerComments(planID, comments)
}

func (s *CareerPlanService) AddEmployeeComment(planID int, comments json.RawMessage) error {
	return s.planRepo.SetEmployeeComments(planID, comments)
}

func (s *CareerPlanService) UpdateStatus(planID int, status model.PlanStatus) error {
	if !model.ValidPlanStatus(status) {
		return ErrInvalidStatus
	}
	return s.planRepo.UpdateStatus(planID, status)
}

// AttachCertificate appends an uploaded certificate to the user's draft
// plan, creating a fresh draft when none exists.
func (s *CareerPlanService) AttachCertificate(userID int, cert model.Certificate) (*model.CareerPlan, error) {
	plan, err := s.planRepo.FindDraftByUserID(userID)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		plan = &model.CareerPlan{
			UserID:       userID,
			Year:         time.Now().Year(),
			Status:       model.PlanStatusDraft,
			Certificates: []model.Certificate{cert},
		}
		if err := s.planRepo.Create(plan); err != nil {
			return nil, err
		}
		return plan, nil
	}

	plan.Certificates = append(plan.Certificates, cert)
	if err := s.planRepo.UpdateCertificates(plan.ID, plan.Certificates); err != nil {
		return nil, err
	}
	return plan, nil
}

// MyCertificates collects the certificates attached to any of the user's plans.
func (s *CareerPlanService) MyCertificates(userID int) ([]model.Certificate, error) {
	plans, err := s.planRepo.GetByUserID(userID)
	if err != nil {
		return nil, err
	}
	certs := []model.Certificate{}
	for _, plan := range plans {
		certs = append(certs, plan.Certificates...)
	}
	return certs, nil
}

type chatCompletionRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// GenerateGrowthMap asks the upstream model for a growth map built from the
// user's profile snapshot. Without an API key, or on any upstream failure,
// it falls back to a static example map so the feature stays demoable.
func (s *CareerPlanService) GenerateGrowthMap(profile model.GenerateGrowthMapRequest) (*model.GrowthMap, error) {
	if s.openAIAPIKey == "" {
		logger.Log.Info("No OpenAI API key configured, returning mock growth map")
		return mockGrowthMap(), nil
	}

	growthMap, err := s.callOpenAI(profile)
	if err != nil {
		logger.Log.WithError(err).Warn("Growth map generation failed, returning mock growth map")
		return mockGrowthMap(), nil
	}
	return growthMap, nil
}

func (s *CareerPlanService) callOpenAI(profile model.GenerateGrowthMapRequest) (*model.GrowthMap, error) {
	profileJSON, err := json.Marshal(profile)
	if err != nil {
		return nil, err
	}

	prompt := fmt.Sprintf(growthMapPrompt, profileJSON)
	body, err := json.Marshal(chatCompletionRequest{
		Model: "gpt-4o",
		Messages: []chatMessage{
			{Role: "system", Content: "You are a helpful assistant that generates career plans in JSON format."},
			{Role: "user", Content: prompt},
		},
		Temperature: 0.7,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequest(http.MethodPost, openAIEndpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.openAIAPIKey)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		logger.Log.WithFields(logrus.Fields{
			"status": resp.StatusCode,
			"detail": string(detail),
		}).Error("OpenAI API returned an error")
		return nil, fmt.Errorf("openai api error: %s", resp.Status)
	}

	var completion chatCompletionResponse
	if err := json.NewDecoder(resp.Body).Decode(&completion); err != nil {
		return nil, err
	}
	if len(completion.Choices) == 0 {
		return nil, errors.New("openai response contained no choices")
	}

	content := completion.Choices[0].Message.Content
	content = trimMarkdownFence(content)

	growthMap := &model.GrowthMap{}
	if err := json.Unmarshal([]byte(content), growthMap); err != nil {
		return nil, fmt.Errorf("could not parse growth map: %w", err)
	}
	return growthMap, nil
}

// trimMarkdownFence strips the ```json fence some model replies wrap around
// the payload despite instructions.
func trimMarkdownFence(content string) string {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(strings.TrimSpace(content), "```")
	return strings.TrimSpace(content)
}

const growthMapPrompt = `You are a senior career development expert and HR mentor.

Generate a career growth map that can be rendered directly into a dashboard UI similar to a Growth Map overview.

User Profile:
%s

The response MUST be a valid JSON object following EXACTLY this structure:

{
  "careerGoal": { "title": "string", "timeframe": "string" },
  "competencies": [ { "name": "string", "progress": number } ],
  "focusAreas": [ { "name": "string", "priority": number, "progress": number, "description": "string" } ],
  "actionPlan": [ { "action": "string", "timeline": "string", "successMetrics": "string", "supportNeeded": "string" } ],
  "suggestedCourses": [ { "name": "string", "progress": number } ],
  "supportNeeded": [ { "title": "string", "description": "string" } ]
}

Rules:
- Progress values must be numbers from 0 to 100.
- focusAreas MUST be ordered by priority ascending (1 = highest).
- Action plan tasks should be realistic and measurable.
- Suggested courses should align with focus areas.
- Keep text concise and suitable for UI cards.
- Do NOT include markdown.
- Return ONLY raw JSON.`

func mockGrowthMap() *model.GrowthMap {
	return &model.GrowthMap{
		CareerGoal: model.GrowthMapGoal{
			Title:     "Become Senior Developer",
			Timeframe: "12 months",
		},
		Competencies: []model.GrowthMapProgress{
			{Name: "Backend Development", Progress: 60},
			{Name: "System Design", Progress: 25},
			{Name: "Leadership", Progress: 78},
		},
		FocusAreas: []model.GrowthMapFocus{
			{Name: "Leadership", Priority: 1, Progress: 10, Description: "Improve ownership and team influence"},
			{Name: "English Communication", Priority: 2, Progress: 60, Description: "Improve presentation and discussion skills"},
			{Name: "System Design", Priority: 3, Progress: 30, Description: "Design scalable backend systems"},
		},
		ActionPlan: []model.GrowthMapAction{
			{
				Action:         "Take ownership of at least one feature module",
				Timeline:       "3 months",
				SuccessMetrics: "Module delivered with < 5 bugs",
				SupportNeeded:  "Code review from senior dev",
			},
			{
				Action:         "Complete Public Speaking course",
				Timeline:       "6 months",
				SuccessMetrics: "Present at 2 team meetings",
				SupportNeeded:  "Time allocation",
			},
			{
				Action:         "Lead a small feature team",
				Timeline:       "12 months",
				SuccessMetrics: "Successful feature launch",
				SupportNeeded:  "Mentorship on leadership",
			},
		},
		SuggestedCourses: []model.GrowthMapProgress{
			{Name: "Public Speaking", Progress: 40},
			{Name: "Leadership Fundamental", Progress: 30},
			{Name: "Design Thinking", Progress: 50},
		},
		SupportNeeded: []model.GrowthMapSupport{
			{Title: "Manager Feedback", Description: "Feedback on leadership behaviors"},
			{Title: "Mentoring", Description: "Support for decision-making and communication"},
			{Title: "Learning Time", Description: "Allocated time for completing courses"},
		},
	}
}
