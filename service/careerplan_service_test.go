// file: service/careerplan_service_test.go

package service

import (
	"database/sql"
	"encoding/json"
	"testing"
	"time"
	"wiser-api/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockPlanRepo struct{ mock.Mock }

func (m *mockPlanRepo) Create(plan *model.CareerPlan) error {
	args := m.Called(plan)
	return args.Error(0)
}
func (m *mockPlanRepo) CountByUserAndYear(userID, year int) (int, error) {
	args := m.Called(userID, year)
	return args.Int(0), args.Error(1)
}
func (m *mockPlanRepo) GetByID(id int) (*model.CareerPlan, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CareerPlan), args.Error(1)
}
func (m *mockPlanRepo) GetByUserID(userID int) ([]*model.CareerPlan, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.CareerPlan), args.Error(1)
}
func (m *mockPlanRepo) GetByManagerID(managerID int) ([]*model.CareerPlan, error) {
	args := m.Called(managerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.CareerPlan), args.Error(1)
}
func (m *mockPlanRepo) FindDraftByUserID(userID int) (*model.CareerPlan, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CareerPlan), args.Error(1)
}
func (m *mockPlanRepo) SetManagerComments(id int, comments json.RawMessage) error {
	args := m.Called(id, comments)
	return args.Error(0)
}
func (m *mockPlanRepo) SetEmployeeComments(id int, comments json.RawMessage) error {
	args := m.Called(id, comments)
	return args.Error(0)
}
func (m *mockPlanRepo) UpdateStatus(id int, status model.PlanStatus) error {
	args := m.Called(id, status)
	return args.Error(0)
}
func (m *mockPlanRepo) UpdateCertificates(id int, certs []model.Certificate) error {
	args := m.Called(id, certs)
	return args.Error(0)
}

func TestCareerPlanService_CreatePlan(t *testing.T) {
	t.Run("inherits the manager from the user record", func(t *testing.T) {
		planRepo := new(mockPlanRepo)
		userRepo := new(mockUserRepo)
		planService := NewCareerPlanService(planRepo, userRepo, "")

		managerID := 9
		planRepo.On("CountByUserAndYear", 5, 2026).Return(0, nil).Once()
		userRepo.On("GetUserByID", 5).Return(&model.User{ID: 5, ManagerID: &managerID}, nil).Once()
		planRepo.On("Create", mock.MatchedBy(func(p *model.CareerPlan) bool {
			return p.UserID == 5 && p.Year == 2026 &&
				p.Status == model.PlanStatusDraft &&
				p.ManagerID != nil && *p.ManagerID == 9
		})).Return(nil).Once()

		plan, err := planService.CreatePlan(5, model.CreateCareerPlanRequest{Year: 2026})
		assert.NoError(t, err)
		assert.NotNil(t, plan)
		planRepo.AssertExpectations(t)
	})

	t.Run("caps plans per year", func(t *testing.T) {
		planRepo := new(mockPlanRepo)
		userRepo := new(mockUserRepo)
		planService := NewCareerPlanService(planRepo, userRepo, "")

		planRepo.On("CountByUserAndYear", 5, 2026).Return(2, nil).Once()

		_, err := planService.CreatePlan(5, model.CreateCareerPlanRequest{Year: 2026})
		assert.ErrorIs(t, err, ErrPlanLimitReached)
		planRepo.AssertNotCalled(t, "Create", mock.Anything)
	})
}

func TestCareerPlanService_UpdateStatus(t *testing.T) {
	planRepo := new(mockPlanRepo)
	planService := NewCareerPlanService(planRepo, new(mockUserRepo), "")

	planRepo.On("UpdateStatus", 3, model.PlanStatusSubmitted).Return(nil).Once()
	assert.NoError(t, planService.UpdateStatus(3, model.PlanStatusSubmitted))

	err := planService.UpdateStatus(3, model.PlanStatus("SHIPPED"))
	assert.ErrorIs(t, err, ErrInvalidStatus)
	planRepo.AssertExpectations(t)
}

func TestCareerPlanService_AttachCertificate(t *testing.T) {
	cert := model.Certificate{FileName: "aws.pdf", FileURL: "/uploads/certificates/aws.pdf"}

	t.Run("appends to an existing draft", func(t *testing.T) {
		planRepo := new(mockPlanRepo)
		planService := NewCareerPlanService(planRepo, new(mockUserRepo), "")

		draft := &model.CareerPlan{ID: 3, UserID: 5, Status: model.PlanStatusDraft}
		planRepo.On("FindDraftByUserID", 5).Return(draft, nil).Once()
		planRepo.On("UpdateCertificates", 3, []model.Certificate{cert}).Return(nil).Once()

		plan, err := planService.AttachCertificate(5, cert)
		assert.NoError(t, err)
		assert.Len(t, plan.Certificates, 1)
		planRepo.AssertExpectations(t)
	})

	t.Run("creates a draft for the current year when none exists", func(t *testing.T) {
		planRepo := new(mockPlanRepo)
		planService := NewCareerPlanService(planRepo, new(mockUserRepo), "")

		planRepo.On("FindDraftByUserID", 5).Return(nil, sql.ErrNoRows).Once()
		planRepo.On("Create", mock.MatchedBy(func(p *model.CareerPlan) bool {
			return p.UserID == 5 && p.Year == time.Now().Year() &&
				p.Status == model.PlanStatusDraft && len(p.Certificates) == 1
		})).Return(nil).Once()

		plan, err := planService.AttachCertificate(5, cert)
		assert.NoError(t, err)
		assert.Equal(t, []model.Certificate{cert}, plan.Certificates)
		planRepo.AssertExpectations(t)
	})
}

func TestCareerPlanService_MyCertificates(t *testing.T) {
	planRepo := new(mockPlanRepo)
	planService := NewCareerPlanService(planRepo, new(mockUserRepo), "")

	planRepo.On("GetByUserID", 5).Return([]*model.CareerPlan{
		{ID: 1, Certificates: []model.Certificate{{FileName: "a.pdf"}}},
		{ID: 2},
		{ID: 3, Certificates: []model.Certificate{{FileName: "b.pdf"}, {FileName: "c.pdf"}}},
	}, nil).Once()

	certs, err := planService.MyCertificates(5)
	assert.NoError(t, err)
	assert.Len(t, certs, 3)
}

// Without an API key the generator must still produce a renderable map.
func TestCareerPlanService_GenerateGrowthMap_NoAPIKey(t *testing.T) {
	planService := NewCareerPlanService(new(mockPlanRepo), new(mockUserRepo), "")

	growthMap, err := planService.GenerateGrowthMap(model.GenerateGrowthMapRequest{})
	assert.NoError(t, err)
	assert.NotEmpty(t, growthMap.CareerGoal.Title)
	assert.NotEmpty(t, growthMap.FocusAreas)
	for i := 1; i < len(growthMap.FocusAreas); i++ {
		assert.LessOrEqual(t, growthMap.FocusAreas[i-1].Priority, growthMap.FocusAreas[i].Priority)
	}
}

func TestTrimMarkdownFence(t *testing.T) {
	assert.Equal(t, `{"a":1}`, trimMarkdownFence("```json\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, trimMarkdownFence("```\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, trimMarkdownFence(`{"a":1}`))
}
