package service

import (
	"database/sql"
	"errors"
	"wiser-api/model"
	"wiser-api/repository"
)

var ErrProfileUserUnknown = errors.New("no user with that email")

// ProfileService manages HR-maintained employee profiles.
type ProfileService struct {
	profileRepo repository.IProfileRepository
	userRepo    repository.IUserRepository
}

func NewProfileService(profileRepo repository.IProfileRepository, userRepo repository.IUserRepository) *ProfileService {
	return &ProfileService{
		profileRepo: profileRepo,
		userRepo:    userRepo,
	}
}

// Create adds a profile after checking the referenced user exists.
func (s *ProfileService) Create(req model.CreateEmployeeProfileRequest) (*model.EmployeeProfile, error) {
	if _, err := s.userRepo.GetUserByEmail(req.UserEmail); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProfileUserUnknown
		}
		return nil, err
	}

	profile := &model.EmployeeProfile{
		UserEmail:    req.UserEmail,
		FullName:     req.FullName,
		Department:   req.Department,
		JobTitle:     req.JobTitle,
		Level:        req.Level,
		ManagerEmail: req.ManagerEmail,
	}
	if err := s.profileRepo.Create(profile); err != nil {
		return nil, err
	}
	return profile, nil
}

func (s *ProfileService) Get(id int) (*model.EmployeeProfile, error) {
	return s.profileRepo.GetByID(id)
}

func (s *ProfileService) List() ([]*model.EmployeeProfile, error) {
	return s.profileRepo.GetAll()
}

func (s *ProfileService) Update(id int, req model.UpdateEmployeeProfileRequest) (*model.EmployeeProfile, error) {
	return s.profileRepo.Update(id, req)
}

func (s *ProfileService) Delete(id int) error {
	return s.profileRepo.Delete(id)
}
