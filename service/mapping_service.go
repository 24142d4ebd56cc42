package service

import (
	"wiser-api/model"
	"wiser-api/repository"
)

// MappingService manages role-skill expectation mappings.
type MappingService struct {
	repo repository.IMappingRepository
}

func NewMappingService(repo repository.IMappingRepository) *MappingService {
	return &MappingService{repo: repo}
}

func (s *MappingService) Create(req model.CreateRoleSkillMappingRequest) (*model.RoleSkillMapping, error) {
	mapping := &model.RoleSkillMapping{
		Role:        req.Role,
		Level:       req.Level,
		SkillName:   req.SkillName,
		Expectation: req.Expectation,
	}
	if err := s.repo.Create(mapping); err != nil {
		return nil, err
	}
	return mapping, nil
}

func (s *MappingService) Get(id int) (*model.RoleSkillMapping, error) {
	return s.repo.GetByID(id)
}

func (s *MappingService) List() ([]*model.RoleSkillMapping, error) {
	return s.repo.GetAll()
}

func (s *MappingService) Update(id int, req model.UpdateRoleSkillMappingRequest) (*model.RoleSkillMapping, error) {
	return s.repo.Update(id, req)
}

func (s *MappingService) Delete(id int) error {
	return s.repo.Delete(id)
}
