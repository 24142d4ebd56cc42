package service

import (
	"wiser-api/model"
	"wiser-api/repository"
)

// ConfigDataService manages named application settings.
type ConfigDataService struct {
	repo repository.IConfigDataRepository
}

func NewConfigDataService(repo repository.IConfigDataRepository) *ConfigDataService {
	return &ConfigDataService{repo: repo}
}

func (s *ConfigDataService) Create(req model.CreateConfigDataRequest) (*model.ConfigData, error) {
	row := &model.ConfigData{Name: req.Name, Value: req.Value}
	if err := s.repo.Create(row); err != nil {
		return nil, err
	}
	return row, nil
}

func (s *ConfigDataService) List() ([]*model.ConfigData, error) {
	return s.repo.GetAll()
}

func (s *ConfigDataService) Update(id int, req model.UpdateConfigDataRequest) (*model.ConfigData, error) {
	return s.repo.Update(id, req)
}

func (s *ConfigDataService) Delete(id int) error {
	return s.repo.Delete(id)
}
