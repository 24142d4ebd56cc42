package service

import (
	"database/sql"
	"errors"
	"wiser-api/model"
	"wiser-api/repository"
)

var ErrSkillNotFound = errors.New("skill not found or access denied")

// SkillService handles the self-reported skill entries of users.
type SkillService struct {
	skillRepo repository.ISkillRepository
}

func NewSkillService(skillRepo repository.ISkillRepository) *SkillService {
	return &SkillService{skillRepo: skillRepo}
}

func (s *SkillService) AddSkill(userID int, req model.CreateUserSkillRequest) (*model.UserSkill, error) {
	skill := &model.UserSkill{
		UserID:     userID,
		SkillName:  req.SkillName,
		Experience: req.Experience,
		Level:      req.Level,
		CareerGoal: req.CareerGoal,
	}
	if err := s.skillRepo.Create(skill); err != nil {
		return nil, err
	}
	return skill, nil
}

func (s *SkillService) ListSkillsForUser(userID int) ([]*model.UserSkill, error) {
	return s.skillRepo.GetByUserID(userID)
}

// ListAllSkills is restricted to MANAGER/HR/ADMIN at the handler.
func (s *SkillService) ListAllSkills() ([]*model.UserSkill, error) {
	return s.skillRepo.GetAll()
}

// UpdateSkill updates a skill entry after checking it belongs to the caller.
// Whether the entry exists or belongs to someone else is not distinguished.
func (s *SkillService) UpdateSkill(userID, skillID int, req model.UpdateUserSkillRequest) (*model.UserSkill, error) {
	skill, err := s.skillRepo.GetByID(skillID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSkillNotFound
		}
		return nil, err
	}
	if skill.UserID != userID {
		return nil, ErrSkillNotFound
	}
	return s.skillRepo.Update(skillID, req)
}

func (s *SkillService) DeleteSkill(userID, skillID int) error {
	skill, err := s.skillRepo.GetByID(skillID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrSkillNotFound
		}
		return err
	}
	if skill.UserID != userID {
		return ErrSkillNotFound
	}
	return s.skillRepo.Delete(skillID)
}
