package service

import (
	"errors"
	"wiser-api/model"
	"wiser-api/repository"

	"golang.org/x/crypto/bcrypt"
)

var ErrInvalidRole = errors.New("invalid role specified")

// UserService handles user-related business logic.
type UserService struct {
	userRepo repository.IUserRepository
}

// NewUserService creates a new UserService.
func NewUserService(userRepo repository.IUserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

func (s *UserService) GetUser(id int) (*model.User, error) {
	return s.userRepo.GetUserByID(id)
}

func (s *UserService) GetAllUsers() ([]*model.User, error) {
	return s.userRepo.GetAllUsers()
}

// CreateUser is the admin path for creating a user directly, with an
// explicit role set.
func (s *UserService) CreateUser(req model.CreateUserRequest) (*model.User, error) {
	roles := req.Roles
	if len(roles) == 0 {
		roles = []string{string(model.RoleMember)}
	}
	for _, role := range roles {
		if !model.ValidRole(model.Role(role)) {
			return nil, ErrInvalidRole
		}
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Email:    req.Email,
		Name:     req.Name,
		Password: string(hashed),
		Roles:    roles,
		Level:    req.Level,
		JobTitle: req.JobTitle,
	}
	if err := s.userRepo.CreateUser(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) UpdateUser(id int, req model.UpdateUserRequest) (*model.User, error) {
	return s.userRepo.UpdateUser(id, req)
}

// UpdateUserRoles replaces a user's role set. Only values from the closed
// role set are accepted, and a user can never end up with no roles at all.
func (s *UserService) UpdateUserRoles(userID int, roles []string) error {
	if len(roles) == 0 {
		return ErrInvalidRole
	}
	for _, role := range roles {
		if !model.ValidRole(model.Role(role)) {
			return ErrInvalidRole
		}
	}
	return s.userRepo.UpdateUserRoles(userID, roles)
}

func (s *UserService) DeleteUser(id int) error {
	return s.userRepo.DeleteUser(id)
}
