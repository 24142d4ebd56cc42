// file: service/user_service_test.go

package service

import (
	"testing"
	"wiser-api/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type roleUpdatingUserRepo struct {
	mockUserRepo
}

func (m *roleUpdatingUserRepo) UpdateUserRoles(id int, roles []string) error {
	args := m.Called(id, roles)
	return args.Error(0)
}

func TestUserService_CreateUser(t *testing.T) {
	t.Run("defaults to member role and hashes the password", func(t *testing.T) {
		userRepo := new(mockUserRepo)
		userService := NewUserService(userRepo)

		userRepo.On("CreateUser", mock.MatchedBy(func(u *model.User) bool {
			return u.Email == "a@x.com" && u.Password != "secret1" &&
				len(u.Roles) == 1 && u.Roles[0] == string(model.RoleMember)
		})).Return(nil).Once()

		user, err := userService.CreateUser(model.CreateUserRequest{
			Email:    "a@x.com",
			Password: "secret1",
			Name:     "Alice",
		})

		assert.NoError(t, err)
		assert.NotNil(t, user)
		userRepo.AssertExpectations(t)
	})

	t.Run("rejects unknown role", func(t *testing.T) {
		userRepo := new(mockUserRepo)
		userService := NewUserService(userRepo)

		_, err := userService.CreateUser(model.CreateUserRequest{
			Email:    "a@x.com",
			Password: "secret1",
			Name:     "Alice",
			Roles:    []string{"SUPERUSER"},
		})

		assert.ErrorIs(t, err, ErrInvalidRole)
		userRepo.AssertNotCalled(t, "CreateUser", mock.Anything)
	})
}

func TestUserService_UpdateUserRoles(t *testing.T) {
	t.Run("valid role set", func(t *testing.T) {
		userRepo := new(roleUpdatingUserRepo)
		userService := NewUserService(userRepo)

		roles := []string{string(model.RoleManager), string(model.RoleHR)}
		userRepo.On("UpdateUserRoles", 3, roles).Return(nil).Once()

		assert.NoError(t, userService.UpdateUserRoles(3, roles))
		userRepo.AssertExpectations(t)
	})

	t.Run("unknown role is rejected", func(t *testing.T) {
		userRepo := new(roleUpdatingUserRepo)
		userService := NewUserService(userRepo)

		err := userService.UpdateUserRoles(3, []string{"MEMBER", "WIZARD"})
		assert.ErrorIs(t, err, ErrInvalidRole)
		userRepo.AssertNotCalled(t, "UpdateUserRoles", mock.Anything, mock.Anything)
	})

	t.Run("empty role set is rejected", func(t *testing.T) {
		userRepo := new(roleUpdatingUserRepo)
		userService := NewUserService(userRepo)

		err := userService.UpdateUserRoles(3, nil)
		assert.ErrorIs(t, err, ErrInvalidRole)
	})
}
