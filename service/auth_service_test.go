// file: service/auth_service_test.go

package service

import (
	"database/sql"
	"os"
	"testing"
	"time"
	"wiser-api/config"
	"wiser-api/logger"
	"wiser-api/model"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// TestMain runs setup before any tests in this package are executed.
func TestMain(m *testing.M) {
	logger.Init()
	os.Exit(m.Run())
}

var testAuthConfig = config.AuthConfig{
	AccessSecret:  "test-access-secret",
	RefreshSecret: "test-refresh-secret",
	AccessTTL:     time.Minute,
	RefreshTTL:    time.Hour,
}

type mockUserRepo struct{ mock.Mock }

func (m *mockUserRepo) CreateUser(user *model.User) error {
	args := m.Called(user)
	return args.Error(0)
}
func (m *mockUserRepo) GetUserByEmail(email string) (*model.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}
func (m *mockUserRepo) GetUserByID(id int) (*model.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

// Unused methods that satisfy the interface contract.
func (m *mockUserRepo) GetAllUsers() ([]*model.User, error) { return nil, nil }
func (m *mockUserRepo) UpdateUser(int, model.UpdateUserRequest) (*model.User, error) {
	return nil, nil
}
func (m *mockUserRepo) UpdateUserRoles(int, []string) error { return nil }
func (m *mockUserRepo) DeleteUser(int) error                { return nil }

type mockTokenRepo struct{ mock.Mock }

func (m *mockTokenRepo) Create(token *model.RefreshToken) error {
	args := m.Called(token)
	return args.Error(0)
}
func (m *mockTokenRepo) CreateTx(tx *sql.Tx, token *model.RefreshToken) error {
	args := m.Called(tx, token)
	return args.Error(0)
}
func (m *mockTokenRepo) GetActiveByUserID(userID int) ([]*model.RefreshToken, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.RefreshToken), args.Error(1)
}
func (m *mockTokenRepo) RevokeTx(tx *sql.Tx, id int) (bool, error) {
	args := m.Called(tx, id)
	return args.Bool(0), args.Error(1)
}
func (m *mockTokenRepo) RevokeAllByUserID(userID int) (int64, error) {
	args := m.Called(userID)
	return args.Get(0).(int64), args.Error(1)
}

func newTestAuthService(t *testing.T) (*AuthService, sqlmock.Sqlmock, *mockUserRepo, *mockTokenRepo) {
	t.Helper()
	db, dbMock, err := sqlmock.New()
	assert.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	userRepo := new(mockUserRepo)
	tokenRepo := new(mockTokenRepo)
	return NewAuthService(db, userRepo, tokenRepo, testAuthConfig), dbMock, userRepo, tokenRepo
}

// TestAuthService_HashAndCheckPassword ensures that password hashing and
// verification work and that the hash never equals the plaintext.
func TestAuthService_HashAndCheckPassword(t *testing.T) {
	authService, _, _, _ := newTestAuthService(t)
	password := "mySecretPassword123"

	hashedPassword, err := authService.HashPassword(password)
	assert.NoError(t, err)
	assert.NotEqual(t, password, hashedPassword)

	assert.True(t, authService.CheckPasswordHash(password, hashedPassword))
	assert.False(t, authService.CheckPasswordHash("notMyPassword", hashedPassword))
}

func TestAuthService_Register(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		authService, _, userRepo, tokenRepo := newTestAuthService(t)

		userRepo.On("GetUserByEmail", "a@x.com").Return(nil, sql.ErrNoRows).Once()
		userRepo.On("CreateUser", mock.MatchedBy(func(u *model.User) bool {
			return u.Email == "a@x.com" && u.Name == "Alice" && u.Password != "secret1"
		})).Run(func(args mock.Arguments) {
			args.Get(0).(*model.User).ID = 1
		}).Return(nil).Once()

		var stored *model.RefreshToken
		tokenRepo.On("Create", mock.AnythingOfType("*model.RefreshToken")).Run(func(args mock.Arguments) {
			stored = args.Get(0).(*model.RefreshToken)
		}).Return(nil).Once()

		pair, err := authService.Register(model.RegisterRequest{
			Email:    "a@x.com",
			Password: "secret1",
			Name:     "Alice",
		})

		assert.NoError(t, err)
		assert.NotEmpty(t, pair.AccessToken)
		assert.NotEmpty(t, pair.RefreshToken)

		// Only the hash of the refresh token is persisted.
		assert.NotNil(t, stored)
		assert.Equal(t, 1, stored.UserID)
		assert.False(t, stored.Revoked)
		assert.NotEqual(t, pair.RefreshToken, stored.TokenHash)
		assert.True(t, authService.checkTokenDigest(pair.RefreshToken, stored.TokenHash))
		assert.True(t, stored.ExpiresAt.After(time.Now()))

		userRepo.AssertExpectations(t)
		tokenRepo.AssertExpectations(t)
	})

	t.Run("duplicate email", func(t *testing.T) {
		authService, _, userRepo, tokenRepo := newTestAuthService(t)

		existing := &model.User{ID: 1, Email: "a@x.com"}
		userRepo.On("GetUserByEmail", "a@x.com").Return(existing, nil).Once()

		_, err := authService.Register(model.RegisterRequest{
			Email:    "a@x.com",
			Password: "secret1",
			Name:     "Alice",
		})

		assert.ErrorIs(t, err, ErrDuplicateUser)
		userRepo.AssertNotCalled(t, "CreateUser", mock.Anything)
		tokenRepo.AssertNotCalled(t, "Create", mock.Anything)
	})
}

func TestAuthService_Login(t *testing.T) {
	authService, _, userRepo, tokenRepo := newTestAuthService(t)

	hashed, err := authService.HashPassword("secret1")
	assert.NoError(t, err)
	user := &model.User{
		ID:       5,
		Email:    "a@x.com",
		Password: hashed,
		Roles:    []string{string(model.RoleMember), string(model.RoleManager)},
	}

	t.Run("success", func(t *testing.T) {
		userRepo.On("GetUserByEmail", "a@x.com").Return(user, nil).Once()
		tokenRepo.On("Create", mock.AnythingOfType("*model.RefreshToken")).Return(nil).Once()

		pair, err := authService.Login(model.LoginRequest{Email: "a@x.com", Password: "secret1"})
		assert.NoError(t, err)

		// The access token carries the subject's identity and role set.
		claims, err := authService.VerifyToken(pair.AccessToken, testAuthConfig.AccessSecret)
		assert.NoError(t, err)
		assert.Equal(t, 5, claims.UserID)
		assert.Equal(t, "a@x.com", claims.Email)
		assert.Equal(t, user.Roles, claims.Roles)

		// The refresh token verifies only against the refresh secret.
		_, err = authService.VerifyToken(pair.RefreshToken, testAuthConfig.RefreshSecret)
		assert.NoError(t, err)
		_, err = authService.VerifyToken(pair.RefreshToken, testAuthConfig.AccessSecret)
		assert.Error(t, err)

		tokenRepo.AssertExpectations(t)
	})

	t.Run("wrong password", func(t *testing.T) {
		userRepo.On("GetUserByEmail", "a@x.com").Return(user, nil).Once()

		_, err := authService.Login(model.LoginRequest{Email: "a@x.com", Password: "wrong"})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		userRepo.On("GetUserByEmail", "nobody@x.com").Return(nil, sql.ErrNoRows).Once()

		_, err := authService.Login(model.LoginRequest{Email: "nobody@x.com", Password: "secret1"})
		// Unknown email and wrong password are indistinguishable.
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestAuthService_Logout(t *testing.T) {
	authService, _, _, tokenRepo := newTestAuthService(t)

	tokenRepo.On("RevokeAllByUserID", 5).Return(int64(2), nil).Once()
	assert.NoError(t, authService.Logout(5))

	// Idempotent: nothing left to revoke is still a success.
	tokenRepo.On("RevokeAllByUserID", 5).Return(int64(0), nil).Once()
	assert.NoError(t, authService.Logout(5))

	tokenRepo.AssertExpectations(t)
}

func TestAuthService_RefreshTokens(t *testing.T) {
	user := &model.User{ID: 5, Email: "a@x.com", Roles: []string{string(model.RoleMember)}}

	t.Run("success rotates inside one transaction", func(t *testing.T) {
		authService, dbMock, userRepo, tokenRepo := newTestAuthService(t)

		raw, err := authService.signToken(user, testAuthConfig.RefreshSecret, time.Hour)
		assert.NoError(t, err)
		hash, err := authService.hashTokenDigest(raw)
		assert.NoError(t, err)
		record := &model.RefreshToken{ID: 7, UserID: 5, TokenHash: hash, ExpiresAt: time.Now().Add(time.Hour)}

		userRepo.On("GetUserByID", 5).Return(user, nil).Once()
		tokenRepo.On("GetActiveByUserID", 5).Return([]*model.RefreshToken{record}, nil).Once()
		dbMock.ExpectBegin()
		tokenRepo.On("RevokeTx", mock.Anything, 7).Return(true, nil).Once()
		tokenRepo.On("CreateTx", mock.Anything, mock.AnythingOfType("*model.RefreshToken")).Return(nil).Once()
		dbMock.ExpectCommit()

		pair, err := authService.RefreshTokens(5, raw)
		assert.NoError(t, err)
		assert.NotEmpty(t, pair.AccessToken)
		assert.NotEmpty(t, pair.RefreshToken)

		userRepo.AssertExpectations(t)
		tokenRepo.AssertExpectations(t)
		assert.NoError(t, dbMock.ExpectationsWereMet())
	})

	t.Run("consumed token is rejected", func(t *testing.T) {
		authService, _, userRepo, tokenRepo := newTestAuthService(t)

		raw, err := authService.signToken(user, testAuthConfig.RefreshSecret, time.Hour)
		assert.NoError(t, err)

		// After rotation the old record is revoked, so the active set no
		// longer contains a matching hash.
		userRepo.On("GetUserByID", 5).Return(user, nil).Once()
		tokenRepo.On("GetActiveByUserID", 5).Return([]*model.RefreshToken{}, nil).Once()

		_, err = authService.RefreshTokens(5, raw)
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("concurrent replay loses the conditional revoke", func(t *testing.T) {
		authService, dbMock, userRepo, tokenRepo := newTestAuthService(t)

		raw, err := authService.signToken(user, testAuthConfig.RefreshSecret, time.Hour)
		assert.NoError(t, err)
		hash, err := authService.hashTokenDigest(raw)
		assert.NoError(t, err)
		record := &model.RefreshToken{ID: 7, UserID: 5, TokenHash: hash, ExpiresAt: time.Now().Add(time.Hour)}

		userRepo.On("GetUserByID", 5).Return(user, nil).Once()
		tokenRepo.On("GetActiveByUserID", 5).Return([]*model.RefreshToken{record}, nil).Once()
		dbMock.ExpectBegin()
		// Another request already flipped the revoked flag: zero rows affected.
		tokenRepo.On("RevokeTx", mock.Anything, 7).Return(false, nil).Once()
		dbMock.ExpectRollback()

		_, err = authService.RefreshTokens(5, raw)
		assert.ErrorIs(t, err, ErrAccessDenied)
		tokenRepo.AssertNotCalled(t, "CreateTx", mock.Anything, mock.Anything)
		assert.NoError(t, dbMock.ExpectationsWereMet())
	})

	t.Run("expired token fails before the store is consulted", func(t *testing.T) {
		authService, _, userRepo, tokenRepo := newTestAuthService(t)

		raw, err := authService.signToken(user, testAuthConfig.RefreshSecret, -time.Minute)
		assert.NoError(t, err)

		_, err = authService.RefreshTokens(5, raw)
		assert.ErrorIs(t, err, ErrAccessDenied)
		userRepo.AssertNotCalled(t, "GetUserByID", mock.Anything)
		tokenRepo.AssertNotCalled(t, "GetActiveByUserID", mock.Anything)
	})

	t.Run("token signed with the access secret is rejected", func(t *testing.T) {
		authService, _, _, _ := newTestAuthService(t)

		raw, err := authService.signToken(user, testAuthConfig.AccessSecret, time.Hour)
		assert.NoError(t, err)

		_, err = authService.RefreshTokens(5, raw)
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("subject mismatch is rejected", func(t *testing.T) {
		authService, _, _, _ := newTestAuthService(t)

		raw, err := authService.signToken(user, testAuthConfig.RefreshSecret, time.Hour)
		assert.NoError(t, err)

		_, err = authService.RefreshTokens(6, raw)
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("deleted user is rejected", func(t *testing.T) {
		authService, _, userRepo, _ := newTestAuthService(t)

		raw, err := authService.signToken(user, testAuthConfig.RefreshSecret, time.Hour)
		assert.NoError(t, err)
		userRepo.On("GetUserByID", 5).Return(nil, sql.ErrNoRows).Once()

		_, err = authService.RefreshTokens(5, raw)
		assert.ErrorIs(t, err, ErrAccessDenied)
	})
}

// TestAuthService_TokenExpiryClaim checks the persisted expiry comes from the
// token's own exp claim.
func TestAuthService_TokenExpiryClaim(t *testing.T) {
	authService, _, _, _ := newTestAuthService(t)
	user := &model.User{ID: 1, Email: "a@x.com", Roles: []string{string(model.RoleMember)}}

	raw, err := authService.signToken(user, testAuthConfig.RefreshSecret, time.Hour)
	assert.NoError(t, err)

	expiresAt, err := tokenExpiry(raw)
	assert.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	// And the claims round-trip through the signed token unchanged.
	claims := &model.AppClaims{}
	_, _, err = jwt.NewParser().ParseUnverified(raw, claims)
	assert.NoError(t, err)
	assert.Equal(t, 1, claims.UserID)
	assert.Equal(t, "a@x.com", claims.Email)
}
