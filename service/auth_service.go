package service

import (
	"crypto/sha256"
	"database/sql"
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"time"
	"wiser-api/config"
	"wiser-api/logger"
	"wiser-api/model"
	"wiser-api/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrDuplicateUser      = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAccessDenied       = errors.New("access denied")
)

// AuthService is the sole authority for creating, validating, rotating and
// revoking authentication sessions. Signing secrets and TTLs are injected via
// the config struct so tests can run with deterministic fixtures.
type AuthService struct {
	db        *sql.DB
	userRepo  repository.IUserRepository
	tokenRepo repository.ITokenRepository
	cfg       config.AuthConfig
}

func NewAuthService(db *sql.DB, userRepo repository.IUserRepository, tokenRepo repository.ITokenRepository, cfg config.AuthConfig) *AuthService {
	return &AuthService{
		db:        db,
		userRepo:  userRepo,
		tokenRepo: tokenRepo,
		cfg:       cfg,
	}
}

// Register creates a new user and opens their first session.
func (s *AuthService) Register(req model.RegisterRequest) (*model.TokenPair, error) {
	_, err := s.userRepo.GetUserByEmail(req.Email)
	if err == nil {
		return nil, ErrDuplicateUser
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("could not check existing user: %w", err)
	}

	hashedPassword, err := s.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Email:    req.Email,
		Name:     req.Name,
		Password: hashedPassword,
		Roles:    []string{string(model.RoleMember)},
	}
	if err := s.userRepo.CreateUser(user); err != nil {
		return nil, fmt.Errorf("could not create user: %w", err)
	}

	logger.Log.WithField("user_id", user.ID).Info("New user registered")
	return s.issueTokenPair(nil, user)
}

// Login verifies the credentials and opens a new session. Unknown email and
// wrong password collapse into the same error so responses cannot be used to
// enumerate accounts.
func (s *AuthService) Login(req model.LoginRequest) (*model.TokenPair, error) {
	user, err := s.userRepo.GetUserByEmail(req.Email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			logger.Log.WithField("email", req.Email).Info("Login attempt for unknown email")
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("could not look up user: %w", err)
	}

	if !s.CheckPasswordHash(req.Password, user.Password) {
		logger.Log.WithField("user_id", user.ID).Info("Login attempt with wrong password")
		return nil, ErrInvalidCredentials
	}

	return s.issueTokenPair(nil, user)
}

// Logout revokes every active refresh token of the user. The access token a
// logout call carries cannot identify a single session, so this is a
// deliberate "log out everywhere". Idempotent.
func (s *AuthService) Logout(userID int) error {
	count, err := s.tokenRepo.RevokeAllByUserID(userID)
	if err != nil {
		return fmt.Errorf("could not revoke refresh tokens: %w", err)
	}
	logger.Log.WithField("user_id", userID).WithField("revoked", count).Info("User logged out")
	return nil
}

// RefreshTokens exchanges a valid refresh token for a new pair. The presented
// token is single-use: the matched record is revoked and a fresh one inserted
// in the same transaction before the new pair is returned.
func (s *AuthService) RefreshTokens(userID int, rawToken string) (*model.TokenPair, error) {
	claims, err := s.VerifyToken(rawToken, s.cfg.RefreshSecret)
	if err != nil {
		logger.Log.WithError(err).WithField("user_id", userID).Info("Refresh token failed verification")
		return nil, ErrAccessDenied
	}
	if claims.UserID != userID {
		logger.Log.WithField("user_id", userID).Info("Refresh token subject mismatch")
		return nil, ErrAccessDenied
	}

	user, err := s.userRepo.GetUserByID(userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrAccessDenied
		}
		return nil, fmt.Errorf("could not look up user: %w", err)
	}

	// The stored hashes are salted, so there is no way to query for the
	// presented token directly. Compare it against every active record
	// instead. This is O(active sessions per user), which stays small in
	// practice; embedding a non-secret token id claim in the JWT would make
	// this a keyed O(1) lookup if it ever becomes a problem.
	records, err := s.tokenRepo.GetActiveByUserID(userID)
	if err != nil {
		return nil, fmt.Errorf("could not load refresh tokens: %w", err)
	}

	var matched *model.RefreshToken
	for _, record := range records {
		if s.checkTokenDigest(rawToken, record.TokenHash) {
			matched = record
			break
		}
	}
	if matched == nil {
		logger.Log.WithField("user_id", userID).Info("Refresh token has no matching active record")
		return nil, ErrAccessDenied
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("could not begin transaction: %w", err)
	}
	defer tx.Rollback()

	// Conditional revoke: if a concurrent request already rotated this
	// record, zero rows are affected here and this request loses the race.
	revoked, err := s.tokenRepo.RevokeTx(tx, matched.ID)
	if err != nil {
		return nil, fmt.Errorf("could not revoke refresh token: %w", err)
	}
	if !revoked {
		logger.Log.WithField("user_id", userID).Warn("Refresh token replayed concurrently, rejecting")
		return nil, ErrAccessDenied
	}

	pair, err := s.issueTokenPair(tx, user)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("could not commit token rotation: %w", err)
	}

	logger.Log.WithField("user_id", userID).Info("Refresh token rotated")
	return pair, nil
}

// issueTokenPair signs a fresh access/refresh pair and persists the hash of
// the refresh token. When tx is non-nil the insert joins the caller's
// transaction; the plaintext refresh token is never stored.
func (s *AuthService) issueTokenPair(tx *sql.Tx, user *model.User) (*model.TokenPair, error) {
	accessToken, err := s.signToken(user, s.cfg.AccessSecret, s.cfg.AccessTTL)
	if err != nil {
		return nil, err
	}
	refreshToken, err := s.signToken(user, s.cfg.RefreshSecret, s.cfg.RefreshTTL)
	if err != nil {
		return nil, err
	}

	expiresAt, err := tokenExpiry(refreshToken)
	if err != nil {
		return nil, err
	}

	hash, err := s.hashTokenDigest(refreshToken)
	if err != nil {
		return nil, err
	}

	record := &model.RefreshToken{
		UserID:    user.ID,
		TokenHash: hash,
		ExpiresAt: expiresAt,
	}
	if tx != nil {
		err = s.tokenRepo.CreateTx(tx, record)
	} else {
		err = s.tokenRepo.Create(record)
	}
	if err != nil {
		return nil, fmt.Errorf("could not persist refresh token: %w", err)
	}

	return &model.TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

func (s *AuthService) signToken(user *model.User, secret string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &model.AppClaims{
		UserID: user.ID,
		Email:  user.Email,
		Roles:  user.Roles,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.Itoa(user.ID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(secret))
	if err != nil {
		logger.Log.WithError(err).WithField("user_id", user.ID).Error("Failed to sign JWT")
		return "", fmt.Errorf("failed to sign token string: %w", err)
	}
	return tokenString, nil
}

// VerifyToken checks the signature and expiry of a token against the given
// secret and returns its claims.
func (s *AuthService) VerifyToken(tokenString, secret string) (*model.AppClaims, error) {
	claims := &model.AppClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, jwt.ErrTokenUnverifiable
	}
	return claims, nil
}

// tokenExpiry reads the exp claim out of a token this process just signed.
// No signature check is needed or done here; never call this on input from
// the outside.
func tokenExpiry(tokenString string) (time.Time, error) {
	claims := &model.AppClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tokenString, claims); err != nil {
		return time.Time{}, fmt.Errorf("could not decode token expiry: %w", err)
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, errors.New("token has no expiry claim")
	}
	return claims.ExpiresAt.Time, nil
}

func (s *AuthService) HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to hash password")
		return "", err
	}
	return string(bytes), nil
}

func (s *AuthService) CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// hashTokenDigest hashes a refresh token for storage. bcrypt rejects inputs
// longer than 72 bytes and a signed JWT always is, so the token is first
// reduced to a SHA-256 digest. The result is still salted and cannot be
// queried by equality.
func (s *AuthService) hashTokenDigest(tokenString string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword(tokenDigest(tokenString), bcrypt.DefaultCost)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to hash refresh token")
		return "", err
	}
	return string(bytes), nil
}

func (s *AuthService) checkTokenDigest(tokenString, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), tokenDigest(tokenString))
	return err == nil
}

func tokenDigest(tokenString string) []byte {
	sum := sha256.Sum256([]byte(tokenString))
	digest := make([]byte, base64.RawStdEncoding.EncodedLen(len(sum)))
	base64.RawStdEncoding.Encode(digest, sum[:])
	return digest
}
