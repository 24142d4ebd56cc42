// file: repository/token_repository.go

package repository

import (
	"database/sql"
	"wiser-api/logger"
	"wiser-api/model"

	"github.com/sirupsen/logrus"
)

// ITokenRepository defines the contract for refresh token database operations.
type ITokenRepository interface {
	Create(token *model.RefreshToken) error
	CreateTx(tx *sql.Tx, token *model.RefreshToken) error
	GetActiveByUserID(userID int) ([]*model.RefreshToken, error)
	RevokeTx(tx *sql.Tx, id int) (bool, error)
	RevokeAllByUserID(userID int) (int64, error)
}

// TokenRepository implements ITokenRepository.
type TokenRepository struct {
	DB *sql.DB
}

// NewTokenRepository creates a new TokenRepository.
func NewTokenRepository(db *sql.DB) *TokenRepository {
	return &TokenRepository{DB: db}
}

const insertTokenQuery = `INSERT INTO refresh_tokens (user_id, token_hash, expires_at) VALUES ($1, $2, $3) RETURNING id, created_at`

// Create inserts a new refresh token record into the database.
func (r *TokenRepository) Create(token *model.RefreshToken) error {
	log := logger.Log.WithFields(logrus.Fields{
		"user_id":    token.UserID,
		"expires_at": token.ExpiresAt,
	})
	log.Info("Executing query to create a new refresh token")

	err := r.DB.QueryRow(insertTokenQuery, token.UserID, token.TokenHash, token.ExpiresAt).Scan(&token.ID, &token.CreatedAt)
	if err != nil {
		log.WithError(err).Error("Failed to execute create refresh token query")
		return err
	}
	return nil
}

// CreateTx is Create inside an existing transaction. Used by the rotation
// path so the revoke of the old record and the insert of the new one commit
// together.
func (r *TokenRepository) CreateTx(tx *sql.Tx, token *model.RefreshToken) error {
	err := tx.QueryRow(insertTokenQuery, token.UserID, token.TokenHash, token.ExpiresAt).Scan(&token.ID, &token.CreatedAt)
	if err != nil {
		logger.Log.WithError(err).WithField("user_id", token.UserID).Error("Failed to execute create refresh token query in tx")
		return err
	}
	return nil
}

// GetActiveByUserID retrieves all unrevoked, unexpired refresh token records
// for a user. The stored hashes are salted, so callers must compare the
// presented token against each candidate rather than query by value.
func (r *TokenRepository) GetActiveByUserID(userID int) ([]*model.RefreshToken, error) {
	log := logger.Log.WithField("user_id", userID)
	log.Info("Executing query to get active refresh tokens for user")

	query := `SELECT id, user_id, token_hash, revoked, expires_at, created_at
		FROM refresh_tokens WHERE user_id = $1 AND revoked = FALSE AND expires_at > now()`
	rows, err := r.DB.Query(query, userID)
	if err != nil {
		log.WithError(err).Error("Failed to execute get active refresh tokens query")
		return nil, err
	}
	defer rows.Close()

	var tokens []*model.RefreshToken
	for rows.Next() {
		token := &model.RefreshToken{}
		if err := rows.Scan(&token.ID, &token.UserID, &token.TokenHash, &token.Revoked, &token.ExpiresAt, &token.CreatedAt); err != nil {
			log.WithError(err).Error("Failed to scan refresh token row")
			return nil, err
		}
		tokens = append(tokens, token)
	}
	return tokens, rows.Err()
}

// RevokeTx marks a single record revoked within a transaction. The update is
// conditional on the record still being unrevoked, so when two requests race
// on the same token exactly one observes true; the other gets false and must
// be rejected.
func (r *TokenRepository) RevokeTx(tx *sql.Tx, id int) (bool, error) {
	result, err := tx.Exec(`UPDATE refresh_tokens SET revoked = TRUE WHERE id = $1 AND revoked = FALSE`, id)
	if err != nil {
		logger.Log.WithError(err).WithField("token_id", id).Error("Failed to execute revoke refresh token query")
		return false, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected == 1, nil
}

// RevokeAllByUserID marks every unrevoked refresh token of a user as revoked.
// This is the "log out everywhere" operation.
func (r *TokenRepository) RevokeAllByUserID(userID int) (int64, error) {
	log := logger.Log.WithField("user_id", userID)
	log.Info("Executing query to revoke all refresh tokens for a user")

	result, err := r.DB.Exec(`UPDATE refresh_tokens SET revoked = TRUE WHERE user_id = $1 AND revoked = FALSE`, userID)
	if err != nil {
		log.WithError(err).Error("Failed to execute revoke all refresh tokens query")
		return 0, err
	}
	return result.RowsAffected()
}
