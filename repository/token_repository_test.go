// file: repository/token_repository_test.go

package repository

import (
	"testing"
	"time"
	"wiser-api/model"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func TestTokenRepository_Create(t *testing.T) {
	db, dbMock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()
	repo := NewTokenRepository(db)

	token := &model.RefreshToken{
		UserID:    5,
		TokenHash: "$2a$10$fakehash",
		ExpiresAt: time.Now().Add(time.Hour),
	}
	dbMock.ExpectQuery(`INSERT INTO refresh_tokens`).
		WithArgs(token.UserID, token.TokenHash, token.ExpiresAt).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(7, time.Now()))

	assert.NoError(t, repo.Create(token))
	assert.Equal(t, 7, token.ID)
	assert.NoError(t, dbMock.ExpectationsWereMet())
}

func TestTokenRepository_GetActiveByUserID(t *testing.T) {
	db, dbMock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()
	repo := NewTokenRepository(db)

	now := time.Now()
	dbMock.ExpectQuery(`SELECT (.+) FROM refresh_tokens WHERE user_id = \$1 AND revoked = FALSE`).
		WithArgs(5).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "token_hash", "revoked", "expires_at", "created_at"}).
			AddRow(7, 5, "$2a$10$fakehash", false, now.Add(time.Hour), now).
			AddRow(8, 5, "$2a$10$otherhash", false, now.Add(2*time.Hour), now))

	tokens, err := repo.GetActiveByUserID(5)
	assert.NoError(t, err)
	assert.Len(t, tokens, 2)
	assert.Equal(t, 7, tokens[0].ID)
	assert.False(t, tokens[0].Revoked)
	assert.NoError(t, dbMock.ExpectationsWereMet())
}

// RevokeTx reports whether this caller actually flipped the flag, which is
// what the rotation path uses to detect a concurrently replayed token.
func TestTokenRepository_RevokeTx(t *testing.T) {
	t.Run("first revoke wins", func(t *testing.T) {
		db, dbMock, err := sqlmock.New()
		assert.NoError(t, err)
		defer db.Close()
		repo := NewTokenRepository(db)

		dbMock.ExpectBegin()
		dbMock.ExpectExec(`UPDATE refresh_tokens SET revoked = TRUE WHERE id = \$1 AND revoked = FALSE`).
			WithArgs(7).
			WillReturnResult(sqlmock.NewResult(0, 1))

		tx, err := db.Begin()
		assert.NoError(t, err)
		revoked, err := repo.RevokeTx(tx, 7)
		assert.NoError(t, err)
		assert.True(t, revoked)
		assert.NoError(t, dbMock.ExpectationsWereMet())
	})

	t.Run("already revoked reports false", func(t *testing.T) {
		db, dbMock, err := sqlmock.New()
		assert.NoError(t, err)
		defer db.Close()
		repo := NewTokenRepository(db)

		dbMock.ExpectBegin()
		dbMock.ExpectExec(`UPDATE refresh_tokens SET revoked = TRUE WHERE id = \$1 AND revoked = FALSE`).
			WithArgs(7).
			WillReturnResult(sqlmock.NewResult(0, 0))

		tx, err := db.Begin()
		assert.NoError(t, err)
		revoked, err := repo.RevokeTx(tx, 7)
		assert.NoError(t, err)
		assert.False(t, revoked)
		assert.NoError(t, dbMock.ExpectationsWereMet())
	})
}

func TestTokenRepository_RevokeAllByUserID(t *testing.T) {
	db, dbMock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()
	repo := NewTokenRepository(db)

	dbMock.ExpectExec(`UPDATE refresh_tokens SET revoked = TRUE WHERE user_id = \$1 AND revoked = FALSE`).
		WithArgs(5).
		WillReturnResult(sqlmock.NewResult(0, 3))

	count, err := repo.RevokeAllByUserID(5)
	assert.NoError(t, err)
	assert.Equal(t, int64(3), count)
	assert.NoError(t, dbMock.ExpectationsWereMet())
}
