package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"todolist-api/internal/domain"
	"todolist-api/internal/repository"
)

const createRefreshTokensTable = `
CREATE TABLE IF NOT EXISTS refresh_tokens (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	token TEXT NOT NULL UNIQUE,
	user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	revoked INTEGER NOT NULL DEFAULT 0,
	expires_at DATETIME NOT NULL,
	created_at DATETIME NOT NULL
);
`

type RefreshTokenRepository struct {
	db *sql.DB
}

func NewRefreshTokenRepository(db *sql.DB) repository.RefreshTokenRepository {
	return &RefreshTokenRepository{db: db}
}

func (r *RefreshTokenRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createRefreshTokensTable); err != nil {
		return fmt.Errorf("create refresh_tokens table: %w", err)
	}
	return nil
}

func (r *RefreshTokenRepository) Create(ctx context.Context, token *domain.RefreshToken) (int64, error) {
	token.CreatedAt = time.Now().UTC()

	res, err := r.db.ExecContext(ctx, `
INSERT INTO refresh_tokens (token, user_id, revoked, expires_at, created_at)
VALUES (?, ?, ?, ?, ?)`,
		token.Token,
		token.UserID,
		token.Revoked,
		token.ExpiresAt.UTC(),
		token.CreatedAt,
	)
	if err != nil {
		return 0, fmt.Errorf("insert refresh token: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("refresh token last insert id: %w", err)
	}
	token.ID = id
	return id, nil
}

func (r *RefreshTokenRepository) GetByToken(ctx context.Context, value string) (*domain.RefreshToken, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, token, user_id, revoked, expires_at, created_at
FROM refresh_tokens
WHERE token = ?`,
		value,
	)

	var token domain.RefreshToken
	if err := row.Scan(
		&token.ID,
		&token.Token,
		&token.UserID,
		&token.Revoked,
		&token.ExpiresAt,
		&token.CreatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("scan refresh token: %w", err)
	}
	return &token, nil
}

func (r *RefreshTokenRepository) Revoke(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `UPDATE refresh_tokens SET revoked=1 WHERE id=?`, id)
	if err != nil {
		return fmt.Errorf("revoke refresh token: %w", err)
	}
	aff, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("refresh token revoke rows affected: %w", err)
	}
	if aff == 0 {
		return repository.ErrNotFound
	}
	return nil
}
