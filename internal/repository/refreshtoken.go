package repository

import (
	"context"

	"todolist-api/internal/domain"
)

// RefreshTokenRepository manages stored refresh credentials.
type RefreshTokenRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, token *domain.RefreshToken) (int64, error)
	GetByToken(ctx context.Context, token string) (*domain.RefreshToken, error)
	Revoke(ctx context.Context, id int64) error
}
