package sqlite

import (
	"context"
	"errors"
	"testing"
	"time"

	"todolist-api/internal/domain"
	"todolist-api/internal/repository"
)

func TestRefreshTokenLifecycle(t *testing.T) {
	db := openTestDB(t)
	users := NewUserRepository(db)
	tokens := NewRefreshTokenRepository(db)
	ctx := context.Background()

	owner := createTestUser(t, users, "a@x.com")

	token := &domain.RefreshToken{
		Token:     "opaque-value",
		UserID:    owner.ID,
		ExpiresAt: time.Now().Add(24 * time.Hour).UTC(),
	}
	if _, err := tokens.Create(ctx, token); err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := tokens.GetByToken(ctx, "opaque-value")
	if err != nil {
		t.Fatalf("GetByToken: %v", err)
	}
	if got.UserID != owner.ID {
		t.Errorf("user id: got %d, want %d", got.UserID, owner.ID)
	}
	if got.Revoked {
		t.Error("token revoked on creation")
	}

	if err := tokens.Revoke(ctx, got.ID); err != nil {
		t.Fatalf("Revoke: %v", err)
	}
	revoked, err := tokens.GetByToken(ctx, "opaque-value")
	if err != nil {
		t.Fatalf("GetByToken after revoke: %v", err)
	}
	if !revoked.Revoked {
		t.Error("revoked flag not persisted")
	}
}

func TestRefreshTokenNotFound(t *testing.T) {
	db := openTestDB(t)
	tokens := NewRefreshTokenRepository(db)
	ctx := context.Background()

	if _, err := tokens.GetByToken(ctx, "never-issued"); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("GetByToken: got %v, want ErrNotFound", err)
	}
	if err := tokens.Revoke(ctx, 999); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("Revoke: got %v, want ErrNotFound", err)
	}
}
