package sqlite

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"todolist-api/internal/domain"
	"todolist-api/internal/repository"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	ctx := context.Background()
	for name, repo := range map[string]interface {
		Init(context.Context) error
	}{
		"users":          NewUserRepository(db),
		"todos":          NewTodoRepository(db),
		"refresh tokens": NewRefreshTokenRepository(db),
	} {
		if err := repo.Init(ctx); err != nil {
			t.Fatalf("init %s: %v", name, err)
		}
	}
	return db
}

func createTestUser(t *testing.T, users repository.UserRepository, email string) *domain.User {
	t.Helper()
	user := &domain.User{Name: "Test", Email: email, PasswordHash: "hash"}
	if _, err := users.Create(context.Background(), user); err != nil {
		t.Fatalf("create user %s: %v", email, err)
	}
	return user
}
