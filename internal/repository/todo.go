package repository

import (
	"context"

	"todolist-api/internal/domain"
)

// TodoRepository exposes persistence operations for Todo items.
//
// List and Count are always scoped to one owner: every scan carries a
// user_id predicate so callers cannot enumerate other users' items.
type TodoRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, todo *domain.Todo) (int64, error)
	Get(ctx context.Context, id int64) (*domain.Todo, error)
	Update(ctx context.Context, todo *domain.Todo) error
	Delete(ctx context.Context, id int64) error
	ListByOwner(ctx context.Context, ownerID int64, titleFilter string, offset, limit int) ([]domain.Todo, error)
	CountByOwner(ctx context.Context, ownerID int64, titleFilter string) (int64, error)
}
