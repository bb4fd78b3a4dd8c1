package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"todolist-api/internal/domain"
	"todolist-api/internal/repository"
)

// UpdateTodoParams describes a partial update. Nil fields keep their stored
// values; the owner is never part of an update.
type UpdateTodoParams struct {
	Title       *string
	Description *string
	DueAt       *time.Time
}

// TodoList is one page of a user's items. Total counts every item matching
// the owner and filter, not just the returned page.
type TodoList struct {
	Items []domain.Todo
	Page  int
	Limit int
	Total int64
}

// TodoService coordinates to-do operations for an authenticated caller. The
// caller's identity is always an explicit argument; nothing is read from
// ambient request state.
type TodoService interface {
	Create(ctx context.Context, callerID int64, title, description string, dueAt *time.Time) (*domain.Todo, error)
	Get(ctx context.Context, callerID, todoID int64) (*domain.Todo, error)
	Update(ctx context.Context, callerID, todoID int64, params UpdateTodoParams) (*domain.Todo, error)
	Delete(ctx context.Context, callerID, todoID int64) error
	List(ctx context.Context, callerID int64, page, limit int, titleFilter string) (*TodoList, error)
}

type todoService struct {
	todos repository.TodoRepository
}

func NewTodoService(todos repository.TodoRepository) TodoService {
	return &todoService{todos: todos}
}

// authorize decides whether the caller may act on the item. Existence is
// checked before ownership, so probing an absent id and probing someone
// else's id take the same lookup path.
func (s *todoService) authorize(ctx context.Context, callerID, todoID int64) (*domain.Todo, error) {
	todo, err := s.todos.Get(ctx, todoID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTodoNotFound
		}
		return nil, err
	}
	if todo.UserID != callerID {
		return nil, ErrForbidden
	}
	return todo, nil
}

func (s *todoService) Create(ctx context.Context, callerID int64, title, description string, dueAt *time.Time) (*domain.Todo, error) {
	if callerID <= 0 {
		return nil, ErrUnauthenticated
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrValidation)
	}

	todo := &domain.Todo{
		Title:       title,
		Description: description,
		CreatedAt:   time.Now().UTC(),
		DueAt:       dueAt,
		UserID:      callerID,
	}

	if _, err := s.todos.Create(ctx, todo); err != nil {
		return nil, err
	}
	return todo, nil
}

// Get returns the caller's item. A non-owner gets ErrTodoNotFound rather
// than ErrForbidden so reads never confirm that an id exists.
func (s *todoService) Get(ctx context.Context, callerID, todoID int64) (*domain.Todo, error) {
	todo, err := s.authorize(ctx, callerID, todoID)
	if err != nil {
		return nil, maskForbidden(err)
	}
	return todo, nil
}

// maskForbidden hides the existence of another user's item. The authorizer
// still distinguishes the two outcomes internally, but callers see the same
// ErrTodoNotFound either way.
func maskForbidden(err error) error {
	if errors.Is(err, ErrForbidden) {
		return ErrTodoNotFound
	}
	return err
}

func (s *todoService) Update(ctx context.Context, callerID, todoID int64, params UpdateTodoParams) (*domain.Todo, error) {
	todo, err := s.authorize(ctx, callerID, todoID)
	if err != nil {
		return nil, maskForbidden(err)
	}

	if params.Title != nil {
		title := strings.TrimSpace(*params.Title)
		if title == "" {
			return nil, fmt.Errorf("%w: title must not be empty", ErrValidation)
		}
		todo.Title = title
	}
	if params.Description != nil {
		todo.Description = *params.Description
	}
	if params.DueAt != nil {
		due := params.DueAt.UTC()
		todo.DueAt = &due
	}

	now := time.Now().UTC()
	todo.UpdatedAt = &now

	if err := s.todos.Update(ctx, todo); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTodoNotFound
		}
		return nil, err
	}
	return todo, nil
}

func (s *todoService) Delete(ctx context.Context, callerID, todoID int64) error {
	todo, err := s.authorize(ctx, callerID, todoID)
	if err != nil {
		return maskForbidden(err)
	}

	if err := s.todos.Delete(ctx, todo.ID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrTodoNotFound
		}
		return err
	}
	return nil
}

// List never consults authorize; the repository scopes every scan to the
// caller's user id instead.
func (s *todoService) List(ctx context.Context, callerID int64, page, limit int, titleFilter string) (*TodoList, error) {
	if callerID <= 0 {
		return nil, ErrUnauthenticated
	}
	if page < 1 {
		return nil, fmt.Errorf("%w: page must be >= 1", ErrValidation)
	}
	if limit < 1 {
		return nil, fmt.Errorf("%w: limit must be >= 1", ErrValidation)
	}

	offset := (page - 1) * limit
	items, err := s.todos.ListByOwner(ctx, callerID, titleFilter, offset, limit)
	if err != nil {
		return nil, err
	}

	total, err := s.todos.CountByOwner(ctx, callerID, titleFilter)
	if err != nil {
		return nil, err
	}

	return &TodoList{
		Items: items,
		Page:  page,
		Limit: limit,
		Total: total,
	}, nil
}
