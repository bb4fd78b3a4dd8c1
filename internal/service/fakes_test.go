package service

import (
	"context"
	"sort"
	"strings"

	"todolist-api/internal/domain"
	"todolist-api/internal/repository"
)

// In-memory repositories mirroring the sqlite implementations closely enough
// for service-level tests: unique emails, owner-scoped scans, LIKE-style
// case-insensitive title matching, rows returned by value.

type memUserRepo struct {
	nextID int64
	users  map[int64]domain.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: map[int64]domain.User{}}
}

func (r *memUserRepo) Init(context.Context) error { return nil }

func (r *memUserRepo) Create(_ context.Context, user *domain.User) (int64, error) {
	for _, u := range r.users {
		if u.Email == user.Email {
			return 0, repository.ErrEmailTaken
		}
	}
	r.nextID++
	user.ID = r.nextID
	r.users[user.ID] = *user
	return user.ID, nil
}

func (r *memUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			copied := u
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *memUserRepo) GetByID(_ context.Context, id int64) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := u
	return &copied, nil
}

type memTodoRepo struct {
	nextID int64
	todos  map[int64]domain.Todo
}

func newMemTodoRepo() *memTodoRepo {
	return &memTodoRepo{todos: map[int64]domain.Todo{}}
}

func (r *memTodoRepo) Init(context.Context) error { return nil }

func (r *memTodoRepo) Create(_ context.Context, todo *domain.Todo) (int64, error) {
	r.nextID++
	todo.ID = r.nextID
	r.todos[todo.ID] = *todo
	return todo.ID, nil
}

func (r *memTodoRepo) Get(_ context.Context, id int64) (*domain.Todo, error) {
	t, ok := r.todos[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := t
	return &copied, nil
}

func (r *memTodoRepo) Update(_ context.Context, todo *domain.Todo) error {
	if _, ok := r.todos[todo.ID]; !ok {
		return repository.ErrNotFound
	}
	stored := r.todos[todo.ID]
	stored.Title = todo.Title
	stored.Description = todo.Description
	stored.UpdatedAt = todo.UpdatedAt
	stored.DueAt = todo.DueAt
	r.todos[todo.ID] = stored
	return nil
}

func (r *memTodoRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.todos[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.todos, id)
	return nil
}

func (r *memTodoRepo) matching(ownerID int64, titleFilter string) []domain.Todo {
	var out []domain.Todo
	for _, t := range r.todos {
		if t.UserID != ownerID {
			continue
		}
		if titleFilter != "" && !strings.Contains(strings.ToLower(t.Title), strings.ToLower(titleFilter)) {
			continue
		}
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (r *memTodoRepo) ListByOwner(_ context.Context, ownerID int64, titleFilter string, offset, limit int) ([]domain.Todo, error) {
	matched := r.matching(ownerID, titleFilter)
	if offset >= len(matched) {
		return []domain.Todo{}, nil
	}
	end := offset + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], nil
}

func (r *memTodoRepo) CountByOwner(_ context.Context, ownerID int64, titleFilter string) (int64, error) {
	return int64(len(r.matching(ownerID, titleFilter))), nil
}

type memRefreshRepo struct {
	nextID int64
	tokens map[int64]domain.RefreshToken
}

func newMemRefreshRepo() *memRefreshRepo {
	return &memRefreshRepo{tokens: map[int64]domain.RefreshToken{}}
}

func (r *memRefreshRepo) Init(context.Context) error { return nil }

func (r *memRefreshRepo) Create(_ context.Context, token *domain.RefreshToken) (int64, error) {
	r.nextID++
	token.ID = r.nextID
	r.tokens[token.ID] = *token
	return token.ID, nil
}

func (r *memRefreshRepo) GetByToken(_ context.Context, value string) (*domain.RefreshToken, error) {
	for _, t := range r.tokens {
		if t.Token == value {
			copied := t
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *memRefreshRepo) Revoke(_ context.Context, id int64) error {
	t, ok := r.tokens[id]
	if !ok {
		return repository.ErrNotFound
	}
	t.Revoked = true
	r.tokens[id] = t
	return nil
}
