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

const createTodosTable = `
CREATE TABLE IF NOT EXISTS todos (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	title TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	created_at DATETIME NOT NULL,
	updated_at DATETIME NULL,
	due_at DATETIME NULL,
	user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE
);
`

const createTodosOwnerIndex = `
CREATE INDEX IF NOT EXISTS idx_todos_user_id ON todos(user_id);
`

type TodoRepository struct {
	db *sql.DB
}

func NewTodoRepository(db *sql.DB) repository.TodoRepository {
	return &TodoRepository{db: db}
}

func (r *TodoRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createTodosTable); err != nil {
		return fmt.Errorf("create todos table: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, createTodosOwnerIndex); err != nil {
		return fmt.Errorf("create todos owner index: %w", err)
	}
	return nil
}

func (r *TodoRepository) Create(ctx context.Context, todo *domain.Todo) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
INSERT INTO todos (title, description, created_at, updated_at, due_at, user_id)
VALUES (?, ?, ?, ?, ?, ?)`,
		todo.Title,
		todo.Description,
		todo.CreatedAt.UTC(),
		nullTime(todo.UpdatedAt),
		nullTime(todo.DueAt),
		todo.UserID,
	)
	if err != nil {
		return 0, fmt.Errorf("insert todo: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("todo last insert id: %w", err)
	}
	todo.ID = id
	return id, nil
}

func (r *TodoRepository) Get(ctx context.Context, id int64) (*domain.Todo, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, title, description, created_at, updated_at, due_at, user_id
FROM todos
WHERE id = ?`,
		id,
	)
	return scanTodo(row)
}

// Update overwrites the mutable columns of an existing row. The owner column
// is deliberately absent from the SET list.
func (r *TodoRepository) Update(ctx context.Context, todo *domain.Todo) error {
	res, err := r.db.ExecContext(ctx, `
UPDATE todos
SET title=?, description=?, updated_at=?, due_at=?
WHERE id=?`,
		todo.Title,
		todo.Description,
		nullTime(todo.UpdatedAt),
		nullTime(todo.DueAt),
		todo.ID,
	)
	if err != nil {
		return fmt.Errorf("update todo: %w", err)
	}
	aff, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("todo update rows affected: %w", err)
	}
	if aff == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *TodoRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM todos WHERE id=?`, id)
	if err != nil {
		return fmt.Errorf("delete todo: %w", err)
	}
	aff, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("todo delete rows affected: %w", err)
	}
	if aff == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *TodoRepository) ListByOwner(ctx context.Context, ownerID int64, titleFilter string, offset, limit int) ([]domain.Todo, error) {
	query := `
SELECT id, title, description, created_at, updated_at, due_at, user_id
FROM todos
WHERE user_id = ?`
	args := []any{ownerID}
	if titleFilter != "" {
		query += ` AND title LIKE ?`
		args = append(args, "%"+titleFilter+"%")
	}
	query += `
ORDER BY id ASC
LIMIT ? OFFSET ?`
	args = append(args, limit, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query todos: %w", err)
	}
	defer rows.Close()

	todos := []domain.Todo{}
	for rows.Next() {
		todo, err := scanTodo(rows)
		if err != nil {
			return nil, err
		}
		todos = append(todos, *todo)
	}

	return todos, rows.Err()
}

func (r *TodoRepository) CountByOwner(ctx context.Context, ownerID int64, titleFilter string) (int64, error) {
	query := `SELECT COUNT(*) FROM todos WHERE user_id = ?`
	args := []any{ownerID}
	if titleFilter != "" {
		query += ` AND title LIKE ?`
		args = append(args, "%"+titleFilter+"%")
	}

	var total int64
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("count todos: %w", err)
	}
	return total, nil
}

func scanTodo(scanner interface {
	Scan(dest ...any) error
}) (*domain.Todo, error) {
	var (
		todo      domain.Todo
		updatedAt sql.NullTime
		dueAt     sql.NullTime
	)

	if err := scanner.Scan(
		&todo.ID,
		&todo.Title,
		&todo.Description,
		&todo.CreatedAt,
		&updatedAt,
		&dueAt,
		&todo.UserID,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("scan todo: %w", err)
	}

	if updatedAt.Valid {
		t := updatedAt.Time
		todo.UpdatedAt = &t
	}
	if dueAt.Valid {
		t := dueAt.Time
		todo.DueAt = &t
	}

	return &todo, nil
}

func nullTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.UTC()
}
