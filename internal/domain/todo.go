package domain

import "time"

// Todo is a to-do item owned by exactly one user. UserID is set at creation
// and never changes. UpdatedAt is nil until the first successful update.
type Todo struct {
	ID          int64
	Title       string
	Description string
	CreatedAt   time.Time
	UpdatedAt   *time.Time
	DueAt       *time.Time
	UserID      int64
}
