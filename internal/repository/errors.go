package repository

import "errors"

var (
	// ErrNotFound is returned when a point lookup matches no row.
	ErrNotFound = errors.New("not found")
	// ErrEmailTaken is returned when an insert violates the unique email constraint.
	ErrEmailTaken = errors.New("email already registered")
)
