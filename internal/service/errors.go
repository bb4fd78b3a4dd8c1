package service

import "errors"

var (
	// ErrInvalidCredentials indicates that provided login credentials are incorrect.
	// It deliberately covers both unknown email and wrong password.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrEmailTaken is returned when registering with an email that already exists.
	ErrEmailTaken = errors.New("email already registered")
	// ErrUnauthenticated indicates a missing, malformed, expired or revoked token.
	ErrUnauthenticated = errors.New("authentication required")
	// ErrTodoNotFound indicates the item does not exist for the caller.
	ErrTodoNotFound = errors.New("todo not found")
	// ErrForbidden indicates a mutation attempted on another user's item.
	ErrForbidden = errors.New("todo belongs to another user")
	// ErrValidation wraps malformed-input failures.
	ErrValidation = errors.New("invalid input")
)
