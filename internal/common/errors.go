// Package common defines shared constants and sentinel errors used across
// server and client layers of todoapi. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")
	ErrorValidation   = errors.New("validation error")

	// Session errors. Unknown email and wrong password both map to
	// ErrInvalidCredentials.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// Auth errors (invalid, revoked or malformed token).
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")

	// Task errors. ErrTaskNotFound covers both missing tasks and tasks owned
	// by somebody else.
	ErrTaskNotFound = errors.New("task not found")
	ErrTaskConflict = errors.New("task with same title already exists")
)
