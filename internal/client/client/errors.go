package client

import "errors"

var (
	ErrUnavailable        = errors.New("server unavailable")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotFound           = errors.New("task not found")
	ErrConflict           = errors.New("task with same title already exists")
	ErrInvalidInput       = errors.New("invalid input")
)
