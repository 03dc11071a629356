// Package client talks to the todoapi gRPC service.
//
// # Overview
//
// Client is the transport-agnostic contract used by the CLI. GRPCClient
// implements it over a JSON-coded gRPC connection, attaches the bearer
// token of the current session to every call and maps status codes to the
// sentinel errors in errors.go.
//
// # Error Handling
//
// Match with errors.Is: ErrUnavailable, ErrUnauthorized,
// ErrInvalidCredentials, ErrNotFound, ErrConflict, ErrInvalidInput.
// ErrInvalidInput is wrapped together with the server's field messages.
//
// GRPCClient is safe for concurrent use.
package client
