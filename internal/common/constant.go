// Package common contains shared constants and sentinel errors used across
// todoapi components.
package common

// AuthorizationHeaderName is the HTTP header and gRPC metadata key used to
// carry the bearer token on authenticated requests.
const AuthorizationHeaderName = "authorization"

// BearerScheme prefixes the token inside the authorization value.
const BearerScheme = "Bearer"
