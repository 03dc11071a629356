// Package tokens declares the server-side repository contract for issued
// bearer tokens.
package tokens

import (
	"context"
	"time"

	"github.com/dmitrijs2005/todoapi/internal/server/models"
)

// Repository defines operations for recording, looking up and revoking tokens.
type Repository interface {
	// Create stores a token row. ID and ExpiresAt must be set by the caller.
	Create(ctx context.Context, token *models.Token) error

	// FindByID returns the row for the given token id (JWT jti).
	// Implementations return common.ErrorNotFound when the token is absent.
	FindByID(ctx context.Context, id string) (*models.Token, error)

	// DeleteByUser revokes every token of userID. Deleting nothing is not an error.
	DeleteByUser(ctx context.Context, userID int64) error

	// Delete revokes a single token owned by userID.
	Delete(ctx context.Context, id string, userID int64) error

	// DeleteExpired removes rows that expired at or before now and reports how many.
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
