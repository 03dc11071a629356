// Package tasks declares the task store. Every lookup and mutation is keyed
// by the pair (task id, owner id); a task owned by someone else is
// indistinguishable from one that does not exist.
package tasks

import (
	"context"

	"github.com/dmitrijs2005/todoapi/internal/server/models"
)

type Repository interface {
	// ListByOwner returns the owner's tasks ordered by id. The slice is never nil.
	ListByOwner(ctx context.Context, ownerID int64) ([]*models.Task, error)
	// FindByID returns common.ErrorNotFound when no task (id, ownerID) exists.
	FindByID(ctx context.Context, id, ownerID int64) (*models.Task, error)
	// FindByTitle looks up the owner's task with exactly this title.
	FindByTitle(ctx context.Context, ownerID int64, title string) (*models.Task, error)
	Create(ctx context.Context, task *models.Task) (*models.Task, error)
	// Update applies the non-nil fields of patch and bumps updated_at.
	Update(ctx context.Context, id, ownerID int64, patch models.TaskPatch) (*models.Task, error)
	Delete(ctx context.Context, id, ownerID int64) error
}
