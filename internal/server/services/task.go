package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/dmitrijs2005/todoapi/internal/common"
	"github.com/dmitrijs2005/todoapi/internal/dbx"
	"github.com/dmitrijs2005/todoapi/internal/server/models"
	"github.com/dmitrijs2005/todoapi/internal/server/repositories/repomanager"
)

// MaxTitleLength is the longest accepted task title, in characters.
const MaxTitleLength = 255

// createAttempts bounds retries of the create transaction after a
// serialization failure.
const createAttempts = 3

type CreateTaskInput struct {
	Title       string
	Description *string
}

// TaskService scopes every operation to ownerID. A task that exists but
// belongs to somebody else is reported exactly like a missing one.
type TaskService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewTaskService(db *sql.DB, m repomanager.RepositoryManager) *TaskService {
	return &TaskService{db: db, repomanager: m}
}

func (s *TaskService) List(ctx context.Context, ownerID int64) ([]*models.Task, error) {
	list, err := s.repomanager.Tasks(s.db).ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("%w: list tasks: %v", common.ErrorInternal, err)
	}
	return list, nil
}

func (s *TaskService) Get(ctx context.Context, ownerID, id int64) (*models.Task, error) {
	t, err := s.repomanager.Tasks(s.db).FindByID(ctx, id, ownerID)
	if err != nil {
		return nil, translateTaskErr("get task", err)
	}
	return t, nil
}

// Create inserts a task unless the owner already has one with the same title.
// The lookup and the insert share one serializable transaction.
func (s *TaskService) Create(ctx context.Context, ownerID int64, in CreateTaskInput) (*models.Task, error) {
	if err := validateTitle(in.Title); err != nil {
		return nil, err
	}

	task := &models.Task{UserID: ownerID, Title: in.Title}
	if in.Description != nil {
		task.Description = *in.Description
	}

	var (
		created *models.Task
		err     error
	)
	for attempt := 0; attempt < createAttempts; attempt++ {
		err = dbx.WithTx(ctx, s.db, dbx.Serializable, func(ctx context.Context, tx dbx.DBTX) error {
			repo := s.repomanager.Tasks(tx)

			_, findErr := repo.FindByTitle(ctx, ownerID, in.Title)
			switch {
			case findErr == nil:
				return common.ErrTaskConflict
			case !errors.Is(findErr, common.ErrorNotFound):
				return findErr
			}

			var createErr error
			created, createErr = repo.Create(ctx, task)
			return createErr
		})
		if !dbx.IsSerializationFailure(err) {
			break
		}
	}

	if err != nil {
		if errors.Is(err, common.ErrTaskConflict) {
			return nil, common.ErrTaskConflict
		}
		return nil, fmt.Errorf("%w: create task: %v", common.ErrorInternal, err)
	}
	return created, nil
}

// Update applies the supplied fields only. Title uniqueness is not checked
// again; an empty patch returns the stored task unchanged.
func (s *TaskService) Update(ctx context.Context, ownerID, id int64, patch models.TaskPatch) (*models.Task, error) {
	if patch.Title != nil {
		if err := validateTitle(*patch.Title); err != nil {
			return nil, err
		}
	}

	if patch.Empty() {
		return s.Get(ctx, ownerID, id)
	}

	t, err := s.repomanager.Tasks(s.db).Update(ctx, id, ownerID, patch)
	if err != nil {
		return nil, translateTaskErr("update task", err)
	}
	return t, nil
}

func (s *TaskService) Delete(ctx context.Context, ownerID, id int64) error {
	if err := s.repomanager.Tasks(s.db).Delete(ctx, id, ownerID); err != nil {
		return translateTaskErr("delete task", err)
	}
	return nil
}

func translateTaskErr(op string, err error) error {
	if errors.Is(err, common.ErrorNotFound) {
		return common.ErrTaskNotFound
	}
	return fmt.Errorf("%w: %s: %v", common.ErrorInternal, op, err)
}

func validateTitle(title string) error {
	verr := common.NewValidationError()
	switch {
	case strings.TrimSpace(title) == "":
		verr.Add("title", "The title field is required.")
	case utf8.RuneCountInString(title) > MaxTitleLength:
		verr.Add("title", fmt.Sprintf("The title may not be greater than %d characters.", MaxTitleLength))
	}
	return verr.OrNil()
}
