package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/todoapi/internal/common"
	"github.com/dmitrijs2005/todoapi/internal/server/auth"
	"github.com/dmitrijs2005/todoapi/internal/server/models"
	"github.com/dmitrijs2005/todoapi/internal/server/repositories/repomanager"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

// MinPasswordLength matches the login request rule.
const MinPasswordLength = 6

// UserService provisions accounts out of band and serves profile lookups.
type UserService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewUserService(db *sql.DB, m repomanager.RepositoryManager) *UserService {
	return &UserService{db: db, repomanager: m}
}

// CreateUser hashes password and stores a new user. A taken email yields
// common.ErrorAlreadyExists.
func (s *UserService) CreateUser(ctx context.Context, name, email, password string) (*models.User, error) {
	verr := common.NewValidationError()
	if strings.TrimSpace(name) == "" {
		verr.Add("name", "The name field is required.")
	}
	if email == "" {
		verr.Add("email", "The email field is required.")
	} else if !jsonschema.Formats["email"](email) {
		verr.Add("email", "The email must be a valid email address.")
	}
	if len(password) < MinPasswordLength {
		verr.Add("password", fmt.Sprintf("The password must be at least %d characters.", MinPasswordLength))
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("%w: hash password: %v", common.ErrorInternal, err)
	}

	user, err := s.repomanager.Users(s.db).Create(ctx, &models.User{Name: name, Email: email, PasswordHash: hash})
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("%w: create user: %v", common.ErrorInternal, err)
	}
	return user, nil
}

func (s *UserService) GetProfile(ctx context.Context, userID int64) (*models.User, error) {
	user, err := s.repomanager.Users(s.db).GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("%w: get user: %v", common.ErrorInternal, err)
	}
	return user, nil
}
