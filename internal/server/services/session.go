// Package services contains server-side business logic. SessionService turns
// credentials into bearer tokens and bearer tokens back into users;
// TaskService enforces that tasks are only ever touched by their owner.
package services

import (
	"context"
	"crypto/subtle"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/todoapi/internal/common"
	"github.com/dmitrijs2005/todoapi/internal/dbx"
	"github.com/dmitrijs2005/todoapi/internal/server/auth"
	"github.com/dmitrijs2005/todoapi/internal/server/config"
	"github.com/dmitrijs2005/todoapi/internal/server/models"
	"github.com/dmitrijs2005/todoapi/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/todoapi/internal/server/repositories/tokens"
	"github.com/google/uuid"
)

// Session is the result of a successful login.
type Session struct {
	Token     string
	ExpiresAt time.Time
	User      *models.User
}

// Identity is the authenticated caller behind a bearer token.
type Identity struct {
	User    *models.User
	TokenID string
}

type SessionService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	jwtSecret   []byte
	tokenTTL    time.Duration

	now     func() time.Time
	tokenID func() string
}

func NewSessionService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *SessionService {
	return &SessionService{
		db:          db,
		repomanager: m,
		jwtSecret:   []byte(cfg.SecretKey),
		tokenTTL:    cfg.TokenTTL,
		now:         time.Now,
		tokenID:     func() string { return uuid.NewString() },
	}
}

// Authenticate verifies email and password and issues a new token. Every
// token the user held before is revoked in the same transaction, so at most
// one token per user is valid after a successful login.
func (s *SessionService) Authenticate(ctx context.Context, email, password string) (*Session, error) {
	user, err := s.repomanager.Users(s.db).GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			auth.CheckDummyPassword(password)
			return nil, common.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("%w: find user: %v", common.ErrorInternal, err)
	}

	if !auth.CheckPassword(user.PasswordHash, password) {
		return nil, common.ErrInvalidCredentials
	}

	var session *Session
	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Tokens(tx)
		if err := repo.DeleteByUser(ctx, user.ID); err != nil {
			return fmt.Errorf("revoke tokens: %w", err)
		}
		var issueErr error
		session, issueErr = s.issue(ctx, repo, user)
		return issueErr
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}

	return session, nil
}

func (s *SessionService) issue(ctx context.Context, repo tokens.Repository, user *models.User) (*Session, error) {
	id := s.tokenID()
	now := s.now()

	bearer, err := auth.GenerateToken(user.ID, id, s.jwtSecret, now, s.tokenTTL)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}

	row := &models.Token{
		ID:        id,
		UserID:    user.ID,
		TokenHash: auth.HashToken(bearer),
		ExpiresAt: now.Add(s.tokenTTL),
	}
	if err := repo.Create(ctx, row); err != nil {
		return nil, fmt.Errorf("store token: %w", err)
	}

	return &Session{Token: bearer, ExpiresAt: row.ExpiresAt, User: user}, nil
}

// ResolveToken returns the identity behind bearer. A token authenticates only
// while its row exists, the stored hash matches and it has not expired.
func (s *SessionService) ResolveToken(ctx context.Context, bearer string) (*Identity, error) {
	claims, err := auth.ParseToken(bearer, s.jwtSecret)
	if err != nil {
		return nil, err
	}

	row, err := s.repomanager.Tokens(s.db).FindByID(ctx, claims.ID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrInvalidToken
		}
		return nil, fmt.Errorf("%w: find token: %v", common.ErrorInternal, err)
	}

	hash := auth.HashToken(bearer)
	if row.UserID != claims.UserID || subtle.ConstantTimeCompare([]byte(row.TokenHash), []byte(hash)) != 1 {
		return nil, common.ErrInvalidToken
	}
	if row.Expired(s.now()) {
		return nil, common.ErrTokenExpired
	}

	user, err := s.repomanager.Users(s.db).GetByID(ctx, row.UserID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrInvalidToken
		}
		return nil, fmt.Errorf("%w: find user: %v", common.ErrorInternal, err)
	}

	return &Identity{User: user, TokenID: row.ID}, nil
}

// Revoke deletes one token of userID. Revoking an unknown token is a no-op.
func (s *SessionService) Revoke(ctx context.Context, userID int64, tokenID string) error {
	if err := s.repomanager.Tokens(s.db).Delete(ctx, tokenID, userID); err != nil {
		return fmt.Errorf("%w: revoke token: %v", common.ErrorInternal, err)
	}
	return nil
}

// PurgeExpired removes expired token rows and returns how many were deleted.
func (s *SessionService) PurgeExpired(ctx context.Context) (int64, error) {
	n, err := s.repomanager.Tokens(s.db).DeleteExpired(ctx, s.now())
	if err != nil {
		return 0, fmt.Errorf("%w: purge tokens: %v", common.ErrorInternal, err)
	}
	return n, nil
}
