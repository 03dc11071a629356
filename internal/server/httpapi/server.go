// Package httpapi is the JSON/HTTP boundary: login and logout, the caller's
// profile, and CRUD on the caller's own tasks.
package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/dmitrijs2005/todoapi/internal/logging"
	"github.com/dmitrijs2005/todoapi/internal/server/models"
	"github.com/dmitrijs2005/todoapi/internal/server/ratelimit"
	"github.com/dmitrijs2005/todoapi/internal/server/services"
	"github.com/dmitrijs2005/todoapi/internal/server/validation"
)

const (
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 10 * time.Second
	maxBodyBytes      = 1 << 20
)

// Sessions is the subset of services.SessionService the boundary needs.
type Sessions interface {
	Authenticate(ctx context.Context, email, password string) (*services.Session, error)
	ResolveToken(ctx context.Context, bearer string) (*services.Identity, error)
	Revoke(ctx context.Context, userID int64, tokenID string) error
}

// Tasks is the subset of services.TaskService the boundary needs.
type Tasks interface {
	List(ctx context.Context, ownerID int64) ([]*models.Task, error)
	Get(ctx context.Context, ownerID, id int64) (*models.Task, error)
	Create(ctx context.Context, ownerID int64, in services.CreateTaskInput) (*models.Task, error)
	Update(ctx context.Context, ownerID, id int64, patch models.TaskPatch) (*models.Task, error)
	Delete(ctx context.Context, ownerID, id int64) error
}

type Server struct {
	address      string
	sessions     Sessions
	tasks        Tasks
	validator    *validation.Validator
	loginLimiter *ratelimit.KeyedLimiter
	logger       logging.Logger
}

func NewServer(addr string, l logging.Logger, ss Sessions, ts Tasks, v *validation.Validator, limiter *ratelimit.KeyedLimiter) *Server {
	return &Server{
		address:      addr,
		sessions:     ss,
		tasks:        ts,
		validator:    v,
		loginLimiter: limiter,
		logger:       l.With("module", "http_server"),
	}
}

// Run listens on the configured address and serves until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	lis, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, lis)
}

// Serve serves on lis until ctx is cancelled, then shuts down gracefully.
func (s *Server) Serve(ctx context.Context, lis net.Listener) error {
	httpServer := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: readHeaderTimeout,
	}

	serveErr := make(chan error, 1)
	s.logger.Info(ctx, "Starting HTTP server", "address", lis.Addr().String())
	go func() {
		serveErr <- httpServer.Serve(lis)
	}()

	select {
	case <-ctx.Done():
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve http: %w", err)
	}
}
