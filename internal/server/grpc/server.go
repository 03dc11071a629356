// Package grpc exposes sessions and tasks as the todoapi.v1.TodoService gRPC
// service, with JSON-encoded messages.
package grpc

import (
	"context"
	"net"

	"github.com/dmitrijs2005/todoapi/internal/logging"
	"github.com/dmitrijs2005/todoapi/internal/server/models"
	"github.com/dmitrijs2005/todoapi/internal/server/services"
	"github.com/dmitrijs2005/todoapi/internal/server/validation"
	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
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

type GRPCServer struct {
	address   string
	sessions  Sessions
	tasks     Tasks
	validator *validation.Validator
	logger    logging.Logger
	health    *health.Server
}

func NewGRPCServer(a string, l logging.Logger, ss Sessions, ts Tasks, v *validation.Validator) *GRPCServer {
	return &GRPCServer{
		address:   a,
		logger:    l.With("module", "grpc_server"),
		sessions:  ss,
		tasks:     ts,
		validator: v,
		health:    health.NewServer(),
	}
}

// newServer builds a grpc.Server with the todo and health services registered.
func (s *GRPCServer) newServer() *grpc.Server {
	srv := grpc.NewServer(
		grpc.StatsHandler(otelgrpc.NewServerHandler()),
		grpc.ChainUnaryInterceptor(s.loggingInterceptor, s.accessTokenInterceptor),
	)

	srv.RegisterService(&TodoServiceDesc, s)
	healthpb.RegisterHealthServer(srv, s.health)
	s.health.SetServingStatus(TodoServiceDesc.ServiceName, healthpb.HealthCheckResponse_SERVING)

	return srv
}

// Run listens on the configured address and serves until ctx is cancelled.
func (s *GRPCServer) Run(ctx context.Context) error {

	// announces address
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	return s.Serve(ctx, listen)
}

// Serve serves on lis until ctx is cancelled, then stops gracefully.
func (s *GRPCServer) Serve(ctx context.Context, lis net.Listener) error {
	srv := s.newServer()

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		s.health.Shutdown()
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", lis.Addr().String())

	// starts accepting incoming connections
	if err := srv.Serve(lis); err != nil {
		return err
	}

	return nil
}
