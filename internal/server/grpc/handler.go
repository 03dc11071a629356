package grpc

import (
	"context"
	"encoding/json"

	"github.com/dmitrijs2005/todoapi/internal/api"
	"github.com/dmitrijs2005/todoapi/internal/server/authctx"
	"github.com/dmitrijs2005/todoapi/internal/server/services"
	"github.com/dmitrijs2005/todoapi/internal/server/validation"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// validate re-encodes msg and checks it against the named request schema.
func (s *GRPCServer) validate(ctx context.Context, schema string, msg any) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return s.toStatus(ctx, err)
	}
	if err := s.validator.Validate(schema, body); err != nil {
		return s.toStatus(ctx, err)
	}
	return nil
}

func identity(ctx context.Context) (*services.Identity, error) {
	id, ok := authctx.IdentityFromContext(ctx)
	if !ok {
		return nil, status.Error(codes.Unauthenticated, "unauthenticated")
	}
	return id, nil
}

func (s *GRPCServer) Login(ctx context.Context, req *api.LoginRequest) (*api.LoginResponse, error) {
	if err := s.validate(ctx, validation.Login, req); err != nil {
		return nil, err
	}

	session, err := s.sessions.Authenticate(ctx, req.Email, req.Password)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	s.logger.Info(ctx, "Logged in", "user_id", session.User.ID)
	return &api.LoginResponse{Token: session.Token, User: api.NewUserProfile(session.User)}, nil
}

func (s *GRPCServer) Logout(ctx context.Context, _ *api.Empty) (*api.Empty, error) {
	id, err := identity(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.sessions.Revoke(ctx, id.User.ID, id.TokenID); err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &api.Empty{}, nil
}

func (s *GRPCServer) Me(ctx context.Context, _ *api.Empty) (*api.UserProfile, error) {
	id, err := identity(ctx)
	if err != nil {
		return nil, err
	}
	profile := api.NewUserProfile(id.User)
	return &profile, nil
}

func (s *GRPCServer) ListTasks(ctx context.Context, _ *api.Empty) (*api.TaskList, error) {
	id, err := identity(ctx)
	if err != nil {
		return nil, err
	}
	list, err := s.tasks.List(ctx, id.User.ID)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	out := api.NewTaskList(list)
	return &out, nil
}

func (s *GRPCServer) GetTask(ctx context.Context, req *api.TaskIDRequest) (*api.Task, error) {
	id, err := identity(ctx)
	if err != nil {
		return nil, err
	}
	t, err := s.tasks.Get(ctx, id.User.ID, req.ID)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	out := api.NewTask(t)
	return &out, nil
}

func (s *GRPCServer) CreateTask(ctx context.Context, req *api.CreateTaskRequest) (*api.Task, error) {
	id, err := identity(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.validate(ctx, validation.CreateTask, req); err != nil {
		return nil, err
	}
	t, err := s.tasks.Create(ctx, id.User.ID, services.CreateTaskInput{Title: req.Title, Description: req.Description})
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	out := api.NewTask(t)
	return &out, nil
}

func (s *GRPCServer) UpdateTask(ctx context.Context, req *api.UpdateTaskRequest) (*api.Task, error) {
	id, err := identity(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.validate(ctx, validation.UpdateTask, req); err != nil {
		return nil, err
	}
	t, err := s.tasks.Update(ctx, id.User.ID, req.ID, req.Patch())
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	out := api.NewTask(t)
	return &out, nil
}

func (s *GRPCServer) DeleteTask(ctx context.Context, req *api.TaskIDRequest) (*api.Empty, error) {
	id, err := identity(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.tasks.Delete(ctx, id.User.ID, req.ID); err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &api.Empty{}, nil
}

var _ TodoServiceServer = (*GRPCServer)(nil)
