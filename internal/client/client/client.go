package client

import (
	"context"

	"github.com/dmitrijs2005/todoapi/internal/api"
)

type Client interface {
	Close() error
	LoggedIn() bool
	Login(ctx context.Context, email, password string) (*api.UserProfile, error)
	Logout(ctx context.Context) error
	Me(ctx context.Context) (*api.UserProfile, error)
	ListTasks(ctx context.Context) ([]api.Task, error)
	GetTask(ctx context.Context, id int64) (*api.Task, error)
	CreateTask(ctx context.Context, title string, description *string) (*api.Task, error)
	UpdateTask(ctx context.Context, req *api.UpdateTaskRequest) (*api.Task, error)
	DeleteTask(ctx context.Context, id int64) error
}
