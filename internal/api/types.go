// Package api holds the wire types shared by the HTTP and gRPC boundaries and
// the CLI client.
package api

import (
	"time"

	"github.com/dmitrijs2005/todoapi/internal/server/models"
)

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token string      `json:"token"`
	User  UserProfile `json:"user"`
}

type UserProfile struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type Task struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Completed   bool      `json:"completed"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type TaskList struct {
	Tasks []Task `json:"tasks"`
}

type CreateTaskRequest struct {
	Title       string  `json:"title"`
	Description *string `json:"description,omitempty"`
}

// UpdateTaskRequest is a partial update; absent fields stay unchanged. ID is
// read from the URL over HTTP and from the message over gRPC.
type UpdateTaskRequest struct {
	ID          int64   `json:"id,omitempty"`
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Completed   *bool   `json:"completed,omitempty"`
}

type TaskIDRequest struct {
	ID int64 `json:"id"`
}

type Empty struct{}

// ErrorResponse is the body of every non-2xx HTTP response.
type ErrorResponse struct {
	Message string              `json:"message"`
	Errors  map[string][]string `json:"errors,omitempty"`
}

func NewUserProfile(u *models.User) UserProfile {
	return UserProfile{ID: u.ID, Name: u.Name, Email: u.Email}
}

func NewTask(t *models.Task) Task {
	return Task{
		ID:          t.ID,
		UserID:      t.UserID,
		Title:       t.Title,
		Description: t.Description,
		Completed:   t.Completed,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

func NewTaskList(list []*models.Task) TaskList {
	out := TaskList{Tasks: make([]Task, 0, len(list))}
	for _, t := range list {
		out.Tasks = append(out.Tasks, NewTask(t))
	}
	return out
}

// Patch converts the request into a model patch.
func (r *UpdateTaskRequest) Patch() models.TaskPatch {
	return models.TaskPatch{Title: r.Title, Description: r.Description, Completed: r.Completed}
}
