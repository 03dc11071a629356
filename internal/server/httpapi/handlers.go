package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/dmitrijs2005/todoapi/internal/api"
	"github.com/dmitrijs2005/todoapi/internal/common"
	"github.com/dmitrijs2005/todoapi/internal/server/services"
	"github.com/dmitrijs2005/todoapi/internal/server/validation"
)

// decodeBody reads the request body, validates it against schema and
// unmarshals it into dst.
func (s *Server) decodeBody(w http.ResponseWriter, r *http.Request, schema string, dst any) error {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			verr := common.NewValidationError()
			verr.Add(validation.BodyField, "The request body is too large.")
			return verr
		}
		return fmt.Errorf("read body: %w", err)
	}

	if err := s.validator.Validate(schema, body); err != nil {
		return err
	}
	if err := json.Unmarshal(body, dst); err != nil {
		return fmt.Errorf("decode body: %w", err)
	}
	return nil
}

// parseTaskID parses the {id} path value. Anything that is not a positive
// integer is reported as a missing task.
func parseTaskID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, common.ErrTaskNotFound
	}
	return id, nil
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req api.LoginRequest
	if err := s.decodeBody(w, r, validation.Login, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	session, err := s.sessions.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.logger.Info(r.Context(), "Logged in", "user_id", session.User.ID)
	writeJSON(w, http.StatusOK, api.LoginResponse{Token: session.Token, User: api.NewUserProfile(session.User)})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request, id *services.Identity) {
	if err := s.sessions.Revoke(r.Context(), id.User.ID, id.TokenID); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleMe(w http.ResponseWriter, _ *http.Request, id *services.Identity) {
	writeJSON(w, http.StatusOK, api.NewUserProfile(id.User))
}

func (s *Server) handleListTasks(w http.ResponseWriter, r *http.Request, id *services.Identity) {
	list, err := s.tasks.List(r.Context(), id.User.ID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, api.NewTaskList(list).Tasks)
}

func (s *Server) handleCreateTask(w http.ResponseWriter, r *http.Request, id *services.Identity) {
	var req api.CreateTaskRequest
	if err := s.decodeBody(w, r, validation.CreateTask, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	t, err := s.tasks.Create(r.Context(), id.User.ID, services.CreateTaskInput{Title: req.Title, Description: req.Description})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	w.Header().Set("Location", "/tasks/"+strconv.FormatInt(t.ID, 10))
	writeJSON(w, http.StatusCreated, api.NewTask(t))
}

func (s *Server) handleGetTask(w http.ResponseWriter, r *http.Request, id *services.Identity) {
	taskID, err := parseTaskID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	t, err := s.tasks.Get(r.Context(), id.User.ID, taskID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, api.NewTask(t))
}

func (s *Server) handleUpdateTask(w http.ResponseWriter, r *http.Request, id *services.Identity) {
	taskID, err := parseTaskID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	var req api.UpdateTaskRequest
	if err := s.decodeBody(w, r, validation.UpdateTask, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	t, err := s.tasks.Update(r.Context(), id.User.ID, taskID, req.Patch())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, api.NewTask(t))
}

func (s *Server) handleDeleteTask(w http.ResponseWriter, r *http.Request, id *services.Identity) {
	taskID, err := parseTaskID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	if err := s.tasks.Delete(r.Context(), id.User.ID, taskID); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
