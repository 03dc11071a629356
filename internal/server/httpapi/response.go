package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dmitrijs2005/todoapi/internal/api"
	"github.com/dmitrijs2005/todoapi/internal/common"
)

const (
	invalidCredentialsMessage = "Invalid credentials."
	unauthenticatedMessage    = "Unauthenticated."
	taskNotFoundMessage       = "Task not found."
	taskConflictMessage       = "Task with same title already exists."
	invalidDataMessage        = "The given data was invalid."
	serverErrorMessage        = "Server Error"
)

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// writeError maps service errors to status codes and bodies. Anything
// unexpected is logged and reported as a bare 500.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *common.ValidationError

	switch {
	case errors.Is(err, common.ErrInvalidCredentials):
		writeJSON(w, http.StatusUnprocessableEntity, api.ErrorResponse{Message: invalidCredentialsMessage})
	case errors.Is(err, common.ErrInvalidToken),
		errors.Is(err, common.ErrTokenExpired),
		errors.Is(err, common.ErrorUnauthorized):
		w.Header().Set("WWW-Authenticate", common.BearerScheme)
		writeJSON(w, http.StatusUnauthorized, api.ErrorResponse{Message: unauthenticatedMessage})
	case errors.Is(err, common.ErrTaskNotFound):
		writeJSON(w, http.StatusNotFound, api.ErrorResponse{Message: taskNotFoundMessage})
	case errors.Is(err, common.ErrTaskConflict):
		writeJSON(w, http.StatusConflict, api.ErrorResponse{Message: taskConflictMessage})
	case errors.As(err, &verr):
		writeJSON(w, http.StatusUnprocessableEntity, api.ErrorResponse{Message: invalidDataMessage, Errors: verr.Fields})
	default:
		s.logger.Error(r.Context(), "request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		writeJSON(w, http.StatusInternalServerError, api.ErrorResponse{Message: serverErrorMessage})
	}
}
