package httpapi

import "net/http"

// Handler returns the routed API wrapped in the common middleware.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", s.handleHealth)

	mux.Handle("POST /login", s.throttleLogin(http.HandlerFunc(s.handleLogin)))
	mux.Handle("POST /logout", s.authenticated(s.handleLogout))
	mux.Handle("GET /me", s.authenticated(s.handleMe))

	mux.Handle("GET /tasks", s.authenticated(s.handleListTasks))
	mux.Handle("POST /tasks", s.authenticated(s.handleCreateTask))
	mux.Handle("GET /tasks/{id}", s.authenticated(s.handleGetTask))
	mux.Handle("PUT /tasks/{id}", s.authenticated(s.handleUpdateTask))
	mux.Handle("PATCH /tasks/{id}", s.authenticated(s.handleUpdateTask))
	mux.Handle("DELETE /tasks/{id}", s.authenticated(s.handleDeleteTask))

	return s.recoverPanic(s.logRequests(mux))
}
