// Package servicetest provides in-memory stand-ins for SessionService and
// TaskService so API boundaries can be tested without a database.
package servicetest

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/dmitrijs2005/todoapi/internal/common"
	"github.com/dmitrijs2005/todoapi/internal/server/models"
	"github.com/dmitrijs2005/todoapi/internal/server/services"
)

type account struct {
	user     *models.User
	password string
}

type issued struct {
	identity *services.Identity
	expired  bool
}

// Sessions mimics SessionService: one live token per user, revoked on the
// next login. Err, when set, is returned by every call.
type Sessions struct {
	mu       sync.Mutex
	accounts map[string]*account
	tokens   map[string]*issued
	seq      int

	Err error
}

func NewSessions() *Sessions {
	return &Sessions{accounts: map[string]*account{}, tokens: map[string]*issued{}}
}

func (s *Sessions) AddUser(id int64, name, email, password string) *models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	u := &models.User{ID: id, Name: name, Email: email}
	s.accounts[email] = &account{user: u, password: password}
	return u
}

func (s *Sessions) Authenticate(_ context.Context, email, password string) (*services.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}

	acc, ok := s.accounts[email]
	if !ok || acc.password != password {
		return nil, common.ErrInvalidCredentials
	}

	for bearer, t := range s.tokens {
		if t.identity.User.ID == acc.user.ID {
			delete(s.tokens, bearer)
		}
	}

	s.seq++
	bearer := fmt.Sprintf("token-%d-%d", acc.user.ID, s.seq)
	s.tokens[bearer] = &issued{identity: &services.Identity{User: acc.user, TokenID: bearer}}
	return &services.Session{Token: bearer, ExpiresAt: time.Now().Add(time.Hour), User: acc.user}, nil
}

func (s *Sessions) ResolveToken(_ context.Context, bearer string) (*services.Identity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}

	t, ok := s.tokens[bearer]
	if !ok {
		return nil, common.ErrInvalidToken
	}
	if t.expired {
		return nil, common.ErrTokenExpired
	}
	return t.identity, nil
}

func (s *Sessions) Revoke(_ context.Context, userID int64, tokenID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	if t, ok := s.tokens[tokenID]; ok && t.identity.User.ID == userID {
		delete(s.tokens, tokenID)
	}
	return nil
}

// Expire makes bearer resolve as expired.
func (s *Sessions) Expire(bearer string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t, ok := s.tokens[bearer]; ok {
		t.expired = true
	}
}

// Tasks mimics TaskService over an in-memory table.
type Tasks struct {
	mu   sync.Mutex
	rows map[int64]*models.Task
	next int64

	Err error
}

func NewTasks() *Tasks {
	return &Tasks{rows: map[int64]*models.Task{}}
}

func (s *Tasks) List(_ context.Context, ownerID int64) ([]*models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	out := make([]*models.Task, 0)
	for _, t := range s.rows {
		if t.UserID == ownerID {
			cp := *t
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *Tasks) Get(_ context.Context, ownerID, id int64) (*models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	t, ok := s.rows[id]
	if !ok || t.UserID != ownerID {
		return nil, common.ErrTaskNotFound
	}
	cp := *t
	return &cp, nil
}

func (s *Tasks) Create(_ context.Context, ownerID int64, in services.CreateTaskInput) (*models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	for _, t := range s.rows {
		if t.UserID == ownerID && t.Title == in.Title {
			return nil, common.ErrTaskConflict
		}
	}
	s.next++
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC).Add(time.Duration(s.next) * time.Second)
	t := &models.Task{ID: s.next, UserID: ownerID, Title: in.Title, CreatedAt: now, UpdatedAt: now}
	if in.Description != nil {
		t.Description = *in.Description
	}
	s.rows[t.ID] = t
	cp := *t
	return &cp, nil
}

func (s *Tasks) Update(_ context.Context, ownerID, id int64, p models.TaskPatch) (*models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	t, ok := s.rows[id]
	if !ok || t.UserID != ownerID {
		return nil, common.ErrTaskNotFound
	}
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.Completed != nil {
		t.Completed = *p.Completed
	}
	if !p.Empty() {
		t.UpdatedAt = t.UpdatedAt.Add(time.Minute)
	}
	cp := *t
	return &cp, nil
}

func (s *Tasks) Delete(_ context.Context, ownerID, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	t, ok := s.rows[id]
	if !ok || t.UserID != ownerID {
		return common.ErrTaskNotFound
	}
	delete(s.rows, id)
	return nil
}

// Len reports how many tasks are stored across all owners.
func (s *Tasks) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.rows)
}
