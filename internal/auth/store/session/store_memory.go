package session

import (
	"context"
	"errors"
	"sync"

	"notely/internal/auth/models"
)

// InMemoryStore keeps the session in process memory. Used by tests and by
// one-shot invocations that must not touch disk.
type InMemoryStore struct {
	mu      sync.RWMutex
	session *models.Session
}

func NewInMemory() *InMemoryStore {
	return &InMemoryStore{}
}

func (s *InMemoryStore) Load(_ context.Context) (*models.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.session == nil {
		return nil, ErrNoSession
	}
	return copySession(s.session), nil
}

func (s *InMemoryStore) Save(_ context.Context, sess *models.Session) error {
	if sess == nil {
		return errors.New("session is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = copySession(sess)
	return nil
}

func (s *InMemoryStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = nil
	return nil
}

func (s *InMemoryStore) Token(_ context.Context) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.session == nil {
		return "", nil
	}
	return s.session.Token, nil
}

func copySession(in *models.Session) *models.Session {
	out := &models.Session{Token: in.Token}
	if in.User != nil {
		u := *in.User
		out.User = &u
	}
	return out
}

var _ Store = (*InMemoryStore)(nil)
