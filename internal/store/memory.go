package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/abhisek/varix/internal/session"
)

// Memory is an in-process session.Store. It deep-copies on the way in
// and out so callers cannot alias stored state. Used in tests and when
// running without a database file.
type Memory struct {
	mu       sync.RWMutex
	sessions map[string][]byte
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{sessions: make(map[string][]byte)}
}

// Create stores a new session. Creating an existing id is an error.
func (m *Memory) Create(_ context.Context, s *session.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.sessions[s.ID]; exists {
		return fmt.Errorf("session %s already exists", s.ID)
	}
	b, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	m.sessions[s.ID] = b
	return nil
}

// Get returns a copy of the stored session.
func (m *Memory) Get(_ context.Context, id string) (*session.Session, error) {
	m.mu.RLock()
	b, ok := m.sessions[id]
	m.mu.RUnlock()
	if !ok {
		return nil, session.ErrNotFound
	}
	var s session.Session
	if err := json.Unmarshal(b, &s); err != nil {
		return nil, fmt.Errorf("unmarshal session: %w", err)
	}
	return &s, nil
}

// Update replaces an existing session.
func (m *Memory) Update(_ context.Context, s *session.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.sessions[s.ID]; !exists {
		return session.ErrNotFound
	}
	b, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	m.sessions[s.ID] = b
	return nil
}
