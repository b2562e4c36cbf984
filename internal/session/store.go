package session

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Store.Get for an unknown session id.
var ErrNotFound = errors.New("session not found")

// Store persists session aggregates. Implementations must return
// ErrNotFound (possibly wrapped) from Get and Update for unknown ids.
type Store interface {
	Create(ctx context.Context, s *Session) error
	Get(ctx context.Context, id string) (*Session, error)
	Update(ctx context.Context, s *Session) error
}
