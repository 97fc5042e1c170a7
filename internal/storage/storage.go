// Package storage holds the string-keyed slots that stand in for browser-local
// storage. A Backend is shared by the whole process; a Store is one session's
// view of it.
package storage

import (
	"context"
	"errors"
)

var ErrEmptyNamespace = errors.New("storage namespace is required")

// Backend persists slot values grouped by namespace (one namespace per session).
type Backend interface {
	Load(ctx context.Context, namespace, key string) (string, bool, error)
	Save(ctx context.Context, namespace, key, value string) error
	Remove(ctx context.Context, namespace, key string) error
}

// Store is the per-session key/value view used by the cart and the admin gate.
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

type scoped struct {
	backend   Backend
	namespace string
}

// Scope binds a backend to a namespace. An empty namespace would share slots
// between sessions and is rejected.
func Scope(b Backend, namespace string) (Store, error) {
	if namespace == "" {
		return nil, ErrEmptyNamespace
	}
	return &scoped{backend: b, namespace: namespace}, nil
}

func (s *scoped) Get(ctx context.Context, key string) (string, bool, error) {
	return s.backend.Load(ctx, s.namespace, key)
}

func (s *scoped) Set(ctx context.Context, key, value string) error {
	return s.backend.Save(ctx, s.namespace, key, value)
}

func (s *scoped) Delete(ctx context.Context, key string) error {
	return s.backend.Remove(ctx, s.namespace, key)
}
