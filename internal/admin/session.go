// Package admin gates the back-office screens. The gate is advisory: it only
// records that this browser session typed the shared password.
package admin

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"

	"cym-store/internal/logger"
	"cym-store/internal/storage"

	"go.uber.org/zap"
)

const (
	// Secret is fixed at build time and compared as plain text.
	Secret = "admin123"

	SlotKey       = "cym_admin_auth"
	authenticated = "true"
)

var ErrFailedSession = errors.New("failed to access admin session")

// Session holds the admin flag of one browser session. It has no expiry.
type Session struct {
	store storage.Store
}

func NewSession(store storage.Store) *Session {
	return &Session{store: store}
}

// Authenticate sets the flag when password matches Secret. A wrong password
// leaves the flag as it was.
func (s *Session) Authenticate(ctx context.Context, password string) (bool, error) {
	log := logger.FromCtx(ctx).With(zap.String("layer", "admin"), zap.String("method", "Authenticate"))

	if subtle.ConstantTimeCompare([]byte(password), []byte(Secret)) != 1 {
		log.Warn("admin login rejected")
		return false, nil
	}

	if err := s.store.Set(ctx, SlotKey, authenticated); err != nil {
		log.Error("failed to persist admin flag", zap.Error(err))
		return false, fmt.Errorf("%w: %w", ErrFailedSession, err)
	}

	log.Info("admin logged in")
	return true, nil
}

func (s *Session) IsAuthenticated(ctx context.Context) (bool, error) {
	v, ok, err := s.store.Get(ctx, SlotKey)
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrFailedSession, err)
	}
	return ok && v == authenticated, nil
}

func (s *Session) LogOut(ctx context.Context) error {
	if err := s.store.Delete(ctx, SlotKey); err != nil {
		return fmt.Errorf("%w: %w", ErrFailedSession, err)
	}
	return nil
}
