package admin

import (
	"context"
	"errors"
	"testing"

	"cym-store/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSession(t *testing.T) (*Session, storage.Store) {
	t.Helper()
	store, err := storage.Scope(storage.NewMemoryBackend(), "browser-1")
	require.NoError(t, err)
	return NewSession(store), store
}

func TestSession_Lifecycle(t *testing.T) {
	ctx := context.Background()
	s, store := newSession(t)

	ok, err := s.IsAuthenticated(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	granted, err := s.Authenticate(ctx, "admin123")
	require.NoError(t, err)
	assert.True(t, granted)

	ok, _ = s.IsAuthenticated(ctx)
	assert.True(t, ok)

	raw, found, _ := store.Get(ctx, SlotKey)
	assert.True(t, found)
	assert.Equal(t, "true", raw)

	require.NoError(t, s.LogOut(ctx))
	ok, _ = s.IsAuthenticated(ctx)
	assert.False(t, ok)

	_, found, _ = store.Get(ctx, SlotKey)
	assert.False(t, found)
}

func TestSession_WrongPasswordKeepsFlag(t *testing.T) {
	ctx := context.Background()

	t.Run("WhileLoggedOut", func(t *testing.T) {
		s, _ := newSession(t)

		for _, pw := range []string{"", "admin", "ADMIN123", "admin123 "} {
			granted, err := s.Authenticate(ctx, pw)
			require.NoError(t, err)
			assert.False(t, granted, pw)
		}

		ok, _ := s.IsAuthenticated(ctx)
		assert.False(t, ok)
	})

	t.Run("WhileLoggedIn", func(t *testing.T) {
		s, _ := newSession(t)
		_, err := s.Authenticate(ctx, Secret)
		require.NoError(t, err)

		granted, err := s.Authenticate(ctx, "nope")
		require.NoError(t, err)
		assert.False(t, granted)

		ok, _ := s.IsAuthenticated(ctx)
		assert.True(t, ok)
	})
}

func TestSession_IsolatedPerNamespace(t *testing.T) {
	ctx := context.Background()
	backend := storage.NewMemoryBackend()

	storeA, err := storage.Scope(backend, "browser-a")
	require.NoError(t, err)
	storeB, err := storage.Scope(backend, "browser-b")
	require.NoError(t, err)
	a, b := NewSession(storeA), NewSession(storeB)

	_, err = a.Authenticate(ctx, Secret)
	require.NoError(t, err)

	ok, _ := b.IsAuthenticated(ctx)
	assert.False(t, ok)
}

func TestSession_OnlyExactValueCounts(t *testing.T) {
	ctx := context.Background()
	s, store := newSession(t)

	require.NoError(t, store.Set(ctx, SlotKey, "yes"))
	ok, err := s.IsAuthenticated(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
}

type brokenStore struct{}

func (brokenStore) Get(context.Context, string) (string, bool, error) {
	return "", false, errors.New("down")
}
func (brokenStore) Set(context.Context, string, string) error { return errors.New("down") }
func (brokenStore) Delete(context.Context, string) error      { return errors.New("down") }

func TestSession_StorageFailure(t *testing.T) {
	ctx := context.Background()
	s := NewSession(brokenStore{})

	_, err := s.Authenticate(ctx, Secret)
	assert.ErrorIs(t, err, ErrFailedSession)

	_, err = s.IsAuthenticated(ctx)
	assert.ErrorIs(t, err, ErrFailedSession)

	assert.ErrorIs(t, s.LogOut(ctx), ErrFailedSession)
}
