package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryBackend(t *testing.T) {
	ctx := context.Background()
	b := NewMemoryBackend()

	t.Run("MissingKey", func(t *testing.T) {
		v, ok, err := b.Load(ctx, "s1", "cart")
		assert.NoError(t, err)
		assert.False(t, ok)
		assert.Empty(t, v)
	})

	t.Run("SaveLoadRemove", func(t *testing.T) {
		require.NoError(t, b.Save(ctx, "s1", "cart", "[]"))

		v, ok, err := b.Load(ctx, "s1", "cart")
		assert.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "[]", v)

		require.NoError(t, b.Remove(ctx, "s1", "cart"))
		_, ok, _ = b.Load(ctx, "s1", "cart")
		assert.False(t, ok)
	})

	t.Run("NamespacesAreIsolated", func(t *testing.T) {
		require.NoError(t, b.Save(ctx, "s1", "flag", "true"))

		_, ok, err := b.Load(ctx, "s2", "flag")
		assert.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestScope(t *testing.T) {
	ctx := context.Background()
	b := NewMemoryBackend()

	a, err := Scope(b, "session-a")
	require.NoError(t, err)
	other, err := Scope(b, "session-b")
	require.NoError(t, err)

	require.NoError(t, a.Set(ctx, "k", "v"))

	v, ok, err := a.Get(ctx, "k")
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v", v)

	_, ok, _ = other.Get(ctx, "k")
	assert.False(t, ok)

	require.NoError(t, a.Delete(ctx, "k"))
	_, ok, _ = a.Get(ctx, "k")
	assert.False(t, ok)

	_, err = Scope(b, "")
	assert.ErrorIs(t, err, ErrEmptyNamespace)
}

func TestPostgresBackend(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	ctx := context.Background()
	b := NewPostgresBackend(db)

	t.Run("LoadFound", func(t *testing.T) {
		mock.ExpectQuery("SELECT slot_value FROM session_slots").
			WithArgs("s1", "cym_cart").
			WillReturnRows(sqlmock.NewRows([]string{"slot_value"}).AddRow("[]"))

		v, ok, err := b.Load(ctx, "s1", "cym_cart")
		assert.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "[]", v)
	})

	t.Run("LoadMissing", func(t *testing.T) {
		mock.ExpectQuery("SELECT slot_value FROM session_slots").
			WithArgs("s1", "cym_cart").
			WillReturnRows(sqlmock.NewRows([]string{"slot_value"}))

		_, ok, err := b.Load(ctx, "s1", "cym_cart")
		assert.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("LoadError", func(t *testing.T) {
		mock.ExpectQuery("SELECT slot_value FROM session_slots").
			WillReturnError(errors.New("db down"))

		_, _, err := b.Load(ctx, "s1", "cym_cart")
		assert.Error(t, err)
	})

	t.Run("Save", func(t *testing.T) {
		mock.ExpectExec("INSERT INTO session_slots .* ON CONFLICT").
			WithArgs("s1", "cym_cart", "[]").
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, b.Save(ctx, "s1", "cym_cart", "[]"))
	})

	t.Run("Remove", func(t *testing.T) {
		mock.ExpectExec("DELETE FROM session_slots").
			WithArgs("s1", "cym_cart").
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, b.Remove(ctx, "s1", "cym_cart"))
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}
