package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baharkarakas/inkwell/internal/models"
	"github.com/baharkarakas/inkwell/internal/storage"
)

func TestKV_GetSetRemove(t *testing.T) {
	ctx := context.Background()
	s, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	_, ok, err := s.Get(ctx, storage.TokenKey)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Set(ctx, storage.TokenKey, "a"))
	require.NoError(t, s.Set(ctx, storage.TokenKey, "b"))

	v, ok, err := s.Get(ctx, storage.TokenKey)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "b", v)

	require.NoError(t, s.Remove(ctx, storage.TokenKey))
	_, ok, err = s.Get(ctx, storage.TokenKey)
	require.NoError(t, err)
	assert.False(t, ok)

	// removing a missing key is not an error
	require.NoError(t, s.Remove(ctx, "never-set"))
}

func TestKV_PersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "inkwell.db")

	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, storage.Bootstrap(ctx, s, nil))
	require.NoError(t, s.Close())

	s, err = Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	users, err := storage.NewCollection[models.User](s, storage.UsersKey).Load(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "demo@example.com", users[0].Email)
}
