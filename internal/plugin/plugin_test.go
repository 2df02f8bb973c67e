package plugin

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"parley/internal/db"
	"parley/internal/proto"
)

func newTestService(t *testing.T) Service {
	t.Helper()
	return NewService(db.New(db.SetupTestDB(t)))
}

func TestRegister(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc := newTestService(t)

	app, err := svc.Register(ctx, "weather", "1.2.0")
	require.NoError(t, err)
	assert.Positive(t, app.ID)
	assert.Equal(t, "weather", app.Name)

	// The install token is a fresh UUID.
	_, err = uuid.Parse(app.Token)
	require.NoError(t, err)

	byToken, err := svc.GetByToken(ctx, app.Token)
	require.NoError(t, err)
	assert.Equal(t, app, byToken)

	_, err = svc.Register(ctx, "weather", "2.0.0")
	assert.ErrorIs(t, err, proto.ErrConflict)
}

func TestGetByTokenUnknown(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc := newTestService(t)

	_, err := svc.GetByToken(ctx, uuid.NewString())
	assert.ErrorIs(t, err, proto.ErrNotFound)
}

func TestKeyValueStorage(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc := newTestService(t)

	app, err := svc.Register(ctx, "notes", "")
	require.NoError(t, err)

	require.NoError(t, svc.Set(ctx, app.ID, "theme", "dark"))
	require.NoError(t, svc.Set(ctx, app.ID, "last_sync", "2026-08-27"))

	value, err := svc.Value(ctx, app.ID, "theme")
	require.NoError(t, err)
	assert.Equal(t, "dark", value)

	// Set overwrites.
	require.NoError(t, svc.Set(ctx, app.ID, "theme", "light"))
	value, err = svc.Value(ctx, app.ID, "theme")
	require.NoError(t, err)
	assert.Equal(t, "light", value)

	keys, err := svc.Keys(ctx, app.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"last_sync", "theme"}, keys)

	require.NoError(t, svc.DeleteValue(ctx, app.ID, "theme"))
	_, err = svc.Value(ctx, app.ID, "theme")
	assert.ErrorIs(t, err, proto.ErrNotFound)

	t.Run("namespaces are isolated", func(t *testing.T) {
		other, err := svc.Register(ctx, "other", "")
		require.NoError(t, err)

		keys, err := svc.Keys(ctx, other.ID)
		require.NoError(t, err)
		assert.Empty(t, keys)
	})

	t.Run("set on unknown app", func(t *testing.T) {
		assert.ErrorIs(t, svc.Set(ctx, app.ID+1, "k", "v"), proto.ErrNotFound)
	})
}

func TestClear(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc := newTestService(t)

	app, err := svc.Register(ctx, "cache", "")
	require.NoError(t, err)
	require.NoError(t, svc.Set(ctx, app.ID, "a", "1"))
	require.NoError(t, svc.Set(ctx, app.ID, "b", "2"))

	require.NoError(t, svc.Clear(ctx, app.ID))

	keys, err := svc.Keys(ctx, app.ID)
	require.NoError(t, err)
	assert.Empty(t, keys)
}

func TestUnregisterWipesStorage(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc := newTestService(t)

	app, err := svc.Register(ctx, "doomed", "")
	require.NoError(t, err)
	require.NoError(t, svc.Set(ctx, app.ID, "k", "v"))

	require.NoError(t, svc.Unregister(ctx, app.ID))

	_, err = svc.Get(ctx, app.ID)
	assert.ErrorIs(t, err, proto.ErrNotFound)

	// Re-registering the same name starts from an empty namespace.
	again, err := svc.Register(ctx, "doomed", "")
	require.NoError(t, err)
	keys, err := svc.Keys(ctx, again.ID)
	require.NoError(t, err)
	assert.Empty(t, keys)
}
