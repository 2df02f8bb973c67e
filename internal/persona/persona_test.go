package persona

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"parley/internal/db"
	"parley/internal/proto"
)

func newTestService(t *testing.T) Service {
	t.Helper()
	return NewService(db.New(db.SetupTestDB(t)))
}

func TestCreateAndGet(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc := newTestService(t)

	created, err := svc.Create(ctx, Persona{
		Name:         "reviewer",
		Description:  "Code review assistant",
		SystemPrompt: "You review Go code.",
		Model:        "tiny",
		Temperature:  0.2,
		TopP:         0.9,
		MaxTokens:    4096,
	})
	require.NoError(t, err)
	assert.Positive(t, created.ID)

	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)

	byName, err := svc.GetByName(ctx, "reviewer")
	require.NoError(t, err)
	assert.Equal(t, created, byName)
}

func TestDuplicateName(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc := newTestService(t)

	_, err := svc.Create(ctx, Persona{Name: "navi", SystemPrompt: "hey"})
	require.NoError(t, err)

	_, err = svc.Create(ctx, Persona{Name: "navi", SystemPrompt: "listen"})
	assert.ErrorIs(t, err, proto.ErrConflict)
}

func TestListOrder(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc := newTestService(t)

	for _, name := range []string{"zeta", "alpha", "mid"} {
		_, err := svc.Create(ctx, Persona{Name: name, SystemPrompt: "p"})
		require.NoError(t, err)
	}

	personas, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, personas, 3)
	assert.Equal(t, "alpha", personas[0].Name)
	assert.Equal(t, "zeta", personas[2].Name)
}

func TestUpdate(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc := newTestService(t)

	created, err := svc.Create(ctx, Persona{Name: "draft", SystemPrompt: "v1"})
	require.NoError(t, err)

	created.SystemPrompt = "v2"
	created.Temperature = 0.7
	updated, err := svc.Update(ctx, created)
	require.NoError(t, err)
	assert.Equal(t, "v2", updated.SystemPrompt)
	assert.InDelta(t, 0.7, updated.Temperature, 1e-9)
}

func TestDelete(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc := newTestService(t)

	created, err := svc.Create(ctx, Persona{Name: "gone", SystemPrompt: "p"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, created.ID))

	_, err = svc.Get(ctx, created.ID)
	assert.ErrorIs(t, err, proto.ErrNotFound)
	_, err = svc.GetByName(ctx, "gone")
	assert.ErrorIs(t, err, proto.ErrNotFound)
}
