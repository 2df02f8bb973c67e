package library

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"parley/internal/db"
	"parley/internal/proto"
)

func newTestServices(t *testing.T) (ToolService, PromptService) {
	t.Helper()
	q := db.New(db.SetupTestDB(t))
	return NewToolService(q), NewPromptService(q)
}

func TestToolDefLifecycle(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	tools, _ := newTestServices(t)

	created, err := tools.Create(ctx, ToolDef{
		Name:        "get_weather",
		Description: "Current weather for a city",
		Schema:      `{"type":"object","properties":{"city":{"type":"string"}}}`,
		Enabled:     true,
	})
	require.NoError(t, err)
	assert.Positive(t, created.ID)
	assert.True(t, created.Enabled)

	byName, err := tools.GetByName(ctx, "get_weather")
	require.NoError(t, err)
	assert.Equal(t, created, byName)

	created.Enabled = false
	updated, err := tools.Update(ctx, created)
	require.NoError(t, err)
	assert.False(t, updated.Enabled)

	require.NoError(t, tools.Delete(ctx, created.ID))
	_, err = tools.Get(ctx, created.ID)
	assert.ErrorIs(t, err, proto.ErrNotFound)
}

func TestToolDefSchemaValidation(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	tools, _ := newTestServices(t)

	_, err := tools.Create(ctx, ToolDef{Name: "bad", Schema: `{"type":`})
	assert.Error(t, err)

	// No parameters is fine.
	_, err = tools.Create(ctx, ToolDef{Name: "ping", Enabled: true})
	assert.NoError(t, err)
}

func TestToolDefDuplicateName(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	tools, _ := newTestServices(t)

	_, err := tools.Create(ctx, ToolDef{Name: "dup"})
	require.NoError(t, err)
	_, err = tools.Create(ctx, ToolDef{Name: "dup"})
	assert.ErrorIs(t, err, proto.ErrConflict)
}

func TestPromptDefLifecycle(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	_, prompts := newTestServices(t)

	created, err := prompts.Create(ctx, PromptDef{
		Name:    "summarize",
		Content: "Summarize the following text:",
	})
	require.NoError(t, err)
	assert.Positive(t, created.ID)

	created.Content = "Summarize in one sentence:"
	updated, err := prompts.Update(ctx, created)
	require.NoError(t, err)
	assert.Equal(t, "Summarize in one sentence:", updated.Content)

	list, err := prompts.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)

	require.NoError(t, prompts.Delete(ctx, created.ID))
	_, err = prompts.GetByName(ctx, "summarize")
	assert.ErrorIs(t, err, proto.ErrNotFound)
}

func TestPromptDefDuplicateName(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	_, prompts := newTestServices(t)

	_, err := prompts.Create(ctx, PromptDef{Name: "dup", Content: "a"})
	require.NoError(t, err)
	_, err = prompts.Create(ctx, PromptDef{Name: "dup", Content: "b"})
	assert.ErrorIs(t, err, proto.ErrConflict)
}
