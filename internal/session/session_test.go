package session

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

func TestCreate(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc := newTestService(t)

	sess, err := svc.Create(ctx, CreateParams{Title: "New chat", Tags: []string{"work"}})
	require.NoError(t, err)
	assert.Positive(t, sess.ID)
	assert.True(t, sess.IsRoot())
	assert.Equal(t, "New chat", sess.Title)
	assert.Equal(t, []string{"work"}, sess.Tags)
	assert.False(t, sess.Created().IsZero())

	got, err := svc.Get(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, sess, got)
}

func TestCreateChild(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc := newTestService(t)

	parent, err := svc.Create(ctx, CreateParams{Title: "parent"})
	require.NoError(t, err)

	child, err := svc.CreateChild(ctx, parent.ID, CreateParams{Title: "sub-task"})
	require.NoError(t, err)
	assert.Equal(t, parent.ID, child.ParentID)
	assert.False(t, child.IsRoot())

	t.Run("missing parent", func(t *testing.T) {
		_, err := svc.CreateChild(ctx, parent.ID+1, CreateParams{Title: "orphan"})
		assert.ErrorIs(t, err, proto.ErrNotFound)
	})

	t.Run("invalid parent id", func(t *testing.T) {
		_, err := svc.CreateChild(ctx, 0, CreateParams{Title: "orphan"})
		assert.ErrorIs(t, err, proto.ErrInvalidID)

		_, err = svc.CreateChild(ctx, -5, CreateParams{Title: "orphan"})
		assert.ErrorIs(t, err, proto.ErrInvalidID)
	})
}

func TestGetErrors(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc := newTestService(t)

	_, err := svc.Get(ctx, 42)
	assert.ErrorIs(t, err, proto.ErrNotFound)

	_, err = svc.Get(ctx, 0)
	assert.ErrorIs(t, err, proto.ErrInvalidID)
}

func TestListRoots(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc := newTestService(t)

	first, err := svc.Create(ctx, CreateParams{Title: "first"})
	require.NoError(t, err)
	second, err := svc.Create(ctx, CreateParams{Title: "second"})
	require.NoError(t, err)

	// Children never show up in the root listing.
	_, err = svc.CreateChild(ctx, first.ID, CreateParams{Title: "child"})
	require.NoError(t, err)

	roots, err := svc.ListRoots(ctx)
	require.NoError(t, err)
	require.Len(t, roots, 2)

	// Pinned sessions float to the top regardless of recency.
	_, err = svc.SetPinned(ctx, first.ID, true)
	require.NoError(t, err)
	_, err = svc.Update(ctx, second)
	require.NoError(t, err)

	roots, err = svc.ListRoots(ctx)
	require.NoError(t, err)
	require.Len(t, roots, 2)
	assert.Equal(t, first.ID, roots[0].ID)
	assert.True(t, roots[0].Pinned)
}

func TestListChildren(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc := newTestService(t)

	parent, err := svc.Create(ctx, CreateParams{Title: "parent"})
	require.NoError(t, err)

	for range 3 {
		_, err := svc.CreateChild(ctx, parent.ID, CreateParams{Title: "child"})
		require.NoError(t, err)
	}

	children, err := svc.ListChildren(ctx, parent.ID)
	require.NoError(t, err)
	assert.Len(t, children, 3)
	for _, child := range children {
		assert.Equal(t, parent.ID, child.ParentID)
	}
}

func TestUpdate(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc := newTestService(t)

	sess, err := svc.Create(ctx, CreateParams{Title: "draft"})
	require.NoError(t, err)

	sess.Title = "final"
	sess.Tags = []string{"a", "b"}
	updated, err := svc.Update(ctx, sess)
	require.NoError(t, err)
	assert.Equal(t, "final", updated.Title)
	assert.Equal(t, []string{"a", "b"}, updated.Tags)
	assert.GreaterOrEqual(t, updated.UpdatedAt, sess.UpdatedAt)
}

func TestAddUsage(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc := newTestService(t)

	sess, err := svc.Create(ctx, CreateParams{Title: "usage"})
	require.NoError(t, err)

	_, err = svc.AddUsage(ctx, sess.ID, Usage{PromptTokens: 100, CompletionTokens: 40, Cost: 0.002})
	require.NoError(t, err)
	updated, err := svc.AddUsage(ctx, sess.ID, Usage{PromptTokens: 50, CompletionTokens: 10, Cost: 0.001})
	require.NoError(t, err)

	assert.EqualValues(t, 150, updated.PromptTokens)
	assert.EqualValues(t, 50, updated.CompletionTokens)
	assert.InDelta(t, 0.003, updated.Cost, 1e-9)
	assert.EqualValues(t, 200, updated.Tokens())
}

func TestDelete(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc := newTestService(t)

	sess, err := svc.Create(ctx, CreateParams{Title: "doomed"})
	require.NoError(t, err)
	child, err := svc.CreateChild(ctx, sess.ID, CreateParams{Title: "also doomed"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, sess.ID))

	_, err = svc.Get(ctx, sess.ID)
	assert.ErrorIs(t, err, proto.ErrNotFound)
	_, err = svc.Get(ctx, child.ID)
	assert.ErrorIs(t, err, proto.ErrNotFound)

	assert.ErrorIs(t, svc.Delete(ctx, sess.ID), proto.ErrNotFound)
}

func TestEvents(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	svc := newTestService(t)

	events := svc.Subscribe(ctx)

	sess, err := svc.Create(ctx, CreateParams{Title: "watched"})
	require.NoError(t, err)

	event := <-events
	assert.EqualValues(t, "created", event.Type)
	assert.Equal(t, sess.ID, event.Payload.ID)

	require.NoError(t, svc.Delete(ctx, sess.ID))
	event = <-events
	assert.EqualValues(t, "deleted", event.Type)
}
