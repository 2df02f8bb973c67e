package db

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrationsApply(t *testing.T) {
	conn := SetupTestDB(t)

	version, err := SchemaVersion(context.Background(), conn)
	require.NoError(t, err)
	assert.Positive(t, version)

	// Migrate is idempotent.
	require.NoError(t, Migrate(context.Background(), conn))
}

func TestMessageCountTriggers(t *testing.T) {
	ctx := context.Background()
	q := New(SetupTestDB(t))

	sess, err := q.CreateSession(ctx, CreateSessionParams{ID: 1, Title: "triggers", Tags: "[]"})
	require.NoError(t, err)
	assert.Zero(t, sess.MessageCount)

	for i := int64(1); i <= 3; i++ {
		_, err := q.CreateMessage(ctx, CreateMessageParams{
			ID:          i,
			SessionID:   sess.ID,
			Role:        "user",
			Parts:       "[]",
			Attachments: "[]",
		})
		require.NoError(t, err)
	}

	sess, err = q.GetSession(ctx, sess.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 3, sess.MessageCount)

	require.NoError(t, q.DeleteMessage(ctx, 2))

	sess, err = q.GetSession(ctx, sess.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, sess.MessageCount)
}

func TestDeleteSessionCascades(t *testing.T) {
	ctx := context.Background()
	q := New(SetupTestDB(t))

	parent, err := q.CreateSession(ctx, CreateSessionParams{ID: 10, Title: "parent", Tags: "[]"})
	require.NoError(t, err)

	child, err := q.CreateSession(ctx, CreateSessionParams{
		ID:       11,
		ParentID: sql.NullInt64{Int64: parent.ID, Valid: true},
		Title:    "child",
		Tags:     "[]",
	})
	require.NoError(t, err)

	_, err = q.CreateMessage(ctx, CreateMessageParams{
		ID:          100,
		SessionID:   child.ID,
		Role:        "user",
		Parts:       "[]",
		Attachments: "[]",
	})
	require.NoError(t, err)

	require.NoError(t, q.DeleteSession(ctx, parent.ID))

	_, err = q.GetSession(ctx, child.ID)
	assert.ErrorIs(t, err, sql.ErrNoRows)

	_, err = q.GetMessage(ctx, 100)
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestDeleteProviderCascadesModels(t *testing.T) {
	ctx := context.Background()
	q := New(SetupTestDB(t))

	p, err := q.CreateProvider(ctx, CreateProviderParams{
		ID:             1,
		Name:           "local",
		BaseURL:        "http://localhost:8080/v1",
		MaxConcurrency: 2,
		TimeoutSeconds: 60,
	})
	require.NoError(t, err)

	require.NoError(t, q.InsertModel(ctx, InsertModelParams{
		ProviderID: p.ID,
		ModelID:    "tiny",
		Name:       "Tiny",
	}))

	require.NoError(t, q.DeleteProvider(ctx, p.ID))

	models, err := q.ListProviderModels(ctx, p.ID)
	require.NoError(t, err)
	assert.Empty(t, models)
}

func TestIsUniqueViolation(t *testing.T) {
	ctx := context.Background()
	q := New(SetupTestDB(t))

	_, err := q.CreatePersona(ctx, CreatePersonaParams{ID: 1, Name: "navi", SystemPrompt: "hey"})
	require.NoError(t, err)

	_, err = q.CreatePersona(ctx, CreatePersonaParams{ID: 2, Name: "navi", SystemPrompt: "listen"})
	require.Error(t, err)
	assert.True(t, IsUniqueViolation(err))

	assert.False(t, IsUniqueViolation(sql.ErrNoRows))
	assert.False(t, IsUniqueViolation(nil))
}
