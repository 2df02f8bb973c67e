package message

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"parley/internal/db"
	"parley/internal/proto"
)

func newTestService(t *testing.T) (Service, int64) {
	t.Helper()
	q := db.New(db.SetupTestDB(t))
	sess, err := q.CreateSession(context.Background(), db.CreateSessionParams{
		ID:    999,
		Title: "test session",
		Tags:  "[]",
	})
	require.NoError(t, err)
	return NewService(q), sess.ID
}

func TestCreate(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, sessionID := newTestService(t)

	msg, err := svc.Create(ctx, sessionID, CreateParams{
		Role:     proto.User,
		Parts:    []proto.ContentPart{proto.TextContent{Text: "hello"}},
		Model:    "tiny",
		Provider: "local",
		Attachments: []proto.Attachment{{
			FileName: "notes.txt",
			MimeType: "text/plain",
			Content:  []byte("attached"),
		}},
	})
	require.NoError(t, err)
	assert.Positive(t, msg.ID)
	assert.Equal(t, sessionID, msg.SessionID)
	assert.Equal(t, "hello", msg.Content().Text)
	assert.Equal(t, "tiny", msg.Model)

	require.Len(t, msg.Attachments, 1)
	assert.Equal(t, Checksum([]byte("attached")), msg.Attachments[0].Checksum)

	got, err := svc.Get(ctx, msg.ID)
	require.NoError(t, err)
	assert.Equal(t, msg, got)

	t.Run("invalid session id", func(t *testing.T) {
		_, err := svc.Create(ctx, 0, CreateParams{Role: proto.User})
		assert.ErrorIs(t, err, proto.ErrInvalidID)
	})

	t.Run("strips attachments on non-user messages", func(t *testing.T) {
		msg, err := svc.Create(ctx, sessionID, CreateParams{
			Role:        proto.Assistant,
			Parts:       []proto.ContentPart{proto.TextContent{Text: "hi"}},
			Attachments: []proto.Attachment{{FileName: "x", Content: []byte("y")}},
		})
		require.NoError(t, err)
		assert.Empty(t, msg.Attachments)
	})
}

func TestUpdate(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, sessionID := newTestService(t)

	msg, err := svc.Create(ctx, sessionID, CreateParams{
		Role:  proto.Assistant,
		Parts: []proto.ContentPart{proto.TextContent{Text: "partial"}},
	})
	require.NoError(t, err)
	assert.False(t, msg.IsFinished())

	msg.AppendContent(" answer")
	msg.AddFinish(proto.FinishReasonEndTurn, "", "")
	require.NoError(t, svc.Update(ctx, msg))

	got, err := svc.Get(ctx, msg.ID)
	require.NoError(t, err)
	assert.Equal(t, "partial answer", got.Content().Text)
	assert.True(t, got.IsFinished())
	assert.Equal(t, proto.FinishReasonEndTurn, got.FinishReason())
	assert.NotZero(t, got.FinishedAt)
	// finished_at uses the same unit as created_at, UTC milliseconds.
	assert.GreaterOrEqual(t, got.FinishedAt, got.CreatedAt)
}

func TestToolCallRoundTrip(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, sessionID := newTestService(t)

	msg, err := svc.Create(ctx, sessionID, CreateParams{Role: proto.Assistant})
	require.NoError(t, err)

	msg.AddToolCall(proto.ToolCall{ID: "call_1", Name: "search", Input: `{"q":"weather"}`})
	msg.AddToolResult(proto.ToolResult{ToolCallID: "call_1", Name: "search", Content: "sunny"})
	require.NoError(t, svc.Update(ctx, msg))

	got, err := svc.Get(ctx, msg.ID)
	require.NoError(t, err)
	require.Len(t, got.ToolCalls(), 1)
	assert.Equal(t, "call_1", got.ToolCalls()[0].ID)
	require.Len(t, got.ToolResults(), 1)
	assert.Equal(t, "sunny", got.ToolResults()[0].Content)
}

func TestList(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, sessionID := newTestService(t)

	for i := range 3 {
		_, err := svc.Create(ctx, sessionID, CreateParams{
			Role:  proto.User,
			Parts: []proto.ContentPart{proto.TextContent{Text: string(rune('a' + i))}},
		})
		require.NoError(t, err)
	}

	messages, err := svc.List(ctx, sessionID)
	require.NoError(t, err)
	require.Len(t, messages, 3)

	texts := make([]string, len(messages))
	for i, m := range messages {
		texts[i] = m.Content().Text
	}
	assert.ElementsMatch(t, []string{"a", "b", "c"}, texts)

	for i := 1; i < len(messages); i++ {
		assert.GreaterOrEqual(t, messages[i].CreatedAt, messages[i-1].CreatedAt)
	}
}

func TestDelete(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, sessionID := newTestService(t)

	msg, err := svc.Create(ctx, sessionID, CreateParams{Role: proto.User})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, msg.ID))

	_, err = svc.Get(ctx, msg.ID)
	assert.ErrorIs(t, err, proto.ErrNotFound)
}

func TestDeleteSessionMessages(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, sessionID := newTestService(t)

	for range 2 {
		_, err := svc.Create(ctx, sessionID, CreateParams{Role: proto.User})
		require.NoError(t, err)
	}

	require.NoError(t, svc.DeleteSessionMessages(ctx, sessionID))

	messages, err := svc.List(ctx, sessionID)
	require.NoError(t, err)
	assert.Empty(t, messages)
}

func TestChecksumStable(t *testing.T) {
	t.Parallel()
	assert.Equal(t, Checksum([]byte("abc")), Checksum([]byte("abc")))
	assert.NotEqual(t, Checksum([]byte("abc")), Checksum([]byte("abd")))
	assert.Len(t, Checksum(nil), 16)
}
