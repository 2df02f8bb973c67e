package db

import (
	"context"
	"database/sql"
)

const sessionColumns = `id, parent_id, title, tags, message_count, prompt_tokens, completion_tokens, cost, pinned, created_at, updated_at`

func scanSession(row interface{ Scan(...any) error }) (Session, error) {
	var s Session
	err := row.Scan(
		&s.ID,
		&s.ParentID,
		&s.Title,
		&s.Tags,
		&s.MessageCount,
		&s.PromptTokens,
		&s.CompletionTokens,
		&s.Cost,
		&s.Pinned,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	return s, err
}

type CreateSessionParams struct {
	ID       int64
	ParentID sql.NullInt64
	Title    string
	Tags     string
}

func (q *Queries) CreateSession(ctx context.Context, arg CreateSessionParams) (Session, error) {
	now := nowMillis()
	row := q.db.QueryRowContext(ctx, `
		INSERT INTO sessions (id, parent_id, title, tags, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		RETURNING `+sessionColumns,
		arg.ID, arg.ParentID, arg.Title, arg.Tags, now, now,
	)
	return scanSession(row)
}

func (q *Queries) GetSession(ctx context.Context, id int64) (Session, error) {
	row := q.db.QueryRowContext(ctx, `
		SELECT `+sessionColumns+` FROM sessions WHERE id = ?`, id)
	return scanSession(row)
}

func (q *Queries) SessionExists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := q.db.QueryRowContext(ctx, `
		SELECT EXISTS (SELECT 1 FROM sessions WHERE id = ?)`, id).Scan(&exists)
	return exists, err
}

func (q *Queries) listSessions(ctx context.Context, query string, args ...any) ([]Session, error) {
	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []Session
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, s)
	}
	return sessions, rows.Err()
}

// ListRootSessions returns sessions without a parent, pinned first, newest
// activity on top.
func (q *Queries) ListRootSessions(ctx context.Context) ([]Session, error) {
	return q.listSessions(ctx, `
		SELECT `+sessionColumns+` FROM sessions
		WHERE parent_id IS NULL
		ORDER BY pinned DESC, updated_at DESC`)
}

func (q *Queries) ListChildSessions(ctx context.Context, parentID int64) ([]Session, error) {
	return q.listSessions(ctx, `
		SELECT `+sessionColumns+` FROM sessions
		WHERE parent_id = ?
		ORDER BY created_at ASC`, parentID)
}

type UpdateSessionParams struct {
	ID    int64
	Title string
	Tags  string
}

func (q *Queries) UpdateSession(ctx context.Context, arg UpdateSessionParams) (Session, error) {
	row := q.db.QueryRowContext(ctx, `
		UPDATE sessions
		SET title = ?, tags = ?, updated_at = ?
		WHERE id = ?
		RETURNING `+sessionColumns,
		arg.Title, arg.Tags, nowMillis(), arg.ID,
	)
	return scanSession(row)
}

func (q *Queries) SetSessionPinned(ctx context.Context, id int64, pinned bool) (Session, error) {
	row := q.db.QueryRowContext(ctx, `
		UPDATE sessions
		SET pinned = ?, updated_at = ?
		WHERE id = ?
		RETURNING `+sessionColumns,
		pinned, nowMillis(), id,
	)
	return scanSession(row)
}

type AddSessionUsageParams struct {
	ID               int64
	PromptTokens     int64
	CompletionTokens int64
	Cost             float64
}

// AddSessionUsage accumulates token counts and cost onto the session.
func (q *Queries) AddSessionUsage(ctx context.Context, arg AddSessionUsageParams) (Session, error) {
	row := q.db.QueryRowContext(ctx, `
		UPDATE sessions
		SET
			prompt_tokens = prompt_tokens + ?,
			completion_tokens = completion_tokens + ?,
			cost = cost + ?,
			updated_at = ?
		WHERE id = ?
		RETURNING `+sessionColumns,
		arg.PromptTokens, arg.CompletionTokens, arg.Cost, nowMillis(), arg.ID,
	)
	return scanSession(row)
}

// DeleteSession removes the session; children and messages go with it via
// the ON DELETE CASCADE foreign keys.
func (q *Queries) DeleteSession(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, `DELETE FROM sessions WHERE id = ?`, id)
	return err
}
