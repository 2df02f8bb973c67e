package db

import (
	"context"
	"database/sql"
)

const messageColumns = `id, session_id, role, parts, attachments, model, provider, created_at, updated_at, finished_at`

func scanMessage(row interface{ Scan(...any) error }) (Message, error) {
	var m Message
	err := row.Scan(
		&m.ID,
		&m.SessionID,
		&m.Role,
		&m.Parts,
		&m.Attachments,
		&m.Model,
		&m.Provider,
		&m.CreatedAt,
		&m.UpdatedAt,
		&m.FinishedAt,
	)
	return m, err
}

type CreateMessageParams struct {
	ID          int64
	SessionID   int64
	Role        string
	Parts       string
	Attachments string
	Model       sql.NullString
	Provider    sql.NullString
}

func (q *Queries) CreateMessage(ctx context.Context, arg CreateMessageParams) (Message, error) {
	now := nowMillis()
	row := q.db.QueryRowContext(ctx, `
		INSERT INTO messages (id, session_id, role, parts, attachments, model, provider, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING `+messageColumns,
		arg.ID, arg.SessionID, arg.Role, arg.Parts, arg.Attachments, arg.Model, arg.Provider, now, now,
	)
	return scanMessage(row)
}

func (q *Queries) GetMessage(ctx context.Context, id int64) (Message, error) {
	row := q.db.QueryRowContext(ctx, `
		SELECT `+messageColumns+` FROM messages WHERE id = ?`, id)
	return scanMessage(row)
}

func (q *Queries) MessageExists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := q.db.QueryRowContext(ctx, `
		SELECT EXISTS (SELECT 1 FROM messages WHERE id = ?)`, id).Scan(&exists)
	return exists, err
}

func (q *Queries) ListMessagesBySession(ctx context.Context, sessionID int64) ([]Message, error) {
	rows, err := q.db.QueryContext(ctx, `
		SELECT `+messageColumns+` FROM messages
		WHERE session_id = ?
		ORDER BY created_at ASC, id ASC`, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []Message
	for rows.Next() {
		m, err := scanMessage(rows)
		if err != nil {
			return nil, err
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}

type UpdateMessageParams struct {
	ID         int64
	Parts      string
	FinishedAt sql.NullInt64
}

func (q *Queries) UpdateMessage(ctx context.Context, arg UpdateMessageParams) error {
	_, err := q.db.ExecContext(ctx, `
		UPDATE messages
		SET parts = ?, finished_at = ?, updated_at = ?
		WHERE id = ?`,
		arg.Parts, arg.FinishedAt, nowMillis(), arg.ID,
	)
	return err
}

func (q *Queries) DeleteMessage(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, `DELETE FROM messages WHERE id = ?`, id)
	return err
}

func (q *Queries) DeleteSessionMessages(ctx context.Context, sessionID int64) error {
	_, err := q.db.ExecContext(ctx, `DELETE FROM messages WHERE session_id = ?`, sessionID)
	return err
}
