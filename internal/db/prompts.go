package db

import "context"

const promptDefColumns = `id, name, description, content, created_at, updated_at`

func scanPromptDef(row interface{ Scan(...any) error }) (PromptDef, error) {
	var p PromptDef
	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Description,
		&p.Content,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	return p, err
}

type CreatePromptDefParams struct {
	ID          int64
	Name        string
	Description string
	Content     string
}

func (q *Queries) CreatePromptDef(ctx context.Context, arg CreatePromptDefParams) (PromptDef, error) {
	now := nowMillis()
	row := q.db.QueryRowContext(ctx, `
		INSERT INTO prompt_defs (id, name, description, content, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		RETURNING `+promptDefColumns,
		arg.ID, arg.Name, arg.Description, arg.Content, now, now,
	)
	return scanPromptDef(row)
}

func (q *Queries) GetPromptDef(ctx context.Context, id int64) (PromptDef, error) {
	row := q.db.QueryRowContext(ctx, `
		SELECT `+promptDefColumns+` FROM prompt_defs WHERE id = ?`, id)
	return scanPromptDef(row)
}

func (q *Queries) GetPromptDefByName(ctx context.Context, name string) (PromptDef, error) {
	row := q.db.QueryRowContext(ctx, `
		SELECT `+promptDefColumns+` FROM prompt_defs WHERE name = ?`, name)
	return scanPromptDef(row)
}

func (q *Queries) PromptDefExists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := q.db.QueryRowContext(ctx, `
		SELECT EXISTS (SELECT 1 FROM prompt_defs WHERE id = ?)`, id).Scan(&exists)
	return exists, err
}

func (q *Queries) ListPromptDefs(ctx context.Context) ([]PromptDef, error) {
	rows, err := q.db.QueryContext(ctx, `
		SELECT `+promptDefColumns+` FROM prompt_defs ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var defs []PromptDef
	for rows.Next() {
		p, err := scanPromptDef(rows)
		if err != nil {
			return nil, err
		}
		defs = append(defs, p)
	}
	return defs, rows.Err()
}

type UpdatePromptDefParams struct {
	ID          int64
	Name        string
	Description string
	Content     string
}

func (q *Queries) UpdatePromptDef(ctx context.Context, arg UpdatePromptDefParams) (PromptDef, error) {
	row := q.db.QueryRowContext(ctx, `
		UPDATE prompt_defs
		SET name = ?, description = ?, content = ?, updated_at = ?
		WHERE id = ?
		RETURNING `+promptDefColumns,
		arg.Name, arg.Description, arg.Content, nowMillis(), arg.ID,
	)
	return scanPromptDef(row)
}

func (q *Queries) DeletePromptDef(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, `DELETE FROM prompt_defs WHERE id = ?`, id)
	return err
}
