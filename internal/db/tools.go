package db

import "context"

const toolDefColumns = `id, name, description, schema, enabled, created_at, updated_at`

func scanToolDef(row interface{ Scan(...any) error }) (ToolDef, error) {
	var t ToolDef
	err := row.Scan(
		&t.ID,
		&t.Name,
		&t.Description,
		&t.Schema,
		&t.Enabled,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	return t, err
}

type CreateToolDefParams struct {
	ID          int64
	Name        string
	Description string
	Schema      string
	Enabled     int64
}

func (q *Queries) CreateToolDef(ctx context.Context, arg CreateToolDefParams) (ToolDef, error) {
	now := nowMillis()
	row := q.db.QueryRowContext(ctx, `
		INSERT INTO tool_defs (id, name, description, schema, enabled, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		RETURNING `+toolDefColumns,
		arg.ID, arg.Name, arg.Description, arg.Schema, arg.Enabled, now, now,
	)
	return scanToolDef(row)
}

func (q *Queries) GetToolDef(ctx context.Context, id int64) (ToolDef, error) {
	row := q.db.QueryRowContext(ctx, `
		SELECT `+toolDefColumns+` FROM tool_defs WHERE id = ?`, id)
	return scanToolDef(row)
}

func (q *Queries) GetToolDefByName(ctx context.Context, name string) (ToolDef, error) {
	row := q.db.QueryRowContext(ctx, `
		SELECT `+toolDefColumns+` FROM tool_defs WHERE name = ?`, name)
	return scanToolDef(row)
}

func (q *Queries) ToolDefExists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := q.db.QueryRowContext(ctx, `
		SELECT EXISTS (SELECT 1 FROM tool_defs WHERE id = ?)`, id).Scan(&exists)
	return exists, err
}

func (q *Queries) ListToolDefs(ctx context.Context) ([]ToolDef, error) {
	rows, err := q.db.QueryContext(ctx, `
		SELECT `+toolDefColumns+` FROM tool_defs ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var defs []ToolDef
	for rows.Next() {
		t, err := scanToolDef(rows)
		if err != nil {
			return nil, err
		}
		defs = append(defs, t)
	}
	return defs, rows.Err()
}

type UpdateToolDefParams struct {
	ID          int64
	Name        string
	Description string
	Schema      string
	Enabled     int64
}

func (q *Queries) UpdateToolDef(ctx context.Context, arg UpdateToolDefParams) (ToolDef, error) {
	row := q.db.QueryRowContext(ctx, `
		UPDATE tool_defs
		SET name = ?, description = ?, schema = ?, enabled = ?, updated_at = ?
		WHERE id = ?
		RETURNING `+toolDefColumns,
		arg.Name, arg.Description, arg.Schema, arg.Enabled, nowMillis(), arg.ID,
	)
	return scanToolDef(row)
}

func (q *Queries) DeleteToolDef(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, `DELETE FROM tool_defs WHERE id = ?`, id)
	return err
}
