package db

import "context"

// Settings are stored as whole JSON documents, one row per document name.
// Path-level reads and writes happen in the settings service.

func (q *Queries) GetSettingsDoc(ctx context.Context, name string) (Setting, error) {
	var s Setting
	err := q.db.QueryRowContext(ctx, `
		SELECT name, doc, updated_at FROM settings WHERE name = ?`, name).
		Scan(&s.Name, &s.Doc, &s.UpdatedAt)
	return s, err
}

func (q *Queries) UpsertSettingsDoc(ctx context.Context, name, doc string) error {
	_, err := q.db.ExecContext(ctx, `
		INSERT INTO settings (name, doc, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT (name) DO UPDATE SET
			doc = excluded.doc,
			updated_at = excluded.updated_at`,
		name, doc, nowMillis(),
	)
	return err
}

func (q *Queries) DeleteSettingsDoc(ctx context.Context, name string) error {
	_, err := q.db.ExecContext(ctx, `DELETE FROM settings WHERE name = ?`, name)
	return err
}

func (q *Queries) ListSettingsDocs(ctx context.Context) ([]string, error) {
	rows, err := q.db.QueryContext(ctx, `SELECT name FROM settings ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}
