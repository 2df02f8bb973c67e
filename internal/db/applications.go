package db

import "context"

const applicationColumns = `id, name, token, version, created_at, updated_at`

func scanApplication(row interface{ Scan(...any) error }) (Application, error) {
	var a Application
	err := row.Scan(
		&a.ID,
		&a.Name,
		&a.Token,
		&a.Version,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	return a, err
}

type CreateApplicationParams struct {
	ID      int64
	Name    string
	Token   string
	Version string
}

func (q *Queries) CreateApplication(ctx context.Context, arg CreateApplicationParams) (Application, error) {
	now := nowMillis()
	row := q.db.QueryRowContext(ctx, `
		INSERT INTO applications (id, name, token, version, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		RETURNING `+applicationColumns,
		arg.ID, arg.Name, arg.Token, arg.Version, now, now,
	)
	return scanApplication(row)
}

func (q *Queries) GetApplication(ctx context.Context, id int64) (Application, error) {
	row := q.db.QueryRowContext(ctx, `
		SELECT `+applicationColumns+` FROM applications WHERE id = ?`, id)
	return scanApplication(row)
}

func (q *Queries) GetApplicationByToken(ctx context.Context, token string) (Application, error) {
	row := q.db.QueryRowContext(ctx, `
		SELECT `+applicationColumns+` FROM applications WHERE token = ?`, token)
	return scanApplication(row)
}

func (q *Queries) ApplicationExists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := q.db.QueryRowContext(ctx, `
		SELECT EXISTS (SELECT 1 FROM applications WHERE id = ?)`, id).Scan(&exists)
	return exists, err
}

func (q *Queries) ListApplications(ctx context.Context) ([]Application, error) {
	rows, err := q.db.QueryContext(ctx, `
		SELECT `+applicationColumns+` FROM applications ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var apps []Application
	for rows.Next() {
		a, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		apps = append(apps, a)
	}
	return apps, rows.Err()
}

// DeleteApplication removes the application; its key-value rows cascade.
func (q *Queries) DeleteApplication(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, `DELETE FROM applications WHERE id = ?`, id)
	return err
}

// Key-value plugin storage, namespaced per application.

func (q *Queries) SetAppValue(ctx context.Context, appID int64, key, value string) error {
	_, err := q.db.ExecContext(ctx, `
		INSERT INTO app_storage (app_id, key, value, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (app_id, key) DO UPDATE SET
			value = excluded.value,
			updated_at = excluded.updated_at`,
		appID, key, value, nowMillis(),
	)
	return err
}

func (q *Queries) GetAppValue(ctx context.Context, appID int64, key string) (string, error) {
	var value string
	err := q.db.QueryRowContext(ctx, `
		SELECT value FROM app_storage WHERE app_id = ? AND key = ?`, appID, key).Scan(&value)
	return value, err
}

func (q *Queries) ListAppKeys(ctx context.Context, appID int64) ([]string, error) {
	rows, err := q.db.QueryContext(ctx, `
		SELECT key FROM app_storage WHERE app_id = ? ORDER BY key ASC`, appID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, err
		}
		keys = append(keys, key)
	}
	return keys, rows.Err()
}

func (q *Queries) DeleteAppValue(ctx context.Context, appID int64, key string) error {
	_, err := q.db.ExecContext(ctx, `
		DELETE FROM app_storage WHERE app_id = ? AND key = ?`, appID, key)
	return err
}

func (q *Queries) DeleteAppValues(ctx context.Context, appID int64) error {
	_, err := q.db.ExecContext(ctx, `DELETE FROM app_storage WHERE app_id = ?`, appID)
	return err
}
