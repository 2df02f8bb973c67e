package db

import "context"

const providerColumns = `id, name, type, base_url, api_key, max_concurrency, timeout_seconds, disabled, created_at, updated_at`

func scanProvider(row interface{ Scan(...any) error }) (Provider, error) {
	var p Provider
	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Type,
		&p.BaseURL,
		&p.APIKey,
		&p.MaxConcurrency,
		&p.TimeoutSeconds,
		&p.Disabled,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	return p, err
}

type CreateProviderParams struct {
	ID             int64
	Name           string
	Type           string
	BaseURL        string
	APIKey         string
	MaxConcurrency int64
	TimeoutSeconds int64
}

func (q *Queries) CreateProvider(ctx context.Context, arg CreateProviderParams) (Provider, error) {
	now := nowMillis()
	row := q.db.QueryRowContext(ctx, `
		INSERT INTO providers (id, name, type, base_url, api_key, max_concurrency, timeout_seconds, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING `+providerColumns,
		arg.ID, arg.Name, arg.Type, arg.BaseURL, arg.APIKey, arg.MaxConcurrency, arg.TimeoutSeconds, now, now,
	)
	return scanProvider(row)
}

func (q *Queries) GetProvider(ctx context.Context, id int64) (Provider, error) {
	row := q.db.QueryRowContext(ctx, `
		SELECT `+providerColumns+` FROM providers WHERE id = ?`, id)
	return scanProvider(row)
}

func (q *Queries) GetProviderByName(ctx context.Context, name string) (Provider, error) {
	row := q.db.QueryRowContext(ctx, `
		SELECT `+providerColumns+` FROM providers WHERE name = ?`, name)
	return scanProvider(row)
}

func (q *Queries) ProviderExists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := q.db.QueryRowContext(ctx, `
		SELECT EXISTS (SELECT 1 FROM providers WHERE id = ?)`, id).Scan(&exists)
	return exists, err
}

func (q *Queries) ListProviders(ctx context.Context) ([]Provider, error) {
	rows, err := q.db.QueryContext(ctx, `
		SELECT `+providerColumns+` FROM providers ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var providers []Provider
	for rows.Next() {
		p, err := scanProvider(rows)
		if err != nil {
			return nil, err
		}
		providers = append(providers, p)
	}
	return providers, rows.Err()
}

type UpdateProviderParams struct {
	ID             int64
	Name           string
	Type           string
	BaseURL        string
	APIKey         string
	MaxConcurrency int64
	TimeoutSeconds int64
	Disabled       int64
}

func (q *Queries) UpdateProvider(ctx context.Context, arg UpdateProviderParams) (Provider, error) {
	row := q.db.QueryRowContext(ctx, `
		UPDATE providers
		SET name = ?, type = ?, base_url = ?, api_key = ?, max_concurrency = ?, timeout_seconds = ?, disabled = ?, updated_at = ?
		WHERE id = ?
		RETURNING `+providerColumns,
		arg.Name, arg.Type, arg.BaseURL, arg.APIKey, arg.MaxConcurrency, arg.TimeoutSeconds, arg.Disabled, nowMillis(), arg.ID,
	)
	return scanProvider(row)
}

// DeleteProvider removes the provider; its cached models cascade.
func (q *Queries) DeleteProvider(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, `DELETE FROM providers WHERE id = ?`, id)
	return err
}

const modelColumns = `provider_id, model_id, name, context_window, default_max_tokens, cost_per_1m_in, cost_per_1m_out, can_reason, supports_images, cached_at`

func scanModel(row interface{ Scan(...any) error }) (Model, error) {
	var m Model
	err := row.Scan(
		&m.ProviderID,
		&m.ModelID,
		&m.Name,
		&m.ContextWindow,
		&m.DefaultMaxTokens,
		&m.CostPer1MIn,
		&m.CostPer1MOut,
		&m.CanReason,
		&m.SupportsImages,
		&m.CachedAt,
	)
	return m, err
}

type InsertModelParams struct {
	ProviderID       int64
	ModelID          string
	Name             string
	ContextWindow    int64
	DefaultMaxTokens int64
	CostPer1MIn      float64
	CostPer1MOut     float64
	CanReason        int64
	SupportsImages   int64
}

func (q *Queries) InsertModel(ctx context.Context, arg InsertModelParams) error {
	_, err := q.db.ExecContext(ctx, `
		INSERT INTO models (provider_id, model_id, name, context_window, default_max_tokens, cost_per_1m_in, cost_per_1m_out, can_reason, supports_images, cached_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		arg.ProviderID, arg.ModelID, arg.Name, arg.ContextWindow, arg.DefaultMaxTokens, arg.CostPer1MIn, arg.CostPer1MOut, arg.CanReason, arg.SupportsImages, nowMillis(),
	)
	return err
}

func (q *Queries) ListProviderModels(ctx context.Context, providerID int64) ([]Model, error) {
	rows, err := q.db.QueryContext(ctx, `
		SELECT `+modelColumns+` FROM models
		WHERE provider_id = ?
		ORDER BY model_id ASC`, providerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var models []Model
	for rows.Next() {
		m, err := scanModel(rows)
		if err != nil {
			return nil, err
		}
		models = append(models, m)
	}
	return models, rows.Err()
}

func (q *Queries) DeleteProviderModels(ctx context.Context, providerID int64) error {
	_, err := q.db.ExecContext(ctx, `DELETE FROM models WHERE provider_id = ?`, providerID)
	return err
}
