package db

import "context"

const personaColumns = `id, name, description, system_prompt, provider, model, temperature, top_p, max_tokens, created_at, updated_at`

func scanPersona(row interface{ Scan(...any) error }) (Persona, error) {
	var p Persona
	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Description,
		&p.SystemPrompt,
		&p.Provider,
		&p.Model,
		&p.Temperature,
		&p.TopP,
		&p.MaxTokens,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	return p, err
}

type CreatePersonaParams struct {
	ID           int64
	Name         string
	Description  string
	SystemPrompt string
	Provider     string
	Model        string
	Temperature  float64
	TopP         float64
	MaxTokens    int64
}

func (q *Queries) CreatePersona(ctx context.Context, arg CreatePersonaParams) (Persona, error) {
	now := nowMillis()
	row := q.db.QueryRowContext(ctx, `
		INSERT INTO personas (id, name, description, system_prompt, provider, model, temperature, top_p, max_tokens, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING `+personaColumns,
		arg.ID, arg.Name, arg.Description, arg.SystemPrompt, arg.Provider, arg.Model, arg.Temperature, arg.TopP, arg.MaxTokens, now, now,
	)
	return scanPersona(row)
}

func (q *Queries) GetPersona(ctx context.Context, id int64) (Persona, error) {
	row := q.db.QueryRowContext(ctx, `
		SELECT `+personaColumns+` FROM personas WHERE id = ?`, id)
	return scanPersona(row)
}

func (q *Queries) GetPersonaByName(ctx context.Context, name string) (Persona, error) {
	row := q.db.QueryRowContext(ctx, `
		SELECT `+personaColumns+` FROM personas WHERE name = ?`, name)
	return scanPersona(row)
}

func (q *Queries) PersonaExists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := q.db.QueryRowContext(ctx, `
		SELECT EXISTS (SELECT 1 FROM personas WHERE id = ?)`, id).Scan(&exists)
	return exists, err
}

func (q *Queries) ListPersonas(ctx context.Context) ([]Persona, error) {
	rows, err := q.db.QueryContext(ctx, `
		SELECT `+personaColumns+` FROM personas ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var personas []Persona
	for rows.Next() {
		p, err := scanPersona(rows)
		if err != nil {
			return nil, err
		}
		personas = append(personas, p)
	}
	return personas, rows.Err()
}

type UpdatePersonaParams struct {
	ID           int64
	Name         string
	Description  string
	SystemPrompt string
	Provider     string
	Model        string
	Temperature  float64
	TopP         float64
	MaxTokens    int64
}

func (q *Queries) UpdatePersona(ctx context.Context, arg UpdatePersonaParams) (Persona, error) {
	row := q.db.QueryRowContext(ctx, `
		UPDATE personas
		SET name = ?, description = ?, system_prompt = ?, provider = ?, model = ?, temperature = ?, top_p = ?, max_tokens = ?, updated_at = ?
		WHERE id = ?
		RETURNING `+personaColumns,
		arg.Name, arg.Description, arg.SystemPrompt, arg.Provider, arg.Model, arg.Temperature, arg.TopP, arg.MaxTokens, nowMillis(), arg.ID,
	)
	return scanPersona(row)
}

func (q *Queries) DeletePersona(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, `DELETE FROM personas WHERE id = ?`, id)
	return err
}
