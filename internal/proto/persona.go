package proto

import "time"

// Persona is a reusable LLM persona: a named system prompt plus the sampling
// parameters and default model it should run with. Names are unique.
type Persona struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	Description  string  `json:"description,omitempty"`
	SystemPrompt string  `json:"system_prompt"`
	Provider     string  `json:"provider,omitempty"`
	Model        string  `json:"model,omitempty"`
	Temperature  float64 `json:"temperature"`
	TopP         float64 `json:"top_p"`
	MaxTokens    int64   `json:"max_tokens"`
	CreatedAt    int64   `json:"created_at"`
	UpdatedAt    int64   `json:"updated_at"`
}

func (p Persona) Created() time.Time { return Time(p.CreatedAt) }
func (p Persona) Updated() time.Time { return Time(p.UpdatedAt) }
