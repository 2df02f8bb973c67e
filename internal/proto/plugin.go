package proto

import "time"

// Application is a plugin application registered with the app. Each one gets
// an opaque install token and its own key-value storage namespace.
type Application struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Token     string `json:"token"`
	Version   string `json:"version,omitempty"`
	CreatedAt int64  `json:"created_at"`
	UpdatedAt int64  `json:"updated_at"`
}

func (a Application) Created() time.Time { return Time(a.CreatedAt) }
func (a Application) Updated() time.Time { return Time(a.UpdatedAt) }

// ToolDef is a reusable tool definition a plugin exposes to the LLM: the
// tool's name, what it does, and the JSON schema of its parameters.
type ToolDef struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Schema      string `json:"schema"`
	Enabled     bool   `json:"enabled"`
	CreatedAt   int64  `json:"created_at"`
	UpdatedAt   int64  `json:"updated_at"`
}

// PromptDef is a reusable prompt template.
type PromptDef struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Content     string `json:"content"`
	CreatedAt   int64  `json:"created_at"`
	UpdatedAt   int64  `json:"updated_at"`
}
