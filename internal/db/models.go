package db

import "database/sql"

// Row models. One struct per table, fields in column order. Timestamps are
// UTC Unix milliseconds.

type Session struct {
	ID               int64
	ParentID         sql.NullInt64
	Title            string
	Tags             string
	MessageCount     int64
	PromptTokens     int64
	CompletionTokens int64
	Cost             float64
	Pinned           int64
	CreatedAt        int64
	UpdatedAt        int64
}

type Message struct {
	ID          int64
	SessionID   int64
	Role        string
	Parts       string
	Attachments string
	Model       sql.NullString
	Provider    sql.NullString
	CreatedAt   int64
	UpdatedAt   int64
	FinishedAt  sql.NullInt64
}

type Persona struct {
	ID           int64
	Name         string
	Description  string
	SystemPrompt string
	Provider     string
	Model        string
	Temperature  float64
	TopP         float64
	MaxTokens    int64
	CreatedAt    int64
	UpdatedAt    int64
}

type Provider struct {
	ID             int64
	Name           string
	Type           string
	BaseURL        string
	APIKey         string
	MaxConcurrency int64
	TimeoutSeconds int64
	Disabled       int64
	CreatedAt      int64
	UpdatedAt      int64
}

type Model struct {
	ProviderID       int64
	ModelID          string
	Name             string
	ContextWindow    int64
	DefaultMaxTokens int64
	CostPer1MIn      float64
	CostPer1MOut     float64
	CanReason        int64
	SupportsImages   int64
	CachedAt         int64
}

type Application struct {
	ID        int64
	Name      string
	Token     string
	Version   string
	CreatedAt int64
	UpdatedAt int64
}

type AppStorage struct {
	AppID     int64
	Key       string
	Value     string
	UpdatedAt int64
}

type ToolDef struct {
	ID          int64
	Name        string
	Description string
	Schema      string
	Enabled     int64
	CreatedAt   int64
	UpdatedAt   int64
}

type PromptDef struct {
	ID          int64
	Name        string
	Description string
	Content     string
	CreatedAt   int64
	UpdatedAt   int64
}

type Setting struct {
	Name      string
	Doc       string
	UpdatedAt int64
}
