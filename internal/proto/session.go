package proto

import "time"

// Session is one conversation. Sessions form a hierarchy: a child session
// (spawned for a sub-task or summary) points at its parent through ParentID;
// root sessions have ParentID zero.
type Session struct {
	ID               int64    `json:"id"`
	ParentID         int64    `json:"parent_id,omitempty"`
	Title            string   `json:"title"`
	Tags             []string `json:"tags,omitempty"`
	MessageCount     int64    `json:"message_count"`
	PromptTokens     int64    `json:"prompt_tokens"`
	CompletionTokens int64    `json:"completion_tokens"`
	Cost             float64  `json:"cost"`
	Pinned           bool     `json:"pinned,omitempty"`
	CreatedAt        int64    `json:"created_at"`
	UpdatedAt        int64    `json:"updated_at"`
}

// IsRoot reports whether the session has no parent.
func (s Session) IsRoot() bool { return s.ParentID == 0 }

func (s Session) Created() time.Time { return Time(s.CreatedAt) }
func (s Session) Updated() time.Time { return Time(s.UpdatedAt) }

// Tokens returns the total token usage accumulated on the session.
func (s Session) Tokens() int64 { return s.PromptTokens + s.CompletionTokens }
