package proto

import (
	"time"

	"github.com/charmbracelet/catwalk/pkg/catwalk"
)

// Provider is a configured API endpoint for an LLM backend: where to reach
// it, how to authenticate, and how hard the app may lean on it.
type Provider struct {
	ID             int64  `json:"id"`
	Name           string `json:"name"`
	Type           string `json:"type,omitempty"`
	BaseURL        string `json:"base_url"`
	APIKey         string `json:"api_key,omitempty"`
	MaxConcurrency int64  `json:"max_concurrency"`
	TimeoutSeconds int64  `json:"timeout_seconds"`
	Disabled       bool   `json:"disabled,omitempty"`
	CreatedAt      int64  `json:"created_at"`
	UpdatedAt      int64  `json:"updated_at"`
}

func (p Provider) Created() time.Time { return Time(p.CreatedAt) }
func (p Provider) Updated() time.Time { return Time(p.UpdatedAt) }

// CachedModel is one entry of a provider's model catalog, cached locally so
// the app can populate pickers without hitting the network.
type CachedModel struct {
	ProviderID       int64   `json:"provider_id"`
	ModelID          string  `json:"model_id"`
	Name             string  `json:"name"`
	ContextWindow    int64   `json:"context_window"`
	DefaultMaxTokens int64   `json:"default_max_tokens"`
	CostPer1MIn      float64 `json:"cost_per_1m_in"`
	CostPer1MOut     float64 `json:"cost_per_1m_out"`
	CanReason        bool    `json:"can_reason,omitempty"`
	SupportsImages   bool    `json:"supports_attachments,omitempty"`
	CachedAt         int64   `json:"cached_at"`
}

// FromCatwalk converts a catalog model as served by catwalk into the locally
// cached representation.
func FromCatwalk(providerID int64, m catwalk.Model) CachedModel {
	return CachedModel{
		ProviderID:       providerID,
		ModelID:          m.ID,
		Name:             m.Name,
		ContextWindow:    m.ContextWindow,
		DefaultMaxTokens: m.DefaultMaxTokens,
		CostPer1MIn:      m.CostPer1MIn,
		CostPer1MOut:     m.CostPer1MOut,
		CanReason:        m.CanReason,
		SupportsImages:   m.SupportsImages,
	}
}

// Catwalk converts a cached model back into the catwalk representation.
func (m CachedModel) Catwalk() catwalk.Model {
	return catwalk.Model{
		ID:               m.ModelID,
		Name:             m.Name,
		ContextWindow:    m.ContextWindow,
		DefaultMaxTokens: m.DefaultMaxTokens,
		CostPer1MIn:      m.CostPer1MIn,
		CostPer1MOut:     m.CostPer1MOut,
		CanReason:        m.CanReason,
		SupportsImages:   m.SupportsImages,
	}
}
