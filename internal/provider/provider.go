// Package provider stores configured LLM endpoints together with a locally
// cached model catalog per endpoint.
package provider

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/charmbracelet/catwalk/pkg/catwalk"

	"parley/internal/db"
	"parley/internal/ident"
	"parley/internal/log"
	"parley/internal/proto"
	"parley/internal/pubsub"
)

type (
	Provider    = proto.Provider
	CachedModel = proto.CachedModel
)

type Service interface {
	pubsub.Suscriber[Provider]
	Create(ctx context.Context, provider Provider) (Provider, error)
	Get(ctx context.Context, id int64) (Provider, error)
	GetByName(ctx context.Context, name string) (Provider, error)
	List(ctx context.Context) ([]Provider, error)
	Update(ctx context.Context, provider Provider) (Provider, error)
	Delete(ctx context.Context, id int64) error

	// SetCatalog atomically replaces the provider's cached model catalog.
	SetCatalog(ctx context.Context, providerID int64, models []catwalk.Model) error
	Catalog(ctx context.Context, providerID int64) ([]CachedModel, error)
}

type service struct {
	*pubsub.Broker[Provider]
	conn *sql.DB
	q    *db.Queries
}

// NewService needs the raw connection, not just the query surface, because
// catalog replacement runs in a transaction.
func NewService(conn *sql.DB) Service {
	return &service{
		Broker: pubsub.NewBroker[Provider](),
		conn:   conn,
		q:      db.New(conn),
	}
}

func (s *service) Create(ctx context.Context, provider Provider) (Provider, error) {
	id, err := ident.New(ctx, s.q.ProviderExists)
	if err != nil {
		return Provider{}, err
	}
	item, err := s.q.CreateProvider(ctx, db.CreateProviderParams{
		ID:             id,
		Name:           provider.Name,
		Type:           provider.Type,
		BaseURL:        provider.BaseURL,
		APIKey:         provider.APIKey,
		MaxConcurrency: provider.MaxConcurrency,
		TimeoutSeconds: provider.TimeoutSeconds,
	})
	if err != nil {
		return Provider{}, db.MapError(err)
	}
	created := fromDBItem(item)
	slog.Info("provider registered",
		"name", created.Name,
		"base_url", created.BaseURL,
		"api_key", log.MaskAPIKey(created.APIKey))
	s.Publish(pubsub.CreatedEvent, created)
	return created, nil
}

func (s *service) Get(ctx context.Context, id int64) (Provider, error) {
	if !ident.Valid(id) {
		return Provider{}, proto.ErrInvalidID
	}
	item, err := s.q.GetProvider(ctx, id)
	if err != nil {
		return Provider{}, db.MapError(err)
	}
	return fromDBItem(item), nil
}

func (s *service) GetByName(ctx context.Context, name string) (Provider, error) {
	item, err := s.q.GetProviderByName(ctx, name)
	if err != nil {
		return Provider{}, db.MapError(err)
	}
	return fromDBItem(item), nil
}

func (s *service) List(ctx context.Context) ([]Provider, error) {
	items, err := s.q.ListProviders(ctx)
	if err != nil {
		return nil, err
	}
	providers := make([]Provider, len(items))
	for i, item := range items {
		providers[i] = fromDBItem(item)
	}
	return providers, nil
}

func (s *service) Update(ctx context.Context, provider Provider) (Provider, error) {
	if !ident.Valid(provider.ID) {
		return Provider{}, proto.ErrInvalidID
	}
	disabled := int64(0)
	if provider.Disabled {
		disabled = 1
	}
	item, err := s.q.UpdateProvider(ctx, db.UpdateProviderParams{
		ID:             provider.ID,
		Name:           provider.Name,
		Type:           provider.Type,
		BaseURL:        provider.BaseURL,
		APIKey:         provider.APIKey,
		MaxConcurrency: provider.MaxConcurrency,
		TimeoutSeconds: provider.TimeoutSeconds,
		Disabled:       disabled,
	})
	if err != nil {
		return Provider{}, db.MapError(err)
	}
	updated := fromDBItem(item)
	s.Publish(pubsub.UpdatedEvent, updated)
	return updated, nil
}

func (s *service) Delete(ctx context.Context, id int64) error {
	provider, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.q.DeleteProvider(ctx, provider.ID); err != nil {
		return db.MapError(err)
	}
	s.Publish(pubsub.DeletedEvent, provider)
	return nil
}

func (s *service) SetCatalog(ctx context.Context, providerID int64, models []catwalk.Model) error {
	provider, err := s.Get(ctx, providerID)
	if err != nil {
		return err
	}

	tx, err := s.conn.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.q.WithTx(tx)
	if err := qtx.DeleteProviderModels(ctx, provider.ID); err != nil {
		return err
	}
	for _, model := range models {
		cached := proto.FromCatwalk(provider.ID, model)
		canReason := int64(0)
		if cached.CanReason {
			canReason = 1
		}
		supportsImages := int64(0)
		if cached.SupportsImages {
			supportsImages = 1
		}
		err := qtx.InsertModel(ctx, db.InsertModelParams{
			ProviderID:       cached.ProviderID,
			ModelID:          cached.ModelID,
			Name:             cached.Name,
			ContextWindow:    cached.ContextWindow,
			DefaultMaxTokens: cached.DefaultMaxTokens,
			CostPer1MIn:      cached.CostPer1MIn,
			CostPer1MOut:     cached.CostPer1MOut,
			CanReason:        canReason,
			SupportsImages:   supportsImages,
		})
		if err != nil {
			return db.MapError(err)
		}
	}
	if err := tx.Commit(); err != nil {
		return err
	}

	slog.Debug("model catalog refreshed", "provider", provider.Name, "models", len(models))
	s.Publish(pubsub.UpdatedEvent, provider)
	return nil
}

func (s *service) Catalog(ctx context.Context, providerID int64) ([]CachedModel, error) {
	if !ident.Valid(providerID) {
		return nil, proto.ErrInvalidID
	}
	items, err := s.q.ListProviderModels(ctx, providerID)
	if err != nil {
		return nil, err
	}
	models := make([]CachedModel, len(items))
	for i, item := range items {
		models[i] = CachedModel{
			ProviderID:       item.ProviderID,
			ModelID:          item.ModelID,
			Name:             item.Name,
			ContextWindow:    item.ContextWindow,
			DefaultMaxTokens: item.DefaultMaxTokens,
			CostPer1MIn:      item.CostPer1MIn,
			CostPer1MOut:     item.CostPer1MOut,
			CanReason:        item.CanReason != 0,
			SupportsImages:   item.SupportsImages != 0,
			CachedAt:         item.CachedAt,
		}
	}
	return models, nil
}

func fromDBItem(item db.Provider) Provider {
	return Provider{
		ID:             item.ID,
		Name:           item.Name,
		Type:           item.Type,
		BaseURL:        item.BaseURL,
		APIKey:         item.APIKey,
		MaxConcurrency: item.MaxConcurrency,
		TimeoutSeconds: item.TimeoutSeconds,
		Disabled:       item.Disabled != 0,
		CreatedAt:      item.CreatedAt,
		UpdatedAt:      item.UpdatedAt,
	}
}
