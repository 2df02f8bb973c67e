// Package persona stores reusable assistant personas, each a named system
// prompt with default sampling parameters.
package persona

import (
	"context"

	"parley/internal/db"
	"parley/internal/ident"
	"parley/internal/proto"
	"parley/internal/pubsub"
)

type Persona = proto.Persona

type Service interface {
	pubsub.Suscriber[Persona]
	Create(ctx context.Context, persona Persona) (Persona, error)
	Get(ctx context.Context, id int64) (Persona, error)
	GetByName(ctx context.Context, name string) (Persona, error)
	List(ctx context.Context) ([]Persona, error)
	Update(ctx context.Context, persona Persona) (Persona, error)
	Delete(ctx context.Context, id int64) error
}

type service struct {
	*pubsub.Broker[Persona]
	q db.Querier
}

func NewService(q db.Querier) Service {
	return &service{
		Broker: pubsub.NewBroker[Persona](),
		q:      q,
	}
}

func (s *service) Create(ctx context.Context, persona Persona) (Persona, error) {
	id, err := ident.New(ctx, s.q.PersonaExists)
	if err != nil {
		return Persona{}, err
	}
	item, err := s.q.CreatePersona(ctx, db.CreatePersonaParams{
		ID:           id,
		Name:         persona.Name,
		Description:  persona.Description,
		SystemPrompt: persona.SystemPrompt,
		Provider:     persona.Provider,
		Model:        persona.Model,
		Temperature:  persona.Temperature,
		TopP:         persona.TopP,
		MaxTokens:    persona.MaxTokens,
	})
	if err != nil {
		return Persona{}, db.MapError(err)
	}
	created := fromDBItem(item)
	s.Publish(pubsub.CreatedEvent, created)
	return created, nil
}

func (s *service) Get(ctx context.Context, id int64) (Persona, error) {
	if !ident.Valid(id) {
		return Persona{}, proto.ErrInvalidID
	}
	item, err := s.q.GetPersona(ctx, id)
	if err != nil {
		return Persona{}, db.MapError(err)
	}
	return fromDBItem(item), nil
}

func (s *service) GetByName(ctx context.Context, name string) (Persona, error) {
	item, err := s.q.GetPersonaByName(ctx, name)
	if err != nil {
		return Persona{}, db.MapError(err)
	}
	return fromDBItem(item), nil
}

func (s *service) List(ctx context.Context) ([]Persona, error) {
	items, err := s.q.ListPersonas(ctx)
	if err != nil {
		return nil, err
	}
	personas := make([]Persona, len(items))
	for i, item := range items {
		personas[i] = fromDBItem(item)
	}
	return personas, nil
}

func (s *service) Update(ctx context.Context, persona Persona) (Persona, error) {
	if !ident.Valid(persona.ID) {
		return Persona{}, proto.ErrInvalidID
	}
	item, err := s.q.UpdatePersona(ctx, db.UpdatePersonaParams{
		ID:           persona.ID,
		Name:         persona.Name,
		Description:  persona.Description,
		SystemPrompt: persona.SystemPrompt,
		Provider:     persona.Provider,
		Model:        persona.Model,
		Temperature:  persona.Temperature,
		TopP:         persona.TopP,
		MaxTokens:    persona.MaxTokens,
	})
	if err != nil {
		return Persona{}, db.MapError(err)
	}
	updated := fromDBItem(item)
	s.Publish(pubsub.UpdatedEvent, updated)
	return updated, nil
}

func (s *service) Delete(ctx context.Context, id int64) error {
	persona, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.q.DeletePersona(ctx, persona.ID); err != nil {
		return db.MapError(err)
	}
	s.Publish(pubsub.DeletedEvent, persona)
	return nil
}

func fromDBItem(item db.Persona) Persona {
	return Persona{
		ID:           item.ID,
		Name:         item.Name,
		Description:  item.Description,
		SystemPrompt: item.SystemPrompt,
		Provider:     item.Provider,
		Model:        item.Model,
		Temperature:  item.Temperature,
		TopP:         item.TopP,
		MaxTokens:    item.MaxTokens,
		CreatedAt:    item.CreatedAt,
		UpdatedAt:    item.UpdatedAt,
	}
}
