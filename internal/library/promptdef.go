package library

import (
	"context"

	"parley/internal/db"
	"parley/internal/ident"
	"parley/internal/proto"
	"parley/internal/pubsub"
)

type PromptDef = proto.PromptDef

type PromptService interface {
	pubsub.Suscriber[PromptDef]
	Create(ctx context.Context, def PromptDef) (PromptDef, error)
	Get(ctx context.Context, id int64) (PromptDef, error)
	GetByName(ctx context.Context, name string) (PromptDef, error)
	List(ctx context.Context) ([]PromptDef, error)
	Update(ctx context.Context, def PromptDef) (PromptDef, error)
	Delete(ctx context.Context, id int64) error
}

type promptService struct {
	*pubsub.Broker[PromptDef]
	q db.Querier
}

func NewPromptService(q db.Querier) PromptService {
	return &promptService{
		Broker: pubsub.NewBroker[PromptDef](),
		q:      q,
	}
}

func (s *promptService) Create(ctx context.Context, def PromptDef) (PromptDef, error) {
	id, err := ident.New(ctx, s.q.PromptDefExists)
	if err != nil {
		return PromptDef{}, err
	}
	item, err := s.q.CreatePromptDef(ctx, db.CreatePromptDefParams{
		ID:          id,
		Name:        def.Name,
		Description: def.Description,
		Content:     def.Content,
	})
	if err != nil {
		return PromptDef{}, db.MapError(err)
	}
	created := promptFromDBItem(item)
	s.Publish(pubsub.CreatedEvent, created)
	return created, nil
}

func (s *promptService) Get(ctx context.Context, id int64) (PromptDef, error) {
	if !ident.Valid(id) {
		return PromptDef{}, proto.ErrInvalidID
	}
	item, err := s.q.GetPromptDef(ctx, id)
	if err != nil {
		return PromptDef{}, db.MapError(err)
	}
	return promptFromDBItem(item), nil
}

func (s *promptService) GetByName(ctx context.Context, name string) (PromptDef, error) {
	item, err := s.q.GetPromptDefByName(ctx, name)
	if err != nil {
		return PromptDef{}, db.MapError(err)
	}
	return promptFromDBItem(item), nil
}

func (s *promptService) List(ctx context.Context) ([]PromptDef, error) {
	items, err := s.q.ListPromptDefs(ctx)
	if err != nil {
		return nil, err
	}
	defs := make([]PromptDef, len(items))
	for i, item := range items {
		defs[i] = promptFromDBItem(item)
	}
	return defs, nil
}

func (s *promptService) Update(ctx context.Context, def PromptDef) (PromptDef, error) {
	if !ident.Valid(def.ID) {
		return PromptDef{}, proto.ErrInvalidID
	}
	item, err := s.q.UpdatePromptDef(ctx, db.UpdatePromptDefParams{
		ID:          def.ID,
		Name:        def.Name,
		Description: def.Description,
		Content:     def.Content,
	})
	if err != nil {
		return PromptDef{}, db.MapError(err)
	}
	updated := promptFromDBItem(item)
	s.Publish(pubsub.UpdatedEvent, updated)
	return updated, nil
}

func (s *promptService) Delete(ctx context.Context, id int64) error {
	def, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.q.DeletePromptDef(ctx, def.ID); err != nil {
		return db.MapError(err)
	}
	s.Publish(pubsub.DeletedEvent, def)
	return nil
}

func promptFromDBItem(item db.PromptDef) PromptDef {
	return PromptDef{
		ID:          item.ID,
		Name:        item.Name,
		Description: item.Description,
		Content:     item.Content,
		CreatedAt:   item.CreatedAt,
		UpdatedAt:   item.UpdatedAt,
	}
}
