// Package library stores the reusable building blocks plugins contribute:
// tool definitions the LLM can call and prompt templates users can insert.
package library

import (
	"context"
	"encoding/json"
	"fmt"

	"parley/internal/db"
	"parley/internal/ident"
	"parley/internal/proto"
	"parley/internal/pubsub"
)

type ToolDef = proto.ToolDef

type ToolService interface {
	pubsub.Suscriber[ToolDef]
	Create(ctx context.Context, def ToolDef) (ToolDef, error)
	Get(ctx context.Context, id int64) (ToolDef, error)
	GetByName(ctx context.Context, name string) (ToolDef, error)
	List(ctx context.Context) ([]ToolDef, error)
	Update(ctx context.Context, def ToolDef) (ToolDef, error)
	Delete(ctx context.Context, id int64) error
}

type toolService struct {
	*pubsub.Broker[ToolDef]
	q db.Querier
}

func NewToolService(q db.Querier) ToolService {
	return &toolService{
		Broker: pubsub.NewBroker[ToolDef](),
		q:      q,
	}
}

func (s *toolService) Create(ctx context.Context, def ToolDef) (ToolDef, error) {
	if err := validateSchema(def.Schema); err != nil {
		return ToolDef{}, err
	}
	id, err := ident.New(ctx, s.q.ToolDefExists)
	if err != nil {
		return ToolDef{}, err
	}
	item, err := s.q.CreateToolDef(ctx, db.CreateToolDefParams{
		ID:          id,
		Name:        def.Name,
		Description: def.Description,
		Schema:      def.Schema,
		Enabled:     boolInt(def.Enabled),
	})
	if err != nil {
		return ToolDef{}, db.MapError(err)
	}
	created := toolFromDBItem(item)
	s.Publish(pubsub.CreatedEvent, created)
	return created, nil
}

func (s *toolService) Get(ctx context.Context, id int64) (ToolDef, error) {
	if !ident.Valid(id) {
		return ToolDef{}, proto.ErrInvalidID
	}
	item, err := s.q.GetToolDef(ctx, id)
	if err != nil {
		return ToolDef{}, db.MapError(err)
	}
	return toolFromDBItem(item), nil
}

func (s *toolService) GetByName(ctx context.Context, name string) (ToolDef, error) {
	item, err := s.q.GetToolDefByName(ctx, name)
	if err != nil {
		return ToolDef{}, db.MapError(err)
	}
	return toolFromDBItem(item), nil
}

func (s *toolService) List(ctx context.Context) ([]ToolDef, error) {
	items, err := s.q.ListToolDefs(ctx)
	if err != nil {
		return nil, err
	}
	defs := make([]ToolDef, len(items))
	for i, item := range items {
		defs[i] = toolFromDBItem(item)
	}
	return defs, nil
}

func (s *toolService) Update(ctx context.Context, def ToolDef) (ToolDef, error) {
	if !ident.Valid(def.ID) {
		return ToolDef{}, proto.ErrInvalidID
	}
	if err := validateSchema(def.Schema); err != nil {
		return ToolDef{}, err
	}
	item, err := s.q.UpdateToolDef(ctx, db.UpdateToolDefParams{
		ID:          def.ID,
		Name:        def.Name,
		Description: def.Description,
		Schema:      def.Schema,
		Enabled:     boolInt(def.Enabled),
	})
	if err != nil {
		return ToolDef{}, db.MapError(err)
	}
	updated := toolFromDBItem(item)
	s.Publish(pubsub.UpdatedEvent, updated)
	return updated, nil
}

func (s *toolService) Delete(ctx context.Context, id int64) error {
	def, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.q.DeleteToolDef(ctx, def.ID); err != nil {
		return db.MapError(err)
	}
	s.Publish(pubsub.DeletedEvent, def)
	return nil
}

// validateSchema rejects parameter schemas that are not JSON objects. An
// empty schema is allowed and means the tool takes no parameters.
func validateSchema(schema string) error {
	if schema == "" {
		return nil
	}
	var doc map[string]any
	if err := json.Unmarshal([]byte(schema), &doc); err != nil {
		return fmt.Errorf("invalid tool schema: %w", err)
	}
	return nil
}

func boolInt(b bool) int64 {
	if b {
		return 1
	}
	return 0
}

func toolFromDBItem(item db.ToolDef) ToolDef {
	return ToolDef{
		ID:          item.ID,
		Name:        item.Name,
		Description: item.Description,
		Schema:      item.Schema,
		Enabled:     item.Enabled != 0,
		CreatedAt:   item.CreatedAt,
		UpdatedAt:   item.UpdatedAt,
	}
}
