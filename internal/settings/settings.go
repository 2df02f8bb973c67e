// Package settings stores user preferences as named JSON documents and
// exposes reads and writes addressed by dotted paths, so callers can ask for
// "window.width" without knowing the document layout.
package settings

import (
	"context"
	"database/sql"
	"errors"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"parley/internal/db"
	"parley/internal/pubsub"
)

// Change identifies a settings write: which document and which path in it.
type Change struct {
	Doc  string `json:"doc"`
	Path string `json:"path,omitempty"`
}

type Service interface {
	pubsub.Suscriber[Change]

	// Get returns the value at path. A missing document or path yields a
	// zero Result; check Exists() on it.
	Get(ctx context.Context, doc, path string) (gjson.Result, error)
	Set(ctx context.Context, doc, path string, value any) error
	Delete(ctx context.Context, doc, path string) error

	Doc(ctx context.Context, doc string) (string, error)
	Docs(ctx context.Context) ([]string, error)
	DeleteDoc(ctx context.Context, doc string) error
}

type service struct {
	*pubsub.Broker[Change]
	q db.Querier
}

func NewService(q db.Querier) Service {
	return &service{
		Broker: pubsub.NewBroker[Change](),
		q:      q,
	}
}

func (s *service) Get(ctx context.Context, doc, path string) (gjson.Result, error) {
	raw, err := s.load(ctx, doc)
	if err != nil {
		return gjson.Result{}, err
	}
	return gjson.Get(raw, path), nil
}

func (s *service) Set(ctx context.Context, doc, path string, value any) error {
	raw, err := s.load(ctx, doc)
	if err != nil {
		return err
	}
	updated, err := sjson.Set(raw, path, value)
	if err != nil {
		return err
	}
	if err := s.q.UpsertSettingsDoc(ctx, doc, updated); err != nil {
		return db.MapError(err)
	}
	s.Publish(pubsub.UpdatedEvent, Change{Doc: doc, Path: path})
	return nil
}

func (s *service) Delete(ctx context.Context, doc, path string) error {
	raw, err := s.load(ctx, doc)
	if err != nil {
		return err
	}
	if !gjson.Get(raw, path).Exists() {
		return nil
	}
	updated, err := sjson.Delete(raw, path)
	if err != nil {
		return err
	}
	if err := s.q.UpsertSettingsDoc(ctx, doc, updated); err != nil {
		return db.MapError(err)
	}
	s.Publish(pubsub.UpdatedEvent, Change{Doc: doc, Path: path})
	return nil
}

func (s *service) Doc(ctx context.Context, doc string) (string, error) {
	return s.load(ctx, doc)
}

func (s *service) Docs(ctx context.Context) ([]string, error) {
	return s.q.ListSettingsDocs(ctx)
}

func (s *service) DeleteDoc(ctx context.Context, doc string) error {
	_, err := s.q.GetSettingsDoc(ctx, doc)
	if errors.Is(err, sql.ErrNoRows) {
		return nil
	}
	if err != nil {
		return err
	}
	if err := s.q.DeleteSettingsDoc(ctx, doc); err != nil {
		return db.MapError(err)
	}
	s.Publish(pubsub.DeletedEvent, Change{Doc: doc})
	return nil
}

// load fetches a document, treating a missing row as an empty document.
func (s *service) load(ctx context.Context, doc string) (string, error) {
	item, err := s.q.GetSettingsDoc(ctx, doc)
	if errors.Is(err, sql.ErrNoRows) {
		return "{}", nil
	}
	if err != nil {
		return "", err
	}
	return item.Doc, nil
}
