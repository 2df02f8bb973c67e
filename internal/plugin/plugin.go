// Package plugin tracks registered plugin applications. Each application
// receives an opaque install token on registration and owns a private
// key-value namespace that is wiped when the application is unregistered.
package plugin

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"parley/internal/db"
	"parley/internal/ident"
	"parley/internal/proto"
	"parley/internal/pubsub"
)

type Application = proto.Application

type Service interface {
	pubsub.Suscriber[Application]
	Register(ctx context.Context, name, version string) (Application, error)
	Get(ctx context.Context, id int64) (Application, error)
	GetByToken(ctx context.Context, token string) (Application, error)
	List(ctx context.Context) ([]Application, error)
	Unregister(ctx context.Context, id int64) error

	Set(ctx context.Context, appID int64, key, value string) error
	Value(ctx context.Context, appID int64, key string) (string, error)
	Keys(ctx context.Context, appID int64) ([]string, error)
	DeleteValue(ctx context.Context, appID int64, key string) error
	Clear(ctx context.Context, appID int64) error
}

type service struct {
	*pubsub.Broker[Application]
	q db.Querier
}

func NewService(q db.Querier) Service {
	return &service{
		Broker: pubsub.NewBroker[Application](),
		q:      q,
	}
}

func (s *service) Register(ctx context.Context, name, version string) (Application, error) {
	id, err := ident.New(ctx, s.q.ApplicationExists)
	if err != nil {
		return Application{}, err
	}
	item, err := s.q.CreateApplication(ctx, db.CreateApplicationParams{
		ID:      id,
		Name:    name,
		Token:   uuid.NewString(),
		Version: version,
	})
	if err != nil {
		return Application{}, db.MapError(err)
	}
	app := fromDBItem(item)
	slog.Info("application registered", "name", app.Name, "version", app.Version)
	s.Publish(pubsub.CreatedEvent, app)
	return app, nil
}

func (s *service) Get(ctx context.Context, id int64) (Application, error) {
	if !ident.Valid(id) {
		return Application{}, proto.ErrInvalidID
	}
	item, err := s.q.GetApplication(ctx, id)
	if err != nil {
		return Application{}, db.MapError(err)
	}
	return fromDBItem(item), nil
}

func (s *service) GetByToken(ctx context.Context, token string) (Application, error) {
	item, err := s.q.GetApplicationByToken(ctx, token)
	if err != nil {
		return Application{}, db.MapError(err)
	}
	return fromDBItem(item), nil
}

func (s *service) List(ctx context.Context) ([]Application, error) {
	items, err := s.q.ListApplications(ctx)
	if err != nil {
		return nil, err
	}
	apps := make([]Application, len(items))
	for i, item := range items {
		apps[i] = fromDBItem(item)
	}
	return apps, nil
}

func (s *service) Unregister(ctx context.Context, id int64) error {
	app, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.q.DeleteApplication(ctx, app.ID); err != nil {
		return db.MapError(err)
	}
	slog.Info("application unregistered", "name", app.Name)
	s.Publish(pubsub.DeletedEvent, app)
	return nil
}

func (s *service) Set(ctx context.Context, appID int64, key, value string) error {
	if err := s.requireApp(ctx, appID); err != nil {
		return err
	}
	return s.q.SetAppValue(ctx, appID, key, value)
}

func (s *service) Value(ctx context.Context, appID int64, key string) (string, error) {
	if !ident.Valid(appID) {
		return "", proto.ErrInvalidID
	}
	value, err := s.q.GetAppValue(ctx, appID, key)
	if err != nil {
		return "", db.MapError(err)
	}
	return value, nil
}

func (s *service) Keys(ctx context.Context, appID int64) ([]string, error) {
	if !ident.Valid(appID) {
		return nil, proto.ErrInvalidID
	}
	return s.q.ListAppKeys(ctx, appID)
}

func (s *service) DeleteValue(ctx context.Context, appID int64, key string) error {
	if !ident.Valid(appID) {
		return proto.ErrInvalidID
	}
	return s.q.DeleteAppValue(ctx, appID, key)
}

func (s *service) Clear(ctx context.Context, appID int64) error {
	if err := s.requireApp(ctx, appID); err != nil {
		return err
	}
	return s.q.DeleteAppValues(ctx, appID)
}

func (s *service) requireApp(ctx context.Context, appID int64) error {
	if !ident.Valid(appID) {
		return proto.ErrInvalidID
	}
	exists, err := s.q.ApplicationExists(ctx, appID)
	if err != nil {
		return err
	}
	if !exists {
		return proto.ErrNotFound
	}
	return nil
}

func fromDBItem(item db.Application) Application {
	return Application{
		ID:        item.ID,
		Name:      item.Name,
		Token:     item.Token,
		Version:   item.Version,
		CreatedAt: item.CreatedAt,
		UpdatedAt: item.UpdatedAt,
	}
}
