// Package session persists the conversation hierarchy: root sessions, child
// sessions spawned for sub-tasks, and the token/cost accumulators the UI
// shows next to each one.
package session

import (
	"context"
	"database/sql"
	"encoding/json"

	"parley/internal/db"
	"parley/internal/ident"
	"parley/internal/proto"
	"parley/internal/pubsub"
)

type Session = proto.Session

type CreateParams struct {
	Title string   `json:"title"`
	Tags  []string `json:"tags,omitempty"`
}

type Usage struct {
	PromptTokens     int64   `json:"prompt_tokens"`
	CompletionTokens int64   `json:"completion_tokens"`
	Cost             float64 `json:"cost"`
}

type Service interface {
	pubsub.Suscriber[Session]
	Create(ctx context.Context, params CreateParams) (Session, error)
	CreateChild(ctx context.Context, parentID int64, params CreateParams) (Session, error)
	Get(ctx context.Context, id int64) (Session, error)
	ListRoots(ctx context.Context) ([]Session, error)
	ListChildren(ctx context.Context, parentID int64) ([]Session, error)
	Update(ctx context.Context, sess Session) (Session, error)
	SetPinned(ctx context.Context, id int64, pinned bool) (Session, error)
	AddUsage(ctx context.Context, id int64, usage Usage) (Session, error)
	Delete(ctx context.Context, id int64) error
}

type service struct {
	*pubsub.Broker[Session]
	q db.Querier
}

func NewService(q db.Querier) Service {
	return &service{
		Broker: pubsub.NewBroker[Session](),
		q:      q,
	}
}

func (s *service) Create(ctx context.Context, params CreateParams) (Session, error) {
	return s.create(ctx, 0, params)
}

func (s *service) CreateChild(ctx context.Context, parentID int64, params CreateParams) (Session, error) {
	if !ident.Valid(parentID) {
		return Session{}, proto.ErrInvalidID
	}
	exists, err := s.q.SessionExists(ctx, parentID)
	if err != nil {
		return Session{}, err
	}
	if !exists {
		return Session{}, proto.ErrNotFound
	}
	return s.create(ctx, parentID, params)
}

func (s *service) create(ctx context.Context, parentID int64, params CreateParams) (Session, error) {
	id, err := ident.New(ctx, s.q.SessionExists)
	if err != nil {
		return Session{}, err
	}
	tags, err := encodeTags(params.Tags)
	if err != nil {
		return Session{}, err
	}
	parent := sql.NullInt64{Int64: parentID, Valid: parentID != 0}
	dbSession, err := s.q.CreateSession(ctx, db.CreateSessionParams{
		ID:       id,
		ParentID: parent,
		Title:    params.Title,
		Tags:     tags,
	})
	if err != nil {
		return Session{}, db.MapError(err)
	}
	sess, err := fromDBItem(dbSession)
	if err != nil {
		return Session{}, err
	}
	s.Publish(pubsub.CreatedEvent, sess)
	return sess, nil
}

func (s *service) Get(ctx context.Context, id int64) (Session, error) {
	if !ident.Valid(id) {
		return Session{}, proto.ErrInvalidID
	}
	dbSession, err := s.q.GetSession(ctx, id)
	if err != nil {
		return Session{}, db.MapError(err)
	}
	return fromDBItem(dbSession)
}

func (s *service) ListRoots(ctx context.Context) ([]Session, error) {
	dbSessions, err := s.q.ListRootSessions(ctx)
	if err != nil {
		return nil, err
	}
	return fromDBItems(dbSessions)
}

func (s *service) ListChildren(ctx context.Context, parentID int64) ([]Session, error) {
	if !ident.Valid(parentID) {
		return nil, proto.ErrInvalidID
	}
	dbSessions, err := s.q.ListChildSessions(ctx, parentID)
	if err != nil {
		return nil, err
	}
	return fromDBItems(dbSessions)
}

func (s *service) Update(ctx context.Context, sess Session) (Session, error) {
	if !ident.Valid(sess.ID) {
		return Session{}, proto.ErrInvalidID
	}
	tags, err := encodeTags(sess.Tags)
	if err != nil {
		return Session{}, err
	}
	dbSession, err := s.q.UpdateSession(ctx, db.UpdateSessionParams{
		ID:    sess.ID,
		Title: sess.Title,
		Tags:  tags,
	})
	if err != nil {
		return Session{}, db.MapError(err)
	}
	updated, err := fromDBItem(dbSession)
	if err != nil {
		return Session{}, err
	}
	s.Publish(pubsub.UpdatedEvent, updated)
	return updated, nil
}

func (s *service) SetPinned(ctx context.Context, id int64, pinned bool) (Session, error) {
	if !ident.Valid(id) {
		return Session{}, proto.ErrInvalidID
	}
	dbSession, err := s.q.SetSessionPinned(ctx, id, pinned)
	if err != nil {
		return Session{}, db.MapError(err)
	}
	sess, err := fromDBItem(dbSession)
	if err != nil {
		return Session{}, err
	}
	s.Publish(pubsub.UpdatedEvent, sess)
	return sess, nil
}

func (s *service) AddUsage(ctx context.Context, id int64, usage Usage) (Session, error) {
	if !ident.Valid(id) {
		return Session{}, proto.ErrInvalidID
	}
	dbSession, err := s.q.AddSessionUsage(ctx, db.AddSessionUsageParams{
		ID:               id,
		PromptTokens:     usage.PromptTokens,
		CompletionTokens: usage.CompletionTokens,
		Cost:             usage.Cost,
	})
	if err != nil {
		return Session{}, db.MapError(err)
	}
	sess, err := fromDBItem(dbSession)
	if err != nil {
		return Session{}, err
	}
	s.Publish(pubsub.UpdatedEvent, sess)
	return sess, nil
}

func (s *service) Delete(ctx context.Context, id int64) error {
	sess, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.q.DeleteSession(ctx, sess.ID); err != nil {
		return db.MapError(err)
	}
	s.Publish(pubsub.DeletedEvent, sess)
	return nil
}

func encodeTags(tags []string) (string, error) {
	if len(tags) == 0 {
		return "[]", nil
	}
	data, err := json.Marshal(tags)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func fromDBItem(item db.Session) (Session, error) {
	var tags []string
	if item.Tags != "" {
		if err := json.Unmarshal([]byte(item.Tags), &tags); err != nil {
			return Session{}, err
		}
	}
	return Session{
		ID:               item.ID,
		ParentID:         item.ParentID.Int64,
		Title:            item.Title,
		Tags:             tags,
		MessageCount:     item.MessageCount,
		PromptTokens:     item.PromptTokens,
		CompletionTokens: item.CompletionTokens,
		Cost:             item.Cost,
		Pinned:           item.Pinned != 0,
		CreatedAt:        item.CreatedAt,
		UpdatedAt:        item.UpdatedAt,
	}, nil
}

func fromDBItems(items []db.Session) ([]Session, error) {
	sessions := make([]Session, len(items))
	for i, item := range items {
		var err error
		sessions[i], err = fromDBItem(item)
		if err != nil {
			return nil, err
		}
	}
	return sessions, nil
}
