package message

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/zeebo/xxh3"

	"parley/internal/db"
	"parley/internal/ident"
	"parley/internal/proto"
	"parley/internal/pubsub"
)

type (
	Message      = proto.Message
	CreateParams = proto.CreateMessageParams
)

type Service interface {
	pubsub.Suscriber[Message]
	Create(ctx context.Context, sessionID int64, params CreateParams) (Message, error)
	Update(ctx context.Context, message Message) error
	Get(ctx context.Context, id int64) (Message, error)
	List(ctx context.Context, sessionID int64) ([]Message, error)
	Delete(ctx context.Context, id int64) error
	DeleteSessionMessages(ctx context.Context, sessionID int64) error
}

type service struct {
	*pubsub.Broker[Message]
	q db.Querier
}

func NewService(q db.Querier) Service {
	return &service{
		Broker: pubsub.NewBroker[Message](),
		q:      q,
	}
}

func (s *service) Create(ctx context.Context, sessionID int64, params CreateParams) (Message, error) {
	if !ident.Valid(sessionID) {
		return Message{}, proto.ErrInvalidID
	}
	if params.Role != proto.User {
		params.Attachments = nil
	}
	id, err := ident.New(ctx, s.q.MessageExists)
	if err != nil {
		return Message{}, err
	}
	parts, err := proto.MarshallParts(params.Parts)
	if err != nil {
		return Message{}, err
	}
	for i := range params.Attachments {
		params.Attachments[i].Checksum = Checksum(params.Attachments[i].Content)
	}
	attachments, err := marshalAttachments(params.Attachments)
	if err != nil {
		return Message{}, err
	}
	dbMessage, err := s.q.CreateMessage(ctx, db.CreateMessageParams{
		ID:          id,
		SessionID:   sessionID,
		Role:        string(params.Role),
		Parts:       string(parts),
		Attachments: string(attachments),
		Model:       sql.NullString{String: params.Model, Valid: params.Model != ""},
		Provider:    sql.NullString{String: params.Provider, Valid: params.Provider != ""},
	})
	if err != nil {
		return Message{}, db.MapError(err)
	}
	message, err := s.fromDBItem(dbMessage)
	if err != nil {
		return Message{}, err
	}
	s.Publish(pubsub.CreatedEvent, message)
	return message, nil
}

func (s *service) Update(ctx context.Context, message Message) error {
	if !ident.Valid(message.ID) {
		return proto.ErrInvalidID
	}
	parts, err := proto.MarshallParts(message.Parts)
	if err != nil {
		return err
	}
	finishedAt := sql.NullInt64{}
	if f := message.FinishPart(); f != nil {
		finishedAt = sql.NullInt64{Int64: f.Time, Valid: true}
	}
	err = s.q.UpdateMessage(ctx, db.UpdateMessageParams{
		ID:         message.ID,
		Parts:      string(parts),
		FinishedAt: finishedAt,
	})
	if err != nil {
		return db.MapError(err)
	}
	s.Publish(pubsub.UpdatedEvent, message)
	return nil
}

func (s *service) Get(ctx context.Context, id int64) (Message, error) {
	if !ident.Valid(id) {
		return Message{}, proto.ErrInvalidID
	}
	dbMessage, err := s.q.GetMessage(ctx, id)
	if err != nil {
		return Message{}, db.MapError(err)
	}
	return s.fromDBItem(dbMessage)
}

func (s *service) List(ctx context.Context, sessionID int64) ([]Message, error) {
	if !ident.Valid(sessionID) {
		return nil, proto.ErrInvalidID
	}
	dbMessages, err := s.q.ListMessagesBySession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	messages := make([]Message, len(dbMessages))
	for i, dbMessage := range dbMessages {
		messages[i], err = s.fromDBItem(dbMessage)
		if err != nil {
			return nil, err
		}
	}
	return messages, nil
}

func (s *service) Delete(ctx context.Context, id int64) error {
	message, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.q.DeleteMessage(ctx, message.ID); err != nil {
		return db.MapError(err)
	}
	s.Publish(pubsub.DeletedEvent, message)
	return nil
}

func (s *service) DeleteSessionMessages(ctx context.Context, sessionID int64) error {
	messages, err := s.List(ctx, sessionID)
	if err != nil {
		return err
	}
	if err := s.q.DeleteSessionMessages(ctx, sessionID); err != nil {
		return db.MapError(err)
	}
	for _, message := range messages {
		s.Publish(pubsub.DeletedEvent, message)
	}
	return nil
}

func (s *service) fromDBItem(item db.Message) (Message, error) {
	parts, err := proto.UnmarshallParts([]byte(item.Parts))
	if err != nil {
		return Message{}, err
	}
	var attachments []proto.Attachment
	if item.Attachments != "" {
		if err := json.Unmarshal([]byte(item.Attachments), &attachments); err != nil {
			return Message{}, err
		}
	}
	return Message{
		ID:          item.ID,
		SessionID:   item.SessionID,
		Role:        proto.MessageRole(item.Role),
		Parts:       parts,
		Model:       item.Model.String,
		Provider:    item.Provider.String,
		Attachments: attachments,
		CreatedAt:   item.CreatedAt,
		UpdatedAt:   item.UpdatedAt,
		FinishedAt:  item.FinishedAt.Int64,
	}, nil
}

// Checksum is the hex xxh3 digest of an attachment's raw content. It lets
// the UI dedupe re-attached files without comparing blobs.
func Checksum(content []byte) string {
	return fmt.Sprintf("%016x", xxh3.Hash(content))
}

func marshalAttachments(attachments []proto.Attachment) ([]byte, error) {
	if len(attachments) == 0 {
		return []byte("[]"), nil
	}
	return json.Marshal(attachments)
}
