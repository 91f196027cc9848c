package services

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/dmitrijs2005/securechat/internal/common"
	"github.com/dmitrijs2005/securechat/internal/dbx"
	"github.com/dmitrijs2005/securechat/internal/identity"
	"github.com/dmitrijs2005/securechat/internal/logging"
	"github.com/dmitrijs2005/securechat/internal/metrics"
	"github.com/dmitrijs2005/securechat/internal/server/feed"
	"github.com/dmitrijs2005/securechat/internal/server/models"
	"github.com/dmitrijs2005/securechat/internal/server/repositories/repomanager"
	"github.com/oklog/ulid/v2"
)

// MessageService owns the conversation streams. The server clock stamps
// every message, so the order of a stream never depends on sender clocks.
type MessageService struct {
	db                  *sql.DB
	repomanager         repomanager.RepositoryManager
	directory           *DirectoryService
	feed                *feed.Feed
	logger              logging.Logger
	maxImagePayloadSize int
	now                 func() time.Time
}

func NewMessageService(db *sql.DB, m repomanager.RepositoryManager, d *DirectoryService, f *feed.Feed, l logging.Logger, maxImagePayloadSize int) *MessageService {
	if maxImagePayloadSize <= 0 {
		maxImagePayloadSize = common.MaxImagePayloadSize
	}
	return &MessageService{
		db:                  db,
		repomanager:         m,
		directory:           d,
		feed:                f,
		logger:              l.With("module", "messages"),
		maxImagePayloadSize: maxImagePayloadSize,
		now:                 time.Now,
	}
}

func (s *MessageService) validate(key string, kind models.MessageKind, payload string) error {
	if key == "" {
		return common.ErrInvalidInput
	}
	switch kind {
	case models.KindText:
		if strings.TrimSpace(payload) == "" {
			return common.ErrEmptyText
		}
	case models.KindImage:
		if len(payload) > s.maxImagePayloadSize {
			return common.ErrPayloadTooLarge
		}
		if payload == "" {
			return common.ErrInvalidInput
		}
	default:
		return common.ErrInvalidKind
	}
	return nil
}

// Append validates and stores a message, returning its id. Validation
// failures are reported before anything is written.
//
// The first message to a direct counterpart that is not in the directory
// creates a placeholder party for it.
func (s *MessageService) Append(ctx context.Context, key, senderID string, kind models.MessageKind, payload string) (string, error) {
	senderID = identity.Normalize(senderID)
	if senderID == "" {
		return "", common.ErrInvalidInput
	}
	if err := s.validate(key, kind, payload); err != nil {
		return "", err
	}

	msg := &models.Message{
		ID:              ulid.Make().String(),
		ConversationKey: key,
		SenderID:        senderID,
		Kind:            kind,
		Payload:         payload,
		CreatedAt:       s.now().UTC(),
	}

	if err := s.repomanager.Messages(s.db).Insert(ctx, msg); err != nil {
		return "", err
	}

	metrics.MessagesAppended.WithLabelValues(string(kind)).Inc()
	s.feed.Publish(ctx, feed.ConversationTopic(key))

	s.ensurePlaceholder(ctx, key, senderID)

	return msg.ID, nil
}

// ensurePlaceholder runs after the message is committed, so failures are
// logged rather than returned.
func (s *MessageService) ensurePlaceholder(ctx context.Context, key, senderID string) {
	target, ok := identity.Counterpart(key, senderID)
	if !ok || target == senderID {
		return
	}

	_, err := s.directory.Get(ctx, target)
	if err == nil {
		return
	}
	if !errors.Is(err, common.ErrorNotFound) {
		s.logger.Warn(ctx, "placeholder lookup failed", "target", target, "error", err)
		return
	}

	if err := s.directory.Upsert(ctx, target, models.PartyUpdate{}); err != nil {
		s.logger.Warn(ctx, "placeholder creation failed", "target", target, "error", err)
		return
	}
	s.logger.Info(ctx, "placeholder party created", "target", target)
}

// Remove deletes a message. Only its sender may do so; anyone else gets
// common.ErrorUnauthorized. A message that does not exist in the
// conversation yields common.ErrorNotFound.
func (s *MessageService) Remove(ctx context.Context, key, id, requesterID string) error {
	requesterID = identity.Normalize(requesterID)

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Messages(tx)

		sender, err := repo.SenderOf(ctx, key, id)
		if err != nil {
			return err
		}
		if sender != requesterID {
			return common.ErrorUnauthorized
		}
		return repo.Delete(ctx, key, id)
	})
	if err != nil {
		return err
	}

	metrics.MessagesRemoved.Inc()
	s.feed.Publish(ctx, feed.ConversationTopic(key))
	return nil
}

// List returns the ordered stream of key.
func (s *MessageService) List(ctx context.Context, key string) ([]models.Message, error) {
	return s.repomanager.Messages(s.db).ListByConversation(ctx, key)
}

// Watch delivers the full ordered stream of key after every change to it.
func (s *MessageService) Watch(ctx context.Context, key string) (*feed.Subscription[[]models.Message], error) {
	if key == "" {
		return nil, common.ErrInvalidInput
	}
	return feed.Watch(ctx, s.feed, "messages", []string{feed.ConversationTopic(key)}, func(ctx context.Context) ([]models.Message, error) {
		return s.List(ctx, key)
	})
}
