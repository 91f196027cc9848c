// Package services contains the server-side engine: the directory, the
// contact alias overlay, conversation streams, discovery, the roster view
// and login. Services read and write through repomanager and announce
// changes on a feed so live subscriptions can reload.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/securechat/internal/common"
	"github.com/dmitrijs2005/securechat/internal/identity"
	"github.com/dmitrijs2005/securechat/internal/logging"
	"github.com/dmitrijs2005/securechat/internal/server/feed"
	"github.com/dmitrijs2005/securechat/internal/server/models"
	"github.com/dmitrijs2005/securechat/internal/server/repositories/repomanager"
)

// DirectoryService maintains the set of known parties. Writes merge into the
// stored record; nothing is ever deleted.
type DirectoryService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	feed        *feed.Feed
	logger      logging.Logger
}

func NewDirectoryService(db *sql.DB, m repomanager.RepositoryManager, f *feed.Feed, l logging.Logger) *DirectoryService {
	return &DirectoryService{
		db:          db,
		repomanager: m,
		feed:        f,
		logger:      l.With("module", "directory"),
	}
}

// unavailable marks a storage failure as ErrDirectoryUnavailable, keeping
// the cause in the chain.
func unavailable(err error) error {
	return fmt.Errorf("%w: %w", common.ErrDirectoryUnavailable, err)
}

// Upsert creates the party id if it does not exist, otherwise merges the
// non-nil fields of upd into it.
func (s *DirectoryService) Upsert(ctx context.Context, id string, upd models.PartyUpdate) error {
	id = identity.Normalize(id)
	if id == "" {
		return common.ErrInvalidInput
	}

	if err := s.repomanager.Parties(s.db).Upsert(ctx, id, upd); err != nil {
		return unavailable(err)
	}

	s.feed.Publish(ctx, feed.TopicDirectory)
	return nil
}

// Get returns the party id, or common.ErrorNotFound.
func (s *DirectoryService) Get(ctx context.Context, id string) (*models.Party, error) {
	p, err := s.repomanager.Parties(s.db).Get(ctx, identity.Normalize(id))
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, unavailable(err)
	}
	return p, nil
}

// List returns every party except selfID.
func (s *DirectoryService) List(ctx context.Context, selfID string) ([]models.Party, error) {
	list, err := s.repomanager.Parties(s.db).List(ctx, identity.Normalize(selfID))
	if err != nil {
		return nil, unavailable(err)
	}
	return list, nil
}

// Watch delivers a fresh List snapshot after every directory change.
func (s *DirectoryService) Watch(ctx context.Context, selfID string) (*feed.Subscription[[]models.Party], error) {
	return feed.Watch(ctx, s.feed, "directory", []string{feed.TopicDirectory}, func(ctx context.Context) ([]models.Party, error) {
		return s.List(ctx, selfID)
	})
}
