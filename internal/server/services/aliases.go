package services

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/dmitrijs2005/securechat/internal/common"
	"github.com/dmitrijs2005/securechat/internal/identity"
	"github.com/dmitrijs2005/securechat/internal/logging"
	"github.com/dmitrijs2005/securechat/internal/server/feed"
	"github.com/dmitrijs2005/securechat/internal/server/models"
	"github.com/dmitrijs2005/securechat/internal/server/repositories/repomanager"
)

// DisplayName applies the alias resolution rule: the owner's alias for id
// when there is one, id itself otherwise.
func DisplayName(aliases map[string]string, id string) string {
	if name, ok := aliases[id]; ok {
		return name
	}
	return id
}

// AliasService manages each owner's private names for other parties. Saves
// overwrite; they never touch the directory.
type AliasService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	feed        *feed.Feed
	logger      logging.Logger
}

func NewAliasService(db *sql.DB, m repomanager.RepositoryManager, f *feed.Feed, l logging.Logger) *AliasService {
	return &AliasService{
		db:          db,
		repomanager: m,
		feed:        f,
		logger:      l.With("module", "aliases"),
	}
}

// Save stores name as ownerID's alias for targetID, replacing any previous
// one. Blank names fail with common.ErrInvalidAlias.
func (s *AliasService) Save(ctx context.Context, ownerID, targetID, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return common.ErrInvalidAlias
	}
	ownerID, targetID = identity.Normalize(ownerID), identity.Normalize(targetID)
	if ownerID == "" || targetID == "" {
		return common.ErrInvalidInput
	}

	alias := models.ContactAlias{OwnerID: ownerID, TargetID: targetID, Name: name}
	if err := s.repomanager.Aliases(s.db).Save(ctx, alias); err != nil {
		return err
	}

	s.feed.Publish(ctx, feed.AliasesTopic(ownerID))
	return nil
}

// ListFor returns ownerID's aliases keyed by target id.
func (s *AliasService) ListFor(ctx context.Context, ownerID string) (map[string]string, error) {
	list, err := s.repomanager.Aliases(s.db).ListFor(ctx, identity.Normalize(ownerID))
	if err != nil {
		return nil, err
	}

	result := make(map[string]string, len(list))
	for _, a := range list {
		result[a.TargetID] = a.Name
	}
	return result, nil
}

// DisplayNameFor resolves id under ownerID's aliases.
func (s *AliasService) DisplayNameFor(ctx context.Context, ownerID, id string) (string, error) {
	a, err := s.repomanager.Aliases(s.db).Get(ctx, identity.Normalize(ownerID), id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return id, nil
		}
		return "", err
	}
	return a.Name, nil
}

// Watch delivers ownerID's alias mapping after every change to it.
func (s *AliasService) Watch(ctx context.Context, ownerID string) (*feed.Subscription[map[string]string], error) {
	ownerID = identity.Normalize(ownerID)
	return feed.Watch(ctx, s.feed, "aliases", []string{feed.AliasesTopic(ownerID)}, func(ctx context.Context) (map[string]string, error) {
		return s.ListFor(ctx, ownerID)
	})
}
