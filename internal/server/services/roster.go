package services

import (
	"context"
	"strings"

	"github.com/dmitrijs2005/securechat/internal/identity"
	"github.com/dmitrijs2005/securechat/internal/server/feed"
	"github.com/dmitrijs2005/securechat/internal/server/models"
)

// RosterEntry is a directory party as one owner sees it.
type RosterEntry struct {
	Party       models.Party
	DisplayName string
	// Key is the direct conversation key between the owner and the party.
	Key string
}

// RosterService joins the directory with an owner's aliases so that every
// listed party is shown under its display name.
type RosterService struct {
	directory *DirectoryService
	aliases   *AliasService
}

func NewRosterService(d *DirectoryService, a *AliasService) *RosterService {
	return &RosterService{directory: d, aliases: a}
}

// Snapshot returns the directory without selfID, resolved under selfID's
// aliases.
func (s *RosterService) Snapshot(ctx context.Context, selfID string) ([]RosterEntry, error) {
	selfID = identity.Normalize(selfID)

	parties, err := s.directory.List(ctx, selfID)
	if err != nil {
		return nil, err
	}
	aliases, err := s.aliases.ListFor(ctx, selfID)
	if err != nil {
		return nil, err
	}

	entries := make([]RosterEntry, 0, len(parties))
	for _, p := range parties {
		entries = append(entries, RosterEntry{
			Party:       p,
			DisplayName: DisplayName(aliases, p.CanonicalID),
			Key:         identity.DirectKey(selfID, p.CanonicalID),
		})
	}
	return entries, nil
}

// Watch re-emits the roster after directory changes and after changes to
// selfID's aliases.
func (s *RosterService) Watch(ctx context.Context, selfID string) (*feed.Subscription[[]RosterEntry], error) {
	selfID = identity.Normalize(selfID)
	topics := []string{feed.TopicDirectory, feed.AliasesTopic(selfID)}
	return feed.Watch(ctx, s.directory.feed, "roster", topics, func(ctx context.Context) ([]RosterEntry, error) {
		return s.Snapshot(ctx, selfID)
	})
}

// Filter keeps the entries whose canonical id or display name contains
// term, ignoring case. A blank term keeps everything.
func Filter(entries []RosterEntry, term string) []RosterEntry {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return entries
	}

	result := make([]RosterEntry, 0, len(entries))
	for _, e := range entries {
		if strings.Contains(strings.ToLower(e.Party.CanonicalID), term) ||
			strings.Contains(strings.ToLower(e.DisplayName), term) {
			result = append(result, e)
		}
	}
	return result
}
