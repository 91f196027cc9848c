package services

import (
	"context"
	"errors"
	"strings"

	"github.com/dmitrijs2005/securechat/internal/common"
	"github.com/dmitrijs2005/securechat/internal/identity"
	"github.com/dmitrijs2005/securechat/internal/server/models"
)

// DiscoveryMode tells Resolve how to read its input.
type DiscoveryMode string

const (
	ModePhone DiscoveryMode = "phone"
	ModeRoom  DiscoveryMode = "room"
)

// ResultKind tags a DiscoveryResult.
type ResultKind string

const (
	ResultRoom               ResultKind = "room"
	ResultSelfConflict       ResultKind = "self_conflict"
	ResultExistingParty      ResultKind = "existing_party"
	ResultUnregisteredTarget ResultKind = "unregistered_target"
)

// RoomLabelPrefix starts the display label of a room.
const RoomLabelPrefix = "Secret Room: "

// DiscoveryResult is what a search input resolved to. Key is the
// conversation key to subscribe to; it is empty for ResultSelfConflict.
// Party is set only for ResultExistingParty.
type DiscoveryResult struct {
	Kind        ResultKind
	Key         string
	ID          string
	DisplayName string
	Party       *models.Party
}

// DiscoveryService turns a search input into something a conversation can
// be opened with. It never writes.
type DiscoveryService struct {
	directory *DirectoryService
	aliases   *AliasService
}

func NewDiscoveryService(d *DirectoryService, a *AliasService) *DiscoveryService {
	return &DiscoveryService{directory: d, aliases: a}
}

// Resolve resolves input for selfID. Targeting oneself is reported as a
// ResultSelfConflict result, not as an error.
func (s *DiscoveryService) Resolve(ctx context.Context, selfID, input string, mode DiscoveryMode) (*DiscoveryResult, error) {
	switch mode {
	case ModeRoom:
		if strings.TrimSpace(input) == "" {
			return nil, common.ErrInvalidInput
		}
		return &DiscoveryResult{
			Kind:        ResultRoom,
			Key:         identity.RoomKey(input),
			DisplayName: RoomLabelPrefix + input,
		}, nil

	case ModePhone:
		id := identity.Normalize(input)
		if id == "" {
			return nil, common.ErrInvalidInput
		}
		self := identity.Normalize(selfID)
		if id == self {
			return &DiscoveryResult{Kind: ResultSelfConflict, ID: id}, nil
		}

		result := &DiscoveryResult{ID: id, Key: identity.DirectKey(self, id)}

		party, err := s.directory.Get(ctx, id)
		switch {
		case err == nil:
			result.Kind = ResultExistingParty
			result.Party = party
		case errors.Is(err, common.ErrorNotFound):
			result.Kind = ResultUnregisteredTarget
		default:
			return nil, err
		}

		name, err := s.aliases.DisplayNameFor(ctx, self, id)
		if err != nil {
			return nil, err
		}
		result.DisplayName = name
		return result, nil

	default:
		return nil, common.ErrInvalidInput
	}
}
