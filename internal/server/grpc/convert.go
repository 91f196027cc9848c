package grpc

import (
	"github.com/dmitrijs2005/securechat/internal/api"
	"github.com/dmitrijs2005/securechat/internal/server/models"
	"github.com/dmitrijs2005/securechat/internal/server/services"
)

func toAPIParty(p models.Party) api.Party {
	return api.Party{
		CanonicalID:   p.CanonicalID,
		DisplayHintID: p.DisplayHintID,
		LastSeen:      p.LastSeen,
	}
}

func toAPIMessage(m models.Message) api.Message {
	return api.Message{
		ID:              m.ID,
		ConversationKey: m.ConversationKey,
		SenderID:        m.SenderID,
		Kind:            string(m.Kind),
		Payload:         m.Payload,
		CreatedAt:       m.CreatedAt,
	}
}

func toDirectorySnapshot(entries []services.RosterEntry) *api.DirectorySnapshot {
	out := make([]api.RosterEntry, 0, len(entries))
	for _, e := range entries {
		out = append(out, api.RosterEntry{
			Party:       toAPIParty(e.Party),
			DisplayName: e.DisplayName,
			Key:         e.Key,
		})
	}
	return &api.DirectorySnapshot{Entries: out}
}

func toAliasSnapshot(aliases map[string]string) *api.AliasSnapshot {
	if aliases == nil {
		aliases = map[string]string{}
	}
	return &api.AliasSnapshot{Aliases: aliases}
}

func toMessageSnapshot(msgs []models.Message) *api.MessageSnapshot {
	out := make([]api.Message, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, toAPIMessage(m))
	}
	return &api.MessageSnapshot{Messages: out}
}

func toResolveResponse(r *services.DiscoveryResult) *api.ResolveResponse {
	resp := &api.ResolveResponse{
		Kind:        string(r.Kind),
		Key:         r.Key,
		ID:          r.ID,
		DisplayName: r.DisplayName,
	}
	if r.Party != nil {
		p := toAPIParty(*r.Party)
		resp.Party = &p
	}
	return resp
}
