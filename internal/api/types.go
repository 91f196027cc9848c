// Package api defines the SecureChat gRPC service shared by server and
// client: the request/response types, the JSON codec they travel in and the
// service descriptor.
package api

import "time"

// Message kinds on the wire.
const (
	KindText  = "text"
	KindImage = "image"
)

// Discovery modes and result kinds on the wire.
const (
	ModePhone = "phone"
	ModeRoom  = "room"

	ResultRoom               = "room"
	ResultSelfConflict       = "self_conflict"
	ResultExistingParty      = "existing_party"
	ResultUnregisteredTarget = "unregistered_target"
)

type Party struct {
	CanonicalID   string     `json:"canonical_id"`
	DisplayHintID string     `json:"display_hint_id,omitempty"`
	LastSeen      *time.Time `json:"last_seen,omitempty"`
}

type Message struct {
	ID              string    `json:"id"`
	ConversationKey string    `json:"conversation_key"`
	SenderID        string    `json:"sender_id"`
	Kind            string    `json:"kind"`
	Payload         string    `json:"payload"`
	CreatedAt       time.Time `json:"created_at"`
}

type RosterEntry struct {
	Party       Party  `json:"party"`
	DisplayName string `json:"display_name"`
	Key         string `json:"key"`
}

type PingRequest struct{}

type PingResponse struct {
	Status string `json:"status"`
}

type StartLoginRequest struct {
	Phone string `json:"phone"`
}

type StartLoginResponse struct {
	Challenge string `json:"challenge"`
}

type CompleteLoginRequest struct {
	Challenge string `json:"challenge"`
	Code      string `json:"code"`
}

type CompleteLoginResponse struct {
	AccessToken string `json:"access_token"`
	PartyID     string `json:"party_id"`
}

type GetPartyRequest struct {
	ID string `json:"id"`
}

type GetPartyResponse struct {
	Party Party `json:"party"`
}

type SaveAliasRequest struct {
	TargetID string `json:"target_id"`
	Name     string `json:"name"`
}

type SaveAliasResponse struct{}

type SendMessageRequest struct {
	ConversationKey string `json:"conversation_key"`
	Kind            string `json:"kind"`
	Payload         string `json:"payload"`
}

type SendMessageResponse struct {
	ID string `json:"id"`
}

type DeleteMessageRequest struct {
	ConversationKey string `json:"conversation_key"`
	ID              string `json:"id"`
}

type DeleteMessageResponse struct{}

type ResolveRequest struct {
	Input string `json:"input"`
	Mode  string `json:"mode"`
}

type ResolveResponse struct {
	Kind        string `json:"kind"`
	Key         string `json:"key,omitempty"`
	ID          string `json:"id,omitempty"`
	DisplayName string `json:"display_name,omitempty"`
	Party       *Party `json:"party,omitempty"`
}

// WatchDirectoryRequest narrows the roster to entries whose id or display
// name contains Term. An empty Term keeps everything.
type WatchDirectoryRequest struct {
	Term string `json:"term,omitempty"`
}

// DirectorySnapshot replaces the receiver's whole roster.
type DirectorySnapshot struct {
	Entries []RosterEntry `json:"entries"`
}

type WatchAliasesRequest struct{}

// AliasSnapshot maps target id to alias name.
type AliasSnapshot struct {
	Aliases map[string]string `json:"aliases"`
}

type WatchMessagesRequest struct {
	ConversationKey string `json:"conversation_key"`
}

// MessageSnapshot is the whole ordered stream of one conversation.
type MessageSnapshot struct {
	Messages []Message `json:"messages"`
}
