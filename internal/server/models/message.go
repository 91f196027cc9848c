package models

import "time"

// MessageKind selects how a message payload is interpreted.
type MessageKind string

const (
	KindText  MessageKind = "text"
	KindImage MessageKind = "image"
)

// Valid reports whether k is a known kind.
func (k MessageKind) Valid() bool {
	return k == KindText || k == KindImage
}

// Message is one entry of a conversation stream.
type Message struct {
	ID              string
	ConversationKey string
	SenderID        string
	Kind            MessageKind
	// Payload is the text body, or an inline encoded image (e.g. a base64 data URL).
	Payload   string
	CreatedAt time.Time
}
