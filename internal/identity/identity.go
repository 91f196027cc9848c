// Package identity canonicalizes party identifiers and derives the
// conversation keys that address message streams.
//
// Every function here is pure. Two parties that never talk to each other
// derive the same key for the same conversation, so no handshake is needed.
package identity

import (
	"sort"
	"strings"
	"unicode"
)

const (
	// DirectSeparator joins the two canonical ids of a direct conversation.
	DirectSeparator = "_"

	// RoomPrefix marks conversation keys derived from a shared secret token.
	RoomPrefix = "secret_room_"

	// RoomSeparator replaces whitespace runs inside a room token.
	RoomSeparator = "-"
)

// Normalize removes all whitespace from raw. It is total and idempotent.
func Normalize(raw string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, raw)
}

// DirectKey returns the conversation key shared by selfID and otherID.
// The result does not depend on argument order.
func DirectKey(selfID, otherID string) string {
	pair := []string{Normalize(selfID), Normalize(otherID)}
	sort.Strings(pair)
	return strings.Join(pair, DirectSeparator)
}

// RoomKey returns the conversation key for a shared secret token.
//
// The token is lower-cased and every whitespace character becomes
// RoomSeparator. Distinct tokens that normalize identically share a room.
func RoomKey(token string) string {
	var b strings.Builder
	b.WriteString(RoomPrefix)
	for _, r := range strings.ToLower(token) {
		if unicode.IsSpace(r) {
			b.WriteString(RoomSeparator)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// IsRoomKey reports whether key was derived by RoomKey.
func IsRoomKey(key string) bool {
	return strings.HasPrefix(key, RoomPrefix)
}

// Counterpart returns the other participant of the direct conversation key
// from selfID's point of view. It reports false for room keys and for keys
// selfID does not take part in.
func Counterpart(key, selfID string) (string, bool) {
	if IsRoomKey(key) {
		return "", false
	}
	self := Normalize(selfID)
	if self == "" {
		return "", false
	}

	if other, ok := strings.CutPrefix(key, self+DirectSeparator); ok && DirectKey(self, other) == key {
		return other, true
	}
	if other, ok := strings.CutSuffix(key, DirectSeparator+self); ok && DirectKey(self, other) == key {
		return other, true
	}
	return "", false
}
