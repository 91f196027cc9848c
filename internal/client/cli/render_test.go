package cli

import (
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/securechat/internal/api"
	"github.com/stretchr/testify/assert"
)

func TestDisplayName(t *testing.T) {
	aliases := map[string]string{"+912222": "Bob"}

	assert.Equal(t, "Bob", displayName(aliases, "+912222"))
	assert.Equal(t, "+913333", displayName(aliases, "+913333"))
	assert.Equal(t, "+913333", displayName(nil, "+913333"))
}

func TestFormatMessage(t *testing.T) {
	at := time.Date(2024, 1, 2, 3, 4, 5, 0, time.Local)
	aliases := map[string]string{"+912222": "Bob"}

	got := formatMessage(api.Message{ID: "m1", SenderID: "+912222", Kind: api.KindText, Payload: "hi", CreatedAt: at}, "+911111", aliases)
	assert.Equal(t, "[m1] 03:04 Bob: hi", got)

	got = formatMessage(api.Message{ID: "m2", SenderID: "+911111", Kind: api.KindImage, Payload: "data:xyz", CreatedAt: at}, "+911111", aliases)
	assert.Equal(t, "[m2] 03:04 me: <image, 8 bytes>", got)
}

func TestRender(t *testing.T) {
	direct := &conversation{key: "k", peer: "+912222", label: "+912222"}
	room := &conversation{key: "secret_room_fox", label: "Secret Room: fox"}
	aliases := map[string]string{"+912222": "Bob"}

	out := render(direct, nil, "+911111", aliases)
	assert.Contains(t, out, "=== Bob ===")
	assert.Contains(t, out, "(no messages yet)")

	msgs := []api.Message{
		{ID: "a", SenderID: "+911111", Kind: api.KindText, Payload: "first"},
		{ID: "b", SenderID: "+913333", Kind: api.KindText, Payload: "second"},
	}
	out = render(room, msgs, "+911111", aliases)
	assert.Contains(t, out, "=== Secret Room: fox ===")
	assert.Less(t, strings.Index(out, "first"), strings.Index(out, "second"))
	assert.Contains(t, out, "+913333: second")
}
