package cli

import (
	"fmt"
	"strings"

	"github.com/dmitrijs2005/securechat/internal/api"
)

// render draws the whole conversation. Snapshots replace the view, so
// every redraw starts from the header.
func render(c *conversation, msgs []api.Message, self string, aliases map[string]string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "\n=== %s ===\n", c.title(aliases))
	if len(msgs) == 0 {
		b.WriteString("(no messages yet)\n")
	}
	for _, m := range msgs {
		b.WriteString(formatMessage(m, self, aliases))
		b.WriteByte('\n')
	}
	return b.String()
}

func formatMessage(m api.Message, self string, aliases map[string]string) string {
	sender := displayName(aliases, m.SenderID)
	if m.SenderID == self {
		sender = "me"
	}

	body := m.Payload
	if m.Kind == api.KindImage {
		body = fmt.Sprintf("<image, %d bytes>", len(m.Payload))
	}
	return fmt.Sprintf("[%s] %s %s: %s", m.ID, m.CreatedAt.Local().Format("15:04"), sender, body)
}
