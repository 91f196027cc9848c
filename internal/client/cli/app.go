package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/dmitrijs2005/securechat/internal/client/client"
	"github.com/dmitrijs2005/securechat/internal/client/config"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

const onlineCheckInterval = 5 * time.Second

type App struct {
	config *config.Config
	api    client.Client
	reader *bufio.Reader
	out    io.Writer

	mu       sync.Mutex
	Mode     Mode
	self     string
	aliases  map[string]string
	aliasSub *client.Subscription[map[string]string]
	conv     *conversation
}

func NewApp(c *config.Config) (*App, error) {
	apiClient, err := client.NewChatClientService(c.ServerEndpointAddr)
	if err != nil {
		return nil, err
	}

	return newApp(c, apiClient, bufio.NewReader(os.Stdin), os.Stdout), nil
}

func newApp(c *config.Config, api client.Client, r *bufio.Reader, w io.Writer) *App {
	return &App{config: c, api: api, reader: r, out: w, aliases: map[string]string{}}
}

// printf serializes output from the REPL and from subscription redraws.
func (a *App) printf(format string, args ...any) {
	a.mu.Lock()
	defer a.mu.Unlock()
	fmt.Fprintf(a.out, format, args...)
}

// call bounds a unary request by the configured timeout.
func (a *App) call(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, a.config.RequestTimeout)
}

func (a *App) setMode(mode Mode) {
	a.mu.Lock()
	changed := a.Mode != mode
	a.Mode = mode
	a.mu.Unlock()

	if changed {
		a.printf("Switched to %s mode\n", mode)
	}
}

func (a *App) isLoggedIn() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.self != ""
}

func (a *App) getStatus() string {
	a.mu.Lock()
	defer a.mu.Unlock()

	s := a.self
	if a.Mode != "" {
		if s != "" {
			s += " "
		}
		s += string(a.Mode)
	}
	if a.conv != nil {
		s += " @ " + a.conv.title(a.aliases)
	}
	if s != "" {
		s = fmt.Sprintf("(%s)", s)
	}
	return s
}

// Run starts the REPL and blocks until the user exits.
func (a *App) Run(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	defer func() { _ = a.api.Close() }()
	defer a.Logout(ctx)

	a.printf("Welcome to SecureChat CLI (type 'help' for commands)\n")

	go a.StartOnlineStatusWatcher(ctx, onlineCheckInterval)

	runREPL(ctx, a, a.getStatus, bufio.NewScanner(a.reader))
}

func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			pctx, cancel := context.WithTimeout(ctx, 3*time.Second)
			err := a.api.Ping(pctx)
			cancel()

			if err != nil {
				a.setMode(ModeOffline)
			} else {
				a.setMode(ModeOnline)
			}

		case <-ctx.Done():
			return
		}
	}
}
