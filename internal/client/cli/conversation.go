package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/securechat/internal/api"
	"github.com/dmitrijs2005/securechat/internal/client/client"
)

var (
	errNoConversation = errors.New("no conversation open, use 'open' or 'room'")
	errNotDirect      = errors.New("only direct conversations can be renamed")
)

// conversation is the open conversation and its live message stream.
type conversation struct {
	key string
	// peer is the other party of a direct conversation, empty for rooms.
	peer  string
	label string
	sub   *client.Subscription[[]api.Message]
}

func (c *conversation) title(aliases map[string]string) string {
	if c.peer != "" {
		return displayName(aliases, c.peer)
	}
	return c.label
}

// Open starts a direct conversation with the party behind phone.
func (a *App) Open(ctx context.Context, phone string) error {
	if !a.isLoggedIn() {
		return errNotLoggedIn
	}

	cctx, cancel := a.call(ctx)
	res, err := a.api.Resolve(cctx, phone, api.ModePhone)
	cancel()
	if err != nil {
		return err
	}

	switch res.Kind {
	case api.ResultSelfConflict:
		a.printf("That is your own number\n")
		return nil
	case api.ResultUnregisteredTarget:
		a.printf("%s has not joined yet; they will see your messages when they do\n", res.ID)
	}
	return a.enter(ctx, &conversation{key: res.Key, peer: res.ID, label: res.DisplayName})
}

// Room joins the secret room named by token.
func (a *App) Room(ctx context.Context, token string) error {
	if !a.isLoggedIn() {
		return errNotLoggedIn
	}

	cctx, cancel := a.call(ctx)
	res, err := a.api.Resolve(cctx, token, api.ModeRoom)
	cancel()
	if err != nil {
		return err
	}
	return a.enter(ctx, &conversation{key: res.Key, label: res.DisplayName})
}

// enter subscribes to c and makes it the open conversation, closing the
// previous one.
func (a *App) enter(ctx context.Context, c *conversation) error {
	sub, err := a.api.WatchMessages(ctx, c.key)
	if err != nil {
		return err
	}
	c.sub = sub

	a.mu.Lock()
	prev := a.conv
	a.conv = c
	a.mu.Unlock()

	if prev != nil {
		prev.sub.Close()
	}

	go a.follow(c)
	return nil
}

// follow redraws c on every snapshot while it stays the open conversation.
func (a *App) follow(c *conversation) {
	for msgs := range c.sub.C {
		a.mu.Lock()
		if a.conv == c {
			fmt.Fprint(a.out, render(c, msgs, a.self, a.aliases))
		}
		a.mu.Unlock()
	}
	if err := c.sub.Err(); err != nil {
		a.printf("Conversation closed: %v\n", err)
	}
}

func (a *App) current() (*conversation, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.conv == nil {
		return nil, errNoConversation
	}
	return a.conv, nil
}

func (a *App) Send(ctx context.Context, text string) error {
	c, err := a.current()
	if err != nil {
		return err
	}

	cctx, cancel := a.call(ctx)
	defer cancel()
	_, err = a.api.Send(cctx, c.key, api.KindText, text)
	return err
}

// Image sends the file at path as an inline data URL.
func (a *App) Image(ctx context.Context, path string) error {
	c, err := a.current()
	if err != nil {
		return err
	}

	payload, err := encodeImage(path, a.config.MaxImagePayloadSize)
	if err != nil {
		return err
	}

	cctx, cancel := a.call(ctx)
	defer cancel()
	_, err = a.api.Send(cctx, c.key, api.KindImage, payload)
	return err
}

func (a *App) Delete(ctx context.Context, id string) error {
	c, err := a.current()
	if err != nil {
		return err
	}

	cctx, cancel := a.call(ctx)
	defer cancel()
	return a.api.Delete(cctx, c.key, id)
}

// Rename saves name as the alias of the open direct conversation's peer.
func (a *App) Rename(ctx context.Context, name string) error {
	c, err := a.current()
	if err != nil {
		return err
	}
	if c.peer == "" {
		return errNotDirect
	}

	cctx, cancel := a.call(ctx)
	defer cancel()
	if err := a.api.SaveAlias(cctx, c.peer, name); err != nil {
		return err
	}
	a.printf("%s is now shown as %s\n", c.peer, strings.TrimSpace(name))
	return nil
}

func (a *App) CloseConversation(ctx context.Context) error {
	a.mu.Lock()
	c := a.conv
	a.conv = nil
	a.mu.Unlock()

	if c != nil {
		c.sub.Close()
	}
	return nil
}
