package client

import (
	"context"

	"github.com/dmitrijs2005/securechat/internal/api"
)

type Client interface {
	Close() error
	Ping(ctx context.Context) error
	StartLogin(ctx context.Context, phone string) (string, error)
	CompleteLogin(ctx context.Context, challenge, code string) (string, error)
	Logout()
	Party(ctx context.Context, id string) (*api.Party, error)
	SaveAlias(ctx context.Context, targetID, name string) error
	Send(ctx context.Context, key, kind, payload string) (string, error)
	Delete(ctx context.Context, key, id string) error
	Resolve(ctx context.Context, input, mode string) (*api.ResolveResponse, error)
	WatchDirectory(ctx context.Context, term string) (*Subscription[[]api.RosterEntry], error)
	WatchAliases(ctx context.Context) (*Subscription[map[string]string], error)
	WatchMessages(ctx context.Context, key string) (*Subscription[[]api.Message], error)
}
