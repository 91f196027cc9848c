package services

import (
	"context"
	"database/sql"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/securechat/internal/logging"
	"github.com/dmitrijs2005/securechat/internal/server/auth"
	"github.com/dmitrijs2005/securechat/internal/server/config"
	"github.com/dmitrijs2005/securechat/internal/server/feed"
	"github.com/dmitrijs2005/securechat/internal/server/repositories/repomanager"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Debug(context.Context, string, ...any) {}
func (nopLogger) Info(context.Context, string, ...any)  {}
func (nopLogger) Warn(context.Context, string, ...any)  {}
func (nopLogger) Error(context.Context, string, ...any) {}
func (l nopLogger) With(...any) logging.Logger          { return l }

// fakeClock hands out a fixed time until it is moved.
type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = t
}

type env struct {
	db        *sql.DB
	rm        repomanager.RepositoryManager
	notifier  *feed.MemoryNotifier
	clock     *fakeClock
	directory *DirectoryService
	aliases   *AliasService
	messages  *MessageService
	discovery *DiscoveryService
	roster    *RosterService
	auth      *AuthService
}

const testCode = "123456"

func newEnv(t *testing.T) *env {
	t.Helper()
	ctx := context.Background()

	db, rm, err := repomanager.Open(ctx, repomanager.DriverSQLite, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, rm.RunMigrations(ctx, db))

	n := feed.NewMemoryNotifier()
	f := feed.New(n, nopLogger{})
	clock := &fakeClock{t: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)}

	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.SecretKey = "test-secret"

	d := NewDirectoryService(db, rm, f, nopLogger{})
	a := NewAliasService(db, rm, f, nopLogger{})
	m := NewMessageService(db, rm, d, f, nopLogger{}, cfg.MaxImagePayloadSize)
	m.now = clock.Now
	codes := auth.NewStaticCodes(map[string]string{"+911111": testCode, "+912222": testCode})
	as := NewAuthService(d, codes, nopLogger{}, cfg)
	as.now = clock.Now

	return &env{
		db:        db,
		rm:        rm,
		notifier:  n,
		clock:     clock,
		directory: d,
		aliases:   a,
		messages:  m,
		discovery: NewDiscoveryService(d, a),
		roster:    NewRosterService(d, a),
		auth:      as,
	}
}

func next[T any](t *testing.T, s *feed.Subscription[T]) T {
	t.Helper()
	select {
	case v, ok := <-s.C:
		require.True(t, ok, "subscription closed")
		return v
	case <-time.After(2 * time.Second):
		t.Fatal("no snapshot")
	}
	var zero T
	return zero
}
