// Package server assembles and runs the chat server: storage, change
// notification, services, the gRPC endpoint and the ops HTTP endpoint.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/securechat/internal/logging"
	"github.com/dmitrijs2005/securechat/internal/server/auth"
	"github.com/dmitrijs2005/securechat/internal/server/config"
	"github.com/dmitrijs2005/securechat/internal/server/feed"
	"github.com/dmitrijs2005/securechat/internal/server/ops"
	"github.com/dmitrijs2005/securechat/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/securechat/internal/server/services"

	gs "github.com/dmitrijs2005/securechat/internal/server/grpc"
)

type App struct {
	config   *config.Config
	logger   logging.Logger
	db       *sql.DB
	notifier feed.Notifier
	services gs.Services
	checks   map[string]ops.Pinger
}

func NewApp(c *config.Config) (*App, error) {
	ctx := context.Background()
	logger := logging.New(c.LogBackend, c.LogLevel, os.Stdout)

	db, rm, err := repomanager.Open(ctx, c.DatabaseDriver, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}
	if err := rm.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrations: %w", err)
	}

	checks := map[string]ops.Pinger{"database": ops.PingFunc(db.PingContext)}

	var notifier feed.Notifier
	if c.NotifierURL == "" {
		notifier = feed.NewMemoryNotifier()
	} else {
		rn, err := feed.NewRedisNotifier(ctx, c.NotifierURL)
		if err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("notifier init error: %w", err)
		}
		notifier = rn
		checks["notifier"] = rn
	}

	f := feed.New(notifier, logger)
	directory := services.NewDirectoryService(db, rm, f, logger)
	aliases := services.NewAliasService(db, rm, f, logger)
	messages := services.NewMessageService(db, rm, directory, f, logger, c.MaxImagePayloadSize)
	codes := auth.NewStaticCodes(c.TestNumbers)

	if len(c.TestNumbers) == 0 {
		logger.Warn(ctx, "no login numbers configured, nobody can log in")
	}

	return &App{
		config:   c,
		logger:   logger,
		db:       db,
		notifier: notifier,
		checks:   checks,
		services: gs.Services{
			Auth:      services.NewAuthService(directory, codes, logger, c),
			Directory: directory,
			Aliases:   aliases,
			Messages:  messages,
			Discovery: services.NewDiscoveryService(directory, aliases),
			Roster:    services.NewRosterService(directory, aliases),
		},
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startGRPCServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s, err := gs.NewGRPCServer(app.config.EndpointAddrGRPC, app.logger, app.services)
	if err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
		return
	}

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) startOpsServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s := ops.NewServer(app.config.MetricsAddr, app.checks, app.logger)
	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// Run serves until a termination signal arrives or a server fails, then
// releases storage and the notifier.
func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startGRPCServer(ctx, cancelFunc)
	}()

	if app.config.MetricsAddr != "" {
		wg.Add(1)
		go func() {
			defer wg.Done()
			app.startOpsServer(ctx, cancelFunc)
		}()
	}

	wg.Wait()

	if err := app.notifier.Close(); err != nil {
		app.logger.Warn(ctx, "notifier close", "error", err)
	}
	if err := app.db.Close(); err != nil {
		app.logger.Warn(ctx, "db close", "error", err)
	}
	app.logger.Info(ctx, "App stopped")
}
