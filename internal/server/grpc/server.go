// Package grpc exposes the chat engine as the securechat.v1.SecureChat gRPC
// service. Every method except Ping and the two login steps requires an
// access token; the caller's identity always comes from that token.
package grpc

import (
	"context"
	"net"
	"time"

	"github.com/dmitrijs2005/securechat/internal/api"
	"github.com/dmitrijs2005/securechat/internal/logging"
	"github.com/dmitrijs2005/securechat/internal/server/feed"
	"github.com/dmitrijs2005/securechat/internal/server/models"
	"github.com/dmitrijs2005/securechat/internal/server/services"
	"google.golang.org/grpc"
)

type Authenticator interface {
	StartLogin(ctx context.Context, phone string) (string, error)
	CompleteLogin(ctx context.Context, challenge, code string) (*services.LoginResult, error)
	Authenticate(accessToken string) (string, error)
}

type Directory interface {
	Get(ctx context.Context, id string) (*models.Party, error)
}

type Aliases interface {
	Save(ctx context.Context, ownerID, targetID, name string) error
	Watch(ctx context.Context, ownerID string) (*feed.Subscription[map[string]string], error)
}

type Messages interface {
	Append(ctx context.Context, key, senderID string, kind models.MessageKind, payload string) (string, error)
	Remove(ctx context.Context, key, id, requesterID string) error
	Watch(ctx context.Context, key string) (*feed.Subscription[[]models.Message], error)
}

type Discovery interface {
	Resolve(ctx context.Context, selfID, input string, mode services.DiscoveryMode) (*services.DiscoveryResult, error)
}

type Roster interface {
	Watch(ctx context.Context, selfID string) (*feed.Subscription[[]services.RosterEntry], error)
}

// Services bundles what the transport calls into.
type Services struct {
	Auth      Authenticator
	Directory Directory
	Aliases   Aliases
	Messages  Messages
	Discovery Discovery
	Roster    Roster
}

// shutdownGrace bounds how long GracefulStop may wait for open
// subscriptions before the server is stopped hard.
const shutdownGrace = 5 * time.Second

type GRPCServer struct {
	address string
	svc     Services
	logger  logging.Logger
}

func NewGRPCServer(a string, l logging.Logger, svc Services) (*GRPCServer, error) {
	return &GRPCServer{
		address: a,
		logger:  l.With("module", "grpc_server"),
		svc:     svc,
	}, nil
}

var _ api.ChatServer = (*GRPCServer)(nil)

func (s *GRPCServer) newServer() *grpc.Server {
	srv := grpc.NewServer(
		grpc.ChainUnaryInterceptor(s.metricsInterceptor, s.accessTokenInterceptor),
		grpc.ChainStreamInterceptor(s.streamMetricsInterceptor, s.streamAccessTokenInterceptor),
	)
	api.RegisterChatServer(srv, s)
	return srv
}

// Run listens on the configured address and serves until ctx is done.
func (s *GRPCServer) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, listen)
}

// Serve accepts connections on lis until ctx is done, then stops
// gracefully. Subscriptions still open after shutdownGrace are cut.
func (s *GRPCServer) Serve(ctx context.Context, lis net.Listener) error {
	srv := s.newServer()

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")

		stopped := make(chan struct{})
		go func() {
			srv.GracefulStop()
			close(stopped)
		}()

		select {
		case <-stopped:
		case <-time.After(shutdownGrace):
			srv.Stop()
		}
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", lis.Addr().String())

	if err := srv.Serve(lis); err != nil {
		return err
	}

	return nil
}
