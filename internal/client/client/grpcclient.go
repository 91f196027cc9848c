package client

import (
	"context"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/securechat/internal/api"
	"github.com/dmitrijs2005/securechat/internal/common"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

type GRPCClient struct {
	endpointURL string
	conn        *grpc.ClientConn
	client      *api.ChatClient

	mu          sync.RWMutex
	accessToken string
}

var _ Client = (*GRPCClient)(nil)

func withAccessToken(ctx context.Context, token string) context.Context {
	md, _ := metadata.FromOutgoingContext(ctx)
	md = md.Copy()
	if md == nil {
		md = metadata.MD{}
	}
	md.Delete(common.AccessTokenHeaderName)
	md.Set(common.AccessTokenHeaderName, token)

	return metadata.NewOutgoingContext(ctx, md)
}

func (s *GRPCClient) token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.accessToken
}

func (s *GRPCClient) setToken(t string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accessToken = t
}

func (s *GRPCClient) withToken(ctx context.Context) context.Context {
	if t := s.token(); t != "" {
		return withAccessToken(ctx, t)
	}
	return ctx
}

func (s *GRPCClient) accessTokenInterceptor(
	ctx context.Context,
	method string,
	req, reply interface{},
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {
	return invoker(s.withToken(ctx), method, req, reply, cc, opts...)
}

func (s *GRPCClient) streamAccessTokenInterceptor(
	ctx context.Context,
	desc *grpc.StreamDesc,
	cc *grpc.ClientConn,
	method string,
	streamer grpc.Streamer,
	opts ...grpc.CallOption,
) (grpc.ClientStream, error) {
	return streamer(s.withToken(ctx), desc, cc, method, opts...)
}

func NewChatClientService(endpointURL string, opts ...grpc.DialOption) (*GRPCClient, error) {
	c := &GRPCClient{endpointURL: endpointURL}
	err := c.InitGRPCClient(opts...)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// InitGRPCClient dials the endpoint. Extra options come after the defaults,
// so a caller can replace the transport credentials or the dialer.
func (s *GRPCClient) InitGRPCClient(opts ...grpc.DialOption) error {
	opts = append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(s.accessTokenInterceptor),
		grpc.WithStreamInterceptor(s.streamAccessTokenInterceptor),
	}, opts...)

	conn, err := grpc.NewClient(s.endpointURL, opts...)
	if err != nil {
		return err
	}
	s.conn = conn
	s.client = api.NewChatClient(conn)
	return nil
}

func (s *GRPCClient) Close() error {
	return s.conn.Close()
}

func (s *GRPCClient) Ping(ctx context.Context) error {
	resp, err := s.client.Ping(ctx, &api.PingRequest{})
	if err != nil {
		return mapError(err)
	}
	if resp.Status != "OK" {
		return ErrUnavailable
	}
	return nil
}

// StartLogin asks for a one-time code to be sent to phone and returns the
// challenge to hand back with it.
func (s *GRPCClient) StartLogin(ctx context.Context, phone string) (string, error) {
	resp, err := s.client.StartLogin(ctx, &api.StartLoginRequest{Phone: phone})
	if err != nil {
		return "", mapError(err)
	}
	return resp.Challenge, nil
}

// CompleteLogin exchanges the code for an access token, which is kept for
// later calls, and returns the caller's canonical id.
func (s *GRPCClient) CompleteLogin(ctx context.Context, challenge, code string) (string, error) {
	resp, err := s.client.CompleteLogin(ctx, &api.CompleteLoginRequest{Challenge: challenge, Code: code})
	if err != nil {
		return "", mapError(err)
	}
	s.setToken(resp.AccessToken)
	return resp.PartyID, nil
}

func (s *GRPCClient) Logout() {
	s.setToken("")
}

func (s *GRPCClient) Party(ctx context.Context, id string) (*api.Party, error) {
	resp, err := s.client.GetParty(ctx, &api.GetPartyRequest{ID: id})
	if err != nil {
		return nil, mapError(err)
	}
	return &resp.Party, nil
}

func (s *GRPCClient) SaveAlias(ctx context.Context, targetID, name string) error {
	_, err := s.client.SaveAlias(ctx, &api.SaveAliasRequest{TargetID: targetID, Name: name})
	return mapError(err)
}

func (s *GRPCClient) Send(ctx context.Context, key, kind, payload string) (string, error) {
	resp, err := s.client.SendMessage(ctx, &api.SendMessageRequest{ConversationKey: key, Kind: kind, Payload: payload})
	if err != nil {
		return "", mapError(err)
	}
	return resp.ID, nil
}

func (s *GRPCClient) Delete(ctx context.Context, key, id string) error {
	_, err := s.client.DeleteMessage(ctx, &api.DeleteMessageRequest{ConversationKey: key, ID: id})
	return mapError(err)
}

func (s *GRPCClient) Resolve(ctx context.Context, input, mode string) (*api.ResolveResponse, error) {
	resp, err := s.client.Resolve(ctx, &api.ResolveRequest{Input: input, Mode: mode})
	if err != nil {
		return nil, mapError(err)
	}
	return resp, nil
}

func (s *GRPCClient) WatchDirectory(ctx context.Context, term string) (*Subscription[[]api.RosterEntry], error) {
	return subscribe(ctx,
		func(ctx context.Context) (grpc.ServerStreamingClient[api.DirectorySnapshot], error) {
			return s.client.WatchDirectory(ctx, &api.WatchDirectoryRequest{Term: term})
		},
		func(snap *api.DirectorySnapshot) []api.RosterEntry { return snap.Entries })
}

func (s *GRPCClient) WatchAliases(ctx context.Context) (*Subscription[map[string]string], error) {
	return subscribe(ctx,
		func(ctx context.Context) (grpc.ServerStreamingClient[api.AliasSnapshot], error) {
			return s.client.WatchAliases(ctx, &api.WatchAliasesRequest{})
		},
		func(snap *api.AliasSnapshot) map[string]string { return snap.Aliases })
}

func (s *GRPCClient) WatchMessages(ctx context.Context, key string) (*Subscription[[]api.Message], error) {
	return subscribe(ctx,
		func(ctx context.Context) (grpc.ServerStreamingClient[api.MessageSnapshot], error) {
			return s.client.WatchMessages(ctx, &api.WatchMessagesRequest{ConversationKey: key})
		},
		func(snap *api.MessageSnapshot) []api.Message { return snap.Messages })
}

// sentinels are recognised by status message, which the server sets to the
// sentinel text.
var sentinels = []error{
	common.ErrInvalidAlias,
	common.ErrPayloadTooLarge,
	common.ErrEmptyText,
	common.ErrInvalidKind,
	common.ErrInvalidInput,
	common.ErrorUnauthorized,
	common.ErrorNotFound,
	common.ErrDirectoryUnavailable,
	common.ErrInvalidToken,
	common.ErrTokenExpired,
	common.ErrorInternal,
}

func mapError(err error) error {
	if err == nil {
		return nil
	}
	st, _ := status.FromError(err)
	for _, s := range sentinels {
		if st.Message() == s.Error() {
			return s
		}
	}
	switch st.Code() {
	case codes.Unauthenticated:
		return ErrUnauthenticated
	case codes.Unavailable, codes.DeadlineExceeded:
		return ErrUnavailable
	default:
		return fmt.Errorf("rpc error: %w", err)
	}
}
