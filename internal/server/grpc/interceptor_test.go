package grpc

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/securechat/internal/api"
	"github.com/dmitrijs2005/securechat/internal/common"
	"github.com/dmitrijs2005/securechat/internal/server/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

type fakeAuth struct {
	tokens map[string]string
	err    error
}

func (f *fakeAuth) StartLogin(context.Context, string) (string, error) { return "", nil }

func (f *fakeAuth) CompleteLogin(context.Context, string, string) (*services.LoginResult, error) {
	return nil, nil
}

func (f *fakeAuth) Authenticate(token string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	id, ok := f.tokens[token]
	if !ok {
		return "", common.ErrInvalidToken
	}
	return id, nil
}

func newTestServer(t *testing.T, a Authenticator) *GRPCServer {
	t.Helper()
	s, err := NewGRPCServer("", nopLogger{}, Services{Auth: a})
	require.NoError(t, err)
	return s
}

func incoming(token string) context.Context {
	return metadata.NewIncomingContext(context.Background(), metadata.Pairs(common.AccessTokenHeaderName, token))
}

func TestAccessTokenInterceptor_PublicMethodSkipsAuth(t *testing.T) {
	s := newTestServer(t, &fakeAuth{})
	info := &grpc.UnaryServerInfo{FullMethod: api.FullMethod(api.MethodStartLogin)}

	called := false
	_, err := s.accessTokenInterceptor(context.Background(), nil, info, func(ctx context.Context, req interface{}) (interface{}, error) {
		called = true
		_, err := callerID(ctx)
		assert.Error(t, err)
		return nil, nil
	})
	require.NoError(t, err)
	assert.True(t, called)
}

func TestAccessTokenInterceptor_MissingToken(t *testing.T) {
	s := newTestServer(t, &fakeAuth{})
	info := &grpc.UnaryServerInfo{FullMethod: api.FullMethod(api.MethodGetParty)}

	_, err := s.accessTokenInterceptor(context.Background(), nil, info, func(context.Context, interface{}) (interface{}, error) {
		t.Fatal("handler must not run")
		return nil, nil
	})
	assert.Equal(t, codes.Unauthenticated, status.Code(err))
}

func TestAccessTokenInterceptor_ExpiredToken(t *testing.T) {
	s := newTestServer(t, &fakeAuth{err: common.ErrTokenExpired})
	info := &grpc.UnaryServerInfo{FullMethod: api.FullMethod(api.MethodGetParty)}

	_, err := s.accessTokenInterceptor(incoming("old"), nil, info, func(context.Context, interface{}) (interface{}, error) {
		t.Fatal("handler must not run")
		return nil, nil
	})
	st, _ := status.FromError(err)
	assert.Equal(t, codes.Unauthenticated, st.Code())
	assert.Equal(t, common.ErrTokenExpired.Error(), st.Message())
}

func TestAccessTokenInterceptor_SetsCaller(t *testing.T) {
	s := newTestServer(t, &fakeAuth{tokens: map[string]string{"good": "+911111"}})
	info := &grpc.UnaryServerInfo{FullMethod: api.FullMethod(api.MethodSendMessage)}

	_, err := s.accessTokenInterceptor(incoming("good"), nil, info, func(ctx context.Context, req interface{}) (interface{}, error) {
		id, err := callerID(ctx)
		require.NoError(t, err)
		assert.Equal(t, "+911111", id)
		return nil, nil
	})
	require.NoError(t, err)
}

type fakeServerStream struct {
	grpc.ServerStream
	ctx context.Context
}

func (f *fakeServerStream) Context() context.Context { return f.ctx }

func TestStreamAccessTokenInterceptor(t *testing.T) {
	s := newTestServer(t, &fakeAuth{tokens: map[string]string{"good": "+911111"}})
	info := &grpc.StreamServerInfo{FullMethod: api.FullMethod(api.MethodWatchMessages), IsServerStream: true}

	err := s.streamAccessTokenInterceptor(nil, &fakeServerStream{ctx: context.Background()}, info, func(interface{}, grpc.ServerStream) error {
		t.Fatal("handler must not run")
		return nil
	})
	assert.Equal(t, codes.Unauthenticated, status.Code(err))

	err = s.streamAccessTokenInterceptor(nil, &fakeServerStream{ctx: incoming("good")}, info, func(_ interface{}, ss grpc.ServerStream) error {
		id, err := callerID(ss.Context())
		require.NoError(t, err)
		assert.Equal(t, "+911111", id)
		return nil
	})
	require.NoError(t, err)
}
