package grpc

import (
	"context"
	"path"
	"time"

	"github.com/dmitrijs2005/securechat/internal/api"
	"github.com/dmitrijs2005/securechat/internal/common"
	"github.com/dmitrijs2005/securechat/internal/metrics"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

type ctxKey string

const userIDKey ctxKey = "userID"

// publicMethods can be called without an access token.
var publicMethods = map[string]bool{
	api.FullMethod(api.MethodPing):          true,
	api.FullMethod(api.MethodStartLogin):    true,
	api.FullMethod(api.MethodCompleteLogin): true,
}

func withCallerID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, userIDKey, id)
}

// callerID returns the party the request was authenticated as.
func callerID(ctx context.Context) (string, error) {
	id, ok := ctx.Value(userIDKey).(string)
	if !ok || id == "" {
		return "", status.Error(codes.Unauthenticated, "missing token")
	}
	return id, nil
}

func (s *GRPCServer) authenticate(ctx context.Context) (context.Context, error) {
	var accessToken string
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		values := md.Get(common.AccessTokenHeaderName)
		if len(values) > 0 {
			accessToken = values[0]
		}
	}
	if len(accessToken) == 0 {
		return nil, status.Error(codes.Unauthenticated, "missing token")
	}

	userID, err := s.svc.Auth.Authenticate(accessToken)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	return withCallerID(ctx, userID), nil
}

func (s *GRPCServer) accessTokenInterceptor(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
	if publicMethods[info.FullMethod] {
		return handler(ctx, req)
	}

	ctx, err := s.authenticate(ctx)
	if err != nil {
		return nil, err
	}
	return handler(ctx, req)
}

// authedStream carries the authenticated context into a stream handler.
type authedStream struct {
	grpc.ServerStream
	ctx context.Context
}

func (a *authedStream) Context() context.Context { return a.ctx }

func (s *GRPCServer) streamAccessTokenInterceptor(srv interface{}, ss grpc.ServerStream, info *grpc.StreamServerInfo, handler grpc.StreamHandler) error {
	if publicMethods[info.FullMethod] {
		return handler(srv, ss)
	}

	ctx, err := s.authenticate(ss.Context())
	if err != nil {
		return err
	}
	return handler(srv, &authedStream{ServerStream: ss, ctx: ctx})
}

func (s *GRPCServer) metricsInterceptor(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
	method := path.Base(info.FullMethod)
	start := time.Now()

	resp, err := handler(ctx, req)

	metrics.RPCRequestDuration.WithLabelValues(method).Observe(time.Since(start).Seconds())
	metrics.RPCRequestsTotal.WithLabelValues(method, status.Code(err).String()).Inc()
	return resp, err
}

func (s *GRPCServer) streamMetricsInterceptor(srv interface{}, ss grpc.ServerStream, info *grpc.StreamServerInfo, handler grpc.StreamHandler) error {
	err := handler(srv, ss)
	metrics.RPCRequestsTotal.WithLabelValues(path.Base(info.FullMethod), status.Code(err).String()).Inc()
	return err
}
