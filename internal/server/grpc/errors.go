package grpc

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/securechat/internal/common"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

var statusCodes = []struct {
	err  error
	code codes.Code
}{
	{common.ErrInvalidAlias, codes.InvalidArgument},
	{common.ErrEmptyText, codes.InvalidArgument},
	{common.ErrInvalidInput, codes.InvalidArgument},
	{common.ErrInvalidKind, codes.InvalidArgument},
	{common.ErrPayloadTooLarge, codes.ResourceExhausted},
	{common.ErrorUnauthorized, codes.PermissionDenied},
	{common.ErrorNotFound, codes.NotFound},
	{common.ErrDirectoryUnavailable, codes.Unavailable},
	{common.ErrInvalidToken, codes.Unauthenticated},
	{common.ErrTokenExpired, codes.Unauthenticated},
}

// toStatus maps a service error to a gRPC status. The message is the
// sentinel's text only, so storage details never reach the client.
func (s *GRPCServer) toStatus(ctx context.Context, err error) error {
	if err == nil {
		return nil
	}
	for _, m := range statusCodes {
		if errors.Is(err, m.err) {
			if m.code == codes.Unavailable {
				s.logger.Warn(ctx, "storage unavailable", "error", err)
			}
			return status.Error(m.code, m.err.Error())
		}
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return status.FromContextError(err).Err()
	}

	s.logger.Error(ctx, "internal error", "error", err)
	return status.Error(codes.Internal, common.ErrorInternal.Error())
}
