package grpc

import (
	"context"

	"github.com/dmitrijs2005/securechat/internal/api"
	"github.com/dmitrijs2005/securechat/internal/server/feed"
	"github.com/dmitrijs2005/securechat/internal/server/services"
	"google.golang.org/grpc"
	"google.golang.org/grpc/status"
)

// forward sends every snapshot of sub to the client until the client
// leaves or the subscription ends.
func forward[T, S any](ctx context.Context, sub *feed.Subscription[T], stream grpc.ServerStreamingServer[S], convert func(T) *S) error {
	defer sub.Cancel()

	for {
		select {
		case snap, ok := <-sub.C:
			if !ok {
				return status.FromContextError(ctx.Err()).Err()
			}
			if err := stream.Send(convert(snap)); err != nil {
				return err
			}
		case <-ctx.Done():
			return status.FromContextError(ctx.Err()).Err()
		}
	}
}

func (s *GRPCServer) WatchDirectory(req *api.WatchDirectoryRequest, stream grpc.ServerStreamingServer[api.DirectorySnapshot]) error {
	ctx := stream.Context()
	self, err := callerID(ctx)
	if err != nil {
		return err
	}

	sub, err := s.svc.Roster.Watch(ctx, self)
	if err != nil {
		return s.toStatus(ctx, err)
	}
	return forward(ctx, sub, stream, func(entries []services.RosterEntry) *api.DirectorySnapshot {
		return toDirectorySnapshot(services.Filter(entries, req.Term))
	})
}

func (s *GRPCServer) WatchAliases(req *api.WatchAliasesRequest, stream grpc.ServerStreamingServer[api.AliasSnapshot]) error {
	ctx := stream.Context()
	owner, err := callerID(ctx)
	if err != nil {
		return err
	}

	sub, err := s.svc.Aliases.Watch(ctx, owner)
	if err != nil {
		return s.toStatus(ctx, err)
	}
	return forward(ctx, sub, stream, toAliasSnapshot)
}

func (s *GRPCServer) WatchMessages(req *api.WatchMessagesRequest, stream grpc.ServerStreamingServer[api.MessageSnapshot]) error {
	ctx := stream.Context()
	if _, err := callerID(ctx); err != nil {
		return err
	}

	sub, err := s.svc.Messages.Watch(ctx, req.ConversationKey)
	if err != nil {
		return s.toStatus(ctx, err)
	}
	return forward(ctx, sub, stream, toMessageSnapshot)
}
