package grpc

import (
	"context"

	"github.com/dmitrijs2005/securechat/internal/api"
	"github.com/dmitrijs2005/securechat/internal/server/models"
	"github.com/dmitrijs2005/securechat/internal/server/services"
)

func (s *GRPCServer) Ping(ctx context.Context, req *api.PingRequest) (*api.PingResponse, error) {
	return &api.PingResponse{Status: "OK"}, nil
}

func (s *GRPCServer) StartLogin(ctx context.Context, req *api.StartLoginRequest) (*api.StartLoginResponse, error) {
	challenge, err := s.svc.Auth.StartLogin(ctx, req.Phone)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &api.StartLoginResponse{Challenge: challenge}, nil
}

func (s *GRPCServer) CompleteLogin(ctx context.Context, req *api.CompleteLoginRequest) (*api.CompleteLoginResponse, error) {
	res, err := s.svc.Auth.CompleteLogin(ctx, req.Challenge, req.Code)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &api.CompleteLoginResponse{AccessToken: res.AccessToken, PartyID: res.PartyID}, nil
}

func (s *GRPCServer) GetParty(ctx context.Context, req *api.GetPartyRequest) (*api.GetPartyResponse, error) {
	if _, err := callerID(ctx); err != nil {
		return nil, err
	}

	p, err := s.svc.Directory.Get(ctx, req.ID)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &api.GetPartyResponse{Party: toAPIParty(*p)}, nil
}

func (s *GRPCServer) SaveAlias(ctx context.Context, req *api.SaveAliasRequest) (*api.SaveAliasResponse, error) {
	owner, err := callerID(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.svc.Aliases.Save(ctx, owner, req.TargetID, req.Name); err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &api.SaveAliasResponse{}, nil
}

func (s *GRPCServer) SendMessage(ctx context.Context, req *api.SendMessageRequest) (*api.SendMessageResponse, error) {
	sender, err := callerID(ctx)
	if err != nil {
		return nil, err
	}

	id, err := s.svc.Messages.Append(ctx, req.ConversationKey, sender, models.MessageKind(req.Kind), req.Payload)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &api.SendMessageResponse{ID: id}, nil
}

func (s *GRPCServer) DeleteMessage(ctx context.Context, req *api.DeleteMessageRequest) (*api.DeleteMessageResponse, error) {
	requester, err := callerID(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.svc.Messages.Remove(ctx, req.ConversationKey, req.ID, requester); err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &api.DeleteMessageResponse{}, nil
}

func (s *GRPCServer) Resolve(ctx context.Context, req *api.ResolveRequest) (*api.ResolveResponse, error) {
	self, err := callerID(ctx)
	if err != nil {
		return nil, err
	}

	res, err := s.svc.Discovery.Resolve(ctx, self, req.Input, services.DiscoveryMode(req.Mode))
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return toResolveResponse(res), nil
}
