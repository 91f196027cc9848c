package api

import (
	"context"

	"google.golang.org/grpc"
)

// ServiceName is the fully qualified gRPC service name.
const ServiceName = "securechat.v1.SecureChat"

const (
	MethodPing           = "Ping"
	MethodStartLogin     = "StartLogin"
	MethodCompleteLogin  = "CompleteLogin"
	MethodGetParty       = "GetParty"
	MethodSaveAlias      = "SaveAlias"
	MethodSendMessage    = "SendMessage"
	MethodDeleteMessage  = "DeleteMessage"
	MethodResolve        = "Resolve"
	MethodWatchDirectory = "WatchDirectory"
	MethodWatchAliases   = "WatchAliases"
	MethodWatchMessages  = "WatchMessages"
)

// FullMethod returns the "/service/method" path of method.
func FullMethod(method string) string {
	return "/" + ServiceName + "/" + method
}

// ChatServer is implemented by the server transport.
type ChatServer interface {
	Ping(context.Context, *PingRequest) (*PingResponse, error)
	StartLogin(context.Context, *StartLoginRequest) (*StartLoginResponse, error)
	CompleteLogin(context.Context, *CompleteLoginRequest) (*CompleteLoginResponse, error)
	GetParty(context.Context, *GetPartyRequest) (*GetPartyResponse, error)
	SaveAlias(context.Context, *SaveAliasRequest) (*SaveAliasResponse, error)
	SendMessage(context.Context, *SendMessageRequest) (*SendMessageResponse, error)
	DeleteMessage(context.Context, *DeleteMessageRequest) (*DeleteMessageResponse, error)
	Resolve(context.Context, *ResolveRequest) (*ResolveResponse, error)
	WatchDirectory(*WatchDirectoryRequest, grpc.ServerStreamingServer[DirectorySnapshot]) error
	WatchAliases(*WatchAliasesRequest, grpc.ServerStreamingServer[AliasSnapshot]) error
	WatchMessages(*WatchMessagesRequest, grpc.ServerStreamingServer[MessageSnapshot]) error
}

func unaryMethod[Req, Resp any](name string, call func(ChatServer, context.Context, *Req) (*Resp, error)) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(Req)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(ChatServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: FullMethod(name)}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(srv.(ChatServer), ctx, req.(*Req))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

func streamMethod[Req, Snap any](name string, call func(ChatServer, *Req, grpc.ServerStreamingServer[Snap]) error) grpc.StreamDesc {
	return grpc.StreamDesc{
		StreamName:    name,
		ServerStreams: true,
		Handler: func(srv any, stream grpc.ServerStream) error {
			in := new(Req)
			if err := stream.RecvMsg(in); err != nil {
				return err
			}
			return call(srv.(ChatServer), in, &grpc.GenericServerStream[Req, Snap]{ServerStream: stream})
		},
	}
}

// ServiceDesc describes the SecureChat service for grpc.Server.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*ChatServer)(nil),
	Methods: []grpc.MethodDesc{
		unaryMethod(MethodPing, ChatServer.Ping),
		unaryMethod(MethodStartLogin, ChatServer.StartLogin),
		unaryMethod(MethodCompleteLogin, ChatServer.CompleteLogin),
		unaryMethod(MethodGetParty, ChatServer.GetParty),
		unaryMethod(MethodSaveAlias, ChatServer.SaveAlias),
		unaryMethod(MethodSendMessage, ChatServer.SendMessage),
		unaryMethod(MethodDeleteMessage, ChatServer.DeleteMessage),
		unaryMethod(MethodResolve, ChatServer.Resolve),
	},
	Streams: []grpc.StreamDesc{
		streamMethod(MethodWatchDirectory, ChatServer.WatchDirectory),
		streamMethod(MethodWatchAliases, ChatServer.WatchAliases),
		streamMethod(MethodWatchMessages, ChatServer.WatchMessages),
	},
	Metadata: "securechat/v1",
}

// RegisterChatServer registers srv with s.
func RegisterChatServer(s grpc.ServiceRegistrar, srv ChatServer) {
	s.RegisterService(&ServiceDesc, srv)
}

// ChatClient calls the service over cc, always in the JSON codec.
type ChatClient struct {
	cc grpc.ClientConnInterface
}

func NewChatClient(cc grpc.ClientConnInterface) *ChatClient {
	return &ChatClient{cc: cc}
}

func invoke[Req, Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in *Req, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := cc.Invoke(ctx, FullMethod(method), in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func watch[Req, Snap any](ctx context.Context, cc grpc.ClientConnInterface, desc *grpc.StreamDesc, in *Req, opts []grpc.CallOption) (grpc.ServerStreamingClient[Snap], error) {
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	stream, err := cc.NewStream(ctx, desc, FullMethod(desc.StreamName), opts...)
	if err != nil {
		return nil, err
	}
	x := &grpc.GenericClientStream[Req, Snap]{ClientStream: stream}
	if err := x.ClientStream.SendMsg(in); err != nil {
		return nil, err
	}
	if err := x.ClientStream.CloseSend(); err != nil {
		return nil, err
	}
	return x, nil
}

func (c *ChatClient) Ping(ctx context.Context, in *PingRequest, opts ...grpc.CallOption) (*PingResponse, error) {
	return invoke[PingRequest, PingResponse](ctx, c.cc, MethodPing, in, opts)
}

func (c *ChatClient) StartLogin(ctx context.Context, in *StartLoginRequest, opts ...grpc.CallOption) (*StartLoginResponse, error) {
	return invoke[StartLoginRequest, StartLoginResponse](ctx, c.cc, MethodStartLogin, in, opts)
}

func (c *ChatClient) CompleteLogin(ctx context.Context, in *CompleteLoginRequest, opts ...grpc.CallOption) (*CompleteLoginResponse, error) {
	return invoke[CompleteLoginRequest, CompleteLoginResponse](ctx, c.cc, MethodCompleteLogin, in, opts)
}

func (c *ChatClient) GetParty(ctx context.Context, in *GetPartyRequest, opts ...grpc.CallOption) (*GetPartyResponse, error) {
	return invoke[GetPartyRequest, GetPartyResponse](ctx, c.cc, MethodGetParty, in, opts)
}

func (c *ChatClient) SaveAlias(ctx context.Context, in *SaveAliasRequest, opts ...grpc.CallOption) (*SaveAliasResponse, error) {
	return invoke[SaveAliasRequest, SaveAliasResponse](ctx, c.cc, MethodSaveAlias, in, opts)
}

func (c *ChatClient) SendMessage(ctx context.Context, in *SendMessageRequest, opts ...grpc.CallOption) (*SendMessageResponse, error) {
	return invoke[SendMessageRequest, SendMessageResponse](ctx, c.cc, MethodSendMessage, in, opts)
}

func (c *ChatClient) DeleteMessage(ctx context.Context, in *DeleteMessageRequest, opts ...grpc.CallOption) (*DeleteMessageResponse, error) {
	return invoke[DeleteMessageRequest, DeleteMessageResponse](ctx, c.cc, MethodDeleteMessage, in, opts)
}

func (c *ChatClient) Resolve(ctx context.Context, in *ResolveRequest, opts ...grpc.CallOption) (*ResolveResponse, error) {
	return invoke[ResolveRequest, ResolveResponse](ctx, c.cc, MethodResolve, in, opts)
}

func (c *ChatClient) WatchDirectory(ctx context.Context, in *WatchDirectoryRequest, opts ...grpc.CallOption) (grpc.ServerStreamingClient[DirectorySnapshot], error) {
	return watch[WatchDirectoryRequest, DirectorySnapshot](ctx, c.cc, &ServiceDesc.Streams[0], in, opts)
}

func (c *ChatClient) WatchAliases(ctx context.Context, in *WatchAliasesRequest, opts ...grpc.CallOption) (grpc.ServerStreamingClient[AliasSnapshot], error) {
	return watch[WatchAliasesRequest, AliasSnapshot](ctx, c.cc, &ServiceDesc.Streams[1], in, opts)
}

func (c *ChatClient) WatchMessages(ctx context.Context, in *WatchMessagesRequest, opts ...grpc.CallOption) (grpc.ServerStreamingClient[MessageSnapshot], error) {
	return watch[WatchMessagesRequest, MessageSnapshot](ctx, c.cc, &ServiceDesc.Streams[2], in, opts)
}
