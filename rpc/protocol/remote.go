package protocol

import (
	"context"

	empty "github.com/golang/protobuf/ptypes/empty"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// RemoteServer is the server API for the Remote service. PressKey takes a key name.
type RemoteServer interface {
	PressKey(context.Context, *wrapperspb.StringValue) (*empty.Empty, error)
}

// UnimplementedRemoteServer can be embedded to have forward compatible implementations
type UnimplementedRemoteServer struct{}

func (UnimplementedRemoteServer) PressKey(context.Context, *wrapperspb.StringValue) (*empty.Empty, error) {
	return nil, status.Error(codes.Unimplemented, "method PressKey not implemented")
}

// RegisterRemoteServer registers srv on s
func RegisterRemoteServer(s grpc.ServiceRegistrar, srv RemoteServer) {
	s.RegisterService(&Remote_ServiceDesc, srv)
}

// RemoteClient is the client API for the Remote service
type RemoteClient interface {
	PressKey(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*empty.Empty, error)
}

type remoteClient struct {
	cc grpc.ClientConnInterface
}

// NewRemoteClient returns a client of the Remote service over cc
func NewRemoteClient(cc grpc.ClientConnInterface) RemoteClient {
	return &remoteClient{cc}
}

func (c *remoteClient) PressKey(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*empty.Empty, error) {
	out := new(empty.Empty)
	if err := c.cc.Invoke(ctx, "/protocol.Remote/PressKey", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func _Remote_PressKey_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(wrapperspb.StringValue)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(RemoteServer).PressKey(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/protocol.Remote/PressKey",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(RemoteServer).PressKey(ctx, req.(*wrapperspb.StringValue))
	}
	return interceptor(ctx, in, info, handler)
}

// Remote_ServiceDesc is the grpc.ServiceDesc for the Remote service
var Remote_ServiceDesc = grpc.ServiceDesc{
	ServiceName: "protocol.Remote",
	HandlerType: (*RemoteServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "PressKey",
			Handler:    _Remote_PressKey_Handler,
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "protocol/remote.proto",
}
