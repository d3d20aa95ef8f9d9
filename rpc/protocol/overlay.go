package protocol

import (
	"context"

	empty "github.com/golang/protobuf/ptypes/empty"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// OverlayServer is the server API for the Overlay service
type OverlayServer interface {
	ShowChannelNumber(context.Context, *wrapperspb.UInt32Value) (*empty.Empty, error)
	ShowChannelUnavailable(context.Context, *wrapperspb.UInt32Value) (*empty.Empty, error)
	ShowChannelInfo(context.Context, *structpb.Struct) (*empty.Empty, error)
	ShowVolumeLevel(context.Context, *wrapperspb.DoubleValue) (*empty.Empty, error)
	GetState(context.Context, *empty.Empty) (*structpb.Struct, error)
	GetVersion(context.Context, *empty.Empty) (*wrapperspb.StringValue, error)
}

// UnimplementedOverlayServer can be embedded to have forward compatible implementations
type UnimplementedOverlayServer struct{}

func (UnimplementedOverlayServer) ShowChannelNumber(context.Context, *wrapperspb.UInt32Value) (*empty.Empty, error) {
	return nil, status.Error(codes.Unimplemented, "method ShowChannelNumber not implemented")
}
func (UnimplementedOverlayServer) ShowChannelUnavailable(context.Context, *wrapperspb.UInt32Value) (*empty.Empty, error) {
	return nil, status.Error(codes.Unimplemented, "method ShowChannelUnavailable not implemented")
}
func (UnimplementedOverlayServer) ShowChannelInfo(context.Context, *structpb.Struct) (*empty.Empty, error) {
	return nil, status.Error(codes.Unimplemented, "method ShowChannelInfo not implemented")
}
func (UnimplementedOverlayServer) ShowVolumeLevel(context.Context, *wrapperspb.DoubleValue) (*empty.Empty, error) {
	return nil, status.Error(codes.Unimplemented, "method ShowVolumeLevel not implemented")
}
func (UnimplementedOverlayServer) GetState(context.Context, *empty.Empty) (*structpb.Struct, error) {
	return nil, status.Error(codes.Unimplemented, "method GetState not implemented")
}
func (UnimplementedOverlayServer) GetVersion(context.Context, *empty.Empty) (*wrapperspb.StringValue, error) {
	return nil, status.Error(codes.Unimplemented, "method GetVersion not implemented")
}

// RegisterOverlayServer registers srv on s
func RegisterOverlayServer(s grpc.ServiceRegistrar, srv OverlayServer) {
	s.RegisterService(&Overlay_ServiceDesc, srv)
}

// OverlayClient is the client API for the Overlay service
type OverlayClient interface {
	ShowChannelNumber(ctx context.Context, in *wrapperspb.UInt32Value, opts ...grpc.CallOption) (*empty.Empty, error)
	ShowChannelUnavailable(ctx context.Context, in *wrapperspb.UInt32Value, opts ...grpc.CallOption) (*empty.Empty, error)
	ShowChannelInfo(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*empty.Empty, error)
	ShowVolumeLevel(ctx context.Context, in *wrapperspb.DoubleValue, opts ...grpc.CallOption) (*empty.Empty, error)
	GetState(ctx context.Context, in *empty.Empty, opts ...grpc.CallOption) (*structpb.Struct, error)
	GetVersion(ctx context.Context, in *empty.Empty, opts ...grpc.CallOption) (*wrapperspb.StringValue, error)
}

type overlayClient struct {
	cc grpc.ClientConnInterface
}

// NewOverlayClient returns a client of the Overlay service over cc
func NewOverlayClient(cc grpc.ClientConnInterface) OverlayClient {
	return &overlayClient{cc}
}

func (c *overlayClient) ShowChannelNumber(ctx context.Context, in *wrapperspb.UInt32Value, opts ...grpc.CallOption) (*empty.Empty, error) {
	out := new(empty.Empty)
	if err := c.cc.Invoke(ctx, "/protocol.Overlay/ShowChannelNumber", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *overlayClient) ShowChannelUnavailable(ctx context.Context, in *wrapperspb.UInt32Value, opts ...grpc.CallOption) (*empty.Empty, error) {
	out := new(empty.Empty)
	if err := c.cc.Invoke(ctx, "/protocol.Overlay/ShowChannelUnavailable", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *overlayClient) ShowChannelInfo(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*empty.Empty, error) {
	out := new(empty.Empty)
	if err := c.cc.Invoke(ctx, "/protocol.Overlay/ShowChannelInfo", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *overlayClient) ShowVolumeLevel(ctx context.Context, in *wrapperspb.DoubleValue, opts ...grpc.CallOption) (*empty.Empty, error) {
	out := new(empty.Empty)
	if err := c.cc.Invoke(ctx, "/protocol.Overlay/ShowVolumeLevel", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *overlayClient) GetState(ctx context.Context, in *empty.Empty, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, "/protocol.Overlay/GetState", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *overlayClient) GetVersion(ctx context.Context, in *empty.Empty, opts ...grpc.CallOption) (*wrapperspb.StringValue, error) {
	out := new(wrapperspb.StringValue)
	if err := c.cc.Invoke(ctx, "/protocol.Overlay/GetVersion", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func _Overlay_ShowChannelNumber_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(wrapperspb.UInt32Value)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(OverlayServer).ShowChannelNumber(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/protocol.Overlay/ShowChannelNumber",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(OverlayServer).ShowChannelNumber(ctx, req.(*wrapperspb.UInt32Value))
	}
	return interceptor(ctx, in, info, handler)
}

func _Overlay_ShowChannelUnavailable_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(wrapperspb.UInt32Value)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(OverlayServer).ShowChannelUnavailable(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/protocol.Overlay/ShowChannelUnavailable",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(OverlayServer).ShowChannelUnavailable(ctx, req.(*wrapperspb.UInt32Value))
	}
	return interceptor(ctx, in, info, handler)
}

func _Overlay_ShowChannelInfo_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(OverlayServer).ShowChannelInfo(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/protocol.Overlay/ShowChannelInfo",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(OverlayServer).ShowChannelInfo(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

func _Overlay_ShowVolumeLevel_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(wrapperspb.DoubleValue)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(OverlayServer).ShowVolumeLevel(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/protocol.Overlay/ShowVolumeLevel",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(OverlayServer).ShowVolumeLevel(ctx, req.(*wrapperspb.DoubleValue))
	}
	return interceptor(ctx, in, info, handler)
}

func _Overlay_GetState_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(empty.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(OverlayServer).GetState(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/protocol.Overlay/GetState",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(OverlayServer).GetState(ctx, req.(*empty.Empty))
	}
	return interceptor(ctx, in, info, handler)
}

func _Overlay_GetVersion_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(empty.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(OverlayServer).GetVersion(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/protocol.Overlay/GetVersion",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(OverlayServer).GetVersion(ctx, req.(*empty.Empty))
	}
	return interceptor(ctx, in, info, handler)
}

// Overlay_ServiceDesc is the grpc.ServiceDesc for the Overlay service
var Overlay_ServiceDesc = grpc.ServiceDesc{
	ServiceName: "protocol.Overlay",
	HandlerType: (*OverlayServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "ShowChannelNumber",
			Handler:    _Overlay_ShowChannelNumber_Handler,
		},
		{
			MethodName: "ShowChannelUnavailable",
			Handler:    _Overlay_ShowChannelUnavailable_Handler,
		},
		{
			MethodName: "ShowChannelInfo",
			Handler:    _Overlay_ShowChannelInfo_Handler,
		},
		{
			MethodName: "ShowVolumeLevel",
			Handler:    _Overlay_ShowVolumeLevel_Handler,
		},
		{
			MethodName: "GetState",
			Handler:    _Overlay_GetState_Handler,
		},
		{
			MethodName: "GetVersion",
			Handler:    _Overlay_GetVersion_Handler,
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "protocol/overlay.proto",
}
