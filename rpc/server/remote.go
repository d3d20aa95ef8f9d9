package server

import (
	"context"

	"github.com/zllovesuki/OverlayManager/rpc/protocol"
	"github.com/zllovesuki/OverlayManager/system/remote"

	empty "github.com/golang/protobuf/ptypes/empty"
	"github.com/pkg/errors"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// KeyPresser accepts key presses as if they came from the remote
type KeyPresser interface {
	KeyPress(ctx context.Context, key remote.Key) error
}

type RemoteServer struct {
	protocol.UnimplementedRemoteServer

	keys KeyPresser
}

var _ protocol.RemoteServer = &RemoteServer{}

func RegisterRemoteServer(s *grpc.Server, keys KeyPresser) (*RemoteServer, error) {
	if keys == nil {
		return nil, errors.New("nil key presser is invalid")
	}
	server := &RemoteServer{
		keys: keys,
	}
	protocol.RegisterRemoteServer(s, server)
	return server, nil
}

func (r *RemoteServer) PressKey(ctx context.Context, req *wrapperspb.StringValue) (*empty.Empty, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "nil request is invalid")
	}
	key, ok := remote.ParseKey(req.GetValue())
	if !ok {
		return nil, status.Errorf(codes.InvalidArgument, "unknown key %q", req.GetValue())
	}
	if err := r.keys.KeyPress(ctx, key); err != nil {
		return nil, toStatus(err)
	}
	return &empty.Empty{}, nil
}
