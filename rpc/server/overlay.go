package server

import (
	"context"

	"github.com/zllovesuki/OverlayManager/controller"
	"github.com/zllovesuki/OverlayManager/overlay"
	"github.com/zllovesuki/OverlayManager/rpc/protocol"

	"github.com/Masterminds/semver"
	empty "github.com/golang/protobuf/ptypes/empty"
	"github.com/pkg/errors"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// Overlay is what the overlay server needs from the overlay manager
type Overlay interface {
	controller.Overlay
	Snapshot(ctx context.Context) (overlay.State, error)
}

// Tuner reports the channel and volume the viewer is on
type Tuner interface {
	Status() controller.TunerState
	Lookup(number uint16) (controller.Channel, bool)
}

type OverlayServer struct {
	protocol.UnimplementedOverlayServer

	overlay Overlay
	tuner   Tuner
	version *semver.Version
}

var _ protocol.OverlayServer = &OverlayServer{}

// RegisterOverlayServer registers the overlay service on s. tuner may be nil, in which case
// GetState only reports the overlay.
func RegisterOverlayServer(s *grpc.Server, o Overlay, tuner Tuner, version string) (*OverlayServer, error) {
	if o == nil {
		return nil, errors.New("nil overlay is invalid")
	}
	sem, err := semver.NewVersion(version)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid server version %q", version)
	}
	server := &OverlayServer{
		overlay: o,
		tuner:   tuner,
		version: sem,
	}
	protocol.RegisterOverlayServer(s, server)
	return server, nil
}

func (o *OverlayServer) ShowChannelNumber(ctx context.Context, req *wrapperspb.UInt32Value) (*empty.Empty, error) {
	n, err := channel(req)
	if err != nil {
		return nil, err
	}
	if err := o.overlay.ShowChannelNumber(ctx, n); err != nil {
		return nil, toStatus(err)
	}
	return &empty.Empty{}, nil
}

func (o *OverlayServer) ShowChannelUnavailable(ctx context.Context, req *wrapperspb.UInt32Value) (*empty.Empty, error) {
	n, err := channel(req)
	if err != nil {
		return nil, err
	}
	if err := o.overlay.ShowChannelUnavailable(ctx, n); err != nil {
		return nil, toStatus(err)
	}
	return &empty.Empty{}, nil
}

func (o *OverlayServer) ShowChannelInfo(ctx context.Context, req *structpb.Struct) (*empty.Empty, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "nil request is invalid")
	}
	info, err := protocol.ChannelInfoFromStruct(req)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	if err := o.overlay.ShowChannelInfo(ctx, info.Number, info.Subtitles); err != nil {
		return nil, toStatus(err)
	}
	return &empty.Empty{}, nil
}

func (o *OverlayServer) ShowVolumeLevel(ctx context.Context, req *wrapperspb.DoubleValue) (*empty.Empty, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "nil request is invalid")
	}
	if err := o.overlay.ShowVolumeLevel(ctx, req.GetValue()); err != nil {
		return nil, toStatus(err)
	}
	return &empty.Empty{}, nil
}

func (o *OverlayServer) GetState(ctx context.Context, _ *empty.Empty) (*structpb.Struct, error) {
	s, err := o.overlay.Snapshot(ctx)
	if err != nil {
		return nil, toStatus(err)
	}

	st := protocol.State{
		Active:             s.Active.String(),
		ChannelInfoShowing: s.ChannelInfoShowing,
		VolumeShowing:      s.VolumeShowing,
	}
	for _, k := range s.Armed {
		st.Armed = append(st.Armed, k.String())
	}
	subtitles, known := []string(nil), false
	if s.Banner != nil {
		st.Texts = overlay.Texts(s.Banner)
		if info, ok := s.Banner.(overlay.ChannelInfo); ok {
			subtitles, known = info.Subtitles, true
		}
	}

	if o.tuner != nil {
		t := o.tuner.Status()
		st.Channel = t.Channel
		st.Volume = t.Volume
		st.Muted = t.Muted
		if ch, ok := o.tuner.Lookup(t.Channel); ok {
			st.ChannelName = ch.Name
			if !known {
				subtitles = ch.Subtitles
			}
		}
	}
	// the banner on screen already passed the same check; a lineup entry may not have
	if list, err := overlay.FormatSubtitleList(subtitles); err == nil {
		st.Subtitles = list
	}

	resp, err := st.Struct()
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	return resp, nil
}

func (o *OverlayServer) GetVersion(ctx context.Context, _ *empty.Empty) (*wrapperspb.StringValue, error) {
	return wrapperspb.String(o.version.String()), nil
}

func channel(req *wrapperspb.UInt32Value) (uint16, error) {
	if req == nil {
		return 0, status.Error(codes.InvalidArgument, "nil request is invalid")
	}
	if !protocol.ValidChannel(req.GetValue()) {
		return 0, status.Errorf(codes.InvalidArgument, "channel %d is out of range", req.GetValue())
	}
	return uint16(req.GetValue()), nil
}

// toStatus maps overlay and context errors to grpc status codes
func toStatus(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, overlay.ErrFormattingOverflow):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, overlay.ErrStopped):
		return status.Error(codes.Unavailable, err.Error())
	case errors.Is(err, overlay.ErrBackendFault):
		return status.Error(codes.Internal, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, err.Error())
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, err.Error())
	default:
		return status.Error(codes.Unknown, err.Error())
	}
}
