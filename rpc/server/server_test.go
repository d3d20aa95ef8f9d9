package server

import (
	"context"
	"net"
	"sync"
	"testing"

	"github.com/zllovesuki/OverlayManager/controller"
	"github.com/zllovesuki/OverlayManager/overlay"
	"github.com/zllovesuki/OverlayManager/rpc/protocol"
	"github.com/zllovesuki/OverlayManager/system/remote"

	empty "github.com/golang/protobuf/ptypes/empty"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

type fakeOverlay struct {
	mu    sync.Mutex
	shown []overlay.Banner
	err   error
}

func (f *fakeOverlay) show(b overlay.Banner) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.shown = append(f.shown, b)
	return nil
}

func (f *fakeOverlay) ShowChannelNumber(_ context.Context, n uint16) error {
	return f.show(overlay.ChannelNumber{Number: n})
}

func (f *fakeOverlay) ShowChannelUnavailable(_ context.Context, n uint16) error {
	return f.show(overlay.ChannelUnavailable{Number: n})
}

func (f *fakeOverlay) ShowChannelInfo(_ context.Context, n uint16, subs []string) error {
	return f.show(overlay.ChannelInfo{Number: n, Subtitles: subs})
}

func (f *fakeOverlay) ShowVolumeLevel(_ context.Context, v float64) error {
	return f.show(overlay.VolumeLevel{Fraction: v})
}

func (f *fakeOverlay) Snapshot(context.Context) (overlay.State, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.shown) == 0 {
		return overlay.State{}, nil
	}
	b := f.shown[len(f.shown)-1]
	return overlay.State{
		Active:        b.Kind(),
		Banner:        b,
		VolumeShowing: b.Kind() == overlay.KindVolumeLevel,
		Armed:         []overlay.Kind{b.Kind()},
	}, nil
}

type fakeTuner struct{}

func (fakeTuner) Status() controller.TunerState {
	return controller.TunerState{Channel: 5, Volume: 0.3}
}

func (fakeTuner) Lookup(n uint16) (controller.Channel, bool) {
	if n == 5 {
		return controller.Channel{Number: 5, Name: "News", Subtitles: []string{"srp", "eng"}}, true
	}
	return controller.Channel{}, false
}

type fakeKeys struct {
	pressed []remote.Key
}

func (f *fakeKeys) KeyPress(_ context.Context, k remote.Key) error {
	f.pressed = append(f.pressed, k)
	return nil
}

func dial(t *testing.T, o Overlay, keys KeyPresser) *grpc.ClientConn {
	lis := bufconn.Listen(1 << 16)
	s := grpc.NewServer()
	_, err := RegisterOverlayServer(s, o, fakeTuner{}, "1.2.0")
	require.NoError(t, err)
	_, err = RegisterRemoteServer(s, keys)
	require.NoError(t, err)
	go s.Serve(lis)

	conn, err := grpc.DialContext(context.Background(), "bufnet",
		grpc.WithContextDialer(func(context.Context, string) (net.Conn, error) {
			return lis.Dial()
		}),
		grpc.WithInsecure(),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		conn.Close()
		s.Stop()
	})
	return conn
}

func TestOverlayRoundTrip(t *testing.T) {
	o := &fakeOverlay{}
	conn := dial(t, o, &fakeKeys{})
	client := protocol.NewOverlayClient(conn)
	ctx := context.Background()

	_, err := client.ShowChannelNumber(ctx, wrapperspb.UInt32(42))
	require.NoError(t, err)

	req, err := protocol.ChannelInfo{Number: 42, Subtitles: []string{"eng"}}.Struct()
	require.NoError(t, err)
	_, err = client.ShowChannelInfo(ctx, req)
	require.NoError(t, err)

	_, err = client.ShowVolumeLevel(ctx, wrapperspb.Double(0.755))
	require.NoError(t, err)

	require.Equal(t, []overlay.Banner{
		overlay.ChannelNumber{Number: 42},
		overlay.ChannelInfo{Number: 42, Subtitles: []string{"eng"}},
		overlay.VolumeLevel{Fraction: 0.755},
	}, o.shown)

	resp, err := client.GetState(ctx, &empty.Empty{})
	require.NoError(t, err)
	st, err := protocol.StateFromStruct(resp)
	require.NoError(t, err)
	require.Equal(t, "VolumeLevel", st.Active)
	require.True(t, st.VolumeShowing)
	require.Equal(t, []string{"VolumeLevel"}, st.Armed)
	require.Equal(t, []string{"76%"}, st.Texts)
	require.Equal(t, uint16(5), st.Channel)
	require.Equal(t, "News", st.ChannelName)
	require.Equal(t, "srp, eng", st.Subtitles)

	v, err := client.GetVersion(ctx, &empty.Empty{})
	require.NoError(t, err)
	require.Equal(t, "1.2.0", v.GetValue())
}

func TestStateListsSubtitlesOnScreen(t *testing.T) {
	o := &fakeOverlay{}
	client := protocol.NewOverlayClient(dial(t, o, &fakeKeys{}))
	ctx := context.Background()

	req, err := protocol.ChannelInfo{Number: 42, Subtitles: []string{"eng", "fra", "deu"}}.Struct()
	require.NoError(t, err)
	_, err = client.ShowChannelInfo(ctx, req)
	require.NoError(t, err)

	resp, err := client.GetState(ctx, &empty.Empty{})
	require.NoError(t, err)
	st, err := protocol.StateFromStruct(resp)
	require.NoError(t, err)
	require.Equal(t, "eng, fra, deu", st.Subtitles)
	require.Equal(t, []string{"Channel 42", "Subs: 3"}, st.Texts)

	_, err = client.ShowChannelInfo(ctx, mustStruct(t, protocol.ChannelInfo{Number: 43}))
	require.NoError(t, err)
	resp, err = client.GetState(ctx, &empty.Empty{})
	require.NoError(t, err)
	st, err = protocol.StateFromStruct(resp)
	require.NoError(t, err)
	require.Empty(t, st.Subtitles)
}

func mustStruct(t *testing.T, info protocol.ChannelInfo) *structpb.Struct {
	s, err := info.Struct()
	require.NoError(t, err)
	return s
}

func TestOverlayStatusCodes(t *testing.T) {
	o := &fakeOverlay{}
	conn := dial(t, o, &fakeKeys{})
	client := protocol.NewOverlayClient(conn)
	ctx := context.Background()

	_, err := client.ShowChannelNumber(ctx, wrapperspb.UInt32(70000))
	require.Equal(t, codes.InvalidArgument, status.Code(err))

	cases := []struct {
		err  error
		code codes.Code
	}{
		{errors.Wrap(overlay.ErrFormattingOverflow, "too many"), codes.InvalidArgument},
		{overlay.ErrStopped, codes.Unavailable},
		{errors.Wrap(overlay.ErrBackendFault, "Flip"), codes.Internal},
		{errors.New("boom"), codes.Unknown},
	}
	for _, c := range cases {
		o.mu.Lock()
		o.err = c.err
		o.mu.Unlock()
		_, err := client.ShowChannelUnavailable(ctx, wrapperspb.UInt32(1))
		require.Equal(t, c.code, status.Code(err), "%v", c.err)
	}
}

func TestRegisterRejectsBadVersion(t *testing.T) {
	_, err := RegisterOverlayServer(grpc.NewServer(), &fakeOverlay{}, nil, "not a version")
	require.Error(t, err)

	_, err = RegisterOverlayServer(grpc.NewServer(), nil, nil, "1.0.0")
	require.Error(t, err)
}

func TestPressKey(t *testing.T) {
	keys := &fakeKeys{}
	conn := dial(t, &fakeOverlay{}, keys)
	client := protocol.NewRemoteClient(conn)
	ctx := context.Background()

	_, err := client.PressKey(ctx, wrapperspb.String("vol+"))
	require.NoError(t, err)
	_, err = client.PressKey(ctx, wrapperspb.String("7"))
	require.NoError(t, err)
	_, err = client.PressKey(ctx, wrapperspb.String("menu"))
	require.Equal(t, codes.InvalidArgument, status.Code(err))

	require.Equal(t, []remote.Key{remote.KeyVolumeUp, remote.Key7}, keys.pressed)
}
