package client

import (
	"context"
	"time"

	"github.com/zllovesuki/OverlayManager/rpc/protocol"

	"github.com/Masterminds/semver"
	empty "github.com/golang/protobuf/ptypes/empty"
	"github.com/pkg/errors"
	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// DefaultDialTimeout bounds connecting and the version handshake
const DefaultDialTimeout = time.Second * 2

// Client talks to a running manager over gRPC
type Client struct {
	conn    *grpc.ClientConn
	overlay protocol.OverlayClient
	remote  protocol.RemoteClient

	version string
}

// Dial connects to the manager at address and refuses it when its version is not compatible
// with clientVersion
func Dial(haltCtx context.Context, address, clientVersion string, opts ...grpc.DialOption) (*Client, error) {
	ctx, cancel := context.WithTimeout(haltCtx, DefaultDialTimeout)
	defer cancel()

	opts = append([]grpc.DialOption{grpc.WithInsecure(), grpc.WithBlock()}, opts...)
	conn, err := grpc.DialContext(ctx, address, opts...)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot connect to manager at %s", address)
	}

	c := &Client{
		conn:    conn,
		overlay: protocol.NewOverlayClient(conn),
		remote:  protocol.NewRemoteClient(conn),
	}

	v, err := c.overlay.GetVersion(ctx, &empty.Empty{})
	if err != nil {
		conn.Close()
		return nil, errors.Wrap(err, "cannot get manager version")
	}
	if err := Compatible(v.GetValue(), clientVersion); err != nil {
		conn.Close()
		return nil, err
	}
	c.version = v.GetValue()

	return c, nil
}

// Compatible returns an error unless both versions share the major version. Below 1.0.0 the
// minor version has to match as well.
func Compatible(server, client string) error {
	s, err := semver.NewVersion(server)
	if err != nil {
		return errors.Wrapf(err, "invalid manager version %q", server)
	}
	c, err := semver.NewVersion(client)
	if err != nil {
		return errors.Wrapf(err, "invalid client version %q", client)
	}
	if s.Major() != c.Major() || (s.Major() == 0 && s.Minor() != c.Minor()) {
		return errors.Errorf("manager version %s is not compatible with client version %s", s, c)
	}
	return nil
}

// ServerVersion is the version reported by the manager during Dial
func (c *Client) ServerVersion() string {
	return c.version
}

func (c *Client) Close() error {
	return c.conn.Close()
}

// PressKey sends a remote key by name, e.g. "vol+" or "7"
func (c *Client) PressKey(ctx context.Context, name string) error {
	_, err := c.remote.PressKey(ctx, wrapperspb.String(name))
	return err
}

func (c *Client) ShowChannelNumber(ctx context.Context, number uint16) error {
	_, err := c.overlay.ShowChannelNumber(ctx, wrapperspb.UInt32(uint32(number)))
	return err
}

func (c *Client) ShowChannelUnavailable(ctx context.Context, number uint16) error {
	_, err := c.overlay.ShowChannelUnavailable(ctx, wrapperspb.UInt32(uint32(number)))
	return err
}

func (c *Client) ShowChannelInfo(ctx context.Context, number uint16, subtitles []string) error {
	req, err := protocol.ChannelInfo{Number: number, Subtitles: subtitles}.Struct()
	if err != nil {
		return err
	}
	_, err = c.overlay.ShowChannelInfo(ctx, req)
	return err
}

func (c *Client) ShowVolumeLevel(ctx context.Context, fraction float64) error {
	_, err := c.overlay.ShowVolumeLevel(ctx, wrapperspb.Double(fraction))
	return err
}

// State returns what the manager is showing and what the viewer is tuned to
func (c *Client) State(ctx context.Context) (protocol.State, error) {
	resp, err := c.overlay.GetState(ctx, &empty.Empty{})
	if err != nil {
		return protocol.State{}, err
	}
	return protocol.StateFromStruct(resp)
}
