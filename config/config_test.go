package config

import (
	"context"
	"io/ioutil"
	"path/filepath"
	"testing"
	"time"

	"github.com/zllovesuki/OverlayManager/controller"
	"github.com/zllovesuki/OverlayManager/overlay"
	"github.com/zllovesuki/OverlayManager/system/surface"
	"github.com/zllovesuki/OverlayManager/system/timer"

	"github.com/stretchr/testify/require"
)

func TestDefaultsAreValid(t *testing.T) {
	conf, err := Parse(nil)
	require.NoError(t, err)
	require.Equal(t, Default(), conf)
	require.Equal(t, overlay.Timeouts{
		ChannelInfo:    overlay.DefaultChannelInfoTimeout,
		ChannelMessage: overlay.DefaultChannelMessageTimeout,
		Volume:         overlay.DefaultVolumeTimeout,
	}, conf.OverlayTimeouts())

	_, enabled := conf.Hid()
	require.False(t, enabled)
}

func TestParseOverridesDefaults(t *testing.T) {
	doc := `
display:
  width: 1280
  height: 720
  sinks: [sdl, terminal]
timeouts:
  volume: 3s
remote:
  vendor_id: 0x1915
  product_id: 0xaf11
controller:
  digit_delay: 1500ms
lineup:
  - number: 1
    name: News
    subtitles: [eng, fra]
  - number: 42
    name: Sports
grpc_address: 0.0.0.0:9000
`
	conf, err := Parse([]byte(doc))
	require.NoError(t, err)

	require.Equal(t, 1280, conf.Display.Width)
	require.Equal(t, []string{SinkSDL, SinkTerminal}, conf.Display.Sinks)
	require.Equal(t, time.Second*3, conf.Timeouts.Volume)
	require.Equal(t, overlay.DefaultChannelInfoTimeout, conf.Timeouts.ChannelInfo)
	require.Equal(t, time.Millisecond*1500, conf.Controller.DigitDelay)
	require.Equal(t, controller.DefaultVolumeStep, conf.Controller.VolumeStep)
	require.Equal(t, "0.0.0.0:9000", conf.GRPCAddress)

	require.Equal(t, []controller.Channel{
		{Number: 1, Name: "News", Subtitles: []string{"eng", "fra"}},
		{Number: 42, Name: "Sports"},
	}, conf.ChannelLineup())

	hid, enabled := conf.Hid()
	require.True(t, enabled)
	require.Equal(t, uint16(0x1915), hid.VendorID)
	require.Equal(t, uint16(0xaf11), hid.ProductID)

	raster := conf.Raster()
	require.Equal(t, 1280, raster.Width)
	require.Equal(t, 720, raster.Height)
}

func TestParseRejects(t *testing.T) {
	cases := map[string]string{
		"malformed":         "display: [",
		"tiny display":      "display: {width: 10, height: 10}",
		"unknown sink":      "display: {sinks: [hdmi]}",
		"negative deadline": "timeouts: {volume: -1s}",
		"duplicate channel": "lineup: [{number: 1, name: a}, {number: 1, name: b}]",
		"channel zero":      "lineup: [{number: 0, name: a}]",
		"long subtitle":     "lineup: [{number: 1, name: a, subtitles: [english]}]",
		"wide subtitle":     "lineup: [{number: 1, name: a, subtitles: [\"čes\"]}]",
		"empty subtitle":    "lineup: [{number: 1, name: a, subtitles: ['']}]",
		"unnamed channel":   "lineup: [{number: 1}]",
		"product missing":   "remote: {vendor_id: 1}",
		"bad address":       "grpc_address: nowhere",
		"volume step":       "controller: {volume_step: 2}",
		"empty state path":  "state_path: ''",
	}
	for name, doc := range cases {
		_, err := Parse([]byte(doc))
		require.Error(t, err, name)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	conf, err := Load(filepath.Join(dir, "missing.yaml"))
	require.NoError(t, err)
	require.Equal(t, Default(), conf)

	path := filepath.Join(dir, "overlay.yaml")
	require.NoError(t, ioutil.WriteFile(path, []byte("state_path: /var/lib/overlay/state.yaml\n"), 0644))
	conf, err = Load(path)
	require.NoError(t, err)
	require.Equal(t, "/var/lib/overlay/state.yaml", conf.StatePath)
	require.Equal(t, Default().Lineup, conf.Lineup)
}

func TestLineupFitsChannelInfo(t *testing.T) {
	doc := `
lineup:
  - {number: 5, name: Five, subtitles: [srp, eng, "ß"]}
  - {number: 6, name: Six}
`
	conf, err := Parse([]byte(doc))
	require.NoError(t, err)

	m, err := overlay.New(overlay.Config{
		Surface:   surface.NewRecorder(1920, 1080),
		Scheduler: timer.NewManual(),
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go m.Serve(ctx)

	for _, ch := range conf.ChannelLineup() {
		require.NoError(t, m.ShowChannelInfo(ctx, ch.Number, ch.Subtitles), "channel %d", ch.Number)
	}
}
