package overlay

import (
	"context"
	"image"
	"testing"

	"github.com/zllovesuki/OverlayManager/system/surface"
	"github.com/zllovesuki/OverlayManager/system/timer"

	"github.com/stretchr/testify/require"
)

func rasterManager(t *testing.T) (*Manager, *surface.Raster, context.Context) {
	r, err := surface.NewRaster(surface.RasterConfig{Width: 960, Height: 540})
	require.NoError(t, err)

	m, err := New(Config{Surface: r, Scheduler: timer.NewManual()})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	go m.Serve(ctx)
	t.Cleanup(func() {
		cancel()
		<-m.Done()
		r.Close()
	})
	return m, r, ctx
}

func TestPreemptionLeavesNoResidualPixels(t *testing.T) {
	m, r, ctx := rasterManager(t)
	require.NoError(t, m.ShowChannelNumber(ctx, 7))
	number := r.Frame()
	require.NoError(t, m.ShowChannelInfo(ctx, 7, nil))
	preempted := r.Frame()

	fresh, fr, freshCtx := rasterManager(t)
	require.NoError(t, fresh.ShowChannelInfo(freshCtx, 7, nil))
	expected := fr.Frame()

	require.Equal(t, expected.Pix, preempted.Pix)

	// the number was drawn near the top left corner, which is blank again
	corner := image.Rect(0, 0, 960/3, 540/3)
	require.NotZero(t, lit(number, corner))
	require.Zero(t, lit(preempted, corner))
}

func TestDismissBlanksEveryPixel(t *testing.T) {
	m, r, ctx := rasterManager(t)
	clock := m.Scheduler.(*timer.Manual)

	require.NoError(t, m.ShowVolumeLevel(ctx, 0.6))
	require.NotZero(t, lit(r.Frame(), r.Frame().Bounds()))

	clock.Advance(DefaultVolumeTimeout)
	s, err := m.Snapshot(ctx)
	require.NoError(t, err)
	require.Equal(t, KindNone, s.Active)
	require.Zero(t, lit(r.Frame(), r.Frame().Bounds()))

	// a bare present after the dismissal must not resurrect the volume bar
	require.NoError(t, m.Present(ctx))
	require.Zero(t, lit(r.Frame(), r.Frame().Bounds()))
}

func TestComposeStaysOnScreen(t *testing.T) {
	banners := []Banner{
		ChannelNumber{Number: 65535},
		ChannelUnavailable{Number: 65535},
		ChannelInfo{Number: 65535, Subtitles: []string{"eng", "deu"}},
		ChannelInfo{Number: 1},
		VolumeLevel{Fraction: 1},
	}
	for _, size := range []image.Point{{1920, 1080}, {1280, 720}, {720, 576}} {
		screen := image.Rect(0, 0, size.X, size.Y)
		for _, b := range banners {
			sc, err := b.compose(size.X, size.Y)
			require.NoError(t, err)
			for _, f := range append(sc.fills, sc.outlines...) {
				require.True(t, f.r.In(screen), "%v at %v: %v", b, size, f.r)
			}
			for _, l := range sc.labels {
				require.True(t, l.at.In(screen), "%v at %v: %v", b, size, l.at)
				require.Greater(t, l.size, 0)
			}
		}
	}
}

func TestChannelInfoPanelIsFramed(t *testing.T) {
	sc, err := ChannelInfo{Number: 1}.compose(1920, 1080)
	require.NoError(t, err)
	require.Len(t, sc.fills, 2)

	outer, inner := sc.fills[0], sc.fills[1]
	require.Equal(t, ColorFrame, outer.c)
	require.Equal(t, ColorPanel, inner.c)
	require.True(t, inner.r.In(outer.r))
	require.Equal(t, outer.r.Inset(5), inner.r)

	for _, l := range sc.labels {
		require.True(t, l.at.In(inner.r), "%q at %v", l.text, l.at)
	}
}

// lit counts the pixels that differ from the background
func lit(img *image.RGBA, r image.Rectangle) int {
	n := 0
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			if img.RGBAAt(x, y) != ColorBackground {
				n++
			}
		}
	}
	return n
}

func TestTexts(t *testing.T) {
	require.Equal(t, []string{"76%"}, Texts(VolumeLevel{Fraction: 0.755}))
	require.Equal(t, []string{"12"}, Texts(ChannelNumber{Number: 12}))
	require.Nil(t, Texts(ChannelInfo{Number: 1, Subtitles: []string{"english"}}))
}
