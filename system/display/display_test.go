package display

import (
	"context"
	"image"
	"image/color"
	"testing"
	"time"

	"github.com/zllovesuki/OverlayManager/system/remote"

	"github.com/gdamore/tcell/v2"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"github.com/thejerf/suture/v4"
)

func TestLatestKeepsNewest(t *testing.T) {
	l := NewLatest()
	first := image.NewRGBA(image.Rect(0, 0, 1, 1))
	second := image.NewRGBA(image.Rect(0, 0, 2, 2))

	require.NoError(t, l.Display(first))
	require.NoError(t, l.Display(second))

	select {
	case f := <-l.C():
		require.Same(t, second, f)
	default:
		t.Fatal("no frame")
	}
	select {
	case <-l.C():
		t.Fatal("stale frame left behind")
	default:
	}
}

// splitFrame is white above row split and red from it down
func splitFrame(w, h, split int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := color.RGBA{0xff, 0xff, 0xff, 0xff}
			if y >= split {
				c = color.RGBA{0xff, 0x00, 0x00, 0xff}
			}
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

func cellAt(screen tcell.SimulationScreen, x, y int) (tcell.SimCell, bool) {
	cells, w, h := screen.GetContents()
	if x >= w || y >= h || len(cells) < w*h {
		return tcell.SimCell{}, false
	}
	return cells[y*w+x], true
}

func TestTerminalPreview(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	keys := make(chan remote.Key, 4)
	term := NewTerminal(screen, keys)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	errCh := make(chan error, 1)
	go func() {
		errCh <- term.Serve(ctx)
	}()

	// the simulation screen is 80x25 cells, so an 80x50 frame maps one pixel per half cell
	require.NoError(t, term.Display(splitFrame(80, 50, 25)))

	white := tcell.NewRGBColor(0xff, 0xff, 0xff)
	red := tcell.NewRGBColor(0xff, 0x00, 0x00)
	require.Eventually(t, func() bool {
		c, ok := cellAt(screen, 0, 12)
		if !ok || len(c.Runes) == 0 || c.Runes[0] != halfBlock {
			return false
		}
		fg, bg, _ := c.Style.Decompose()
		return fg == white && bg == red
	}, time.Second*2, time.Millisecond*10)

	c, _ := cellAt(screen, 79, 0)
	fg, bg, _ := c.Style.Decompose()
	require.Equal(t, white, fg)
	require.Equal(t, white, bg)

	c, _ = cellAt(screen, 40, 24)
	fg, bg, _ = c.Style.Decompose()
	require.Equal(t, red, fg)
	require.Equal(t, red, bg)

	screen.InjectKey(tcell.KeyRune, '7', tcell.ModNone)
	screen.InjectKey(tcell.KeyUp, 0, tcell.ModNone)
	screen.InjectKey(tcell.KeyRune, 'x', tcell.ModNone)
	screen.InjectKey(tcell.KeyRune, 'm', tcell.ModNone)

	for _, expected := range []remote.Key{remote.Key7, remote.KeyChannelUp, remote.KeyMute} {
		select {
		case k := <-keys:
			require.Equal(t, expected, k)
		case <-time.After(time.Second * 2):
			t.Fatalf("missing %v", expected)
		}
	}

	screen.InjectKey(tcell.KeyCtrlC, 0, tcell.ModCtrl)
	select {
	case err := <-errCh:
		require.True(t, errors.Is(err, suture.ErrTerminateSupervisorTree))
	case <-time.After(time.Second * 2):
		t.Fatal("terminal did not stop")
	}
}

func TestTerminalStopsWithContext(t *testing.T) {
	term := NewTerminal(tcell.NewSimulationScreen("UTF-8"), nil)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() {
		errCh <- term.Serve(ctx)
	}()
	cancel()

	select {
	case err := <-errCh:
		require.NoError(t, err)
	case <-time.After(time.Second * 2):
		t.Fatal("terminal did not stop")
	}
}
