package display

import (
	"context"
	"image"
	"log"

	"github.com/zllovesuki/OverlayManager/system/remote"
	"github.com/zllovesuki/OverlayManager/system/surface"

	"github.com/gdamore/tcell/v2"
	"github.com/pkg/errors"
	"github.com/thejerf/suture/v4"
)

const halfBlock = '▀'

// Terminal previews the overlay in a terminal, two pixel rows per cell, and forwards
// key presses as remote keys
type Terminal struct {
	*Latest

	screen tcell.Screen
	keys   chan<- remote.Key
	last   *image.RGBA
}

var _ surface.Sink = &Terminal{}
var _ suture.Service = &Terminal{}

// NewTerminal returns a Terminal drawing to screen. keys may be nil.
func NewTerminal(screen tcell.Screen, keys chan<- remote.Key) *Terminal {
	return &Terminal{
		Latest: NewLatest(),
		screen: screen,
		keys:   keys,
	}
}

func (t *Terminal) String() string {
	return "TerminalSink"
}

// Serve owns the screen until haltCtx is cancelled. Ctrl-C stops the whole tree.
func (t *Terminal) Serve(haltCtx context.Context) error {
	if err := t.screen.Init(); err != nil {
		return errors.Wrap(suture.ErrDoNotRestart, err.Error())
	}
	defer t.screen.Fini()

	log.Println("[terminal] starting terminal preview")

	events := make(chan tcell.Event, 8)
	go func() {
		defer close(events)
		for {
			ev := t.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-haltCtx.Done():
				return
			}
		}
	}()

	t.render()

	for {
		select {
		case <-haltCtx.Done():
			log.Println("[terminal] exiting terminal preview")
			return nil
		case frame := <-t.C():
			t.last = frame
			t.render()
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			switch ev := ev.(type) {
			case *tcell.EventResize:
				t.screen.Sync()
				t.render()
			case *tcell.EventKey:
				if ev.Key() == tcell.KeyCtrlC {
					return errors.Wrap(suture.ErrTerminateSupervisorTree, "[terminal] interrupted")
				}
				t.forward(haltCtx, ev)
			}
		}
	}
}

func (t *Terminal) forward(haltCtx context.Context, ev *tcell.EventKey) {
	key, ok := remote.FromTerminal(ev)
	if !ok || t.keys == nil {
		return
	}
	select {
	case t.keys <- key:
	case <-haltCtx.Done():
	}
}

// render scales the last frame to the screen. Each cell shows the upper pixel in the
// foreground and the lower one in the background of a half block.
func (t *Terminal) render() {
	cols, rows := t.screen.Size()
	t.screen.Clear()
	if t.last == nil || cols == 0 || rows == 0 {
		t.screen.Show()
		return
	}
	b := t.last.Bounds()
	for cy := 0; cy < rows; cy++ {
		for cx := 0; cx < cols; cx++ {
			x := b.Min.X + cx*b.Dx()/cols
			top := b.Min.Y + (2*cy)*b.Dy()/(2*rows)
			bottom := b.Min.Y + (2*cy+1)*b.Dy()/(2*rows)
			style := tcell.StyleDefault.
				Foreground(cellColor(t.last, x, top)).
				Background(cellColor(t.last, x, bottom))
			t.screen.SetContent(cx, cy, halfBlock, nil, style)
		}
	}
	t.screen.Show()
}

func cellColor(img *image.RGBA, x, y int) tcell.Color {
	c := img.RGBAAt(x, y)
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}
