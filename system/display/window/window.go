package window

import (
	"context"
	"image"
	"log"
	"runtime"
	"time"

	"github.com/zllovesuki/OverlayManager/system/display"
	"github.com/zllovesuki/OverlayManager/system/remote"
	"github.com/zllovesuki/OverlayManager/system/surface"

	"github.com/pkg/errors"
	"github.com/thejerf/suture/v4"
	"github.com/veandco/go-sdl2/sdl"
)

const (
	pixelDepth   = 4
	pollInterval = time.Millisecond * 16
)

type Config struct {
	Title      string
	Width      int
	Height     int
	Fullscreen bool
	// Keys receives the keyboard as remote keys. Optional.
	Keys chan<- remote.Key
}

// Window shows presented frames in an SDL window. All SDL calls happen on the
// goroutine running Serve, which is locked to its OS thread.
type Window struct {
	*display.Latest

	conf Config
}

var _ surface.Sink = &Window{}
var _ suture.Service = &Window{}

func New(conf Config) (*Window, error) {
	if conf.Width <= 0 || conf.Height <= 0 {
		return nil, errors.Errorf("[window] invalid size %dx%d", conf.Width, conf.Height)
	}
	if conf.Title == "" {
		conf.Title = "OverlayManager"
	}
	return &Window{
		Latest: display.NewLatest(),
		conf:   conf,
	}, nil
}

func (w *Window) String() string {
	return "SDLWindow"
}

func (w *Window) Serve(haltCtx context.Context) error {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	if err := sdl.Init(sdl.INIT_VIDEO); err != nil {
		log.Printf("[window] SDL not available: %s\n", err)
		return errors.Wrap(suture.ErrDoNotRestart, err.Error())
	}
	defer sdl.Quit()

	flags := uint32(sdl.WINDOW_SHOWN)
	if w.conf.Fullscreen {
		flags |= sdl.WINDOW_FULLSCREEN_DESKTOP
	}
	window, err := sdl.CreateWindow(w.conf.Title,
		sdl.WINDOWPOS_CENTERED, sdl.WINDOWPOS_CENTERED,
		int32(w.conf.Width), int32(w.conf.Height),
		flags)
	if err != nil {
		return errors.Wrap(err, "[window] cannot create window")
	}
	defer window.Destroy()

	renderer, err := sdl.CreateRenderer(window, -1, uint32(sdl.RENDERER_ACCELERATED))
	if err != nil {
		return errors.Wrap(err, "[window] cannot create renderer")
	}
	defer renderer.Destroy()

	// the texture has the size of the surface; the renderer scales it to the window
	texture, err := renderer.CreateTexture(uint32(sdl.PIXELFORMAT_ABGR8888), int(sdl.TEXTUREACCESS_STREAMING),
		int32(w.conf.Width), int32(w.conf.Height))
	if err != nil {
		return errors.Wrap(err, "[window] cannot create texture")
	}
	defer texture.Destroy()

	log.Printf("[window] showing %dx%d frames\n", w.conf.Width, w.conf.Height)

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-haltCtx.Done():
			log.Println("[window] closing window")
			return nil
		case frame := <-w.C():
			if err := upload(texture, frame, w.conf.Width, w.conf.Height); err != nil {
				return err
			}
			if err := renderer.Clear(); err != nil {
				return errors.Wrap(err, "[window] cannot clear renderer")
			}
			if err := renderer.Copy(texture, nil, nil); err != nil {
				return errors.Wrap(err, "[window] cannot copy texture")
			}
			renderer.Present()
		case <-ticker.C:
			for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
				switch event := event.(type) {
				case *sdl.QuitEvent:
					return errors.Wrap(suture.ErrTerminateSupervisorTree, "[window] window closed")
				case *sdl.KeyboardEvent:
					if event.Type != sdl.KEYDOWN || event.Repeat != 0 {
						continue
					}
					w.forward(haltCtx, event.Keysym.Sym)
				}
			}
		}
	}
}

func (w *Window) forward(haltCtx context.Context, sym sdl.Keycode) {
	key, ok := FromKeycode(sym)
	if !ok || w.conf.Keys == nil {
		return
	}
	select {
	case w.conf.Keys <- key:
	case <-haltCtx.Done():
	}
}

// upload copies frame row by row into the streaming texture, honoring both pitches
func upload(texture *sdl.Texture, frame *image.RGBA, width, height int) error {
	pixels, pitch, err := texture.Lock(nil)
	if err != nil {
		return errors.Wrap(err, "[window] cannot lock texture")
	}
	defer texture.Unlock()

	b := frame.Bounds()
	rows := b.Dy()
	if rows > height {
		rows = height
	}
	cols := b.Dx()
	if cols > width {
		cols = width
	}
	for y := 0; y < rows; y++ {
		src := frame.Pix[y*frame.Stride : y*frame.Stride+cols*pixelDepth]
		copy(pixels[y*pitch:], src)
	}
	return nil
}
