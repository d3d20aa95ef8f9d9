package surface

import (
	"fmt"
	"image"
	"image/color"

	"github.com/pkg/errors"
)

// Align defines where the anchor point sits relative to the drawn text
type Align int

// Text alignments
const (
	AlignLeft Align = iota
	AlignRight
	AlignCenter
)

func (a Align) String() string {
	switch a {
	case AlignLeft:
		return "left"
	case AlignRight:
		return "right"
	case AlignCenter:
		return "center"
	default:
		return fmt.Sprintf("Align(%d)", int(a))
	}
}

// ErrClosed is returned by every primitive once the surface has been released
var ErrClosed = errors.New("surface: already closed")

// Surface is a full screen, double buffered drawing target. Drawing goes to the back
// buffer and only becomes visible after Flip.
type Surface interface {
	// Size returns the current screen size in pixels. Callers should not cache it.
	Size() (width int, height int, err error)
	// Clear fills the whole back buffer with c
	Clear(c color.Color) error
	// FillRectangle paints r with c
	FillRectangle(r image.Rectangle, c color.Color) error
	// DrawRectangle strokes a one pixel outline along the inside of r
	DrawRectangle(r image.Rectangle, c color.Color) error
	// SetFont selects the font height in pixels for subsequent DrawText calls
	SetFont(sizePx int) error
	// DrawText renders text with its baseline at y, anchored at x according to align
	DrawText(text string, x, y int, align Align, c color.Color) error
	// Flip swaps the back and front buffers
	Flip() error
	// Close releases the surface
	Close() error
}

// Sink receives every frame made visible by Flip. The frame is owned by the sink.
type Sink interface {
	Display(frame *image.RGBA) error
}
