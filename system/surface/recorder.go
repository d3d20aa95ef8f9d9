package surface

import (
	"fmt"
	"image"
	"image/color"
	"log"
	"sync"

	"github.com/pkg/errors"
)

// Op is one primitive call captured by Recorder
type Op struct {
	Name  string
	Rect  image.Rectangle
	Color color.Color
	Size  int
	Text  string
	Point image.Point
	Align Align
}

func (o Op) String() string {
	switch o.Name {
	case OpText:
		return fmt.Sprintf("%s(%q @%v %s)", o.Name, o.Text, o.Point, o.Align)
	case OpFont:
		return fmt.Sprintf("%s(%d)", o.Name, o.Size)
	case OpFill, OpOutline:
		return fmt.Sprintf("%s(%v)", o.Name, o.Rect)
	default:
		return o.Name
	}
}

// Names of the primitives, as recorded in Op.Name
const (
	OpClear   = "Clear"
	OpFill    = "FillRectangle"
	OpOutline = "DrawRectangle"
	OpFont    = "SetFont"
	OpText    = "DrawText"
	OpFlip    = "Flip"
	OpSize    = "Size"
)

// Recorder is a Surface that keeps the primitives of each buffer instead of pixels.
// It backs dry runs and lets tests inspect what is visible after every Flip.
type Recorder struct {
	mu      sync.Mutex
	width   int
	height  int
	verbose bool
	closed  bool

	front []Op
	back  []Op
	log   []Op
	flips int

	failOn map[string]error
}

var _ Surface = &Recorder{}

// NewRecorder returns a Recorder that reports the given screen size
func NewRecorder(width, height int) *Recorder {
	return &Recorder{
		width:  width,
		height: height,
		failOn: make(map[string]error),
	}
}

// NewDryRecorder returns a Recorder that also logs every frame it presents
func NewDryRecorder(width, height int) *Recorder {
	r := NewRecorder(width, height)
	r.verbose = true
	log.Printf("[dry run] surface: recording %dx%d without any display\n", width, height)
	return r
}

// FailOn makes every later call of the named primitive return err. A nil err removes the fault.
func (r *Recorder) FailOn(name string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err == nil {
		delete(r.failOn, name)
		return
	}
	r.failOn[name] = err
}

// Resize changes the size reported to the next Size call
func (r *Recorder) Resize(width, height int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.width, r.height = width, height
}

// Visible returns the primitives making up the front buffer
func (r *Recorder) Visible() []Op {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]Op(nil), r.front...)
}

// VisibleText returns the strings drawn on the front buffer, in drawing order
func (r *Recorder) VisibleText() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	texts := make([]string, 0, len(r.front))
	for _, op := range r.front {
		if op.Name == OpText {
			texts = append(texts, op.Text)
		}
	}
	return texts
}

// Pending returns the primitives drawn on the back buffer since it was last cleared
func (r *Recorder) Pending() []Op {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]Op(nil), r.back...)
}

// Log returns every primitive called so far, Size queries excluded
func (r *Recorder) Log() []Op {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]Op(nil), r.log...)
}

// Flips returns how many times the buffers were swapped
func (r *Recorder) Flips() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.flips
}

func (r *Recorder) check(name string) error {
	if r.closed {
		return ErrClosed
	}
	if err, ok := r.failOn[name]; ok {
		return errors.Wrapf(err, "surface: %s failed", name)
	}
	return nil
}

func (r *Recorder) record(op Op) {
	r.back = append(r.back, op)
	r.log = append(r.log, op)
}

// Size satisfies Surface
func (r *Recorder) Size() (int, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.check(OpSize); err != nil {
		return 0, 0, err
	}
	return r.width, r.height, nil
}

// Clear satisfies Surface
func (r *Recorder) Clear(c color.Color) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.check(OpClear); err != nil {
		return err
	}
	r.back = nil
	r.record(Op{Name: OpClear, Color: c})
	return nil
}

// FillRectangle satisfies Surface
func (r *Recorder) FillRectangle(rect image.Rectangle, c color.Color) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.check(OpFill); err != nil {
		return err
	}
	r.record(Op{Name: OpFill, Rect: rect, Color: c})
	return nil
}

// DrawRectangle satisfies Surface
func (r *Recorder) DrawRectangle(rect image.Rectangle, c color.Color) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.check(OpOutline); err != nil {
		return err
	}
	r.record(Op{Name: OpOutline, Rect: rect, Color: c})
	return nil
}

// SetFont satisfies Surface
func (r *Recorder) SetFont(sizePx int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.check(OpFont); err != nil {
		return err
	}
	r.record(Op{Name: OpFont, Size: sizePx})
	return nil
}

// DrawText satisfies Surface
func (r *Recorder) DrawText(text string, x, y int, align Align, c color.Color) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.check(OpText); err != nil {
		return err
	}
	r.record(Op{Name: OpText, Text: text, Point: image.Pt(x, y), Align: align, Color: c})
	return nil
}

// Flip satisfies Surface
func (r *Recorder) Flip() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.check(OpFlip); err != nil {
		return err
	}
	r.front, r.back = r.back, r.front
	r.flips++
	r.log = append(r.log, Op{Name: OpFlip})
	if r.verbose {
		log.Printf("[dry run] surface: frame %d: %v\n", r.flips, r.front)
	}
	return nil
}

// Close satisfies Surface
func (r *Recorder) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.closed = true
	return nil
}
