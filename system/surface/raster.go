package surface

import (
	"image"
	"image/color"
	"log"
	"os"
	"sync"

	"github.com/pkg/errors"
	"github.com/srwiley/rasterx"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// RasterConfig contains the configuration of an in-memory surface
type RasterConfig struct {
	Width    int
	Height   int
	FontPath string // empty selects the embedded Go Regular font
	Sinks    []Sink
}

// Raster is a double buffered surface backed by two RGBA images
type Raster struct {
	mu     sync.Mutex
	closed bool

	front *image.RGBA
	back  *image.RGBA

	font  *opentype.Font
	faces map[int]font.Face
	face  font.Face

	sinks []Sink
}

var _ Surface = &Raster{}

// NewRaster allocates both buffers and parses the font
func NewRaster(conf RasterConfig) (*Raster, error) {
	if conf.Width <= 0 || conf.Height <= 0 {
		return nil, errors.Errorf("surface: invalid screen size %dx%d", conf.Width, conf.Height)
	}

	data := goregular.TTF
	if conf.FontPath != "" {
		b, err := os.ReadFile(conf.FontPath)
		if err != nil {
			return nil, errors.Wrap(err, "surface: cannot read font")
		}
		data = b
	}
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, errors.Wrap(err, "surface: cannot parse font")
	}

	rect := image.Rect(0, 0, conf.Width, conf.Height)
	log.Printf("surface: raster %dx%d initialized\n", conf.Width, conf.Height)

	return &Raster{
		front: image.NewRGBA(rect),
		back:  image.NewRGBA(rect),
		font:  f,
		faces: make(map[int]font.Face),
		sinks: conf.Sinks,
	}, nil
}

// AddSink registers another receiver of flipped frames
func (r *Raster) AddSink(s Sink) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.sinks = append(r.sinks, s)
}

// Size satisfies Surface
func (r *Raster) Size() (int, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return 0, 0, ErrClosed
	}
	b := r.back.Bounds()
	return b.Dx(), b.Dy(), nil
}

// Clear satisfies Surface
func (r *Raster) Clear(c color.Color) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return ErrClosed
	}
	draw.Draw(r.back, r.back.Bounds(), &image.Uniform{c}, image.Point{}, draw.Src)
	return nil
}

// FillRectangle satisfies Surface
func (r *Raster) FillRectangle(rect image.Rectangle, c color.Color) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return ErrClosed
	}
	draw.Draw(r.back, rect.Intersect(r.back.Bounds()), &image.Uniform{c}, image.Point{}, draw.Src)
	return nil
}

// DrawRectangle satisfies Surface
func (r *Raster) DrawRectangle(rect image.Rectangle, c color.Color) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return ErrClosed
	}
	if rect.Empty() {
		return nil
	}

	b := r.back.Bounds()
	scanner := rasterx.NewScannerGV(b.Dx(), b.Dy(), r.back, b)
	dasher := rasterx.NewDasher(b.Dx(), b.Dy(), scanner)
	dasher.SetStroke(fixed.I(1), fixed.I(4), nil, nil, nil, rasterx.Miter, nil, 0)
	dasher.SetColor(c)
	// centre the stroke on the outermost pixel row/column so it stays inside rect
	rasterx.AddRect(
		float64(rect.Min.X)+0.5, float64(rect.Min.Y)+0.5,
		float64(rect.Max.X)-0.5, float64(rect.Max.Y)-0.5,
		0, dasher)
	dasher.Draw()
	return nil
}

// SetFont satisfies Surface
func (r *Raster) SetFont(sizePx int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return ErrClosed
	}
	if sizePx <= 0 {
		return errors.Errorf("surface: invalid font size %d", sizePx)
	}
	if face, ok := r.faces[sizePx]; ok {
		r.face = face
		return nil
	}
	face, err := opentype.NewFace(r.font, &opentype.FaceOptions{
		Size:    float64(sizePx),
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return errors.Wrapf(err, "surface: cannot create %dpx face", sizePx)
	}
	r.faces[sizePx] = face
	r.face = face
	return nil
}

// DrawText satisfies Surface
func (r *Raster) DrawText(text string, x, y int, align Align, c color.Color) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return ErrClosed
	}
	if r.face == nil {
		return errors.New("surface: no font selected")
	}

	width := font.MeasureString(r.face, text).Ceil()
	switch align {
	case AlignRight:
		x -= width
	case AlignCenter:
		x -= width / 2
	}

	d := &font.Drawer{
		Dst:  r.back,
		Src:  image.NewUniform(c),
		Face: r.face,
		Dot:  fixed.Point26_6{X: fixed.I(x), Y: fixed.I(y)},
	}
	d.DrawString(text)
	return nil
}

// Flip satisfies Surface. The previous front buffer becomes the back buffer with its content intact.
func (r *Raster) Flip() error {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return ErrClosed
	}
	r.front, r.back = r.back, r.front
	sinks := r.sinks
	var frame *image.RGBA
	if len(sinks) > 0 {
		frame = cloneRGBA(r.front)
	}
	r.mu.Unlock()

	for i, s := range sinks {
		f := frame
		if i < len(sinks)-1 {
			f = cloneRGBA(frame)
		}
		if err := s.Display(f); err != nil {
			return errors.Wrap(err, "surface: sink cannot display frame")
		}
	}
	return nil
}

// Frame returns a copy of the visible buffer
func (r *Raster) Frame() *image.RGBA {
	r.mu.Lock()
	defer r.mu.Unlock()

	return cloneRGBA(r.front)
}

// Close satisfies Surface
func (r *Raster) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return nil
	}
	r.closed = true

	var firstErr error
	for size, face := range r.faces {
		if err := face.Close(); err != nil && firstErr == nil {
			firstErr = errors.Wrapf(err, "surface: cannot close %dpx face", size)
		}
	}
	r.faces = nil
	r.face = nil
	log.Println("surface: raster released")
	return firstErr
}

func cloneRGBA(src *image.RGBA) *image.RGBA {
	dst := image.NewRGBA(src.Bounds())
	copy(dst.Pix, src.Pix)
	return dst
}
