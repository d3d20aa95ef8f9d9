package overlay

import (
	"image"
	"image/color"
	"math"
	"strconv"

	"github.com/zllovesuki/OverlayManager/system/surface"
)

// Palette of the banners
var (
	ColorBackground = color.RGBA{0x00, 0x00, 0x00, 0xff}
	ColorText       = color.RGBA{0xff, 0xff, 0xff, 0xff}
	ColorFrame      = color.RGBA{0x80, 0x00, 0xff, 0xff}
	ColorPanel      = color.RGBA{0x5a, 0x00, 0xff, 0xff}
)

// Banners were designed for a 1080 line screen; every size below is a fraction of
// the current screen height or width.
const referenceHeight = 1080

type rect struct {
	r image.Rectangle
	c color.Color
}

type label struct {
	text  string
	size  int
	at    image.Point
	align surface.Align
}

// scene is one banner laid out in absolute pixels. Fills are painted first, then
// outlines, then labels.
type scene struct {
	fills    []rect
	outlines []rect
	labels   []label
}

// fontPx scales a font height given for the reference screen
func fontPx(h, px int) int {
	s := h * px / referenceHeight
	if s < 1 {
		return 1
	}
	return s
}

func frac(v int, f float64) int {
	return int(math.Round(float64(v) * f))
}

func (b ChannelNumber) compose(w, h int) (scene, error) {
	return scene{
		labels: []label{
			{text: strconv.Itoa(int(b.Number)), size: fontPx(h, 100), at: image.Pt(h/7, h/7), align: surface.AlignLeft},
		},
	}, nil
}

func (b ChannelUnavailable) compose(w, h int) (scene, error) {
	return scene{
		labels: []label{
			{text: unavailableLabel(b.Number), size: fontPx(h, 70), at: image.Pt(h/7, h/7), align: surface.AlignLeft},
		},
	}, nil
}

func (b ChannelInfo) compose(w, h int) (scene, error) {
	if _, err := FormatSubtitleList(b.Subtitles); err != nil {
		return scene{}, err
	}

	subs := label{text: noSubtitles, at: image.Pt(w*29/80, 0)}
	if n := len(b.Subtitles); n > 0 {
		text, err := FormatSubtitleCount(n)
		if err != nil {
			return scene{}, err
		}
		subs = label{text: text, at: image.Pt(w*9/20, 0)}
	}

	panel := image.Rect(w/4, frac(h, 5.3/6.5), w/4+w/2, frac(h, 5.3/6.5)+h/6)
	inset := fontPx(h, 5)
	panelH := panel.Dy()

	subs.size = fontPx(h, 48)
	subs.at.Y = panel.Min.Y + panelH*7/9
	subs.align = surface.AlignLeft

	return scene{
		fills: []rect{
			{r: panel, c: ColorFrame},
			{r: panel.Inset(inset), c: ColorPanel},
		},
		labels: []label{
			{text: channelLabel(b.Number), size: fontPx(h, 68), at: image.Pt(w*4/10, panel.Min.Y+panelH*4/9), align: surface.AlignLeft},
			subs,
		},
	}, nil
}

func (b VolumeLevel) compose(w, h int) (scene, error) {
	f := b.clamped()

	track := image.Rect(frac(w, 0.9), frac(h, 0.08), frac(w, 0.9)+w/14, frac(h, 0.08)+frac(h, 0.62))
	bar := image.Rect(frac(w, 0.91), frac(h, 0.10), frac(w, 0.91)+w/19, frac(h, 0.10)+frac(h, 0.5))
	level := bar
	level.Min.Y = bar.Max.Y - int(math.Round(f*float64(bar.Dy())))

	s := scene{
		fills: []rect{{r: track, c: ColorPanel}},
		outlines: []rect{
			{r: bar, c: ColorText},
		},
		labels: []label{
			{text: FormatPercent(f), size: fontPx(h, 38), at: image.Pt(frac(w, 0.96), frac(h, 0.68)), align: surface.AlignRight},
		},
	}
	if !level.Empty() {
		s.fills = append(s.fills, rect{r: level, c: ColorText})
	}
	return s, nil
}

// paint clears the back buffer and draws the scene on it
func (s scene) paint(sf surface.Surface) error {
	if err := sf.Clear(ColorBackground); err != nil {
		return fault("Clear", err)
	}
	for _, f := range s.fills {
		if err := sf.FillRectangle(f.r, f.c); err != nil {
			return fault("FillRectangle", err)
		}
	}
	for _, o := range s.outlines {
		if err := sf.DrawRectangle(o.r, o.c); err != nil {
			return fault("DrawRectangle", err)
		}
	}
	size := 0
	for _, l := range s.labels {
		if l.size != size {
			if err := sf.SetFont(l.size); err != nil {
				return fault("SetFont", err)
			}
			size = l.size
		}
		if err := sf.DrawText(l.text, l.at.X, l.at.Y, l.align, ColorText); err != nil {
			return fault("DrawText", err)
		}
	}
	return nil
}

func (s scene) texts() []string {
	t := make([]string, 0, len(s.labels))
	for _, l := range s.labels {
		t = append(t, l.text)
	}
	return t
}

// Texts returns the labels b draws, or nil if b cannot be formatted
func Texts(b Banner) []string {
	sc, err := b.compose(referenceHeight*16/9, referenceHeight)
	if err != nil {
		return nil
	}
	return sc.texts()
}
