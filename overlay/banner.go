package overlay

import (
	"fmt"
	"math"
	"strings"
)

// Kind identifies which banner occupies the screen
type Kind int

// Banner kinds. KindNone means the screen is idle.
const (
	KindNone Kind = iota
	KindChannelNumber
	KindChannelUnavailable
	KindChannelInfo
	KindVolumeLevel
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "Idle"
	case KindChannelNumber:
		return "ChannelNumber"
	case KindChannelUnavailable:
		return "ChannelUnavailable"
	case KindChannelInfo:
		return "ChannelInfo"
	case KindVolumeLevel:
		return "VolumeLevel"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// ParseKind is the inverse of Kind.String
func ParseKind(s string) (Kind, bool) {
	for k := KindNone; k <= KindVolumeLevel; k++ {
		if strings.EqualFold(k.String(), s) {
			return k, true
		}
	}
	return KindNone, false
}

// Banner is the payload of one show request. The set of banners is closed.
type Banner interface {
	Kind() Kind
	// compose lays the banner out for a w x h screen without touching the surface
	compose(w, h int) (scene, error)
}

// ChannelNumber is the "currently tuning" indicator. It has no deadline and stays until replaced.
type ChannelNumber struct {
	Number uint16
}

// ChannelUnavailable tells the viewer that the requested channel does not exist
type ChannelUnavailable struct {
	Number uint16
}

// ChannelInfo is the framed panel with the channel number and its subtitle languages
type ChannelInfo struct {
	Number    uint16
	Subtitles []string
}

// VolumeLevel is the volume bar. Fraction is clamped into [0, 1].
type VolumeLevel struct {
	Fraction float64
}

func (ChannelNumber) Kind() Kind      { return KindChannelNumber }
func (ChannelUnavailable) Kind() Kind { return KindChannelUnavailable }
func (ChannelInfo) Kind() Kind        { return KindChannelInfo }
func (VolumeLevel) Kind() Kind        { return KindVolumeLevel }

func (b ChannelNumber) String() string {
	return fmt.Sprintf("ChannelNumber(%d)", b.Number)
}

func (b ChannelUnavailable) String() string {
	return fmt.Sprintf("ChannelUnavailable(%d)", b.Number)
}

func (b ChannelInfo) String() string {
	return fmt.Sprintf("ChannelInfo(%d, %v)", b.Number, b.Subtitles)
}

func (b VolumeLevel) String() string {
	return fmt.Sprintf("VolumeLevel(%.3f)", b.Fraction)
}

// clamped returns Fraction limited to [0, 1], NaN counting as 0
func (b VolumeLevel) clamped() float64 {
	switch {
	case math.IsNaN(b.Fraction), b.Fraction < 0:
		return 0
	case b.Fraction > 1:
		return 1
	default:
		return b.Fraction
	}
}
