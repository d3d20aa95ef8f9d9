package overlay

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

const (
	// MaxSubtitleCount is the largest count the four digit "Subs" field can hold
	MaxSubtitleCount = 9999
	// MaxLanguageCode is the longest subtitle language code, in bytes (ISO 639-2)
	MaxLanguageCode = 3

	noSubtitles = "No available subtitles"
)

// VolumePercent converts a volume fraction into a whole percentage, rounding half up.
// The fraction is first clamped into [0, 1] and the scaled value is snapped to six
// decimals so that 0.755 is treated as 75.5 and not 75.49999.
func VolumePercent(fraction float64) int {
	f := VolumeLevel{Fraction: fraction}.clamped()
	scaled := math.Round(f*100*1e6) / 1e6
	return int(math.Floor(scaled + 0.5))
}

// FormatPercent renders the volume label, at most "100%"
func FormatPercent(fraction float64) string {
	return strconv.Itoa(VolumePercent(fraction)) + "%"
}

// FormatSubtitleCount renders "Subs: {count}" for 1 <= count <= MaxSubtitleCount
func FormatSubtitleCount(count int) (string, error) {
	if count < 1 || count > MaxSubtitleCount {
		return "", overflow("[overlay] subtitle count %d does not fit a 4 digit field", count)
	}
	return "Subs: " + strconv.Itoa(count), nil
}

// FormatSubtitleList joins language codes with ", ". Each code is at most MaxLanguageCode
// bytes, so the result never exceeds 5n-2 bytes for n codes.
func FormatSubtitleList(langs []string) (string, error) {
	if len(langs) == 0 {
		return "", nil
	}
	if len(langs) > MaxSubtitleCount {
		return "", overflow("[overlay] %d subtitle languages", len(langs))
	}

	var b strings.Builder
	b.Grow(subtitleListCapacity(len(langs)))
	for i, code := range langs {
		if code == "" || len(code) > MaxLanguageCode {
			return "", overflow("[overlay] language code %q", code)
		}
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(code)
	}
	return b.String(), nil
}

func subtitleListCapacity(n int) int {
	if n <= 0 {
		return 0
	}
	return (MaxLanguageCode+2)*n - 2
}

func channelLabel(n uint16) string {
	return fmt.Sprintf("Channel %d", n)
}

func unavailableLabel(n uint16) string {
	return fmt.Sprintf("Channel %d doesn't exist", n)
}
