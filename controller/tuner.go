package controller

import (
	"log"
	"math"
	"sort"
	"sync"

	"github.com/zllovesuki/OverlayManager/system/persist"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Channel is one entry of the lineup
type Channel struct {
	Number    uint16
	Name      string
	Subtitles []string
}

// TunerState is what the viewer last tuned to. It survives restarts.
type TunerState struct {
	Channel uint16  `yaml:"channel"`
	Volume  float64 `yaml:"volume"`
	Muted   bool    `yaml:"muted"`
}

// tuner holds the lineup and the current TunerState. It is persisted under the name "Tuner".
type tuner struct {
	mu      sync.RWMutex
	lineup  []Channel // sorted by number
	byNum   map[uint16]int
	state   TunerState
	initial TunerState
}

var _ persist.Registry = &tuner{}

func newTuner(lineup []Channel, initialVolume float64) (*tuner, error) {
	if len(lineup) == 0 {
		return nil, errors.New("[controller] empty channel lineup is invalid")
	}
	sorted := append([]Channel(nil), lineup...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Number < sorted[j].Number })

	byNum := make(map[uint16]int, len(sorted))
	for i, ch := range sorted {
		if _, ok := byNum[ch.Number]; ok {
			return nil, errors.Errorf("[controller] channel %d is listed twice", ch.Number)
		}
		byNum[ch.Number] = i
	}

	initial := TunerState{
		Channel: sorted[0].Number,
		Volume:  clampVolume(initialVolume),
	}
	return &tuner{
		lineup:  sorted,
		byNum:   byNum,
		state:   initial,
		initial: initial,
	}, nil
}

func clampVolume(v float64) float64 {
	switch {
	case math.IsNaN(v), v < 0:
		return 0
	case v > 1:
		return 1
	}
	// keep two decimals so repeated steps do not drift
	return math.Round(v*100) / 100
}

func (t *tuner) current() TunerState {
	t.mu.RLock()
	defer t.mu.RUnlock()

	return t.state
}

func (t *tuner) lookup(number uint16) (Channel, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	i, ok := t.byNum[number]
	if !ok {
		return Channel{}, false
	}
	return t.lineup[i], true
}

func (t *tuner) tune(number uint16) (Channel, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	i, ok := t.byNum[number]
	if !ok {
		return Channel{}, false
	}
	t.state.Channel = number
	return t.lineup[i], true
}

// step moves delta positions through the lineup, wrapping around both ends
func (t *tuner) step(delta int) Channel {
	t.mu.Lock()
	defer t.mu.Unlock()

	n := len(t.lineup)
	i := (t.byNum[t.state.Channel] + delta%n + n) % n
	t.state.Channel = t.lineup[i].Number
	return t.lineup[i]
}

// adjustVolume changes the volume by delta and unmutes. It returns the level to show.
func (t *tuner) adjustVolume(delta float64) float64 {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.state.Muted = false
	t.state.Volume = clampVolume(t.state.Volume + delta)
	return t.state.Volume
}

// toggleMute returns the level to show, zero while muted
func (t *tuner) toggleMute() float64 {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.state.Muted = !t.state.Muted
	if t.state.Muted {
		return 0
	}
	return t.state.Volume
}

func (t *tuner) Name() string {
	return "Tuner"
}

func (t *tuner) Value() interface{} {
	return t.current()
}

func (t *tuner) Load(node *yaml.Node) error {
	var s TunerState
	if err := node.Decode(&s); err != nil {
		return errors.Wrap(err, "[controller] malformed tuner state")
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	t.state = s
	return nil
}

// Apply repairs a state restored from an older lineup
func (t *tuner) Apply() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.byNum[t.state.Channel]; !ok {
		log.Printf("[controller] channel %d is no longer in the lineup, using %d\n", t.state.Channel, t.initial.Channel)
		t.state.Channel = t.initial.Channel
	}
	t.state.Volume = clampVolume(t.state.Volume)
	return nil
}

func (t *tuner) Close() error {
	return nil
}
