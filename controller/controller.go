package controller

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/zllovesuki/OverlayManager/system/persist"
	"github.com/zllovesuki/OverlayManager/system/remote"
	"github.com/zllovesuki/OverlayManager/util"

	"github.com/pkg/errors"
	"github.com/thejerf/suture/v4"
)

const (
	// DefaultDigitDelay defines how long the Controller waits for another digit before tuning
	DefaultDigitDelay = time.Second * 2
	// DefaultVolumeStep is the change applied by one volume key press
	DefaultVolumeStep = 0.05
	// MaxDigits is the longest channel number that can be keyed in
	MaxDigits = 4
)

const (
	fnPersistConfigs = iota // for debouncing persisting to the state file
	fnApplyConfigs          // for loading and re-applying configurations
	fnKeyPress              // for remote key presses, in order
	fnTune                  // for tuning once the viewer stops typing digits
)

// Overlay is the part of the overlay manager driven by the Controller
type Overlay interface {
	ShowChannelNumber(ctx context.Context, number uint16) error
	ShowChannelUnavailable(ctx context.Context, number uint16) error
	ShowChannelInfo(ctx context.Context, number uint16, subtitles []string) error
	ShowVolumeLevel(ctx context.Context, fraction float64) error
}

// Config contains the configurations for the controller
type Config struct {
	Overlay  Overlay
	Registry persist.ConfigRegistry

	Lineup        []Channel
	InitialVolume float64
	DigitDelay    time.Duration
	VolumeStep    float64
}

type workQueue struct {
	noisy chan<- interface{}
	clean <-chan util.DebounceEvent
}

// digitEntry is the channel number being keyed in
type digitEntry struct {
	active bool
	number uint16
	digits int
}

// Controller maps remote keys to banners and keeps the tuner state
type Controller struct {
	Config

	tuner *tuner
	entry digitEntry

	workQueueCh map[uint32]workQueue
	errorCh     chan error
	keyCodeCh   chan remote.Key
}

var _ suture.Service = &Controller{}

// New returns a Controller. The tuner state is registered to conf.Registry.
func New(conf Config) (*Controller, error) {
	if conf.Overlay == nil {
		return nil, errors.New("[controller] nil Overlay is invalid")
	}
	if conf.Registry == nil {
		return nil, errors.New("[controller] nil Registry is invalid")
	}
	if conf.DigitDelay <= 0 {
		conf.DigitDelay = DefaultDigitDelay
	}
	if conf.VolumeStep <= 0 {
		conf.VolumeStep = DefaultVolumeStep
	}

	t, err := newTuner(conf.Lineup, conf.InitialVolume)
	if err != nil {
		return nil, err
	}
	conf.Registry.Register(t)

	return &Controller{
		Config: conf,
		tuner:  t,

		workQueueCh: make(map[uint32]workQueue, 4),
		errorCh:     make(chan error, 1),
		keyCodeCh:   make(chan remote.Key, 8),
	}, nil
}

func (c *Controller) String() string {
	return "Controller"
}

// KeyCh returns the channel key sources write to
func (c *Controller) KeyCh() chan<- remote.Key {
	return c.keyCodeCh
}

// KeyPress queues a key press as if it came from the remote
func (c *Controller) KeyPress(ctx context.Context, key remote.Key) error {
	if !key.Known() {
		return errors.Errorf("[controller] unknown key %d", uint32(key))
	}
	select {
	case c.keyCodeCh <- key:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Status returns the current tuner state
func (c *Controller) Status() TunerState {
	return c.tuner.current()
}

// Lookup returns the lineup entry of a channel number
func (c *Controller) Lookup(number uint16) (Channel, bool) {
	return c.tuner.lookup(number)
}

func (c *Controller) initialize(haltCtx context.Context) {
	workQueueImmediate := []uint32{
		fnApplyConfigs,
		fnKeyPress,
	}
	for _, work := range workQueueImmediate {
		in, out := util.PassThrough(haltCtx)
		c.workQueueCh[work] = workQueue{
			noisy: in,
			clean: out,
		}
	}

	workQueueDebounced := []struct {
		code  uint32
		delay time.Duration
	}{
		{
			code:  fnPersistConfigs,
			delay: time.Second,
		},
		{
			code:  fnTune,
			delay: c.Config.DigitDelay,
		},
	}
	for _, work := range workQueueDebounced {
		in, out := util.Debounce(haltCtx, work.delay)
		c.workQueueCh[work.code] = workQueue{
			noisy: in,
			clean: out,
		}
	}
}

// Serve will start the controller loop and blocked until context cancel, or an error has occurred
func (c *Controller) Serve(haltCtx context.Context) error {
	ctx, cancel := context.WithCancel(haltCtx)
	var wg sync.WaitGroup
	defer func() {
		cancel()
		wg.Wait()
		c.Config.Registry.Close()
	}()

	log.Println("[controller] starting controller loop")

	c.initialize(ctx)

	// defined in controller_loop.go
	wg.Add(2)
	go func() {
		defer wg.Done()
		c.handleWorkQueue(ctx)
	}()
	go func() {
		defer wg.Done()
		c.handleKeyPress(ctx)
	}()

	// load and apply the saved tuner state
	select {
	case c.workQueueCh[fnApplyConfigs].noisy <- struct{}{}:
	case <-ctx.Done():
	}

	select {
	case <-ctx.Done():
		return nil
	case err := <-c.errorCh:
		log.Printf("[controller] unrecoverable error in controller loop: %v\n", err)
		return err
	}
}
