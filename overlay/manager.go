package overlay

import (
	"context"
	"log"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/zllovesuki/OverlayManager/system/surface"
	"github.com/zllovesuki/OverlayManager/system/timer"

	"github.com/pkg/errors"
	"github.com/thejerf/suture/v4"
)

// Default deadlines of the auto-dismissing banners
const (
	DefaultChannelInfoTimeout    = time.Second * 4
	DefaultChannelMessageTimeout = time.Second * 4
	DefaultVolumeTimeout         = time.Second * 2
)

// Timeouts sets how long each auto-dismissing banner stays up. Zero selects the default.
type Timeouts struct {
	ChannelInfo    time.Duration
	ChannelMessage time.Duration
	Volume         time.Duration
}

// Config contains the collaborators of the Manager
type Config struct {
	Surface   surface.Surface
	Scheduler timer.Scheduler
	Timeouts  Timeouts
	// QueueSize bounds the number of show requests and dismissals waiting for the loop
	QueueSize int
}

// State is a snapshot of what the manager is showing
type State struct {
	Active             Kind
	Banner             Banner // nil when idle
	ChannelInfoShowing bool
	VolumeShowing      bool
	Armed              []Kind // kinds owning a live deadline
}

type operation int

const (
	opShow operation = iota
	opPresent
	opSnapshot
)

type reply struct {
	state State
	err   error
}

type request struct {
	op     operation
	banner Banner
	reply  chan reply
}

// dismissal is posted by a deadline when it expires
type dismissal struct {
	kind       Kind
	generation uint64
}

type deadline struct {
	handle     timer.Handle
	generation uint64
}

// Manager owns the screen and the banner deadlines. Show requests and expired deadlines
// travel through one queue drained by Serve, so every surface call happens on the loop.
type Manager struct {
	Config

	queue    chan interface{}
	done     chan struct{}
	doneOnce sync.Once
	serving  int32
	fatal    atomic.Value // error

	// owned by the loop
	state      State
	deadlines  map[Kind]deadline
	generation uint64
}

var _ suture.Service = &Manager{}

// New validates the configuration and returns a Manager. Nothing is drawn until Serve runs.
func New(conf Config) (*Manager, error) {
	if conf.Surface == nil {
		return nil, errors.New("[overlay] nil Surface is invalid")
	}
	if conf.Scheduler == nil {
		return nil, errors.New("[overlay] nil Scheduler is invalid")
	}

	defaults := []struct {
		t   *time.Duration
		def time.Duration
	}{
		{&conf.Timeouts.ChannelInfo, DefaultChannelInfoTimeout},
		{&conf.Timeouts.ChannelMessage, DefaultChannelMessageTimeout},
		{&conf.Timeouts.Volume, DefaultVolumeTimeout},
	}
	for _, d := range defaults {
		if *d.t < 0 {
			return nil, errors.Wrapf(ErrInvalidTimeout, "got %s", *d.t)
		}
		if *d.t == 0 {
			*d.t = d.def
		}
	}
	if conf.QueueSize <= 0 {
		conf.QueueSize = 16
	}

	return &Manager{
		Config:    conf,
		queue:     make(chan interface{}, conf.QueueSize),
		done:      make(chan struct{}),
		deadlines: make(map[Kind]deadline, 3),
	}, nil
}

func (m *Manager) String() string {
	return "OverlayManager"
}

// Err returns the fault that stopped the manager, if any
func (m *Manager) Err() error {
	if err, ok := m.fatal.Load().(error); ok {
		return err
	}
	return nil
}

// Done is closed once the loop has exited and every deadline is cancelled
func (m *Manager) Done() <-chan struct{} {
	return m.done
}

// Serve runs the manager loop until haltCtx is cancelled or the surface fails.
// A Manager can only be served once.
func (m *Manager) Serve(haltCtx context.Context) error {
	if !atomic.CompareAndSwapInt32(&m.serving, 0, 1) {
		return errors.Wrap(suture.ErrDoNotRestart, ErrStopped.Error())
	}
	defer m.doneOnce.Do(func() {
		m.cancelDeadlines()
		close(m.done)
	})

	log.Println("[overlay] starting overlay loop")

	for {
		select {
		case msg := <-m.queue:
			var err error
			switch msg := msg.(type) {
			case *request:
				err = m.handle(msg)
			case dismissal:
				err = m.dismiss(msg)
			}
			if err != nil {
				log.Printf("[overlay] unrecoverable error: %v\n", err)
				m.fatal.Store(err)
				return errors.Wrap(suture.ErrTerminateSupervisorTree, err.Error())
			}
		case <-haltCtx.Done():
			log.Println("[overlay] exiting overlay loop")
			return nil
		}
	}
}

// ShowChannelNumber shows the channel number being tuned until another banner replaces it
func (m *Manager) ShowChannelNumber(ctx context.Context, number uint16) error {
	return m.Show(ctx, ChannelNumber{Number: number})
}

// ShowChannelUnavailable tells the viewer the channel does not exist
func (m *Manager) ShowChannelUnavailable(ctx context.Context, number uint16) error {
	return m.Show(ctx, ChannelUnavailable{Number: number})
}

// ShowChannelInfo shows the channel panel with its subtitle count
func (m *Manager) ShowChannelInfo(ctx context.Context, number uint16, subtitles []string) error {
	return m.Show(ctx, ChannelInfo{Number: number, Subtitles: subtitles})
}

// ShowVolumeLevel shows the volume bar
func (m *Manager) ShowVolumeLevel(ctx context.Context, fraction float64) error {
	return m.Show(ctx, VolumeLevel{Fraction: fraction})
}

// Show replaces whatever is on screen with b and makes it visible before returning
func (m *Manager) Show(ctx context.Context, b Banner) error {
	if b == nil {
		return errors.New("[overlay] nil Banner is invalid")
	}
	_, err := m.do(ctx, &request{op: opShow, banner: b})
	return err
}

// Present flips the surface buffers
func (m *Manager) Present(ctx context.Context) error {
	_, err := m.do(ctx, &request{op: opPresent})
	return err
}

// Snapshot returns the state once every request queued before it has been handled
func (m *Manager) Snapshot(ctx context.Context) (State, error) {
	r, err := m.do(ctx, &request{op: opSnapshot})
	return r.state, err
}

func (m *Manager) do(ctx context.Context, req *request) (reply, error) {
	req.reply = make(chan reply, 1)

	select {
	case <-m.done:
		return reply{}, ErrStopped
	default:
	}

	select {
	case m.queue <- req:
	case <-m.done:
		return reply{}, ErrStopped
	case <-ctx.Done():
		return reply{}, ctx.Err()
	}

	select {
	case r := <-req.reply:
		return r, r.err
	case <-m.done:
		select {
		case r := <-req.reply:
			return r, r.err
		default:
			return reply{}, ErrStopped
		}
	case <-ctx.Done():
		return reply{}, ctx.Err()
	}
}

// post is called from the scheduler when a deadline expires
func (m *Manager) post(d dismissal) {
	select {
	case m.queue <- d:
	case <-m.done:
	}
}

// handle returns an error only when the loop must stop; the caller always gets its reply
func (m *Manager) handle(req *request) error {
	var err error
	switch req.op {
	case opShow:
		err = m.show(req.banner)
	case opPresent:
		err = fault("Flip", m.Surface.Flip())
	}
	req.reply <- reply{state: m.snapshot(), err: err}

	if errors.Is(err, ErrBackendFault) {
		return err
	}
	return nil
}

func (m *Manager) show(b Banner) error {
	w, h, err := m.Surface.Size()
	if err != nil {
		return fault("Size", err)
	}
	sc, err := b.compose(w, h)
	if err != nil {
		log.Printf("[overlay] rejecting %v: %v\n", b, err)
		return err
	}

	m.cancelDeadlines()

	kind := b.Kind()
	m.state = State{Active: kind, Banner: b}

	if err := sc.paint(m.Surface); err != nil {
		m.state = State{}
		return err
	}
	if err := m.Surface.Flip(); err != nil {
		m.state = State{}
		return fault("Flip", err)
	}

	switch kind {
	case KindChannelUnavailable:
		m.arm(kind, m.Timeouts.ChannelMessage)
	case KindChannelInfo:
		m.state.ChannelInfoShowing = true
		m.arm(kind, m.Timeouts.ChannelInfo)
	case KindVolumeLevel:
		m.state.VolumeShowing = true
		m.arm(kind, m.Timeouts.Volume)
	}

	log.Printf("[overlay] showing %v %q\n", kind, sc.texts())
	if info, ok := b.(ChannelInfo); ok && len(info.Subtitles) > 0 {
		// compose already accepted the list
		list, _ := FormatSubtitleList(info.Subtitles)
		log.Printf("[overlay] channel %d subtitles: %s\n", info.Number, list)
	}
	return nil
}

func (m *Manager) arm(kind Kind, d time.Duration) {
	m.generation++
	gen := m.generation
	h := m.Scheduler.Arm(d, func() {
		m.post(dismissal{kind: kind, generation: gen})
	})
	m.deadlines[kind] = deadline{handle: h, generation: gen}
}

func (m *Manager) cancelDeadlines() {
	for kind, d := range m.deadlines {
		d.handle.Cancel()
		delete(m.deadlines, kind)
	}
}

func (m *Manager) dismiss(d dismissal) error {
	live, ok := m.deadlines[d.kind]
	if !ok || live.generation != d.generation {
		log.Printf("[overlay] ignoring stale %v deadline\n", d.kind)
		return nil
	}
	delete(m.deadlines, d.kind)

	switch d.kind {
	case KindChannelInfo:
		m.state.ChannelInfoShowing = false
	case KindVolumeLevel:
		if m.state.ChannelInfoShowing {
			log.Println("[overlay] channel info is showing, keeping the screen")
			return nil
		}
		m.state.VolumeShowing = false
	}

	log.Printf("[overlay] %v deadline expired\n", d.kind)
	m.state.Active = KindNone
	m.state.Banner = nil
	return m.blank()
}

// blank clears the screen, presents it and clears the back buffer again so the next flip
// cannot bring stale content back
func (m *Manager) blank() error {
	if err := m.Surface.Clear(ColorBackground); err != nil {
		return fault("Clear", err)
	}
	if err := m.Surface.Flip(); err != nil {
		return fault("Flip", err)
	}
	if err := m.Surface.Clear(ColorBackground); err != nil {
		return fault("Clear", err)
	}
	return nil
}

func (m *Manager) snapshot() State {
	s := m.state
	s.Armed = make([]Kind, 0, len(m.deadlines))
	for kind := range m.deadlines {
		s.Armed = append(s.Armed, kind)
	}
	sort.Slice(s.Armed, func(i, j int) bool { return s.Armed[i] < s.Armed[j] })
	return s
}
