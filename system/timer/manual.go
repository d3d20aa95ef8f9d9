package timer

import (
	"sort"
	"sync"
	"time"
)

// Manual is a Scheduler driven by Advance instead of the wall clock. Callbacks run
// on the goroutine calling Advance, ordered by deadline then by arming order.
type Manual struct {
	mu      sync.Mutex
	now     time.Duration
	seq     uint64
	pending []*manualHandle
}

var _ Scheduler = &Manual{}

// NewManual returns a Manual scheduler starting at zero elapsed time
func NewManual() *Manual {
	return &Manual{}
}

type manualHandle struct {
	m        *Manual
	seq      uint64
	deadline time.Duration
	fn       func()
	done     bool
}

func (h *manualHandle) Cancel() bool {
	h.m.mu.Lock()
	defer h.m.mu.Unlock()

	if h.done {
		return false
	}
	h.done = true
	h.m.remove(h)
	return true
}

// Arm satisfies Scheduler
func (m *Manual) Arm(d time.Duration, fn func()) Handle {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.seq++
	h := &manualHandle{
		m:        m,
		seq:      m.seq,
		deadline: m.now + d,
		fn:       fn,
	}
	m.pending = append(m.pending, h)
	return h
}

// Advance moves the clock forward and runs every callback whose deadline has been reached.
// It returns the number of callbacks fired.
func (m *Manual) Advance(d time.Duration) int {
	m.mu.Lock()
	m.now += d
	due := make([]*manualHandle, 0, len(m.pending))
	for _, h := range m.pending {
		if h.deadline <= m.now {
			due = append(due, h)
		}
	}
	sort.Slice(due, func(i, j int) bool {
		if due[i].deadline == due[j].deadline {
			return due[i].seq < due[j].seq
		}
		return due[i].deadline < due[j].deadline
	})
	for _, h := range due {
		h.done = true
		m.remove(h)
	}
	m.mu.Unlock()

	// callbacks may arm new deadlines, so they run without the lock
	for _, h := range due {
		h.fn()
	}
	return len(due)
}

// Pending returns the number of armed deadlines that have not fired or been cancelled
func (m *Manual) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.pending)
}

// Elapsed returns how far the clock has been advanced
func (m *Manual) Elapsed() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

func (m *Manual) remove(h *manualHandle) {
	for i, p := range m.pending {
		if p == h {
			m.pending = append(m.pending[:i], m.pending[i+1:]...)
			return
		}
	}
}
