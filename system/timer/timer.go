package timer

import (
	"sync"
	"time"
)

// Handle is a single armed deadline
type Handle interface {
	// Cancel stops the deadline. It is safe to call on a handle that already fired or was
	// already cancelled. It returns true only if the call prevented the callback from running.
	Cancel() bool
}

// Scheduler arms single-shot deadlines. Callbacks run on a goroutine that is not the caller of Arm.
type Scheduler interface {
	Arm(d time.Duration, fn func()) Handle
}

type wallClock struct{}

var _ Scheduler = wallClock{}

// NewScheduler returns a Scheduler backed by the runtime timers
func NewScheduler() Scheduler {
	return wallClock{}
}

func (wallClock) Arm(d time.Duration, fn func()) Handle {
	h := &wallHandle{}
	h.t = time.AfterFunc(d, fn)
	return h
}

type wallHandle struct {
	mu sync.Mutex
	t  *time.Timer
}

func (h *wallHandle) Cancel() bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.t == nil {
		return false
	}
	stopped := h.t.Stop()
	h.t = nil
	return stopped
}
