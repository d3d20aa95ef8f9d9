package util

import (
	"context"
	"time"
)

// DebounceEvent contains the last event fired to the input channel
type DebounceEvent struct {
	Counter int64
	Data    interface{}
}

// Debounce returns two channels for input and output. An event is emitted on clean once
// nothing arrived on noisy for the wait duration. Counter is the number of inputs folded
// into the event and Data the last one. The goroutine keeps accepting input while an event
// waits to be consumed, so the consumer may feed noisy itself.
func Debounce(haltCtx context.Context, wait time.Duration) (chan<- interface{}, <-chan DebounceEvent) {
	noisy := make(chan interface{})
	clean := make(chan DebounceEvent, 1) // do not block our goroutine

	go func() {
		var lastTime time.Time
		var counter int64
		var data interface{}

		var out chan<- DebounceEvent // nil until an event is ready
		var ready DebounceEvent

		tick := wait / 4
		if tick <= 0 {
			tick = time.Millisecond
		}
		ticker := time.NewTicker(tick)
		defer ticker.Stop()

		for {
			select {
			case data = <-noisy:
				lastTime = time.Now()
				counter++
			case <-ticker.C:
				if !lastTime.IsZero() && time.Since(lastTime) >= wait {
					ready = DebounceEvent{
						Counter: ready.Counter + counter,
						Data:    data,
					}
					out = clean

					lastTime = time.Time{}
					counter = 0
				}
			case out <- ready:
				out = nil
				ready = DebounceEvent{}
			case <-haltCtx.Done():
				return
			}
		}
	}()

	return noisy, clean
}

// PassThrough returns two channels that forward every input immediately, so immediate and
// debounced work can share one work queue shape
func PassThrough(haltCtx context.Context) (chan<- interface{}, <-chan DebounceEvent) {
	noisy := make(chan interface{})
	clean := make(chan DebounceEvent)

	go func() {
		for {
			select {
			case data := <-noisy:
				select {
				case clean <- DebounceEvent{Counter: 1, Data: data}:
				case <-haltCtx.Done():
					return
				}
			case <-haltCtx.Done():
				return
			}
		}
	}()

	return noisy, clean
}
