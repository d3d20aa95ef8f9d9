package supervisor

import (
	"log"
	"sync"

	"github.com/thejerf/suture/v4"
)

// EventHook logs supervisor events and counts crashes per service
type EventHook struct {
	mu      sync.Mutex
	crashes map[string]int
}

func (e *EventHook) Event(evt suture.Event) {
	log.Printf("[supervisor] event: %+v\n", evt)
	defer func() {
		if err := recover(); err != nil {
			log.Printf("[supervisor] event hook panic: %+v\n", err)
		}
	}()
	m := evt.Map()
	switch evt.Type() {
	case suture.EventTypeServiceTerminate, suture.EventTypeServicePanic:
		name, _ := m["service_name"].(string)
		e.mu.Lock()
		if e.crashes == nil {
			e.crashes = make(map[string]int)
		}
		e.crashes[name]++
		n := e.crashes[name]
		e.mu.Unlock()
		log.Printf("[supervisor] %s crashed unexpectedly (%d times), restarting...\n", name, n)
	}
}

// Crashes returns how many times each service has terminated or panicked
func (e *EventHook) Crashes() map[string]int {
	e.mu.Lock()
	defer e.mu.Unlock()

	c := make(map[string]int, len(e.crashes))
	for name, n := range e.crashes {
		c[name] = n
	}
	return c
}
