package timer

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestWallClockFiresOnce(t *testing.T) {
	var fired int32
	done := make(chan struct{})

	s := NewScheduler()
	s.Arm(time.Millisecond*10, func() {
		atomic.AddInt32(&fired, 1)
		close(done)
	})

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("deadline did not fire")
	}
	time.Sleep(time.Millisecond * 20)
	require.EqualValues(t, 1, atomic.LoadInt32(&fired))
}

func TestWallClockCancelIsIdempotent(t *testing.T) { // -race passes
	var fired int32

	s := NewScheduler()
	h := s.Arm(time.Millisecond*50, func() {
		atomic.AddInt32(&fired, 1)
	})

	require.True(t, h.Cancel())
	require.False(t, h.Cancel())

	time.Sleep(time.Millisecond * 100)
	require.EqualValues(t, 0, atomic.LoadInt32(&fired))
}

func TestWallClockCancelAfterFire(t *testing.T) {
	done := make(chan struct{})

	s := NewScheduler()
	h := s.Arm(time.Millisecond, func() {
		close(done)
	})
	<-done

	require.False(t, h.Cancel())
}

func TestManualOrdering(t *testing.T) {
	m := NewManual()
	order := make([]string, 0, 3)

	m.Arm(time.Second*4, func() { order = append(order, "info") })
	m.Arm(time.Second*2, func() { order = append(order, "volume") })
	m.Arm(time.Second*4, func() { order = append(order, "message") })

	require.Equal(t, 3, m.Pending())
	require.Equal(t, 0, m.Advance(time.Second))
	require.Equal(t, 1, m.Advance(time.Second))
	require.Equal(t, []string{"volume"}, order)

	require.Equal(t, 2, m.Advance(time.Second*5))
	require.Equal(t, []string{"volume", "info", "message"}, order)
	require.Equal(t, 0, m.Pending())
	require.Equal(t, time.Second*7, m.Elapsed())
}

func TestManualCancel(t *testing.T) {
	m := NewManual()
	fired := 0

	h := m.Arm(time.Second, func() { fired++ })
	require.True(t, h.Cancel())
	require.False(t, h.Cancel())

	m.Advance(time.Second * 10)
	require.Equal(t, 0, fired)

	h = m.Arm(time.Second, func() { fired++ })
	m.Advance(time.Second)
	require.Equal(t, 1, fired)
	require.False(t, h.Cancel())
}

func TestManualRearmFromCallback(t *testing.T) {
	m := NewManual()
	fired := 0

	m.Arm(time.Second, func() {
		fired++
		m.Arm(time.Second, func() { fired++ })
	})

	m.Advance(time.Second)
	require.Equal(t, 1, fired)
	require.Equal(t, 1, m.Pending())

	m.Advance(time.Second)
	require.Equal(t, 2, fired)
}
