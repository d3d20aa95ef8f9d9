package util

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDebounce(t *testing.T) { // -race passes
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	in, out := Debounce(ctx, time.Millisecond*25)
	rounds := int64(10)

	for i := int64(1); i <= rounds; i++ {
		in <- i
		time.Sleep(time.Millisecond * 5)
	}

	select {
	case ev := <-out:
		require.Equal(t, rounds, ev.Data.(int64))
		require.Equal(t, rounds, ev.Counter)
	case <-time.After(time.Second):
		t.Fatal("debounced event never arrived")
	}

	select {
	case ev := <-out:
		t.Fatalf("unexpected second event: %+v", ev)
	case <-time.After(time.Millisecond * 100):
	}
}

func TestMultipleDebounce(t *testing.T) { // -race passes
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	in, out := Debounce(ctx, time.Millisecond*10)

	received := make([]DebounceEvent, 0, 2)
	in <- "A"
	received = append(received, <-out)
	in <- "B"
	received = append(received, <-out)

	require.Equal(t, "A", received[0].Data.(string))
	require.Equal(t, "B", received[1].Data.(string))
	require.EqualValues(t, 1, received[1].Counter)
}

func TestPassThrough(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	in, out := PassThrough(ctx)
	go func() {
		in <- 1
		in <- 2
	}()

	require.Equal(t, 1, (<-out).Data.(int))
	require.Equal(t, 2, (<-out).Data.(int))
}

func TestArrayFlags(t *testing.T) {
	var f ArrayFlags
	require.NoError(t, f.Set("sdl"))
	require.NoError(t, f.Set("terminal"))
	require.Equal(t, ArrayFlags{"sdl", "terminal"}, f)
	require.Equal(t, "1: sdl;2: terminal", f.String())
}
