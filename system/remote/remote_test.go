package remote

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/require"
)

func TestKeyNames(t *testing.T) {
	for _, name := range Names() {
		k, ok := ParseKey(name)
		require.True(t, ok, name)
		require.Equal(t, name, k.String())
		require.True(t, k.Known())
	}
	require.Len(t, Names(), len(keyNames))

	_, ok := ParseKey("power")
	require.False(t, ok)
	require.Equal(t, "key(1)", Key(1).String())
}

func TestDigits(t *testing.T) {
	for i, name := range []string{"0", "1", "2", "3", "4", "5", "6", "7", "8", "9"} {
		k, _ := ParseKey(name)
		d, ok := k.Digit()
		require.True(t, ok)
		require.EqualValues(t, i, d)
	}
	_, ok := KeyMute.Digit()
	require.False(t, ok)
}

func TestKeyFromReport(t *testing.T) {
	k, ok := KeyFromReport([]byte{0, 0, 0x27, 0, 0, 0, 0, 0})
	require.True(t, ok)
	require.Equal(t, Key0, k)

	k, ok = KeyFromReport([]byte{0, 0, 0x4b, 0, 0, 0, 0, 0})
	require.True(t, ok)
	require.Equal(t, KeyChannelUp, k)

	// key released
	_, ok = KeyFromReport([]byte{0, 0, 0, 0, 0, 0, 0, 0})
	require.False(t, ok)

	_, ok = KeyFromReport([]byte{0})
	require.False(t, ok)
}

func TestFromTerminal(t *testing.T) {
	cases := []struct {
		ev       *tcell.EventKey
		expected Key
	}{
		{tcell.NewEventKey(tcell.KeyRune, '7', tcell.ModNone), Key7},
		{tcell.NewEventKey(tcell.KeyRune, '0', tcell.ModNone), Key0},
		{tcell.NewEventKey(tcell.KeyRune, 'm', tcell.ModNone), KeyMute},
		{tcell.NewEventKey(tcell.KeyRune, 'i', tcell.ModNone), KeyInfo},
		{tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone), KeyChannelUp},
		{tcell.NewEventKey(tcell.KeyPgDn, 0, tcell.ModNone), KeyChannelDown},
		{tcell.NewEventKey(tcell.KeyRight, 0, tcell.ModNone), KeyVolumeUp},
		{tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone), KeyVolumeDown},
	}
	for _, c := range cases {
		k, ok := FromTerminal(c.ev)
		require.True(t, ok, c.ev.Name())
		require.Equal(t, c.expected, k)
	}

	_, ok := FromTerminal(tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone))
	require.False(t, ok)
	_, ok = FromTerminal(tcell.NewEventKey(tcell.KeyF5, 0, tcell.ModNone))
	require.False(t, ok)
}
