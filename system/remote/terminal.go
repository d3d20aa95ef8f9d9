package remote

import "github.com/gdamore/tcell/v2"

// FromTerminal maps a terminal key event to a remote key. Digits map to themselves,
// the arrows to channel and volume, 'm' to mute and 'i' to info.
func FromTerminal(ev *tcell.EventKey) (Key, bool) {
	switch ev.Key() {
	case tcell.KeyUp, tcell.KeyPgUp:
		return KeyChannelUp, true
	case tcell.KeyDown, tcell.KeyPgDn:
		return KeyChannelDown, true
	case tcell.KeyRight:
		return KeyVolumeUp, true
	case tcell.KeyLeft:
		return KeyVolumeDown, true
	case tcell.KeyEscape:
		return KeyExit, true
	case tcell.KeyRune:
	default:
		return 0, false
	}

	switch r := ev.Rune(); {
	case r >= '1' && r <= '9':
		return Key1 + Key(r-'1'), true
	case r == '0':
		return Key0, true
	case r == 'm', r == 'M':
		return KeyMute, true
	case r == 'i', r == 'I':
		return KeyInfo, true
	case r == '+':
		return KeyVolumeUp, true
	case r == '-':
		return KeyVolumeDown, true
	default:
		return 0, false
	}
}
