package window

import (
	"github.com/zllovesuki/OverlayManager/system/remote"

	"github.com/veandco/go-sdl2/sdl"
)

var keycodes = map[sdl.Keycode]remote.Key{
	sdl.K_1:        remote.Key1,
	sdl.K_2:        remote.Key2,
	sdl.K_3:        remote.Key3,
	sdl.K_4:        remote.Key4,
	sdl.K_5:        remote.Key5,
	sdl.K_6:        remote.Key6,
	sdl.K_7:        remote.Key7,
	sdl.K_8:        remote.Key8,
	sdl.K_9:        remote.Key9,
	sdl.K_0:        remote.Key0,
	sdl.K_KP_1:     remote.Key1,
	sdl.K_KP_2:     remote.Key2,
	sdl.K_KP_3:     remote.Key3,
	sdl.K_KP_4:     remote.Key4,
	sdl.K_KP_5:     remote.Key5,
	sdl.K_KP_6:     remote.Key6,
	sdl.K_KP_7:     remote.Key7,
	sdl.K_KP_8:     remote.Key8,
	sdl.K_KP_9:     remote.Key9,
	sdl.K_KP_0:     remote.Key0,
	sdl.K_UP:       remote.KeyChannelUp,
	sdl.K_PAGEUP:   remote.KeyChannelUp,
	sdl.K_DOWN:     remote.KeyChannelDown,
	sdl.K_PAGEDOWN: remote.KeyChannelDown,
	sdl.K_RIGHT:    remote.KeyVolumeUp,
	sdl.K_LEFT:     remote.KeyVolumeDown,
	sdl.K_m:        remote.KeyMute,
	sdl.K_i:        remote.KeyInfo,
	sdl.K_ESCAPE:   remote.KeyExit,
}

// FromKeycode maps a keyboard key to a remote key, mirroring the terminal preview
func FromKeycode(sym sdl.Keycode) (remote.Key, bool) {
	k, ok := keycodes[sym]
	return k, ok
}
