package remote

import (
	"fmt"
	"strings"
)

// Key is a remote control button, numbered like the Linux input event codes
type Key uint32

// Define key codes
const (
	Key1           Key = 2
	Key2           Key = 3
	Key3           Key = 4
	Key4           Key = 5
	Key5           Key = 6
	Key6           Key = 7
	Key7           Key = 8
	Key8           Key = 9
	Key9           Key = 10
	Key0           Key = 11
	KeyMute        Key = 113
	KeyVolumeDown  Key = 114
	KeyVolumeUp    Key = 115
	KeyExit        Key = 174
	KeyInfo        Key = 358
	KeyChannelUp   Key = 402
	KeyChannelDown Key = 403
)

var keyNames = map[Key]string{
	Key0:           "0",
	Key1:           "1",
	Key2:           "2",
	Key3:           "3",
	Key4:           "4",
	Key5:           "5",
	Key6:           "6",
	Key7:           "7",
	Key8:           "8",
	Key9:           "9",
	KeyMute:        "mute",
	KeyVolumeDown:  "vol-",
	KeyVolumeUp:    "vol+",
	KeyExit:        "exit",
	KeyInfo:        "info",
	KeyChannelUp:   "ch+",
	KeyChannelDown: "ch-",
}

func (k Key) String() string {
	if name, ok := keyNames[k]; ok {
		return name
	}
	return fmt.Sprintf("key(%d)", uint32(k))
}

// Digit returns the value of a numeric key
func (k Key) Digit() (uint16, bool) {
	switch {
	case k == Key0:
		return 0, true
	case k >= Key1 && k <= Key9:
		return uint16(k-Key1) + 1, true
	default:
		return 0, false
	}
}

// Known reports whether k is one of the keys above
func (k Key) Known() bool {
	_, ok := keyNames[k]
	return ok
}

// ParseKey accepts the names returned by String, case insensitive
func ParseKey(name string) (Key, bool) {
	for k, n := range keyNames {
		if strings.EqualFold(n, name) {
			return k, true
		}
	}
	return 0, false
}

// Names returns every key name, digits first
func Names() []string {
	return []string{"1", "2", "3", "4", "5", "6", "7", "8", "9", "0", "ch+", "ch-", "vol+", "vol-", "mute", "info", "exit"}
}
