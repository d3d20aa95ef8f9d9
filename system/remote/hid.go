package remote

import (
	"context"
	"log"
	"strings"

	"github.com/karalabe/usb"
	"github.com/pkg/errors"
)

// HidConfig selects the USB IR receiver
type HidConfig struct {
	VendorID  uint16
	ProductID uint16
	// Interfaces, when not empty, keeps only the devices whose path contains one of them
	Interfaces []string
}

const (
	reportBufSize = 8
)

// hidUsages maps keyboard page usages sent by common IR receivers to keys
var hidUsages = map[byte]Key{
	0x1e: Key1,
	0x1f: Key2,
	0x20: Key3,
	0x21: Key4,
	0x22: Key5,
	0x23: Key6,
	0x24: Key7,
	0x25: Key8,
	0x26: Key9,
	0x27: Key0,
	0x29: KeyExit,
	0x3a: KeyInfo, // F1
	0x4b: KeyChannelUp,
	0x4e: KeyChannelDown,
	0x7f: KeyMute,
	0x80: KeyVolumeUp,
	0x81: KeyVolumeDown,
}

// KeyFromReport decodes a boot keyboard report: modifiers, reserved, then up to six usages.
// Only the first pressed usage counts.
func KeyFromReport(report []byte) (Key, bool) {
	if len(report) < 3 {
		return 0, false
	}
	k, ok := hidUsages[report[2]]
	return k, ok
}

// HidListener reads key presses from the receiver and forwards them to a channel
type HidListener struct {
	conf    HidConfig
	eventCh chan<- Key
}

// NewHidListener returns a service reading the receiver described by conf
func NewHidListener(conf HidConfig, eventCh chan<- Key) *HidListener {
	return &HidListener{
		conf:    conf,
		eventCh: eventCh,
	}
}

func (h *HidListener) String() string {
	return "HidListener"
}

// Devices lists the receivers matching the configuration
func (h *HidListener) Devices() ([]usb.DeviceInfo, error) {
	devices, err := usb.EnumerateHid(h.conf.VendorID, h.conf.ProductID)
	if err != nil {
		return nil, errors.Wrap(err, "[remote] cannot enumerate hid devices")
	}

	found := make([]usb.DeviceInfo, 0, len(devices))
	for _, device := range devices {
		if len(h.conf.Interfaces) == 0 {
			found = append(found, device)
			continue
		}
		for _, iface := range h.conf.Interfaces {
			if strings.Contains(device.Path, iface) {
				found = append(found, device)
				break
			}
		}
	}
	if len(found) == 0 {
		return nil, errors.Errorf("[remote] no receiver %04x:%04x found", h.conf.VendorID, h.conf.ProductID)
	}
	return found, nil
}

// Serve opens every matching receiver and returns when one of them fails or haltCtx is done
func (h *HidListener) Serve(haltCtx context.Context) error {
	infos, err := h.Devices()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(haltCtx)
	defer cancel()

	errCh := make(chan error, len(infos))
	for _, info := range infos {
		d, err := info.Open()
		if err != nil {
			return errors.Wrapf(err, "[remote] cannot open %s", info.Path)
		}
		log.Printf("[remote] listening on %s\n", info.Path)
		go h.readDevice(ctx, d, errCh)
	}

	select {
	case <-haltCtx.Done():
		log.Println("[remote] exiting hid listener")
		return nil
	case err := <-errCh:
		return err
	}
}

func (h *HidListener) readDevice(haltCtx context.Context, dev usb.Device, errCh chan<- error) {
	defer dev.Close()

	go func() {
		// unblock the pending Read
		<-haltCtx.Done()
		dev.Close()
	}()

	buf := make([]byte, reportBufSize)
	for {
		if _, err := dev.Read(buf); err != nil {
			select {
			case <-haltCtx.Done():
			default:
				errCh <- errors.Wrap(err, "[remote] cannot read hid report")
			}
			return
		}
		key, ok := KeyFromReport(buf)
		if !ok {
			continue
		}
		select {
		case h.eventCh <- key:
		case <-haltCtx.Done():
			return
		}
	}
}
