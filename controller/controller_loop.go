package controller

import (
	"context"
	"log"

	"github.com/zllovesuki/OverlayManager/overlay"
	"github.com/zllovesuki/OverlayManager/system/remote"

	"github.com/pkg/errors"
)

func (c *Controller) handleKeyPress(haltCtx context.Context) {
	for {
		select {
		case key := <-c.keyCodeCh:
			log.Printf("remote: %s pressed\n", key)
			select {
			case c.workQueueCh[fnKeyPress].noisy <- key:
			case <-haltCtx.Done():
				return
			}
		case <-haltCtx.Done():
			log.Println("[controller] exiting handleKeyPress")
			return
		}
	}
}

func (c *Controller) handleWorkQueue(haltCtx context.Context) {
	for {
		var err error

		select {
		case ev := <-c.workQueueCh[fnKeyPress].clean:
			err = c.onKey(haltCtx, ev.Data.(remote.Key))

		case ev := <-c.workQueueCh[fnTune].clean:
			number := ev.Data.(uint16)
			if !c.entry.active || c.entry.number != number {
				// the viewer moved on with another key
				continue
			}
			c.entry = digitEntry{}
			log.Printf("[controller] tuning to %d after %d digits\n", number, ev.Counter)
			err = c.tune(haltCtx, number)

		case <-c.workQueueCh[fnPersistConfigs].clean:
			if err := c.Config.Registry.Save(); err != nil {
				c.fail(errors.Wrap(err, "[controller] error saving tuner state"))
				return
			}

		case <-c.workQueueCh[fnApplyConfigs].clean:
			// load configs from the state file and try to reapply
			if err := c.Config.Registry.Load(); err != nil {
				c.fail(errors.Wrap(err, "[controller] error loading configurations"))
				return
			}
			if err := c.Config.Registry.Apply(); err != nil {
				c.fail(errors.Wrap(err, "[controller] error applying configurations"))
				return
			}
			s := c.tuner.current()
			log.Printf("[controller] restored channel %d, volume %.2f\n", s.Channel, s.Volume)
			err = c.showInfo(haltCtx, s.Channel)

		case <-haltCtx.Done():
			log.Println("[controller] exiting handleWorkQueue")
			return
		}

		if err = c.checkOverlay(err); err != nil {
			c.fail(err)
			return
		}
	}
}

func (c *Controller) onKey(ctx context.Context, key remote.Key) error {
	if d, ok := key.Digit(); ok {
		return c.onDigit(ctx, d)
	}
	c.entry = digitEntry{}

	switch key {
	case remote.KeyChannelUp, remote.KeyChannelDown:
		delta := 1
		if key == remote.KeyChannelDown {
			delta = -1
		}
		ch := c.tuner.step(delta)
		c.persist(ctx)
		return c.Overlay.ShowChannelInfo(ctx, ch.Number, ch.Subtitles)

	case remote.KeyInfo:
		return c.showInfo(ctx, c.tuner.current().Channel)

	case remote.KeyVolumeUp, remote.KeyVolumeDown:
		delta := c.Config.VolumeStep
		if key == remote.KeyVolumeDown {
			delta = -delta
		}
		level := c.tuner.adjustVolume(delta)
		c.persist(ctx)
		return c.Overlay.ShowVolumeLevel(ctx, level)

	case remote.KeyMute:
		level := c.tuner.toggleMute()
		c.persist(ctx)
		return c.Overlay.ShowVolumeLevel(ctx, level)

	default:
		log.Printf("remote: no action for %s\n", key)
		return nil
	}
}

func (c *Controller) onDigit(ctx context.Context, d uint16) error {
	if !c.entry.active || c.entry.digits >= MaxDigits {
		c.entry = digitEntry{active: true}
	}
	c.entry.number = c.entry.number*10 + d
	c.entry.digits++

	select {
	case c.workQueueCh[fnTune].noisy <- c.entry.number:
	case <-ctx.Done():
		return nil
	}
	return c.Overlay.ShowChannelNumber(ctx, c.entry.number)
}

func (c *Controller) tune(ctx context.Context, number uint16) error {
	ch, ok := c.tuner.tune(number)
	if !ok {
		return c.Overlay.ShowChannelUnavailable(ctx, number)
	}
	c.persist(ctx)
	return c.Overlay.ShowChannelInfo(ctx, ch.Number, ch.Subtitles)
}

func (c *Controller) showInfo(ctx context.Context, number uint16) error {
	ch, ok := c.tuner.lookup(number)
	if !ok {
		return c.Overlay.ShowChannelUnavailable(ctx, number)
	}
	return c.Overlay.ShowChannelInfo(ctx, ch.Number, ch.Subtitles)
}

func (c *Controller) persist(ctx context.Context) {
	select {
	case c.workQueueCh[fnPersistConfigs].noisy <- struct{}{}:
	case <-ctx.Done():
	}
}

// checkOverlay keeps going on rejected banners and stops on everything else
func (c *Controller) checkOverlay(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, overlay.ErrFormattingOverflow):
		log.Printf("[controller] banner rejected: %v\n", err)
		return nil
	case errors.Is(err, context.Canceled):
		return nil
	default:
		return errors.Wrap(err, "[controller] overlay failed")
	}
}

func (c *Controller) fail(err error) {
	select {
	case c.errorCh <- err:
	default:
	}
}
