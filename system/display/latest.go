package display

import "image"

// Latest is a frame mailbox holding only the newest frame. Display never blocks the
// overlay loop; a sink that falls behind skips frames.
type Latest struct {
	ch chan *image.RGBA
}

func NewLatest() *Latest {
	return &Latest{
		ch: make(chan *image.RGBA, 1),
	}
}

func (l *Latest) Display(frame *image.RGBA) error {
	for {
		select {
		case l.ch <- frame:
			return nil
		default:
		}
		select {
		case <-l.ch:
		default:
		}
	}
}

// C delivers the frames
func (l *Latest) C() <-chan *image.RGBA {
	return l.ch
}
