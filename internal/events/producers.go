package events

import (
	"time"

	"wiper/internal/log"
	"wiper/internal/tui/messages"
	"wiper/internal/watch"
)

// Ticker emits a TickMsg every period, whether or not there was input.
func Ticker(period time.Duration) Producer {
	return func(s *Source) {
		t := time.NewTicker(period)
		defer t.Stop()

		for {
			select {
			case <-s.Done():
				return
			case now := <-t.C:
				if !s.Emit(messages.TickMsg{Time: now}) {
					return
				}
			}
		}
	}
}

// Changes forwards watcher changes as DiskChangedMsg. A burst is coalesced
// into one message sent quiet after its first change. A change is never
// dropped: one arriving after a flush opens a new window.
func Changes(w *watch.Watcher, quiet time.Duration) Producer {
	return func(s *Source) {
		var (
			pending *watch.Change
			timer   *time.Timer
			flush   <-chan time.Time
		)
		defer func() {
			if timer != nil {
				timer.Stop()
			}
		}()

		for {
			select {
			case <-s.Done():
				return
			case c, ok := <-w.Changes():
				if !ok {
					return
				}
				if pending == nil {
					timer = time.NewTimer(quiet)
					flush = timer.C
				}
				pending = &c
			case <-flush:
				c := *pending
				pending, flush = nil, nil
				log.LogWithFields(log.F("path", c.Path), log.F("op", c.Op.String())).Debug("disk changed")
				if !s.Emit(messages.DiskChangedMsg{Path: c.Path, Time: c.Timestamp}) {
					return
				}
			}
		}
	}
}
