package messages

import "time"

// TickMsg is sent by the tick producer on every period.
type TickMsg struct {
	Time time.Time
}

// DiskChangedMsg reports that something changed under the scan root since
// the last scan.
type DiskChangedMsg struct {
	Path string
	Time time.Time
}
