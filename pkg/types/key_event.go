package types

import tea "github.com/charmbracelet/bubbletea"

// KeyKind distinguishes presses from repeats and releases.
type KeyKind int

const (
	KeyPress KeyKind = iota
	KeyRepeat
	KeyRelease
)

func (k KeyKind) String() string {
	switch k {
	case KeyPress:
		return "press"
	case KeyRepeat:
		return "repeat"
	case KeyRelease:
		return "release"
	}
	return "unknown"
}

// KeyEvent is one keyboard event as seen by the application state machine.
type KeyEvent struct {
	Msg  tea.KeyMsg
	Kind KeyKind
}

// Press wraps a key message as a press event. bubbletea only reports presses.
func Press(msg tea.KeyMsg) KeyEvent {
	return KeyEvent{Msg: msg, Kind: KeyPress}
}

// Chord returns the chord of the event.
func (e KeyEvent) Chord() Chord {
	return ChordFromKeyMsg(e.Msg)
}
