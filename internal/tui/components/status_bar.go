package components

import (
	"github.com/charmbracelet/bubbles/spinner"

	"wiper/internal/tui/styles"
)

// StatusBar shows the outcome of the last operation. Messages expire after a
// number of ticks; the spinner advances once per tick to show liveness.
type StatusBar struct {
	text      string
	isErr     bool
	ttl       int
	remaining int
	spinner   spinner.Model
}

// NewStatusBar creates a status bar whose messages last ttl ticks. A ttl of
// zero keeps messages until replaced.
func NewStatusBar(ttl int) *StatusBar {
	s := spinner.New()
	s.Spinner = spinner.MiniDot

	return &StatusBar{
		ttl:     ttl,
		spinner: s,
	}
}

// SetText shows an informational message.
func (s *StatusBar) SetText(text string) {
	s.set(text, false)
}

// SetError shows an error message.
func (s *StatusBar) SetError(text string) {
	s.set(text, true)
}

func (s *StatusBar) set(text string, isErr bool) {
	s.text = text
	s.isErr = isErr
	s.remaining = s.ttl
}

// Clear removes the message.
func (s *StatusBar) Clear() {
	s.text = ""
	s.isErr = false
}

// Tick advances the spinner and ages the message.
func (s *StatusBar) Tick() {
	s.spinner, _ = s.spinner.Update(s.spinner.Tick())
	if s.text == "" || s.ttl == 0 {
		return
	}
	s.remaining--
	if s.remaining <= 0 {
		s.Clear()
	}
}

// Text returns the current message.
func (s *StatusBar) Text() string {
	return s.text
}

// IsError reports whether the current message is an error.
func (s *StatusBar) IsError() bool {
	return s.isErr
}

// Frame returns the current spinner frame.
func (s *StatusBar) Frame() string {
	return s.spinner.View()
}

func (s *StatusBar) View(theme styles.Theme) string {
	style := theme.Status
	if s.isErr {
		style = theme.StatusError
	}
	return theme.Muted.Render(s.Frame()) + " " + style.Render(s.text)
}
