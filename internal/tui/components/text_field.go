package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"wiper/internal/tui/styles"
)

// TextField is a single line editor that only takes input while focused.
// It does not know about other fields; exclusivity is the owner's job.
type TextField struct {
	input        textinput.Model
	title        string
	focusedTitle string
	width        int
}

// NewTextField creates an unfocused field holding value.
func NewTextField(title, focusedTitle, value string) *TextField {
	ti := textinput.New()
	ti.Prompt = ""
	ti.Cursor.SetMode(cursor.CursorStatic)
	ti.SetValue(value)
	ti.CursorEnd()

	return &TextField{
		input:        ti,
		title:        title,
		focusedTitle: focusedTitle,
	}
}

// SetFocus focuses or blurs the field.
func (f *TextField) SetFocus(focused bool) {
	if focused {
		f.input.Focus()
		f.input.CursorEnd()
		return
	}
	f.input.Blur()
}

// Focused reports whether the field takes input.
func (f *TextField) Focused() bool {
	return f.input.Focused()
}

// Feed applies a key to the buffer. Unfocused fields ignore it.
func (f *TextField) Feed(msg tea.KeyMsg) tea.Cmd {
	if !f.input.Focused() {
		return nil
	}
	var cmd tea.Cmd
	f.input, cmd = f.input.Update(msg)
	return cmd
}

// Value returns the buffer content.
func (f *TextField) Value() string {
	return f.input.Value()
}

// SetValue replaces the buffer content.
func (f *TextField) SetValue(s string) {
	f.input.SetValue(s)
	f.input.CursorEnd()
}

// SetWidth sets the outer width, border included.
func (f *TextField) SetWidth(w int) {
	f.width = w
	// border (2) + one cell for the cursor
	if inner := w - 3; inner > 0 {
		f.input.Width = inner
	}
}

// Title returns the title for the current focus state.
func (f *TextField) Title() string {
	if f.Focused() {
		return f.focusedTitle
	}
	return f.title
}

// View renders the field in a frame whose color follows the focus. The title
// is set into the top border, so the field takes three rows.
func (f *TextField) View(theme styles.Theme) string {
	frame, title := theme.FieldBlurred, theme.TitleBlurred
	if f.Focused() {
		frame, title = theme.FieldFocused, theme.TitleFocused
	}
	body := frame.BorderTop(false)
	if f.width > 2 {
		body = body.Width(f.width - 2)
	}
	box := body.Render(f.input.View())
	return lipgloss.JoinVertical(lipgloss.Left,
		titledTop(frame, title, f.Title(), lipgloss.Width(box)),
		box,
	)
}

// titledTop draws the top border of frame, width cells wide, with text in it.
func titledTop(frame, title lipgloss.Style, text string, width int) string {
	b := frame.GetBorderStyle()
	paint := lipgloss.NewStyle().Foreground(frame.GetBorderTopForeground())

	room := width - 3
	if room < 1 {
		return paint.Render(b.TopLeft + strings.Repeat(b.Top, max(width-2, 0)) + b.TopRight)
	}
	text = ansi.Truncate(text, room, "…")
	fill := room - ansi.StringWidth(text)
	return paint.Render(b.TopLeft+b.Top) + title.Render(text) + paint.Render(strings.Repeat(b.Top, fill)+b.TopRight)
}
