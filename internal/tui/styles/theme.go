package styles

import (
	"github.com/charmbracelet/lipgloss"

	"wiper/internal/config"
)

// Theme defines the core UI styles
type Theme struct {
	App            lipgloss.Style
	Title          lipgloss.Style
	Label          lipgloss.Style
	Value          lipgloss.Style
	Row            lipgloss.Style
	Selected       lipgloss.Style
	Cursor         lipgloss.Style
	CursorSelected lipgloss.Style
	Muted          lipgloss.Style
	Status         lipgloss.Style
	StatusError    lipgloss.Style
	Frame          lipgloss.Style
	FieldFocused   lipgloss.Style
	FieldBlurred   lipgloss.Style
	TitleFocused   lipgloss.Style
	TitleBlurred   lipgloss.Style
	HelpKey        lipgloss.Style
	HelpDesc       lipgloss.Style
}

// NewTheme builds the styles from configured colors.
func NewTheme(c config.Theme) Theme {
	color := func(v string) lipgloss.Color { return lipgloss.Color(v) }

	return Theme{
		App: lipgloss.NewStyle(),
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(color(c.Primary)),
		Label: lipgloss.NewStyle().
			Foreground(color(c.Info)),
		Value: lipgloss.NewStyle().
			Bold(true),
		Row: lipgloss.NewStyle(),
		Selected: lipgloss.NewStyle().
			Foreground(color(c.Selected)),
		Cursor: lipgloss.NewStyle().
			Bold(true).
			Foreground(color(c.Emphasis)),
		CursorSelected: lipgloss.NewStyle().
			Bold(true).
			Foreground(color(c.Selected)),
		Muted: lipgloss.NewStyle().
			Foreground(color(c.Border)),
		Status: lipgloss.NewStyle().
			Foreground(color(c.Warning)),
		StatusError: lipgloss.NewStyle().
			Bold(true).
			Foreground(color(c.Error)),
		Frame: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(color(c.Border)),
		FieldFocused: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(color(c.Success)),
		FieldBlurred: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(color(c.Border)),
		TitleFocused: lipgloss.NewStyle().
			Bold(true).
			Foreground(color(c.Success)),
		TitleBlurred: lipgloss.NewStyle().
			Foreground(color(c.Border)),
		HelpKey: lipgloss.NewStyle().
			Foreground(color(c.Emphasis)),
		HelpDesc: lipgloss.NewStyle().
			Foreground(color(c.Info)),
	}
}

// DefaultTheme returns the styles of the default palette.
func DefaultTheme() Theme {
	return NewTheme(config.New().Theme)
}
