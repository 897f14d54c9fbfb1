package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"

	"wiper/internal/tui/styles"
)

// HelpPanel lists every bound chord next to its command.
type HelpPanel struct {
	help  help.Model
	theme styles.Theme
}

func NewHelpPanel(theme styles.Theme) *HelpPanel {
	h := help.New()
	h.ShowAll = true
	h.Styles.FullKey = theme.HelpKey
	h.Styles.FullDesc = theme.HelpDesc
	h.Styles.FullSeparator = theme.Muted
	return &HelpPanel{help: h, theme: theme}
}

// SetWidth limits the rendered width.
func (p *HelpPanel) SetWidth(w int) {
	p.help.Width = w
}

// View renders the full help of keys.
func (p *HelpPanel) View(keys help.KeyMap) string {
	return p.help.FullHelpView(keys.FullHelp())
}

// WrappedView renders one entry per command, as many per line as fit in
// width. Nothing is cut off; an entry wider than width gets a line of its
// own.
func (p *HelpPanel) WrappedView(keys help.KeyMap, width int) string {
	const sep = "  "

	var lines []string
	var line string
	for _, b := range keys.ShortHelp() {
		if !b.Enabled() {
			continue
		}
		item := p.theme.HelpKey.Render(b.Help().Key) + " " + p.theme.HelpDesc.Render(b.Help().Desc)
		switch {
		case line == "":
			line = item
		case lipgloss.Width(line)+len(sep)+lipgloss.Width(item) <= width:
			line += sep + item
		default:
			lines = append(lines, line)
			line = item
		}
	}
	if line != "" {
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}
