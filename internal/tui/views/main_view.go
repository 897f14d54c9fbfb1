package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"wiper/internal/errors"
	"wiper/internal/tui/common"
	"wiper/internal/tui/components"
	"wiper/internal/tui/styles"
)

// Minimum terminal size the frame can be drawn in.
const (
	MinWidth  = 52
	MinHeight = 12
)

const (
	sideHelpMinWidth = 90
	sideHelpWidth    = 28
	// title, infos, status and the list frame border
	fixedRows = 5
	fieldRows = 3
)

// CheckSize rejects terminals smaller than the minimum.
func CheckSize(width, height int) error {
	if width >= MinWidth && height >= MinHeight {
		return nil
	}
	return errors.NewTerminalError(
		fmt.Sprintf("terminal too small: require width >= %d and height >= %d (got %dx%d)",
			MinWidth, MinHeight, width, height),
		errors.TerminalTooSmall, nil)
}

// Layout renders frames. It keeps the scroll position of the entry list
// between frames and nothing else.
type Layout struct {
	theme  styles.Theme
	width  int
	height int
	list   *components.EntryList
	help   *components.HelpPanel
}

// NewLayout creates a layout for the given theme.
func NewLayout(theme styles.Theme) *Layout {
	return &Layout{
		theme: theme,
		list:  components.NewEntryList(MinWidth, 1),
		help:  components.NewHelpPanel(theme),
	}
}

// Resize adapts the layout to a new terminal size.
func (l *Layout) Resize(width, height int) {
	l.width, l.height = width, height
}

func (l *Layout) sideHelp() bool {
	return l.width >= sideHelpMinWidth
}

// RenderMainView draws the whole frame from state.
func (l *Layout) RenderMainView(s common.StateReader) string {
	if l.width == 0 || l.height == 0 {
		return ""
	}
	t := l.theme

	half := l.width / 2
	s.PathField().SetWidth(half)
	s.FilterField().SetWidth(l.width - half)
	fields := lipgloss.JoinHorizontal(lipgloss.Top,
		s.PathField().View(t),
		s.FilterField().View(t),
	)

	listRows := l.height - fixedRows - fieldRows
	listWidth := l.width
	var shortHelp string
	if l.sideHelp() {
		listWidth -= sideHelpWidth
	} else {
		shortHelp = l.help.WrappedView(s.Keys(), l.width)
		listRows -= lipgloss.Height(shortHelp)
	}
	listRows = max(listRows, 1)
	l.list.SetSize(listWidth-2, listRows)

	cursor, ok := s.Cursor()
	if !ok {
		cursor = -1
	}
	list := t.Frame.
		Width(listWidth - 2).
		Height(listRows).
		Render(l.list.View(t, s.Root(), s.Entries(), cursor, s.IsSelected))

	body := list
	if l.sideHelp() {
		l.help.SetWidth(sideHelpWidth - 2)
		helpBox := t.Frame.
			Width(sideHelpWidth - 2).
			Height(listRows).
			MaxHeight(listRows + 2).
			Render(l.help.View(s.Keys()))
		body = lipgloss.JoinHorizontal(lipgloss.Top, list, helpBox)
	}

	rows := []string{
		renderTitle(t, s),
		fields,
		renderInfos(t, s),
		body,
	}
	if !l.sideHelp() {
		rows = append(rows, shortHelp)
	}
	rows = append(rows, s.Status().View(t))

	return t.App.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func renderTitle(t styles.Theme, s common.StateReader) string {
	var tags []string
	if s.DryRun() {
		tags = append(tags, "dry run")
	}
	if s.ReadOnly() {
		tags = append(tags, "read only")
	}
	if s.Stale() {
		tags = append(tags, "stale")
	}
	title := t.Title.Render("wiper")
	if len(tags) > 0 {
		title += " " + t.Muted.Render("["+strings.Join(tags, ", ")+"]")
	}
	return title
}

func renderInfos(t styles.Theme, s common.StateReader) string {
	return fmt.Sprintf("%s %s  %s %s (%s)  %s %s",
		t.Label.Render("Total:"),
		t.Value.Render(humanize.Bytes(uint64(s.TotalSize()))),
		t.Label.Render("Selected:"),
		t.Value.Render(humanize.Bytes(uint64(s.SelectedSize()))),
		t.Value.Render(fmt.Sprintf("%.2f%%", s.SelectedPercent())),
		t.Label.Render("Entries:"),
		t.Value.Render(fmt.Sprint(len(s.Entries()))),
	)
}
