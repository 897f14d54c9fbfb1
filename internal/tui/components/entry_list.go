package components

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/dustin/go-humanize"
	"github.com/mattn/go-runewidth"

	"wiper/internal/tui/styles"
	"wiper/pkg/types"
)

const (
	cursorMark = ">> "
	blankMark  = "   "
	sizeWidth  = 9
	filesWidth = 12
)

// EntryList renders scan results and keeps the cursor row in view.
type EntryList struct {
	vp    viewport.Model
	width int
}

// NewEntryList creates an entry list of the given size.
func NewEntryList(width, height int) *EntryList {
	l := &EntryList{vp: viewport.New(width, height)}
	l.SetSize(width, height)
	return l
}

// SetSize sets the visible rows and columns.
func (l *EntryList) SetSize(width, height int) {
	if height < 1 {
		height = 1
	}
	l.width = width
	l.vp.Width = width
	l.vp.Height = height
}

// Offset returns the index of the first visible row.
func (l *EntryList) Offset() int {
	return l.vp.YOffset
}

// View renders entries relative to root. cursor is negative when the list
// has no cursor.
func (l *EntryList) View(theme styles.Theme, root string, entries []types.Entry, cursor int, selected func(int) bool) string {
	if len(entries) == 0 {
		l.vp.SetContent(theme.Muted.Render("no matching entries"))
		l.vp.SetYOffset(0)
		return l.vp.View()
	}

	rows := make([]string, len(entries))
	for i, e := range entries {
		rows[i] = l.row(theme, root, e, i == cursor, selected(i))
	}
	l.vp.SetContent(strings.Join(rows, "\n"))
	l.follow(cursor)
	return l.vp.View()
}

func (l *EntryList) follow(cursor int) {
	if cursor < 0 {
		return
	}
	switch {
	case cursor < l.vp.YOffset:
		l.vp.SetYOffset(cursor)
	case cursor >= l.vp.YOffset+l.vp.Height:
		l.vp.SetYOffset(cursor - l.vp.Height + 1)
	}
}

func (l *EntryList) row(theme styles.Theme, root string, e types.Entry, isCursor, isSelected bool) string {
	mark := blankMark
	if isCursor {
		mark = cursorMark
	}

	name := displayPath(root, e.Path)
	pathWidth := l.width - len(mark) - sizeWidth - filesWidth - 2
	name = truncateLeft(name, pathWidth)

	line := fmt.Sprintf("%s%s %*s %*s",
		mark,
		runewidth.FillRight(name, max(pathWidth, 0)),
		sizeWidth, humanize.Bytes(uint64(e.Size)),
		filesWidth, humanize.Comma(e.Files)+" files",
	)

	switch {
	case isCursor && isSelected:
		return theme.CursorSelected.Render(line)
	case isSelected:
		return theme.Selected.Render(line)
	case isCursor:
		return theme.Cursor.Render(line)
	}
	return theme.Row.Render(line)
}

func displayPath(root, path string) string {
	if rel, err := filepath.Rel(root, path); err == nil && !strings.HasPrefix(rel, "..") {
		return rel
	}
	return path
}

// truncateLeft keeps the tail of s, which carries the most specific part of
// a path, within width terminal cells.
func truncateLeft(s string, width int) string {
	if width <= 0 || runewidth.StringWidth(s) <= width {
		return s
	}
	r := []rune(s)
	i, used := len(r), 1
	for i > 0 && used+runewidth.RuneWidth(r[i-1]) <= width {
		i--
		used += runewidth.RuneWidth(r[i])
	}
	return "…" + string(r[i:])
}
