package views

import (
	"fmt"
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/help"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wiper/internal/errors"
	"wiper/internal/keymap"
	"wiper/internal/tui/components"
	"wiper/internal/tui/styles"
	"wiper/pkg/testutils"
	"wiper/pkg/types"
)

// Mock state for testing
type mockState struct {
	root     string
	mode     types.FocusMode
	entries  []types.Entry
	cursor   int
	selected map[int]bool
	path     *components.TextField
	filter   *components.TextField
	status   *components.StatusBar
	keys     help.KeyMap
	dryRun   bool
	readOnly bool
	stale    bool
}

func newMockState(t *testing.T) *mockState {
	t.Helper()
	reg, err := keymap.New(keymap.Full.Commands(), keymap.Defaults())
	require.NoError(t, err)

	return &mockState{
		root: "/work",
		entries: []types.Entry{
			{Path: "/work/a/node_modules", Size: 300, Files: 2},
			{Path: "/work/b/node_modules", Size: 50, Files: 1},
		},
		selected: map[int]bool{0: true},
		path:     components.NewTextField("Path (p to edit)", "Path (esc to apply)", "/work"),
		filter:   components.NewTextField("Filter (f to edit)", "Filter (esc to apply)", "^node_modules$"),
		status:   components.NewStatusBar(0),
		keys:     reg,
	}
}

func (m *mockState) Root() string                       { return m.root }
func (m *mockState) Mode() types.FocusMode              { return m.mode }
func (m *mockState) Entries() []types.Entry             { return m.entries }
func (m *mockState) IsSelected(i int) bool              { return m.selected[i] }
func (m *mockState) PathField() *components.TextField   { return m.path }
func (m *mockState) FilterField() *components.TextField { return m.filter }
func (m *mockState) Status() *components.StatusBar      { return m.status }
func (m *mockState) Keys() help.KeyMap                  { return m.keys }
func (m *mockState) DryRun() bool                       { return m.dryRun }
func (m *mockState) ReadOnly() bool                     { return m.readOnly }
func (m *mockState) Stale() bool                        { return m.stale }
func (m *mockState) Cursor() (int, bool)                { return m.cursor, len(m.entries) > 0 }

func (m *mockState) TotalSize() int64 {
	var n int64
	for _, e := range m.entries {
		n += e.Size
	}
	return n
}

func (m *mockState) SelectedSize() int64 {
	var n int64
	for i, e := range m.entries {
		if m.selected[i] {
			n += e.Size
		}
	}
	return n
}

func (m *mockState) SelectedPercent() float64 {
	if m.TotalSize() == 0 {
		return 0
	}
	return float64(m.SelectedSize()) / float64(m.TotalSize()) * 100
}

var everyBinding = []string{
	"ctrl+c/q Quit",
	"space ToggleCurrent",
	"d DeleteSelected",
	"up/k Up",
	"down/j Down",
	"p EditPath",
	"f EditFilter",
	"esc/enter UnfocusField",
	"r Refresh",
}

func render(t *testing.T, s *mockState, w, h int) string {
	t.Helper()
	l := NewLayout(styles.DefaultTheme())
	l.Resize(w, h)
	return testutils.StripANSI(l.RenderMainView(s))
}

func TestRenderMainView(t *testing.T) {
	tests := []struct {
		name     string
		width    int
		mutate   func(*mockState)
		contains []string
		excludes []string
	}{
		{
			name:  "wide terminal with side help",
			width: 120,
			contains: []string{
				"Total: 350 B",
				"Selected: 300 B (85.71%)",
				"Entries: 2",
				">> a/node_modules",
				"b/node_modules",
				"Path (p to edit)",
				"Filter (f to edit)",
				"^node_modules$",
				"DeleteSelected",
				"ctrl+c",
				"space",
			},
			excludes: []string{"dry run"},
		},
		{
			name:     "narrow terminal with wrapped help",
			width:    MinWidth,
			contains: append([]string{"Total: 350 B"}, everyBinding...),
			excludes: []string{"…"},
		},
		{
			name:     "80 columns with wrapped help",
			width:    80,
			contains: append([]string{">> a/node_modules"}, everyBinding...),
			excludes: []string{"…"},
		},
		{
			name:  "empty result",
			width: 100,
			mutate: func(s *mockState) {
				s.entries = nil
				s.selected = map[int]bool{}
			},
			contains: []string{"no matching entries", "Selected: 0 B (0.00%)"},
		},
		{
			name:  "tags and status",
			width: 100,
			mutate: func(s *mockState) {
				s.dryRun = true
				s.readOnly = true
				s.stale = true
				s.status.SetError("delete failed")
			},
			contains: []string{"[dry run, read only, stale]", "delete failed"},
		},
		{
			name:  "focused field title",
			width: 100,
			mutate: func(s *mockState) {
				s.mode = types.EditingFilter
				s.filter.SetFocus(true)
			},
			contains: []string{"Filter (esc to apply)", "Path (p to edit)"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newMockState(t)
			if tt.mutate != nil {
				tt.mutate(s)
			}
			output := render(t, s, tt.width, 30)

			for _, want := range tt.contains {
				assert.Contains(t, output, want, fmt.Sprintf("output should contain '%s'", want))
			}
			for _, not := range tt.excludes {
				assert.NotContains(t, output, not, fmt.Sprintf("output should not contain '%s'", not))
			}
		})
	}
}

func TestFrameFitsTerminal(t *testing.T) {
	for _, size := range [][2]int{{MinWidth, MinHeight}, {80, 24}, {120, 40}} {
		output := render(t, newMockState(t), size[0], size[1])
		lines := strings.Split(output, "\n")
		assert.LessOrEqual(t, len(lines), size[1], "frame taller than %dx%d", size[0], size[1])
	}
}

func TestSmallestFrameShowsEveryBinding(t *testing.T) {
	output := render(t, newMockState(t), MinWidth, MinHeight)

	assert.Len(t, strings.Split(output, "\n"), MinHeight)
	for _, want := range everyBinding {
		assert.Contains(t, output, want)
	}
	// one list row is left, holding the cursor entry
	assert.Contains(t, output, ">> a/node_modules")
}

func TestUnsizedLayoutRendersNothing(t *testing.T) {
	l := NewLayout(styles.DefaultTheme())
	assert.Empty(t, l.RenderMainView(newMockState(t)))
}

func TestCheckSize(t *testing.T) {
	assert.NoError(t, CheckSize(MinWidth, MinHeight))
	assert.NoError(t, CheckSize(200, 60))

	err := CheckSize(MinWidth-1, MinHeight)
	require.Error(t, err)
	assert.True(t, errors.IsTerminalTooSmall(err))
	assert.Contains(t, err.Error(), "require width >= 52 and height >= 12 (got 51x12)")

	assert.Error(t, CheckSize(MinWidth, MinHeight-1))
}
