package tui

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wiper/internal/app"
	"wiper/internal/cleanup"
	"wiper/internal/config"
	"wiper/internal/errors"
	"wiper/internal/keymap"
	"wiper/internal/scan"
	"wiper/internal/tui/messages"
	"wiper/internal/tui/styles"
	"wiper/pkg/testutils"
)

func newMachine(t *testing.T, root string) *app.Machine {
	t.Helper()
	reg, err := keymap.New(keymap.Full.Commands(), keymap.Defaults())
	require.NoError(t, err)

	m, err := app.New(app.Options{
		Root:        root,
		Filter:      config.DefaultFilter,
		MatchMode:   config.MatchRegex,
		Registry:    reg,
		Scanner:     scan.New(scan.Options{Prune: true}),
		Remover:     cleanup.New(),
		StatusTicks: 4,
	})
	require.NoError(t, err)
	return m
}

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestModelViewNeedsSize(t *testing.T) {
	m := NewModel(newMachine(t, testutils.NodeModulesFixture(t)), styles.DefaultTheme())
	assert.Empty(t, m.View())

	_, cmd := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	assert.Nil(t, cmd)

	view := testutils.StripANSI(m.View())
	assert.Contains(t, view, "a/node_modules")
	assert.Contains(t, view, "b/node_modules")
}

func TestModelTooSmall(t *testing.T) {
	m := NewModel(newMachine(t, testutils.NodeModulesFixture(t)), styles.DefaultTheme())

	var quitHook bool
	m.OnQuit(func() { quitHook = true })

	_, cmd := m.Update(tea.WindowSizeMsg{Width: 20, Height: 5})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.True(t, quitHook)
	assert.True(t, errors.IsTerminalTooSmall(m.Err()))
	assert.Empty(t, m.View())
}

func TestModelQuitKey(t *testing.T) {
	m := NewModel(newMachine(t, testutils.NodeModulesFixture(t)), styles.DefaultTheme())
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})

	calls := 0
	m.OnQuit(func() { calls++ })

	_, cmd := m.Update(runeKey('q'))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.True(t, m.Quitting())
	assert.NoError(t, m.Err())
	assert.Equal(t, 1, calls)

	// Nothing is processed after quitting.
	_, cmd = m.Update(runeKey('q'))
	assert.Nil(t, cmd)
	assert.Equal(t, 1, calls)
}

func TestModelDeletesSelection(t *testing.T) {
	root := testutils.NodeModulesFixture(t)
	machine := newMachine(t, root)
	m := NewModel(machine, styles.DefaultTheme())
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})

	m.Update(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	m.Update(runeKey('d'))

	require.Len(t, machine.Entries(), 1)
	assert.Equal(t, filepath.Join(root, "b", "node_modules"), machine.Entries()[0].Path)
	assert.NoDirExists(t, filepath.Join(root, "a", "node_modules"))
	assert.Contains(t, testutils.StripANSI(m.View()), "removed 1 entry")
}

func TestModelTimerAndDiskMessages(t *testing.T) {
	machine := newMachine(t, testutils.NodeModulesFixture(t))
	m := NewModel(machine, styles.DefaultTheme())

	m.Update(messages.DiskChangedMsg{Path: "x", Time: time.Now()})
	assert.True(t, machine.Stale())

	frame := machine.Status().Frame()
	m.Update(messages.TickMsg{Time: time.Now()})
	assert.NotEqual(t, frame, machine.Status().Frame())
}

func TestRunQuitsOnInput(t *testing.T) {
	machine := newMachine(t, testutils.NodeModulesFixture(t))

	var out bytes.Buffer
	done := make(chan error, 1)
	go func() {
		done <- Run(machine, RunOptions{
			Theme:  styles.DefaultTheme(),
			Tick:   10 * time.Millisecond,
			Watch:  true,
			Input:  strings.NewReader("q"),
			Output: &out,
		})
	}()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("run did not return after quit")
	}
}
