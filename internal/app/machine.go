// Package app holds the application state machine: it owns the entry list
// and the two text fields and routes every key event to a focused field, a
// command, or nowhere.
package app

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"

	"wiper/internal/cleanup"
	"wiper/internal/errors"
	"wiper/internal/keymap"
	"wiper/internal/log"
	"wiper/internal/scan"
	"wiper/internal/tui/components"
	"wiper/pkg/types"
)

// Scanner produces the entries under a root.
type Scanner interface {
	Scan(root string, m scan.Matcher) ([]types.Entry, error)
}

// Remover deletes entries from disk.
type Remover interface {
	Remove(entries []types.Entry) cleanup.Summary
}

// Outcome tells the render loop whether to keep going.
type Outcome int

const (
	Continue Outcome = iota
	Exit
)

// Options configure a Machine.
type Options struct {
	Root      string
	Filter    string
	MatchMode string
	MatchPath bool
	Registry  *keymap.Registry
	Scanner   Scanner
	Remover   Remover
	// StatusTicks is how long status messages stay, 0 keeps them
	StatusTicks int
}

// Machine is the single owner of application state. It is not safe for
// concurrent use; the render loop calls it from one goroutine.
type Machine struct {
	mode types.FocusMode

	root      string
	filter    string
	matchMode string
	matchPath bool
	matcher   scan.Matcher

	list        *components.SelectableList[types.Entry]
	pathField   *components.TextField
	filterField *components.TextField
	status      *components.StatusBar

	registry *keymap.Registry
	scanner  Scanner
	remover  Remover

	scans        int
	stale        bool
	rootObserver func(root string)
}

// New creates the machine and runs the initial scan. An invalid filter is
// a configuration error and nothing is scanned.
func New(opts Options) (*Machine, error) {
	if opts.Registry == nil {
		return nil, errors.NewConfigError("no key bindings", "keys", errors.InvalidConfig, nil)
	}
	if opts.Scanner == nil || opts.Remover == nil {
		return nil, errors.New("scanner and remover are required")
	}

	matcher, err := scan.NewMatcher(opts.MatchMode, opts.Filter, opts.MatchPath)
	if err != nil {
		return nil, err
	}

	root := normalizeRoot(opts.Root)
	m := &Machine{
		mode:      types.Normal,
		root:      root,
		filter:    opts.Filter,
		matchMode: opts.MatchMode,
		matchPath: opts.MatchPath,
		matcher:   matcher,
		list:      components.NewSelectableList[types.Entry](),
		registry:  opts.Registry,
		scanner:   opts.Scanner,
		remover:   opts.Remover,
		status:    components.NewStatusBar(opts.StatusTicks),
	}
	m.pathField = components.NewTextField(m.fieldTitle("Path", types.EditPath), m.fieldTitle("Path", types.UnfocusField), root)
	m.filterField = components.NewTextField(m.fieldTitle("Filter", types.EditFilter), m.fieldTitle("Filter", types.UnfocusField), opts.Filter)

	m.rescan()
	return m, nil
}

func (m *Machine) fieldTitle(name string, cmd types.Command) string {
	chords := m.registry.Chords(cmd)
	if len(chords) == 0 {
		return name
	}
	verb := "edit"
	if cmd == types.UnfocusField {
		verb = "apply"
	}
	return fmt.Sprintf("%s (%s to %s)", name, chords[0].Display(), verb)
}

func normalizeRoot(root string) string {
	root = strings.TrimSpace(root)
	if root == "" {
		return "."
	}
	return filepath.Clean(root)
}

// ObserveRoot registers fn to be called whenever a different root is
// committed.
func (m *Machine) ObserveRoot(fn func(root string)) {
	m.rootObserver = fn
}

// HandleKey routes one key event. While a field is focused, only the
// UnfocusField command is honoured; every other key is text for the field.
func (m *Machine) HandleKey(ev types.KeyEvent) (Outcome, tea.Cmd) {
	if ev.Kind != types.KeyPress {
		log.LogWithFields(log.F("key", ev.Msg.String()), log.F("kind", ev.Kind.String())).Debug("ignoring non-press key event")
		return Continue, nil
	}

	cmd, resolved := m.registry.Resolve(ev.Msg)

	if m.mode.Editing() {
		if resolved && cmd == types.UnfocusField {
			m.commit()
			return Continue, nil
		}
		return Continue, m.focusedField().Feed(ev.Msg)
	}

	if !resolved {
		log.LogWithFields(log.F("key", ev.Msg.String())).Debug("no command bound")
		return Continue, nil
	}
	return m.dispatch(cmd), nil
}

func (m *Machine) dispatch(cmd types.Command) Outcome {
	switch cmd {
	case types.Quit:
		return Exit
	case types.ToggleCurrent:
		m.list.ToggleAtCursor()
	case types.DeleteSelected:
		m.deleteSelected()
	case types.Up:
		m.list.Previous()
	case types.Down:
		m.list.Next()
	case types.EditPath:
		m.focus(types.EditingPath)
	case types.EditFilter:
		m.focus(types.EditingFilter)
	case types.UnfocusField:
		// nothing is focused in normal mode
	case types.Refresh:
		if m.rescan() == nil {
			m.status.SetText(fmt.Sprintf("rescanned, %d entries", m.list.Len()))
		}
	default:
		log.Warnf("unhandled command %s", cmd)
	}
	return Continue
}

// focus switches mode and focuses exactly the field that belongs to it.
func (m *Machine) focus(mode types.FocusMode) {
	m.mode = mode
	m.pathField.SetFocus(mode == types.EditingPath)
	m.filterField.SetFocus(mode == types.EditingFilter)
}

func (m *Machine) focusedField() *components.TextField {
	if m.mode == types.EditingPath {
		return m.pathField
	}
	return m.filterField
}

// commit reads the focused field back into state, leaves editing mode and
// rescans. A filter that does not compile keeps the previous matcher and
// results.
func (m *Machine) commit() {
	mode := m.mode
	m.focus(types.Normal)

	switch mode {
	case types.EditingPath:
		root := normalizeRoot(m.pathField.Value())
		changed := root != m.root
		m.root = root
		m.pathField.SetValue(root)
		if changed && m.rootObserver != nil {
			m.rootObserver(root)
		}
	case types.EditingFilter:
		m.filter = m.filterField.Value()
		matcher, err := scan.NewMatcher(m.matchMode, m.filter, m.matchPath)
		if err != nil {
			log.LogError(err, "filter rejected")
			m.status.SetError(err.Error())
			return
		}
		m.matcher = matcher
	}
	m.rescan()
}

// rescan replaces the list with a fresh scan, which also clears the
// selection.
func (m *Machine) rescan() error {
	entries, err := m.scanner.Scan(m.root, m.matcher)
	m.scans++
	m.stale = false
	if err != nil {
		log.LogError(err, "scan failed")
		m.list.SetItems(nil)
		m.status.SetError(err.Error())
		return err
	}
	m.list.SetItems(entries)
	return nil
}

// deleteSelected removes the selected entries best-effort and always
// rescans so the list reflects the disk.
func (m *Machine) deleteSelected() {
	victims := m.list.SelectedItems()
	if len(victims) == 0 {
		m.rescan()
		m.status.SetText("nothing selected")
		return
	}

	sum := m.remover.Remove(victims)
	if m.rescan() != nil {
		return
	}

	verb := "removed"
	if sum.DryRun {
		verb = "dry run: would remove"
	}
	msg := fmt.Sprintf("%s %d %s (%s)", verb, len(sum.Removed), plural(len(sum.Removed), "entry", "entries"),
		humanize.Bytes(uint64(sum.Bytes)))
	if sum.Err != nil {
		m.status.SetError(fmt.Sprintf("%s, %d failed: %v", msg, sum.Failed(), sum.Err))
		return
	}
	m.status.SetText(msg)
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

// Tick ages the status line and advances the liveness indicator.
func (m *Machine) Tick() {
	m.status.Tick()
}

// MarkStale records that the disk changed since the last scan.
func (m *Machine) MarkStale() {
	if m.stale {
		return
	}
	m.stale = true
	hint := "changes on disk"
	if chords := m.registry.Chords(types.Refresh); len(chords) > 0 {
		hint += fmt.Sprintf(", press %s to refresh", chords[0].Display())
	}
	m.status.SetText(hint)
}

// Mode returns the focus mode.
func (m *Machine) Mode() types.FocusMode { return m.mode }

// Root returns the committed root path.
func (m *Machine) Root() string { return m.root }

// Filter returns the committed filter text, valid or not.
func (m *Machine) Filter() string { return m.filter }

// Entries returns the listed entries.
func (m *Machine) Entries() []types.Entry { return m.list.Items() }

// Cursor returns the cursor index; ok is false when nothing is listed.
func (m *Machine) Cursor() (int, bool) { return m.list.Cursor() }

// IsSelected reports whether entry i is selected.
func (m *Machine) IsSelected(i int) bool { return m.list.IsSelected(i) }

// Selected returns the selected indices.
func (m *Machine) Selected() []int { return m.list.Selected() }

func (m *Machine) PathField() *components.TextField   { return m.pathField }
func (m *Machine) FilterField() *components.TextField { return m.filterField }
func (m *Machine) Status() *components.StatusBar      { return m.status }

// Keys returns the bindings for the help panel.
func (m *Machine) Keys() help.KeyMap { return m.registry }

// Scans returns the number of scans run so far.
func (m *Machine) Scans() int { return m.scans }

// Stale reports whether the disk changed since the last scan.
func (m *Machine) Stale() bool { return m.stale }

// DryRun reports whether deletions are simulated.
func (m *Machine) DryRun() bool {
	if d, ok := m.remover.(interface{ DryRun() bool }); ok {
		return d.DryRun()
	}
	return false
}

// ReadOnly reports whether deletion is unavailable.
func (m *Machine) ReadOnly() bool {
	return !m.registry.Has(types.DeleteSelected)
}

// TotalSize sums the size of every listed entry.
func (m *Machine) TotalSize() int64 {
	var total int64
	for _, e := range m.list.Items() {
		total += e.Size
	}
	return total
}

// SelectedSize sums the size of the selected entries.
func (m *Machine) SelectedSize() int64 {
	var total int64
	for _, e := range m.list.SelectedItems() {
		total += e.Size
	}
	return total
}

// SelectedPercent is SelectedSize as a percentage of TotalSize.
func (m *Machine) SelectedPercent() float64 {
	total := m.TotalSize()
	if total == 0 {
		return 0
	}
	return float64(m.SelectedSize()) / float64(total) * 100
}
