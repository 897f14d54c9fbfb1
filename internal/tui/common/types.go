package common

import (
	"github.com/charmbracelet/bubbles/help"

	"wiper/internal/tui/components"
	"wiper/pkg/types"
)

// StateReader defines the interface that views use to read application state
type StateReader interface {
	Root() string
	Mode() types.FocusMode
	Entries() []types.Entry
	Cursor() (int, bool)
	IsSelected(i int) bool
	TotalSize() int64
	SelectedSize() int64
	SelectedPercent() float64
	PathField() *components.TextField
	FilterField() *components.TextField
	Status() *components.StatusBar
	Keys() help.KeyMap
	DryRun() bool
	ReadOnly() bool
	Stale() bool
}
