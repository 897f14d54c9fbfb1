package types

// FocusMode says which text field, if any, currently owns the keyboard.
// The modes are mutually exclusive.
type FocusMode int

const (
	// Normal routes keys to global commands
	Normal FocusMode = iota
	// EditingPath forwards keys to the root path field
	EditingPath
	// EditingFilter forwards keys to the filter field
	EditingFilter
)

func (m FocusMode) String() string {
	switch m {
	case Normal:
		return "normal"
	case EditingPath:
		return "editing path"
	case EditingFilter:
		return "editing filter"
	}
	return "unknown"
}

// Editing reports whether a text field is focused.
func (m FocusMode) Editing() bool {
	return m == EditingPath || m == EditingFilter
}
