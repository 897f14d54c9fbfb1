package components

import "sort"

// SelectableList is an ordered sequence with an optional cursor and a set of
// selected indices. The cursor is always a valid index or absent, and the
// selection never outlives the items it was made on.
type SelectableList[T any] struct {
	items    []T
	cursor   int
	selected map[int]struct{}
}

// NewSelectableList creates an empty list.
func NewSelectableList[T any]() *SelectableList[T] {
	return &SelectableList[T]{
		cursor:   -1,
		selected: make(map[int]struct{}),
	}
}

// SetItems replaces the contents, puts the cursor on the first item and
// clears the selection.
func (l *SelectableList[T]) SetItems(items []T) {
	l.items = append([]T(nil), items...)
	l.selected = make(map[int]struct{})
	if len(l.items) == 0 {
		l.cursor = -1
		return
	}
	l.cursor = 0
}

// Next moves the cursor down, wrapping from the last item to the first.
func (l *SelectableList[T]) Next() {
	if len(l.items) == 0 {
		return
	}
	l.cursor = (l.cursor + 1) % len(l.items)
}

// Previous moves the cursor up, wrapping from the first item to the last.
func (l *SelectableList[T]) Previous() {
	if len(l.items) == 0 {
		return
	}
	l.cursor = (l.cursor - 1 + len(l.items)) % len(l.items)
}

// ToggleAtCursor flips the selection of the item under the cursor.
func (l *SelectableList[T]) ToggleAtCursor() {
	if l.cursor < 0 {
		return
	}
	if _, ok := l.selected[l.cursor]; ok {
		delete(l.selected, l.cursor)
		return
	}
	l.selected[l.cursor] = struct{}{}
}

// Items returns a copy of the items.
func (l *SelectableList[T]) Items() []T {
	return append([]T(nil), l.items...)
}

// Len returns the number of items.
func (l *SelectableList[T]) Len() int {
	return len(l.items)
}

// Cursor returns the cursor index; ok is false when the list is empty.
func (l *SelectableList[T]) Cursor() (index int, ok bool) {
	return l.cursor, l.cursor >= 0
}

// Current returns the item under the cursor.
func (l *SelectableList[T]) Current() (T, bool) {
	var zero T
	if l.cursor < 0 {
		return zero, false
	}
	return l.items[l.cursor], true
}

// IsSelected reports whether index i is selected.
func (l *SelectableList[T]) IsSelected(i int) bool {
	_, ok := l.selected[i]
	return ok
}

// Selected returns the selected indices in ascending order.
func (l *SelectableList[T]) Selected() []int {
	out := make([]int, 0, len(l.selected))
	for i := range l.selected {
		out = append(out, i)
	}
	sort.Ints(out)
	return out
}

// SelectedItems snapshots the selected items in list order.
func (l *SelectableList[T]) SelectedItems() []T {
	idx := l.Selected()
	out := make([]T, 0, len(idx))
	for _, i := range idx {
		out = append(out, l.items[i])
	}
	return out
}
