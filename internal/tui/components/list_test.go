package components

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetItemsResetsState(t *testing.T) {
	l := NewSelectableList[string]()
	_, ok := l.Cursor()
	assert.False(t, ok, "empty list has no cursor")

	l.SetItems([]string{"a", "b", "c"})
	l.Next()
	l.ToggleAtCursor()
	l.Next()
	l.ToggleAtCursor()
	assert.Equal(t, []int{1, 2}, l.Selected())

	l.SetItems([]string{"x", "y"})
	cur, ok := l.Cursor()
	assert.True(t, ok)
	assert.Equal(t, 0, cur)
	assert.Empty(t, l.Selected())

	l.ToggleAtCursor()
	l.SetItems(nil)
	_, ok = l.Cursor()
	assert.False(t, ok)
	assert.Empty(t, l.Selected())
}

func TestWraparound(t *testing.T) {
	l := NewSelectableList[int]()
	l.SetItems([]int{10, 20, 30})

	l.Next()
	l.Next()
	cur, _ := l.Cursor()
	assert.Equal(t, 2, cur)

	l.Next()
	cur, _ = l.Cursor()
	assert.Equal(t, 0, cur, "next on last wraps to first")

	l.Previous()
	cur, _ = l.Cursor()
	assert.Equal(t, 2, cur, "previous on first wraps to last")

	v, ok := l.Current()
	assert.True(t, ok)
	assert.Equal(t, 30, v)
}

func TestEmptyListOperationsAreNoops(t *testing.T) {
	l := NewSelectableList[int]()
	assert.NotPanics(t, func() {
		l.Next()
		l.Previous()
		l.ToggleAtCursor()
	})
	_, ok := l.Current()
	assert.False(t, ok)
	assert.Empty(t, l.SelectedItems())
	assert.Equal(t, 0, l.Len())
}

func TestToggleAndSnapshot(t *testing.T) {
	l := NewSelectableList[string]()
	l.SetItems([]string{"a", "b", "c"})

	l.Previous()
	l.ToggleAtCursor()
	l.Next()
	l.ToggleAtCursor()
	assert.True(t, l.IsSelected(0))
	assert.True(t, l.IsSelected(2))
	assert.False(t, l.IsSelected(1))
	assert.Equal(t, []string{"a", "c"}, l.SelectedItems())

	l.ToggleAtCursor()
	assert.Equal(t, []string{"c"}, l.SelectedItems())

	items := l.Items()
	items[0] = "mutated"
	assert.Equal(t, "a", l.Items()[0], "Items returns a copy")
}
