package types

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// Modifiers is the set of modifier keys held with a chord.
type Modifiers uint8

const (
	ModCtrl Modifiers = 1 << iota
	ModAlt
	ModShift
)

// ModNone is the empty modifier set.
const ModNone Modifiers = 0

// Has reports whether every modifier in m is present.
func (mods Modifiers) Has(m Modifiers) bool {
	return mods&m == m
}

// Chord is a key code plus a modifier set. Two chords are equal when both
// parts are, so Chord can be used as a map key.
type Chord struct {
	Code string
	Mods Modifiers
}

// NewChord builds a chord.
func NewChord(code string, mods Modifiers) Chord {
	return Chord{Code: code, Mods: mods}
}

var modifierPrefixes = []struct {
	prefix string
	mod    Modifiers
}{
	{"alt+", ModAlt},
	{"ctrl+", ModCtrl},
	{"shift+", ModShift},
}

// ParseChord reads the textual form used by bubbletea ("ctrl+c", "alt+x",
// "up", "q"). "space" is accepted as an alias for " ".
func ParseChord(s string) (Chord, error) {
	if s == "" {
		return Chord{}, fmt.Errorf("empty key chord")
	}

	var mods Modifiers
	rest := s
	for {
		matched := false
		for _, p := range modifierPrefixes {
			if len(rest) > len(p.prefix) && strings.EqualFold(rest[:len(p.prefix)], p.prefix) {
				mods |= p.mod
				rest = rest[len(p.prefix):]
				matched = true
			}
		}
		if !matched {
			break
		}
	}

	if strings.EqualFold(rest, "space") {
		rest = " "
	}
	return Chord{Code: rest, Mods: mods}, nil
}

// MustParseChord is ParseChord for literals known to be valid.
func MustParseChord(s string) Chord {
	c, err := ParseChord(s)
	if err != nil {
		panic(err)
	}
	return c
}

// ChordFromKeyMsg converts a bubbletea key message into a chord.
func ChordFromKeyMsg(msg tea.KeyMsg) Chord {
	c, _ := ParseChord(msg.String())
	return c
}

// String renders the chord in bubbletea's key notation.
func (c Chord) String() string {
	var b strings.Builder
	for _, p := range modifierPrefixes {
		if c.Mods.Has(p.mod) {
			b.WriteString(p.prefix)
		}
	}
	b.WriteString(c.Code)
	return b.String()
}

// Display renders the chord for the help panel.
func (c Chord) Display() string {
	if c.Code == " " {
		return Chord{Code: "space", Mods: c.Mods}.String()
	}
	return c.String()
}
