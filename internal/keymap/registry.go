// Package keymap binds logical commands to key chords and rejects
// configurations where one chord would trigger more than one command.
package keymap

import (
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"wiper/internal/errors"
	"wiper/pkg/types"
)

// Registry resolves chords to commands. It is immutable after New.
type Registry struct {
	commands []types.Command
	chords   map[types.Command][]types.Chord
	lookup   map[types.Chord]types.Command
}

// New builds a registry for the requested commands. Commands absent from
// the list are not resolvable even if bindings name them. Any chord claimed
// by two or more commands makes construction fail with a
// *errors.KeyConflictError listing every offender.
func New(commands []types.Command, bindings Bindings) (*Registry, error) {
	r := &Registry{
		chords: make(map[types.Command][]types.Chord),
		lookup: make(map[types.Chord]types.Command),
	}

	claims := make(map[types.Chord][]types.Command)
	seen := make(map[types.Command]bool)
	for _, cmd := range commands {
		if seen[cmd] {
			continue
		}
		seen[cmd] = true
		r.commands = append(r.commands, cmd)

		var own []types.Chord
		for _, c := range bindings[cmd] {
			if containsChord(own, c) {
				continue
			}
			own = append(own, c)
			claims[c] = append(claims[c], cmd)
		}
		r.chords[cmd] = own
	}

	var conflicts []errors.Conflict
	for chord, cmds := range claims {
		if len(cmds) < 2 {
			r.lookup[chord] = cmds[0]
			continue
		}
		names := make([]string, 0, len(cmds))
		for _, c := range cmds {
			names = append(names, c.String())
		}
		conflicts = append(conflicts, errors.Conflict{Chord: chord.Display(), Commands: names})
	}
	if len(conflicts) > 0 {
		sort.Slice(conflicts, func(i, j int) bool {
			return conflicts[i].Chord < conflicts[j].Chord
		})
		return nil, errors.NewKeyConflictError(conflicts)
	}
	return r, nil
}

func containsChord(cs []types.Chord, c types.Chord) bool {
	for _, x := range cs {
		if x == c {
			return true
		}
	}
	return false
}

// Lookup returns the command bound to chord.
func (r *Registry) Lookup(chord types.Chord) (types.Command, bool) {
	cmd, ok := r.lookup[chord]
	return cmd, ok
}

// Resolve looks up the chord of a key message.
func (r *Registry) Resolve(msg tea.KeyMsg) (types.Command, bool) {
	return r.Lookup(types.ChordFromKeyMsg(msg))
}

// Has reports whether cmd is served by the registry.
func (r *Registry) Has(cmd types.Command) bool {
	_, ok := r.chords[cmd]
	return ok
}

// Commands returns the served commands in registration order.
func (r *Registry) Commands() []types.Command {
	return append([]types.Command(nil), r.commands...)
}

// Chords returns the chords bound to cmd.
func (r *Registry) Chords(cmd types.Command) []types.Chord {
	return append([]types.Chord(nil), r.chords[cmd]...)
}

// ShortHelp implements help.KeyMap with one entry per command.
func (r *Registry) ShortHelp() []key.Binding {
	out := make([]key.Binding, 0, len(r.commands))
	for _, cmd := range r.commands {
		cs := r.chords[cmd]
		if len(cs) == 0 {
			continue
		}
		keys := make([]string, 0, len(cs))
		shown := make([]string, 0, len(cs))
		for _, c := range cs {
			keys = append(keys, c.String())
			shown = append(shown, c.Display())
		}
		out = append(out, key.NewBinding(
			key.WithKeys(keys...),
			key.WithHelp(strings.Join(shown, "/"), cmd.String()),
		))
	}
	return out
}

// FullHelp implements help.KeyMap with one row per chord. The command name
// is printed next to its first chord only.
func (r *Registry) FullHelp() [][]key.Binding {
	var rows []key.Binding
	for _, cmd := range r.commands {
		for i, c := range r.chords[cmd] {
			desc := ""
			if i == 0 {
				desc = cmd.String()
			}
			rows = append(rows, key.NewBinding(
				key.WithKeys(c.String()),
				key.WithHelp(c.Display(), desc),
			))
		}
	}
	return [][]key.Binding{rows}
}
