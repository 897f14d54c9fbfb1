package keymap

import (
	"wiper/internal/errors"
	"wiper/pkg/types"
)

// Bindings maps each command to its chords, in display order.
type Bindings map[types.Command][]types.Chord

// Defaults returns the built-in chord set.
func Defaults() Bindings {
	return Bindings{
		types.Quit:           chords("ctrl+c", "q"),
		types.ToggleCurrent:  chords("space"),
		types.DeleteSelected: chords("d"),
		types.Up:             chords("up", "k"),
		types.Down:           chords("down", "j"),
		types.EditPath:       chords("p"),
		types.EditFilter:     chords("f"),
		types.UnfocusField:   chords("esc", "enter"),
		types.Refresh:        chords("r"),
	}
}

func chords(keys ...string) []types.Chord {
	out := make([]types.Chord, 0, len(keys))
	for _, k := range keys {
		out = append(out, types.MustParseChord(k))
	}
	return out
}

// Merge returns a copy of b where every command present in overrides has its
// chord list replaced.
func (b Bindings) Merge(overrides Bindings) Bindings {
	out := make(Bindings, len(b))
	for cmd, cs := range b {
		out[cmd] = append([]types.Chord(nil), cs...)
	}
	for cmd, cs := range overrides {
		out[cmd] = append([]types.Chord(nil), cs...)
	}
	return out
}

// ParseBindings reads the `keys` section of the configuration, which maps
// command names to chord strings.
func ParseBindings(raw map[string][]string) (Bindings, error) {
	out := make(Bindings, len(raw))
	for name, keys := range raw {
		cmd, err := types.ParseCommand(name)
		if err != nil {
			return nil, errors.NewConfigError("unknown command in keys", name, errors.InvalidConfig, err)
		}
		cs := make([]types.Chord, 0, len(keys))
		for _, k := range keys {
			c, err := types.ParseChord(k)
			if err != nil {
				return nil, errors.NewConfigError("invalid key chord", name, errors.InvalidConfig, err)
			}
			cs = append(cs, c)
		}
		out[cmd] = cs
	}
	return out, nil
}

// Profile selects the subset of commands a registry serves.
type Profile int

const (
	// Full enables every command
	Full Profile = iota
	// ReadOnly drops the selection and deletion commands
	ReadOnly
)

func (p Profile) String() string {
	if p == ReadOnly {
		return "read-only"
	}
	return "full"
}

// Commands lists the commands requested by the profile.
func (p Profile) Commands() []types.Command {
	if p == ReadOnly {
		return []types.Command{
			types.Quit,
			types.Up,
			types.Down,
			types.EditPath,
			types.EditFilter,
			types.UnfocusField,
			types.Refresh,
		}
	}
	return types.AllCommands()
}
