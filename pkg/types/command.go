package types

import (
	"fmt"
	"strings"
)

// Command is a logical user intent, independent of the chord that triggers it.
// The set is closed: every switch over Command lists all of them.
type Command int

const (
	Quit Command = iota
	ToggleCurrent
	DeleteSelected
	Up
	Down
	EditPath
	EditFilter
	UnfocusField
	Refresh

	commandCount
)

var commandNames = [commandCount]string{
	Quit:           "Quit",
	ToggleCurrent:  "ToggleCurrent",
	DeleteSelected: "DeleteSelected",
	Up:             "Up",
	Down:           "Down",
	EditPath:       "EditPath",
	EditFilter:     "EditFilter",
	UnfocusField:   "UnfocusField",
	Refresh:        "Refresh",
}

var commandKeys = [commandCount]string{
	Quit:           "quit",
	ToggleCurrent:  "toggle_current",
	DeleteSelected: "delete_selected",
	Up:             "up",
	Down:           "down",
	EditPath:       "edit_path",
	EditFilter:     "edit_filter",
	UnfocusField:   "unfocus_field",
	Refresh:        "refresh",
}

// String returns the display name of the command.
func (c Command) String() string {
	if !c.Valid() {
		return fmt.Sprintf("Command(%d)", int(c))
	}
	return commandNames[c]
}

// ConfigKey returns the name used for the command in configuration files.
func (c Command) ConfigKey() string {
	if !c.Valid() {
		return ""
	}
	return commandKeys[c]
}

// Valid reports whether c is one of the declared commands.
func (c Command) Valid() bool {
	return c >= 0 && c < commandCount
}

// AllCommands lists every command in declaration order.
func AllCommands() []Command {
	cmds := make([]Command, 0, commandCount)
	for c := Command(0); c < commandCount; c++ {
		cmds = append(cmds, c)
	}
	return cmds
}

// ParseCommand accepts either the display name or the config key.
func ParseCommand(s string) (Command, error) {
	needle := strings.TrimSpace(s)
	for c := Command(0); c < commandCount; c++ {
		if strings.EqualFold(needle, commandNames[c]) || strings.EqualFold(needle, commandKeys[c]) {
			return c, nil
		}
	}
	return 0, fmt.Errorf("unknown command %q", s)
}
