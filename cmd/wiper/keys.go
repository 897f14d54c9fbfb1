package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// NewKeysCmd creates the command that prints the effective key bindings
func NewKeysCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "keys",
		Short: "Print the effective key bindings",
		Long: `Print every command with the keys bound to it, after applying the
keys section of the configuration. Conflicting bindings are reported
as an error.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := opts.registry()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, headerText(fmt.Sprintf("Key bindings (%s)", profileOf(opts.cfg))))
			for _, c := range reg.Commands() {
				keys := make([]string, 0, len(reg.Chords(c)))
				for _, chord := range reg.Chords(c) {
					keys = append(keys, chord.Display())
				}
				fmt.Fprintf(out, "  %-16s %s %s\n", c, mutedText(fmt.Sprintf("%-16s", c.ConfigKey())), strings.Join(keys, ", "))
			}
			return nil
		},
	}
}
