package main

import (
	"fmt"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"wiper/internal/errors"
	"wiper/internal/scan"
)

// NewScanCmd creates the non-interactive scan command
func NewScanCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "scan [root]",
		Short: "List matching entries without starting the UI",
		Long:  `Scan a tree with the configured filter and print every match with its size, largest first.`,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := scan.NewMatcher(opts.cfg.Scan.MatchMode, opts.cfg.Scan.Filter, opts.cfg.Scan.MatchPath)
			if err != nil {
				return err
			}

			root, err := filepath.Abs(opts.root(args))
			if err != nil {
				return errors.Wrapf(err, "cannot resolve root %s", opts.root(args))
			}
			entries, err := opts.scanner().Scan(root, m)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			var total int64
			for _, e := range entries {
				total += e.Size
				rel, err := filepath.Rel(root, e.Path)
				if err != nil {
					rel = e.Path
				}
				fmt.Fprintf(out, "%s  %s  %s\n",
					sizeText(fmt.Sprintf("%10s", humanize.Bytes(uint64(e.Size)))),
					rel,
					mutedText(humanize.Comma(e.Files)+" files"))
			}
			fmt.Fprintf(out, "%s %s in %d entries\n",
				headerText("Total:"), humanize.Bytes(uint64(total)), len(entries))
			return nil
		},
	}
}
