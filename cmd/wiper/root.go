package main

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"wiper/internal/app"
	"wiper/internal/cleanup"
	"wiper/internal/config"
	"wiper/internal/keymap"
	"wiper/internal/log"
	"wiper/internal/scan"
	"wiper/internal/tui"
	"wiper/internal/tui/styles"
)

// options carries the flag values and the effective configuration shared by
// every command.
type options struct {
	cfgFile   string
	filter    string
	mode      string
	matchPath bool
	prune     bool
	debug     bool
	logFile   string
	dryRun    bool
	readOnly  bool
	watch     bool
	tick      time.Duration

	cfg *config.Config
}

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "wiper [root]",
		Short: "Find and delete bulky directories",
		Long: `Wiper walks a directory tree, lists every entry whose name matches a
filter (node_modules by default) with its size, and lets you select
and delete them from an interactive terminal UI.`,
		Version:       version,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.load(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			log.Close()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.runInteractive(args)
		},
	}

	f := rootCmd.PersistentFlags()
	f.StringVar(&opts.cfgFile, "config", "", "config file (default is $HOME/.config/wiper/config.yaml)")
	f.StringVarP(&opts.filter, "filter", "f", config.DefaultFilter, "pattern an entry must match")
	f.StringVarP(&opts.mode, "mode", "m", config.MatchRegex, "match mode: regex, name or glob")
	f.BoolVar(&opts.matchPath, "match-path", false, "match the filter against the full path instead of the name")
	f.BoolVarP(&opts.prune, "prune", "p", true, "do not look inside matched entries")
	f.BoolVar(&opts.debug, "debug", false, "write debug logs")
	f.StringVar(&opts.logFile, "log-file", "", "log file (debug logs go to the temp dir when unset)")
	f.BoolVar(&opts.dryRun, "dry-run", false, "report what would be deleted without deleting")
	f.BoolVar(&opts.readOnly, "read-only", false, "disable selection and deletion")
	f.BoolVar(&opts.watch, "watch", false, "flag the list as stale when the tree changes")
	f.DurationVar(&opts.tick, "tick", 250*time.Millisecond, "interval of the UI timer")

	rootCmd.AddCommand(NewConfigCmd(opts))
	rootCmd.AddCommand(NewKeysCmd(opts))
	rootCmd.AddCommand(NewScanCmd(opts))

	return rootCmd
}

// load reads the configuration, applies explicitly set flags on top of it
// and configures logging.
func (o *options) load(cmd *cobra.Command) error {
	var err error
	if o.cfgFile != "" {
		o.cfg, err = config.LoadConfigFile(o.cfgFile)
	} else {
		o.cfg, err = config.LoadConfig()
	}
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("filter") {
		o.cfg.Scan.Filter = o.filter
	}
	if flags.Changed("mode") {
		o.cfg.Scan.MatchMode = o.mode
	}
	if flags.Changed("match-path") {
		o.cfg.Scan.MatchPath = o.matchPath
	}
	if flags.Changed("prune") {
		o.cfg.Scan.Prune = o.prune
	}
	if flags.Changed("debug") {
		o.cfg.Log.Debug = o.debug
	}
	if flags.Changed("log-file") {
		o.cfg.Log.File = o.logFile
	}
	if flags.Changed("dry-run") {
		o.cfg.Settings.DryRun = o.dryRun
	}
	if flags.Changed("read-only") {
		o.cfg.Settings.ReadOnly = o.readOnly
	}
	if flags.Changed("watch") {
		o.cfg.Settings.Watch = o.watch
	}
	if flags.Changed("tick") {
		o.cfg.Settings.TickIntervalMs = int(o.tick / time.Millisecond)
	}
	if err := o.cfg.Validate(); err != nil {
		return err
	}

	configureLogging(o.cfg.Log)
	return nil
}

func configureLogging(c config.Log) {
	log.SetDebug(c.Debug)
	switch {
	case c.File != "":
		log.Configure(log.WithFile(c.File))
	case c.Debug:
		log.Configure(log.WithFile(filepath.Join(os.TempDir(), "wiper-debug.log")))
	default:
		log.Configure(log.WithOutput(io.Discard))
	}
}

// registry builds the keymap from the defaults and the configured overrides.
// Conflicts are reported before any terminal setup.
func (o *options) registry() (*keymap.Registry, error) {
	overrides, err := keymap.ParseBindings(o.cfg.Keys)
	if err != nil {
		return nil, err
	}
	return keymap.New(profileOf(o.cfg).Commands(), keymap.Defaults().Merge(overrides))
}

func (o *options) scanner() *scan.Scanner {
	return scan.New(scan.Options{
		Prune:   o.cfg.Scan.Prune,
		Workers: o.cfg.Scan.Workers,
	})
}

func (o *options) root(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return o.cfg.Scan.Root
}

func (o *options) runInteractive(args []string) error {
	reg, err := o.registry()
	if err != nil {
		return err
	}

	machine, err := app.New(app.Options{
		Root:        o.root(args),
		Filter:      o.cfg.Scan.Filter,
		MatchMode:   o.cfg.Scan.MatchMode,
		MatchPath:   o.cfg.Scan.MatchPath,
		Registry:    reg,
		Scanner:     o.scanner(),
		Remover:     cleanup.New(cleanup.WithDryRun(o.cfg.Settings.DryRun)),
		StatusTicks: o.cfg.Settings.StatusTicks,
	})
	if err != nil {
		return err
	}

	log.LogWithFields(
		log.F("root", machine.Root()),
		log.F("filter", o.cfg.Scan.Filter),
		log.F("profile", profileOf(o.cfg).String()),
	).Info("starting session")

	err = tui.Run(machine, tui.RunOptions{
		Theme:     styles.NewTheme(o.cfg.Theme),
		Tick:      o.cfg.TickInterval(),
		Watch:     o.cfg.Settings.Watch,
		AltScreen: true,
	})
	if err != nil {
		log.LogError(err, "session ended with error")
	}
	return err
}

func profileOf(cfg *config.Config) keymap.Profile {
	if cfg.Settings.ReadOnly {
		return keymap.ReadOnly
	}
	return keymap.Full
}
