package tui

import (
	"io"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"wiper/internal/app"
	"wiper/internal/errors"
	"wiper/internal/events"
	"wiper/internal/log"
	"wiper/internal/tui/styles"
	"wiper/internal/watch"
)

// RunOptions configures an interactive session.
type RunOptions struct {
	Theme styles.Theme
	// Tick is the period of the timer that advances the status bar.
	Tick time.Duration
	// Watch marks the list stale when something under the root changes.
	Watch bool
	// Quiet coalesces bursts of disk changes.
	Quiet     time.Duration
	AltScreen bool
	Input     io.Reader
	Output    io.Writer
}

// Run drives machine until the user quits. Producers are joined only after
// the program has returned and the terminal has been restored.
func Run(machine *app.Machine, opts RunOptions) error {
	if opts.Tick <= 0 {
		opts.Tick = 250 * time.Millisecond
	}
	if opts.Quiet <= 0 {
		opts.Quiet = time.Second
	}

	model := NewModel(machine, opts.Theme)

	var programOpts []tea.ProgramOption
	if opts.AltScreen {
		programOpts = append(programOpts, tea.WithAltScreen())
	}
	if opts.Input != nil {
		programOpts = append(programOpts, tea.WithInput(opts.Input))
	}
	if opts.Output != nil {
		programOpts = append(programOpts, tea.WithOutput(opts.Output))
	}
	p := tea.NewProgram(model, programOpts...)

	src := events.NewSource(p)
	model.OnQuit(src.Signal)
	src.Start(events.Ticker(opts.Tick))

	var w *watch.Watcher
	if opts.Watch {
		var err error
		w, err = startWatcher(machine)
		if err != nil {
			log.LogError(err, "disk watch disabled")
			machine.Status().SetError("disk watch disabled: " + err.Error())
		} else {
			src.Start(events.Changes(w, opts.Quiet))
		}
	}

	_, runErr := p.Run()

	src.Stop()
	if w != nil {
		w.Stop()
	}

	if runErr != nil {
		return errors.NewTerminalError("terminal session failed", errors.TerminalFailure, runErr)
	}
	return model.Err()
}

func startWatcher(machine *app.Machine) (*watch.Watcher, error) {
	w, err := watch.New()
	if err != nil {
		return nil, err
	}
	if err := w.Retarget(machine.Root()); err != nil {
		log.LogWithError(err).Warn("root not watched")
	}
	if err := w.Start(); err != nil {
		w.Stop()
		return nil, err
	}
	machine.ObserveRoot(func(root string) {
		if err := w.Retarget(root); err != nil {
			log.LogWithError(err).Warn("cannot watch new root")
		}
	})
	return w, nil
}
