package watch

import (
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"wiper/internal/errors"
	"wiper/internal/log"
)

// Change represents a filesystem change detected under the root
type Change struct {
	Path      string
	Op        fsnotify.Op
	Timestamp time.Time
}

// Watcher monitors a scan root and its immediate subdirectories using
// fsnotify. fsnotify is not recursive, and the entries a scan reports
// usually sit one or two levels below the root.
type Watcher struct {
	root        string
	directories []string

	// Channel to receive changes
	changes chan Change

	// Channel to signal stop
	stopChan chan struct{}
	// Closed when the event loop has returned
	done chan struct{}

	fsWatcher *fsnotify.Watcher

	// Guards running, root and directories
	mutex   sync.RWMutex
	running bool
	stopped bool
}

// New creates a watcher with nothing to watch yet.
func New() (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "failed to create fsnotify watcher")
	}

	return &Watcher{
		changes:   make(chan Change, 16),
		stopChan:  make(chan struct{}),
		done:      make(chan struct{}),
		fsWatcher: fsWatcher,
	}, nil
}

// Retarget drops the current watches and watches root and the directories
// directly below it. It is safe to call while the watcher runs.
func (w *Watcher) Retarget(root string) error {
	info, err := os.Stat(root)
	if err != nil {
		return errors.NewFileError("error accessing directory", root, errors.FileNotFound, err)
	}
	if !info.IsDir() {
		return errors.NewFileError("not a directory", root, errors.InvalidPath, nil)
	}

	w.mutex.Lock()
	defer w.mutex.Unlock()

	for _, dir := range w.directories {
		_ = w.fsWatcher.Remove(dir)
	}
	w.directories = nil
	w.root = root

	if err := w.addLocked(root); err != nil {
		return err
	}
	children, err := os.ReadDir(root)
	if err != nil {
		log.LogWithFields(log.F("directory", root)).Debugf("cannot list children: %v", err)
		return nil
	}
	for _, child := range children {
		if !child.IsDir() {
			continue
		}
		if err := w.addLocked(filepath.Join(root, child.Name())); err != nil {
			log.LogWithError(err).Debug("child not watched")
		}
	}
	log.LogWithFields(log.F("directory", root), log.F("watches", len(w.directories))).Info("Watching root")
	return nil
}

func (w *Watcher) addLocked(dir string) error {
	if err := w.fsWatcher.Add(dir); err != nil {
		return errors.NewFileError("failed to add directory to watcher", dir, errors.FileOperationFailed, err)
	}
	w.directories = append(w.directories, dir)
	return nil
}

// Changes returns the channel that delivers changes. It is closed by Stop.
func (w *Watcher) Changes() <-chan Change {
	return w.changes
}

// Start begins processing fsnotify events.
func (w *Watcher) Start() error {
	w.mutex.Lock()
	if w.running || w.stopped {
		w.mutex.Unlock()
		return errors.New("watcher already running or stopped")
	}
	w.running = true
	w.mutex.Unlock()

	go w.loop()
	return nil
}

func (w *Watcher) loop() {
	defer close(w.done)
	for {
		select {
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			if event.Op == fsnotify.Chmod {
				continue
			}
			if event.Op.Has(fsnotify.Create) {
				w.watchNewChild(event.Name)
			}

			change := Change{Path: event.Name, Op: event.Op, Timestamp: time.Now()}
			// Send non-blockingly; one pending notice is as good as many
			select {
			case w.changes <- change:
			default:
				log.LogWithFields(log.F("path", event.Name)).Debug("change channel full, dropped event")
			}

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			log.LogWithFields(log.F("error", err)).Warn("fsnotify watcher error")

		case <-w.stopChan:
			return
		}
	}
}

// watchNewChild starts watching a directory created directly below the root.
func (w *Watcher) watchNewChild(path string) {
	w.mutex.Lock()
	defer w.mutex.Unlock()

	if filepath.Dir(path) != w.root {
		return
	}
	if info, err := os.Stat(path); err != nil || !info.IsDir() {
		return
	}
	if err := w.addLocked(path); err != nil {
		log.LogWithError(err).Debug("new directory not watched")
	}
}

// Stop halts the watcher and closes the change channel once the event loop
// has returned.
func (w *Watcher) Stop() {
	w.mutex.Lock()
	if w.stopped {
		w.mutex.Unlock()
		return
	}
	if !w.running {
		w.stopped = true
		w.mutex.Unlock()
		_ = w.fsWatcher.Close()
		close(w.changes)
		return
	}
	w.running = false
	w.stopped = true
	close(w.stopChan)
	w.mutex.Unlock()

	<-w.done
	if err := w.fsWatcher.Close(); err != nil {
		log.LogWithFields(log.F("error", err)).Error("Error closing fsnotify watcher")
	}
	close(w.changes)
}

// IsRunning returns whether the watcher is currently active
func (w *Watcher) IsRunning() bool {
	w.mutex.RLock()
	defer w.mutex.RUnlock()
	return w.running
}

// Root returns the current root.
func (w *Watcher) Root() string {
	w.mutex.RLock()
	defer w.mutex.RUnlock()
	return w.root
}

// Directories returns the directories being watched
func (w *Watcher) Directories() []string {
	w.mutex.RLock()
	defer w.mutex.RUnlock()
	return append([]string(nil), w.directories...)
}
