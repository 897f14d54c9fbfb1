// Package scan finds the entries under a root that match a filter and
// aggregates the size of every regular file below each of them.
package scan

import (
	"os"
	"path/filepath"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"

	"wiper/internal/errors"
	"wiper/internal/log"
	"wiper/pkg/types"
)

// Options tune a Scanner.
type Options struct {
	// Prune stops descending into an entry once it matched. Without it,
	// matches nested in a match are reported as well.
	Prune bool
	// Workers bounds concurrent size aggregation; 0 means GOMAXPROCS.
	Workers int
}

// Scanner walks directory trees. It holds no state between calls.
type Scanner struct {
	opts Options
}

// New creates a Scanner.
func New(opts Options) *Scanner {
	if opts.Workers <= 0 {
		opts.Workers = runtime.GOMAXPROCS(0)
	}
	return &Scanner{opts: opts}
}

// Scan returns every entry under root accepted by m, largest first. The root
// itself is never reported. Symbolic links are followed; unreadable paths
// and broken links are skipped. A root that cannot be opened is an error.
func (s *Scanner) Scan(root string, m Matcher) ([]types.Entry, error) {
	info, err := os.Stat(root)
	if err != nil {
		kind := errors.FileAccessDenied
		if os.IsNotExist(err) {
			kind = errors.FileNotFound
		}
		return nil, errors.NewFileError("cannot scan root", root, kind, err)
	}
	if !info.IsDir() {
		return nil, errors.NewFileError("root is not a directory", root, errors.InvalidPath, nil)
	}

	real, err := filepath.EvalSymlinks(root)
	if err != nil {
		real = root
	}

	var matches []string
	s.find(root, m, map[string]bool{real: true}, &matches)

	entries := make([]types.Entry, len(matches))
	var g errgroup.Group
	g.SetLimit(s.opts.Workers)
	for i, path := range matches {
		i, path := i, path
		g.Go(func() error {
			size, files := measure(path)
			entries[i] = types.Entry{Path: path, Size: size, Files: files}
			return nil
		})
	}
	_ = g.Wait()

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Size > entries[j].Size
	})

	log.LogWithFields(
		log.F("root", root),
		log.F("matcher", m.String()),
		log.F("entries", len(entries)),
	).Debug("scan finished")
	return entries, nil
}

// find collects matching paths below dir. ancestors holds the resolved
// directories on the current branch so link cycles end the descent.
func (s *Scanner) find(dir string, m Matcher, ancestors map[string]bool, out *[]string) {
	children, err := os.ReadDir(dir)
	if err != nil {
		skip(dir, err)
		return
	}

	for _, child := range children {
		path := filepath.Join(dir, child.Name())
		info, err := os.Stat(path)
		if err != nil {
			skip(path, err)
			continue
		}

		if m.Match(path, child.Name()) {
			*out = append(*out, path)
			if s.opts.Prune {
				continue
			}
		}

		if !info.IsDir() {
			continue
		}
		real, err := filepath.EvalSymlinks(path)
		if err != nil {
			skip(path, err)
			continue
		}
		if ancestors[real] {
			continue
		}
		ancestors[real] = true
		s.find(path, m, ancestors, out)
		delete(ancestors, real)
	}
}

// measure sums the sizes of the regular files reachable from path.
func measure(path string) (size, files int64) {
	info, err := os.Stat(path)
	if err != nil {
		skip(path, err)
		return 0, 0
	}
	if info.Mode().IsRegular() {
		return info.Size(), 1
	}
	if !info.IsDir() {
		return 0, 0
	}

	real, err := filepath.EvalSymlinks(path)
	if err != nil {
		skip(path, err)
		return 0, 0
	}
	return measureDir(path, map[string]bool{real: true})
}

func measureDir(dir string, ancestors map[string]bool) (size, files int64) {
	children, err := os.ReadDir(dir)
	if err != nil {
		skip(dir, err)
		return 0, 0
	}

	for _, child := range children {
		path := filepath.Join(dir, child.Name())
		info, err := os.Stat(path)
		if err != nil {
			skip(path, err)
			continue
		}

		switch {
		case info.Mode().IsRegular():
			size += info.Size()
			files++
		case info.IsDir():
			real, err := filepath.EvalSymlinks(path)
			if err != nil || ancestors[real] {
				continue
			}
			ancestors[real] = true
			s, f := measureDir(path, ancestors)
			delete(ancestors, real)
			size += s
			files += f
		}
	}
	return size, files
}

func skip(path string, err error) {
	log.LogWithFields(log.F("path", path)).Debugf("skipping: %v", err)
}
