// Package cleanup removes scan entries from disk.
package cleanup

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"wiper/internal/errors"
	"wiper/internal/log"
	"wiper/pkg/types"
)

// Summary is the outcome of a batch removal.
type Summary struct {
	Removed []types.Entry
	// Missing counts entries that were already gone
	Missing int
	Bytes   int64
	DryRun  bool
	// Err is a *errors.DeleteError when at least one entry failed
	Err error
}

// Failed returns the number of entries that could not be removed.
func (s Summary) Failed() int {
	var de *errors.DeleteError
	if errors.As(s.Err, &de) {
		return len(de.Failures())
	}
	return 0
}

// Remover deletes entries best-effort: one failure never stops the others.
type Remover struct {
	dryRun bool
	remove func(string) error
}

// Option configures a Remover.
type Option func(*Remover)

// WithDryRun reports what would be removed without touching the disk.
func WithDryRun(dryRun bool) Option {
	return func(r *Remover) { r.dryRun = dryRun }
}

// WithRemoveFunc replaces os.RemoveAll.
func WithRemoveFunc(fn func(string) error) Option {
	return func(r *Remover) { r.remove = fn }
}

// New creates a Remover.
func New(opts ...Option) *Remover {
	r := &Remover{remove: os.RemoveAll}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// DryRun reports whether the remover leaves the disk untouched.
func (r *Remover) DryRun() bool {
	return r.dryRun
}

// Remove deletes every entry. Deeper paths go first so nested entries are
// not removed from under their parents.
func (r *Remover) Remove(entries []types.Entry) Summary {
	ordered := append([]types.Entry(nil), entries...)
	sep := string(filepath.Separator)
	sort.SliceStable(ordered, func(i, j int) bool {
		return strings.Count(ordered[i].Path, sep) > strings.Count(ordered[j].Path, sep)
	})

	sum := Summary{DryRun: r.dryRun}
	var failures []*errors.FileError
	for _, e := range ordered {
		logger := log.LogWithFields(log.F("path", e.Path), log.F("size", e.Size))

		if _, err := os.Lstat(e.Path); os.IsNotExist(err) {
			logger.Debug("already removed")
			sum.Missing++
			continue
		}

		if r.dryRun {
			logger.Info("dry run: would remove")
			sum.Removed = append(sum.Removed, e)
			sum.Bytes += e.Size
			continue
		}

		if err := r.remove(e.Path); err != nil {
			if os.IsNotExist(err) {
				sum.Missing++
				continue
			}
			kind := errors.FileOperationFailed
			if os.IsPermission(err) {
				kind = errors.FileAccessDenied
			}
			fe := errors.NewFileError("delete failed", e.Path, kind, err)
			log.LogWithError(fe).Warn("entry not removed")
			failures = append(failures, fe)
			continue
		}

		logger.Info("removed")
		sum.Removed = append(sum.Removed, e)
		sum.Bytes += e.Size
	}

	if len(failures) > 0 {
		sum.Err = errors.NewDeleteError(failures)
	}
	return sum
}
