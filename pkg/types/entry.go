package types

import "path/filepath"

// Entry is one reported unit of a scan: a path and the aggregated size of
// every regular file under it. Entries are snapshots and never change.
type Entry struct {
	Path  string
	Size  int64
	Files int64
}

// Name returns the last element of the path.
func (e Entry) Name() string {
	return filepath.Base(e.Path)
}
