package testutils

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/require"
)

// CreateTestFilesWithContent creates files under dir. Names may contain
// slashes; missing parent directories are created.
func CreateTestFilesWithContent(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
}

// CreateTree creates files of the given byte sizes under dir.
func CreateTree(t *testing.T, dir string, sizes map[string]int) {
	t.Helper()
	files := make(map[string]string, len(sizes))
	for name, size := range sizes {
		files[name] = strings.Repeat("x", size)
	}
	CreateTestFilesWithContent(t, dir, files)
}

// CreateDirs creates empty directories under dir.
func CreateDirs(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		require.NoError(t, os.MkdirAll(filepath.Join(dir, filepath.FromSlash(name)), 0o755))
	}
}

// NodeModulesFixture builds two projects with dependency folders of 300 and
// 50 bytes and returns the root.
func NodeModulesFixture(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	CreateTree(t, root, map[string]int{
		"a/node_modules/one.js":   100,
		"a/node_modules/two.js":   200,
		"a/index.js":              7,
		"b/node_modules/three.js": 50,
	})
	return root
}

// StripANSI removes ANSI escape sequences from a string
func StripANSI(str string) string {
	return ansi.Strip(str)
}
