package scanner

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path string, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestScan_IncludesMatchingExtensions(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "src", "Main.java"), "class Main {}")
	writeFile(t, filepath.Join(root, "README.md"), "# hi")

	entries, err := Scan(root, Options{IncludeGlobs: []string{"**/*.java"}})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "src/Main.java", entries[0].RelPath)
}

func TestScan_ExcludesDirectories(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "src", "Main.java"), "class Main {}")
	writeFile(t, filepath.Join(root, "build", "Generated.java"), "class Generated {}")

	entries, err := Scan(root, Options{
		IncludeGlobs: []string{"**/*.java"},
		ExcludeGlobs: []string{"**/build/**"},
	})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "src/Main.java", entries[0].RelPath)
}

func TestScan_RespectsMaxFileSize(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "Small.java"), "class Small {}")
	writeFile(t, filepath.Join(root, "Big.java"), string(make([]byte, 1024)))

	entries, err := Scan(root, Options{
		IncludeGlobs: []string{"**/*.java"},
		MaxFileSize:  100,
	})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Small.java", entries[0].RelPath)
}

func TestScan_SortedByRelPath(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "z", "Z.java"), "class Z {}")
	writeFile(t, filepath.Join(root, "a", "A.java"), "class A {}")

	entries, err := Scan(root, Options{IncludeGlobs: []string{"**/*.java"}})
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "a/A.java", entries[0].RelPath)
	assert.Equal(t, "z/Z.java", entries[1].RelPath)
}

func TestScan_NoIncludeGlobsAdmitsEverything(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.txt"), "hi")

	entries, err := Scan(root, Options{})
	require.NoError(t, err)
	require.Len(t, entries, 1)
}
