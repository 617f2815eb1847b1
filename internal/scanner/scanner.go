// Package scanner implements the Workspace Scanner: a single-threaded,
// synchronous walk of a repository root that produces a sorted inventory
// of files eligible for later stages. It never parses or reads file
// contents beyond stat()ing them.
package scanner

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/standardbeagle/ctxpack/internal/debug"
	"github.com/standardbeagle/ctxpack/internal/types"
)

// Options controls which files the scan admits.
type Options struct {
	IncludeGlobs   []string
	ExcludeGlobs   []string
	MaxFileSize    int64
	FollowSymlinks bool
}

// Scan walks root and returns every regular file that matches the include
// globs, does not match any exclude glob, and is at or under MaxFileSize.
// Results are sorted by RelPath so every downstream stage sees a stable,
// reproducible ordering.
func Scan(root string, opt Options) ([]types.FileEntry, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		absRoot = root
	}
	absRoot = filepath.Clean(absRoot)

	visited := map[string]bool{}
	var out []types.FileEntry

	err = filepath.Walk(absRoot, func(path string, info os.FileInfo, walkErr error) error {
		if walkErr != nil {
			debug.Trace("scanner", "walk error at %s: %v", path, walkErr)
			return nil
		}

		if info.IsDir() {
			if path == absRoot {
				return nil
			}

			if !opt.FollowSymlinks {
				if real, err := filepath.EvalSymlinks(path); err == nil {
					if visited[real] {
						return filepath.SkipDir
					}
					visited[real] = true
				}
			}

			rel, err := filepath.Rel(absRoot, path)
			if err != nil {
				rel = path
			}
			rel = filepath.ToSlash(rel)
			if matchesAny(opt.ExcludeGlobs, rel) || matchesAny(opt.ExcludeGlobs, rel+"/") {
				return filepath.SkipDir
			}
			return nil
		}

		if info.Mode()&os.ModeSymlink != 0 && !opt.FollowSymlinks {
			return nil
		}

		rel, err := filepath.Rel(absRoot, path)
		if err != nil {
			rel = path
		}
		rel = filepath.ToSlash(rel)

		if matchesAny(opt.ExcludeGlobs, rel) {
			return nil
		}
		if len(opt.IncludeGlobs) > 0 && !matchesAny(opt.IncludeGlobs, rel) {
			return nil
		}

		size := info.Size()
		if opt.MaxFileSize > 0 && size > opt.MaxFileSize {
			return nil
		}

		out = append(out, types.FileEntry{
			RelPath: rel,
			AbsPath: path,
			Size:    size,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(out, func(i, j int) bool { return out[i].RelPath < out[j].RelPath })
	return out, nil
}

// matchesAny reports whether path matches any of the given doublestar
// glob patterns. A malformed pattern is skipped rather than erroring, so
// one bad exclude glob never aborts a scan.
func matchesAny(patterns []string, path string) bool {
	for _, p := range patterns {
		if ok, err := doublestar.Match(p, path); err == nil && ok {
			return true
		}
	}
	return false
}
