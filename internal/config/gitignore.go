// Package config's gitignore enrichment folds a project's own .gitignore
// patterns into the Scanner's exclusion globs. There is no separate
// matching engine here: gitignore's */**/? vocabulary is close enough to
// doublestar's that every parsed pattern is translated straight into a
// doublestar exclusion glob and handed to internal/scanner, which already
// owns the matching.
package config

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"
)

// GitignorePattern is one parsed .gitignore line; a "!" line is recorded
// with Negate set.
type GitignorePattern struct {
	Pattern   string
	Negate    bool
	Directory bool
	Absolute  bool
}

// GitignoreParser reads a project's .gitignore and converts its patterns
// into exclusion globs for internal/scanner.
type GitignoreParser struct {
	patterns []GitignorePattern
}

// NewGitignoreParser creates a new gitignore parser.
func NewGitignoreParser() *GitignoreParser {
	return &GitignoreParser{}
}

// LoadGitignore loads patterns from rootPath/.gitignore. A missing file is
// not an error: most repos ctxpack scans won't have one, and the Scanner's
// own default exclusions already cover the common build/VCS noise.
func (gp *GitignoreParser) LoadGitignore(rootPath string) error {
	file, err := os.Open(filepath.Join(rootPath, ".gitignore"))
	if err != nil {
		return nil
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		gp.AddPattern(line)
	}
	return scanner.Err()
}

// AddPattern parses and records a single gitignore line. Exported so
// tests can build a parser without a file on disk.
func (gp *GitignoreParser) AddPattern(line string) {
	p := GitignorePattern{}

	if strings.HasPrefix(line, "!") {
		p.Negate = true
		line = line[1:]
	}
	if strings.HasSuffix(line, "/") {
		p.Directory = true
		line = strings.TrimSuffix(line, "/")
	}
	if strings.HasPrefix(line, "/") {
		p.Absolute = true
		line = line[1:]
	}

	p.Pattern = line
	gp.patterns = append(gp.patterns, p)
}

// GetExclusionPatterns returns every parsed pattern translated into a
// doublestar exclusion glob. Negated patterns are skipped: ctxpack's
// exclusion set is additive-only, so a "!keep this" rule has nothing to
// re-include.
func (gp *GitignoreParser) GetExclusionPatterns() []string {
	var exclusions []string
	for _, p := range gp.patterns {
		if p.Negate {
			continue
		}
		exclusions = append(exclusions, p.ToExclusionGlob())
	}
	return exclusions
}

// ToExclusionGlob converts a parsed pattern into the doublestar glob form
// internal/scanner matches relative file paths against.
func (p GitignorePattern) ToExclusionGlob() string {
	switch {
	case p.Directory && p.Absolute:
		return p.Pattern + "/**"
	case p.Directory:
		return "**/" + p.Pattern + "/**"
	case p.Absolute:
		return p.Pattern
	default:
		return "**/" + p.Pattern
	}
}
