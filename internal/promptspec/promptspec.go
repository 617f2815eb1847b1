// Package promptspec parses ctxpack's prompt-file format: a [HINTS]
// key=value block naming the anchor class/method and optional scope,
// plus an optional free-form [TASK] block.
package promptspec

import (
	"os"
	"strings"
)

// Scope controls how widely the Context Builder expands from the
// anchor method.
type Scope int

const (
	ScopeAuto Scope = iota
	ScopeLocal
	ScopeDeps
	ScopeDeep
)

// Spec is a parsed prompt file.
type Spec struct {
	OK    bool
	Error string

	RepoRoot     string
	AnchorClass  string
	AnchorMethod string
	Scope        Scope

	TaskText string
}

// ParseFile reads and parses a prompt file at path.
func ParseFile(path string) Spec {
	content, err := os.ReadFile(path)
	if err != nil || len(content) == 0 {
		return Spec{Error: "failed to read prompt file"}
	}
	return Parse(string(content))
}

// Parse parses prompt-file content directly, for callers that already
// hold the text (e.g. read from stdin).
func Parse(src string) Spec {
	var spec Spec

	hintsBody, ok := section(src, "[HINTS]", "[/HINTS]")
	if !ok {
		return Spec{Error: "missing [HINTS]...[/HINTS] section"}
	}

	for _, raw := range strings.Split(hintsBody, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		eq := strings.IndexByte(line, '=')
		if eq < 0 {
			continue
		}

		key := strings.ToLower(strings.TrimSpace(line[:eq]))
		val := strings.TrimSpace(line[eq+1:])

		switch key {
		case "repo_root":
			spec.RepoRoot = val
		case "anchor_class", "class":
			spec.AnchorClass = val
		case "anchor_method", "method":
			spec.AnchorMethod = val
		case "scope":
			spec.Scope = parseScope(val)
		}
	}

	if taskBody, ok := section(src, "[TASK]", "[/TASK]"); ok {
		spec.TaskText = strings.TrimSpace(taskBody)
	}

	if spec.AnchorClass == "" {
		return Spec{Error: "missing anchor_class in [HINTS]"}
	}
	if spec.AnchorMethod == "" {
		return Spec{Error: "missing anchor_method in [HINTS]"}
	}

	spec.OK = true
	return spec
}

func section(src, openTag, closeTag string) (string, bool) {
	a := strings.Index(src, openTag)
	if a < 0 {
		return "", false
	}
	a += len(openTag)

	b := strings.Index(src[a:], closeTag)
	if b < 0 {
		return "", false
	}
	return src[a : a+b], true
}

func parseScope(v string) Scope {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "local":
		return ScopeLocal
	case "deps":
		return ScopeDeps
	case "deep":
		return ScopeDeep
	default:
		return ScopeAuto
	}
}
