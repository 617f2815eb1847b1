package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	kdl "github.com/sblinch/kdl-go"
	"github.com/sblinch/kdl-go/document"

	"github.com/standardbeagle/ctxpack/internal/types"
)

// LoadKDL attempts to load configuration from a project's .ctxpack.kdl file.
func LoadKDL(projectRoot string) (*Config, error) {
	kdlPath := filepath.Join(projectRoot, ".ctxpack.kdl")

	if _, err := os.Stat(kdlPath); os.IsNotExist(err) {
		return nil, nil // No KDL config found, use defaults
	}

	content, err := os.ReadFile(kdlPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read .ctxpack.kdl: %v", err)
	}

	cfg, err := parseKDL(string(content))
	if err != nil {
		return nil, err
	}

	if cfg != nil && cfg.Project.Root != "" {
		var absRoot string
		if filepath.IsAbs(cfg.Project.Root) {
			absRoot = cfg.Project.Root
		} else {
			absRoot = filepath.Join(projectRoot, cfg.Project.Root)
		}
		cfg.Project.Root = filepath.Clean(absRoot)
	} else if cfg != nil {
		if absRoot, err := filepath.Abs(projectRoot); err == nil {
			cfg.Project.Root = absRoot
		} else {
			cfg.Project.Root = projectRoot
		}
	}

	if cfg != nil {
		cfg.EnrichExclusionsWithGitignore()
		cfg.EnrichExclusionsWithBuildArtifacts()
	}

	return cfg, nil
}

// parseKDL is a small KDL parser for ctxpack's configuration shape:
//
//	project { root "." }
//	scan { language "java" max_file_size "2MB" follow_symlinks false }
//	options { max_hops 2 max_snippets 20 max_bytes 120000 ... }
//	include { "**/*.java" }
//	exclude { "**/build/**" }
func parseKDL(content string) (*Config, error) {
	defaultRoot, _ := os.Getwd()
	if defaultRoot == "" {
		defaultRoot = "."
	}

	cfg := &Config{
		Project: Project{Root: defaultRoot},
		Scan: Scan{
			Language:       "java",
			MaxFileSize:    types.DefaultMaxFileSize,
			FollowSymlinks: false,
		},
		Options: types.DefaultContextOptions(),
		Include: []string{},
		Exclude: []string{},
	}

	doc, err := kdl.Parse(strings.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("failed to parse KDL config: %w", err)
	}

	for _, n := range doc.Nodes {
		switch nodeName(n) {
		case "project":
			for _, cn := range n.Children {
				assignSimpleString(cn, "root", func(v string) { cfg.Project.Root = v })
			}
		case "scan":
			for _, cn := range n.Children {
				switch nodeName(cn) {
				case "language":
					if s, ok := firstStringArg(cn); ok {
						cfg.Scan.Language = s
					}
				case "max_file_size":
					if v, ok := firstIntArg(cn); ok {
						cfg.Scan.MaxFileSize = int64(v)
					}
					if s, ok := firstStringArg(cn); ok {
						if sz, err := parseSize(s); err == nil {
							cfg.Scan.MaxFileSize = sz
						}
					}
				case "follow_symlinks":
					if b, ok := firstBoolArg(cn); ok {
						cfg.Scan.FollowSymlinks = b
					}
				}
			}
		case "options":
			for _, cn := range n.Children {
				switch nodeName(cn) {
				case "max_hops":
					if v, ok := firstIntArg(cn); ok {
						cfg.Options.MaxHops = v
					}
				case "max_snippets":
					if v, ok := firstIntArg(cn); ok {
						cfg.Options.MaxSnippets = v
					}
				case "max_bytes":
					if v, ok := firstIntArg(cn); ok {
						cfg.Options.MaxBytes = v
					}
				case "max_symbols_per_method":
					if v, ok := firstIntArg(cn); ok {
						cfg.Options.MaxSymbolsPerMethod = v
					}
				case "max_hits_per_symbol":
					if v, ok := firstIntArg(cn); ok {
						cfg.Options.MaxHitsPerSymbol = v
					}
				case "max_snippets_per_symbol":
					if v, ok := firstIntArg(cn); ok {
						cfg.Options.MaxSnippetsPerSymbol = v
					}
				case "include_anchor_in_snippets":
					if b, ok := firstBoolArg(cn); ok {
						cfg.Options.IncludeAnchorInSnippets = b
					}
				}
			}
		case "include":
			cfg.Include = append(cfg.Include, collectStringArgs(n)...)
		case "exclude":
			cfg.Exclude = collectStringArgs(n)
		}
	}

	return cfg, nil
}

func nodeName(n *document.Node) string {
	if n == nil || n.Name == nil {
		return ""
	}
	return n.Name.NodeNameString()
}

func firstIntArg(n *document.Node) (int, bool) {
	if len(n.Arguments) == 0 {
		return 0, false
	}
	switch v := n.Arguments[0].Value.(type) {
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	default:
		return 0, false
	}
}

func firstStringArg(n *document.Node) (string, bool) {
	if len(n.Arguments) == 0 {
		return "", false
	}
	if s, ok := n.Arguments[0].Value.(string); ok {
		return s, true
	}
	return "", false
}

func firstBoolArg(n *document.Node) (bool, bool) {
	if len(n.Arguments) == 0 {
		return false, false
	}
	if b, ok := n.Arguments[0].Value.(bool); ok {
		return b, true
	}
	return false, false
}

func collectStringArgs(n *document.Node) []string {
	if n == nil {
		return nil
	}
	out := make([]string, 0, len(n.Arguments))
	for _, a := range n.Arguments {
		if s, ok := a.Value.(string); ok {
			out = append(out, s)
		}
	}

	// Block format: exclude { "pattern" ... } — each pattern is a child node
	// whose name IS the string value.
	if len(out) == 0 && len(n.Children) > 0 {
		out = make([]string, 0, len(n.Children))
		for _, child := range n.Children {
			if s, ok := firstStringArg(child); ok {
				out = append(out, s)
			} else if child.Name != nil {
				if s, ok := child.Name.Value.(string); ok {
					out = append(out, s)
				}
			}
		}
	}

	return out
}

func assignSimpleString(n *document.Node, target string, set func(string)) {
	if nodeName(n) == target {
		if s, ok := firstStringArg(n); ok {
			set(s)
		}
	}
}

// parseSize handles size strings like "10MB", "500KB", "1GB".
func parseSize(s string) (int64, error) {
	s = strings.ToUpper(strings.TrimSpace(s))

	var multiplier int64 = 1
	var numStr string

	switch {
	case strings.HasSuffix(s, "GB"):
		multiplier = 1024 * 1024 * 1024
		numStr = strings.TrimSuffix(s, "GB")
	case strings.HasSuffix(s, "MB"):
		multiplier = 1024 * 1024
		numStr = strings.TrimSuffix(s, "MB")
	case strings.HasSuffix(s, "KB"):
		multiplier = 1024
		numStr = strings.TrimSuffix(s, "KB")
	case strings.HasSuffix(s, "B"):
		multiplier = 1
		numStr = strings.TrimSuffix(s, "B")
	default:
		numStr = s
	}

	num, err := strconv.ParseInt(numStr, 10, 64)
	if err != nil {
		return 0, err
	}

	return num * multiplier, nil
}
