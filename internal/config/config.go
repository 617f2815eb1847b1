// Package config loads ctxpack's project configuration: the repo root, the
// target-language grammar, include/exclude globs, and the Context Builder's
// budget fields. Following the teacher's pattern, a project-local
// .ctxpack.kdl is merged over an optional home-directory global config, and
// cmd/ctxpack's CLI flags take final precedence over both.
package config

import (
	"os"

	"github.com/standardbeagle/ctxpack/internal/types"
)

// Config is ctxpack's full resolved configuration.
type Config struct {
	Project Project
	Scan    Scan
	Options types.ContextOptions
	Include []string
	Exclude []string
}

// Project identifies the repo being scanned.
type Project struct {
	Root string
}

// Scan controls the Workspace Scanner's behavior beyond include/exclude globs.
type Scan struct {
	// Language selects the syntactic grammar used by the Extractor,
	// Resolver, and Harvester, and the default include glob.
	Language string

	MaxFileSize    int64
	FollowSymlinks bool
}

// defaultExtensionForLanguage maps a grammar name to its default include glob.
var defaultExtensionForLanguage = map[string]string{
	"java":       "**/*.java",
	"go":         "**/*.go",
	"python":     "**/*.py",
	"javascript": "**/*.js",
	"typescript": "**/*.ts",
	"rust":       "**/*.rs",
	"php":        "**/*.php",
	"csharp":     "**/*.cs",
	"cpp":        "**/*.cpp",
	"zig":        "**/*.zig",
}

// Load is LoadWithRoot with no explicit root, so the .ctxpack.kdl in the
// current directory is read. The path argument is not consulted.
func Load(path string) (*Config, error) {
	return LoadWithRoot(path, "")
}

// LoadWithRoot reads the project-local .ctxpack.kdl directly inside rootDir
// (or "." if empty; parent directories are not searched), merges it over a
// home-directory global config if one exists, and falls back to documented
// defaults when neither is present. When no include glob is configured, the
// configured language's source extension is used. The path argument is not
// consulted.
func LoadWithRoot(path string, rootDir string) (*Config, error) {
	searchDir := "."
	if rootDir != "" {
		searchDir = rootDir
	}

	var baseConfig *Config
	if homeDir, err := os.UserHomeDir(); err == nil {
		if globalCfg, err := LoadKDL(homeDir); err == nil && globalCfg != nil {
			baseConfig = globalCfg
		}
	}

	var projectConfig *Config
	if kdlCfg, err := LoadKDL(searchDir); err == nil && kdlCfg != nil {
		projectConfig = kdlCfg
	} else if err != nil {
		return nil, err
	}

	var cfg *Config
	switch {
	case baseConfig != nil && projectConfig != nil:
		cfg = mergeConfigs(baseConfig, projectConfig)
	case projectConfig != nil:
		cfg = projectConfig
	case baseConfig != nil:
		baseConfig.Project.Root = searchDir
		cfg = baseConfig
	default:
		cfg = Default(searchDir)
	}

	if len(cfg.Include) == 0 {
		if glob, ok := defaultExtensionForLanguage[cfg.Scan.Language]; ok {
			cfg.Include = []string{glob}
		}
	}

	cfg.EnrichExclusionsWithGitignore()
	cfg.EnrichExclusionsWithBuildArtifacts()
	return cfg, nil
}

// Default returns ctxpack's built-in configuration for a given root: the
// spec's documented ContextOptions defaults, a java include glob, and a
// broad exclusion set covering VCS metadata, dependency caches, build
// output, and common binary/media formats.
func Default(root string) *Config {
	if root == "" {
		if cwd, err := os.Getwd(); err == nil {
			root = cwd
		} else {
			root = "."
		}
	}

	return &Config{
		Project: Project{Root: root},
		Scan: Scan{
			Language:       "java",
			MaxFileSize:    types.DefaultMaxFileSize,
			FollowSymlinks: false,
		},
		Options: types.DefaultContextOptions(),
		Include: []string{defaultExtensionForLanguage["java"]},
		Exclude: defaultExcludes(),
	}
}

func defaultExcludes() []string {
	return []string{
		// Version control
		"**/.git/**",

		// Dependency caches
		"**/node_modules/**",
		"**/vendor/**",
		"**/bower_components/**",

		// Build output
		"**/dist/**",
		"**/build/**",
		"**/out/**",
		"**/target/**", // Rust, Java (Maven/Gradle)
		"**/bin/**",
		"**/obj/**", // .NET

		// Codegen
		"**/codegen/**",

		// IDE / editor
		"**/.idea/**",
		"**/.vscode/**",
		"**/*.swp",
		"**/*~",

		// Virtualenvs
		"**/.venv/**",
		"**/venv/**",

		// Python bytecode caches
		"**/__pycache__/**",
		"**/*.pyc",

		// Binary/media formats unlikely to hold source
		"**/*.png", "**/*.jpg", "**/*.jpeg", "**/*.gif",
		"**/*.woff", "**/*.woff2", "**/*.ttf",
		"**/*.mp4", "**/*.mp3", "**/*.wasm",

		// OS noise
		"**/Thumbs.db",
		"**/.DS_Store",
	}
}

// mergeConfigs merges a base config with a project config: the project
// config wins field-by-field, but exclusions from both are unioned so a
// global config's exclusions are never silently dropped.
func mergeConfigs(base, project *Config) *Config {
	merged := *project

	if len(base.Exclude) > 0 {
		excludeMap := make(map[string]bool)
		for _, pattern := range base.Exclude {
			excludeMap[pattern] = true
		}
		for _, pattern := range project.Exclude {
			excludeMap[pattern] = true
		}
		merged.Exclude = make([]string, 0, len(excludeMap))
		for pattern := range excludeMap {
			merged.Exclude = append(merged.Exclude, pattern)
		}
	}

	if len(project.Include) == 0 && len(base.Include) > 0 {
		merged.Include = base.Include
	}

	return &merged
}

// EnrichExclusionsWithGitignore folds the project's .gitignore patterns into
// the exclusion set, so the Workspace Scanner skips whatever the repo itself
// already treats as noise.
func (c *Config) EnrichExclusionsWithGitignore() {
	if c.Project.Root == "" {
		return
	}

	parser := NewGitignoreParser()
	if err := parser.LoadGitignore(c.Project.Root); err != nil {
		return
	}

	if patterns := parser.GetExclusionPatterns(); len(patterns) > 0 {
		c.Exclude = append(c.Exclude, patterns...)
		c.Exclude = DeduplicatePatterns(c.Exclude)
	}
}

// EnrichExclusionsWithBuildArtifacts detects build output directories from
// the scan language's project files (tsconfig.json/package.json,
// Cargo.toml, pyproject.toml) and appends them to the exclusion list.
func (c *Config) EnrichExclusionsWithBuildArtifacts() {
	if c.Project.Root == "" {
		return
	}

	detector := NewBuildArtifactDetector(c.Project.Root, c.Scan.Language)
	detectedPatterns := detector.DetectOutputDirectories()

	if len(detectedPatterns) > 0 {
		c.Exclude = append(c.Exclude, detectedPatterns...)
		c.Exclude = DeduplicatePatterns(c.Exclude)
	}
}
