// Build artifact detection, scoped to the single grammar ctxpack is
// scanning for. internal/syntax selects one Grammar per run — the
// Locator, Extractor, and Harvester all operate against that one
// language — so there's no reason to go sniffing a Cargo.toml while
// indexing a Java repo.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// BuildArtifactDetector finds the build-output directory a project's own
// tooling writes to, for the configured scan language.
type BuildArtifactDetector struct {
	projectRoot string
	language    string
}

// NewBuildArtifactDetector creates a detector for projectRoot scoped to
// language (an internal/syntax grammar name).
func NewBuildArtifactDetector(projectRoot, language string) *BuildArtifactDetector {
	return &BuildArtifactDetector{projectRoot: projectRoot, language: language}
}

// DetectOutputDirectories returns exclusion globs for the build-output
// directory configured by the project's own language tooling. Languages
// whose conventional output directory (target/, build/, bin/, obj/) is
// already covered by the Scanner's default exclusions return nil.
func (bad *BuildArtifactDetector) DetectOutputDirectories() []string {
	switch bad.language {
	case "javascript", "typescript":
		return bad.detectNodeOutputs()
	case "rust":
		return bad.detectRustOutputs()
	case "python":
		return bad.detectPythonOutputs()
	default:
		return nil
	}
}

// detectNodeOutputs reads tsconfig.json's compilerOptions.outDir and
// package.json's build.outDir, the two places a JS/TS project names a
// custom output directory.
func (bad *BuildArtifactDetector) detectNodeOutputs() []string {
	var patterns []string

	var tsconfig struct {
		CompilerOptions struct {
			OutDir string `json:"outDir"`
		} `json:"compilerOptions"`
	}
	if bad.readJSON("tsconfig.json", &tsconfig) && tsconfig.CompilerOptions.OutDir != "" {
		patterns = append(patterns, "**/"+tsconfig.CompilerOptions.OutDir+"/**")
	}

	var pkg struct {
		Build struct {
			OutDir string `json:"outDir"`
		} `json:"build"`
	}
	if bad.readJSON("package.json", &pkg) && pkg.Build.OutDir != "" {
		patterns = append(patterns, "**/"+pkg.Build.OutDir+"/**")
	}

	return patterns
}

// detectRustOutputs reads Cargo.toml's profile.release.target-dir.
func (bad *BuildArtifactDetector) detectRustOutputs() []string {
	var cargo struct {
		Profile struct {
			Release struct {
				TargetDir string `toml:"target-dir"`
			} `toml:"release"`
		} `toml:"profile"`
	}
	if !bad.readTOML("Cargo.toml", &cargo) || cargo.Profile.Release.TargetDir == "" {
		return nil
	}
	return []string{"**/" + cargo.Profile.Release.TargetDir + "/**"}
}

// detectPythonOutputs reads pyproject.toml's tool.poetry.build.target-dir.
func (bad *BuildArtifactDetector) detectPythonOutputs() []string {
	var pyproject struct {
		Tool struct {
			Poetry struct {
				Build struct {
					TargetDir string `toml:"target-dir"`
				} `toml:"build"`
			} `toml:"poetry"`
		} `toml:"tool"`
	}
	if !bad.readTOML("pyproject.toml", &pyproject) || pyproject.Tool.Poetry.Build.TargetDir == "" {
		return nil
	}
	return []string{"**/" + pyproject.Tool.Poetry.Build.TargetDir + "/**"}
}

func (bad *BuildArtifactDetector) readJSON(name string, out interface{}) bool {
	data, err := os.ReadFile(filepath.Join(bad.projectRoot, name))
	if err != nil {
		return false
	}
	return json.Unmarshal(data, out) == nil
}

func (bad *BuildArtifactDetector) readTOML(name string, out interface{}) bool {
	data, err := os.ReadFile(filepath.Join(bad.projectRoot, name))
	if err != nil {
		return false
	}
	return toml.Unmarshal(data, out) == nil
}

// DeduplicatePatterns removes duplicate exclusion patterns, preserving
// first-seen order.
func DeduplicatePatterns(patterns []string) []string {
	seen := make(map[string]bool, len(patterns))
	result := make([]string, 0, len(patterns))

	for _, pattern := range patterns {
		if !seen[pattern] {
			seen[pattern] = true
			result = append(result, pattern)
		}
	}

	return result
}
