package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Unit tests for config merging logic

func TestMergeConfigs_ExclusionsMerge(t *testing.T) {
	base := &Config{
		Exclude: []string{
			"**/node_modules/**",
			"**/vendor/**",
			"**/real_projects/**",
		},
	}

	project := &Config{
		Exclude: []string{
			"**/dist/**",
			"**/build/**",
		},
	}

	merged := mergeConfigs(base, project)

	assert.Contains(t, merged.Exclude, "**/node_modules/**")
	assert.Contains(t, merged.Exclude, "**/vendor/**")
	assert.Contains(t, merged.Exclude, "**/real_projects/**")
	assert.Contains(t, merged.Exclude, "**/dist/**")
	assert.Contains(t, merged.Exclude, "**/build/**")
	assert.Len(t, merged.Exclude, 5)
}

func TestMergeConfigs_ExclusionsDeduplication(t *testing.T) {
	base := &Config{
		Exclude: []string{
			"**/node_modules/**",
			"**/vendor/**",
		},
	}

	project := &Config{
		Exclude: []string{
			"**/node_modules/**", // Duplicate
			"**/dist/**",
		},
	}

	merged := mergeConfigs(base, project)

	assert.Len(t, merged.Exclude, 3)
	assert.Contains(t, merged.Exclude, "**/node_modules/**")
	assert.Contains(t, merged.Exclude, "**/vendor/**")
	assert.Contains(t, merged.Exclude, "**/dist/**")
}

func TestMergeConfigs_InclusionsProjectOverride(t *testing.T) {
	base := &Config{
		Include: []string{"*.go", "*.js"},
	}

	project := &Config{
		Include: []string{"*.py", "*.ts"},
	}

	merged := mergeConfigs(base, project)

	assert.Equal(t, project.Include, merged.Include)
	assert.Len(t, merged.Include, 2)
}

func TestMergeConfigs_InclusionsUseBaseIfProjectEmpty(t *testing.T) {
	base := &Config{
		Include: []string{"*.go", "*.js"},
	}

	project := &Config{
		Include: []string{}, // Empty
	}

	merged := mergeConfigs(base, project)

	assert.Equal(t, base.Include, merged.Include)
}

func TestMergeConfigs_ProjectSettingsTakePrecedence(t *testing.T) {
	base := &Config{
		Scan: Scan{
			MaxFileSize: 1024 * 1024, // 1MB
		},
	}

	project := &Config{
		Scan: Scan{
			MaxFileSize: 10 * 1024 * 1024, // 10MB
		},
	}

	merged := mergeConfigs(base, project)

	assert.Equal(t, int64(10*1024*1024), merged.Scan.MaxFileSize)
}

func TestMergeConfigs_EmptyBaseExclusions(t *testing.T) {
	base := &Config{
		Exclude: []string{},
	}

	project := &Config{
		Exclude: []string{"**/dist/**"},
	}

	merged := mergeConfigs(base, project)

	assert.Equal(t, project.Exclude, merged.Exclude)
}

// Integration tests for config loading with home directory

func TestLoadWithRoot_MergesGlobalAndProjectConfigs(t *testing.T) {
	tmpHome := t.TempDir()
	tmpProject := t.TempDir()

	globalConfig := `
exclude {
    "**/node_modules/**"
    "**/vendor/**"
    "**/real_projects/**"
}

include {
    "*.go"
    "*.js"
}

scan {
    max_file_size "5MB"
}
`
	err := os.WriteFile(filepath.Join(tmpHome, ".ctxpack.kdl"), []byte(globalConfig), 0644)
	require.NoError(t, err)

	projectConfig := `
project {
    root "."
}

exclude {
    "**/dist/**"
    "**/build/**"
}

scan {
    max_file_size "10MB"
}
`
	err = os.WriteFile(filepath.Join(tmpProject, ".ctxpack.kdl"), []byte(projectConfig), 0644)
	require.NoError(t, err)

	originalHome := os.Getenv("HOME")
	os.Setenv("HOME", tmpHome)
	defer os.Setenv("HOME", originalHome)

	cfg, err := LoadWithRoot("", tmpProject)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Contains(t, cfg.Exclude, "**/node_modules/**", "Should include global exclusion")
	assert.Contains(t, cfg.Exclude, "**/vendor/**", "Should include global exclusion")
	assert.Contains(t, cfg.Exclude, "**/real_projects/**", "Should include global exclusion")
	assert.Contains(t, cfg.Exclude, "**/dist/**", "Should include project exclusion")
	assert.Contains(t, cfg.Exclude, "**/build/**", "Should include project exclusion")

	assert.Equal(t, int64(10*1024*1024), cfg.Scan.MaxFileSize, "Project max file size should override global")
}

func TestLoadWithRoot_ProjectConfigOnly(t *testing.T) {
	tmpProject := t.TempDir()

	projectConfig := `
project {
    root "."
}

exclude {
    "**/dist/**"
}
`
	err := os.WriteFile(filepath.Join(tmpProject, ".ctxpack.kdl"), []byte(projectConfig), 0644)
	require.NoError(t, err)

	os.Setenv("HOME", "/nonexistent")
	defer os.Unsetenv("HOME")

	cfg, err := LoadWithRoot("", tmpProject)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Contains(t, cfg.Exclude, "**/dist/**")
}

func TestLoadWithRoot_GlobalConfigOnly(t *testing.T) {
	tmpHome := t.TempDir()
	tmpProject := t.TempDir()

	globalConfig := `
exclude {
    "**/node_modules/**"
    "**/real_projects/**"
}
`
	err := os.WriteFile(filepath.Join(tmpHome, ".ctxpack.kdl"), []byte(globalConfig), 0644)
	require.NoError(t, err)

	originalHome := os.Getenv("HOME")
	os.Setenv("HOME", tmpHome)
	defer os.Setenv("HOME", originalHome)

	cfg, err := LoadWithRoot("", tmpProject)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Contains(t, cfg.Exclude, "**/node_modules/**")
	assert.Contains(t, cfg.Exclude, "**/real_projects/**")
}

func TestLoadWithRoot_DefaultConfigFallback(t *testing.T) {
	tmpProject := t.TempDir()
	os.Setenv("HOME", "/nonexistent")
	defer os.Unsetenv("HOME")

	cfg, err := LoadWithRoot("", tmpProject)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.NotEmpty(t, cfg.Exclude, "Should have default exclusions")
	assert.NotEmpty(t, cfg.Include, "Should have a default include glob")
}

func TestMergeConfigs_PreservesBaseExclusionsInTests(t *testing.T) {
	base := &Config{
		Exclude: []string{
			"**/real_projects/**",
			"**/testing/**",
			"**/testdata/**",
		},
	}

	project := &Config{
		Project: Project{Root: "/test/root"},
		Exclude: []string{},
	}

	merged := mergeConfigs(base, project)

	assert.Contains(t, merged.Exclude, "**/real_projects/**",
		"Base exclusion for real_projects must be preserved for tests")
	assert.Contains(t, merged.Exclude, "**/testing/**",
		"Base exclusion for testing must be preserved")
	assert.Contains(t, merged.Exclude, "**/testdata/**",
		"Base exclusion for testdata must be preserved")
}
