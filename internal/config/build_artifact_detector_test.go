package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildArtifactDetector_TypeScriptOutDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "tsconfig.json"),
		[]byte(`{"compilerOptions":{"outDir":"lib"}}`), 0644))

	got := NewBuildArtifactDetector(dir, "typescript").DetectOutputDirectories()
	assert.Equal(t, []string{"**/lib/**"}, got)
}

func TestBuildArtifactDetector_RustTargetDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Cargo.toml"),
		[]byte("[profile.release]\ntarget-dir = \"out\"\n"), 0644))

	got := NewBuildArtifactDetector(dir, "rust").DetectOutputDirectories()
	assert.Equal(t, []string{"**/out/**"}, got)
}

func TestBuildArtifactDetector_UnscopedLanguageReturnsNil(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Cargo.toml"),
		[]byte("[profile.release]\ntarget-dir = \"out\"\n"), 0644))

	got := NewBuildArtifactDetector(dir, "java").DetectOutputDirectories()
	assert.Nil(t, got)
}

func TestBuildArtifactDetector_MissingConfigFileReturnsNil(t *testing.T) {
	got := NewBuildArtifactDetector(t.TempDir(), "python").DetectOutputDirectories()
	assert.Nil(t, got)
}

func TestDeduplicatePatterns(t *testing.T) {
	got := DeduplicatePatterns([]string{"**/a/**", "**/b/**", "**/a/**"})
	assert.Equal(t, []string{"**/a/**", "**/b/**"}, got)
}
