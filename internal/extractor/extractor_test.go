package extractor

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/standardbeagle/ctxpack/internal/syntax"
)

const javaSample = `package com.acme;

class Invoice {
    public int total() {
        return compute() + 1;
    }

    abstract void pending();
}
`

func writeSample(t *testing.T, content string) (absPath string) {
	t.Helper()
	dir := t.TempDir()
	abs := filepath.Join(dir, "Invoice.java")
	require.NoError(t, os.WriteFile(abs, []byte(content), 0o644))
	return abs
}

func TestExtract_FindsMethodWithBody(t *testing.T) {
	abs := writeSample(t, javaSample)
	g := syntax.MustGet("java")

	m := Extract(g, abs, "Invoice.java", "total")
	require.True(t, m.Found)
	assert.Contains(t, m.Text, "return compute() + 1;")
	assert.Greater(t, m.End, m.Start)
}

func TestExtract_MethodNotFound(t *testing.T) {
	abs := writeSample(t, javaSample)
	g := syntax.MustGet("java")

	m := Extract(g, abs, "Invoice.java", "missingMethod")
	assert.False(t, m.Found)
}

func TestExtractTextFallback_BraceMatching(t *testing.T) {
	src := []byte("public int total() {\n    return 1 + nested();\n}\n")
	m := extractTextFallback(src, "/tmp/Invoice.java", "Invoice.java", "total")
	require.True(t, m.Found)
	assert.Contains(t, m.Text, "return 1 + nested();")
}

func TestExtractTextFallback_NameNotFound(t *testing.T) {
	src := []byte("public int total() { return 1; }\n")
	m := extractTextFallback(src, "/tmp/Invoice.java", "Invoice.java", "missing")
	assert.False(t, m.Found)
}
