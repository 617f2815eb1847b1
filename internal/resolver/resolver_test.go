package resolver

import (
	"os"
	"path/filepath"
	"strings"
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
}
`

func writeSample(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	abs := filepath.Join(dir, "Invoice.java")
	require.NoError(t, os.WriteFile(abs, []byte(javaSample), 0o644))
	return abs
}

func TestResolve_ClimbsToMethodDeclaration(t *testing.T) {
	abs := writeSample(t)
	offset := uint(strings.Index(javaSample, "compute()"))
	g := syntax.MustGet("java")

	hit := Resolve(g, abs, "Invoice.java", offset)
	require.True(t, hit.Found)
	assert.Equal(t, "method_declaration", hit.Kind)
	assert.Contains(t, hit.Text, "return compute() + 1;")
}

func TestResolve_OutOfRangeOffset(t *testing.T) {
	abs := writeSample(t)
	g := syntax.MustGet("java")

	hit := Resolve(g, abs, "Invoice.java", uint(len(javaSample)+100))
	assert.False(t, hit.Found)
	assert.Equal(t, "hit_byte_offset out of range", hit.Reason)
}

func TestResolve_FallsBackToClassDeclaration(t *testing.T) {
	abs := writeSample(t)
	offset := uint(strings.Index(javaSample, "class Invoice"))
	g := syntax.MustGet("java")

	hit := Resolve(g, abs, "Invoice.java", offset)
	require.True(t, hit.Found)
	assert.Equal(t, "class_declaration", hit.Kind)
}
