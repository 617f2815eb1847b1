package harvester

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
    int total() {
        int a = compute();
        System.out.println(a);
        return a.toString().length();
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

func TestHarvest_CollectsQualifiedAndBareCalls(t *testing.T) {
	abs := writeSample(t)
	g := syntax.MustGet("java")

	start := uint(strings.Index(javaSample, "int total()"))
	end := uint(strings.Index(javaSample, "}\n}") + 1)

	names := Harvest(g, abs, start, end)
	assert.Contains(t, names, "compute")
	assert.Contains(t, names, "println")
}

func TestHarvest_FiltersNoiseMethods(t *testing.T) {
	abs := writeSample(t)
	g := syntax.MustGet("java")

	start := uint(strings.Index(javaSample, "int total()"))
	end := uint(strings.Index(javaSample, "}\n}") + 1)

	names := Harvest(g, abs, start, end)
	assert.NotContains(t, names, "toString")
}

func TestHarvest_OutOfRangeReturnsEmpty(t *testing.T) {
	abs := writeSample(t)
	g := syntax.MustGet("java")

	names := Harvest(g, abs, uint(len(javaSample)+10), uint(len(javaSample)+20))
	assert.Empty(t, names)
}
