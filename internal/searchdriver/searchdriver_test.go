package searchdriver

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/standardbeagle/ctxpack/internal/types"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestParseMatchLine_ComputesGlobalOffset(t *testing.T) {
	line := []byte(`{"type":"match","data":{"path":{"text":"src/Main.java"},"lines":{"text":"foo bar\n"},"line_number":5,"absolute_offset":100,"submatches":[{"match":{"text":"bar"},"start":4,"end":7}]}}`)

	hit, ok := parseMatchLine(line, "/repo")
	require.True(t, ok)
	assert.Equal(t, "/repo/src/Main.java", hit.AbsPath)
	assert.Equal(t, 5, hit.LineNumber)
	assert.Equal(t, 104, hit.AbsoluteOffset)
}

func TestParseMatchLine_NonMatchEventIgnored(t *testing.T) {
	line := []byte(`{"type":"begin","data":{"path":{"text":"src/Main.java"}}}`)

	_, ok := parseMatchLine(line, "/repo")
	assert.False(t, ok)
}

func TestParseMatchLine_MissingAbsoluteOffsetDropped(t *testing.T) {
	line := []byte(`{"type":"match","data":{"path":{"text":"src/Main.java"},"line_number":5,"submatches":[{"start":4,"end":7}]}}`)

	_, ok := parseMatchLine(line, "/repo")
	assert.False(t, ok)
}

func TestSearch_EmptyPatternIsToolError(t *testing.T) {
	res := Search(context.Background(), "/repo", types.SearchQuery{Pattern: ""})
	assert.Equal(t, 2, res.ExitCode)
	assert.Error(t, res.Error)
}
