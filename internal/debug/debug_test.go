package debug

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

// saveAndRestoreState saves the debug package state and returns a cleanup function.
func saveAndRestoreState() func() {
	originalOutput := debugOutput
	originalFile := debugFile
	originalEnv, hadEnv := os.LookupEnv("CTXPACK_DEBUG")
	return func() {
		debugOutput = originalOutput
		debugFile = originalFile
		if hadEnv {
			os.Setenv("CTXPACK_DEBUG", originalEnv)
		} else {
			os.Unsetenv("CTXPACK_DEBUG")
		}
	}
}

func TestEnabled(t *testing.T) {
	defer saveAndRestoreState()()

	os.Unsetenv("CTXPACK_DEBUG")
	assert.False(t, Enabled())

	os.Setenv("CTXPACK_DEBUG", "true")
	assert.True(t, Enabled())

	os.Setenv("CTXPACK_DEBUG", "1")
	assert.True(t, Enabled())

	os.Setenv("CTXPACK_DEBUG", "nope")
	assert.False(t, Enabled())
}

func TestTrace(t *testing.T) {
	defer saveAndRestoreState()()

	var buf bytes.Buffer
	SetOutput(&buf)
	os.Setenv("CTXPACK_DEBUG", "true")

	Trace("SCAN", "skipping %s", "vendor/")

	output := buf.String()
	assert.Contains(t, output, "[TRACE:SCAN]")
	assert.Contains(t, output, "skipping vendor/")
}

func TestInfoAndWarn(t *testing.T) {
	defer saveAndRestoreState()()

	var buf bytes.Buffer
	SetOutput(&buf)
	os.Setenv("CTXPACK_DEBUG", "true")

	Info("BUILD", "hops_used=%d", 2)
	Warn("SEARCH", "no absolute offset for %s", "x.java")

	output := buf.String()
	assert.Contains(t, output, "[INFO:BUILD] hops_used=2")
	assert.Contains(t, output, "[WARN:SEARCH] no absolute offset for x.java")
}

func TestDisabledProducesNoOutput(t *testing.T) {
	defer saveAndRestoreState()()

	var buf bytes.Buffer
	SetOutput(&buf)
	os.Unsetenv("CTXPACK_DEBUG")

	Trace("SCAN", "should not appear")
	Info("BUILD", "should not appear")
	Warn("SEARCH", "should not appear")

	assert.Empty(t, buf.String())
}

func TestNoOutputWithNilWriterFallsBackToStderr(t *testing.T) {
	defer saveAndRestoreState()()

	SetOutput(nil)
	os.Setenv("CTXPACK_DEBUG", "true")

	// Should not panic when no sink is configured; falls back to stderr.
	Trace("SCAN", "test %s", "message")
}

func TestConcurrentLogging(t *testing.T) {
	defer saveAndRestoreState()()

	var buf bytes.Buffer
	SetOutput(&buf)
	os.Setenv("CTXPACK_DEBUG", "true")

	done := make(chan bool)
	for i := 0; i < 10; i++ {
		go func(id int) {
			Trace("CONCURRENT", "message from goroutine %d", id)
			Info("CONCURRENT", "message from goroutine %d", id)
			done <- true
		}(i)
	}

	for i := 0; i < 10; i++ {
		<-done
	}
}

func TestInitAndCloseLogFile(t *testing.T) {
	defer saveAndRestoreState()()

	logPath, err := InitLogFile()
	assert.NoError(t, err)
	assert.NotEmpty(t, logPath)

	_, err = os.Stat(logPath)
	assert.NoError(t, err)

	os.Setenv("CTXPACK_DEBUG", "true")
	Info("TEST", "test log message")

	err = CloseLogFile()
	assert.NoError(t, err)

	content, err := os.ReadFile(logPath)
	assert.NoError(t, err)
	assert.Contains(t, string(content), "test log message")

	os.Remove(logPath)
}
