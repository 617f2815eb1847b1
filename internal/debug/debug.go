// Package debug provides level-gated diagnostic tracing for ctxpack. It is
// a no-op unless CTXPACK_DEBUG is set, so callers such as the Scanner and
// cmd/ctxpack can call it unconditionally without paying for formatting in
// the common case.
package debug

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Level orders the severities a Logger call may carry.
type Level int

const (
	LevelTrace Level = iota
	LevelInfo
	LevelWarn
)

func (l Level) label() string {
	switch l {
	case LevelTrace:
		return "TRACE"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	default:
		return "DEBUG"
	}
}

// debugOutput is the writer for debug output (nil means no output).
var debugOutput io.Writer

// debugFile holds the open file handle if debug output goes to a file.
var debugFile *os.File

var debugMutex sync.Mutex

// SetOutput sets a custom writer for debug output. Pass nil to disable.
func SetOutput(w io.Writer) {
	debugMutex.Lock()
	defer debugMutex.Unlock()
	debugOutput = w
}

// InitLogFile initializes debug logging to a timestamped file under the
// system temp directory. Returns the log path. Call CloseLogFile when done.
func InitLogFile() (string, error) {
	debugMutex.Lock()
	defer debugMutex.Unlock()

	logDir := filepath.Join(os.TempDir(), "ctxpack-debug-logs")
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create debug log directory: %w", err)
	}

	timestamp := time.Now().Format("2006-01-02T150405")
	logPath := filepath.Join(logDir, fmt.Sprintf("debug-%s.log", timestamp))

	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return "", fmt.Errorf("failed to create debug log file: %w", err)
	}

	debugFile = file
	debugOutput = file
	return logPath, nil
}

// CloseLogFile closes the debug log file if one is open.
func CloseLogFile() error {
	debugMutex.Lock()
	defer debugMutex.Unlock()

	if debugFile != nil {
		err := debugFile.Close()
		debugFile = nil
		debugOutput = nil
		return err
	}
	return nil
}

// Enabled reports whether CTXPACK_DEBUG is set to a truthy value.
func Enabled() bool {
	v := os.Getenv("CTXPACK_DEBUG")
	return v == "1" || v == "true"
}

func writer() io.Writer {
	debugMutex.Lock()
	defer debugMutex.Unlock()
	return debugOutput
}

// emit writes a single formatted, component-tagged line if debugging is
// enabled, to the configured sink or to stderr when no sink has been set,
// so CTXPACK_DEBUG=1 is useful without extra wiring.
func emit(level Level, component, format string, args ...interface{}) {
	if !Enabled() {
		return
	}
	w := writer()
	if w == nil {
		w = os.Stderr
	}
	msg := fmt.Sprintf(format, args...)
	if component != "" {
		fmt.Fprintf(w, "[%s:%s] %s\n", level.label(), component, msg)
		return
	}
	fmt.Fprintf(w, "[%s] %s\n", level.label(), msg)
}

// Trace logs fine-grained progress: per-hop frontier state, per-symbol
// search invocations, skipped candidates.
func Trace(component, format string, args ...interface{}) {
	emit(LevelTrace, component, format, args...)
}

// Info logs coarse-grained progress: scan summaries, pack stats.
func Info(component, format string, args ...interface{}) {
	emit(LevelInfo, component, format, args...)
}

// Warn logs recoverable anomalies: skipped files, degraded results.
func Warn(component, format string, args ...interface{}) {
	emit(LevelWarn, component, format, args...)
}
