// Package errors defines typed, Unwrap-able error values for each ctxpack
// subsystem. The core components do not construct them: each degrades to a
// not-found or empty value carrying a literal Reason string. ConfigError is
// the one type in use, returned by internal/config's Validator.
package errors

import (
	"fmt"
	"time"
)

// ErrorType classifies which ctxpack subsystem produced an error.
type ErrorType string

const (
	ErrorTypeScan     ErrorType = "scan"
	ErrorTypeLocate   ErrorType = "locate"
	ErrorTypeExtract  ErrorType = "extract"
	ErrorTypeResolve  ErrorType = "resolve"
	ErrorTypeHarvest  ErrorType = "harvest"
	ErrorTypeSearch   ErrorType = "search"
	ErrorTypeBuild    ErrorType = "build"
	ErrorTypeConfig   ErrorType = "config"
	ErrorTypeInternal ErrorType = "internal"
)

// ScanError represents a failure encountered while walking the workspace.
type ScanError struct {
	Type       ErrorType
	Path       string
	Operation  string
	Underlying error
	Timestamp  time.Time
}

// NewScanError creates a new scan error with context.
func NewScanError(op, path string, err error) *ScanError {
	return &ScanError{
		Type:       ErrorTypeScan,
		Path:       path,
		Operation:  op,
		Underlying: err,
		Timestamp:  time.Now(),
	}
}

func (e *ScanError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("scan %s failed for %s: %v", e.Operation, e.Path, e.Underlying)
	}
	return fmt.Sprintf("scan %s failed: %v", e.Operation, e.Underlying)
}

func (e *ScanError) Unwrap() error { return e.Underlying }

// LocateError represents a Class Locator failure.
type LocateError struct {
	Type       ErrorType
	FQCN       string
	Underlying error
	Timestamp  time.Time
}

// NewLocateError creates a new locate error.
func NewLocateError(fqcn string, err error) *LocateError {
	return &LocateError{
		Type:       ErrorTypeLocate,
		FQCN:       fqcn,
		Underlying: err,
		Timestamp:  time.Now(),
	}
}

func (e *LocateError) Error() string {
	return fmt.Sprintf("locate failed for %q: %v", e.FQCN, e.Underlying)
}

func (e *LocateError) Unwrap() error { return e.Underlying }

// ExtractError represents a Method Extractor failure.
type ExtractError struct {
	Type       ErrorType
	FilePath   string
	Method     string
	Underlying error
	Timestamp  time.Time
}

// NewExtractError creates a new extract error.
func NewExtractError(path, method string, err error) *ExtractError {
	return &ExtractError{
		Type:       ErrorTypeExtract,
		FilePath:   path,
		Method:     method,
		Underlying: err,
		Timestamp:  time.Now(),
	}
}

func (e *ExtractError) Error() string {
	return fmt.Sprintf("extract %s from %s failed: %v", e.Method, e.FilePath, e.Underlying)
}

func (e *ExtractError) Unwrap() error { return e.Underlying }

// ResolveError represents an Enclosing-Scope Resolver failure.
type ResolveError struct {
	Type       ErrorType
	FilePath   string
	ByteOffset uint
	Underlying error
	Timestamp  time.Time
}

// NewResolveError creates a new resolve error.
func NewResolveError(path string, offset uint, err error) *ResolveError {
	return &ResolveError{
		Type:       ErrorTypeResolve,
		FilePath:   path,
		ByteOffset: offset,
		Underlying: err,
		Timestamp:  time.Now(),
	}
}

func (e *ResolveError) Error() string {
	return fmt.Sprintf("resolve %s:%d failed: %v", e.FilePath, e.ByteOffset, e.Underlying)
}

func (e *ResolveError) Unwrap() error { return e.Underlying }

// HarvestError represents a Callee Harvester failure.
type HarvestError struct {
	Type       ErrorType
	FilePath   string
	Underlying error
	Timestamp  time.Time
}

// NewHarvestError creates a new harvest error.
func NewHarvestError(path string, err error) *HarvestError {
	return &HarvestError{
		Type:       ErrorTypeHarvest,
		FilePath:   path,
		Underlying: err,
		Timestamp:  time.Now(),
	}
}

func (e *HarvestError) Error() string {
	return fmt.Sprintf("harvest failed for %s: %v", e.FilePath, e.Underlying)
}

func (e *HarvestError) Unwrap() error { return e.Underlying }

// SearchError represents a Regex Search Driver failure.
type SearchError struct {
	Type       ErrorType
	Pattern    string
	Underlying error
	Timestamp  time.Time
}

// NewSearchError creates a new search error.
func NewSearchError(pattern string, err error) *SearchError {
	return &SearchError{
		Type:       ErrorTypeSearch,
		Pattern:    pattern,
		Underlying: err,
		Timestamp:  time.Now(),
	}
}

func (e *SearchError) Error() string {
	return fmt.Sprintf("search failed for pattern %q: %v", e.Pattern, e.Underlying)
}

func (e *SearchError) Unwrap() error { return e.Underlying }

// BuildError represents a Context Builder failure that aborted a run before
// it could return an (even empty) pack — reserved for conditions outside
// the spec's documented "return an empty pack" degradation paths, such as
// an unreadable repo root.
type BuildError struct {
	Type       ErrorType
	RepoRoot   string
	Underlying error
	Timestamp  time.Time
}

// NewBuildError creates a new build error.
func NewBuildError(repoRoot string, err error) *BuildError {
	return &BuildError{
		Type:       ErrorTypeBuild,
		RepoRoot:   repoRoot,
		Underlying: err,
		Timestamp:  time.Now(),
	}
}

func (e *BuildError) Error() string {
	return fmt.Sprintf("build failed for repo root %s: %v", e.RepoRoot, e.Underlying)
}

func (e *BuildError) Unwrap() error { return e.Underlying }

// ConfigError represents a configuration error, surfaced by cmd/ctxpack.
type ConfigError struct {
	Field      string
	Value      string
	Underlying error
	Timestamp  time.Time
}

// NewConfigError creates a new config error.
func NewConfigError(field, value string, err error) *ConfigError {
	return &ConfigError{
		Field:      field,
		Value:      value,
		Underlying: err,
		Timestamp:  time.Now(),
	}
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config error for field %s (value %s): %v", e.Field, e.Value, e.Underlying)
}

func (e *ConfigError) Unwrap() error { return e.Underlying }

// MultiError aggregates several errors behind a single error value.
type MultiError struct {
	Errors []error
}

// NewMultiError creates a new multi-error, dropping nil entries.
func NewMultiError(errs []error) *MultiError {
	filtered := make([]error, 0, len(errs))
	for _, err := range errs {
		if err != nil {
			filtered = append(filtered, err)
		}
	}
	return &MultiError{Errors: filtered}
}

func (e *MultiError) Error() string {
	if len(e.Errors) == 0 {
		return "no errors"
	}
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	return fmt.Sprintf("%d errors: %v", len(e.Errors), e.Errors)
}

func (e *MultiError) Unwrap() []error { return e.Errors }
