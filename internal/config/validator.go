package config

import (
	"errors"
	"fmt"

	ctxerrors "github.com/standardbeagle/ctxpack/internal/errors"
	"github.com/standardbeagle/ctxpack/internal/types"
)

const defaultMaxFileSize = types.DefaultMaxFileSize

// Validator validates configuration and sets smart defaults.
type Validator struct{}

// NewValidator creates a new configuration validator.
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateAndSetDefaults validates configuration and applies smart defaults.
// Returns an error if validation fails.
func (v *Validator) ValidateAndSetDefaults(cfg *Config) error {
	if err := v.validateProjectConfig(&cfg.Project); err != nil {
		return ctxerrors.NewConfigError("project", "", err)
	}

	if err := v.validateScanConfig(&cfg.Scan); err != nil {
		return ctxerrors.NewConfigError("scan", "", err)
	}

	if err := v.validateOptions(&cfg.Options); err != nil {
		return ctxerrors.NewConfigError("options", "", err)
	}

	v.setSmartDefaults(cfg)
	return nil
}

func (v *Validator) validateProjectConfig(project *Project) error {
	if project.Root == "" {
		return errors.New("project root cannot be empty")
	}
	return nil
}

func (v *Validator) validateScanConfig(scan *Scan) error {
	if scan.MaxFileSize <= 0 {
		return fmt.Errorf("MaxFileSize must be positive, got %d", scan.MaxFileSize)
	}
	if scan.MaxFileSize > 100*1024*1024 {
		return fmt.Errorf("MaxFileSize should not exceed 100MB, got %d", scan.MaxFileSize)
	}
	return nil
}

func (v *Validator) validateOptions(opts *types.ContextOptions) error {
	if opts.MaxHops < 0 {
		return fmt.Errorf("MaxHops cannot be negative, got %d", opts.MaxHops)
	}
	if opts.MaxSnippets <= 0 {
		return fmt.Errorf("MaxSnippets must be positive, got %d", opts.MaxSnippets)
	}
	if opts.MaxBytes <= 0 {
		return fmt.Errorf("MaxBytes must be positive, got %d", opts.MaxBytes)
	}
	if opts.MaxSymbolsPerMethod < 0 {
		return fmt.Errorf("MaxSymbolsPerMethod cannot be negative, got %d", opts.MaxSymbolsPerMethod)
	}
	if opts.MaxHitsPerSymbol < 0 {
		return fmt.Errorf("MaxHitsPerSymbol cannot be negative, got %d", opts.MaxHitsPerSymbol)
	}
	if opts.MaxSnippetsPerSymbol < 1 {
		return fmt.Errorf("MaxSnippetsPerSymbol must be at least 1, got %d", opts.MaxSnippetsPerSymbol)
	}
	return nil
}

// setSmartDefaults fills in any zero-valued field that has a documented
// non-zero default.
func (v *Validator) setSmartDefaults(cfg *Config) {
	if cfg.Scan.Language == "" {
		cfg.Scan.Language = "java"
	}
	if cfg.Scan.MaxFileSize == 0 {
		cfg.Scan.MaxFileSize = defaultMaxFileSize
	}
	if cfg.Options.MaxHops == 0 {
		cfg.Options.MaxHops = 2
	}
	if cfg.Options.MaxSnippets == 0 {
		cfg.Options.MaxSnippets = 20
	}
	if cfg.Options.MaxBytes == 0 {
		cfg.Options.MaxBytes = 120000
	}
	if cfg.Options.MaxSymbolsPerMethod == 0 {
		cfg.Options.MaxSymbolsPerMethod = 12
	}
	if cfg.Options.MaxHitsPerSymbol == 0 {
		cfg.Options.MaxHitsPerSymbol = 6
	}
	if cfg.Options.MaxSnippetsPerSymbol == 0 {
		cfg.Options.MaxSnippetsPerSymbol = 1
	}
}

// ValidateConfig is a convenience function for quick validation.
func ValidateConfig(cfg *Config) error {
	validator := NewValidator()
	return validator.ValidateAndSetDefaults(cfg)
}
