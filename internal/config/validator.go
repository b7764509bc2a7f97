package config

import (
	"errors"
	"fmt"
	"runtime"

	lcierrors "github.com/standardbeagle/idlocator/internal/errors"
)

// phonetic codes longer than this stop discriminating anything
const maxCodeLength = 12

// Validator validates configuration and sets smart defaults
type Validator struct{}

// NewValidator creates a new configuration validator
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateAndSetDefaults validates configuration and applies smart defaults
// Returns an error if validation fails
func (v *Validator) ValidateAndSetDefaults(cfg *Config) error {
	if err := v.validateDatasetConfig(&cfg.Dataset); err != nil {
		return lcierrors.NewConfigError("dataset", "", err)
	}

	if err := v.validateSearchConfig(&cfg.Search); err != nil {
		return lcierrors.NewConfigError("search", "", err)
	}

	if err := cfg.EngineWeights().Validate(); err != nil {
		return lcierrors.NewConfigError("weights", "", err)
	}

	if err := cfg.ScoreLayers().Validate(); err != nil {
		return lcierrors.NewConfigError("scoring", "", err)
	}

	v.setSmartDefaults(cfg)
	return nil
}

func (v *Validator) validateDatasetConfig(dataset *Dataset) error {
	if dataset.WatchDebounceMs < 0 {
		return fmt.Errorf("WatchDebounceMs cannot be negative, got %d", dataset.WatchDebounceMs)
	}
	if dataset.Watch && dataset.Path == "" {
		return errors.New("watch requires a dataset path")
	}
	return nil
}

func (v *Validator) validateSearchConfig(search *Search) error {
	if search.CodeLength < 1 || search.CodeLength > maxCodeLength {
		return fmt.Errorf("CodeLength must be between 1 and %d, got %d", maxCodeLength, search.CodeLength)
	}
	if search.MaxResults < 0 {
		return fmt.Errorf("MaxResults cannot be negative, got %d", search.MaxResults)
	}
	if search.Parallelism < 0 {
		return fmt.Errorf("Parallelism cannot be negative, got %d", search.Parallelism)
	}
	return nil
}

func (v *Validator) setSmartDefaults(cfg *Config) {
	if cfg.Search.Parallelism == 0 {
		cfg.Search.Parallelism = runtime.NumCPU()
	}

	if cfg.Dataset.WatchDebounceMs == 0 {
		cfg.Dataset.WatchDebounceMs = 300
	}
}

// ValidateConfig is a convenience function to validate a configuration
func ValidateConfig(cfg *Config) error {
	validator := NewValidator()
	return validator.ValidateAndSetDefaults(cfg)
}
