package config

import (
	"fmt"
	"slices"
	"strings"

	"github.com/Iron-Ham/egypt/internal/egypt"
	"github.com/Iron-Ham/egypt/internal/errors"
	"github.com/Iron-Ham/egypt/internal/output"
)

// ValidationError represents a single validation failure
type ValidationError struct {
	Field   string // The config field path (e.g., "decompose.limit")
	Value   any    // The invalid value
	Message string // Human-readable error description
}

// Error implements the error interface for ValidationError
func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (got: %v)", e.Field, e.Message, e.Value)
}

// Is reports whether target is errors.ErrInvalidInput, so configuration
// failures classify like every other input failure.
func (e ValidationError) Is(target error) bool {
	return target == errors.ErrInvalidInput
}

// Unwrap returns nil; a ValidationError has no underlying cause.
func (e ValidationError) Unwrap() error { return nil }

// Severity reports configuration mistakes as warnings, like other input
// validation failures.
func (e ValidationError) Severity() errors.Severity { return errors.SeverityWarning }

// IsUserFacing returns true; the message names the offending key.
func (e ValidationError) IsUserFacing() bool { return true }

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

// Error implements the error interface for ValidationErrors
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	if len(e) == 1 {
		return e[0].Error()
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d validation errors:\n", len(e)))
	for i, err := range e {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, err.Error()))
	}
	return sb.String()
}

// Unwrap exposes the individual failures to errors.Is and errors.As.
func (e ValidationErrors) Unwrap() []error {
	errs := make([]error, len(e))
	for i, v := range e {
		errs[i] = v
	}
	return errs
}

// Bounds for numeric settings
const (
	maxLimit     = 1 << 20
	maxWorkers   = 1024
	maxChunkSize = 1 << 16
	maxLogSizeMB = 1000
	maxBackups   = 100
)

// ValidLogLevels returns the list of valid log levels
func ValidLogLevels() []string {
	return []string{"debug", "info", "warn", "error"}
}

// ValidOutputFormats returns the list of valid output formats
func ValidOutputFormats() []string {
	formats := output.Formats()
	names := make([]string, len(formats))
	for i, f := range formats {
		names[i] = string(f)
	}
	return names
}

// Validate checks the Config for invalid values and returns all validation errors found
func (c *Config) Validate() []ValidationError {
	var errors []ValidationError

	errors = append(errors, c.validateDecompose()...)
	errors = append(errors, c.validateOutput()...)
	errors = append(errors, c.validateBatch()...)
	errors = append(errors, c.validateLogging()...)

	return errors
}

// validateDecompose validates the DecomposeConfig
func (c *Config) validateDecompose() []ValidationError {
	var errors []ValidationError

	if c.Decompose.Limit < egypt.MinLimit {
		errors = append(errors, ValidationError{
			Field:   "decompose.limit",
			Value:   c.Decompose.Limit,
			Message: fmt.Sprintf("must be at least %d", egypt.MinLimit),
		})
	}

	// Long runs expand to that many unit fractions each
	if c.Decompose.Limit > maxLimit {
		errors = append(errors, ValidationError{
			Field:   "decompose.limit",
			Value:   c.Decompose.Limit,
			Message: fmt.Sprintf("exceeds maximum of %d", maxLimit),
		})
	}

	return errors
}

// validateOutput validates the OutputConfig
func (c *Config) validateOutput() []ValidationError {
	var errors []ValidationError

	if !slices.Contains(ValidOutputFormats(), strings.ToLower(c.Output.Format)) {
		errors = append(errors, ValidationError{
			Field:   "output.format",
			Value:   c.Output.Format,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(ValidOutputFormats(), ", ")),
		})
	}

	return errors
}

// validateBatch validates the BatchConfig
func (c *Config) validateBatch() []ValidationError {
	var errors []ValidationError

	if c.Batch.Workers < 0 {
		errors = append(errors, ValidationError{
			Field:   "batch.workers",
			Value:   c.Batch.Workers,
			Message: "must be non-negative",
		})
	}

	if c.Batch.Workers > maxWorkers {
		errors = append(errors, ValidationError{
			Field:   "batch.workers",
			Value:   c.Batch.Workers,
			Message: fmt.Sprintf("exceeds maximum of %d", maxWorkers),
		})
	}

	if c.Batch.ChunkSize <= 0 {
		errors = append(errors, ValidationError{
			Field:   "batch.chunk_size",
			Value:   c.Batch.ChunkSize,
			Message: "must be positive",
		})
	}

	if c.Batch.ChunkSize > maxChunkSize {
		errors = append(errors, ValidationError{
			Field:   "batch.chunk_size",
			Value:   c.Batch.ChunkSize,
			Message: fmt.Sprintf("exceeds maximum of %d", maxChunkSize),
		})
	}

	return errors
}

// validateLogging validates the LoggingConfig
func (c *Config) validateLogging() []ValidationError {
	var errors []ValidationError

	// Empty level disables logging
	if c.Logging.Level != "" && !slices.Contains(ValidLogLevels(), strings.ToLower(c.Logging.Level)) {
		errors = append(errors, ValidationError{
			Field:   "logging.level",
			Value:   c.Logging.Level,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(ValidLogLevels(), ", ")),
		})
	}

	if c.Logging.MaxSizeMB <= 0 {
		errors = append(errors, ValidationError{
			Field:   "logging.max_size_mb",
			Value:   c.Logging.MaxSizeMB,
			Message: "must be positive",
		})
	}

	if c.Logging.MaxSizeMB > maxLogSizeMB {
		errors = append(errors, ValidationError{
			Field:   "logging.max_size_mb",
			Value:   c.Logging.MaxSizeMB,
			Message: fmt.Sprintf("exceeds maximum of %dMB", maxLogSizeMB),
		})
	}

	if c.Logging.MaxBackups < 0 {
		errors = append(errors, ValidationError{
			Field:   "logging.max_backups",
			Value:   c.Logging.MaxBackups,
			Message: "must be non-negative",
		})
	}

	if c.Logging.MaxBackups > maxBackups {
		errors = append(errors, ValidationError{
			Field:   "logging.max_backups",
			Value:   c.Logging.MaxBackups,
			Message: fmt.Sprintf("exceeds maximum of %d", maxBackups),
		})
	}

	return errors
}
