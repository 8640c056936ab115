// Package errors provides centralized error definitions and error handling utilities
// for egypt. It defines domain-specific errors, semantic error types, error
// constructors with context wrapping, and error classification helpers.
//
// # Error Types
//
// Domain-specific errors represent errors from specific subsystems:
//   - ExpressionError: an RPN expression could not be evaluated
//   - BatchError: a single batch input line could not be processed
//
// Semantic errors represent common error conditions:
//   - ValidationError: invalid input (zero denominator, bad option, bad config value)
//
// # Usage
//
//	err := errors.NewValidationError("denominator must be non-zero").
//		WithField("denominator").WithValue("0").WithCause(errors.ErrZeroDenominator)
//
//	if errors.Is(err, errors.ErrInvalidInput) { ... }
//
//	var exprErr *errors.ExpressionError
//	if errors.As(err, &exprErr) { ... }
//
// # Error Classification
//
// Errors carry a severity and a user-facing flag. The CLI prints user-facing
// errors verbatim and reports everything else as an internal failure.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Re-export standard library functions for convenience.
// This allows callers to import only this package for all error handling.
var (
	Is     = errors.Is
	As     = errors.As
	Unwrap = errors.Unwrap
	New    = errors.New
	Join   = errors.Join
)

// Severity represents the severity level of an error.
type Severity int

const (
	// SeverityDebug is for errors that are useful for debugging but not critical.
	SeverityDebug Severity = iota
	// SeverityInfo is for informational errors that don't indicate a problem.
	SeverityInfo
	// SeverityWarning is for errors that might indicate a problem but aren't critical.
	SeverityWarning
	// SeverityError is for errors that indicate a real problem.
	SeverityError
	// SeverityCritical is for errors that require immediate attention.
	SeverityCritical
)

// String returns the string representation of the severity level.
func (s Severity) String() string {
	switch s {
	case SeverityDebug:
		return "debug"
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	case SeverityCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// -----------------------------------------------------------------------------
// Sentinel Errors
// -----------------------------------------------------------------------------

// Input-related sentinel errors
var (
	// ErrZeroDenominator indicates a rational with a zero denominator.
	ErrZeroDenominator = New("zero denominator")
	// ErrNegativeInput indicates a negative numerator or denominator reached the engine.
	ErrNegativeInput = New("negative input")
	// ErrInvalidLimit indicates a bisection limit below the minimum.
	ErrInvalidLimit = New("invalid bisection limit")
)

// Expression-related sentinel errors
var (
	// ErrEmptyExpression indicates an expression with no tokens.
	ErrEmptyExpression = New("empty expression")
	// ErrStackUnderflow indicates an operator ran out of operands.
	ErrStackUnderflow = New("stack underflow")
	// ErrUnknownToken indicates a token that is neither a number nor an operator.
	ErrUnknownToken = New("unknown token")
	// ErrOperandOutOfRange indicates an operand outside the range an operator accepts.
	ErrOperandOutOfRange = New("operand out of range")
	// ErrDivisionByZero indicates a division or modulus by zero.
	ErrDivisionByZero = New("division by zero")
)

// Batch-related sentinel errors
var (
	// ErrMalformedLine indicates a batch line without two tab-separated fields.
	ErrMalformedLine = New("expecting tab delimited numerator and denominator")
)

// General-purpose sentinel errors
var (
	// ErrInvalidInput indicates that input validation failed.
	ErrInvalidInput = New("invalid input")
	// ErrCanceled indicates that an operation was canceled.
	ErrCanceled = New("operation canceled")
)

// -----------------------------------------------------------------------------
// Error Interface
// -----------------------------------------------------------------------------

// EgyptError is the interface implemented by every error type in this package.
type EgyptError interface {
	error

	// Unwrap returns the underlying cause, if any.
	Unwrap() error

	// Severity returns the severity level of this error.
	Severity() Severity

	// IsUserFacing returns true if the message is safe to show to end users.
	IsUserFacing() bool
}

// baseError provides common functionality for all error types.
type baseError struct {
	message    string
	cause      error
	severity   Severity
	userFacing bool
}

func (e *baseError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.message, e.cause)
	}
	return e.message
}

func (e *baseError) Unwrap() error {
	return e.cause
}

func (e *baseError) Severity() Severity {
	return e.severity
}

func (e *baseError) IsUserFacing() bool {
	return e.userFacing
}

// format renders "<kind> [k=v, ...]: message: cause".
func (e *baseError) format(kind string, parts []string) string {
	prefix := kind
	if len(parts) > 0 {
		prefix = fmt.Sprintf("%s [%s]", kind, strings.Join(parts, ", "))
	}
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, e.message, e.cause)
	}
	return fmt.Sprintf("%s: %s", prefix, e.message)
}

// -----------------------------------------------------------------------------
// Domain-Specific Errors
// -----------------------------------------------------------------------------

// ExpressionError represents a failure to evaluate an RPN expression.
//
// Example:
//
//	err := errors.NewExpressionError("operator needs two operands", errors.ErrStackUnderflow).
//		WithToken("+").WithPosition(0)
type ExpressionError struct {
	baseError
	Expr     string
	Token    string
	Position int
}

// NewExpressionError creates a new ExpressionError.
func NewExpressionError(message string, cause error) *ExpressionError {
	return &ExpressionError{
		baseError: baseError{
			message:    message,
			cause:      cause,
			severity:   SeverityError,
			userFacing: true,
		},
		Position: -1, // -1 indicates not set
	}
}

// WithExpr adds the full expression text.
func (e *ExpressionError) WithExpr(expr string) *ExpressionError {
	e.Expr = expr
	return e
}

// WithToken adds the offending token.
func (e *ExpressionError) WithToken(token string) *ExpressionError {
	e.Token = token
	return e
}

// WithPosition adds the zero-based token index.
func (e *ExpressionError) WithPosition(pos int) *ExpressionError {
	e.Position = pos
	return e
}

// Error returns the formatted error message.
func (e *ExpressionError) Error() string {
	var parts []string
	if e.Expr != "" {
		parts = append(parts, fmt.Sprintf("expr=%q", e.Expr))
	}
	if e.Token != "" {
		parts = append(parts, fmt.Sprintf("token=%q", e.Token))
	}
	if e.Position >= 0 {
		parts = append(parts, fmt.Sprintf("pos=%d", e.Position))
	}
	return e.format("expression error", parts)
}

// Is checks if this error matches the target.
func (e *ExpressionError) Is(target error) bool {
	if _, ok := target.(*ExpressionError); ok {
		return true
	}
	return target == ErrInvalidInput
}

// BatchError represents a failure on one line of batch input.
type BatchError struct {
	baseError
	Line int
}

// NewBatchError creates a new BatchError for a one-based line number.
func NewBatchError(line int, cause error) *BatchError {
	return &BatchError{
		baseError: baseError{
			message:    "line rejected",
			cause:      cause,
			severity:   SeverityWarning,
			userFacing: true,
		},
		Line: line,
	}
}

// Error returns the formatted error message.
func (e *BatchError) Error() string {
	return e.format("batch error", []string{fmt.Sprintf("line=%d", e.Line)})
}

// Is checks if this error matches the target.
func (e *BatchError) Is(target error) bool {
	_, ok := target.(*BatchError)
	return ok
}

// -----------------------------------------------------------------------------
// Semantic Errors
// -----------------------------------------------------------------------------

// ValidationError represents invalid input or state.
//
// Example:
//
//	err := errors.NewValidationError("limit must be at least 2")
//	err = err.WithField("limit").WithValue(1)
type ValidationError struct {
	baseError
	Field string
	Value any
}

// NewValidationError creates a new ValidationError.
func NewValidationError(message string) *ValidationError {
	return &ValidationError{
		baseError: baseError{
			message:    message,
			severity:   SeverityWarning,
			userFacing: true,
		},
	}
}

// WithField adds a field name to the error context.
func (e *ValidationError) WithField(field string) *ValidationError {
	e.Field = field
	return e
}

// WithValue adds the invalid value to the error context.
func (e *ValidationError) WithValue(value any) *ValidationError {
	e.Value = value
	return e
}

// WithCause adds a cause to the error.
func (e *ValidationError) WithCause(cause error) *ValidationError {
	e.cause = cause
	return e
}

// Error returns the formatted error message.
func (e *ValidationError) Error() string {
	var parts []string
	if e.Field != "" {
		parts = append(parts, fmt.Sprintf("field=%s", e.Field))
	}
	if e.Value != nil {
		parts = append(parts, fmt.Sprintf("value=%v", e.Value))
	}
	return e.format("validation error", parts)
}

// Is checks if this error matches the target.
func (e *ValidationError) Is(target error) bool {
	if _, ok := target.(*ValidationError); ok {
		return true
	}
	return target == ErrInvalidInput
}

// -----------------------------------------------------------------------------
// Classification
// -----------------------------------------------------------------------------

// IsUserFacing returns true if the error message is safe to display to end users.
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}
	var egyptErr EgyptError
	if As(err, &egyptErr) {
		return egyptErr.IsUserFacing()
	}
	return false
}

// GetSeverity returns the severity level of the error.
// Returns SeverityError for errors that don't implement EgyptError.
func GetSeverity(err error) Severity {
	if err == nil {
		return SeverityDebug
	}
	var egyptErr EgyptError
	if As(err, &egyptErr) {
		return egyptErr.Severity()
	}
	return SeverityError
}

// -----------------------------------------------------------------------------
// Convenience Constructors
// -----------------------------------------------------------------------------

// Wrap wraps an error with additional context message.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf wraps an error with a formatted context message.
func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}
