package apperrors

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Application exit codes define the standard exit statuses for the application.
// These codes are used to signal the outcome of the program execution to the OS.
const (
	ExitSuccess         = 0   // Indicates successful execution.
	ExitErrorGeneric    = 1   // Indicates a generic error.
	ExitErrorTimeout    = 2   // Indicates the operation timed out.
	ExitErrorMismatch   = 3   // Indicates a result mismatch between multiplication algorithms.
	ExitErrorConfig     = 4   // Indicates a configuration error.
	ExitErrorArithmetic = 5   // Indicates an arithmetic failure (underflow, digit budget exhausted).
	ExitErrorCanceled   = 130 // Indicates the operation was canceled (e.g., SIGINT).
)

// ─────────────────────────────────────────────────────────────────────────────
// Typed Errors
// ─────────────────────────────────────────────────────────────────────────────

// ConfigError represents a user configuration error, such as invalid flags,
// an unknown digit base or a malformed profile file.
type ConfigError struct {
	// Message explains the specific configuration error.
	Message string
}

// Error returns the error message for a ConfigError.
//
// Returns:
//   - string: The error message string.
func (e ConfigError) Error() string { return e.Message }

// NewConfigError creates a new ConfigError with a formatted message.
//
// Parameters:
//   - format: A format string (see fmt.Sprintf).
//   - a: Arguments to be formatted into the string.
//
// Returns:
//   - error: A new ConfigError instance containing the formatted message.
func NewConfigError(format string, a ...any) error {
	return ConfigError{Message: fmt.Sprintf(format, a...)}
}

// CalculationError wraps a failure raised while evaluating an expression,
// preserving the original cause for errors.Is and errors.As.
type CalculationError struct {
	// Expression is the textual form of what was being evaluated, if known.
	Expression string
	// Cause is the underlying error that triggered this calculation error.
	Cause error
}

// Error returns the error message from the underlying cause, prefixed by
// the expression when one was recorded.
func (e CalculationError) Error() string {
	if e.Expression == "" {
		return e.Cause.Error()
	}
	return fmt.Sprintf("%s: %v", e.Expression, e.Cause)
}

// Unwrap returns the original wrapped error, allowing for error chain
// inspection (e.g., using errors.Is or errors.As).
//
// Returns:
//   - error: The underlying cause of the CalculationError.
func (e CalculationError) Unwrap() error { return e.Cause }

// TimeoutError represents a calculation timeout. It captures the operation
// name and the duration limit that was exceeded.
type TimeoutError struct {
	// Operation is the name of the operation that timed out.
	Operation string
	// Limit is the duration after which the operation was considered timed out.
	Limit time.Duration
}

// Error returns a formatted message describing the timeout.
func (e TimeoutError) Error() string {
	return fmt.Sprintf("operation %q timed out after %s", e.Operation, e.Limit)
}

// Unwrap links a TimeoutError to context.DeadlineExceeded so that callers
// matching on the context error still classify it as a timeout.
//
// Returns:
//   - error: Always context.DeadlineExceeded.
func (e TimeoutError) Unwrap() error { return context.DeadlineExceeded }

// ValidationError represents an input validation failure, such as an operand
// containing a digit outside the configured base.
type ValidationError struct {
	// Field is the name of the field that failed validation.
	Field string
	// Message explains the validation failure.
	Message string
}

// Error returns a formatted message describing the validation failure.
func (e ValidationError) Error() string {
	return fmt.Sprintf("validation error for %q: %s", e.Field, e.Message)
}

// MemoryError reports that an operation would grow a number past the digit
// budget configured for the run.
type MemoryError struct {
	// Requested is the number of digits the operation needed.
	Requested uint64
	// Available is the number of digits already held by the operands.
	Available uint64
	// Limit is the configured digit budget.
	Limit uint64
}

// Error returns a formatted message describing the memory error.
func (e MemoryError) Error() string {
	return fmt.Sprintf("memory error: requested %d digits, available %d digits (limit: %d)", e.Requested, e.Available, e.Limit)
}

// Unwrap links a MemoryError to ErrResourceExhausted.
func (e MemoryError) Unwrap() error { return ErrResourceExhausted }

// ─────────────────────────────────────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────────────────────────────────────

// WrapError wraps an error with additional context using fmt.Errorf and %w.
// It returns nil if err is nil.
//
// Parameters:
//   - err: The error to wrap. May be nil.
//   - format: A format string for the context message.
//   - args: Arguments to be formatted into the message.
//
// Returns:
//   - error: The wrapped error, or nil if err was nil.
func WrapError(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	message := fmt.Sprintf(format, args...)
	return fmt.Errorf("%s: %w", message, err)
}

// IsContextError checks if the error is a context cancellation or deadline exceeded error.
//
// Parameters:
//   - err: The error to inspect. Wrapped errors are unwrapped.
//
// Returns:
//   - bool: True if err is or wraps context.Canceled or context.DeadlineExceeded.
func IsContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
