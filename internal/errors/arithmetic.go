package apperrors

import (
	"errors"
	"fmt"
)

// Sentinel errors raised by the arithmetic packages. Callers match them with
// errors.Is; the concrete error is usually an ArithmeticError wrapping one of
// these.
var (
	// ErrUnderflow is returned when a magnitude subtraction would go below zero.
	ErrUnderflow = errors.New("magnitude underflow")
	// ErrDivisionByZero is returned by magnitude division with a zero divisor.
	// The signed layer never surfaces it: it yields an infinity instead.
	ErrDivisionByZero = errors.New("division by zero")
	// ErrResourceExhausted is returned when a result would exceed the digit budget.
	ErrResourceExhausted = errors.New("digit budget exhausted")
	// ErrInvalidDigit is returned when a digit does not fit the configured base.
	ErrInvalidDigit = errors.New("digit out of range")
	// ErrInvalidDescriptor is returned for an unknown descriptor value.
	ErrInvalidDescriptor = errors.New("invalid descriptor")
	// ErrRadixMismatch is returned when decoding a number written in another base.
	ErrRadixMismatch = errors.New("radix mismatch")
	// ErrPrecision is returned when a transform length exceeds the float64 window.
	ErrPrecision = errors.New("fft precision window exceeded")
)

// ErrorKind classifies an ArithmeticError.
type ErrorKind int

const (
	// KindUnderflow marks a subtraction whose precondition was violated.
	KindUnderflow ErrorKind = iota
	// KindResourceExhausted marks an operation that hit the digit budget.
	KindResourceExhausted
	// KindDivisionByZero marks a magnitude division by zero.
	KindDivisionByZero
	// KindInvalidInput marks malformed digits, descriptors or encodings.
	KindInvalidInput
)

// String returns the lowercase name of the kind.
func (k ErrorKind) String() string {
	switch k {
	case KindUnderflow:
		return "underflow"
	case KindResourceExhausted:
		return "resource exhausted"
	case KindDivisionByZero:
		return "division by zero"
	case KindInvalidInput:
		return "invalid input"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// ArithmeticError is the error returned by magnitude and bignum operations.
// Op names the failing operation (e.g. "add", "mul"), Kind classifies the
// failure and Cause carries the sentinel or a more specific error.
type ArithmeticError struct {
	Op    string
	Kind  ErrorKind
	Cause error
}

// Error implements the error interface.
func (e ArithmeticError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Cause)
}

// Unwrap returns the underlying cause.
func (e ArithmeticError) Unwrap() error { return e.Cause }

// NewArithmeticError builds an ArithmeticError for op.
//
// Parameters:
//   - op: The short name of the failing operation ("add", "mul", "decode").
//   - kind: The failure class, which decides the exit code at the CLI.
//   - cause: The sentinel or more specific error; kept for errors.Is.
//
// Returns:
//   - error: An ArithmeticError value.
func NewArithmeticError(op string, kind ErrorKind, cause error) error {
	return ArithmeticError{Op: op, Kind: kind, Cause: cause}
}

// IsArithmeticError reports whether err carries an ArithmeticError of the
// given kind anywhere in its chain.
func IsArithmeticError(err error, kind ErrorKind) bool {
	var ae ArithmeticError
	return errors.As(err, &ae) && ae.Kind == kind
}
