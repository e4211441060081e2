// Package apperrors defines structured application error types,
// allowing for a clear distinction between error classes (configuration,
// arithmetic, validation, etc.) and for carrying the underlying cause.
//
// Arithmetic failures are reported through ArithmeticError together with a
// small set of sentinels (ErrUnderflow, ErrResourceExhausted, ...). NaN and
// infinities are not errors: they are descriptor states of a bignum.
//
// Error Wrapping Guidelines:
// This package follows Go's error wrapping conventions using fmt.Errorf with %w.
// All error types that carry a cause implement Unwrap() to support errors.Is()
// and errors.As().
package apperrors
