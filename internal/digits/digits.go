// Package digits describes the digit configurations a magnitude can be
// stored in.
//
// A configuration is a zero-size type implementing Limits for one of the
// unsigned storage types in Digit. Its Max()+1 is the radix. Every
// arithmetic package is generic over a (Digit, Limits) pair so that each
// configuration is a distinct, statically checked instantiation:
//
//	type B10 = bignum.Bignum[uint8, digits.Base10]
//
// Intermediate sums and products are computed in uint64, which is why the
// largest supported radix is 2^32.
package digits

import (
	"fmt"
	"math"

	"fortio.org/safecast"

	apperrors "github.com/agbru/bncalc/internal/errors"
)

// MaxRadix is the largest radix any configuration may use. With radix at
// most 2^32 the uint64 accumulator holds (R-1)^2 + 2(R-1), the worst case of
// one schoolbook multiply-accumulate step.
const MaxRadix uint64 = 1 << 32

// Digit is the set of storage types a digit may use.
type Digit interface {
	~uint8 | ~uint16 | ~uint32
}

// Limits yields the inclusive range of digit values for a configuration.
// Min is always zero for the configurations shipped in this package.
type Limits[D Digit] interface {
	Min() D
	Max() D
}

// Radix returns Max()+1 for the configuration L.
func Radix[D Digit, L Limits[D]]() uint64 {
	var l L
	return uint64(l.Max()) + 1
}

// MaxOf returns the largest digit value of L widened to uint64.
func MaxOf[D Digit, L Limits[D]]() uint64 {
	var l L
	return uint64(l.Max())
}

// MinOf returns the smallest digit value of L widened to uint64.
func MinOf[D Digit, L Limits[D]]() uint64 {
	var l L
	return uint64(l.Min())
}

// Validate checks that L describes a usable configuration.
func Validate[D Digit, L Limits[D]]() error {
	var l L
	if lo := MinOf[D, L](); lo != 0 {
		return apperrors.NewConfigError("digit configuration %T: minimum digit must be 0, got %d", l, lo)
	}
	if l.Max() == 0 {
		return apperrors.NewConfigError("digit configuration %T: radix must be at least 2", l)
	}
	if Radix[D, L]() > MaxRadix {
		return apperrors.NewConfigError("digit configuration %T: radix %d exceeds %d", l, Radix[D, L](), MaxRadix)
	}
	return nil
}

// FromUint64 converts v to a digit of configuration L. It fails with
// ErrInvalidDigit when v does not fit the storage type or exceeds Max().
func FromUint64[D Digit, L Limits[D]](v uint64) (D, error) {
	d, err := safecast.Conv[D](v)
	if err != nil {
		return 0, fmt.Errorf("%w: %d does not fit %T", apperrors.ErrInvalidDigit, v, d)
	}
	var l L
	if d > l.Max() {
		return 0, fmt.Errorf("%w: %d exceeds maximum digit %d", apperrors.ErrInvalidDigit, v, l.Max())
	}
	return d, nil
}

// Width returns the number of bits of storage used by one digit of type D.
func Width[D Digit]() int {
	var d D
	d = ^d
	switch uint64(d) {
	case math.MaxUint8:
		return 8
	case math.MaxUint16:
		return 16
	default:
		return 32
	}
}
