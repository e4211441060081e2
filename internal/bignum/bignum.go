// Package bignum provides signed arbitrary-precision integers over a
// configurable digit base.
//
// A Bignum pairs a Descriptor with an unsigned magnitude. Finite values are
// Positive or Negative; NaN and the two infinities are absorbing states that
// carry no digits. Division by zero yields a signed infinity rather than an
// error.
//
// Arithmetic follows the math/big conventions: the receiver z receives the
// result, operands may alias z, and the method returns z so calls can be
// chained. Each arithmetic method also returns an error, which is non-nil
// only when the result would exceed the digit budget (see WithMaxDigits). In
// that case z is set to an infinity signed like the second operand and the
// error wraps apperrors.ErrResourceExhausted.
//
//	type Dec = bignum.Bignum[uint8, digits.Base10]
//	x := bignum.New[uint8, digits.Base10](bignum.Positive, []uint8{1, 0, 9, 8})
//	y := bignum.New[uint8, digits.Base10](bignum.Positive, []uint8{9, 0, 2})
//	z, err := new(Dec).Add(x, y) // 2000
package bignum

import (
	"fmt"

	"github.com/agbru/bncalc/internal/digits"
	apperrors "github.com/agbru/bncalc/internal/errors"
	"github.com/agbru/bncalc/internal/magnitude"
)

// DefaultMaxDigits is the digit budget used when none of the values taking
// part in an operation set one: 16M digits.
const DefaultMaxDigits = 1 << 24

// Bignum is a signed integer written in the digits of configuration L. The
// zero value is 0 and ready to use. A Bignum exclusively owns its digits;
// use Set or Clone to copy one.
type Bignum[D digits.Digit, L digits.Limits[D]] struct {
	desc      Descriptor
	mag       magnitude.Magnitude[D, L]
	maxDigits int
}

// Option configures a Bignum at construction.
type Option func(*options)

type options struct {
	maxDigits int
}

// WithMaxDigits sets the digit budget of the constructed value. Results
// stored into it may not grow past n digits. n <= 0 keeps the default.
func WithMaxDigits(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.maxDigits = n
		}
	}
}

func applyOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// New returns a Bignum with descriptor desc and the digits msf, written most
// significant first. Leading zeros are dropped; a non-computable descriptor
// discards the digits. New panics if a digit exceeds the configuration's
// maximum or desc is not a valid descriptor; use NewChecked for untrusted
// input.
func New[D digits.Digit, L digits.Limits[D]](desc Descriptor, msf []D, opts ...Option) *Bignum[D, L] {
	z, err := NewChecked[D, L](desc, msf, opts...)
	if err != nil {
		panic(err)
	}
	return z
}

// NewChecked is like New but reports invalid input as an error.
func NewChecked[D digits.Digit, L digits.Limits[D]](desc Descriptor, msf []D, opts ...Option) (*Bignum[D, L], error) {
	if !desc.Valid() {
		return nil, apperrors.NewArithmeticError("new", apperrors.KindInvalidInput,
			fmt.Errorf("%w: %d", apperrors.ErrInvalidDescriptor, int8(desc)))
	}
	mag := magnitude.FromDigits[D, L](msf...)
	if idx := mag.Validate(); idx >= 0 {
		var l L
		return nil, apperrors.NewArithmeticError("new", apperrors.KindInvalidInput,
			fmt.Errorf("%w: %d exceeds maximum digit %d", apperrors.ErrInvalidDigit, mag[idx], l.Max()))
	}
	o := applyOptions(opts)
	z := &Bignum[D, L]{maxDigits: o.maxDigits}
	z.setFinite(desc, mag)
	if !desc.IsComputable() {
		z.setSpecial(desc)
	}
	return z, nil
}

// Zero returns a new Bignum equal to 0.
func Zero[D digits.Digit, L digits.Limits[D]](opts ...Option) *Bignum[D, L] {
	return &Bignum[D, L]{maxDigits: applyOptions(opts).maxDigits}
}

// FromInt64 returns a new Bignum equal to v.
func FromInt64[D digits.Digit, L digits.Limits[D]](v int64, opts ...Option) *Bignum[D, L] {
	z := Zero[D, L](opts...)
	if v < 0 {
		// Two's complement negation is exact in uint64, including MinInt64.
		z.setFinite(Negative, magnitude.FromUint64[D, L](-uint64(v)))
	} else {
		z.setFinite(Positive, magnitude.FromUint64[D, L](uint64(v)))
	}
	return z
}

// FromUint64 returns a new Bignum equal to v.
func FromUint64[D digits.Digit, L digits.Limits[D]](v uint64, opts ...Option) *Bignum[D, L] {
	z := Zero[D, L](opts...)
	z.setFinite(Positive, magnitude.FromUint64[D, L](v))
	return z
}

// Radix returns the digit base of z.
func (z *Bignum[D, L]) Radix() uint64 { return digits.Radix[D, L]() }

// Descriptor returns the descriptor of z.
func (z *Bignum[D, L]) Descriptor() Descriptor { return z.desc }

// SetDescriptor sets the descriptor of z and returns z. Switching to NaN or
// an infinity clears the digits; switching between Positive and Negative
// keeps them. Invalid descriptors are ignored.
func (z *Bignum[D, L]) SetDescriptor(d Descriptor) *Bignum[D, L] {
	if !d.Valid() {
		return z
	}
	if d.IsComputable() {
		z.setFinite(d, z.mag)
		return z
	}
	z.setSpecial(d)
	return z
}

// IsComputable reports whether z is finite.
func (z *Bignum[D, L]) IsComputable() bool { return z.desc.IsComputable() }

// IsNaN reports whether z is NaN.
func (z *Bignum[D, L]) IsNaN() bool { return z.desc == NaN }

// IsInf reports whether z is an infinity.
func (z *Bignum[D, L]) IsInf() bool { return z.desc.IsInf() }

// IsPositive reports whether z is finite and greater than zero.
func (z *Bignum[D, L]) IsPositive() bool { return z.desc == Positive && len(z.mag) > 0 }

// IsNegative reports whether z is finite and less than zero.
func (z *Bignum[D, L]) IsNegative() bool { return z.desc == Negative }

// IsZero reports whether z is a finite zero.
func (z *Bignum[D, L]) IsZero() bool { return z.desc.IsComputable() && len(z.mag) == 0 }

// Sign returns -1, 0 or +1 depending on the sign of z. Infinities report
// their sign; NaN reports 0.
func (z *Bignum[D, L]) Sign() int {
	switch {
	case z.desc == NaN || z.IsZero():
		return 0
	case z.desc.negative():
		return -1
	default:
		return 1
	}
}

// Len returns the number of digits of z. Zero and the non-computable states
// have no digits.
func (z *Bignum[D, L]) Len() int { return len(z.mag) }

// Digit returns the i-th least-significant digit of z. It panics if i is out
// of range.
func (z *Bignum[D, L]) Digit(i int) D {
	if i < 0 || i >= len(z.mag) {
		panic(fmt.Sprintf("bignum: digit index %d out of range [0, %d)", i, len(z.mag)))
	}
	return z.mag[i]
}

// Digits returns a copy of the digits of z, most significant first.
func (z *Bignum[D, L]) Digits() []D { return z.mag.MostSignificantFirst() }

// Magnitude returns a copy of the absolute value of z as a magnitude.
func (z *Bignum[D, L]) Magnitude() magnitude.Magnitude[D, L] {
	if z.mag == nil {
		return magnitude.Magnitude[D, L]{}
	}
	return z.mag.Clone()
}

// MaxDigits returns the digit budget configured on z, or 0 if z uses the
// budget of its operands.
func (z *Bignum[D, L]) MaxDigits() int { return z.maxDigits }

// SetMaxDigits changes the digit budget of z and returns z. n <= 0 clears it.
func (z *Bignum[D, L]) SetMaxDigits(n int) *Bignum[D, L] {
	z.maxDigits = max(n, 0)
	return z
}

// Set sets z to the value of x and returns z. The digit budget of z is kept.
func (z *Bignum[D, L]) Set(x *Bignum[D, L]) *Bignum[D, L] {
	if z == x {
		return z
	}
	z.desc = x.desc
	z.mag = x.mag.Clone()
	return z
}

// Clone returns an independent copy of z, digit budget included.
func (z *Bignum[D, L]) Clone() *Bignum[D, L] {
	return &Bignum[D, L]{desc: z.desc, mag: z.mag.Clone(), maxDigits: z.maxDigits}
}

// Reset sets z to 0 and returns z.
func (z *Bignum[D, L]) Reset() *Bignum[D, L] {
	z.desc = Positive
	z.mag = z.mag[:0]
	return z
}

// Neg sets z to -x and returns z. The negation of zero is zero and the
// negation of NaN is NaN.
func (z *Bignum[D, L]) Neg(x *Bignum[D, L]) *Bignum[D, L] {
	z.Set(x)
	if z.desc.IsComputable() {
		z.setFinite(z.desc.negate(), z.mag)
	} else {
		z.desc = z.desc.negate()
	}
	return z
}

// Abs sets z to |x| and returns z. |±Inf| is +Inf.
func (z *Bignum[D, L]) Abs(x *Bignum[D, L]) *Bignum[D, L] {
	z.Set(x)
	switch z.desc {
	case Negative:
		z.desc = Positive
	case NegativeInfinity:
		z.desc = PositiveInfinity
	}
	return z
}

// setFinite stores a finite result. Zero is always Positive.
func (z *Bignum[D, L]) setFinite(desc Descriptor, mag magnitude.Magnitude[D, L]) {
	mag = mag.Trim()
	if len(mag) == 0 {
		desc = Positive
	}
	z.desc = desc
	z.mag = mag
}

// setSpecial stores a non-computable state and drops the digits.
func (z *Bignum[D, L]) setSpecial(desc Descriptor) {
	z.desc = desc
	z.mag = nil
}
