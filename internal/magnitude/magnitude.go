// Package magnitude implements unsigned arbitrary-precision arithmetic on
// digit sequences of a configurable radix.
//
// A Magnitude stores its least-significant digit at index 0 and, once
// normalized, carries no most-significant zero digits; zero is the empty
// sequence. Every operation also accepts a lone zero digit as zero.
//
// Operations mutate their receiver in place (Add, Sub, Div) or return a new
// magnitude (MulNaive, MulFFT). Arguments are never modified and may alias
// the receiver.
package magnitude

import (
	"math/bits"
	"slices"

	"github.com/agbru/bncalc/internal/digits"
)

// Magnitude is an unsigned number written in the digits of configuration L,
// least-significant digit first.
type Magnitude[D digits.Digit, L digits.Limits[D]] []D

// FromDigits builds a magnitude from digits written most-significant first,
// the order they are read in. Leading zeros are dropped.
func FromDigits[D digits.Digit, L digits.Limits[D]](msf ...D) Magnitude[D, L] {
	m := make(Magnitude[D, L], len(msf))
	for i, d := range msf {
		m[len(msf)-1-i] = d
	}
	return m.Trim()
}

// FromUint64 returns the magnitude of v in the radix of L.
func FromUint64[D digits.Digit, L digits.Limits[D]](v uint64) Magnitude[D, L] {
	radix := digits.Radix[D, L]()
	var m Magnitude[D, L]
	for v > 0 {
		m = append(m, D(v%radix))
		v /= radix
	}
	return m
}

// Uint64 returns m as a uint64 and whether it fit.
func (m Magnitude[D, L]) Uint64() (uint64, bool) {
	radix := digits.Radix[D, L]()
	var v uint64
	m = m.Trim()
	for i := len(m) - 1; i >= 0; i-- {
		hi, lo := mulAdd(v, radix, uint64(m[i]))
		if hi != 0 {
			return 0, false
		}
		v = lo
	}
	return v, true
}

// Trim returns m without its most-significant zero digits. The result shares
// the backing array of m.
func (m Magnitude[D, L]) Trim() Magnitude[D, L] {
	n := len(m)
	for n > 0 && m[n-1] == 0 {
		n--
	}
	return m[:n]
}

// IsZero reports whether m represents zero (empty or all zero digits).
func (m Magnitude[D, L]) IsZero() bool {
	return len(m.Trim()) == 0
}

// IsOne reports whether m represents one.
func (m Magnitude[D, L]) IsOne() bool {
	t := m.Trim()
	return len(t) == 1 && t[0] == 1
}

// Clone returns an independent copy of m.
func (m Magnitude[D, L]) Clone() Magnitude[D, L] {
	if m == nil {
		return nil
	}
	return slices.Clone(m)
}

// MostSignificantFirst returns the digits of m in reading order. Zero yields
// an empty slice.
func (m Magnitude[D, L]) MostSignificantFirst() []D {
	t := m.Trim()
	out := make([]D, len(t))
	for i, d := range t {
		out[len(t)-1-i] = d
	}
	return out
}

// Validate checks that every digit of m is at most the configuration's
// maximum digit. It returns the index of the first offending digit, or -1.
func (m Magnitude[D, L]) Validate() int {
	var l L
	for i, d := range m {
		if d > l.Max() {
			return i
		}
	}
	return -1
}

// mulAdd returns the 128-bit value x*y+z as (hi, lo).
func mulAdd(x, y, z uint64) (hi, lo uint64) {
	hi, lo = bits.Mul64(x, y)
	var c uint64
	lo, c = bits.Add64(lo, z, 0)
	return hi + c, lo
}
