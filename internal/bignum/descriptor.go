package bignum

import "fmt"

// Descriptor tags a Bignum as a signed finite value or one of the
// non-computable states. NaN and the infinities always carry an empty
// magnitude.
type Descriptor int8

const (
	// Positive marks a finite value >= 0.
	Positive Descriptor = iota
	// Negative marks a finite value < 0.
	Negative
	// NaN marks an undefined result such as Inf - Inf or 0 * Inf.
	NaN
	// PositiveInfinity marks +∞, produced by x/0 for x >= 0 or by exhausting
	// the digit budget.
	PositiveInfinity
	// NegativeInfinity marks -∞.
	NegativeInfinity
)

var descriptorNames = [...]string{
	Positive:         "Positive",
	Negative:         "Negative",
	NaN:              "NaN",
	PositiveInfinity: "PositiveInfinity",
	NegativeInfinity: "NegativeInfinity",
}

// String returns the Go-style name of d.
func (d Descriptor) String() string {
	if d.Valid() {
		return descriptorNames[d]
	}
	return fmt.Sprintf("Descriptor(%d)", int8(d))
}

// Valid reports whether d is one of the five defined descriptors.
func (d Descriptor) Valid() bool {
	return d >= Positive && d <= NegativeInfinity
}

// IsComputable reports whether d denotes a finite value.
func (d Descriptor) IsComputable() bool {
	return d == Positive || d == Negative
}

// IsInf reports whether d is one of the infinities.
func (d Descriptor) IsInf() bool {
	return d == PositiveInfinity || d == NegativeInfinity
}

// negative reports whether d carries a minus sign.
func (d Descriptor) negative() bool {
	return d == Negative || d == NegativeInfinity
}

// negate flips the sign of d. NaN is its own negation.
func (d Descriptor) negate() Descriptor {
	switch d {
	case Positive:
		return Negative
	case Negative:
		return Positive
	case PositiveInfinity:
		return NegativeInfinity
	case NegativeInfinity:
		return PositiveInfinity
	default:
		return d
	}
}

// finite returns the finite descriptor with the sign of neg.
func finite(neg bool) Descriptor {
	if neg {
		return Negative
	}
	return Positive
}

// infinity returns the infinity with the sign of neg.
func infinity(neg bool) Descriptor {
	if neg {
		return NegativeInfinity
	}
	return PositiveInfinity
}
