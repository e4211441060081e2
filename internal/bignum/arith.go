package bignum

import (
	"errors"

	apperrors "github.com/agbru/bncalc/internal/errors"
	"github.com/agbru/bncalc/internal/magnitude"
)

// Add sets z to x + y and returns z.
//
// Operands of the same sign add their magnitudes. Operands of opposite sign
// subtract the smaller magnitude from the larger and take the sign of the
// larger; equal magnitudes give 0. NaN absorbs everything, an infinity
// absorbs finite values, and +Inf + -Inf is NaN.
func (z *Bignum[D, L]) Add(x, y *Bignum[D, L]) (*Bignum[D, L], error) {
	return z.add("add", x, y, y.desc)
}

// Sub sets z to x - y and returns z. It is x + (-y).
func (z *Bignum[D, L]) Sub(x, y *Bignum[D, L]) (*Bignum[D, L], error) {
	return z.add("sub", x, y, y.desc.negate())
}

// add computes x + y where y is read with descriptor yd.
func (z *Bignum[D, L]) add(op string, x, y *Bignum[D, L], yd Descriptor) (*Bignum[D, L], error) {
	switch {
	case x.desc == NaN || yd == NaN:
		z.setSpecial(NaN)
		return z, nil
	case x.desc.IsInf() && yd.IsInf():
		if x.desc != yd {
			z.setSpecial(NaN)
		} else {
			z.setSpecial(x.desc)
		}
		return z, nil
	case x.desc.IsInf():
		z.setSpecial(x.desc)
		return z, nil
	case yd.IsInf():
		z.setSpecial(yd)
		return z, nil
	}

	xneg, yneg := x.desc.negative(), yd.negative()
	var (
		mag  magnitude.Magnitude[D, L]
		desc Descriptor
	)
	switch {
	case xneg == yneg:
		mag = x.mag.Clone()
		mag.Add(y.mag)
		desc = finite(xneg)
	case x.mag.GreaterEqual(y.mag):
		mag = x.mag.Clone()
		if err := mag.Sub(y.mag); err != nil {
			return z.fail(op, y, err)
		}
		desc = finite(xneg)
	default:
		mag = y.mag.Clone()
		if err := mag.Sub(x.mag); err != nil {
			return z.fail(op, y, err)
		}
		desc = finite(yneg)
	}

	if limit := z.budget(x, y); len(mag) > limit {
		return z.exhaust(op, x, y, len(mag), limit)
	}
	z.setFinite(desc, mag)
	return z, nil
}

// Mul sets z to x · y and returns z, multiplying magnitudes through the FFT.
func (z *Bignum[D, L]) Mul(x, y *Bignum[D, L]) (*Bignum[D, L], error) {
	return z.MulUsing(x, y, magnitude.Multiplier{})
}

// MulUsing is like Mul but multiplies magnitudes with the strategy of m.
//
// The sign of a product is the XOR of the operand signs. NaN absorbs
// everything; an infinity times a non-zero value is an infinity and an
// infinity times zero is NaN.
func (z *Bignum[D, L]) MulUsing(x, y *Bignum[D, L], m magnitude.Multiplier) (*Bignum[D, L], error) {
	neg := x.desc.negative() != y.desc.negative()
	switch {
	case x.desc == NaN || y.desc == NaN:
		z.setSpecial(NaN)
		return z, nil
	case x.desc.IsInf() || y.desc.IsInf():
		if x.IsZero() || y.IsZero() {
			z.setSpecial(NaN)
		} else {
			z.setSpecial(infinity(neg))
		}
		return z, nil
	}

	limit := z.budget(x, y)
	if lx, ly := len(x.mag), len(y.mag); lx > 0 && ly > 0 && lx+ly-1 > limit {
		return z.exhaust("mul", x, y, lx+ly-1, limit)
	}
	mag, err := magnitude.Mul(x.mag, y.mag, m)
	if err != nil {
		return z.fail("mul", y, err)
	}
	if len(mag) > limit {
		return z.exhaust("mul", x, y, len(mag), limit)
	}
	z.setFinite(finite(neg), mag)
	return z, nil
}

// Quo sets z to the quotient x / y truncated toward zero and returns z.
//
// The sign of a quotient is the XOR of the operand signs. A zero divisor
// makes z a signed infinity, so Quo never fails with a division error.
// A finite value divided by an infinity is 0; an infinity divided by a
// finite value is an infinity; Inf / Inf is NaN.
func (z *Bignum[D, L]) Quo(x, y *Bignum[D, L]) (*Bignum[D, L], error) {
	var r Bignum[D, L]
	q, _, err := z.QuoRem(x, y, &r)
	return q, err
}

// QuoRem sets z to the quotient x / y truncated toward zero and r to the
// remainder x - z·y, and returns the pair. The remainder takes the sign of
// x, as with big.Int.QuoRem. When the quotient is not finite r is NaN.
// z and r must be distinct; either may alias x or y.
func (z *Bignum[D, L]) QuoRem(x, y, r *Bignum[D, L]) (*Bignum[D, L], *Bignum[D, L], error) {
	neg := x.desc.negative() != y.desc.negative()
	switch {
	case x.desc == NaN || y.desc == NaN,
		x.desc.IsInf() && y.desc.IsInf():
		z.setSpecial(NaN)
		r.setSpecial(NaN)
		return z, r, nil
	case x.desc.IsInf():
		z.setSpecial(infinity(neg))
		r.setSpecial(NaN)
		return z, r, nil
	case y.desc.IsInf():
		r.Set(x)
		z.setFinite(Positive, z.mag[:0])
		return z, r, nil
	}

	switch {
	case y.IsZero():
		z.setSpecial(infinity(neg))
		r.setSpecial(NaN)
		return z, r, nil
	case y.mag.IsOne():
		quo := x.mag.Clone()
		r.setFinite(Positive, r.mag[:0])
		z.setFinite(finite(neg), quo)
		return z, r, nil
	case x.IsZero(), x.mag.Less(y.mag):
		rem := x.mag.Clone()
		rdesc := x.desc
		z.setFinite(Positive, z.mag[:0])
		r.setFinite(rdesc, rem)
		return z, r, nil
	}

	xneg := x.desc.negative()
	quo := x.mag.Clone()
	rem, err := quo.DivMod(y.mag)
	if err != nil {
		_, err = z.fail("div", y, err)
		r.setSpecial(NaN)
		return z, r, err
	}
	if limit := z.budget(x, y); len(quo) > limit {
		_, err = z.exhaust("div", x, y, len(quo), limit)
		r.setSpecial(NaN)
		return z, r, err
	}
	z.setFinite(finite(neg), quo)
	r.setFinite(finite(xneg), rem)
	return z, r, nil
}

// budget returns the digit budget for a result stored in z: the first
// non-zero budget of z, x and y, or DefaultMaxDigits.
func (z *Bignum[D, L]) budget(x, y *Bignum[D, L]) int {
	for _, n := range []int{z.maxDigits, x.maxDigits, y.maxDigits} {
		if n > 0 {
			return n
		}
	}
	return DefaultMaxDigits
}

// exhaust marks z as an infinity signed like y and reports that the result
// of x op y needed requested digits against a budget of limit.
func (z *Bignum[D, L]) exhaust(op string, x, y *Bignum[D, L], requested, limit int) (*Bignum[D, L], error) {
	held := max(len(x.mag), len(y.mag))
	z.setSpecial(infinity(y.desc.negative()))
	return z, apperrors.NewArithmeticError(op, apperrors.KindResourceExhausted, apperrors.MemoryError{
		Requested: uint64(requested),
		Available: uint64(held),
		Limit:     uint64(limit),
	})
}

// fail marks z as an infinity signed like other and returns err, wrapped in
// an ArithmeticError when it is not one already.
func (z *Bignum[D, L]) fail(op string, other *Bignum[D, L], err error) (*Bignum[D, L], error) {
	z.setSpecial(infinity(other.desc.negative()))
	var arithErr apperrors.ArithmeticError
	if errors.As(err, &arithErr) {
		return z, err
	}
	return z, apperrors.NewArithmeticError(op, apperrors.KindResourceExhausted, err)
}
