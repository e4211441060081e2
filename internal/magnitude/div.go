package magnitude

import (
	"github.com/agbru/bncalc/internal/digits"
	apperrors "github.com/agbru/bncalc/internal/errors"
)

// Div replaces m with the truncated quotient m / divisor. It fails with
// ErrDivisionByZero, leaving m untouched, when divisor is zero.
func (m *Magnitude[D, L]) Div(divisor Magnitude[D, L]) error {
	q, _, err := divMod(*m, divisor)
	if err != nil {
		return err
	}
	*m = q
	return nil
}

// DivMod replaces m with the truncated quotient m / divisor and returns the
// remainder.
func (m *Magnitude[D, L]) DivMod(divisor Magnitude[D, L]) (Magnitude[D, L], error) {
	q, r, err := divMod(*m, divisor)
	if err != nil {
		return nil, err
	}
	*m = q
	return r, nil
}

// divMod is binary long division by shift-and-subtract. The divisor is
// doubled, together with a matching power of two, until one more doubling
// would exceed the dividend. The multiples are then walked back down by
// halving; each one that still fits in the running remainder is subtracted
// from it and its power of two added to the quotient.
func divMod[D digits.Digit, L digits.Limits[D]](a, b Magnitude[D, L]) (quo, rem Magnitude[D, L], err error) {
	b = b.Trim()
	if len(b) == 0 {
		return nil, nil, apperrors.NewArithmeticError("div", apperrors.KindDivisionByZero, apperrors.ErrDivisionByZero)
	}
	rem = a.Clone().Trim()
	quo = Magnitude[D, L]{}
	if rem.Less(b) {
		return quo, rem, nil
	}

	mult := b.Clone()
	q := Magnitude[D, L]{1}
	next := make(Magnitude[D, L], 0, len(rem)+1)
	for {
		next = append(next[:0], mult...)
		next.shiftLeft1()
		if next.Greater(rem) {
			break
		}
		mult, next = next, mult
		q.shiftLeft1()
	}

	for {
		if rem.GreaterEqual(mult) {
			// rem >= mult, so Sub cannot underflow.
			_ = rem.Sub(mult)
			quo.Add(q)
		}
		if q.IsOne() {
			break
		}
		mult.shiftRight1()
		q.shiftRight1()
	}
	return quo, rem, nil
}
