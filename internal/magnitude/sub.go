package magnitude

import (
	"github.com/agbru/bncalc/internal/digits"
	apperrors "github.com/agbru/bncalc/internal/errors"
)

// Sub subtracts smaller from m in place and drops the most-significant
// zeros left behind. It fails with ErrUnderflow, leaving m untouched, when
// smaller is greater than m. smaller may alias m.
func (m *Magnitude[D, L]) Sub(smaller Magnitude[D, L]) error {
	if m.Less(smaller) {
		return apperrors.NewArithmeticError("sub", apperrors.KindUnderflow, apperrors.ErrUnderflow)
	}
	radix := digits.Radix[D, L]()
	out := *m
	var borrow uint64
	for i := range out {
		if i >= len(smaller) && borrow == 0 {
			break
		}
		sub := borrow
		if i < len(smaller) {
			sub += uint64(smaller[i])
		}
		cur := uint64(out[i])
		if cur < sub {
			out[i] = D(cur + radix - sub)
			borrow = 1
		} else {
			out[i] = D(cur - sub)
			borrow = 0
		}
	}
	*m = out.Trim()
	return nil
}
