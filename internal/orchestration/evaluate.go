package orchestration

import (
	"fmt"

	"github.com/agbru/bncalc/internal/bignum"
	"github.com/agbru/bncalc/internal/digits"
	apperrors "github.com/agbru/bncalc/internal/errors"
	"github.com/agbru/bncalc/internal/magnitude"
)

// Evaluator applies the binary operators of the calculator to bignums.
type Evaluator[D digits.Digit, L digits.Limits[D]] struct {
	Multiplier magnitude.Multiplier
	// OnFFTFallback, when set, is called for every FFT multiplication whose
	// operands fall outside the float64 precision window.
	OnFFTFallback func()
}

// Eval returns x op y as a new value. op is one of "+", "-", "*" (or "x"),
// "/", "%" and "cmp"; "cmp" yields -1, 0 or 1. The operands are not
// modified.
func (e Evaluator[D, L]) Eval(op string, x, y *bignum.Bignum[D, L]) (*bignum.Bignum[D, L], error) {
	z := new(bignum.Bignum[D, L])
	switch op {
	case "+":
		return z.Add(x, y)
	case "-":
		return z.Sub(x, y)
	case "*", "x":
		if e.OnFFTFallback != nil && e.fallsBack(x, y) {
			e.OnFFTFallback()
		}
		return z.MulUsing(x, y, e.Multiplier)
	case "/":
		return z.Quo(x, y)
	case "%":
		_, r, err := z.QuoRem(x, y, new(bignum.Bignum[D, L]))
		return r, err
	case "cmp":
		return bignum.FromInt64[D, L](int64(x.Cmp(y))), nil
	}
	return nil, apperrors.ValidationError{Field: "operator", Message: fmt.Sprintf("unknown operator %q", op)}
}

func (e Evaluator[D, L]) fallsBack(x, y *bignum.Bignum[D, L]) bool {
	lx, ly := x.Len(), y.Len()
	if lx == 0 || ly == 0 || !x.IsComputable() || !y.IsComputable() {
		return false
	}
	return e.Multiplier.Resolve(lx, ly) == magnitude.FFT &&
		!magnitude.FFTSafe(digits.Radix[D, L](), lx, ly)
}
