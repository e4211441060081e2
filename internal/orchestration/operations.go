package orchestration

import (
	"context"
	"fmt"
	"math/big"

	"github.com/agbru/bncalc/internal/bignum"
	"github.com/agbru/bncalc/internal/digits"
	apperrors "github.com/agbru/bncalc/internal/errors"
)

// BinaryOperation evaluates X Op Y with an Evaluator. It implements
// Operation.
type BinaryOperation[D digits.Digit, L digits.Limits[D]] struct {
	Label     string
	Op        string
	X, Y      *bignum.Bignum[D, L]
	Evaluator Evaluator[D, L]
}

// Name returns the label, or a description of the algorithm when unset.
func (o BinaryOperation[D, L]) Name() string {
	if o.Label != "" {
		return o.Label
	}
	return fmt.Sprintf("bignum (%s)", o.Evaluator.Multiplier.Algorithm)
}

// Execute evaluates the operation on private copies of the operands. The
// bignum routines do not poll ctx, so the evaluation runs in its own
// goroutine and Execute returns as soon as ctx is done.
func (o BinaryOperation[D, L]) Execute(ctx context.Context, report ProgressFunc) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	x, y := o.X.Clone(), o.Y.Clone()

	type outcome struct {
		value string
		err   error
	}
	done := make(chan outcome, 1)
	go func() {
		z, err := o.Evaluator.Eval(o.Op, x, y)
		if err != nil {
			done <- outcome{err: err}
			return
		}
		done <- outcome{value: z.String()}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res := <-done:
		if res.err == nil && report != nil {
			report(1)
		}
		return res.value, res.err
	}
}

// ReferenceOperation evaluates X Op Y with math/big. Verify mode runs it
// next to the bignum algorithms as an independent oracle. Only finite
// operands and the operators +, -, * and x are supported.
type ReferenceOperation[D digits.Digit, L digits.Limits[D]] struct {
	Op   string
	X, Y *bignum.Bignum[D, L]
}

// Name identifies the reference.
func (ReferenceOperation[D, L]) Name() string { return "math/big" }

// Execute computes the result and renders it in the notation of D and L.
func (o ReferenceOperation[D, L]) Execute(ctx context.Context, report ProgressFunc) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if !o.X.IsComputable() || !o.Y.IsComputable() {
		return "", apperrors.ValidationError{Field: "operand", Message: "math/big only evaluates finite operands"}
	}
	x, y := ToBig(o.X), ToBig(o.Y)
	var z big.Int
	switch o.Op {
	case "+":
		z.Add(x, y)
	case "-":
		z.Sub(x, y)
	case "*", "x":
		z.Mul(x, y)
	default:
		return "", apperrors.ValidationError{Field: "operator", Message: fmt.Sprintf("math/big reference does not support %q", o.Op)}
	}
	if report != nil {
		report(1)
	}
	return FromBig[D, L](&z).String(), nil
}

// ToBig converts a finite bignum to a big.Int.
func ToBig[D digits.Digit, L digits.Limits[D]](z *bignum.Bignum[D, L]) *big.Int {
	radix := new(big.Int).SetUint64(digits.Radix[D, L]())
	out := new(big.Int)
	var d big.Int
	for _, digit := range z.Digits() {
		out.Mul(out, radix)
		out.Add(out, d.SetUint64(uint64(digit)))
	}
	if z.IsNegative() {
		out.Neg(out)
	}
	return out
}

// FromBig converts v to a bignum of the configuration D, L.
func FromBig[D digits.Digit, L digits.Limits[D]](v *big.Int) *bignum.Bignum[D, L] {
	desc := bignum.Positive
	if v.Sign() < 0 {
		desc = bignum.Negative
	}
	radix := new(big.Int).SetUint64(digits.Radix[D, L]())
	n := new(big.Int).Abs(v)
	var lsf []D
	var rem big.Int
	for n.Sign() > 0 {
		n.QuoRem(n, radix, &rem)
		lsf = append(lsf, D(rem.Uint64()))
	}
	msf := make([]D, len(lsf))
	for i, d := range lsf {
		msf[len(lsf)-1-i] = d
	}
	return bignum.New[D, L](desc, msf)
}
