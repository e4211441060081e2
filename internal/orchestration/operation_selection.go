package orchestration

import (
	"github.com/agbru/bncalc/internal/bignum"
	"github.com/agbru/bncalc/internal/digits"
	"github.com/agbru/bncalc/internal/magnitude"
)

// VerifyAlgorithms are the multiplication algorithms compared by verify
// mode, in presentation order.
var VerifyAlgorithms = []magnitude.Algorithm{magnitude.FFT, magnitude.Naive, magnitude.Auto}

// OperationsToRun returns the operations evaluating x op y. Without verify
// it is the single operation using eval. With verify it is one operation per
// multiplication algorithm plus, for finite operands, the math/big
// reference.
func OperationsToRun[D digits.Digit, L digits.Limits[D]](op string, x, y *bignum.Bignum[D, L], eval Evaluator[D, L], verify bool) []Operation {
	if !verify {
		return []Operation{BinaryOperation[D, L]{Op: op, X: x, Y: y, Evaluator: eval}}
	}
	ops := make([]Operation, 0, len(VerifyAlgorithms)+1)
	for _, algo := range VerifyAlgorithms {
		e := eval
		e.Multiplier.Algorithm = algo
		ops = append(ops, BinaryOperation[D, L]{Op: op, X: x, Y: y, Evaluator: e})
	}
	if x.IsComputable() && y.IsComputable() {
		ops = append(ops, ReferenceOperation[D, L]{Op: op, X: x, Y: y})
	}
	return ops
}
