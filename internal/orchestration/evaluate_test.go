package orchestration

import (
	"context"
	"errors"
	"math/big"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/agbru/bncalc/internal/bignum"
	"github.com/agbru/bncalc/internal/digits"
	apperrors "github.com/agbru/bncalc/internal/errors"
	"github.com/agbru/bncalc/internal/magnitude"
)

type dec = bignum.Bignum[uint8, digits.Base10]

func p(s string) *dec { return bignum.MustParse[uint8, digits.Base10](s) }

func TestEvaluatorEval(t *testing.T) {
	t.Parallel()
	tests := []struct {
		x, op, y string
		want     string
	}{
		{"1098", "+", "-99", "999"},
		{"5", "-", "12", "-7"},
		{"-12", "*", "12", "-144"},
		{"-12", "x", "-12", "144"},
		{"-17", "/", "5", "-3"},
		{"-17", "%", "5", "-2"},
		{"7", "/", "0", "+INF"},
		{"3", "cmp", "-4", "1"},
		{"NaN", "cmp", "-INF", "-1"},
		{"+INF", "+", "-INF", "NaN"},
	}
	for _, algo := range VerifyAlgorithms {
		e := Evaluator[uint8, digits.Base10]{Multiplier: magnitude.Multiplier{Algorithm: algo}}
		for _, tt := range tests {
			x, y := p(tt.x), p(tt.y)
			z, err := e.Eval(tt.op, x, y)
			if err != nil {
				t.Errorf("%s: %s %s %s: %v", algo, tt.x, tt.op, tt.y, err)
				continue
			}
			if z.String() != tt.want {
				t.Errorf("%s: %s %s %s = %s, want %s", algo, tt.x, tt.op, tt.y, z, tt.want)
			}
			if x.String() != p(tt.x).String() || y.String() != p(tt.y).String() {
				t.Errorf("operands modified by %s", tt.op)
			}
		}
	}
}

func TestEvaluatorUnknownOperator(t *testing.T) {
	t.Parallel()
	_, err := Evaluator[uint8, digits.Base10]{}.Eval("^", p("2"), p("3"))
	var valErr apperrors.ValidationError
	if !errors.As(err, &valErr) {
		t.Errorf("err = %v, want ValidationError", err)
	}
}

func TestEvaluatorFFTFallback(t *testing.T) {
	t.Parallel()
	type high = bignum.Bignum[uint32, digits.HighPrecision]
	fallbacks := 0
	e := Evaluator[uint32, digits.HighPrecision]{OnFFTFallback: func() { fallbacks++ }}

	x, y := bignum.FromUint64[uint32, digits.HighPrecision](5), bignum.FromUint64[uint32, digits.HighPrecision](7)
	z, err := e.Eval("*", x, y)
	if err != nil || z.String() != "35" {
		t.Fatalf("5 * 7 = %v, %v", z, err)
	}
	if fallbacks != 1 {
		t.Errorf("fallbacks = %d, want 1 for 32-bit digits", fallbacks)
	}

	e.Multiplier.Algorithm = magnitude.Naive
	if _, err := e.Eval("*", x, y); err != nil || fallbacks != 1 {
		t.Errorf("naive multiplication counted as fallback")
	}
	if _, err := e.Eval("*", new(high), y); err != nil || fallbacks != 1 {
		t.Errorf("multiplication by zero counted as fallback")
	}

	d := Evaluator[uint8, digits.Base10]{OnFFTFallback: func() { fallbacks++ }}
	if _, err := d.Eval("*", p("12"), p("34")); err != nil || fallbacks != 1 {
		t.Errorf("base 10 product counted as fallback")
	}
}

func TestEvaluatorDigitBudget(t *testing.T) {
	t.Parallel()
	x := bignum.MustParse[uint8, digits.Base10]("99999").SetMaxDigits(6)
	_, err := Evaluator[uint8, digits.Base10]{}.Eval("*", x, x)
	if !apperrors.IsArithmeticError(err, apperrors.KindResourceExhausted) {
		t.Errorf("err = %v, want resource exhausted", err)
	}
}

func TestBinaryOperationExecute(t *testing.T) {
	t.Parallel()
	op := BinaryOperation[uint8, digits.Base10]{Op: "*", X: p("-12"), Y: p("12")}
	if op.Name() != "bignum (fft)" {
		t.Errorf("Name() = %q", op.Name())
	}
	var reported float64
	got, err := op.Execute(context.Background(), func(v float64) { reported = v })
	if err != nil || got != "-144" || reported != 1 {
		t.Errorf("Execute = %q, %v (progress %v)", got, err, reported)
	}

	op.Label = "custom"
	if op.Name() != "custom" {
		t.Errorf("Name() with label = %q", op.Name())
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := op.Execute(ctx, nil); !errors.Is(err, context.Canceled) {
		t.Errorf("canceled Execute err = %v", err)
	}
}

func TestReferenceOperation(t *testing.T) {
	t.Parallel()
	for _, tt := range []struct{ x, op, y, want string }{
		{"123", "+", "-200", "-77"},
		{"123", "-", "-200", "323"},
		{"-99", "x", "99", "-9801"},
		{"0", "*", "-5", "0"},
	} {
		got, err := ReferenceOperation[uint8, digits.Base10]{Op: tt.op, X: p(tt.x), Y: p(tt.y)}.Execute(context.Background(), nil)
		if err != nil || got != tt.want {
			t.Errorf("%s %s %s = %q, %v; want %s", tt.x, tt.op, tt.y, got, err, tt.want)
		}
	}

	ref := ReferenceOperation[uint8, digits.Base10]{Op: "/", X: p("1"), Y: p("1")}
	if _, err := ref.Execute(context.Background(), nil); err == nil {
		t.Error("unsupported operator accepted")
	}
	ref = ReferenceOperation[uint8, digits.Base10]{Op: "+", X: p("NaN"), Y: p("1")}
	if _, err := ref.Execute(context.Background(), nil); err == nil {
		t.Error("non-finite operand accepted")
	}
}

func TestOperationsToRun(t *testing.T) {
	t.Parallel()
	e := Evaluator[uint8, digits.Base10]{}
	if ops := OperationsToRun("*", p("2"), p("3"), e, false); len(ops) != 1 {
		t.Errorf("single run has %d operations", len(ops))
	}
	ops := OperationsToRun("*", p("2"), p("3"), e, true)
	if len(ops) != len(VerifyAlgorithms)+1 {
		t.Fatalf("verify run has %d operations", len(ops))
	}
	names := map[string]bool{}
	for _, op := range ops {
		names[op.Name()] = true
	}
	for _, want := range []string{"bignum (fft)", "bignum (naive)", "bignum (auto)", "math/big"} {
		if !names[want] {
			t.Errorf("missing operation %q in %v", want, names)
		}
	}
	if ops := OperationsToRun("*", p("+INF"), p("3"), e, true); len(ops) != len(VerifyAlgorithms) {
		t.Errorf("reference included for an infinite operand")
	}
}

func TestBigConversionProperty(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("FromBig inverts ToBig in base 65536", prop.ForAll(
		func(v int64) bool {
			b := big.NewInt(v)
			z := FromBig[uint16, digits.MediumPrecision](b)
			return ToBig(z).Cmp(b) == 0
		},
		gen.Int64(),
	))

	properties.Property("verify operations agree on products", prop.ForAll(
		func(a, b int64) bool {
			x := FromBig[uint8, digits.Base10](big.NewInt(a))
			y := FromBig[uint8, digits.Base10](big.NewInt(b))
			var first string
			for i, op := range OperationsToRun("*", x, y, Evaluator[uint8, digits.Base10]{}, true) {
				got, err := op.Execute(context.Background(), nil)
				if err != nil {
					return false
				}
				if i == 0 {
					first = got
				} else if got != first {
					return false
				}
			}
			return first == new(big.Int).Mul(big.NewInt(a), big.NewInt(b)).String()
		},
		gen.Int64(), gen.Int64(),
	))

	properties.TestingRun(t)
}
