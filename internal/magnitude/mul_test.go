package magnitude

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/agbru/bncalc/internal/digits"
	apperrors "github.com/agbru/bncalc/internal/errors"
)

func TestMulConcrete(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		a, b dec
		want dec
	}{
		{"12 x 11", FromDigits[uint8, digits.Base10](1, 2), FromDigits[uint8, digits.Base10](1, 1), FromDigits[uint8, digits.Base10](1, 3, 2)},
		{"by zero", dec{4, 2}, dec{}, dec{}},
		{"zero by", dec{0}, dec{4, 2}, dec{}},
		{"by one", dec{8, 9, 0, 1}, dec{1}, dec{8, 9, 0, 1}},
		{"99 x 99", dec{9, 9}, dec{9, 9}, dec{1, 0, 8, 9}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			naive := MulNaive(tt.a, tt.b)
			if diff := cmp.Diff(tt.want, naive); diff != "" {
				t.Errorf("MulNaive mismatch (-want +got):\n%s", diff)
			}
			fft, err := MulFFT(tt.a, tt.b)
			if err != nil {
				t.Fatalf("MulFFT: %v", err)
			}
			if diff := cmp.Diff(tt.want, fft); diff != "" {
				t.Errorf("MulFFT mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestMulFFTOperandsUntouched(t *testing.T) {
	t.Parallel()
	a := dec{3, 2, 1}
	if _, err := MulFFT(a, a); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(dec{3, 2, 1}, a); diff != "" {
		t.Errorf("operand modified:\n%s", diff)
	}
}

func TestMulHighPrecisionFallsBack(t *testing.T) {
	t.Parallel()
	if FFTSafe(digits.Radix[uint32, digits.HighPrecision](), 1, 1) {
		t.Fatal("32-bit digits should be outside the float64 window")
	}
	a := high{0xFFFFFFFF, 0xFFFFFFFF}
	b := high{0xFFFFFFFF}
	got, err := MulFFT(a, b)
	if err != nil {
		t.Fatal(err)
	}
	want := MulNaive(a, b)
	if toBig(got).Cmp(toBig(want)) != 0 {
		t.Errorf("MulFFT = %v, want %v", got, want)
	}
	expected := toBig(a)
	expected.Mul(expected, toBig(b))
	if toBig(got).Cmp(expected) != 0 {
		t.Errorf("product = %s, want %s", toBig(got), expected)
	}
}

func TestMulLargeDecimal(t *testing.T) {
	t.Parallel()
	a := make(dec, 3000)
	b := make(dec, 2000)
	for i := range a {
		a[i] = uint8((i*7 + 3) % 10)
	}
	for i := range b {
		b[i] = uint8((i*3 + 1) % 10)
	}
	a[len(a)-1], b[len(b)-1] = 9, 9

	fft, err := MulFFT(a, b)
	if err != nil {
		t.Fatal(err)
	}
	expected := toBig(a)
	expected.Mul(expected, toBig(b))
	if toBig(fft).Cmp(expected) != 0 {
		t.Error("MulFFT disagrees with math/big on 3000x2000 digits")
	}
	if diff := cmp.Diff(MulNaive(a, b), fft); diff != "" {
		t.Errorf("MulFFT and MulNaive disagree:\n%s", diff)
	}
}

func TestParseAlgorithm(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in      string
		want    Algorithm
		wantErr bool
	}{
		{"fft", FFT, false},
		{"NAIVE", Naive, false},
		{"Auto", Auto, false},
		{"karatsuba", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseAlgorithm(tt.in)
		if tt.wantErr {
			var cfgErr apperrors.ConfigError
			if !errors.As(err, &cfgErr) {
				t.Errorf("ParseAlgorithm(%q) error = %v, want ConfigError", tt.in, err)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("ParseAlgorithm(%q) = %v, %v", tt.in, got, err)
		}
		if got.String() != tt.want.String() {
			t.Errorf("String() = %q", got.String())
		}
	}
	if s := Algorithm(9).String(); s != "Algorithm(9)" {
		t.Errorf("unknown algorithm String() = %q", s)
	}
}

func TestMultiplierResolve(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name   string
		m      Multiplier
		la, lb int
		want   Algorithm
	}{
		{"zero value is fft", Multiplier{}, 1, 1, FFT},
		{"naive stays naive", Multiplier{Algorithm: Naive}, 1000, 1000, Naive},
		{"auto short", Multiplier{Algorithm: Auto}, 10, 1000, Naive},
		{"auto long", Multiplier{Algorithm: Auto}, 100, 1000, FFT},
		{"auto custom threshold", Multiplier{Algorithm: Auto, Threshold: 5}, 5, 5, FFT},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.m.Resolve(tt.la, tt.lb); got != tt.want {
				t.Errorf("Resolve(%d, %d) = %v, want %v", tt.la, tt.lb, got, tt.want)
			}
		})
	}

	got, err := Mul(dec{2, 1}, dec{1, 1}, Multiplier{Algorithm: Auto})
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(dec{2, 3, 1}, got); diff != "" {
		t.Errorf("Mul mismatch:\n%s", diff)
	}
}

func TestDivConcrete(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		a, b     dec
		quo, rem dec
	}{
		{"100 / 7", FromDigits[uint8, digits.Base10](1, 0, 0), dec{7}, dec{4, 1}, dec{2}},
		{"smaller dividend", dec{3}, dec{7}, dec{}, dec{3}},
		{"equal", dec{5, 4}, dec{5, 4}, dec{1}, dec{}},
		{"by one", dec{8, 9, 0, 1}, dec{1}, dec{8, 9, 0, 1}, dec{}},
		{"exact", dec{0, 0, 0, 1}, dec{5, 2}, dec{0, 4}, dec{}},
		{"zero dividend", dec{}, dec{3}, dec{}, dec{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			q := tt.a.Clone()
			rem, err := q.DivMod(tt.b)
			if err != nil {
				t.Fatal(err)
			}
			if toBig(q).Cmp(toBig(tt.quo)) != 0 || toBig(rem).Cmp(toBig(tt.rem)) != 0 {
				t.Errorf("%v / %v = %v rem %v, want %v rem %v", tt.a, tt.b, q, rem, tt.quo, tt.rem)
			}
			d := tt.a.Clone()
			if err := d.Div(tt.b); err != nil {
				t.Fatal(err)
			}
			if toBig(d).Cmp(toBig(tt.quo)) != 0 {
				t.Errorf("Div = %v, want %v", d, tt.quo)
			}
		})
	}
}

func TestDivByZero(t *testing.T) {
	t.Parallel()
	m := dec{5}
	for _, divisor := range []dec{{}, {0}, nil} {
		err := m.Div(divisor)
		if !errors.Is(err, apperrors.ErrDivisionByZero) {
			t.Errorf("Div(%v) error = %v, want ErrDivisionByZero", divisor, err)
		}
		if _, err := m.DivMod(divisor); !apperrors.IsArithmeticError(err, apperrors.KindDivisionByZero) {
			t.Errorf("DivMod(%v) error = %v", divisor, err)
		}
	}
	if diff := cmp.Diff(dec{5}, m); diff != "" {
		t.Errorf("receiver modified:\n%s", diff)
	}
}
