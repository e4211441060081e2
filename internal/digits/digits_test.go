package digits

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	apperrors "github.com/agbru/bncalc/internal/errors"
)

type badMin struct{}

func (badMin) Min() uint8 { return 1 }
func (badMin) Max() uint8 { return 9 }

type unary struct{}

func (unary) Min() uint8 { return 0 }
func (unary) Max() uint8 { return 0 }

func TestRadix(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		got  uint64
		want uint64
	}{
		{"base2", Radix[uint8, Base2](), 2},
		{"base8", Radix[uint8, Base8](), 8},
		{"base10", Radix[uint8, Base10](), 10},
		{"base16", Radix[uint8, Base16](), 16},
		{"base256", Radix[uint16, Base256](), 256},
		{"lowp", Radix[uint8, LowPrecision](), 256},
		{"medp", Radix[uint16, MediumPrecision](), 65536},
		{"highp", Radix[uint32, HighPrecision](), MaxRadix},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if tt.got != tt.want {
				t.Errorf("Radix = %d, want %d", tt.got, tt.want)
			}
		})
	}
}

func TestDigitBounds(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		min, max uint64
		wantMax  uint64
		wantMin  uint64
	}{
		{"base10", MinOf[uint8, Base10](), MaxOf[uint8, Base10](), 9, 0},
		{"highp", MinOf[uint32, HighPrecision](), MaxOf[uint32, HighPrecision](), MaxRadix - 1, 0},
		{"badMin", MinOf[uint8, badMin](), MaxOf[uint8, badMin](), 9, 1},
	}
	for _, tt := range tests {
		if tt.min != tt.wantMin || tt.max != tt.wantMax {
			t.Errorf("%s: bounds = [%d, %d], want [%d, %d]", tt.name, tt.min, tt.max, tt.wantMin, tt.wantMax)
		}
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()
	if err := Validate[uint32, HighPrecision](); err != nil {
		t.Errorf("HighPrecision should validate: %v", err)
	}
	if err := Validate[uint8, Base10](); err != nil {
		t.Errorf("Base10 should validate: %v", err)
	}

	var cfgErr apperrors.ConfigError
	if err := Validate[uint8, badMin](); !errors.As(err, &cfgErr) {
		t.Errorf("non-zero minimum should be rejected, got %v", err)
	}
	if err := Validate[uint8, unary](); !errors.As(err, &cfgErr) {
		t.Errorf("radix 1 should be rejected, got %v", err)
	}
}

func TestFromUint64(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		conv    func(uint64) (uint64, error)
		in      uint64
		wantErr bool
	}{
		{"decimal in range", wrap(FromUint64[uint8, Base10]), 9, false},
		{"decimal above max", wrap(FromUint64[uint8, Base10]), 10, true},
		{"byte overflow", wrap(FromUint64[uint8, LowPrecision]), 256, true},
		{"base256 in 16-bit cell", wrap(FromUint64[uint16, Base256]), 255, false},
		{"base256 above max", wrap(FromUint64[uint16, Base256]), 256, true},
		{"highp max", wrap(FromUint64[uint32, HighPrecision]), 1<<32 - 1, false},
		{"highp overflow", wrap(FromUint64[uint32, HighPrecision]), 1 << 32, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := tt.conv(tt.in)
			if tt.wantErr {
				if !errors.Is(err, apperrors.ErrInvalidDigit) {
					t.Errorf("expected ErrInvalidDigit, got %v", err)
				}
				return
			}
			if err != nil || got != tt.in {
				t.Errorf("FromUint64(%d) = %d, %v", tt.in, got, err)
			}
		})
	}
}

func wrap[D Digit](f func(uint64) (D, error)) func(uint64) (uint64, error) {
	return func(v uint64) (uint64, error) {
		d, err := f(v)
		return uint64(d), err
	}
}

func TestWidth(t *testing.T) {
	t.Parallel()
	if Width[uint8]() != 8 || Width[uint16]() != 16 || Width[uint32]() != 32 {
		t.Errorf("unexpected widths %d %d %d", Width[uint8](), Width[uint16](), Width[uint32]())
	}
}

func TestConfigurations(t *testing.T) {
	t.Parallel()
	var got []string
	for _, c := range Configurations() {
		got = append(got, c.Name)
	}
	want := []string{"base2", "base8", "base10", "base16", "lowp", "base256", "medp", "highp"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Configurations() order mismatch (-want +got):\n%s", diff)
	}

	c, ok := Lookup("medp")
	if !ok || c.Radix != 65536 || c.Width != 16 {
		t.Errorf("Lookup(medp) = %+v, %v", c, ok)
	}
	if _, ok := Lookup("base7"); ok {
		t.Error("Lookup(base7) should fail")
	}
	if len(Names()) != len(configurations) {
		t.Errorf("Names() returned %d entries", len(Names()))
	}
}
