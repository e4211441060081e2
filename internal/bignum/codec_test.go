package bignum

import (
	"errors"
	"testing"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/agbru/bncalc/internal/digits"
	apperrors "github.com/agbru/bncalc/internal/errors"
)

func TestBinaryRoundTrip(t *testing.T) {
	t.Parallel()
	for _, s := range []string{"0", "7", "-1234567890123456789", "NaN", "+INF", "-INF"} {
		t.Run(s, func(t *testing.T) {
			t.Parallel()
			data, err := p(s).MarshalBinary()
			if err != nil {
				t.Fatal(err)
			}
			got := new(dec)
			if err := got.UnmarshalBinary(data); err != nil {
				t.Fatal(err)
			}
			if got.String() != s {
				t.Errorf("round trip of %s = %s", s, got)
			}
		})
	}
}

func TestMsgpackEmbedded(t *testing.T) {
	t.Parallel()
	type record struct {
		Name  string
		Value *med
	}
	in := record{Name: "x", Value: MustParse[uint16, digits.MediumPrecision]("-1:2:3")}
	data, err := msgpack.Marshal(in)
	if err != nil {
		t.Fatal(err)
	}
	var out record
	if err := msgpack.Unmarshal(data, &out); err != nil {
		t.Fatal(err)
	}
	if out.Name != "x" || !out.Value.Equal(in.Value) {
		t.Errorf("got %+v, want %+v", out, in)
	}
}

func TestDecodeValidation(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		payload any
		want    error
	}{
		{"radix mismatch", []any{int8(Positive), uint64(16), []uint64{1}}, apperrors.ErrRadixMismatch},
		{"digit out of range", []any{int8(Positive), uint64(10), []uint64{12}}, apperrors.ErrInvalidDigit},
		{"leading zero", []any{int8(Positive), uint64(10), []uint64{1, 0}}, apperrors.ErrInvalidDigit},
		{"bad descriptor", []any{int8(7), uint64(10), []uint64{}}, apperrors.ErrInvalidDescriptor},
		{"digits on nan", []any{int8(NaN), uint64(10), []uint64{3}}, apperrors.ErrInvalidDescriptor},
		{"negative zero", []any{int8(Negative), uint64(10), []uint64{}}, apperrors.ErrInvalidDescriptor},
		{"short array", []any{int8(Positive), uint64(10)}, apperrors.ErrInvalidDescriptor},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			data, err := msgpack.Marshal(tt.payload)
			if err != nil {
				t.Fatal(err)
			}
			err = new(dec).UnmarshalBinary(data)
			if !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestDecodeAcrossConfigurations(t *testing.T) {
	t.Parallel()
	data, err := New[uint8, digits.Base16](Positive, []uint8{1, 15}).MarshalBinary()
	if err != nil {
		t.Fatal(err)
	}
	var h hex
	if err := h.UnmarshalBinary(data); err != nil || h.String() != "1f" {
		t.Errorf("hex decode = %s, %v", &h, err)
	}
	if err := new(dec).UnmarshalBinary(data); !errors.Is(err, apperrors.ErrRadixMismatch) {
		t.Errorf("decoding base 16 into base 10: %v", err)
	}
}

func TestDecodeRejectsOversizedCount(t *testing.T) {
	t.Parallel()
	// array(3), descriptor 0, radix 2^32, array32 header claiming 2^31-16 digits.
	data := []byte{0x93, 0x00, 0xcf, 0, 0, 0, 1, 0, 0, 0, 0, 0xdd, 0x7f, 0xff, 0xff, 0xf0}

	tests := []struct {
		name      string
		maxDigits int
		limit     uint64
	}{
		{"explicit budget", 10, 10},
		{"default budget", 0, DefaultMaxDigits},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			z := Zero[uint32, digits.HighPrecision](WithMaxDigits(tt.maxDigits))
			err := z.UnmarshalBinary(data)
			if !errors.Is(err, apperrors.ErrResourceExhausted) {
				t.Fatalf("err = %v, want ErrResourceExhausted", err)
			}
			var memErr apperrors.MemoryError
			if !errors.As(err, &memErr) || memErr.Limit != tt.limit || memErr.Requested != 0x7ffffff0 {
				t.Errorf("MemoryError = %+v", memErr)
			}
			if !z.IsZero() {
				t.Errorf("receiver changed to %s", z)
			}
		})
	}
}

func TestDecodeWithinBudget(t *testing.T) {
	t.Parallel()
	data, err := p("123").MarshalBinary()
	if err != nil {
		t.Fatal(err)
	}
	if err := Zero[uint8, digits.Base10](WithMaxDigits(2)).UnmarshalBinary(data); !errors.Is(err, apperrors.ErrResourceExhausted) {
		t.Errorf("3 digits into a budget of 2: %v", err)
	}
	z := Zero[uint8, digits.Base10](WithMaxDigits(3))
	if err := z.UnmarshalBinary(data); err != nil || z.String() != "123" {
		t.Errorf("3 digits into a budget of 3 = %s, %v", z, err)
	}
}
