package bignum

import (
	"fmt"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/agbru/bncalc/internal/digits"
	apperrors "github.com/agbru/bncalc/internal/errors"
	"github.com/agbru/bncalc/internal/magnitude"
)

// codecFields is the length of the encoded array:
// [descriptor, radix, digits least significant first].
const codecFields = 3

// decodePrealloc caps the capacity reserved from an encoded digit count.
const decodePrealloc = 4096

var (
	_ msgpack.CustomEncoder = (*Bignum[uint8, digits.Base10])(nil)
	_ msgpack.CustomDecoder = (*Bignum[uint8, digits.Base10])(nil)
)

// EncodeMsgpack implements msgpack.CustomEncoder.
func (z *Bignum[D, L]) EncodeMsgpack(enc *msgpack.Encoder) error {
	if err := enc.EncodeArrayLen(codecFields); err != nil {
		return err
	}
	if err := enc.EncodeInt8(int8(z.desc)); err != nil {
		return err
	}
	if err := enc.EncodeUint64(z.Radix()); err != nil {
		return err
	}
	if err := enc.EncodeArrayLen(len(z.mag)); err != nil {
		return err
	}
	for _, d := range z.mag {
		if err := enc.EncodeUint64(uint64(d)); err != nil {
			return err
		}
	}
	return nil
}

// DecodeMsgpack implements msgpack.CustomDecoder. The radix must match the
// configuration of z, and the decoded value must satisfy the same
// invariants as one built by New: digits in range, no most significant
// zero and no digits on a non-computable descriptor. The digit budget of z
// is kept, and an encoded digit count above it is rejected with
// ErrResourceExhausted before any digit is read.
func (z *Bignum[D, L]) DecodeMsgpack(dec *msgpack.Decoder) error {
	n, err := dec.DecodeArrayLen()
	if err != nil {
		return err
	}
	if n != codecFields {
		return decodeError(fmt.Errorf("%w: expected %d fields, got %d", apperrors.ErrInvalidDescriptor, codecFields, n))
	}

	raw, err := dec.DecodeInt8()
	if err != nil {
		return err
	}
	desc := Descriptor(raw)
	if !desc.Valid() {
		return decodeError(fmt.Errorf("%w: %d", apperrors.ErrInvalidDescriptor, raw))
	}

	radix, err := dec.DecodeUint64()
	if err != nil {
		return err
	}
	if want := z.Radix(); radix != want {
		return decodeError(fmt.Errorf("%w: encoded radix %d, want %d", apperrors.ErrRadixMismatch, radix, want))
	}

	count, err := dec.DecodeArrayLen()
	if err != nil {
		return err
	}
	if count > 0 && !desc.IsComputable() {
		return decodeError(fmt.Errorf("%w: %s carries %d digits", apperrors.ErrInvalidDescriptor, desc, count))
	}
	limit := z.maxDigits
	if limit <= 0 {
		limit = DefaultMaxDigits
	}
	if count > limit {
		return apperrors.NewArithmeticError("decode", apperrors.KindResourceExhausted, apperrors.MemoryError{
			Requested: uint64(count),
			Limit:     uint64(limit),
		})
	}
	mag := make(magnitude.Magnitude[D, L], 0, min(max(count, 0), decodePrealloc))
	for i := 0; i < count; i++ {
		v, err := dec.DecodeUint64()
		if err != nil {
			return err
		}
		d, err := digits.FromUint64[D, L](v)
		if err != nil {
			return decodeError(fmt.Errorf("digit %d: %w", i, err))
		}
		mag = append(mag, d)
	}
	if count > 0 && mag[count-1] == 0 {
		return decodeError(fmt.Errorf("%w: most significant digit is zero", apperrors.ErrInvalidDigit))
	}
	if count == 0 && desc == Negative {
		return decodeError(fmt.Errorf("%w: negative zero", apperrors.ErrInvalidDescriptor))
	}

	if desc.IsComputable() {
		z.setFinite(desc, mag)
	} else {
		z.setSpecial(desc)
	}
	return nil
}

// MarshalBinary implements encoding.BinaryMarshaler using the msgpack form.
func (z *Bignum[D, L]) MarshalBinary() ([]byte, error) {
	return msgpack.Marshal(z)
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
func (z *Bignum[D, L]) UnmarshalBinary(data []byte) error {
	return msgpack.Unmarshal(data, z)
}

func decodeError(err error) error {
	return apperrors.NewArithmeticError("decode", apperrors.KindInvalidInput, err)
}
