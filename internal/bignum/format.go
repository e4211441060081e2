package bignum

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/agbru/bncalc/internal/digits"
	apperrors "github.com/agbru/bncalc/internal/errors"
	"github.com/agbru/bncalc/internal/magnitude"
)

const digitChars = "0123456789abcdefghijklmnopqrstuvwxyz"

// charRadixLimit is the largest radix written with one character per digit.
const charRadixLimit = len(digitChars)

// Text forms of the non-computable descriptors.
const (
	textNaN    = "NaN"
	textPosInf = "+INF"
	textNegInf = "-INF"
)

// String renders z in digit-list notation: an optional "-" followed by the
// digits most significant first. Radices up to 36 use one character per
// digit (0-9a-z); larger radices join the decimal digit values with ':'.
// Special values render as "NaN", "+INF" and "-INF".
func (z *Bignum[D, L]) String() string {
	switch z.desc {
	case NaN:
		return textNaN
	case PositiveInfinity:
		return textPosInf
	case NegativeInfinity:
		return textNegInf
	}
	if len(z.mag) == 0 {
		return "0"
	}

	var sb strings.Builder
	if z.desc == Negative {
		sb.WriteByte('-')
	}
	if z.Radix() <= uint64(charRadixLimit) {
		sb.Grow(len(z.mag))
		for i := len(z.mag) - 1; i >= 0; i-- {
			sb.WriteByte(digitChars[z.mag[i]])
		}
		return sb.String()
	}
	for i := len(z.mag) - 1; i >= 0; i-- {
		sb.WriteString(strconv.FormatUint(uint64(z.mag[i]), 10))
		if i > 0 {
			sb.WriteByte(':')
		}
	}
	return sb.String()
}

// Format implements fmt.Formatter. The verbs s, v and q print String with
// the usual width and flag handling.
func (z *Bignum[D, L]) Format(s fmt.State, verb rune) {
	switch verb {
	case 's', 'v', 'q':
		fmt.Fprintf(s, fmt.FormatString(s, verb), z.String())
	default:
		fmt.Fprintf(s, "%%!%c(bignum=%s)", verb, z.String())
	}
}

// Parse reads a value written in the digit-list notation of String for
// configuration L. A leading "+" is accepted on finite values and letters
// are case-insensitive. Parse does not convert between bases: every
// character (or ':'-separated field) is one digit of L.
func Parse[D digits.Digit, L digits.Limits[D]](s string, opts ...Option) (*Bignum[D, L], error) {
	s = strings.TrimSpace(s)
	switch {
	case strings.EqualFold(s, textNaN):
		return New[D, L](NaN, nil, opts...), nil
	case strings.EqualFold(s, textPosInf), strings.EqualFold(s, "INF"):
		return New[D, L](PositiveInfinity, nil, opts...), nil
	case strings.EqualFold(s, textNegInf):
		return New[D, L](NegativeInfinity, nil, opts...), nil
	}

	desc := Positive
	body := s
	switch {
	case strings.HasPrefix(body, "-"):
		desc, body = Negative, body[1:]
	case strings.HasPrefix(body, "+"):
		body = body[1:]
	}
	if body == "" {
		return nil, parseError(s, "no digits")
	}

	var msf []D
	if digits.Radix[D, L]() <= uint64(charRadixLimit) {
		msf = make([]D, 0, len(body))
		for i := 0; i < len(body); i++ {
			v := strings.IndexByte(digitChars, lower(body[i]))
			if v < 0 {
				return nil, parseError(s, fmt.Sprintf("unexpected character %q", body[i]))
			}
			d, err := digits.FromUint64[D, L](uint64(v))
			if err != nil {
				return nil, apperrors.NewArithmeticError("parse", apperrors.KindInvalidInput, err)
			}
			msf = append(msf, d)
		}
	} else {
		fields := strings.Split(body, ":")
		msf = make([]D, 0, len(fields))
		for _, f := range fields {
			v, err := strconv.ParseUint(f, 10, 64)
			if err != nil {
				return nil, parseError(s, fmt.Sprintf("bad digit %q", f))
			}
			d, err := digits.FromUint64[D, L](v)
			if err != nil {
				return nil, apperrors.NewArithmeticError("parse", apperrors.KindInvalidInput, err)
			}
			msf = append(msf, d)
		}
	}

	z := Zero[D, L](opts...)
	z.setFinite(desc, magnitude.FromDigits[D, L](msf...))
	return z, nil
}

// MustParse is like Parse but panics on error. It is meant for tests and
// package-level values.
func MustParse[D digits.Digit, L digits.Limits[D]](s string) *Bignum[D, L] {
	z, err := Parse[D, L](s)
	if err != nil {
		panic(err)
	}
	return z
}

func lower(c byte) byte {
	if 'A' <= c && c <= 'Z' {
		return c + 'a' - 'A'
	}
	return c
}

func parseError(input, msg string) error {
	return apperrors.NewArithmeticError("parse", apperrors.KindInvalidInput,
		fmt.Errorf("%w: %q: %s", apperrors.ErrInvalidDigit, input, msg))
}
