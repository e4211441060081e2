package magnitude

import (
	"fmt"
	"math"
	"strings"

	"fortio.org/safecast"

	"github.com/agbru/bncalc/internal/digits"
	apperrors "github.com/agbru/bncalc/internal/errors"
	"github.com/agbru/bncalc/internal/fourier"
)

// DefaultAutoThreshold is the operand length, in digits, below which Auto
// multiplies with the schoolbook algorithm. Under a few dozen digits the
// quadratic loop beats the transform setup.
const DefaultAutoThreshold = 48

// Algorithm selects a multiplication strategy.
type Algorithm int

const (
	// FFT multiplies through a complex convolution, falling back to the
	// schoolbook algorithm outside the float64 precision window.
	FFT Algorithm = iota
	// Naive always uses the O(n·m) schoolbook algorithm.
	Naive
	// Auto uses Naive for short operands and FFT otherwise.
	Auto
)

var algorithmNames = map[Algorithm]string{
	FFT:   "fft",
	Naive: "naive",
	Auto:  "auto",
}

// String returns the lowercase name used on the command line.
func (a Algorithm) String() string {
	if name, ok := algorithmNames[a]; ok {
		return name
	}
	return fmt.Sprintf("Algorithm(%d)", int(a))
}

// ParseAlgorithm maps a name to an Algorithm. Matching is case-insensitive.
func ParseAlgorithm(s string) (Algorithm, error) {
	for a, name := range algorithmNames {
		if strings.EqualFold(s, name) {
			return a, nil
		}
	}
	return 0, apperrors.NewConfigError("unknown multiplication algorithm %q (want fft, naive or auto)", s)
}

// Multiplier bundles an algorithm with the threshold Auto switches on.
// The zero value multiplies with FFT.
type Multiplier struct {
	Algorithm Algorithm
	// Threshold is the minimum operand length for which Auto uses FFT.
	// Zero selects DefaultAutoThreshold.
	Threshold int
}

// Resolve returns the concrete algorithm (FFT or Naive) m would use for
// operands of the given lengths.
func (m Multiplier) Resolve(la, lb int) Algorithm {
	if m.Algorithm != Auto {
		return m.Algorithm
	}
	threshold := m.Threshold
	if threshold <= 0 {
		threshold = DefaultAutoThreshold
	}
	if min(la, lb) < threshold {
		return Naive
	}
	return FFT
}

// Mul multiplies a by b with the strategy of m.
//
// Parameters:
//   - a, b: The factors. Neither is modified.
//   - m: The algorithm and the digit count from which Auto switches to FFT.
//
// Returns:
//   - Magnitude[D, L]: The trimmed product.
//   - error: A transform failure from the FFT path; the naive path never fails.
func Mul[D digits.Digit, L digits.Limits[D]](a, b Magnitude[D, L], m Multiplier) (Magnitude[D, L], error) {
	if m.Resolve(len(a.Trim()), len(b.Trim())) == Naive {
		return MulNaive(a, b), nil
	}
	return MulFFT(a, b)
}

// MulNaive returns a·b computed with the schoolbook algorithm. Every partial
// product is accumulated in a uint64: (R-1)² + 2(R-1) < 2^64 for R <= 2^32.
func MulNaive[D digits.Digit, L digits.Limits[D]](a, b Magnitude[D, L]) Magnitude[D, L] {
	a, b = a.Trim(), b.Trim()
	if len(a) == 0 || len(b) == 0 {
		return Magnitude[D, L]{}
	}
	radix := digits.Radix[D, L]()
	out := make(Magnitude[D, L], len(a)+len(b))
	for j, bd := range b {
		if bd == 0 {
			continue
		}
		var carry uint64
		for i, ad := range a {
			acc := uint64(ad)*uint64(bd) + uint64(out[i+j]) + carry
			carry = acc / radix
			out[i+j] = D(acc % radix)
		}
		for k := j + len(a); carry != 0; k++ {
			acc := uint64(out[k]) + carry
			carry = acc / radix
			out[k] = D(acc % radix)
		}
	}
	return out.Trim()
}

// FFTSafe reports whether operands of lengths la and lb in the given radix
// can be multiplied exactly through the float64 transform.
func FFTSafe(radix uint64, la, lb int) bool {
	return fourier.SafeLength(radix, fourier.NextPowerOfTwo(la+lb))
}

// MulFFT returns a·b computed by convolution: the digits of a and b are
// packed into one complex table, convolved, inverse-transformed, and every
// coefficient is rounded with floor(x+0.5) and carried into digits.
//
// When the operands fall outside the precision window reported by FFTSafe
// the product is computed by MulNaive instead.
func MulFFT[D digits.Digit, L digits.Limits[D]](a, b Magnitude[D, L]) (Magnitude[D, L], error) {
	a, b = a.Trim(), b.Trim()
	if len(a) == 0 || len(b) == 0 {
		return Magnitude[D, L]{}, nil
	}
	radix := digits.Radix[D, L]()
	if !FFTSafe(radix, len(a), len(b)) {
		return MulNaive(a, b), nil
	}

	table := fourier.ConvolutionTable([]D(a), []D(b))
	if err := fourier.Convolve(table); err != nil {
		return nil, fmt.Errorf("convolve: %w", err)
	}
	if err := fourier.IFFT(table); err != nil {
		return nil, fmt.Errorf("inverse transform: %w", err)
	}

	out := make(Magnitude[D, L], 0, len(table)+1)
	var carry uint64
	for i, c := range table {
		coeff, err := safecast.Convert[uint64](math.Floor(real(c) + 0.5))
		if err != nil {
			return nil, apperrors.NewArithmeticError("mul", apperrors.KindInvalidInput,
				fmt.Errorf("%w: coefficient %d = %g", apperrors.ErrPrecision, i, real(c)))
		}
		value := coeff + carry
		out = append(out, D(value%radix))
		carry = value / radix
	}
	for carry != 0 {
		out = append(out, D(carry%radix))
		carry /= radix
	}
	return out.Trim(), nil
}
