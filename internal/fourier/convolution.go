package fourier

import (
	"math/bits"
	"math/cmplx"

	"github.com/agbru/bncalc/internal/digits"
)

// precisionBits is the share of the 53-bit float64 mantissa a convolution
// coefficient may use, leaving 5 bits for the accumulated rounding error of
// the forward and inverse transforms.
const precisionBits = 48

// maxLengthBits caps the lengths MaxSafeLength may report.
const maxLengthBits = 40

// ConvolutionTable packs a into the real parts and b into the imaginary
// parts of a zero-padded complex signal of length
// NextPowerOfTwo(len(a)+len(b)). Both inputs are least-significant first.
func ConvolutionTable[D digits.Digit](a, b []D) []complex128 {
	n := NextPowerOfTwo(len(a) + len(b))
	table := make([]complex128, n)
	for i := range table {
		var re, im float64
		if i < len(a) {
			re = float64(a[i])
		}
		if i < len(b) {
			im = float64(b[i])
		}
		table[i] = complex(re, im)
	}
	return table
}

// Convolve turns a table built by ConvolutionTable into the spectrum of the
// product of its two packed sequences, in place. Running IFFT on the result
// yields the cyclic convolution of the sequences in the real parts.
//
// With Z the transform of a + i·b, conj(Z[-k]) = A[k] - i·B[k], so
// Z[k] + conj(Z[-k]) = 2A[k] and Z[k] - conj(Z[-k]) = 2i·B[k]; their product
// is 4i·A[k]B[k], which the final rotation and scaling turn into A[k]B[k].
func Convolve(table []complex128) error {
	n := len(table)
	transform := acquireComplex(n)
	defer releaseComplex(transform)
	copy(transform, table)
	if err := FFT(transform); err != nil {
		return err
	}
	for i := range n {
		ti := transform[i]
		tc := cmplx.Conj(transform[(n-i)%n])
		x1 := ti + tc
		x2 := ti - tc
		x3 := x1 * x2
		table[i] = complex(imag(x3), -real(x3)) * 0.25
	}
	return nil
}

// SafeLength reports whether a product computed through a transform of
// length n over digits of the given radix can be rounded back to exact
// integers. A coefficient is bounded by n·(radix-1)², and the transform
// adds an error proportional to log2(n); both must fit precisionBits.
func SafeLength(radix uint64, n int) bool {
	if n <= 1 {
		return true
	}
	if radix < 2 {
		return false
	}
	lg := bits.Len(uint(n))
	return 2*bits.Len64(radix-1)+lg+bits.Len(uint(lg)) <= precisionBits
}

// MaxSafeLength returns the largest power-of-two transform length accepted
// by SafeLength for radix, or 0 if even a two-sample transform is unsafe.
func MaxSafeLength(radix uint64) int {
	best := 0
	for lg := 1; lg <= maxLengthBits; lg++ {
		if !SafeLength(radix, 1<<lg) {
			break
		}
		best = 1 << lg
	}
	return best
}
