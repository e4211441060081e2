// Package fourier implements the complex transforms used to multiply
// magnitudes by convolution.
//
// The forward transform is a recursive radix-2 Cooley-Tukey FFT operating
// in place on a power-of-two length slice; the inverse uses the conjugate
// trick. Two real digit sequences are packed into one complex signal (real
// part and imaginary part) so that their product spectrum is obtained with a
// single forward transform, see Convolve.
package fourier

import (
	"errors"
	"math"
	"math/bits"
	"math/cmplx"
)

// ErrNotPowerOfTwo is returned when a transform is asked to work on a slice
// whose length is not a power of two.
var ErrNotPowerOfTwo = errors.New("fourier: length is not a power of two")

// IsPowerOfTwo reports whether n is a positive power of two.
func IsPowerOfTwo(n int) bool {
	return n > 0 && n&(n-1) == 0
}

// NextPowerOfTwo returns the smallest power of two >= n. It returns 1 for
// n <= 1.
func NextPowerOfTwo(n int) int {
	if n <= 1 {
		return 1
	}
	return 1 << bits.Len(uint(n-1))
}

// FFT replaces x with its discrete Fourier transform, using twiddle factors
// exp(-2πik/n). len(x) must be a power of two.
func FFT(x []complex128) error {
	if !IsPowerOfTwo(len(x)) {
		return ErrNotPowerOfTwo
	}
	scratch := acquireComplex(len(x))
	defer releaseComplex(scratch)
	fft(x, scratch)
	return nil
}

// fft splits x into its even and odd samples, transforms each half
// recursively and recombines them with the butterfly. scratch must be at
// least as long as x; it only holds the partition while it is copied back.
func fft(x, scratch []complex128) {
	n := len(x)
	if n == 1 {
		return
	}
	half := n / 2
	for i := range half {
		scratch[i] = x[2*i]
		scratch[half+i] = x[2*i+1]
	}
	copy(x, scratch[:n])

	even, odd := x[:half], x[half:]
	fft(even, scratch[:half])
	fft(odd, scratch[half:n])

	step := -2 * math.Pi / float64(n)
	for k := range half {
		s, c := math.Sincos(step * float64(k))
		t := complex(c, s) * odd[k]
		e := even[k]
		even[k] = e + t
		odd[k] = e - t
	}
}

// IFFT replaces x with its inverse discrete Fourier transform: conjugate,
// forward transform, conjugate, then scale by 1/n.
func IFFT(x []complex128) error {
	if !IsPowerOfTwo(len(x)) {
		return ErrNotPowerOfTwo
	}
	for i, v := range x {
		x[i] = cmplx.Conj(v)
	}
	if err := FFT(x); err != nil {
		return err
	}
	scale := complex(1/float64(len(x)), 0)
	for i, v := range x {
		x[i] = cmplx.Conj(v) * scale
	}
	return nil
}
