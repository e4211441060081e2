package config

import (
	"math"

	"github.com/agbru/bncalc/internal/bignum"
	"github.com/agbru/bncalc/internal/digits"
	"github.com/agbru/bncalc/internal/magnitude"
)

// Resolution chain for FFTThreshold and MaxDigits, highest first:
//   1. --fft-threshold, --max-digits
//   2. BNCALC_FFT_THRESHOLD, BNCALC_MAX_DIGITS
//   3. the --config profile
//   4. the estimates below

// ApplyAdaptiveThresholds fills FFTThreshold and MaxDigits when they are
// still zero, using estimates for the configured base.
func ApplyAdaptiveThresholds(cfg AppConfig) AppConfig {
	conf, ok := digits.Lookup(cfg.Base)
	if !ok {
		return cfg
	}
	if cfg.FFTThreshold == 0 {
		cfg.FFTThreshold = EstimateFFTThreshold(conf.Radix)
	}
	if cfg.MaxDigits == 0 {
		cfg.MaxDigits = EstimateMaxDigits(conf.Width)
	}
	return cfg
}

// EstimateFFTThreshold returns the operand length from which the auto
// algorithm should prefer FFT for the given radix. Wide digits leave less
// room in the float64 mantissa, so the transform pays off later or never.
func EstimateFFTThreshold(radix uint64) int {
	switch {
	case radix <= 16:
		return 2 * magnitude.DefaultAutoThreshold
	case radix <= 1<<8:
		return magnitude.DefaultAutoThreshold
	case radix <= 1<<16:
		return magnitude.DefaultAutoThreshold / 2
	default:
		// 32-bit digits never fit the FFT precision window.
		return math.MaxInt32
	}
}

// EstimateMaxDigits scales the default digit budget so that results of
// every width occupy roughly the same memory as 8-bit digits would.
func EstimateMaxDigits(width int) int {
	if width <= 8 {
		return bignum.DefaultMaxDigits
	}
	return bignum.DefaultMaxDigits * 8 / width
}
