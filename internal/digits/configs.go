package digits

import (
	"math"
	"slices"
)

// Base2 stores binary digits in bytes.
type Base2 struct{}

func (Base2) Min() uint8 { return 0 }
func (Base2) Max() uint8 { return 1 }

// Base8 stores octal digits in bytes.
type Base8 struct{}

func (Base8) Min() uint8 { return 0 }
func (Base8) Max() uint8 { return 7 }

// Base10 stores decimal digits in bytes.
type Base10 struct{}

func (Base10) Min() uint8 { return 0 }
func (Base10) Max() uint8 { return 9 }

// Base16 stores hexadecimal digits in bytes.
type Base16 struct{}

func (Base16) Min() uint8 { return 0 }
func (Base16) Max() uint8 { return 15 }

// Base256 stores one byte per digit using a 16-bit cell, so that a value
// loaded from a byte stream can be inspected digit by digit without
// overflow in callers that add to a single digit.
type Base256 struct{}

func (Base256) Min() uint16 { return 0 }
func (Base256) Max() uint16 { return math.MaxUint8 }

// LowPrecision uses the full range of a byte (radix 256).
type LowPrecision struct{}

func (LowPrecision) Min() uint8 { return 0 }
func (LowPrecision) Max() uint8 { return math.MaxUint8 }

// MediumPrecision uses the full range of a 16-bit word (radix 65536).
type MediumPrecision struct{}

func (MediumPrecision) Min() uint16 { return 0 }
func (MediumPrecision) Max() uint16 { return math.MaxUint16 }

// HighPrecision uses the full range of a 32-bit word (radix 2^32).
type HighPrecision struct{}

func (HighPrecision) Min() uint32 { return 0 }
func (HighPrecision) Max() uint32 { return math.MaxUint32 }

// Configuration describes a named digit configuration for tools that select
// one at run time.
type Configuration struct {
	// Name is the identifier accepted on the command line (e.g. "base10").
	Name string
	// Radix is Max()+1.
	Radix uint64
	// Width is the storage width of one digit in bits.
	Width int
	// Description is a one-line human summary.
	Description string
}

var configurations = []Configuration{
	describe[uint8, Base2]("base2", "binary digits"),
	describe[uint8, Base8]("base8", "octal digits"),
	describe[uint8, Base10]("base10", "decimal digits"),
	describe[uint8, Base16]("base16", "hexadecimal digits"),
	describe[uint16, Base256]("base256", "byte digits in 16-bit cells"),
	describe[uint8, LowPrecision]("lowp", "full 8-bit digits"),
	describe[uint16, MediumPrecision]("medp", "full 16-bit digits"),
	describe[uint32, HighPrecision]("highp", "full 32-bit digits"),
}

func describe[D Digit, L Limits[D]](name, desc string) Configuration {
	return Configuration{Name: name, Radix: Radix[D, L](), Width: Width[D](), Description: desc}
}

// Configurations returns the named configurations, ordered by radix and
// then by storage width.
func Configurations() []Configuration {
	out := slices.Clone(configurations)
	slices.SortStableFunc(out, func(a, b Configuration) int {
		if a.Radix != b.Radix {
			if a.Radix < b.Radix {
				return -1
			}
			return 1
		}
		return a.Width - b.Width
	})
	return out
}

// Lookup returns the configuration registered under name.
func Lookup(name string) (Configuration, bool) {
	for _, c := range configurations {
		if c.Name == name {
			return c, true
		}
	}
	return Configuration{}, false
}

// Names returns the registered configuration names in registration order.
func Names() []string {
	names := make([]string, len(configurations))
	for i, c := range configurations {
		names[i] = c.Name
	}
	return names
}
