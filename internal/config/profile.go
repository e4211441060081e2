package config

import (
	"errors"
	"flag"
	"io/fs"
	"time"

	"github.com/BurntSushi/toml"

	apperrors "github.com/agbru/bncalc/internal/errors"
)

// Profile is the TOML file selected with --config or BNCALC_CONFIG. Every
// key is optional:
//
//	base          = "medp"
//	algo          = "auto"
//	fft_threshold = 64
//	max_digits    = 1000000
//	timeout       = "30s"
//	log_level     = "debug"
//	no_color      = true
type Profile struct {
	Base         string `toml:"base"`
	Algo         string `toml:"algo"`
	FFTThreshold *int   `toml:"fft_threshold"`
	MaxDigits    *int   `toml:"max_digits"`
	Timeout      string `toml:"timeout"`
	LogLevel     string `toml:"log_level"`
	NoColor      *bool  `toml:"no_color"`

	timeout time.Duration
}

// LoadProfile reads and validates the profile at path. Unknown keys are
// rejected so that typos do not go unnoticed.
func LoadProfile(path string) (Profile, error) {
	var p Profile
	md, err := toml.DecodeFile(path, &p)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Profile{}, apperrors.NewConfigError("profile %s not found", path)
		}
		return Profile{}, apperrors.NewConfigError("profile %s: %v", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Profile{}, apperrors.NewConfigError("profile %s: unknown key %q", path, undecoded[0].String())
	}
	if p.Timeout != "" {
		if p.timeout, err = time.ParseDuration(p.Timeout); err != nil {
			return Profile{}, apperrors.NewConfigError("profile %s: invalid timeout %q", path, p.Timeout)
		}
	}
	return p, nil
}

// apply copies the profile values into c for every setting whose flag was
// not given explicitly.
func (p Profile) apply(c *AppConfig, flags *flag.FlagSet) {
	set := func(names ...string) bool { return isFlagSetAny(flags, names...) }
	if p.Base != "" && !set("base") {
		c.Base = p.Base
	}
	if p.Algo != "" && !set("algo") {
		c.Algo = p.Algo
	}
	if p.FFTThreshold != nil && !set("fft-threshold") {
		c.FFTThreshold = *p.FFTThreshold
	}
	if p.MaxDigits != nil && !set("max-digits") {
		c.MaxDigits = *p.MaxDigits
	}
	if p.timeout > 0 && !set("timeout") {
		c.Timeout = p.timeout
	}
	if p.LogLevel != "" && !set("log-level") {
		c.LogLevel = p.LogLevel
	}
	if p.NoColor != nil && !set("no-color") {
		c.NoColor = *p.NoColor
	}
}
