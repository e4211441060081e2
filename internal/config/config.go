// Package config defines the bncalc run configuration, parses it from the
// command line, and layers environment variables and an optional TOML
// profile underneath the flags.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/agbru/bncalc/internal/digits"
	apperrors "github.com/agbru/bncalc/internal/errors"
	"github.com/agbru/bncalc/internal/magnitude"
)

// EnvPrefix prefixes every environment variable read by bncalc.
const EnvPrefix = "BNCALC_"

// Defaults applied before profile, environment and flags.
const (
	DefaultBase    = "base10"
	DefaultAlgo    = "fft"
	DefaultTimeout = time.Minute
)

// Operators lists the binary operators accepted in an expression. "x" is a
// shell-friendly alias for "*".
var Operators = []string{"+", "-", "*", "x", "/", "%", "cmp"}

// AppConfig is the full configuration of one bncalc run.
type AppConfig struct {
	// Base names the digit configuration (see digits.Names).
	Base string
	// X, Op and Y form the expression given as positional arguments.
	X, Op, Y string
	// Algo is the multiplication algorithm: fft, naive or auto.
	Algo string
	// FFTThreshold is the operand length, in digits, from which the auto
	// algorithm switches to FFT. Zero selects an estimate for the base.
	FFTThreshold int
	// MaxDigits caps the length of every result. Zero selects an estimate
	// for the digit width.
	MaxDigits int
	Timeout   time.Duration

	Verbose bool
	Details bool
	Quiet   bool
	// Verify multiplies with every algorithm and checks that they agree.
	Verify  bool
	REPL    bool
	Metrics bool
	NoColor bool

	// OutputFile receives a text copy of the result.
	OutputFile string
	// SaveFile receives the result in binary form.
	SaveFile string
	// LoadFile holds a binary value made available as the "ans" operand.
	LoadFile string
	// ConfigFile is a TOML profile read beneath the environment.
	ConfigFile string
	LogLevel   string

	ShowVersion bool
}

// Multiplier returns the multiplication strategy selected by c.
func (c AppConfig) Multiplier() (magnitude.Multiplier, error) {
	algo, err := magnitude.ParseAlgorithm(c.Algo)
	if err != nil {
		return magnitude.Multiplier{}, err
	}
	return magnitude.Multiplier{Algorithm: algo, Threshold: c.FFTThreshold}, nil
}

// HasExpression reports whether the positional expression was given.
func (c AppConfig) HasExpression() bool { return c.Op != "" }

// Validate checks the semantic consistency of c and returns a ConfigError
// describing the first problem found.
func (c AppConfig) Validate() error {
	if c.ShowVersion {
		return nil
	}
	if _, ok := digits.Lookup(c.Base); !ok {
		return apperrors.NewConfigError("unknown base %q. Valid bases are: %s", c.Base, strings.Join(digits.Names(), ", "))
	}
	if _, err := magnitude.ParseAlgorithm(c.Algo); err != nil {
		return err
	}
	if c.Timeout <= 0 {
		return apperrors.NewConfigError("timeout value must be strictly positive")
	}
	if c.FFTThreshold < 0 {
		return apperrors.NewConfigError("FFT threshold cannot be negative: %d", c.FFTThreshold)
	}
	if c.MaxDigits < 0 {
		return apperrors.NewConfigError("digit budget cannot be negative: %d", c.MaxDigits)
	}
	if c.Quiet && c.Verbose {
		return apperrors.NewConfigError("--quiet and --verbose are mutually exclusive")
	}
	if c.REPL {
		if c.HasExpression() {
			return apperrors.NewConfigError("an expression cannot be combined with --repl")
		}
		return nil
	}
	if !c.HasExpression() {
		if c.LoadFile != "" {
			return nil
		}
		return apperrors.NewConfigError("missing expression: expected <x> <op> <y>")
	}
	if !slices.Contains(Operators, c.Op) {
		return apperrors.NewConfigError("unknown operator %q. Valid operators are: %s", c.Op, strings.Join(Operators, " "))
	}
	if c.Verify && c.Op != "*" && c.Op != "x" {
		return apperrors.NewConfigError("--verify only applies to multiplication")
	}
	return nil
}

// ParseConfig builds the configuration from args (typically os.Args[1:]).
// Flags win over BNCALC_* variables, which win over the --config profile,
// which wins over the defaults. Adaptive defaults fill whatever is left.
// Usage and parse errors are written to errorWriter.
//
// Parameters:
//   - programName: The name shown in the usage text.
//   - args: The command-line arguments, without the program name.
//   - errorWriter: The destination for usage and flag errors.
//
// Returns:
//   - AppConfig: The merged and validated configuration.
//   - error: flag.ErrHelp for -h, a ConfigError for invalid values, or the
//     flag parse error.
func ParseConfig(programName string, args []string, errorWriter io.Writer) (AppConfig, error) {
	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errorWriter)

	config := AppConfig{}
	fs.StringVar(&config.Base, "base", DefaultBase, fmt.Sprintf("Digit configuration, one of [%s].", strings.Join(digits.Names(), ", ")))
	fs.StringVar(&config.Algo, "algo", DefaultAlgo, "Multiplication algorithm: fft, naive or auto.")
	fs.IntVar(&config.FFTThreshold, "fft-threshold", 0, "Operand length (digits) from which auto uses FFT (0 = estimate).")
	fs.IntVar(&config.MaxDigits, "max-digits", 0, "Largest result length in digits (0 = estimate).")
	fs.DurationVar(&config.Timeout, "timeout", DefaultTimeout, "Maximum execution time.")
	fs.BoolVar(&config.Verbose, "v", false, "Display the full result even when it is long.")
	fs.BoolVar(&config.Verbose, "verbose", false, "Alias for -v.")
	fs.BoolVar(&config.Details, "d", false, "Display timing, digit count and memory details.")
	fs.BoolVar(&config.Details, "details", false, "Alias for -d.")
	fs.BoolVar(&config.Quiet, "q", false, "Quiet mode: print only the result.")
	fs.BoolVar(&config.Quiet, "quiet", false, "Alias for -q.")
	fs.BoolVar(&config.Verify, "verify", false, "Multiply with every algorithm and compare the results.")
	fs.BoolVar(&config.REPL, "repl", false, "Start the interactive calculator.")
	fs.BoolVar(&config.Metrics, "metrics", false, "Print an operation metrics summary on exit.")
	fs.BoolVar(&config.NoColor, "no-color", false, "Disable colored output (NO_COLOR is also honored).")
	fs.StringVar(&config.OutputFile, "o", "", "Write the result to this file.")
	fs.StringVar(&config.OutputFile, "output", "", "Alias for -o.")
	fs.StringVar(&config.SaveFile, "save", "", "Save the result in binary form to this file.")
	fs.StringVar(&config.LoadFile, "load", "", "Load a saved value, usable as the operand \"ans\".")
	fs.StringVar(&config.ConfigFile, "config", "", "TOML profile with default settings.")
	fs.StringVar(&config.LogLevel, "log-level", "", "Log level: debug, info, warn, error or disabled.")
	fs.BoolVar(&config.ShowVersion, "version", false, "Print the version and exit.")

	setCustomUsage(fs)

	if err := fs.Parse(args); err != nil {
		return AppConfig{}, err
	}

	switch rest := fs.Args(); len(rest) {
	case 0:
	case 3:
		config.X, config.Op, config.Y = rest[0], strings.ToLower(rest[1]), rest[2]
	default:
		fmt.Fprintf(errorWriter, "Configuration error: expected <x> <op> <y>, got %d argument(s)\n", len(rest))
		fs.Usage()
		return AppConfig{}, apperrors.NewConfigError("expected <x> <op> <y>, got %d argument(s)", len(rest))
	}

	if config.ConfigFile == "" && !isFlagSet(fs, "config") {
		config.ConfigFile = getEnvString("CONFIG", "")
	}
	if config.ConfigFile != "" {
		profile, err := LoadProfile(config.ConfigFile)
		if err != nil {
			fmt.Fprintln(errorWriter, "Configuration error:", err)
			return AppConfig{}, err
		}
		profile.apply(&config, fs)
	}

	applyEnvOverrides(&config, fs)

	config.Base = strings.ToLower(config.Base)
	config.Algo = strings.ToLower(config.Algo)
	if err := config.Validate(); err != nil {
		fmt.Fprintln(errorWriter, "Configuration error:", err)
		fs.Usage()
		var cfgErr apperrors.ConfigError
		if errors.As(err, &cfgErr) {
			return AppConfig{}, cfgErr
		}
		return AppConfig{}, apperrors.NewConfigError("%v", err)
	}
	return ApplyAdaptiveThresholds(config), nil
}

func setCustomUsage(fs *flag.FlagSet) {
	fs.Usage = func() {
		out := fs.Output()
		fmt.Fprintf(out, "Usage: %s [flags] [--] <x> <op> <y>\n", fs.Name())
		fmt.Fprintf(out, "       %s --repl [flags]\n\n", fs.Name())
		fmt.Fprintf(out, "Operands use digit-list notation for the chosen base (e.g. -1f in base16,\n")
		fmt.Fprintf(out, "3:7 in medp). Operators: %s\n", strings.Join(Operators, " "))
		fmt.Fprintf(out, "Put \"--\" before a negative first operand.\n\nFlags:\n")
		fs.PrintDefaults()
	}
}
