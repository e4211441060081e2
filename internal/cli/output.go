// # Naming Conventions
//
//   - Display* functions write formatted output to an [io.Writer].
//   - Format* functions return a string and perform no I/O.
//   - Write*, Save* and Load* functions touch the filesystem.

package cli

import (
	"encoding"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	apperrors "github.com/agbru/bncalc/internal/errors"
	"github.com/agbru/bncalc/internal/orchestration"
	"github.com/agbru/bncalc/internal/ui"
)

// OutputConfig controls how a final result is emitted.
type OutputConfig struct {
	// OutputFile receives a text copy of the result when set.
	OutputFile string
	Quiet      bool
	Verbose    bool
	Details    bool
}

// WriteResultToFile writes result to config.OutputFile with a commented
// header. Missing parent directories are created. An empty OutputFile is a
// no-op.
func WriteResultToFile(result orchestration.CalculationResult, opts orchestration.PresentationOptions, config OutputConfig) error {
	if config.OutputFile == "" {
		return nil
	}

	if dir := filepath.Dir(config.OutputFile); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	file, err := os.Create(config.OutputFile)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	fmt.Fprintf(file, "# bncalc result\n")
	fmt.Fprintf(file, "# Generated: %s\n", time.Now().Format(time.RFC3339))
	fmt.Fprintf(file, "# Operation: %s\n", result.Name)
	fmt.Fprintf(file, "# Duration: %s\n", result.Duration)
	fmt.Fprintf(file, "# Radix: %d\n", opts.Radix)
	fmt.Fprintf(file, "# Digits: %d\n", DigitCount(result.Value, opts.Radix))
	fmt.Fprintf(file, "\n%s =\n%s\n", opts.Expression, result.Value)

	return file.Close()
}

// FormatQuietResult returns the bare value for scripting.
func FormatQuietResult(result orchestration.CalculationResult) string {
	return result.Value
}

// DisplayQuietResult prints only the value.
func DisplayQuietResult(out io.Writer, result orchestration.CalculationResult) {
	fmt.Fprintln(out, FormatQuietResult(result))
}

// DisplayResultWithConfig prints result in the mode selected by config and
// writes the optional file copy.
func DisplayResultWithConfig(out io.Writer, result orchestration.CalculationResult, opts orchestration.PresentationOptions, config OutputConfig) error {
	if config.Quiet {
		DisplayQuietResult(out, result)
	} else {
		opts.Verbose, opts.Details = config.Verbose, config.Details
		DisplayResult(result.Value, opts, result.Duration, out)
	}

	if config.OutputFile != "" {
		if err := WriteResultToFile(result, opts, config); err != nil {
			return err
		}
		if !config.Quiet {
			fmt.Fprintf(out, "\n%s✓ Result saved to: %s%s%s\n",
				ui.ColorGreen(), ui.ColorCyan(), config.OutputFile, ui.ColorReset())
		}
	}
	return nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Binary Value Files
// ─────────────────────────────────────────────────────────────────────────────

// SaveBinary writes the binary encoding of v to path, creating missing
// parent directories.
//
// Parameters:
//   - path: The destination file. An existing file is replaced.
//   - v: The value to encode, usually a *bignum.Bignum.
//
// Returns:
//   - error: An error wrapping the encode or write failure, with the path.
func SaveBinary(path string, v encoding.BinaryMarshaler) error {
	data, err := v.MarshalBinary()
	if err != nil {
		return apperrors.WrapError(err, "encode %s", path)
	}
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return apperrors.WrapError(err, "write %s", path)
	}
	return nil
}

// LoadBinary decodes the file at path into v. The digit budget of v, when
// it has one, bounds the size of the value accepted from the file.
//
// Parameters:
//   - path: The file written by SaveBinary.
//   - v: The receiver of the decoded value.
//
// Returns:
//   - error: An error wrapping the read or decode failure, with the path.
func LoadBinary(path string, v encoding.BinaryUnmarshaler) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return apperrors.WrapError(err, "read %s", path)
	}
	if err := v.UnmarshalBinary(data); err != nil {
		return apperrors.WrapError(err, "decode %s", path)
	}
	return nil
}
