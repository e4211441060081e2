// Package app wires configuration, logging, metrics and the presentation
// layer into the bncalc command.
package app

import (
	"context"
	"errors"
	"flag"
	"io"

	"github.com/agbru/bncalc/internal/cli"
	"github.com/agbru/bncalc/internal/config"
	"github.com/agbru/bncalc/internal/digits"
	apperrors "github.com/agbru/bncalc/internal/errors"
	"github.com/agbru/bncalc/internal/logging"
	"github.com/agbru/bncalc/internal/metrics"
	"github.com/agbru/bncalc/internal/ui"
)

// Application represents the bncalc application instance.
type Application struct {
	Config    config.AppConfig
	ErrWriter io.Writer
	// In feeds the REPL. Nil means standard input.
	In io.Reader
	// Logger writes diagnostics to ErrWriter. Run creates it when nil.
	Logger   *logging.ZerologAdapter
	Recorder *metrics.Recorder
}

// New creates a new Application instance by parsing command-line arguments.
// args[0] is the program name.
func New(args []string, errWriter io.Writer) (*Application, error) {
	programName := "bncalc"
	var cmdArgs []string
	if len(args) > 0 {
		programName = args[0]
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseConfig(programName, cmdArgs, errWriter)
	if err != nil {
		return nil, err
	}
	return &Application{
		Config:    cfg,
		ErrWriter: errWriter,
		Recorder:  metrics.NewRecorder(),
	}, nil
}

// Run executes the application in the configured mode and returns the
// process exit code.
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	if a.Config.ShowVersion {
		PrintVersion(out)
		return apperrors.ExitSuccess
	}

	ui.InitTheme(a.Config.NoColor, out)
	if a.Logger == nil {
		level, err := logging.ParseLevel(a.Config.LogLevel)
		if err != nil {
			return apperrors.HandleCalculationError(err, 0, a.ErrWriter, cli.CLIColorProvider{})
		}
		noColor := a.Config.NoColor || !ui.IsTerminal(a.ErrWriter)
		a.Logger = logging.NewConsoleLogger(a.ErrWriter, "app", level, noColor)
	}
	if a.Recorder == nil {
		a.Recorder = metrics.NewRecorder()
	}

	return a.dispatch(ctx, out)
}

// dispatch instantiates the run for the configured digit configuration.
func (a *Application) dispatch(ctx context.Context, out io.Writer) int {
	switch a.Config.Base {
	case "base2":
		return run[uint8, digits.Base2](ctx, a, out)
	case "base8":
		return run[uint8, digits.Base8](ctx, a, out)
	case "base10":
		return run[uint8, digits.Base10](ctx, a, out)
	case "base16":
		return run[uint8, digits.Base16](ctx, a, out)
	case "base256":
		return run[uint16, digits.Base256](ctx, a, out)
	case "lowp":
		return run[uint8, digits.LowPrecision](ctx, a, out)
	case "medp":
		return run[uint16, digits.MediumPrecision](ctx, a, out)
	case "highp":
		return run[uint32, digits.HighPrecision](ctx, a, out)
	}
	err := apperrors.NewConfigError("unknown base %q", a.Config.Base)
	return apperrors.HandleCalculationError(err, 0, a.ErrWriter, cli.CLIColorProvider{})
}

// printMetrics prints the metrics summary when --metrics is set.
func (a *Application) printMetrics(out io.Writer) {
	if !a.Config.Metrics {
		return
	}
	snap, err := a.Recorder.Snapshot()
	if err != nil {
		a.Logger.Error("metrics snapshot failed", err)
		return
	}
	cli.DisplayMetricsSummary(snap, out)
}

// IsHelpError checks if the error is a help flag error (--help was used).
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}

// ExitCode maps an error returned by New to a process exit code.
func ExitCode(err error) int {
	switch {
	case err == nil, IsHelpError(err):
		return apperrors.ExitSuccess
	case errors.As(err, new(apperrors.ConfigError)):
		return apperrors.ExitErrorConfig
	}
	return apperrors.ExitErrorGeneric
}
