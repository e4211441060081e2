package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/signal"
	"strings"
	"syscall"

	"github.com/agbru/bncalc/internal/bignum"
	"github.com/agbru/bncalc/internal/cli"
	"github.com/agbru/bncalc/internal/digits"
	apperrors "github.com/agbru/bncalc/internal/errors"
	"github.com/agbru/bncalc/internal/fourier"
	"github.com/agbru/bncalc/internal/logging"
	"github.com/agbru/bncalc/internal/magnitude"
	"github.com/agbru/bncalc/internal/metrics"
	"github.com/agbru/bncalc/internal/orchestration"
)

// run executes the configured mode over the digit configuration D, L.
func run[D digits.Digit, L digits.Limits[D]](ctx context.Context, a *Application, out io.Writer) int {
	cfg := a.Config
	presenter := cli.CLIResultPresenter{}

	var loaded *bignum.Bignum[D, L]
	if cfg.LoadFile != "" {
		loaded = bignum.Zero[D, L](bignum.WithMaxDigits(cfg.MaxDigits))
		if err := cli.LoadBinary(cfg.LoadFile, loaded); err != nil {
			fmt.Fprintf(a.ErrWriter, "Error loading value: %v\n", err)
			return apperrors.ExitErrorGeneric
		}
		a.Logger.Debug("value loaded", logging.String("path", cfg.LoadFile), logging.Int("digits", loaded.Len()))
	}

	switch {
	case cfg.REPL:
		return runREPL(a, loaded, out)
	case !cfg.HasExpression():
		return showLoaded(a, loaded, out)
	}

	x, err := resolveOperand[D, L]("x", cfg.X, loaded, cfg.MaxDigits)
	if err != nil {
		return presenter.HandleError(err, 0, a.ErrWriter)
	}
	y, err := resolveOperand[D, L]("y", cfg.Y, loaded, cfg.MaxDigits)
	if err != nil {
		return presenter.HandleError(err, 0, a.ErrWriter)
	}

	mult, err := cfg.Multiplier()
	if err != nil {
		return presenter.HandleError(err, 0, a.ErrWriter)
	}
	logger := a.Logger.Component("calculate")
	eval := orchestration.Evaluator[D, L]{
		Multiplier: mult,
		OnFFTFallback: func() {
			a.Recorder.FFTFallback()
			logger.Debug("operands exceed the FFT precision window, multiplying naively",
				logging.Int("x_digits", x.Len()), logging.Int("y_digits", y.Len()))
		},
	}

	if mult.Algorithm != magnitude.Naive {
		fourier.EnsureWarmed(fourier.NextPowerOfTwo(x.Len() + y.Len()))
	}

	ctx, cancelTimeout := context.WithTimeout(ctx, cfg.Timeout)
	defer cancelTimeout()
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	ops := orchestration.OperationsToRun(cfg.Op, x, y, eval, cfg.Verify)
	radix := digits.Radix[D, L]()
	logger.Debug("evaluating",
		logging.String("op", cfg.Op),
		logging.Uint64("radix", radix),
		logging.Int("operations", len(ops)),
		logging.Bool("verify", cfg.Verify))

	if !cfg.Quiet {
		cli.PrintExecutionConfig(cfg, radix, out)
		cli.PrintExecutionMode(ops, out)
	}

	var progressReporter orchestration.ProgressReporter = cli.CLIProgressReporter{}
	progressOut := out
	if cfg.Quiet {
		progressReporter = orchestration.NullProgressReporter{}
		progressOut = io.Discard
	}

	collector := metrics.NewMemoryCollector()
	before := collector.Snapshot()
	results := orchestration.ExecuteOperations(ctx, ops, progressReporter, progressOut)
	after := collector.Snapshot()

	for i, res := range results {
		if errors.Is(res.Err, context.DeadlineExceeded) {
			results[i].Err = apperrors.TimeoutError{Operation: res.Name, Limit: cfg.Timeout}
		}
		if apperrors.IsContextError(res.Err) {
			logger.Info("operation interrupted", logging.String("name", res.Name), logging.Err(res.Err))
		}
		a.Recorder.Observe(cfg.Op, res.Duration, res.Err)
		logger.Debug("operation finished",
			logging.String("name", res.Name),
			logging.Duration("duration", res.Duration),
			logging.Err(res.Err))
	}

	presOpts := orchestration.PresentationOptions{
		Expression: strings.Join([]string{cfg.X, cfg.Op, cfg.Y}, " "),
		Radix:      radix,
		Verbose:    cfg.Verbose,
		Details:    cfg.Details,
	}
	analysisOut := out
	if cfg.Quiet {
		analysisOut = io.Discard
	}
	exitCode := orchestration.AnalyzeComparisonResults(results, presOpts, presenter, analysisOut)
	if exitCode != apperrors.ExitSuccess {
		if cfg.Quiet {
			reportQuietFailure(a.ErrWriter, results, exitCode)
		}
		return exitCode
	}

	best := findBestResult(results)
	if cfg.Quiet {
		cli.DisplayQuietResult(out, *best)
	}
	if code := a.writeOutput(*best, presOpts, out); code != apperrors.ExitSuccess {
		return code
	}
	if cfg.SaveFile != "" {
		z, err := bignum.Parse[D, L](best.Value, bignum.WithMaxDigits(cfg.MaxDigits))
		if err == nil {
			err = cli.SaveBinary(cfg.SaveFile, z)
		}
		if err != nil {
			fmt.Fprintf(a.ErrWriter, "Error saving value: %v\n", err)
			return apperrors.ExitErrorGeneric
		}
		a.Logger.Debug("value saved", logging.String("path", cfg.SaveFile))
	}

	if cfg.Details && !cfg.Quiet {
		cli.DisplayMemoryStats(before, after, out)
	}
	a.printMetrics(out)
	return apperrors.ExitSuccess
}

// resolveOperand reads tok as a number in digit-list notation, or as the
// loaded value when tok is the answer token.
func resolveOperand[D digits.Digit, L digits.Limits[D]](field, tok string, loaded *bignum.Bignum[D, L], maxDigits int) (*bignum.Bignum[D, L], error) {
	if strings.EqualFold(tok, cli.AnswerToken) {
		if loaded == nil {
			return nil, apperrors.ValidationError{Field: field, Message: "\"ans\" requires a value loaded with --load"}
		}
		return loaded.Clone(), nil
	}
	z, err := bignum.Parse[D, L](tok, bignum.WithMaxDigits(maxDigits))
	if err != nil {
		return nil, apperrors.ValidationError{Field: field, Message: err.Error()}
	}
	return z, nil
}

// runREPL starts the interactive calculator. The final answer is saved on
// exit when --save is set.
func runREPL[D digits.Digit, L digits.Limits[D]](a *Application, loaded *bignum.Bignum[D, L], out io.Writer) int {
	mult, err := a.Config.Multiplier()
	if err != nil {
		return cli.CLIResultPresenter{}.HandleError(err, 0, a.ErrWriter)
	}
	r := cli.NewREPL[D, L](cli.REPLConfig{
		Base:       a.Config.Base,
		Multiplier: mult,
		Timeout:    a.Config.Timeout,
		MaxDigits:  a.Config.MaxDigits,
		Recorder:   a.Recorder,
		Logger:     a.Logger.Component("repl"),
	})
	r.SetOutput(out)
	if a.In != nil {
		r.SetInput(a.In)
	}
	if loaded != nil {
		r.SetAnswer(loaded)
	}
	r.Start()

	if a.Config.SaveFile != "" {
		if err := cli.SaveBinary(a.Config.SaveFile, r.Answer()); err != nil {
			fmt.Fprintf(a.ErrWriter, "Error saving value: %v\n", err)
			return apperrors.ExitErrorGeneric
		}
	}
	a.printMetrics(out)
	return apperrors.ExitSuccess
}

// showLoaded presents a value read with --load when no expression is given.
func showLoaded[D digits.Digit, L digits.Limits[D]](a *Application, loaded *bignum.Bignum[D, L], out io.Writer) int {
	result := orchestration.CalculationResult{Name: "load", Value: loaded.String()}
	opts := orchestration.PresentationOptions{
		Expression: cli.AnswerToken,
		Radix:      digits.Radix[D, L](),
	}
	outputCfg := cli.OutputConfig{
		OutputFile: a.Config.OutputFile,
		Quiet:      a.Config.Quiet,
		Verbose:    a.Config.Verbose,
		Details:    a.Config.Details,
	}
	if err := cli.DisplayResultWithConfig(out, result, opts, outputCfg); err != nil {
		fmt.Fprintf(a.ErrWriter, "Error saving result: %v\n", err)
		return apperrors.ExitErrorGeneric
	}
	if a.Config.SaveFile != "" {
		if err := cli.SaveBinary(a.Config.SaveFile, loaded); err != nil {
			fmt.Fprintf(a.ErrWriter, "Error saving value: %v\n", err)
			return apperrors.ExitErrorGeneric
		}
	}
	return apperrors.ExitSuccess
}

// writeOutput writes the --output copy of result.
func (a *Application) writeOutput(result orchestration.CalculationResult, opts orchestration.PresentationOptions, out io.Writer) int {
	outputCfg := cli.OutputConfig{OutputFile: a.Config.OutputFile, Quiet: a.Config.Quiet}
	if err := cli.WriteResultToFile(result, opts, outputCfg); err != nil {
		fmt.Fprintf(a.ErrWriter, "Error saving result: %v\n", err)
		return apperrors.ExitErrorGeneric
	}
	if outputCfg.OutputFile != "" && !outputCfg.Quiet {
		fmt.Fprintf(out, "\nResult saved to: %s\n", outputCfg.OutputFile)
	}
	return apperrors.ExitSuccess
}

func findBestResult(results []orchestration.CalculationResult) *orchestration.CalculationResult {
	var bestResult *orchestration.CalculationResult
	for i := range results {
		if results[i].Err == nil {
			if bestResult == nil || results[i].Duration < bestResult.Duration {
				bestResult = &results[i]
			}
		}
	}
	return bestResult
}

// reportQuietFailure prints a single line for a failed quiet run.
func reportQuietFailure(w io.Writer, results []orchestration.CalculationResult, exitCode int) {
	if exitCode == apperrors.ExitErrorMismatch {
		fmt.Fprintln(w, "Error: the algorithms disagree")
		return
	}
	for _, res := range results {
		if res.Err != nil {
			fmt.Fprintf(w, "Error: %v\n", res.Err)
			return
		}
	}
}
