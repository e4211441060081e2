package cli

import (
	"fmt"
	"io"
	"runtime"

	"github.com/agbru/bncalc/internal/config"
	"github.com/agbru/bncalc/internal/digits"
	"github.com/agbru/bncalc/internal/format"
	"github.com/agbru/bncalc/internal/metrics"
	"github.com/agbru/bncalc/internal/orchestration"
	"github.com/agbru/bncalc/internal/ui"
)

// PrintExecutionConfig shows the expression and the settings it runs with.
func PrintExecutionConfig(cfg config.AppConfig, radix uint64, out io.Writer) {
	fmt.Fprintf(out, "--- Execution Configuration ---\n")
	fmt.Fprintf(out, "Evaluating %s%s %s %s%s in %s%s%s (radix %d) with a timeout of %s%s%s.\n",
		ui.ColorMagenta(), cfg.X, cfg.Op, cfg.Y, ui.ColorReset(),
		ui.ColorCyan(), cfg.Base, ui.ColorReset(), radix,
		ui.ColorYellow(), cfg.Timeout, ui.ColorReset())
	fmt.Fprintf(out, "Environment: %s%d%s logical processors, Go %s%s%s.\n",
		ui.ColorCyan(), runtime.NumCPU(), ui.ColorReset(), ui.ColorCyan(), runtime.Version(), ui.ColorReset())
	budget := format.FormatNumberString(fmt.Sprint(cfg.MaxDigits))
	if conf, ok := digits.Lookup(cfg.Base); ok {
		budget += " digits, " + format.FormatBytes(metrics.BudgetBytes(cfg.MaxDigits, conf.Width))
	} else {
		budget += " digits"
	}
	fmt.Fprintf(out, "Multiplication: %s%s%s, FFT from %s%d%s digits, budget %s%s%s.\n",
		ui.ColorCyan(), cfg.Algo, ui.ColorReset(),
		ui.ColorCyan(), cfg.FFTThreshold, ui.ColorReset(),
		ui.ColorCyan(), budget, ui.ColorReset())
}

// PrintExecutionMode tells whether a single evaluation or a comparison runs.
func PrintExecutionMode(ops []orchestration.Operation, out io.Writer) {
	modeDesc := "No operation"
	switch {
	case len(ops) > 1:
		modeDesc = fmt.Sprintf("Parallel comparison of %d implementations", len(ops))
	case len(ops) == 1:
		modeDesc = fmt.Sprintf("Single evaluation with %s%s%s", ui.ColorGreen(), ops[0].Name(), ui.ColorReset())
	}
	fmt.Fprintf(out, "Execution mode: %s.\n", modeDesc)
	fmt.Fprintf(out, "\n--- Starting Execution ---\n")
}
