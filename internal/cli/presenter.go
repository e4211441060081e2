package cli

import (
	"fmt"
	"io"
	"sync"
	"time"

	apperrors "github.com/agbru/bncalc/internal/errors"
	"github.com/agbru/bncalc/internal/format"
	"github.com/agbru/bncalc/internal/metrics"
	"github.com/agbru/bncalc/internal/orchestration"
	"github.com/agbru/bncalc/internal/ui"
)

// CLIProgressReporter shows progress with a spinner.
type CLIProgressReporter struct{}

var _ orchestration.ProgressReporter = CLIProgressReporter{}

// DisplayProgress forwards to DisplayProgress.
func (CLIProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan orchestration.ProgressUpdate, numOperations int, out io.Writer) {
	DisplayProgress(wg, progressChan, numOperations, out)
}

// CLIResultPresenter renders results for a terminal.
type CLIResultPresenter struct{}

var _ orchestration.ResultPresenter = CLIResultPresenter{}

// PresentComparisonTable prints one row per operation. Padding is computed
// on the plain text so that color codes do not break the alignment.
func (CLIResultPresenter) PresentComparisonTable(results []orchestration.CalculationResult, out io.Writer) {
	fmt.Fprintf(out, "\n--- Comparison Summary ---\n")

	maxNameLen := len("Operation")
	maxDurationLen := len("Duration")
	for _, res := range results {
		maxNameLen = max(maxNameLen, len(res.Name))
		maxDurationLen = max(maxDurationLen, len(format.FormatTableDuration(res.Duration)))
	}

	fmt.Fprintf(out, "%sOperation%s%s   %sDuration%s%s   %sStatus%s\n",
		ui.ColorUnderline(), ui.ColorReset(), padRight("", maxNameLen-len("Operation")),
		ui.ColorUnderline(), ui.ColorReset(), padRight("", maxDurationLen-len("Duration")),
		ui.ColorUnderline(), ui.ColorReset())

	for _, res := range results {
		status := fmt.Sprintf("%s✅ Success%s", ui.ColorGreen(), ui.ColorReset())
		if res.Err != nil {
			status = fmt.Sprintf("%s❌ Failure (%v)%s", ui.ColorRed(), res.Err, ui.ColorReset())
		}
		duration := format.FormatTableDuration(res.Duration)
		fmt.Fprintf(out, "%s%s%s%s   %s%s%s%s   %s\n",
			ui.ColorBlue(), res.Name, ui.ColorReset(), padRight("", maxNameLen-len(res.Name)),
			ui.ColorYellow(), duration, ui.ColorReset(), padRight("", maxDurationLen-len(duration)),
			status)
	}
}

func padRight(s string, length int) string {
	if length <= 0 {
		return s
	}
	return s + fmt.Sprintf("%*s", length, "")
}

// PresentResult prints the agreed result.
func (CLIResultPresenter) PresentResult(result orchestration.CalculationResult, opts orchestration.PresentationOptions, out io.Writer) {
	DisplayResult(result.Value, opts, result.Duration, out)
}

// HandleError reports err and returns its exit code.
func (CLIResultPresenter) HandleError(err error, duration time.Duration, out io.Writer) int {
	return apperrors.HandleCalculationError(err, duration, out, CLIColorProvider{})
}

// DisplayMemoryStats prints the memory used between two snapshots.
func DisplayMemoryStats(before, after metrics.MemorySnapshot, out io.Writer) {
	gcRuns, pauseNs := after.Delta(before)
	fmt.Fprintf(out, "\nMemory Stats:\n")
	fmt.Fprintf(out, "  Heap in use:     %s\n", format.FormatBytes(after.HeapAlloc))
	fmt.Fprintf(out, "  Heap growth:     %s\n", formatSignedBytes(after.HeapGrowth(before)))
	fmt.Fprintf(out, "  Heap reserved:   %s\n", format.FormatBytes(after.HeapSys))
	fmt.Fprintf(out, "  Live objects:    %s\n", format.FormatNumberString(fmt.Sprint(after.HeapObjects)))
	fmt.Fprintf(out, "  GC cycles:       %d\n", gcRuns)
	fmt.Fprintf(out, "  GC pause total:  %.2fms\n", float64(pauseNs)/1e6)
}

func formatSignedBytes(n int64) string {
	if n < 0 {
		return "-" + format.FormatBytes(uint64(-n))
	}
	return "+" + format.FormatBytes(uint64(n))
}

// DisplayMetricsSummary prints the per-operator counters of snap.
func DisplayMetricsSummary(snap metrics.Snapshot, out io.Writer) {
	fmt.Fprintf(out, "\n%s--- Metrics ---%s\n", ui.ColorBold(), ui.ColorReset())
	if len(snap.Operations) == 0 {
		fmt.Fprintln(out, "No operations recorded.")
	}
	for _, op := range snap.Operations {
		fmt.Fprintf(out, "  %s%-4s%s ok=%d failed=%d total=%s\n",
			ui.ColorBlue(), op.Op, ui.ColorReset(), op.OK, op.Failed,
			format.FormatExecutionDuration(time.Duration(op.TotalSeconds*float64(time.Second))))
	}
	fmt.Fprintf(out, "  FFT fallbacks: %d\n", snap.FFTFallbacks)
}
