//go:generate mockgen -source=ui.go -destination=mocks/mock_ui.go -package=mocks

package cli

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/briandowns/spinner"

	"github.com/agbru/bncalc/internal/format"
	"github.com/agbru/bncalc/internal/orchestration"
	"github.com/agbru/bncalc/internal/ui"
)

const (
	// TruncationLimit is the result length, in characters, from which the
	// standard output shows only the edges of a value.
	TruncationLimit = 100
	// DisplayEdges is the number of characters kept at each end of a
	// truncated value.
	DisplayEdges = 25
	// ProgressRefreshRate is the spinner and progress bar refresh period.
	ProgressRefreshRate = 200 * time.Millisecond
	// ProgressBarWidth is the width of the progress bar in cells.
	ProgressBarWidth = 40
)

// Spinner abstracts the terminal spinner so that DisplayProgress can be
// tested without a terminal.
type Spinner interface {
	Start()
	Stop()
	// UpdateSuffix sets the text shown after the spinner.
	UpdateSuffix(suffix string)
}

type realSpinner struct {
	s *spinner.Spinner
}

func (rs *realSpinner) Start() { rs.s.Start() }

func (rs *realSpinner) Stop() { rs.s.Stop() }

func (rs *realSpinner) UpdateSuffix(suffix string) {
	rs.s.Lock()
	rs.s.Suffix = suffix
	rs.s.Unlock()
}

var newSpinner = func(options ...spinner.Option) Spinner {
	s := spinner.New(spinner.CharSets[11], ProgressRefreshRate, options...)
	return &realSpinner{s}
}

// DisplayProgress shows a spinner with the average progress of
// numOperations operations until progressChan is closed, then prints a
// final full bar.
func DisplayProgress(wg *sync.WaitGroup, progressChan <-chan orchestration.ProgressUpdate, numOperations int, out io.Writer) {
	defer wg.Done()
	agg := orchestration.NewProgressAggregator(numOperations)
	if agg == nil {
		orchestration.DrainChannel(progressChan)
		return
	}

	label := "Progress"
	if agg.IsMultiOperation() {
		label = "Avg progress"
	}

	s := newSpinner(spinner.WithWriter(out))
	s.Start()
	spinnerStopped := false
	defer func() {
		if !spinnerStopped {
			s.Stop()
		}
	}()

	ticker := time.NewTicker(ProgressRefreshRate)
	defer ticker.Stop()

	for {
		select {
		case update, ok := <-progressChan:
			if !ok {
				s.Stop()
				spinnerStopped = true
				fmt.Fprintf(out, "%s: %6.2f%% [%s]\n", label, 100.0, format.ProgressBar(1, ProgressBarWidth))
				return
			}
			agg.Update(update)
		case <-ticker.C:
			avg := agg.CalculateAverage()
			s.UpdateSuffix(fmt.Sprintf(" %s: %6.2f%% [%s]", label, avg*100, format.ProgressBar(avg, ProgressBarWidth)))
		}
	}
}

// DisplayResult prints a result: its digit count, optional details, and the
// value itself, truncated in the middle unless verbose is set.
func DisplayResult(value string, opts orchestration.PresentationOptions, duration time.Duration, out io.Writer) {
	n := DigitCount(value, opts.Radix)
	if n > 0 {
		fmt.Fprintf(out, "Result size: %s%s%s.\n", ui.ColorCyan(), format.FormatDigitCount(n, opts.Radix), ui.ColorReset())
	} else {
		fmt.Fprintf(out, "Result is %s%s%s.\n", ui.ColorYellow(), value, ui.ColorReset())
	}

	if opts.Details {
		fmt.Fprintf(out, "\n%s--- Detailed result analysis ---%s\n", ui.ColorBold(), ui.ColorReset())
		fmt.Fprintf(out, "Calculation time : %s%s%s\n", ui.ColorGreen(), format.FormatTableDuration(duration), ui.ColorReset())
		fmt.Fprintf(out, "Number of digits : %s%s%s\n", ui.ColorCyan(), format.FormatNumberString(fmt.Sprint(n)), ui.ColorReset())
		fmt.Fprintf(out, "Text length      : %s%s%s characters\n", ui.ColorCyan(), format.FormatNumberString(fmt.Sprint(len(value))), ui.ColorReset())
	}

	expr := opts.Expression
	if expr == "" {
		expr = "result"
	}
	fmt.Fprintf(out, "\n%s--- Calculated value ---%s\n", ui.ColorBold(), ui.ColorReset())
	if opts.Verbose {
		fmt.Fprintf(out, "%s%s%s =\n%s%s%s\n", ui.ColorMagenta(), expr, ui.ColorReset(), ui.ColorGreen(), value, ui.ColorReset())
		return
	}
	if short, cut := format.TruncateMiddle(value, TruncationLimit, DisplayEdges); cut {
		fmt.Fprintf(out, "%s%s%s (truncated) = %s%s%s\n", ui.ColorMagenta(), expr, ui.ColorReset(), ui.ColorGreen(), short, ui.ColorReset())
		fmt.Fprintf(out, "(Tip: use the %s-v%s or %s--verbose%s option to display the full value)\n",
			ui.ColorYellow(), ui.ColorReset(), ui.ColorYellow(), ui.ColorReset())
		return
	}
	fmt.Fprintf(out, "%s%s%s = %s%s%s\n", ui.ColorMagenta(), expr, ui.ColorReset(), ui.ColorGreen(), value, ui.ColorReset())
}

// DigitCount returns the number of digits in value, a number rendered in
// digit-list notation for radix. NaN and the infinities have no digits.
// Zero counts as one digit.
func DigitCount(value string, radix uint64) int {
	switch value {
	case "", "NaN", "+INF", "-INF":
		return 0
	}
	value = strings.TrimPrefix(value, "-")
	if radix > 36 {
		return strings.Count(value, ":") + 1
	}
	return len(value)
}
