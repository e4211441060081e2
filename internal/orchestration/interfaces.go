//go:generate mockgen -source=interfaces.go -destination=mocks/mock_interfaces.go -package=mocks

package orchestration

import (
	"context"
	"io"
	"sync"
	"time"
)

// ProgressUpdate is a progress report from the operation at Index.
type ProgressUpdate struct {
	Index int
	// Value is the completed fraction, 0 to 1.
	Value float64
}

// ProgressFunc receives the completed fraction of a running operation.
type ProgressFunc func(value float64)

// Operation is one unit of work run by ExecuteOperations. Execute returns
// the result rendered in digit-list notation so that results of different
// implementations can be compared directly.
type Operation interface {
	Name() string
	Execute(ctx context.Context, report ProgressFunc) (string, error)
}

// CalculationResult is the outcome of one Operation.
type CalculationResult struct {
	Name string
	// Value is the rendered result. It is empty when Err is set.
	Value    string
	Duration time.Duration
	Err      error
}

// PresentationOptions configures how a result is shown.
type PresentationOptions struct {
	// Expression is the evaluated expression as typed by the user.
	Expression string
	Radix      uint64
	Verbose    bool
	Details    bool
}

// ProgressReporter displays progress updates until progressChan is closed,
// then calls wg.Done.
type ProgressReporter interface {
	DisplayProgress(wg *sync.WaitGroup, progressChan <-chan ProgressUpdate, numOperations int, out io.Writer)
}

// ProgressReporterFunc adapts a function to ProgressReporter.
type ProgressReporterFunc func(wg *sync.WaitGroup, progressChan <-chan ProgressUpdate, numOperations int, out io.Writer)

// DisplayProgress calls f.
func (f ProgressReporterFunc) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan ProgressUpdate, numOperations int, out io.Writer) {
	f(wg, progressChan, numOperations, out)
}

// NullProgressReporter drains the channel without output. Quiet mode and
// tests use it.
type NullProgressReporter struct{}

// DisplayProgress drains progressChan.
func (NullProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan ProgressUpdate, _ int, _ io.Writer) {
	defer wg.Done()
	DrainChannel(progressChan)
}

// ResultPresenter renders results and errors.
type ResultPresenter interface {
	PresentComparisonTable(results []CalculationResult, out io.Writer)
	PresentResult(result CalculationResult, opts PresentationOptions, out io.Writer)
	// HandleError reports err and returns the matching exit code.
	HandleError(err error, duration time.Duration, out io.Writer) int
}
