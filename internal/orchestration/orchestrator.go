package orchestration

import (
	"context"
	"fmt"
	"io"
	"sort"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	apperrors "github.com/agbru/bncalc/internal/errors"
)

const tracerName = "github.com/agbru/bncalc/internal/orchestration"

// ProgressBufferMultiplier sizes the progress channel per operation so that
// a slow display rarely makes an operation drop an update.
const ProgressBufferMultiplier = 5

// ExecuteOperations runs ops concurrently and returns their results in the
// order of ops. A failing operation does not cancel the others; every
// failure is recorded in its result instead. Each run is traced in its own
// span.
//
// Parameters:
//   - ctx: The context for cancellation and the parent of the spans.
//   - ops: The operations to run.
//   - progressReporter: Renders the aggregated progress to out.
//   - out: The destination for progress output.
//
// Returns:
//   - []CalculationResult: One result per operation, in the order of ops.
func ExecuteOperations(ctx context.Context, ops []Operation, progressReporter ProgressReporter, out io.Writer) []CalculationResult {
	tracer := otel.Tracer(tracerName)
	ctx, batch := tracer.Start(ctx, "ExecuteOperations",
		trace.WithAttributes(attribute.Int("bncalc.operations", len(ops))))
	defer batch.End()

	g, ctx := errgroup.WithContext(ctx)
	results := make([]CalculationResult, len(ops))
	progressChan := make(chan ProgressUpdate, len(ops)*ProgressBufferMultiplier)

	var displayWg sync.WaitGroup
	displayWg.Add(1)
	go progressReporter.DisplayProgress(&displayWg, progressChan, len(ops), out)

	for i, op := range ops {
		g.Go(func() error {
			opCtx, span := tracer.Start(ctx, op.Name())
			defer span.End()

			report := func(v float64) {
				select {
				case progressChan <- ProgressUpdate{Index: i, Value: v}:
				default:
				}
			}
			start := time.Now()
			value, err := op.Execute(opCtx, report)
			results[i] = CalculationResult{Name: op.Name(), Value: value, Duration: time.Since(start), Err: err}

			span.SetAttributes(attribute.Int("bncalc.result_length", len(value)))
			if err != nil {
				span.RecordError(err)
				span.SetStatus(codes.Error, err.Error())
			}
			return nil
		})
	}

	_ = g.Wait()
	close(progressChan)
	displayWg.Wait()

	return results
}

// AnalyzeComparisonResults sorts results (successes first, fastest first),
// presents the comparison table, checks that every successful result agrees,
// and presents the agreed result. It returns the exit code of the run.
func AnalyzeComparisonResults(results []CalculationResult, opts PresentationOptions, presenter ResultPresenter, out io.Writer) int {
	sort.SliceStable(results, func(i, j int) bool {
		if (results[i].Err == nil) != (results[j].Err == nil) {
			return results[i].Err == nil
		}
		return results[i].Duration < results[j].Duration
	})

	var firstValidResult *CalculationResult
	var firstError error
	successCount := 0
	for i := range results {
		if results[i].Err != nil {
			if firstError == nil {
				firstError = results[i].Err
			}
			continue
		}
		successCount++
		if firstValidResult == nil {
			firstValidResult = &results[i]
		}
	}

	presenter.PresentComparisonTable(results, out)

	if successCount == 0 {
		fmt.Fprintf(out, "\nGlobal Status: Failure. No operation completed.\n")
		return presenter.HandleError(firstError, 0, out)
	}

	for _, res := range results {
		if res.Err == nil && res.Value != firstValidResult.Value {
			fmt.Fprintf(out, "\nGlobal Status: CRITICAL ERROR! %s and %s disagree.\n", firstValidResult.Name, res.Name)
			return apperrors.ExitErrorMismatch
		}
	}

	fmt.Fprintf(out, "\nGlobal Status: Success. All valid results are consistent.\n")
	presenter.PresentResult(*firstValidResult, opts, out)
	return apperrors.ExitSuccess
}
