package orchestration

import "github.com/agbru/bncalc/internal/format"

// ProgressAggregator averages the progress of several operations.
type ProgressAggregator struct {
	state         *format.ProgressState
	numOperations int
}

// NewProgressAggregator returns an aggregator for n operations, or nil when
// n <= 0.
func NewProgressAggregator(n int) *ProgressAggregator {
	if n <= 0 {
		return nil
	}
	return &ProgressAggregator{state: format.NewProgressState(n), numOperations: n}
}

// AggregatedProgress is the aggregator state after one update.
type AggregatedProgress struct {
	Index           int
	Value           float64
	AverageProgress float64
	Completed       int
}

// Update records update and returns the new aggregate.
func (a *ProgressAggregator) Update(update ProgressUpdate) AggregatedProgress {
	a.state.Update(update.Index, update.Value)
	return AggregatedProgress{
		Index:           update.Index,
		Value:           update.Value,
		AverageProgress: a.state.CalculateAverage(),
		Completed:       a.state.Completed(),
	}
}

// CalculateAverage returns the current average without updating.
func (a *ProgressAggregator) CalculateAverage() float64 {
	return a.state.CalculateAverage()
}

// NumOperations returns the number of tracked operations.
func (a *ProgressAggregator) NumOperations() int { return a.numOperations }

// IsMultiOperation reports whether more than one operation is tracked.
func (a *ProgressAggregator) IsMultiOperation() bool { return a.numOperations > 1 }

// DrainChannel discards every update until progressChan is closed.
func DrainChannel(progressChan <-chan ProgressUpdate) {
	for range progressChan {
	}
}
