package format

import "strings"

// ProgressState tracks the completion of a fixed set of concurrent
// operations and reports their mean.
type ProgressState struct {
	progresses     []float64
	numCalculators int
}

// NewProgressState returns a tracker for n operations, all at zero.
func NewProgressState(n int) *ProgressState {
	return &ProgressState{
		progresses:     make([]float64, max(n, 0)),
		numCalculators: max(n, 0),
	}
}

// Update records value (0 to 1) for operation index. Out-of-range indices
// are ignored.
func (ps *ProgressState) Update(index int, value float64) {
	if index >= 0 && index < len(ps.progresses) {
		ps.progresses[index] = value
	}
}

// CalculateAverage returns the mean progress, 0 when nothing is tracked.
func (ps *ProgressState) CalculateAverage() float64 {
	if ps.numCalculators == 0 {
		return 0
	}
	var total float64
	for _, p := range ps.progresses {
		total += p
	}
	return total / float64(ps.numCalculators)
}

// Completed returns how many operations reached 1.
func (ps *ProgressState) Completed() int {
	n := 0
	for _, p := range ps.progresses {
		if p >= 1 {
			n++
		}
	}
	return n
}

// ProgressBar renders progress (clamped to [0, 1]) as a bar of length
// cells.
func ProgressBar(progress float64, length int) string {
	progress = min(max(progress, 0), 1)
	count := int(progress * float64(length))
	var b strings.Builder
	b.Grow(length * 3)
	for i := 0; i < length; i++ {
		if i < count {
			b.WriteRune('█')
		} else {
			b.WriteRune('░')
		}
	}
	return b.String()
}
