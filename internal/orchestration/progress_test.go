package orchestration

import "testing"

func TestNewProgressAggregator(t *testing.T) {
	t.Parallel()
	if agg := NewProgressAggregator(3); agg == nil || agg.NumOperations() != 3 || !agg.IsMultiOperation() {
		t.Errorf("NewProgressAggregator(3) = %+v", agg)
	}
	if agg := NewProgressAggregator(1); agg == nil || agg.IsMultiOperation() {
		t.Error("single operation reported as multi")
	}
	for _, n := range []int{0, -1} {
		if NewProgressAggregator(n) != nil {
			t.Errorf("NewProgressAggregator(%d) != nil", n)
		}
	}
}

func TestProgressAggregatorUpdate(t *testing.T) {
	t.Parallel()
	agg := NewProgressAggregator(2)

	ap := agg.Update(ProgressUpdate{Index: 0, Value: 0.5})
	if ap.Index != 0 || ap.Value != 0.5 || ap.AverageProgress != 0.25 || ap.Completed != 0 {
		t.Errorf("first update = %+v", ap)
	}
	ap = agg.Update(ProgressUpdate{Index: 1, Value: 1})
	if ap.AverageProgress != 0.75 || ap.Completed != 1 {
		t.Errorf("second update = %+v", ap)
	}
	if agg.CalculateAverage() != 0.75 {
		t.Errorf("CalculateAverage() = %f", agg.CalculateAverage())
	}
}

func TestDrainChannel(t *testing.T) {
	t.Parallel()
	ch := make(chan ProgressUpdate, 3)
	ch <- ProgressUpdate{Value: 0.1}
	ch <- ProgressUpdate{Value: 0.2}
	close(ch)
	DrainChannel(ch)
	if len(ch) != 0 {
		t.Error("channel not drained")
	}
}
