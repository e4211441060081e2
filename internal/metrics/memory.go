package metrics

import "runtime"

// MemorySnapshot is a point-in-time reading of the Go runtime memory stats.
type MemorySnapshot struct {
	HeapAlloc    uint64 // bytes in use by live objects
	HeapSys      uint64 // heap bytes obtained from the OS
	Sys          uint64 // all bytes obtained from the OS
	NumGC        uint32
	PauseTotalNs uint64
	HeapObjects  uint64
}

// MemoryCollector reads runtime memory statistics around an evaluation.
type MemoryCollector struct{}

func NewMemoryCollector() *MemoryCollector {
	return &MemoryCollector{}
}

// Snapshot reads the current statistics. It stops the world briefly.
func (mc *MemoryCollector) Snapshot() MemorySnapshot {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return MemorySnapshot{
		HeapAlloc:    m.HeapAlloc,
		HeapSys:      m.HeapSys,
		Sys:          m.Sys,
		NumGC:        m.NumGC,
		PauseTotalNs: m.PauseTotalNs,
		HeapObjects:  m.HeapObjects,
	}
}

// Delta returns the GC activity between before and s.
func (s MemorySnapshot) Delta(before MemorySnapshot) (gcRuns uint32, pauseNs uint64) {
	return s.NumGC - before.NumGC, s.PauseTotalNs - before.PauseTotalNs
}

// HeapGrowth returns the change of live heap bytes since before. It is
// negative when a collection freed more than the evaluation allocated.
func (s MemorySnapshot) HeapGrowth(before MemorySnapshot) int64 {
	return int64(s.HeapAlloc) - int64(before.HeapAlloc)
}

// BudgetBytes is the storage taken by one value of maxDigits digits that
// are widthBits wide, the largest magnitude a digit budget admits.
//
// Parameters:
//   - maxDigits: The digit budget.
//   - widthBits: The storage width of one digit (see digits.Width).
//
// Returns:
//   - uint64: The byte count, or 0 when either argument is not positive.
func BudgetBytes(maxDigits, widthBits int) uint64 {
	if maxDigits <= 0 || widthBits <= 0 {
		return 0
	}
	return uint64(maxDigits) * uint64(widthBits) / 8
}
