// This file provides pooled complex buffers for the transforms so that a
// large multiplication does not allocate a fresh table per call.

package fourier

import (
	"math/bits"
	"sync"
	"sync/atomic"
)

// ─────────────────────────────────────────────────────────────────────────────
// Complex Slice Pools
// ─────────────────────────────────────────────────────────────────────────────

// complexPools pools []complex128 slices by size class. Size classes are
// powers of 4 from 64 to 4M samples (64 MiB at the top class).
var complexPools = [...]sync.Pool{
	{New: func() any { return make([]complex128, 64) }},
	{New: func() any { return make([]complex128, 256) }},
	{New: func() any { return make([]complex128, 1024) }},
	{New: func() any { return make([]complex128, 4096) }},
	{New: func() any { return make([]complex128, 16384) }},
	{New: func() any { return make([]complex128, 65536) }},
	{New: func() any { return make([]complex128, 262144) }},
	{New: func() any { return make([]complex128, 1048576) }},
	{New: func() any { return make([]complex128, 4194304) }},
}

var complexSizes = [...]int{64, 256, 1024, 4096, 16384, 65536, 262144, 1048576, 4194304}

// complexPoolIndex returns the pool index for a given size, or -1 if the
// size is too large for pooling. Size class i holds 4^(i+3) samples, so
// bits.Len(size-1) maps directly to the index.
func complexPoolIndex(size int) int {
	if size <= 0 {
		return 0
	}
	if size > complexSizes[len(complexSizes)-1] {
		return -1
	}
	idx := (bits.Len(uint(size-1)) - 5) / 2
	if idx < 0 {
		idx = 0
	}
	return idx
}

// acquireComplex returns a zeroed slice of exactly size samples. Release it
// with releaseComplex:
//
//	buf := acquireComplex(n)
//	defer releaseComplex(buf)
func acquireComplex(size int) []complex128 {
	idx := complexPoolIndex(size)
	if idx < 0 {
		return make([]complex128, size)
	}
	buf := complexPools[idx].Get().([]complex128)
	clear(buf)
	return buf[:size]
}

// releaseComplex returns buf to its pool. Slices whose capacity is not a
// size class were allocated directly and are left to the GC. Safe to call
// with nil.
func releaseComplex(buf []complex128) {
	if buf == nil {
		return
	}
	c := cap(buf)
	idx := complexPoolIndex(c)
	if idx >= 0 && complexSizes[idx] == c {
		complexPools[idx].Put(buf[:c])
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Pool Pre-warming
// ─────────────────────────────────────────────────────────────────────────────

// PreWarm pre-allocates buffers for transforms of the given length. Each
// multiplication holds two buffers of the transform length at once (the
// table and the forward-transform copy), plus a recursion scratch buffer.
func PreWarm(length int) {
	idx := complexPoolIndex(length)
	if idx < 0 {
		return
	}
	numBuffers := 3
	if length >= 1<<16 {
		numBuffers = 4
	}
	for range numBuffers {
		complexPools[idx].Put(make([]complex128, complexSizes[idx]))
	}
}

var poolsWarmed atomic.Bool

// EnsureWarmed calls PreWarm exactly once per process. It is safe to call
// concurrently; later calls return immediately.
func EnsureWarmed(length int) {
	if poolsWarmed.CompareAndSwap(false, true) {
		PreWarm(length)
	}
}
