package fourier

import "testing"

func TestComplexPool(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		size    int
		wantCap int
	}{
		{"small", 10, 64},
		{"exact class", 256, 256},
		{"medium", 1000, 1024},
		{"large", 5000, 16384},
		{"too large", 5_000_000, 5_000_000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			buf := acquireComplex(tt.size)
			if len(buf) != tt.size {
				t.Errorf("acquireComplex(%d) length = %d", tt.size, len(buf))
			}
			if cap(buf) != tt.wantCap {
				t.Errorf("acquireComplex(%d) capacity = %d, want %d", tt.size, cap(buf), tt.wantCap)
			}
			for i := range buf {
				if buf[i] != 0 {
					t.Fatalf("acquireComplex(%d) not zeroed at index %d", tt.size, i)
				}
				buf[i] = 1 + 1i
			}
			releaseComplex(buf)
		})
	}
	releaseComplex(nil)
}

func TestComplexPoolIndexMatchesLinearSearch(t *testing.T) {
	t.Parallel()
	linear := func(size int) int {
		for i, s := range complexSizes {
			if size <= s {
				return i
			}
		}
		return -1
	}
	for size := 1; size <= complexSizes[len(complexSizes)-1]+1; size = size*3/2 + 1 {
		if got, want := complexPoolIndex(size), linear(size); got != want {
			t.Errorf("complexPoolIndex(%d) = %d, want %d", size, got, want)
		}
	}
}

func TestPreWarm(t *testing.T) {
	t.Parallel()
	PreWarm(4096)
	PreWarm(1 << 30)
	EnsureWarmed(1024)
	EnsureWarmed(1024)
	buf := acquireComplex(4096)
	if len(buf) != 4096 {
		t.Errorf("length = %d", len(buf))
	}
	releaseComplex(buf)
}
