package magnitude

// Cmp compares m and o and returns -1, 0 or +1.
//
// After discarding most-significant zeros, the longer magnitude is the
// larger one. Equal lengths are compared digit by digit from the most
// significant end, stopping at the first difference.
func (m Magnitude[D, L]) Cmp(o Magnitude[D, L]) int {
	m, o = m.Trim(), o.Trim()
	if len(m) != len(o) {
		if len(m) > len(o) {
			return 1
		}
		return -1
	}
	for i := len(m) - 1; i >= 0; i-- {
		switch {
		case m[i] > o[i]:
			return 1
		case m[i] < o[i]:
			return -1
		}
	}
	return 0
}

// Equal reports whether m == o.
func (m Magnitude[D, L]) Equal(o Magnitude[D, L]) bool { return m.Cmp(o) == 0 }

// Greater reports whether m > o.
func (m Magnitude[D, L]) Greater(o Magnitude[D, L]) bool { return m.Cmp(o) > 0 }

// GreaterEqual reports whether m >= o.
func (m Magnitude[D, L]) GreaterEqual(o Magnitude[D, L]) bool { return m.Cmp(o) >= 0 }

// Less reports whether m < o.
func (m Magnitude[D, L]) Less(o Magnitude[D, L]) bool { return m.Cmp(o) < 0 }

// LessEqual reports whether m <= o.
func (m Magnitude[D, L]) LessEqual(o Magnitude[D, L]) bool { return m.Cmp(o) <= 0 }
