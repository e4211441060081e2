package magnitude

import "github.com/agbru/bncalc/internal/digits"

// Add adds addend into m in place, growing m by at most one digit beyond
// the longer operand. addend may alias m.
func (m *Magnitude[D, L]) Add(addend Magnitude[D, L]) {
	maxDigit := digits.MaxOf[D, L]()
	out := *m
	n := max(len(out), len(addend))
	var carry uint64
	for i := 0; i < n || carry != 0; i++ {
		if i == len(out) {
			out = append(out, 0)
		}
		sum := uint64(out[i]) + carry
		if i < len(addend) {
			sum += uint64(addend[i])
		}
		if sum > maxDigit {
			out[i] = D(sum - maxDigit - 1)
			carry = 1
		} else {
			out[i] = D(sum)
			carry = 0
		}
	}
	*m = out.Trim()
}

// shiftLeft1 doubles m in place.
func (m *Magnitude[D, L]) shiftLeft1() {
	radix := digits.Radix[D, L]()
	out := *m
	var carry uint64
	for i, d := range out {
		v := uint64(d)<<1 + carry
		if v >= radix {
			v -= radix
			carry = 1
		} else {
			carry = 0
		}
		out[i] = D(v)
	}
	if carry != 0 {
		out = append(out, 1)
	}
	*m = out
}

// shiftRight1 halves m in place, discarding the remainder.
func (m *Magnitude[D, L]) shiftRight1() {
	radix := digits.Radix[D, L]()
	out := *m
	var rem uint64
	for i := len(out) - 1; i >= 0; i-- {
		cur := rem*radix + uint64(out[i])
		out[i] = D(cur >> 1)
		rem = cur & 1
	}
	*m = out.Trim()
}
