package bignum

// rank orders the descriptor classes: NaN < -Inf < finite < +Inf.
func (d Descriptor) rank() int {
	switch d {
	case NaN:
		return 0
	case NegativeInfinity:
		return 1
	case PositiveInfinity:
		return 3
	default:
		return 2
	}
}

// Cmp compares x and y and returns -1, 0 or +1. The order is total:
//
//	NaN < -Inf < negative values < 0 < positive values < +Inf
//
// NaN compares equal to NaN and each infinity to itself. Finite values of
// the same sign compare by magnitude, reversed for negatives.
func (x *Bignum[D, L]) Cmp(y *Bignum[D, L]) int {
	rx, ry := x.desc.rank(), y.desc.rank()
	switch {
	case rx < ry:
		return -1
	case rx > ry:
		return 1
	case rx != 2:
		return 0
	}

	sx, sy := x.Sign(), y.Sign()
	switch {
	case sx < sy:
		return -1
	case sx > sy:
		return 1
	}
	return sx * x.mag.Cmp(y.mag)
}

// Equal reports whether x and y have the same descriptor and digits.
func (x *Bignum[D, L]) Equal(y *Bignum[D, L]) bool { return x.Cmp(y) == 0 }

// Less reports whether x < y.
func (x *Bignum[D, L]) Less(y *Bignum[D, L]) bool { return x.Cmp(y) < 0 }

// LessEqual reports whether x <= y.
func (x *Bignum[D, L]) LessEqual(y *Bignum[D, L]) bool { return x.Cmp(y) <= 0 }

// Greater reports whether x > y.
func (x *Bignum[D, L]) Greater(y *Bignum[D, L]) bool { return x.Cmp(y) > 0 }

// GreaterEqual reports whether x >= y.
func (x *Bignum[D, L]) GreaterEqual(y *Bignum[D, L]) bool { return x.Cmp(y) >= 0 }

// CmpAbs compares |x| and |y|. Infinities are larger than every finite
// value; NaN is smaller than everything but NaN.
func (x *Bignum[D, L]) CmpAbs(y *Bignum[D, L]) int {
	var ax, ay Bignum[D, L]
	return ax.Abs(x).Cmp(ay.Abs(y))
}
