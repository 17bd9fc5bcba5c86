package types

import (
	"cmp"
	"math"
	"strconv"
)

// Number holds exactly one of the three numeric subkinds.
// The subkind is never unified away: a Signed 3 and an Unsigned 3 are
// equal under Equal but report different kinds.
type Number struct {
	kind Kind
	i    int64
	u    uint64
	f    float64
}

// SignedNumber creates a signed integral number
func SignedNumber(i int64) Number {
	return Number{kind: KindSigned, i: i}
}

// UnsignedNumber creates an unsigned integral number
func UnsignedNumber(u uint64) Number {
	return Number{kind: KindUnsigned, u: u}
}

// RealNumber creates a floating point number
func RealNumber(f float64) Number {
	return Number{kind: KindReal, f: f}
}

// Kind returns KindSigned, KindUnsigned or KindReal
func (n Number) Kind() Kind {
	return n.kind
}

// Int64 casts the number to int64. Reals truncate toward zero.
func (n Number) Int64() int64 {
	switch n.kind {
	case KindUnsigned:
		return int64(n.u)
	case KindReal:
		return int64(n.f)
	default:
		return n.i
	}
}

// Uint64 casts the number to uint64. Negative signed values wrap.
func (n Number) Uint64() uint64 {
	switch n.kind {
	case KindSigned:
		return uint64(n.i)
	case KindReal:
		return uint64(n.f)
	default:
		return n.u
	}
}

// Float64 casts the number to float64
func (n Number) Float64() float64 {
	switch n.kind {
	case KindSigned:
		return float64(n.i)
	case KindUnsigned:
		return float64(n.u)
	default:
		return n.f
	}
}

// IsZero reports whether the active subkind holds zero
func (n Number) IsZero() bool {
	switch n.kind {
	case KindSigned:
		return n.i == 0
	case KindUnsigned:
		return n.u == 0
	default:
		return n.f == 0
	}
}

// String returns the canonical decimal text of the active subkind
func (n Number) String() string {
	switch n.kind {
	case KindSigned:
		return strconv.FormatInt(n.i, 10)
	case KindUnsigned:
		return strconv.FormatUint(n.u, 10)
	default:
		return formatReal(n.f)
	}
}

func formatReal(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// Equal compares two numbers across subkinds exactly. A negative operand
// never equals an unsigned one; NaN equals nothing.
func (n Number) Equal(o Number) bool {
	c, ok := n.order(o)
	return ok && c == 0
}

// Less is a strict weak ordering across subkinds. A negative operand is
// less than every unsigned one. NaN is neither less nor greater than
// anything.
func (n Number) Less(o Number) bool {
	c, ok := n.order(o)
	return ok && c < 0
}

// Compare returns -1, 0 or +1. NaN compares 0 against every number even
// though it Equals none of them.
func (n Number) Compare(o Number) int {
	c, _ := n.order(o)
	return c
}

// order is the exact three-way comparison. ok is false when either side is NaN.
func (n Number) order(o Number) (int, bool) {
	if n.kind == KindReal && math.IsNaN(n.f) || o.kind == KindReal && math.IsNaN(o.f) {
		return 0, false
	}
	switch {
	case n.kind == KindReal && o.kind == KindReal:
		return cmp.Compare(n.f, o.f), true
	case n.kind == KindReal:
		return realVsInt(n.f, o), true
	case o.kind == KindReal:
		return -realVsInt(o.f, n), true
	}

	switch {
	case n.kind == KindSigned && o.kind == KindSigned:
		return cmp.Compare(n.i, o.i), true
	case n.kind == KindUnsigned && o.kind == KindUnsigned:
		return cmp.Compare(n.u, o.u), true
	case n.kind == KindSigned:
		if n.i < 0 {
			return -1, true
		}
		return cmp.Compare(uint64(n.i), o.u), true
	default:
		if o.i < 0 {
			return 1, true
		}
		return cmp.Compare(n.u, uint64(o.i)), true
	}
}

const (
	twoTo63 = 1 << 63
	twoTo64 = 1 << 64
)

// realVsInt compares a non-NaN real with an integral number without
// rounding the integer through float64
func realVsInt(f float64, n Number) int {
	if n.kind == KindUnsigned {
		switch {
		case f < 0:
			return -1
		case f >= twoTo64:
			return 1
		}
		t := math.Trunc(f)
		if c := cmp.Compare(uint64(t), n.u); c != 0 {
			return c
		}
		return cmp.Compare(f, t)
	}

	switch {
	case f < -twoTo63:
		return -1
	case f >= twoTo63:
		return 1
	}
	t := math.Trunc(f)
	if c := cmp.Compare(int64(t), n.i); c != 0 {
		return c
	}
	return cmp.Compare(f, t)
}
