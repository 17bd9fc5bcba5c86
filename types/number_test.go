package types

import (
	"math"
	"testing"
)

func numberSamples() []Number {
	return []Number{
		SignedNumber(-5), SignedNumber(-1), SignedNumber(0), SignedNumber(3), SignedNumber(math.MaxInt64),
		UnsignedNumber(0), UnsignedNumber(2), UnsignedNumber(3), UnsignedNumber(math.MaxUint64),
		RealNumber(-3.5), RealNumber(-0.0), RealNumber(0.5), RealNumber(3), RealNumber(3.5), RealNumber(1e30),
		// magnitudes where float64 can no longer hold every integer
		SignedNumber(1<<53 - 1), SignedNumber(1 << 53), SignedNumber(1<<53 + 1), SignedNumber(math.MinInt64),
		UnsignedNumber(1 << 53), UnsignedNumber(1<<53 + 1), UnsignedNumber(1 << 63), UnsignedNumber(math.MaxUint64 - 1),
		RealNumber(1<<53 - 1), RealNumber(1 << 53), RealNumber(1<<53 + 2),
		RealNumber(math.MaxInt64), RealNumber(math.MinInt64), RealNumber(math.MaxUint64),
		RealNumber(math.Inf(1)), RealNumber(math.Inf(-1)),
	}
}

func TestNumberEqualSymmetric(t *testing.T) {
	for _, a := range numberSamples() {
		for _, b := range numberSamples() {
			if a.Equal(b) != b.Equal(a) {
				t.Errorf("Equal not symmetric for %s(%s) and %s(%s)", a, a.Kind(), b, b.Kind())
			}
		}
	}
}

func TestNumberStrictWeakOrder(t *testing.T) {
	samples := numberSamples()
	for _, a := range samples {
		if a.Less(a) {
			t.Errorf("Less not irreflexive for %s(%s)", a, a.Kind())
		}
		for _, b := range samples {
			if a.Less(b) && b.Less(a) {
				t.Errorf("Less not antisymmetric for %s(%s) and %s(%s)", a, a.Kind(), b, b.Kind())
			}
			for _, c := range samples {
				if a.Less(b) && b.Less(c) && !a.Less(c) {
					t.Errorf("Less not transitive: %s < %s < %s", a, b, c)
				}
			}
		}
	}
}

func TestNumberEquivalenceIsTransitive(t *testing.T) {
	samples := numberSamples()
	equiv := func(a, b Number) bool { return !a.Less(b) && !b.Less(a) }
	for _, a := range samples {
		for _, b := range samples {
			if got := a.Equal(b); got != equiv(a, b) {
				t.Errorf("Equal(%s(%s), %s(%s)) = %v, but ordering says %v", a, a.Kind(), b, b.Kind(), got, !got)
			}
			if a.Compare(b) != -b.Compare(a) {
				t.Errorf("Compare not antisymmetric for %s(%s) and %s(%s)", a, a.Kind(), b, b.Kind())
			}
			for _, c := range samples {
				if equiv(a, b) && equiv(b, c) && !equiv(a, c) {
					t.Errorf("incomparability not transitive: %s(%s) ~ %s(%s) ~ %s(%s)",
						a, a.Kind(), b, b.Kind(), c, c.Kind())
				}
			}
		}
	}
}

func TestNumberLargeMagnitudes(t *testing.T) {
	tests := []struct {
		name  string
		a, b  Number
		equal bool
		less  bool
	}{
		{"2^53 signed equals real", SignedNumber(1 << 53), RealNumber(1 << 53), true, false},
		{"2^53+1 signed above real 2^53", SignedNumber(1<<53 + 1), RealNumber(1 << 53), false, false},
		{"real 2^53 below 2^53+1 signed", RealNumber(1 << 53), SignedNumber(1<<53 + 1), false, true},
		{"2^53+1 unsigned above real 2^53", UnsignedNumber(1<<53 + 1), RealNumber(1 << 53), false, false},
		{"max int below real 2^63", SignedNumber(math.MaxInt64), RealNumber(math.MaxInt64), false, true},
		{"min int equals real -2^63", SignedNumber(math.MinInt64), RealNumber(math.MinInt64), true, false},
		{"real 2^63 equals unsigned 2^63", RealNumber(math.MaxInt64), UnsignedNumber(1 << 63), true, false},
		{"max uint below real 2^64", UnsignedNumber(math.MaxUint64), RealNumber(math.MaxUint64), false, true},
		{"infinity above max uint", RealNumber(math.Inf(1)), UnsignedNumber(math.MaxUint64), false, false},
		{"negative infinity below min int", RealNumber(math.Inf(-1)), SignedNumber(math.MinInt64), false, true},
		{"fraction above its integer", RealNumber(-2.5), SignedNumber(-3), false, false},
		{"negative zero equals unsigned zero", RealNumber(math.Copysign(0, -1)), UnsignedNumber(0), true, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Equal(tt.b); got != tt.equal {
				t.Errorf("Equal = %v, want %v", got, tt.equal)
			}
			if got := tt.a.Less(tt.b); got != tt.less {
				t.Errorf("Less = %v, want %v", got, tt.less)
			}
		})
	}
}

func TestNumberMixedSign(t *testing.T) {
	tests := []struct {
		name  string
		a, b  Number
		equal bool
		less  bool
	}{
		{"neg signed vs unsigned", SignedNumber(-3), UnsignedNumber(3), false, true},
		{"neg signed vs max unsigned", SignedNumber(-1), UnsignedNumber(math.MaxUint64), false, true},
		{"unsigned vs neg signed", UnsignedNumber(0), SignedNumber(-1), false, false},
		{"signed equals unsigned", SignedNumber(3), UnsignedNumber(3), true, false},
		{"signed below unsigned", SignedNumber(2), UnsignedNumber(3), false, true},
		{"neg real vs unsigned", RealNumber(-0.5), UnsignedNumber(0), false, true},
		{"unsigned vs neg real", UnsignedNumber(0), RealNumber(-0.5), false, false},
		{"unsigned below real", UnsignedNumber(2), RealNumber(3.5), false, true},
		{"real equals unsigned", RealNumber(3), UnsignedNumber(3), true, false},
		{"signed equals real", SignedNumber(-3), RealNumber(-3), true, false},
		{"signed below real", SignedNumber(3), RealNumber(3.5), false, true},
		{"real below signed", RealNumber(3.5), SignedNumber(4), false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Equal(tt.b); got != tt.equal {
				t.Errorf("Equal = %v, want %v", got, tt.equal)
			}
			if got := tt.a.Less(tt.b); got != tt.less {
				t.Errorf("Less = %v, want %v", got, tt.less)
			}
		})
	}
}

func TestNumberNaN(t *testing.T) {
	nan := RealNumber(math.NaN())
	for _, n := range numberSamples() {
		if nan.Equal(n) || n.Equal(nan) {
			t.Errorf("NaN compared equal to %s", n)
		}
		if nan.Less(n) || n.Less(nan) {
			t.Errorf("NaN ordered against %s", n)
		}
		if nan.Compare(n) != 0 {
			t.Errorf("Compare(NaN, %s) = %d, want 0", n, nan.Compare(n))
		}
	}
}

func TestNumberString(t *testing.T) {
	tests := []struct {
		n    Number
		want string
	}{
		{SignedNumber(-2), "-2"},
		{UnsignedNumber(math.MaxUint64), "18446744073709551615"},
		{RealNumber(2.1), "2.1"},
		{RealNumber(3), "3"},
		{RealNumber(math.Inf(-1)), "-Infinity"},
	}
	for _, tt := range tests {
		if got := tt.n.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestNumberCasts(t *testing.T) {
	if got := RealNumber(5.9).Int64(); got != 5 {
		t.Errorf("Int64 of 5.9 = %d, want 5", got)
	}
	if got := RealNumber(-5.9).Int64(); got != -5 {
		t.Errorf("Int64 of -5.9 = %d, want -5", got)
	}
	if got := SignedNumber(-1).Uint64(); got != math.MaxUint64 {
		t.Errorf("Uint64 of -1 = %d, want wraparound", got)
	}
	if got := UnsignedNumber(7).Float64(); got != 7 {
		t.Errorf("Float64 of 7u = %v", got)
	}
}
