package types

import "strings"

// Equal checks deep equality. Numbers compare by value across subkinds;
// functions compare by identity.
func (v Value) Equal(other Value) bool {
	if v.kind.IsNumber() && other.kind.IsNumber() {
		return v.num.Equal(other.num)
	}
	if v.kind != other.kind {
		return false
	}

	switch v.kind {
	case KindUndefined, KindNull:
		return true
	case KindBoolean:
		return v.b == other.b
	case KindString:
		return v.str == other.str
	case KindFunction:
		return v.fn == other.fn
	case KindArray:
		if len(v.arr) != len(other.arr) {
			return false
		}
		for i := range v.arr {
			if !v.arr[i].Equal(*other.arr[i]) {
				return false
			}
		}
		return true
	case KindObject:
		if len(v.obj) != len(other.obj) {
			return false
		}
		for k, e := range v.obj {
			o, ok := other.obj[k]
			if !ok || !e.Equal(*o) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// Less reports whether v orders before other
func (v Value) Less(other Value) bool {
	return v.Compare(other) < 0
}

// Compare returns -1, 0 or +1. Kinds order as
// undefined < null < boolean < number < string < function < array < object;
// arrays compare lexicographically, objects lexicographically over their
// sorted (key, value) pairs, functions by creation order.
// Compare(x) == 0 implies Equal(x) except when a NaN is involved: NaN
// compares 0 against every number but Equals none of them.
func (v Value) Compare(other Value) int {
	if v.kind.IsNumber() && other.kind.IsNumber() {
		return v.num.Compare(other.num)
	}
	if r1, r2 := v.kind.rank(), other.kind.rank(); r1 != r2 {
		if r1 < r2 {
			return -1
		}
		return 1
	}

	switch v.kind {
	case KindBoolean:
		switch {
		case v.b == other.b:
			return 0
		case !v.b:
			return -1
		default:
			return 1
		}
	case KindString:
		return strings.Compare(v.str, other.str)
	case KindFunction:
		a, b := v.fn.seq(), other.fn.seq()
		switch {
		case a < b:
			return -1
		case a > b:
			return 1
		default:
			return 0
		}
	case KindArray:
		for i := 0; i < len(v.arr) && i < len(other.arr); i++ {
			if c := v.arr[i].Compare(*other.arr[i]); c != 0 {
				return c
			}
		}
		return compareLen(len(v.arr), len(other.arr))
	case KindObject:
		k1, k2 := sortedKeys(v.obj), sortedKeys(other.obj)
		for i := 0; i < len(k1) && i < len(k2); i++ {
			if c := strings.Compare(k1[i], k2[i]); c != 0 {
				return c
			}
			if c := v.obj[k1[i]].Compare(*other.obj[k2[i]]); c != 0 {
				return c
			}
		}
		return compareLen(len(k1), len(k2))
	default:
		return 0
	}
}

func compareLen(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
