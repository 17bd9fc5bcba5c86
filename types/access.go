package types

import (
	"math"
	"sort"
	"strconv"
)

// MaxArrayLen is the largest length Index grows an Array to
const MaxArrayLen = 1 << 26

// Index returns a mutable handle to the element at key, creating it when
// absent. A numeric key addresses an Array, which grows with Undefined
// slots up to key; a string key addresses an Object, which gains an
// Undefined entry. An Undefined receiver is first turned into the
// structure the key asks for.
func (v *Value) Index(key Value) (*Value, error) {
	if err := v.writable("index"); err != nil {
		return nil, err
	}

	var idx int
	switch {
	case key.kind.IsNumber():
		i, err := arrayIndex(key.num)
		if err != nil {
			return nil, err
		}
		idx = i
	case key.kind == KindString:
	default:
		return nil, NewTypeError("index", "key must be a number or a string, got %s", key.kind)
	}

	growing := v.kind == KindUndefined || (v.kind == KindArray && idx >= len(v.arr))
	if key.kind != KindString && growing && idx >= MaxArrayLen {
		return nil, NewRangeError("index", "index %d beyond the array limit %d", idx, MaxArrayLen)
	}

	if v.kind == KindUndefined {
		if key.kind == KindString {
			*v = NewEmptyObject()
		} else {
			*v = NewEmptyArray()
		}
	}

	switch v.kind {
	case KindArray:
		if key.kind == KindString {
			return nil, NewTypeError("index", "string key %q into an array", key.str)
		}
		if idx >= len(v.arr) {
			v.grow(idx + 1)
		}
		return v.arr[idx], nil
	case KindObject:
		if key.kind != KindString {
			return nil, NewTypeError("index", "%s key into an object", key.kind)
		}
		e, ok := v.obj[key.str]
		if !ok {
			e = &Value{}
			v.obj[key.str] = e
		}
		return e, nil
	default:
		return nil, NewTypeError("index", "requires a structured value, got %s", v.kind)
	}
}

// grow extends an Array to n elements with Undefined handles, allocated
// in one block
func (v *Value) grow(n int) {
	add := n - len(v.arr)
	slots := make([]Value, add)
	arr := make([]*Value, len(v.arr), n)
	copy(arr, v.arr)
	for i := range slots {
		arr = append(arr, &slots[i])
	}
	v.arr = arr
}

// Get is the read-only form of Index. It returns the element by value, so
// a structured result shares storage with the receiver the way a plain
// assignment does. A missing element yields Undefined; only a key kind that
// does not fit the receiver, or a scalar receiver, is an error.
func (v Value) Get(key Value) (Value, error) {
	switch v.kind {
	case KindUndefined:
		if !key.kind.IsNumber() && key.kind != KindString {
			return Value{}, NewTypeError("get", "key must be a number or a string, got %s", key.kind)
		}
		return Undefined(), nil
	case KindArray:
		if !key.kind.IsNumber() {
			return Value{}, NewTypeError("get", "%s key into an array", key.kind)
		}
		idx, err := arrayIndex(key.num)
		if err != nil || idx >= len(v.arr) {
			return Undefined(), nil
		}
		return *v.arr[idx], nil
	case KindObject:
		if key.kind != KindString {
			return Value{}, NewTypeError("get", "%s key into an object", key.kind)
		}
		if e, ok := v.obj[key.str]; ok {
			return *e, nil
		}
		return Undefined(), nil
	default:
		return Value{}, NewTypeError("get", "requires a structured value, got %s", v.kind)
	}
}

// arrayIndex turns a numeric key into a slice index. Reals truncate.
func arrayIndex(n Number) (int, error) {
	switch n.kind {
	case KindSigned:
		if n.i < 0 {
			return 0, NewRangeError("index", "negative index %d", n.i)
		}
		if uint64(n.i) > math.MaxInt {
			return 0, NewRangeError("index", "index %d too large", n.i)
		}
		return int(n.i), nil
	case KindUnsigned:
		if n.u > math.MaxInt {
			return 0, NewRangeError("index", "index %d too large", n.u)
		}
		return int(n.u), nil
	default:
		if math.IsNaN(n.f) || n.f < 0 || n.f >= math.MaxInt {
			return 0, NewRangeError("index", "invalid index %s", n)
		}
		return int(n.f), nil
	}
}

// PushBack appends a clone of x to an Array
func (v *Value) PushBack(x Value) error {
	if err := v.writable("push_back"); err != nil {
		return err
	}
	if v.kind != KindArray {
		return NewTypeError("push_back", "requires an array, got %s", v.kind)
	}
	c := x.Clone()
	v.arr = append(v.arr, &c)
	return nil
}

// Keys returns an Array with the keys of an Object (sorted) or the
// indices of an Array as Unsigned numbers. Other kinds give an empty Array.
func (v Value) Keys() Value {
	out := NewEmptyArray()
	switch v.kind {
	case KindArray:
		for i := range v.arr {
			k := NewUint(uint64(i))
			out.arr = append(out.arr, &k)
		}
	case KindObject:
		for _, key := range sortedKeys(v.obj) {
			k := NewString(key)
			out.arr = append(out.arr, &k)
		}
	}
	return out
}

// Values returns an Array with clones of the elements, in Keys order
func (v Value) Values() Value {
	out := NewEmptyArray()
	switch v.kind {
	case KindArray:
		for _, e := range v.arr {
			c := e.Clone()
			out.arr = append(out.arr, &c)
		}
	case KindObject:
		for _, key := range sortedKeys(v.obj) {
			c := v.obj[key].Clone()
			out.arr = append(out.arr, &c)
		}
	}
	return out
}

// Size returns the element count of an Array or Object
func (v Value) Size() (int, error) {
	switch v.kind {
	case KindArray:
		return len(v.arr), nil
	case KindObject:
		return len(v.obj), nil
	default:
		return 0, NewTypeError("size", "requires a structured value, got %s", v.kind)
	}
}

// Len is Size for callers that already know v is structured. Scalars give 0.
func (v Value) Len() int {
	n, _ := v.Size()
	return n
}

// Clear empties an Array or Object, keeping its kind
func (v *Value) Clear() error {
	if err := v.writable("clear"); err != nil {
		return err
	}
	switch v.kind {
	case KindArray:
		v.arr = []*Value{}
		return nil
	case KindObject:
		v.obj = make(map[string]*Value)
		return nil
	default:
		return NewTypeError("clear", "requires a structured value, got %s", v.kind)
	}
}

// Delete removes the element at key. Array elements after it shift down.
// It reports whether something was removed. Deleting from Undefined is a no-op.
func (v *Value) Delete(key Value) (bool, error) {
	if err := v.writable("delete"); err != nil {
		return false, err
	}
	switch v.kind {
	case KindUndefined:
		return false, nil
	case KindArray:
		if !key.kind.IsNumber() {
			return false, NewTypeError("delete", "%s key into an array", key.kind)
		}
		idx, err := arrayIndex(key.num)
		if err != nil || idx >= len(v.arr) {
			return false, nil
		}
		v.arr = append(v.arr[:idx], v.arr[idx+1:]...)
		return true, nil
	case KindObject:
		if key.kind != KindString {
			return false, NewTypeError("delete", "%s key into an object", key.kind)
		}
		if _, ok := v.obj[key.str]; !ok {
			return false, nil
		}
		delete(v.obj, key.str)
		return true, nil
	default:
		return false, NewTypeError("delete", "requires a structured value, got %s", v.kind)
	}
}

// sortedKeys fixes the iteration order of objects: byte-wise by key
func sortedKeys(m map[string]*Value) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// segmentIndex reads a path segment as an array index
func segmentIndex(seg Value) (int, bool) {
	switch {
	case seg.kind.IsNumber():
		idx, err := arrayIndex(seg.num)
		return idx, err == nil
	case seg.kind == KindString:
		u, err := strconv.ParseUint(seg.str, 10, 64)
		if err != nil || u > math.MaxInt {
			return 0, false
		}
		return int(u), true
	default:
		return 0, false
	}
}
