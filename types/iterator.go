package types

import "iter"

type iterSource int

const (
	iterNone iterSource = iota
	iterArray
	iterObject
)

// Iterator walks the elements of an Array or an Object with one type.
// Array iterators carry a position; object iterators walk a snapshot of
// the keys taken at Begin, in sorted order. Every iterator past the end,
// and every iterator over a scalar, is invalid, and all invalid iterators
// are Equal whatever they were built from.
//
// An iterator is single pass: call Begin again to restart.
type Iterator struct {
	src   iterSource
	owner *Value
	arr   []*Value
	keys  []string
	obj   map[string]*Value
	pos   int
}

// Begin returns an iterator at the first element. Scalars and Undefined
// give an iterator already equal to End.
func (v *Value) Begin() Iterator {
	switch v.kind {
	case KindArray:
		return Iterator{src: iterArray, owner: v, arr: v.arr}
	case KindObject:
		return Iterator{src: iterObject, owner: v, keys: sortedKeys(v.obj), obj: v.obj}
	default:
		return Iterator{}
	}
}

// End returns the past-the-end iterator
func (v *Value) End() Iterator {
	switch v.kind {
	case KindArray:
		return Iterator{src: iterArray, owner: v, arr: v.arr, pos: len(v.arr)}
	case KindObject:
		return Iterator{src: iterObject, owner: v, obj: v.obj, pos: len(v.obj)}
	default:
		return Iterator{}
	}
}

// Valid reports whether the iterator points at an element
func (it Iterator) Valid() bool {
	switch it.src {
	case iterArray:
		return it.pos < len(it.arr)
	case iterObject:
		return it.pos < len(it.keys)
	default:
		return false
	}
}

// Next advances the iterator. It is a no-op once the iterator is invalid.
func (it *Iterator) Next() {
	if it.Valid() {
		it.pos++
	}
}

// Key returns the array index (Unsigned) or object key (String)
func (it Iterator) Key() (Value, error) {
	if !it.Valid() {
		return Value{}, NewTypeError("key", "requires a valid iterator")
	}
	if it.src == iterArray {
		return NewUint(uint64(it.pos)), nil
	}
	return NewString(it.keys[it.pos]), nil
}

// Value returns a handle to the current element
func (it Iterator) Value() (*Value, error) {
	if !it.Valid() {
		return nil, NewTypeError("value", "requires a valid iterator")
	}
	if it.src == iterArray {
		return it.arr[it.pos], nil
	}
	e, ok := it.obj[it.keys[it.pos]]
	if !ok {
		return nil, NewTypeError("value", "key %q was removed during iteration", it.keys[it.pos])
	}
	return e, nil
}

// Equal compares two iterators. Invalid iterators are all equal; valid
// ones are equal when they walk the same value at the same position.
func (it Iterator) Equal(other Iterator) bool {
	a, b := it.Valid(), other.Valid()
	if !a && !b {
		return true
	}
	if a != b {
		return false
	}
	return it.src == other.src && it.owner == other.owner && it.pos == other.pos
}

// All yields (key, element) pairs for range-over-func loops.
// Scalars yield nothing.
func (v *Value) All() iter.Seq2[Value, *Value] {
	return func(yield func(Value, *Value) bool) {
		for it := v.Begin(); it.Valid(); it.Next() {
			k, _ := it.Key()
			e, err := it.Value()
			if err != nil {
				continue
			}
			if !yield(k, e) {
				return
			}
		}
	}
}
