package types

import (
	"strings"
	"unicode/utf8"
)

// ParsePath splits a dotted path. Empty segments are dropped, so
// "a..b." gives [a b].
func ParsePath(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool { return r == '.' })
}

// pathSegments normalises a path: a dotted string (or anything that
// coerces to one) or an Array of string/number keys.
func pathSegments(op string, path Value) ([]Value, error) {
	switch path.kind {
	case KindArray:
		segs := make([]Value, len(path.arr))
		for i, e := range path.arr {
			if e.kind != KindString && !e.kind.IsNumber() {
				return nil, NewTypeError(op, "path element %d is a %s", i, e.kind)
			}
			segs[i] = *e
		}
		return segs, nil
	case KindString, KindSigned, KindUnsigned, KindReal:
		parts := ParsePath(path.String())
		segs := make([]Value, len(parts))
		for i, p := range parts {
			segs[i] = NewString(p)
		}
		return segs, nil
	default:
		return nil, NewTypeError(op, "path must be a string or an array, got %s", path.kind)
	}
}

// At returns a mutable handle to the element named by path, building the
// way there. Every segment but the last becomes an Object when it is not
// one already, replacing whatever was there; the last is created as
// Undefined when absent. Numeric keys are used as object keys in decimal.
// A receiver that is not an Object is replaced by an empty one.
func (v *Value) At(path Value) (*Value, error) {
	if err := v.writable("at"); err != nil {
		return nil, err
	}
	segs, err := pathSegments("at", path)
	if err != nil {
		return nil, err
	}
	if len(segs) == 0 {
		return nil, NewRangeError("at", "requires at least one path element")
	}

	if v.kind != KindObject {
		*v = NewEmptyObject()
	}

	cur := v
	for i, seg := range segs {
		key := seg.String()
		next, ok := cur.obj[key]
		if !ok {
			next = &Value{}
			cur.obj[key] = next
		}
		if i < len(segs)-1 && next.kind != KindObject {
			*next = NewEmptyObject()
		}
		cur = next
	}
	return cur, nil
}

// Lookup is the read-only form of At. It never creates anything and
// returns Undefined as soon as a segment is missing, is Undefined, or
// cannot be followed. Objects are keyed by the segment's text; arrays by
// segments that read as non-negative integers. The result is returned by
// value, as Get does. Only a scalar receiver is an error.
func (v Value) Lookup(path Value) (Value, error) {
	switch {
	case v.kind == KindUndefined:
		return Undefined(), nil
	case !v.kind.IsStructured():
		return Value{}, NewTypeError("lookup", "requires a structured value, got %s", v.kind)
	}
	segs, err := pathSegments("lookup", path)
	if err != nil {
		return Value{}, err
	}

	cur := &v
	for _, seg := range segs {
		var next *Value
		switch cur.kind {
		case KindObject:
			next = cur.obj[seg.String()]
		case KindArray:
			if idx, ok := segmentIndex(seg); ok && idx < len(cur.arr) {
				next = cur.arr[idx]
			}
		}
		if next == nil || next.kind == KindUndefined {
			return Undefined(), nil
		}
		cur = next
	}
	return *cur, nil
}

// CreatePath stores a clone of value at path, building intermediate
// objects the way At does. A root that is not an Object becomes one.
func CreatePath(root *Value, path Value, value Value) error {
	dst, err := root.At(path)
	if err != nil {
		return err
	}
	*dst = value.Clone()
	return nil
}

// Split breaks the string coercion of v on a single-character delimiter
// and returns the non-empty pieces as an Array of strings
func (v Value) Split(delim Value) (Value, error) {
	d := delim.String()
	if utf8.RuneCountInString(d) != 1 {
		return Value{}, NewRangeError("split", "delimiter must be a single character, got %q", d)
	}
	out := NewEmptyArray()
	for _, part := range strings.Split(v.String(), d) {
		if part == "" {
			continue
		}
		s := NewString(part)
		out.arr = append(out.arr, &s)
	}
	return out, nil
}

// MergeFrom deep-merges other into v and returns v. A non-Object other is
// ignored. When v is not an Object it is replaced by a clone of other.
// Keys present on both sides recurse when both hold Objects and are
// overwritten otherwise.
func (v *Value) MergeFrom(other Value) (*Value, error) {
	if err := v.writable("merge_from"); err != nil {
		return nil, err
	}
	merge(v, other)
	return v, nil
}

func merge(dst *Value, src Value) {
	if src.kind != KindObject {
		return
	}
	if dst.kind != KindObject {
		*dst = src.Clone()
		return
	}
	for _, k := range sortedKeys(src.obj) {
		s := src.obj[k]
		if d, ok := dst.obj[k]; ok && d.kind == KindObject && s.kind == KindObject {
			merge(d, *s)
			continue
		}
		c := s.Clone()
		dst.obj[k] = &c
	}
}
