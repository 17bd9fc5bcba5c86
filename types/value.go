package types

import (
	"fmt"
	"reflect"
)

// Value is a dynamically typed variable: exactly one Kind is active and
// the payload fields that belong to other kinds are zero.
//
// The zero Value is Undefined. Arrays and objects hold their elements
// through handles so that Index and At can return stable *Value
// references. A plain Go assignment of a structured Value shares those
// handles; use Clone for an independent copy. Every method that stores a
// Value stores a clone.
type Value struct {
	kind Kind
	b    bool
	num  Number
	str  string
	fn   *Function
	arr  []*Value
	obj  map[string]*Value
}

// NewUndefined creates an Undefined value
func NewUndefined() Value {
	return Value{}
}

// NewNull creates a Null value
func NewNull() Value {
	return Value{kind: KindNull}
}

// NewBool creates a Boolean value
func NewBool(b bool) Value {
	return Value{kind: KindBoolean, b: b}
}

// NewInt creates a Signed number
func NewInt(i int64) Value {
	return Value{kind: KindSigned, num: SignedNumber(i)}
}

// NewUint creates an Unsigned number
func NewUint(u uint64) Value {
	return Value{kind: KindUnsigned, num: UnsignedNumber(u)}
}

// NewReal creates a Real number
func NewReal(f float64) Value {
	return Value{kind: KindReal, num: RealNumber(f)}
}

// NewNumber wraps a Number, keeping its subkind
func NewNumber(n Number) Value {
	return Value{kind: n.kind, num: n}
}

// NewString creates a String value
func NewString(s string) Value {
	return Value{kind: KindString, str: s}
}

// NewChar creates a one-character String value
func NewChar(r rune) Value {
	return Value{kind: KindString, str: string(r)}
}

// NewFunc wraps a function holder. A nil holder is stored as an empty one.
func NewFunc(f *Function) Value {
	if f == nil {
		f = &Function{id: functionSeq.Add(1)}
	}
	return Value{kind: KindFunction, fn: f}
}

// NewArray creates an Array holding clones of elems
func NewArray(elems ...Value) Value {
	arr := make([]*Value, len(elems))
	for i := range elems {
		c := elems[i].Clone()
		arr[i] = &c
	}
	return Value{kind: KindArray, arr: arr}
}

// NewEmptyArray creates an Array with no elements
func NewEmptyArray() Value {
	return Value{kind: KindArray, arr: []*Value{}}
}

// NewObject creates an Object holding clones of m's values
func NewObject(m map[string]Value) Value {
	obj := make(map[string]*Value, len(m))
	for k, e := range m {
		c := e.Clone()
		obj[k] = &c
	}
	return Value{kind: KindObject, obj: obj}
}

// NewEmptyObject creates an Object with no entries
func NewEmptyObject() Value {
	return Value{kind: KindObject, obj: make(map[string]*Value)}
}

// From converts a Go value into a Value. Integers of any width become
// Signed or Unsigned by signedness, floats become Real, funcs become
// Function holders, slices become Arrays and string-keyed maps Objects.
// A rune is an int32 and therefore Signed; use NewChar for characters.
func From(x any) (Value, error) {
	switch t := x.(type) {
	case nil:
		return NewNull(), nil
	case Value:
		return t.Clone(), nil
	case *Value:
		if t == nil {
			return NewNull(), nil
		}
		return t.Clone(), nil
	case *Function:
		return NewFunc(t), nil
	case Number:
		return NewNumber(t), nil
	}
	return fromReflect(reflect.ValueOf(x))
}

func fromReflect(rv reflect.Value) (Value, error) {
	switch rv.Kind() {
	case reflect.Bool:
		return NewBool(rv.Bool()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return NewInt(rv.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return NewUint(rv.Uint()), nil
	case reflect.Float32, reflect.Float64:
		return NewReal(rv.Float()), nil
	case reflect.String:
		return NewString(rv.String()), nil
	case reflect.Func:
		return NewFunc(functionOf(rv)), nil
	case reflect.Interface, reflect.Pointer:
		if rv.IsNil() {
			return NewNull(), nil
		}
		return From(rv.Elem().Interface())
	case reflect.Slice, reflect.Array:
		if rv.Kind() == reflect.Slice && rv.IsNil() {
			return NewEmptyArray(), nil
		}
		out := Value{kind: KindArray, arr: make([]*Value, rv.Len())}
		for i := 0; i < rv.Len(); i++ {
			e, err := From(rv.Index(i).Interface())
			if err != nil {
				return Value{}, err
			}
			out.arr[i] = &e
		}
		return out, nil
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return Value{}, NewTypeError("from", "object keys must be strings, got %s", rv.Type().Key())
		}
		out := NewEmptyObject()
		iter := rv.MapRange()
		for iter.Next() {
			e, err := From(iter.Value().Interface())
			if err != nil {
				return Value{}, err
			}
			out.obj[iter.Key().String()] = &e
		}
		return out, nil
	case reflect.Invalid:
		return NewNull(), nil
	default:
		return Value{}, NewTypeError("from", "cannot build a value from %s", rv.Type())
	}
}

// MustFrom is From that panics on error
func MustFrom(x any) Value {
	v, err := From(x)
	if err != nil {
		panic(err)
	}
	return v
}

// Clone returns a deep copy. Function holders are shared so identity
// survives copying.
func (v Value) Clone() Value {
	switch v.kind {
	case KindArray:
		arr := make([]*Value, len(v.arr))
		for i, e := range v.arr {
			c := e.Clone()
			arr[i] = &c
		}
		return Value{kind: KindArray, arr: arr}
	case KindObject:
		obj := make(map[string]*Value, len(v.obj))
		for k, e := range v.obj {
			c := e.Clone()
			obj[k] = &c
		}
		return Value{kind: KindObject, obj: obj}
	default:
		return v
	}
}

// Set replaces v with a clone of x
func (v *Value) Set(x Value) error {
	if err := v.writable("set"); err != nil {
		return err
	}
	*v = x.Clone()
	return nil
}

// Kind returns the active variant
func (v Value) Kind() Kind { return v.kind }

func (v Value) IsUndefined() bool  { return v.kind == KindUndefined }
func (v Value) IsNull() bool       { return v.kind == KindNull }
func (v Value) IsBoolean() bool    { return v.kind == KindBoolean }
func (v Value) IsNumber() bool     { return v.kind.IsNumber() }
func (v Value) IsSigned() bool     { return v.kind == KindSigned }
func (v Value) IsUnsigned() bool   { return v.kind == KindUnsigned }
func (v Value) IsReal() bool       { return v.kind == KindReal }
func (v Value) IsString() bool     { return v.kind == KindString }
func (v Value) IsFunction() bool   { return v.kind == KindFunction }
func (v Value) IsArray() bool      { return v.kind == KindArray }
func (v Value) IsObject() bool     { return v.kind == KindObject }
func (v Value) IsStructured() bool { return v.kind.IsStructured() }

// Number returns the numeric payload. ok is false for non-numbers.
func (v Value) Number() (n Number, ok bool) {
	if !v.kind.IsNumber() {
		return Number{}, false
	}
	return v.num, true
}

// Func returns the function holder, or nil
func (v Value) Func() *Function {
	if v.kind != KindFunction {
		return nil
	}
	return v.fn
}

// GoString renders the kind and the string coercion, for %#v
func (v Value) GoString() string {
	switch v.kind {
	case KindString:
		return fmt.Sprintf("types.Value{string %q}", v.str)
	case KindObject:
		return fmt.Sprintf("types.Value{object %d keys}", len(v.obj))
	default:
		return fmt.Sprintf("types.Value{%s %s}", v.kind, v.String())
	}
}
