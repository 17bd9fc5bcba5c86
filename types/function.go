package types

import (
	"fmt"
	"reflect"
	"sync/atomic"
)

var functionSeq atomic.Uint64

// Function stores one callable bound to a call signature.
// Equality is identity: two holders are equal only if they are the same
// holder, so independently built functions never compare equal.
type Function struct {
	fn  reflect.Value // zero or nil func when empty
	sig reflect.Type  // nil only for a holder built without a signature
	id  uint64        // creation order, used for ordering
}

// NewFunction binds fn under the signature of its type parameter.
// A nil fn produces an empty holder that still carries the signature.
// F must be a func type.
func NewFunction[F any](fn F) *Function {
	sig := reflect.TypeOf((*F)(nil)).Elem()
	if sig.Kind() != reflect.Func {
		panic(fmt.Sprintf("types.NewFunction: %s is not a func type", sig))
	}
	return &Function{fn: reflect.ValueOf(fn), sig: sig, id: functionSeq.Add(1)}
}

// functionOf wraps a func held in a reflect.Value, used by From
func functionOf(rv reflect.Value) *Function {
	return &Function{fn: rv, sig: rv.Type(), id: functionSeq.Add(1)}
}

// Signature returns the bound call signature, or nil
func (f *Function) Signature() reflect.Type {
	if f == nil {
		return nil
	}
	return f.sig
}

// Empty reports whether no callable is bound
func (f *Function) Empty() bool {
	return f == nil || !f.fn.IsValid() || f.fn.IsNil()
}

// String describes the signature
func (f *Function) String() string {
	if f == nil || f.sig == nil {
		return "func <empty>"
	}
	if f.Empty() {
		return f.sig.String() + " <empty>"
	}
	return f.sig.String()
}

func (f *Function) seq() uint64 {
	if f == nil {
		return 0
	}
	return f.id
}

// AsFunc extracts the callable of v as F. The stored signature must be
// exactly F. An empty holder with the right signature yields a nil F.
func AsFunc[F any](v Value) (F, error) {
	return castFunction[F](v, "as")
}

// Invoke is AsFunc for callers about to call the result: an empty holder
// is an error instead of a nil F.
func Invoke[F any](v Value) (F, error) {
	f, err := castFunction[F](v, "invoke")
	if err != nil {
		return f, err
	}
	if v.fn.Empty() {
		return f, typeErrorCause("invoke", ErrEmptyFunction, "%s", v.fn)
	}
	return f, nil
}

func castFunction[F any](v Value, op string) (F, error) {
	var zero F
	if v.kind != KindFunction {
		return zero, NewTypeError(op, "not a function: %s", v.kind)
	}
	want := reflect.TypeOf((*F)(nil)).Elem()
	if v.fn.Signature() != want {
		return zero, typeErrorCause(op, ErrSignatureMismatch, "stored %s, requested %s", v.fn, want)
	}
	if v.fn.Empty() {
		return zero, nil
	}
	return v.fn.fn.Interface().(F), nil
}

// Call invokes the function held by v with dynamically typed arguments.
// Every argument must be assignable to the matching parameter type.
func (v Value) Call(args ...any) ([]any, error) {
	if v.kind != KindFunction {
		return nil, NewTypeError("call", "not a function: %s", v.kind)
	}
	f := v.fn
	if f.Signature() == nil {
		return nil, typeErrorCause("call", ErrEmptyFunction, "%s", f)
	}

	in, err := callArgs(f.sig, args)
	if err != nil {
		return nil, err
	}
	if f.Empty() {
		return nil, typeErrorCause("call", ErrEmptyFunction, "%s", f)
	}

	out := f.fn.Call(in)
	results := make([]any, len(out))
	for i, o := range out {
		results[i] = o.Interface()
	}
	return results, nil
}

func callArgs(sig reflect.Type, args []any) ([]reflect.Value, error) {
	n := sig.NumIn()
	if sig.IsVariadic() {
		if len(args) < n-1 {
			return nil, typeErrorCause("call", ErrSignatureMismatch, "%s takes at least %d arguments, got %d", sig, n-1, len(args))
		}
	} else if len(args) != n {
		return nil, typeErrorCause("call", ErrSignatureMismatch, "%s takes %d arguments, got %d", sig, n, len(args))
	}

	in := make([]reflect.Value, len(args))
	for i, a := range args {
		var pt reflect.Type
		if sig.IsVariadic() && i >= n-1 {
			pt = sig.In(n - 1).Elem()
		} else {
			pt = sig.In(i)
		}

		if a == nil {
			switch pt.Kind() {
			case reflect.Chan, reflect.Func, reflect.Interface, reflect.Map, reflect.Pointer, reflect.Slice:
				in[i] = reflect.Zero(pt)
				continue
			}
			return nil, typeErrorCause("call", ErrSignatureMismatch, "argument %d: nil is not a %s", i, pt)
		}

		av := reflect.ValueOf(a)
		if !av.Type().AssignableTo(pt) {
			return nil, typeErrorCause("call", ErrSignatureMismatch, "argument %d: %s is not a %s", i, av.Type(), pt)
		}
		in[i] = av
	}
	return in, nil
}
