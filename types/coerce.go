package types

import (
	"math"
	"reflect"
	"strconv"
	"strings"
)

// CoerceOptions tunes string parsing during numeric coercion
type CoerceOptions struct {
	// Base for integral parsing of strings. 0 or 10 means decimal.
	// Other bases disable the fractional fallback.
	Base int
}

func coerceBase(opts []CoerceOptions) int {
	if len(opts) > 0 && opts[0].Base != 0 {
		return opts[0].Base
	}
	return 10
}

// Bool coerces v to a boolean. It never fails.
//
//	undefined, null      false
//	number               nonzero
//	string               nonempty
//	array, object        true
//	function             bound to a callable
func (v Value) Bool() bool {
	switch v.kind {
	case KindUndefined, KindNull:
		return false
	case KindBoolean:
		return v.b
	case KindSigned, KindUnsigned, KindReal:
		return !v.num.IsZero()
	case KindString:
		return v.str != ""
	case KindFunction:
		return !v.fn.Empty()
	case KindArray, KindObject:
		return true
	default:
		return false
	}
}

// Truthy is Bool, named for use in conditions
func (v Value) Truthy() bool {
	return v.Bool()
}

// Or returns v when it is truthy and def otherwise
func (v Value) Or(def Value) Value {
	if v.Bool() {
		return v
	}
	return def
}

// Int coerces v to a signed integer
func (v Value) Int(opts ...CoerceOptions) (int64, error) {
	switch v.kind {
	case KindBoolean:
		if v.b {
			return 1, nil
		}
		return 0, nil
	case KindSigned, KindUnsigned, KindReal:
		return v.num.Int64(), nil
	case KindString:
		return parseSigned(v.str, coerceBase(opts))
	case KindUndefined, KindNull, KindFunction, KindArray, KindObject:
		return 0, NewTypeError("as", "cannot coerce %s to signed integer", v.kind)
	default:
		return 0, NewRangeError("as", "unknown kind %d", int(v.kind))
	}
}

// Uint coerces v to an unsigned integer
func (v Value) Uint(opts ...CoerceOptions) (uint64, error) {
	switch v.kind {
	case KindBoolean:
		if v.b {
			return 1, nil
		}
		return 0, nil
	case KindSigned, KindUnsigned, KindReal:
		return v.num.Uint64(), nil
	case KindString:
		return parseUnsigned(v.str, coerceBase(opts))
	case KindUndefined, KindNull, KindFunction, KindArray, KindObject:
		return 0, NewTypeError("as", "cannot coerce %s to unsigned integer", v.kind)
	default:
		return 0, NewRangeError("as", "unknown kind %d", int(v.kind))
	}
}

// Float coerces v to a real number
func (v Value) Float() (float64, error) {
	switch v.kind {
	case KindBoolean:
		if v.b {
			return 1, nil
		}
		return 0, nil
	case KindSigned, KindUnsigned, KindReal:
		return v.num.Float64(), nil
	case KindString:
		f, err := strconv.ParseFloat(strings.TrimSpace(v.str), 64)
		if err != nil {
			return 0, typeErrorCause("as", err, "cannot coerce %q to real", v.str)
		}
		return f, nil
	case KindUndefined, KindNull, KindFunction, KindArray, KindObject:
		return 0, NewTypeError("as", "cannot coerce %s to real", v.kind)
	default:
		return 0, NewRangeError("as", "unknown kind %d", int(v.kind))
	}
}

// String coerces v to text. It never fails. Arrays join their elements
// with commas; objects and functions render as the tokens "object" and
// "function". Use the jsonio package for a structural rendering.
func (v Value) String() string {
	switch v.kind {
	case KindUndefined:
		return "undefined"
	case KindNull:
		return "null"
	case KindBoolean:
		if v.b {
			return "true"
		}
		return "false"
	case KindSigned, KindUnsigned, KindReal:
		return v.num.String()
	case KindString:
		return v.str
	case KindFunction:
		return "function"
	case KindArray:
		parts := make([]string, len(v.arr))
		for i, e := range v.arr {
			parts[i] = e.String()
		}
		return strings.Join(parts, ",")
	case KindObject:
		return "object"
	default:
		return "unknown"
	}
}

// parseSigned parses integral text. In base 10 text with a fraction or
// exponent is accepted and truncated toward zero, so "5.5" gives 5.
func parseSigned(s string, base int) (int64, error) {
	t := strings.TrimSpace(s)
	i, err := strconv.ParseInt(t, base, 64)
	if err == nil {
		return i, nil
	}
	if base == 10 {
		if f, ferr := strconv.ParseFloat(t, 64); ferr == nil && !math.IsNaN(f) &&
			f >= math.MinInt64 && f < math.MaxInt64 {
			return int64(f), nil
		}
	}
	return 0, typeErrorCause("as", err, "cannot coerce %q to signed integer", s)
}

// parseUnsigned is parseSigned for unsigned targets. Negative text is rejected.
func parseUnsigned(s string, base int) (uint64, error) {
	t := strings.TrimSpace(s)
	u, err := strconv.ParseUint(t, base, 64)
	if err == nil {
		return u, nil
	}
	if base == 10 {
		if f, ferr := strconv.ParseFloat(t, 64); ferr == nil && !math.IsNaN(f) &&
			f >= 0 && f < math.MaxUint64 {
			return uint64(f), nil
		}
	}
	return 0, typeErrorCause("as", err, "cannot coerce %q to unsigned integer", s)
}

// Scalar lists the Go types As can produce
type Scalar interface {
	~bool | ~string |
		~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr |
		~float32 | ~float64
}

// As coerces v to T. Narrow targets take the Go conversion of the 64-bit
// coercion, so As[int8] of 300 wraps the way a cast would.
func As[T Scalar](v Value, opts ...CoerceOptions) (T, error) {
	var out T
	rv := reflect.ValueOf(&out).Elem()
	switch rv.Kind() {
	case reflect.Bool:
		rv.SetBool(v.Bool())
	case reflect.String:
		rv.SetString(v.String())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		i, err := v.Int(opts...)
		if err != nil {
			return out, err
		}
		rv.SetInt(i)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		u, err := v.Uint(opts...)
		if err != nil {
			return out, err
		}
		rv.SetUint(u)
	case reflect.Float32, reflect.Float64:
		f, err := v.Float()
		if err != nil {
			return out, err
		}
		rv.SetFloat(f)
	}
	return out, nil
}

// CoerceTo converts v into a Value of kind k, following the same table
// as As. Structured and function targets only accept their own kind.
func (v Value) CoerceTo(k Kind, opts ...CoerceOptions) (Value, error) {
	switch k {
	case KindBoolean:
		return NewBool(v.Bool()), nil
	case KindSigned:
		i, err := v.Int(opts...)
		if err != nil {
			return Value{}, err
		}
		return NewInt(i), nil
	case KindUnsigned:
		u, err := v.Uint(opts...)
		if err != nil {
			return Value{}, err
		}
		return NewUint(u), nil
	case KindReal:
		f, err := v.Float()
		if err != nil {
			return Value{}, err
		}
		return NewReal(f), nil
	case KindString:
		return NewString(v.String()), nil
	case KindUndefined, KindNull, KindFunction, KindArray, KindObject:
		if v.kind == k {
			return v.Clone(), nil
		}
		return Value{}, NewTypeError("as", "cannot coerce %s to %s", v.kind, k)
	default:
		return Value{}, NewRangeError("as", "unknown kind %d", int(k))
	}
}
