package jsonio

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"dynvar/types"
)

// ToJSON renders v as compact JSON text.
// Undefined and Function values are left out of their containers; at the
// top level they render as null.
func ToJSON(v types.Value) (string, error) {
	return marshal(v, "")
}

// ToJSONIndent is ToJSON with one indent step per nesting level
func ToJSONIndent(v types.Value, indent string) (string, error) {
	return marshal(v, indent)
}

func marshal(v types.Value, indent string) (string, error) {
	var buf bytes.Buffer
	enc := NewEncoder(&buf)
	enc.SetIndent(indent)
	if err := enc.Encode(v); err != nil {
		return "", err
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}

// FromJSON parses exactly one JSON document. Anything but whitespace after
// it is a syntax error.
func FromJSON(text string) (types.Value, error) {
	return Decode(strings.NewReader(text))
}

// Encode writes v to w as one line of JSON
func Encode(w io.Writer, v types.Value) error {
	return NewEncoder(w).Encode(v)
}

// Decode reads one JSON document from r and requires r to end after it
func Decode(r io.Reader) (types.Value, error) {
	dec := NewDecoder(r)
	v, err := dec.Decode()
	if err == io.EOF {
		return types.Value{}, types.NewSyntaxError("from_json", io.ErrUnexpectedEOF)
	}
	if err != nil {
		return types.Value{}, err
	}
	if _, err := dec.dec.Token(); err != io.EOF {
		if err == nil {
			err = errors.New("trailing data after document")
		}
		return types.Value{}, types.NewSyntaxError("from_json", err)
	}
	return v, nil
}

// Encoder writes a stream of JSON documents
type Encoder struct {
	w      io.Writer
	indent string
}

// NewEncoder returns an Encoder writing to w
func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{w: w}
}

// SetIndent sets the per-level indent. Empty means compact output.
func (e *Encoder) SetIndent(indent string) {
	e.indent = indent
}

// Encode writes v followed by a newline
func (e *Encoder) Encode(v types.Value) error {
	tree, err := ToTree(v)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(e.w)
	enc.SetEscapeHTML(false)
	if e.indent != "" {
		enc.SetIndent("", e.indent)
	}
	if err := enc.Encode(tree); err != nil {
		return fmt.Errorf("jsonio: encode: %w", err)
	}
	return nil
}

// Decoder reads a stream of JSON documents
type Decoder struct {
	dec *json.Decoder
}

// NewDecoder returns a Decoder reading from r
func NewDecoder(r io.Reader) *Decoder {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	return &Decoder{dec: dec}
}

// Decode reads the next document. It returns io.EOF when the stream is
// exhausted; any other failure is a syntax error.
func (d *Decoder) Decode() (types.Value, error) {
	var data any
	if err := d.dec.Decode(&data); err != nil {
		if err == io.EOF {
			return types.Value{}, io.EOF
		}
		return types.Value{}, types.NewSyntaxError("from_json", err)
	}
	return FromTree(data)
}

// ToTree converts v into the generic tree encoding/json marshals:
// nil, bool, json.Number, string, []any and map[string]any.
// Numbers keep their subkind in the text: reals always carry a fraction or
// an exponent, so 3.0 stays distinct from 3.
func ToTree(v types.Value) (any, error) {
	if omitted(v) {
		return nil, nil
	}
	return toTree(&v)
}

func omitted(v types.Value) bool {
	return v.IsUndefined() || v.IsFunction()
}

func toTree(v *types.Value) (any, error) {
	switch v.Kind() {
	case types.KindNull:
		return nil, nil
	case types.KindBoolean:
		return v.Bool(), nil
	case types.KindSigned, types.KindUnsigned, types.KindReal:
		n, _ := v.Number()
		return numberText(n)
	case types.KindString:
		return v.String(), nil
	case types.KindArray:
		arr := make([]any, 0, v.Len())
		for _, e := range v.All() {
			if omitted(*e) {
				continue
			}
			t, err := toTree(e)
			if err != nil {
				return nil, err
			}
			arr = append(arr, t)
		}
		return arr, nil
	case types.KindObject:
		obj := make(map[string]any, v.Len())
		for k, e := range v.All() {
			if omitted(*e) {
				continue
			}
			t, err := toTree(e)
			if err != nil {
				return nil, err
			}
			obj[k.String()] = t
		}
		return obj, nil
	default:
		return nil, types.NewRangeError("to_json", "unknown kind %s", v.Kind())
	}
}

// numberText formats a number for the encoder without going through float64
func numberText(n types.Number) (json.Number, error) {
	switch n.Kind() {
	case types.KindSigned:
		return json.Number(strconv.FormatInt(n.Int64(), 10)), nil
	case types.KindUnsigned:
		return json.Number(strconv.FormatUint(n.Uint64(), 10)), nil
	}
	f := n.Float64()
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return "", types.NewRangeError("to_json", "%s has no JSON representation", n)
	}
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return json.Number(s), nil
}

// FromTree converts a decoded generic tree into a Value. Integer literals
// become Unsigned when non-negative and Signed when negative; literals with
// a fraction or exponent, and integers too large for either, become Real.
func FromTree(data any) (types.Value, error) {
	switch val := data.(type) {
	case nil:
		return types.NewNull(), nil
	case bool:
		return types.NewBool(val), nil
	case json.Number:
		return parseNumber(string(val))
	case float64:
		return types.NewReal(val), nil
	case int64:
		return types.NewInt(val), nil
	case uint64:
		return types.NewUint(val), nil
	case string:
		return types.NewString(val), nil
	case []any:
		out := types.NewEmptyArray()
		for i, item := range val {
			e, err := FromTree(item)
			if err != nil {
				return types.Value{}, err
			}
			slot, err := out.Index(types.NewUint(uint64(i)))
			if err != nil {
				return types.Value{}, err
			}
			*slot = e
		}
		return out, nil
	case map[string]any:
		out := types.NewEmptyObject()
		for k, item := range val {
			e, err := FromTree(item)
			if err != nil {
				return types.Value{}, err
			}
			slot, err := out.Index(types.NewString(k))
			if err != nil {
				return types.Value{}, err
			}
			*slot = e
		}
		return out, nil
	default:
		return types.Value{}, types.NewTypeError("from_json", "unsupported document node %T", data)
	}
}

func parseNumber(s string) (types.Value, error) {
	if !strings.ContainsAny(s, ".eE") {
		if strings.HasPrefix(s, "-") {
			if i, err := strconv.ParseInt(s, 10, 64); err == nil {
				return types.NewInt(i), nil
			}
		} else if u, err := strconv.ParseUint(s, 10, 64); err == nil {
			return types.NewUint(u), nil
		}
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return types.Value{}, types.NewSyntaxError("from_json", err)
	}
	return types.NewReal(f), nil
}
