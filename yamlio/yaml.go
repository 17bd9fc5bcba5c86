package yamlio

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"dynvar/types"
)

// Limits applied while expanding aliases
const (
	maxDepth = 1000
	maxNodes = 1 << 20
)

// ToYAML renders v as a YAML document.
// Undefined and Function values are left out of their containers; at the
// top level they render as null.
func ToYAML(v types.Value) (string, error) {
	var buf bytes.Buffer
	enc := NewEncoder(&buf)
	if err := enc.Encode(v); err != nil {
		return "", err
	}
	if err := enc.Close(); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// FromYAML parses exactly one YAML document. An empty input is null.
func FromYAML(text string) (types.Value, error) {
	return Decode(strings.NewReader(text))
}

// Encode writes v to w as one YAML document
func Encode(w io.Writer, v types.Value) error {
	enc := NewEncoder(w)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

// Decode reads one YAML document from r and requires r to end after it
func Decode(r io.Reader) (types.Value, error) {
	dec := NewDecoder(r)
	v, err := dec.Decode()
	if err == io.EOF {
		return types.NewNull(), nil
	}
	if err != nil {
		return types.Value{}, err
	}
	var extra yaml.Node
	if err := dec.dec.Decode(&extra); err != io.EOF {
		if err == nil {
			err = errors.New("more than one document")
		}
		return types.Value{}, types.NewSyntaxError("from_yaml", err)
	}
	return v, nil
}

// Encoder writes a stream of YAML documents separated by "---"
type Encoder struct {
	enc *yaml.Encoder
}

// NewEncoder returns an Encoder writing to w with a two-space indent
func NewEncoder(w io.Writer) *Encoder {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	return &Encoder{enc: enc}
}

// Encode writes v as the next document
func (e *Encoder) Encode(v types.Value) error {
	node, err := ToNode(v)
	if err != nil {
		return err
	}
	if err := e.enc.Encode(node); err != nil {
		return fmt.Errorf("yamlio: encode: %w", err)
	}
	return nil
}

// Close flushes the stream
func (e *Encoder) Close() error {
	if err := e.enc.Close(); err != nil {
		return fmt.Errorf("yamlio: close: %w", err)
	}
	return nil
}

// Decoder reads a stream of YAML documents
type Decoder struct {
	dec *yaml.Decoder
}

// NewDecoder returns a Decoder reading from r
func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{dec: yaml.NewDecoder(r)}
}

// Decode reads the next document. It returns io.EOF when the stream is
// exhausted; a parse failure is a syntax error.
func (d *Decoder) Decode() (types.Value, error) {
	var node yaml.Node
	if err := d.dec.Decode(&node); err != nil {
		if err == io.EOF {
			return types.Value{}, io.EOF
		}
		return types.Value{}, types.NewSyntaxError("from_yaml", err)
	}
	return FromNode(&node)
}

// ToNode converts v into a yaml.v3 node tree. Object keys come out sorted.
func ToNode(v types.Value) (*yaml.Node, error) {
	if v.IsUndefined() || v.IsFunction() {
		return scalar("!!null", "null"), nil
	}
	return toNode(&v)
}

func scalar(tag, value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: value}
}

func toNode(v *types.Value) (*yaml.Node, error) {
	switch v.Kind() {
	case types.KindNull:
		return scalar("!!null", "null"), nil
	case types.KindBoolean:
		return scalar("!!bool", strconv.FormatBool(v.Bool())), nil
	case types.KindSigned, types.KindUnsigned:
		return scalar("!!int", v.String()), nil
	case types.KindReal:
		n, _ := v.Number()
		return scalar("!!float", floatText(n.Float64())), nil
	case types.KindString:
		return scalar("!!str", v.String()), nil
	case types.KindArray:
		seq := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, e := range v.All() {
			if e.IsUndefined() || e.IsFunction() {
				continue
			}
			n, err := toNode(e)
			if err != nil {
				return nil, err
			}
			seq.Content = append(seq.Content, n)
		}
		if len(seq.Content) == 0 {
			seq.Style = yaml.FlowStyle
		}
		return seq, nil
	case types.KindObject:
		m := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for k, e := range v.All() {
			if e.IsUndefined() || e.IsFunction() {
				continue
			}
			n, err := toNode(e)
			if err != nil {
				return nil, err
			}
			m.Content = append(m.Content, scalar("!!str", k.String()), n)
		}
		if len(m.Content) == 0 {
			m.Style = yaml.FlowStyle
		}
		return m, nil
	default:
		return nil, types.NewRangeError("to_yaml", "unknown kind %s", v.Kind())
	}
}

func floatText(f float64) string {
	switch {
	case math.IsNaN(f):
		return ".nan"
	case math.IsInf(f, 1):
		return ".inf"
	case math.IsInf(f, -1):
		return "-.inf"
	}
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}

// FromNode converts a yaml.v3 node tree into a Value. Aliases are
// expanded and "<<" merge keys applied; explicit keys win over merged ones.
func FromNode(node *yaml.Node) (types.Value, error) {
	d := &nodeDecoder{}
	return d.value(node)
}

type nodeDecoder struct {
	depth int
	nodes int
}

func (d *nodeDecoder) value(n *yaml.Node) (types.Value, error) {
	d.depth++
	d.nodes++
	defer func() { d.depth-- }()
	if d.depth > maxDepth || d.nodes > maxNodes {
		return types.Value{}, types.NewRangeError("from_yaml", "document too large after alias expansion (line %d)", n.Line)
	}

	switch n.Kind {
	case 0:
		return types.NewNull(), nil
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return types.NewNull(), nil
		}
		return d.value(n.Content[0])
	case yaml.AliasNode:
		if n.Alias == nil {
			return types.Value{}, types.NewSyntaxError("from_yaml", fmt.Errorf("line %d: unresolved alias %q", n.Line, n.Value))
		}
		return d.value(n.Alias)
	case yaml.ScalarNode:
		return scalarValue(n)
	case yaml.SequenceNode:
		out := types.NewEmptyArray()
		for i, c := range n.Content {
			e, err := d.value(c)
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
	case yaml.MappingNode:
		return d.mapping(n)
	default:
		return types.Value{}, types.NewRangeError("from_yaml", "unknown node kind %d", n.Kind)
	}
}

func (d *nodeDecoder) mapping(n *yaml.Node) (types.Value, error) {
	out := types.NewEmptyObject()
	var explicit []*yaml.Node
	for i := 0; i+1 < len(n.Content); i += 2 {
		k, v := n.Content[i], n.Content[i+1]
		if k.Kind == yaml.ScalarNode && k.ShortTag() == "!!merge" {
			if err := d.merge(&out, v); err != nil {
				return types.Value{}, err
			}
			continue
		}
		explicit = append(explicit, k, v)
	}
	for i := 0; i < len(explicit); i += 2 {
		key, err := d.key(explicit[i])
		if err != nil {
			return types.Value{}, err
		}
		e, err := d.value(explicit[i+1])
		if err != nil {
			return types.Value{}, err
		}
		slot, err := out.Index(types.NewString(key))
		if err != nil {
			return types.Value{}, err
		}
		*slot = e
	}
	return out, nil
}

// merge applies a "<<" value: one mapping or a sequence of them.
// Earlier mappings in a sequence take precedence over later ones.
func (d *nodeDecoder) merge(out *types.Value, n *yaml.Node) error {
	for n.Kind == yaml.AliasNode && n.Alias != nil {
		n = n.Alias
	}
	var sources []*yaml.Node
	switch n.Kind {
	case yaml.MappingNode:
		sources = []*yaml.Node{n}
	case yaml.SequenceNode:
		for i := len(n.Content) - 1; i >= 0; i-- {
			sources = append(sources, n.Content[i])
		}
	default:
		return types.NewTypeError("from_yaml", "line %d: merge value must be a mapping", n.Line)
	}
	for _, src := range sources {
		m, err := d.value(src)
		if err != nil {
			return err
		}
		if !m.IsObject() {
			return types.NewTypeError("from_yaml", "line %d: merge value must be a mapping", src.Line)
		}
		for k, e := range m.All() {
			slot, err := out.Index(k)
			if err != nil {
				return err
			}
			*slot = *e
		}
	}
	return nil
}

func (d *nodeDecoder) key(n *yaml.Node) (string, error) {
	for n.Kind == yaml.AliasNode && n.Alias != nil {
		n = n.Alias
	}
	if n.Kind != yaml.ScalarNode {
		return "", types.NewTypeError("from_yaml", "line %d: mapping key must be a scalar", n.Line)
	}
	return n.Value, nil
}

func scalarValue(n *yaml.Node) (types.Value, error) {
	switch n.ShortTag() {
	case "!!null":
		return types.NewNull(), nil
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return types.Value{}, types.NewSyntaxError("from_yaml", err)
		}
		return types.NewBool(b), nil
	case "!!int":
		if strings.HasPrefix(n.Value, "-") {
			var i int64
			if err := n.Decode(&i); err == nil {
				return types.NewInt(i), nil
			}
		} else {
			var u uint64
			if err := n.Decode(&u); err == nil {
				return types.NewUint(u), nil
			}
		}
		var f float64
		if err := n.Decode(&f); err != nil {
			return types.Value{}, types.NewSyntaxError("from_yaml", err)
		}
		return types.NewReal(f), nil
	case "!!float":
		var f float64
		if err := n.Decode(&f); err != nil {
			return types.Value{}, types.NewSyntaxError("from_yaml", err)
		}
		return types.NewReal(f), nil
	case "!!binary":
		var s string
		if err := n.Decode(&s); err != nil {
			return types.Value{}, types.NewSyntaxError("from_yaml", err)
		}
		return types.NewString(s), nil
	default:
		return types.NewString(n.Value), nil
	}
}
