package types

// Kind identifies the active variant of a Value
type Kind int

const (
	KindUndefined Kind = 0
	KindNull      Kind = 1
	KindBoolean   Kind = 2
	KindSigned    Kind = 3
	KindUnsigned  Kind = 4
	KindReal      Kind = 5
	KindString    Kind = 6
	KindFunction  Kind = 7
	KindArray     Kind = 8
	KindObject    Kind = 9
)

// String returns the lowercase name of the kind
func (k Kind) String() string {
	switch k {
	case KindUndefined:
		return "undefined"
	case KindNull:
		return "null"
	case KindBoolean:
		return "boolean"
	case KindSigned:
		return "signed"
	case KindUnsigned:
		return "unsigned"
	case KindReal:
		return "real"
	case KindString:
		return "string"
	case KindFunction:
		return "function"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "unknown"
	}
}

// IsNumber reports whether k is one of the three numeric subkinds
func (k Kind) IsNumber() bool {
	return k == KindSigned || k == KindUnsigned || k == KindReal
}

// IsStructured reports whether k is Array or Object
func (k Kind) IsStructured() bool {
	return k == KindArray || k == KindObject
}

// rank orders kinds for cross-kind comparison.
// The numeric subkinds share a rank so they compare by value.
func (k Kind) rank() int {
	switch k {
	case KindUndefined:
		return 0
	case KindNull:
		return 1
	case KindBoolean:
		return 2
	case KindSigned, KindUnsigned, KindReal:
		return 3
	case KindString:
		return 4
	case KindFunction:
		return 5
	case KindArray:
		return 6
	case KindObject:
		return 7
	default:
		return 8
	}
}

// KindFromString converts a kind name like "object" to a Kind
func KindFromString(s string) (Kind, bool) {
	switch s {
	case "undefined":
		return KindUndefined, true
	case "null":
		return KindNull, true
	case "boolean", "bool":
		return KindBoolean, true
	case "signed", "int":
		return KindSigned, true
	case "unsigned", "uint":
		return KindUnsigned, true
	case "real", "float":
		return KindReal, true
	case "string", "str":
		return KindString, true
	case "function":
		return KindFunction, true
	case "array", "list":
		return KindArray, true
	case "object", "map":
		return KindObject, true
	default:
		return KindUndefined, false
	}
}
