package types

// undefined is the shared Undefined. Read-only lookups hand out copies of
// it, never its address, so nothing can write through to it.
var undefined Value

// Undefined returns the Undefined value that read-only lookups yield for
// missing elements
func Undefined() Value {
	return undefined
}

// writable guards mutating methods
func (v *Value) writable(op string) error {
	if v == nil {
		return NewTypeError(op, "nil value")
	}
	return nil
}
