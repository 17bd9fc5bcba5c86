package conformance

import "gopkg.in/yaml.v3"

// TestSuite represents a complete YAML test file
type TestSuite struct {
	Name        string     `yaml:"name"`
	Description string     `yaml:"description,omitempty"`
	Input       string     `yaml:"input,omitempty"` // default input for every case
	Tests       []TestCase `yaml:"tests"`
}

// TestCase represents a single test within a suite
type TestCase struct {
	Name        string      `yaml:"name"`
	Description string      `yaml:"description,omitempty"`
	Skip        interface{} `yaml:"skip,omitempty"` // bool or string
	Input       *string     `yaml:"input,omitempty"` // JSON text; overrides the suite input
	Op          string      `yaml:"op"`
	Path        string      `yaml:"path,omitempty"` // lookup, at_set
	Arg         string      `yaml:"arg,omitempty"`  // JSON text
	Kind        string      `yaml:"kind,omitempty"` // target of "as"
	Base        int         `yaml:"base,omitempty"` // integral base for "as"
	Algo        string      `yaml:"algo,omitempty"` // digest algorithm
	Expect      Expectation `yaml:"expect"`
}

// Expectation defines what result is expected from a test
type Expectation struct {
	Value *yaml.Node `yaml:"value,omitempty"` // compared with Equal
	JSON  string     `yaml:"json,omitempty"`  // compared as canonical JSON text
	Kind  string     `yaml:"kind,omitempty"`  // undefined, signed, object, etc.
	Error string     `yaml:"error,omitempty"` // E_TYPE, E_RANGE, E_SYNTAX
}

// IsEmpty reports whether no expectation was given
func (e Expectation) IsEmpty() bool {
	return e.Value == nil && e.JSON == "" && e.Kind == "" && e.Error == ""
}

// InputText returns the JSON input of the case, falling back to the suite's
func (tc *TestCase) InputText(suite TestSuite) string {
	if tc.Input != nil {
		return *tc.Input
	}
	return suite.Input
}

// IsSkipped returns true if this test should be skipped
func (tc *TestCase) IsSkipped() (bool, string) {
	if tc.Skip == nil {
		return false, ""
	}

	switch v := tc.Skip.(type) {
	case bool:
		if v {
			return true, "skipped"
		}
		return false, ""
	case string:
		return true, v
	default:
		return false, ""
	}
}
