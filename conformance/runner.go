package conformance

import (
	"fmt"
	"sort"
	"strings"

	"dynvar/digest"
	"dynvar/jsonio"
	"dynvar/types"
	"dynvar/yamlio"
)

// TestResult represents the outcome of running a single test
type TestResult struct {
	Test       LoadedTest
	Passed     bool
	Skipped    bool
	SkipReason string
	Error      error
}

// opFunc applies one operation to the decoded input. Operations that
// mutate return the input document itself as their result.
type opFunc func(input *types.Value, tc TestCase) (types.Value, error)

// Runner executes conformance tests
type Runner struct {
	ops map[string]opFunc
}

// NewRunner creates a runner that knows every supported operation
func NewRunner() *Runner {
	return &Runner{ops: map[string]opFunc{
		"parse":     func(in *types.Value, _ TestCase) (types.Value, error) { return *in, nil },
		"get":       opGet,
		"lookup":    opLookup,
		"at_set":    opAtSet,
		"push_back": opPushBack,
		"delete":    opDelete,
		"merge":     opMerge,
		"split":     opSplit,
		"as":        opAs,
		"keys":      func(in *types.Value, _ TestCase) (types.Value, error) { return in.Keys(), nil },
		"values":    func(in *types.Value, _ TestCase) (types.Value, error) { return in.Values(), nil },
		"size":      opSize,
		"equal":     opEqual,
		"less":      opLess,
		"to_json":   opToJSON,
		"to_yaml":   opToYAML,
		"digest":    opDigest,
	}}
}

// Ops returns the sorted names of the supported operations
func (r *Runner) Ops() []string {
	names := make([]string, 0, len(r.ops))
	for name := range r.ops {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Run executes a single test case
func (r *Runner) Run(test LoadedTest) TestResult {
	if skipped, reason := test.Test.IsSkipped(); skipped {
		return TestResult{
			Test:       test,
			Skipped:    true,
			SkipReason: reason,
		}
	}

	op, ok := r.ops[test.Test.Op]
	if !ok {
		return TestResult{
			Test:  test,
			Error: fmt.Errorf("unknown op %q", test.Test.Op),
		}
	}

	result, err := r.execute(op, test)
	passed, checkErr := checkExpectation(test.Test.Expect, result, err)
	return TestResult{
		Test:   test,
		Passed: passed,
		Error:  checkErr,
	}
}

func (r *Runner) execute(op opFunc, test LoadedTest) (types.Value, error) {
	var input types.Value
	if text := test.Test.InputText(test.Suite); text != "" {
		v, err := jsonio.FromJSON(text)
		if err != nil {
			return types.Value{}, err
		}
		input = v
	}
	return op(&input, test.Test)
}

// RunAll executes all loaded tests
func (r *Runner) RunAll(tests []LoadedTest) []TestResult {
	results := make([]TestResult, len(tests))
	for i, test := range tests {
		results[i] = r.Run(test)
	}
	return results
}

// SummaryStats computes statistics from test results
type SummaryStats struct {
	Total   int
	Passed  int
	Failed  int
	Skipped int
}

// ComputeStats generates statistics from test results
func ComputeStats(results []TestResult) SummaryStats {
	stats := SummaryStats{Total: len(results)}
	for _, r := range results {
		if r.Skipped {
			stats.Skipped++
		} else if r.Passed {
			stats.Passed++
		} else {
			stats.Failed++
		}
	}
	return stats
}

// FormatStats returns a human-readable summary
func FormatStats(stats SummaryStats) string {
	return fmt.Sprintf("%d passed, %d failed, %d skipped (%d total)",
		stats.Passed, stats.Failed, stats.Skipped, stats.Total)
}

// checkExpectation checks if the result matches the expected outcome
func checkExpectation(expect Expectation, result types.Value, err error) (bool, error) {
	if expect.IsEmpty() {
		return false, fmt.Errorf("no expectation specified")
	}

	// Check for expected error
	if expect.Error != "" {
		code, ok := types.ErrorFromString(strings.ToUpper(expect.Error))
		if !ok {
			return false, fmt.Errorf("unknown error code: %s", expect.Error)
		}
		if err == nil {
			return false, fmt.Errorf("expected error %s, got value: %s", expect.Error, result.GoString())
		}
		if got := types.CodeOf(err); got != code {
			return false, fmt.Errorf("expected error %s, got %s (%v)", code, got, err)
		}
		return true, nil
	}

	if err != nil {
		return false, fmt.Errorf("unexpected error: %w", err)
	}

	if expect.Kind != "" {
		kind, ok := types.KindFromString(expect.Kind)
		if !ok {
			return false, fmt.Errorf("unknown kind: %s", expect.Kind)
		}
		if result.Kind() != kind {
			return false, fmt.Errorf("expected kind %s, got %s", kind, result.Kind())
		}
	}

	if expect.JSON != "" {
		want, err := jsonio.FromJSON(expect.JSON)
		if err != nil {
			return false, fmt.Errorf("failed to parse expected json: %w", err)
		}
		wantText, err := jsonio.ToJSON(want)
		if err != nil {
			return false, err
		}
		gotText, err := jsonio.ToJSON(result)
		if err != nil {
			return false, fmt.Errorf("result does not encode: %w", err)
		}
		if gotText != wantText {
			return false, fmt.Errorf("expected %s, got %s", wantText, gotText)
		}
	}

	if expect.Value != nil {
		want, err := yamlio.FromNode(expect.Value)
		if err != nil {
			return false, fmt.Errorf("failed to convert expected value: %w", err)
		}
		if !result.Equal(want) {
			return false, fmt.Errorf("expected %s, got %s", want.GoString(), result.GoString())
		}
	}

	return true, nil
}

// argValue decodes the JSON argument of a case. An empty argument is Undefined.
func argValue(tc TestCase) (types.Value, error) {
	if tc.Arg == "" {
		return types.Value{}, nil
	}
	return jsonio.FromJSON(tc.Arg)
}

func opGet(in *types.Value, tc TestCase) (types.Value, error) {
	key, err := argValue(tc)
	if err != nil {
		return types.Value{}, err
	}
	return in.Get(key)
}

func opLookup(in *types.Value, tc TestCase) (types.Value, error) {
	return in.Lookup(types.NewString(tc.Path))
}

func opAtSet(in *types.Value, tc TestCase) (types.Value, error) {
	x, err := argValue(tc)
	if err != nil {
		return types.Value{}, err
	}
	if err := types.CreatePath(in, types.NewString(tc.Path), x); err != nil {
		return types.Value{}, err
	}
	return *in, nil
}

func opPushBack(in *types.Value, tc TestCase) (types.Value, error) {
	x, err := argValue(tc)
	if err != nil {
		return types.Value{}, err
	}
	if err := in.PushBack(x); err != nil {
		return types.Value{}, err
	}
	return *in, nil
}

func opDelete(in *types.Value, tc TestCase) (types.Value, error) {
	key, err := argValue(tc)
	if err != nil {
		return types.Value{}, err
	}
	removed, err := in.Delete(key)
	if err != nil {
		return types.Value{}, err
	}
	return types.NewBool(removed), nil
}

func opMerge(in *types.Value, tc TestCase) (types.Value, error) {
	src, err := argValue(tc)
	if err != nil {
		return types.Value{}, err
	}
	merged, err := in.MergeFrom(src)
	if err != nil {
		return types.Value{}, err
	}
	return *merged, nil
}

func opSplit(in *types.Value, tc TestCase) (types.Value, error) {
	delim, err := argValue(tc)
	if err != nil {
		return types.Value{}, err
	}
	return in.Split(delim)
}

func opAs(in *types.Value, tc TestCase) (types.Value, error) {
	kind, ok := types.KindFromString(tc.Kind)
	if !ok {
		return types.Value{}, types.NewRangeError("as", "unknown kind %q", tc.Kind)
	}
	return in.CoerceTo(kind, types.CoerceOptions{Base: tc.Base})
}

func opSize(in *types.Value, _ TestCase) (types.Value, error) {
	n, err := in.Size()
	if err != nil {
		return types.Value{}, err
	}
	return types.NewInt(int64(n)), nil
}

func opEqual(in *types.Value, tc TestCase) (types.Value, error) {
	other, err := argValue(tc)
	if err != nil {
		return types.Value{}, err
	}
	return types.NewBool(in.Equal(other)), nil
}

func opLess(in *types.Value, tc TestCase) (types.Value, error) {
	other, err := argValue(tc)
	if err != nil {
		return types.Value{}, err
	}
	return types.NewBool(in.Less(other)), nil
}

func opToJSON(in *types.Value, _ TestCase) (types.Value, error) {
	text, err := jsonio.ToJSON(*in)
	if err != nil {
		return types.Value{}, err
	}
	return types.NewString(text), nil
}

func opToYAML(in *types.Value, _ TestCase) (types.Value, error) {
	text, err := yamlio.ToYAML(*in)
	if err != nil {
		return types.Value{}, err
	}
	return types.NewString(text), nil
}

func opDigest(in *types.Value, tc TestCase) (types.Value, error) {
	sum, err := digest.Sum(*in, tc.Algo)
	if err != nil {
		return types.Value{}, err
	}
	return types.NewString(sum), nil
}
