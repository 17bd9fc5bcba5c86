package conformance

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"dynvar/types"
)

func TestConformance(t *testing.T) {
	tests, err := LoadAllTests()
	if err != nil {
		t.Fatalf("Failed to load tests: %v", err)
	}
	if len(tests) == 0 {
		t.Fatal("No tests loaded")
	}

	runner := NewRunner()
	results := runner.RunAll(tests)
	stats := ComputeStats(results)

	// Group results by file for organized output
	fileGroups := make(map[string][]TestResult)
	for _, result := range results {
		fileGroups[result.Test.File] = append(fileGroups[result.Test.File], result)
	}

	for file, fileResults := range fileGroups {
		t.Run(file, func(t *testing.T) {
			for _, result := range fileResults {
				t.Run(result.Test.Test.Name, func(t *testing.T) {
					if result.Skipped {
						t.Skipf("Skipped: %s", result.SkipReason)
					} else if !result.Passed {
						if result.Error != nil {
							t.Errorf("Test failed: %v", result.Error)
						} else {
							t.Error("Test failed")
						}
					}
				})
			}
		})
	}

	t.Logf("\n=== Summary ===\n%s", FormatStats(stats))
}

func TestYAMLParsing(t *testing.T) {
	tests, err := LoadAllTests()
	if err != nil {
		t.Fatalf("YAML parsing failed: %v", err)
	}

	ops := make(map[string]bool)
	for _, op := range NewRunner().Ops() {
		ops[op] = true
	}

	seen := make(map[string]bool)
	for i, test := range tests {
		if test.Test.Name == "" {
			t.Errorf("Test %d in %s has no name", i, test.File)
		}
		id := test.File + "/" + test.Test.Name
		if seen[id] {
			t.Errorf("duplicate test %s", id)
		}
		seen[id] = true

		if test.Test.Expect.IsEmpty() {
			t.Errorf("Test %s in %s has no expectation", test.Test.Name, test.File)
		}
		if !ops[test.Test.Op] {
			t.Errorf("Test %s in %s uses unknown op %q", test.Test.Name, test.File, test.Test.Op)
		}
	}

	t.Logf("All %d tests parsed successfully", len(tests))
}

func TestEveryOpCovered(t *testing.T) {
	tests, err := LoadAllTests()
	if err != nil {
		t.Fatalf("Failed to load tests: %v", err)
	}
	used := make(map[string]bool)
	for _, test := range tests {
		used[test.Test.Op] = true
	}
	for _, op := range NewRunner().Ops() {
		if !used[op] {
			t.Errorf("no fixture exercises op %q", op)
		}
	}
}

func TestRunnerReportsFailures(t *testing.T) {
	runner := NewRunner()
	input := `{"a":1}`

	tests := []struct {
		name   string
		tc     TestCase
		passed bool
	}{
		{"wrong value", TestCase{Op: "size", Input: &input, Expect: Expectation{JSON: "2"}}, false},
		{"wrong kind", TestCase{Op: "size", Input: &input, Expect: Expectation{Kind: "real"}}, false},
		{"missing error", TestCase{Op: "size", Input: &input, Expect: Expectation{Error: "E_TYPE"}}, false},
		{"unknown code", TestCase{Op: "size", Input: &input, Expect: Expectation{Error: "E_DIV"}}, false},
		{"unexpected error", TestCase{Op: "lookup", Path: "a", Expect: Expectation{JSON: "1"}}, false},
		{"no expectation", TestCase{Op: "size", Input: &input}, false},
		{"unknown op", TestCase{Op: "explode", Expect: Expectation{JSON: "1"}}, false},
		{"lowercase code", TestCase{Op: "size", Expect: Expectation{Error: "e_type"}}, true},
		{"suite input", TestCase{Op: "lookup", Path: "a", Expect: Expectation{JSON: "1"}}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			suite := TestSuite{Input: input}
			if tt.name == "unexpected error" {
				suite.Input = "7"
			}
			if tt.name == "lowercase code" {
				suite.Input = "true"
			}
			result := runner.Run(LoadedTest{File: "inline", Suite: suite, Test: tt.tc})
			if result.Passed != tt.passed {
				t.Errorf("Passed = %v, want %v (error: %v)", result.Passed, tt.passed, result.Error)
			}
			if !tt.passed && result.Error == nil {
				t.Error("failed result carries no error")
			}
		})
	}
}

func TestIsSkipped(t *testing.T) {
	tests := []struct {
		skip   interface{}
		want   bool
		reason string
	}{
		{nil, false, ""},
		{false, false, ""},
		{true, true, "skipped"},
		{"not yet", true, "not yet"},
		{3, false, ""},
	}
	for _, tt := range tests {
		tc := TestCase{Skip: tt.skip}
		got, reason := tc.IsSkipped()
		if got != tt.want || reason != tt.reason {
			t.Errorf("IsSkipped(%v) = %v, %q; want %v, %q", tt.skip, got, reason, tt.want, tt.reason)
		}
	}
}

func TestComputeStats(t *testing.T) {
	results := []TestResult{
		{Passed: true},
		{Passed: true},
		{Skipped: true},
		{Error: fmt.Errorf("boom")},
	}
	stats := ComputeStats(results)
	if got := FormatStats(stats); got != "2 passed, 1 failed, 1 skipped (4 total)" {
		t.Errorf("FormatStats = %q", got)
	}
}

func TestLoadDirErrors(t *testing.T) {
	if _, err := LoadDir(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Error("LoadDir on a missing directory succeeded")
	}

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "bad.yaml"), []byte("tests: [unclosed"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadDir(dir); err == nil {
		t.Error("LoadDir accepted malformed YAML")
	}
}

func TestLoadDirIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	suite := "name: s\ntests:\n  - name: one\n    input: '[1]'\n    op: size\n    expect:\n      value: 1\n"
	os.WriteFile(filepath.Join(dir, "s.yaml"), []byte(suite), 0o644)
	os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o644)

	tests, err := LoadDir(dir)
	if err != nil {
		t.Fatalf("LoadDir: %v", err)
	}
	if len(tests) != 1 || tests[0].File != "s.yaml" {
		t.Fatalf("loaded %+v", tests)
	}
	result := NewRunner().Run(tests[0])
	if !result.Passed {
		t.Errorf("fixture failed: %v", result.Error)
	}
}

func TestOpsSorted(t *testing.T) {
	ops := NewRunner().Ops()
	if !sort.StringsAreSorted(ops) {
		t.Errorf("Ops not sorted: %v", ops)
	}
}

func ExampleRunner_Run() {
	input := `{"a":{"b":[10,20]}}`
	test := LoadedTest{
		File: "example",
		Test: TestCase{
			Name:   "lookup",
			Input:  &input,
			Op:     "lookup",
			Path:   "a.b.1",
			Expect: Expectation{Kind: types.KindUnsigned.String(), JSON: "20"},
		},
	}
	result := NewRunner().Run(test)
	fmt.Println(result.Passed)
	// Output: true
}

// BenchmarkRunAll measures a full pass over the fixtures
func BenchmarkRunAll(b *testing.B) {
	tests, err := LoadAllTests()
	if err != nil {
		b.Fatal(err)
	}
	runner := NewRunner()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		runner.RunAll(tests)
	}
}
