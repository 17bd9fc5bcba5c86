package conformance

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// TestPath is the fixture directory, relative to the package
const TestPath = "testdata"

// LoadedTest represents a test with its source file path
type LoadedTest struct {
	File  string
	Suite TestSuite
	Test  TestCase
}

// LoadAllTests loads every suite under TestPath
func LoadAllTests() ([]LoadedTest, error) {
	return LoadDir(TestPath)
}

// LoadDir walks dir and loads all test cases from its .yaml files
func LoadDir(dir string) ([]LoadedTest, error) {
	testDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}
	if _, err := os.Stat(testDir); err != nil {
		return nil, fmt.Errorf("could not find conformance test directory: %w", err)
	}

	var loaded []LoadedTest
	err = filepath.Walk(testDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		// Only process .yaml files
		if info.IsDir() || filepath.Ext(path) != ".yaml" {
			return nil
		}

		relPath, _ := filepath.Rel(testDir, path)
		tests, err := loadTestFile(path)
		if err != nil {
			return fmt.Errorf("%s: %w", relPath, err)
		}

		for _, test := range tests {
			test.File = relPath
			loaded = append(loaded, test)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return loaded, nil
}

// loadTestFile parses a single YAML file and returns all test cases
func loadTestFile(path string) ([]LoadedTest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var suite TestSuite
	if err := yaml.Unmarshal(data, &suite); err != nil {
		return nil, err
	}

	var tests []LoadedTest
	for _, test := range suite.Tests {
		tests = append(tests, LoadedTest{
			Suite: suite,
			Test:  test,
		})
	}

	return tests, nil
}
