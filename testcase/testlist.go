package testcase

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// TestList is a declared, ordered catalog of test cases.
type TestList struct {
	Name      string     `yaml:"name"`
	TabRef    string     `yaml:"tab_ref"`
	TabName   string     `yaml:"tab_name"`
	Requested string     `yaml:"requested"`
	Excluded  string     `yaml:"excluded"`
	TestCases []TestCase `yaml:"test_cases"`
}

// RequestedIDs returns the whitespace separated requested identifiers.
func (l TestList) RequestedIDs() []string {
	return strings.Fields(l.Requested)
}

// ExcludedIDs returns the whitespace separated excluded identifiers.
func (l TestList) ExcludedIDs() []string {
	return strings.Fields(l.Excluded)
}

// LoadTestList reads and validates a test list file.
func LoadTestList(pth string) (TestList, error) {
	content, err := os.ReadFile(pth)
	if err != nil {
		return TestList{}, fmt.Errorf("failed to read test list (%s): %w", pth, err)
	}

	return ParseTestList(content)
}

// ParseTestList decodes and validates test list content.
func ParseTestList(content []byte) (TestList, error) {
	var list TestList
	if err := yaml.Unmarshal(content, &list); err != nil {
		return TestList{}, fmt.Errorf("failed to parse test list: %w", err)
	}

	seen := map[string]bool{}
	for _, tc := range list.TestCases {
		if err := tc.validate(); err != nil {
			return TestList{}, err
		}
		if seen[tc.ID] {
			return TestList{}, fmt.Errorf("duplicated test case id (%s)", tc.ID)
		}
		seen[tc.ID] = true
	}

	return list, nil
}
