package testcase

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ActionCatalog is the set of action names a test list may reference.
type ActionCatalog map[string]bool

// NewActionCatalog ...
func NewActionCatalog(actions ...string) ActionCatalog {
	catalog := ActionCatalog{}
	for _, action := range actions {
		catalog[action] = true
	}
	return catalog
}

// Contains ...
func (c ActionCatalog) Contains(action string) bool {
	return c[action]
}

// LoadActionCatalog reads a YAML list of action names.
func LoadActionCatalog(pth string) (ActionCatalog, error) {
	content, err := os.ReadFile(pth)
	if err != nil {
		return nil, fmt.Errorf("failed to read action catalog (%s): %w", pth, err)
	}

	var actions []string
	if err := yaml.Unmarshal(content, &actions); err != nil {
		return nil, fmt.Errorf("failed to parse action catalog (%s): %w", pth, err)
	}

	return NewActionCatalog(actions...), nil
}
