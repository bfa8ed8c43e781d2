package testcase

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var idPattern = regexp.MustCompile(`^[0-9]{6}$`)

// TestCase is one declared step of a test list.
type TestCase struct {
	ID          string `yaml:"id"`
	Action      string `yaml:"class"`
	Description string `yaml:"desc"`
	AlwaysExec  bool   `yaml:"always_exec"`
	MayFail     bool   `yaml:"may_fail"`

	Params Params `yaml:",inline"`
}

// NumericID returns the case identifier as a number.
func (t TestCase) NumericID() int {
	id, err := strconv.Atoi(t.ID)
	if err != nil {
		return 0
	}
	return id
}

func (t TestCase) validate() error {
	if !idPattern.MatchString(t.ID) {
		return fmt.Errorf("invalid test case id (%s), should be a 6 digit number", t.ID)
	}
	if t.Action == "" {
		return fmt.Errorf("test case (%s) has no class", t.ID)
	}
	return nil
}

// Params holds the action specific parameters of a test case.
// Values are either scalars or lists, as written in the test list.
type Params map[string]interface{}

// String returns the scalar value of key.
func (p Params) String(key string) (string, bool) {
	value, ok := p[key]
	if !ok || value == nil {
		return "", false
	}

	switch v := value.(type) {
	case string:
		return strings.TrimSpace(v), true
	case []interface{}:
		return strings.Join(p.Fields(key), " "), true
	default:
		return fmt.Sprintf("%v", v), true
	}
}

// StringOr returns the scalar value of key or def if it is missing or empty.
func (p Params) StringOr(key, def string) string {
	value, ok := p.String(key)
	if !ok || value == "" {
		return def
	}
	return value
}

// Fields returns the value of key as a list. Scalars are split on whitespace.
func (p Params) Fields(key string) []string {
	value, ok := p[key]
	if !ok || value == nil {
		return nil
	}

	switch v := value.(type) {
	case []interface{}:
		var fields []string
		for _, item := range v {
			fields = append(fields, fmt.Sprintf("%v", item))
		}
		return fields
	case string:
		return strings.Fields(v)
	default:
		return []string{fmt.Sprintf("%v", v)}
	}
}

// Floats returns the value of key as a list of numbers. Scalars are comma separated.
func (p Params) Floats(key string) ([]float64, error) {
	value, ok := p[key]
	if !ok || value == nil {
		return nil, nil
	}

	var items []string
	switch v := value.(type) {
	case []interface{}:
		for _, item := range v {
			items = append(items, fmt.Sprintf("%v", item))
		}
	case string:
		if strings.TrimSpace(v) == "" {
			return nil, nil
		}
		items = strings.Split(v, ",")
	default:
		items = []string{fmt.Sprintf("%v", v)}
	}

	var floats []float64
	for _, item := range items {
		f, err := strconv.ParseFloat(strings.TrimSpace(item), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid number (%s) in %s: %w", item, key, err)
		}
		floats = append(floats, f)
	}
	return floats, nil
}

// Int returns the value of key as an integer or def if it is missing.
func (p Params) Int(key string, def int) (int, error) {
	value, ok := p.String(key)
	if !ok || value == "" {
		return def, nil
	}

	i, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid integer (%s) in %s: %w", value, key, err)
	}
	return i, nil
}

// Bool reports whether key holds one of the accepted true values.
func (p Params) Bool(key string) bool {
	value, ok := p.String(key)
	if !ok {
		return false
	}

	switch strings.ToLower(value) {
	case "true", "yes":
		return true
	default:
		return false
	}
}
