package testcase

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrMalformedIdentifier is returned for requested or excluded entries
// that are neither a 6 digit id nor a 1-5 digit prefix followed by '+'.
var ErrMalformedIdentifier = errors.New("malformed test identifier")

var (
	exactIdentifierPattern  = regexp.MustCompile(`^[0-9]{6}$`)
	prefixIdentifierPattern = regexp.MustCompile(`^[0-9]{1,5}\+$`)
)

// ValidateIdentifiers checks every entry against the accepted identifier forms.
func ValidateIdentifiers(identifiers []string) error {
	for _, identifier := range identifiers {
		if exactIdentifierPattern.MatchString(identifier) || prefixIdentifierPattern.MatchString(identifier) {
			continue
		}
		return fmt.Errorf("%w: %s", ErrMalformedIdentifier, identifier)
	}
	return nil
}

// Matches reports whether id is selected by identifier: equality for a 6 digit
// identifier, prefix match for an identifier ending in '+'.
func Matches(id, identifier string) bool {
	if strings.HasSuffix(identifier, "+") {
		return strings.HasPrefix(id, strings.TrimSuffix(identifier, "+"))
	}
	return id == identifier
}

func matchesAny(id string, identifiers []string) bool {
	for _, identifier := range identifiers {
		if Matches(id, identifier) {
			return true
		}
	}
	return false
}

// Select returns the cases of the catalog matching a requested entry and no
// excluded entry, in catalog order.
func Select(catalog []TestCase, requested, excluded []string) ([]TestCase, error) {
	if err := ValidateIdentifiers(requested); err != nil {
		return nil, fmt.Errorf("requested tests: %w", err)
	}
	if err := ValidateIdentifiers(excluded); err != nil {
		return nil, fmt.Errorf("excluded tests: %w", err)
	}

	var selected []TestCase
	for _, tc := range catalog {
		if !matchesAny(tc.ID, requested) {
			continue
		}
		if matchesAny(tc.ID, excluded) {
			continue
		}
		selected = append(selected, tc)
	}
	return selected, nil
}
