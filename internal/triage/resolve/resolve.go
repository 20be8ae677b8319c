// Package resolve extracts and validates order identifiers from free text.
package resolve

import (
	"regexp"
	"strings"
)

// orderIDPattern matches an order id anywhere in free text, case-insensitively.
// There is deliberately no trailing boundary: a longer digit run such as
// "ORD12345" matches on its first four digits, keeping the historical
// extraction contract.
var orderIDPattern = regexp.MustCompile(`(?i)ORD\d{4}`)

// orderIDExact matches a complete, normalized order id.
var orderIDExact = regexp.MustCompile(`^ORD\d{4}$`)

// ExtractOrderID returns the first ORD#### occurrence in text, normalized to
// uppercase. The second return value reports whether anything was found; an
// absent id is an expected outcome, not an error.
func ExtractOrderID(text string) (string, bool) {
	m := orderIDPattern.FindString(text)
	if m == "" {
		return "", false
	}
	return strings.ToUpper(m), true
}

// ValidOrderID reports whether id is exactly an ORD#### identifier. Ids
// extracted by ExtractOrderID always pass; caller-supplied ids are checked
// before any store lookup is attempted.
func ValidOrderID(id string) bool {
	return orderIDExact.MatchString(id)
}
