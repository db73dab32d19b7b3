package listings

import (
	"regexp"
	"strings"
)

var nonAlphanumeric = regexp.MustCompile(`[^a-z0-9]+`)

// NormalizeName canonicalizes a title or filename for matching: lowercase,
// surrounding whitespace trimmed, every run of non-alphanumeric characters
// collapsed to a single underscore, leading/trailing underscores stripped.
// Total and idempotent; the empty string maps to itself.
func NormalizeName(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	name = nonAlphanumeric.ReplaceAllString(name, "_")
	return strings.Trim(name, "_")
}
