// Package slug turns arbitrary names into URL-safe identifiers.
package slug

import (
	"regexp"
	"strings"
)

var (
	stripped = regexp.MustCompile(`[^a-z0-9\s-]`)
	hyphens  = regexp.MustCompile(`-{2,}`)
)

// Generate lowercases the input, drops anything that is not a letter,
// digit, space, or hyphen, and joins the remaining words with single
// hyphens. "Food & Drink" becomes "food-drink".
func Generate(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = stripped.ReplaceAllString(s, "")
	s = strings.Join(strings.Fields(s), "-")
	s = hyphens.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
