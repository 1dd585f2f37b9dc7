package naming

import (
	"regexp"
	"strings"
)

var (
	// FOOBar -> FOO_Bar
	acronymBoundary = regexp.MustCompile(`([A-Z]+)([A-Z][a-z])`)
	// fooBar, foo1Bar -> foo_Bar, foo1_Bar
	wordBoundary = regexp.MustCompile(`([a-z\d])([A-Z])`)
	// version400_update -> version_400_update
	glueDigits = regexp.MustCompile(`^([a-z]+)(\d+)(.*)$`)
)

// Normalize converts every segment of t into lowercase words joined by
// underscores. The result has the same length as t.
func Normalize(t TypeName) []string {
	out := make([]string, len(t.segments))
	for i, seg := range t.segments {
		out[i] = NormalizeSegment(seg)
	}
	return out
}

// NormalizeSegment underscores a single mixed-case segment and separates a
// leading letter run from the digits glued to it (only the first occurrence).
func NormalizeSegment(seg string) string {
	s := Underscore(seg)
	return glueDigits.ReplaceAllString(s, "${1}_${2}${3}")
}

// Underscore converts a PascalCase or camelCase word to snake_case.
//
//	BackendMenuListener -> backend_menu_listener
//	HTTPKernel          -> http_kernel
//	Version400Update    -> version400_update
func Underscore(s string) string {
	s = acronymBoundary.ReplaceAllString(s, "${1}_${2}")
	s = wordBoundary.ReplaceAllString(s, "${1}_${2}")
	return strings.ToLower(s)
}
