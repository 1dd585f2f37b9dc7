package naming

import (
	"errors"
	"fmt"
	"strings"
)

// NamespaceSeparator separates the segments of a fully qualified type name.
const NamespaceSeparator = `\`

var (
	// ErrEmptyTypeName is returned when parsing an empty type name.
	ErrEmptyTypeName = errors.New("empty type name")
	// ErrEmptySegment is returned when a type name contains an empty segment.
	ErrEmptySegment = errors.New("empty namespace segment")
)

// TypeName is a fully qualified type name: namespace segments terminating in
// the simple type name. The zero value is not a valid type name.
type TypeName struct {
	segments []string
}

// ParseTypeName splits s on the namespace separator. A single leading
// separator is accepted (\Foo\Bar).
func ParseTypeName(s string) (TypeName, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, NamespaceSeparator)
	if s == "" {
		return TypeName{}, ErrEmptyTypeName
	}

	parts := strings.Split(s, NamespaceSeparator)
	for i, p := range parts {
		if p == "" {
			return TypeName{}, fmt.Errorf("%w at position %d in %q", ErrEmptySegment, i, s)
		}
	}
	return TypeName{segments: parts}, nil
}

// MustParseTypeName is like ParseTypeName but panics on error.
// Intended for tables and tests.
func MustParseTypeName(s string) TypeName {
	t, err := ParseTypeName(s)
	if err != nil {
		panic(err)
	}
	return t
}

// NewTypeName builds a TypeName from already split segments.
func NewTypeName(segments ...string) (TypeName, error) {
	return ParseTypeName(strings.Join(segments, NamespaceSeparator))
}

// Segments returns a copy of the namespace segments.
func (t TypeName) Segments() []string {
	out := make([]string, len(t.segments))
	copy(out, t.segments)
	return out
}

// Len returns the number of segments.
func (t TypeName) Len() int {
	return len(t.segments)
}

// IsZero reports whether t is the zero TypeName.
func (t TypeName) IsZero() bool {
	return len(t.segments) == 0
}

// String returns the type name joined with the namespace separator.
func (t TypeName) String() string {
	return strings.Join(t.segments, NamespaceSeparator)
}

// ShortName returns the simple type name (last segment).
func (t TypeName) ShortName() string {
	if len(t.segments) == 0 {
		return ""
	}
	return t.segments[len(t.segments)-1]
}
