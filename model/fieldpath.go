package model

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
)

// KeyFieldName is the reserved field name denoting ordering or filtering by
// document identity rather than by a stored field.
const KeyFieldName = "__name__"

// keyFieldSegments backs every KeyFieldPath value; it is never mutated.
var keyFieldSegments = []string{KeyFieldName}

// FieldPath is an ordered sequence of field names locating a value inside a
// document, e.g. the two-segment path "address.city". FieldPath values are
// immutable.
type FieldPath struct {
	segments []string
}

// NewFieldPath creates a FieldPath from the given segments.
// It panics if no segments are given or any segment is empty.
func NewFieldPath(segments ...string) FieldPath {
	if len(segments) == 0 {
		panic("docgo/model: field paths must have at least one segment")
	}
	for _, segment := range segments {
		if segment == "" {
			panic("docgo/model: field path segments must be non-empty")
		}
	}
	return FieldPath{segments: slices.Clone(segments)}
}

// ParseFieldPath parses a dot-separated field path string such as
// "address.city".
func ParseFieldPath(s string) (FieldPath, error) {
	if s == "" {
		return FieldPath{}, fmt.Errorf("invalid field path: empty string")
	}
	segments := strings.Split(s, ".")
	for _, segment := range segments {
		if segment == "" {
			return FieldPath{}, fmt.Errorf("invalid field path %q: empty segment", s)
		}
	}
	return FieldPath{segments: segments}, nil
}

// MustParseFieldPath is like ParseFieldPath but panics on error.
// Use this only in tests or when the path is a compile-time constant.
func MustParseFieldPath(s string) FieldPath {
	p, err := ParseFieldPath(s)
	if err != nil {
		panic(err)
	}
	return p
}

// KeyFieldPath returns the sentinel path that orders and filters by
// document identity.
func KeyFieldPath() FieldPath {
	return FieldPath{segments: keyFieldSegments}
}

// IsKeyFieldPath reports whether p is the document-identity sentinel.
func (p FieldPath) IsKeyFieldPath() bool {
	return len(p.segments) == 1 && p.segments[0] == KeyFieldName
}

// Segments returns a copy of the path's segments.
func (p FieldPath) Segments() []string {
	return slices.Clone(p.segments)
}

// Len returns the number of segments.
func (p FieldPath) Len() int {
	return len(p.segments)
}

// IsEmpty reports whether the path has no segments. The zero FieldPath is
// empty; it names no field and is only used as a "no field" placeholder.
func (p FieldPath) IsEmpty() bool {
	return len(p.segments) == 0
}

// Segment returns the i-th segment.
func (p FieldPath) Segment(i int) string {
	return p.segments[i]
}

// Compare orders field paths segment-wise; a shorter path sorts before any
// path it is a prefix of.
func (p FieldPath) Compare(other FieldPath) int {
	for i := 0; i < len(p.segments) && i < len(other.segments); i++ {
		if c := strings.Compare(p.segments[i], other.segments[i]); c != 0 {
			return c
		}
	}
	return cmp.Compare(len(p.segments), len(other.segments))
}

// Equal reports whether both paths consist of identical segments.
func (p FieldPath) Equal(other FieldPath) bool {
	return slices.Equal(p.segments, other.segments)
}

// String returns the dot-separated form of the path.
func (p FieldPath) String() string {
	return strings.Join(p.segments, ".")
}
