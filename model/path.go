package model

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
)

// ResourcePath is an ordered sequence of segments locating a node in the
// hierarchical document tree, e.g. "cities/SF" or "regions/west/cities".
// Segments alternate between collection ids and document ids, starting with
// a collection id at the root.
//
// ResourcePath values are immutable: deriving operations return new values
// and never modify the receiver.
type ResourcePath struct {
	segments []string
}

// NewResourcePath creates a ResourcePath from the given segments.
// It panics if any segment is empty.
func NewResourcePath(segments ...string) ResourcePath {
	for _, segment := range segments {
		if segment == "" {
			panic("docgo/model: resource path segments must be non-empty")
		}
	}
	return ResourcePath{segments: slices.Clone(segments)}
}

// ParseResourcePath parses a slash-separated path string such as
// "regions/west/cities". The empty string yields the root path.
func ParseResourcePath(s string) (ResourcePath, error) {
	if s == "" {
		return ResourcePath{}, nil
	}
	segments := strings.Split(s, "/")
	for _, segment := range segments {
		if segment == "" {
			return ResourcePath{}, fmt.Errorf("invalid resource path %q: empty segment", s)
		}
	}
	return ResourcePath{segments: segments}, nil
}

// MustParseResourcePath is like ParseResourcePath but panics on error.
// Use this only in tests or when the path is a compile-time constant.
func MustParseResourcePath(s string) ResourcePath {
	p, err := ParseResourcePath(s)
	if err != nil {
		panic(err)
	}
	return p
}

// Segments returns a copy of the path's segments.
func (p ResourcePath) Segments() []string {
	return slices.Clone(p.segments)
}

// Len returns the number of segments.
func (p ResourcePath) Len() int {
	return len(p.segments)
}

// IsEmpty reports whether the path has no segments, i.e. it names the root
// of the document tree.
func (p ResourcePath) IsEmpty() bool {
	return len(p.segments) == 0
}

// Segment returns the i-th segment.
func (p ResourcePath) Segment(i int) string {
	return p.segments[i]
}

// First returns the first segment. It panics on the root path.
func (p ResourcePath) First() string {
	if p.IsEmpty() {
		panic("docgo/model: First called on the root path")
	}
	return p.segments[0]
}

// Last returns the last segment. It panics on the root path.
func (p ResourcePath) Last() string {
	if p.IsEmpty() {
		panic("docgo/model: Last called on the root path")
	}
	return p.segments[len(p.segments)-1]
}

// Append returns a new path with segment added below p.
// It panics if segment is empty.
func (p ResourcePath) Append(segment string) ResourcePath {
	if segment == "" {
		panic("docgo/model: resource path segments must be non-empty")
	}
	segments := make([]string, 0, len(p.segments)+1)
	segments = append(segments, p.segments...)
	segments = append(segments, segment)
	return ResourcePath{segments: segments}
}

// Parent returns the path without its last segment. It panics on the root
// path.
func (p ResourcePath) Parent() ResourcePath {
	if p.IsEmpty() {
		panic("docgo/model: Parent called on the root path")
	}
	return ResourcePath{segments: p.segments[:len(p.segments)-1]}
}

// IsPrefixOf reports whether every segment of p matches the corresponding
// leading segment of other. The root path is a prefix of every path.
func (p ResourcePath) IsPrefixOf(other ResourcePath) bool {
	if len(p.segments) > len(other.segments) {
		return false
	}
	for i, segment := range p.segments {
		if other.segments[i] != segment {
			return false
		}
	}
	return true
}

// IsImmediateParentOf reports whether other is exactly one segment below p.
func (p ResourcePath) IsImmediateParentOf(other ResourcePath) bool {
	return len(p.segments)+1 == len(other.segments) && p.IsPrefixOf(other)
}

// Compare orders paths segment-wise; a shorter path sorts before any path
// it is a prefix of.
func (p ResourcePath) Compare(other ResourcePath) int {
	for i := 0; i < len(p.segments) && i < len(other.segments); i++ {
		if c := strings.Compare(p.segments[i], other.segments[i]); c != 0 {
			return c
		}
	}
	return cmp.Compare(len(p.segments), len(other.segments))
}

// Equal reports whether both paths consist of identical segments.
func (p ResourcePath) Equal(other ResourcePath) bool {
	return slices.Equal(p.segments, other.segments)
}

// String returns the slash-separated form of the path. The root path
// renders as the empty string.
func (p ResourcePath) String() string {
	return strings.Join(p.segments, "/")
}
