package model

import "fmt"

// DocumentKey identifies a single document by its full resource path.
// A document path has an even, non-zero number of segments, alternating
// collection ids and document ids.
type DocumentKey struct {
	path ResourcePath
}

// IsDocumentPath reports whether path names an exact document rather than a
// collection or the root.
func IsDocumentPath(path ResourcePath) bool {
	return path.Len() > 0 && path.Len()%2 == 0
}

// NewDocumentKey creates a DocumentKey from path.
// It panics if path does not name an exact document.
func NewDocumentKey(path ResourcePath) DocumentKey {
	if !IsDocumentPath(path) {
		panic(fmt.Sprintf("docgo/model: %q is not a valid document path", path))
	}
	return DocumentKey{path: path}
}

// DocumentKeyFromString parses a slash-separated document path such as
// "cities/SF". It panics if s is not a valid document path and is intended
// for trusted, statically known paths.
func DocumentKeyFromString(s string) DocumentKey {
	path, err := ParseResourcePath(s)
	if err != nil {
		panic(fmt.Sprintf("docgo/model: invalid document path %q: %v", s, err))
	}
	return NewDocumentKey(path)
}

// Path returns the key's full resource path.
func (k DocumentKey) Path() ResourcePath {
	return k.path
}

// CollectionID returns the id of the collection immediately containing the
// document, i.e. the second-to-last path segment.
func (k DocumentKey) CollectionID() string {
	return k.path.Segment(k.path.Len() - 2)
}

// DocumentID returns the document's own id, i.e. the last path segment.
func (k DocumentKey) DocumentID() string {
	return k.path.Last()
}

// HasCollectionID reports whether the document lives directly in a
// collection named id.
func (k DocumentKey) HasCollectionID(id string) bool {
	return k.CollectionID() == id
}

// Compare orders keys by their paths.
func (k DocumentKey) Compare(other DocumentKey) int {
	return k.path.Compare(other.path)
}

// Equal reports whether both keys name the same document.
func (k DocumentKey) Equal(other DocumentKey) bool {
	return k.path.Equal(other.path)
}

// String returns the slash-separated document path.
func (k DocumentKey) String() string {
	return k.path.String()
}
