// Package docset provides an ordered, immutable set of documents keyed by
// document identity.
//
// A DocumentSet keeps documents sorted by a DocumentComparator, typically
// obtained from a query's Comparator method. Add and Delete return new sets
// and never mutate the receiver, matching the value semantics of the query
// model: result sets can be shared across goroutines and updated by
// re-evaluation loops without locking.
package docset

import (
	"iter"
	"maps"
	"slices"

	"github.com/hupe1980/docgo/model"
	"github.com/hupe1980/docgo/query"
)

// DocumentSet is an ordered set of documents with at most one entry per
// document key. The zero value is not usable; construct sets with New or
// FromDocuments.
type DocumentSet struct {
	cmp   query.DocumentComparator
	docs  []model.Document
	byKey map[string]model.Document
}

// New creates an empty set ordered by cmp. The comparator must order
// distinct documents deterministically; query.Query.Comparator guarantees
// this through its key tie-break.
func New(cmp query.DocumentComparator) DocumentSet {
	if cmp == nil {
		panic("docgo/docset: document sets require a comparator")
	}
	return DocumentSet{cmp: cmp, byKey: map[string]model.Document{}}
}

// FromDocuments creates a set ordered by cmp containing docs. Later
// documents replace earlier ones with the same key.
func FromDocuments(cmp query.DocumentComparator, docs ...model.Document) DocumentSet {
	set := New(cmp)
	for _, doc := range docs {
		set = set.Add(doc)
	}
	return set
}

// Len returns the number of documents in the set.
func (s DocumentSet) Len() int {
	return len(s.docs)
}

// IsEmpty reports whether the set contains no documents.
func (s DocumentSet) IsEmpty() bool {
	return len(s.docs) == 0
}

// Contains reports whether a document with the given key is in the set.
func (s DocumentSet) Contains(key model.DocumentKey) bool {
	_, ok := s.byKey[key.String()]
	return ok
}

// Get returns the document stored under key, if any.
func (s DocumentSet) Get(key model.DocumentKey) (model.Document, bool) {
	doc, ok := s.byKey[key.String()]
	return doc, ok
}

// IndexOf returns the sorted position of the document stored under key, or
// -1 when absent.
func (s DocumentSet) IndexOf(key model.DocumentKey) int {
	doc, ok := s.byKey[key.String()]
	if !ok {
		return -1
	}

	idx, found := slices.BinarySearchFunc(s.docs, doc, s.cmp)
	if !found {
		return -1
	}
	for i := idx; i < len(s.docs) && s.cmp(s.docs[i], doc) == 0; i++ {
		if s.docs[i].Key().Equal(key) {
			return i
		}
	}
	return -1
}

// First returns the smallest document under the set's ordering, if any.
func (s DocumentSet) First() (model.Document, bool) {
	if len(s.docs) == 0 {
		return model.Document{}, false
	}
	return s.docs[0], true
}

// Last returns the largest document under the set's ordering, if any.
func (s DocumentSet) Last() (model.Document, bool) {
	if len(s.docs) == 0 {
		return model.Document{}, false
	}
	return s.docs[len(s.docs)-1], true
}

// Add returns a new set containing doc at its sorted position. Any existing
// entry with the same key is replaced, even when the replacement sorts
// elsewhere.
func (s DocumentSet) Add(doc model.Document) DocumentSet {
	docs := make([]model.Document, 0, len(s.docs)+1)
	for _, existing := range s.docs {
		if !existing.Key().Equal(doc.Key()) {
			docs = append(docs, existing)
		}
	}

	idx, _ := slices.BinarySearchFunc(docs, doc, s.cmp)
	docs = slices.Insert(docs, idx, doc)

	byKey := make(map[string]model.Document, len(docs))
	maps.Copy(byKey, s.byKey)
	byKey[doc.Key().String()] = doc

	return DocumentSet{cmp: s.cmp, docs: docs, byKey: byKey}
}

// Delete returns a new set without the document stored under key. Deleting
// an absent key returns the receiver unchanged.
func (s DocumentSet) Delete(key model.DocumentKey) DocumentSet {
	if !s.Contains(key) {
		return s
	}

	docs := make([]model.Document, 0, len(s.docs)-1)
	for _, existing := range s.docs {
		if !existing.Key().Equal(key) {
			docs = append(docs, existing)
		}
	}

	byKey := make(map[string]model.Document, len(docs))
	maps.Copy(byKey, s.byKey)
	delete(byKey, key.String())

	return DocumentSet{cmp: s.cmp, docs: docs, byKey: byKey}
}

// Documents iterates the set in sorted order.
func (s DocumentSet) Documents() iter.Seq[model.Document] {
	return func(yield func(model.Document) bool) {
		for _, doc := range s.docs {
			if !yield(doc) {
				return
			}
		}
	}
}

// Slice returns the documents in sorted order as a new slice.
func (s DocumentSet) Slice() []model.Document {
	out := make([]model.Document, len(s.docs))
	copy(out, s.docs)
	return out
}

// Equal reports whether both sets contain equal documents in the same
// order.
func (s DocumentSet) Equal(other DocumentSet) bool {
	if len(s.docs) != len(other.docs) {
		return false
	}
	for i := range s.docs {
		if !s.docs[i].Equal(other.docs[i]) {
			return false
		}
	}
	return true
}
