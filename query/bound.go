package query

import (
	"strings"

	"github.com/hupe1980/docgo/model"
)

// Bound is a cursor position: an ordered sequence of component values
// interpreted against a query's derived ordering, plus an inclusivity flag.
type Bound struct {
	position []model.Value
	before   bool
}

// NewBound creates a cursor at the given position. A before bound sorts
// ahead of documents that tie with it, so it is inclusive as a start cursor
// and exclusive as an end cursor.
func NewBound(position []model.Value, before bool) Bound {
	owned := make([]model.Value, len(position))
	copy(owned, position)
	return Bound{position: owned, before: before}
}

// Position returns a copy of the bound's component values.
func (b Bound) Position() []model.Value {
	out := make([]model.Value, len(b.position))
	copy(out, b.position)
	return out
}

// Before reports whether the bound sorts ahead of documents it ties with.
func (b Bound) Before() bool {
	return b.before
}

// SortsBeforeDocument reports whether the bound sorts before doc under the
// given ordering. The first position component is compared on the first
// ordering entry and so on; the first non-equal component decides, and a
// before bound wins ties.
//
// It panics when the position has more components than the ordering, when a
// key-field component is not a reference, or when doc lacks an ordered
// field.
func (b Bound) SortsBeforeDocument(ordering []OrderBy, doc model.Document) bool {
	if len(b.position) > len(ordering) {
		panic("docgo/query: bound has more components than the ordering")
	}

	result := 0
	for i, component := range b.position {
		entry := ordering[i]

		var cmp int
		if entry.Field().IsKeyFieldPath() {
			ref, ok := component.AsRef()
			if !ok {
				panic("docgo/query: key ordering components must be references")
			}
			cmp = ref.Compare(doc.Key())
		} else {
			value, ok := doc.Field(entry.Field())
			if !ok {
				panic("docgo/query: bound compared against a document missing an ordered field")
			}
			cmp = model.Compare(component, value)
		}

		if cmp = entry.Direction().applyTo(cmp); cmp != 0 {
			result = cmp
			break
		}
	}

	if b.before {
		return result <= 0
	}
	return result < 0
}

// Equal reports whether both bounds carry the same position values and
// inclusivity. Positions compare type-sensitively, so an integer and a
// float component never match.
func (b Bound) Equal(other Bound) bool {
	if b.before != other.before || len(b.position) != len(other.position) {
		return false
	}
	for i := range b.position {
		if b.position[i].CanonicalString() != other.position[i].CanonicalString() {
			return false
		}
	}
	return true
}

// CanonicalString returns a stable textual form, e.g. "b:[i:1000000]".
func (b Bound) CanonicalString() string {
	var sb strings.Builder
	if b.before {
		sb.WriteString("b:[")
	} else {
		sb.WriteString("a:[")
	}
	for i, component := range b.position {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(component.CanonicalString())
	}
	sb.WriteByte(']')
	return sb.String()
}
