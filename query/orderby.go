package query

import "github.com/hupe1980/docgo/model"

// Direction controls the sort direction of an ordering entry.
type Direction int8

const (
	// Ascending sorts smaller values first.
	Ascending Direction = 1
	// Descending sorts larger values first.
	Descending Direction = -1
)

// String returns "asc" or "desc".
func (d Direction) String() string {
	if d == Descending {
		return "desc"
	}
	return "asc"
}

// applyTo flips cmp for descending entries.
func (d Direction) applyTo(cmp int) int {
	if d == Descending {
		return -cmp
	}
	return cmp
}

// OrderBy is one entry of a query ordering: a field path and a direction.
// The key field path orders by document identity.
type OrderBy struct {
	field model.FieldPath
	dir   Direction
}

// NewOrderBy creates an ordering entry. It panics on an empty field path.
func NewOrderBy(field model.FieldPath, dir Direction) OrderBy {
	if field.IsEmpty() {
		panic("docgo/query: order bys require a non-empty field path")
	}
	return OrderBy{field: field, dir: dir}
}

// Field returns the ordered field path.
func (o OrderBy) Field() model.FieldPath {
	return o.field
}

// Direction returns the sort direction.
func (o OrderBy) Direction() Direction {
	return o.dir
}

// Compare orders a against b on this entry's field. Both documents must
// carry the field unless it is the key sentinel; absence panics, since
// matching already guarantees presence.
func (o OrderBy) Compare(a, b model.Document) int {
	if o.field.IsKeyFieldPath() {
		return o.dir.applyTo(a.Key().Compare(b.Key()))
	}

	va, okA := a.Field(o.field)
	vb, okB := b.Field(o.field)
	if !okA || !okB {
		panic("docgo/query: cannot compare documents on a missing field")
	}
	return o.dir.applyTo(model.Compare(va, vb))
}

// Equal reports whether both field and direction match.
func (o OrderBy) Equal(other OrderBy) bool {
	return o.dir == other.dir && o.field.Equal(other.field)
}

// CanonicalString returns a stable textual form, e.g. "population asc".
func (o OrderBy) CanonicalString() string {
	return o.field.String() + " " + o.dir.String()
}
