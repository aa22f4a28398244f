package query

import (
	"strconv"
	"strings"

	"github.com/hupe1980/docgo/filter"
	"github.com/hupe1980/docgo/model"
)

// NoLimit marks a query without a result-count cap.
const NoLimit int64 = -1

// Query describes which documents of a hierarchical document tree match and
// in what order they are presented. It is an immutable value: every builder
// method returns a new Query and never mutates its receiver, so queries can
// be shared freely across goroutines.
//
// A query scopes either a single collection (documents directly under its
// path), a single document (its path names one), or a collection group
// (documents anywhere under its path whose collection id matches).
type Query struct {
	path             model.ResourcePath
	collectionGroup  string
	filters          []filter.Filter
	explicitOrderBys []OrderBy
	limit            int64
	startAt          *Bound
	endAt            *Bound

	// orderBys is derived from filters and explicitOrderBys at construction
	// and always ends in a total order over documents.
	orderBys []OrderBy
}

// New creates a query scoped at path with no filters, ordering, limit or
// bounds. A path naming a document yields a document query; any other path
// matches the direct children of path.
func New(path model.ResourcePath) Query {
	return newQuery(path, "", nil, nil, NoLimit, nil, nil)
}

// NewCollectionGroup creates a query matching documents anywhere under path
// whose immediate collection id equals collectionGroup.
func NewCollectionGroup(path model.ResourcePath, collectionGroup string) Query {
	if collectionGroup == "" {
		panic("docgo/query: collection group queries require a non-empty group id")
	}
	return newQuery(path, collectionGroup, nil, nil, NoLimit, nil, nil)
}

func newQuery(path model.ResourcePath, collectionGroup string, filters []filter.Filter, explicitOrderBys []OrderBy, limit int64, startAt, endAt *Bound) Query {
	return Query{
		path:             path,
		collectionGroup:  collectionGroup,
		filters:          filters,
		explicitOrderBys: explicitOrderBys,
		limit:            limit,
		startAt:          startAt,
		endAt:            endAt,
		orderBys:         deriveOrderBys(filters, explicitOrderBys),
	}
}

// deriveOrderBys computes the complete ordering implied by the filters and
// the explicit order bys. The result is never empty and always contains a
// key-field entry, so document identity breaks all ties.
func deriveOrderBys(filters []filter.Filter, explicit []OrderBy) []OrderBy {
	inequality, hasInequality := inequalityFilterField(filters)

	if hasInequality && len(explicit) == 0 {
		// A range filter without explicit ordering is served in range
		// order: the range field leads, the key breaks ties.
		if inequality.IsKeyFieldPath() {
			return []OrderBy{NewOrderBy(model.KeyFieldPath(), Ascending)}
		}
		return []OrderBy{
			NewOrderBy(inequality, Ascending),
			NewOrderBy(model.KeyFieldPath(), Ascending),
		}
	}

	if hasInequality && !explicit[0].Field().Equal(inequality) {
		panic("docgo/query: the first order by must match the inequality field")
	}

	derived := make([]OrderBy, len(explicit), len(explicit)+1)
	copy(derived, explicit)

	for _, orderBy := range explicit {
		if orderBy.Field().IsKeyFieldPath() {
			return derived
		}
	}

	// The implicit key tie-break follows the direction of the last explicit
	// entry so cursors stay consistent with the visible ordering.
	direction := Ascending
	if len(explicit) > 0 {
		direction = explicit[len(explicit)-1].Direction()
	}
	return append(derived, NewOrderBy(model.KeyFieldPath(), direction))
}

func inequalityFilterField(filters []filter.Filter) (model.FieldPath, bool) {
	for _, f := range filters {
		if f.IsInequality() {
			return f.Field(), true
		}
	}
	return model.FieldPath{}, false
}

// AddingFilter returns a copy of q with f appended to the filter list.
// It panics when q is a document query or when f is an inequality on a
// different field than an existing inequality filter.
func (q Query) AddingFilter(f filter.Filter) Query {
	if f == nil {
		panic("docgo/query: filter must not be nil")
	}
	if q.IsDocumentQuery() {
		panic("docgo/query: no filter is allowed for document queries")
	}
	if f.IsInequality() {
		if existing, ok := q.InequalityFilterField(); ok && !existing.Equal(f.Field()) {
			panic("docgo/query: queries must only have one inequality field")
		}
	}

	return newQuery(q.path, q.collectionGroup, appendingTo(q.filters, f), q.explicitOrderBys, q.limit, q.startAt, q.endAt)
}

// AddingOrderBy returns a copy of q with orderBy appended to the explicit
// ordering. It panics when q is a document query or when the first explicit
// entry does not match an existing inequality filter's field.
func (q Query) AddingOrderBy(orderBy OrderBy) Query {
	if q.IsDocumentQuery() {
		panic("docgo/query: no ordering is allowed for document queries")
	}
	if len(q.explicitOrderBys) == 0 {
		if inequality, ok := q.InequalityFilterField(); ok && !inequality.Equal(orderBy.Field()) {
			panic("docgo/query: the first order by must match the inequality field")
		}
	}

	return newQuery(q.path, q.collectionGroup, q.filters, appendingTo(q.explicitOrderBys, orderBy), q.limit, q.startAt, q.endAt)
}

// WithLimit returns a copy of q capped at limit results. Negative values
// clear the cap.
func (q Query) WithLimit(limit int64) Query {
	if limit < 0 {
		limit = NoLimit
	}
	return newQuery(q.path, q.collectionGroup, q.filters, q.explicitOrderBys, limit, q.startAt, q.endAt)
}

// StartingAt returns a copy of q with bound as its start cursor.
func (q Query) StartingAt(bound Bound) Query {
	return newQuery(q.path, q.collectionGroup, q.filters, q.explicitOrderBys, q.limit, &bound, q.endAt)
}

// EndingAt returns a copy of q with bound as its end cursor.
func (q Query) EndingAt(bound Bound) Query {
	return newQuery(q.path, q.collectionGroup, q.filters, q.explicitOrderBys, q.limit, q.startAt, &bound)
}

// AsCollectionQueryAtPath returns a copy of q scoped at path with no
// collection group, keeping filters, ordering, limit and bounds.
func (q Query) AsCollectionQueryAtPath(path model.ResourcePath) Query {
	return newQuery(path, "", q.filters, q.explicitOrderBys, q.limit, q.startAt, q.endAt)
}

// appendingTo copies src and appends v, never sharing a backing array with
// the receiver.
func appendingTo[T any](src []T, v T) []T {
	out := make([]T, len(src)+1)
	copy(out, src)
	out[len(src)] = v
	return out
}

// Path returns the query's scope path.
func (q Query) Path() model.ResourcePath {
	return q.path
}

// CollectionGroup returns the collection group id, or "" when absent.
func (q Query) CollectionGroup() string {
	return q.collectionGroup
}

// IsCollectionGroupQuery reports whether a collection group is set.
func (q Query) IsCollectionGroupQuery() bool {
	return q.collectionGroup != ""
}

// IsDocumentQuery reports whether the query names exactly one document:
// its path is a document path, no collection group is set, and no filters
// have been added.
func (q Query) IsDocumentQuery() bool {
	return model.IsDocumentPath(q.path) && q.collectionGroup == "" && len(q.filters) == 0
}

// Filters returns a copy of the filter list.
func (q Query) Filters() []filter.Filter {
	out := make([]filter.Filter, len(q.filters))
	copy(out, q.filters)
	return out
}

// ExplicitOrderBys returns a copy of the caller-supplied ordering.
func (q Query) ExplicitOrderBys() []OrderBy {
	out := make([]OrderBy, len(q.explicitOrderBys))
	copy(out, q.explicitOrderBys)
	return out
}

// OrderBys returns a copy of the derived ordering: the explicit entries
// plus whatever the query implies (inequality field, key tie-break). It is
// never empty.
func (q Query) OrderBys() []OrderBy {
	out := make([]OrderBy, len(q.orderBys))
	copy(out, q.orderBys)
	return out
}

// Limit returns the result-count cap, or NoLimit.
func (q Query) Limit() int64 {
	return q.limit
}

// HasLimit reports whether a result-count cap is set.
func (q Query) HasLimit() bool {
	return q.limit != NoLimit
}

// StartAt returns the start cursor, if any.
func (q Query) StartAt() (Bound, bool) {
	if q.startAt == nil {
		return Bound{}, false
	}
	return *q.startAt, true
}

// EndAt returns the end cursor, if any.
func (q Query) EndAt() (Bound, bool) {
	if q.endAt == nil {
		return Bound{}, false
	}
	return *q.endAt, true
}

// InequalityFilterField returns the field of the first inequality filter,
// if any. Builder validation guarantees all inequality filters share one
// field.
func (q Query) InequalityFilterField() (model.FieldPath, bool) {
	return inequalityFilterField(q.filters)
}

// FirstOrderByField returns the field of the first explicit order by, if
// any.
func (q Query) FirstOrderByField() (model.FieldPath, bool) {
	if len(q.explicitOrderBys) == 0 {
		return model.FieldPath{}, false
	}
	return q.explicitOrderBys[0].Field(), true
}

// HasArrayContainsFilter reports whether any top-level field filter uses
// the array-contains operator.
func (q Query) HasArrayContainsFilter() bool {
	for _, f := range q.filters {
		if fieldFilter, ok := f.(*filter.Field); ok && fieldFilter.Operator() == filter.OpArrayContains {
			return true
		}
	}
	return false
}

// Matches reports whether doc belongs to the query's result set. It never
// fails: documents lacking a filtered or explicitly ordered field simply do
// not match.
func (q Query) Matches(doc model.Document) bool {
	return q.matchesPathAndCollectionGroup(doc) &&
		q.matchesOrderBy(doc) &&
		q.matchesFilters(doc) &&
		q.matchesBounds(doc)
}

func (q Query) matchesPathAndCollectionGroup(doc model.Document) bool {
	docPath := doc.Path()
	switch {
	case q.collectionGroup != "":
		return doc.Key().HasCollectionID(q.collectionGroup) && q.path.IsPrefixOf(docPath)
	case model.IsDocumentPath(q.path):
		return q.path.Equal(docPath)
	default:
		return q.path.IsImmediateParentOf(docPath)
	}
}

// matchesOrderBy checks field presence for the explicit entries only; the
// derived key entry holds for every document.
func (q Query) matchesOrderBy(doc model.Document) bool {
	for _, orderBy := range q.explicitOrderBys {
		field := orderBy.Field()
		if !field.IsKeyFieldPath() && !doc.HasField(field) {
			return false
		}
	}
	return true
}

func (q Query) matchesFilters(doc model.Document) bool {
	for _, f := range q.filters {
		if !f.Matches(doc) {
			return false
		}
	}
	return true
}

func (q Query) matchesBounds(doc model.Document) bool {
	if q.startAt != nil && !q.startAt.SortsBeforeDocument(q.orderBys, doc) {
		return false
	}
	if q.endAt != nil && q.endAt.SortsBeforeDocument(q.orderBys, doc) {
		return false
	}
	return true
}

// Equal reports whether both queries describe the same result set: equal
// paths, collection groups, filter lists, derived orderings, limits and
// bounds. Queries built from different explicit orderings are equal when
// their derived orderings coincide.
func (q Query) Equal(other Query) bool {
	if !q.path.Equal(other.path) || q.collectionGroup != other.collectionGroup || q.limit != other.limit {
		return false
	}
	if len(q.filters) != len(other.filters) {
		return false
	}
	for i := range q.filters {
		if q.filters[i].CanonicalString() != other.filters[i].CanonicalString() {
			return false
		}
	}
	if !orderBysEqual(q.orderBys, other.orderBys) {
		return false
	}
	return boundsEqual(q.startAt, other.startAt) && boundsEqual(q.endAt, other.endAt)
}

func orderBysEqual(a, b []OrderBy) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}

func boundsEqual(a, b *Bound) bool {
	switch {
	case a == nil && b == nil:
		return true
	case a == nil || b == nil:
		return false
	default:
		return a.Equal(*b)
	}
}

// CanonicalID returns a stable textual identity for the query. Queries that
// compare Equal produce the same ID, making it usable as a cache or
// listener key.
func (q Query) CanonicalID() string {
	var sb strings.Builder

	sb.WriteString(q.path.String())
	if q.collectionGroup != "" {
		sb.WriteString("|cg:")
		sb.WriteString(q.collectionGroup)
	}

	sb.WriteString("|f:")
	for i, f := range q.filters {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(f.CanonicalString())
	}

	sb.WriteString("|ob:")
	for i, orderBy := range q.orderBys {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(orderBy.CanonicalString())
	}

	if q.HasLimit() {
		sb.WriteString("|l:")
		sb.WriteString(strconv.FormatInt(q.limit, 10))
	}
	if q.startAt != nil {
		sb.WriteString("|lb:")
		sb.WriteString(q.startAt.CanonicalString())
	}
	if q.endAt != nil {
		sb.WriteString("|ub:")
		sb.WriteString(q.endAt.CanonicalString())
	}

	return sb.String()
}

// DocumentComparator orders documents; negative means a sorts before b.
type DocumentComparator func(a, b model.Document) int

// Comparator composes the derived ordering into a single comparison
// function. The key tie-break guarantees no two distinct documents compare
// equal.
func (q Query) Comparator() DocumentComparator {
	ordering := q.orderBys
	return func(a, b model.Document) int {
		for _, orderBy := range ordering {
			if cmp := orderBy.Compare(a, b); cmp != 0 {
				return cmp
			}
		}
		return 0
	}
}
