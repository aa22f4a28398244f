// Package query provides the client-side query model: an immutable Query
// value, its builder operations, the derived total ordering, cursor bounds,
// and the document-matching predicate.
//
// # Queries
//
// A Query starts from a scope path and grows through pure builder calls:
//
//	q := query.New(model.NewResourcePath("cities")).
//	    AddingFilter(filter.Gt(population, model.Int(1_000_000))).
//	    WithLimit(10)
//
// Builders never mutate their receiver; each returns a new value sharing
// only immutable state with the old one. Queries are therefore safe to
// share across goroutines without locking.
//
// # Invariants
//
// Builder calls panic instead of producing inconsistent queries:
//
//   - at most one distinct inequality field across all filters
//   - with both present, the first explicit order by must use the
//     inequality field
//   - document queries (path names one document, no collection group)
//     accept no filters and no ordering
//
// # Derived Ordering
//
// OrderBys extends the explicit ordering into a total order. An inequality
// filter without explicit ordering sorts by its field; a key-field entry is
// appended (following the last explicit direction) unless one is already
// present. Document identity thus breaks every tie, which keeps cursor
// positions unique and pagination stable.
//
// # Matching
//
// Matches composes four checks: scope (shallow collection, exact document,
// or collection group), explicit order-by field presence, all filters, and
// the cursor bounds evaluated against the derived ordering. It never fails;
// missing fields are non-matches.
package query
