// Package docgo provides the client-side query core of a document database.
//
// Docgo decides, entirely on the client and without contacting a server,
// whether a locally cached document satisfies a declarative query and in
// what order matching documents must be presented. It is the logic that
// backs offline query execution, live-query re-evaluation on local writes,
// and cursor/bound checks.
//
// # Quick Start
//
//	cities := model.MustParseResourcePath("cities")
//	q := query.New(cities).
//	    AddingFilter(filter.Gt(model.MustParseFieldPath("population"), model.Int(1_000_000))).
//	    WithLimit(10)
//
//	engine := docgo.New()
//	defer engine.Close()
//
//	results, _ := engine.Execute(ctx, q, snapshot)
//	for _, doc := range results {
//	    fmt.Println(doc.Key())
//	}
//
// # Queries
//
// A query.Query is an immutable value: builder methods (AddingFilter,
// AddingOrderBy, WithLimit, StartingAt, EndingAt) return new values and
// never mutate the receiver, so queries can be shared freely across
// goroutines. Every query carries a complete derived ordering that extends
// the caller's explicit order-bys with the inequality field and the
// document key, making the sort total: no two distinct documents ever tie.
//
// # Execution
//
// Engine.Execute scans an in-memory snapshot in parallel (chunked workers,
// one roaring bitmap per worker), sorts the matches with the query's
// comparator and truncates to the limit. Scan concurrency is capped by a
// semaphore; plans (ordering + comparator) are cached in an LRU keyed by the
// query's canonical ID.
//
// # Live Re-evaluation
//
// Engine.Reevaluate maintains an ordered docset.DocumentSet across local
// writes: a changed document is re-matched against the query and added to or
// removed from the set, preserving sort order. An optional rate limiter
// keeps write storms from starving scans.
//
// # Key Features
//
//   - Total document ordering derived from filters + explicit order-bys
//   - Invariant-checked query builders (panic on caller bugs)
//   - Collection, collection-group and document scopes
//   - Cursor bounds with before/after semantics
//   - Parallel snapshot scans (errgroup + roaring bitmaps)
//   - Immutable values safe for unlimited concurrent readers
package docgo
