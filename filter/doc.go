// Package filter provides the filter conditions evaluated by document
// queries.
//
// A query's filter list is a logical AND of Filter values. Two variants
// exist:
//
//   - Field: a single-field comparison (relational, equality, or array
//     membership operators)
//   - Composite: AND/OR combinations of sub-filters
//
// # Field Filters
//
// Build field filters with the convenience constructors:
//
//	filter.Gt(model.NewFieldPath("population"), model.Int(1_000_000))
//	filter.Eq(model.NewFieldPath("state"), model.String("CA"))
//	filter.ArrayContains(model.NewFieldPath("tags"), model.String("coastal"))
//	filter.In(model.NewFieldPath("state"), model.String("CA"), model.String("OR"))
//
// Relational filters only match documents whose stored value shares the
// filter value's type rank: a numeric range never matches a string field.
// Documents lacking the filtered field never match.
//
// # Key-Field Filters
//
// Filters on the reserved key field path compare document identity instead
// of a stored value. They require reference values:
//
//	filter.Gte(model.KeyFieldPath(), model.Ref(model.DocumentKeyFromString("cities/M")))
//
// # Composites
//
// Combine filters with And and Or:
//
//	filter.Or(
//	    filter.Eq(state, model.String("CA")),
//	    filter.Eq(state, model.String("OR")),
//	)
//
// Composites are never inequalities; only top-level field filters constrain
// a query's ordering.
package filter
