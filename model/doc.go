// Package model defines the document tree types used throughout docgo.
//
// # Identity Types
//
//   - ResourcePath: slash-separated location in the document tree
//   - FieldPath: dot-separated location inside a document
//   - DocumentKey: ResourcePath with document shape (even segment count)
//
// # Data Types
//
//   - Value: closed tagged union of field value kinds with a total order
//   - Document: immutable key + field map snapshot
//
// # Ordering
//
// Compare defines one total order across all Value kinds:
//
//	Null < Bool < Number < Time < String < Ref < Array < Map
//
// Int and Float values compare numerically with each other, and NaN sorts
// before every other number. A total value order is what keeps derived
// document orderings free of incomparable pairs.
//
// # Key Field
//
// The reserved field path "__name__" (KeyFieldPath) stands for the
// document's identity instead of a stored field. Ordering by it compares
// document keys; filtering on it compares against Ref values.
package model
