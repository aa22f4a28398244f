package filter

import "github.com/hupe1980/docgo/model"

// Operator represents a comparison operator for field filters.
type Operator string

const (
	// OpLessThan represents the less than operator.
	OpLessThan Operator = "<"
	// OpLessThanOrEqual represents the less than or equal operator.
	OpLessThanOrEqual Operator = "<="
	// OpEqual represents the equality operator.
	OpEqual Operator = "=="
	// OpGreaterThan represents the greater than operator.
	OpGreaterThan Operator = ">"
	// OpGreaterThanOrEqual represents the greater than or equal operator.
	OpGreaterThanOrEqual Operator = ">="
	// OpArrayContains matches array fields containing the filter value.
	OpArrayContains Operator = "array-contains"
	// OpIn matches fields equal to any element of the filter value array.
	OpIn Operator = "in"
	// OpArrayContainsAny matches array fields sharing at least one element
	// with the filter value array.
	OpArrayContainsAny Operator = "array-contains-any"
)

// IsInequality reports whether the operator imposes a range constraint.
// Equality and the membership operators are not inequalities.
func (o Operator) IsInequality() bool {
	switch o {
	case OpLessThan, OpLessThanOrEqual, OpGreaterThan, OpGreaterThanOrEqual:
		return true
	default:
		return false
	}
}

// Filter decides whether a document satisfies a condition.
//
// The set of implementations is closed: Field for single-field comparisons
// and Composite for AND/OR combinations of sub-filters.
type Filter interface {
	// Matches reports whether doc satisfies the filter.
	Matches(doc model.Document) bool

	// IsInequality reports whether the filter imposes a range constraint on
	// a single field. Composites are never inequalities, regardless of what
	// they contain.
	IsInequality() bool

	// Field returns the filtered field for Field filters and the zero
	// FieldPath for composites.
	Field() model.FieldPath

	// CanonicalString returns a stable textual form of the filter, suitable
	// as part of a query identity.
	CanonicalString() string

	isFilter()
}
