package filter

import (
	"strings"

	"github.com/hupe1980/docgo/model"
)

// CompositeOperator combines the results of sub-filters.
type CompositeOperator string

const (
	// CompositeAnd requires all sub-filters to match.
	CompositeAnd CompositeOperator = "and"
	// CompositeOr requires at least one sub-filter to match.
	CompositeOr CompositeOperator = "or"
)

// Composite combines sub-filters with AND or OR logic.
type Composite struct {
	op      CompositeOperator
	filters []Filter
}

var _ Filter = (*Composite)(nil)

// And creates a composite filter matching documents that satisfy every
// sub-filter. With no sub-filters it matches everything.
func And(filters ...Filter) *Composite {
	return newComposite(CompositeAnd, filters)
}

// Or creates a composite filter matching documents that satisfy at least one
// sub-filter. With no sub-filters it matches nothing.
func Or(filters ...Filter) *Composite {
	return newComposite(CompositeOr, filters)
}

func newComposite(op CompositeOperator, filters []Filter) *Composite {
	for _, f := range filters {
		if f == nil {
			panic("docgo/filter: composite filters must not contain nil sub-filters")
		}
	}

	owned := make([]Filter, len(filters))
	copy(owned, filters)

	return &Composite{op: op, filters: owned}
}

// Matches reports whether doc satisfies the composite.
func (c *Composite) Matches(doc model.Document) bool {
	if c.op == CompositeAnd {
		for _, f := range c.filters {
			if !f.Matches(doc) {
				return false
			}
		}
		return true
	}

	for _, f := range c.filters {
		if f.Matches(doc) {
			return true
		}
	}
	return false
}

// IsInequality always reports false. Range constraints only arise from
// top-level field filters.
func (c *Composite) IsInequality() bool {
	return false
}

// Field returns the zero FieldPath. Composites are not bound to a field.
func (c *Composite) Field() model.FieldPath {
	return model.FieldPath{}
}

// Operator returns the composite's combining operator.
func (c *Composite) Operator() CompositeOperator {
	return c.op
}

// Filters returns a copy of the sub-filters.
func (c *Composite) Filters() []Filter {
	out := make([]Filter, len(c.filters))
	copy(out, c.filters)
	return out
}

// CanonicalString returns a stable textual form, e.g. "and(a==i:1,b==i:2)".
func (c *Composite) CanonicalString() string {
	parts := make([]string, len(c.filters))
	for i, f := range c.filters {
		parts[i] = f.CanonicalString()
	}
	return string(c.op) + "(" + strings.Join(parts, ",") + ")"
}

func (c *Composite) isFilter() {}
