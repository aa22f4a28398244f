package filter

import (
	"fmt"

	"github.com/hupe1980/docgo/model"
)

// Field is a single-field comparison filter.
type Field struct {
	field model.FieldPath
	op    Operator
	value model.Value
}

var _ Filter = (*Field)(nil)

// NewField creates a field filter. It panics when the combination of field,
// operator and value is malformed:
//   - OpIn and OpArrayContainsAny require an array value.
//   - Key-field filters require reference values (an array of references
//     for OpIn) and do not support the array operators.
func NewField(field model.FieldPath, op Operator, value model.Value) *Field {
	if field.IsEmpty() {
		panic("docgo/filter: field filters require a non-empty field path")
	}

	if field.IsKeyFieldPath() {
		validateKeyField(op, value)
	} else if op == OpIn || op == OpArrayContainsAny {
		if value.Kind() != model.KindArray {
			panic(fmt.Sprintf("docgo/filter: %q filters require an array value", op))
		}
	}

	return &Field{field: field, op: op, value: value}
}

func validateKeyField(op Operator, value model.Value) {
	switch op {
	case OpArrayContains, OpArrayContainsAny:
		panic(fmt.Sprintf("docgo/filter: %q filters are not supported on the key field", op))
	case OpIn:
		elems, ok := value.AsArray()
		if !ok {
			panic("docgo/filter: \"in\" filters on the key field require an array value")
		}
		for _, elem := range elems {
			if elem.Kind() != model.KindRef {
				panic("docgo/filter: \"in\" filters on the key field require reference elements")
			}
		}
	default:
		if value.Kind() != model.KindRef {
			panic(fmt.Sprintf("docgo/filter: %q filters on the key field require a reference value", op))
		}
	}
}

// Matches reports whether doc satisfies the filter. Documents lacking the
// filtered field never match. Relational operators additionally require the
// stored value to share the filter value's type rank, so a string field never
// satisfies a numeric range.
func (f *Field) Matches(doc model.Document) bool {
	if f.field.IsKeyFieldPath() {
		return f.matchesKey(doc.Key())
	}

	value, ok := doc.Field(f.field)
	if !ok {
		return false
	}

	switch f.op {
	case OpArrayContains:
		elems, ok := value.AsArray()
		if !ok {
			return false
		}
		return containsEqual(elems, f.value)
	case OpIn:
		members, _ := f.value.AsArray()
		return containsEqual(members, value)
	case OpArrayContainsAny:
		elems, ok := value.AsArray()
		if !ok {
			return false
		}
		members, _ := f.value.AsArray()
		for _, elem := range elems {
			if containsEqual(members, elem) {
				return true
			}
		}
		return false
	default:
		return value.Comparable(f.value) && f.matchesComparison(model.Compare(value, f.value))
	}
}

func (f *Field) matchesKey(key model.DocumentKey) bool {
	if f.op == OpIn {
		members, _ := f.value.AsArray()
		for _, member := range members {
			ref, _ := member.AsRef()
			if key.Equal(ref) {
				return true
			}
		}
		return false
	}

	ref, _ := f.value.AsRef()
	return f.matchesComparison(key.Compare(ref))
}

func (f *Field) matchesComparison(cmp int) bool {
	switch f.op {
	case OpLessThan:
		return cmp < 0
	case OpLessThanOrEqual:
		return cmp <= 0
	case OpEqual:
		return cmp == 0
	case OpGreaterThan:
		return cmp > 0
	case OpGreaterThanOrEqual:
		return cmp >= 0
	default:
		panic(fmt.Sprintf("docgo/filter: operator %q is not a comparison", f.op))
	}
}

func containsEqual(vs []model.Value, v model.Value) bool {
	for _, candidate := range vs {
		if model.Equal(candidate, v) {
			return true
		}
	}
	return false
}

// IsInequality reports whether the filter uses a relational operator.
func (f *Field) IsInequality() bool {
	return f.op.IsInequality()
}

// Field returns the filtered field path.
func (f *Field) Field() model.FieldPath {
	return f.field
}

// Operator returns the filter's comparison operator.
func (f *Field) Operator() Operator {
	return f.op
}

// Value returns the filter's comparison value.
func (f *Field) Value() model.Value {
	return f.value
}

// CanonicalString returns a stable textual form, e.g. "population>i:1000000".
func (f *Field) CanonicalString() string {
	return f.field.String() + string(f.op) + f.value.CanonicalString()
}

func (f *Field) isFilter() {}

// Convenience constructors for the common operators.

// Eq creates an equality filter.
func Eq(field model.FieldPath, value model.Value) *Field {
	return NewField(field, OpEqual, value)
}

// Lt creates a less-than filter.
func Lt(field model.FieldPath, value model.Value) *Field {
	return NewField(field, OpLessThan, value)
}

// Lte creates a less-than-or-equal filter.
func Lte(field model.FieldPath, value model.Value) *Field {
	return NewField(field, OpLessThanOrEqual, value)
}

// Gt creates a greater-than filter.
func Gt(field model.FieldPath, value model.Value) *Field {
	return NewField(field, OpGreaterThan, value)
}

// Gte creates a greater-than-or-equal filter.
func Gte(field model.FieldPath, value model.Value) *Field {
	return NewField(field, OpGreaterThanOrEqual, value)
}

// ArrayContains creates an array-contains filter.
func ArrayContains(field model.FieldPath, value model.Value) *Field {
	return NewField(field, OpArrayContains, value)
}

// In creates an in filter over the given candidate values.
func In(field model.FieldPath, values ...model.Value) *Field {
	return NewField(field, OpIn, model.Array(values...))
}

// ArrayContainsAny creates an array-contains-any filter over the given values.
func ArrayContainsAny(field model.FieldPath, values ...model.Value) *Field {
	return NewField(field, OpArrayContainsAny, model.Array(values...))
}
