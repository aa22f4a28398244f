package model

import (
	"cmp"
	"maps"
	"math"
	"slices"
	"strconv"
	"strings"
	"time"
	"unique"
)

// Kind identifies the concrete type stored in a Value.
type Kind uint8

const (
	// KindInvalid represents the zero Value, which holds nothing.
	KindInvalid Kind = iota
	// KindNull represents an explicit null value.
	KindNull
	// KindBool represents a boolean value.
	KindBool
	// KindInt represents an integer value.
	KindInt
	// KindFloat represents a float value.
	KindFloat
	// KindTime represents a timestamp value.
	KindTime
	// KindString represents a string value.
	KindString
	// KindRef represents a reference to another document.
	KindRef
	// KindArray represents an array value.
	KindArray
	// KindMap represents a nested map value.
	KindMap
)

// typeRank positions each kind in the fixed cross-type sort order:
//
//	Null < Bool < Number < Time < String < Ref < Array < Map
//
// Int and Float share one rank so numbers compare numerically across kinds.
func (k Kind) typeRank() int {
	switch k {
	case KindNull:
		return 0
	case KindBool:
		return 1
	case KindInt, KindFloat:
		return 2
	case KindTime:
		return 3
	case KindString:
		return 4
	case KindRef:
		return 5
	case KindArray:
		return 6
	case KindMap:
		return 7
	default:
		return -1
	}
}

// Value is a typed document field value.
//
// The representation is a fixed, closed set of kinds so that matching and
// ordering stay predictable: no reflection and no fmt-based stringification.
// Compare defines a total order over all values, which is what makes any
// document ordering built on top of it total as well.
type Value struct {
	kind Kind
	i64  int64
	f64  float64
	s    unique.Handle[string] // interned; field values repeat across documents
	b    bool
	t    time.Time
	ref  DocumentKey
	arr  []Value
	m    map[string]Value
}

// Null returns a null Value.
func Null() Value { return Value{kind: KindNull} }

// Bool returns a boolean Value.
func Bool(v bool) Value { return Value{kind: KindBool, b: v} }

// Int returns an int64 Value.
func Int(v int64) Value { return Value{kind: KindInt, i64: v} }

// Float returns a float64 Value.
func Float(v float64) Value { return Value{kind: KindFloat, f64: v} }

// Time returns a timestamp Value.
func Time(v time.Time) Value { return Value{kind: KindTime, t: v} }

// String returns a string Value.
func String(v string) Value { return Value{kind: KindString, s: unique.Make(v)} }

// Ref returns a document reference Value.
func Ref(key DocumentKey) Value { return Value{kind: KindRef, ref: key} }

// Array returns an array Value. The elements are deep-copied.
func Array(vs ...Value) Value {
	elems := make([]Value, len(vs))
	for i := range vs {
		elems[i] = vs[i].clone()
	}
	return Value{kind: KindArray, arr: elems}
}

// Map returns a nested map Value. The entries are deep-copied.
func Map(m map[string]Value) Value {
	entries := make(map[string]Value, len(m))
	for k, v := range m {
		entries[k] = v.clone()
	}
	return Value{kind: KindMap, m: entries}
}

// Kind returns the kind of value stored.
func (v Value) Kind() Kind { return v.kind }

// IsNumber reports whether the value is an Int or a Float.
func (v Value) IsNumber() bool {
	return v.kind == KindInt || v.kind == KindFloat
}

// AsBool returns the boolean value if Kind is KindBool.
func (v Value) AsBool() (bool, bool) {
	if v.kind != KindBool {
		return false, false
	}
	return v.b, true
}

// AsInt64 returns the int64 value if Kind is KindInt.
func (v Value) AsInt64() (int64, bool) {
	if v.kind != KindInt {
		return 0, false
	}
	return v.i64, true
}

// AsFloat64 returns the float64 value if Kind is KindFloat.
func (v Value) AsFloat64() (float64, bool) {
	if v.kind != KindFloat {
		return 0, false
	}
	return v.f64, true
}

// AsTime returns the timestamp value if Kind is KindTime.
func (v Value) AsTime() (time.Time, bool) {
	if v.kind != KindTime {
		return time.Time{}, false
	}
	return v.t, true
}

// AsString returns the string value if Kind is KindString.
func (v Value) AsString() (string, bool) {
	if v.kind != KindString {
		return "", false
	}
	return v.s.Value(), true
}

// AsRef returns the referenced document key if Kind is KindRef.
func (v Value) AsRef() (DocumentKey, bool) {
	if v.kind != KindRef {
		return DocumentKey{}, false
	}
	return v.ref, true
}

// AsArray returns the array elements if Kind is KindArray.
// The returned slice is shared; callers must not modify it.
func (v Value) AsArray() ([]Value, bool) {
	if v.kind != KindArray {
		return nil, false
	}
	return v.arr, true
}

// AsMap returns the map entries if Kind is KindMap.
// The returned map is shared; callers must not modify it.
func (v Value) AsMap() (map[string]Value, bool) {
	if v.kind != KindMap {
		return nil, false
	}
	return v.m, true
}

// Comparable reports whether v and other occupy the same rank of the
// cross-type order, i.e. whether a relational comparison between them is
// meaningful. Int and Float values are mutually comparable.
func (v Value) Comparable(other Value) bool {
	return v.kind.typeRank() == other.kind.typeRank()
}

// Compare returns a negative number, zero, or a positive number ordering a
// before, equal to, or after b. Values of different kinds order by the
// fixed cross-type rank, so the order is total: any two values compare.
func Compare(a, b Value) int {
	ra, rb := a.kind.typeRank(), b.kind.typeRank()
	if ra != rb {
		return cmp.Compare(ra, rb)
	}
	switch a.kind {
	case KindNull:
		return 0
	case KindBool:
		return compareBools(a.b, b.b)
	case KindInt, KindFloat:
		return compareNumbers(a, b)
	case KindTime:
		return a.t.Compare(b.t)
	case KindString:
		if a.s == b.s {
			return 0
		}
		return strings.Compare(a.s.Value(), b.s.Value())
	case KindRef:
		return a.ref.Compare(b.ref)
	case KindArray:
		return compareArrays(a.arr, b.arr)
	case KindMap:
		return compareMaps(a.m, b.m)
	default:
		return 0
	}
}

// Equal reports whether a and b hold the same kind and the same value.
func Equal(a, b Value) bool {
	return Compare(a, b) == 0
}

func compareBools(a, b bool) int {
	switch {
	case a == b:
		return 0
	case !a:
		return -1
	default:
		return 1
	}
}

// compareNumbers compares Int and Float values numerically. Two ints
// compare exactly; mixed kinds compare as float64. NaN sorts before every
// other number and equals itself, keeping numeric orderings total.
func compareNumbers(a, b Value) int {
	aNaN := a.kind == KindFloat && math.IsNaN(a.f64)
	bNaN := b.kind == KindFloat && math.IsNaN(b.f64)
	switch {
	case aNaN && bNaN:
		return 0
	case aNaN:
		return -1
	case bNaN:
		return 1
	}
	if a.kind == KindInt && b.kind == KindInt {
		return cmp.Compare(a.i64, b.i64)
	}
	return cmp.Compare(a.asFloat64(), b.asFloat64())
}

func (v Value) asFloat64() float64 {
	if v.kind == KindInt {
		return float64(v.i64)
	}
	return v.f64
}

func compareArrays(a, b []Value) int {
	for i := 0; i < len(a) && i < len(b); i++ {
		if c := Compare(a[i], b[i]); c != 0 {
			return c
		}
	}
	return cmp.Compare(len(a), len(b))
}

// compareMaps walks both maps in key order: the first differing key or
// value decides, otherwise the smaller map sorts first.
func compareMaps(a, b map[string]Value) int {
	aKeys := slices.Sorted(maps.Keys(a))
	bKeys := slices.Sorted(maps.Keys(b))
	for i := 0; i < len(aKeys) && i < len(bKeys); i++ {
		if c := strings.Compare(aKeys[i], bKeys[i]); c != 0 {
			return c
		}
		if c := Compare(a[aKeys[i]], b[bKeys[i]]); c != 0 {
			return c
		}
	}
	return cmp.Compare(len(aKeys), len(bKeys))
}

// CanonicalString returns a stable textual form of the value, used to build
// canonical query identities. It must remain stable across versions.
func (v Value) CanonicalString() string {
	switch v.kind {
	case KindNull:
		return "null"
	case KindBool:
		if v.b {
			return "b:1"
		}
		return "b:0"
	case KindInt:
		return "i:" + strconv.FormatInt(v.i64, 10)
	case KindFloat:
		return "f:" + strconv.FormatFloat(v.f64, 'g', -1, 64)
	case KindTime:
		return "t:" + v.t.UTC().Format(time.RFC3339Nano)
	case KindString:
		return "s:" + v.s.Value()
	case KindRef:
		return "r:" + v.ref.String()
	case KindArray:
		parts := make([]string, len(v.arr))
		for i := range v.arr {
			parts[i] = v.arr[i].CanonicalString()
		}
		return "a:[" + strings.Join(parts, ",") + "]"
	case KindMap:
		keys := slices.Sorted(maps.Keys(v.m))
		parts := make([]string, len(keys))
		for i, k := range keys {
			parts[i] = k + "=" + v.m[k].CanonicalString()
		}
		return "m:{" + strings.Join(parts, ",") + "}"
	default:
		return "invalid"
	}
}

// clone creates a deep copy of a Value, including nested arrays and maps.
func (v Value) clone() Value {
	switch v.kind {
	case KindArray:
		if len(v.arr) == 0 {
			return v
		}
		arr := make([]Value, len(v.arr))
		for i := range v.arr {
			arr[i] = v.arr[i].clone()
		}
		v.arr = arr
		return v
	case KindMap:
		if len(v.m) == 0 {
			return v
		}
		m := make(map[string]Value, len(v.m))
		for k, e := range v.m {
			m[k] = e.clone()
		}
		v.m = m
		return v
	default:
		// Simple values are copied by value semantics.
		return v
	}
}
