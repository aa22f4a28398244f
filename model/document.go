package model

// Document is an immutable snapshot of a single document: its key plus a
// typed field map. Nested objects are represented as Map values.
type Document struct {
	key    DocumentKey
	fields map[string]Value
}

// NewDocument creates a Document.
//
// The field map is deep-copied; mutating the input afterwards does not
// affect the document.
func NewDocument(key DocumentKey, fields map[string]Value) Document {
	copied := make(map[string]Value, len(fields))
	for k, v := range fields {
		copied[k] = v.clone()
	}
	return Document{key: key, fields: copied}
}

// Key returns the document's key.
func (d Document) Key() DocumentKey {
	return d.key
}

// Path returns the document's full resource path.
func (d Document) Path() ResourcePath {
	return d.key.Path()
}

// Field resolves the value at fp, walking nested Map values segment by
// segment. The second result is false if any segment is missing or a
// non-map value is reached before the final segment.
func (d Document) Field(fp FieldPath) (Value, bool) {
	if fp.IsEmpty() {
		return Value{}, false
	}
	current, ok := d.fields[fp.Segment(0)]
	if !ok {
		return Value{}, false
	}
	for i := 1; i < fp.Len(); i++ {
		m, isMap := current.AsMap()
		if !isMap {
			return Value{}, false
		}
		current, ok = m[fp.Segment(i)]
		if !ok {
			return Value{}, false
		}
	}
	return current, true
}

// HasField reports whether a value exists at fp.
func (d Document) HasField(fp FieldPath) bool {
	_, ok := d.Field(fp)
	return ok
}

// Len returns the number of top-level fields.
func (d Document) Len() int {
	return len(d.fields)
}

// Fields returns a deep copy of the document's top-level field map.
func (d Document) Fields() map[string]Value {
	copied := make(map[string]Value, len(d.fields))
	for k, v := range d.fields {
		copied[k] = v.clone()
	}
	return copied
}

// Equal reports whether both documents have the same key and identical
// field values.
func (d Document) Equal(other Document) bool {
	if !d.key.Equal(other.key) || len(d.fields) != len(other.fields) {
		return false
	}
	for k, v := range d.fields {
		ov, ok := other.fields[k]
		if !ok || !Equal(v, ov) {
			return false
		}
	}
	return true
}
