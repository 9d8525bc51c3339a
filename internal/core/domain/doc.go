package domain

// IDField is the conventional identifier key on every stored document.
const IDField = "_id"

// Doc is a stored document: named fields mapped to values, identified by
// an opaque id under IDField once persisted.
type Doc map[string]any

// ID returns the document's id, or "" when not yet persisted.
func (d Doc) ID() string {
	id, _ := d[IDField].(string)
	return id
}

// Clone returns a shallow copy of the document.
func (d Doc) Clone() Doc {
	out := make(Doc, len(d))
	for k, v := range d {
		out[k] = v
	}
	return out
}

// WithoutID returns a copy of the document with the id field stripped,
// suitable for use as an exact-match selector against define-shaped input.
func (d Doc) WithoutID() Doc {
	out := d.Clone()
	delete(out, IDField)
	return out
}

// Str reads a string field, tolerating absence.
func (d Doc) Str(key string) string {
	s, _ := d[key].(string)
	return s
}

// Int reads a numeric field. JSON decoding yields float64 for numbers, so
// both representations are accepted.
func (d Doc) Int(key string) int {
	switch v := d[key].(type) {
	case int:
		return v
	case int32:
		return int(v)
	case int64:
		return int(v)
	case float64:
		return int(v)
	}
	return 0
}
