package models

// NormalizedRecord is an ordered field map produced by the normalizer.
// Keys are unique; overwriting a key keeps its original position.
type NormalizedRecord struct {
	Index  int
	keys   []string
	values map[string]Value
}

// NewNormalizedRecord creates an empty record for the given row index.
func NewNormalizedRecord(index int) *NormalizedRecord {
	return &NormalizedRecord{
		Index:  index,
		values: make(map[string]Value),
	}
}

// Set stores a value, appending the key if it is new.
func (r *NormalizedRecord) Set(key string, v Value) {
	if _, ok := r.values[key]; !ok {
		r.keys = append(r.keys, key)
	}

	r.values[key] = v
}

// Get returns the value stored under key.
func (r *NormalizedRecord) Get(key string) (Value, bool) {
	v, ok := r.values[key]
	return v, ok
}

// Has reports whether key is present.
func (r *NormalizedRecord) Has(key string) bool {
	_, ok := r.values[key]
	return ok
}

// Rename moves the value under from to the key to. The renamed field keeps the
// position of from unless to already exists, in which case to is overwritten in
// place and from is removed.
func (r *NormalizedRecord) Rename(from, to string) {
	v, ok := r.values[from]
	if !ok || from == to {
		return
	}

	if _, exists := r.values[to]; exists {
		r.values[to] = v
		r.Delete(from)

		return
	}

	for i, k := range r.keys {
		if k == from {
			r.keys[i] = to
			break
		}
	}

	delete(r.values, from)
	r.values[to] = v
}

// Delete removes key from the record.
func (r *NormalizedRecord) Delete(key string) {
	if _, ok := r.values[key]; !ok {
		return
	}

	delete(r.values, key)

	for i, k := range r.keys {
		if k == key {
			r.keys = append(r.keys[:i], r.keys[i+1:]...)
			break
		}
	}
}

// Keys returns the keys in iteration order.
func (r *NormalizedRecord) Keys() []string {
	out := make([]string, len(r.keys))
	copy(out, r.keys)

	return out
}

// Fields returns the fields in iteration order.
func (r *NormalizedRecord) Fields() []Field {
	fields := make([]Field, 0, len(r.keys))
	for _, k := range r.keys {
		fields = append(fields, Field{Key: k, Value: r.values[k]})
	}

	return fields
}

// Title returns the record's title, or "" when it has none.
func (r *NormalizedRecord) Title() string {
	for _, key := range []string{"title", "Title"} {
		if v, ok := r.values[key]; ok && v.Present {
			return v.Text
		}
	}

	return ""
}
