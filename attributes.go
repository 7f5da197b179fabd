package activerecord

import "sort"

// Attributes is the dynamic column-to-value mapping backing an entity.
// Columns are not declared at the type level; they are whatever keys
// were set on the instance or scanned from storage.
type Attributes map[string]any

// NewAttributes returns an empty, non-nil attribute mapping.
func NewAttributes() Attributes {
	return make(Attributes)
}

// Get returns the raw stored value for the given column.
func (a Attributes) Get(key string) any {
	return a[key]
}

// Set stores the given value under the given column.
func (a Attributes) Set(key string, v any) {
	a[key] = v
}

// Has reports whether the given column holds a value.
func (a Attributes) Has(key string) bool {
	_, ok := a[key]
	return ok
}

// Remove drops the given column from the mapping.
func (a Attributes) Remove(key string) {
	delete(a, key)
}

// Keys returns the column names in sorted order.
func (a Attributes) Keys() []string {
	keys := make([]string, 0, len(a))
	for k := range a {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Clone returns a shallow copy of the mapping.
func (a Attributes) Clone() Attributes {
	out := make(Attributes, len(a))
	for k, v := range a {
		out[k] = v
	}
	return out
}

// Fill copies all entries of the given map into the mapping.
func (a Attributes) Fill(m map[string]any) {
	for k, v := range m {
		a[k] = v
	}
}
