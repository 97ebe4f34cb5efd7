package spec

import (
	"bytes"
	"encoding/json"
)

// Map is a string-keyed map that remembers insertion order.
// The zero value is an empty map ready to use.
type Map[V any] struct {
	keys  []string
	items map[string]V
}

// NewMap creates an empty map
func NewMap[V any]() Map[V] {
	return Map[V]{items: make(map[string]V)}
}

// Set adds or replaces an entry. A replaced entry keeps its position.
func (m *Map[V]) Set(key string, value V) {
	if m.items == nil {
		m.items = make(map[string]V)
	}
	if _, ok := m.items[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.items[key] = value
}

// Get returns the value for key
func (m Map[V]) Get(key string) (V, bool) {
	v, ok := m.items[key]
	return v, ok
}

// Has reports whether key is present
func (m Map[V]) Has(key string) bool {
	_, ok := m.items[key]
	return ok
}

// Delete removes key, if present
func (m *Map[V]) Delete(key string) {
	if _, ok := m.items[key]; !ok {
		return
	}
	delete(m.items, key)
	for i, k := range m.keys {
		if k == key {
			m.keys = append(m.keys[:i:i], m.keys[i+1:]...)
			break
		}
	}
}

// Keys returns the keys in insertion order
func (m Map[V]) Keys() []string {
	keys := make([]string, len(m.keys))
	copy(keys, m.keys)
	return keys
}

// Len returns the number of entries
func (m Map[V]) Len() int {
	return len(m.keys)
}

// Each calls fn for every entry in insertion order
func (m Map[V]) Each(fn func(key string, value V)) {
	for _, k := range m.keys {
		fn(k, m.items[k])
	}
}

// Filter returns a new map holding the entries for which keep returns true.
// keep is called for every entry, even after it has rejected one.
func (m Map[V]) Filter(keep func(key string, value V) bool) Map[V] {
	result := NewMap[V]()
	for _, k := range m.keys {
		v := m.items[k]
		if keep(k, v) {
			result.Set(k, v)
		}
	}
	return result
}

// Merge sets every entry of other into m, in other's order
func (m *Map[V]) Merge(other Map[V]) {
	other.Each(func(k string, v V) {
		m.Set(k, v)
	})
}

// Map copies the map, applying clone to each value
func (m Map[V]) Map(clone func(V) V) Map[V] {
	result := NewMap[V]()
	for _, k := range m.keys {
		result.Set(k, clone(m.items[k]))
	}
	return result
}

// MarshalJSON writes the entries as a JSON object in insertion order
func (m Map[V]) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range m.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(m.items[k])
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads a JSON object, keeping the key order of the input
func (m *Map[V]) UnmarshalJSON(data []byte) error {
	keys, raw, err := DecodeObject(data)
	if err != nil {
		return err
	}
	*m = NewMap[V]()
	for _, k := range keys {
		var v V
		if err := json.Unmarshal(raw[k], &v); err != nil {
			return err
		}
		m.Set(k, v)
	}
	return nil
}
