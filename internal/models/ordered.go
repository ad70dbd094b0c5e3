// Package models defines the core data structures shared by the parser, the
// analysis passes and the report sinks.
package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// OrderedMap keeps keys in first-insertion order. Report ordering (children in
// input order, categories in declaration order) depends on it.
type OrderedMap[K comparable, V any] struct {
	keys   []K
	values map[K]V
}

func NewOrderedMap[K comparable, V any]() *OrderedMap[K, V] {
	return &OrderedMap[K, V]{values: make(map[K]V)}
}

func (m *OrderedMap[K, V]) Set(key K, value V) {
	if m.values == nil {
		m.values = make(map[K]V)
	}
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
}

func (m *OrderedMap[K, V]) Get(key K) (V, bool) {
	v, ok := m.values[key]
	return v, ok
}

func (m *OrderedMap[K, V]) Has(key K) bool {
	_, ok := m.values[key]
	return ok
}

func (m *OrderedMap[K, V]) Len() int {
	return len(m.keys)
}

// Keys returns a copy of the keys in insertion order.
func (m *OrderedMap[K, V]) Keys() []K {
	out := make([]K, len(m.keys))
	copy(out, m.keys)
	return out
}

// Each calls fn for every pair in insertion order.
func (m *OrderedMap[K, V]) Each(fn func(K, V)) {
	for _, k := range m.keys {
		fn(k, m.values[k])
	}
}

// MarshalJSON writes an object whose member order follows insertion order.
func (m *OrderedMap[K, V]) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range m.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(fmt.Sprint(k))
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(m.values[k])
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads an object, keeping member order.
func (m *OrderedMap[K, V]) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("ordered map: expected object, got %v", tok)
	}

	m.keys = nil
	m.values = make(map[K]V)

	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		name, ok := tok.(string)
		if !ok {
			return fmt.Errorf("ordered map: expected key, got %v", tok)
		}

		rawKey, err := json.Marshal(name)
		if err != nil {
			return err
		}
		var key K
		if err := json.Unmarshal(rawKey, &key); err != nil {
			return fmt.Errorf("ordered map key %q: %w", name, err)
		}

		var value V
		if err := dec.Decode(&value); err != nil {
			return fmt.Errorf("ordered map value %q: %w", name, err)
		}
		m.Set(key, value)
	}

	_, err = dec.Token()
	return err
}

// Update replaces the value under key with fn applied to the current value
// (the zero value when absent).
func (m *OrderedMap[K, V]) Update(key K, fn func(V) V) {
	v, _ := m.Get(key)
	m.Set(key, fn(v))
}

// Counter is an ordered histogram.
type Counter = OrderedMap[string, int]

func NewCounter() *Counter {
	return NewOrderedMap[string, int]()
}

func increment(n int) int { return n + 1 }

// Inc bumps key in an ordered histogram.
func Inc(c *Counter, key string) {
	c.Update(key, increment)
}
