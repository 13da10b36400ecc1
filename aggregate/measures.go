package aggregate

import (
	"bytes"
	"iter"
	"maps"
	"slices"
	"strconv"

	gojson "github.com/goccy/go-json"
)

// Measures is a measure-name to value set that remembers the order in which
// names were first set.
//
// A nil *Measures behaves as an empty set for all read methods.
type Measures struct {
	keys   []string
	values map[string]float64
}

// New creates an empty measure set with room for capacity names.
func New(capacity int) *Measures {
	return &Measures{
		keys:   make([]string, 0, capacity),
		values: make(map[string]float64, capacity),
	}
}

// Zero creates a measure set holding 0 for every name, in the given order.
// Duplicate names are collapsed.
func Zero(names []string) *Measures {
	m := New(len(names))
	for _, name := range names {
		m.Set(name, 0)
	}
	return m
}

// FromMap creates a measure set from a plain map. Keys are ordered by name.
func FromMap(values map[string]float64) *Measures {
	m := New(len(values))
	for _, name := range slices.Sorted(maps.Keys(values)) {
		m.Set(name, values[name])
	}
	return m
}

// Set stores v under name. A new name is appended to the key order.
func (m *Measures) Set(name string, v float64) {
	if _, ok := m.values[name]; !ok {
		m.keys = append(m.keys, name)
	}
	m.values[name] = v
}

// Get returns the value for name, or 0 when absent.
func (m *Measures) Get(name string) float64 {
	v, _ := m.Lookup(name)
	return v
}

// Lookup returns the value for name and whether it is present.
func (m *Measures) Lookup(name string) (float64, bool) {
	if m == nil {
		return 0, false
	}
	v, ok := m.values[name]
	return v, ok
}

// Len returns the number of measure names.
func (m *Measures) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// Keys returns the measure names in first-seen order.
func (m *Measures) Keys() []string {
	if m == nil {
		return nil
	}
	return slices.Clone(m.keys)
}

// Map returns a copy of the values as a plain map.
func (m *Measures) Map() map[string]float64 {
	out := make(map[string]float64, m.Len())
	if m == nil {
		return out
	}
	maps.Copy(out, m.values)
	return out
}

// All iterates over the measures in first-seen order.
func (m *Measures) All() iter.Seq2[string, float64] {
	return func(yield func(string, float64) bool) {
		if m == nil {
			return
		}
		for _, k := range m.keys {
			if !yield(k, m.values[k]) {
				return
			}
		}
	}
}

// Range calls fn for each measure in first-seen order until fn returns false.
func (m *Measures) Range(fn func(name string, v float64) bool) {
	for k, v := range m.All() {
		if !fn(k, v) {
			return
		}
	}
}

// Clone returns an independent copy.
func (m *Measures) Clone() *Measures {
	if m == nil {
		return New(0)
	}
	return &Measures{
		keys:   slices.Clone(m.keys),
		values: maps.Clone(m.values),
	}
}

// MarshalJSON encodes the set as a JSON object, keeping the key order.
func (m *Measures) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range m.Keys() {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := gojson.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(strconv.AppendFloat(nil, m.values[k], 'f', -1, 64))
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
