package domain

import (
	"bytes"
	"encoding/json"
)

// Structured is an insertion-ordered string-to-Value mapping. Iteration and
// serialization follow the order in which keys were first set; setting an
// existing key replaces its value without moving it.
type Structured struct {
	keys    []string
	entries map[string]Value
}

// NewStructured returns an empty ordered mapping.
func NewStructured() *Structured {
	return &Structured{entries: make(map[string]Value)}
}

// Set stores v under key, appending the key on first use. It returns the
// receiver for chaining.
func (s *Structured) Set(key string, v Value) *Structured {
	if s.entries == nil {
		s.entries = make(map[string]Value)
	}
	if _, ok := s.entries[key]; !ok {
		s.keys = append(s.keys, key)
	}
	s.entries[key] = v
	return s
}

// Get returns the value stored under key and whether it exists.
func (s *Structured) Get(key string) (Value, bool) {
	if s == nil || s.entries == nil {
		return Value{}, false
	}
	v, ok := s.entries[key]
	return v, ok
}

// Delete removes key and its value. Missing keys are ignored.
func (s *Structured) Delete(key string) {
	if s == nil || s.entries == nil {
		return
	}
	if _, ok := s.entries[key]; !ok {
		return
	}
	delete(s.entries, key)
	for i, k := range s.keys {
		if k == key {
			s.keys = append(s.keys[:i], s.keys[i+1:]...)
			break
		}
	}
}

// Keys returns the keys in insertion order. The slice is a copy.
func (s *Structured) Keys() []string {
	if s == nil {
		return nil
	}
	out := make([]string, len(s.keys))
	copy(out, s.keys)
	return out
}

// Len returns the number of entries.
func (s *Structured) Len() int {
	if s == nil {
		return 0
	}
	return len(s.keys)
}

// Range calls fn for each entry in insertion order until fn returns false.
func (s *Structured) Range(fn func(key string, v Value) bool) {
	if s == nil {
		return
	}
	for _, k := range s.keys {
		if !fn(k, s.entries[k]) {
			return
		}
	}
}

// Clone returns a deep copy: nested structured values are cloned, opaque
// payloads follow Value.Clone semantics.
func (s *Structured) Clone() *Structured {
	if s == nil {
		return nil
	}
	out := &Structured{
		keys:    make([]string, len(s.keys)),
		entries: make(map[string]Value, len(s.entries)),
	}
	copy(out.keys, s.keys)
	for k, v := range s.entries {
		out.entries[k] = v.Clone()
	}
	return out
}

// Equal reports whether both mappings hold the same keys in the same order
// with deeply equal values.
func (s *Structured) Equal(o *Structured) bool {
	if s.Len() != o.Len() {
		return false
	}
	if s == nil || o == nil {
		return s.Len() == o.Len()
	}
	for i, k := range s.keys {
		if o.keys[i] != k {
			return false
		}
		if !s.entries[k].Equal(o.entries[k]) {
			return false
		}
	}
	return true
}

// MarshalJSON renders the mapping as a JSON object preserving insertion
// order.
func (s *Structured) MarshalJSON() ([]byte, error) {
	if s == nil {
		return []byte("null"), nil
	}
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range s.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		vb, err := json.Marshal(s.entries[k])
		if err != nil {
			return nil, err
		}
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
