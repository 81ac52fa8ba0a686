package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
)

// Responses is the ordered store of resolved settings. Keys are written once
// and never overwritten within a run.
type Responses struct {
	keys   []string
	values map[string]Value
}

// NewResponses returns an empty store.
func NewResponses() *Responses {
	return &Responses{values: make(map[string]Value)}
}

// Set records id. Writing an id twice is a programming error and is rejected.
func (r *Responses) Set(id string, v Value) error {
	if _, exists := r.values[id]; exists {
		return Configf("setting %q already resolved", id)
	}
	r.keys = append(r.keys, id)
	r.values[id] = v
	return nil
}

// Get returns the value for id and whether it was written.
func (r *Responses) Get(id string) (Value, bool) {
	v, ok := r.values[id]
	return v, ok
}

// Has reports whether id was written.
func (r *Responses) Has(id string) bool {
	_, ok := r.values[id]
	return ok
}

// Str returns the string value of id, or "" when absent or not a string.
func (r *Responses) Str(id string) string { return r.values[id].Str() }

// Truth returns the boolean value of id, or false when absent or not a bool.
func (r *Responses) Truth(id string) bool { return r.values[id].Truth() }

// Items returns the list value of id, or nil when absent or not a list.
func (r *Responses) Items(id string) []string { return r.values[id].Items() }

// Keys returns ids in write order.
func (r *Responses) Keys() []string { return slices.Clone(r.keys) }

// Len returns the number of written ids.
func (r *Responses) Len() int { return len(r.keys) }

// MarshalJSON encodes the store as an object preserving write order.
func (r *Responses) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range r.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		vb, err := json.Marshal(r.values[k])
		if err != nil {
			return nil, fmt.Errorf("encode %s: %w", k, err)
		}
		buf.Write(kb)
		buf.WriteByte(':')
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
