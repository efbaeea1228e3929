// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"go.yaml.in/yaml/v3"
)

// DateTimeKey is the metadata key under which a combined date-time value is
// stored when a header carries year/month/day/hour/minute sub-fields.
const DateTimeKey = "date_time"

// Metadata is an insertion-ordered mapping from field name to decoded value.
// Values are string, int, float64, time.Time, or nil (the explicit
// unparseable marker for a failed date-time synthesis).
type Metadata struct {
	keys   []string
	values map[string]any
}

// NewMetadata returns an empty Metadata. A fresh map is allocated per call;
// Metadata is never shared between records.
func NewMetadata() *Metadata {
	return &Metadata{values: make(map[string]any)}
}

// Set stores v under key, preserving first-insertion order.
func (m *Metadata) Set(key string, v any) {
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = v
}

// Get returns the value stored under key and whether the key is present.
// A present key may still hold a nil value (unparseable date-time marker).
func (m *Metadata) Get(key string) (any, bool) {
	v, ok := m.values[key]
	return v, ok
}

// Delete removes key and its value. Removing an absent key is a no-op.
func (m *Metadata) Delete(key string) {
	if _, ok := m.values[key]; !ok {
		return
	}
	delete(m.values, key)
	for i, k := range m.keys {
		if k == key {
			m.keys = append(m.keys[:i], m.keys[i+1:]...)
			break
		}
	}
}

// Keys returns the field names in insertion order.
func (m *Metadata) Keys() []string {
	out := make([]string, len(m.keys))
	copy(out, m.keys)
	return out
}

// Len returns the number of fields.
func (m *Metadata) Len() int { return len(m.keys) }

// String returns the string value under key, or "" when absent or non-string.
func (m *Metadata) String(key string) string {
	if v, ok := m.values[key].(string); ok {
		return v
	}
	return ""
}

// Int returns the int value under key, or 0 when absent or non-int.
func (m *Metadata) Int(key string) int {
	if v, ok := m.values[key].(int); ok {
		return v
	}
	return 0
}

// Float returns the float64 value under key, or 0 when absent or non-float.
func (m *Metadata) Float(key string) float64 {
	if v, ok := m.values[key].(float64); ok {
		return v
	}
	return 0
}

// Time returns the time.Time value under key and whether one is present.
func (m *Metadata) Time(key string) (time.Time, bool) {
	v, ok := m.values[key].(time.Time)
	return v, ok
}

// MarshalJSON encodes the metadata as a JSON object in insertion order.
func (m *Metadata) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range m.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		vb, err := json.Marshal(encodableValue(m.values[k]))
		if err != nil {
			return nil, fmt.Errorf("marshaling field %s: %w", k, err)
		}
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// MarshalYAML encodes the metadata as a YAML mapping in insertion order.
func (m *Metadata) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, k := range m.keys {
		var kn, vn yaml.Node
		if err := kn.Encode(k); err != nil {
			return nil, err
		}
		if err := vn.Encode(encodableValue(m.values[k])); err != nil {
			return nil, fmt.Errorf("encoding field %s: %w", k, err)
		}
		node.Content = append(node.Content, &kn, &vn)
	}
	return node, nil
}

func encodableValue(v any) any {
	if t, ok := v.(time.Time); ok {
		return t.Format(time.RFC3339)
	}
	return v
}
