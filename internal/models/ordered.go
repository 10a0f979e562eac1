package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Entry is a key of a JSON object with its raw value.
type Entry struct {
	Key   string
	Value json.RawMessage
}

// Text renders the value for display. Strings are unquoted, arrays are joined
// with ", " and everything else is shown as its JSON text.
func (e Entry) Text() string {
	return rawText(e.Value)
}

// Strings returns the value as a list of strings. A scalar gives a single element.
func (e Entry) Strings() []string {
	var items []json.RawMessage
	if err := json.Unmarshal(e.Value, &items); err != nil {
		return []string{rawText(e.Value)}
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, rawText(item))
	}
	return out
}

// OrderedMap is a JSON object which keeps the order of its keys.
type OrderedMap []Entry

func (m OrderedMap) Get(key string) (Entry, bool) {
	for _, e := range m {
		if e.Key == key {
			return e, true
		}
	}
	return Entry{}, false
}

func (m OrderedMap) MarshalJSON() ([]byte, error) {
	om := orderedmap.New[string, json.RawMessage]()
	for _, e := range m {
		value := e.Value
		if len(value) == 0 {
			value = json.RawMessage("null")
		}
		om.Set(e.Key, value)
	}
	return om.MarshalJSON()
}

func (m *OrderedMap) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*m = nil
		return nil
	}

	om := orderedmap.New[string, json.RawMessage]()
	if err := om.UnmarshalJSON(data); err != nil {
		return fmt.Errorf("expected JSON object: %w", err)
	}

	entries := make(OrderedMap, 0, om.Len())
	for pair := om.Oldest(); pair != nil; pair = pair.Next() {
		entries = append(entries, Entry{Key: pair.Key, Value: pair.Value})
	}

	*m = entries
	return nil
}

// Detail is a single key/value pair of a test result.
type Detail struct {
	Key   string
	Value string
}

// Details are the kind specific facts of a test result, in the order the
// remote service reported them.
type Details []Detail

func (d Details) MarshalJSON() ([]byte, error) {
	m := make(OrderedMap, 0, len(d))
	for _, detail := range d {
		v, err := json.Marshal(detail.Value)
		if err != nil {
			return nil, err
		}
		m = append(m, Entry{Key: detail.Key, Value: v})
	}
	return m.MarshalJSON()
}

func (d *Details) UnmarshalJSON(data []byte) error {
	var m OrderedMap
	if err := m.UnmarshalJSON(data); err != nil {
		return err
	}
	if m == nil {
		*d = nil
		return nil
	}
	details := make(Details, 0, len(m))
	for _, e := range m {
		details = append(details, Detail{Key: e.Key, Value: e.Text()})
	}
	*d = details
	return nil
}

func rawText(raw json.RawMessage) string {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return ""
	}
	switch trimmed[0] {
	case '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err == nil {
			return s
		}
	case '[':
		var items []json.RawMessage
		if err := json.Unmarshal(trimmed, &items); err == nil {
			parts := make([]string, 0, len(items))
			for _, item := range items {
				parts = append(parts, rawText(item))
			}
			return strings.Join(parts, ", ")
		}
	}
	return string(trimmed)
}
