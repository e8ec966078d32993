package lptable

import (
	"encoding/json"

	"github.com/pkg/errors"
)

var (
	jsonMarshal   func(v any) ([]byte, error)
	jsonUnmarshal func(data []byte, v any) error
)

// SetDefaultJSONMarshal sets the default JSON serialization and deserialization functions.
// If not set, the standard library is used by default.
func SetDefaultJSONMarshal(marshal func(v any) ([]byte, error), unmarshal func(data []byte, v any) error) {
	jsonMarshal, jsonUnmarshal = marshal, unmarshal
}

// MarshalJSON encodes the live entries as a JSON object.
func (t *Table[K, V]) MarshalJSON() ([]byte, error) {
	if jsonMarshal != nil {
		return jsonMarshal(t.ToMap())
	}
	return json.Marshal(t.ToMap())
}

// UnmarshalJSON inserts every entry of a JSON object into the table,
// overwriting values of keys already present. Entries are inserted in
// unspecified order; on a sentinel key the entries inserted so far are
// kept. A zero Table is initialized with default options first.
func (t *Table[K, V]) UnmarshalJSON(data []byte) error {
	if t.keyHash == nil {
		*t = *New[K, V]()
	}
	var a map[K]V
	if jsonUnmarshal != nil {
		if err := jsonUnmarshal(data, &a); err != nil {
			return err
		}
	} else if err := json.Unmarshal(data, &a); err != nil {
		return errors.Wrap(err, "decode table")
	}
	return t.FromMap(a)
}

// FromMap inserts every entry of source.
func (t *Table[K, V]) FromMap(source map[K]V) error {
	for k, v := range source {
		if _, err := t.Insert(k, v); err != nil {
			return err
		}
	}
	return nil
}
