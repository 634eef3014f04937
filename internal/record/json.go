package record

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

// MarshalJSON emits the record as a JSON object with fields in record order.
func (r *Record) MarshalJSON() ([]byte, error) {
	return r.fields.MarshalJSON()
}

// UnmarshalJSON decodes a JSON object into the record, preserving the
// document's key order. Nested objects decode to *Record, arrays to []any,
// and numbers to float64.
func (r *Record) UnmarshalJSON(data []byte) error {
	value, err := DecodeValue(data)
	if err != nil {
		return err
	}

	rec, ok := value.(*Record)
	if !ok {
		return fmt.Errorf("%w: got %T", ErrNotAnObject, value)
	}

	r.fields = rec.fields

	return nil
}

// ErrNotAnObject is returned when a JSON document expected to hold an object
// holds some other value.
var ErrNotAnObject = fmt.Errorf("JSON value is not an object")

// DecodeValue decodes a single JSON value with object key order preserved.
func DecodeValue(data []byte) (any, error) {
	return Decode(bytes.NewReader(data))
}

// Decode reads one JSON value from r with object key order preserved.
func Decode(r io.Reader) (any, error) {
	dec := json.NewDecoder(r)

	value, err := decodeValue(dec)
	if err != nil {
		return nil, fmt.Errorf("failed to decode JSON value: %w", err)
	}

	return value, nil
}

func decodeValue(dec *json.Decoder) (any, error) {
	token, err := dec.Token()
	if err != nil {
		return nil, err
	}

	delim, ok := token.(json.Delim)
	if !ok {
		// Strings, numbers, booleans, and null arrive as final values.
		return token, nil
	}

	switch delim {
	case '{':
		rec := New()

		for dec.More() {
			keyToken, err := dec.Token()
			if err != nil {
				return nil, err
			}

			key, ok := keyToken.(string)
			if !ok {
				return nil, fmt.Errorf("object key is not a string: %v", keyToken)
			}

			value, err := decodeValue(dec)
			if err != nil {
				return nil, err
			}

			rec.Set(key, value)
		}

		// Consume the closing brace.
		if _, err := dec.Token(); err != nil {
			return nil, err
		}

		return rec, nil
	case '[':
		list := []any{}

		for dec.More() {
			value, err := decodeValue(dec)
			if err != nil {
				return nil, err
			}

			list = append(list, value)
		}

		// Consume the closing bracket.
		if _, err := dec.Token(); err != nil {
			return nil, err
		}

		return list, nil
	default:
		return nil, fmt.Errorf("unexpected delimiter %q", delim)
	}
}
