package export

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

type Field struct {
	Key   string
	Value any
}

// Record is a JSON object that remembers the order of its keys. Values are
// one of nil, bool, string, json.Number, Record or []any.
type Record []Field

func (r Record) Keys() []string {
	keys := make([]string, len(r))
	for i, f := range r {
		keys[i] = f.Key
	}
	return keys
}

// Get returns the value of the last field named key.
func (r Record) Get(key string) (any, bool) {
	for i := len(r) - 1; i >= 0; i-- {
		if r[i].Key == key {
			return r[i].Value, true
		}
	}
	return nil, false
}

// Lookup follows a dotted path through nested records, numeric segments
// index into arrays. An empty path returns the record itself.
func (r Record) Lookup(path string) (any, bool) {
	if path == "" {
		return r, true
	}
	var current any = r
	for _, segment := range strings.Split(path, ".") {
		switch v := current.(type) {
		case Record:
			value, ok := v.Get(segment)
			if !ok {
				return nil, false
			}
			current = value
		case []any:
			idx, err := strconv.Atoi(segment)
			if err != nil || idx < 0 || idx >= len(v) {
				return nil, false
			}
			current = v[idx]
		default:
			return nil, false
		}
	}
	return current, true
}

// Flatten expands nested records into dotted keys: {"a":{"b":1}} becomes
// {"a.b":1}. Arrays are kept as they are. An empty nested record keeps its
// key with an empty record as value.
func (r Record) Flatten() Record {
	out := make(Record, 0, len(r))
	for _, f := range r {
		nested, ok := f.Value.(Record)
		if !ok || len(nested) == 0 {
			out = append(out, f)
			continue
		}
		for _, inner := range nested.Flatten() {
			out = append(out, Field{Key: f.Key + "." + inner.Key, Value: inner.Value})
		}
	}
	return out
}

func (r Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)

	buf.WriteByte('{')
	for i, f := range r {
		if i > 0 {
			buf.WriteByte(',')
		}
		err := enc.Encode(f.Key)
		if err != nil {
			return nil, err
		}
		trimNewline(&buf)
		buf.WriteByte(':')
		err = enc.Encode(f.Value)
		if err != nil {
			return nil, err
		}
		trimNewline(&buf)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func trimNewline(buf *bytes.Buffer) {
	if buf.Len() > 0 && buf.Bytes()[buf.Len()-1] == '\n' {
		buf.Truncate(buf.Len() - 1)
	}
}

func (r *Record) UnmarshalJSON(data []byte) error {
	value, err := Decode(data)
	if err != nil {
		return err
	}
	record, ok := value.(Record)
	if !ok {
		return fmt.Errorf("expected a JSON object, got %T", value)
	}
	*r = record
	return nil
}

// Decode parses JSON keeping object key order, objects become Records.
func Decode(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	value, err := decodeValue(dec)
	if err != nil {
		return nil, err
	}
	_, err = dec.Token()
	if err != io.EOF {
		return nil, fmt.Errorf("unexpected data after top-level value")
	}
	return value, nil
}

// DecodeRecords parses a JSON array of objects, or a single object which is
// treated as a one element array.
func DecodeRecords(data []byte) ([]Record, error) {
	value, err := Decode(data)
	if err != nil {
		return nil, err
	}
	return ToRecords(value)
}

var errNotRecords = errors.New("expected an object or an array of objects")

// ToRecords converts a decoded value into a record list.
func ToRecords(value any) ([]Record, error) {
	switch v := value.(type) {
	case Record:
		return []Record{v}, nil
	case []any:
		out := make([]Record, len(v))
		for i, item := range v {
			record, ok := item.(Record)
			if !ok {
				return nil, fmt.Errorf("item %d: %w", i, errNotRecords)
			}
			out[i] = record
		}
		return out, nil
	case nil:
		return nil, nil
	default:
		return nil, errNotRecords
	}
}

func decodeValue(dec *json.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			return decodeObject(dec)
		case '[':
			return decodeArray(dec)
		default:
			return nil, fmt.Errorf("unexpected delimiter %q", t)
		}
	default:
		return t, nil
	}
}

func decodeObject(dec *json.Decoder) (Record, error) {
	record := Record{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected object key %v", tok)
		}
		value, err := decodeValue(dec)
		if err != nil {
			return nil, err
		}
		record = append(record, Field{Key: key, Value: value})
	}
	// closing brace
	_, err := dec.Token()
	if err != nil {
		return nil, err
	}
	return record, nil
}

func decodeArray(dec *json.Decoder) ([]any, error) {
	out := []any{}
	for dec.More() {
		value, err := decodeValue(dec)
		if err != nil {
			return nil, err
		}
		out = append(out, value)
	}
	_, err := dec.Token()
	if err != nil {
		return nil, err
	}
	return out, nil
}
