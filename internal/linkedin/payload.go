package linkedin

import (
	"encoding/json"
	"errors"
	"fmt"
	"linkedin-dashboard/lib/export"
	"strings"
	"unicode"
	"unicode/utf8"
)

var ErrNoData = errors.New("no data found")

func decodeRoot(payload json.RawMessage) (export.Record, error) {
	value, err := export.Decode(payload)
	if err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	root, ok := value.(export.Record)
	if !ok {
		return nil, fmt.Errorf("decode response: expected an object, got %T", value)
	}
	return root, nil
}

// pick returns the first path that has a non-null value.
func pick(record export.Record, paths ...string) (any, bool) {
	for _, path := range paths {
		value, ok := record.Lookup(path)
		if ok && value != nil {
			return value, true
		}
	}
	return nil, false
}

func asRecord(value any) export.Record {
	record, _ := value.(export.Record)
	return record
}

func asRecords(value any) []export.Record {
	items, _ := value.([]any)
	out := make([]export.Record, 0, len(items))
	for _, item := range items {
		record, ok := item.(export.Record)
		if ok {
			out = append(out, record)
		}
	}
	return out
}

func text(value any) string {
	out, err := export.FormatCell(value, export.Options{})
	if err != nil {
		return ""
	}
	return out
}

// truthy treats missing, null, false, 0 and "" as absent.
func truthy(value any) bool {
	switch v := value.(type) {
	case nil:
		return false
	case bool:
		return v
	case string:
		return v != ""
	case json.Number:
		f, err := v.Float64()
		return err != nil || f != 0
	default:
		return true
	}
}

func humanizeKey(key string) string {
	return strings.ReplaceAll(key, "_", " ")
}

func capitalize(key string) string {
	if key == "" {
		return key
	}
	r, size := utf8.DecodeRuneInString(key)
	return string(unicode.ToUpper(r)) + key[size:]
}
