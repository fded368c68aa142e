package export

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

var (
	ErrEmptyDataset        = errors.New("no records to export")
	ErrUnserializableValue = errors.New("value cannot be serialized")
)

// JSON pretty prints `v` with 2 space indentation. HTML characters are not
// escaped and there is no trailing newline. Records keep their key order.
func JSON(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	err := enc.Encode(v)
	if err != nil {
		return nil, classifyMarshalError(err)
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// compactJSON renders a nested value as a single line JSON fragment.
func compactJSON(v any) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	err := enc.Encode(v)
	if err != nil {
		return "", classifyMarshalError(err)
	}
	return string(bytes.TrimSuffix(buf.Bytes(), []byte("\n"))), nil
}

func classifyMarshalError(err error) error {
	var unsupportedType *json.UnsupportedTypeError
	var unsupportedValue *json.UnsupportedValueError
	var marshaler *json.MarshalerError
	if errors.As(err, &unsupportedType) ||
		errors.As(err, &unsupportedValue) ||
		errors.As(err, &marshaler) {
		return fmt.Errorf("%w: %v", ErrUnserializableValue, err)
	}
	return err
}
