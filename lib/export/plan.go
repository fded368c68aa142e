package export

import (
	"fmt"
	"strings"
)

// Renderer turns the value found at a column's path (nil when missing) into
// cell text. An empty result is written as the empty marker.
type Renderer func(value any) string

type Column struct {
	Header string
	// dotted path into the record, "" selects the whole record
	Path   string
	Render Renderer
	// written instead of the empty marker when there is no value
	Default string
}

// Plan is an ordered list of columns to extract from records.
type Plan []Column

func (p Plan) Headers() []string {
	headers := make([]string, len(p))
	for i, c := range p {
		headers[i] = c.Header
	}
	return headers
}

func (p Plan) cell(record Record, column Column, opts Options) (string, error) {
	empty := opts.Empty
	if column.Default != "" {
		empty = column.Default
	}

	value, ok := record.Lookup(column.Path)
	if !ok {
		value = nil
	}
	var out string
	if column.Render != nil {
		out = column.Render(value)
	} else if value != nil {
		var err error
		out, err = FormatCell(value, opts)
		if err != nil {
			return "", fmt.Errorf("column %s: %w", column.Header, err)
		}
	}
	if out == "" {
		return empty, nil
	}
	return out, nil
}

// Table writes one row per record. Unlike TableFromRecords, no records
// yields a table with only the header.
func (p Plan) Table(records []Record, opts Options) (Table, error) {
	rows := make([][]string, len(records))
	for i, record := range records {
		row := make([]string, len(p))
		for j, column := range p {
			cell, err := p.cell(record, column, opts)
			if err != nil {
				return Table{}, err
			}
			row[j] = cell
		}
		rows[i] = row
	}
	return Table{Columns: p.Headers(), Rows: rows}, nil
}

// KeyValue writes one "Key","Value" row per column of a single record.
func (p Plan) KeyValue(record Record, opts Options) (Table, error) {
	rows := make([][]string, len(p))
	for i, column := range p {
		cell, err := p.cell(record, column, opts)
		if err != nil {
			return Table{}, err
		}
		rows[i] = []string{column.Header, cell}
	}
	return Table{Columns: []string{"Key", "Value"}, Rows: rows}, nil
}

// Join renders an array of scalars joined by sep.
func Join(sep string) Renderer {
	return func(value any) string {
		items, ok := value.([]any)
		if !ok {
			text, _ := FormatCell(value, Options{})
			return text
		}
		parts := make([]string, 0, len(items))
		for _, item := range items {
			text, err := FormatCell(item, Options{})
			if err != nil || text == "" {
				continue
			}
			parts = append(parts, text)
		}
		return strings.Join(parts, sep)
	}
}

// Summaries renders an array of objects as "name (count)" entries joined
// by "; ".
func Summaries(nameKey, countKey string) Renderer {
	return func(value any) string {
		items, ok := value.([]any)
		if !ok {
			return ""
		}
		parts := make([]string, 0, len(items))
		for _, item := range items {
			record, ok := item.(Record)
			if !ok {
				continue
			}
			name, _ := record.Get(nameKey)
			count, _ := record.Get(countKey)
			nameText, _ := FormatCell(name, Options{})
			countText, _ := FormatCell(count, Options{})
			parts = append(parts, fmt.Sprintf("%s (%s)", nameText, countText))
		}
		return strings.Join(parts, "; ")
	}
}
