package export

import (
	"fmt"
	"strings"
)

// Table is a rendered grid of cells, written out as CSV or drawn in the
// terminal.
type Table struct {
	Columns []string
	Rows    [][]string
}

func quote(field string) string {
	return `"` + strings.ReplaceAll(field, `"`, `""`) + `"`
}

func csvLine(fields []string) string {
	quoted := make([]string, len(fields))
	for i, f := range fields {
		quoted[i] = quote(f)
	}
	return strings.Join(quoted, ",")
}

func (t Table) lines() []string {
	if len(t.Columns) == 0 {
		return nil
	}
	lines := make([]string, 0, len(t.Rows)+1)
	lines = append(lines, csvLine(t.Columns))
	for _, row := range t.Rows {
		lines = append(lines, csvLine(row))
	}
	return lines
}

// CSV writes every field quoted with inner quotes doubled, rows are
// separated by "\n" with no trailing newline.
func (t Table) CSV() []byte {
	return []byte(strings.Join(t.lines(), "\n"))
}

// TableFromRecords lays out records with the keys of the first record as
// columns. Keys only present in later records are dropped, keys missing
// from later records are written as opts.Empty. A first record without keys
// gives no columns and fails with ErrEmptyDataset.
func TableFromRecords(records []Record, opts Options) (Table, error) {
	if len(records) == 0 {
		return Table{}, ErrEmptyDataset
	}

	first := records[0]
	if opts.Flatten {
		first = first.Flatten()
	}
	var columns []string
	seen := map[string]bool{}
	for _, key := range first.Keys() {
		if seen[key] {
			continue
		}
		seen[key] = true
		columns = append(columns, key)
	}
	if len(columns) == 0 {
		return Table{}, fmt.Errorf("first record has no fields: %w", ErrEmptyDataset)
	}

	rows := make([][]string, len(records))
	for i, record := range records {
		if opts.Flatten {
			record = record.Flatten()
		}
		row := make([]string, len(columns))
		for j, column := range columns {
			value, ok := record.Get(column)
			if !ok {
				row[j] = opts.Empty
				continue
			}
			cell, err := FormatCell(value, opts)
			if err != nil {
				return Table{}, err
			}
			row[j] = cell
		}
		rows[i] = row
	}

	return Table{Columns: columns, Rows: rows}, nil
}

// CSV exports records as a single table, see TableFromRecords.
func CSV(records []Record, opts Options) ([]byte, error) {
	table, err := TableFromRecords(records, opts)
	if err != nil {
		return nil, err
	}
	return table.CSV(), nil
}

// CSVFromJSON decodes a JSON array of objects and exports it with CSV.
func CSVFromJSON(data []byte, opts Options) ([]byte, error) {
	records, err := DecodeRecords(data)
	if err != nil {
		return nil, err
	}
	return CSV(records, opts)
}
