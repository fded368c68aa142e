package utils

import (
	"fmt"
	"io"
	"linkedin-dashboard/internal/linkedin"
	"linkedin-dashboard/lib/export"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// NewTable returns a table that prints itself to `w` when rendered.
func NewTable(w io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetOutputMirror(w)
	return t
}

const maxCellWidth = 60

// RenderTable draws a titled table.
func RenderTable(w io.Writer, title string, data export.Table) {
	t := NewTable(w)
	t.SetTitle(title)

	header := make(table.Row, len(data.Columns))
	configs := make([]table.ColumnConfig, len(data.Columns))
	for i, c := range data.Columns {
		header[i] = c
		configs[i] = table.ColumnConfig{
			Number:           i + 1,
			WidthMax:         maxCellWidth,
			WidthMaxEnforcer: text.WrapSoft,
		}
	}
	t.AppendHeader(header)
	t.SetColumnConfigs(configs)

	for _, row := range data.Rows {
		r := make(table.Row, len(row))
		for i, cell := range row {
			r[i] = cell
		}
		t.AppendRow(r)
	}
	t.Render()
}

const barWidth = 40

// RenderBars draws a horizontal bar chart scaled to the largest count.
func RenderBars(w io.Writer, title string, bars []linkedin.Bar) {
	if len(bars) == 0 {
		return
	}

	labelWidth := 0
	largest := 0.0
	for _, b := range bars {
		labelWidth = max(labelWidth, utf8.RuneCountInString(b.Label))
		largest = math.Max(largest, b.Count)
	}

	fmt.Fprintln(w, text.Bold.Sprint(title))
	for _, b := range bars {
		n := 0
		if largest > 0 {
			n = int(math.Round(b.Count / largest * barWidth))
		}
		if n == 0 && b.Count > 0 {
			n = 1
		}
		fmt.Fprintf(
			w, "%s │%s %s\n",
			text.Pad(b.Label, labelWidth, ' '),
			strings.Repeat("█", n),
			humanize.Commaf(b.Count),
		)
	}
	fmt.Fprintln(w)
}

// RenderView draws every entity of a view: its heading, its tables and the
// reaction histogram if there is one.
func RenderView(w io.Writer, view linkedin.View) {
	for _, entity := range view.Entities {
		if entity.Heading != "" {
			fmt.Fprintln(w, text.Bold.Sprint(entity.Heading))
		}
		for _, section := range entity.Sections {
			if len(section.Table.Columns) == 0 {
				fmt.Fprintln(w, section.Title)
				fmt.Fprintln(w)
				continue
			}
			RenderTable(w, section.Title, section.Table)
		}
	}
	RenderBars(w, "Reaction Histogram", view.Histogram)
}
