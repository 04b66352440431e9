package report

import (
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"photorganiser/internal/failure"
)

// SummaryTable renders per-stage counts and a failure breakdown.
func SummaryTable(r Run) string {
	tokens := 0
	for _, m := range r.Matches {
		if m.Found {
			tokens++
		}
	}
	readErrors := 0
	for _, t := range r.Tags {
		if t.Err != nil {
			readErrors++
		}
	}
	kinds := map[failure.Kind]int{}
	for _, o := range r.Outcomes.Failed {
		kinds[failure.KindOf(o.Err)]++
	}

	rows := [][]string{
		{"Found", strconv.Itoa(len(r.Included))},
		{"Excluded", strconv.Itoa(len(r.Excluded))},
		{"Tag read errors", strconv.Itoa(readErrors)},
		{"Year found", strconv.Itoa(tokens)},
		{"Moved", strconv.Itoa(len(r.Outcomes.Moved))},
		{"Not moved: collision", strconv.Itoa(kinds[failure.KindCollision])},
		{"Not moved: permission", strconv.Itoa(kinds[failure.KindPermission])},
		{"Not moved: io", strconv.Itoa(kinds[failure.KindIO])},
	}
	return RenderTable([]string{"Stage", "Files"}, rows, []Alignment{AlignLeft, AlignRight})
}

// Alignment selects column alignment for RenderTable.
type Alignment int

const (
	AlignLeft Alignment = iota
	AlignRight
)

// RenderTable draws rows in the rounded table style used by every command.
func RenderTable(headers []string, rows [][]string, aligns []Alignment) string {
	columns := len(headers)
	if columns == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, columns)
	for i := 0; i < columns; i++ {
		header[i] = headers[i]
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		r := make(table.Row, columns)
		for i := 0; i < columns; i++ {
			if i < len(row) {
				r[i] = row[i]
			} else {
				r[i] = ""
			}
		}
		tw.AppendRow(r)
	}

	configs := make([]table.ColumnConfig, 0, columns)
	for i := 0; i < columns; i++ {
		align := text.AlignLeft
		if i < len(aligns) && aligns[i] == AlignRight {
			align = text.AlignRight
		}
		configs = append(configs, table.ColumnConfig{Number: i + 1, Align: align, AlignHeader: text.AlignLeft})
	}
	tw.SetColumnConfigs(configs)

	return tw.Render()
}
