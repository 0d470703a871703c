// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package renderer

import (
	"fmt"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/platform-engineering-labs/fxrefs/internal/cli/display"
)

const tablesPerLine = 3

type headedTable struct {
	Headline string
	Headers  []string
	Rows     [][]string
}

func renderTable(t headedTable) string {
	var buf strings.Builder
	fmt.Fprintf(&buf, "%s\n", display.LightBlue(t.Headline))

	table := tablewriter.NewTable(&buf,
		tablewriter.WithMaxWidth(100),
		tablewriter.WithRowAutoWrap(tw.WrapBreak),
		tablewriter.WithHeaderAutoFormat(tw.Off),
		tablewriter.WithRenderer(renderer.NewBlueprint(tw.Rendition{
			Settings: tw.Settings{Separators: tw.Separators{BetweenRows: tw.On, ShowHeader: tw.On}},
		})))

	if len(t.Headers) > 0 {
		headers := make([]any, len(t.Headers))
		for i, h := range t.Headers {
			headers[i] = h
		}
		table.Header(headers...)
	}
	for _, row := range t.Rows {
		_ = table.Append(row)
	}
	_ = table.Render()

	return buf.String()
}

func renderTablesSideBySide(tables []headedTable) string {
	outputs := make([]string, 0, len(tables))
	for _, t := range tables {
		outputs = append(outputs, renderTable(t))
	}
	return combineTablesSideBySide(outputs)
}

// combineTablesSideBySide lays rendered tables out in a borderless grid.
func combineTablesSideBySide(outputs []string) string {
	var buf strings.Builder

	grid := tablewriter.NewTable(&buf,
		tablewriter.WithRenderer(renderer.NewBlueprint(tw.Rendition{
			Settings: tw.Settings{
				Separators: tw.Separators{
					BetweenRows:    tw.Off,
					BetweenColumns: tw.Off,
					ShowHeader:     tw.Off,
				},
				Lines: tw.Lines{
					ShowTop:    tw.Off,
					ShowBottom: tw.Off,
				},
			},
		})))

	cells := make([]string, 0, len(outputs))
	for _, output := range outputs {
		cells = append(cells, strings.TrimRight(output, "\n"))
	}

	for start := 0; start < len(cells); start += tablesPerLine {
		row := make([]string, tablesPerLine)
		copy(row, cells[start:min(start+tablesPerLine, len(cells))])
		_ = grid.Append(row)
	}
	_ = grid.Render()

	lines := strings.Split(buf.String(), "\n")
	for i, line := range lines {
		l := strings.TrimSpace(line)
		if strings.HasPrefix(l, "│") && strings.HasSuffix(l, "│") {
			lines[i] = strings.Trim(l, "│")
		}
	}

	return strings.Join(lines, "\n")
}
