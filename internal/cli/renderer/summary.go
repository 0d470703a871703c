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
	"github.com/platform-engineering-labs/fxrefs/internal/effectref"
	"github.com/platform-engineering-labs/fxrefs/internal/runner"
)

func count(n int) string {
	return fmt.Sprintf("%d", n)
}

// RenderSummary renders the outcome of a scan followed by its most referenced
// effects, limited to top if > 0.
func RenderSummary(result *runner.Result, top int) (string, error) {
	failedColor := display.Green
	if result.Failed() > 0 {
		failedColor = display.Red
	}
	duplicateColor := display.Green
	if result.Duplicates > 0 {
		duplicateColor = display.Gold
	}

	run := headedTable{
		Headline: "Run",
		Rows: [][]string{
			{"Indexed effects", count(result.Effects)},
			{duplicateColor("Duplicate GUIDs"), duplicateColor(count(result.Duplicates))},
			{"Rows", count(result.Rows())},
			{failedColor("Failed documents"), failedColor(count(result.Failed()))},
		},
	}

	directories := headedTable{
		Headline: "Directories",
		Headers:  []string{"Class", "Files", "Failed", "Rows"},
	}
	for _, c := range result.Classes {
		if c.Skipped {
			directories.Rows = append(directories.Rows, []string{display.Grey(c.Name), display.Grey("missing"), "", ""})
			continue
		}
		failed := count(c.Failed)
		if c.Failed > 0 {
			failed = display.Red(failed)
		}
		directories.Rows = append(directories.Rows, []string{c.Name, count(c.Files), failed, count(c.Rows)})
	}

	references := headedTable{Headline: "References"}
	var byKind map[effectref.Kind]int
	if result.Summary != nil {
		byKind = result.Summary.References()
	}
	for _, kind := range effectref.Kinds {
		references.Rows = append(references.Rows, []string{string(kind), count(byKind[kind])})
	}

	var buf strings.Builder
	buf.WriteString(renderTablesSideBySide([]headedTable{run, directories, references}))
	buf.WriteString("\n")

	effects, err := renderTopEffects(result, top)
	if err != nil {
		return "", err
	}
	buf.WriteString(effects)

	fmt.Fprintf(&buf, "\n%s %s\n", display.Gold("Report:"), result.Output)
	return buf.String(), nil
}

func renderTopEffects(result *runner.Result, top int) (string, error) {
	if result.Summary == nil || result.Summary.Effects() == 0 {
		return display.Gold("No effect references found.\n"), nil
	}

	var buf strings.Builder
	table := tablewriter.NewTable(&buf,
		tablewriter.WithRowAutoWrap(tw.WrapBreak),
		tablewriter.WithHeaderAutoFormat(tw.Off),
		tablewriter.WithRenderer(renderer.NewBlueprint(tw.Rendition{
			Settings: tw.Settings{Separators: tw.Separators{BetweenRows: tw.On, ShowHeader: tw.On}},
		})))

	headers := []any{display.LightBlue("Effect"), "Documents", "References"}
	for _, kind := range effectref.Kinds {
		headers = append(headers, display.Grey(string(kind)))
	}
	table.Header(headers...)

	totals := result.Summary.Top(top)
	data := make([][]string, len(totals))
	for i, total := range totals {
		data[i] = []string{display.LightBlue(total.EffectPath), count(total.Documents), count(total.References)}
		for _, kind := range effectref.Kinds {
			data[i] = append(data[i], count(total.ByKind[kind]))
		}
	}

	if err := table.Bulk(data); err != nil {
		return "", fmt.Errorf("error rendering effects: %v", err)
	}
	if err := table.Render(); err != nil {
		return "", fmt.Errorf("error rendering effects: %v", err)
	}

	summary := fmt.Sprintf("\n%s Showing %d of %d referenced effects",
		display.Gold("Summary:"),
		len(totals),
		result.Summary.Effects())
	if top > 0 && result.Summary.Effects() > top {
		summary += fmt.Sprintf(" (use --top %d to see all)", result.Summary.Effects())
	}

	return buf.String() + summary + "\n", nil
}
