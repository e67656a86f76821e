package formatter

import (
	"strconv"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"
	runewidth "github.com/mattn/go-runewidth"
)

// FormatTable prints an index/suggestion table sized to width.
func FormatTable(r Result, noColor bool, width int) string {
	// borders and padding take 7 cells; the index column needs at least 3
	valueWidth := width - 7 - len(strconv.Itoa(len(r.Items))) - 2
	if valueWidth < 10 {
		valueWidth = 10
	}

	rows := make([][]string, 0, len(r.Items))
	for i, it := range r.Items {
		rows = append(rows, []string{strconv.Itoa(i + 1), runewidth.Truncate(it.Value, valueWidth, ellipsis)})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("#", "SUGGESTION").
		Rows(rows...)
	if !noColor {
		t = t.BorderStyle(borderStyle).StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle.Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		})
	} else {
		t = t.StyleFunc(func(_, _ int) lipgloss.Style {
			return lipgloss.NewStyle().Padding(0, 1)
		})
	}
	return t.String() + "\n"
}
