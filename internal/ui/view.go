package ui

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/oakwood-commons/searchbar/internal/autocomplete"
	"github.com/oakwood-commons/searchbar/internal/formatter"
	"github.com/oakwood-commons/searchbar/internal/limiter"
)

// firstDropdownRow is the screen row of the first dropdown item: the top
// border and the input line sit above it.
const firstDropdownRow = 2

// View renders the input box, the dropdown when open, and a footer.
func (m *Model) View() tea.View {
	v := tea.NewView(m.render())
	v.AltScreen = true
	v.MouseMode = tea.MouseModeCellMotion
	return v
}

func (m *Model) render() string {
	inner := m.innerWidth()
	vis := m.controller.Visual()
	rounded := lipgloss.RoundedBorder()
	square := lipgloss.NormalBorder()
	edge := m.styles.border.Render

	var lines []string

	topLeft, topRight := square.TopLeft, square.TopRight
	if vis.RoundTop {
		topLeft, topRight = rounded.TopLeft, rounded.TopRight
	}
	lines = append(lines, edge(topLeft+strings.Repeat(rounded.Top, inner)+topRight))
	lines = append(lines, edge(rounded.Left)+fit(m.styles.input.Render(m.input.View()), inner)+edge(rounded.Right))

	if vis.Merged {
		items := m.controller.Items()
		start, end := m.visibleRange()
		for i := start; i < end; i++ {
			lines = append(lines, edge(rounded.Left)+m.renderRow(items[i], m.controller.Active(i), inner)+edge(rounded.Right))
		}
		lines = append(lines, edge(rounded.BottomLeft+strings.Repeat(rounded.Bottom, inner)+rounded.BottomRight))
	} else if vis.BottomBorder {
		bottomLeft, bottomRight := square.BottomLeft, square.BottomRight
		if vis.RoundBottom {
			bottomLeft, bottomRight = rounded.BottomLeft, rounded.BottomRight
		}
		lines = append(lines, edge(bottomLeft+strings.Repeat(rounded.Bottom, inner)+bottomRight))
	}

	lines = append(lines, m.footer(inner+2))
	return strings.Join(lines, "\n")
}

func (m *Model) renderRow(it autocomplete.Item, active bool, inner int) string {
	prefix, rest := formatter.TruncateItem(it, inner-2)
	var row string
	if active {
		row = m.styles.active.Render(" ") +
			m.styles.active.Bold(true).Render(prefix) +
			m.styles.active.Render(rest)
		pad := inner - 1 - lipgloss.Width(prefix) - lipgloss.Width(rest)
		if pad > 0 {
			row += m.styles.active.Render(strings.Repeat(" ", pad))
		}
		return row
	}
	row = " " + m.styles.prefix.Render(prefix) + m.styles.rest.Render(rest)
	return fit(row, inner)
}

func (m *Model) footer(width int) string {
	var left string
	if m.inFlight > 0 {
		left = m.spinner.View() + " "
	}
	items := len(m.controller.Items())
	if items > 0 {
		start, end := m.visibleRange()
		if end-start < items {
			left += fmt.Sprintf("%d-%d of %d  ", start+1, end, items)
		} else {
			left += fmt.Sprintf("%d suggestions  ", items)
		}
	}
	hints := make([]string, 0, 5)
	for _, b := range m.keys.ShortHelp() {
		h := b.Help()
		hints = append(hints, h.Key+" "+h.Desc)
	}
	return ansi.Truncate(left+m.styles.status.Render(strings.Join(hints, " · ")), width, "…")
}

// visibleRange keeps the focused row inside the dropdown window.
func (m *Model) visibleRange() (int, int) {
	start, end := limiter.Window(len(m.controller.Items()), m.maxVisible, m.controller.Focus(), m.windowStart)
	m.windowStart = start
	return start, end
}

// rowAt maps a screen cell to a dropdown item index.
func (m *Model) rowAt(x, y int) (int, bool) {
	if m.controller.State() != autocomplete.StateOpen {
		return -1, false
	}
	if x < 0 || x > m.innerWidth()+1 {
		return -1, false
	}
	start, end := m.visibleRange()
	i := start + (y - firstDropdownRow)
	if y < firstDropdownRow || i >= end {
		return -1, false
	}
	return i, true
}

func (m *Model) innerWidth() int {
	w := m.width - 2
	if w < minInnerWidth {
		return minInnerWidth
	}
	return w
}

// fit pads or cuts a rendered string to exactly width cells.
func fit(s string, width int) string {
	w := lipgloss.Width(s)
	switch {
	case w > width:
		return ansi.Truncate(s, width, "")
	case w < width:
		return s + strings.Repeat(" ", width-w)
	}
	return s
}
