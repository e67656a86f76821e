package formatter

import (
	"strings"

	runewidth "github.com/mattn/go-runewidth"

	"github.com/oakwood-commons/searchbar/internal/autocomplete"
)

const ellipsis = "…"

// FormatList prints one item per line, the matched prefix in bold.
func FormatList(r Result, noColor bool, width int) string {
	var b strings.Builder
	for _, it := range r.Items {
		b.WriteString(RenderItem(it, noColor, width))
		b.WriteString("\n")
	}
	return b.String()
}

// RenderItem draws prefix+rest within width display cells.
func RenderItem(it autocomplete.Item, noColor bool, width int) string {
	prefix, rest := TruncateItem(it, width)
	if noColor {
		return prefix + rest
	}
	return prefixStyle.Render(prefix) + restStyle.Render(rest)
}

// TruncateItem fits an item's prefix and rest into width display cells,
// cutting the rest first. A width of 0 or less leaves both untouched.
func TruncateItem(it autocomplete.Item, width int) (string, string) {
	prefix, rest := it.Prefix, it.Rest
	if width <= 0 {
		return prefix, rest
	}
	pw := runewidth.StringWidth(prefix)
	switch {
	case pw >= width:
		return runewidth.Truncate(prefix, width, ellipsis), ""
	case pw+runewidth.StringWidth(rest) > width:
		return prefix, runewidth.Truncate(rest, width-pw, ellipsis)
	}
	return prefix, rest
}
