package autocomplete

import "strings"

// Item is one rendered suggestion.
type Item struct {
	// Value is the full suggestion text; it is what a commit writes into the query.
	Value string
	// Prefix is the part of Value that matched Original Search (drawn bold).
	Prefix string
	// Rest is the remainder of Value after Prefix.
	Rest string
}

// Match keeps, in order, every suggestion whose first len(original) runes equal
// original case-insensitively. An empty original matches nothing.
func Match(original string, suggestions []string) []Item {
	if original == "" || len(suggestions) == 0 {
		return nil
	}
	n := len([]rune(original))
	want := strings.ToUpper(original)

	var items []Item
	for _, s := range suggestions {
		runes := []rune(s)
		if len(runes) < n {
			continue
		}
		prefix := string(runes[:n])
		if strings.ToUpper(prefix) != want {
			continue
		}
		items = append(items, Item{Value: s, Prefix: prefix, Rest: string(runes[n:])})
	}
	return items
}

// Preview is the text written into the query while an item is focused with
// the arrow keys: everything before the first "(" when one appears after the
// start, otherwise the whole text. Commits always use the full value.
func Preview(text string) string {
	if i := strings.Index(text, "("); i > 0 {
		return text[:i]
	}
	return text
}
