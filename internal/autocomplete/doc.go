// Package autocomplete implements the search bar's suggestion controller.
//
// A Controller owns the query text, the Original Search snapshot, the last
// suggestion list, the rendered (prefix-filtered) items and a focus cursor.
// It is deliberately free of any terminal or network code: hosts feed it key
// classifications and fetch outcomes, and render whatever state it exposes.
//
// Focus cursor semantics:
//
//	down  -> cursor+1, wraps to the first item past the end
//	up    -> cursor-1, below the first item restores Original Search (no wrap)
//	enter -> activates the focused item, if any
//	other -> snapshots the current query as Original Search
package autocomplete
