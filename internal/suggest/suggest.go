// Package suggest fetches search suggestions for a partial query.
package suggest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// DefaultPath is the route the search service serves suggestions on.
const DefaultPath = "/autocomplete"

// ErrMalformed is reported when the endpoint answers 200 with a body that is
// not a [query, [suggestions...]] array. Callers treat it as "no suggestions".
var ErrMalformed = errors.New("malformed suggestion response")

// Fetcher returns suggestions for a partial query.
type Fetcher interface {
	Fetch(ctx context.Context, query string) ([]string, error)
}

// FetcherFunc adapts a function to Fetcher.
type FetcherFunc func(ctx context.Context, query string) ([]string, error)

// Fetch calls f.
func (f FetcherFunc) Fetch(ctx context.Context, query string) ([]string, error) {
	return f(ctx, query)
}

// StatusError is returned when the endpoint answers with a non-200 status.
type StatusError struct {
	Code   int
	Status string
	Body   string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("suggestion endpoint status %s", e.Status)
	}
	return fmt.Sprintf("suggestion endpoint status %s: %s", e.Status, e.Body)
}

// ParseResponse extracts the suggestion list from an endpoint body shaped
// like ["query", ["s1", "s2", ...]]. Any other shape yields nil. Non-string
// members of the list, null included, are skipped.
func ParseResponse(body []byte) []string {
	var top []json.RawMessage
	if err := json.Unmarshal(body, &top); err != nil || len(top) < 2 {
		return nil
	}
	var raw []json.RawMessage
	if err := json.Unmarshal(top[1], &raw); err != nil || raw == nil {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, r := range raw {
		var s *string
		if err := json.Unmarshal(r, &s); err != nil || s == nil {
			continue
		}
		out = append(out, *s)
	}
	return out
}
