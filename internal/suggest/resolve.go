package suggest

import (
	"context"
	"errors"

	"github.com/go-logr/logr"

	"github.com/oakwood-commons/searchbar/internal/autocomplete"
)

// Resolve runs one fetch for req and folds the outcome into a controller
// response. A malformed body becomes an absent list, which collapses the
// dropdown; every other error is passed through and leaves it untouched.
func Resolve(ctx context.Context, log logr.Logger, f Fetcher, req autocomplete.Request) autocomplete.Response {
	suggestions, err := f.Fetch(ctx, req.Query)
	if errors.Is(err, ErrMalformed) {
		log.V(1).Info("malformed suggestion response", "seq", req.Seq, "query", req.Query)
		return autocomplete.Response{Seq: req.Seq, Query: req.Query}
	}
	return autocomplete.Response{Seq: req.Seq, Query: req.Query, Suggestions: suggestions, Err: err}
}
