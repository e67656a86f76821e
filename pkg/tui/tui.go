// Package tui is the embedding API of the search bar: host programs build a
// Config, optionally supply their own Fetcher, and call Run.
package tui

import (
	"context"
	"io"
	"os"
	"strconv"

	tea "charm.land/bubbletea/v2"
	"golang.org/x/term"

	"github.com/oakwood-commons/searchbar/internal/autocomplete"
	"github.com/oakwood-commons/searchbar/internal/suggest"
	"github.com/oakwood-commons/searchbar/internal/ui"
	"github.com/oakwood-commons/searchbar/pkg/logger"
)

// ErrNoSearchField is returned when there is no suggestion source or form.
var ErrNoSearchField = ui.ErrNoSearchField

// defaultFallbackTermWidth is used when terminal size cannot be detected.
const defaultFallbackTermWidth = 120

// DetectTerminalSize returns the best-effort terminal width and height by probing
// stdout, stderr, and stdin, then falling back to the COLUMNS environment variable.
func DetectTerminalSize() (width int, height int) {
	fds := []uintptr{os.Stdout.Fd(), os.Stderr.Fd(), os.Stdin.Fd()}
	for _, fd := range fds {
		if w, h, err := term.GetSize(int(fd)); err == nil && (w > 0 || h > 0) {
			return w, h
		}
	}
	if col := os.Getenv("COLUMNS"); col != "" {
		if w, err := strconv.Atoi(col); err == nil && w > 0 {
			return w, 0
		}
	}
	return defaultFallbackTermWidth, 24
}

// Run starts the interactive search bar and returns the submitted search,
// or nil when the user quit without one. Host applications can pass
// optional tea.ProgramOption values to control IO.
func Run(ctx context.Context, cfg Config, opts ...tea.ProgramOption) (*Submission, error) {
	uiOpts, err := cfg.options()
	if err != nil {
		return nil, err
	}
	uiOpts.ProgramOptions = opts
	return ui.Run(ctx, uiOpts)
}

// Suggest runs one fetch for query and returns the items the dropdown would
// show. Fetch failures are returned alongside an empty result so callers can
// treat them as best-effort.
func Suggest(ctx context.Context, cfg Config, query string) ([]Item, error) {
	fetcher, err := cfg.NewFetcher()
	if err != nil {
		return nil, err
	}
	lgr := logger.FromContext(ctx)

	c := autocomplete.New(autocomplete.WithSequenceGuard(cfg.SequenceGuard), autocomplete.WithLogger(*lgr))
	c.SetQuery(query)
	c.KeyDown(autocomplete.KeyOther)
	resp := suggest.Resolve(ctx, *lgr, fetcher, c.RequestSuggestions(query))
	c.ApplyResponse(resp)
	return c.Items(), resp.Err
}

// WithIO returns program options that route input/output through the provided reader/writer.
func WithIO(in io.Reader, out io.Writer) []tea.ProgramOption {
	opts := []tea.ProgramOption{}
	if in != nil {
		opts = append(opts, tea.WithInput(in))
	}
	if out != nil {
		opts = append(opts, tea.WithOutput(out))
	}
	return opts
}
