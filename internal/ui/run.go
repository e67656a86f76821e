package ui

import (
	"context"
	"errors"
	"fmt"

	tea "charm.land/bubbletea/v2"

	"github.com/oakwood-commons/searchbar/internal/search"
)

// Run starts the search bar and blocks until the user searches or quits.
// It returns the submitted search, or nil when the user quit without one.
func Run(ctx context.Context, opts Options) (*search.Submission, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	m, err := NewModel(ctx, opts)
	if err != nil {
		return nil, err
	}

	progOpts := append([]tea.ProgramOption{tea.WithContext(ctx)}, opts.ProgramOptions...)
	prog := tea.NewProgram(m, progOpts...)
	finalModel, err := prog.Run()
	if err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("run search bar: %w", err)
	}
	if fm, ok := finalModel.(*Model); ok && fm != nil {
		return fm.Submission(), nil
	}
	return m.Submission(), nil
}
