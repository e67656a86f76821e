package suggest

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Static serves a fixed suggestion list, for offline use and tests. Like the
// real endpoint it returns the whole list and leaves prefix filtering to the
// controller.
type Static struct {
	Suggestions []string
}

// Fetch returns a copy of the list.
func (s Static) Fetch(ctx context.Context, _ string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return append([]string(nil), s.Suggestions...), nil
}

// LoadStatic reads a YAML (or JSON) sequence of strings.
func LoadStatic(path string) (Static, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Static{}, fmt.Errorf("read suggestions file: %w", err)
	}
	var list []string
	if err := yaml.Unmarshal(data, &list); err != nil {
		return Static{}, fmt.Errorf("decode suggestions file %s: %w", path, err)
	}
	return Static{Suggestions: list}, nil
}
