// Package cel filters suggestions with CEL boolean expressions.
//
// An expression sees one rendered suggestion at a time through these variables:
//
//	s       the full suggestion text
//	prefix  the part that matched the query
//	rest    the remainder after the prefix
//	q       the query
//	i       the zero-based position in the list
//
// Example: `size(s) < 20 && !rest.contains("(")`
package cel

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/cel-go/cel"
	celext "github.com/google/cel-go/ext"

	"github.com/oakwood-commons/searchbar/internal/autocomplete"
)

// Predicate is a compiled expression that keeps or drops a suggestion.
type Predicate struct {
	expr string
	prg  cel.Program
}

func newEnv() (*cel.Env, error) {
	return cel.NewEnv(
		cel.Variable("s", cel.StringType),
		cel.Variable("prefix", cel.StringType),
		cel.Variable("rest", cel.StringType),
		cel.Variable("q", cel.StringType),
		cel.Variable("i", cel.IntType),
		celext.Strings(),
		celext.Math(),
	)
}

// Compile parses and type-checks expr. The expression must yield a bool.
func Compile(expr string) (*Predicate, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return nil, fmt.Errorf("empty filter expression")
	}
	env, err := newEnv()
	if err != nil {
		return nil, fmt.Errorf("failed to create CEL environment: %w", err)
	}
	ast, issues := env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("compilation error: %w", issues.Err())
	}
	if !ast.OutputType().IsExactType(cel.BoolType) {
		return nil, fmt.Errorf("filter %q must evaluate to bool, got %s", expr, ast.OutputType())
	}
	prg, err := env.Program(ast, cel.InterruptCheckFrequency(100))
	if err != nil {
		return nil, fmt.Errorf("program error: %w", err)
	}
	return &Predicate{expr: expr, prg: prg}, nil
}

// String returns the source expression.
func (p *Predicate) String() string { return p.expr }

// Match evaluates the predicate for item at position i.
func (p *Predicate) Match(ctx context.Context, query string, i int, it autocomplete.Item) (bool, error) {
	out, _, err := p.prg.ContextEval(ctx, map[string]interface{}{
		"s":      it.Value,
		"prefix": it.Prefix,
		"rest":   it.Rest,
		"q":      query,
		"i":      int64(i),
	})
	if err != nil {
		return false, fmt.Errorf("eval error: %w", err)
	}
	keep, ok := out.Value().(bool)
	if !ok {
		return false, fmt.Errorf("filter %q returned %T", p.expr, out.Value())
	}
	return keep, nil
}

// Filter keeps the items p matches, preserving order. A nil predicate keeps everything.
func Filter(ctx context.Context, p *Predicate, query string, items []autocomplete.Item) ([]autocomplete.Item, error) {
	if p == nil {
		return items, nil
	}
	out := make([]autocomplete.Item, 0, len(items))
	for i, it := range items {
		keep, err := p.Match(ctx, query, i, it)
		if err != nil {
			return nil, err
		}
		if keep {
			out = append(out, it)
		}
	}
	return out, nil
}
