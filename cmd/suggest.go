package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/oakwood-commons/searchbar/internal/cel"
	"github.com/oakwood-commons/searchbar/internal/formatter"
	"github.com/oakwood-commons/searchbar/internal/limiter"
	"github.com/oakwood-commons/searchbar/pkg/logger"
	"github.com/oakwood-commons/searchbar/pkg/settings"
	"github.com/oakwood-commons/searchbar/pkg/tui"
)

var (
	suggestOutput string
	suggestLimit  int
	suggestOffset int
	suggestTail   int
	suggestWidth  int
	suggestWhere  string
)

var suggestCmd = &cobra.Command{
	Use:   "suggest <query>",
	Short: "Print the suggestions the search bar would show for a query",
	Long: `suggest asks the suggestion endpoint once, keeps the suggestions that start with
the query (ignoring case) and prints them. A failed request prints nothing and is
only logged.`,
	Example: "\n  searchbar suggest golang\n  searchbar suggest 'new y' -o json\n  searchbar suggest pa --suggestions-file cities.yaml --limit 3\n  searchbar suggest pa --where '!rest.contains(\"(\")'\n",
	Args:    cobra.MinimumNArgs(1),
	RunE:    runSuggest,
}

func runSuggest(cmd *cobra.Command, args []string) error {
	lim := limiter.Config{Limit: suggestLimit, Offset: suggestOffset, Tail: suggestTail}
	if err := lim.Validate(); err != nil {
		return err
	}
	if err := formatter.ValidateOutput(suggestOutput); err != nil {
		return err
	}
	var where *cel.Predicate
	if strings.TrimSpace(suggestWhere) != "" {
		p, err := cel.Compile(suggestWhere)
		if err != nil {
			return fmt.Errorf("invalid --where: %w", err)
		}
		where = p
	}

	ctx := cmd.Context()
	run := settings.FromContextOrDefault(ctx)
	lgr := logger.FromContext(ctx)

	cfg, err := loadTUIConfig(cmd, run)
	if err != nil {
		return err
	}

	query := strings.Join(args, " ")
	items, fetchErr := tui.Suggest(ctx, cfg, query)
	if fetchErr != nil {
		lgr.Error(fetchErr, "suggestion fetch failed", logger.QueryKey, query, logger.EndpointKey, cfg.Endpoint)
	}
	items, err = cel.Filter(ctx, where, query, items)
	if err != nil {
		return err
	}
	items = limiter.Apply(lim, items)

	width := suggestWidth
	if width <= 0 {
		width, _ = tui.DetectTerminalSize()
	}
	out, err := formatter.Format(formatter.Result{Query: query, Items: items}, formatter.Options{
		Output:  suggestOutput,
		NoColor: run.NoColor,
		Width:   width,
	})
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), out)
	return nil
}

func init() { //nolint:gochecknoinits
	suggestCmd.Flags().StringVarP(&suggestOutput, "output", "o", formatter.OutputList, "output format: "+strings.Join(formatter.Outputs, "|"))
	suggestCmd.Flags().IntVar(&suggestLimit, "limit", 0, "show at most N suggestions")
	suggestCmd.Flags().IntVar(&suggestOffset, "offset", 0, "skip the first N suggestions")
	suggestCmd.Flags().IntVar(&suggestTail, "tail", 0, "show the last N suggestions (mutually exclusive with --limit; ignores --offset)")
	suggestCmd.Flags().StringVar(&suggestWhere, "where", "", "CEL expression that keeps a suggestion (variables: s, prefix, rest, q, i)")
	suggestCmd.Flags().IntVar(&suggestWidth, "width", 0, "output width in columns (default: terminal width)")
}
