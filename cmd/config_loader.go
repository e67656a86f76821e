package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/oakwood-commons/searchbar/internal/config"
	"github.com/oakwood-commons/searchbar/internal/suggest"
	"github.com/oakwood-commons/searchbar/pkg/settings"
	"github.com/oakwood-commons/searchbar/pkg/tui"
)

type configContextKey struct{}

func withConfig(ctx context.Context, f config.File) context.Context {
	return context.WithValue(ctx, configContextKey{}, f)
}

// configFromContext returns the config attached in PersistentPreRunE, or the
// embedded defaults.
func configFromContext(ctx context.Context) (config.File, error) {
	if ctx != nil {
		if f, ok := ctx.Value(configContextKey{}).(config.File); ok {
			return f, nil
		}
	}
	return config.Default()
}

func flagChanged(cmd *cobra.Command, name string) bool {
	f := cmd.Flag(name)
	return f != nil && f.Changed
}

// loadConfig merges the config file with command-line overrides and validates the result.
func loadConfig(cmd *cobra.Command) (config.File, string, error) {
	path := config.ResolvePath(configFile)
	cfg, err := config.Load(path)
	if err != nil {
		return cfg, path, err
	}

	if strings.TrimSpace(endpoint) != "" {
		cfg.Endpoint.BaseURL = strings.TrimSpace(endpoint)
	}
	if flagChanged(cmd, "sequence-guard") {
		guard := sequenceGuard
		cfg.UI.Features.SequenceGuard = &guard
	}
	if flagChanged(cmd, "debounce") {
		cfg.UI.Features.Debounce = &config.Duration{Duration: debounce}
	}
	if flagChanged(cmd, "keymap") {
		cfg.UI.Keymap = keyMode
	}
	if flagChanged(cmd, "theme") {
		cfg.UI.Theme.Default = themeName
	}

	if err := cfg.Validate(); err != nil {
		if path != "" {
			return cfg, path, fmt.Errorf("invalid configuration (%s): %w", path, err)
		}
		return cfg, path, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, path, nil
}

// resolveRunSettings loads the config and folds it, together with the flags,
// into the per-run settings. The merged config is attached to cmd's context.
func resolveRunSettings(cmd *cobra.Command, interactive bool) (*settings.Run, error) {
	cfg, path, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	run := settings.NewCliParams()
	run.Interactive = interactive
	run.ConfigPath = path
	run.Endpoint = cfg.Endpoint.BaseURL
	run.SequenceGuard = cfg.SequenceGuard()
	run.Debounce = cfg.Debounce()
	run.PrintQuery = printQuery
	run.NoColor = noColor || os.Getenv("NO_COLOR") != ""
	if debug {
		run.MinLogLevel = -1
	}
	run.LogFile = strings.TrimSpace(logFile)
	if run.LogFile == "" && debug {
		run.LogFile = strings.TrimSpace(cfg.App.Debug.LogFile)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(withConfig(ctx, cfg))
	return run, nil
}

// loadTUIConfig builds the search bar config for this run.
func loadTUIConfig(cmd *cobra.Command, run *settings.Run) (tui.Config, error) {
	f, err := configFromContext(cmd.Context())
	if err != nil {
		return tui.Config{}, err
	}

	cfg := tui.FromFile(f)
	cfg.Endpoint = run.Endpoint
	cfg.NoColor = run.NoColor
	cfg.SequenceGuard = run.SequenceGuard
	cfg.Debounce = run.Debounce

	if suggestionsFile != "" {
		static, err := suggest.LoadStatic(suggestionsFile)
		if err != nil {
			return cfg, err
		}
		cfg.Fetcher = static
	}

	theme, err := cfg.ResolveTheme()
	if err != nil {
		return cfg, err
	}
	theme.ApplyToFormatter()
	cfg.Theme = &theme
	return cfg, nil
}
