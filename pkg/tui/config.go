package tui

import (
	"strings"
	"time"

	"github.com/oakwood-commons/searchbar/internal/autocomplete"
	"github.com/oakwood-commons/searchbar/internal/config"
	"github.com/oakwood-commons/searchbar/internal/search"
	"github.com/oakwood-commons/searchbar/internal/suggest"
	"github.com/oakwood-commons/searchbar/internal/ui"
)

type (
	// Fetcher returns suggestions for a partial query.
	Fetcher = suggest.Fetcher
	// FetcherFunc adapts a function to Fetcher.
	FetcherFunc = suggest.FetcherFunc
	// Submission is a committed search.
	Submission = search.Submission
	// Item is one rendered suggestion.
	Item = autocomplete.Item
	// Theme holds the search bar palette.
	Theme = ui.Theme
)

// Config holds host-provided settings for running the search bar.
type Config struct {
	AppName string

	// Endpoint is the base URL of the search service.
	Endpoint         string
	AutocompletePath string
	SearchPath       string
	UserAgent        string
	Timeout          time.Duration
	// Fetcher overrides the HTTP client built from Endpoint.
	Fetcher Fetcher

	Query       string
	Prompt      string
	Placeholder string

	Theme     *Theme
	ThemeName string // Alternative to Theme: pick a configured theme by name
	Themes    map[string]config.ThemeConfig
	KeyMode   string // "default" or "emacs"
	NoColor   bool

	AllowSuggestions *bool
	SequenceGuard    bool
	Debounce         time.Duration
	MaxVisible       int
}

// DefaultConfig returns a baseline config with the same defaults as the CLI.
func DefaultConfig() Config {
	cfg, err := config.Default()
	if err != nil {
		return Config{
			AppName:          "searchbar",
			Endpoint:         "http://localhost:5000",
			AutocompletePath: suggest.DefaultPath,
			SearchPath:       search.DefaultPath,
		}
	}
	return FromFile(cfg)
}

// FromFile maps a loaded configuration document onto a Config.
func FromFile(f config.File) Config {
	allow := f.AllowSuggestions()
	appName := strings.TrimSpace(f.App.About.Name)
	if appName == "" {
		appName = "searchbar"
	}
	return Config{
		AppName:          appName,
		Endpoint:         f.Endpoint.BaseURL,
		AutocompletePath: f.Endpoint.AutocompletePath,
		SearchPath:       f.Endpoint.SearchPath,
		UserAgent:        f.Endpoint.UserAgent,
		Timeout:          f.Endpoint.Timeout.Duration,
		Prompt:           f.UI.Prompt,
		Placeholder:      f.UI.Placeholder,
		ThemeName:        f.UI.Theme.Default,
		Themes:           f.UI.Themes,
		KeyMode:          f.UI.Keymap,
		AllowSuggestions: &allow,
		SequenceGuard:    f.SequenceGuard(),
		Debounce:         f.Debounce(),
		MaxVisible:       f.UI.Dropdown.MaxVisible,
	}
}

// ResolveTheme returns the explicit Theme, else the named one, else the default palette.
func (c Config) ResolveTheme() (Theme, error) {
	if c.Theme != nil {
		return *c.Theme, nil
	}
	var f config.File
	f.UI.Themes = c.Themes
	return ui.SelectTheme(f, c.ThemeName)
}

// NewFetcher returns the configured Fetcher, or an HTTP client for Endpoint.
func (c Config) NewFetcher() (Fetcher, error) {
	if c.Fetcher != nil {
		return c.Fetcher, nil
	}
	opts := []suggest.ClientOption{suggest.WithTimeout(c.Timeout)}
	if ua := strings.TrimSpace(c.UserAgent); ua != "" {
		opts = append(opts, suggest.WithUserAgent(ua))
	}
	return suggest.NewClient(c.Endpoint, c.AutocompletePath, opts...)
}

// options assembles the ui options for this config.
func (c Config) options() (ui.Options, error) {
	fetcher, err := c.NewFetcher()
	if err != nil {
		return ui.Options{}, err
	}
	form, err := search.NewForm(c.Endpoint, c.SearchPath)
	if err != nil {
		return ui.Options{}, err
	}
	theme, err := c.ResolveTheme()
	if err != nil {
		return ui.Options{}, err
	}
	keys, err := ui.KeyMapFor(c.KeyMode)
	if err != nil {
		return ui.Options{}, err
	}
	return ui.Options{
		Fetcher:            fetcher,
		Form:               form,
		Query:              c.Query,
		Prompt:             c.Prompt,
		Placeholder:        c.Placeholder,
		Theme:              &theme,
		Keys:               &keys,
		NoColor:            c.NoColor,
		DisableSuggestions: c.AllowSuggestions != nil && !*c.AllowSuggestions,
		SequenceGuard:      c.SequenceGuard,
		Debounce:           c.Debounce,
		MaxVisible:         c.MaxVisible,
	}, nil
}
