package ui

import (
	"fmt"
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/oakwood-commons/searchbar/internal/config"
	"github.com/oakwood-commons/searchbar/internal/formatter"
)

// Theme defines colors used by the search bar.
type Theme struct {
	InputFG   color.Color // Query text
	Border    color.Color // Input and dropdown border
	PrefixFG  color.Color // Matched prefix (bold)
	RestFG    color.Color // Unmatched remainder
	ActiveFG  color.Color // Focused row foreground
	ActiveBG  color.Color // Focused row background
	SpinnerFG color.Color // Fetch spinner
	StatusFG  color.Color // Footer hints
}

// DefaultTheme is the palette used when no theme is configured.
func DefaultTheme() Theme {
	return Theme{
		InputFG:   lipgloss.Color("252"),
		Border:    lipgloss.Color("240"),
		PrefixFG:  lipgloss.Color("255"),
		RestFG:    lipgloss.Color("246"),
		ActiveFG:  lipgloss.Color("255"),
		ActiveBG:  lipgloss.Color("24"),
		SpinnerFG: lipgloss.Color("81"),
		StatusFG:  lipgloss.Color("244"),
	}
}

// ThemeFromConfig builds a Theme from a ThemeConfig, falling back to defaults when fields are empty.
func ThemeFromConfig(cfg config.ThemeConfig) Theme {
	th := DefaultTheme()
	set := func(val string, dst *color.Color) {
		if v := strings.TrimSpace(val); v != "" {
			*dst = lipgloss.Color(v)
		}
	}
	set(cfg.InputFG, &th.InputFG)
	set(cfg.Border, &th.Border)
	set(cfg.PrefixFG, &th.PrefixFG)
	set(cfg.RestFG, &th.RestFG)
	set(cfg.ActiveFG, &th.ActiveFG)
	set(cfg.ActiveBG, &th.ActiveBG)
	set(cfg.SpinnerFG, &th.SpinnerFG)
	set(cfg.StatusFG, &th.StatusFG)
	return th
}

type themeSelectionError struct {
	name      string
	available []string
}

func (e *themeSelectionError) Error() string {
	return fmt.Sprintf("unknown theme %q (available: %s)", e.name, strings.Join(e.available, ", "))
}

// SelectTheme picks name (or the configured default when name is empty)
// from cfg's themes.
func SelectTheme(cfg config.File, name string) (Theme, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = strings.TrimSpace(cfg.UI.Theme.Default)
	}
	if name == "" {
		return DefaultTheme(), nil
	}
	tc, ok := cfg.UI.Themes[name]
	if !ok {
		return Theme{}, &themeSelectionError{name: name, available: cfg.ThemeNames()}
	}
	return ThemeFromConfig(tc), nil
}

// ApplyToFormatter shares the palette with the non-interactive output.
func (t Theme) ApplyToFormatter() {
	formatter.SetColors(formatter.Colors{
		Prefix: t.PrefixFG,
		Rest:   t.RestFG,
		Header: t.SpinnerFG,
		Border: t.Border,
	})
}

type styles struct {
	input   lipgloss.Style
	border  lipgloss.Style
	prefix  lipgloss.Style
	rest    lipgloss.Style
	active  lipgloss.Style
	spinner lipgloss.Style
	status  lipgloss.Style
}

func (t Theme) styles(noColor bool) styles {
	if noColor {
		plain := lipgloss.NewStyle()
		return styles{
			input:   plain,
			border:  plain,
			prefix:  plain.Bold(true),
			rest:    plain,
			active:  plain.Reverse(true),
			spinner: plain,
			status:  plain,
		}
	}
	return styles{
		input:   lipgloss.NewStyle().Foreground(t.InputFG),
		border:  lipgloss.NewStyle().Foreground(t.Border),
		prefix:  lipgloss.NewStyle().Bold(true).Foreground(t.PrefixFG),
		rest:    lipgloss.NewStyle().Foreground(t.RestFG),
		active:  lipgloss.NewStyle().Foreground(t.ActiveFG).Background(t.ActiveBG),
		spinner: lipgloss.NewStyle().Foreground(t.SpinnerFG),
		status:  lipgloss.NewStyle().Foreground(t.StatusFG),
	}
}
