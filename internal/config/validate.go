package config

import (
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/hashicorp/go-multierror"
)

// Keymaps lists the accepted ui.keymap values, in normalized form.
var Keymaps = []string{"default", "emacs"}

// NormalizeKeymap trims and lowercases a keymap name.
func NormalizeKeymap(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// ValidKeymap reports whether name, once normalized, is empty or one of Keymaps.
func ValidKeymap(name string) bool {
	name = NormalizeKeymap(name)
	if name == "" {
		return true
	}
	for _, k := range Keymaps {
		if k == name {
			return true
		}
	}
	return false
}

// Validate reports every problem in the config at once.
func (f File) Validate() error {
	var result *multierror.Error

	if u, err := url.Parse(f.Endpoint.BaseURL); err != nil {
		result = multierror.Append(result, fmt.Errorf("endpoint.base_url: %w", err))
	} else if u.Scheme != "http" && u.Scheme != "https" {
		result = multierror.Append(result, fmt.Errorf("endpoint.base_url: scheme must be http or https, got %q", u.Scheme))
	} else if u.Host == "" {
		result = multierror.Append(result, fmt.Errorf("endpoint.base_url: missing host"))
	}
	if f.Endpoint.Timeout.Duration < 0 {
		result = multierror.Append(result, fmt.Errorf("endpoint.timeout: must not be negative"))
	}
	if d := f.UI.Features.Debounce; d != nil && d.Duration < 0 {
		result = multierror.Append(result, fmt.Errorf("ui.features.debounce: must not be negative"))
	}
	if f.UI.Dropdown.MaxVisible < 1 {
		result = multierror.Append(result, fmt.Errorf("ui.dropdown.max_visible: must be at least 1, got %d", f.UI.Dropdown.MaxVisible))
	}
	if !ValidKeymap(f.UI.Keymap) {
		result = multierror.Append(result, fmt.Errorf("ui.keymap: unknown keymap %q (expected %s)", f.UI.Keymap, strings.Join(Keymaps, ", ")))
	}
	if name := f.UI.Theme.Default; name != "" {
		if _, ok := f.UI.Themes[name]; !ok {
			result = multierror.Append(result, fmt.Errorf("ui.theme.default: unknown theme %q (available: %s)", name, strings.Join(f.ThemeNames(), ", ")))
		}
	}

	return result.ErrorOrNil()
}

// ThemeNames returns the configured theme names, sorted.
func (f File) ThemeNames() []string {
	names := make([]string, 0, len(f.UI.Themes))
	for name := range f.UI.Themes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
