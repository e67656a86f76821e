package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oakwood-commons/searchbar/pkg/settings"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg, err := Default()
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "searchbar", cfg.App.About.Name)
	assert.Equal(t, settings.VersionInformation.BuildVersion, cfg.App.About.Version)
	assert.Equal(t, "http://localhost:5000", cfg.Endpoint.BaseURL)
	assert.Equal(t, "/autocomplete", cfg.Endpoint.AutocompletePath)
	assert.Equal(t, 5*time.Second, cfg.Endpoint.Timeout.Duration)
	assert.True(t, cfg.AllowSuggestions())
	assert.False(t, cfg.SequenceGuard())
	assert.Zero(t, cfg.Debounce())
	assert.Equal(t, 8, cfg.UI.Dropdown.MaxVisible)
	assert.Equal(t, []string{"cool", "dark", "warm"}, cfg.ThemeNames())
	assert.NotEmpty(t, DefaultYAML())
}

func TestLoadUserOverrides(t *testing.T) {
	path := writeConfig(t, `endpoint:
  base_url: https://search.example.com
ui:
  features:
    sequence_guard: true
    debounce: 150ms
  theme:
    default: midnight
  themes:
    midnight:
      border: "#00ff00"
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "https://search.example.com", cfg.Endpoint.BaseURL)
	assert.Equal(t, "/search", cfg.Endpoint.SearchPath, "untouched keys keep defaults")
	assert.True(t, cfg.SequenceGuard())
	assert.True(t, cfg.AllowSuggestions())
	assert.Equal(t, 150*time.Millisecond, cfg.Debounce())
	assert.Equal(t, "midnight", cfg.UI.Theme.Default)
	assert.Contains(t, cfg.UI.Themes, "dark", "presets survive a user theme")
	assert.Equal(t, "#00ff00", cfg.UI.Themes["midnight"].Border)
}

func TestLoadFeatureCanBeDisabled(t *testing.T) {
	path := writeConfig(t, "ui:\n  features:\n    allow_suggestions: false\n")
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.False(t, cfg.AllowSuggestions())
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "ui: [unclosed"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "endpoint:\n  timeout: soon\n"))
	assert.Error(t, err)
}

func TestValidateCollectsAllProblems(t *testing.T) {
	cfg, err := Default()
	require.NoError(t, err)
	cfg.Endpoint.BaseURL = "ftp://example.com"
	cfg.Endpoint.Timeout = Duration{-time.Second}
	cfg.UI.Dropdown.MaxVisible = 0
	cfg.UI.Keymap = "vim"
	cfg.UI.Theme.Default = "neon"

	err = cfg.Validate()
	require.Error(t, err)
	var merr *multierror.Error
	require.ErrorAs(t, err, &merr)
	assert.Len(t, merr.Errors, 5)
	assert.Contains(t, err.Error(), "ui.keymap")
	assert.Contains(t, err.Error(), "neon")
}

func TestResolvePath(t *testing.T) {
	assert.Equal(t, "/explicit.yaml", ResolvePath("/explicit.yaml"))

	t.Setenv(EnvConfigPath, "/from/env.yaml")
	assert.Equal(t, "/from/env.yaml", ResolvePath(""))

	t.Setenv(EnvConfigPath, "")
	xdg := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", xdg)
	assert.Equal(t, "", ResolvePath(""))

	dir := filepath.Join(xdg, "searchbar")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("ui: {}\n"), 0o600))
	assert.Equal(t, path, ResolvePath(""))
}

func TestProcessTemplateString(t *testing.T) {
	assert.Equal(t, "plain", processTemplateString("plain", nil))
	assert.Equal(t, "v1", processTemplateString("{{ .Version }}", map[string]string{"Version": "v1"}))
	assert.Equal(t, "{{ broken", processTemplateString("{{ broken", nil))
}

func TestKeymapNamesAreCaseInsensitive(t *testing.T) {
	for _, name := range []string{"", "default", "Emacs", " EMACS "} {
		assert.True(t, ValidKeymap(name), name)
	}
	assert.False(t, ValidKeymap("vim"))

	cfg, err := Default()
	require.NoError(t, err)
	cfg.UI.Keymap = "Emacs"
	assert.NoError(t, cfg.Validate())
}
