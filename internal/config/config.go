// Package config loads the searchbar configuration: an embedded default YAML
// document with an optional user file decoded on top of it.
package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/oakwood-commons/searchbar/pkg/settings"
)

//go:embed default_config.yaml
var embeddedDefaultConfig []byte

// EnvConfigPath names the environment variable that points at a config file.
const EnvConfigPath = "SEARCHBAR_CONFIG"

// File is the full configuration document.
type File struct {
	App      AppConfig      `yaml:"app" json:"app" toml:"app"`
	Endpoint EndpointConfig `yaml:"endpoint" json:"endpoint" toml:"endpoint"`
	UI       UIConfig       `yaml:"ui" json:"ui" toml:"ui"`
}

type AppConfig struct {
	About About `yaml:"about" json:"about" toml:"about"`
	Debug Debug `yaml:"debug" json:"debug" toml:"debug"`
}

type About struct {
	Name        string `yaml:"name" json:"name" toml:"name"`
	Version     string `yaml:"version" json:"version" toml:"version"`
	Description string `yaml:"description" json:"description" toml:"description"`
}

type Debug struct {
	LogFile string `yaml:"log_file" json:"log_file" toml:"log_file"`
}

// EndpointConfig locates the search service.
type EndpointConfig struct {
	BaseURL          string   `yaml:"base_url" json:"base_url" toml:"base_url"`
	AutocompletePath string   `yaml:"autocomplete_path" json:"autocomplete_path" toml:"autocomplete_path"`
	SearchPath       string   `yaml:"search_path" json:"search_path" toml:"search_path"`
	Timeout          Duration `yaml:"timeout" json:"timeout" toml:"timeout"`
	UserAgent        string   `yaml:"user_agent" json:"user_agent" toml:"user_agent"`
}

type UIConfig struct {
	Prompt      string                 `yaml:"prompt" json:"prompt" toml:"prompt"`
	Placeholder string                 `yaml:"placeholder" json:"placeholder" toml:"placeholder"`
	Keymap      string                 `yaml:"keymap" json:"keymap" toml:"keymap"`
	Features    Features               `yaml:"features" json:"features" toml:"features"`
	Dropdown    Dropdown               `yaml:"dropdown" json:"dropdown" toml:"dropdown"`
	Theme       ThemeSelect            `yaml:"theme" json:"theme" toml:"theme"`
	Themes      map[string]ThemeConfig `yaml:"themes" json:"themes" toml:"themes"`
}

// Features uses pointers so a user file can switch a default off.
type Features struct {
	AllowSuggestions *bool     `yaml:"allow_suggestions" json:"allow_suggestions" toml:"allow_suggestions"`
	SequenceGuard    *bool     `yaml:"sequence_guard" json:"sequence_guard" toml:"sequence_guard"`
	Debounce         *Duration `yaml:"debounce" json:"debounce" toml:"debounce"`
}

type Dropdown struct {
	MaxVisible int `yaml:"max_visible" json:"max_visible" toml:"max_visible"`
}

type ThemeSelect struct {
	Default string `yaml:"default" json:"default" toml:"default"`
}

// ThemeConfig holds ANSI-256 indexes or hex colors.
type ThemeConfig struct {
	InputFG   string `yaml:"input_fg" json:"input_fg" toml:"input_fg"`
	Border    string `yaml:"border" json:"border" toml:"border"`
	PrefixFG  string `yaml:"prefix_fg" json:"prefix_fg" toml:"prefix_fg"`
	RestFG    string `yaml:"rest_fg" json:"rest_fg" toml:"rest_fg"`
	ActiveFG  string `yaml:"active_fg" json:"active_fg" toml:"active_fg"`
	ActiveBG  string `yaml:"active_bg" json:"active_bg" toml:"active_bg"`
	SpinnerFG string `yaml:"spinner_fg" json:"spinner_fg" toml:"spinner_fg"`
	StatusFG  string `yaml:"status_fg" json:"status_fg" toml:"status_fg"`
}

// Duration decodes "150ms"-style strings.
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return fmt.Errorf("duration: %w", err)
	}
	s = strings.TrimSpace(s)
	if s == "" {
		d.Duration = 0
		return nil
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("duration %q: %w", s, err)
	}
	d.Duration = parsed
	return nil
}

func (d Duration) MarshalYAML() (interface{}, error) {
	return d.String(), nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// DefaultYAML returns a copy of the embedded default config.
func DefaultYAML() []byte {
	return append([]byte(nil), embeddedDefaultConfig...)
}

// Default parses the embedded default config.
func Default() (File, error) {
	return Load("")
}

// Load decodes the embedded defaults and then, when path is set, the user
// file on top. Templates in about fields are expanded afterwards.
func Load(path string) (File, error) {
	var cfg File
	if err := yaml.Unmarshal(embeddedDefaultConfig, &cfg); err != nil {
		return cfg, fmt.Errorf("decode default config: %w", err)
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("decode config %s: %w", path, err)
		}
	}
	cfg.App.About = expandAbout(cfg.App.About)
	return cfg, nil
}

// ResolvePath picks the config file: explicit flag, then $SEARCHBAR_CONFIG,
// then the XDG location. It returns "" when none exists.
func ResolvePath(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if env := strings.TrimSpace(os.Getenv(EnvConfigPath)); env != "" {
		return env
	}
	candidate := ""
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		candidate = filepath.Join(xdg, settings.CliBinaryName, "config.yaml")
	} else if home, err := os.UserHomeDir(); err == nil {
		candidate = filepath.Join(home, ".config", settings.CliBinaryName, "config.yaml")
	}
	if candidate != "" {
		if st, err := os.Stat(candidate); err == nil && !st.IsDir() {
			return candidate
		}
	}
	return ""
}

func expandAbout(a About) About {
	data := map[string]string{
		"Version": settings.VersionInformation.BuildVersion,
		"Commit":  settings.VersionInformation.Commit,
	}
	a.Name = processTemplateString(a.Name, data)
	a.Version = processTemplateString(a.Version, data)
	a.Description = processTemplateString(a.Description, data)
	return a
}

func processTemplateString(s string, data interface{}) string {
	if !strings.Contains(s, "{{") {
		return s
	}
	tmpl, err := template.New("cfg").Option("missingkey=zero").Parse(s)
	if err != nil {
		return s
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return s
	}
	return buf.String()
}

// AllowSuggestions reports the feature flag, defaulting to true.
func (f File) AllowSuggestions() bool {
	return f.UI.Features.AllowSuggestions == nil || *f.UI.Features.AllowSuggestions
}

// SequenceGuard reports the feature flag, defaulting to false.
func (f File) SequenceGuard() bool {
	return f.UI.Features.SequenceGuard != nil && *f.UI.Features.SequenceGuard
}

// Debounce returns the configured keystroke debounce.
func (f File) Debounce() time.Duration {
	if f.UI.Features.Debounce == nil {
		return 0
	}
	return f.UI.Features.Debounce.Duration
}
