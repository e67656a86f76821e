// Package formatter prints rendered suggestions for the non-interactive CLI.
package formatter

import (
	"bytes"
	"encoding/json"
	"fmt"
	"image/color"
	"os"
	"strings"

	"charm.land/lipgloss/v2"
	toml "github.com/pelletier/go-toml/v2"
	"golang.org/x/term"

	"github.com/oakwood-commons/searchbar/internal/autocomplete"
)

// Output formats accepted by Format.
const (
	OutputList  = "list"
	OutputRaw   = "raw"
	OutputJSON  = "json"
	OutputYAML  = "yaml"
	OutputTOML  = "toml"
	OutputTable = "table"
)

// Outputs lists every supported format, in help order.
var Outputs = []string{OutputList, OutputRaw, OutputJSON, OutputYAML, OutputTOML, OutputTable}

var (
	defaultPrefixColor = lipgloss.Color("255")
	defaultRestColor   = lipgloss.Color("246")
	defaultHeaderColor = lipgloss.Color("81")
	defaultBorderColor = lipgloss.Color("240")

	prefixStyle lipgloss.Style
	restStyle   lipgloss.Style
	headerStyle lipgloss.Style
	borderStyle lipgloss.Style
)

// Colors controls rendered colors. Nil fields fall back to defaults.
type Colors struct {
	Prefix color.Color
	Rest   color.Color
	Header color.Color
	Border color.Color
}

// SetColors overrides the package styles.
func SetColors(c Colors) {
	pick := func(c, def color.Color) color.Color {
		if c == nil {
			return def
		}
		return c
	}
	prefixStyle = lipgloss.NewStyle().Bold(true).Foreground(pick(c.Prefix, defaultPrefixColor))
	restStyle = lipgloss.NewStyle().Foreground(pick(c.Rest, defaultRestColor))
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(pick(c.Header, defaultHeaderColor))
	borderStyle = lipgloss.NewStyle().Foreground(pick(c.Border, defaultBorderColor))
}

//nolint:gochecknoinits // initialize default styles for package consumers
func init() {
	SetColors(Colors{})
}

// Result is what the suggest command prints.
type Result struct {
	Query string
	Items []autocomplete.Item
}

// document is the structured (json/yaml/toml) shape of a Result.
type document struct {
	Query       string   `json:"query" yaml:"query" toml:"query"`
	Suggestions []string `json:"suggestions" yaml:"suggestions" toml:"suggestions"`
}

func (r Result) document() document {
	d := document{Query: r.Query, Suggestions: make([]string, 0, len(r.Items))}
	for _, it := range r.Items {
		d.Suggestions = append(d.Suggestions, it.Value)
	}
	return d
}

// Options control rendering.
type Options struct {
	Output  string
	NoColor bool
	// Width bounds list and table rows; 0 detects the terminal width.
	Width int
}

// ValidateOutput rejects unknown formats.
func ValidateOutput(output string) error {
	if output == "" {
		return nil
	}
	for _, o := range Outputs {
		if o == output {
			return nil
		}
	}
	return fmt.Errorf("invalid output format %q (expected one of: %s)", output, strings.Join(Outputs, ", "))
}

// Format renders r in the requested output format.
func Format(r Result, opts Options) (string, error) {
	if err := ValidateOutput(opts.Output); err != nil {
		return "", err
	}
	width := opts.Width
	if width <= 0 {
		width = getTerminalWidth()
	}

	switch opts.Output {
	case OutputRaw:
		return formatRaw(r), nil
	case OutputJSON:
		b, err := json.MarshalIndent(r.document(), "", "  ")
		if err != nil {
			return "", fmt.Errorf("encode json: %w", err)
		}
		return string(b) + "\n", nil
	case OutputYAML:
		return EncodeYAML(r.document(), YAMLOptions{})
	case OutputTOML:
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(r.document()); err != nil {
			return "", fmt.Errorf("encode toml: %w", err)
		}
		return buf.String(), nil
	case OutputTable:
		return FormatTable(r, opts.NoColor, width), nil
	default:
		return FormatList(r, opts.NoColor, width), nil
	}
}

func formatRaw(r Result) string {
	var b strings.Builder
	for _, it := range r.Items {
		b.WriteString(it.Value)
		b.WriteString("\n")
	}
	return b.String()
}

// getTerminalWidth returns the terminal width, or a default if detection fails
func getTerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 120
	}
	return width
}
