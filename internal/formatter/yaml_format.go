package formatter

import (
	"bytes"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// YAMLOptions control YAML rendering.
type YAMLOptions struct {
	// Indent defaults to 2.
	Indent int
	// HeadComment is written above the document, one "# " line per line.
	HeadComment string
}

// EncodeYAML renders v as a YAML document. Multi-line strings come out as
// "|" literal blocks, which is yaml.v3's own choice for them.
func EncodeYAML(v interface{}, opts YAMLOptions) (string, error) {
	value := &yaml.Node{}
	if err := value.Encode(v); err != nil {
		return "", fmt.Errorf("encode yaml: %w", err)
	}
	doc := &yaml.Node{Kind: yaml.DocumentNode, Content: []*yaml.Node{value}}
	if c := strings.TrimSpace(opts.HeadComment); c != "" {
		doc.HeadComment = c
	}

	indent := opts.Indent
	if indent <= 0 {
		indent = 2
	}
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(indent)
	if err := enc.Encode(doc); err != nil {
		return "", fmt.Errorf("encode yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return "", fmt.Errorf("encode yaml: %w", err)
	}
	return buf.String(), nil
}
