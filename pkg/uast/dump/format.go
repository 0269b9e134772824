package dump

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format is an output encoding of a Document.
type Format string

// Supported formats.
const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTree Format = "tree"
)

// ErrUnknownFormat is returned for an unsupported output format.
var ErrUnknownFormat = errors.New("dump: unknown format")

// ParseFormat validates a format name.
func ParseFormat(name string) (Format, error) {
	switch f := Format(strings.ToLower(name)); f {
	case FormatJSON, FormatYAML, FormatTree:
		return f, nil
	}

	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, name)
}

// Encode writes doc to w in the given format.
func Encode(w io.Writer, doc *Document, format Format) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")

		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("encoding json: %w", err)
		}
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)

		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("encoding yaml: %w", err)
		}

		if err := enc.Close(); err != nil {
			return fmt.Errorf("encoding yaml: %w", err)
		}
	case FormatTree:
		if _, err := io.WriteString(w, Text(doc.Root)); err != nil {
			return fmt.Errorf("writing tree: %w", err)
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}

	return nil
}

// Decode reads a JSON document.
func Decode(r io.Reader) (*Document, error) {
	var doc Document

	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decoding json: %w", err)
	}

	return &doc, nil
}

// Text renders the snapshot as an indented outline, one node per line.
func Text(n *Node) string {
	var sb strings.Builder

	writeText(&sb, n, 0)

	return sb.String()
}

func writeText(sb *strings.Builder, n *Node, depth int) {
	if n == nil {
		return
	}

	sb.WriteString(strings.Repeat("  ", depth))
	sb.WriteString(n.Kind)

	if n.Name != "" {
		fmt.Fprintf(sb, " name=%q", n.Name)
	}

	if n.Value != "" {
		fmt.Fprintf(sb, " value=%q", n.Value)
	}

	if n.Native != "" {
		fmt.Fprintf(sb, " [%s]", n.Native)
	}

	if n.Span != nil && n.Span.Line > 0 {
		fmt.Fprintf(sb, " @%d:%d", n.Span.Line, n.Span.Column)
	}

	sb.WriteByte('\n')

	for _, child := range n.Children {
		writeText(sb, child, depth+1)
	}
}
