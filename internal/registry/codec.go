package registry

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"evalmodels/pkg/types"
)

// Format is a serialization of a models document.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
)

// Extensions lists every file extension LoadDir picks up.
var Extensions = []string{".yaml", ".yml", ".json", ".toml"}

// FormatFromPath picks the format from a file extension.
// Supports: .yaml/.yml, .json, .toml
func FormatFromPath(path string) (Format, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return "", fmt.Errorf("unsupported config extension: %s", ext)
	}
}

// ParseFormat accepts a format name as given on the command line.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatYAML, FormatJSON, FormatTOML:
		return f, nil
	case "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unsupported format: %q", s)
	}
}

// Decode parses a models document. With strict set, unknown keys are errors.
func Decode(format Format, b []byte, strict bool) (types.ModelsFile, error) {
	var f types.ModelsFile
	switch format {
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(b))
		dec.KnownFields(strict)
		if err := dec.Decode(&f); err != nil {
			return f, fmt.Errorf("decode yaml: %w", err)
		}
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(b))
		if strict {
			dec.DisallowUnknownFields()
		}
		if err := dec.Decode(&f); err != nil {
			return f, fmt.Errorf("decode json: %w", err)
		}
		if _, err := dec.Token(); !errors.Is(err, io.EOF) {
			return f, fmt.Errorf("decode json: trailing data after document")
		}
	case FormatTOML:
		dec := toml.NewDecoder(bytes.NewReader(b))
		if strict {
			dec.DisallowUnknownFields()
		}
		if err := dec.Decode(&f); err != nil {
			return f, fmt.Errorf("decode toml: %w", err)
		}
	default:
		return f, fmt.Errorf("unsupported format: %q", format)
	}
	return f, nil
}

// Encode serializes a models document.
func Encode(format Format, f types.ModelsFile) ([]byte, error) {
	switch format {
	case FormatYAML:
		var doc yaml.Node
		if err := doc.Encode(f); err != nil {
			return nil, fmt.Errorf("encode yaml: %w", err)
		}
		quoteMultiline(&doc)
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(&doc); err != nil {
			return nil, fmt.Errorf("encode yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("encode yaml: %w", err)
		}
		return buf.Bytes(), nil
	case FormatJSON:
		b, err := json.MarshalIndent(f, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("encode json: %w", err)
		}
		return append(b, '\n'), nil
	case FormatTOML:
		b, err := toml.Marshal(f)
		if err != nil {
			return nil, fmt.Errorf("encode toml: %w", err)
		}
		return b, nil
	default:
		return nil, fmt.Errorf("unsupported format: %q", format)
	}
}

// quoteMultiline forces double quotes on strings containing a newline.
// yaml.v3 emits "\n" alone as a `|2+` block scalar that reads back empty.
func quoteMultiline(n *yaml.Node) {
	if n.Kind == yaml.ScalarNode && n.ShortTag() == "!!str" && strings.Contains(n.Value, "\n") {
		n.Style = yaml.DoubleQuotedStyle
	}
	for _, c := range n.Content {
		quoteMultiline(c)
	}
}
