package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Format identifies a snapshot serialization.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// ParseFormat parses a format name (case-insensitive, "yml" accepted).
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "toml":
		return FormatTOML, nil
	default:
		return "", fmt.Errorf("unknown format %q (valid: json, yaml, toml)", name)
	}
}

// Marshal serializes a snapshot.
func (s *Snapshot) Marshal(format Format) ([]byte, error) {
	switch format {
	case FormatJSON:
		return marshalJSON(s)
	case FormatYAML:
		return marshalYAML(s)
	case FormatTOML:
		data, err := toml.Marshal(s.withoutNil())
		if err != nil {
			return nil, fmt.Errorf("encode toml: %w", err)
		}
		return data, nil
	default:
		return nil, fmt.Errorf("unsupported format %q", format)
	}
}

// withoutNil drops nil parameters, which TOML cannot represent.
func (s *Snapshot) withoutNil() *Snapshot {
	out := *s
	out.Rules = make([]RuleState, len(s.Rules))
	for i, rule := range s.Rules {
		out.Rules[i] = rule
		if rule.Params == nil {
			continue
		}
		params := make(map[string]any, len(rule.Params))
		for name, value := range rule.Params {
			if value != nil {
				params[name] = value
			}
		}
		out.Rules[i].Params = params
	}
	return &out
}

func marshalJSON(value any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	if err := enc.Encode(value); err != nil {
		return nil, fmt.Errorf("encode json: %w", err)
	}
	return buf.Bytes(), nil
}

func marshalYAML(value any) ([]byte, error) {
	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(value); err != nil {
		return nil, fmt.Errorf("encode yaml: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return nil, fmt.Errorf("close encoder: %w", err)
	}
	return buf.Bytes(), nil
}
