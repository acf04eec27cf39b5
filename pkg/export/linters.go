package export

import (
	"bytes"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/yaklabco/mdlstyle/pkg/catalog"
	"github.com/yaklabco/mdlstyle/pkg/style"
)

// Target identifies a linter configuration format.
type Target string

const (
	TargetMarkdownlintJSON Target = "markdownlint-json"
	TargetMarkdownlintYAML Target = "markdownlint-yaml"
	TargetGomdlint         Target = "gomdlint"
)

// Targets lists every supported target.
func Targets() []Target {
	return []Target{TargetMarkdownlintJSON, TargetMarkdownlintYAML, TargetGomdlint}
}

// ParseTarget parses a target name.
func ParseTarget(name string) (Target, error) {
	target := Target(strings.ToLower(strings.TrimSpace(name)))
	if slices.Contains(Targets(), target) {
		return target, nil
	}
	return "", fmt.Errorf("unknown target %q (valid: markdownlint-json, markdownlint-yaml, gomdlint)", name)
}

// DefaultFilename returns the conventional file name for a target.
func (t Target) DefaultFilename() string {
	switch t {
	case TargetMarkdownlintJSON:
		return ".markdownlint.json"
	case TargetMarkdownlintYAML:
		return ".markdownlint.yaml"
	case TargetGomdlint:
		return ".gomdlint.yml"
	default:
		return ""
	}
}

// Render produces the linter configuration for target.
func Render(profile *style.Profile, registry *catalog.Registry, target Target) ([]byte, error) {
	switch target {
	case TargetMarkdownlintJSON:
		return marshalJSON(Markdownlint(profile, registry))
	case TargetMarkdownlintYAML:
		return marshalYAML(Markdownlint(profile, registry))
	case TargetGomdlint:
		body, err := marshalYAML(Gomdlint(profile, registry))
		if err != nil {
			return nil, err
		}
		var buf bytes.Buffer
		buf.WriteString("# gomdlint configuration\n")
		if profile.Path != "" {
			buf.WriteString("# Generated from: " + profile.Path + "\n")
		}
		buf.WriteByte('\n')
		buf.Write(body)
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("unsupported target %q", target)
	}
}

// Markdownlint builds a markdownlint configuration object. "default" carries
// the `all` baseline; rules deviating from it are listed as true, false or an
// options object.
func Markdownlint(profile *style.Profile, registry *catalog.Registry) map[string]any {
	out := map[string]any{
		"default": profile.Rules.AllEnabled(),
	}

	for _, id := range mentionedRules(profile) {
		if !profile.Rules.Enabled(id) {
			if profile.Rules.AllEnabled() {
				out[id] = false
			}
			continue
		}

		options := profile.Parameters.For(id)
		if len(options) == 0 {
			if !profile.Rules.AllEnabled() {
				out[id] = true
			}
			continue
		}

		rule, _ := registry.Get(id)
		converted := make(map[string]any, len(options))
		for name, value := range options {
			exportName := name
			if param, ok := rule.Param(name); ok {
				exportName = param.ExportName()
			}
			converted[exportName] = style.Plain(value)
		}
		out[id] = converted
	}
	return out
}

// GomdlintRule is one entry of a gomdlint `rules` map.
type GomdlintRule struct {
	Enabled *bool          `yaml:"enabled"`
	Options map[string]any `yaml:"options,omitempty"`
}

// GomdlintConfig is the subset of .gomdlint.yml a profile can express.
type GomdlintConfig struct {
	Rules map[string]GomdlintRule `yaml:"rules"`
}

// Gomdlint builds a gomdlint configuration. gomdlint enables rules by
// default, so every catalog rule gets an explicit enabled flag.
func Gomdlint(profile *style.Profile, registry *catalog.Registry) *GomdlintConfig {
	cfg := &GomdlintConfig{Rules: make(map[string]GomdlintRule)}

	ids := registry.IDs()
	for _, id := range mentionedRules(profile) {
		if !slices.Contains(ids, id) {
			ids = append(ids, id)
		}
	}

	for _, id := range ids {
		enabled := profile.Rules.Enabled(id)
		entry := GomdlintRule{Enabled: &enabled}
		if enabled {
			if options := profile.Parameters.For(id); len(options) > 0 {
				entry.Options = make(map[string]any, len(options))
				for name, value := range options {
					entry.Options[name] = style.Plain(value)
				}
			}
		}
		cfg.Rules[id] = entry
	}
	return cfg
}

// mentionedRules returns rules with explicit state or parameters, sorted.
func mentionedRules(profile *style.Profile) []string {
	seen := profile.Rules.States()
	for _, id := range profile.Parameters.Rules() {
		if _, ok := seen[id]; !ok {
			seen[id] = true
		}
	}
	return slices.Sorted(maps.Keys(seen))
}
