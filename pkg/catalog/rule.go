// Package catalog describes the rules a consuming linter knows about: their
// identifiers, aliases, tags and parameters. A Registry satisfies the
// capability interfaces the style loader looks for.
package catalog

import "slices"

// Kind is the expected type of a rule parameter.
type Kind string

const (
	KindInt    Kind = "integer"
	KindBool   Kind = "boolean"
	KindString Kind = "string"
	KindList   Kind = "list"

	// KindStyle accepts a symbol or a string, e.g. `style: :atx` or `style: '---'`.
	KindStyle Kind = "style"
)

// Param describes a single rule parameter.
type Param struct {
	// Name is the parameter name as written in style files.
	Name string

	// Kind is the expected value type.
	Kind Kind

	// Default is the value the linter uses when the parameter is not set.
	Default any

	// Choices restricts KindStyle values. Empty means any value.
	Choices []string

	// MarkdownlintName is the equivalent markdownlint option when it differs.
	MarkdownlintName string
}

// ExportName returns the markdownlint option name for the parameter.
func (p Param) ExportName() string {
	if p.MarkdownlintName != "" {
		return p.MarkdownlintName
	}
	return p.Name
}

// Rule describes one lint rule.
type Rule struct {
	// ID is the canonical identifier, e.g. "MD013".
	ID string

	// Alias is the primary human-readable name, e.g. "line-length".
	Alias string

	// Description summarizes what the rule checks.
	Description string

	// Tags group related rules for the tag and exclude_tag directives.
	Tags []string

	// Params lists the configurable parameters.
	Params []Param
}

// Param looks up a parameter by name.
func (r Rule) Param(name string) (Param, bool) {
	idx := slices.IndexFunc(r.Params, func(p Param) bool { return p.Name == name })
	if idx < 0 {
		return Param{}, false
	}
	return r.Params[idx], true
}

// HasTag reports whether the rule carries tag.
func (r Rule) HasTag(tag string) bool {
	return slices.Contains(r.Tags, tag)
}
