// Package config defines the configuration types for mdlstyle.
// These types are pure data structures with no dependency on the loader.
package config

// UnknownRulesPolicy selects how rule identifiers missing from the catalog
// are treated: "defer", "warn" or "fail".
type UnknownRulesPolicy string

const (
	UnknownRulesDefer UnknownRulesPolicy = "defer"
	UnknownRulesWarn  UnknownRulesPolicy = "warn"
	UnknownRulesFail  UnknownRulesPolicy = "fail"
)

// OutputFormat specifies how `show` renders a profile.
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
	FormatYAML OutputFormat = "yaml"
	FormatTOML OutputFormat = "toml"
)

// ExportConfig holds defaults for the export command.
type ExportConfig struct {
	// Target is the linter config format, e.g. "markdownlint-json".
	Target string `mapstructure:"target" yaml:"target,omitempty"`

	// Output is the destination path. Empty means the target's conventional name.
	Output string `mapstructure:"output" yaml:"output,omitempty"`
}

// Config is the root configuration structure for mdlstyle.
type Config struct {
	// Style is the path to the mdl style file.
	Style string `mapstructure:"style" yaml:"style,omitempty"`

	// UnknownRules is the unknown rule policy.
	UnknownRules UnknownRulesPolicy `mapstructure:"unknown_rules" yaml:"unknown_rules,omitempty"`

	// Export configures the export command.
	Export ExportConfig `mapstructure:"export" yaml:"export,omitempty"`

	// CLI-level options (not persisted to config files).

	// Format specifies the output format.
	Format OutputFormat `mapstructure:"-" yaml:"-"`

	// Strict makes warnings fail the check command.
	Strict bool `mapstructure:"-" yaml:"-"`
}

// NewConfig returns a Config with sensible defaults.
func NewConfig() *Config {
	return &Config{
		UnknownRules: UnknownRulesWarn,
		Export: ExportConfig{
			Target: "markdownlint-json",
		},
		Format: FormatText,
	}
}
