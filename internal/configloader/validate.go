package configloader

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/yaklabco/mdlstyle/pkg/config"
	"github.com/yaklabco/mdlstyle/pkg/export"
)

// ValidationError is one problem with a configuration value.
type ValidationError struct {
	// Field is the YAML key path, e.g. "export.target".
	Field   string
	Value   any
	Message string

	// FilePath is the config file the value came from, when known.
	FilePath string
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, 3)
	for _, part := range []string{e.FilePath, e.Field, e.Message} {
		if part != "" {
			parts = append(parts, part)
		}
	}
	return strings.Join(parts, ": ")
}

// ValidationResult holds the errors that reject a configuration and the
// warnings that do not.
type ValidationResult struct {
	Errors   []ValidationError
	Warnings []ValidationError
}

// Valid reports whether there are no errors.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

func (r *ValidationResult) fail(field string, value any, format string, args ...any) {
	r.Errors = append(r.Errors, ValidationError{Field: field, Value: value, Message: fmt.Sprintf(format, args...)})
}

func (r *ValidationResult) warn(field string, value any, format string, args ...any) {
	r.Warnings = append(r.Warnings, ValidationError{Field: field, Value: value, Message: fmt.Sprintf(format, args...)})
}

//nolint:gochecknoglobals // Read-only lookup tables.
var (
	policies = []config.UnknownRulesPolicy{config.UnknownRulesDefer, config.UnknownRulesWarn, config.UnknownRulesFail}
	formats  = []config.OutputFormat{config.FormatText, config.FormatJSON, config.FormatYAML, config.FormatTOML}
)

// Validate checks enumerated values and the style file name. Empty values
// are valid; they mean "not set".
func Validate(cfg *config.Config) *ValidationResult {
	result := &ValidationResult{}
	if cfg == nil {
		return result
	}

	if cfg.UnknownRules != "" && !slices.Contains(policies, cfg.UnknownRules) {
		result.fail("unknown_rules", cfg.UnknownRules, "invalid policy %q; must be one of: %s", cfg.UnknownRules, join(policies))
	}
	if cfg.Format != "" && !slices.Contains(formats, cfg.Format) {
		result.fail("format", cfg.Format, "invalid format %q; must be one of: %s", cfg.Format, join(formats))
	}
	if cfg.Export.Target != "" {
		if _, err := export.ParseTarget(cfg.Export.Target); err != nil {
			result.fail("export.target", cfg.Export.Target, "%v", err)
		}
	}
	if cfg.Style != "" && filepath.Ext(cfg.Style) != ".rb" {
		result.warn("style", cfg.Style, "style file %q does not have the .rb extension", cfg.Style)
	}
	return result
}

// ValidateWithFile is Validate with every finding attributed to filePath.
func ValidateWithFile(cfg *config.Config, filePath string) *ValidationResult {
	result := Validate(cfg)
	for i := range result.Errors {
		result.Errors[i].FilePath = filePath
	}
	for i := range result.Warnings {
		result.Warnings[i].FilePath = filePath
	}
	return result
}

func join[T ~string](values []T) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = string(v)
	}
	return strings.Join(parts, ", ")
}
