package configloader

import (
	"fmt"
	"os"
	"strconv"

	"github.com/yaklabco/mdlstyle/pkg/config"
)

const envVarPrefix = "MDLSTYLE_"

// envVar binds one MDLSTYLE_* variable to a config field.
type envVar struct {
	name  string
	field string
	help  string
	set   func(cfg *config.Config, value string) error
}

//nolint:gochecknoglobals // Read-only lookup table.
var envVars = []envVar{
	{
		name: "STYLE", field: "style", help: "path to the mdl style file",
		set: func(cfg *config.Config, v string) error { cfg.Style = v; return nil },
	},
	{
		name: "UNKNOWN_RULES", field: "unknown_rules", help: "unknown rule policy: defer, warn or fail",
		set: func(cfg *config.Config, v string) error {
			cfg.UnknownRules = config.UnknownRulesPolicy(v)
			return nil
		},
	},
	{
		name: "FORMAT", field: "format", help: "show output format: text, json, yaml or toml",
		set: func(cfg *config.Config, v string) error { cfg.Format = config.OutputFormat(v); return nil },
	},
	{
		name: "EXPORT_TARGET", field: "export.target", help: "linter format for export, e.g. markdownlint-json",
		set: func(cfg *config.Config, v string) error { cfg.Export.Target = v; return nil },
	},
	{
		name: "EXPORT_OUTPUT", field: "export.output", help: "destination path for export",
		set: func(cfg *config.Config, v string) error { cfg.Export.Output = v; return nil },
	},
	{
		name: "STRICT", field: "strict", help: "fail check on warnings: true or false",
		set: func(cfg *config.Config, v string) error {
			strict, err := strconv.ParseBool(v)
			if err != nil {
				return fmt.Errorf("expected true or false, got %q", v)
			}
			cfg.Strict = strict
			return nil
		},
	},
}

// LoadFromEnv applies non-empty MDLSTYLE_* variables to cfg.
func LoadFromEnv(cfg *config.Config) error {
	if cfg == nil {
		return nil
	}
	for _, env := range envVars {
		value := os.Getenv(envVarPrefix + env.name)
		if value == "" {
			continue
		}
		if err := env.set(cfg, value); err != nil {
			return fmt.Errorf("%s%s: %w", envVarPrefix, env.name, err)
		}
	}
	return nil
}

// EnvVar describes a supported environment variable.
type EnvVar struct {
	Name  string
	Field string
	Help  string
}

// EnvVars lists the supported environment variables in a stable order.
func EnvVars() []EnvVar {
	out := make([]EnvVar, 0, len(envVars))
	for _, env := range envVars {
		out = append(out, EnvVar{Name: envVarPrefix + env.name, Field: env.field, Help: env.help})
	}
	return out
}
