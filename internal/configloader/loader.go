// Package configloader provides configuration loading and resolution.
// It implements XDG-compliant configuration discovery, hierarchical merging,
// .mdlrc support, environment variables, validation and style file discovery.
package configloader

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/yaklabco/mdlstyle/pkg/config"
)

// ErrInvalidConfig is wrapped by every error caused by a bad config source.
var ErrInvalidConfig = errors.New("invalid configuration")

// LoadOptions controls configuration loading behavior.
type LoadOptions struct {
	// WorkingDir is the directory to search from for project config.
	// Defaults to current working directory if empty.
	WorkingDir string

	// ExplicitPath is an explicit config file path (from --config flag).
	ExplicitPath string

	// IgnoreSystemConfig skips loading system-level configuration.
	IgnoreSystemConfig bool

	// IgnoreUserConfig skips loading user-level configuration.
	IgnoreUserConfig bool

	// IgnoreProjectConfig skips loading project-level configuration.
	IgnoreProjectConfig bool

	// IgnoreMdlrc skips reading .mdlrc.
	IgnoreMdlrc bool

	// IgnoreEnv skips loading environment variables.
	IgnoreEnv bool

	// SkipStyleDiscovery leaves Style empty when no source sets it.
	SkipStyleDiscovery bool

	// CLIConfig contains configuration from CLI flags.
	// These take highest precedence.
	CLIConfig *config.Config
}

// LoadResult contains the resolved configuration and metadata.
type LoadResult struct {
	// Config is the final merged configuration.
	Config *config.Config

	// Paths contains the discovered configuration file paths.
	Paths *ConfigPaths

	// LoadedFrom lists the files that were actually loaded (in order).
	LoadedFrom []string

	// StyleDiscovered is true when Style came from the upward file search.
	StyleDiscovered bool

	// Warnings contains non-fatal issues encountered during loading.
	Warnings []string
}

// Load resolves the final configuration by merging all sources.
// Precedence (highest to lowest):
//  1. CLI flags (opts.CLIConfig)
//  2. Environment variables (MDLSTYLE_*)
//  3. Explicit config file (opts.ExplicitPath)
//  4. .mdlrc `style` setting
//  5. Project config (.mdlstyle.yml upward search)
//  6. User config ($XDG_CONFIG_HOME/mdlstyle/config.yaml)
//  7. System config (/etc/mdlstyle/config.yaml)
//  8. Defaults
//
// When no source names a style file, one is searched upward from the
// working directory.
func Load(ctx context.Context, opts LoadOptions) (*LoadResult, error) {
	workDir := opts.WorkingDir
	if workDir == "" {
		var err error
		workDir, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("get working directory: %w", err)
		}
	}

	cfg := config.NewConfig()

	paths, err := DiscoverPaths(ctx, workDir)
	if err != nil {
		return nil, fmt.Errorf("discover paths: %w", err)
	}
	paths.Explicit = opts.ExplicitPath

	result := &LoadResult{Paths: paths}

	layers := []struct {
		name    string
		path    string
		ignored bool
	}{
		{"system", paths.System, opts.IgnoreSystemConfig},
		{"user", paths.User, opts.IgnoreUserConfig},
		{"project", paths.Project, opts.IgnoreProjectConfig},
	}
	for _, layer := range layers {
		if layer.ignored || layer.path == "" {
			continue
		}
		layerCfg, err := loadConfigFile(layer.path)
		if err != nil {
			return nil, fmt.Errorf("load %s config: %w", layer.name, err)
		}
		overlay(cfg, layerCfg)
		result.LoadedFrom = append(result.LoadedFrom, layer.path)
	}

	if !opts.IgnoreMdlrc && paths.Mdlrc != "" {
		rc, err := LoadMdlrc(paths.Mdlrc)
		if err != nil {
			return nil, fmt.Errorf("load .mdlrc: %w: %w", ErrInvalidConfig, err)
		}
		for _, key := range rc.Ignored {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("%s: setting %q has no effect on mdlstyle", paths.Mdlrc, key))
		}
		overlay(cfg, &config.Config{Style: rc.Style})
		result.LoadedFrom = append(result.LoadedFrom, paths.Mdlrc)
	}

	if opts.ExplicitPath != "" {
		explicitCfg, err := loadConfigFile(opts.ExplicitPath)
		if err != nil {
			return nil, fmt.Errorf("load explicit config: %w", err)
		}
		overlay(cfg, explicitCfg)
		result.LoadedFrom = append(result.LoadedFrom, opts.ExplicitPath)
	}

	if !opts.IgnoreEnv {
		if err := LoadFromEnv(cfg); err != nil {
			return nil, fmt.Errorf("load environment: %w: %w", ErrInvalidConfig, err)
		}
	}

	if opts.CLIConfig != nil {
		overlay(cfg, opts.CLIConfig)
	}

	if cfg.Style == "" && !opts.SkipStyleDiscovery {
		found, err := FindStyleFile(ctx, workDir)
		if err != nil {
			return nil, fmt.Errorf("find style file: %w", err)
		}
		if found != "" {
			cfg.Style = found
			result.StyleDiscovered = true
		}
	}

	validation := Validate(cfg)
	if !validation.Valid() {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, &validation.Errors[0])
	}
	for _, w := range validation.Warnings {
		result.Warnings = append(result.Warnings, w.Error())
	}

	result.Config = cfg
	return result, nil
}

// loadConfigFile loads a configuration from a YAML file. A relative style
// path is resolved against the directory of the file that names it.
// Warnings are left to the validation of the merged result.
func loadConfigFile(path string) (*config.Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	cfg, err := config.FromYAML(content)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidConfig, path, err)
	}

	validation := ValidateWithFile(cfg, path)
	if !validation.Valid() {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, &validation.Errors[0])
	}

	if cfg.Style != "" && !filepath.IsAbs(cfg.Style) {
		cfg.Style = filepath.Join(filepath.Dir(path), cfg.Style)
	}
	return cfg, nil
}
