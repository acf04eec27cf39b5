package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/yaklabco/mdlstyle/internal/configloader"
	"github.com/yaklabco/mdlstyle/internal/logging"
	"github.com/yaklabco/mdlstyle/pkg/catalog"
	"github.com/yaklabco/mdlstyle/pkg/config"
	"github.com/yaklabco/mdlstyle/pkg/style"
)

// usageArgs wraps a Cobra argument validator so its errors map to
// ExitInvalidUsage.
func usageArgs(validate cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := validate(cmd, args); err != nil {
			return fmt.Errorf("%w: %w", errUsage, err)
		}
		return nil
	}
}

// commandContext returns the command's context, falling back to Background.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// loadSettings resolves the tool configuration. cliCfg carries only the
// values set by flags or arguments; a positional style path goes in
// cliCfg.Style.
func loadSettings(cmd *cobra.Command, cliCfg *config.Config) (*config.Config, error) {
	ctx := commandContext(cmd)
	logger := logging.FromContext(ctx)

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("get config flag: %w", err)
	}

	workDir, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("get working directory: %w", err)
	}

	result, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: configPath,
		CLIConfig:    cliCfg,
	})
	if err != nil {
		return nil, errors.Join(errors.New("failed to load configuration"), err)
	}

	for _, warning := range result.Warnings {
		logger.Warn(warning)
	}
	if len(result.LoadedFrom) > 0 {
		logger.Debug("loaded configuration from", logging.FieldFiles, result.LoadedFrom)
	}
	if result.StyleDiscovered {
		logger.Debug("discovered style file", logging.FieldStyle, result.Config.Style)
	}

	cfg := result.Config
	if cfg.Style == "" {
		return nil, fmt.Errorf("%w: none given and no .mdl_style.rb found from %s", style.ErrNotFound, workDir)
	}

	logger.Debug("configuration loaded",
		logging.FieldStyle, cfg.Style,
		logging.FieldPolicy, cfg.UnknownRules,
	)
	return cfg, nil
}

// loadOptions builds the style loader options for cfg.
func loadOptions(cfg *config.Config, logger *log.Logger) []style.Option {
	return []style.Option{
		style.WithCatalog(catalog.Default),
		style.WithUnknownRules(style.UnknownRules(cfg.UnknownRules)),
		style.WithLogger(logger),
	}
}

// loadProfile loads the style file named by cfg.
func loadProfile(ctx context.Context, cfg *config.Config) (*style.Profile, error) {
	logger := logging.FromContext(ctx)

	profile, err := style.Load(cfg.Style, loadOptions(cfg, logger)...)
	if err != nil {
		return nil, err
	}

	logger.Debug("style file loaded",
		logging.FieldStyle, profile.Path,
		logging.FieldDirectives, len(profile.Directives),
		logging.FieldBaseline, profile.Rules.AllEnabled(),
		logging.FieldParameters, profile.Parameters.Len(),
		logging.FieldWarnings, len(profile.Warnings),
	)
	return profile, nil
}

// styleArg returns the optional positional style path.
func styleArg(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return ""
}
