package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/yaklabco/mdlstyle/internal/logging"
	"github.com/yaklabco/mdlstyle/pkg/catalog"
	"github.com/yaklabco/mdlstyle/pkg/config"
	"github.com/yaklabco/mdlstyle/pkg/export"
	"github.com/yaklabco/mdlstyle/pkg/fsutil"
)

// stdoutPath selects standard output as the export destination.
const stdoutPath = "-"

type exportFlags struct {
	target string
	output string
	force  bool
}

func newExportCommand() *cobra.Command {
	var cfg config.Config
	flags := &exportFlags{}

	cmd := &cobra.Command{
		Use:   "export [style]",
		Short: "Convert a style file into another linter's configuration",
		Long: `Resolve a style file and write the equivalent configuration for another
Markdown linter.

Targets:
  markdownlint-json   .markdownlint.json for markdownlint and markdownlint-cli2
  markdownlint-yaml   .markdownlint.yaml
  gomdlint            .gomdlint.yml

Examples:
  mdlstyle export                              Write .markdownlint.json
  mdlstyle export --target gomdlint --force    Replace .gomdlint.yml
  mdlstyle export -o -                         Print to stdout`,
		Args: usageArgs(cobra.MaximumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg.Style = styleArg(args)
			if cmd.Flags().Changed("target") {
				cfg.Export.Target = flags.target
			}
			if cmd.Flags().Changed("output") {
				cfg.Export.Output = flags.output
			}
			return runExport(cmd, &cfg, flags)
		},
	}

	cmd.Flags().StringVar(&flags.target, "target", "markdownlint-json",
		"output format: markdownlint-json, markdownlint-yaml, gomdlint")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "",
		"output file path, or - for stdout (default: the target's conventional name)")
	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "overwrite an existing output file")

	return cmd
}

func runExport(cmd *cobra.Command, cliCfg *config.Config, flags *exportFlags) error {
	ctx := commandContext(cmd)
	logger := logging.FromContext(ctx)

	cfg, err := loadSettings(cmd, cliCfg)
	if err != nil {
		return err
	}

	target, err := export.ParseTarget(cfg.Export.Target)
	if err != nil {
		return fmt.Errorf("%w: %w", errUsage, err)
	}

	profile, err := loadProfile(ctx, cfg)
	if err != nil {
		return err
	}

	data, err := export.Render(profile, catalog.Default, target)
	if err != nil {
		return err
	}

	output := cfg.Export.Output
	if output == "" {
		output = target.DefaultFilename()
	}
	if output == stdoutPath {
		if _, err := cmd.OutOrStdout().Write(data); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
		return nil
	}

	if _, err := os.Stat(output); err == nil {
		if !flags.force {
			return fmt.Errorf("%w: file %q already exists; use --force to overwrite", errUsage, output)
		}
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("stat output: %w", err)
	}

	written, err := fsutil.WriteIfChanged(ctx, output, data, fsutil.DefaultFileMode)
	if err != nil {
		return fmt.Errorf("write %s: %w", output, err)
	}
	if !written {
		logger.Info("output already up to date", logging.FieldOutput, output)
		return nil
	}

	logger.Info("exported style",
		logging.FieldStyle, profile.Path,
		logging.FieldTarget, target,
		logging.FieldOutput, output,
		logging.FieldSize, humanize.Bytes(uint64(len(data))),
	)
	for _, warning := range profile.Warnings {
		logger.Warn(warning.String(), logging.FieldStyle, profile.Path)
	}
	return nil
}
