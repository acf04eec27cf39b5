package cli

import (
	"bytes"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mdlstyle/internal/logging"
	"github.com/yaklabco/mdlstyle/internal/ui/pretty"
	"github.com/yaklabco/mdlstyle/pkg/config"
	"github.com/yaklabco/mdlstyle/pkg/fsutil"
	"github.com/yaklabco/mdlstyle/pkg/style"
	"github.com/yaklabco/mdlstyle/pkg/textdiff"
)

type fmtFlags struct {
	write  bool
	check  bool
	diff   bool
	backup bool
}

func newFmtCommand() *cobra.Command {
	var cfg config.Config
	flags := &fmtFlags{}

	cmd := &cobra.Command{
		Use:   "fmt [style]",
		Short: "Rewrite a style file in canonical form",
		Long: `Print a style file with one directive per line, single-quoted rule
names and "name: value" parameters. Comments are kept and runs of blank lines
collapse to one.

Examples:
  mdlstyle fmt                   Print the formatted file
  mdlstyle fmt -w --backup       Rewrite in place, keeping a .bak copy
  mdlstyle fmt --check           Exit 1 if the file is not formatted
  mdlstyle fmt --diff            Show what formatting would change`,
		Args: usageArgs(cobra.MaximumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg.Style = styleArg(args)
			return runFmt(cmd, &cfg, flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.write, "write", "w", false, "write the result back to the style file")
	cmd.Flags().BoolVar(&flags.check, "check", false, "report whether the file is already formatted")
	cmd.Flags().BoolVarP(&flags.diff, "diff", "d", false, "print a unified diff instead of the file")
	cmd.Flags().BoolVar(&flags.backup, "backup", false, "keep a .bak copy when writing")
	cmd.MarkFlagsMutuallyExclusive("write", "check")
	cmd.MarkFlagsMutuallyExclusive("write", "diff")

	return cmd
}

func runFmt(cmd *cobra.Command, cliCfg *config.Config, flags *fmtFlags) error {
	ctx := commandContext(cmd)
	logger := logging.FromContext(ctx)

	cfg, err := loadSettings(cmd, cliCfg)
	if err != nil {
		return err
	}

	content, snap, err := fsutil.ReadFile(ctx, cfg.Style)
	if err != nil {
		return err
	}

	file, err := style.ParseFile(cfg.Style, content)
	if err != nil {
		return err
	}
	formatted := style.FormatFile(file)

	switch {
	case flags.diff:
		if err := writeDiff(cmd, textdiff.Compute(cfg.Style, content, formatted)); err != nil {
			return err
		}
		if flags.check && !bytes.Equal(content, formatted) {
			return ErrProblemsFound
		}
		return nil

	case flags.check:
		if bytes.Equal(content, formatted) {
			return nil
		}
		logger.Warn("style file is not formatted", logging.FieldStyle, cfg.Style)
		return ErrProblemsFound

	case flags.write:
		if snap.Matches(formatted) {
			logger.Debug("already formatted", logging.FieldStyle, cfg.Style)
			return nil
		}
		if flags.backup {
			created, err := fsutil.Backup(ctx, cfg.Style)
			if err != nil {
				return err
			}
			if created {
				logger.Info("backup written", logging.FieldPath, fsutil.BackupPath(cfg.Style))
			}
		}
		if err := snap.Rewrite(ctx, formatted); err != nil {
			return err
		}
		logger.Info("formatted style file", logging.FieldStyle, cfg.Style)
		return nil

	default:
		if _, err := cmd.OutOrStdout().Write(formatted); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
		return nil
	}
}

func writeDiff(cmd *cobra.Command, diff *textdiff.Diff) error {
	if diff.Empty() {
		return nil
	}

	colorMode, err := cmd.Flags().GetString("color")
	if err != nil {
		colorMode = "auto"
	}
	out := cmd.OutOrStdout()
	styles := pretty.NewStyles(pretty.IsColorEnabled(colorMode, out))

	if _, err := fmt.Fprint(out, styles.FormatDiff(diff.String())); err != nil {
		return fmt.Errorf("write diff: %w", err)
	}
	return nil
}
