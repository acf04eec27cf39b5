package cli

import (
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/yaklabco/mdlstyle/internal/ui/pretty"
	"github.com/yaklabco/mdlstyle/pkg/catalog"
	"github.com/yaklabco/mdlstyle/pkg/config"
	"github.com/yaklabco/mdlstyle/pkg/export"
	"github.com/yaklabco/mdlstyle/pkg/style"
)

type showFlags struct {
	format      string
	defaults    bool
	onlyEnabled bool
}

func newShowCommand() *cobra.Command {
	var cfg config.Config
	flags := &showFlags{}

	cmd := &cobra.Command{
		Use:   "show [style]",
		Short: "Print the resolved rule set and parameters",
		Long: `Resolve a style file and print every rule with its final state and
parameters.

Examples:
  mdlstyle show                       Table of all rules
  mdlstyle show --format json         Machine-readable snapshot
  mdlstyle show --defaults --enabled  Enabled rules with effective parameters`,
		Args: usageArgs(cobra.MaximumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg.Style = styleArg(args)
			if cmd.Flags().Changed("format") {
				cfg.Format = config.OutputFormat(flags.format)
			}
			return runShow(cmd, &cfg, flags)
		},
	}

	cmd.Flags().StringVar(&flags.format, "format", "text", "output format: text, json, yaml, toml")
	cmd.Flags().BoolVar(&flags.defaults, "defaults", false, "include catalog default parameters")
	cmd.Flags().BoolVar(&flags.onlyEnabled, "enabled", false, "only list enabled rules")

	return cmd
}

func runShow(cmd *cobra.Command, cliCfg *config.Config, flags *showFlags) error {
	cfg, err := loadSettings(cmd, cliCfg)
	if err != nil {
		return err
	}

	profile, err := loadProfile(commandContext(cmd), cfg)
	if err != nil {
		return err
	}

	snap := export.NewSnapshot(profile, catalog.Default, export.SnapshotOptions{
		WithDefaults: flags.defaults,
		OnlyEnabled:  flags.onlyEnabled,
	})

	out := cmd.OutOrStdout()
	if cfg.Format == config.FormatText || cfg.Format == "" {
		colorMode, err := cmd.Flags().GetString("color")
		if err != nil {
			colorMode = "auto"
		}
		return writeSnapshotTable(out, snap, pretty.NewStyles(pretty.IsColorEnabled(colorMode, out)))
	}

	format, err := export.ParseFormat(string(cfg.Format))
	if err != nil {
		return fmt.Errorf("%w: %w", errUsage, err)
	}
	data, err := snap.Marshal(format)
	if err != nil {
		return err
	}
	if _, err := out.Write(data); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	return nil
}

func writeSnapshotTable(out io.Writer, snap *export.Snapshot, styles *pretty.Styles) error {
	rows := make([]pretty.TableRow, 0, len(snap.Rules))
	enabled := 0
	for _, rule := range snap.Rules {
		state, kind := "off", pretty.RowDisabled
		switch {
		case !rule.Known:
			state, kind = "unknown", pretty.RowUnknown
		case rule.Enabled:
			state, kind = "on", pretty.RowEnabled
		}
		if rule.Enabled {
			enabled++
		}
		rows = append(rows, pretty.TableRow{
			Cells: []string{rule.ID, rule.Alias, state, formatParams(rule.Params)},
			Kind:  kind,
		})
	}

	baseline := "none (only tagged rules are enabled)"
	if snap.All {
		baseline = "all"
	}
	legend := fmt.Sprintf("%d of %d rules enabled, baseline: %s", enabled, len(snap.Rules), baseline)

	table := pretty.NewTableFormatter(styles, terminalWidth(out)).WithLegend(legend)
	text := table.Format([]string{"RULE", "ALIAS", "STATE", "PARAMETERS"}, rows)
	if text == "" {
		text = styles.Dim.Render("no rules") + "\n"
	}

	var builder strings.Builder
	if snap.Source != "" {
		builder.WriteString(styles.FilePath.Render(snap.Source) + "\n")
	}
	builder.WriteString(text)
	for _, warning := range snap.Warnings {
		builder.WriteString(styles.FormatSeverity(pretty.SeverityWarning) + "  " + warning + "\n")
	}

	if _, err := io.WriteString(out, builder.String()); err != nil {
		return fmt.Errorf("write table: %w", err)
	}
	return nil
}

// formatParams renders parameters as sorted `name: value` pairs.
func formatParams(params map[string]any) string {
	names := make([]string, 0, len(params))
	for name := range params {
		names = append(names, name)
	}
	slices.Sort(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, name+": "+style.FormatValue(params[name]))
	}
	return strings.Join(parts, ", ")
}

// terminalWidth returns the width of out when it is a terminal, or 0.
func terminalWidth(out io.Writer) int {
	file, ok := out.(*os.File)
	if !ok || !term.IsTerminal(int(file.Fd())) {
		return 0
	}
	width, _, err := term.GetSize(int(file.Fd()))
	if err != nil {
		return 0
	}
	return width
}
