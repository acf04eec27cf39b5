// Package cli provides the Cobra command structure for mdlstyle.
package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mdlstyle/internal/configloader"
	"github.com/yaklabco/mdlstyle/internal/logging"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// NewRootCommand creates the root mdlstyle command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var debug bool
	var configPath string
	var color string

	rootCmd := &cobra.Command{
		Use:   "mdlstyle",
		Short: "Load, check and convert mdl style files",
		Long: `mdlstyle reads mdl style files (.mdl_style.rb), the Ruby-flavored
configuration used by the markdownlint "mdl" gem, and resolves them into the
set of enabled rules plus per-rule parameters.

Exclusions always win over parameters, and an empty style file enables
nothing. Resolved profiles can be checked, printed, reformatted, or exported
as markdownlint and gomdlint configuration.` + environmentHelp(),
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			level := "info"
			if debug {
				level = "debug"
				logging.SetLevel(level)
			}
			logger := logging.NewWithWriter(cmd.ErrOrStderr(), level)
			cmd.SetContext(logging.WithLogger(cmd.Context(), logger))
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return fmt.Errorf("%w: %w", errUsage, err)
	})

	// Global flags.
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&color, "color", "auto",
		"colorize output: auto, always, never")

	rootCmd.AddGroup(commandGroups()...)
	for _, sub := range []*cobra.Command{
		newCheckCommand(info),
		newShowCommand(),
		newFmtCommand(),
		newWatchCommand(),
		newInitCommand(),
	} {
		sub.GroupID = groupStyle
		rootCmd.AddCommand(sub)
	}
	for _, sub := range []*cobra.Command{newRulesCommand(), newExportCommand()} {
		sub.GroupID = groupCatalog
		rootCmd.AddCommand(sub)
	}
	rootCmd.AddCommand(newVersionCommand(info))

	newHelpFormatter(color, os.Stdout).apply(rootCmd)

	return rootCmd
}

// environmentHelp lists the MDLSTYLE_* variables for the root help.
func environmentHelp() string {
	vars := configloader.EnvVars()
	width := 0
	for _, v := range vars {
		width = max(width, len(v.Name))
	}

	var builder strings.Builder
	builder.WriteString("\n\nEnvironment:")
	for _, v := range vars {
		fmt.Fprintf(&builder, "\n  %-*s  %s", width, v.Name, v.Help)
	}
	return builder.String()
}
