// Package main is the entry point for the mdlstyle CLI.
package main

import (
	"errors"
	"os"

	"github.com/yaklabco/mdlstyle/internal/cli"
	"github.com/yaklabco/mdlstyle/internal/logging"
)

// Build-time variables set by GoReleaser via ldflags.
//
//nolint:gochecknoglobals // Version variables must be package-level for ldflags injection
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	info := cli.BuildInfo{
		Version: version,
		Commit:  commit,
		Date:    date,
	}

	rootCmd := cli.NewRootCommand(info)

	if err := rootCmd.Execute(); err != nil {
		// Problems were already reported by the command.
		if !errors.Is(err, cli.ErrProblemsFound) {
			logging.Default().Error("command failed", logging.FieldError, err)
		}
		return cli.ExitCode(err)
	}

	return cli.ExitSuccess
}
