package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/yaklabco/mdlstyle/internal/configloader"
	"github.com/yaklabco/mdlstyle/internal/logging"
	"github.com/yaklabco/mdlstyle/pkg/config"
	"github.com/yaklabco/mdlstyle/pkg/fsutil"
)

// starterStyle is written by `mdlstyle init`.
const starterStyle = `# mdl style file. See "mdlstyle rules" for rule IDs, tags and parameters.

# Enable every rule, then tune or exclude individual ones below.
all

# Allow long lines in code blocks and tables.
rule 'MD013', line_length: 100, code_blocks: false, tables: false

# Use ATX headings and dashes for bullets.
rule 'MD003', style: :atx
rule 'MD004', style: :dash

# Indent nested lists by two spaces.
rule 'MD007', indent: 2

# Exclusions always win, even over rule parameters above.
exclude_rule 'MD041'
`

type initFlags struct {
	force  bool
	config bool
	output string
}

func newInitCommand() *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a starter style file",
		Long: `Create a commented .mdl_style.rb in the current directory that enables all
rules and shows how to set parameters and exclude rules.

With --config-file a .mdlstyle.yml pointing at the new style file is written next
to it, so every mdlstyle command in the project picks it up.

Examples:
  mdlstyle init                    Create .mdl_style.rb
  mdlstyle init -o docs/style.rb   Write to a custom path
  mdlstyle init --config-file      Also create .mdlstyle.yml
  mdlstyle init --force            Overwrite without asking`,
		Args: usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(cmd, flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "overwrite existing files")
	cmd.Flags().BoolVar(&flags.config, "config-file", false, "also write a project .mdlstyle.yml")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "output file path (default: .mdl_style.rb)")

	return cmd
}

func runInit(cmd *cobra.Command, flags *initFlags) error {
	outputPath := flags.output
	if outputPath == "" {
		outputPath = configloader.StyleFileNames[0]
	}

	absPath, err := filepath.Abs(outputPath)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	if err := createFile(cmd, absPath, []byte(starterStyle), flags.force); err != nil {
		return err
	}
	if !flags.config {
		return nil
	}

	cfg := config.NewConfig()
	cfg.Style = filepath.Base(absPath)
	data, err := cfg.ToYAMLWithHeader("# mdlstyle project configuration")
	if err != nil {
		return err
	}
	configPath := filepath.Join(filepath.Dir(absPath), configloader.ProjectConfigFiles[0])
	return createFile(cmd, configPath, data, flags.force)
}

// createFile writes content to path unless it exists. An existing file is
// replaced with force, or after confirmation on a terminal; otherwise it is
// a usage error.
func createFile(cmd *cobra.Command, path string, content []byte, force bool) error {
	ctx := commandContext(cmd)
	logger := logging.FromContext(ctx)

	_, err := os.Stat(path)
	switch {
	case err == nil && !force:
		if !isTerminal(cmd.InOrStdin()) {
			return fmt.Errorf("%w: file %q already exists; use --force to overwrite", errUsage, path)
		}
		ok, err := confirm(cmd.InOrStdin(), cmd.ErrOrStderr(), fmt.Sprintf("%s exists. Overwrite?", path))
		if err != nil {
			return err
		}
		if !ok {
			logger.Info("left existing file unchanged", logging.FieldPath, path)
			return nil
		}
	case err == nil:
		logger.Warn("overwriting existing file", logging.FieldPath, path)
	case !errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("stat %s: %w", path, err)
	}

	if err := fsutil.WriteAtomic(ctx, path, content, fsutil.DefaultFileMode); err != nil {
		return fmt.Errorf("write file: %w", err)
	}

	logger.Info("created file",
		logging.FieldPath, path,
		logging.FieldSize, humanize.Bytes(uint64(len(content))),
	)
	return nil
}

func isTerminal(in io.Reader) bool {
	file, ok := in.(*os.File)
	return ok && term.IsTerminal(int(file.Fd()))
}

// confirm asks a yes/no question; anything but y or yes means no.
func confirm(in io.Reader, out io.Writer, question string) (bool, error) {
	if _, err := fmt.Fprintf(out, "%s [y/N] ", question); err != nil {
		return false, fmt.Errorf("write prompt: %w", err)
	}
	answer, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, fmt.Errorf("read answer: %w", err)
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}
