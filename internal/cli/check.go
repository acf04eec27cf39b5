package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mdlstyle/internal/logging"
	"github.com/yaklabco/mdlstyle/internal/ui/pretty"
	"github.com/yaklabco/mdlstyle/pkg/catalog"
	"github.com/yaklabco/mdlstyle/pkg/config"
	"github.com/yaklabco/mdlstyle/pkg/export"
	"github.com/yaklabco/mdlstyle/pkg/report"
	"github.com/yaklabco/mdlstyle/pkg/style"
)

type checkFlags struct {
	unknownRules string
	format       string
	noContext    bool
	compact      bool
}

func newCheckCommand(info BuildInfo) *cobra.Command {
	var cfg config.Config
	flags := &checkFlags{}

	cmd := &cobra.Command{
		Use:   "check [style]",
		Short: "Check a style file for problems",
		Long: `Load a style file and report syntax errors, unknown rules, invalid
parameters and parameters that have no effect.

Without an argument the style file comes from the configuration (style,
.mdlrc) or is searched upward from the current directory.

Examples:
  mdlstyle check                          Check the discovered style file
  mdlstyle check .mdl_style.rb --strict   Fail on warnings as well
  mdlstyle check --unknown-rules fail     Treat unknown rules as errors
  mdlstyle check --format sarif           SARIF for code scanning`,
		Args: usageArgs(cobra.MaximumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg.Style = styleArg(args)
			if cmd.Flags().Changed("unknown-rules") {
				cfg.UnknownRules = config.UnknownRulesPolicy(flags.unknownRules)
			}
			return runCheck(cmd, &cfg, flags, info)
		},
	}

	cmd.Flags().BoolVar(&cfg.Strict, "strict", false, "treat warnings as errors for exit code")
	cmd.Flags().StringVar(&flags.unknownRules, "unknown-rules", "warn",
		"unknown rule policy: defer, warn, fail")
	cmd.Flags().StringVar(&flags.format, "format", "text", "output format: text, json, sarif")
	cmd.Flags().BoolVar(&flags.noContext, "no-context", false, "hide source line context in output")
	cmd.Flags().BoolVar(&flags.compact, "compact", false, "print a one-line summary")

	return cmd
}

func runCheck(cmd *cobra.Command, cliCfg *config.Config, flags *checkFlags, info BuildInfo) error {
	var format report.Format
	if flags.format != "text" {
		parsed, err := report.ParseFormat(flags.format)
		if err != nil {
			return fmt.Errorf("%w: %w", errUsage, err)
		}
		format = parsed
	}

	cfg, err := loadSettings(cmd, cliCfg)
	if err != nil {
		return err
	}

	colorMode, err := cmd.Flags().GetString("color")
	if err != nil {
		colorMode = "auto"
	}
	out := cmd.OutOrStdout()
	styles := pretty.NewStyles(pretty.IsColorEnabled(colorMode, out))

	results := checkReport{
		path:    cfg.Style,
		styles:  styles,
		context: !flags.noContext,
		compact: flags.compact,
	}

	profile, loadErr := loadProfile(commandContext(cmd), cfg)
	switch {
	case loadErr == nil:
		results.addWarnings(profile)
	case errors.Is(loadErr, style.ErrMalformedConfig), errors.Is(loadErr, style.ErrUnknownRule):
		results.addError(loadErr)
	default:
		return loadErr
	}

	if format != "" {
		err = results.machine(info).Write(out, format)
	} else {
		err = results.write(out, profile)
	}
	if err != nil {
		return err
	}

	if results.errors > 0 || (cfg.Strict && results.warnings > 0) {
		return ErrProblemsFound
	}
	return nil
}

// checkReport collects problems for one style file.
type checkReport struct {
	path     string
	styles   *pretty.Styles
	context  bool
	compact  bool
	problems []pretty.Problem
	warnings int
	errors   int
}

func (r *checkReport) addWarnings(profile *style.Profile) {
	for _, warning := range profile.Warnings {
		r.problems = append(r.problems, pretty.Problem{
			Path:     r.path,
			Line:     warning.Line,
			Severity: pretty.SeverityWarning,
			Message:  warning.Message,
			RuleID:   warning.RuleID,
		})
		r.warnings++
	}
}

func (r *checkReport) addError(err error) {
	problem := pretty.Problem{Path: r.path, Severity: pretty.SeverityError, Message: err.Error()}

	var syntaxErr *style.SyntaxError
	var unknownErr *style.UnknownRuleError
	switch {
	case errors.As(err, &syntaxErr):
		problem.Line = syntaxErr.Line
		problem.Column = syntaxErr.Column
		problem.Message = syntaxErr.Msg
	case errors.As(err, &unknownErr):
		problem.Line = unknownErr.Line
		problem.RuleID = unknownErr.RuleID
		problem.Message = "unknown rule"
		if unknownErr.Tag != "" {
			problem.Message = fmt.Sprintf("unknown tag %q", unknownErr.Tag)
		}
	}

	r.problems = append(r.problems, problem)
	r.errors++
}

func (r *checkReport) write(out io.Writer, profile *style.Profile) error {
	var builder strings.Builder

	if !r.compact && len(r.problems) > 0 {
		lines := r.sourceLines()
		builder.WriteString(r.styles.FormatFileHeader(r.path, len(r.problems)) + "\n")
		for _, problem := range r.problems {
			source := ""
			if r.context && problem.Line > 0 && problem.Line <= len(lines) {
				source = lines[problem.Line-1]
			}
			builder.WriteString(r.styles.FormatProblem(problem, source))
		}
	}

	stats := pretty.ProfileStats{Warnings: r.warnings, Errors: r.errors}
	if profile != nil {
		snap := export.NewSnapshot(profile, catalog.Default, export.SnapshotOptions{})
		stats.Rules = len(snap.Rules)
		for _, rule := range snap.Rules {
			if rule.Enabled {
				stats.Enabled++
			}
		}
		stats.Parameterized = profile.Parameters.Len()
	}

	if r.compact {
		builder.WriteString(r.styles.FilePath.Render(r.path) + ": " + r.styles.FormatSummaryOneLine(stats))
	} else {
		builder.WriteString(r.styles.FormatSummary(stats))
	}

	if _, err := io.WriteString(out, builder.String()); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

// machine converts the collected problems for the json and sarif formats.
func (r *checkReport) machine(info BuildInfo) *report.Report {
	out := &report.Report{
		Tool:     report.Tool{Name: "mdlstyle", Version: info.Version, URI: "https://github.com/yaklabco/mdlstyle"},
		Path:     r.path,
		Problems: make([]report.Problem, 0, len(r.problems)),
		Describe: func(id string) string {
			rule, ok := catalog.Default.Get(id)
			if !ok {
				return ""
			}
			return rule.Description
		},
	}
	for _, problem := range r.problems {
		out.Problems = append(out.Problems, report.Problem{
			Line:     problem.Line,
			Column:   problem.Column,
			Severity: report.Severity(problem.Severity),
			Message:  problem.Message,
			RuleID:   problem.RuleID,
		})
	}
	return out
}

// sourceLines reads the style file for context lines. Failures only lose
// the context.
func (r *checkReport) sourceLines() []string {
	data, err := os.ReadFile(r.path)
	if err != nil {
		logging.Default().Debug("no source context", logging.FieldPath, r.path, logging.FieldError, err)
		return nil
	}
	return strings.Split(strings.ReplaceAll(string(data), "\r\n", "\n"), "\n")
}
