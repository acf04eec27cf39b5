package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mdlstyle/internal/ui/pretty"
	"github.com/yaklabco/mdlstyle/pkg/catalog"
	"github.com/yaklabco/mdlstyle/pkg/style"
)

type rulesFlags struct {
	format string
	tag    string
}

const formatJSON = "json"

// ruleInfo represents a rule in JSON output.
type ruleInfo struct {
	ID          string      `json:"id"`
	Aliases     []string    `json:"aliases"`
	Description string      `json:"description"`
	Tags        []string    `json:"tags"`
	Params      []paramInfo `json:"params,omitempty"`
}

type paramInfo struct {
	Name    string   `json:"name"`
	Kind    string   `json:"kind"`
	Default any      `json:"default"`
	Choices []string `json:"choices,omitempty"`
}

func newRulesCommand() *cobra.Command {
	flags := &rulesFlags{}

	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List the rules style files can refer to",
		Long: `List the known mdl rules with their aliases, tags and parameters.
Rule IDs and aliases can be used with rule and exclude_rule, tags with tag and
exclude_tag.`,
		Args: usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			rules := catalog.Default.Rules()
			if flags.tag != "" {
				filtered := rules[:0]
				for _, rule := range rules {
					if rule.HasTag(flags.tag) {
						filtered = append(filtered, rule)
					}
				}
				rules = filtered
			}

			out := cmd.OutOrStdout()
			switch flags.format {
			case formatJSON:
				return outputRulesJSON(out, rules)
			case "text":
				colorMode, err := cmd.Flags().GetString("color")
				if err != nil {
					colorMode = "auto"
				}
				return outputRulesTable(out, rules, pretty.NewStyles(pretty.IsColorEnabled(colorMode, out)))
			default:
				return fmt.Errorf("%w: invalid format %q: must be text or json", errUsage, flags.format)
			}
		},
	}

	cmd.Flags().StringVar(&flags.format, "format", "text", "output format: text, json")
	cmd.Flags().StringVar(&flags.tag, "tag", "", "only list rules with this tag")

	return cmd
}

func outputRulesTable(out io.Writer, rules []catalog.Rule, styles *pretty.Styles) error {
	rows := make([]pretty.TableRow, 0, len(rules))
	for _, rule := range rules {
		params := make([]string, 0, len(rule.Params))
		for _, param := range rule.Params {
			params = append(params, param.Name+": "+style.FormatValue(param.Default))
		}
		rows = append(rows, pretty.TableRow{Cells: []string{
			rule.ID,
			strings.Join(catalog.Default.Aliases(rule.ID), ", "),
			strings.Join(rule.Tags, ", "),
			rule.Description,
			strings.Join(params, ", "),
		}})
	}

	legend := fmt.Sprintf("%d of %d rules shown; parameters show their defaults", len(rules), len(catalog.Default.IDs()))
	text := pretty.NewTableFormatter(styles, terminalWidth(out)).
		WithLegend(legend).
		Format([]string{"RULE", "ALIASES", "TAGS", "DESCRIPTION", "PARAMETERS"}, rows)
	if text == "" {
		text = styles.Dim.Render("no rules") + "\n"
	}

	if _, err := io.WriteString(out, text); err != nil {
		return fmt.Errorf("write rules: %w", err)
	}
	return nil
}

// outputRulesJSON outputs rules as a JSON array.
func outputRulesJSON(out io.Writer, rules []catalog.Rule) error {
	infos := make([]ruleInfo, 0, len(rules))
	for _, rule := range rules {
		info := ruleInfo{
			ID:          rule.ID,
			Aliases:     catalog.Default.Aliases(rule.ID),
			Description: rule.Description,
			Tags:        rule.Tags,
		}
		for _, param := range rule.Params {
			info.Params = append(info.Params, paramInfo{
				Name:    param.Name,
				Kind:    string(param.Kind),
				Default: style.Plain(param.Default),
				Choices: param.Choices,
			})
		}
		infos = append(infos, info)
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(infos); err != nil {
		return fmt.Errorf("encoding rules: %w", err)
	}
	return nil
}
