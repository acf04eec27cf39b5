package cli

import (
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/yaklabco/mdlstyle/internal/ui/pretty"
)

// Command groups shown in the root help.
const (
	groupStyle   = "style"
	groupCatalog = "catalog"
)

func commandGroups() []*cobra.Group {
	return []*cobra.Group{
		{ID: groupStyle, Title: "Style file commands:"},
		{ID: groupCatalog, Title: "Rule catalog and export:"},
	}
}

const usageTemplate = `{{ heading "Usage:" }}
{{- if .Runnable}}
  {{ command .UseLine }}{{end}}
{{- if .HasAvailableSubCommands}}
  {{ command .CommandPath }} [command]{{end}}

{{- if .HasExample}}

{{ heading "Examples:" }}
{{ dim .Example }}
{{- end}}

{{- if .HasAvailableSubCommands}}{{$cmds := .Commands}}
{{- range $group := .Groups}}

{{ heading $group.Title }}
{{- range $cmds}}{{if and (eq .GroupID $group.ID) (or .IsAvailableCommand (eq .Name "help"))}}
  {{ command (rpad .Name .NamePadding) }} {{ .Short }}{{end}}{{end}}
{{- end}}
{{- if not .AllChildCommandsHaveGroup}}

{{ heading "Other Commands:" }}
{{- range $cmds}}{{if and (eq .GroupID "") (or .IsAvailableCommand (eq .Name "help"))}}
  {{ command (rpad .Name .NamePadding) }} {{ .Short }}{{end}}{{end}}
{{- end}}
{{- end}}

{{- if .HasAvailableLocalFlags}}

{{ heading "Flags:" }}
{{ flags .LocalFlags }}
{{- end}}

{{- if .HasAvailableInheritedFlags}}

{{ heading "Global Flags:" }}
{{ flags .InheritedFlags }}
{{- end}}

{{- if .HasAvailableSubCommands}}

Use "{{ command (print .CommandPath " [command] --help") }}" for more information about a command.
{{- end}}
`

const helpTemplate = `{{with (or .Long .Short)}}{{ trimLines . }}

{{end}}`

// helpFormatter renders cobra help and usage text with lipgloss styles.
type helpFormatter struct {
	styles *pretty.Styles
	usage  *template.Template
	help   *template.Template
}

func newHelpFormatter(colorMode string, w io.Writer) *helpFormatter {
	h := &helpFormatter{styles: pretty.NewStyles(pretty.IsColorEnabled(colorMode, w))}

	funcs := template.FuncMap{
		"heading":   h.styles.Heading.Render,
		"command":   h.styles.Command.Render,
		"dim":       h.styles.Dim.Render,
		"flags":     h.flagUsages,
		"rpad":      rpad,
		"trimLines": trimLines,
	}
	h.usage = template.Must(template.New("usage").Funcs(funcs).Parse(usageTemplate))
	h.help = template.Must(template.New("help").Funcs(funcs).Parse(helpTemplate + usageTemplate))
	return h
}

// apply installs the formatter on cmd; subcommands inherit it.
func (h *helpFormatter) apply(cmd *cobra.Command) {
	cmd.SetUsageFunc(func(c *cobra.Command) error {
		if err := h.usage.Execute(c.OutOrStderr(), c); err != nil {
			return fmt.Errorf("render usage: %w", err)
		}
		return nil
	})
	cmd.SetHelpFunc(func(c *cobra.Command, _ []string) {
		if err := h.help.Execute(c.OutOrStdout(), c); err != nil {
			c.PrintErrln(err)
		}
	})
}

// flagLine is one rendered flag before styling.
type flagLine struct {
	names string
	usage string
}

// flagUsages lays out a flag set in two aligned columns: names with the
// value placeholder, then the usage with its default.
func (h *helpFormatter) flagUsages(set *pflag.FlagSet) string {
	var lines []flagLine
	width := 0

	set.VisitAll(func(flag *pflag.Flag) {
		if flag.Hidden {
			return
		}
		varname, usage := pflag.UnquoteUsage(flag)

		names := "    --" + flag.Name
		if flag.Shorthand != "" {
			names = "-" + flag.Shorthand + ", --" + flag.Name
		}
		if varname != "" {
			names += " " + varname
		}
		if showDefault(flag) {
			usage += fmt.Sprintf(" (default %s)", flag.DefValue)
		}

		lines = append(lines, flagLine{names: names, usage: usage})
		width = max(width, len(names))
	})

	var builder strings.Builder
	for i, line := range lines {
		if i > 0 {
			builder.WriteByte('\n')
		}
		builder.WriteString("  ")
		builder.WriteString(h.styleNames(line.names))
		builder.WriteString(strings.Repeat(" ", width-len(line.names)+3))
		builder.WriteString(line.usage)
	}
	return builder.String()
}

// styleNames colors flag names and dims the value placeholder.
func (h *helpFormatter) styleNames(names string) string {
	tokens := strings.Fields(names)
	prefix := names[:len(names)-len(strings.TrimLeft(names, " "))]

	styled := make([]string, 0, len(tokens))
	for _, token := range tokens {
		name, comma := strings.CutSuffix(token, ",")
		switch {
		case strings.HasPrefix(name, "-"):
			name = h.styles.Flag.Render(name)
		default:
			name = h.styles.Dim.Render(name)
		}
		if comma {
			name += ","
		}
		styled = append(styled, name)
	}
	return prefix + strings.Join(styled, " ")
}

// showDefault hides zero defaults the way pflag does.
func showDefault(flag *pflag.Flag) bool {
	switch flag.DefValue {
	case "", "false", "0", "0s", "[]":
		return false
	}
	return true
}

func rpad(str string, padding int) string {
	if len(str) >= padding {
		return str
	}
	return str + strings.Repeat(" ", padding-len(str))
}

// trimLines strips trailing whitespace from every line.
func trimLines(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return strings.Join(lines, "\n")
}
