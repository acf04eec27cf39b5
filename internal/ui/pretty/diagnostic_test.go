package pretty_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/mdlstyle/internal/ui/pretty"
)

func TestFormatProblem(t *testing.T) {
	styles := pretty.NewStyles(false)

	tests := []struct {
		name    string
		problem pretty.Problem
		source  string
		want    string
	}{
		{
			name: "warning with rule",
			problem: pretty.Problem{
				Path: "style.rb", Line: 4, Severity: pretty.SeverityWarning,
				Message: "parameters have no effect", RuleID: "MD013",
			},
			want: "  style.rb:4  warning  parameters have no effect  (MD013)\n",
		},
		{
			name: "error with column and source",
			problem: pretty.Problem{
				Path: "style.rb", Line: 2, Column: 6, Severity: pretty.SeverityError,
				Message: "unterminated string",
			},
			source: "rule 'MD013",
			want: "  style.rb:2:6  error  unterminated string\n" +
				"        rule 'MD013\n" +
				"             ^\n",
		},
		{
			name:    "no location",
			problem: pretty.Problem{Path: "style.rb", Severity: pretty.SeverityError, Message: "not found"},
			want:    "  style.rb  error  not found\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, styles.FormatProblem(tt.problem, tt.source))
		})
	}
}

func TestFormatSeverity(t *testing.T) {
	styles := pretty.NewStyles(false)

	assert.Equal(t, "error", styles.FormatSeverity(pretty.SeverityError))
	assert.Equal(t, "warning", styles.FormatSeverity(pretty.SeverityWarning))
	assert.Equal(t, "note", styles.FormatSeverity("note"))
}

func TestFormatFileHeader(t *testing.T) {
	styles := pretty.NewStyles(false)

	assert.Equal(t, "style.rb (3 problems)", styles.FormatFileHeader("style.rb", 3))
	assert.Equal(t, "style.rb", styles.FormatFileHeader("style.rb", 0))
}

func TestFormatSourceContext_ZeroColumn(t *testing.T) {
	styles := pretty.NewStyles(false)

	out := styles.FormatSourceContext("all", 0)
	assert.NotContains(t, out, "^")
	assert.Equal(t, 1, strings.Count(out, "\n"))
}
