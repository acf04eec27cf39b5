package style_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdlstyle/pkg/style"
)

func TestFormatDirective(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		directive style.Directive
		want      string
	}{
		{
			name:      "all",
			directive: style.Directive{Kind: style.DirectiveAll},
			want:      "all",
		},
		{
			name:      "quoted target",
			directive: style.Directive{Kind: style.DirectiveExcludeRule, Target: "MD033"},
			want:      "exclude_rule 'MD033'",
		},
		{
			name:      "symbol target",
			directive: style.Directive{Kind: style.DirectiveExcludeTag, Target: "html", TargetSymbol: true},
			want:      "exclude_tag :html",
		},
		{
			name:      "symbol target that is not an identifier",
			directive: style.Directive{Kind: style.DirectiveRule, Target: "line-length", TargetSymbol: true},
			want:      "rule 'line-length'",
		},
		{
			name: "parameters",
			directive: style.Directive{Kind: style.DirectiveRule, Target: "MD013", Params: []style.Param{
				{Name: "line_length", Value: 120},
				{Name: "code_blocks", Value: false},
				{Name: "style", Value: style.Symbol("atx")},
				{Name: "punctuation", Value: "it's"},
				{Name: "allowed", Value: []any{"br", 2, nil}},
			}},
			want: `rule 'MD013', line_length: 120, code_blocks: false, style: :atx, punctuation: 'it\'s', allowed: ['br', 2, nil]`,
		},
		{
			name: "non-identifier parameter name",
			directive: style.Directive{Kind: style.DirectiveRule, Target: "MD035", Params: []style.Param{
				{Name: "hr style", Value: "---"},
			}},
			want: "rule 'MD035', 'hr style' => '---'",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, style.FormatDirective(tt.directive))
		})
	}
}

func TestFormat_RoundTrip(t *testing.T) {
	t.Parallel()

	inputs := map[string]string{
		"sample":       sampleStyle,
		"continuation": "rule \"MD013\",\n  line_length: 100,\n  tables: false\n",
		"hash rockets": "rule :MD033, :allowed_elements => 'br'; exclude_tag :html\n",
		"lists":        "rule 'MD033', allowed: ['br', 'img', []]\n",
	}

	for name, src := range inputs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			first, err := style.ParseDirectives("in.rb", []byte(src))
			require.NoError(t, err)

			formatted := style.Format(first)
			second, err := style.ParseDirectives("out.rb", formatted)
			require.NoError(t, err)

			assert.Equal(t, withoutPositions(first), withoutPositions(second))
			assert.Equal(t, string(formatted), string(style.Format(second)), "formatting is not stable")
		})
	}
}

func TestFormatFile_KeepsComments(t *testing.T) {
	t.Parallel()

	const src = "# Style for docs\nall\n\nrule 'MD013', line_length: 120,   # wide\n" +
		"  code_blocks: false\nexclude_rule :MD033 # html ok\n\n\n# trailing\n"
	const want = "# Style for docs\nall\n\nrule 'MD013', line_length: 120, code_blocks: false # wide\n" +
		"exclude_rule :MD033 # html ok\n\n# trailing\n"

	file, err := style.ParseFile("style.rb", []byte(src))
	require.NoError(t, err)

	got := string(style.FormatFile(file))
	assert.Equal(t, want, got)

	again, err := style.ParseFile("style.rb", []byte(got))
	require.NoError(t, err)
	assert.Equal(t, want, string(style.FormatFile(again)))
}

func TestFormatFile_Empty(t *testing.T) {
	t.Parallel()

	file, err := style.ParseFile("style.rb", nil)
	require.NoError(t, err)
	assert.Empty(t, style.FormatFile(file))
}

func withoutPositions(directives []style.Directive) []style.Directive {
	out := make([]style.Directive, len(directives))
	for i, directive := range directives {
		directive.Line = 0
		directive.EndLine = 0
		out[i] = directive
	}
	return out
}
