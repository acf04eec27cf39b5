package catalog

import "github.com/yaklabco/mdlstyle/pkg/style"

const defaultPunctuation = ".,;:!?"

// Default is the catalog of the mdl rule set.
//
//nolint:gochecknoglobals // Global catalog is intentional, like a rule registry.
var Default = NewMDL()

// NewMDL returns a fresh registry populated with the mdl rules, their mdl
// aliases and the equivalent markdownlint aliases.
func NewMDL() *Registry {
	registry := NewRegistry()
	for _, rule := range mdlRules() {
		registry.Register(rule)
	}
	for alias, id := range markdownlintAliases {
		registry.RegisterAlias(alias, id)
	}
	return registry
}

// markdownlintAliases are the markdownlint spellings of mdl rule names.
//
//nolint:gochecknoglobals // Read-only lookup table.
var markdownlintAliases = map[string]string{
	"heading-increment":            "MD001",
	"first-heading-h1":             "MD002",
	"heading-style":                "MD003",
	"blanks-around-headings":       "MD022",
	"heading-start-left":           "MD023",
	"no-duplicate-heading":         "MD024",
	"single-title":                 "MD025",
	"no-emphasis-as-heading":       "MD036",
	"first-line-heading":           "MD041",
	"no-missing-space-atx":         "MD018",
	"no-multiple-space-atx":        "MD019",
	"no-missing-space-closed-atx":  "MD020",
	"no-multiple-space-closed-atx": "MD021",
}

//nolint:funlen,maintidx // Declarative rule table.
func mdlRules() []Rule {
	headingStyles := []string{"atx", "atx_closed", "setext", "setext_with_atx", "consistent"}

	return []Rule{
		{
			ID: "MD001", Alias: "header-increment",
			Description: "Header levels should only increment by one level at a time",
			Tags:        []string{"headers"},
		},
		{
			ID: "MD002", Alias: "first-header-h1",
			Description: "First header should be a top level header",
			Tags:        []string{"headers"},
			Params:      []Param{{Name: "level", Kind: KindInt, Default: 1}},
		},
		{
			ID: "MD003", Alias: "header-style",
			Description: "Header style",
			Tags:        []string{"headers"},
			Params: []Param{{
				Name: "style", Kind: KindStyle, Default: style.Symbol("consistent"),
				Choices: headingStyles,
			}},
		},
		{
			ID: "MD004", Alias: "ul-style",
			Description: "Unordered list style",
			Tags:        []string{"bullet", "ul"},
			Params: []Param{{
				Name: "style", Kind: KindStyle, Default: style.Symbol("consistent"),
				Choices: []string{"asterisk", "plus", "dash", "sublist", "consistent"},
			}},
		},
		{
			ID: "MD005", Alias: "list-indent",
			Description: "Inconsistent indentation for list items at the same level",
			Tags:        []string{"bullet", "ul", "indentation"},
		},
		{
			ID: "MD006", Alias: "ul-start-left",
			Description: "Consider starting bulleted lists at the beginning of the line",
			Tags:        []string{"bullet", "ul", "indentation"},
		},
		{
			ID: "MD007", Alias: "ul-indent",
			Description: "Unordered list indentation",
			Tags:        []string{"bullet", "ul", "indentation"},
			Params:      []Param{{Name: "indent", Kind: KindInt, Default: 3}},
		},
		{
			ID: "MD009", Alias: "no-trailing-spaces",
			Description: "Trailing spaces",
			Tags:        []string{"whitespace"},
			Params:      []Param{{Name: "br_spaces", Kind: KindInt, Default: 2}},
		},
		{
			ID: "MD010", Alias: "no-hard-tabs",
			Description: "Hard tabs",
			Tags:        []string{"whitespace", "hard_tab"},
			Params:      []Param{{Name: "ignore_code_blocks", Kind: KindBool, Default: false}},
		},
		{
			ID: "MD011", Alias: "no-reversed-links",
			Description: "Reversed link syntax",
			Tags:        []string{"links"},
		},
		{
			ID: "MD012", Alias: "no-multiple-blanks",
			Description: "Multiple consecutive blank lines",
			Tags:        []string{"whitespace", "blank_lines"},
		},
		{
			ID: "MD013", Alias: "line-length",
			Description: "Line length",
			Tags:        []string{"line_length"},
			Params: []Param{
				{Name: "line_length", Kind: KindInt, Default: 80},
				{Name: "ignore_code_blocks", Kind: KindBool, Default: false},
				{Name: "code_blocks", Kind: KindBool, Default: true},
				{Name: "tables", Kind: KindBool, Default: true},
				{Name: "headers", Kind: KindBool, Default: true, MarkdownlintName: "headings"},
			},
		},
		{
			ID: "MD014", Alias: "commands-show-output",
			Description: "Dollar signs used before commands without showing output",
			Tags:        []string{"code"},
		},
		{
			ID: "MD018", Alias: "no-missing-space-atx",
			Description: "No space after hash on atx style header",
			Tags:        []string{"headers", "atx", "spaces"},
		},
		{
			ID: "MD019", Alias: "no-multiple-space-atx",
			Description: "Multiple spaces after hash on atx style header",
			Tags:        []string{"headers", "atx", "spaces"},
		},
		{
			ID: "MD020", Alias: "no-missing-space-closed-atx",
			Description: "No space inside hashes on closed atx style header",
			Tags:        []string{"headers", "atx_closed", "spaces"},
		},
		{
			ID: "MD021", Alias: "no-multiple-space-closed-atx",
			Description: "Multiple spaces inside hashes on closed atx style header",
			Tags:        []string{"headers", "atx_closed", "spaces"},
		},
		{
			ID: "MD022", Alias: "blanks-around-headers",
			Description: "Headers should be surrounded by blank lines",
			Tags:        []string{"headers", "blank_lines"},
		},
		{
			ID: "MD023", Alias: "header-start-left",
			Description: "Headers must start at the beginning of the line",
			Tags:        []string{"headers", "spaces"},
		},
		{
			ID: "MD024", Alias: "no-duplicate-header",
			Description: "Multiple headers with the same content",
			Tags:        []string{"headers"},
			Params: []Param{{
				Name: "allow_different_nesting", Kind: KindBool, Default: false,
				MarkdownlintName: "siblings_only",
			}},
		},
		{
			ID: "MD025", Alias: "single-h1",
			Description: "Multiple top level headers in the same document",
			Tags:        []string{"headers"},
			Params:      []Param{{Name: "level", Kind: KindInt, Default: 1}},
		},
		{
			ID: "MD026", Alias: "no-trailing-punctuation",
			Description: "Trailing punctuation in header",
			Tags:        []string{"headers"},
			Params:      []Param{{Name: "punctuation", Kind: KindString, Default: defaultPunctuation}},
		},
		{
			ID: "MD027", Alias: "no-multiple-space-blockquote",
			Description: "Multiple spaces after blockquote symbol",
			Tags:        []string{"blockquote", "whitespace", "indentation"},
		},
		{
			ID: "MD028", Alias: "no-blanks-blockquote",
			Description: "Blank line inside blockquote",
			Tags:        []string{"blockquote", "whitespace"},
		},
		{
			ID: "MD029", Alias: "ol-prefix",
			Description: "Ordered list item prefix",
			Tags:        []string{"ol"},
			Params: []Param{{
				Name: "style", Kind: KindStyle, Default: style.Symbol("one"),
				Choices: []string{"one", "ordered"},
			}},
		},
		{
			ID: "MD030", Alias: "list-marker-space",
			Description: "Spaces after list markers",
			Tags:        []string{"ol", "ul", "whitespace"},
			Params: []Param{
				{Name: "ul_single", Kind: KindInt, Default: 1},
				{Name: "ol_single", Kind: KindInt, Default: 1},
				{Name: "ul_multi", Kind: KindInt, Default: 1},
				{Name: "ol_multi", Kind: KindInt, Default: 1},
			},
		},
		{
			ID: "MD031", Alias: "blanks-around-fences",
			Description: "Fenced code blocks should be surrounded by blank lines",
			Tags:        []string{"code", "blank_lines"},
		},
		{
			ID: "MD032", Alias: "blanks-around-lists",
			Description: "Lists should be surrounded by blank lines",
			Tags:        []string{"bullet", "ul", "ol", "blank_lines"},
		},
		{
			ID: "MD033", Alias: "no-inline-html",
			Description: "Inline HTML",
			Tags:        []string{"html"},
			Params:      []Param{{Name: "allowed_elements", Kind: KindString, Default: ""}},
		},
		{
			ID: "MD034", Alias: "no-bare-urls",
			Description: "Bare URL used",
			Tags:        []string{"links", "url"},
		},
		{
			ID: "MD035", Alias: "hr-style",
			Description: "Horizontal rule style",
			Tags:        []string{"hr"},
			Params:      []Param{{Name: "style", Kind: KindStyle, Default: style.Symbol("consistent")}},
		},
		{
			ID: "MD036", Alias: "no-emphasis-as-header",
			Description: "Emphasis used instead of a header",
			Tags:        []string{"headers", "emphasis"},
			Params:      []Param{{Name: "punctuation", Kind: KindString, Default: defaultPunctuation}},
		},
		{
			ID: "MD037", Alias: "no-space-in-emphasis",
			Description: "Spaces inside emphasis markers",
			Tags:        []string{"whitespace", "emphasis"},
		},
		{
			ID: "MD038", Alias: "no-space-in-code",
			Description: "Spaces inside code span elements",
			Tags:        []string{"whitespace", "code"},
		},
		{
			ID: "MD039", Alias: "no-space-in-links",
			Description: "Spaces inside link text",
			Tags:        []string{"whitespace", "links"},
		},
		{
			ID: "MD040", Alias: "fenced-code-language",
			Description: "Fenced code blocks should have a language specified",
			Tags:        []string{"code", "language"},
		},
		{
			ID: "MD041", Alias: "first-line-h1",
			Description: "First line in file should be a top level header",
			Tags:        []string{"headers"},
			Params:      []Param{{Name: "level", Kind: KindInt, Default: 1}},
		},
		{
			ID: "MD046", Alias: "code-block-style",
			Description: "Code block style",
			Tags:        []string{"code"},
			Params: []Param{{
				Name: "style", Kind: KindStyle, Default: style.Symbol("fenced"),
				Choices: []string{"fenced", "indented", "consistent"},
			}},
		},
		{
			ID: "MD047", Alias: "single-trailing-newline",
			Description: "File should end with a single newline character",
			Tags:        []string{"blank_lines"},
		},
	}
}
