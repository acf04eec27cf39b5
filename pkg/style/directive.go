package style

// DirectiveKind identifies a style-file statement.
type DirectiveKind int

const (
	// DirectiveAll enables every known rule as the baseline.
	DirectiveAll DirectiveKind = iota + 1

	// DirectiveRule sets parameters for one rule.
	DirectiveRule

	// DirectiveExcludeRule disables one rule.
	DirectiveExcludeRule

	// DirectiveTag enables every rule carrying a tag.
	DirectiveTag

	// DirectiveExcludeTag disables every rule carrying a tag.
	DirectiveExcludeTag
)

// directiveNames maps source keywords to directive kinds.
//
//nolint:gochecknoglobals // Read-only lookup table.
var directiveNames = map[string]DirectiveKind{
	"all":          DirectiveAll,
	"rule":         DirectiveRule,
	"exclude_rule": DirectiveExcludeRule,
	"tag":          DirectiveTag,
	"exclude_tag":  DirectiveExcludeTag,
}

// String returns the keyword used in style files.
func (k DirectiveKind) String() string {
	for name, kind := range directiveNames {
		if kind == k {
			return name
		}
	}
	return "unknown"
}

// Param is a single `name: value` pair on a rule directive.
type Param struct {
	Name  string
	Value any
}

// Directive is one parsed statement of a style file.
type Directive struct {
	Kind DirectiveKind

	// Target is the rule identifier or tag name. Empty for DirectiveAll.
	Target string

	// TargetSymbol records that the target was written as a symbol.
	TargetSymbol bool

	// Params holds rule parameters in source order.
	Params []Param

	// Line is the 1-based line where the directive starts.
	Line int

	// EndLine is the line of the directive's last token.
	EndLine int
}

// Comment is a `#` comment. Text excludes the leading '#'.
type Comment struct {
	Line     int
	Text     string
	Trailing bool
}

// File is a parsed style file with its comments.
type File struct {
	Directives []Directive
	Comments   []Comment
}

// clone deep-copies the directive.
func (d Directive) clone() Directive {
	out := d
	if d.Params != nil {
		out.Params = make([]Param, len(d.Params))
		for i, param := range d.Params {
			out.Params[i] = Param{Name: param.Name, Value: cloneValue(param.Value)}
		}
	}
	return out
}
