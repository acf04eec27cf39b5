package style

import (
	"bytes"
	"cmp"
	"slices"
	"strings"
)

// Format renders directives as canonical style-file source: one directive
// per line, single-quoted targets and `name: value` parameters. Parsing the
// output yields the same directives (apart from line numbers).
func Format(directives []Directive) []byte {
	var buf bytes.Buffer
	for _, directive := range directives {
		buf.WriteString(FormatDirective(directive))
		buf.WriteByte('\n')
	}
	return buf.Bytes()
}

// FormatDirective renders a single directive without a trailing newline.
func FormatDirective(directive Directive) string {
	if directive.Kind == DirectiveAll {
		return "all"
	}

	var builder strings.Builder
	builder.WriteString(directive.Kind.String())
	builder.WriteByte(' ')
	if directive.TargetSymbol && isIdentifier(directive.Target) {
		builder.WriteString(FormatValue(Symbol(directive.Target)))
	} else {
		builder.WriteString(quoteString(directive.Target))
	}

	for _, param := range directive.Params {
		builder.WriteString(", ")
		if isIdentifier(param.Name) {
			builder.WriteString(param.Name)
			builder.WriteString(": ")
		} else {
			builder.WriteString(quoteString(param.Name))
			builder.WriteString(" => ")
		}
		builder.WriteString(FormatValue(param.Value))
	}
	return builder.String()
}

// FormatFile renders a parsed file like Format while keeping its comments.
// Full-line comments stay in place, trailing comments follow the directive
// they were written on, and runs of blank lines collapse to one.
func FormatFile(file *File) []byte {
	type item struct {
		start, end int
		text       string
	}

	items := make([]item, 0, len(file.Directives)+len(file.Comments))
	for _, directive := range file.Directives {
		end := max(directive.EndLine, directive.Line)
		text := FormatDirective(directive)
		for _, comment := range file.Comments {
			if comment.Trailing && comment.Line >= directive.Line && comment.Line <= end {
				text += " #" + comment.Text
			}
		}
		items = append(items, item{start: directive.Line, end: end, text: text})
	}
	for _, comment := range file.Comments {
		if !comment.Trailing {
			items = append(items, item{start: comment.Line, end: comment.Line, text: "#" + comment.Text})
		}
	}
	slices.SortStableFunc(items, func(a, b item) int {
		return cmp.Compare(a.start, b.start)
	})

	var buf bytes.Buffer
	for i, it := range items {
		if i > 0 && it.start > items[i-1].end+1 {
			buf.WriteByte('\n')
		}
		buf.WriteString(it.text)
		buf.WriteByte('\n')
	}
	return buf.Bytes()
}
