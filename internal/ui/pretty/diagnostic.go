package pretty

import (
	"fmt"
	"strings"
)

// Severity classifies a reported problem.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Problem is one issue found in a style file.
type Problem struct {
	Path     string
	Line     int
	Column   int
	Severity Severity
	Message  string
	RuleID   string
}

// FormatProblem formats a single problem for terminal output. When
// sourceLine is non-empty it is printed below with a caret at Column.
func (s *Styles) FormatProblem(problem Problem, sourceLine string) string {
	var builder strings.Builder

	location := s.FilePath.Render(problem.Path)
	switch {
	case problem.Line > 0 && problem.Column > 0:
		location += s.Location.Render(fmt.Sprintf(":%d:%d", problem.Line, problem.Column))
	case problem.Line > 0:
		location += s.Location.Render(fmt.Sprintf(":%d", problem.Line))
	}

	builder.WriteString(fmt.Sprintf("  %s  %s  %s",
		location,
		s.FormatSeverity(problem.Severity),
		s.Message.Render(problem.Message),
	))
	if problem.RuleID != "" {
		builder.WriteString("  " + s.RuleID.Render("("+problem.RuleID+")"))
	}
	builder.WriteString("\n")

	if sourceLine != "" {
		builder.WriteString(s.FormatSourceContext(sourceLine, problem.Column))
	}

	return builder.String()
}

// FormatSeverity returns a styled severity string.
func (s *Styles) FormatSeverity(sev Severity) string {
	switch sev {
	case SeverityError:
		return s.Error.Render("error")
	case SeverityWarning:
		return s.Warning.Render("warning")
	default:
		return string(sev)
	}
}

// FormatSourceContext formats the source line with a caret marker.
func (s *Styles) FormatSourceContext(line string, column int) string {
	var builder strings.Builder

	const indent = "        "

	builder.WriteString(indent + s.SourceLine.Render(line) + "\n")

	if column > 0 {
		padding := indent + strings.Repeat(" ", column-1)
		builder.WriteString(padding + s.Caret.Render("^") + "\n")
	}

	return builder.String()
}

// FormatFileHeader formats a file header for grouped output.
func (s *Styles) FormatFileHeader(path string, problemCount int) string {
	header := s.FilePath.Render(path)
	if problemCount > 0 {
		header += s.Dim.Render(fmt.Sprintf(" (%d problems)", problemCount))
	}
	return header
}
