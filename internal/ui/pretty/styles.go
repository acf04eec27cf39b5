// Package pretty renders mdlstyle's terminal output with lipgloss: problem
// listings, rule tables, summaries, diffs and help text.
package pretty

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// ANSI palette indices.
const (
	colorGray   = lipgloss.Color("8")
	colorRed    = lipgloss.Color("9")
	colorGreen  = lipgloss.Color("10")
	colorYellow = lipgloss.Color("11")
	colorBlue   = lipgloss.Color("12")
	colorCyan   = lipgloss.Color("14")
	colorWhite  = lipgloss.Color("7")
)

// Styles holds one lipgloss style per kind of output element.
type Styles struct {
	Error   lipgloss.Style
	Warning lipgloss.Style

	// Problem listings.
	FilePath   lipgloss.Style
	Location   lipgloss.Style
	RuleID     lipgloss.Style
	Message    lipgloss.Style
	SourceLine lipgloss.Style
	Caret      lipgloss.Style

	// Rule states in `show` and `rules`.
	Enabled  lipgloss.Style
	Disabled lipgloss.Style
	Unknown  lipgloss.Style
	Param    lipgloss.Style

	SummaryTitle lipgloss.Style
	Success      lipgloss.Style
	Failure      lipgloss.Style

	TableHeader    lipgloss.Style
	TableLegend    lipgloss.Style
	TableSeparator lipgloss.Style

	DiffHeader lipgloss.Style
	DiffAdd    lipgloss.Style
	DiffRemove lipgloss.Style
	DiffHunk   lipgloss.Style

	Heading lipgloss.Style
	Command lipgloss.Style
	Flag    lipgloss.Style

	Dim lipgloss.Style
}

// NewStyles returns the colored styles, or styles that render text
// unchanged when colorEnabled is false.
func NewStyles(colorEnabled bool) *Styles {
	if !colorEnabled {
		styles := &Styles{}
		for _, style := range styles.all() {
			*style = lipgloss.NewStyle()
		}
		return styles
	}

	fg := func(color lipgloss.Color) lipgloss.Style {
		return lipgloss.NewStyle().Foreground(color)
	}
	bold := lipgloss.NewStyle().Bold(true)

	return &Styles{
		Error:   fg(colorRed).Bold(true),
		Warning: fg(colorYellow).Bold(true),

		FilePath:   bold,
		Location:   fg(colorGray),
		RuleID:     fg(colorGray),
		Message:    lipgloss.NewStyle(),
		SourceLine: fg(colorWhite),
		Caret:      fg(colorRed),

		Enabled:  fg(colorGreen),
		Disabled: fg(colorGray),
		Unknown:  fg(colorYellow),
		Param:    fg(colorCyan),

		SummaryTitle: bold,
		Success:      fg(colorGreen).Bold(true),
		Failure:      fg(colorRed).Bold(true),

		TableHeader:    fg(colorWhite).Bold(true),
		TableLegend:    fg(colorGray).Italic(true),
		TableSeparator: fg(colorGray),

		DiffHeader: bold,
		DiffAdd:    fg(colorGreen),
		DiffRemove: fg(colorRed),
		DiffHunk:   fg(colorCyan),

		Heading: fg(colorYellow).Bold(true),
		Command: fg(colorCyan).Bold(true),
		Flag:    fg(colorBlue),

		Dim: fg(colorGray),
	}
}

func (s *Styles) all() []*lipgloss.Style {
	return []*lipgloss.Style{
		&s.Error, &s.Warning,
		&s.FilePath, &s.Location, &s.RuleID, &s.Message, &s.SourceLine, &s.Caret,
		&s.Enabled, &s.Disabled, &s.Unknown, &s.Param,
		&s.SummaryTitle, &s.Success, &s.Failure,
		&s.TableHeader, &s.TableLegend, &s.TableSeparator,
		&s.DiffHeader, &s.DiffAdd, &s.DiffRemove, &s.DiffHunk,
		&s.Heading, &s.Command, &s.Flag,
		&s.Dim,
	}
}

// IsColorEnabled resolves a --color mode ("auto", "always" or "never")
// for writer. Auto enables color on a terminal unless NO_COLOR is set.
func IsColorEnabled(mode string, writer io.Writer) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := writer.(*os.File)
	return ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
}
