// Package report serializes style file problems for machines: a plain JSON
// document and SARIF 2.1.0 for code scanning tools.
package report

import (
	"encoding/json"
	"fmt"
	"io"
)

// Format is a machine-readable report format.
type Format string

// Report formats.
const (
	FormatJSON  Format = "json"
	FormatSARIF Format = "sarif"
)

// ParseFormat parses a format name.
func ParseFormat(name string) (Format, error) {
	switch name {
	case "json":
		return FormatJSON, nil
	case "sarif":
		return FormatSARIF, nil
	default:
		return "", fmt.Errorf("unknown report format %q; valid formats: json, sarif", name)
	}
}

// Severity classifies a problem.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Problem is one issue found in a style file. Line and Column are 1-based;
// zero means unknown.
type Problem struct {
	Line     int      `json:"line,omitempty"`
	Column   int      `json:"column,omitempty"`
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
	RuleID   string   `json:"ruleId,omitempty"`
}

// Tool identifies the program that produced a report.
type Tool struct {
	Name    string
	Version string
	URI     string
}

// Report is the outcome of checking one style file.
type Report struct {
	Tool     Tool
	Path     string
	Problems []Problem

	// Describe returns a short description for a rule ID, or "" if unknown.
	Describe func(ruleID string) string
}

// Counts returns the number of errors and warnings.
func (r *Report) Counts() (errors, warnings int) {
	for _, problem := range r.Problems {
		switch problem.Severity {
		case SeverityError:
			errors++
		case SeverityWarning:
			warnings++
		}
	}
	return errors, warnings
}

// Write encodes the report in format.
func (r *Report) Write(w io.Writer, format Format) error {
	var doc any
	switch format {
	case FormatJSON:
		doc = r.jsonDocument()
	case FormatSARIF:
		doc = r.sarifDocument()
	default:
		return fmt.Errorf("unsupported report format %q", format)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode %s report: %w", format, err)
	}
	return nil
}

// jsonOutput is the top-level JSON document.
type jsonOutput struct {
	Version  string      `json:"version,omitempty"`
	Style    string      `json:"style"`
	Valid    bool        `json:"valid"`
	Problems []Problem   `json:"problems"`
	Summary  jsonSummary `json:"summary"`
}

type jsonSummary struct {
	Errors   int `json:"errors"`
	Warnings int `json:"warnings"`
}

func (r *Report) jsonDocument() *jsonOutput {
	errors, warnings := r.Counts()
	problems := r.Problems
	if problems == nil {
		problems = []Problem{}
	}
	return &jsonOutput{
		Version:  r.Tool.Version,
		Style:    r.Path,
		Valid:    errors == 0,
		Problems: problems,
		Summary:  jsonSummary{Errors: errors, Warnings: warnings},
	}
}
