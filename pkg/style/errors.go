package style

import (
	"errors"
	"fmt"
)

// Sentinel errors returned (wrapped) by Load and Parse.
var (
	// ErrNotFound indicates the style file does not exist.
	ErrNotFound = errors.New("style file not found")

	// ErrMalformedConfig indicates a syntax error in a directive.
	ErrMalformedConfig = errors.New("malformed style file")

	// ErrUnknownRule indicates a rule or tag the catalog does not know.
	ErrUnknownRule = errors.New("unknown rule")
)

// SyntaxError describes a malformed directive.
type SyntaxError struct {
	// Path is the style file name (may be empty for in-memory input).
	Path string

	// Line is the 1-based line of the offending token.
	Line int

	// Column is the 1-based column of the offending token.
	Column int

	// Msg describes the problem.
	Msg string
}

// Error implements the error interface.
func (e *SyntaxError) Error() string {
	loc := fmt.Sprintf("%d:%d", e.Line, e.Column)
	if e.Path != "" {
		loc = e.Path + ":" + loc
	}
	return loc + ": " + e.Msg
}

// Unwrap lets errors.Is match ErrMalformedConfig.
func (e *SyntaxError) Unwrap() error {
	return ErrMalformedConfig
}

// UnknownRuleError reports a rule identifier or tag missing from the catalog.
type UnknownRuleError struct {
	Path   string
	Line   int
	RuleID string

	// Tag is set instead of RuleID when an unknown tag was referenced.
	Tag string
}

// Error implements the error interface.
func (e *UnknownRuleError) Error() string {
	what := fmt.Sprintf("unknown rule %q", e.RuleID)
	if e.Tag != "" {
		what = fmt.Sprintf("unknown tag %q", e.Tag)
	}
	if e.Path != "" {
		return fmt.Sprintf("%s:%d: %s", e.Path, e.Line, what)
	}
	return fmt.Sprintf("line %d: %s", e.Line, what)
}

// Unwrap lets errors.Is match ErrUnknownRule.
func (e *UnknownRuleError) Unwrap() error {
	return ErrUnknownRule
}

// Warning is a non-fatal finding attached to a Profile.
type Warning struct {
	Line    int
	RuleID  string
	Message string
}

// String renders the warning with its line number.
func (w Warning) String() string {
	if w.Line > 0 {
		return fmt.Sprintf("line %d: %s", w.Line, w.Message)
	}
	return w.Message
}
