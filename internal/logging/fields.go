// Package logging provides a structured logging wrapper around charmbracelet/log.
package logging

// Field name constants for structured logging.
const (
	// Common fields.
	FieldError      = "error"
	FieldPath       = "path"
	FieldFiles      = "files"
	FieldOutput     = "output"
	FieldWorkingDir = "working_dir"
	FieldDuration   = "duration"
	FieldSize       = "size"

	// Style profile fields.
	FieldStyle      = "style"
	FieldLine       = "line"
	FieldDirectives = "directives"
	FieldBaseline   = "all"
	FieldEnabled    = "enabled"
	FieldParameters = "parameters"
	FieldWarnings   = "warnings"
	FieldPolicy     = "unknown_rules"

	// Export fields.
	FieldTarget = "target"
	FieldFormat = "format"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"

	// Rule fields.
	FieldRule        = "rule"
	FieldTag         = "tag"
	FieldDescription = "description"
)
