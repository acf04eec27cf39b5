package cli

import (
	"errors"

	"github.com/yaklabco/mdlstyle/internal/configloader"
	"github.com/yaklabco/mdlstyle/pkg/fsutil"
	"github.com/yaklabco/mdlstyle/pkg/style"
)

// Exit codes for mdlstyle.
const (
	// ExitSuccess indicates successful execution with no problems.
	ExitSuccess = 0

	// ExitProblems indicates the style file has errors, or warnings in strict mode.
	ExitProblems = 1

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitConfigError indicates a malformed style file or tool configuration.
	ExitConfigError = 65

	// ExitInternalError indicates an internal error.
	ExitInternalError = 70

	// ExitIOError indicates file I/O errors.
	ExitIOError = 74
)

// ErrProblemsFound is returned after problems have been reported to the user.
var ErrProblemsFound = errors.New("problems found")

// errUsage marks errors caused by bad arguments or flag values.
var errUsage = errors.New("invalid usage")

// ExitCode maps an error returned by the root command to a process exit code.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrProblemsFound):
		return ExitProblems
	case errors.Is(err, errUsage):
		return ExitInvalidUsage
	case errors.Is(err, configloader.ErrInvalidConfig),
		errors.Is(err, style.ErrMalformedConfig),
		errors.Is(err, style.ErrUnknownRule):
		return ExitConfigError
	case errors.Is(err, style.ErrNotFound),
		errors.Is(err, fsutil.ErrNotFound),
		errors.Is(err, fsutil.ErrIsDirectory),
		errors.Is(err, fsutil.ErrModified):
		return ExitIOError
	default:
		return ExitInternalError
	}
}
