package cli

import (
	"errors"

	"github.com/yaklabco/sharplint/pkg/runner"
)

// Exit codes for sharplint.
const (
	// ExitSuccess indicates successful execution with no issues.
	ExitSuccess = 0

	// ExitLintErrors indicates lint completed but found errors.
	ExitLintErrors = 1

	// ExitLintWarnings indicates lint completed but found warnings (when strict mode).
	ExitLintWarnings = 2

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitConfigError indicates configuration file errors.
	ExitConfigError = 65

	// ExitInternalError indicates an internal error.
	ExitInternalError = 70

	// ExitIOError indicates file I/O errors.
	ExitIOError = 74
)

var (
	// ErrLintIssuesFound is returned when lint issues are found.
	ErrLintIssuesFound = errors.New("lint issues found")

	// ErrConfig marks configuration loading failures.
	ErrConfig = errors.New("failed to load configuration")

	// ErrUsage marks invalid flag values.
	ErrUsage = errors.New("invalid usage")
)

// ExitError carries the process exit code for an error.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string { return e.Err.Error() }

func (e *ExitError) Unwrap() error { return e.Err }

// ExitCodeFromResult determines the exit code based on result and strict mode.
// Fade-out spans never affect the exit code.
func ExitCodeFromResult(result *runner.Result, strict bool) int {
	if result == nil {
		return ExitSuccess
	}

	errs := result.Stats.DiagnosticsBySeverity["error"]
	warnings := result.Stats.DiagnosticsBySeverity["warning"]

	if errs > 0 {
		return ExitLintErrors
	}

	if strict && warnings > 0 {
		return ExitLintWarnings
	}

	if result.Stats.FilesErrored > 0 {
		return ExitIOError
	}

	return ExitSuccess
}

// ExitCode maps an error returned by a command to a process exit code.
func ExitCode(err error) int {
	var exitErr *ExitError
	switch {
	case err == nil:
		return ExitSuccess
	case errors.As(err, &exitErr):
		return exitErr.Code
	case errors.Is(err, ErrConfig):
		return ExitConfigError
	case errors.Is(err, ErrUsage):
		return ExitInvalidUsage
	default:
		return ExitInternalError
	}
}
