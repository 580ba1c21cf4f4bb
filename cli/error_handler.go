package cli

import (
	"fmt"
	"os"

	"github.com/grovetools/repl/errors"
)

// ErrorHandler prints user-friendly messages for known error codes
// before passing the error back for exit-code handling.
type ErrorHandler struct {
	Verbose bool
}

// NewErrorHandler creates a new error handler
func NewErrorHandler(verbose bool) *ErrorHandler {
	return &ErrorHandler{Verbose: verbose}
}

// Handle provides user-friendly error messages based on error code
func (h *ErrorHandler) Handle(err error) error {
	switch errors.GetCode(err) {
	case errors.ErrCodeConfigNotFound:
		fmt.Fprintf(os.Stderr, "No repls.yml found. Create one in your project or in ~/.config/grove-repl/.\n")

	case errors.ErrCodeConfigInvalid:
		fmt.Fprintf(os.Stderr, "The definitions file could not be parsed:\n  %v\n", err)

	case errors.ErrCodeNoActiveSession:
		if replErr, ok := err.(*errors.ReplError); ok {
			fmt.Fprintf(os.Stderr, "No repl is open for filetype '%v'. Open one first.\n", replErr.Details["filetype"])
		}

	case errors.ErrCodeSpawnFailed:
		fmt.Fprintf(os.Stderr, "The repl process failed to start:\n  %v\n", err)

	default:
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}

	if h.Verbose {
		if replErr, ok := err.(*errors.ReplError); ok {
			fmt.Fprintln(os.Stderr, replErr.ToJSON())
		}
	}

	return err
}
