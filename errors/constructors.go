package errors

import (
	"fmt"
	"strings"
)

// NoActiveSession creates an error for a send attempted without a live job
func NoActiveSession(filetype string) *ReplError {
	return New(ErrCodeNoActiveSession,
		fmt.Sprintf("no active repl session for filetype '%s'", filetype)).
		WithDetail("filetype", filetype)
}

// InvalidState creates an error for an operation that requires an existing session
func InvalidState(op, filetype string) *ReplError {
	return New(ErrCodeInvalidState,
		fmt.Sprintf("%s called for filetype '%s' without an existing session", op, filetype)).
		WithDetail("operation", op).
		WithDetail("filetype", filetype)
}

// UnknownFiletype creates an error for a clear of an untracked filetype
func UnknownFiletype(filetype string) *ReplError {
	return New(ErrCodeUnknownFiletype,
		fmt.Sprintf("no repl session tracked for filetype '%s'", filetype)).
		WithDetail("filetype", filetype)
}

// SpawnFailed wraps a host failure to start a terminal job
func SpawnFailed(command []string, err error) *ReplError {
	return Wrap(err, ErrCodeSpawnFailed,
		fmt.Sprintf("failed to spawn repl: %s", strings.Join(command, " "))).
		WithDetail("command", command)
}

// ConfigNotFound creates a configuration not found error
func ConfigNotFound(path string) *ReplError {
	return New(ErrCodeConfigNotFound, fmt.Sprintf("definitions file not found: %s", path)).
		WithDetail("path", path)
}

// ConfigInvalid creates an invalid configuration error
func ConfigInvalid(reason string) *ReplError {
	return New(ErrCodeConfigInvalid, fmt.Sprintf("invalid configuration: %s", reason))
}

// CommandFailed wraps a host command execution failure
func CommandFailed(cmd string, err error) *ReplError {
	return Wrap(err, ErrCodeCommandFailed, fmt.Sprintf("host command failed: %s", cmd)).
		WithDetail("command", cmd)
}
