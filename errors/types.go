package errors

import (
	"encoding/json"
	"fmt"
)

// ErrorCode represents a specific error condition
type ErrorCode string

const (
	// Session lifecycle errors
	ErrCodeNoActiveSession ErrorCode = "NO_ACTIVE_SESSION"
	ErrCodeInvalidState    ErrorCode = "INVALID_STATE"
	ErrCodeUnknownFiletype ErrorCode = "UNKNOWN_FILETYPE"

	// Host interaction errors
	ErrCodeSpawnFailed   ErrorCode = "SPAWN_FAILED"
	ErrCodeCommandFailed ErrorCode = "COMMAND_FAILED"

	// Configuration errors
	ErrCodeConfigNotFound ErrorCode = "CONFIG_NOT_FOUND"
	ErrCodeConfigInvalid  ErrorCode = "CONFIG_INVALID"

	// General errors
	ErrCodeInternal     ErrorCode = "INTERNAL_ERROR"
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
)

// ReplError represents a structured error with context
type ReplError struct {
	Code    ErrorCode              `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
	Cause   error                  `json:"-"`
}

// Error implements the error interface
func (e *ReplError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *ReplError) Unwrap() error {
	return e.Cause
}

// WithDetail adds a detail to the error
func (e *ReplError) WithDetail(key string, value interface{}) *ReplError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// ToJSON converts the error to JSON
func (e *ReplError) ToJSON() string {
	data, _ := json.MarshalIndent(e, "", "  ")
	return string(data)
}

// New creates a new ReplError
func New(code ErrorCode, message string) *ReplError {
	return &ReplError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an existing error with a ReplError
func Wrap(err error, code ErrorCode, message string) *ReplError {
	return &ReplError{
		Code:    code,
		Message: message,
		Cause:   err,
	}
}

// Is checks if an error is a specific ReplError code
func Is(err error, code ErrorCode) bool {
	if err == nil {
		return false
	}

	replErr, ok := err.(*ReplError)
	if !ok {
		// Try to unwrap
		if unwrapper, ok := err.(interface{ Unwrap() error }); ok {
			return Is(unwrapper.Unwrap(), code)
		}
		return false
	}

	return replErr.Code == code
}

// GetCode extracts the error code from an error
func GetCode(err error) ErrorCode {
	if err == nil {
		return ""
	}

	replErr, ok := err.(*ReplError)
	if !ok {
		// Try to unwrap
		if unwrapper, ok := err.(interface{ Unwrap() error }); ok {
			return GetCode(unwrapper.Unwrap())
		}
		return ""
	}

	return replErr.Code
}
