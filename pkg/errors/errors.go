package errors

import (
	"errors"
	"fmt"
	"io/fs"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

// Error codes for different error categories
const (
	// General errors
	ErrUnknown      ErrorCode = "UNKNOWN"
	ErrInternal     ErrorCode = "INTERNAL"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"
	ErrConfigValid ErrorCode = "CONFIG_INVALID"

	// Directory errors
	ErrTargetNotFound ErrorCode = "TARGET_NOT_FOUND"
	ErrSourceNotFound ErrorCode = "SOURCE_NOT_FOUND"

	// FileSystem errors
	ErrFileAccess    ErrorCode = "FILE_ACCESS"
	ErrFileWrite     ErrorCode = "FILE_WRITE"
	ErrSymlinkCreate ErrorCode = "SYMLINK_CREATE"
	ErrSymlinkRemove ErrorCode = "SYMLINK_REMOVE"
)

// RuleSyncError represents a structured error with code and details
type RuleSyncError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *RuleSyncError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *RuleSyncError) Unwrap() error {
	return e.Wrapped
}

// Is matches any RuleSyncError carrying the same code
func (e *RuleSyncError) Is(target error) bool {
	var targetErr *RuleSyncError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new RuleSyncError with the given code and message
func New(code ErrorCode, message string) *RuleSyncError {
	return &RuleSyncError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new RuleSyncError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *RuleSyncError {
	return &RuleSyncError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a RuleSyncError
func Wrap(err error, code ErrorCode, message string) *RuleSyncError {
	if err == nil {
		return nil
	}
	return &RuleSyncError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *RuleSyncError {
	if err == nil {
		return nil
	}
	return &RuleSyncError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *RuleSyncError) WithDetail(key string, value interface{}) *RuleSyncError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var rsErr *RuleSyncError
	if errors.As(err, &rsErr) {
		return rsErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a RuleSyncError
func GetErrorCode(err error) ErrorCode {
	var rsErr *RuleSyncError
	if errors.As(err, &rsErr) {
		return rsErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a RuleSyncError
func GetErrorDetails(err error) map[string]interface{} {
	var rsErr *RuleSyncError
	if errors.As(err, &rsErr) {
		return rsErr.Details
	}
	return nil
}

// Message returns the human message of a RuleSyncError, without the code
// prefix or the wrapped cause. Other errors return their Error() text.
func Message(err error) string {
	var rsErr *RuleSyncError
	if errors.As(err, &rsErr) {
		return rsErr.Message
	}
	return err.Error()
}

// IsNotExist reports whether err means a path does not exist
func IsNotExist(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}
