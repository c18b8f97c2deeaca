package errors

import (
	stderrors "errors"
	"fmt"
	"strings"

	"crimescope/domain/core"
)

// AppError represents a structured application error
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// New creates a new AppError
func New(code, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an error with additional context
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	if appErr, ok := err.(*AppError); ok {
		return &AppError{
			Code:    appErr.Code,
			Message: message,
			Cause:   appErr,
		}
	}
	return &AppError{
		Code:    CodeInternalError,
		Message: message,
		Cause:   err,
	}
}

// Wrapf wraps an error with formatted additional context
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}

// WithCode adds an error code to an existing error
func WithCode(code string, err error) error {
	if err == nil {
		return nil
	}
	if appErr, ok := err.(*AppError); ok {
		return &AppError{
			Code:    code,
			Message: appErr.Message,
			Cause:   appErr.Cause,
		}
	}
	return &AppError{
		Code:    code,
		Message: err.Error(),
		Cause:   err,
	}
}

// WithHint appends a suggestion to an AppError's message, keeping its code and cause
func WithHint(err error, hint string) error {
	appErr, ok := err.(*AppError)
	if !ok || hint == "" {
		return err
	}
	return &AppError{
		Code:    appErr.Code,
		Message: appErr.Message + ". " + hint,
		Cause:   appErr.Cause,
	}
}

// IsAppError checks if an error is an AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return stderrors.As(err, &appErr)
}

// GetCode returns the code of the outermost AppError in the chain, otherwise "UNKNOWN"
func GetCode(err error) string {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Code
	}
	return "UNKNOWN"
}

// HasCode reports whether any AppError in the chain carries code
func HasCode(err error, code string) bool {
	for err != nil {
		if appErr, ok := err.(*AppError); ok && appErr.Code == code {
			return true
		}
		err = stderrors.Unwrap(err)
	}
	return false
}

// Predefined error codes
const (
	CodeConfigInvalid        = "CONFIG_INVALID"
	CodeInternalError        = "INTERNAL_ERROR"
	CodeInvalidInput         = "INVALID_INPUT"
	CodeSourceNotFound       = "SOURCE_NOT_FOUND"
	CodeUnsupportedSource    = "UNSUPPORTED_SOURCE"
	CodeMissingRequiredField = "MISSING_REQUIRED_FIELD"
	CodeRenderFailed         = "RENDER_FAILED"
)

// Common error constructors
func ConfigInvalid(message string) *AppError {
	return New(CodeConfigInvalid, message)
}

func InvalidInput(message string) *AppError {
	return New(CodeInvalidInput, message)
}

// SourceNotFound tells the user how to supply a table when neither the requested
// path nor the default resource exists.
func SourceNotFound(defaultResource string, tried []string) *AppError {
	return &AppError{
		Code:    CodeSourceNotFound,
		Message: "Provide --csv path or include " + defaultResource,
		Cause:   core.NewSourceNotFoundError(tried...),
	}
}

// EmptySource reports a source without even a header row
func EmptySource(detail string) *AppError {
	return &AppError{
		Code:    CodeInvalidInput,
		Message: detail,
		Cause:   core.ErrEmptySource,
	}
}

// InvalidTopK rejects a non-positive category limit
func InvalidTopK(k int) *AppError {
	return &AppError{
		Code:    CodeInvalidInput,
		Message: fmt.Sprintf("topk must be a positive integer, got %d", k),
		Cause:   core.ErrInvalidTopK,
	}
}

func UnsupportedSource(path string) *AppError {
	return &AppError{
		Code:    CodeUnsupportedSource,
		Message: fmt.Sprintf("cannot read %s", path),
		Cause:   core.ErrUnsupportedSource,
	}
}

// MissingRequiredField lists every alias that was tried so the user knows what column to add.
func MissingRequiredField(field string, candidates []string) *AppError {
	return &AppError{
		Code:    CodeMissingRequiredField,
		Message: fmt.Sprintf("Could not find a %s column. Add one of: %s", field, strings.Join(candidates, ", ")),
		Cause:   core.NewMissingFieldError(field, candidates),
	}
}

func RenderFailed(artifact string, cause error) *AppError {
	return &AppError{
		Code:    CodeRenderFailed,
		Message: fmt.Sprintf("failed to render %s", artifact),
		Cause:   cause,
	}
}
