package errors

import (
	"errors"
	"fmt"
	"runtime/debug"
)

// AppError is the single error type crossing package boundaries. Code drives
// the HTTP status; Message is what API clients see when IsUserFacing is set.
type AppError struct {
	Code            Code
	Message         string
	InternalDetails string
	IsUserFacing    bool
	SuggestedAction string
	WrappedError    error
	StackTrace      string
	// Fields carries per-field detail for input validation failures.
	Fields map[string]string
}

func (e *AppError) Error() string {
	if e.WrappedError != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.WrappedError)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.WrappedError
}

func build(code Code, message string, userFacing bool, suggestion string, wrapped error) *AppError {
	return &AppError{
		Code:            code,
		Message:         message,
		IsUserFacing:    userFacing,
		SuggestedAction: suggestion,
		WrappedError:    wrapped,
		StackTrace:      string(debug.Stack()),
	}
}

func New(code Code, message string) *AppError {
	return build(code, message, false, "", nil)
}

func NewUserFacing(code Code, message string, suggestion string) *AppError {
	return build(code, message, true, suggestion, nil)
}

// NotFound is shorthand for a user facing CodeResourceNotFound error.
func NotFound(kind, id string) *AppError {
	return NewUserFacing(CodeResourceNotFound, fmt.Sprintf("%s '%s' not found", kind, id), "")
}

// Conflict is shorthand for a user facing CodeResourceConflict error.
func Conflict(format string, args ...any) *AppError {
	return NewUserFacing(CodeResourceConflict, fmt.Sprintf(format, args...), "")
}

// PermissionDenied is shorthand for a user facing CodePermissionDenied error.
func PermissionDenied(message string) *AppError {
	return NewUserFacing(CodePermissionDenied, message, "")
}

// InvalidInput builds a user facing CodeInvalidInput error with field details.
func InvalidInput(message string, fields map[string]string) *AppError {
	e := NewUserFacing(CodeInvalidInput, message, "")
	e.Fields = fields
	return e
}

// Wrap classifies err under code unless it already carries a classification,
// in which case the innermost AppError is returned as is.
func Wrap(err error, code Code, message string) *AppError {
	if err == nil {
		return nil
	}
	if appErr, ok := As(err); ok {
		return appErr
	}
	return build(code, message, false, "", err)
}

// WrapUserFacing reclassifies err with a message safe to show API clients.
// The inner error text is kept in InternalDetails for logging.
func WrapUserFacing(err error, code Code, message string, suggestion string) *AppError {
	if err == nil {
		return nil
	}
	wrapped := build(code, message, true, suggestion, err)
	if inner, ok := As(err); ok {
		wrapped.InternalDetails = inner.Error()
		wrapped.StackTrace = inner.StackTrace
	}
	return wrapped
}

// As returns the outermost AppError in err's chain.
func As(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

func GetCode(err error) Code {
	if appErr, ok := As(err); ok {
		return appErr.Code
	}
	return CodeUnknown
}

func Is(err error, code Code) bool {
	appErr, ok := As(err)
	return ok && appErr.Code == code
}

// GetUserFacingMessage walks the chain for the first user facing AppError and
// returns its message and suggestion. The boolean is false when none exists.
func GetUserFacingMessage(err error) (string, string, bool) {
	for err != nil {
		appErr, ok := As(err)
		if !ok {
			break
		}
		if appErr.IsUserFacing {
			return appErr.Message, appErr.SuggestedAction, true
		}
		err = appErr.WrappedError
	}
	return "An unexpected error occurred.", "Check logs for more details.", false
}
