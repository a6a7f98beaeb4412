package apperrors

import "fmt"

type AppError struct {
	Code    string
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(code, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

func Wrap(err error, code, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Common error codes
const (
	ErrCodeValidation          = "VALIDATION_ERROR"
	ErrCodeNotFound            = "NOT_FOUND"
	ErrCodeInvalidDate         = "INVALID_DATE"
	ErrCodeInvalidDuration     = "INVALID_DURATION"
	ErrCodeDuplicateItem       = "DUPLICATE_ITEM"
	ErrCodeDuplicateRequest    = "DUPLICATE_REQUEST"
	ErrCodeUpstreamUnavailable = "UPSTREAM_UNAVAILABLE"
	ErrCodeIncompleteMetadata  = "INCOMPLETE_METADATA"
	ErrCodePermissionDenied    = "PERMISSION_DENIED"
	ErrCodeInvalidTransition   = "INVALID_TRANSITION"
	ErrCodeUnauthorized        = "UNAUTHORIZED"
	ErrCodeInternalError       = "INTERNAL_ERROR"
)

// Code returns the application error code carried by err, or
// ErrCodeInternalError when err is not an *AppError.
func Code(err error) string {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Code
	}
	return ErrCodeInternalError
}
