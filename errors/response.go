package errors

import (
	stderrors "errors"
)

// ErrorResponse is the JSON structure returned to clients: a field-keyed
// message map under "errors". Non-validation errors use the "message" key.
type ErrorResponse struct {
	Errors map[string]string `json:"errors"`
}

// ToResponse converts an AppError to an ErrorResponse for JSON serialization.
// Causes are never included.
func (e *AppError) ToResponse() ErrorResponse {
	if len(e.Fields) > 0 {
		return ErrorResponse{Errors: e.Fields}
	}
	return ErrorResponse{Errors: map[string]string{"message": e.Message}}
}

// IsNotFound reports whether err is a not-found AppError.
func IsNotFound(err error) bool {
	if appErr, ok := AsAppError(err); ok {
		return appErr.Code == ErrCodeNotFound
	}
	return false
}

// IsAppError checks if an error is an AppError.
func IsAppError(err error) bool {
	var appErr *AppError
	return stderrors.As(err, &appErr)
}

// AsAppError converts an error to an AppError if possible.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}
