package services

import "errors"

// ErrorCode classifies a ServiceError so the HTTP layer can pick a status
// without inspecting message strings.
type ErrorCode string

const (
	ErrorInvalid      ErrorCode = "invalid"
	ErrorUnauthorized ErrorCode = "unauthorized"
	ErrorNotFound     ErrorCode = "not_found"
	ErrorConflict     ErrorCode = "conflict"
)

// ServiceError is the error type services return for expected failures.
// Fields carries per-field validation reasons when the payload was rejected.
type ServiceError struct {
	Code    ErrorCode
	Message string
	Fields  map[string]string
}

func (e *ServiceError) Error() string {
	return e.Message
}

func NewInvalidError(msg string) *ServiceError {
	return &ServiceError{Code: ErrorInvalid, Message: msg}
}

func NewValidationError(fields map[string]string) *ServiceError {
	return &ServiceError{Code: ErrorInvalid, Message: "validation failed", Fields: fields}
}

func NewUnauthorizedError(msg string) *ServiceError {
	return &ServiceError{Code: ErrorUnauthorized, Message: msg}
}

func NewNotFoundError(msg string) *ServiceError {
	return &ServiceError{Code: ErrorNotFound, Message: msg}
}

func NewConflictError(msg string) *ServiceError {
	return &ServiceError{Code: ErrorConflict, Message: msg}
}

// AsServiceError unwraps err to a *ServiceError when one is in the chain.
func AsServiceError(err error) (*ServiceError, bool) {
	var se *ServiceError
	if errors.As(err, &se) {
		return se, true
	}
	return nil, false
}
