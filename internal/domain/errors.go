package domain

import (
	"net/http"
)

type ErrorCode string

const (
	ErrCodeValidation   ErrorCode = "VALIDATION"
	ErrCodeNotFound     ErrorCode = "NOT_FOUND"
	ErrCodeConflict     ErrorCode = "CONFLICT"
	ErrCodeUnauthorized ErrorCode = "UNAUTHORIZED"
	ErrCodeInternal     ErrorCode = "INTERNAL"
)

// AppError keeps domain level errors consistent.
type AppError struct {
	Code    ErrorCode
	Message string
	Status  int
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NewValidationError(message string, err error) *AppError {
	return &AppError{Code: ErrCodeValidation, Message: message, Status: http.StatusBadRequest, Err: err}
}

func NewNotFoundError(message string, err error) *AppError {
	return &AppError{Code: ErrCodeNotFound, Message: message, Status: http.StatusNotFound, Err: err}
}

func NewConflictError(message string, err error) *AppError {
	return &AppError{Code: ErrCodeConflict, Message: message, Status: http.StatusConflict, Err: err}
}

func NewUnauthorizedError(message string) *AppError {
	return &AppError{Code: ErrCodeUnauthorized, Message: message, Status: http.StatusUnauthorized}
}

func NewInternalError(err error) *AppError {
	return &AppError{Code: ErrCodeInternal, Message: "internal error", Status: http.StatusInternalServerError, Err: err}
}
