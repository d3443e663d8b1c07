package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

type ErrorCode string

const (
	ErrCodeNotFound               ErrorCode = "NOT_FOUND"
	ErrCodeUnauthorized           ErrorCode = "UNAUTHORIZED"
	ErrCodeForbidden              ErrorCode = "FORBIDDEN"
	ErrCodeBadRequest             ErrorCode = "BAD_REQUEST"
	ErrCodeConflict               ErrorCode = "CONFLICT"
	ErrCodeInvalidStateTransition ErrorCode = "INVALID_STATE_TRANSITION"
	ErrCodeInternal               ErrorCode = "INTERNAL_ERROR"
	ErrCodeValidation             ErrorCode = "VALIDATION_ERROR"
	ErrCodeDatabaseError          ErrorCode = "DATABASE_ERROR"
)

type AppError struct {
	Code       ErrorCode
	Message    string
	HTTPStatus int
	Cause      error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// Is сравнивает ошибки по коду и сообщению, чтобы errors.Is работал
// для sentinel-значений, обёрнутых через Wrap.
func (e *AppError) Is(target error) bool {
	var t *AppError
	if !errors.As(target, &t) {
		return false
	}
	return e.Code == t.Code && e.Message == t.Message
}

func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: codeToHTTPStatus(code),
	}
}

func Wrap(err error, code ErrorCode, message string) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: codeToHTTPStatus(code),
		Cause:      err,
	}
}

func Validation(message string) *AppError {
	return New(ErrCodeValidation, message)
}

func InvalidTransition(message string) *AppError {
	return New(ErrCodeInvalidStateTransition, message)
}

func codeToHTTPStatus(code ErrorCode) int {
	switch code {
	case ErrCodeNotFound:
		return http.StatusNotFound
	case ErrCodeUnauthorized:
		return http.StatusUnauthorized
	case ErrCodeForbidden:
		return http.StatusForbidden
	case ErrCodeBadRequest, ErrCodeValidation:
		return http.StatusBadRequest
	case ErrCodeConflict, ErrCodeInvalidStateTransition:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func CodeOf(err error) ErrorCode {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ErrCodeInternal
}

func IsNotFound(err error) bool {
	return CodeOf(err) == ErrCodeNotFound
}

func IsForbidden(err error) bool {
	return CodeOf(err) == ErrCodeForbidden
}

func IsValidation(err error) bool {
	return CodeOf(err) == ErrCodeValidation
}

func IsInvalidStateTransition(err error) bool {
	return CodeOf(err) == ErrCodeInvalidStateTransition
}

var (
	ErrBookingNotFound     = New(ErrCodeNotFound, "booking not found")
	ErrCategoryNotFound    = New(ErrCodeNotFound, "category not found")
	ErrUserNotFound        = New(ErrCodeNotFound, "user not found")
	ErrProviderNotFound    = New(ErrCodeNotFound, "provider not found")
	ErrProfileNotFound     = New(ErrCodeNotFound, "provider profile not found")
	ErrUnauthorized        = New(ErrCodeUnauthorized, "authentication required")
	ErrForbidden           = New(ErrCodeForbidden, "access denied")
	ErrNotBookingParty     = New(ErrCodeForbidden, "you are not a party to this booking")
	ErrNotAssignedProvider = New(ErrCodeForbidden, "you are not the assigned provider of this booking")
	ErrConcurrentUpdate    = New(ErrCodeInvalidStateTransition, "booking was modified concurrently, reload and retry")
	ErrAlreadyRated        = New(ErrCodeConflict, "booking already has a rating")
	ErrReportNotFound      = New(ErrCodeNotFound, "report not found")
	ErrDocumentNotFound    = New(ErrCodeNotFound, "document not found")
)
