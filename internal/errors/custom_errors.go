package errors

import (
	stderrors "errors"
	"fmt"
)

// Sentinel errors returned by the services. Callers wrap them with detail using %w and
// match them with errors.Is.
var (
	ErrInvalidFilter      = stderrors.New("invalid filter")
	ErrValidation         = stderrors.New("validation failed")
	ErrInvalidID          = stderrors.New("invalid id")
	ErrPropertyNotFound   = stderrors.New("property not found")
	ErrRecipientNotFound  = stderrors.New("recipient not found")
	ErrEntryNotFound      = stderrors.New("recommendation not found")
	ErrUserNotFound       = stderrors.New("user not found")
	ErrUnauthorized       = stderrors.New("not the owner of this property")
	ErrAlreadyFavorited   = stderrors.New("already in favorites")
	ErrEmailTaken         = stderrors.New("email already registered")
	ErrInvalidCredentials = stderrors.New("invalid email or password")
)

// AppError represents a structured application error with user-friendly and technical details.
type AppError struct {
	TechnicalMessage string
	UserMessage      string
	Code             string
	HTTPStatus       int
	OriginalError    error
}

// Error implements the error interface.
func (e *AppError) Error() string {
	return fmt.Sprintf("%s: %v", e.UserMessage, e.OriginalError)
}

// Unwrap returns the original error for error chaining.
func (e *AppError) Unwrap() error {
	return e.OriginalError
}

// NewAppError creates a new AppError instance.
func NewAppError(technicalMessage, userMessage, code string, status int, originalErr error) *AppError {
	return &AppError{
		TechnicalMessage: technicalMessage,
		UserMessage:      userMessage,
		Code:             code,
		HTTPStatus:       status,
		OriginalError:    originalErr,
	}
}

// Common error codes
const (
	ErrCodeInvalidFilter      = "INVALID_FILTER"
	ErrCodeValidation         = "VALIDATION_ERROR"
	ErrCodeInvalidID          = "INVALID_ID"
	ErrCodePropertyNotFound   = "PROPERTY_NOT_FOUND"
	ErrCodeRecipientNotFound  = "RECIPIENT_NOT_FOUND"
	ErrCodeEntryNotFound      = "RECOMMENDATION_NOT_FOUND"
	ErrCodeUserNotFound       = "USER_NOT_FOUND"
	ErrCodeUnauthorized       = "UNAUTHORIZED"
	ErrCodeUnauthenticated    = "UNAUTHENTICATED"
	ErrCodeAlreadyFavorited   = "ALREADY_FAVORITED"
	ErrCodeEmailTaken         = "EMAIL_TAKEN"
	ErrCodeInvalidCredentials = "INVALID_CREDENTIALS"
	ErrCodeRateLimited        = "RATE_LIMITED"
	ErrCodeInvalidParameters  = "INVALID_PARAMETERS"
	ErrCodeInternal           = "INTERNAL_ERROR"
)
