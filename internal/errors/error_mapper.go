package errors

import (
	stderrors "errors"
	"net/http"
)

type mapping struct {
	target  error
	message string
	code    string
	status  int
}

// Checked in order; the first sentinel found in the chain wins.
var mappings = []mapping{
	{ErrInvalidFilter, MsgInvalidFilter, ErrCodeInvalidFilter, http.StatusBadRequest},
	{ErrValidation, MsgValidation, ErrCodeValidation, http.StatusBadRequest},
	{ErrInvalidID, MsgInvalidID, ErrCodeInvalidID, http.StatusBadRequest},
	{ErrInvalidCredentials, MsgInvalidCredentials, ErrCodeInvalidCredentials, http.StatusUnauthorized},
	{ErrUnauthorized, MsgUnauthorized, ErrCodeUnauthorized, http.StatusForbidden},
	{ErrPropertyNotFound, MsgPropertyNotFound, ErrCodePropertyNotFound, http.StatusNotFound},
	{ErrRecipientNotFound, MsgRecipientNotFound, ErrCodeRecipientNotFound, http.StatusNotFound},
	{ErrEntryNotFound, MsgEntryNotFound, ErrCodeEntryNotFound, http.StatusNotFound},
	{ErrUserNotFound, MsgUserNotFound, ErrCodeUserNotFound, http.StatusNotFound},
	{ErrAlreadyFavorited, MsgAlreadyFavorited, ErrCodeAlreadyFavorited, http.StatusConflict},
	{ErrEmailTaken, MsgEmailTaken, ErrCodeEmailTaken, http.StatusConflict},
}

// MapError converts a technical error into a user-friendly AppError.
func MapError(err error) *AppError {
	if err == nil {
		return nil
	}

	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr
	}

	technicalMessage := err.Error()
	for _, m := range mappings {
		if stderrors.Is(err, m.target) {
			userMessage := m.message
			// Input errors carry their detail to the caller.
			if m.status == http.StatusBadRequest {
				userMessage = technicalMessage
			}
			return NewAppError(technicalMessage, userMessage, m.code, m.status, err)
		}
	}

	// Backing-store failures and anything unexpected.
	return NewAppError(technicalMessage, MsgInternalError, ErrCodeInternal, http.StatusInternalServerError, err)
}
