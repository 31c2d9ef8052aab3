package server

import (
	"errors"
	"net/http"

	"github.com/jonathan/deal-docs/internal/types"
)

// Public error messages. Internal causes are logged, never returned.
const (
	msgGenerateFailed     = "Failed to generate document"
	msgTestGenerateFailed = "Failed to generate test document"
)

// ErrRequestBody indicates the request body could not be decoded
type ErrRequestBody struct {
	Cause error
}

func (e *ErrRequestBody) Error() string {
	return "invalid request body: " + e.Cause.Error()
}

func (e *ErrRequestBody) Unwrap() error {
	return e.Cause
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	if err == nil {
		return http.StatusOK
	}

	var validationErr *types.ValidationError
	var bodyErr *ErrRequestBody
	switch {
	case errors.As(err, &validationErr), errors.As(err, &bodyErr):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// PublicMessage returns the message safe to show a client for err.
// fallback is used for server-side failures.
func PublicMessage(err error, fallback string) string {
	var validationErr *types.ValidationError
	if errors.As(err, &validationErr) {
		return validationErr.Message
	}

	var bodyErr *ErrRequestBody
	if errors.As(err, &bodyErr) {
		return types.MissingSelectionMessage
	}
	return fallback
}
