package utils

import (
	"errors"
	"fmt"
	"net/http"
)

// AppError is the service-wide error taxonomy. Handler code wraps dependency
// failures into one of the sentinel values below; WriteError maps them onto
// HTTP responses. Webhook-path errors (integrity, not-found) are logged
// server-side and answered with a generic body so an unauthenticated caller
// learns nothing about ledger contents.
type AppError struct {
	Code    string
	Message string
	Status  int
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error { return e.Err }

// Is makes errors.Is match any AppError sharing the same code, so wrapped
// instances still compare equal to their sentinel.
func (e *AppError) Is(target error) bool {
	var t *AppError
	if errors.As(target, &t) {
		return e.Code == t.Code
	}
	return false
}

// WithErr returns a copy carrying an underlying cause.
func (e *AppError) WithErr(err error) *AppError {
	c := *e
	c.Err = err
	return &c
}

// WithMessage returns a copy with a caller-facing message.
func (e *AppError) WithMessage(msg string) *AppError {
	c := *e
	c.Message = msg
	return &c
}

func newAppError(code, message string, status int) *AppError {
	return &AppError{Code: code, Message: message, Status: status}
}

var (
	ErrValidation       = newAppError("VALIDATION_ERROR", "Invalid request", http.StatusBadRequest)
	ErrAuthentication   = newAppError("AUTHENTICATION_ERROR", "Unauthorized", http.StatusUnauthorized)
	ErrIntegrity        = newAppError("INTEGRITY_ERROR", "Integrity check failed", http.StatusBadRequest)
	ErrNotFound         = newAppError("NOT_FOUND", "Record not found", http.StatusNotFound)
	ErrUnsupportedMedia = newAppError("UNSUPPORTED_MEDIA_TYPE", "File type not allowed", http.StatusUnsupportedMediaType)
	ErrGatewayConfig    = newAppError("GATEWAY_CONFIG_ERROR", "Payment gateway is not configured", http.StatusInternalServerError)
	ErrUpstream         = newAppError("UPSTREAM_ERROR", "A dependency failed, please retry", http.StatusBadGateway)
)

// WriteError renders err as a JSON error response. Unknown errors become a
// generic 500 without leaking internals.
func WriteError(w http.ResponseWriter, err error) {
	var ae *AppError
	if errors.As(err, &ae) {
		WriteJSON(w, ae.Status, APIResponse{Success: false, Message: ae.Message})
		return
	}
	WriteJSON(w, http.StatusInternalServerError, APIResponse{Success: false, Message: "Internal server error"})
}
