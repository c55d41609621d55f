package middleware

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrBadRequest wraps an error with 400 status (INVALID_FILE_FORMAT,
// INVALID_MAPPINGS, DELIMITER_ERROR and similar request-shape problems).
type ErrBadRequest struct{ Err error }

func (e *ErrBadRequest) Error() string { return e.Err.Error() }
func (e *ErrBadRequest) Unwrap() error { return e.Err }

// ErrNotFound wraps an error with 404 status (FILE_NOT_FOUND,
// SCHEMA_NOT_FOUND).
type ErrNotFound struct{ Err error }

func (e *ErrNotFound) Error() string { return e.Err.Error() }
func (e *ErrNotFound) Unwrap() error { return e.Err }

// ErrRequestTooLarge wraps an error with 413 status (FILE_TOO_LARGE).
type ErrRequestTooLarge struct{ Err error }

func (e *ErrRequestTooLarge) Error() string { return e.Err.Error() }
func (e *ErrRequestTooLarge) Unwrap() error { return e.Err }

// ErrUnprocessable wraps an error with 422 status (DATA_LOSS_DETECTED,
// MISSING_REQUIRED_FIELD, DUPLICATE_COLUMNS — conditions that block
// transformation but are well-formed requests).
type ErrUnprocessable struct{ Err error }

func (e *ErrUnprocessable) Error() string { return e.Err.Error() }
func (e *ErrUnprocessable) Unwrap() error { return e.Err }

// ErrRateLimit wraps a rate-limit rejection, carrying the Retry-After value.
type ErrRateLimit struct {
	Err        error
	RetryAfter int
}

func (e *ErrRateLimit) Error() string { return e.Err.Error() }
func (e *ErrRateLimit) Unwrap() error { return e.Err }

// ErrorPayload is the structured JSON error response.
type ErrorPayload struct {
	Error     string         `json:"error"`
	Code      string         `json:"code,omitempty"`
	RequestID string         `json:"request_id,omitempty"`
	Details   map[string]any `json:"details,omitempty"`
}

// NewErrorPayload builds an ErrorPayload, deriving a stable Code from the
// HTTP status when one isn't set explicitly via WithCode.
func NewErrorPayload(status int, message, requestID string) ErrorPayload {
	return ErrorPayload{
		Error:     message,
		Code:      codeForStatus(status),
		RequestID: requestID,
	}
}

// WithDetails returns a copy of the payload carrying extra diagnostic
// fields (e.g. row counts for DATA_LOSS_DETECTED, limit/window for rate
// limiting).
func (p ErrorPayload) WithDetails(details map[string]any) ErrorPayload {
	p.Details = details
	return p
}

// WithCode overrides the derived status code with a taxonomy kind
// (e.g. "DATA_LOSS_DETECTED").
func (p ErrorPayload) WithCode(code string) ErrorPayload {
	p.Code = code
	return p
}

func codeForStatus(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "BAD_REQUEST"
	case http.StatusNotFound:
		return "NOT_FOUND"
	case http.StatusRequestEntityTooLarge:
		return "FILE_TOO_LARGE"
	case http.StatusUnprocessableEntity:
		return "UNPROCESSABLE"
	case http.StatusTooManyRequests:
		return "RATE_LIMIT_EXCEEDED"
	default:
		return "INTERNAL_ERROR"
	}
}

// ErrorHandler centralizes error handling. Handlers call c.Error(err) and
// return without writing a response; this middleware maps errors to status
// codes and returns a consistent JSON body. Skipped when the handler has
// already written a response.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}
		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err
		status := statusForError(err)
		requestID := GetRequestID(c)

		slog.Debug("error handler", "status", status, "error", err.Error(), "request_id", requestID)
		c.JSON(status, NewErrorPayload(status, err.Error(), requestID))
	}
}

func statusForError(err error) int {
	switch {
	case errors.As(err, new(*ErrBadRequest)):
		return http.StatusBadRequest
	case errors.As(err, new(*ErrNotFound)):
		return http.StatusNotFound
	case errors.As(err, new(*ErrRequestTooLarge)):
		return http.StatusRequestEntityTooLarge
	case errors.As(err, new(*ErrUnprocessable)):
		return http.StatusUnprocessableEntity
	case errors.As(err, new(*ErrRateLimit)):
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}
