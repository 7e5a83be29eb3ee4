package errors

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrWorkerPanic       = fmt.Errorf("worker panic")
	ErrValidation        = fmt.Errorf("validation failed")
	ErrMissingProtocol   = fmt.Errorf("missing protocol")
	ErrChatNotFound      = fmt.Errorf("chat not found")
	ErrChatAlreadyExists = fmt.Errorf("chat already exists")
	ErrPersistence       = fmt.Errorf("persistence failed")
	ErrSinkTimeout       = fmt.Errorf("sink delivery timeout")
	ErrSinkClosed        = fmt.Errorf("sink closed")
	ErrUnknownDriver     = fmt.Errorf("unknown store driver")
)

// MapToHTTPStatus translates a service error into the status code returned
// by the HTTP surface. Unclassified errors are server failures.
func MapToHTTPStatus(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrValidation), errors.Is(err, ErrMissingProtocol):
		return http.StatusBadRequest
	case errors.Is(err, ErrChatNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
