package errors

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound      = errors.New("resource not found")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrBadRequest    = errors.New("bad request")
	ErrInternal      = errors.New("internal server error")
	ErrDuplicate     = errors.New("resource already exists")
	ErrValidation    = errors.New("validation failed")
	ErrNoCredentials = errors.New("no stored credentials")
)

// APIError is a failed HTTP call against the remote API. Status is the HTTP
// status code and Message the server-supplied error string, if any.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("api error %d", e.Status)
}

// Is maps well-known status codes onto the package sentinels so callers can
// use errors.Is without digging out the status.
func (e *APIError) Is(target error) bool {
	switch target {
	case ErrNotFound:
		return e.Status == 404
	case ErrUnauthorized:
		return e.Status == 401
	case ErrBadRequest:
		return e.Status == 400
	case ErrDuplicate:
		return e.Status == 409
	case ErrInternal:
		return e.Status >= 500
	}
	return false
}

// AsAPIError unwraps err into an *APIError, or returns nil.
func AsAPIError(err error) *APIError {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}
	return nil
}
