package middleware

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/xyz-asif/gotasks/internal/pkg/notify"
)

// maxErrorBody caps how much of an error response body is read when looking
// for a server-supplied message.
const maxErrorBody = 8 << 10

// Errors announces every failed request through the notifier exactly once and
// passes the response (or transport error) through unchanged so callers still
// observe the failure themselves.
func Errors(n notify.Notifier) Middleware {
	return func(next http.RoundTripper) http.RoundTripper {
		return RoundTripFunc(func(req *http.Request) (*http.Response, error) {
			resp, err := next.RoundTrip(req)
			if err != nil {
				n.Notify(notify.Error, "Unable to reach server. Please check your connection.")
				return nil, err
			}

			if resp.StatusCode >= 400 {
				severity, message := classify(resp.StatusCode, serverMessage(resp))
				n.Notify(severity, message)
			}
			return resp, nil
		})
	}
}

// serverMessage peeks at the error body for {"error": ...} or {"message": ...}
// and restores it so downstream decoding still works.
func serverMessage(resp *http.Response) string {
	if resp.Body == nil {
		return ""
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	resp.Body.Close()
	resp.Body = io.NopCloser(bytes.NewReader(body))
	if err != nil {
		return ""
	}

	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if json.Unmarshal(body, &payload) != nil {
		return ""
	}
	if payload.Error != "" {
		return payload.Error
	}
	return payload.Message
}

func classify(status int, serverMsg string) (notify.Severity, string) {
	switch status {
	case http.StatusBadRequest:
		return notify.Warning, orDefault(serverMsg, "Bad Request")
	case http.StatusUnauthorized:
		return notify.Error, "Unauthorized. Please log in again."
	case http.StatusForbidden:
		return notify.Error, "Forbidden. You don't have permission to perform this action."
	case http.StatusNotFound:
		return notify.Warning, "Resource not found"
	case http.StatusConflict, http.StatusUnprocessableEntity:
		return notify.Warning, orDefault(serverMsg, "Request could not be processed")
	case http.StatusTooManyRequests:
		return notify.Error, "Too many requests. Please slow down."
	case http.StatusInternalServerError:
		return notify.Error, "Internal server error. Please try again later."
	case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return notify.Error, "Service temporarily unavailable. Please try again later."
	}
	return notify.Error, orDefault(serverMsg, fmt.Sprintf("Server Error: %d", status))
}

func orDefault(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
