package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// Error codes returned by the routeviz API.
const (
	CodeValidation  = "validation_error"
	CodeRouteFailed = "route_failed"
	CodeSuperseded  = "superseded"
	CodeRateLimited = "rate_limited"
	CodeNotFound    = "not_found"
)

// APIError represents a structured error response from the routeviz API.
type APIError struct {
	StatusCode int    `json:"-"`
	Code       string `json:"code"`
	Message    string `json:"message"`
	RequestID  string `json:"request_id,omitempty"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.RequestID != "" {
		return fmt.Sprintf("routeviz: %d %s: %s (request_id=%s)", e.StatusCode, e.Code, e.Message, e.RequestID)
	}
	return fmt.Sprintf("routeviz: %d %s: %s", e.StatusCode, e.Code, e.Message)
}

func statusIs(err error, code int) bool {
	var e *APIError
	if errors.As(err, &e) {
		return e.StatusCode == code
	}
	return false
}

// IsNotFound returns true if the error is a 404 not found.
func IsNotFound(err error) bool { return statusIs(err, http.StatusNotFound) }

// IsSuperseded returns true if a newer request or a reset overtook this one.
func IsSuperseded(err error) bool { return statusIs(err, http.StatusConflict) }

// IsRateLimited returns true if the error is a 429 rate limit.
func IsRateLimited(err error) bool { return statusIs(err, http.StatusTooManyRequests) }

// IsRouteFailed returns true if the route service could not produce a route.
func IsRouteFailed(err error) bool { return statusIs(err, http.StatusBadGateway) }

// parseAPIError attempts to decode a JSON error body; falls back to raw text.
func parseAPIError(statusCode int, body []byte) *APIError {
	apiErr := &APIError{StatusCode: statusCode}
	if err := json.Unmarshal(body, apiErr); err != nil || apiErr.Code == "" {
		apiErr.Code = "unknown"
		apiErr.Message = string(body)
	}
	return apiErr
}
