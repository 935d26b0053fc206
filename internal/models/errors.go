package models

import (
	"encoding/json"
)

// Error kinds reported in error response bodies
const (
	ErrorKindMalformedEvent   = "malformed_event"
	ErrorKindNotFound         = "not_found"
	ErrorKindMethodNotAllowed = "method_not_allowed"
	ErrorKindInternal         = "internal_error"
	ErrorKindRateLimited      = "rate_limited"
	ErrorKindRequestTooLarge  = "request_too_large"
)

// ErrorResponse represents the body of every error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// NewErrorResponse builds a JSON error response for kind. It never fails for
// statuses in the 400–599 range.
func NewErrorResponse(status int, kind string) *Response {
	data, err := json.Marshal(ErrorResponse{Error: kind})
	if err != nil {
		panic("models: cannot encode error response: " + err.Error())
	}
	return &Response{
		status:      status,
		header:      Header{},
		body:        data,
		contentType: ContentTypeJSON,
	}
}
