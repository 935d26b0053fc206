package models

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

const (
	ContentTypeJSON = "application/json"
	ContentTypeText = "text/plain; charset=utf-8"
)

type responseInit struct {
	Status int `validate:"min=100,max=599"`
}

// Response is the host-agnostic response produced by route handlers.
// A nil body means the response carries no body at all.
type Response struct {
	status      int
	header      Header
	body        []byte
	contentType string
}

// NewResponse builds a response. Header keys keep the case they were given in.
func NewResponse(status int, contentType string, body []byte, header Header) (*Response, error) {
	if err := validate.Struct(responseInit{Status: status}); err != nil {
		return nil, fmt.Errorf("%w: status %d: %v", ErrInvalidResponse, status, err)
	}

	var b []byte
	if body != nil {
		b = make([]byte, len(body))
		copy(b, body)
	}

	return &Response{
		status:      status,
		header:      header.Clone(),
		body:        b,
		contentType: contentType,
	}, nil
}

// JSON encodes v as the response body
func JSON(status int, v interface{}) (*Response, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode response: %w", err)
	}
	return NewResponse(status, ContentTypeJSON, data, nil)
}

// Text returns a plain text response
func Text(status int, s string) (*Response, error) {
	return NewResponse(status, ContentTypeText, []byte(s), nil)
}

// Binary returns a response whose body is treated as opaque bytes
func Binary(status int, contentType string, data []byte) (*Response, error) {
	if data == nil {
		data = []byte{}
	}
	return NewResponse(status, contentType, data, nil)
}

// NoContent returns a 204 response without a body
func NoContent() *Response {
	return &Response{status: http.StatusNoContent, header: Header{}}
}

// StatusCode returns the HTTP status
func (r *Response) StatusCode() int { return r.status }

// Header returns a copy of the response headers
func (r *Response) Header() Header { return r.header.Clone() }

// ContentType returns the declared content type
func (r *Response) ContentType() string { return r.contentType }

// HasBody reports whether the response carries a body, possibly empty
func (r *Response) HasBody() bool { return r.body != nil }

// Body returns a copy of the body, or nil when the response has none
func (r *Response) Body() []byte {
	if r.body == nil {
		return nil
	}
	out := make([]byte, len(r.body))
	copy(out, r.body)
	return out
}

// WithHeader returns a copy of the response with key set to values
func (r *Response) WithHeader(key string, values ...string) *Response {
	out := *r
	out.header = r.header.Clone()
	for k := range out.header {
		if strings.EqualFold(k, key) {
			delete(out.header, k)
		}
	}
	out.header[key] = append([]string(nil), values...)
	return &out
}
