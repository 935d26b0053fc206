package models

import (
	"fmt"
	"net/url"
	"sort"
	"strings"
)

// RequestInit carries the raw values used to build a canonical Request
type RequestInit struct {
	Method    string `validate:"required,method"`
	Path      string `validate:"required,startswith=/"`
	Headers   map[string][]string
	Query     url.Values
	Body      []byte
	Binary    bool
	RequestID string
}

// Request is the host-agnostic request handed to route handlers.
// It cannot be modified after NewRequest returns; accessors hand out copies.
type Request struct {
	method      Method
	path        string
	header      Header
	query       url.Values
	body        []byte
	contentType string
	binary      bool
	requestID   string
}

// NewRequest validates init and builds a canonical request from it.
// Header keys are lower-cased; a nil body becomes an empty one.
func NewRequest(init RequestInit) (*Request, error) {
	init.Method = strings.ToUpper(strings.TrimSpace(init.Method))
	if err := validate.Struct(init); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}

	header := make(Header, len(init.Headers))
	keys := make([]string, 0, len(init.Headers))
	for k := range init.Headers {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		lk := strings.ToLower(k)
		header[lk] = append(header[lk], init.Headers[k]...)
	}

	query := make(url.Values, len(init.Query))
	for k, v := range init.Query {
		query[k] = append([]string(nil), v...)
	}

	body := make([]byte, len(init.Body))
	copy(body, init.Body)

	return &Request{
		method:      Method(init.Method),
		path:        init.Path,
		header:      header,
		query:       query,
		body:        body,
		contentType: header.Get("content-type"),
		binary:      init.Binary,
		requestID:   init.RequestID,
	}, nil
}

// Method returns the request method
func (r *Request) Method() Method { return r.method }

// Path returns the raw request path
func (r *Request) Path() string { return r.path }

// Header returns the first value of a header
func (r *Request) Header(key string) string {
	return r.header.Get(strings.ToLower(key))
}

// HeaderValues returns all values of a header in arrival order
func (r *Request) HeaderValues(key string) []string {
	return append([]string(nil), r.header.Values(strings.ToLower(key))...)
}

// Headers returns a copy of the header multimap
func (r *Request) Headers() Header { return r.header.Clone() }

// Query returns the first value of a query parameter
func (r *Request) Query(key string) string { return r.query.Get(key) }

// QueryValues returns all values of a query parameter
func (r *Request) QueryValues(key string) []string {
	return append([]string(nil), r.query[key]...)
}

// QueryParams returns a copy of the query multimap
func (r *Request) QueryParams() url.Values {
	out := make(url.Values, len(r.query))
	for k, v := range r.query {
		out[k] = append([]string(nil), v...)
	}
	return out
}

// Body returns a copy of the request body. It is never nil.
func (r *Request) Body() []byte {
	out := make([]byte, len(r.body))
	copy(out, r.body)
	return out
}

// ContentType returns the declared content type
func (r *Request) ContentType() string { return r.contentType }

// IsBinary reports whether the body must be treated as opaque bytes
func (r *Request) IsBinary() bool { return r.binary }

// RequestID returns the identifier assigned by the host or the edge middleware
func (r *Request) RequestID() string { return r.requestID }
