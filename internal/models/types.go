package models

import (
	"context"
	"fmt"
	"sort"
	"strings"
)

// Method is an HTTP method accepted by the route table
type Method string

const (
	MethodGet     Method = "GET"
	MethodPost    Method = "POST"
	MethodPut     Method = "PUT"
	MethodPatch   Method = "PATCH"
	MethodDelete  Method = "DELETE"
	MethodHead    Method = "HEAD"
	MethodOptions Method = "OPTIONS"

	// MethodAny matches every method when used in a route registration
	MethodAny Method = "ANY"
)

var knownMethods = map[Method]struct{}{
	MethodGet:     {},
	MethodPost:    {},
	MethodPut:     {},
	MethodPatch:   {},
	MethodDelete:  {},
	MethodHead:    {},
	MethodOptions: {},
	MethodAny:     {},
}

// ParseMethod normalizes a method name and checks it against the supported set
func ParseMethod(s string) (Method, error) {
	m := Method(strings.ToUpper(strings.TrimSpace(s)))
	if !m.IsValid() {
		return "", fmt.Errorf("unsupported method %q", s)
	}
	return m, nil
}

// IsValid reports whether the method belongs to the supported set
func (m Method) IsValid() bool {
	_, ok := knownMethods[m]
	return ok
}

func (m Method) String() string {
	return string(m)
}

// Params holds path parameters extracted by the route matcher
type Params map[string]string

// Get returns a path parameter or the empty string
func (p Params) Get(name string) string {
	return p[name]
}

// Header is a multimap of header values
type Header map[string][]string

// Get returns the first value for key, compared case-insensitively
func (h Header) Get(key string) string {
	if values := h.Values(key); len(values) > 0 {
		return values[0]
	}
	return ""
}

// Values returns every value for key, compared case-insensitively
func (h Header) Values(key string) []string {
	if v, ok := h[key]; ok {
		return v
	}
	for k, v := range h {
		if strings.EqualFold(k, key) {
			return v
		}
	}
	return nil
}

// Has reports whether key is present, compared case-insensitively
func (h Header) Has(key string) bool {
	return h.Values(key) != nil
}

// Clone returns a deep copy of the header
func (h Header) Clone() Header {
	if h == nil {
		return Header{}
	}
	out := make(Header, len(h))
	for k, v := range h {
		out[k] = append([]string(nil), v...)
	}
	return out
}

// Keys returns the header keys in sorted order
func (h Header) Keys() []string {
	keys := make([]string, 0, len(h))
	for k := range h {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Handler serves a canonical request for a matched route
type Handler interface {
	Serve(ctx context.Context, req *Request, params Params) (*Response, error)
}

// HandlerFunc adapts a plain function to the Handler interface
type HandlerFunc func(ctx context.Context, req *Request, params Params) (*Response, error)

// Serve calls f(ctx, req, params)
func (f HandlerFunc) Serve(ctx context.Context, req *Request, params Params) (*Response, error) {
	return f(ctx, req, params)
}
