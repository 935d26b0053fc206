package models

import (
	"errors"
	"net/url"
	"testing"
)

// TestNewRequest tests canonical request construction
func TestNewRequest(t *testing.T) {
	req, err := NewRequest(RequestInit{
		Method: " get ",
		Path:   "/api/hello",
		Headers: map[string][]string{
			"Content-Type": {"application/json"},
			"X-Trace":      {"a"},
			"x-trace":      {"b"},
		},
		Query:     url.Values{"name": {"Ada", "Grace"}},
		RequestID: "req-1",
	})
	if err != nil {
		t.Fatalf("NewRequest failed: %v", err)
	}

	if req.Method() != MethodGet {
		t.Errorf("Expected method GET, got %s", req.Method())
	}
	if req.Path() != "/api/hello" {
		t.Errorf("Expected path '/api/hello', got '%s'", req.Path())
	}
	if req.Header("CONTENT-TYPE") != "application/json" {
		t.Errorf("Expected case-insensitive header lookup, got '%s'", req.Header("CONTENT-TYPE"))
	}
	if req.ContentType() != "application/json" {
		t.Errorf("Expected content type 'application/json', got '%s'", req.ContentType())
	}

	// Sorted key order puts X-Trace before x-trace
	values := req.HeaderValues("x-trace")
	if len(values) != 2 || values[0] != "a" || values[1] != "b" {
		t.Errorf("Expected merged header values [a b], got %v", values)
	}
	if _, ok := req.Headers()["X-Trace"]; ok {
		t.Error("Expected header keys to be lower-cased")
	}

	if req.Query("name") != "Ada" {
		t.Errorf("Expected first query value 'Ada', got '%s'", req.Query("name"))
	}
	if len(req.QueryValues("name")) != 2 {
		t.Errorf("Expected 2 query values, got %d", len(req.QueryValues("name")))
	}
	if req.Body() == nil || len(req.Body()) != 0 {
		t.Error("Expected an empty, non-nil body")
	}
	if req.RequestID() != "req-1" {
		t.Errorf("Expected request id 'req-1', got '%s'", req.RequestID())
	}
}

// TestNewRequestValidation tests rejected request inputs
func TestNewRequestValidation(t *testing.T) {
	tests := []struct {
		name string
		init RequestInit
	}{
		{"MissingMethod", RequestInit{Path: "/"}},
		{"UnknownMethod", RequestInit{Method: "BREW", Path: "/"}},
		{"AnyIsNotARequestMethod", RequestInit{Method: "ANY", Path: "/"}},
		{"MissingPath", RequestInit{Method: "GET"}},
		{"RelativePath", RequestInit{Method: "GET", Path: "api/hello"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewRequest(tt.init)
			if !errors.Is(err, ErrInvalidRequest) {
				t.Errorf("Expected ErrInvalidRequest, got %v", err)
			}
		})
	}
}

// TestRequestIsImmutable tests that callers cannot change a request through its inputs or accessors
func TestRequestIsImmutable(t *testing.T) {
	body := []byte("hello")
	query := url.Values{"q": {"1"}}
	req, err := NewRequest(RequestInit{Method: "POST", Path: "/", Body: body, Query: query})
	if err != nil {
		t.Fatalf("NewRequest failed: %v", err)
	}

	body[0] = 'J'
	query.Set("q", "2")
	req.Body()[1] = 'X'
	req.QueryParams().Set("q", "3")
	req.Headers()["x"] = []string{"y"}

	if string(req.Body()) != "hello" {
		t.Errorf("Expected body 'hello', got '%s'", req.Body())
	}
	if req.Query("q") != "1" {
		t.Errorf("Expected query value '1', got '%s'", req.Query("q"))
	}
	if req.Header("x") != "" {
		t.Error("Expected header map to be unchanged")
	}
}

// TestParseMethod tests method normalization
func TestParseMethod(t *testing.T) {
	m, err := ParseMethod("patch")
	if err != nil || m != MethodPatch {
		t.Errorf("Expected PATCH, got %s (%v)", m, err)
	}
	if _, err := ParseMethod("TRACE"); err == nil {
		t.Error("Expected TRACE to be rejected")
	}
}

// TestHeader tests the case-insensitive header multimap
func TestHeader(t *testing.T) {
	h := Header{"Set-Cookie": {"a=1", "b=2"}, "Allow": {"GET"}}

	if !h.Has("set-cookie") {
		t.Error("Expected Has to ignore case")
	}
	if h.Get("ALLOW") != "GET" {
		t.Errorf("Expected 'GET', got '%s'", h.Get("ALLOW"))
	}
	if len(h.Values("set-cookie")) != 2 {
		t.Errorf("Expected 2 cookies, got %d", len(h.Values("set-cookie")))
	}
	if h.Get("missing") != "" {
		t.Error("Expected empty value for a missing header")
	}

	keys := h.Keys()
	if len(keys) != 2 || keys[0] != "Allow" || keys[1] != "Set-Cookie" {
		t.Errorf("Expected sorted keys, got %v", keys)
	}

	var empty Header
	if empty.Clone() == nil {
		t.Error("Expected Clone of a nil header to be non-nil")
	}
}
