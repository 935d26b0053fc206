package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"hello-api/internal/logging"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestEngine(middleware ...gin.HandlerFunc) *gin.Engine {
	engine := gin.New()
	engine.Use(middleware...)
	engine.Any("/echo", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(RequestIDKey))
	})
	engine.GET("/panic", func(c *gin.Context) {
		panic("boom")
	})
	return engine
}

func serve(engine *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

// TestRequestID tests that request IDs are generated or propagated
func TestRequestID(t *testing.T) {
	engine := newTestEngine(RequestID())

	w := serve(engine, httptest.NewRequest(http.MethodGet, "/echo", nil))
	generated := w.Header().Get(RequestIDHeader)
	if generated == "" {
		t.Fatal("Expected a generated request ID")
	}
	if w.Body.String() != generated {
		t.Errorf("Expected context request ID %s, got %s", generated, w.Body.String())
	}

	req := httptest.NewRequest(http.MethodGet, "/echo", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	w = serve(engine, req)
	if w.Header().Get(RequestIDHeader) != "abc-123" {
		t.Errorf("Expected propagated request ID, got %s", w.Header().Get(RequestIDHeader))
	}
}

// TestRecovery tests that panics become generic JSON errors
func TestRecovery(t *testing.T) {
	engine := newTestEngine(Recovery(logging.Discard()))

	w := serve(engine, httptest.NewRequest(http.MethodGet, "/panic", nil))
	if w.Code != http.StatusInternalServerError {
		t.Errorf("Expected 500, got %d", w.Code)
	}
	if w.Body.String() != `{"error":"internal_error"}` {
		t.Errorf("Unexpected body %s", w.Body.String())
	}
}

// TestCORS tests allowed origins and preflight handling
func TestCORS(t *testing.T) {
	engine := newTestEngine(CORS([]string{"https://app.example.com"}))

	req := httptest.NewRequest(http.MethodGet, "/echo", nil)
	req.Header.Set("Origin", "https://app.example.com")
	w := serve(engine, req)
	if w.Header().Get("Access-Control-Allow-Origin") != "https://app.example.com" {
		t.Errorf("Expected origin to be allowed, got %q", w.Header().Get("Access-Control-Allow-Origin"))
	}

	req = httptest.NewRequest(http.MethodGet, "/echo", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	w = serve(engine, req)
	if w.Header().Get("Access-Control-Allow-Origin") != "" {
		t.Error("Expected unknown origin to get no CORS headers")
	}

	req = httptest.NewRequest(http.MethodOptions, "/echo", nil)
	req.Header.Set("Origin", "https://app.example.com")
	req.Header.Set("Access-Control-Request-Method", "POST")
	w = serve(engine, req)
	if w.Code != http.StatusNoContent {
		t.Errorf("Expected preflight 204, got %d", w.Code)
	}

	// A plain OPTIONS request reaches the route
	w = serve(engine, httptest.NewRequest(http.MethodOptions, "/echo", nil))
	if w.Code != http.StatusOK {
		t.Errorf("Expected plain OPTIONS to be routed, got %d", w.Code)
	}
}

// TestCORSWildcard tests the wildcard origin
func TestCORSWildcard(t *testing.T) {
	engine := newTestEngine(CORS([]string{" * "}))

	req := httptest.NewRequest(http.MethodGet, "/echo", nil)
	req.Header.Set("Origin", "https://anything.example.com")
	w := serve(engine, req)
	if w.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Errorf("Expected wildcard origin, got %q", w.Header().Get("Access-Control-Allow-Origin"))
	}
}

// TestRateLimiter tests that requests over the burst are rejected
func TestRateLimiter(t *testing.T) {
	engine := newTestEngine(RateLimiter(logging.Discard(), 0.001, 1))

	if w := serve(engine, httptest.NewRequest(http.MethodGet, "/echo", nil)); w.Code != http.StatusOK {
		t.Fatalf("Expected first request to pass, got %d", w.Code)
	}
	w := serve(engine, httptest.NewRequest(http.MethodGet, "/echo", nil))
	if w.Code != http.StatusTooManyRequests {
		t.Errorf("Expected 429, got %d", w.Code)
	}
	if w.Body.String() != `{"error":"rate_limited"}` {
		t.Errorf("Unexpected body %s", w.Body.String())
	}
}

// TestRequestSizeLimit tests rejection of oversized bodies
func TestRequestSizeLimit(t *testing.T) {
	engine := newTestEngine(RequestSizeLimit(8))

	w := serve(engine, httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader("small")))
	if w.Code != http.StatusOK {
		t.Errorf("Expected small body to pass, got %d", w.Code)
	}

	w = serve(engine, httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader("far too large a body")))
	if w.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("Expected 413, got %d", w.Code)
	}
	if w.Body.String() != `{"error":"request_too_large"}` {
		t.Errorf("Unexpected body %s", w.Body.String())
	}
}

// TestSecurityHeaders tests the static security headers
func TestSecurityHeaders(t *testing.T) {
	engine := newTestEngine(SecurityHeaders())

	w := serve(engine, httptest.NewRequest(http.MethodGet, "/echo", nil))
	if w.Header().Get("X-Content-Type-Options") != "nosniff" {
		t.Error("Expected nosniff header")
	}
	if w.Header().Get("X-Frame-Options") != "DENY" {
		t.Error("Expected frame options header")
	}
}

// TestStructuredLogger tests that logging does not alter the response
func TestStructuredLogger(t *testing.T) {
	engine := newTestEngine(RequestID(), StructuredLogger(logging.Discard()), PerformanceMonitor(logging.Discard(), 0))

	w := serve(engine, httptest.NewRequest(http.MethodGet, "/echo?x=1", nil))
	if w.Code != http.StatusOK {
		t.Errorf("Expected 200, got %d", w.Code)
	}
	if w.Body.String() != w.Header().Get(RequestIDHeader) {
		t.Error("Expected the body to pass through the logging writer unchanged")
	}
}
