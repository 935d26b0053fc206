package server

import (
	"errors"
	"io"
	"net/http"
	"strings"
	"sync/atomic"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"hello-api/internal/config"
	"hello-api/internal/dispatcher"
	"hello-api/internal/middleware"
	"hello-api/internal/models"
)

// supportedMethods is sent in Allow when a request uses a method the service never routes
const supportedMethods = "DELETE, GET, HEAD, OPTIONS, PATCH, POST, PUT"

// Engine serves the route table over HTTP (direct mode)
type Engine struct {
	router     *gin.Engine
	dispatcher atomic.Pointer[dispatcher.Dispatcher]
	logger     logrus.FieldLogger
}

// NewEngine builds the gin engine. Every request falls through gin's own router
// to the dispatcher, so gin never answers 404/405 or redirects by itself.
func NewEngine(cfg *config.Config, d *dispatcher.Dispatcher, logger logrus.FieldLogger) *Engine {
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	router := gin.New()
	router.RedirectTrailingSlash = false
	router.RedirectFixedPath = false
	router.HandleMethodNotAllowed = false

	router.Use(middleware.Recovery(logger))
	router.Use(middleware.RequestID())
	router.Use(middleware.StructuredLogger(logger))
	router.Use(middleware.PerformanceMonitor(logger, cfg.SlowRequest))
	router.Use(middleware.SecurityHeaders())
	router.Use(middleware.CORS(cfg.CORS.AllowedOrigins))
	if cfg.RateLimit.Enabled() {
		router.Use(middleware.RateLimiter(logger, cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst))
	}
	router.Use(middleware.RequestSizeLimit(cfg.MaxBodyBytes))

	e := &Engine{router: router, logger: logger}
	e.dispatcher.Store(d)
	router.NoRoute(e.serve)

	return e
}

// Handler returns the http.Handler to mount on a server
func (e *Engine) Handler() http.Handler {
	return e.router
}

// Dispatcher returns the dispatcher currently serving requests
func (e *Engine) Dispatcher() *dispatcher.Dispatcher {
	return e.dispatcher.Load()
}

// Reload swaps in a new dispatcher. Requests already running keep the old one.
func (e *Engine) Reload(d *dispatcher.Dispatcher) {
	if d == nil {
		return
	}
	e.dispatcher.Store(d)
	e.logger.WithField("routes", d.Table().Len()).Info("Route table reloaded")
}

// serve converts the gin request into a canonical request and writes the dispatcher's response
func (e *Engine) serve(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeResponse(c, models.NewErrorResponse(http.StatusRequestEntityTooLarge, models.ErrorKindRequestTooLarge))
			return
		}
		e.logger.WithError(err).WithField("request_id", c.GetString(middleware.RequestIDKey)).Warn("Failed to read request body")
		writeResponse(c, models.NewErrorResponse(http.StatusBadRequest, models.ErrorKindMalformedEvent))
		return
	}

	header := make(map[string][]string, len(c.Request.Header)+1)
	for k, v := range c.Request.Header {
		header[k] = v
	}
	if c.Request.Host != "" {
		header["Host"] = []string{c.Request.Host}
	}

	contentType := c.GetHeader("Content-Type")
	req, err := models.NewRequest(models.RequestInit{
		Method:    c.Request.Method,
		Path:      c.Request.URL.EscapedPath(),
		Headers:   header,
		Query:     c.Request.URL.Query(),
		Body:      body,
		Binary:    len(body) > 0 && !models.IsTextContentType(contentType),
		RequestID: c.GetString(middleware.RequestIDKey),
	})
	if err != nil {
		// Only the method can be invalid for a request that reached the server
		writeResponse(c, models.NewErrorResponse(http.StatusMethodNotAllowed, models.ErrorKindMethodNotAllowed).
			WithHeader("Allow", supportedMethods))
		return
	}

	writeResponse(c, e.dispatcher.Load().Dispatch(c.Request.Context(), req))
}

func writeResponse(c *gin.Context, resp *models.Response) {
	header := c.Writer.Header()
	for k, values := range resp.Header() {
		if strings.EqualFold(k, "Content-Length") {
			continue
		}
		key := http.CanonicalHeaderKey(k)
		header.Del(key)
		for _, v := range values {
			header.Add(key, v)
		}
	}
	if ct := resp.ContentType(); ct != "" && header.Get("Content-Type") == "" {
		header.Set("Content-Type", ct)
	}

	if !resp.HasBody() {
		c.Status(resp.StatusCode())
		c.Writer.WriteHeaderNow()
		return
	}
	c.Data(resp.StatusCode(), header.Get("Content-Type"), resp.Body())
}
