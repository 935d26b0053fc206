package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"hello-api/internal/models"
)

// abortWithError stops the chain and writes the standard error body
func abortWithError(c *gin.Context, status int, kind string) {
	c.AbortWithStatusJSON(status, models.ErrorResponse{Error: kind})
}

// CORS middleware for handling Cross-Origin Resource Sharing.
// Only real preflight requests are answered here; a plain OPTIONS request is routed like any other.
func CORS(allowedOrigins []string) gin.HandlerFunc {
	allowedOrigins = splitOrigins(allowedOrigins)
	allowAll := len(allowedOrigins) == 0
	allowed := make(map[string]struct{}, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		if origin == "*" {
			allowAll = true
		}
		allowed[origin] = struct{}{}
	}

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin == "" {
			c.Next()
			return
		}

		if _, ok := allowed[origin]; !ok && !allowAll {
			c.Next()
			return
		}

		if allowAll {
			c.Header("Access-Control-Allow-Origin", "*")
		} else {
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Vary", "Origin")
		}
		c.Header("Access-Control-Expose-Headers", "Content-Length, X-Request-ID")

		if c.Request.Method == http.MethodOptions && c.GetHeader("Access-Control-Request-Method") != "" {
			c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, HEAD, OPTIONS")
			c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Content-Length, Accept-Encoding, X-Request-ID")
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// Recovery converts a panic outside the dispatcher into a generic 500 response
func Recovery(logger logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				logger.WithFields(logrus.Fields{
					"request_id":  c.GetString(RequestIDKey),
					"method":      c.Request.Method,
					"path":        c.Request.URL.Path,
					"error":       fmt.Sprintf("%v", r),
					"stack_trace": string(debug.Stack()),
				}).Error("Recovered from panic")

				abortWithError(c, http.StatusInternalServerError, models.ErrorKindInternal)
			}
		}()

		c.Next()
	}
}

// splitOrigins trims a list of configured origins
func splitOrigins(origins []string) []string {
	out := make([]string, 0, len(origins))
	for _, o := range origins {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}
