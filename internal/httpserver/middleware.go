package httpserver

import (
	"crypto/rand"
	"encoding/hex"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jonesrussell/brandquery/internal/logger"
)

const maxInboundRequestIDLen = 128

// RequestIDMiddleware assigns every request an id - taken from an inbound
// X-Request-ID header when present and not oversized, generated otherwise -
// echoes it on the response, and attaches a logger.Logger tagged with that
// id to the request's context via logger.WithContext. Handlers retrieve it
// with logger.FromContext so every log line for a request carries its id
// without threading one through every call.
func RequestIDMiddleware(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" || len(id) > maxInboundRequestIDLen {
			id = generateRequestID()
		}
		c.Set("request_id", id)
		c.Writer.Header().Set("X-Request-ID", id)

		reqLog := log.With(logger.String("request_id", id))
		c.Request = c.Request.WithContext(logger.WithContext(c.Request.Context(), reqLog))

		c.Next()
	}
}

func generateRequestID() string {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return hex.EncodeToString([]byte(time.Now().String()))[:32]
	}
	return hex.EncodeToString(buf)
}

// LoggerMiddleware logs method, path, status, duration and client IP for
// every request in a single structured log entry. Run after
// RequestIDMiddleware so request_id set on the gin context is included.
func LoggerMiddleware(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery
		method := c.Request.Method

		c.Next()

		fields := []logger.Field{
			logger.String("method", method),
			logger.String("path", path),
			logger.Int("status", c.Writer.Status()),
			logger.Duration("duration", time.Since(start)),
			logger.String("client_ip", c.ClientIP()),
		}
		if id, ok := c.Get("request_id"); ok {
			if idStr, isString := id.(string); isString {
				fields = append(fields, logger.String("request_id", idStr))
			}
		}
		if query != "" {
			fields = append(fields, logger.String("query", query))
		}
		if len(c.Errors) > 0 {
			messages := make([]string, len(c.Errors))
			for i, e := range c.Errors {
				messages[i] = e.Err.Error()
			}
			fields = append(fields, logger.Strings("errors", messages))
			log.Error("http request with errors", fields...)
			return
		}
		log.Info("http request", fields...)
	}
}

// RecoveryMiddleware converts a panic in a downstream handler into a 500
// response instead of crashing the process.
func RecoveryMiddleware(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				log.Error("panic recovered",
					logger.Any("error", err),
					logger.String("path", c.Request.URL.Path),
					logger.String("method", c.Request.Method),
				)
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"error":   "internal server error",
					"code":    "INTERNAL_ERROR",
					"message": "an unexpected error occurred",
				})
			}
		}()
		c.Next()
	}
}
