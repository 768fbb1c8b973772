package obs

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// GinRequestIDKey is the gin context key the handlers read to echo the
// request ID back in error bodies.
const GinRequestIDKey = "request_id"

type Middleware struct {
	Logger *slog.Logger
}

// RequestID accepts a caller-supplied X-Request-ID or mints one, and makes
// it available on the response header and the gin context.
func (m Middleware) RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		c.Writer.Header().Set("X-Request-ID", id)
		c.Set(GinRequestIDKey, id)
		c.Next()
	}
}

// LoggerMiddleware logs one line per request, at warn level for server
// errors. Probe endpoints are skipped to keep the log readable.
func (m Middleware) LoggerMiddleware() gin.HandlerFunc {
	log := m.Logger
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		if log == nil {
			return
		}
		path := c.FullPath()
		if path == "/livez" || path == "/readyz" {
			return
		}
		status := c.Writer.Status()
		attrs := []any{
			"method", c.Request.Method,
			"path", path,
			"status", status,
			"duration", time.Since(start),
			"client_ip", c.ClientIP(),
			"request_id", c.GetString(GinRequestIDKey),
		}
		if status >= http.StatusInternalServerError {
			log.Warn("http", attrs...)
			return
		}
		log.Info("http", attrs...)
	}
}
