package middleware

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
)

// Logger prints one key=value line per proxied request, including whether a
// session was restored for it.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)

		_, hasSession := CurrentSession(c)

		log.Printf("[GW] request_id=%s method=%s path=%s status=%d latency_ms=%.3f bytes=%d session=%t ip=%s",
			GetRequestID(c),
			c.Request.Method,
			c.Request.URL.Path,
			c.Writer.Status(),
			float64(latency.Microseconds())/1000.0,
			c.Writer.Size(),
			hasSession,
			c.ClientIP(),
		)
	}
}
