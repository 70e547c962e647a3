package middleware

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestID tags every request with an X-Request-ID, generating one when
// the caller did not send one. Handlers read it from the context for log
// correlation.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Header("X-Request-ID", id)
		c.Next()
	}
}

// Logger writes one access-log line per request after the handler chain
// completes.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		id, _ := c.Get("request_id")
		log.Printf("[%s] %s %s -> %d (%s, %dB)",
			id,
			c.Request.Method,
			c.Request.URL.Path,
			c.Writer.Status(),
			time.Since(start),
			c.Writer.Size(),
		)
	}
}

// Recovery converts handler panics into 500 responses.
func Recovery() gin.HandlerFunc {
	return gin.Recovery()
}
