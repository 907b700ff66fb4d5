package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"postboard/internal/observability"
)

// Metrics records request counts and latency per matched route template,
// so /api/posts/:id is one series regardless of the id.
func Metrics(m *observability.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		m.ObserveHTTP(c.Request.Method, c.FullPath(), c.Writer.Status(), time.Since(start))
	}
}
