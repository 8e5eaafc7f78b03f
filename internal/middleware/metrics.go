package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/thereayou/messenger/internal/metrics"
)

// Metrics считает запросы по шаблону маршрута, а не по фактическому пути
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.URL.Path == "/metrics" {
			c.Next()
			return
		}

		done := metrics.RequestStarted()
		c.Next()
		done(c.Request.Method, c.FullPath(), c.Writer.Status())
	}
}
