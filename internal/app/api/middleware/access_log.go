package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AccessLogMiddleware writes one line per completed request through the
// request-scoped logger attached upstream. Requests without one (logger
// middleware not in the chain) are skipped rather than logged untraced.
func AccessLogMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		v, ok := c.Get("logger")
		if !ok {
			return
		}
		log, ok := v.(*zap.SugaredLogger)
		if !ok || log == nil {
			return
		}

		log.Infow("http_access",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"bytes", c.Writer.Size(),
			"latency_ms", time.Since(start).Milliseconds(),
			"client_ip", c.ClientIP(),
		)
	}
}
