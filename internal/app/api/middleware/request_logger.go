package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/olharfest/inscricao-backend/pkg/auth"
)

// RequestLoggerMiddleware derives a request-scoped logger carrying the trace
// id and, when the caller presented a valid token, the user id. Handlers and
// services reach it through pkg/logctx. The trace id is also mirrored to the
// X-Request-ID response header.
func RequestLoggerMiddleware(base *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var fields []interface{}
		if tid, ok := c.Get("traceID"); ok {
			fields = append(fields, "trace_id", tid)
			if s, ok := tid.(string); ok && s != "" {
				c.Writer.Header().Set("X-Request-ID", s)
			}
		}
		if id := auth.FromGin(c); id != nil {
			fields = append(fields, "user_id", id.UID)
		}

		reqLogger := base.With(fields...)
		c.Set("logger", reqLogger)
		c.Request = c.Request.WithContext(
			context.WithValue(c.Request.Context(), "logger", reqLogger))

		c.Next()
	}
}
