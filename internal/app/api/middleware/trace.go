package middleware

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/olharfest/inscricao-backend/pkg/tool"
)

// TraceMiddleware assigns every request a trace id, honoring an inbound
// X-Request-ID so provider webhook redeliveries stay correlatable across
// attempts. The id is stored under "traceID" in both the gin context and the
// request context; audit entries pick it up as their request id.
func TraceMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		traceID := c.GetHeader("X-Request-ID")
		if traceID == "" {
			traceID = tool.GenerateUUIDV7()
		}

		c.Set("traceID", traceID)
		ctx := context.WithValue(c.Request.Context(), "traceID", traceID)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
