// Package logctx resolves the most specific logger available at a call site:
// the request-scoped logger attached by the HTTP middleware when present,
// otherwise the base logger enriched with whatever trace/user fields the
// context carries.
package logctx

import (
	"context"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// FromGin returns the request-scoped logger stored on the gin context,
// falling back to FromCtx on the request context.
func FromGin(c *gin.Context, base *zap.SugaredLogger) *zap.SugaredLogger {
	if c == nil {
		return base
	}
	if v, ok := c.Get("logger"); ok {
		if lg, ok := v.(*zap.SugaredLogger); ok && lg != nil {
			return lg
		}
	}
	return FromCtx(c.Request.Context(), base)
}

// FromCtx returns the logger stored in ctx if set. Otherwise it enriches base
// with trace_id and user_id when those primitives are present, so audit and
// gorm logging stay correlatable even off the gin path (background persists,
// startup hooks).
func FromCtx(ctx context.Context, base *zap.SugaredLogger) *zap.SugaredLogger {
	if ctx == nil {
		return base
	}
	if lg, ok := ctx.Value("logger").(*zap.SugaredLogger); ok && lg != nil {
		return lg
	}

	var fields []interface{}
	if tid, ok := ctx.Value("traceID").(string); ok && tid != "" {
		fields = append(fields, "trace_id", tid)
	}
	if uid, ok := ctx.Value("user_id").(string); ok && uid != "" {
		fields = append(fields, "user_id", uid)
	}
	if len(fields) == 0 {
		return base
	}
	return base.With(fields...)
}
