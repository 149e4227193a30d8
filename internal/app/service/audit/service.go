package audit

import (
	"context"
	"encoding/json"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/olharfest/inscricao-backend/internal/models"
	"github.com/olharfest/inscricao-backend/pkg/logctx"
	"github.com/olharfest/inscricao-backend/pkg/tool"
	"github.com/olharfest/inscricao-backend/pkg/types"
)

// Context carries the request-scoped fields stored with persisted entries.
type Context struct {
	FunctionName string
	UserID       string
	RequestID    string
	IP           string
	UserAgent    string
}

// GinContext builds an audit Context from the current HTTP request.
func GinContext(c *gin.Context, functionName, userID string) *Context {
	actx := &Context{FunctionName: functionName, UserID: userID}
	if c == nil {
		return actx
	}
	if v, ok := c.Get("traceID"); ok {
		if s, ok := v.(string); ok {
			actx.RequestID = s
		}
	}
	actx.IP = c.ClientIP()
	actx.UserAgent = c.Request.UserAgent()
	return actx
}

// CtxContext builds an audit Context from a bare context, picking up the
// trace id set by the HTTP middleware when present.
func CtxContext(ctx context.Context, functionName, userID string) *Context {
	actx := &Context{FunctionName: functionName, UserID: userID}
	if ctx == nil {
		return actx
	}
	if tid, ok := ctx.Value("traceID").(string); ok {
		actx.RequestID = tid
	}
	return actx
}

type Service struct {
	db  *gorm.DB
	log *zap.SugaredLogger
}

func New(db *gorm.DB, log *zap.SugaredLogger) *Service { return &Service{db: db, log: log} }

// Log emits the event to the process log synchronously and, for business,
// security and error levels, persists it in the background. Persistence is
// best-effort: failures are logged and never reach the caller.
func (s *Service) Log(ctx context.Context, level types.LogLevel, message string, data map[string]any, actx *Context) {
	if actx == nil {
		actx = &Context{}
	}

	fields := []any{
		"level_tag", string(level),
		"function", actx.FunctionName,
		"request_id", actx.RequestID,
	}
	if actx.UserID != "" {
		fields = append(fields, "user_id", actx.UserID)
	}
	if len(data) > 0 {
		fields = append(fields, "data", data)
	}

	l := logctx.FromCtx(ctx, s.log)
	switch level {
	case types.LogLevelError:
		l.Errorw(message, fields...)
	case types.LogLevelWarn, types.LogLevelSecurity:
		l.Warnw(message, fields...)
	default:
		l.Infow(message, fields...)
	}

	if !level.Persisted() {
		return
	}

	now := time.Now()
	dataBytes, _ := json.Marshal(data)
	go s.persist(ctx, level, message, dataBytes, actx, now)
}

func (s *Service) persist(ctx context.Context, level types.LogLevel, message string, data []byte, actx *Context, at time.Time) {
	var userID *string
	if actx.UserID != "" {
		userID = lo.ToPtr(actx.UserID)
	}

	entry := &models.SystemLog{
		ID:           tool.GenerateUUIDV7(),
		Level:        level,
		Message:      message,
		Data:         datatypes.JSON(data),
		FunctionName: actx.FunctionName,
		UserID:       userID,
		RequestID:    actx.RequestID,
		IP:           actx.IP,
		UserAgent:    actx.UserAgent,
		LogTime:      at,
	}
	if err := s.db.Create(entry).Error; err != nil {
		logctx.FromCtx(ctx, s.log).Errorf("failed to save system log: %v", err)
	}

	if level != types.LogLevelSecurity {
		return
	}
	sec := &models.SecurityLog{
		ID:           tool.GenerateUUIDV7(),
		Message:      message,
		Data:         datatypes.JSON(data),
		FunctionName: actx.FunctionName,
		UserID:       userID,
		RequestID:    actx.RequestID,
		IP:           actx.IP,
		UserAgent:    actx.UserAgent,
		LogTime:      at,
	}
	if err := s.db.Create(sec).Error; err != nil {
		logctx.FromCtx(ctx, s.log).Errorf("failed to save security log: %v", err)
	}
}
