package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(TraceMiddleware(), RequestLoggerMiddleware(zap.NewNop().Sugar()), AccessLogMiddleware())
	return r
}

func TestTraceMiddleware_HonorsInboundRequestID(t *testing.T) {
	r := newTestRouter()

	var seen string
	r.GET("/ping", func(c *gin.Context) {
		if v, ok := c.Get("traceID"); ok {
			seen, _ = v.(string)
		}
		require.Equal(t, seen, c.Request.Context().Value("traceID"))
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("X-Request-ID", "trace-from-provider")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, "trace-from-provider", seen)
	require.Equal(t, "trace-from-provider", w.Header().Get("X-Request-ID"))
}

func TestTraceMiddleware_GeneratesWhenAbsent(t *testing.T) {
	r := newTestRouter()

	var seen string
	r.GET("/ping", func(c *gin.Context) {
		v, _ := c.Get("traceID")
		seen, _ = v.(string)
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

	require.NotEmpty(t, seen)
	require.Equal(t, seen, w.Header().Get("X-Request-ID"))
}

func TestRequestLoggerMiddleware_AttachesLogger(t *testing.T) {
	r := newTestRouter()

	var attached bool
	r.GET("/ping", func(c *gin.Context) {
		if v, ok := c.Get("logger"); ok {
			_, attached = v.(*zap.SugaredLogger)
		}
		require.NotNil(t, c.Request.Context().Value("logger"))
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	require.True(t, attached)
}

func TestAccessLogMiddleware_SkipsWithoutLogger(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(AccessLogMiddleware())
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	require.NotPanics(t, func() {
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	})
	require.Equal(t, http.StatusOK, w.Code)
}
