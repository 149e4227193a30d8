package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Prometheus collects per-request count and latency, partitioned by status
// code, method and route template, and serves them on a side listener so the
// metrics port stays separate from the API port.
type Prometheus struct {
	reqCnt *prometheus.CounterVec
	reqDur *prometheus.HistogramVec

	registry   *prometheus.Registry
	listenAddr string
	log        *zap.SugaredLogger

	urlLabelFn func(c *gin.Context) string
}

type NewPrometheusOptions struct {
	// ReqCntURLLabelMappingFn maps a request to its url label; defaults to the
	// route template to keep cardinality bounded.
	ReqCntURLLabelMappingFn func(c *gin.Context) string
	Logger                  *zap.SugaredLogger
}

func NewPrometheus(opts NewPrometheusOptions) *Prometheus {
	p := &Prometheus{
		registry:   prometheus.NewRegistry(),
		log:        opts.Logger,
		urlLabelFn: opts.ReqCntURLLabelMappingFn,
	}
	if p.urlLabelFn == nil {
		p.urlLabelFn = func(c *gin.Context) string { return c.FullPath() }
	}

	p.reqCnt = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "req_total",
		Help: "How many HTTP requests processed, partitioned by status code and HTTP method.",
	}, []string{"code", "method", "url"})
	p.reqDur = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name: "req_dur_ms",
		Help: "The HTTP request latencies in milliseconds.",
	}, []string{"code", "method", "url"})

	p.registry.MustRegister(p.reqCnt, p.reqDur)
	return p
}

func (p *Prometheus) SetListenAddress(addr string) {
	p.listenAddr = addr
}

// Use attaches the middleware to the engine and starts the metrics listener.
func (p *Prometheus) Use(r *gin.Engine) {
	r.Use(p.handlerFunc())
	if p.listenAddr != "" {
		go p.serve()
	}
}

func (p *Prometheus) handlerFunc() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		code := strconv.Itoa(c.Writer.Status())
		url := p.urlLabelFn(c)
		elapsed := float64(time.Since(start)) / float64(time.Millisecond)

		p.reqCnt.WithLabelValues(code, c.Request.Method, url).Inc()
		p.reqDur.WithLabelValues(code, c.Request.Method, url).Observe(elapsed)
	}
}

func (p *Prometheus) serve() {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(p.registry, promhttp.HandlerOpts{}))
	if err := http.ListenAndServe(p.listenAddr, mux); err != nil {
		p.log.Errorf("metrics listener error: %v", err)
	}
}
