package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "meetuphub"

type Prom struct {
	RequestsTotal    *prometheus.CounterVec
	RequestsDuration *prometheus.HistogramVec
	InFlight         *prometheus.GaugeVec

	DbQueryDuration *prometheus.HistogramVec
	DbErrorsTotal   *prometheus.CounterVec

	CacheLookups *prometheus.CounterVec

	gatherer prometheus.Gatherer
}

// NewProm registers every collector on reg and serves reg from Handler.
func NewProm(reg *prometheus.Registry) *Prom {
	f := promauto.With(reg)
	httpLabels := []string{"method", "route", "status"}

	return &Prom{
		RequestsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "http", Name: "requests_total",
			Help: "HTTP requests by method, route template and status.",
		}, httpLabels),
		RequestsDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace, Subsystem: "http", Name: "request_duration_seconds",
			Help:    "HTTP request latency.",
			Buckets: prometheus.ExponentialBuckets(0.005, 2.5, 9),
		}, httpLabels),
		InFlight: f.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace, Subsystem: "http", Name: "in_flight_requests",
			Help: "Requests currently being served.",
		}, []string{"method", "route"}),
		DbQueryDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace, Subsystem: "db", Name: "query_duration_seconds",
			Help:    "Repository operation latency by logical op.",
			Buckets: prometheus.ExponentialBuckets(0.002, 2.5, 8),
		}, []string{"op", "status"}),
		DbErrorsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "db", Name: "errors_total",
			Help: "Repository errors by logical op and class.",
		}, []string{"op", "class"}),
		// result is hit, miss or error
		CacheLookups: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "cache", Name: "lookups_total",
			Help: "Cache lookups by key space and result.",
		}, []string{"space", "result"}),
		gatherer: reg,
	}
}

func (p *Prom) GinHandleMiddleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		route := ctx.FullPath()
		if route == "" {
			route = "unmatched"
		}
		method := ctx.Request.Method

		inFlight := p.InFlight.WithLabelValues(method, route)
		inFlight.Inc()
		defer inFlight.Dec()

		start := time.Now()
		ctx.Next()

		status := strconv.Itoa(ctx.Writer.Status())
		p.RequestsTotal.WithLabelValues(method, route, status).Inc()
		p.RequestsDuration.WithLabelValues(method, route, status).Observe(time.Since(start).Seconds())
	}
}

// Handler exposes the registry in the Prometheus text format.
func (p *Prom) Handler() http.Handler {
	return promhttp.HandlerFor(p.gatherer, promhttp.HandlerOpts{})
}

func (p *Prom) ObserveCache(space string, hit bool, err error) {
	result := "miss"
	switch {
	case err != nil:
		result = "error"
	case hit:
		result = "hit"
	}
	p.CacheLookups.WithLabelValues(space, result).Inc()
}
