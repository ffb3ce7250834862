package observability

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

func TestClassifyDBErr(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{err: &pgconn.PgError{Code: "23505"}, want: "unique_violation"},
		{err: &pgconn.PgError{Code: "23503"}, want: "foreign_key_violation"},
		{err: &pgconn.PgError{Code: "42P01"}, want: "pg_42P01"},
		{err: fmt.Errorf("query: %w", context.DeadlineExceeded), want: "timeout"},
		{err: context.Canceled, want: "canceled"},
		{err: errors.New("boom"), want: "unknown"},
	}

	for _, tt := range tests {
		if got := classifyDBErr(tt.err); got != tt.want {
			t.Fatalf("classifyDBErr(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}

func TestObserveDB_CountsErrors(t *testing.T) {
	p := NewProm(prometheus.NewRegistry())

	_ = p.ObserveDB("registrations.insert", func() error { return nil })
	_ = p.ObserveDB("registrations.insert", func() error { return &pgconn.PgError{Code: "23505"} })

	if got := testutil.ToFloat64(p.DbErrorsTotal.WithLabelValues("registrations.insert", "unique_violation")); got != 1 {
		t.Fatalf("got %v unique violations, want 1", got)
	}
}

func TestGinMiddlewareAndHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	p := NewProm(prometheus.NewRegistry())

	r := gin.New()
	r.Use(p.GinHandleMiddleware())
	r.GET("/api/meetups/:id", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/metrics", gin.WrapH(p.Handler()))

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/meetups/1", nil))

	if got := testutil.ToFloat64(p.RequestsTotal.WithLabelValues(http.MethodGet, "/api/meetups/:id", "200")); got != 1 {
		t.Fatalf("got %v requests, want 1", got)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if !strings.Contains(w.Body.String(), "meetuphub_http_requests_total") {
		t.Fatalf("metrics output missing request counter")
	}
}

func TestTraceHandlerAddsSpanIDs(t *testing.T) {
	var buf bytes.Buffer
	log := newLogger(&buf, "dev")

	tp := sdktrace.NewTracerProvider()
	defer func() { _ = tp.Shutdown(context.Background()) }()

	ctx, span := tp.Tracer("test").Start(context.Background(), "op")
	log.InfoContext(ctx, "inside span")
	span.End()

	var line map[string]any
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("log line is not json: %v (%s)", err, buf.String())
	}

	if line["trace_id"] != span.SpanContext().TraceID().String() {
		t.Fatalf("trace_id missing or wrong: %v", line)
	}
}

func TestInitTracer_NoneIsNoop(t *testing.T) {
	shutdown, err := InitTracer(context.Background(), "meetuphub", ExporterNone, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown: %v", err)
	}

	if _, err := InitTracer(context.Background(), "meetuphub", "zipkin", ""); err == nil {
		t.Fatalf("expected error for unknown exporter")
	}
}

func TestObserveDB_NoRowsIsNotAnError(t *testing.T) {
	p := NewProm(prometheus.NewRegistry())

	err := p.ObserveDB("meetups.find_by_id", func() error { return pgx.ErrNoRows })
	if !errors.Is(err, pgx.ErrNoRows) {
		t.Fatalf("error should pass through, got %v", err)
	}

	if got := testutil.CollectAndCount(p.DbErrorsTotal); got != 0 {
		t.Fatalf("got %d error series, want 0", got)
	}
}
