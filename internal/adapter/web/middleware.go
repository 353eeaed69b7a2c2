package web

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const RequestIDHeader = "X-Request-ID"

var RequestsCount = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "bconsole_dashboard",
	Subsystem: "http",
	Name:      "requests_total",
	Help:      "Count of HTTP requests by route and status code",
}, []string{"route", "code"})

var RequestsDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Namespace: "bconsole_dashboard",
	Subsystem: "http",
	Name:      "request_duration_seconds",
	Help:      "Duration of HTTP requests by route",
	Buckets:   prometheus.DefBuckets,
}, []string{"route"})

type requestIDKey struct{}

// RequestID returns the id assigned to the request carrying ctx.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// requestIDMiddleware keeps a caller supplied UUID and otherwise assigns a
// new one. The id is echoed in the response header.
func requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDKey{}, id)))
	})
}

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		elapsed := time.Since(start).Round(time.Millisecond)
		log, line := s.logger, "[http] %s %s %d %s request_id="+RequestID(r.Context())
		if s.opts.RequestLogger != nil {
			log, line = s.opts.RequestLogger(RequestID(r.Context())), "[http] %s %s %d %s"
		}
		if s.opts.Debug || rec.status >= http.StatusInternalServerError {
			log.Infof(line, r.Method, r.RequestURI, rec.status, elapsed)
			return
		}
		log.Debugf(line, r.Method, r.RequestURI, rec.status, elapsed)
	})
}

func metricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		route := routeTemplate(r)
		RequestsDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
		RequestsCount.WithLabelValues(route, strconv.Itoa(rec.status)).Inc()
	})
}

// routeTemplate labels metrics by route pattern so job and volume names do
// not become label values.
func routeTemplate(r *http.Request) string {
	if route := mux.CurrentRoute(r); route != nil {
		if tpl, err := route.GetPathTemplate(); err == nil {
			return tpl
		}
	}
	return "unmatched"
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}
