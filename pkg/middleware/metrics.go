package middleware

import (
	"net/http"
	"strconv"
	"time"

	"box-office/pkg/metrics"

	"github.com/go-chi/chi/v5"
)

// Metrics counts requests by the matched chi route pattern.
func Metrics(m *metrics.HTTP) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if m == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rw := newStatusRecorder(w)
			m.InFlight.Inc()
			start := time.Now()
			defer m.InFlight.Dec()

			next.ServeHTTP(rw, r)

			route := "unknown"
			if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
				route = rc.RoutePattern()
			}
			m.Requests.WithLabelValues(r.Method, route, strconv.Itoa(rw.statusCode)).Inc()
			m.Duration.WithLabelValues(r.Method, route).Observe(metrics.Millis(time.Since(start)))
		})
	}
}
