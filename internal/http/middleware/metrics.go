package middleware

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/straye-as/fieldservice-api/internal/metrics"
)

// unmatchedRoute labels requests that no route pattern matched
const unmatchedRoute = "unmatched"

// Metrics records request latency by chi route pattern, keeping label
// cardinality independent of entity ids
func Metrics(reg *metrics.Registry) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rw := wrapResponseWriter(w)

			next.ServeHTTP(rw, r)

			route := unmatchedRoute
			if rctx := chi.RouteContext(r.Context()); rctx != nil {
				if pattern := rctx.RoutePattern(); pattern != "" {
					route = pattern
				}
			}
			reg.ObserveRequest(r.Method, route, rw.statusCode, time.Since(start))
		})
	}
}
