package metrics

import (
	"net/http"
	"strconv"
	"strings"
	"time"
)

// HTTPMetricsMiddleware wraps a handler and records count and latency per
// route template. The financial-year path segment is collapsed so the path
// label stays bounded no matter how many years users submit.
func HTTPMetricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sw, r)
		ObserveHTTPRequest(r.Method, routeLabel(r.URL.Path), strconv.Itoa(sw.status), time.Since(start))
	})
}

// routeLabel maps a request path to its route template.
func routeLabel(path string) string {
	if rest := strings.TrimPrefix(path, "/api/responses/"); rest != path && rest != "" {
		return "/api/responses/:year"
	}
	return path
}

// statusWriter remembers the status code written by the handler. When the
// handler never calls WriteHeader the implicit 200 is kept.
type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}
