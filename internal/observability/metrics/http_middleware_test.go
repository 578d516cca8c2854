package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestRouteLabel(t *testing.T) {
	cases := []struct {
		path, want string
	}{
		{"/api/responses", "/api/responses"},
		{"/api/responses/", "/api/responses/"},
		{"/api/responses/FY2023-24", "/api/responses/:year"},
		{"/api/responses/2021", "/api/responses/:year"},
		{"/api/auth/login", "/api/auth/login"},
		{"/health", "/health"},
	}
	for _, c := range cases {
		if got := routeLabel(c.path); got != c.want {
			t.Fatalf("routeLabel(%q) = %q, want %q", c.path, got, c.want)
		}
	}
}

func TestStatusWriterCapturesCode(t *testing.T) {
	handler := HTTPMetricsMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/responses/FY2023-24", nil))
	if rec.Code != http.StatusTeapot {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusTeapot)
	}

	// Implicit 200 when the handler writes nothing.
	rec = httptest.NewRecorder()
	HTTPMetricsMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})).
		ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}
