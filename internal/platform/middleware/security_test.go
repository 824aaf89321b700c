package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSecurityHeaders(t *testing.T) {
	h := Security("/docs")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	resp := httptest.NewRecorder()
	h.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/", nil))

	for name, want := range securityHeaders {
		if got := resp.Header().Get(name); got != want {
			t.Errorf("%s = %q, want %q", name, got, want)
		}
	}
}

func TestSecuritySkipsPrefixes(t *testing.T) {
	h := Security("/docs", "/openapi")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	for _, path := range []string{"/docs", "/openapi.json", "/openapi-3.0.yaml"} {
		resp := httptest.NewRecorder()
		h.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, path, nil))
		if got := resp.Header().Get("X-Frame-Options"); got != "" {
			t.Errorf("%s: expected no security headers, got X-Frame-Options %q", path, got)
		}
	}
}

func TestVaryAddsAccept(t *testing.T) {
	h := Vary()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Add("Vary", "Origin")
	}))

	resp := httptest.NewRecorder()
	h.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/", nil))

	vary := resp.Header().Values("Vary")
	if len(vary) != 2 || vary[0] != "Accept" || vary[1] != "Origin" {
		t.Fatalf("expected Vary [Accept Origin], got %v", vary)
	}
}
