package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRateLimitMiddleware_UnlimitedGeneral(t *testing.T) {
	mw := NewRateLimitMiddleware(0, 1)

	nextHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	handler := mw.Handler(nextHandler)

	for i := 0; i < 10; i++ {
		req := httptest.NewRequest("GET", "/api/products", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Errorf("Request %d failed with status %d", i, rec.Code)
		}
	}
}

func TestRateLimitMiddleware_LimitedAuth(t *testing.T) {
	mw := NewRateLimitMiddleware(0, 1)

	nextHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	handler := mw.Handler(nextHandler)

	req1 := httptest.NewRequest("POST", "/api/auth/login", nil)
	rec1 := httptest.NewRecorder()
	handler.ServeHTTP(rec1, req1)
	assert.Equal(t, http.StatusOK, rec1.Code)

	// Burst is 1, so a second immediate request from the same client
	// must be rejected.
	req2 := httptest.NewRequest("POST", "/api/auth/login", nil)
	rec2 := httptest.NewRecorder()
	handler.ServeHTTP(rec2, req2)

	assert.Equal(t, http.StatusTooManyRequests, rec2.Code)
	assert.Equal(t, "60", rec2.Header().Get("Retry-After"))
}

func TestRateLimitMiddleware_PerClientBuckets(t *testing.T) {
	mw := NewRateLimitMiddleware(0, 1)

	nextHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	handler := mw.Handler(nextHandler)

	first := httptest.NewRequest("POST", "/api/auth/login", nil)
	first.Header.Set("X-Forwarded-For", "10.0.0.1")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, first)
	assert.Equal(t, http.StatusOK, rec.Code)

	// A different client gets its own bucket.
	second := httptest.NewRequest("POST", "/api/auth/login", nil)
	second.Header.Set("X-Forwarded-For", "10.0.0.2")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, second)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRateLimitMiddleware_Configuration(t *testing.T) {
	mw := NewRateLimitMiddleware(-1, 0)
	assert.Equal(t, -1, mw.generalRPM)
	assert.Equal(t, 10, mw.authRPM)
}

func TestExtractClientIP(t *testing.T) {
	cases := []struct {
		name       string
		remoteAddr string
		forwarded  string
		realIP     string
		want       string
	}{
		{"remote addr with port", "192.168.1.5:54321", "", "", "192.168.1.5"},
		{"forwarded wins", "192.168.1.5:54321", "203.0.113.7, 10.0.0.1", "", "203.0.113.7"},
		{"real ip fallback", "192.168.1.5:54321", "", "203.0.113.8", "203.0.113.8"},
		{"empty remote addr", "", "", "", "unknown"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/", nil)
			req.RemoteAddr = tc.remoteAddr
			if tc.forwarded != "" {
				req.Header.Set("X-Forwarded-For", tc.forwarded)
			}
			if tc.realIP != "" {
				req.Header.Set("X-Real-IP", tc.realIP)
			}

			assert.Equal(t, tc.want, extractClientIP(req))
		})
	}
}
