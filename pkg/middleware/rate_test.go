package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestRateLimiterBlocksAfterBurst(t *testing.T) {
	rl := NewRateLimiter(1, 3)
	h := rl.Middleware(okHandler())

	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "10.0.0.1:51000"
		h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code, "request %d within burst", i+1)
	}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.1:51000"
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Contains(t, rec.Body.String(), "Too many requests")
}

func TestRateLimiterIsPerIP(t *testing.T) {
	rl := NewRateLimiter(1, 1)
	h := rl.Middleware(okHandler())

	first := httptest.NewRecorder()
	reqA := httptest.NewRequest(http.MethodGet, "/", nil)
	reqA.RemoteAddr = "10.0.0.1:51000"
	h.ServeHTTP(first, reqA)
	assert.Equal(t, http.StatusOK, first.Code)

	blocked := httptest.NewRecorder()
	h.ServeHTTP(blocked, reqA.Clone(reqA.Context()))
	assert.Equal(t, http.StatusTooManyRequests, blocked.Code)

	other := httptest.NewRecorder()
	reqB := httptest.NewRequest(http.MethodGet, "/", nil)
	reqB.RemoteAddr = "10.0.0.2:51000"
	h.ServeHTTP(other, reqB)
	assert.Equal(t, http.StatusOK, other.Code, "a different IP has its own bucket")
}

func TestRateLimiterHonorsForwardedFor(t *testing.T) {
	rl := NewRateLimiter(1, 1)
	h := rl.Middleware(okHandler())

	// Two proxied requests from the same origin share one bucket even
	// though RemoteAddr differs.
	reqA := httptest.NewRequest(http.MethodGet, "/", nil)
	reqA.RemoteAddr = "172.16.0.10:40000"
	reqA.Header.Set("X-Forwarded-For", "203.0.113.9, 172.16.0.10")

	reqB := httptest.NewRequest(http.MethodGet, "/", nil)
	reqB.RemoteAddr = "172.16.0.11:40001"
	reqB.Header.Set("X-Forwarded-For", "203.0.113.9, 172.16.0.11")

	first := httptest.NewRecorder()
	h.ServeHTTP(first, reqA)
	assert.Equal(t, http.StatusOK, first.Code)

	second := httptest.NewRecorder()
	h.ServeHTTP(second, reqB)
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
}
