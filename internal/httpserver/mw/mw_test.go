package mw

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMatchHost(t *testing.T) {
	tests := []struct {
		host    string
		pattern string
		want    bool
	}{
		{"links.example.com", "links.example.com", true},
		{"links.example.com", "*.example.com", true},
		{"example.com", "*.example.com", false},
		{"evil.com", "*.example.com", false},
		{"links.example.com", "other.example.com", false},
	}

	for _, tt := range tests {
		assert.Equalf(t, tt.want, matchHost(tt.host, tt.pattern), "matchHost(%q, %q)", tt.host, tt.pattern)
	}
}

func TestLimiterRefill(t *testing.T) {
	l := newLimiter(RateLimitConfig{Burst: 2, RefillPerIPPerMin: 60})
	now := time.Now()

	ok, remaining, _ := l.allow("1.2.3.4", now)
	assert.True(t, ok)
	assert.Equal(t, 1, remaining)

	ok, _, _ = l.allow("1.2.3.4", now)
	assert.True(t, ok)

	ok, _, retry := l.allow("1.2.3.4", now)
	assert.False(t, ok)
	assert.Equal(t, 1, retry)

	// Other clients have their own bucket.
	ok, _, _ = l.allow("5.6.7.8", now)
	assert.True(t, ok)

	// One token per second at 60/min.
	ok, _, _ = l.allow("1.2.3.4", now.Add(time.Second))
	assert.True(t, ok)
}

func TestLimiterSweepsIdleBuckets(t *testing.T) {
	l := newLimiter(RateLimitConfig{Burst: 1, RefillPerIPPerMin: 1, IdleTTL: time.Minute, SweepInterval: time.Minute})
	now := time.Now()

	l.allow("1.2.3.4", now)
	l.sweepMaybe(now.Add(2 * time.Minute))

	l.mu.Lock()
	defer l.mu.Unlock()
	assert.Empty(t, l.buckets)
}

func TestCORSPassesThroughNonPreflight(t *testing.T) {
	called := false
	h := CORS()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusTeapot)
	}))

	// OPTIONS without Access-Control-Request-Method is not a preflight.
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/api/links", nil))

	assert.True(t, called)
	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}
