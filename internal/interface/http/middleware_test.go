package http

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/skyfetch/internal/infra/config"
)

func TestIPRateLimiterRefills(t *testing.T) {
	limiter := newIPRateLimiter(config.RateLimitConfig{Enabled: true, RequestsPerMinute: 60, Burst: 2})
	start := time.Date(2024, 7, 1, 12, 0, 0, 0, time.UTC)

	require.True(t, limiter.allow("10.0.0.1", start))
	require.True(t, limiter.allow("10.0.0.1", start))
	require.False(t, limiter.allow("10.0.0.1", start))
	require.True(t, limiter.allow("10.0.0.2", start), "buckets are per client")

	require.True(t, limiter.allow("10.0.0.1", start.Add(time.Second)))
	require.False(t, limiter.allow("10.0.0.1", start.Add(time.Second)))
	require.Equal(t, 1, limiter.retryAfterSeconds())
}

func TestIPRateLimiterEvictsIdleClients(t *testing.T) {
	limiter := newIPRateLimiter(config.RateLimitConfig{Enabled: true, RequestsPerMinute: 10, Burst: 1})
	start := time.Date(2024, 7, 1, 12, 0, 0, 0, time.UTC)

	require.True(t, limiter.allow("10.0.0.1", start))
	require.True(t, limiter.allow("10.0.0.2", start.Add(10*time.Minute)))
	require.Len(t, limiter.buckets, 1)
	require.Contains(t, limiter.buckets, "10.0.0.2")
}

func TestResolveOrigin(t *testing.T) {
	cases := []struct {
		name    string
		origin  string
		allowed []string
		want    string
	}{
		{name: "no allow list", origin: "https://a.test", want: "*"},
		{name: "wildcard", origin: "https://a.test", allowed: []string{"*"}, want: "*"},
		{name: "match", origin: "https://b.test", allowed: []string{"https://a.test", "https://B.test"}, want: "https://b.test"},
		{name: "mismatch", origin: "https://evil.test", allowed: []string{"https://a.test"}, want: "https://a.test"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, resolveOrigin(tc.origin, tc.allowed))
		})
	}
}

func TestWithRetrySkipsUnlistedPaths(t *testing.T) {
	calls := 0
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusBadGateway)
	})
	cfg := config.RetryConfig{Enabled: true, MaxAttempts: 3, BaseBackoff: time.Millisecond, Paths: []string{"/api/v1/weather"}}
	handler := withRetry(inner, cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/api/v1/recipes", nil))
	require.Equal(t, http.StatusBadGateway, recorder.Code)
	require.Equal(t, 1, calls)
}

func TestWithRetryGivesUpAfterMaxAttempts(t *testing.T) {
	calls := 0
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Header().Set("X-Attempt", "seen")
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"error":{"code":"weather_failed"}}`))
	})
	cfg := config.RetryConfig{Enabled: true, MaxAttempts: 3, BaseBackoff: time.Millisecond, Paths: []string{"/api/v1/weather"}}
	handler := withRetry(inner, cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/api/v1/weather?city=x", nil))
	require.Equal(t, http.StatusServiceUnavailable, recorder.Code)
	require.Equal(t, 3, calls)
	require.Equal(t, "seen", recorder.Header().Get("X-Attempt"))
	require.JSONEq(t, `{"error":{"code":"weather_failed"}}`, recorder.Body.String())
}

func TestWithRetryTreatsBadGatewayAsFinal(t *testing.T) {
	calls := 0
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusBadGateway)
	})
	cfg := config.RetryConfig{Enabled: true, MaxAttempts: 3, BaseBackoff: time.Millisecond, Paths: []string{"/api/v1/weather"}}
	handler := withRetry(inner, cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/api/v1/weather?city=x", nil))
	require.Equal(t, http.StatusBadGateway, recorder.Code)
	require.Equal(t, 1, calls)
}
