package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestRequestID(t *testing.T) {
	t.Parallel()

	var ctxID string
	h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctxID = RequestIDFromContext(r.Context())
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	headerID := rec.Header().Get("X-Request-ID")
	require.NotEmpty(t, headerID)
	require.Equal(t, headerID, ctxID)
}

func TestRequestIDFromContextMissing(t *testing.T) {
	t.Parallel()
	require.Empty(t, RequestIDFromContext(httptest.NewRequest(http.MethodGet, "/", nil).Context()))
}

func TestRateLimiterAllow(t *testing.T) {
	t.Parallel()

	rl := NewRateLimiter(3, time.Minute)
	for i := 0; i < 3; i++ {
		require.True(t, rl.Allow("1.2.3.4"))
	}
	require.False(t, rl.Allow("1.2.3.4"))
	// other keys are independent
	require.True(t, rl.Allow("5.6.7.8"))
}

func TestRateLimiterWindowExpiry(t *testing.T) {
	t.Parallel()

	rl := NewRateLimiter(1, 20*time.Millisecond)
	require.True(t, rl.Allow("k"))
	require.False(t, rl.Allow("k"))
	time.Sleep(30 * time.Millisecond)
	require.True(t, rl.Allow("k"))
}

func TestRateLimitMiddleware(t *testing.T) {
	t.Parallel()

	h := RateLimit(NewRateLimiter(1, time.Minute))(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "1.2.3.4:5555"

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	require.Contains(t, rec.Body.String(), "rate limit exceeded")
}

func TestAPIKey(t *testing.T) {
	t.Parallel()

	h := APIKey("secret")(okHandler())

	t.Run("missing key rejected", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/search", nil))
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("wrong key rejected", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodGet, "/api/search", nil)
		req.Header.Set("X-API-Key", "nope")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("correct key accepted", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodGet, "/api/search", nil)
		req.Header.Set("X-API-Key", "secret")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("health exempt", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/health", nil))
		require.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("empty expected key disables auth", func(t *testing.T) {
		t.Parallel()
		open := APIKey("")(okHandler())
		rec := httptest.NewRecorder()
		open.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/search", nil))
		require.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestMaxBytes(t *testing.T) {
	t.Parallel()

	h := MaxBytes(8)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, err := io.ReadAll(r.Body)
		if err != nil {
			w.WriteHeader(http.StatusRequestEntityTooLarge)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader("tiny")))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader("definitely more than eight bytes")))
	require.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}
