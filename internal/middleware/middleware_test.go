package middleware

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baharkarakas/inkwell/internal/apperr"
	"github.com/baharkarakas/inkwell/internal/models"
)

type stubAuth map[string]models.PublicUser

func (s stubAuth) Authenticate(_ context.Context, token string) (*models.PublicUser, error) {
	u, ok := s[token]
	if !ok {
		return nil, apperr.ErrInvalidToken
	}
	return &u, nil
}

func whoami(w http.ResponseWriter, r *http.Request) {
	u, ok := FromCtx(r.Context())
	if !ok {
		w.WriteHeader(http.StatusTeapot)
		return
	}
	_, _ = w.Write([]byte(u.ID))
}

func TestAuth(t *testing.T) {
	h := NewAuthMiddleware(stubAuth{"good": {ID: "1"}}).Auth(http.HandlerFunc(whoami))

	cases := []struct {
		name   string
		header string
		status int
		body   string
	}{
		{"missing", "", http.StatusUnauthorized, "User not authenticated"},
		{"wrong scheme", "Basic abc", http.StatusUnauthorized, "User not authenticated"},
		{"bad token", "Bearer nope", http.StatusUnauthorized, "Invalid token"},
		{"ok", "Bearer good", http.StatusOK, ""},
		{"lowercase scheme", "bearer good", http.StatusOK, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Equal(t, tc.status, rec.Code)
			if tc.body != "" {
				var body map[string]string
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
				assert.Equal(t, tc.body, body["error"])
			} else {
				assert.Equal(t, "1", rec.Body.String())
			}
		})
	}
}

func TestRequestID(t *testing.T) {
	var seen string
	h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = RequestIDFrom(r.Context())
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotEmpty(t, seen)
	assert.Equal(t, seen, rec.Header().Get(RequestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, "abc-123", seen)
}

func TestRecover(t *testing.T) {
	h := Recover(nil)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) { panic("boom") }))
	rec := httptest.NewRecorder()
	assert.NotPanics(t, func() { h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil)) })
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestRateLimit(t *testing.T) {
	h := RateLimit(2)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	var codes []int
	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		codes = append(codes, rec.Code)
	}
	assert.Equal(t, []int{200, 200, http.StatusTooManyRequests}, codes)

	other := httptest.NewRequest(http.MethodGet, "/", nil)
	other.RemoteAddr = "198.51.100.7:4000"
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, other)
	assert.Equal(t, http.StatusOK, rec.Code, "buckets are per client")
}

func TestLimiterRefillsAndHintsRetry(t *testing.T) {
	now := time.Unix(1000, 0)
	l := newLimiter(2, 2, func() time.Time { return now })

	ok, _ := l.take("a")
	assert.True(t, ok)
	ok, _ = l.take("a")
	assert.True(t, ok)
	ok, retry := l.take("a")
	assert.False(t, ok)
	assert.Equal(t, 500*time.Millisecond, retry)

	now = now.Add(500 * time.Millisecond)
	ok, _ = l.take("a")
	assert.True(t, ok)
}

func TestLimiterDropsIdleClients(t *testing.T) {
	now := time.Unix(1000, 0)
	l := newLimiter(2, 2, func() time.Time { return now })

	for i := 0; i < 1000; i++ {
		ok, _ := l.take(fmt.Sprintf("10.0.%d.%d", i/256, i%256))
		require.True(t, ok)
	}
	assert.Len(t, l.clients, 1000)

	// a client that keeps coming back survives the sweep
	now = now.Add(l.idle / 2)
	ok, _ := l.take("10.0.0.0")
	require.True(t, ok)

	now = now.Add(l.idle/2 + time.Second)
	ok, _ = l.take("192.0.2.50")
	require.True(t, ok)

	assert.Len(t, l.clients, 2)
	assert.Contains(t, l.clients, "10.0.0.0")
	assert.Contains(t, l.clients, "192.0.2.50")
}

func TestHTTPMetricsRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Use(HTTPMetrics)
	r.Get("/posts/{id}", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/posts/{id}", routeOf(r))
		w.WriteHeader(http.StatusNotFound)
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/posts/42", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	assert.Equal(t, "unmatched", routeOf(httptest.NewRequest(http.MethodGet, "/", nil)))
}

func TestRateLimitDisabled(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})
	h := RateLimit(0)(next)
	for i := 0; i < 10; i++ {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
	}
}
