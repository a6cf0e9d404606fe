package middleware

import (
	"math"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/baharkarakas/inkwell/internal/api/httpx"
	"github.com/baharkarakas/inkwell/internal/metrics"
)

type bucket struct {
	tokens float64
	last   time.Time
}

// idleGrace is how long a full bucket is kept after it stops being used.
const idleGrace = time.Minute

// limiter keeps one token bucket per client address. Buckets refill at rate
// tokens per second up to burst; buckets idle past idle are dropped, since a
// new bucket starts full anyway.
type limiter struct {
	mu        sync.Mutex
	rate      float64
	burst     float64
	idle      time.Duration
	lastSweep time.Time
	clients   map[string]*bucket
	now       func() time.Time
}

func newLimiter(rate, burst float64, now func() time.Time) *limiter {
	return &limiter{
		rate:    rate,
		burst:   burst,
		idle:    time.Duration(burst/rate*float64(time.Second)) + idleGrace,
		clients: map[string]*bucket{},
		now:     now,
	}
}

// sweep drops idle buckets. Callers hold mu.
func (l *limiter) sweep(now time.Time) {
	for client, b := range l.clients {
		if now.Sub(b.last) > l.idle {
			delete(l.clients, client)
		}
	}
	l.lastSweep = now
}

func (l *limiter) take(client string) (ok bool, retry time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if now.Sub(l.lastSweep) >= l.idle {
		l.sweep(now)
	}
	b, found := l.clients[client]
	if !found {
		b = &bucket{tokens: l.burst, last: now}
		l.clients[client] = b
	}
	b.tokens = math.Min(l.burst, b.tokens+now.Sub(b.last).Seconds()*l.rate)
	b.last = now

	if b.tokens >= 1 {
		b.tokens--
		return true, 0
	}
	return false, time.Duration((1 - b.tokens) / l.rate * float64(time.Second))
}

// RateLimit rejects clients that exceed rps requests per second with 429 and
// a Retry-After hint. rps <= 0 disables limiting.
func RateLimit(rps int) func(http.Handler) http.Handler {
	if rps <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	l := newLimiter(float64(rps), float64(rps), time.Now)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ok, retry := l.take(clientAddr(r))
			if !ok {
				metrics.RateLimited.Inc()
				w.Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(retry.Seconds()))))
				httpx.WriteError(w, http.StatusTooManyRequests, "rate_limited", "too many requests", nil)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func clientAddr(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
