package middleware

import (
	"net/http"
	"sync"

	"golang.org/x/time/rate"

	"github.com/BUTTERCUPXCZ/interview-sandbox/internal/metrics"
)

// RateLimiter throttles code execution requests. Three gates apply in
// order: a global token bucket, a per-client bucket, and a cap on
// concurrent executions.
type RateLimiter struct {
	global        *rate.Limiter
	perClient     sync.Map
	clientRate    rate.Limit
	clientBurst   int
	maxConcurrent int64

	mu      sync.Mutex
	current int64
}

func NewRateLimiter(rps float64, burst, maxConcurrent int) *RateLimiter {
	return &RateLimiter{
		global:        rate.NewLimiter(rate.Limit(rps), burst),
		clientRate:    rate.Limit(rps),
		clientBurst:   burst,
		maxConcurrent: int64(maxConcurrent),
	}
}

func (rl *RateLimiter) clientLimiter(ip string) *rate.Limiter {
	if l, ok := rl.perClient.Load(ip); ok {
		return l.(*rate.Limiter)
	}
	l := rate.NewLimiter(rl.clientRate, rl.clientBurst)
	actual, _ := rl.perClient.LoadOrStore(ip, l)
	return actual.(*rate.Limiter)
}

// Allow reserves a slot for one execution. Callers that receive true
// must call Done when the execution finishes.
func (rl *RateLimiter) Allow(ip string) bool {
	if !rl.global.Allow() {
		metrics.RateLimitHits.Inc()
		return false
	}
	if !rl.clientLimiter(ip).Allow() {
		metrics.RateLimitHits.Inc()
		return false
	}

	rl.mu.Lock()
	defer rl.mu.Unlock()
	if rl.current >= rl.maxConcurrent {
		metrics.RateLimitHits.Inc()
		return false
	}
	rl.current++
	return true
}

func (rl *RateLimiter) Done() {
	rl.mu.Lock()
	if rl.current > 0 {
		rl.current--
	}
	rl.mu.Unlock()
}

// Middleware rejects over-limit requests with 429. RealIP runs earlier
// in the chain, so RemoteAddr already reflects X-Forwarded-For.
func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !rl.Allow(r.RemoteAddr) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusTooManyRequests)
			w.Write([]byte(`{"error":"too many requests"}`))
			return
		}
		defer rl.Done()

		next.ServeHTTP(w, r)
	})
}
