// Package middleware provides HTTP middleware for the routeviz API.
package middleware

import (
	"context"
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/naijapath/routeviz/internal/clock"
	"github.com/naijapath/routeviz/internal/metrics"
)

// ErrCodeRateLimited is returned when a client exceeds its request budget.
const ErrCodeRateLimited = "rate_limited"

const (
	maxClients  = 100_000
	idleEvict   = 10 * time.Minute
	evictPeriod = 5 * time.Minute
)

// RateLimiter throttles clients per IP with a fractional token bucket. Each
// limiter has a name used as the metrics label, so the API-wide limiter and
// the stricter route limiter can be told apart.
type RateLimiter struct {
	name    string
	rate    float64
	burst   float64
	message string
	clock   clock.Clock

	mu      sync.Mutex
	clients map[string]*tokenBucket
}

type tokenBucket struct {
	tokens float64
	seen   time.Time
}

// take refills b up to burst and spends one token. When the bucket is dry it
// returns how long until a token is available.
func (b *tokenBucket) take(now time.Time, rate, burst float64) (bool, time.Duration) {
	b.tokens = math.Min(burst, b.tokens+now.Sub(b.seen).Seconds()*rate)
	b.seen = now

	if b.tokens >= 1 {
		b.tokens--

		return true, 0
	}

	wait := (1 - b.tokens) / rate

	return false, time.Duration(wait * float64(time.Second))
}

// NewRateLimiter creates a limiter allowing ratePerSec sustained requests per
// IP with bursts up to burst. Idle clients are evicted until ctx is done.
func NewRateLimiter(ctx context.Context, name string, ratePerSec, burst int) *RateLimiter {
	rl := &RateLimiter{
		name:    name,
		rate:    float64(ratePerSec),
		burst:   float64(burst),
		message: "rate limit exceeded",
		clock:   clock.Real(),
		clients: make(map[string]*tokenBucket),
	}
	go rl.evictIdle(ctx)

	return rl
}

// WithMessage sets the error message returned when a client is throttled.
func (rl *RateLimiter) WithMessage(msg string) *RateLimiter {
	rl.message = msg

	return rl
}

// WithClock replaces the time source used for refills.
func (rl *RateLimiter) WithClock(c clock.Clock) *RateLimiter {
	rl.clock = c

	return rl
}

func (rl *RateLimiter) evictIdle(ctx context.Context) {
	ticker := time.NewTicker(evictPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			now := rl.clock.Now()
			rl.mu.Lock()
			for ip, b := range rl.clients {
				if now.Sub(b.seen) > idleEvict {
					delete(rl.clients, ip)
				}
			}
			rl.mu.Unlock()
		}
	}
}

// allow reports whether ip may proceed and, if not, the suggested wait.
func (rl *RateLimiter) allow(ip string) (bool, time.Duration, bool) {
	now := rl.clock.Now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	b, ok := rl.clients[ip]
	if !ok {
		if len(rl.clients) >= maxClients {
			return false, 0, true
		}

		b = &tokenBucket{tokens: rl.burst, seen: now}
		rl.clients[ip] = b
	}

	allowed, wait := b.take(now, rl.rate, rl.burst)

	return allowed, wait, false
}

// Handler returns Gin middleware that applies the limiter per client IP.
func (rl *RateLimiter) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		// SetTrustedProxies(nil) in the router disables X-Forwarded-For trust.
		allowed, wait, full := rl.allow(c.ClientIP())
		if allowed {
			c.Next()

			return
		}

		metrics.RateLimitedTotal.WithLabelValues(rl.name).Inc()

		if full {
			respondError(c, http.StatusTooManyRequests, ErrCodeRateLimited, "too many clients")

			return
		}

		secs := int(math.Ceil(wait.Seconds()))
		if secs < 1 {
			secs = 1
		}
		c.Header("Retry-After", strconv.Itoa(secs))
		respondError(c, http.StatusTooManyRequests, ErrCodeRateLimited, rl.message)
	}
}
