package middleware

import (
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

const (
	limiterSweep = 5 * time.Minute
	limiterIdle  = 10 * time.Minute
)

type ipLimiter struct {
	limiter  *rate.Limiter
	lastSeen atomic.Int64 // unix nanos
}

// RateLimit provides per-IP token-bucket rate limiting.
// r = requests per second, b = burst size. A non-positive r disables it.
func RateLimit(r rate.Limit, b int) gin.HandlerFunc {
	if r <= 0 {
		return func(c *gin.Context) { c.Next() }
	}
	limiters := &sync.Map{}
	var sweepAt atomic.Int64
	sweepAt.Store(time.Now().Add(limiterSweep).UnixNano())

	// Idle limiters are dropped lazily from the request path.
	sweep := func(now time.Time) {
		next := sweepAt.Load()
		if now.UnixNano() < next || !sweepAt.CompareAndSwap(next, now.Add(limiterSweep).UnixNano()) {
			return
		}
		cutoff := now.Add(-limiterIdle).UnixNano()
		limiters.Range(func(k, v interface{}) bool {
			if v.(*ipLimiter).lastSeen.Load() < cutoff {
				limiters.Delete(k)
			}
			return true
		})
	}

	return func(c *gin.Context) {
		now := time.Now()
		sweep(now)
		v, _ := limiters.LoadOrStore(c.ClientIP(), &ipLimiter{limiter: rate.NewLimiter(r, b)})
		il := v.(*ipLimiter)
		il.lastSeen.Store(now.UnixNano())
		if !il.limiter.Allow() {
			c.Header("Retry-After", "1")
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
			return
		}
		c.Next()
	}
}
