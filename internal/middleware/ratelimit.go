package middleware

import (
	"net/http" // HTTP status codes
	"strconv"  // User id keys
	"sync"     // Guards the limiter map
	"time"     // Idle eviction

	"github.com/gin-gonic/gin" // Gin web framework
	"golang.org/x/time/rate"   // Token bucket limiter
)

// limiterIdle is how long a client's bucket is kept after its last request
const limiterIdle = 10 * time.Minute

type clientBucket struct {
	limiter  *rate.Limiter // Token bucket of one client
	lastSeen time.Time     // Last request of the client
}

// ClientLimiter hands out one token bucket per client
type ClientLimiter struct {
	mu      sync.Mutex
	buckets map[string]*clientBucket
	limit   rate.Limit
	burst   int
	now     func() time.Time
}

func NewClientLimiter(limit rate.Limit, burst int) *ClientLimiter {
	return &ClientLimiter{
		buckets: make(map[string]*clientBucket),
		limit:   limit,
		burst:   burst,
		now:     time.Now,
	}
}

// Allow reports whether the client identified by key may make a request now
func (l *ClientLimiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	b, ok := l.buckets[key]
	if !ok {
		l.sweep(now) // New clients pay for dropping idle ones
		b = &clientBucket{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.buckets[key] = b
	}
	b.lastSeen = now
	return b.limiter.AllowN(now, 1)
}

// sweep drops buckets idle for longer than limiterIdle; l.mu must be held
func (l *ClientLimiter) sweep(now time.Time) {
	for key, b := range l.buckets {
		if now.Sub(b.lastSeen) > limiterIdle {
			delete(l.buckets, key)
		}
	}
}

// clientKey identifies the caller: the authenticated user when known, the client IP otherwise
func clientKey(c *gin.Context) string {
	if id, ok := UserIDFrom(c); ok {
		return "user:" + strconv.FormatUint(uint64(id), 10)
	}
	return "ip:" + c.ClientIP()
}

// RateLimit rejects a client's requests beyond its own rate with 429
func RateLimit(limiter *ClientLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !limiter.Allow(clientKey(c)) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"status": "error", "error": "Too many requests"})
			return
		}
		c.Next()
	}
}
