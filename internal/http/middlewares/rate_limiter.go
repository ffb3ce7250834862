package middlewares

import (
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// RateLimiter is a fixed-window counter per key.
type RateLimiter struct {
	mu        sync.Mutex
	window    time.Duration
	limit     int
	clients   map[string]*clientBucket
	nextSweep time.Time
	now       func() time.Time
}

type clientBucket struct {
	count     int
	windowEnd time.Time
}

func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		limit:   limit,
		window:  window,
		clients: make(map[string]*clientBucket),
		now:     time.Now,
	}
}

// Middleware returns a gin.HandlerFunc that enforces rate limit for a derived key

func (rl *RateLimiter) Middleware(keyFn func(*gin.Context) string) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := keyFn(c)

		if key == "" {
			// fallback to IP if key cannot be derived
			key = clientIP(c)
		}

		allowed, retryAfter := rl.allow(key)
		if !allowed {
			c.Header("Retry-After", strconv.Itoa(retryAfter))

			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": gin.H{
					"code":      "rate_limited",
					"message":   "Too many requests. Please try again shortly.",
					"requestId": c.GetString(CtxRequestID),
				},
			})
			return
		}

		c.Next()
	}
}

func (rl *RateLimiter) allow(key string) (bool, int) {
	now := rl.now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	rl.sweep(now)

	b, ok := rl.clients[key]
	if !ok || now.After(b.windowEnd) {
		rl.clients[key] = &clientBucket{
			count:     1,
			windowEnd: now.Add(rl.window),
		}
		return true, 0
	}

	if b.count >= rl.limit {
		retryAfter := int(b.windowEnd.Sub(now).Seconds())
		if retryAfter < 0 {
			retryAfter = 0
		}
		return false, retryAfter
	}

	b.count++
	return true, 0
}

// sweep drops expired buckets at most once per window. Caller holds mu.
func (rl *RateLimiter) sweep(now time.Time) {
	if now.Before(rl.nextSweep) {
		return
	}
	for k, b := range rl.clients {
		if now.After(b.windowEnd) {
			delete(rl.clients, k)
		}
	}
	rl.nextSweep = now.Add(rl.window)
}

// for unauthenticated endpoints: rate limit by IP
func KeyByIP(c *gin.Context) string {
	return clientIP(c)
}

// For authenticated endpoints: rate limit by userID if available

func KeyByUserOrIP(c *gin.Context) string {
	id, ok := UserIDFromContext(c)

	if ok && id != "" {
		return "user:" + id
	}

	return clientIP(c)
}

func clientIP(c *gin.Context) string {
	ip := c.ClientIP()

	host, _, err := net.SplitHostPort(ip)
	if err == nil && host != "" {
		return host
	}

	return ip
}
