package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// IPRateLimiter keeps one token bucket per client IP. Idle entries are swept
// after their TTL by a background goroutine.
type IPRateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor

	reqPerMin int
	burst     int
	ttl       time.Duration
}

func NewIPRateLimiter(reqPerMin, burst int, ttl time.Duration) *IPRateLimiter {
	rl := &IPRateLimiter{
		visitors:  make(map[string]*visitor),
		reqPerMin: reqPerMin,
		burst:     burst,
		ttl:       ttl,
	}
	go rl.cleanupVisitors()
	return rl
}

func (rl *IPRateLimiter) getLimiter(ip string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	if v, ok := rl.visitors[ip]; ok {
		v.lastSeen = time.Now()
		return v.limiter
	}

	rps := float64(rl.reqPerMin) / 60.0
	limiter := rate.NewLimiter(rate.Limit(rps), rl.burst)
	rl.visitors[ip] = &visitor{limiter: limiter, lastSeen: time.Now()}
	return limiter
}

func (rl *IPRateLimiter) cleanupVisitors() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		rl.mu.Lock()
		for ip, v := range rl.visitors {
			if time.Since(v.lastSeen) > rl.ttl {
				delete(rl.visitors, ip)
			}
		}
		rl.mu.Unlock()
	}
}

func RateLimitByIP(rl *IPRateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		limiter := rl.getLimiter(c.ClientIP())
		if !limiter.Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "too many requests"})
			return
		}
		c.Next()
	}
}

// 30 submissions/minute/IP, burst 10; idle limiters kept for 5 minutes.
var submitLimiter = NewIPRateLimiter(30, 10, 5*time.Minute)

// RateLimitSubmissions guards POST /api/surveys/:id/responses.
func RateLimitSubmissions() gin.HandlerFunc {
	return RateLimitByIP(submitLimiter)
}
