package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/newreleases/admin-console/api/controller"
	"github.com/newreleases/admin-console/util/util_log"
	"golang.org/x/time/rate"
)

const limiterIdleTTL = 3 * time.Minute

// IPRateLimiter 每个 IP 一个令牌桶
type IPRateLimiter struct {
	mu          sync.Mutex
	ips         map[string]*rateLimiterEntry
	r           rate.Limit
	burst       int
	lastCleanup time.Time
	now         func() time.Time
}

type rateLimiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func NewIPRateLimiter(r rate.Limit, burst int) *IPRateLimiter {
	return &IPRateLimiter{
		ips:         make(map[string]*rateLimiterEntry),
		r:           r,
		burst:       burst,
		lastCleanup: time.Now(),
		now:         time.Now,
	}
}

// PerMinute 例如登录接口每分钟 10 次
func PerMinute(n int) *IPRateLimiter {
	if n <= 0 {
		n = 1
	}
	return NewIPRateLimiter(rate.Limit(float64(n)/60.0), n)
}

func (rl *IPRateLimiter) GetLimiter(ip string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	if now.Sub(rl.lastCleanup) > time.Minute {
		for key, entry := range rl.ips {
			if now.Sub(entry.lastSeen) > limiterIdleTTL {
				delete(rl.ips, key)
			}
		}
		rl.lastCleanup = now
	}

	entry, ok := rl.ips[ip]
	if !ok {
		entry = &rateLimiterEntry{limiter: rate.NewLimiter(rl.r, rl.burst)}
		rl.ips[ip] = entry
	}
	entry.lastSeen = now
	return entry.limiter
}

func RateLimitMiddleware(limiter *IPRateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		if !limiter.GetLimiter(ip).Allow() {
			util_log.Warn().Str("ip", ip).Str("path", c.Request.URL.Path).Msg("rate limit exceeded")
			controller.ErrorResponse(c, http.StatusTooManyRequests, "RATE_LIMITED", "too many requests, please slow down")
			return
		}
		c.Next()
	}
}
