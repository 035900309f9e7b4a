package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// RateLimitConfig — окно и лимит, как у express-rate-limit:
// Max запросов за Window с одного IP.
type RateLimitConfig struct {
	Window  time.Duration
	Max     int
	Message string
}

// Профили лимитов по уровням чувствительности эндпоинтов.
var (
	APIRateLimit = RateLimitConfig{
		Window:  15 * time.Minute,
		Max:     10000,
		Message: "Too many requests from this IP, please try again later.",
	}
	AuthRateLimit = RateLimitConfig{
		Window:  15 * time.Minute,
		Max:     10,
		Message: "Too many authentication attempts, please try again later.",
	}
	ResetRateLimit = RateLimitConfig{
		Window:  time.Hour,
		Max:     5,
		Message: "Too many password reset requests, please try again later.",
	}
	RSVPRateLimit = RateLimitConfig{
		Window:  time.Hour,
		Max:     20,
		Message: "Too many RSVP submissions, please try again later.",
	}
)

type ipLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter хранит per-IP token bucket'ы и чистит неактивные.
type RateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*ipLimiter
	limit    rate.Limit
	burst    int
	message  string
}

func NewRateLimiter(cfg RateLimitConfig) *RateLimiter {
	rl := &RateLimiter{
		visitors: make(map[string]*ipLimiter),
		// Max запросов равномерно размазаны по окну, burst = Max
		limit:   rate.Every(cfg.Window / time.Duration(cfg.Max)),
		burst:   cfg.Max,
		message: cfg.Message,
	}
	go rl.cleanup(cfg.Window)
	return rl
}

func (rl *RateLimiter) allow(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	v, ok := rl.visitors[ip]
	if !ok {
		v = &ipLimiter{limiter: rate.NewLimiter(rl.limit, rl.burst)}
		rl.visitors[ip] = v
	}
	v.lastSeen = time.Now()
	return v.limiter.Allow()
}

// cleanup раз в окно выбрасывает IP, не появлявшиеся два окна подряд.
func (rl *RateLimiter) cleanup(window time.Duration) {
	ticker := time.NewTicker(window)
	defer ticker.Stop()
	for range ticker.C {
		rl.mu.Lock()
		for ip, v := range rl.visitors {
			if time.Since(v.lastSeen) > 2*window {
				delete(rl.visitors, ip)
			}
		}
		rl.mu.Unlock()
	}
}

func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.allow(c.ClientIP()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"message": rl.message})
			return
		}
		c.Next()
	}
}
