package middleware

import (
	"net/http"
	"sync"
	"time"

	"musicminds/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// idleLimiterTTL is how long an unused per-IP limiter is kept.
const idleLimiterTTL = 10 * time.Minute

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// rateLimiterStore holds a map of IP addresses to their rate limiters.
type rateLimiterStore struct {
	mu        sync.Mutex
	limiters  map[string]*limiterEntry
	perMinute int
	lastSweep time.Time
}

func newRateLimiterStore(perMinute int) *rateLimiterStore {
	if perMinute < 1 {
		perMinute = 1
	}
	return &rateLimiterStore{limiters: make(map[string]*limiterEntry), perMinute: perMinute}
}

// getLimiter returns the rate limiter for a given IP, creating one if it doesn't exist.
func (s *rateLimiterStore) getLimiter(ip string, now time.Time) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()

	if now.Sub(s.lastSweep) > idleLimiterTTL {
		for key, e := range s.limiters {
			if now.Sub(e.lastSeen) > idleLimiterTTL {
				delete(s.limiters, key)
			}
		}
		s.lastSweep = now
	}

	e, exists := s.limiters[ip]
	if !exists {
		// perMinute requests per minute, bursting up to the same amount.
		e = &limiterEntry{limiter: rate.NewLimiter(rate.Every(time.Minute/time.Duration(s.perMinute)), s.perMinute)}
		s.limiters[ip] = e
	}
	e.lastSeen = now
	return e.limiter
}

// RateLimitMiddleware limits requests per IP address.
func RateLimitMiddleware(perMinute int) gin.HandlerFunc {
	store := newRateLimiterStore(perMinute)
	return func(c *gin.Context) {
		ip := clientIP(c)
		if !store.getLimiter(ip, time.Now()).Allow() {
			zap.L().Warn("Rate limit exceeded", zap.String("ip", ip))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, utils.ErrorResponse{Error: "Rate limit exceeded. Try again later."})
			return
		}
		c.Next()
	}
}
