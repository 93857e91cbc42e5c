package httpserver

import (
	"context"
	"net/http"
	"strings"
	"sync"
	"time"

	"balaji-storefront/internal/service/session"
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

type ctxKey string

const sessionCtxKey ctxKey = "session"

// visitorMiddleware resolves the bearer visitor token and attaches the
// visitor's session to the request context.
func visitorMiddleware(visitors visitorService, sessions sessionRegistry) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c.Request)
		if token == "" {
			// Browsers cannot set headers on websocket upgrades.
			token = c.Query("token")
		}
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing visitor token"})
			return
		}
		visitorID, err := visitors.Lookup(c.Request.Context(), token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid visitor token"})
			return
		}
		sess, err := sessions.Open(c.Request.Context(), visitorID)
		if err != nil {
			writeError(c, err)
			c.Abort()
			return
		}
		ctx := context.WithValue(c.Request.Context(), sessionCtxKey, sess)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

func bearerToken(r *http.Request) string {
	parts := strings.Fields(r.Header.Get("Authorization"))
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return parts[1]
}

func sessionFrom(c *gin.Context) *session.Session {
	sess, _ := c.Request.Context().Value(sessionCtxKey).(*session.Session)
	return sess
}

type ipLimiter struct {
	limiter *rate.Limiter
	last    time.Time
}

// ipRateLimiter hands out one token bucket per client IP.
type ipRateLimiter struct {
	rps   rate.Limit
	burst int

	mu        sync.Mutex
	limiters  map[string]*ipLimiter
	lastSweep time.Time
}

const limiterIdle = 30 * time.Minute

func newIPRateLimiter(rps, burst int) *ipRateLimiter {
	return &ipRateLimiter{
		rps:       rate.Limit(rps),
		burst:     burst,
		limiters:  make(map[string]*ipLimiter),
		lastSweep: time.Now(),
	}
}

func (l *ipRateLimiter) allow(ip string) bool {
	now := time.Now()
	l.mu.Lock()
	defer l.mu.Unlock()

	if now.Sub(l.lastSweep) > 5*time.Minute {
		for key, il := range l.limiters {
			if now.Sub(il.last) > limiterIdle {
				delete(l.limiters, key)
			}
		}
		l.lastSweep = now
	}

	il, ok := l.limiters[ip]
	if !ok {
		il = &ipLimiter{limiter: rate.NewLimiter(l.rps, l.burst)}
		l.limiters[ip] = il
	}
	il.last = now
	return il.limiter.Allow()
}

func rateLimitMiddleware(l *ipRateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !l.allow(c.ClientIP()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "too many requests"})
			return
		}
		c.Next()
	}
}
