package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"

	"skillmarket/internal/config"
	"skillmarket/pkg/models"
)

// ipLimiter holds one token bucket per client IP. Idle entries are evicted by
// a background janitor so the map does not grow without bound.
type ipLimiter struct {
	mu      sync.Mutex
	clients map[string]*clientLimiter
	rps     rate.Limit
	burst   int
}

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func newIPLimiter(requestsPerMinute, burst int) *ipLimiter {
	l := &ipLimiter{
		clients: make(map[string]*clientLimiter),
		rps:     rate.Limit(float64(requestsPerMinute) / 60.0),
		burst:   burst,
	}
	go l.janitor()
	return l
}

func (l *ipLimiter) allow(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	client, ok := l.clients[ip]
	if !ok {
		client = &clientLimiter{limiter: rate.NewLimiter(l.rps, l.burst)}
		l.clients[ip] = client
	}
	client.lastSeen = time.Now()
	return client.limiter.Allow()
}

func (l *ipLimiter) janitor() {
	for range time.Tick(time.Minute) {
		l.mu.Lock()
		for ip, client := range l.clients {
			if time.Since(client.lastSeen) > 3*time.Minute {
				delete(l.clients, ip)
			}
		}
		l.mu.Unlock()
	}
}

// RateLimit returns per-IP rate limiting middleware. Disabled configs yield a
// pass-through.
func RateLimit(cfg *config.Config) echo.MiddlewareFunc {
	if !cfg.RateLimit.Enabled {
		return func(next echo.HandlerFunc) echo.HandlerFunc {
			return next
		}
	}

	limiter := newIPLimiter(cfg.RateLimit.RequestsPerMinute, cfg.RateLimit.Burst)
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !limiter.allow(c.RealIP()) {
				return c.JSON(http.StatusTooManyRequests, models.ErrorResponse{
					Error:     "rate_limited",
					Message:   "Too many requests, slow down",
					RequestID: requestID(c),
					Timestamp: time.Now(),
				})
			}
			return next(c)
		}
	}
}
