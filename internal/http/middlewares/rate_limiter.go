package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"
)

// RateLimiter allows limit requests per window for each client IP, with
// bursts of up to limit.
func RateLimiter(limit int, window time.Duration) echo.MiddlewareFunc {
	limiters := newIPLimiters(limit, window, time.Now)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !limiters.allow(c.RealIP()) {
				return echo.NewHTTPError(http.StatusTooManyRequests, "rate limit exceeded")
			}
			return next(c)
		}
	}
}

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// ipLimiters holds one token bucket per client. A bucket idle for a whole
// window has refilled completely, so dropping it loses nothing.
type ipLimiters struct {
	mu        sync.Mutex
	clients   map[string]*clientLimiter
	limit     int
	every     rate.Limit
	window    time.Duration
	now       func() time.Time
	lastSweep time.Time
}

func newIPLimiters(limit int, window time.Duration, now func() time.Time) *ipLimiters {
	return &ipLimiters{
		clients:   make(map[string]*clientLimiter),
		limit:     limit,
		every:     rate.Every(window / time.Duration(limit)),
		window:    window,
		now:       now,
		lastSweep: now(),
	}
}

func (l *ipLimiters) allow(key string) bool {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	if now.Sub(l.lastSweep) >= l.window {
		l.evictIdle(now)
		l.lastSweep = now
	}

	c, ok := l.clients[key]
	if !ok {
		c = &clientLimiter{limiter: rate.NewLimiter(l.every, l.limit)}
		l.clients[key] = c
	}
	c.lastSeen = now

	return c.limiter.AllowN(now, 1)
}

func (l *ipLimiters) evictIdle(now time.Time) {
	for key, c := range l.clients {
		if now.Sub(c.lastSeen) >= l.window {
			delete(l.clients, key)
		}
	}
}

func (l *ipLimiters) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.clients)
}
