package middleware

import (
	"sync"
	"time"

	"tasktrack/config"
	domainerrors "tasktrack/internal/domain/errors"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"
)

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimitMiddleware throttles requests per client IP with a token bucket.
type RateLimitMiddleware struct {
	enabled bool
	limit   rate.Limit
	burst   int
	idleTTL time.Duration
	now     func() time.Time

	mu        sync.Mutex
	visitors  map[string]*visitor
	lastSweep time.Time
}

func NewRateLimitMiddleware(cfg *config.Config) *RateLimitMiddleware {
	m := &RateLimitMiddleware{
		visitors: make(map[string]*visitor),
		now:      time.Now,
	}

	if rl := cfg.RateLimit; rl != nil && rl.Enabled {
		m.enabled = true
		m.limit = rate.Limit(rl.RequestsPerSecond)
		m.burst = rl.Burst
		m.idleTTL = rl.IdleTTL
	}

	return m
}

// Limit answers 429 once the caller's bucket is empty.
func (m *RateLimitMiddleware) Limit(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if m.enabled && !m.allow(c.RealIP()) {
			return domainerrors.ErrTooManyRequests
		}

		return next(c)
	}
}

func (m *RateLimitMiddleware) allow(ip string) bool {
	now := m.now()

	m.mu.Lock()
	defer m.mu.Unlock()

	m.sweep(now)

	v, ok := m.visitors[ip]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(m.limit, m.burst)}
		m.visitors[ip] = v
	}
	v.lastSeen = now

	return v.limiter.AllowN(now, 1)
}

// sweep drops idle visitors at most once per idleTTL. Caller holds mu.
func (m *RateLimitMiddleware) sweep(now time.Time) {
	if m.idleTTL <= 0 || now.Sub(m.lastSweep) < m.idleTTL {
		return
	}
	m.lastSweep = now

	for ip, v := range m.visitors {
		if now.Sub(v.lastSeen) >= m.idleTTL {
			delete(m.visitors, ip)
		}
	}
}
