package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// idleLimiterTTL: через сколько неактивный IP удаляется из таблицы.
const idleLimiterTTL = 10 * time.Minute

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// IPRateLimiter: token bucket на каждый IP клиента.
type IPRateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	limit    rate.Limit
	burst    int
	window   time.Duration
	now      func() time.Time
}

// NewIPRateLimiter пропускает в среднем requestsPerWindow запросов за window,
// всплеск до половины этого бюджета.
func NewIPRateLimiter(requestsPerWindow int, window time.Duration) *IPRateLimiter {
	if requestsPerWindow < 1 {
		requestsPerWindow = 1
	}
	if window <= 0 {
		window = time.Minute
	}
	return &IPRateLimiter{
		visitors: make(map[string]*visitor),
		limit:    rate.Limit(float64(requestsPerWindow) / window.Seconds()),
		burst:    max(1, requestsPerWindow/2),
		window:   window,
		now:      time.Now,
	}
}

// Allow сообщает, можно ли ip сделать запрос сейчас.
func (l *IPRateLimiter) Allow(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	v, ok := l.visitors[ip]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.visitors[ip] = v
	}
	v.lastSeen = now
	l.cleanup(now)
	return v.limiter.AllowN(now, 1)
}

func (l *IPRateLimiter) cleanup(now time.Time) {
	for ip, v := range l.visitors {
		if now.Sub(v.lastSeen) > idleLimiterTTL {
			delete(l.visitors, ip)
		}
	}
}

// Middleware отвечает 429 на запросы сверх лимита.
func (l *IPRateLimiter) Middleware(next http.Handler) http.Handler {
	retryAfter := strconv.Itoa(int(l.window.Seconds()))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !l.Allow(clientIP(r)) {
			w.Header().Set("Retry-After", retryAfter)
			writeError(w, http.StatusTooManyRequests, "Too many requests")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RateLimit is NewIPRateLimiter(...).Middleware.
func RateLimit(requestsPerWindow int, window time.Duration) func(http.Handler) http.Handler {
	return NewIPRateLimiter(requestsPerWindow, window).Middleware
}
