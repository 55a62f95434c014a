package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/chll-hr/leave-backend/internal/handler/http/response"
	"github.com/chll-hr/leave-backend/internal/pkg/logger"
	"golang.org/x/time/rate"
)

// RateLimiter keeps one token bucket per caller.
type RateLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	limit    rate.Limit
	burst    int
}

// NewRateLimiter allows perMinute requests per caller, all of which may
// arrive at once.
func NewRateLimiter(perMinute int) *RateLimiter {
	if perMinute < 1 {
		perMinute = 1
	}
	return &RateLimiter{
		limiters: make(map[string]*rate.Limiter),
		limit:    rate.Every(time.Minute / time.Duration(perMinute)),
		burst:    perMinute,
	}
}

func (l *RateLimiter) limiter(key string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	lim, ok := l.limiters[key]
	if !ok {
		lim = rate.NewLimiter(l.limit, l.burst)
		l.limiters[key] = lim
	}
	return lim
}

// Handler limits by authenticated employee, falling back to the remote address.
func (l *RateLimiter) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := EmployeeID(r.Context())
		if key == "" {
			key = r.RemoteAddr
		}

		if !l.limiter(key).Allow() {
			logger.From(r.Context()).Warn("rate limit exceeded", "path", r.URL.Path)
			w.Header().Set("Retry-After", "60")
			response.TooManyRequests(w, "Too many requests, try again later")
			return
		}

		next.ServeHTTP(w, r)
	})
}
