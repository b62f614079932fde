package ratelimit

import (
	"log/slog"
	"net"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/navanexis/site/internal/syncx"
	"github.com/navanexis/site/pkg/log"
	"github.com/pkg/errors"
	"golang.org/x/time/rate"
)

type RateLimiter struct {
	rate    rate.Limit
	burst   int
	clients syncx.Map[string, *client]
	now     func() time.Time
}

type client struct {
	limiter  *rate.Limiter
	lastSeen atomic.Int64
}

type GetClientKeyFunc func(r *http.Request) (string, error)

func (l *RateLimiter) Middleware(getClientKey GetClientKeyFunc) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			clientKey, err := getClientKey(r)
			if err != nil {
				slog.ErrorContext(ctx, "could not retrieve client key", log.Error(errors.WithStack(err)))
				http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
				return
			}

			if !l.Allow(clientKey) {
				slog.WarnContext(ctx, "rate limit exceeded", slog.String("client", clientKey))
				http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func (l *RateLimiter) Allow(key string) bool {
	now := l.now()
	c, _ := l.clients.LoadOrStore(key, &client{limiter: rate.NewLimiter(l.rate, l.burst)})
	c.lastSeen.Store(now.UnixNano())
	return c.limiter.AllowN(now, 1)
}

// Prune forgets clients not seen for longer than idle.
func (l *RateLimiter) Prune(idle time.Duration) {
	deadline := l.now().Add(-idle)
	l.clients.Range(func(key string, c *client) bool {
		if time.Unix(0, c.lastSeen.Load()).Before(deadline) {
			l.clients.Delete(key)
		}
		return true
	})
}

// RemoteAddr keys clients by the host part of the request's remote address.
func RemoteAddr(r *http.Request) (string, error) {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return "", errors.Wrapf(err, "could not parse remote address '%s'", r.RemoteAddr)
	}

	return host, nil
}

func New(limit rate.Limit, burst int) *RateLimiter {
	return &RateLimiter{
		rate:  limit,
		burst: burst,
		now:   time.Now,
	}
}
