package server

import (
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Limiter limits operations based on a provided key.
type Limiter interface {
	Allow(key string) bool
}

type bucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

type localRateLimiter struct {
	limit rate.Limit
	burst int
	// idle is how long a bucket takes to refill completely. An entry idle
	// for longer is indistinguishable from a new one and may be dropped.
	idle time.Duration
	now  func() time.Time

	sync.Mutex
	limiters  map[string]*bucket
	lastSweep time.Time
}

// NewLocalRateLimiter returns an in memory limiter keeping one token
// bucket per key. A non-positive limit disables limiting.
func NewLocalRateLimiter(limit float64, burst int) Limiter {
	if limit <= 0 {
		return NoLimiter{}
	}
	if burst < 1 {
		burst = 1
	}
	idle := time.Duration(float64(burst) / limit * float64(time.Second))
	if idle < time.Second {
		idle = time.Second
	}
	return &localRateLimiter{
		limit:    rate.Limit(limit),
		burst:    burst,
		idle:     idle,
		now:      time.Now,
		limiters: make(map[string]*bucket),
	}
}

func (l *localRateLimiter) Allow(key string) bool {
	now := l.now()
	l.Lock()
	if now.Sub(l.lastSweep) >= l.idle {
		l.sweep(now)
	}
	b, ok := l.limiters[key]
	if !ok {
		b = &bucket{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.limiters[key] = b
	}
	b.lastSeen = now
	l.Unlock()

	return b.limiter.AllowN(now, 1)
}

// sweep drops buckets that have refilled while idle. The caller holds the lock.
func (l *localRateLimiter) sweep(now time.Time) {
	for key, b := range l.limiters {
		if now.Sub(b.lastSeen) >= l.idle {
			delete(l.limiters, key)
		}
	}
	l.lastSweep = now
}

func (l *localRateLimiter) len() int {
	l.Lock()
	defer l.Unlock()
	return len(l.limiters)
}

// NoLimiter never limits operations
type NoLimiter struct{}

func (NoLimiter) Allow(string) bool { return true }

// clientKey is the remote host of the request, without the port.
func clientKey(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
