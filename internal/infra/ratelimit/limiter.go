// Package ratelimit throttles requests per key (client address) with
// token buckets from golang.org/x/time/rate.
package ratelimit

import (
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/clientive/clientive/internal/domain"
)

// Ensure Limiter implements domain.RateLimiter.
var _ domain.RateLimiter = (*Limiter)(nil)

type entry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// Limiter allows `requests` per `window` for every key, with a burst of
// `requests`. Idle keys are forgotten after the entry TTL.
// Fields are ordered to minimize memory padding.
type Limiter struct {
	lastCleanup time.Time
	entries     map[string]*entry
	now         func() time.Time
	limit       rate.Limit
	burst       int
	entryTTL    time.Duration
	mu          sync.Mutex
}

// New creates a Limiter. A non-positive requests or window disables limiting.
func New(requests int, window time.Duration) *Limiter {
	l := &Limiter{
		entries: make(map[string]*entry),
		now:     time.Now,
	}
	if requests <= 0 || window <= 0 {
		l.limit = rate.Inf
		return l
	}
	l.limit = rate.Every(window / time.Duration(requests))
	l.burst = requests
	l.entryTTL = 2 * window
	l.lastCleanup = l.now()
	return l
}

// Allow consumes one request for key. When refused, retryAfter is the time
// until the next request would be accepted.
func (l *Limiter) Allow(key string) (bool, time.Duration) {
	if l.limit == rate.Inf {
		return true, 0
	}

	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	if now.Sub(l.lastCleanup) >= l.entryTTL {
		for k, e := range l.entries {
			if now.Sub(e.lastSeen) > l.entryTTL {
				delete(l.entries, k)
			}
		}
		l.lastCleanup = now
	}

	e, ok := l.entries[key]
	if !ok {
		e = &entry{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.entries[key] = e
	}
	e.lastSeen = now

	r := e.limiter.ReserveN(now, 1)
	if delay := r.DelayFrom(now); delay > 0 {
		r.CancelAt(now)
		return false, delay
	}
	return true, 0
}

// RetryAfterSeconds rounds a wait up to whole seconds for the Retry-After header.
func RetryAfterSeconds(d time.Duration) int {
	if d <= 0 {
		return 0
	}
	return int((d + time.Second - 1) / time.Second)
}
