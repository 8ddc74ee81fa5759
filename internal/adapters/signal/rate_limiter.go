package signal

import (
	"sync"

	"github.com/dkeye/Party/internal/core"
	"golang.org/x/time/rate"
)

// RateLimiter throttles inbound commands per session.
type RateLimiter struct {
	mu       sync.Mutex
	limiters map[core.SessionID]*rate.Limiter
	limit    rate.Limit
	burst    int
}

func NewRateLimiter(perSecond float64, burst int) *RateLimiter {
	return &RateLimiter{
		limiters: make(map[core.SessionID]*rate.Limiter),
		limit:    rate.Limit(perSecond),
		burst:    burst,
	}
}

func (rl *RateLimiter) Allow(sid core.SessionID) bool {
	rl.mu.Lock()
	l, ok := rl.limiters[sid]
	if !ok {
		l = rate.NewLimiter(rl.limit, rl.burst)
		rl.limiters[sid] = l
	}
	rl.mu.Unlock()
	return l.Allow()
}

// Forget drops the state of a session that went away.
func (rl *RateLimiter) Forget(sid core.SessionID) {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	delete(rl.limiters, sid)
}
