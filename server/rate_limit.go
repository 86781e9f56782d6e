package server

import (
	"sync"
	"time"

	"github.com/mcmclean4/Social-Distribution-sub000/shared"
	"golang.org/x/time/rate"
)

const (
	limiterSweepInterval = time.Minute
	// Buckets idle this long are full again and get dropped.
	limiterIdleTTL = 2 * time.Minute
)

type senderLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// Per-sender token buckets for inbox POSTs. A zero rate switches limiting off.
type inboxLimiter struct {
	perMin    int
	now       func() time.Time
	mu        sync.Mutex
	limiters  map[string]*senderLimiter
	lastSweep time.Time
}

func newInboxLimiter(cfg *shared.Config) *inboxLimiter {
	return &inboxLimiter{
		perMin:   cfg.InboxRatePerMin,
		now:      time.Now,
		limiters: make(map[string]*senderLimiter),
	}
}

func (il *inboxLimiter) allow(sender string) bool {
	if il.perMin <= 0 {
		return true
	}
	now := il.now()
	il.mu.Lock()
	if now.Sub(il.lastSweep) >= limiterSweepInterval {
		il.sweep(now)
	}
	sl, ok := il.limiters[sender]
	if !ok {
		sl = &senderLimiter{limiter: rate.NewLimiter(rate.Every(time.Minute/time.Duration(il.perMin)), il.perMin)}
		il.limiters[sender] = sl
	}
	sl.lastSeen = now
	il.mu.Unlock()
	return sl.limiter.AllowN(now, 1)
}

// Caller holds mu.
func (il *inboxLimiter) sweep(now time.Time) {
	for sender, sl := range il.limiters {
		if now.Sub(sl.lastSeen) > limiterIdleTTL {
			delete(il.limiters, sender)
		}
	}
	il.lastSweep = now
}

func (il *inboxLimiter) size() int {
	il.mu.Lock()
	defer il.mu.Unlock()
	return len(il.limiters)
}
