package middleware

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"ruedo-cms/helper"
	"ruedo-cms/logging"
	"ruedo-cms/models"
)

const (
	maxTrackedClients = 10000
	staleLimiterAfter = 10 * time.Minute
)

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen atomic.Int64
}

// limiterCache holds one token bucket per key. When it fills up, buckets idle
// for longer than staleAfter are dropped first, then the least recently used.
// Active buckets are never reset.
type limiterCache[K comparable] struct {
	entries    map[K]*limiterEntry
	mu         sync.RWMutex
	rate       rate.Limit
	burst      int
	capacity   int
	staleAfter time.Duration
	now        func() time.Time
}

func newLimiterCache[K comparable](rps float64, burst int) *limiterCache[K] {
	return &limiterCache[K]{
		entries:    make(map[K]*limiterEntry),
		rate:       rate.Limit(rps),
		burst:      burst,
		capacity:   maxTrackedClients,
		staleAfter: staleLimiterAfter,
		now:        time.Now,
	}
}

func (lc *limiterCache[K]) get(key K) *rate.Limiter {
	now := lc.now().UnixNano()

	lc.mu.RLock()
	entry, exists := lc.entries[key]
	lc.mu.RUnlock()
	if exists {
		entry.lastSeen.Store(now)
		return entry.limiter
	}

	lc.mu.Lock()
	defer lc.mu.Unlock()
	if entry, exists = lc.entries[key]; exists {
		entry.lastSeen.Store(now)
		return entry.limiter
	}
	if len(lc.entries) >= lc.capacity {
		lc.evict(now)
	}
	entry = &limiterEntry{limiter: rate.NewLimiter(lc.rate, lc.burst)}
	entry.lastSeen.Store(now)
	lc.entries[key] = entry
	return entry.limiter
}

// evict must be called with mu held.
func (lc *limiterCache[K]) evict(now int64) {
	cutoff := now - lc.staleAfter.Nanoseconds()
	var (
		oldestKey  K
		oldestSeen int64
		found      bool
	)
	before := len(lc.entries)
	for key, entry := range lc.entries {
		seen := entry.lastSeen.Load()
		if seen < cutoff {
			delete(lc.entries, key)
			continue
		}
		if !found || seen < oldestSeen {
			oldestKey, oldestSeen, found = key, seen, true
		}
	}
	if len(lc.entries) >= lc.capacity && found {
		delete(lc.entries, oldestKey)
	}
	logging.Debug().Int("evicted", before-len(lc.entries)).Msg("evicted rate limiters")
}

// LoginRateLimit throttles login attempts per client IP.
func LoginRateLimit(rps float64, burst int, h *helper.HTTPHelper) gin.HandlerFunc {
	cache := newLimiterCache[string](rps, burst)
	return func(c *gin.Context) {
		if !cache.get(c.ClientIP()).Allow() {
			logging.Warn().Str("ip", c.ClientIP()).Msg("login rate limit exceeded")
			h.SendErrorFrom(c, models.ErrorTooManyRequests{Message: models.MsgTooManyLoginAttempts})
			c.Abort()
			return
		}
		c.Next()
	}
}
