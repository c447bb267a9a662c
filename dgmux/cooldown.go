package dgmux

import (
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// Cooldown limits a command to Rate uses per Per window, tracked per user.
// The zero value disables the limit.
type Cooldown struct {
	Rate int
	Per  time.Duration
}

func (c Cooldown) enabled() bool { return c.Rate > 0 && c.Per > 0 }

type cooldownBucket struct {
	tokens      int
	windowStart time.Time
}

// cooldownMap keeps one bucket per (command, user) key. Buckets idle for an
// hour fall out of the LRU; windows are expected to be much shorter than
// that.
type cooldownMap struct {
	mu      sync.Mutex
	buckets *expirable.LRU[string, *cooldownBucket]
}

func newCooldownMap() *cooldownMap {
	return &cooldownMap{
		buckets: expirable.NewLRU[string, *cooldownBucket](1024, nil, time.Hour),
	}
}

// take consumes one use from the bucket behind key. It returns 0 when the
// use is allowed, and the time left in the window otherwise.
func (cm *cooldownMap) take(key string, cd Cooldown, now time.Time) time.Duration {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	bucket, ok := cm.buckets.Get(key)
	if !ok {
		bucket = &cooldownBucket{windowStart: now}
	}
	if now.Sub(bucket.windowStart) > cd.Per {
		bucket.windowStart = now
		bucket.tokens = 0
	}
	bucket.tokens++
	// re-add so the idle clock restarts on every use
	cm.buckets.Add(key, bucket)

	if bucket.tokens > cd.Rate {
		retryAfter := cd.Per - now.Sub(bucket.windowStart)
		if retryAfter < 0 {
			retryAfter = 0
		}
		return retryAfter
	}
	return 0
}
