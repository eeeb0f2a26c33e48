package connection

import (
	"math/rand"
	"time"
)

// Reconnection policy: exponential backoff from base to cap with
// proportional jitter, reset after a successful connect.
const (
	DefaultBackoffBase   = 1 * time.Second
	DefaultBackoffCap    = 30 * time.Second
	DefaultBackoffJitter = 0.2
)

// Backoff produces the delay series between reconnection attempts.
// Not safe for concurrent use; the reconnect loop is its only caller.
type Backoff struct {
	base    time.Duration
	cap     time.Duration
	jitter  float64
	attempt int
	rand    *rand.Rand
}

func NewBackoff(base, cap time.Duration, jitter float64) *Backoff {
	return &Backoff{
		base:   base,
		cap:    cap,
		jitter: jitter,
		rand:   rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Next returns the delay before the upcoming attempt: base doubled per
// attempt, capped, then spread by ±jitter.
func (b *Backoff) Next() time.Duration {
	d := b.base
	for i := 0; i < b.attempt && d < b.cap; i++ {
		d *= 2
	}
	if d > b.cap {
		d = b.cap
	}
	b.attempt++

	spread := 1 + b.jitter*(2*b.rand.Float64()-1)
	return time.Duration(float64(d) * spread)
}

// Reset rewinds the series after a successful connect.
func (b *Backoff) Reset() {
	b.attempt = 0
}
