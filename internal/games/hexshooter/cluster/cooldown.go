package cluster

import (
	"time"

	"github.com/vovakirdan/hexshooter/internal/games/hexshooter/hex"
)

// CheckCooldown batches cluster-check requests. The first request arms a
// timer; when it runs out every seed gathered meanwhile is released at once.
type CheckCooldown struct {
	delay     time.Duration
	remaining time.Duration
	armed     bool
	pending   []hex.Hex
	seen      map[hex.Hex]bool
}

// NewCheckCooldown creates a cooldown. A zero delay releases seeds on the
// same Advance that follows their request.
func NewCheckCooldown(delay time.Duration) *CheckCooldown {
	return &CheckCooldown{delay: delay, seen: make(map[hex.Hex]bool)}
}

// Request queues a seed cell. Duplicates are dropped.
func (c *CheckCooldown) Request(h hex.Hex) {
	if !c.armed {
		c.armed = true
		c.remaining = c.delay
	}
	if c.seen[h] {
		return
	}
	c.seen[h] = true
	c.pending = append(c.pending, h)
}

// Pending returns the number of queued seeds.
func (c *CheckCooldown) Pending() int {
	return len(c.pending)
}

// Armed reports whether a check is scheduled.
func (c *CheckCooldown) Armed() bool {
	return c.armed
}

// Advance counts the timer down and returns the seeds once it fires.
func (c *CheckCooldown) Advance(dt time.Duration) ([]hex.Hex, bool) {
	if !c.armed {
		return nil, false
	}
	c.remaining -= dt
	if c.remaining > 0 {
		return nil, false
	}
	seeds := c.pending
	c.pending = nil
	clear(c.seen)
	c.armed = false
	return seeds, true
}

// Reset drops every pending seed.
func (c *CheckCooldown) Reset() {
	c.pending = nil
	clear(c.seen)
	c.armed = false
}
