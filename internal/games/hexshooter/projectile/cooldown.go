package projectile

import "time"

// SnapCooldown is the safety-net timer started at first contact.
// Each checkpoint, once passed, asks for one more evaluation of the snap
// heuristics; reaching the hard limit forces a snap.
type SnapCooldown struct {
	checkpoints []time.Duration
	hardLimit   time.Duration

	running bool
	elapsed time.Duration
	next    int
}

// NewSnapCooldown creates a stopped timer. Checkpoints must be ascending.
func NewSnapCooldown(checkpoints []time.Duration, hardLimit time.Duration) SnapCooldown {
	cps := make([]time.Duration, 0, len(checkpoints))
	for _, cp := range checkpoints {
		if cp > 0 && cp < hardLimit {
			cps = append(cps, cp)
		}
	}
	return SnapCooldown{checkpoints: cps, hardLimit: hardLimit}
}

// Start begins timing. Calling Start on a running timer does nothing.
func (c *SnapCooldown) Start() {
	if c.running {
		return
	}
	c.running = true
	c.elapsed = 0
	c.next = 0
}

// Running reports whether the timer has been started.
func (c *SnapCooldown) Running() bool {
	return c.running
}

// Elapsed returns the time since Start.
func (c *SnapCooldown) Elapsed() time.Duration {
	return c.elapsed
}

// Advance moves the timer forward. It reports how many checkpoints were
// crossed by this call and whether the hard limit has been reached.
func (c *SnapCooldown) Advance(dt time.Duration) (crossed int, expired bool) {
	if !c.running {
		return 0, false
	}
	c.elapsed += dt
	for c.next < len(c.checkpoints) && c.elapsed >= c.checkpoints[c.next] {
		c.next++
		crossed++
	}
	return crossed, c.elapsed >= c.hardLimit
}
