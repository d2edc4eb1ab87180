package playback

import "time"

// Clock converts elapsed wall-clock time into a drawing budget.
// The zero value is a paused clock at speed 0; use [NewClock].
type Clock struct {
	Speed float64

	elapsed time.Duration
	paused  bool
}

// NewClock returns a running clock drawing speed units per second.
func NewClock(speed float64) *Clock {
	return &Clock{Speed: speed}
}

// Tick advances the clock by d unless it is paused.
func (c *Clock) Tick(d time.Duration) {
	if !c.paused {
		c.elapsed += d
	}
}

// Budget returns the drawing time available so far.
func (c *Clock) Budget() float64 {
	return c.elapsed.Seconds() * c.Speed
}

// Reset rewinds the clock to zero. The pause state is kept.
func (c *Clock) Reset() {
	c.elapsed = 0
}

// TogglePause pauses a running clock or resumes a paused one and reports
// whether it is now paused.
func (c *Clock) TogglePause() bool {
	c.paused = !c.paused
	return c.paused
}

// Paused reports whether the clock is paused.
func (c *Clock) Paused() bool {
	return c.paused
}

// Done reports whether everything that takes total time units is drawn.
func (c *Clock) Done(total float64) bool {
	return c.Budget() >= total
}
