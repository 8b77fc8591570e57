package tui

import (
	"math"
	"time"
)

// countUpDuration bounds every stat animation.
const countUpDuration = 600 * time.Millisecond

// counter animates a displayed integer toward a target value with an
// eased, bounded-duration interpolation. A retarget mid-flight restarts
// from the currently-displayed value, never the original, and bumps the
// generation so ticks from the superseded run are ignored.
type counter struct {
	from      int
	target    int
	displayed int
	start     time.Time
	duration  time.Duration
	gen       int
}

func newCounter(value int) *counter {
	return &counter{
		from:      value,
		target:    value,
		displayed: value,
		duration:  countUpDuration,
	}
}

// Retarget points the counter at a new value. Returns the new generation;
// ticks carrying an older generation are stale and must be dropped.
func (c *counter) Retarget(value int, now time.Time) int {
	if value == c.target {
		return c.gen
	}
	c.from = c.displayed
	c.target = value
	c.start = now
	c.gen++
	return c.gen
}

// Step advances the displayed value for the given instant. The terminal
// value is always exactly the target integer.
func (c *counter) Step(now time.Time) {
	if c.displayed == c.target && c.from == c.target {
		return
	}
	t := float64(now.Sub(c.start)) / float64(c.duration)
	if t >= 1 {
		c.from = c.target
		c.displayed = c.target
		return
	}
	if t < 0 {
		t = 0
	}
	c.displayed = c.from + int(math.Round(float64(c.target-c.from)*easeInOutQuad(t)))
}

// Done reports whether the animation has converged.
func (c *counter) Done() bool {
	return c.displayed == c.target && c.from == c.target
}

// Value returns the currently-displayed integer.
func (c *counter) Value() int {
	return c.displayed
}

func easeInOutQuad(t float64) float64 {
	if t < 0.5 {
		return 2 * t * t
	}
	return -1 + (4-2*t)*t
}
