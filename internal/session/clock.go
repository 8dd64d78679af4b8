package session

// countdown is the fixed-duration clock of timed modes, advanced one second
// per tick.
type countdown struct {
	duration  int
	remaining int
}

func newCountdown(seconds int) countdown {
	return countdown{duration: seconds, remaining: seconds}
}

// tick advances the clock and reports whether it has run out.
func (c *countdown) tick() bool {
	if c.remaining > 0 {
		c.remaining--
	}
	return c.remaining <= 0
}

func (c countdown) elapsed() int {
	return c.duration - c.remaining
}

// latencyClock is the reaction-mode timer: the running sum of hit latencies.
type latencyClock struct {
	totalMs int64
}

func (c *latencyClock) add(ms int64) {
	c.totalMs += ms
}

func (c latencyClock) seconds() float64 {
	return float64(c.totalMs) / 1000
}
