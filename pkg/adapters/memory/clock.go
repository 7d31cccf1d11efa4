package memory

import "sync"

// Clock is a manually advanced clock.
type Clock struct {
	mu  sync.Mutex
	now float64
}

// NewClock creates a clock starting at start milliseconds.
func NewClock(start float64) *Clock {
	return &Clock{now: start}
}

func (c *Clock) Now() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock forward by ms milliseconds.
func (c *Clock) Advance(ms float64) {
	c.mu.Lock()
	c.now += ms
	c.mu.Unlock()
}

// Set moves the clock to ms.
func (c *Clock) Set(ms float64) {
	c.mu.Lock()
	c.now = ms
	c.mu.Unlock()
}
