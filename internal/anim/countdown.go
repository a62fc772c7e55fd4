package anim

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// CountdownInterval is the time between two decrements.
const CountdownInterval = time.Second

// CountdownState is a snapshot of a countdown.
type CountdownState struct {
	Count      int
	IsRunning  bool
	IsComplete bool
}

// Countdown counts from a start value down to zero once per second.
type Countdown struct {
	handle
	from       int
	delay      time.Duration
	onComplete func() tea.Cmd

	count    int
	running  bool
	complete bool
}

// NewCountdown returns a countdown from from (clamped to at least 1). onComplete
// may be nil; its command is returned from the Update that reaches zero.
func NewCountdown(clock Clock, from int, delay time.Duration, onComplete func() tea.Cmd) *Countdown {
	if from <= 0 {
		from = 1
	}
	return &Countdown{
		handle:     newHandle(clock),
		from:       from,
		delay:      delay,
		onComplete: onComplete,
		count:      from,
	}
}

// Init starts the countdown.
func (c *Countdown) Init() tea.Cmd {
	return c.Start()
}

// Start restarts the countdown from its initial value.
func (c *Countdown) Start() tea.Cmd {
	c.Reset()
	c.restart()
	if c.delay > 0 {
		return c.after(c.delay, true)
	}
	c.running = true
	return c.after(CountdownInterval, false)
}

// Reset restores the initial state and cancels any in-flight tick.
func (c *Countdown) Reset() {
	c.Stop()
	c.count = c.from
	c.running = false
	c.complete = false
}

// Update consumes the countdown's own ticks.
func (c *Countdown) Update(msg tea.Msg) tea.Cmd {
	t, ok := c.accept(msg)
	if !ok || c.complete {
		return nil
	}
	if t.start {
		if c.running {
			return nil
		}
		c.running = true
		return c.after(CountdownInterval, false)
	}
	if c.count > 1 {
		c.count--
		return c.after(CountdownInterval, false)
	}
	c.count = 0
	c.complete = true
	if c.onComplete == nil {
		return nil
	}
	return c.onComplete()
}

// State returns the current snapshot.
func (c *Countdown) State() CountdownState {
	return CountdownState{Count: c.count, IsRunning: c.running, IsComplete: c.complete}
}

// Count returns the current count.
func (c *Countdown) Count() int {
	return c.count
}

// Running reports whether the start delay has elapsed.
func (c *Countdown) Running() bool {
	return c.running
}

// Complete reports whether the count reached zero.
func (c *Countdown) Complete() bool {
	return c.complete
}
