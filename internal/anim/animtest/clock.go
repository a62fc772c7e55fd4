// Package animtest provides a virtual clock for driving animations in tests.
package animtest

import (
	"sort"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

type pending struct {
	at  time.Duration
	seq int
	msg tea.Msg
}

// Clock records scheduled messages instead of sleeping. Messages are released
// in due-time order (ties in scheduling order) by Next, Advance and Run.
type Clock struct {
	now     time.Duration
	seq     int
	pending []pending
}

// New returns a clock at time zero.
func New() *Clock {
	return &Clock{}
}

// After implements anim.Clock. The returned command is always nil.
func (c *Clock) After(d time.Duration, msg tea.Msg) tea.Cmd {
	if d < 0 {
		d = 0
	}
	c.seq++
	c.pending = append(c.pending, pending{at: c.now + d, seq: c.seq, msg: msg})
	return nil
}

// Now returns the virtual time elapsed since the clock was created.
func (c *Clock) Now() time.Duration {
	return c.now
}

// Pending returns the number of undelivered messages.
func (c *Clock) Pending() int {
	return len(c.pending)
}

// Next removes the earliest message and moves the clock to its due time.
func (c *Clock) Next() (tea.Msg, bool) {
	if len(c.pending) == 0 {
		return nil, false
	}
	sort.SliceStable(c.pending, func(i, j int) bool {
		if c.pending[i].at == c.pending[j].at {
			return c.pending[i].seq < c.pending[j].seq
		}
		return c.pending[i].at < c.pending[j].at
	})
	p := c.pending[0]
	c.pending = c.pending[1:]
	if p.at > c.now {
		c.now = p.at
	}
	return p.msg, true
}

// Advance delivers every message due within d, then moves the clock to now+d.
func (c *Clock) Advance(d time.Duration, deliver func(tea.Msg) tea.Cmd) {
	until := c.now + d
	for {
		if !c.hasDue(until) {
			break
		}
		msg, _ := c.Next()
		Drain(deliver(msg), deliver)
	}
	c.now = until
}

// Run delivers messages until none remain or max messages were delivered.
// It returns the number delivered.
func (c *Clock) Run(max int, deliver func(tea.Msg) tea.Cmd) int {
	n := 0
	for n < max {
		msg, ok := c.Next()
		if !ok {
			break
		}
		n++
		Drain(deliver(msg), deliver)
	}
	return n
}

func (c *Clock) hasDue(until time.Duration) bool {
	for _, p := range c.pending {
		if p.at <= until {
			return true
		}
	}
	return false
}

// Drain executes cmd synchronously and feeds its messages to deliver,
// recursing into batches and into the commands deliver returns.
func Drain(cmd tea.Cmd, deliver func(tea.Msg) tea.Cmd) {
	if cmd == nil {
		return
	}
	msg := cmd()
	if msg == nil {
		return
	}
	if batch, ok := msg.(tea.BatchMsg); ok {
		for _, inner := range batch {
			Drain(inner, deliver)
		}
		return
	}
	Drain(deliver(msg), deliver)
}
