package anim

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Delay fires once, d after Start.
type Delay struct {
	handle
	d     time.Duration
	armed bool
	fired bool
}

// NewDelay returns an unarmed delay.
func NewDelay(clock Clock, d time.Duration) *Delay {
	return &Delay{handle: newHandle(clock), d: d}
}

// Start arms the delay. Starting an armed or fired delay re-arms it.
func (t *Delay) Start() tea.Cmd {
	t.restart()
	t.armed = true
	t.fired = false
	return t.after(t.d, false)
}

// Update reports true on the message that fires the delay.
func (t *Delay) Update(msg tea.Msg) bool {
	if _, ok := t.accept(msg); !ok || !t.armed || t.fired {
		return false
	}
	t.fired = true
	return true
}

// Armed reports whether Start was called.
func (t *Delay) Armed() bool {
	return t.armed
}

// Fired reports whether the delay elapsed.
func (t *Delay) Fired() bool {
	return t.fired
}
