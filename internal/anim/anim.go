// Package anim provides the timed animations that drive each scene: text
// reveal, simulated progress, countdown, glitch resolution and one-shot delays.
//
// Every animation is a small Bubble Tea sub-model. It schedules its own ticks
// through a Clock and ignores any tick that does not carry its id and current
// tag, so bumping the tag (Stop, restart) cancels everything still in flight.
package anim

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Clock schedules a message to be delivered after d.
type Clock interface {
	After(d time.Duration, msg tea.Msg) tea.Cmd
}

// TeaClock schedules messages with tea.Tick.
type TeaClock struct{}

// After implements Clock.
func (TeaClock) After(d time.Duration, msg tea.Msg) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return msg
	})
}

var lastID int64

func nextID() int {
	return int(atomic.AddInt64(&lastID, 1))
}

type tickMsg struct {
	id    int
	tag   int
	start bool
}

// handle owns the scheduling identity of one animation.
type handle struct {
	clock   Clock
	id      int
	tag     int
	stopped bool
}

func newHandle(clock Clock) handle {
	if clock == nil {
		clock = TeaClock{}
	}
	return handle{clock: clock, id: nextID()}
}

func (h *handle) restart() {
	h.tag++
	h.stopped = false
}

func (h *handle) after(d time.Duration, start bool) tea.Cmd {
	return h.clock.After(d, tickMsg{id: h.id, tag: h.tag, start: start})
}

func (h *handle) accept(msg tea.Msg) (tickMsg, bool) {
	t, ok := msg.(tickMsg)
	if !ok || h.stopped || t.id != h.id || t.tag != h.tag {
		return tickMsg{}, false
	}
	return t, true
}

// ID returns the animation's unique id.
func (h *handle) ID() int {
	return h.id
}

// Stop cancels every pending tick. A stopped animation keeps its last state.
func (h *handle) Stop() {
	h.tag++
	h.stopped = true
}

// Stopped reports whether Stop was called since the last start.
func (h *handle) Stopped() bool {
	return h.stopped
}
