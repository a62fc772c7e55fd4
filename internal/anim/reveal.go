package anim

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// RevealState is a snapshot of a text reveal.
type RevealState struct {
	DisplayText string
	IsComplete  bool
}

// Reveal shows one more character of its target every interval.
type Reveal struct {
	handle
	target   []rune
	interval time.Duration
	delay    time.Duration

	shown    int
	started  bool
	complete bool
}

// NewReveal returns a reveal of target. Call Init to start it.
func NewReveal(clock Clock, target string, interval, delay time.Duration) *Reveal {
	if interval <= 0 {
		interval = time.Millisecond
	}
	return &Reveal{
		handle:   newHandle(clock),
		target:   []rune(target),
		interval: interval,
		delay:    delay,
	}
}

// Init starts the reveal from an empty prefix.
func (r *Reveal) Init() tea.Cmd {
	r.restart()
	r.shown = 0
	r.started = false
	r.complete = false
	if len(r.target) == 0 {
		r.started = true
		r.complete = true
		return nil
	}
	if r.delay > 0 {
		return r.after(r.delay, true)
	}
	r.started = true
	return r.after(r.interval, false)
}

// SetTarget restarts the reveal when the target or interval changed.
func (r *Reveal) SetTarget(target string, interval time.Duration) tea.Cmd {
	if interval <= 0 {
		interval = time.Millisecond
	}
	if string(r.target) == target && r.interval == interval {
		return nil
	}
	r.target = []rune(target)
	r.interval = interval
	return r.Init()
}

// Update consumes the reveal's own ticks.
func (r *Reveal) Update(msg tea.Msg) tea.Cmd {
	t, ok := r.accept(msg)
	if !ok {
		return nil
	}
	if t.start {
		if r.started {
			return nil
		}
		r.started = true
		return r.after(r.interval, false)
	}
	if r.complete {
		return nil
	}
	r.shown++
	if r.shown >= len(r.target) {
		r.shown = len(r.target)
		r.complete = true
		return nil
	}
	return r.after(r.interval, false)
}

// State returns the current snapshot.
func (r *Reveal) State() RevealState {
	return RevealState{
		DisplayText: string(r.target[:r.shown]),
		IsComplete:  r.complete,
	}
}

// Text returns the revealed prefix.
func (r *Reveal) Text() string {
	return string(r.target[:r.shown])
}

// Complete reports whether the whole target is shown.
func (r *Reveal) Complete() bool {
	return r.complete
}
