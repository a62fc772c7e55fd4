package anim

import (
	"math"
	"math/rand"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

const (
	jumpThreshold  = 0.8
	stallThreshold = 0.2
)

// ProgressState is a snapshot of a simulated progress bar.
type ProgressState struct {
	Progress   float64
	IsComplete bool
}

// Progress climbs toward 100 in a fixed number of steps.
type Progress struct {
	handle
	rnd       *rand.Rand
	steps     int
	interval  time.Duration
	delay     time.Duration
	randomize bool

	step     int
	value    float64
	complete bool
}

// NewProgress returns a progress simulation lasting roughly duration after delay.
// Non-positive steps and durations are clamped to 1.
func NewProgress(clock Clock, rnd *rand.Rand, duration time.Duration, steps int, delay time.Duration, randomize bool) *Progress {
	if steps <= 0 {
		steps = 1
	}
	if duration <= 0 {
		duration = time.Millisecond
	}
	interval := duration / time.Duration(steps)
	if interval <= 0 {
		interval = time.Nanosecond
	}
	if rnd == nil {
		rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Progress{
		handle:    newHandle(clock),
		rnd:       rnd,
		steps:     steps,
		interval:  interval,
		delay:     delay,
		randomize: randomize,
	}
}

// Init starts the simulation from zero.
func (p *Progress) Init() tea.Cmd {
	p.restart()
	p.step = 0
	p.value = 0
	p.complete = false
	if p.delay > 0 {
		return p.after(p.delay, true)
	}
	return p.after(p.interval, false)
}

// Update consumes the simulation's own ticks.
func (p *Progress) Update(msg tea.Msg) tea.Cmd {
	t, ok := p.accept(msg)
	if !ok || p.complete {
		return nil
	}
	if t.start {
		return p.after(p.interval, false)
	}
	p.step++
	if p.step >= p.steps {
		p.value = 100
		p.complete = true
		return nil
	}
	target := float64(p.step) * 100 / float64(p.steps)
	if !p.randomize {
		p.value = target
		return p.after(p.interval, false)
	}
	r := p.rnd.Float64()
	switch {
	case r > jumpThreshold:
		p.value = math.Min(p.value+2/float64(p.steps)*100, target)
	case r < stallThreshold:
	default:
		p.value = target
	}
	return p.after(p.interval, false)
}

// State returns the current snapshot.
func (p *Progress) State() ProgressState {
	return ProgressState{Progress: p.value, IsComplete: p.complete}
}

// Percent returns progress as a fraction in [0,1].
func (p *Progress) Percent() float64 {
	return p.value / 100
}

// Step returns the number of ticks applied so far.
func (p *Progress) Step() int {
	return p.step
}

// Complete reports whether the final step was reached.
func (p *Progress) Complete() bool {
	return p.complete
}
