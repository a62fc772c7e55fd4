package anim

import (
	"math/rand"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

const (
	// GlitchInterval is the cadence of glitch frames.
	GlitchInterval = 50 * time.Millisecond
	// DefaultGlitchAlphabet is used when no alphabet is given.
	DefaultGlitchAlphabet = "!<>-_\\/[]{}—=+*^?#________"
)

// ticksPerStep is the number of frames per logical step.
const ticksPerStep = 3

// GlitchState is a snapshot of a glitch resolver.
type GlitchState struct {
	DisplayText string
	IsComplete  bool
}

// Glitch resolves scrambled text into its target from left to right.
//
// Frame t uses logical step s = t/3. Positions below s/2 are pinned to the
// target; the rest are scrambled with a probability that fades as s grows.
// Once s reaches 2*len(target) the output is the target.
type Glitch struct {
	handle
	rnd       *rand.Rand
	target    []rune
	alphabet  []rune
	intensity int
	delay     time.Duration

	ticks    int
	frame    int
	display  []rune
	complete bool
}

// NewGlitch returns a resolver for target. Intensity is clamped to 0..100.
func NewGlitch(clock Clock, rnd *rand.Rand, target, alphabet string, intensity int, delay time.Duration) *Glitch {
	if alphabet == "" {
		alphabet = DefaultGlitchAlphabet
	}
	if intensity < 0 {
		intensity = 0
	}
	if intensity > 100 {
		intensity = 100
	}
	if rnd == nil {
		rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	g := &Glitch{
		handle:    newHandle(clock),
		rnd:       rnd,
		target:    []rune(target),
		alphabet:  []rune(alphabet),
		intensity: intensity,
		delay:     delay,
	}
	g.display = g.render(0)
	g.complete = len(g.target) == 0
	return g
}

// Init starts resolving from the fully scrambled frame.
func (g *Glitch) Init() tea.Cmd {
	g.restart()
	g.ticks = 0
	g.frame = 0
	g.display = g.render(0)
	g.complete = false
	if len(g.target) == 0 {
		g.complete = true
		return nil
	}
	if g.delay > 0 {
		return g.after(g.delay, true)
	}
	return g.after(GlitchInterval, false)
}

// Update consumes the resolver's own ticks.
func (g *Glitch) Update(msg tea.Msg) tea.Cmd {
	t, ok := g.accept(msg)
	if !ok || g.complete {
		return nil
	}
	if t.start {
		return g.after(GlitchInterval, false)
	}
	if g.ticks >= g.totalTicks() {
		g.display = append(g.display[:0], g.target...)
		g.frame = g.ticks
		g.complete = true
		return nil
	}
	g.display = g.render(g.ticks)
	g.frame = g.ticks
	g.ticks++
	return g.after(GlitchInterval, false)
}

func (g *Glitch) totalTicks() int {
	return 2 * ticksPerStep * len(g.target)
}

func (g *Glitch) render(ticks int) []rune {
	out := make([]rune, len(g.target))
	if len(g.target) == 0 {
		return out
	}
	fade := 1 - float64(ticks)/float64(g.totalTicks())
	if fade < 0 {
		fade = 0
	}
	probability := fade * float64(g.intensity) / 100
	for i, ch := range g.target {
		// i < s/2 with s = ticks/3.
		if 2*ticksPerStep*i < ticks {
			out[i] = ch
			continue
		}
		if g.rnd.Float64() < probability {
			out[i] = g.alphabet[g.rnd.Intn(len(g.alphabet))]
			continue
		}
		out[i] = ch
	}
	return out
}

// Resolved returns how many leading positions are pinned in the current frame.
func (g *Glitch) Resolved() int {
	if g.complete {
		return len(g.target)
	}
	n := (g.frame + 2*ticksPerStep - 1) / (2 * ticksPerStep)
	if n > len(g.target) {
		n = len(g.target)
	}
	return n
}

// Step returns the logical step of the current frame.
func (g *Glitch) Step() float64 {
	return float64(g.frame) / ticksPerStep
}

// State returns the current snapshot.
func (g *Glitch) State() GlitchState {
	return GlitchState{DisplayText: string(g.display), IsComplete: g.complete}
}

// Text returns the current frame.
func (g *Glitch) Text() string {
	return string(g.display)
}

// Target returns the text being resolved.
func (g *Glitch) Target() string {
	return string(g.target)
}

// Complete reports whether the output settled on the target.
func (g *Glitch) Complete() bool {
	return g.complete
}
