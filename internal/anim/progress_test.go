package anim

import (
	"math"
	"math/rand"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/doxsim/internal/anim/animtest"
)

func TestProgressLinearSteps(t *testing.T) {
	clock := animtest.New()
	p := NewProgress(clock, rand.New(rand.NewSource(1)), 400*time.Millisecond, 4, 0, false)
	p.Init()

	var values []float64
	clock.Run(100, func(msg tea.Msg) tea.Cmd {
		cmd := p.Update(msg)
		values = append(values, p.State().Progress)
		if p.Complete() && p.Step() != 4 {
			t.Fatalf("completed on step %d", p.Step())
		}
		return cmd
	})
	want := []float64{25, 50, 75, 100}
	if len(values) != len(want) {
		t.Fatalf("expected %d ticks, got %d: %v", len(want), len(values), values)
	}
	for i := range want {
		if values[i] != want[i] {
			t.Fatalf("tick %d: expected %.1f, got %.1f", i+1, want[i], values[i])
		}
	}
	if clock.Now() != 400*time.Millisecond {
		t.Fatalf("expected completion at 400ms, got %s", clock.Now())
	}
}

func TestProgressRandomizedNeverDecreases(t *testing.T) {
	for seed := int64(0); seed < 20; seed++ {
		clock := animtest.New()
		p := NewProgress(clock, rand.New(rand.NewSource(seed)), 2500*time.Millisecond, 100, 200*time.Millisecond, true)
		p.Init()

		prev := 0.0
		completions := 0
		clock.Run(1000, func(msg tea.Msg) tea.Cmd {
			cmd := p.Update(msg)
			s := p.State()
			if s.Progress < prev {
				t.Fatalf("seed %d: progress decreased from %.2f to %.2f", seed, prev, s.Progress)
			}
			// steps == 100, so the step target equals the step number.
			if s.Progress > float64(p.Step())+1e-9 {
				t.Fatalf("seed %d: progress %.2f overshoots step %d", seed, s.Progress, p.Step())
			}
			if s.IsComplete {
				completions++
				if s.Progress != 100 || p.Step() != 100 {
					t.Fatalf("seed %d: completed at %.2f on step %d", seed, s.Progress, p.Step())
				}
			} else if p.Step() == 100 {
				t.Fatalf("seed %d: final step did not complete", seed)
			}
			prev = s.Progress
			return cmd
		})
		if completions != 1 {
			t.Fatalf("seed %d: expected one completion, got %d", seed, completions)
		}
		if clock.Pending() != 0 {
			t.Fatalf("seed %d: ticks scheduled after completion", seed)
		}
	}
}

func TestProgressClampsDegenerateParameters(t *testing.T) {
	clock := animtest.New()
	p := NewProgress(clock, nil, 0, 0, 0, true)
	p.Init()
	n := clock.Run(10, func(msg tea.Msg) tea.Cmd { return p.Update(msg) })
	if n != 1 {
		t.Fatalf("expected a single tick, got %d", n)
	}
	if !p.Complete() || p.State().Progress != 100 {
		t.Fatalf("expected completion, got %+v", p.State())
	}
}

func TestProgressStartDelay(t *testing.T) {
	clock := animtest.New()
	p := NewProgress(clock, nil, 100*time.Millisecond, 10, time.Second, false)
	p.Init()
	deliver := func(msg tea.Msg) tea.Cmd { return p.Update(msg) }
	clock.Advance(time.Second, deliver)
	if p.State().Progress != 0 {
		t.Fatalf("expected no progress during delay, got %.1f", p.State().Progress)
	}
	clock.Advance(10*time.Millisecond, deliver)
	if math.Abs(p.State().Progress-10) > 1e-9 {
		t.Fatalf("expected 10%% after first step, got %.2f", p.State().Progress)
	}
}
