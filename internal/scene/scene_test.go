package scene

import (
	"math/rand"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/doxsim/internal/anim/animtest"
	"github.com/verte-zerg/doxsim/internal/generator"
	"github.com/verte-zerg/doxsim/internal/metadata"
	"github.com/verte-zerg/doxsim/internal/model"
)

type doneMsg struct{}

type harness struct {
	clock  *animtest.Clock
	scene  Scene
	done   int
	doneAt time.Duration
}

func newHarness(t *testing.T, build Builder) *harness {
	t.Helper()
	h := &harness{clock: animtest.New()}
	md := metadata.Fallback("Mozilla/5.0 (X11; Linux x86_64) Chrome/120.0", time.Unix(0, 0))
	h.scene = build(Env{
		Clock:  h.clock,
		Rand:   rand.New(rand.NewSource(7)),
		Pacing: model.DefaultPacing(),
		Data:   model.Bundle{Metadata: md, Profile: generator.Profile(md.IPAddress)},
		Done: func() tea.Cmd {
			return func() tea.Msg { return doneMsg{} }
		},
	})
	animtest.Drain(h.scene.Init(), h.deliver)
	return h
}

func (h *harness) deliver(msg tea.Msg) tea.Cmd {
	if _, ok := msg.(doneMsg); ok {
		h.done++
		if h.done == 1 {
			h.doneAt = h.clock.Now()
		}
		return nil
	}
	return h.scene.Update(msg)
}

func (h *harness) advance(d time.Duration) {
	h.clock.Advance(d, h.deliver)
}

func TestScanCompletesAfterLastBarAndSettle(t *testing.T) {
	h := newHarness(t, NewScan)
	scan := h.scene.(*Scan)

	h.advance(1300 * time.Millisecond)
	if scan.Stage() != 0 {
		t.Fatalf("expected stage 0 before the first bar completes, got %d", scan.Stage())
	}
	h.advance(200 * time.Millisecond)
	if scan.Stage() != 1 {
		t.Fatalf("expected stage 1 at 1.5s, got %d", scan.Stage())
	}

	h.clock.Run(10000, h.deliver)
	if h.done != 1 {
		t.Fatalf("expected one completion, got %d", h.done)
	}
	if h.doneAt != 12400*time.Millisecond {
		t.Fatalf("expected completion at 12.4s, got %s", h.doneAt)
	}
	if scan.Stage() != len(scanScript)-1 {
		t.Fatalf("expected final stage, got %d", scan.Stage())
	}
	if !strings.Contains(scan.View(80, 40), "PROFILE COMPLETE") {
		t.Fatalf("expected profile complete line in final view")
	}
}

func TestScanStopCancelsEverything(t *testing.T) {
	h := newHarness(t, NewScan)
	h.advance(2 * time.Second)
	h.scene.Stop()
	h.clock.Run(10000, h.deliver)
	if h.done != 0 {
		t.Fatalf("stopped scene must not complete")
	}
}

func TestExtractionTimeline(t *testing.T) {
	h := newHarness(t, NewExtraction)
	ex := h.scene.(*Extraction)

	if got := len(ex.Breaches()); got != extractionBreaches {
		t.Fatalf("expected %d breaches, got %d", extractionBreaches, got)
	}
	// 30 runes at 40ms, then 800ms.
	h.advance(1999 * time.Millisecond)
	if ex.Revealed() {
		t.Fatalf("sections must stay hidden until 2s")
	}
	h.advance(time.Millisecond)
	if !ex.Revealed() {
		t.Fatalf("expected sections at 2s")
	}
	view := ex.View(80, 40)
	name := generator.Profile(metadata.FallbackIP).Name
	for _, want := range []string{"BASIC INFORMATION", name, "DATA BREACH HISTORY", "data breach"} {
		if !strings.Contains(view, want) {
			t.Fatalf("expected %q in view", want)
		}
	}

	h.clock.Run(1000, h.deliver)
	if h.done != 1 || h.doneAt != 9*time.Second {
		t.Fatalf("expected one completion at 9s, got %d at %s", h.done, h.doneAt)
	}
}

func TestLocationHoldRunsFromMount(t *testing.T) {
	h := newHarness(t, NewLocation)
	loc := h.scene.(*Location)

	if !strings.Contains(loc.View(80, 40), "Loading map data...") {
		t.Fatalf("expected loading text before map load")
	}
	if !strings.Contains(loc.View(80, 40), "40.712800, -74.006000") {
		t.Fatalf("expected six-decimal coordinates")
	}
	h.advance(1500 * time.Millisecond)
	if !loc.MapLoaded() {
		t.Fatalf("expected map at 1.5s")
	}
	if strings.Contains(loc.View(80, 40), "Loading map data...") {
		t.Fatalf("loading text must be replaced")
	}
	h.clock.Run(1000, h.deliver)
	if h.done != 1 || h.doneAt != 8*time.Second {
		t.Fatalf("expected one completion at 8s, got %d at %s", h.done, h.doneAt)
	}
}

func TestCountdownGlitchAndCorruption(t *testing.T) {
	h := newHarness(t, NewCountdown)
	cd := h.scene.(*Countdown)

	h.advance(10 * time.Second)
	if cd.Count() != 4 || cd.Glitching() {
		t.Fatalf("expected count 4 without glitch at 10s, got %d glitching=%v", cd.Count(), cd.Glitching())
	}
	h.advance(time.Second)
	if cd.Count() != 3 || !cd.Glitching() {
		t.Fatalf("expected glitch at count 3, got %d glitching=%v", cd.Count(), cd.Glitching())
	}
	h.advance(3 * time.Second)
	if !cd.Corrupted() {
		t.Fatalf("expected corruption at 14s")
	}
	if !strings.Contains(cd.View(80, 40), "SYSTEM CORRUPTED") {
		t.Fatalf("expected corrupted banner")
	}
	if h.done != 0 {
		t.Fatalf("completion must wait for the settle delay")
	}
	h.advance(2 * time.Second)
	if h.done != 1 || h.doneAt != 16*time.Second {
		t.Fatalf("expected one completion at 16s, got %d at %s", h.done, h.doneAt)
	}
}

func TestDisclosureResetOnlyAfterTips(t *testing.T) {
	h := newHarness(t, NewDisclosure)
	d := h.scene.(*Disclosure)
	press := func(s string) {
		var msg tea.KeyMsg
		if s == "enter" {
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		} else {
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
		}
		animtest.Drain(h.scene.Update(msg), h.deliver)
	}

	press("r")
	if h.done != 0 {
		t.Fatalf("reset must be ignored before the tips appear")
	}
	h.advance(6 * time.Second)
	if !d.ContentShown() {
		t.Fatalf("expected tips at 6s")
	}
	if !strings.Contains(d.View(100, 40), "Use a VPN") {
		t.Fatalf("expected tips in view")
	}
	press("enter")
	if h.done != 1 {
		t.Fatalf("expected reset request, got %d", h.done)
	}
}
