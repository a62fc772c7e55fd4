package tui

import (
	"context"
	"math/rand"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/doxsim/internal/anim/animtest"
	"github.com/verte-zerg/doxsim/internal/generator"
	"github.com/verte-zerg/doxsim/internal/metadata"
	"github.com/verte-zerg/doxsim/internal/model"
	"github.com/verte-zerg/doxsim/internal/scene"
)

type pingMsg struct{}

type stubScene struct {
	env     scene.Env
	title   string
	updates int
	stopped bool
}

func (s *stubScene) Init() tea.Cmd {
	return s.env.Clock.After(time.Second, pingMsg{})
}

func (s *stubScene) Update(msg tea.Msg) tea.Cmd {
	if _, ok := msg.(pingMsg); ok {
		s.updates++
	}
	return nil
}

func (s *stubScene) View(int, int) string { return s.title }
func (s *stubScene) Title() string        { return s.title }
func (s *stubScene) Stop()                { s.stopped = true }

type stubs struct {
	built []*stubScene
}

func (st *stubs) builder(title string) scene.Builder {
	return func(env scene.Env) scene.Scene {
		s := &stubScene{env: env, title: title}
		st.built = append(st.built, s)
		return s
	}
}

func (st *stubs) last() *stubScene {
	return st.built[len(st.built)-1]
}

func (st *stubs) scenes() map[Stage]scene.Builder {
	out := map[Stage]scene.Builder{}
	for s := StageScan; s < stageCount; s++ {
		out[s] = st.builder(s.String())
	}
	return out
}

func testBundle() model.Bundle {
	md := metadata.Fallback("Mozilla/5.0 (X11; Linux x86_64) Firefox/120.0", time.Unix(0, 0))
	return model.Bundle{Metadata: md, Profile: generator.Profile(md.IPAddress)}
}

func newTestModel(clock *animtest.Clock, scenes map[Stage]scene.Builder) *Model {
	return NewModel(Options{
		Clock:  clock,
		Rand:   rand.New(rand.NewSource(1)),
		Load:   func(context.Context) model.Bundle { return testBundle() },
		Scenes: scenes,
	})
}

func deliverTo(m *Model) func(tea.Msg) tea.Cmd {
	return func(msg tea.Msg) tea.Cmd {
		_, cmd := m.Update(msg)
		return cmd
	}
}

func TestPlaceholderUntilDataReady(t *testing.T) {
	st := &stubs{}
	m := newTestModel(animtest.New(), st.scenes())
	if m.Ready() || m.Scene() != nil {
		t.Fatalf("no scene may mount before the data resolves")
	}
	if !strings.Contains(m.View(), initializingText) {
		t.Fatalf("expected placeholder, got %q", m.View())
	}
	if len(st.built) != 0 {
		t.Fatalf("no scene may be built before the data resolves")
	}

	animtest.Drain(m.loadCmd(), deliverTo(m))
	if !m.Ready() || m.Stage() != StageScan {
		t.Fatalf("expected scan after data, got ready=%v stage=%s", m.Ready(), m.Stage())
	}
	if st.last().env.Data.Metadata.IPAddress != metadata.FallbackIP {
		t.Fatalf("scene must receive the loaded bundle")
	}

	// A second bundle must not remount.
	m.Update(dataReadyMsg{bundle: testBundle()})
	if len(st.built) != 1 {
		t.Fatalf("expected a single mount, got %d", len(st.built))
	}
}

func TestCompletionFiresOnce(t *testing.T) {
	st := &stubs{}
	m := newTestModel(animtest.New(), st.scenes())
	m.Update(dataReadyMsg{bundle: testBundle()})

	done := st.last().env.Done
	animtest.Drain(done(), deliverTo(m))
	if m.Stage() != StageExtraction {
		t.Fatalf("expected extraction, got %s", m.Stage())
	}
	if cmd := done(); cmd != nil {
		t.Fatalf("second completion must be a no-op")
	}
	if m.Stage() != StageExtraction {
		t.Fatalf("stage must not move twice, got %s", m.Stage())
	}
}

func TestStaleAdvanceIsDropped(t *testing.T) {
	st := &stubs{}
	m := newTestModel(animtest.New(), st.scenes())
	m.Update(dataReadyMsg{bundle: testBundle()})
	animtest.Drain(st.last().env.Done(), deliverTo(m))

	m.Update(advanceMsg{mount: 1})
	if m.Stage() != StageExtraction {
		t.Fatalf("advance from a torn-down mount must be dropped, got %s", m.Stage())
	}
}

func TestTornDownSceneReceivesNothing(t *testing.T) {
	clock := animtest.New()
	st := &stubs{}
	m := newTestModel(clock, st.scenes())
	m.Update(dataReadyMsg{bundle: testBundle()})
	first := st.last()

	animtest.Drain(first.env.Done(), deliverTo(m))
	if !first.stopped {
		t.Fatalf("advancing must stop the previous scene")
	}
	clock.Run(10, deliverTo(m))
	if first.updates != 0 {
		t.Fatalf("torn-down scene received %d messages", first.updates)
	}
	if st.last().updates != 1 {
		t.Fatalf("mounted scene should receive its own tick")
	}
}

func TestResetOnlyFromDisclosure(t *testing.T) {
	st := &stubs{}
	m := newTestModel(animtest.New(), st.scenes())
	m.Update(dataReadyMsg{bundle: testBundle()})

	if cmd := m.Reset(); cmd != nil || m.Stage() != StageScan || len(st.built) != 1 {
		t.Fatalf("reset outside disclosure must be a no-op")
	}
	for m.Stage() != StageDisclosure {
		animtest.Drain(st.last().env.Done(), deliverTo(m))
	}
	if len(st.built) != 5 {
		t.Fatalf("expected five scenes before reset, got %d", len(st.built))
	}
	animtest.Drain(m.Reset(), deliverTo(m))
	if m.Stage() != StageScan {
		t.Fatalf("expected scan after reset, got %s", m.Stage())
	}
	if !st.built[4].stopped {
		t.Fatalf("disclosure must be torn down by reset")
	}
	if len(st.built) != 6 {
		t.Fatalf("expected a fresh scan scene, got %d builds", len(st.built))
	}
}

func TestFullRunWithStockScenes(t *testing.T) {
	clock := animtest.New()
	m := newTestModel(clock, nil)
	deliver := deliverTo(m)
	animtest.Drain(m.loadCmd(), deliver)

	clock.Run(100000, deliver)
	if m.Stage() != StageDisclosure {
		t.Fatalf("expected disclosure after all timers, got %s", m.Stage())
	}
	d, ok := m.Scene().(*scene.Disclosure)
	if !ok || !d.ContentShown() {
		t.Fatalf("expected disclosure tips to be shown")
	}
	// scan 12.4s, extraction 9s, location 8s, countdown 16s, disclosure tips 6s
	if clock.Now() < 51400*time.Millisecond {
		t.Fatalf("run finished too early: %s", clock.Now())
	}
	if !strings.Contains(m.View(), "DISCLOSURE") {
		t.Fatalf("expected disclosure frame title")
	}

	animtest.Drain(func() tea.Msg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")} }, deliver)
	if m.Stage() != StageScan {
		t.Fatalf("expected reset to scan, got %s", m.Stage())
	}
	if _, ok := m.Scene().(*scene.Scan); !ok {
		t.Fatalf("expected a scan scene after reset")
	}
}

func TestQuitKeys(t *testing.T) {
	m := newTestModel(animtest.New(), nil)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil {
		t.Fatalf("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("expected tea.QuitMsg")
	}
}

func TestStageString(t *testing.T) {
	if StageCountdown.String() != "countdown" || Stage(9).String() != "stage(9)" {
		t.Fatalf("unexpected stage names")
	}
}
