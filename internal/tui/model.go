// Package tui provides the Bubble Tea program that sequences the scenes.
package tui

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/doxsim/internal/anim"
	"github.com/verte-zerg/doxsim/internal/model"
	"github.com/verte-zerg/doxsim/internal/scene"
)

// Stage identifies a scene in the fixed order of the simulation.
type Stage int

// Stages in order.
const (
	StageScan Stage = iota
	StageExtraction
	StageLocation
	StageCountdown
	StageDisclosure
	stageCount
)

func (s Stage) String() string {
	switch s {
	case StageScan:
		return "scan"
	case StageExtraction:
		return "extraction"
	case StageLocation:
		return "location"
	case StageCountdown:
		return "countdown"
	case StageDisclosure:
		return "disclosure"
	default:
		return fmt.Sprintf("stage(%d)", int(s))
	}
}

// DefaultScenes returns the builders of the stock scenes.
func DefaultScenes() map[Stage]scene.Builder {
	return map[Stage]scene.Builder{
		StageScan:       scene.NewScan,
		StageExtraction: scene.NewExtraction,
		StageLocation:   scene.NewLocation,
		StageCountdown:  scene.NewCountdown,
		StageDisclosure: scene.NewDisclosure,
	}
}

// Options configures a Model. Zero values fall back to defaults.
type Options struct {
	Context context.Context
	Clock   anim.Clock
	Rand    *rand.Rand
	Pacing  model.Pacing
	// Load resolves the data bundle. It runs once, off the update loop.
	Load func(ctx context.Context) model.Bundle
	// Scenes overrides individual scene builders.
	Scenes    map[Stage]scene.Builder
	SessionID string
}

type dataReadyMsg struct {
	bundle model.Bundle
}

// sceneMsg carries a scheduled message of the scene mounted as mount.
type sceneMsg struct {
	mount int
	msg   tea.Msg
}

type advanceMsg struct {
	mount int
}

// scopedClock tags every message a scene schedules with the scene's mount.
type scopedClock struct {
	inner anim.Clock
	mount int
}

func (c scopedClock) After(d time.Duration, msg tea.Msg) tea.Cmd {
	return c.inner.After(d, sceneMsg{mount: c.mount, msg: msg})
}

// Model implements the Bubble Tea simulation UI.
type Model struct {
	ctx     context.Context
	clock   anim.Clock
	rnd     *rand.Rand
	pacing  model.Pacing
	load    func(ctx context.Context) model.Bundle
	scenes  [stageCount]scene.Builder
	session string

	width  int
	height int

	spinner spinner.Model
	ready   bool
	data    model.Bundle

	stage   Stage
	mount   int
	current scene.Scene
}

var (
	titleStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F")).Bold(true)
	titleEmphasis   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFB020")).Bold(true)
	frameStyle      = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#1F6F66")).Padding(0, 1)
	frameTitleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#8FD3FF")).Bold(true)
	placeholder     = lipgloss.NewStyle().Foreground(lipgloss.Color("#00E0C6"))
	footerStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	dotStyles       = []lipgloss.Style{
		lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F")),
		lipgloss.NewStyle().Foreground(lipgloss.Color("#FFB020")),
		lipgloss.NewStyle().Foreground(lipgloss.Color("#3DDC84")),
	}
)

const (
	initializingText = "Initializing system..."
	footerText       = "This is an educational demonstration. No actual personal data is being collected or stored."
	disclosureFooter = "This is an educational tool created to raise awareness about online privacy and security.\nNo real personal data is collected, stored, or shared during this simulation."
)

// NewModel constructs the orchestrator. No scene is mounted until the data
// bundle resolves.
func NewModel(opts Options) *Model {
	m := &Model{
		ctx:     opts.Context,
		clock:   opts.Clock,
		rnd:     opts.Rand,
		pacing:  opts.Pacing,
		load:    opts.Load,
		session: opts.SessionID,
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(placeholder)),
	}
	if m.ctx == nil {
		m.ctx = context.Background()
	}
	if m.clock == nil {
		m.clock = anim.TeaClock{}
	}
	if m.rnd == nil {
		m.rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if m.pacing == (model.Pacing{}) {
		m.pacing = model.DefaultPacing()
	}
	defaults := DefaultScenes()
	for s := StageScan; s < stageCount; s++ {
		m.scenes[s] = defaults[s]
		if b, ok := opts.Scenes[s]; ok && b != nil {
			m.scenes[s] = b
		}
	}
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.loadCmd())
}

func (m *Model) loadCmd() tea.Cmd {
	if m.load == nil {
		return nil
	}
	ctx, load := m.ctx, m.load
	return func() tea.Msg {
		return dataReadyMsg{bundle: load(ctx)}
	}
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.current != nil {
			return m, m.current.Update(msg)
		}
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			m.teardown()
			return m, tea.Quit
		}
		if m.current != nil {
			return m, m.current.Update(msg)
		}
		return m, nil
	case tea.MouseMsg:
		if m.current != nil {
			return m, m.current.Update(msg)
		}
		return m, nil
	case spinner.TickMsg:
		if m.ready {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case dataReadyMsg:
		if m.ready {
			return m, nil
		}
		m.ready = true
		m.data = msg.bundle
		log.Printf("session %s: data ready (ip %s)", m.session, m.data.Metadata.IPAddress)
		return m, m.enter(StageScan)
	case sceneMsg:
		if msg.mount != m.mount || m.current == nil {
			return m, nil
		}
		return m, m.current.Update(msg.msg)
	case advanceMsg:
		if msg.mount != m.mount || m.current == nil {
			return m, nil
		}
		return m, m.advance()
	default:
		return m, nil
	}
}

func (m *Model) advance() tea.Cmd {
	if m.stage == StageDisclosure {
		return m.enter(StageScan)
	}
	return m.enter(m.stage + 1)
}

// Reset returns to the scan scene. It only has an effect on the disclosure
// scene.
func (m *Model) Reset() tea.Cmd {
	if !m.ready || m.stage != StageDisclosure {
		return nil
	}
	return m.enter(StageScan)
}

// enter tears down the mounted scene and mounts stage under a new mount id.
func (m *Model) enter(stage Stage) tea.Cmd {
	m.teardown()
	m.mount++
	m.stage = stage
	mount := m.mount
	m.current = m.scenes[stage](scene.Env{
		Clock:  scopedClock{inner: m.clock, mount: mount},
		Rand:   rand.New(rand.NewSource(m.rnd.Int63())),
		Pacing: m.pacing,
		Data:   m.data,
		Done:   completion(mount),
	})
	log.Printf("session %s: enter %s (mount %d)", m.session, stage, mount)
	cmds := []tea.Cmd{m.current.Init()}
	if m.width > 0 && m.height > 0 {
		cmds = append(cmds, m.current.Update(tea.WindowSizeMsg{Width: m.width, Height: m.height}))
	}
	return tea.Batch(cmds...)
}

func (m *Model) teardown() {
	if m.current == nil {
		return
	}
	m.current.Stop()
	m.current = nil
}

// completion returns a single-fire signal for mount.
func completion(mount int) func() tea.Cmd {
	fired := false
	return func() tea.Cmd {
		if fired {
			log.Printf("mount %d: duplicate completion ignored", mount)
			return nil
		}
		fired = true
		return func() tea.Msg {
			return advanceMsg{mount: mount}
		}
	}
}

// Stage returns the current stage.
func (m *Model) Stage() Stage {
	return m.stage
}

// Ready reports whether the data bundle resolved.
func (m *Model) Ready() bool {
	return m.ready
}

// Scene returns the mounted scene, or nil before the data is ready.
func (m *Model) Scene() scene.Scene {
	return m.current
}

// View implements tea.Model.
func (m *Model) View() string {
	width, height := m.width, m.height
	if width <= 0 || height <= 0 {
		width, height = 80, 24
	}
	if !m.ready || m.current == nil {
		line := m.spinner.View() + " " + placeholder.Render(initializingText)
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, line)
	}

	header := lipgloss.PlaceHorizontal(width, lipgloss.Center,
		titleStyle.Render("You've Been ")+titleEmphasis.Render("Doxxed!"))
	footerLines := footerText
	if m.stage == StageDisclosure {
		footerLines = disclosureFooter
	}
	footer := lipgloss.PlaceHorizontal(width, lipgloss.Center, footerStyle.Render(footerLines))

	frameWidth := min(width, 100)
	innerWidth := max(frameWidth-frameStyle.GetHorizontalFrameSize(), 1)
	innerHeight := max(height-lipgloss.Height(header)-lipgloss.Height(footer)-frameStyle.GetVerticalFrameSize()-3, 1)
	body := m.current.View(innerWidth, innerHeight)
	frame := frameStyle.Width(innerWidth).Render(m.frameHeader() + "\n\n" + body)

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		"",
		lipgloss.PlaceHorizontal(width, lipgloss.Center, frame),
		"",
		footer,
	)
}

func (m *Model) frameHeader() string {
	dots := ""
	for _, s := range dotStyles {
		dots += s.Render("●") + " "
	}
	return dots + frameTitleStyle.Render(m.current.Title())
}
