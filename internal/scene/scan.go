package scene

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/doxsim/internal/anim"
)

const (
	scanTypeSpeedMs = 20
	scanSteps       = 100
)

type scanLine struct {
	label         string
	revealDelayMs int
	durationMs    int
	progressDelay int
}

var scanScript = []scanLine{
	{label: "Initializing system scan...", revealDelayMs: 0, durationMs: 1200, progressDelay: 200},
	{label: "Fetching public records...", revealDelayMs: 1500, durationMs: 2500, progressDelay: 1700},
	{label: "Scanning social media profiles...", revealDelayMs: 3000, durationMs: 2500, progressDelay: 3200},
	{label: "Cross-referencing data points...", revealDelayMs: 6000, durationMs: 2800, progressDelay: 6200},
	{label: "Building comprehensive profile...", revealDelayMs: 9000, durationMs: 2200, progressDelay: 9200},
}

type scanStep struct {
	reveal   *anim.Reveal
	progress *anim.Progress
}

// Scan walks through the staged "system scan" with a progress bar per step.
type Scan struct {
	env    Env
	steps  []scanStep
	stage  int
	settle *anim.Delay
	timers timers
	bar    progress.Model

	profiles  int
	breaches  int
	addresses int
	relatives int
}

// NewScan builds the scan scene.
func NewScan(env Env) Scene {
	rnd := env.rand()
	s := &Scan{
		env:       env,
		settle:    anim.NewDelay(env.Clock, env.Pacing.Scale(env.Pacing.ScanSettle)),
		bar:       progress.New(progress.WithSolidFill("#00E0C6"), progress.WithoutPercentage()),
		profiles:  3 + rnd.Intn(5),
		breaches:  2 + rnd.Intn(4),
		addresses: 1 + rnd.Intn(3),
		relatives: 1 + rnd.Intn(3),
	}
	for _, line := range scanScript {
		step := scanStep{
			reveal:   anim.NewReveal(env.Clock, line.label, env.Pacing.Ms(scanTypeSpeedMs), env.Pacing.Ms(line.revealDelayMs)),
			progress: anim.NewProgress(env.Clock, childRand(rnd), env.Pacing.Ms(line.durationMs), scanSteps, env.Pacing.Ms(line.progressDelay), true),
		}
		s.steps = append(s.steps, step)
		s.timers = append(s.timers, step.reveal, step.progress)
	}
	s.timers = append(s.timers, s.settle)
	return s
}

func childRand(rnd *rand.Rand) *rand.Rand {
	return rand.New(rand.NewSource(rnd.Int63()))
}

// Title implements Scene.
func (s *Scan) Title() string {
	return "SYSTEM SCAN"
}

// Init implements Scene.
func (s *Scan) Init() tea.Cmd {
	cmds := make([]tea.Cmd, 0, 2*len(s.steps))
	for _, step := range s.steps {
		cmds = append(cmds, step.reveal.Init(), step.progress.Init())
	}
	return tea.Batch(cmds...)
}

// Update implements Scene.
func (s *Scan) Update(msg tea.Msg) tea.Cmd {
	var cmds []tea.Cmd
	for _, step := range s.steps {
		cmds = append(cmds, step.reveal.Update(msg), step.progress.Update(msg))
	}
	for s.stage < len(s.steps)-1 && s.steps[s.stage].progress.Complete() {
		s.stage++
	}
	if s.allComplete() && !s.settle.Armed() {
		cmds = append(cmds, s.settle.Start())
	}
	if s.settle.Update(msg) {
		cmds = append(cmds, s.env.done())
	}
	return tea.Batch(cmds...)
}

func (s *Scan) allComplete() bool {
	for _, step := range s.steps {
		if !step.progress.Complete() {
			return false
		}
	}
	return true
}

// Stage returns the index of the last visible scan step.
func (s *Scan) Stage() int {
	return s.stage
}

// Stop implements Scene.
func (s *Scan) Stop() {
	s.timers.Stop()
}

// View implements Scene.
func (s *Scan) View(width, _ int) string {
	blocks := make([]string, 0, len(s.steps))
	for i := 0; i <= s.stage && i < len(s.steps); i++ {
		blocks = append(blocks, s.renderStep(i, width))
	}
	return joinBlocks(blocks...)
}

func (s *Scan) renderStep(i, width int) string {
	step := s.steps[i]
	lines := []string{typed(step.reveal, accentStyle.Bold(true))}
	if step.reveal.Complete() {
		lines = append(lines, s.renderBar(step.progress, width))
	}
	if extra := s.stepDetails(i); len(extra) > 0 {
		lines = append(lines, extra...)
	}
	return strings.Join(lines, "\n")
}

func (s *Scan) renderBar(p *anim.Progress, width int) string {
	bar := s.bar
	bar.Width = width - 6
	if bar.Width < 10 {
		bar.Width = 10
	}
	return bar.ViewAs(p.Percent()) + mutedStyle.Render(fmt.Sprintf(" %3.0f%%", p.State().Progress))
}

func (s *Scan) stepDetails(i int) []string {
	md := s.env.Data.Metadata
	switch {
	case i == 0 && s.stage >= 1:
		loc := md.Location
		return []string{
			field("IP Address", md.IPAddress),
			field("Location", fmt.Sprintf("%s, %s, %s", loc.City, loc.Region, loc.Country)),
			field("Browser", md.BrowserInfo.Browser),
			field("OS", md.BrowserInfo.OS),
			field("Device", md.BrowserInfo.DeviceType),
		}
	case i == 2 && s.stage >= 2:
		return []string{
			warningStyle.Render(fmt.Sprintf("Found %d social media profiles", s.profiles)),
			warningStyle.Render(fmt.Sprintf("Detected %d password breaches", s.breaches)),
			warningStyle.Render(fmt.Sprintf("Located %d possible home addresses", s.addresses)),
		}
	case i == 3 && s.stage >= 3:
		return []string{
			errorStyle.Render(fmt.Sprintf("Connected %d relatives", s.relatives)),
			errorStyle.Render("Found financial activity patterns"),
			errorStyle.Render("Matching browsing history patterns"),
		}
	case i == 4 && s.stage >= 4:
		return []string{
			errorStyle.Bold(true).Render("PROFILE COMPLETE"),
			errorStyle.Render("All data successfully aggregated"),
			errorStyle.Render("Proceeding to disclosure phase..."),
		}
	}
	return nil
}
