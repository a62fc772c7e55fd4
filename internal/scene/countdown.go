package scene

import (
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/doxsim/internal/anim"
)

const (
	imminentText     = "FULL DATA PUBLICATION IMMINENT"
	imminentAlphabet = "!<>-_\\/[]{}—=+*^?#"
	imminentGlitch   = 70
	glitchThreshold  = 3
)

var countdownWarnings = []string{
	"Your data has been sold to a foreign entity",
	"Hackers now have access to your personal details",
	"Your financial records have been compromised",
	"Your online accounts are at risk of immediate takeover",
}

// Countdown is the alert scene that counts down to the fake publication.
type Countdown struct {
	env       Env
	header    *anim.Reveal
	sub       *anim.Reveal
	leak      *anim.Reveal
	warnings  *anim.Delay
	countdown *anim.Countdown
	glitch    *anim.Glitch
	settle    *anim.Delay
	timers    timers

	glitching bool
	corrupted bool
}

// NewCountdown builds the alert scene.
func NewCountdown(env Env) Scene {
	c := &Countdown{
		env:      env,
		header:   anim.NewReveal(env.Clock, "CRITICAL SECURITY ALERT", env.Pacing.Ms(40), 0),
		sub:      anim.NewReveal(env.Clock, "Your information has been compromised", env.Pacing.Ms(40), env.Pacing.Ms(1500)),
		leak:     anim.NewReveal(env.Clock, "Preparing to publish your full personal data...", env.Pacing.Ms(40), env.Pacing.Ms(3000)),
		warnings: anim.NewDelay(env.Clock, env.Pacing.Scale(env.Pacing.WarningsDelay)),
		glitch:   anim.NewGlitch(env.Clock, env.rand(), imminentText, imminentAlphabet, imminentGlitch, 0),
		settle:   anim.NewDelay(env.Clock, env.Pacing.Scale(env.Pacing.CountdownSettle)),
	}
	c.countdown = anim.NewCountdown(env.Clock, env.Pacing.CountdownFrom, env.Pacing.Scale(env.Pacing.CountdownDelay), c.corrupt)
	c.timers = timers{c.header, c.sub, c.leak, c.warnings, c.countdown, c.glitch, c.settle}
	return c
}

func (c *Countdown) corrupt() tea.Cmd {
	c.corrupted = true
	return c.settle.Start()
}

// Title implements Scene.
func (c *Countdown) Title() string {
	return "SECURITY ALERT"
}

// Init implements Scene.
func (c *Countdown) Init() tea.Cmd {
	return tea.Batch(
		c.header.Init(),
		c.sub.Init(),
		c.leak.Init(),
		c.warnings.Start(),
		c.countdown.Init(),
	)
}

// Update implements Scene.
func (c *Countdown) Update(msg tea.Msg) tea.Cmd {
	cmds := []tea.Cmd{
		c.header.Update(msg),
		c.sub.Update(msg),
		c.leak.Update(msg),
		c.countdown.Update(msg),
		c.glitch.Update(msg),
	}
	c.warnings.Update(msg)
	if !c.glitching && c.shouldGlitch() {
		c.glitching = true
		cmds = append(cmds, c.glitch.Init())
	}
	if c.settle.Update(msg) {
		cmds = append(cmds, c.env.done())
	}
	return tea.Batch(cmds...)
}

func (c *Countdown) shouldGlitch() bool {
	return c.corrupted || (c.countdown.Running() && c.countdown.Count() <= glitchThreshold)
}

// Glitching reports whether the imminent banner is being scrambled.
func (c *Countdown) Glitching() bool {
	return c.glitching
}

// Corrupted reports whether the countdown reached zero.
func (c *Countdown) Corrupted() bool {
	return c.corrupted
}

// Count returns the current countdown value.
func (c *Countdown) Count() int {
	return c.countdown.Count()
}

// Stop implements Scene.
func (c *Countdown) Stop() {
	c.timers.Stop()
}

// View implements Scene.
func (c *Countdown) View(width, _ int) string {
	blocks := []string{typed(c.header, errorStyle.Bold(true))}

	sub := []string{typed(c.sub, warningStyle.Bold(true))}
	if c.warnings.Fired() {
		for _, w := range countdownWarnings {
			sub = append(sub, errorStyle.Render("● "+w))
		}
	}
	blocks = append(blocks, strings.Join(sub, "\n"))

	leak := []string{typed(c.leak, errorStyle.Bold(true))}
	if c.countdown.Running() {
		leak = append(leak, "", c.renderCount(width), c.renderImminent(width))
	}
	blocks = append(blocks, strings.Join(leak, "\n"))

	if c.corrupted {
		blocks = append(blocks, bannerStyle.Width(max(width, 1)).Render("SYSTEM CORRUPTED"))
	}
	return joinBlocks(blocks...)
}

func (c *Countdown) renderCount(width int) string {
	style := warningStyle.Bold(true)
	if c.countdown.Count() <= glitchThreshold {
		style = errorStyle.Bold(true).Blink(true)
	}
	return lipgloss.PlaceHorizontal(max(width, 1), lipgloss.Center, style.Render(strconv.Itoa(c.countdown.Count())))
}

func (c *Countdown) renderImminent(width int) string {
	if !c.glitching {
		return lipgloss.PlaceHorizontal(max(width, 1), lipgloss.Center, errorStyle.Render(imminentText))
	}
	runes := buildGlitchRunes([]rune(c.glitch.Text()), []rune(c.glitch.Target()), errorStyle)
	return lipgloss.PlaceHorizontal(max(width, 1), lipgloss.Center, wrapStyledRunes(runes, width))
}
