package scene

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/doxsim/internal/anim"
)

const (
	defaultTipsWidth  = 80
	defaultTipsHeight = 12
	// rows reserved for the reveals above the tips and the footer below.
	tipsChrome = 12
)

type tip struct {
	title string
	body  string
}

var explanation = []string{
	"This simulation demonstrates how easily someone could collect information about you from public sources. While this was just a demonstration with mostly fake data, real doxxing incidents can reveal much more personal information.",
	"The only real data used in this simulation was your approximate location based on your IP address, your browser type, and operating system - all information that any website you visit can access.",
}

var protectionTips = []tip{
	{"Use a VPN", "A Virtual Private Network encrypts your internet connection and masks your IP address, making it harder for others to track your location and browsing habits."},
	{"Password Manager", "Use a password manager to create and store strong, unique passwords for each of your accounts. This prevents hackers from accessing multiple accounts if one is compromised."},
	{"Limit Personal Information", "Be cautious about what you share online. Avoid posting your full name, address, phone number, or other identifying information on public platforms."},
	{"Check Privacy Settings", "Regularly review and update the privacy settings on your social media accounts to control who can see your posts and personal information."},
	{"Two-Factor Authentication", "Enable two-factor authentication on all your important accounts to add an extra layer of security beyond just a password."},
	{"Check Data Breaches", "Use services like Have I Been Pwned to check if your email has been involved in a data breach, and change passwords for any affected accounts."},
}

// Disclosure reveals that the run was a simulation and lists protection tips.
// Pressing r or enter once the tips are shown requests a new run.
type Disclosure struct {
	env     Env
	header  *anim.Reveal
	sub     *anim.Reveal
	warning *anim.Reveal
	content *anim.Delay
	timers  timers
	tips    viewport.Model
}

// NewDisclosure builds the disclosure scene.
func NewDisclosure(env Env) Scene {
	d := &Disclosure{
		env:     env,
		header:  anim.NewReveal(env.Clock, "THIS WAS A SIMULATION", env.Pacing.Ms(60), 0),
		sub:     anim.NewReveal(env.Clock, "But this happens in real life. Every day.", env.Pacing.Ms(40), env.Pacing.Ms(2000)),
		warning: anim.NewReveal(env.Clock, "Your data is out there. Here's how to protect yourself.", env.Pacing.Ms(40), env.Pacing.Ms(4000)),
		content: anim.NewDelay(env.Clock, env.Pacing.Scale(env.Pacing.DisclosureDelay)),
		tips:    viewport.New(defaultTipsWidth, defaultTipsHeight),
	}
	d.timers = timers{d.header, d.sub, d.warning, d.content}
	d.tips.SetContent(renderTips(defaultTipsWidth))
	return d
}

// Title implements Scene.
func (d *Disclosure) Title() string {
	return "DISCLOSURE"
}

// Init implements Scene.
func (d *Disclosure) Init() tea.Cmd {
	return tea.Batch(d.header.Init(), d.sub.Init(), d.warning.Init(), d.content.Start())
}

// Update implements Scene.
func (d *Disclosure) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		d.resize(msg.Width, msg.Height)
		return nil
	case tea.KeyMsg:
		if !d.ContentShown() {
			return nil
		}
		switch msg.String() {
		case "r", "enter":
			return d.env.done()
		}
		var cmd tea.Cmd
		d.tips, cmd = d.tips.Update(msg)
		return cmd
	case tea.MouseMsg:
		var cmd tea.Cmd
		d.tips, cmd = d.tips.Update(msg)
		return cmd
	}
	cmds := []tea.Cmd{d.header.Update(msg), d.sub.Update(msg), d.warning.Update(msg)}
	d.content.Update(msg)
	return tea.Batch(cmds...)
}

func (d *Disclosure) resize(width, height int) {
	if width <= 0 {
		width = defaultTipsWidth
	}
	h := defaultTipsHeight
	if height > 0 {
		h = max(height-tipsChrome, 3)
	}
	if d.tips.Width == width && d.tips.Height == h {
		return
	}
	d.tips.Width = width
	d.tips.Height = h
	d.tips.SetContent(renderTips(width))
}

// ContentShown reports whether the tips are visible and reset is accepted.
func (d *Disclosure) ContentShown() bool {
	return d.content.Fired()
}

// Stop implements Scene.
func (d *Disclosure) Stop() {
	d.timers.Stop()
}

// View implements Scene.
func (d *Disclosure) View(width, height int) string {
	d.resize(width, height)
	center := func(s string) string {
		return lipgloss.PlaceHorizontal(max(width, 1), lipgloss.Center, s)
	}
	blocks := []string{
		center(typed(d.header, successStyle.Bold(true))),
		center(typed(d.sub, warningStyle)) + "\n" + center(typed(d.warning, lipgloss.NewStyle())),
	}
	if d.ContentShown() {
		blocks = append(blocks,
			d.tips.View(),
			center(successStyle.Bold(true).Render("[ r ] Run Simulation Again")),
		)
	}
	return joinBlocks(blocks...)
}

func renderTips(width int) string {
	inner := max(width-2, 10)
	var b strings.Builder
	b.WriteString(sectionTitleStyle.Render("What just happened?"))
	b.WriteString("\n")
	for _, p := range explanation {
		b.WriteString(wrapText(p, lipgloss.NewStyle(), inner))
		b.WriteString("\n\n")
	}
	b.WriteString(sectionTitleStyle.Render("How to protect yourself online:"))
	b.WriteString("\n")
	for _, t := range protectionTips {
		b.WriteString(accentStyle.Bold(true).Render("» " + t.title))
		b.WriteString("\n")
		b.WriteString(wrapText(t.body, mutedStyle, inner))
		b.WriteString("\n\n")
	}
	return strings.TrimRight(b.String(), "\n")
}
