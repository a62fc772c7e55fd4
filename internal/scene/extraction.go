package scene

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/doxsim/internal/anim"
	"github.com/verte-zerg/doxsim/internal/generator"
	"github.com/verte-zerg/doxsim/internal/model"
)

const (
	extractionHeader   = "PERSONAL INFORMATION EXTRACTED"
	extractionBreaches = 4
)

// Extraction shows the generated profile once the header is typed.
type Extraction struct {
	env      Env
	header   *anim.Reveal
	reveal   *anim.Delay
	hold     *anim.Delay
	breaches []model.BreachEvent
	timers   timers
}

// NewExtraction builds the extraction scene. Breach events are drawn once.
func NewExtraction(env Env) Scene {
	e := &Extraction{
		env:      env,
		header:   anim.NewReveal(env.Clock, extractionHeader, env.Pacing.Ms(40), 0),
		reveal:   anim.NewDelay(env.Clock, env.Pacing.Scale(env.Pacing.ExtractionReveal)),
		hold:     anim.NewDelay(env.Clock, env.Pacing.Scale(env.Pacing.ExtractionHold)),
		breaches: generator.NewWithRand(env.rand()).Breaches(extractionBreaches),
	}
	e.timers = timers{e.header, e.reveal, e.hold}
	return e
}

// Title implements Scene.
func (e *Extraction) Title() string {
	return "DATA EXTRACTION"
}

// Init implements Scene.
func (e *Extraction) Init() tea.Cmd {
	return e.header.Init()
}

// Update implements Scene.
func (e *Extraction) Update(msg tea.Msg) tea.Cmd {
	cmds := []tea.Cmd{e.header.Update(msg)}
	if e.header.Complete() && !e.reveal.Armed() {
		cmds = append(cmds, e.reveal.Start())
	}
	if e.reveal.Update(msg) {
		cmds = append(cmds, e.hold.Start())
	}
	if e.hold.Update(msg) {
		cmds = append(cmds, e.env.done())
	}
	return tea.Batch(cmds...)
}

// Revealed reports whether the data sections are visible.
func (e *Extraction) Revealed() bool {
	return e.reveal.Fired()
}

// Breaches returns the breach events shown by the scene.
func (e *Extraction) Breaches() []model.BreachEvent {
	return e.breaches
}

// Stop implements Scene.
func (e *Extraction) Stop() {
	e.timers.Stop()
}

// View implements Scene.
func (e *Extraction) View(width, _ int) string {
	header := typed(e.header, errorStyle.Bold(true))
	if !e.Revealed() {
		return header
	}
	p := e.env.Data.Profile
	md := e.env.Data.Metadata

	social := make([]string, 0, len(p.SocialAccounts))
	for _, acc := range p.SocialAccounts {
		social = append(social, field(acc.Platform, acc.Username))
	}
	breaches := make([]string, 0, len(e.breaches))
	for _, ev := range e.breaches {
		breaches = append(breaches, highlightStyle.Render(ev.Date+": ")+errorStyle.Render(ev.Site+" data breach"))
	}

	return joinBlocks(
		header,
		section("Basic Information", width,
			field("Name", p.Name),
			field("Email", p.Email),
			field("Phone", p.PhoneNumber),
			field("Date of Birth", p.DateOfBirth),
			field("IP Address", md.IPAddress),
			field("Location", fmt.Sprintf("%s, %s", md.Location.City, md.Location.Region)),
			field("Browser", md.BrowserInfo.Browser),
			field("Device", md.BrowserInfo.DeviceType+" - "+md.BrowserInfo.OS),
		),
		section("Social Media Accounts", width, social...),
		section("Relatives Identified", width, bullets(p.Relatives)...),
		section("Leaked Passwords", width, bullets(p.LeakedPasswords)...),
		section("Data Breach History", width, breaches...),
		section("Possible Addresses", width, bullets(p.PossibleAddresses)...),
	)
}

func bullets(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		out = append(out, bullet(v))
	}
	return out
}
