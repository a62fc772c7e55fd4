package scene

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/doxsim/internal/anim"
)

const (
	locationHeader = "GEOLOCATION TRACKING RESULT"
	mapWidth       = 41
	mapHeight      = 11
)

// Location reports the session's approximate coordinates.
type Location struct {
	env    Env
	header *anim.Reveal
	mapped *anim.Delay
	hold   *anim.Delay
	timers timers
}

// NewLocation builds the geolocation scene.
func NewLocation(env Env) Scene {
	l := &Location{
		env:    env,
		header: anim.NewReveal(env.Clock, locationHeader, env.Pacing.Ms(40), 0),
		mapped: anim.NewDelay(env.Clock, env.Pacing.Scale(env.Pacing.MapLoad)),
		hold:   anim.NewDelay(env.Clock, env.Pacing.Scale(env.Pacing.LocationHold)),
	}
	l.timers = timers{l.header, l.mapped, l.hold}
	return l
}

// Title implements Scene.
func (l *Location) Title() string {
	return "GEOLOCATION TRACKER"
}

// Init implements Scene. The hold runs from mount, independent of the map.
func (l *Location) Init() tea.Cmd {
	return tea.Batch(l.header.Init(), l.mapped.Start(), l.hold.Start())
}

// Update implements Scene.
func (l *Location) Update(msg tea.Msg) tea.Cmd {
	cmd := l.header.Update(msg)
	l.mapped.Update(msg)
	if l.hold.Update(msg) {
		return tea.Batch(cmd, l.env.done())
	}
	return cmd
}

// MapLoaded reports whether the coordinate panel replaced the loading text.
func (l *Location) MapLoaded() bool {
	return l.mapped.Fired()
}

// Stop implements Scene.
func (l *Location) Stop() {
	l.timers.Stop()
}

// View implements Scene.
func (l *Location) View(_, _ int) string {
	loc := l.env.Data.Metadata.Location
	info := strings.Join([]string{
		field("Target Location", fmt.Sprintf("%s, %s, %s", loc.City, loc.Region, loc.Country)),
		field("Coordinates", formatCoordinates(loc.Latitude, loc.Longitude)),
		warningStyle.Render("Accuracy: Within 1 kilometer radius"),
	}, "\n")

	var panel string
	if l.MapLoaded() {
		panel = coordinatePanel(loc.Latitude, loc.Longitude)
	} else {
		panel = lipgloss.Place(mapWidth, mapHeight, lipgloss.Center, lipgloss.Center, accentStyle.Render("Loading map data..."))
	}
	panel = sectionStyle.Render(panel)

	trail := strings.Join([]string{
		errorStyle.Render("Triangulating exact position..."),
		errorStyle.Render("Accessing street view data..."),
		errorStyle.Render("Matching with property records..."),
	}, "\n")

	return joinBlocks(typed(l.header, errorStyle.Bold(true)), info, panel, trail)
}

func formatCoordinates(lat, lon float64) string {
	return fmt.Sprintf("%.6f, %.6f", lat, lon)
}

// coordinatePanel draws a crosshair grid with the target marked at the
// position of the coordinates on an equirectangular projection.
func coordinatePanel(lat, lon float64) string {
	col := int((lon + 180) / 360 * float64(mapWidth-1))
	row := int((90 - lat) / 180 * float64(mapHeight-1))
	col = clamp(col, 0, mapWidth-1)
	row = clamp(row, 0, mapHeight-1)

	lines := make([]string, 0, mapHeight)
	for y := 0; y < mapHeight; y++ {
		var b strings.Builder
		for x := 0; x < mapWidth; x++ {
			switch {
			case x == col && y == row:
				b.WriteString(errorStyle.Bold(true).Render("◎"))
			case x == col:
				b.WriteString(mutedStyle.Render("│"))
			case y == row:
				b.WriteString(mutedStyle.Render("─"))
			case (x+y)%4 == 0:
				b.WriteString(accentStyle.Faint(true).Render("·"))
			default:
				b.WriteByte(' ')
			}
		}
		lines = append(lines, b.String())
	}
	return strings.Join(lines, "\n")
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
