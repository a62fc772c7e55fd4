package scene

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/doxsim/internal/anim"
)

const cursorGlyph = "█"

var (
	accentStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#00E0C6"))
	highlightStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#8FD3FF"))
	warningStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFB020"))
	errorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	successStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#3DDC84"))
	mutedStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	glitchStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Background(lipgloss.Color("#FF4D4F"))
	cursorStyle    = accentStyle.Blink(true)
	sectionStyle   = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.NormalBorder(), true).
			BorderForeground(lipgloss.Color("#1F6F66"))
	sectionTitleStyle = accentStyle.Bold(true)
	bannerStyle       = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#101010")).
				Background(lipgloss.Color("#FF4D4F")).
				Bold(true).
				Align(lipgloss.Center)
)

// typed renders a reveal with a trailing cursor while it is still typing.
func typed(r *anim.Reveal, style lipgloss.Style) string {
	s := r.State()
	if s.IsComplete {
		return style.Render(s.DisplayText)
	}
	return style.Render(s.DisplayText) + cursorStyle.Render(cursorGlyph)
}

// field renders "Label: value".
func field(label, value string) string {
	return highlightStyle.Render(label+": ") + errorStyle.Render(value)
}

func bullet(value string) string {
	return highlightStyle.Render("• ") + errorStyle.Render(value)
}

// section renders a titled box of lines.
func section(title string, width int, lines ...string) string {
	inner := width - sectionStyle.GetHorizontalFrameSize()
	if inner < 1 {
		inner = 1
	}
	body := sectionStyle.Width(inner).Render(strings.Join(lines, "\n"))
	return sectionTitleStyle.Render(strings.ToUpper(title)) + "\n" + body
}

func joinBlocks(blocks ...string) string {
	out := make([]string, 0, len(blocks))
	for _, b := range blocks {
		if b == "" {
			continue
		}
		out = append(out, b)
	}
	return strings.Join(out, "\n\n")
}
