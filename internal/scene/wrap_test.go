package scene

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestGlitchRunesMarkScrambledPositions(t *testing.T) {
	runes := buildGlitchRunes([]rune("A#C"), []rune("ABC"), accentStyle)
	if len(runes) != 3 {
		t.Fatalf("expected 3 runes, got %d", len(runes))
	}
	if runes[1].s != glitchStyle.Render("#") || runes[0].s != accentStyle.Render("A") {
		t.Fatalf("unexpected styling %+v", runes)
	}
}

func TestWrapTextBreaksOnSpaces(t *testing.T) {
	got := wrapText("aa bb cc", lipgloss.NewStyle(), 5)
	if got != "aa\nbb cc" {
		t.Fatalf("unexpected wrap %q", got)
	}
}

func TestWrapStyledRunesHardBreaksLongWords(t *testing.T) {
	got := wrapText("abcdef", lipgloss.NewStyle(), 4)
	if got != "abcd\nef" {
		t.Fatalf("unexpected wrap %q", got)
	}
}

func TestWrapStyledRunesZeroWidth(t *testing.T) {
	if got := wrapText("a b", lipgloss.NewStyle(), 0); got != "a b" {
		t.Fatalf("expected unwrapped text, got %q", got)
	}
}
