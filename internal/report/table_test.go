package report

import "testing"

func TestFormatTableAlignsColumns(t *testing.T) {
	headers := []string{"Site", "Count", "Year"}
	rows := [][]string{
		{"LinkedIn", "12", "2021"},
		{"Adobe", "3", "2019"},
	}
	rightAlign := map[int]bool{1: true}

	lines := formatTable(headers, rows, rightAlign)
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if lines[0] != "Site      Count  Year" {
		t.Fatalf("unexpected header line: %q", lines[0])
	}
	if lines[1] != "LinkedIn     12  2021" {
		t.Fatalf("unexpected row line: %q", lines[1])
	}
	if lines[2] != "Adobe         3  2019" {
		t.Fatalf("unexpected row line: %q", lines[2])
	}
}

func TestFormatTableWideRunes(t *testing.T) {
	lines := formatTable(nil, [][]string{{"東京", "x"}, {"ab", "y"}}, nil)
	if lines[0] != "東京  x" || lines[1] != "ab    y" {
		t.Fatalf("unexpected lines %q", lines)
	}
}

func TestFormatTableEmpty(t *testing.T) {
	if lines := formatTable(nil, nil, nil); lines != nil {
		t.Fatalf("expected no lines, got %q", lines)
	}
}
