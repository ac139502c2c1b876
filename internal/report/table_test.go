package report

import "testing"

func TestFormatTableAlignsColumns(t *testing.T) {
	headers := []string{"Ders", "Soru", "Net"}
	rows := [][]string{
		{"Matematik", "20", "14.0"},
		{"Din Kültürü", "8", "6.5"},
	}
	rightAlign := map[int]bool{1: true, 2: true}

	lines := formatTable(headers, rows, rightAlign)
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if lines[0] != "Ders        Soru  Net" {
		t.Fatalf("unexpected header line: %q", lines[0])
	}
	if lines[1] != "Matematik     20 14.0" {
		t.Fatalf("unexpected row line: %q", lines[1])
	}
	if lines[2] != "Din Kültürü    8  6.5" {
		t.Fatalf("unexpected row line: %q", lines[2])
	}
}

func TestFormatTableEmpty(t *testing.T) {
	if lines := formatTable(nil, nil, nil); lines != nil {
		t.Fatalf("expected nil for empty input, got %v", lines)
	}
}
