package main

import (
	"strings"
	"testing"
)

func TestRenderTableAlignsNumericColumns(t *testing.T) {
	out := renderTable(
		[]string{"Name", "Count"},
		[][]string{
			{"a", "1"},
			{"bbb", "22"},
		},
		2,
	)

	// Left column hugs the border; the numeric column pads on the left.
	if !strings.Contains(out, "│ a ") {
		t.Fatalf("name column not left-aligned:\n%s", out)
	}
	if !strings.Contains(out, " 1 │") || strings.Contains(out, "│ 1") {
		t.Fatalf("count column not right-aligned:\n%s", out)
	}
}

func TestRenderTablePadsShortRows(t *testing.T) {
	out := renderTable(
		[]string{"One", "Two", "Three"},
		[][]string{{"only"}},
	)
	if !strings.Contains(out, "only") {
		t.Fatalf("row cell missing:\n%s", out)
	}
	if lines := strings.Split(out, "\n"); len(lines) < 4 {
		t.Fatalf("expected bordered table, got:\n%s", out)
	}
}

func TestRenderTableEmptyHeaders(t *testing.T) {
	if out := renderTable(nil, nil); out != "" {
		t.Fatalf("expected empty render, got %q", out)
	}
}
