package ui

import (
	"strings"
	"testing"

	"talfront/internal/pipeline"
)

func TestApplyEvent(t *testing.T) {
	m := NewProgressModel("parse", []string{"a.tal", "b.tal"}, nil).(*progressModel)
	m.applyEvent(pipeline.Event{File: "a.tal", Stage: pipeline.StageParse, Status: pipeline.StatusWorking})
	if m.items[0].status != "parsing" {
		t.Fatalf("status = %q, want parsing", m.items[0].status)
	}
	m.applyEvent(pipeline.Event{File: "a.tal", Stage: pipeline.StageParse, Status: pipeline.StatusDone, Coverage: 75})
	m.applyEvent(pipeline.Event{File: "missing.tal", Status: pipeline.StatusDone})
	if got := m.percent(); got != 0.5 {
		t.Fatalf("percent = %v, want 0.5", got)
	}
	view := m.View()
	if !strings.Contains(view, "75.0%") || !strings.Contains(view, "b.tal") {
		t.Fatalf("view missing parts:\n%s", view)
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"short", 10, "short"},
		{"a/very/long/path.tal", 10, "a/very/..."},
		{"a/very/long/path.tal", 4, "a..."},
		{"abcdef", 2, "ab"},
		{"abc", 0, "abc"},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.width); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
		}
	}
}
