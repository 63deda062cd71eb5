package observ_test

import (
	"strings"
	"testing"

	"talfront/internal/observ"
)

func TestTimerReport(t *testing.T) {
	tm := observ.NewTimer()
	idx := tm.Begin(observ.PhasePreprocess)
	tm.End(idx, "3 units")
	tm.End(42, "ignored")

	r := tm.Report()
	if len(r.Phases) != 1 || r.Phases[0].Name != observ.PhasePreprocess || r.Phases[0].Note != "3 units" {
		t.Fatalf("unexpected report: %+v", r)
	}
	if r.TotalMS < 0 {
		t.Fatalf("negative total: %v", r.TotalMS)
	}
	s := tm.Summary()
	if !strings.Contains(s, "preprocess") || !strings.Contains(s, "// 3 units") || !strings.Contains(s, "total") {
		t.Fatalf("summary missing parts:\n%s", s)
	}
}

func TestTimerMerge(t *testing.T) {
	a := observ.NewTimer()
	a.End(a.Begin(observ.PhaseRead), "")
	b := observ.NewTimer()
	b.End(b.Begin(observ.PhaseRead), "")
	b.End(b.Begin(observ.PhaseAssemble), "x")

	a.Merge(b)
	r := a.Report()
	var names []string
	for _, p := range r.Phases {
		names = append(names, p.Name)
	}
	if strings.Join(names, ",") != "read,assemble" {
		t.Fatalf("phases = %v", names)
	}
	if r.Phases[1].Note != "" {
		t.Fatalf("merged note = %q, want empty", r.Phases[1].Note)
	}
}

func TestNilTimer(t *testing.T) {
	var tm *observ.Timer
	tm.End(tm.Begin("x"), "")
	tm.Merge(observ.NewTimer())
	if r := tm.Report(); len(r.Phases) != 0 {
		t.Fatalf("nil timer report = %+v", r)
	}
}
